package toolbox

// ActionID identifies an action registered with the host UI.
type ActionID int

// SeparatorActionID is placed in a toolbar's action list where a separator
// is drawn instead of a button.
const SeparatorActionID ActionID = 0

// NotFound is returned by index lookups that match nothing.
const NotFound = -1

// FreeStanding is the toolbar id of a macro that is written back to the
// primary save file.
const FreeStanding = -1

// IDRange is an inclusive range of action identifiers reserved for one
// macro collection.
type IDRange struct {
	First ActionID
	Last  ActionID
}

// Default identifier ranges.
var (
	DefaultToolboxRange = IDRange{First: 38000, Last: 38099}
	DefaultShelfRange   = IDRange{First: 38100, Last: 38999}
)

// Capacity returns the number of identifiers in the range.
func (r IDRange) Capacity() int {
	if r.Last < r.First {
		return 0
	}
	return int(r.Last-r.First) + 1
}

// ID returns the identifier for the macro at index.
func (r IDRange) ID(index int) ActionID {
	return r.First + ActionID(index)
}

// Contains reports whether id lies in the range.
func (r IDRange) Contains(id ActionID) bool {
	return id >= r.First && id <= r.Last
}

// Index returns the collection index for id, or NotFound.
func (r IDRange) Index(id ActionID) int {
	if !r.Contains(id) {
		return NotFound
	}
	return int(id - r.First)
}
