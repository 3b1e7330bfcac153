package toolbox

import (
	"fmt"

	"golang.org/x/text/cases"
)

// collection is an ordered list of macros with unique titles, bounded by the
// size of its identifier range. The toolbox and the shelves are both
// collections; they differ only in name and range.
type collection struct {
	name   string
	ids    IDRange
	macros []*Macro
}

func newCollection(name string, ids IDRange) *collection {
	return &collection{name: name, ids: ids}
}

// sameTitle compares titles with Unicode case folding.
func sameTitle(a, b string) bool {
	if a == b {
		return true
	}
	fold := cases.Fold()
	return fold.String(a) == fold.String(b)
}

func (c *collection) count() int { return len(c.macros) }

func (c *collection) at(index int) *Macro {
	c.checkIndex(index)
	return c.macros[index]
}

func (c *collection) checkIndex(index int) {
	if index < 0 || index >= len(c.macros) {
		panic(fmt.Sprintf("toolbox: %s macro index %d out of range [0,%d)", c.name, index, len(c.macros)))
	}
}

// indexOf returns the first macro titled title, skipping index except.
func (c *collection) indexOf(title string, except int) int {
	for i, m := range c.macros {
		if i == except {
			continue
		}
		if sameTitle(m.title, title) {
			return i
		}
	}
	return NotFound
}

func (c *collection) create(title string) (*Macro, int, error) {
	if len(c.macros) >= c.ids.Capacity() {
		return nil, NotFound, fmt.Errorf("%w: %s holds %d macros", ErrCollectionFull, c.name, c.ids.Capacity())
	}
	if c.indexOf(title, NotFound) != NotFound {
		return nil, NotFound, fmt.Errorf("%w: %q in %s", ErrDuplicateTitle, title, c.name)
	}

	m := newMacro(title)
	c.macros = append(c.macros, m)
	return m, len(c.macros) - 1, nil
}

func (c *collection) rename(index int, title string) bool {
	c.checkIndex(index)
	if c.indexOf(title, index) != NotFound {
		return false
	}
	c.macros[index].title = title
	return true
}

func (c *collection) swap(i, j int) {
	c.checkIndex(i)
	c.checkIndex(j)
	c.macros[i], c.macros[j] = c.macros[j], c.macros[i]
}

func (c *collection) remove(index int) *Macro {
	c.checkIndex(index)
	m := c.macros[index]
	c.macros = append(c.macros[:index], c.macros[index+1:]...)
	m.Clear()
	return m
}

func (c *collection) clear() {
	for _, m := range c.macros {
		m.Clear()
	}
	c.macros = nil
}

func (c *collection) all() []*Macro {
	out := make([]*Macro, len(c.macros))
	copy(out, c.macros)
	return out
}
