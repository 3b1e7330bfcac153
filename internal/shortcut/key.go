package shortcut

import (
	"fmt"
	"strings"
)

// Key is a named, non-character key.
type Key uint8

// Named keys.
const (
	KeyNone Key = iota
	KeyEscape
	KeyEnter
	KeyTab
	KeyBackspace
	KeyDelete
	KeyInsert
	KeyHome
	KeyEnd
	KeyPageUp
	KeyPageDown
	KeyUp
	KeyDown
	KeyLeft
	KeyRight
	KeySpace
	KeyPause
	KeyF1
	KeyF2
	KeyF3
	KeyF4
	KeyF5
	KeyF6
	KeyF7
	KeyF8
	KeyF9
	KeyF10
	KeyF11
	KeyF12
)

var keyNames = map[Key]string{
	KeyEscape:    "Escape",
	KeyEnter:     "Enter",
	KeyTab:       "Tab",
	KeyBackspace: "Backspace",
	KeyDelete:    "Delete",
	KeyInsert:    "Insert",
	KeyHome:      "Home",
	KeyEnd:       "End",
	KeyPageUp:    "PageUp",
	KeyPageDown:  "PageDown",
	KeyUp:        "Up",
	KeyDown:      "Down",
	KeyLeft:      "Left",
	KeyRight:     "Right",
	KeySpace:     "Space",
	KeyPause:     "Pause",
}

// keyAliases maps lowercase names, including Vim spellings, to keys.
var keyAliases = map[string]Key{
	"esc":      KeyEscape,
	"cr":       KeyEnter,
	"return":   KeyEnter,
	"bs":       KeyBackspace,
	"del":      KeyDelete,
	"ins":      KeyInsert,
	"pgup":     KeyPageUp,
	"pgdn":     KeyPageDown,
	"break":    KeyPause,
	"spacebar": KeySpace,
}

func init() {
	for k := KeyF1; k <= KeyF12; k++ {
		keyNames[k] = fmt.Sprintf("F%d", int(k-KeyF1)+1)
	}
	for k, name := range keyNames {
		keyAliases[strings.ToLower(name)] = k
	}
}

// String returns the key's canonical name.
func (k Key) String() string {
	if name, ok := keyNames[k]; ok {
		return name
	}
	return "None"
}

// KeyFromName returns the key for a name or alias, case-insensitively, or
// KeyNone.
func KeyFromName(name string) Key {
	return keyAliases[strings.ToLower(name)]
}
