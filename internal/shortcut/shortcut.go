// Package shortcut parses keyboard shortcut specs and binds them to action
// identifiers.
package shortcut

import (
	"errors"
	"fmt"
	"strings"
	"unicode"
)

// Parse errors.
var (
	ErrEmptySpec   = errors.New("empty shortcut specification")
	ErrInvalidSpec = errors.New("invalid shortcut specification")
)

// Shortcut is one key with modifiers. Exactly one of Key and Rune is set.
// Rune keys are stored lower case; Shift is only ever explicit.
type Shortcut struct {
	Mods Modifier
	Key  Key
	Rune rune
}

// String returns the canonical spec, e.g. "Ctrl+Shift+P" or "Alt+F4".
func (s Shortcut) String() string {
	var k string
	if s.Key != KeyNone {
		k = s.Key.String()
	} else {
		k = string(unicode.ToUpper(s.Rune))
	}
	if s.Mods == ModNone {
		return k
	}
	return s.Mods.String() + "+" + k
}

// Parse parses a shortcut spec.
//
// Supported formats:
//   - Single key: "a", "F5", "Escape"
//   - With modifiers: "Ctrl+S", "Alt+F4", "Ctrl+Shift+P"
//   - Vim style: "<C-s>", "<A-F4>", "<C-S-p>", "<Esc>"
//
// "+" on its own, or as the last part ("Ctrl++"), is the plus key.
func Parse(spec string) (Shortcut, error) {
	spec = strings.TrimSpace(spec)
	if spec == "" {
		return Shortcut{}, ErrEmptySpec
	}

	if len(spec) > 2 && strings.HasPrefix(spec, "<") && strings.HasSuffix(spec, ">") {
		return parseSeparated(spec[1:len(spec)-1], "-")
	}
	return parseSeparated(spec, "+")
}

// parseSeparated parses modifiers and a key joined by sep. All parts but the
// last are modifiers.
func parseSeparated(spec, sep string) (Shortcut, error) {
	keyPart := spec
	modPart := ""

	if i := strings.LastIndex(spec, sep); i > 0 && i < len(spec)-1 {
		keyPart, modPart = spec[i+1:], spec[:i]
	} else if i == len(spec)-1 && strings.HasSuffix(spec[:i], sep) {
		// A doubled trailing separator is the separator key itself.
		keyPart, modPart = sep, strings.TrimSuffix(spec[:i], sep)
	}

	var mods Modifier
	if modPart != "" {
		for _, p := range strings.Split(modPart, sep) {
			mod := ModifierFromName(p)
			if mod == ModNone {
				return Shortcut{}, fmt.Errorf("%w: unknown modifier %q", ErrInvalidSpec, p)
			}
			mods = mods.With(mod)
		}
	}

	return parseKey(strings.TrimSpace(keyPart), mods)
}

func parseKey(keyPart string, mods Modifier) (Shortcut, error) {
	if keyPart == "" {
		return Shortcut{}, ErrInvalidSpec
	}
	if k := KeyFromName(keyPart); k != KeyNone {
		return Shortcut{Mods: mods, Key: k}, nil
	}

	runes := []rune(keyPart)
	if len(runes) != 1 || !unicode.IsPrint(runes[0]) || unicode.IsSpace(runes[0]) {
		return Shortcut{}, fmt.Errorf("%w: unknown key %q", ErrInvalidSpec, keyPart)
	}
	return Shortcut{Mods: mods, Rune: unicode.ToLower(runes[0])}, nil
}

// Normalize parses spec and returns its canonical form.
func Normalize(spec string) (string, error) {
	s, err := Parse(spec)
	if err != nil {
		return "", err
	}
	return s.String(), nil
}
