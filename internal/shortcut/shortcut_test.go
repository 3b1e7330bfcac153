package shortcut

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse(t *testing.T) {
	tests := []struct {
		spec string
		want Shortcut
		str  string
	}{
		{"a", Shortcut{Rune: 'a'}, "A"},
		{"F5", Shortcut{Key: KeyF5}, "F5"},
		{"escape", Shortcut{Key: KeyEscape}, "Escape"},
		{"Ctrl+S", Shortcut{Mods: ModCtrl, Rune: 's'}, "Ctrl+S"},
		{"ctrl + s", Shortcut{Mods: ModCtrl, Rune: 's'}, "Ctrl+S"},
		{"Shift+Ctrl+P", Shortcut{Mods: ModCtrl | ModShift, Rune: 'p'}, "Ctrl+Shift+P"},
		{"Alt+F4", Shortcut{Mods: ModAlt, Key: KeyF4}, "Alt+F4"},
		{"Cmd+Enter", Shortcut{Mods: ModMeta, Key: KeyEnter}, "Meta+Enter"},
		{"<C-s>", Shortcut{Mods: ModCtrl, Rune: 's'}, "Ctrl+S"},
		{"<C-S-p>", Shortcut{Mods: ModCtrl | ModShift, Rune: 'p'}, "Ctrl+Shift+P"},
		{"<Esc>", Shortcut{Key: KeyEscape}, "Escape"},
		{"<A-F12>", Shortcut{Mods: ModAlt, Key: KeyF12}, "Alt+F12"},
		{"+", Shortcut{Rune: '+'}, "+"},
		{"Ctrl++", Shortcut{Mods: ModCtrl, Rune: '+'}, "Ctrl++"},
		{"Ctrl+-", Shortcut{Mods: ModCtrl, Rune: '-'}, "Ctrl+-"},
	}

	for _, tt := range tests {
		t.Run(tt.spec, func(t *testing.T) {
			got, err := Parse(tt.spec)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, tt.str, got.String())

			again, err := Parse(got.String())
			require.NoError(t, err)
			assert.Equal(t, got, again)
		})
	}
}

func TestParseErrors(t *testing.T) {
	_, err := Parse("  ")
	assert.ErrorIs(t, err, ErrEmptySpec)

	for _, spec := range []string{"Hyper+S", "Ctrl+", "Ctrl+Foo", "bogus key", "<X-s>", "ab"} {
		_, err := Parse(spec)
		assert.ErrorIs(t, err, ErrInvalidSpec, spec)
	}
}

func TestBinder(t *testing.T) {
	b := NewBinder("Ctrl+Q")

	assert.True(t, b.Valid("Ctrl+S"))
	assert.False(t, b.Valid("Ctrl+Foo"))

	require.True(t, b.AddShortcut(38000, "Ctrl+S"))
	assert.False(t, b.AddShortcut(38001, "<C-s>"), "same shortcut, other action")
	assert.True(t, b.AddShortcut(38000, "ctrl+s"), "rebinding the same action")
	assert.False(t, b.AddShortcut(38001, "Ctrl+Q"), "reserved")
	assert.False(t, b.AddShortcut(38001, "Ctrl+Foo"))

	id, ok := b.Lookup("<C-S>")
	require.True(t, ok)
	assert.EqualValues(t, 38000, id)

	require.True(t, b.AddShortcut(38000, "F5"))
	_, ok = b.Lookup("Ctrl+S")
	assert.False(t, ok, "old shortcut released on rebind")
	assert.True(t, b.AddShortcut(38001, "Ctrl+S"))

	bindings := b.Bindings()
	require.Len(t, bindings, 2)
	assert.Equal(t, "F5", bindings[0].Shortcut.String())
	assert.Equal(t, "Ctrl+S", bindings[1].Shortcut.String())

	assert.True(t, b.RemoveShortcut(38000))
	assert.False(t, b.RemoveShortcut(38000))
	_, ok = b.ShortcutFor(38000)
	assert.False(t, ok)
	s, ok := b.ShortcutFor(38001)
	require.True(t, ok)
	assert.Equal(t, "Ctrl+S", s.String())
}
