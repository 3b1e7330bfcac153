package xmltree

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sample = `<?xml version="1.0"?>
<!-- shelf -->
<toolboxmacros shelfName="anim" showByDefault="false">
  <macro title="Reset" shortcut="Ctrl+R" icon="reset.png">
    <command type="1" text="r_DebugDraw" bVariableToggle="1"/>
    <command type="0" text="print(&quot;x&quot;)"/>
  </macro>
  <macro title="Empty"/>
</toolboxmacros>`

func TestParseKeepsOrder(t *testing.T) {
	root, err := ParseBytes([]byte(sample))
	require.NoError(t, err)

	assert.Equal(t, "toolboxmacros", root.Tag())
	assert.Equal(t, "anim", root.Attr("shelfName"))
	require.Equal(t, 2, root.ChildCount())

	reset := root.Child(0)
	assert.Equal(t, "Reset", reset.Attr("title"))
	require.Equal(t, 2, reset.ChildCount())
	assert.Equal(t, "r_DebugDraw", reset.Child(0).Attr("text"))
	assert.Equal(t, `print("x")`, reset.Child(1).Attr("text"))

	assert.Nil(t, root.Child(2))
	assert.Nil(t, root.Child(-1))
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		name string
		doc  string
	}{
		{"empty", ""},
		{"unclosed", "<a><b></a>"},
		{"two roots", "<a/><b/>"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseBytes([]byte(tt.doc))
			assert.Error(t, err)
		})
	}
}

func TestAttrAccessors(t *testing.T) {
	n := New("command")
	n.SetIntAttr("type", 1)
	n.SetBoolAttr("bVariableToggle", true)
	n.SetAttr("text", "a")
	n.SetAttr("text", "b")

	assert.Equal(t, []Attr{{"type", "1"}, {"bVariableToggle", "1"}, {"text", "b"}}, n.Attrs())

	v, ok := n.IntAttr("type")
	assert.True(t, ok)
	assert.Equal(t, 1, v)

	b, ok := n.BoolAttr("bVariableToggle")
	assert.True(t, ok)
	assert.True(t, b)

	_, ok = n.BoolAttr("missing")
	assert.False(t, ok)

	n.SetAttr("flag", "TRUE")
	b, ok = n.BoolAttr("flag")
	assert.True(t, ok)
	assert.True(t, b)

	n.SetAttr("flag", "maybe")
	_, ok = n.BoolAttr("flag")
	assert.False(t, ok)

	n.RemoveAttr("flag")
	assert.False(t, n.HaveAttr("flag"))
}

func TestCloneIsDeep(t *testing.T) {
	root, err := ParseBytes([]byte(sample))
	require.NoError(t, err)

	c := root.Clone()
	c.Child(0).SetAttr("title", "Changed")
	c.NewChild("macro")

	assert.Equal(t, "Reset", root.Child(0).Attr("title"))
	assert.Equal(t, 2, root.ChildCount())
	assert.Equal(t, 3, c.ChildCount())
}

func TestSaveLoadRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "Macros.xml")

	root := New("toolboxmacros")
	m := root.NewChild("macro")
	m.SetAttr("title", `Quote "&" <tag>`)
	cmd := m.NewChild("command")
	cmd.SetIntAttr("type", 0)
	cmd.SetAttr("text", "print('x')\nprint('y')")

	require.NoError(t, SaveFile(root, path))

	_, err := os.Stat(path + ".tmp")
	assert.True(t, os.IsNotExist(err), "temp file should be renamed away")

	loaded, err := LoadFile(path)
	require.NoError(t, err)
	assert.Equal(t, `Quote "&" <tag>`, loaded.Child(0).Attr("title"))
	assert.Equal(t, "print('x')\nprint('y')", loaded.Child(0).Child(0).Attr("text"))
}

func TestLoadFileMissing(t *testing.T) {
	_, err := LoadFile(filepath.Join(t.TempDir(), "absent.xml"))
	assert.True(t, errors.Is(err, os.ErrNotExist))
}

func TestParseIndentedDocument(t *testing.T) {
	root, err := ParseBytes([]byte("<a>\n  <b/>\n</a>"))
	require.NoError(t, err)

	assert.Equal(t, "a", root.Tag())
	require.Equal(t, 1, root.ChildCount())
	assert.Equal(t, "b", root.Child(0).Tag())
}

func TestMarshalParseRoundTrip(t *testing.T) {
	root := New("toolboxmacros")
	root.SetAttr("shelfName", "anim")
	for _, title := range []string{"First", "Second"} {
		m := root.NewChild("macro")
		m.SetAttr("title", title)
		m.NewChild("command").SetAttr("text", "print('"+title+"')\n\tprint('done')")
		m.NewChild("command").SetIntAttr("type", 1)
	}

	data := root.Marshal()
	assert.Contains(t, string(data), "\n  <macro")

	loaded, err := ParseBytes(data)
	require.NoError(t, err)

	assert.Equal(t, root.Attrs(), loaded.Attrs())
	require.Equal(t, 2, loaded.ChildCount())
	for i, m := range loaded.Children() {
		want := root.Child(i)
		assert.Equal(t, want.Attrs(), m.Attrs())
		require.Equal(t, 2, m.ChildCount())
		assert.Equal(t, want.Child(0).Attrs(), m.Child(0).Attrs())
		assert.Equal(t, want.Child(1).Attrs(), m.Child(1).Attrs())
	}

	again, err := ParseBytes(loaded.Marshal())
	require.NoError(t, err)
	assert.Equal(t, string(data), string(again.Marshal()))
}

func TestMarshalLeavesTreeUnchanged(t *testing.T) {
	root := New("a")
	child := root.NewChild("b")
	root.Marshal()

	require.Equal(t, 1, root.ChildCount())
	child.SetAttr("x", "1")
	assert.Equal(t, "1", root.Child(0).Attr("x"))
}
