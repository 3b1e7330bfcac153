package settings

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dshills/toolbox/internal/xmltree"
)

func TestStoreRollback(t *testing.T) {
	s := NewStore()
	node := xmltree.New("toolboxmacros")
	node.NewChild("macro").SetAttr("title", "a")
	s.AddSettingsNode(node)
	s.AddSettingsNode(nil)

	live, ok := s.Get("toolboxmacros")
	require.True(t, ok)
	live.Child(0).SetAttr("title", "changed")
	live.NewChild("macro")

	restored, err := s.Rollback("toolboxmacros")
	require.NoError(t, err)
	assert.Equal(t, 1, restored.ChildCount())
	assert.Equal(t, "a", restored.Child(0).Attr("title"))

	_, err = s.Rollback("other")
	assert.ErrorIs(t, err, ErrUnknownNode)
}

func TestStoreSaveTo(t *testing.T) {
	s := NewStore()
	s.AddSettingsNode(xmltree.New("first"))
	s.AddSettingsNode(xmltree.New("second"))
	s.AddSettingsNode(xmltree.New("first"))
	assert.Equal(t, []string{"first", "second"}, s.Tags())

	live, _ := s.Get("second")
	live.SetAttr("v", "1")

	path := filepath.Join(t.TempDir(), "second.xml")
	require.NoError(t, s.SaveTo("second", path))

	loaded, err := xmltree.LoadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "1", loaded.Attr("v"))

	live.SetAttr("v", "2")
	restored, err := s.Rollback("second")
	require.NoError(t, err)
	assert.Equal(t, "1", restored.Attr("v"), "save moves the rollback point")

	assert.ErrorIs(t, s.SaveTo("missing", path), ErrUnknownNode)
}
