package script

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSearchPath(t *testing.T) {
	a := t.TempDir()
	b := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(b, "util.star"), []byte("x = 1\n"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(a, "util.lua"), []byte("return 1\n"), 0o644))

	var p SearchPath
	require.NoError(t, p.Add(a))
	require.NoError(t, p.Add(b))
	require.NoError(t, p.Add(a))
	assert.Len(t, p.Dirs(), 2)

	path, ok := p.Find("util", ".star")
	require.True(t, ok)
	assert.Equal(t, filepath.Join(b, "util.star"), path)

	path, ok = p.Find("util.lua")
	require.True(t, ok)
	assert.Equal(t, filepath.Join(a, "util.lua"), path)

	_, ok = p.Find("missing", ".star")
	assert.False(t, ok)
}

func TestSearchPathRejects(t *testing.T) {
	var p SearchPath
	assert.Error(t, p.Add(""))
	assert.Error(t, p.Add(filepath.Join(t.TempDir(), "nope")))

	file := filepath.Join(t.TempDir(), "f")
	require.NoError(t, os.WriteFile(file, nil, 0o644))
	assert.Error(t, p.Add(file))
}
