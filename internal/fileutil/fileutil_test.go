package fileutil

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestScanDirectory(t *testing.T) {
	dir := t.TempDir()
	for _, name := range []string{"b.xml", "a.xml", "notes.txt", "upper.XML"} {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte("<x/>"), 0o644))
	}
	require.NoError(t, os.Mkdir(filepath.Join(dir, "dir.xml"), 0o755))

	names, err := Scanner{}.ScanDirectory(dir, "*.xml")
	require.NoError(t, err)
	assert.Equal(t, []string{"a.xml", "b.xml"}, names)
}

func TestScanDirectoryMissing(t *testing.T) {
	names, err := Scanner{}.ScanDirectory(filepath.Join(t.TempDir(), "absent"), "*.xml")
	assert.NoError(t, err)
	assert.Empty(t, names)
}

func TestScanDirectoryBadPattern(t *testing.T) {
	_, err := Scanner{}.ScanDirectory(t.TempDir(), "[")
	assert.Error(t, err)
}

func TestResolveAlias(t *testing.T) {
	aliases := map[string]string{DevRootAlias: "/work/dev"}

	tests := []struct {
		in   string
		want string
	}{
		{"@devroot@/Editor/env.xml", filepath.Join("/work/dev", "Editor/env.xml")},
		{"@devroot@", "/work/dev"},
		{"/abs/env.xml", "/abs/env.xml"},
		{"rel/../env.xml", "env.xml"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, ResolveAlias(tt.in, aliases), "ResolveAlias(%q)", tt.in)
	}
}

func TestPathHelpers(t *testing.T) {
	assert.Equal(t, "/shelves", ParentDir("/shelves/anim.xml"))
	assert.Equal(t, "anim", FileName("/shelves/anim.xml"))
	assert.Equal(t, "archive.tar", FileName("archive.tar.gz"))
}
