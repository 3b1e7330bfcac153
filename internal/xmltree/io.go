package xmltree

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/beevik/etree"
)

// ErrNoRoot is returned when a document contains no element.
var ErrNoRoot = errors.New("xml document has no root element")

// Parse reads a document and returns its root element.
func Parse(r io.Reader) (*Node, error) {
	doc := etree.NewDocument()
	if _, err := doc.ReadFrom(r); err != nil {
		return nil, err
	}

	roots := doc.ChildElements()
	switch {
	case len(roots) == 0:
		return nil, ErrNoRoot
	case len(roots) > 1:
		return nil, fmt.Errorf("multiple root elements: %q after %q", roots[1].Tag, roots[0].Tag)
	}

	root := roots[0]
	doc.RemoveChild(root)
	return wrap(root), nil
}

// ParseBytes parses a document held in memory.
func ParseBytes(data []byte) (*Node, error) {
	return Parse(bytes.NewReader(data))
}

// LoadFile parses the document at path.
// The returned error wraps os.ErrNotExist when the file is missing.
func LoadFile(path string) (*Node, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	root, err := Parse(f)
	if err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}
	return root, nil
}

// Marshal renders the element as a document indented by two spaces with an
// XML header. Newlines and tabs in attribute values are written as character
// references so multi-line scripts survive a reload.
func (n *Node) Marshal() []byte {
	doc := etree.NewDocument()
	doc.CreateProcInst("xml", `version="1.0" encoding="UTF-8"`)
	doc.SetRoot(n.el.Copy())
	doc.WriteSettings.CanonicalAttrVal = true
	doc.Indent(2)

	var buf bytes.Buffer
	// bytes.Buffer writes do not fail.
	_, _ = doc.WriteTo(&buf)
	return buf.Bytes()
}

// SaveFile writes the element to path, creating parent directories.
// The file is replaced atomically using a temporary file and rename.
func SaveFile(n *Node, path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("creating directory: %w", err)
	}

	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, n.Marshal(), 0o644); err != nil {
		return fmt.Errorf("writing temp file: %w", err)
	}
	if err := os.Rename(tmp, path); err != nil {
		os.Remove(tmp)
		return fmt.Errorf("renaming temp file: %w", err)
	}
	return nil
}
