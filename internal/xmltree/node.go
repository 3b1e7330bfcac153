// Package xmltree provides a small mutable XML element tree on top of
// github.com/beevik/etree.
//
// The tree keeps element order and attribute order, which the macro files
// rely on: macros and commands are replayed in document order and files are
// rewritten with attributes in the order they were set. Character data,
// comments and processing instructions are carried by the underlying
// document but are not part of this API.
package xmltree

import (
	"strconv"
	"strings"

	"github.com/beevik/etree"
)

// Attr is a single element attribute.
type Attr struct {
	Name  string
	Value string
}

// Node is an XML element with ordered attributes and element children.
// Nodes returned by Child, Children and FindChild share the element with
// their parent; edits through any of them are visible in the tree.
type Node struct {
	el *etree.Element
}

// New creates an element with the given tag.
func New(tag string) *Node {
	return &Node{el: etree.NewElement(tag)}
}

func wrap(el *etree.Element) *Node {
	if el == nil {
		return nil
	}
	return &Node{el: el}
}

// Tag returns the local element name.
func (n *Node) Tag() string {
	return n.el.Tag
}

// Attrs returns a copy of the attributes in document order.
func (n *Node) Attrs() []Attr {
	out := make([]Attr, 0, len(n.el.Attr))
	for _, a := range n.el.Attr {
		out = append(out, Attr{Name: a.FullKey(), Value: a.Value})
	}
	return out
}

// HaveAttr reports whether the attribute is present.
func (n *Node) HaveAttr(name string) bool {
	return n.el.SelectAttr(name) != nil
}

// LookupAttr returns the attribute value and whether it was present.
func (n *Node) LookupAttr(name string) (string, bool) {
	a := n.el.SelectAttr(name)
	if a == nil {
		return "", false
	}
	return a.Value, true
}

// Attr returns the attribute value, or "" when absent.
func (n *Node) Attr(name string) string {
	return n.el.SelectAttrValue(name, "")
}

// IntAttr parses an integer attribute.
// ok is false when the attribute is absent or not an integer.
func (n *Node) IntAttr(name string) (v int, ok bool) {
	s, present := n.LookupAttr(name)
	if !present {
		return 0, false
	}
	i, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return 0, false
	}
	return i, true
}

// BoolAttr parses a boolean attribute. Accepted spellings are 1/0 and
// true/false in any case.
func (n *Node) BoolAttr(name string) (v bool, ok bool) {
	s, present := n.LookupAttr(name)
	if !present {
		return false, false
	}
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "1", "true":
		return true, true
	case "0", "false":
		return false, true
	}
	return false, false
}

// SetAttr sets an attribute, replacing an existing value in place.
func (n *Node) SetAttr(name, value string) {
	n.el.CreateAttr(name, value)
}

// SetIntAttr sets an integer attribute.
func (n *Node) SetIntAttr(name string, value int) {
	n.SetAttr(name, strconv.Itoa(value))
}

// SetBoolAttr sets a boolean attribute using the 1/0 spelling.
func (n *Node) SetBoolAttr(name string, value bool) {
	if value {
		n.SetAttr(name, "1")
		return
	}
	n.SetAttr(name, "0")
}

// RemoveAttr deletes an attribute if present.
func (n *Node) RemoveAttr(name string) {
	n.el.RemoveAttr(name)
}

// NewChild appends and returns a new child element.
func (n *Node) NewChild(tag string) *Node {
	return wrap(n.el.CreateElement(tag))
}

// Children returns the child elements in document order.
func (n *Node) Children() []*Node {
	els := n.el.ChildElements()
	out := make([]*Node, len(els))
	for i, el := range els {
		out[i] = wrap(el)
	}
	return out
}

// ChildCount returns the number of child elements.
func (n *Node) ChildCount() int {
	return len(n.el.ChildElements())
}

// Child returns the i-th child element, or nil when out of range.
func (n *Node) Child(i int) *Node {
	els := n.el.ChildElements()
	if i < 0 || i >= len(els) {
		return nil
	}
	return wrap(els[i])
}

// FindChild returns the first child with the given tag, or nil.
func (n *Node) FindChild(tag string) *Node {
	return wrap(n.el.SelectElement(tag))
}

// Clone returns a deep copy of the element, detached from any parent.
func (n *Node) Clone() *Node {
	if n == nil {
		return nil
	}
	return wrap(n.el.Copy())
}
