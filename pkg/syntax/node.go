// Package syntax wraps go-tree-sitter's Node/Tree types behind the
// narrow surface the reformatting engine actually needs: kind, byte
// range, row/column, child access, parent, and next-named-sibling.
package syntax

import (
	sitter "github.com/smacker/go-tree-sitter"
)

// Point is a zero-indexed row/column position.
type Point struct {
	Row    int
	Column int
}

// Node is a single parse tree node together with the source bytes it
// was parsed from, needed to resolve its text.
type Node struct {
	raw    *sitter.Node
	source []byte
}

func wrap(raw *sitter.Node, source []byte) *Node {
	if raw == nil {
		return nil
	}
	return &Node{raw: raw, source: source}
}

// Kind returns the node's grammar type.
func (n *Node) Kind() Kind {
	return Kind(n.raw.Type())
}

// StartByte returns the byte offset of the node's first byte.
func (n *Node) StartByte() int {
	return int(n.raw.StartByte())
}

// EndByte returns the byte offset just past the node's last byte.
func (n *Node) EndByte() int {
	return int(n.raw.EndByte())
}

// StartPoint returns the node's starting row/column.
func (n *Node) StartPoint() Point {
	p := n.raw.StartPoint()
	return Point{Row: int(p.Row), Column: int(p.Column)}
}

// EndPoint returns the node's ending row/column.
func (n *Node) EndPoint() Point {
	p := n.raw.EndPoint()
	return Point{Row: int(p.Row), Column: int(p.Column)}
}

// StartLine returns the 1-indexed line the node starts on.
func (n *Node) StartLine() int {
	return n.StartPoint().Row + 1
}

// EndLine returns the 1-indexed line the node ends on.
func (n *Node) EndLine() int {
	return n.EndPoint().Row + 1
}

// Text returns the node's source text.
func (n *Node) Text() string {
	return n.raw.Content(n.source)
}

// Parent returns the node's parent, or nil at the root.
func (n *Node) Parent() *Node {
	return wrap(n.raw.Parent(), n.source)
}

// ChildCount returns the number of children, named and anonymous.
func (n *Node) ChildCount() int {
	return int(n.raw.ChildCount())
}

// Child returns the i-th child, named or anonymous.
func (n *Node) Child(i int) *Node {
	return wrap(n.raw.Child(i), n.source)
}

// NamedChildCount returns the number of named children.
func (n *Node) NamedChildCount() int {
	return int(n.raw.NamedChildCount())
}

// NamedChild returns the i-th named child.
func (n *Node) NamedChild(i int) *Node {
	return wrap(n.raw.NamedChild(i), n.source)
}

// NamedChildren returns all named children in order.
func (n *Node) NamedChildren() []*Node {
	count := n.NamedChildCount()
	out := make([]*Node, count)
	for i := 0; i < count; i++ {
		out[i] = n.NamedChild(i)
	}
	return out
}

// NextNamedSibling returns the next named sibling, or nil if n is the
// last named child of its parent.
func (n *Node) NextNamedSibling() *Node {
	return wrap(n.raw.NextNamedSibling(), n.source)
}

// Equal reports whether n and o denote the same source range. Used
// instead of pointer identity because go-tree-sitter node accessors
// are free to hand back distinct wrapper values for the same node.
func (n *Node) Equal(o *Node) bool {
	if n == nil || o == nil {
		return n == o
	}
	return n.StartByte() == o.StartByte() && n.EndByte() == o.EndByte()
}
