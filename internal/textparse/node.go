package textparse

// Node is one element of the parsed content tree. Concrete node types embed
// Base and add their own typed fields.
type Node interface {
	Children() []Node
	Line() int

	appendChild(Node)
	setLine(int)
}

// Base carries the tree bookkeeping shared by all node types.
type Base struct {
	line     int
	children []Node
}

func (b *Base) Children() []Node { return b.children }

// Line is the 1-based line the node started on.
func (b *Base) Line() int { return b.line }

func (b *Base) appendChild(n Node) { b.children = append(b.children, n) }

func (b *Base) setLine(n int) { b.line = n }

// File is the root node spanning a whole document.
type File struct {
	Base
}

// NodesOf returns every descendant of n with type T, in pre-order.
func NodesOf[T Node](n Node) []T {
	var out []T
	for _, c := range n.Children() {
		if t, ok := c.(T); ok {
			out = append(out, t)
		}
		out = append(out, NodesOf[T](c)...)
	}
	return out
}

// ChildrenOf returns the direct children of n with type T.
func ChildrenOf[T Node](n Node) []T {
	var out []T
	for _, c := range n.Children() {
		if t, ok := c.(T); ok {
			out = append(out, t)
		}
	}
	return out
}
