package rstast

// Node is a tagged-variant AST node. A single struct stands in for the
// source's inheritance chain (spec.md §9): Kind discriminates the
// variant, and category membership is a predicate over Kind rather than
// a marker interface. Parent is a non-owning back-reference; Children
// is the owning list. Both are safe in Go without an arena because the
// garbage collector tolerates the resulting cycle.
type Node struct {
	Kind   Kind
	Parent *Node

	// RawSource is the literal source text the node was built from,
	// when applicable (directives and literal/doctest blocks keep it
	// verbatim; most structural nodes leave it empty).
	RawSource string
	SourceID  string
	Line      int

	Attrs map[string]AttrValue

	Names    []string
	IDs      []string
	DupNames []string

	// Children holds this node's owned child nodes, in document order.
	Children []*Node

	// Text holds the literal text payload for leaf inline nodes
	// (Text, Literal, parts of Reference) and for block-text carriers
	// (LiteralBlock, DoctestBlock, Comment, Line).
	Text string
}

// NewNode constructs a bare node of the given kind with an initialized
// attribute map, ready for attribute/child mutation by the state that
// owns it.
func NewNode(kind Kind) *Node {
	return &Node{Kind: kind, Attrs: make(map[string]AttrValue)}
}

// NewText is a convenience constructor for the common inline leaf.
func NewText(text string) *Node {
	n := NewNode(KindText)
	n.Text = text
	return n
}

// Append adds child to n's Children and sets child's Parent back-link.
// It is a programming error to append a node that already has a
// different parent; callers that need to move a node between parents
// must clear Parent first.
func (n *Node) Append(child *Node) {
	child.Parent = n
	n.Children = append(n.Children, child)
}

// AppendAll appends each of children in order.
func (n *Node) AppendAll(children ...*Node) {
	for _, c := range children {
		n.Append(c)
	}
}

// SetAttr stores a typed attribute value under name.
func (n *Node) SetAttr(name string, value AttrValue) {
	if n.Attrs == nil {
		n.Attrs = make(map[string]AttrValue)
	}
	n.Attrs[name] = value
}

// Attr retrieves a typed attribute value and whether it was present.
func (n *Node) Attr(name string) (AttrValue, bool) {
	v, ok := n.Attrs[name]
	return v, ok
}

// AttrStringOr returns the string attribute's value, or fallback if
// absent or of a different type.
func (n *Node) AttrStringOr(name, fallback string) string {
	if v, ok := n.Attrs[name]; ok {
		if s, ok := v.String(); ok {
			return s
		}
	}
	return fallback
}

// AttrBoolOr returns the bool attribute's value, or fallback if absent
// or of a different type.
func (n *Node) AttrBoolOr(name string, fallback bool) bool {
	if v, ok := n.Attrs[name]; ok {
		if b, ok := v.Bool(); ok {
			return b
		}
	}
	return fallback
}

// AstText concatenates the Text payload of every inline leaf beneath n,
// in document order — the flattened "what would a reader see" form used
// for title text, cross-reference labels, and diagnostics.
func (n *Node) AstText() string {
	if n.Kind == KindText || n.Kind == KindLiteral {
		return n.Text
	}
	var out []byte
	for _, c := range n.Children {
		out = append(out, c.AstText()...)
	}
	return string(out)
}

// Walk visits n and every descendant in document order, depth-first,
// calling visit(node). If visit returns false the subtree rooted at
// node is skipped (its children are not visited), mirroring the
// SkipChildren traversal signal from spec.md §9.
func (n *Node) Walk(visit func(*Node) bool) {
	if !visit(n) {
		return
	}
	for _, c := range n.Children {
		c.Walk(visit)
	}
}

// FindAll collects every descendant (n included) matching kind, in
// document order.
func (n *Node) FindAll(kind Kind) []*Node {
	var out []*Node
	n.Walk(func(node *Node) bool {
		if node.Kind == kind {
			out = append(out, node)
		}
		return true
	})
	return out
}
