// Package symbol reconstructs the symbol hierarchy from flat doclets and
// prepares it for emission.
//
// The pipeline is Build, MergeOverloads, ExpandPropertyParams. Nodes are
// mutated in place by each phase and are read-only afterwards.
package symbol

import (
	"github.com/teranos/dtsgen/diag"
	"github.com/teranos/dtsgen/doclet"
	"github.com/teranos/dtsgen/typeexpr"
)

// Kind is the symbol kind. The set is closed.
type Kind int

const (
	KindNamespace Kind = iota
	KindModule
	KindClass
	KindInterface
	KindFunction
	KindMember
	KindTypedef
	KindEnum
)

func (k Kind) String() string {
	switch k {
	case KindNamespace:
		return "namespace"
	case KindModule:
		return "module"
	case KindClass:
		return "class"
	case KindInterface:
		return "interface"
	case KindFunction:
		return "function"
	case KindMember:
		return "member"
	case KindTypedef:
		return "typedef"
	case KindEnum:
		return "enum"
	default:
		return "invalid"
	}
}

// IsContainer reports whether nodes of kind k are pure declaration blocks.
func (k Kind) IsContainer() bool {
	return k == KindNamespace || k == KindModule
}

// Node is one symbol in the tree.
type Node struct {
	Kind     Kind
	Name     string
	Longname string
	Scope    doclet.Scope

	// Doclet is the first doclet seen for this longname; nil when synthesized.
	Doclet *doclet.Doclet
	// Pending holds later same-kind doclets until MergeOverloads runs.
	Pending []*doclet.Doclet

	// Signatures are the call or construct signatures, in first-seen order.
	Signatures []*Signature
	// Type is the declared type of a member or alias typedef.
	Type typeexpr.Type
	// Properties are the fields of an object typedef.
	Properties []Param

	Parent   *Node
	Children []*Node

	Augments   []string
	Implements []string

	Constant    bool
	Callback    bool
	Synthesized bool
	// Owner is the node whose parameter a synthesized typedef describes.
	Owner *Node
}

// Signature is one documented call form.
type Signature struct {
	Params  []Param
	Returns typeexpr.Type // nil is void
	Doclet  *doclet.Doclet
}

// Param is a signature parameter or an object typedef field.
type Param struct {
	Name        string
	Type        typeexpr.Type
	Optional    bool
	Nullable    bool
	Variadic    bool
	Description string
	Default     any
}

// Location returns the source location of the node's doclet.
func (n *Node) Location() diag.Location {
	if n == nil || n.Doclet == nil {
		return diag.Location{}
	}
	return n.Doclet.Location()
}

// IsStatic reports whether the node lives on its parent rather than on
// instances of it.
func (n *Node) IsStatic() bool {
	return n.Scope != doclet.ScopeInstance
}

// ChildIndex returns the position of c among n's children, or -1.
func (n *Node) ChildIndex(c *Node) int {
	for i, child := range n.Children {
		if child == c {
			return i
		}
	}
	return -1
}

// Tree is the arena of nodes produced by Build.
type Tree struct {
	Roots []*Node
	Index map[string]*Node
}

// Lookup returns the node with the given longname.
func (t *Tree) Lookup(longname string) (*Node, bool) {
	n, ok := t.Index[longname]
	return n, ok
}

// Walk visits every node depth first in emission order.
func (t *Tree) Walk(fn func(*Node)) {
	var visit func(nodes []*Node)
	visit = func(nodes []*Node) {
		for _, n := range nodes {
			fn(n)
			visit(n.Children)
		}
	}
	visit(t.Roots)
}

// siblings returns the slice that holds n: its parent's children or the
// roots.
func (t *Tree) siblings(n *Node) []*Node {
	if n.Parent == nil {
		return t.Roots
	}
	return n.Parent.Children
}

// insertAfter places node directly after anchor among anchor's siblings.
func (t *Tree) insertAfter(anchor, node *Node) {
	node.Parent = anchor.Parent
	list := t.siblings(anchor)
	pos := len(list)
	for i, s := range list {
		if s == anchor {
			pos = i + 1
			break
		}
	}
	// skip over earlier insertions for the same anchor so their order holds
	for pos < len(list) && list[pos].Owner == anchor {
		pos++
	}
	list = append(list, nil)
	copy(list[pos+1:], list[pos:])
	list[pos] = node
	if anchor.Parent == nil {
		t.Roots = list
	} else {
		anchor.Parent.Children = list
	}
}
