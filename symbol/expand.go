package symbol

import (
	"strconv"
	"strings"
	"unicode"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/teranos/dtsgen/diag"
	"github.com/teranos/dtsgen/doclet"
	"github.com/teranos/dtsgen/logger"
	"github.com/teranos/dtsgen/typeexpr"
)

// ExpandPropertyParams replaces dotted parameters (opts.a, opts.a.b,
// items[].name) with a synthesized typedef describing the root parameter.
//
// The typedef is named after the owner and the root parameter, becomes a
// sibling of the owner placed right after it, and the root parameter is
// retyped to reference it (or an array of it for items[] roots). Dotted
// properties of object typedefs are folded into nested inline records.
func ExpandPropertyParams(tree *Tree, diags *diag.Collector) {
	e := &expander{
		tree:  tree,
		diags: diags,
		used:  make(map[string]bool),
		title: titleCaser(),
	}

	var owners []*Node
	tree.Walk(func(n *Node) {
		e.used[n.Name] = true
		if len(n.Signatures) > 0 {
			owners = append(owners, n)
		}
		if n.Kind == KindTypedef && len(n.Properties) > 0 {
			e.foldProperties(n)
		}
	})

	for _, owner := range owners {
		for _, sig := range owner.Signatures {
			e.expandSignature(owner, sig)
		}
	}

	logger.Debugw("property parameters expanded",
		logger.FieldPhase, "expand",
		logger.FieldCount, e.synthesized)
}

type expander struct {
	tree        *Tree
	diags       *diag.Collector
	used        map[string]bool
	title       cases.Caser
	synthesized int
}

func (e *expander) expandSignature(owner *Node, sig *Signature) {
	loc := owner.Location()
	if sig.Doclet != nil {
		loc = sig.Doclet.Location()
	}

	params, shapes := fold(sig.Params, owner.Longname, loc, e.diags)
	for i, shape := range shapes {
		if shape == nil || len(shape.children) == 0 {
			continue
		}
		td := e.synthesize(owner, params[i].Name, shape)
		var t typeexpr.Type = typeexpr.Named{Name: td.Longname}
		if shape.isArray() {
			t = typeexpr.Array{Elem: t}
		}
		params[i].Type = t
	}
	sig.Params = params
}

func (e *expander) foldProperties(n *Node) {
	props, shapes := fold(n.Properties, n.Longname, n.Location(), e.diags)
	for i, shape := range shapes {
		if shape != nil && len(shape.children) > 0 {
			props[i].Type = shape.inline()
		}
	}
	n.Properties = props
}

// synthesize creates the typedef for one root parameter and inserts it
// after its owner.
func (e *expander) synthesize(owner *Node, root string, shape *propNode) *Node {
	base := e.pascal(owner.Name) + e.pascal(root)
	if shape.isArray() {
		base += "Item"
	}

	prefix := ""
	if owner.Parent != nil {
		prefix = owner.Parent.Longname + "~"
	}

	name := base
	for i := 2; e.used[name] || e.tree.Index[prefix+name] != nil; i++ {
		name = base + strconv.Itoa(i)
	}
	e.used[name] = true

	td := &Node{
		Kind:        KindTypedef,
		Name:        name,
		Longname:    prefix + name,
		Scope:       doclet.ScopeInner,
		Properties:  shape.fields(),
		Synthesized: true,
		Owner:       owner,
	}
	e.tree.Index[td.Longname] = td
	e.tree.insertAfter(owner, td)
	e.synthesized++
	return td
}

func titleCaser() cases.Caser {
	return cases.Title(language.Und, cases.NoLower)
}

// pascal upper-cases the first letter of every word in s and drops the
// characters that separate words.
func (e *expander) pascal(s string) string {
	words := strings.FieldsFunc(s, func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})
	var sb strings.Builder
	for _, w := range words {
		sb.WriteString(e.title.String(w))
	}
	return sb.String()
}

// propNode is one level of a dotted parameter path.
type propNode struct {
	param    Param
	declared bool
	array    bool // written as name[] in a path
	children []*propNode
}

func (p *propNode) child(name string) *propNode {
	for _, c := range p.children {
		if c.param.Name == name {
			return c
		}
	}
	c := &propNode{param: Param{Name: name, Type: typeexpr.Any}}
	p.children = append(p.children, c)
	return c
}

func (p *propNode) isArray() bool {
	if p.array {
		return true
	}
	_, ok := p.param.Type.(typeexpr.Array)
	return ok
}

// fields returns the properties described by p's children.
func (p *propNode) fields() []Param {
	out := make([]Param, 0, len(p.children))
	for _, c := range p.children {
		f := c.param
		if len(c.children) > 0 {
			f.Type = c.inline()
		}
		if f.Type == nil {
			f.Type = typeexpr.Any
		}
		out = append(out, f)
	}
	return out
}

// inline returns p's shape as an inline record, or an array of one.
func (p *propNode) inline() typeexpr.Type {
	rec := typeexpr.Record{}
	for _, f := range p.fields() {
		t := f.Type
		if f.Nullable {
			t = typeexpr.Union{Types: append(unionMembers(t), typeexpr.Named{Name: "null"})}
		}
		rec.Fields = append(rec.Fields, typeexpr.Field{Name: f.Name, Type: t, Optional: f.Optional})
	}
	if p.isArray() {
		return typeexpr.Array{Elem: rec}
	}
	return rec
}

// splitPath splits a dotted parameter name into its segments, reporting for
// each whether it carried the [] array marker.
func splitPath(name string) ([]string, []bool) {
	segs := strings.Split(name, ".")
	arrays := make([]bool, len(segs))
	for i, s := range segs {
		if strings.HasSuffix(s, "[]") {
			segs[i] = strings.TrimSuffix(s, "[]")
			arrays[i] = true
		}
	}
	return segs, arrays
}

// fold groups dotted entries under their root. It returns the root entries
// in order together with, for each, the tree of its sub-properties (nil for
// plain entries). Roots that are only referenced through sub-properties are
// synthesized as any.
func fold(params []Param, longname string, loc diag.Location, diags *diag.Collector) ([]Param, []*propNode) {
	var top []Param
	var shapes []*propNode
	byRoot := make(map[string]int)
	firstRef := make(map[int]string)

	for _, p := range params {
		segs, arrays := splitPath(p.Name)
		if len(segs) == 1 || segs[0] == "" {
			key := p.Name
			if len(segs) == 1 {
				key = segs[0]
			}
			if i, ok := byRoot[key]; ok && shapes[i] != nil && !shapes[i].declared {
				// root documented after its properties
				top[i] = p
				shapes[i].param = p
				shapes[i].declared = true
				continue
			}
			byRoot[key] = len(top)
			top = append(top, p)
			shapes = append(shapes, nil)
			continue
		}

		root := segs[0]
		i, ok := byRoot[root]
		if !ok {
			i = len(top)
			byRoot[root] = i
			firstRef[i] = p.Name
			top = append(top, Param{Name: root, Type: typeexpr.Any})
			shapes = append(shapes, &propNode{param: top[i]})
		}
		if shapes[i] == nil {
			shapes[i] = &propNode{param: top[i], declared: true}
		}

		node := shapes[i]
		if arrays[0] {
			node.array = true
		}
		for k := 1; k < len(segs); k++ {
			node = node.child(segs[k])
			if arrays[k] && k < len(segs)-1 {
				node.array = true
			}
		}
		leaf := p
		leaf.Name = segs[len(segs)-1]
		node.param = leaf
		node.declared = true
	}

	for i, shape := range shapes {
		if shape == nil || shape.declared {
			continue
		}
		root := top[i].Name
		diags.WarnWithHint(diag.KindMissingRootParam, longname, loc,
			"add @param {Object} "+root,
			"%s is documented but %s is not; assuming an object", firstRef[i], root)
	}
	return top, shapes
}
