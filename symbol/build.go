package symbol

import (
	"sort"
	"strings"

	"github.com/teranos/dtsgen/diag"
	"github.com/teranos/dtsgen/doclet"
	"github.com/teranos/dtsgen/logger"
)

// Build reconstructs the symbol tree from doclets in two passes.
//
// Pass 1 indexes doclets by longname: the first doclet for a longname creates
// the node and later doclets of the same kind wait on Node.Pending for
// MergeOverloads. Pass 2 attaches nodes to their memberof parents in input
// order. Parents that cannot be found are synthesized as namespaces under the
// nearest ancestor that exists, so every doclet ends up in the tree.
//
// A nil error means no fatal diagnostic was recorded.
func Build(doclets []doclet.Doclet, diags *diag.Collector) (*Tree, error) {
	if diags == nil {
		diags = diag.NewCollector(false)
	}
	b := &builder{
		tree:  &Tree{Index: make(map[string]*Node)},
		diags: diags,
		synth: make(map[*Node][]*Node),
	}

	b.index(doclets)
	if err := diags.Fatal(); err != nil {
		return nil, err
	}

	cyclic := b.detectCycles()
	if err := diags.Fatal(); err != nil {
		return nil, err
	}

	b.link(cyclic)
	b.placeSynthesized()
	b.demoteMembers()

	logger.Debugw("symbol tree built",
		logger.FieldPhase, "build",
		logger.FieldCount, len(b.tree.Index))

	if err := diags.Fatal(); err != nil {
		return nil, err
	}
	return b.tree, nil
}

type builder struct {
	tree  *Tree
	diags *diag.Collector
	order []*Node // nodes in creation order

	// synth holds synthesized containers per parent (nil key for roots);
	// they are placed after the declared children once linking is done.
	synth map[*Node][]*Node
}

// kindOf maps a doclet kind onto a symbol kind.
func kindOf(d *doclet.Doclet) Kind {
	switch d.Kind {
	case doclet.KindModule:
		return KindModule
	case doclet.KindNamespace:
		return KindNamespace
	case doclet.KindClass:
		return KindClass
	case doclet.KindInterface, doclet.KindMixin:
		return KindInterface
	case doclet.KindFunction:
		return KindFunction
	case doclet.KindMember, doclet.KindConstant:
		if d.IsEnum {
			return KindEnum
		}
		return KindMember
	case doclet.KindTypedef:
		return KindTypedef
	}
	return KindNamespace
}

func isCallback(d *doclet.Doclet) bool {
	if d.Kind != doclet.KindTypedef {
		return false
	}
	if len(d.Params) > 0 || len(d.Returns) > 0 {
		return true
	}
	switch strings.TrimSpace(d.Type.String()) {
	case "function", "Function":
		return true
	}
	return false
}

func (b *builder) index(doclets []doclet.Doclet) {
	for i := range doclets {
		d := &doclets[i]

		if d.Kind == doclet.KindPackage {
			continue
		}
		if !d.Kind.Valid() {
			b.diags.Warn(diag.KindUnsupportedKind, d.Longname, d.Location(),
				"doclet kind %q is not supported; skipped", d.Kind)
			continue
		}
		if d.Longname == "" {
			b.diags.Error(diag.KindInvalidInput, d.Name, d.Location(),
				"%s doclet has no longname", d.Kind)
			continue
		}

		kind := kindOf(d)
		if n, ok := b.tree.Index[d.Longname]; ok {
			b.duplicate(n, d, kind)
			continue
		}

		n := &Node{Longname: d.Longname}
		b.apply(n, d, kind)
		b.tree.Index[d.Longname] = n
		b.order = append(b.order, n)
	}
}

// apply sets the node's identity from its primary doclet.
func (b *builder) apply(n *Node, d *doclet.Doclet, kind Kind) {
	n.Kind = kind
	n.Doclet = d
	n.Scope = d.Scope
	n.Name = unquote(d.Name)
	if kind == KindModule {
		n.Name = ModuleName(d.Longname)
	}
	if n.Name == "" {
		_, _, last := SplitLongname(d.Longname)
		n.Name = unquote(last)
	}
	n.Augments = d.Augments
	n.Implements = append(append([]string(nil), d.Implements...), d.Mixes...)
	n.Constant = d.Kind == doclet.KindConstant
	n.Callback = isCallback(d)
}

// duplicate handles a second doclet for an indexed longname. Namespace
// doclets merge into any other kind, and member doclets merge with enums;
// every other pair of differing kinds is fatal.
func (b *builder) duplicate(n *Node, d *doclet.Doclet, kind Kind) {
	switch {
	case kind == n.Kind:
		n.Pending = append(n.Pending, d)

	case n.Kind == KindNamespace:
		b.diags.Info(diag.KindDuplicate, d.Longname, d.Location(),
			"namespace merged into %s declaration", kind)
		b.apply(n, d, kind)

	case kind == KindNamespace:
		b.diags.Info(diag.KindDuplicate, d.Longname, d.Location(),
			"namespace merged into %s declaration", n.Kind)

	case n.Kind == KindMember && kind == KindEnum:
		n.Kind = KindEnum

	case n.Kind == KindEnum && kind == KindMember:

	default:
		b.diags.Error(diag.KindConflictingKinds, d.Longname, d.Location(),
			"declared as both %s and %s", n.Kind, kind)
	}
}

// parentOf returns the longname the node should be attached under, or ""
// for roots.
func parentOf(n *Node) string {
	if n.Kind == KindModule {
		return ""
	}
	d := n.Doclet
	if d.Memberof != "" {
		return d.Memberof
	}
	if d.Scope == doclet.ScopeGlobal || d.Scope == "" {
		return ""
	}
	return ParentLongname(d.Longname)
}

// detectCycles follows memberof chains through the index. Every node on a
// cycle gets a fatal diagnostic; the returned set holds them.
func (b *builder) detectCycles() map[*Node]bool {
	const (
		unvisited = iota
		visiting
		done
	)
	state := make(map[*Node]int, len(b.order))
	cyclic := make(map[*Node]bool)

	for _, start := range b.order {
		if state[start] != unvisited {
			continue
		}
		var path []*Node
		n := start
		for n != nil && state[n] == unvisited {
			state[n] = visiting
			path = append(path, n)
			n = b.tree.Index[parentOf(n)]
		}
		if n != nil && state[n] == visiting {
			// n is on the current path: everything from n onward is a cycle
			i := 0
			for path[i] != n {
				i++
			}
			chain := make([]string, 0, len(path)-i+1)
			for _, c := range path[i:] {
				chain = append(chain, c.Longname)
				cyclic[c] = true
			}
			chain = append(chain, n.Longname)
			for _, c := range path[i:] {
				b.diags.Error(diag.KindCyclicMemberof, c.Longname, c.Location(),
					"memberof chain is cyclic: %s", strings.Join(chain, " -> "))
			}
		}
		for _, p := range path {
			state[p] = done
		}
	}
	return cyclic
}

// link is pass 2: attach every node to its parent in input order.
func (b *builder) link(cyclic map[*Node]bool) {
	for _, n := range b.order {
		if cyclic[n] {
			continue
		}
		parentLn := parentOf(n)
		if parentLn == "" {
			b.tree.Roots = append(b.tree.Roots, n)
			continue
		}
		if parent, ok := b.tree.Index[parentLn]; ok {
			b.attach(parent, n)
			continue
		}

		parent := b.synthesize(parentLn)
		if parent.Kind != KindModule {
			b.diags.WarnWithHint(diag.KindUnresolvedParent, n.Longname, n.Location(),
				"document "+parentLn+" or fix the @memberof tag",
				"parent %s not found; placed in a synthesized namespace", parentLn)
		}
		b.attach(parent, n)
	}
}

func (b *builder) attach(parent, n *Node) {
	n.Parent = parent
	parent.Children = append(parent.Children, n)
}

// synthesize creates the missing container for longname and any missing
// containers above it, up to the nearest node that exists.
func (b *builder) synthesize(longname string) *Node {
	if n, ok := b.tree.Index[longname]; ok {
		return n
	}

	kind := KindNamespace
	if IsModulePath(longname) {
		kind = KindModule
	}
	_, _, name := SplitLongname(longname)
	n := &Node{
		Kind:        kind,
		Name:        unquote(name),
		Longname:    longname,
		Scope:       doclet.ScopeStatic,
		Synthesized: true,
	}
	if kind == KindModule {
		n.Name = ModuleName(longname)
	}
	b.tree.Index[longname] = n

	var parent *Node
	if kind != KindModule {
		if parentLn := ParentLongname(longname); parentLn != "" {
			parent = b.synthesize(parentLn)
		}
	}
	n.Parent = parent
	b.synth[parent] = append(b.synth[parent], n)
	return n
}

// placeSynthesized appends synthesized containers after the declared
// children of their parent, ordered by longname so the result does not
// depend on which child happened to create them.
func (b *builder) placeSynthesized() {
	parents := make([]*Node, 0, len(b.synth))
	for p := range b.synth {
		parents = append(parents, p)
	}
	for _, p := range parents {
		nodes := b.synth[p]
		sort.Slice(nodes, func(i, j int) bool { return nodes[i].Longname < nodes[j].Longname })
		if p == nil {
			b.tree.Roots = append(b.tree.Roots, nodes...)
		} else {
			p.Children = append(p.Children, nodes...)
		}
	}
}

// demoteMembers turns members that own children into namespaces, since a
// variable cannot also be a container.
func (b *builder) demoteMembers() {
	b.tree.Walk(func(n *Node) {
		if n.Kind != KindMember || len(n.Children) == 0 {
			return
		}
		b.diags.Warn(diag.KindMemberChildren, n.Longname, n.Location(),
			"member has %d documented children; declared as a namespace", len(n.Children))
		n.Kind = KindNamespace
	})
}
