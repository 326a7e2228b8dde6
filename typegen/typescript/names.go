package typescript

import (
	"strconv"
	"strings"
	"unicode"

	"golang.org/x/text/unicode/norm"

	"github.com/teranos/dtsgen/diag"
	"github.com/teranos/dtsgen/doclet"
	"github.com/teranos/dtsgen/symbol"
	"github.com/teranos/dtsgen/typeexpr"
)

// reservedWords cannot be used as declaration or parameter names.
var reservedWords = map[string]bool{
	"break": true, "case": true, "catch": true, "class": true, "const": true,
	"continue": true, "debugger": true, "default": true, "delete": true,
	"do": true, "else": true, "enum": true, "export": true, "extends": true,
	"false": true, "finally": true, "for": true, "function": true, "if": true,
	"import": true, "in": true, "instanceof": true, "new": true, "null": true,
	"return": true, "super": true, "switch": true, "this": true, "throw": true,
	"true": true, "try": true, "typeof": true, "var": true, "void": true,
	"while": true, "with": true,
	// strict mode
	"implements": true, "interface": true, "let": true, "package": true,
	"private": true, "protected": true, "public": true, "static": true,
	"yield": true, "arguments": true, "eval": true, "await": true,
}

// reservedTypeNames cannot name a class, interface, type alias or enum.
var reservedTypeNames = map[string]bool{
	"any": true, "boolean": true, "number": true, "string": true,
	"symbol": true, "never": true, "object": true, "unknown": true,
	"bigint": true, "undefined": true,
}

// placement is where a node's declaration is printed relative to its parent.
type placement int

const (
	// inBlock is a module, namespace or companion namespace body.
	inBlock placement = iota
	inStatic
	inInstance
	inEnum
)

// placementOf decides whether n lives in its parent's body or in the block
// (or companion namespace) that holds its parent's children.
func placementOf(n *symbol.Node) placement {
	p := n.Parent
	if p == nil || n.Synthesized {
		return inBlock
	}
	member := n.Kind == symbol.KindFunction || n.Kind == symbol.KindMember
	switch p.Kind {
	case symbol.KindClass:
		if member && n.Scope == doclet.ScopeInstance {
			return inInstance
		}
		if member && n.Scope == doclet.ScopeStatic {
			return inStatic
		}
	case symbol.KindInterface:
		if member && n.Scope == doclet.ScopeInstance {
			return inInstance
		}
	case symbol.KindTypedef:
		if member && n.Scope == doclet.ScopeInstance && isObjectTypedef(p) {
			return inInstance
		}
	case symbol.KindEnum:
		if n.Kind == symbol.KindMember {
			return inEnum
		}
	}
	return inBlock
}

// isObjectTypedef reports whether a typedef is printed as an interface.
func isObjectTypedef(n *symbol.Node) bool {
	return n.Kind == symbol.KindTypedef && !n.Callback && (len(n.Properties) > 0 || n.Synthesized)
}

// companions returns the children of n that are printed in a block: for
// containers the body itself, for everything else a same-named namespace.
func companions(n *symbol.Node) []*symbol.Node {
	var out []*symbol.Node
	for _, c := range n.Children {
		if placementOf(c) == inBlock {
			out = append(out, c)
		}
	}
	return out
}

func bodyMembers(n *symbol.Node, where ...placement) []*symbol.Node {
	var out []*symbol.Node
	for _, c := range n.Children {
		p := placementOf(c)
		for _, w := range where {
			if p == w {
				out = append(out, c)
				break
			}
		}
	}
	return out
}

type scopeKey struct {
	parent *symbol.Node
	where  placement
}

// namer assigns every node the name it is declared under. It runs before
// rendering so references resolve to the final, suffixed names.
type namer struct {
	diags *diag.Collector
	names map[*symbol.Node]string
	taken map[scopeKey]map[string]bool
	// values holds the value names a class exposes through its statics
	// and its companion namespace, which share one identifier space.
	values map[*symbol.Node]map[string]bool
}

func assignNames(tree *symbol.Tree, diags *diag.Collector) map[*symbol.Node]string {
	nm := &namer{
		diags: diags,
		names:  make(map[*symbol.Node]string),
		taken:  make(map[scopeKey]map[string]bool),
		values: make(map[*symbol.Node]map[string]bool),
	}
	tree.Walk(nm.assign)
	return nm.names
}

func (nm *namer) assign(n *symbol.Node) {
	if n.Kind == symbol.KindModule {
		nm.names[n] = symbol.ModuleName(n.Longname)
		return
	}

	where := placementOf(n)
	name := norm.NFC.String(n.Name)

	if where == inBlock {
		name = bindingName(name)
		reserved := reservedWords[name]
		if isTypeDeclaration(n) && reservedTypeNames[name] {
			reserved = true
		}
		if reserved {
			nm.diags.Warn(diag.KindReservedWord, n.Longname, n.Location(),
				"%q is a reserved word; declared as %s_", name, name)
			name += "_"
		}
	}

	key := scopeKey{parent: n.Parent, where: where}
	if nm.taken[key] == nil {
		nm.taken[key] = make(map[string]bool)
	}
	taken := nm.taken[key]

	var values map[string]bool
	if n.Parent != nil && n.Parent.Kind == symbol.KindClass &&
		(where == inStatic || where == inBlock && declaresValue(n)) {
		if nm.values[n.Parent] == nil {
			nm.values[n.Parent] = make(map[string]bool)
		}
		values = nm.values[n.Parent]
	}

	used := func(s string) bool { return taken[s] || values[s] }
	if used(name) {
		base := name
		for i := 2; used(name); i++ {
			name = base + "_" + strconv.Itoa(i)
		}
		nm.diags.Warn(diag.KindNameCollision, n.Longname, n.Location(),
			"%q is already declared in this scope; declared as %s", base, name)
	}
	taken[name] = true
	if values != nil {
		values[name] = true
	}
	nm.names[n] = name
}

// declaresValue reports whether n's declaration binds a runtime value.
func declaresValue(n *symbol.Node) bool {
	switch n.Kind {
	case symbol.KindFunction, symbol.KindMember, symbol.KindClass,
		symbol.KindNamespace, symbol.KindEnum:
		return true
	}
	return false
}

func isTypeDeclaration(n *symbol.Node) bool {
	switch n.Kind {
	case symbol.KindClass, symbol.KindInterface, symbol.KindTypedef, symbol.KindEnum:
		return true
	}
	return false
}

// bindingName turns an arbitrary symbol name into an identifier by
// replacing every character that cannot appear in one.
func bindingName(name string) string {
	if typeexpr.IsIdentifier(name) {
		return name
	}
	name = strings.Trim(name, `"'`)
	var sb strings.Builder
	for i, r := range name {
		switch {
		case r == '_' || r == '$' || unicode.IsLetter(r):
			sb.WriteRune(r)
		case unicode.IsDigit(r):
			if i == 0 {
				sb.WriteRune('_')
			}
			sb.WriteRune(r)
		default:
			sb.WriteRune('_')
		}
	}
	if sb.Len() == 0 {
		return "_"
	}
	return sb.String()
}

// paramNames returns legal, distinct names for a parameter list.
func paramNames(params []symbol.Param) []string {
	out := make([]string, len(params))
	seen := make(map[string]bool, len(params))
	for i, p := range params {
		name := bindingName(norm.NFC.String(p.Name))
		if reservedWords[name] {
			name += "_"
		}
		if seen[name] {
			base := name
			for k := 2; seen[name]; k++ {
				name = base + "_" + strconv.Itoa(k)
			}
		}
		seen[name] = true
		out[i] = name
	}
	return out
}
