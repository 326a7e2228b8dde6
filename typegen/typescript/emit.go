package typescript

import (
	"strconv"
	"strings"

	"github.com/teranos/dtsgen/doclet"
	"github.com/teranos/dtsgen/errors"
	"github.com/teranos/dtsgen/symbol"
	"github.com/teranos/dtsgen/typeexpr"
)

type emitter struct {
	opts         Options
	names        map[*symbol.Node]string
	res          *resolver
	sb           strings.Builder
	declarations int
	err          error
}

func (e *emitter) writeLine(depth int, s string) {
	e.sb.WriteString(strings.Repeat("\t", depth))
	e.sb.WriteString(s)
	e.sb.WriteString("\n")
}

// declare is the ambient keyword, only legal outside blocks.
func (e *emitter) declare(depth int) string {
	if depth == 0 {
		return "declare "
	}
	return ""
}

func (e *emitter) declaration(n *symbol.Node, depth int) {
	e.declarations++
	switch n.Kind {
	case symbol.KindModule:
		e.module(n, depth)
	case symbol.KindNamespace:
		e.namespace(n, depth)
	case symbol.KindClass:
		e.class(n, depth)
	case symbol.KindInterface:
		e.iface(n, depth)
	case symbol.KindFunction:
		e.function(n, depth)
	case symbol.KindMember:
		e.variable(n, depth)
	case symbol.KindTypedef:
		e.typedef(n, depth)
	case symbol.KindEnum:
		e.enum(n, depth)
	default:
		e.err = errors.AssertionFailedf("unexpected symbol kind %d for %s", int(n.Kind), n.Longname)
	}
}

func (e *emitter) block(nodes []*symbol.Node, depth int) {
	for _, n := range nodes {
		e.declaration(n, depth)
	}
}

func (e *emitter) module(n *symbol.Node, depth int) {
	e.comment(depth, docLines(n.Doclet))
	e.writeLine(depth, "declare module "+quote(e.names[n])+" {")
	e.block(n.Children, depth+1)
	e.writeLine(depth, "}")
}

func (e *emitter) namespace(n *symbol.Node, depth int) {
	e.comment(depth, docLines(n.Doclet))
	e.writeLine(depth, e.declare(depth)+"namespace "+e.names[n]+" {")
	e.block(n.Children, depth+1)
	e.writeLine(depth, "}")
}

// companion prints the children of n that cannot live in its body in a
// namespace of the same name. Body members with children of their own get
// a nested namespace.
func (e *emitter) companion(n *symbol.Node, depth int) {
	kids := companions(n)
	var nested []*symbol.Node
	for _, c := range n.Children {
		if placementOf(c) != inBlock && len(companions(c)) > 0 {
			nested = append(nested, c)
		}
	}
	if len(kids) == 0 && len(nested) == 0 {
		return
	}

	e.writeLine(depth, e.declare(depth)+"namespace "+e.names[n]+" {")
	e.block(kids, depth+1)
	for _, c := range nested {
		e.writeLine(depth+1, "namespace "+bindingName(e.names[c])+" {")
		e.block(companions(c), depth+2)
		e.writeLine(depth+1, "}")
	}
	e.writeLine(depth, "}")
}

func (e *emitter) class(n *symbol.Node, depth int) {
	abstract := isVirtual(n)
	members := bodyMembers(n, inStatic, inInstance)
	for _, m := range members {
		if m.Kind == symbol.KindFunction && isVirtual(m) {
			abstract = true
		}
	}

	e.comment(depth, classDocLines(n.Doclet))
	head := e.declare(depth)
	if abstract {
		head += "abstract "
	}
	head += "class " + e.names[n]
	extends, implements := e.classHeritage(n)
	if extends != "" {
		head += " extends " + extends
	}
	if len(implements) > 0 {
		head += " implements " + strings.Join(implements, ", ")
	}
	e.writeLine(depth, head+" {")

	for _, sig := range n.Signatures {
		names := paramNames(sig.Params)
		if sig.Doclet != nil && sig.Doclet.Classdesc != "" {
			e.comment(depth+1, e.signatureDocLines(sig, names))
		} else {
			e.comment(depth+1, paramDocLines(sig, names))
		}
		e.writeLine(depth+1, "constructor("+e.params(sig.Params, names, n)+");")
	}
	for _, m := range members {
		e.classMember(m, depth+1, abstract)
	}

	e.writeLine(depth, "}")
	e.companion(n, depth)
}

// classHeritage splits supertypes into the single extends target and the
// implemented interfaces. The first augmented class (or unknown name) is
// extended; everything else is implemented.
func (e *emitter) classHeritage(n *symbol.Node) (string, []string) {
	var extends string
	var implements []string
	seen := make(map[string]bool)
	for _, a := range n.Augments {
		ref := e.res.supertype(a, n)
		if seen[ref] {
			continue
		}
		seen[ref] = true
		target := e.res.lookup(a)
		if extends == "" && (target == nil || target.Kind == symbol.KindClass) {
			extends = ref
			continue
		}
		implements = append(implements, ref)
	}
	for _, i := range n.Implements {
		ref := e.res.supertype(i, n)
		if !seen[ref] {
			seen[ref] = true
			implements = append(implements, ref)
		}
	}
	return extends, implements
}

func (e *emitter) interfaceHeritage(n *symbol.Node) []string {
	var out []string
	seen := make(map[string]bool)
	for _, a := range append(append([]string(nil), n.Augments...), n.Implements...) {
		ref := e.res.supertype(a, n)
		if !seen[ref] {
			seen[ref] = true
			out = append(out, ref)
		}
	}
	return out
}

func (e *emitter) classMember(m *symbol.Node, depth int, abstractClass bool) {
	mods := ""
	if m.Doclet != nil {
		switch m.Doclet.Access {
		case "private":
			mods += "private "
		case "protected":
			mods += "protected "
		}
	}
	if m.Scope == doclet.ScopeStatic {
		mods += "static "
	}
	name := typeexpr.PropertyName(e.names[m])

	switch m.Kind {
	case symbol.KindFunction:
		if abstractClass && isVirtual(m) && m.Scope == doclet.ScopeInstance {
			mods += "abstract "
		}
		for _, sig := range m.Signatures {
			names := paramNames(sig.Params)
			e.comment(depth, e.signatureDocLines(sig, names))
			e.writeLine(depth, mods+name+e.signature(sig, names, m)+";")
		}
	case symbol.KindMember:
		if isReadonly(m) {
			mods += "readonly "
		}
		e.comment(depth, docLines(m.Doclet))
		e.writeLine(depth, mods+name+": "+e.typ(m.Type, m)+";")
	}
}

func (e *emitter) iface(n *symbol.Node, depth int) {
	e.comment(depth, docLines(n.Doclet))
	head := "interface " + e.names[n]
	if supers := e.interfaceHeritage(n); len(supers) > 0 {
		head += " extends " + strings.Join(supers, ", ")
	}
	e.writeLine(depth, head+" {")
	for _, m := range bodyMembers(n, inInstance) {
		e.interfaceMember(m, depth+1)
	}
	e.writeLine(depth, "}")
	e.companion(n, depth)
}

func (e *emitter) interfaceMember(m *symbol.Node, depth int) {
	name := typeexpr.PropertyName(e.names[m])
	switch m.Kind {
	case symbol.KindFunction:
		for _, sig := range m.Signatures {
			names := paramNames(sig.Params)
			e.comment(depth, e.signatureDocLines(sig, names))
			e.writeLine(depth, name+e.signature(sig, names, m)+";")
		}
	case symbol.KindMember:
		mods := ""
		if isReadonly(m) {
			mods = "readonly "
		}
		e.comment(depth, docLines(m.Doclet))
		e.writeLine(depth, mods+name+": "+e.typ(m.Type, m)+";")
	}
}

func (e *emitter) function(n *symbol.Node, depth int) {
	for _, sig := range n.Signatures {
		names := paramNames(sig.Params)
		e.comment(depth, e.signatureDocLines(sig, names))
		e.writeLine(depth, e.declare(depth)+"function "+e.names[n]+e.signature(sig, names, n)+";")
	}
	e.companion(n, depth)
}

func (e *emitter) variable(n *symbol.Node, depth int) {
	keyword := "let "
	if n.Constant || isReadonly(n) {
		keyword = "const "
	}
	e.comment(depth, docLines(n.Doclet))
	e.writeLine(depth, e.declare(depth)+keyword+e.names[n]+": "+e.typ(n.Type, n)+";")
	e.companion(n, depth)
}

func (e *emitter) typedef(n *symbol.Node, depth int) {
	name := e.names[n]
	e.comment(depth, docLines(n.Doclet))

	switch {
	case n.Callback:
		forms := make([]string, len(n.Signatures))
		for i, sig := range n.Signatures {
			names := paramNames(sig.Params)
			forms[i] = "(" + e.params(sig.Params, names, n) + ") => " + e.returns(sig, n)
		}
		alias := forms[0]
		if len(forms) > 1 {
			alias = "(" + strings.Join(forms, ") & (") + ")"
		}
		e.writeLine(depth, e.declare(depth)+"type "+name+" = "+alias+";")
	case isObjectTypedef(n):
		e.writeLine(depth, "interface "+name+" {")
		for _, p := range n.Properties {
			e.property(p, n, depth+1)
		}
		for _, m := range bodyMembers(n, inInstance) {
			e.interfaceMember(m, depth+1)
		}
		e.writeLine(depth, "}")
	default:
		e.writeLine(depth, e.declare(depth)+"type "+name+" = "+e.typ(n.Type, n)+";")
	}
	e.companion(n, depth)
}

func (e *emitter) property(p symbol.Param, owner *symbol.Node, depth int) {
	if p.Description != "" {
		e.comment(depth, splitLines(p.Description))
	}
	t := p.Type
	if p.Nullable {
		t = withMember(t, "null")
	}
	opt := ""
	if p.Optional {
		opt = "?"
	}
	e.writeLine(depth, typeexpr.PropertyName(p.Name)+opt+": "+e.typ(t, owner)+";")
}

func (e *emitter) enum(n *symbol.Node, depth int) {
	e.comment(depth, docLines(n.Doclet))
	e.writeLine(depth, e.declare(depth)+"enum "+e.names[n]+" {")
	for _, m := range bodyMembers(n, inEnum) {
		e.comment(depth+1, docLines(m.Doclet))
		line := typeexpr.PropertyName(e.names[m])
		if v, ok := enumValue(m); ok {
			line += " = " + v
		}
		e.writeLine(depth+1, line+",")
	}
	e.writeLine(depth, "}")
	e.companion(n, depth)
}

func (e *emitter) signature(sig *symbol.Signature, names []string, owner *symbol.Node) string {
	return "(" + e.params(sig.Params, names, owner) + "): " + e.returns(sig, owner)
}

func (e *emitter) returns(sig *symbol.Signature, owner *symbol.Node) string {
	if sig.Returns == nil {
		return "void"
	}
	return e.typ(sig.Returns, owner)
}

// params renders a parameter list. An optional parameter followed by a
// required one cannot use ? and is widened to T | undefined instead.
func (e *emitter) params(params []symbol.Param, names []string, owner *symbol.Node) string {
	lastRequired := -1
	for i, p := range params {
		if !p.Optional && !p.Variadic {
			lastRequired = i
		}
	}

	parts := make([]string, len(params))
	for i, p := range params {
		t := p.Type
		if p.Nullable {
			t = withMember(t, "null")
		}
		switch {
		case p.Variadic && i == len(params)-1:
			parts[i] = "..." + names[i] + ": " + e.typ(typeexpr.Array{Elem: t}, owner)
		case p.Variadic:
			parts[i] = names[i] + ": " + e.typ(typeexpr.Array{Elem: t}, owner)
		case p.Optional && i < lastRequired:
			parts[i] = names[i] + ": " + e.typ(withMember(t, "undefined"), owner)
		case p.Optional:
			parts[i] = names[i] + "?: " + e.typ(t, owner)
		default:
			parts[i] = names[i] + ": " + e.typ(t, owner)
		}
	}
	return strings.Join(parts, ", ")
}

func (e *emitter) typ(t typeexpr.Type, from *symbol.Node) string {
	return typeexpr.Print(t, e.res.forNode(from))
}

// withMember adds a primitive to t's union unless it is already there.
func withMember(t typeexpr.Type, name string) typeexpr.Type {
	if t == nil {
		t = typeexpr.Any
	}
	members := []typeexpr.Type{t}
	if u, ok := t.(typeexpr.Union); ok {
		members = append([]typeexpr.Type(nil), u.Types...)
	}
	for _, m := range members {
		if n, ok := m.(typeexpr.Named); ok && (n.Name == name || n.Name == "any") {
			return t
		}
	}
	return typeexpr.Union{Types: append(members, typeexpr.Named{Name: name})}
}

func isVirtual(n *symbol.Node) bool {
	return n.Doclet != nil && n.Doclet.Virtual
}

func isReadonly(n *symbol.Node) bool {
	return n.Constant || (n.Doclet != nil && n.Doclet.Readonly)
}

// enumValue returns the initializer of an enum member from its default
// value. Only numbers and strings are representable.
func enumValue(m *symbol.Node) (string, bool) {
	if m.Doclet == nil {
		return "", false
	}
	switch v := m.Doclet.DefaultValue.(type) {
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64), true
	case int:
		return strconv.Itoa(v), true
	case int64:
		return strconv.FormatInt(v, 10), true
	case uint64:
		return strconv.FormatUint(v, 10), true
	case string:
		return quote(v), true
	}
	return "", false
}
