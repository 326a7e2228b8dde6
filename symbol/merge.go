package symbol

import (
	"strconv"
	"strings"

	"github.com/teranos/dtsgen/diag"
	"github.com/teranos/dtsgen/doclet"
	"github.com/teranos/dtsgen/logger"
	"github.com/teranos/dtsgen/typeexpr"
)

// MergeOverloads turns the doclets collected on each node into signatures
// and translated types.
//
// Functions, classes and callback typedefs get one signature per doclet in
// first-seen order. Signatures are never combined or deduplicated, even when
// one only adds a trailing optional parameter. For every other kind the first
// doclet wins and later ones are reported as duplicates.
func MergeOverloads(tree *Tree, diags *diag.Collector) error {
	if diags == nil {
		diags = diag.NewCollector(false)
	}

	overloads := 0
	tree.Walk(func(n *Node) {
		if n.Doclet != nil {
			mergeNode(n, diags)
		}
		if len(n.Signatures) > 1 {
			overloads++
		}
		if n.Kind == KindFunction && len(n.Signatures) == 0 {
			diags.Error(diag.KindEmptySignatures, n.Longname, n.Location(),
				"function has no call signatures")
		}
	})

	logger.Debugw("overloads merged",
		logger.FieldPhase, "merge",
		logger.FieldCount, overloads)

	return diags.Fatal()
}

func mergeNode(n *Node, diags *diag.Collector) {
	docs := append([]*doclet.Doclet{n.Doclet}, n.Pending...)
	n.Pending = nil

	switch n.Kind {
	case KindFunction, KindClass:
		n.Signatures = signatures(n, docs, diags)
	case KindTypedef:
		if n.Callback {
			n.Signatures = signatures(n, docs, diags)
			break
		}
		reportDuplicates(n, docs[1:], diags)
		n.Type = translateType(n.Doclet.Type, n.Longname, n.Location(), diags)
		n.Properties = convertParams(n.Doclet.Properties, n.Longname, n.Location(), diags)
	case KindMember, KindEnum:
		reportDuplicates(n, docs[1:], diags)
		n.Type = translateType(n.Doclet.Type, n.Longname, n.Location(), diags)
	case KindInterface, KindNamespace, KindModule:
		reportDuplicates(n, docs[1:], diags)
	}
}

func reportDuplicates(n *Node, extra []*doclet.Doclet, diags *diag.Collector) {
	for _, d := range extra {
		if n.Kind.IsContainer() {
			diags.Info(diag.KindDuplicate, n.Longname, d.Location(),
				"%s documented more than once", n.Kind)
			continue
		}
		diags.Warn(diag.KindDuplicate, n.Longname, d.Location(),
			"%s documented more than once; keeping the first declaration", n.Kind)
	}
}

func signatures(n *Node, docs []*doclet.Doclet, diags *diag.Collector) []*Signature {
	sigs := make([]*Signature, 0, len(docs))
	for _, d := range docs {
		sigs = append(sigs, newSignature(n, d, diags))
	}
	return sigs
}

func newSignature(n *Node, d *doclet.Doclet, diags *diag.Collector) *Signature {
	loc := d.Location()
	sig := &Signature{
		Params: convertParams(d.Params, n.Longname, loc, diags),
		Doclet: d,
	}
	if n.Kind == KindClass {
		return sig
	}

	var returns []typeexpr.Type
	nullable := false
	for _, r := range d.Returns {
		if r.Type == nil {
			continue
		}
		t, mods := translateWithModifiers(r.Type, n.Longname, loc, diags)
		if mods.Nullable || (r.Nullable != nil && *r.Nullable) {
			nullable = true
		}
		returns = append(returns, t)
	}
	switch len(returns) {
	case 0:
	case 1:
		sig.Returns = returns[0]
	default:
		sig.Returns = typeexpr.Union{Types: returns}
	}
	if nullable && sig.Returns != nil {
		sig.Returns = typeexpr.Union{Types: append(unionMembers(sig.Returns), typeexpr.Named{Name: "null"})}
	}
	return sig
}

func unionMembers(t typeexpr.Type) []typeexpr.Type {
	if u, ok := t.(typeexpr.Union); ok {
		return append([]typeexpr.Type(nil), u.Types...)
	}
	return []typeexpr.Type{t}
}

// convertParams translates doclet parameters. Dotted names are kept as they
// are for ExpandPropertyParams.
func convertParams(params []doclet.Param, longname string, loc diag.Location, diags *diag.Collector) []Param {
	if len(params) == 0 {
		return nil
	}
	out := make([]Param, 0, len(params))
	for i, p := range params {
		t, mods := translateWithModifiers(p.Type, longname, loc, diags)
		name := strings.TrimSpace(p.Name)
		if strings.HasPrefix(name, "[") && strings.HasSuffix(name, "]") {
			name = strings.TrimSpace(strings.SplitN(name[1:len(name)-1], "=", 2)[0])
			mods.Optional = true
		}
		if name == "" {
			name = "arg" + strconv.Itoa(i)
		}
		out = append(out, Param{
			Name:        name,
			Type:        t,
			Optional:    p.Optional || mods.Optional || p.DefaultValue != nil,
			Nullable:    p.IsNullable() || mods.Nullable,
			Variadic:    p.Variable || mods.Variadic,
			Description: p.Description,
			Default:     p.DefaultValue,
		})
	}
	return out
}

func translateType(expr *doclet.TypeExpr, longname string, loc diag.Location, diags *diag.Collector) typeexpr.Type {
	t, mods := translateWithModifiers(expr, longname, loc, diags)
	if mods.Nullable {
		t = typeexpr.Union{Types: append(unionMembers(t), typeexpr.Named{Name: "null"})}
	}
	return t
}

// translateWithModifiers records a malformed-type diagnostic on failure; the
// type degrades to any.
func translateWithModifiers(expr *doclet.TypeExpr, longname string, loc diag.Location, diags *diag.Collector) (typeexpr.Type, typeexpr.Modifiers) {
	if expr == nil {
		return typeexpr.Any, typeexpr.Modifiers{}
	}
	t, mods, err := typeexpr.Translate(expr.String())
	if err != nil {
		diags.Warn(diag.KindMalformedType, longname, loc, "%s; using any", err)
	}
	return t, mods
}
