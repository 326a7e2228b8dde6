package typeexpr

import (
	"fmt"
	"strings"
	"unicode"
	"unicode/utf8"
)

// Resolver maps a symbol reference to the text that should be printed for
// it. Primitives are never passed to a Resolver.
type Resolver func(name string) string

// String prints t without resolving symbol references.
func String(t Type) string {
	return Print(t, nil)
}

// Print renders t as TypeScript type syntax.
func Print(t Type, resolve Resolver) string {
	pr := printer{resolve: resolve}
	return pr.print(t)
}

type printer struct {
	resolve Resolver
}

func (pr printer) name(n string) string {
	if IsPrimitive(n) || pr.resolve == nil {
		return n
	}
	return pr.resolve(n)
}

func (pr printer) print(t Type) string {
	switch v := t.(type) {
	case nil:
		return "any"
	case Named:
		return pr.name(v.Name)
	case Literal:
		return v.Value
	case Unknown:
		return "any"
	case Union:
		parts := make([]string, len(v.Types))
		for i, m := range v.Types {
			parts[i] = pr.printMember(m)
		}
		return strings.Join(parts, " | ")
	case Array:
		return pr.printElem(v.Elem) + "[]"
	case Generic:
		base := pr.name(v.Base)
		if base == "any" {
			return "any"
		}
		args := make([]string, len(v.Args))
		for i, a := range v.Args {
			args[i] = pr.print(a)
		}
		return base + "<" + strings.Join(args, ", ") + ">"
	case Function:
		return pr.printFunction(v)
	case Record:
		return pr.printRecord(v)
	}
	return "any"
}

// printMember wraps function types, which would otherwise swallow the rest
// of the union as their return type.
func (pr printer) printMember(t Type) string {
	if _, ok := t.(Function); ok {
		return "(" + pr.print(t) + ")"
	}
	return pr.print(t)
}

func (pr printer) printElem(t Type) string {
	switch t.(type) {
	case Union, Function:
		return "(" + pr.print(t) + ")"
	}
	return pr.print(t)
}

func (pr printer) printFunction(fn Function) string {
	params := pr.params(fn.Params)
	if fn.This != nil {
		params = append([]string{"this: " + pr.print(fn.This)}, params...)
	}
	ret := "void"
	if fn.Return != nil {
		ret = pr.print(fn.Return)
	}
	if fn.New != nil {
		return "new (" + strings.Join(params, ", ") + ") => " + pr.print(fn.New)
	}
	return "(" + strings.Join(params, ", ") + ") => " + ret
}

// params renders a parameter list. A parameter without a name is called
// argN after its position.
func (pr printer) params(params []Param) []string {
	out := make([]string, len(params))
	for i, p := range params {
		name := p.Name
		if name == "" {
			name = fmt.Sprintf("arg%d", i)
		}
		typ := p.Type
		if typ == nil {
			typ = Any
		}
		switch {
		case p.Variadic:
			out[i] = "..." + name + ": " + pr.printElem(typ) + "[]"
		case p.Optional:
			out[i] = name + "?: " + pr.print(typ)
		default:
			out[i] = name + ": " + pr.print(typ)
		}
	}
	return out
}

func (pr printer) printRecord(r Record) string {
	if len(r.Fields) == 0 {
		return "{}"
	}
	var sb strings.Builder
	sb.WriteString("{ ")
	for _, f := range r.Fields {
		sb.WriteString(PropertyName(f.Name))
		if f.Optional {
			sb.WriteString("?")
		}
		sb.WriteString(": ")
		sb.WriteString(pr.print(f.Type))
		sb.WriteString("; ")
	}
	sb.WriteString("}")
	return sb.String()
}

// PropertyName quotes name when it is not a valid identifier.
func PropertyName(name string) string {
	if IsIdentifier(name) || isNumeric(name) {
		return name
	}
	return "'" + strings.ReplaceAll(name, "'", `\'`) + "'"
}

// IsIdentifier reports whether s is a valid TypeScript identifier.
func IsIdentifier(s string) bool {
	if s == "" {
		return false
	}
	for i, r := range s {
		if r == '_' || r == '$' || unicode.IsLetter(r) {
			continue
		}
		if i > 0 && (unicode.IsDigit(r) || unicode.Is(unicode.Mn, r) || unicode.Is(unicode.Mc, r)) {
			continue
		}
		return false
	}
	return utf8.ValidString(s)
}

func isNumeric(s string) bool {
	if s == "" {
		return false
	}
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}
