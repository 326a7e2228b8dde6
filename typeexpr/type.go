// Package typeexpr translates JSDoc type expressions into TypeScript type
// nodes.
//
// Translate never fails: input it cannot parse comes back as Unknown (printed
// as any) together with an error the caller records as a diagnostic.
// Optionality, nullability and variadic markers at the top level of an
// expression are returned separately as Modifiers because they describe the
// call site rather than the type.
package typeexpr

// Kind discriminates the Type variants.
type Kind int

const (
	KindNamed Kind = iota
	KindUnion
	KindArray
	KindGeneric
	KindFunction
	KindRecord
	KindLiteral
	KindUnknown
)

func (k Kind) String() string {
	switch k {
	case KindNamed:
		return "named"
	case KindUnion:
		return "union"
	case KindArray:
		return "array"
	case KindGeneric:
		return "generic"
	case KindFunction:
		return "function"
	case KindRecord:
		return "record"
	case KindLiteral:
		return "literal"
	case KindUnknown:
		return "unknown"
	default:
		return "invalid"
	}
}

// Type is a translated type. The set of implementations is closed.
type Type interface {
	Kind() Kind
	isType()
}

// Named references a primitive or a symbol by name. Symbol references keep
// their JSDoc longname form (Foo.Bar, module:foo~Baz); the emitter resolves
// them.
type Named struct {
	Name string
}

// Union is A | B | ...
type Union struct {
	Types []Type
}

// Array is T[].
type Array struct {
	Elem Type
}

// Generic is Base<Args...> for any base other than Array.
type Generic struct {
	Base string
	Args []Type
}

// Function is a function type. A nil Return prints as void.
type Function struct {
	Params []Param
	Return Type
	This   Type // function(this:T)
	New    Type // function(new:T) makes a construct signature
}

// Param is a function-type parameter.
type Param struct {
	Name string
	Type Type
	Modifiers
}

// Record is an inline object type.
type Record struct {
	Fields []Field
}

// Field is one member of a Record.
type Field struct {
	Name     string
	Type     Type
	Optional bool
}

// Literal is a string, number or boolean literal type in source form.
type Literal struct {
	Value string
}

// Unknown marks an expression that could not be translated.
type Unknown struct {
	Source string
}

func (Named) Kind() Kind    { return KindNamed }
func (Union) Kind() Kind    { return KindUnion }
func (Array) Kind() Kind    { return KindArray }
func (Generic) Kind() Kind  { return KindGeneric }
func (Function) Kind() Kind { return KindFunction }
func (Record) Kind() Kind   { return KindRecord }
func (Literal) Kind() Kind  { return KindLiteral }
func (Unknown) Kind() Kind  { return KindUnknown }

func (Named) isType()    {}
func (Union) isType()    {}
func (Array) isType()    {}
func (Generic) isType()  {}
func (Function) isType() {}
func (Record) isType()   {}
func (Literal) isType()  {}
func (Unknown) isType()  {}

// Modifiers are the call-site markers of a top-level expression.
type Modifiers struct {
	Optional bool // T= or [name]
	Nullable bool // ?T
	NonNull  bool // !T
	Variadic bool // ...T
}

// Any is the universal type.
var Any Type = Named{Name: "any"}

// Walk calls fn for t and every type nested inside it, depth first.
// Returning false from fn skips the children of that node.
func Walk(t Type, fn func(Type) bool) {
	if t == nil || !fn(t) {
		return
	}
	switch v := t.(type) {
	case Union:
		for _, m := range v.Types {
			Walk(m, fn)
		}
	case Array:
		Walk(v.Elem, fn)
	case Generic:
		for _, a := range v.Args {
			Walk(a, fn)
		}
	case Function:
		Walk(v.This, fn)
		Walk(v.New, fn)
		for _, p := range v.Params {
			Walk(p.Type, fn)
		}
		Walk(v.Return, fn)
	case Record:
		for _, f := range v.Fields {
			Walk(f.Type, fn)
		}
	case Named, Literal, Unknown:
	}
}
