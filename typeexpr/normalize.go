package typeexpr

// primitives maps JSDoc spellings to their TypeScript form.
var primitives = map[string]string{
	"string":    "string",
	"String":    "string",
	"number":    "number",
	"Number":    "number",
	"int":       "number",
	"integer":   "number",
	"float":     "number",
	"double":    "number",
	"boolean":   "boolean",
	"Boolean":   "boolean",
	"bool":      "boolean",
	"object":    "object",
	"Object":    "object",
	"function":  "Function",
	"Function":  "Function",
	"symbol":    "symbol",
	"Symbol":    "symbol",
	"bigint":    "bigint",
	"BigInt":    "bigint",
	"any":       "any",
	"mixed":     "any",
	"unknown":   "unknown",
	"null":      "null",
	"undefined": "undefined",
	"void":      "void",
	"never":     "never",
}

// IsPrimitive reports whether name is a normalized primitive or keyword type
// that needs no symbol resolution.
func IsPrimitive(name string) bool {
	switch name {
	case "string", "number", "boolean", "object", "Function", "symbol", "bigint",
		"any", "unknown", "null", "undefined", "void", "never", "this":
		return true
	}
	return false
}

func named(name string) Type {
	if p, ok := primitives[name]; ok {
		return Named{Name: p}
	}
	switch name {
	case "true", "false":
		return Literal{Value: name}
	case "Array":
		return Array{Elem: Any}
	}
	return Named{Name: name}
}

func instantiate(base string, args []Type) Type {
	switch base {
	case "Array", "array":
		if len(args) == 1 {
			return Array{Elem: args[0]}
		}
	case "Object", "object":
		switch len(args) {
		case 1:
			return Generic{Base: "Record", Args: []Type{Named{Name: "string"}, args[0]}}
		case 2:
			return Generic{Base: "Record", Args: args}
		}
	}
	if p, ok := primitives[base]; ok {
		base = p
	}
	return Generic{Base: base, Args: args}
}
