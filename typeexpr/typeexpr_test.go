package typeexpr

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func translate(t *testing.T, expr string) (Type, Modifiers) {
	t.Helper()
	typ, mods, err := Translate(expr)
	require.NoError(t, err, expr)
	return typ, mods
}

func TestTranslatePrimitives(t *testing.T) {
	tests := []struct {
		expr string
		want string
	}{
		{"string", "string"},
		{"String", "string"},
		{"Number", "number"},
		{"int", "number"},
		{"Boolean", "boolean"},
		{"Object", "object"},
		{"function", "Function"},
		{"*", "any"},
		{"?", "any"},
		{"", "any"},
		{"true", "true"},
		{"undefined", "undefined"},
	}

	for _, tt := range tests {
		t.Run(tt.expr, func(t *testing.T) {
			typ, _ := translate(t, tt.expr)
			assert.Equal(t, tt.want, String(typ))
		})
	}
}

func TestTranslateUnion(t *testing.T) {
	typ, _ := translate(t, "string|boolean")

	u, ok := typ.(Union)
	require.True(t, ok)
	assert.Len(t, u.Types, 2)
	assert.Equal(t, "string | boolean", String(typ))

	typ, _ = translate(t, "(string|(number|Foo))")
	assert.Equal(t, "string | number | Foo", String(typ))
}

func TestTranslateArrayForms(t *testing.T) {
	bare, _ := translate(t, "Array")
	generic, _ := translate(t, "Array<any>")
	dotted, _ := translate(t, "Array.<*>")
	postfix, _ := translate(t, "any[]")

	assert.Equal(t, Array{Elem: Named{Name: "any"}}, bare)
	assert.Equal(t, bare, generic)
	assert.Equal(t, bare, dotted)
	assert.Equal(t, bare, postfix)
	assert.Equal(t, "any[]", String(postfix))

	nested, _ := translate(t, "Array.<Array.<string>>")
	assert.Equal(t, "string[][]", String(nested))

	unionElem, _ := translate(t, "(string|number)[]")
	assert.Equal(t, "(string | number)[]", String(unionElem))
}

func TestTranslateObjectMap(t *testing.T) {
	typ, _ := translate(t, "Object.<string, number>")
	assert.Equal(t, "Record<string, number>", String(typ))

	typ, _ = translate(t, "Object<Foo>")
	assert.Equal(t, "Record<string, Foo>", String(typ))

	typ, _ = translate(t, "Promise.<Array.<Foo>>")
	assert.Equal(t, "Promise<Foo[]>", String(typ))
}

func TestTranslateModifiers(t *testing.T) {
	typ, mods := translate(t, "?string")
	assert.Equal(t, "string", String(typ))
	assert.True(t, mods.Nullable)

	typ, mods = translate(t, "!Foo")
	assert.Equal(t, "Foo", String(typ))
	assert.True(t, mods.NonNull)

	typ, mods = translate(t, "number=")
	assert.Equal(t, "number", String(typ))
	assert.True(t, mods.Optional)

	typ, mods = translate(t, "...string")
	assert.Equal(t, "string", String(typ))
	assert.True(t, mods.Variadic)

	_, mods = translate(t, "...*")
	assert.True(t, mods.Variadic)
}

func TestTranslateNestedModifiersFold(t *testing.T) {
	typ, _ := translate(t, "Array.<?string>")
	assert.Equal(t, "(string | null)[]", String(typ))

	typ, _ = translate(t, "Object.<string, number=>")
	assert.Equal(t, "Record<string, number | undefined>", String(typ))
}

func TestTranslateFunction(t *testing.T) {
	typ, _ := translate(t, "function(string, number=): boolean")
	assert.Equal(t, "(arg0: string, arg1?: number) => boolean", String(typ))

	typ, _ = translate(t, "function()")
	assert.Equal(t, "() => void", String(typ))

	typ, _ = translate(t, "function(this:Foo, ...*)")
	assert.Equal(t, "(this: Foo, ...arg0: any[]) => void", String(typ))

	typ, _ = translate(t, "function(new:Foo, string)")
	assert.Equal(t, "new (arg0: string) => Foo", String(typ))

	typ, _ = translate(t, "function(string)|null")
	assert.Equal(t, "((arg0: string) => void) | null", String(typ))
}

func TestTranslateRecord(t *testing.T) {
	typ, _ := translate(t, "{a: number, b: string=, c}")
	assert.Equal(t, "{ a: number; b?: string; c: any; }", String(typ))

	typ, _ = translate(t, "{'my-key': ?Foo}")
	assert.Equal(t, "{ 'my-key': Foo | null; }", String(typ))

	typ, _ = translate(t, "{}")
	assert.Equal(t, "{}", String(typ))
}

func TestTranslateLiterals(t *testing.T) {
	typ, _ := translate(t, `"on"|'off'|-1|2.5`)
	assert.Equal(t, "'on' | 'off' | -1 | 2.5", String(typ))
}

func TestTranslateLongnames(t *testing.T) {
	tests := []string{
		"Foo.Bar",
		"Foo#baz",
		"Foo~Inner",
		"module:foo/bar",
		"module:foo/bar.Baz",
		"module:@scope/pkg-name~Thing",
		`module:"weird.name".Thing`,
		"external:jQuery",
	}
	for _, expr := range tests {
		t.Run(expr, func(t *testing.T) {
			typ, _ := translate(t, expr)
			assert.Equal(t, Named{Name: expr}, typ)
		})
	}

	typ, _ := translate(t, "module:foo~Bar[]")
	assert.Equal(t, Array{Elem: Named{Name: "module:foo~Bar"}}, typ)
}

func TestTranslateMalformed(t *testing.T) {
	for _, expr := range []string{"Array.<", "function(", "{a:", "string|", "Foo>", "%"} {
		t.Run(expr, func(t *testing.T) {
			typ, mods, err := Translate(expr)
			require.Error(t, err)
			assert.Equal(t, KindUnknown, typ.Kind())
			assert.Equal(t, Modifiers{}, mods)
			assert.Equal(t, "any", String(typ))
		})
	}
}

func TestPrintResolver(t *testing.T) {
	typ, _ := translate(t, "Array.<Foo>|Map.<string, module:x~Y>|number")

	var seen []string
	out := Print(typ, func(name string) string {
		seen = append(seen, name)
		if name == "Foo" {
			return "ns.Foo"
		}
		if name == "Map" {
			return "Map"
		}
		return "any"
	})

	assert.Equal(t, "ns.Foo[] | Map<string, any> | number", out)
	assert.Equal(t, []string{"Foo", "Map", "module:x~Y"}, seen)
}

func TestPrintUnresolvedGenericBase(t *testing.T) {
	typ, _ := translate(t, "Missing.<string>")
	out := Print(typ, func(string) string { return "any" })
	assert.Equal(t, "any", out)
}

func TestWalk(t *testing.T) {
	typ, _ := translate(t, "function(Foo, {a: Bar}): Array.<Baz>")

	var names []string
	Walk(typ, func(t Type) bool {
		if n, ok := t.(Named); ok {
			names = append(names, n.Name)
		}
		return true
	})
	assert.Equal(t, []string{"Foo", "Bar", "Baz"}, names)
}

func TestPropertyName(t *testing.T) {
	assert.Equal(t, "foo", PropertyName("foo"))
	assert.Equal(t, "$el", PropertyName("$el"))
	assert.Equal(t, "0", PropertyName("0"))
	assert.Equal(t, "'my-prop'", PropertyName("my-prop"))
	assert.Equal(t, `'it\'s'`, PropertyName("it's"))
}
