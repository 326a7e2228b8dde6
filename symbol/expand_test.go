package symbol

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/teranos/dtsgen/diag"
	"github.com/teranos/dtsgen/doclet"
	"github.com/teranos/dtsgen/typeexpr"
)

func compile(t *testing.T, doclets []doclet.Doclet, diags *diag.Collector) *Tree {
	t.Helper()
	tree := buildAndMerge(t, doclets, diags)
	ExpandPropertyParams(tree, diags)
	return tree
}

func fieldNames(params []Param) []string {
	out := make([]string, len(params))
	for i, p := range params {
		out[i] = p.Name
	}
	return out
}

func TestExpandPropertyParameter(t *testing.T) {
	fn := d(doclet.KindFunction, "myFunction", "", doclet.ScopeGlobal)
	fn.Params = []doclet.Param{
		param("propertyParameter", "Object"),
		param("propertyParameter.myProperty1", "string"),
		param("propertyParameter.myProperty2", "number"),
	}
	after := d(doclet.KindFunction, "other", "", doclet.ScopeGlobal)

	tree := compile(t, []doclet.Doclet{fn, after}, nil)

	assert.Equal(t, []string{"myFunction", "MyFunctionPropertyParameter", "other"}, rootNames(tree))

	td := tree.Index["MyFunctionPropertyParameter"]
	require.NotNil(t, td)
	assert.Equal(t, KindTypedef, td.Kind)
	assert.True(t, td.Synthesized)
	assert.Same(t, tree.Roots[0], td.Owner)
	assert.Equal(t, []string{"myProperty1", "myProperty2"}, fieldNames(td.Properties))
	assert.Equal(t, typeexpr.Named{Name: "string"}, td.Properties[0].Type)

	sig := tree.Roots[0].Signatures[0]
	require.Len(t, sig.Params, 1)
	assert.Equal(t, "propertyParameter", sig.Params[0].Name)
	assert.Equal(t, typeexpr.Named{Name: "MyFunctionPropertyParameter"}, sig.Params[0].Type)
}

func TestExpandArrayRoot(t *testing.T) {
	fn := d(doclet.KindFunction, "ns.assign", "ns", doclet.ScopeStatic)
	fn.Params = []doclet.Param{
		param("employees", "Array.<Object>"),
		param("employees[].name", "string"),
		param("employees[].department", "string"),
	}
	tree := compile(t, []doclet.Doclet{d(doclet.KindNamespace, "ns", "", doclet.ScopeGlobal), fn}, nil)

	ns := tree.Index["ns"]
	assert.Equal(t, []string{"ns.assign", "ns~AssignEmployeesItem"}, childNames(ns))

	td := tree.Index["ns~AssignEmployeesItem"]
	require.NotNil(t, td)
	assert.Equal(t, []string{"name", "department"}, fieldNames(td.Properties))

	p := tree.Index["ns.assign"].Signatures[0].Params[0]
	assert.Equal(t, typeexpr.Array{Elem: typeexpr.Named{Name: "ns~AssignEmployeesItem"}}, p.Type)
}

func TestExpandNestedLevels(t *testing.T) {
	fn := d(doclet.KindFunction, "connect", "", doclet.ScopeGlobal)
	fn.Params = []doclet.Param{
		param("url", "string"),
		param("opts", "Object"),
		param("opts.retry", "Object"),
		param("opts.retry.count", "number"),
		{Name: "opts.retry.delay", Type: doclet.NewTypeExpr("number"), Optional: true},
		param("opts.headers[].name", "string"),
		param("cb", "function"),
	}

	tree := compile(t, []doclet.Doclet{fn}, nil)

	sig := tree.Index["connect"].Signatures[0]
	assert.Equal(t, []string{"url", "opts", "cb"}, fieldNames(sig.Params))

	td := tree.Index["ConnectOpts"]
	require.NotNil(t, td)
	require.Equal(t, []string{"retry", "headers"}, fieldNames(td.Properties))
	assert.Equal(t, "{ count: number; delay?: number; }", typeexpr.String(td.Properties[0].Type))
	assert.Equal(t, "{ name: string; }[]", typeexpr.String(td.Properties[1].Type))
}

func TestExpandMissingRoot(t *testing.T) {
	fn := d(doclet.KindFunction, "f", "", doclet.ScopeGlobal)
	fn.Params = []doclet.Param{
		param("a", "string"),
		param("opts.x", "number"),
	}

	diags := diag.NewCollector(false)
	tree := compile(t, []doclet.Doclet{fn}, diags)

	sig := tree.Roots[0].Signatures[0]
	assert.Equal(t, []string{"a", "opts"}, fieldNames(sig.Params))
	assert.Equal(t, typeexpr.Named{Name: "FOpts"}, sig.Params[1].Type)
	assert.Len(t, diags.OfKind(diag.KindMissingRootParam), 1)
}

func TestExpandRootAfterProperties(t *testing.T) {
	fn := d(doclet.KindFunction, "f", "", doclet.ScopeGlobal)
	optional := param("opts.a", "number")
	optional.Optional = true
	fn.Params = []doclet.Param{optional, param("opts", "Object")}

	diags := diag.NewCollector(false)
	tree := compile(t, []doclet.Doclet{fn}, diags)

	sig := tree.Roots[0].Signatures[0]
	assert.Equal(t, []string{"opts"}, fieldNames(sig.Params))
	assert.Equal(t, typeexpr.Named{Name: "FOpts"}, sig.Params[0].Type)
	assert.Empty(t, diags.OfKind(diag.KindMissingRootParam))
}

func TestExpandNameCollision(t *testing.T) {
	existing := d(doclet.KindTypedef, "SaveOptions", "", doclet.ScopeGlobal)
	save := d(doclet.KindFunction, "save", "", doclet.ScopeGlobal)
	save.Params = []doclet.Param{param("options", "Object"), param("options.force", "boolean")}
	// a second overload synthesizes its own type
	save2 := d(doclet.KindFunction, "save", "", doclet.ScopeGlobal)
	save2.Params = []doclet.Param{param("options", "Object"), param("options.path", "string")}

	tree := compile(t, []doclet.Doclet{existing, save, save2}, nil)

	assert.Equal(t, []string{"SaveOptions", "save", "SaveOptions2", "SaveOptions3"}, rootNames(tree))
	sigs := tree.Index["save"].Signatures
	assert.Equal(t, typeexpr.Named{Name: "SaveOptions2"}, sigs[0].Params[0].Type)
	assert.Equal(t, typeexpr.Named{Name: "SaveOptions3"}, sigs[1].Params[0].Type)
}

func TestExpandClassConstructor(t *testing.T) {
	class := d(doclet.KindClass, "module:ui~Button", "module:ui", doclet.ScopeInner)
	class.Params = []doclet.Param{param("config", "Object"), param("config.label", "string")}

	tree := compile(t, []doclet.Doclet{d(doclet.KindModule, "module:ui", "", ""), class}, nil)

	mod := tree.Index["module:ui"]
	assert.Equal(t, []string{"module:ui~Button", "module:ui~ButtonConfig"}, childNames(mod))
}

func TestExpandTypedefProperties(t *testing.T) {
	td := d(doclet.KindTypedef, "Settings", "", doclet.ScopeGlobal)
	td.Type = doclet.NewTypeExpr("Object")
	td.Properties = []doclet.Param{
		param("name", "string"),
		param("theme", "Object"),
		param("theme.dark", "boolean"),
		param("theme.accent", "string"),
	}

	tree := compile(t, []doclet.Doclet{td}, nil)

	settings := tree.Index["Settings"]
	require.Equal(t, []string{"name", "theme"}, fieldNames(settings.Properties))
	assert.Equal(t, "{ dark: boolean; accent: string; }", typeexpr.String(settings.Properties[1].Type))
	assert.Len(t, tree.Roots, 1)
}

func TestPascal(t *testing.T) {
	e := &expander{title: titleCaser()}
	assert.Equal(t, "MyFunction", e.pascal("myFunction"))
	assert.Equal(t, "SnakeCaseName", e.pascal("snake_case_name"))
	assert.Equal(t, "Jquery", e.pascal("$jquery"))
	assert.Equal(t, "Ärger", e.pascal("ärger"))
}
