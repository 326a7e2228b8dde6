package typegen

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/teranos/dtsgen/diag"
	"github.com/teranos/dtsgen/doclet"
	"github.com/teranos/dtsgen/errors"
	"github.com/teranos/dtsgen/typegen/typescript"
)

func gen() Generator {
	return typescript.NewGenerator(typescript.Options{})
}

func moduleDoclets() []doclet.Doclet {
	return []doclet.Doclet{
		{Kind: doclet.KindModule, Name: "myModule", Longname: "module:myModule"},
		{
			Kind: doclet.KindMember, Name: "moduleMember", Longname: "module:myModule.moduleMember",
			Memberof: "module:myModule", Scope: doclet.ScopeStatic, Type: doclet.NewTypeExpr("string"),
		},
		{
			Kind: doclet.KindFunction, Name: "moduleFunction", Longname: "module:myModule.moduleFunction",
			Memberof: "module:myModule", Scope: doclet.ScopeStatic,
			Params: []doclet.Param{
				{Name: "param1", Type: doclet.NewTypeExpr("string")},
				{Name: "param2", Type: doclet.NewTypeExpr("number")},
			},
			Returns: []doclet.Return{{Type: doclet.NewTypeExpr("boolean")}},
		},
	}
}

func TestCompile(t *testing.T) {
	result, err := Compile(moduleDoclets(), gen(), Options{})
	require.NoError(t, err)

	want := `declare module 'myModule' {
	let moduleMember: string;
	function moduleFunction(param1: string, param2: number): boolean;
}
`
	assert.Equal(t, want, result.Text)
	assert.Equal(t, "typescript", result.Language)
	assert.Empty(t, result.Diagnostics)
	assert.Equal(t, Stats{Doclets: 3, Symbols: 3}, result.Stats)
	require.NotNil(t, result.Tree)
	assert.Len(t, result.Tree.Roots, 1)
}

func TestCompileHeader(t *testing.T) {
	result, err := Compile(moduleDoclets(), gen(), Options{Header: true})
	require.NoError(t, err)

	lines := strings.Split(result.Text, "\n")
	assert.Equal(t, GeneratedHeader, lines[0])
	assert.True(t, strings.HasPrefix(lines[1], "// Generator version: "))
	assert.Equal(t, "", lines[2])
	assert.Equal(t, "declare module 'myModule' {", lines[3])
}

func TestCompileFatal(t *testing.T) {
	doclets := []doclet.Doclet{
		{Kind: doclet.KindNamespace, Name: "A", Longname: "A", Memberof: "B"},
		{Kind: doclet.KindNamespace, Name: "B", Longname: "B", Memberof: "A"},
	}

	result, err := Compile(doclets, gen(), Options{})
	require.Error(t, err)
	assert.True(t, errors.IsFatal(err))
	require.NotNil(t, result)
	assert.Empty(t, result.Text)
	assert.NotEmpty(t, result.Diagnostics)

	var fatal *diag.FatalError
	require.True(t, errors.As(err, &fatal))
	assert.Equal(t, diag.KindCyclicMemberof, fatal.Diagnostics[0].Kind)
}

func TestCompileStrictFailsOnWarnings(t *testing.T) {
	doclets := []doclet.Doclet{
		{Kind: doclet.KindMember, Name: "x", Longname: "x", Scope: doclet.ScopeGlobal, Type: doclet.NewTypeExpr("Undocumented")},
	}

	result, err := Compile(doclets, gen(), Options{})
	require.NoError(t, err)
	assert.Equal(t, "declare let x: any;\n", result.Text)
	require.Len(t, result.Diagnostics, 1)
	assert.Equal(t, diag.SeverityWarning, result.Diagnostics[0].Severity)

	_, err = Compile(doclets, gen(), Options{Strict: true})
	require.Error(t, err)
	assert.True(t, errors.IsFatal(err))
}

func TestCompileStrictReportsEveryPhase(t *testing.T) {
	doclets := []doclet.Doclet{
		{Kind: doclet.KindMember, Name: "x", Longname: "app.x", Memberof: "app", Scope: doclet.ScopeStatic,
			Type: doclet.NewTypeExpr("Undocumented")},
	}

	result, err := Compile(doclets, gen(), Options{Strict: true})
	require.Error(t, err)
	assert.True(t, errors.IsFatal(err))
	require.NotNil(t, result)
	assert.Empty(t, result.Text)

	var kinds []diag.Kind
	for _, d := range result.Diagnostics {
		assert.Equal(t, diag.SeverityError, d.Severity)
		kinds = append(kinds, d.Kind)
	}
	assert.Contains(t, kinds, diag.KindUnresolvedParent)
	assert.Contains(t, kinds, diag.KindUnresolvedType)
}

func TestCompileCountsSynthesized(t *testing.T) {
	doclets := []doclet.Doclet{{
		Kind: doclet.KindFunction, Name: "f", Longname: "f", Scope: doclet.ScopeGlobal,
		Params: []doclet.Param{
			{Name: "opts", Type: doclet.NewTypeExpr("Object")},
			{Name: "opts.x", Type: doclet.NewTypeExpr("number")},
		},
	}}

	result, err := Compile(doclets, gen(), Options{})
	require.NoError(t, err)
	assert.Equal(t, 2, result.Stats.Symbols)
	assert.Equal(t, 1, result.Stats.Synthesized)
	assert.Contains(t, result.Text, "declare function f(opts: FOpts): void;")
}

func TestFilter(t *testing.T) {
	doclets := []doclet.Doclet{
		{Kind: doclet.KindFunction, Longname: "kept"},
		{Kind: doclet.KindFunction, Longname: "ignored", Ignore: true},
		{Kind: doclet.KindFunction, Longname: "undocumented", Undocumented: true},
		{Kind: doclet.KindClass, Longname: "Hidden", Access: "private"},
		{Kind: doclet.KindFunction, Longname: "Hidden#show", Memberof: "Hidden", Scope: doclet.ScopeInstance},
		{Kind: doclet.KindFunction, Longname: "future", Since: "2.0.0"},
		{Kind: doclet.KindFunction, Longname: "current", Since: "1.4.0"},
		{Kind: doclet.KindFunction, Longname: "odd", Since: "soon"},
	}

	longnames := func(ds []doclet.Doclet) []string {
		out := make([]string, len(ds))
		for i, d := range ds {
			out[i] = d.Longname
		}
		return out
	}

	t.Run("defaults", func(t *testing.T) {
		kept, err := Filter(doclets, Options{}, nil)
		require.NoError(t, err)
		assert.Equal(t, []string{"kept", "future", "current", "odd"}, longnames(kept))
	})

	t.Run("private", func(t *testing.T) {
		kept, err := Filter(doclets, Options{Private: true}, nil)
		require.NoError(t, err)
		assert.Contains(t, longnames(kept), "Hidden")
		assert.Contains(t, longnames(kept), "Hidden#show")
	})

	t.Run("api version", func(t *testing.T) {
		diags := diag.NewCollector(false)
		kept, err := Filter(doclets, Options{APIVersion: "1.5"}, diags)
		require.NoError(t, err)
		assert.Equal(t, []string{"kept", "current", "odd"}, longnames(kept))
		require.Len(t, diags.OfKind(diag.KindInvalidSince), 1)
		assert.Equal(t, "odd", diags.OfKind(diag.KindInvalidSince)[0].Longname)
	})

	t.Run("invalid api version", func(t *testing.T) {
		_, err := Filter(doclets, Options{APIVersion: "next"}, nil)
		require.Error(t, err)
		assert.True(t, errors.IsInvalidInputError(err))
	})
}

func TestFilterKeepsOverloadWithPrivateSibling(t *testing.T) {
	doclets := []doclet.Doclet{
		{Kind: doclet.KindFunction, Longname: "f", Access: "private"},
		{Kind: doclet.KindFunction, Longname: "f"},
		{Kind: doclet.KindMember, Longname: "f.cache", Memberof: "f", Scope: doclet.ScopeStatic},
	}

	kept, err := Filter(doclets, Options{}, nil)
	require.NoError(t, err)
	assert.Len(t, kept, 2)
}
