// Package doclet defines the input records produced by jsdoc's -X dump and
// loads them from JSON or YAML.
//
// Doclets are read once and never mutated by the compiler.
package doclet

import (
	"strings"

	"github.com/go-json-experiment/json"
	"gopkg.in/yaml.v3"

	"github.com/teranos/dtsgen/diag"
)

// Kind is the doclet kind. The set is closed; see Kind.Valid.
type Kind string

const (
	KindModule    Kind = "module"
	KindNamespace Kind = "namespace"
	KindClass     Kind = "class"
	KindInterface Kind = "interface"
	KindMixin     Kind = "mixin"
	KindFunction  Kind = "function"
	KindMember    Kind = "member"
	KindConstant  Kind = "constant"
	KindTypedef   Kind = "typedef"
	KindPackage   Kind = "package"
)

// Valid reports whether k is one of the supported kinds.
func (k Kind) Valid() bool {
	switch k {
	case KindModule, KindNamespace, KindClass, KindInterface, KindMixin,
		KindFunction, KindMember, KindConstant, KindTypedef, KindPackage:
		return true
	}
	return false
}

// Scope is the doclet's relation to its memberof parent.
type Scope string

const (
	ScopeStatic   Scope = "static"
	ScopeInstance Scope = "instance"
	ScopeInner    Scope = "inner"
	ScopeGlobal   Scope = "global"
)

// Doclet is one documented symbol.
type Doclet struct {
	Kind         Kind        `json:"kind" yaml:"kind"`
	Name         string      `json:"name" yaml:"name"`
	Longname     string      `json:"longname" yaml:"longname"`
	Scope        Scope       `json:"scope,omitempty" yaml:"scope,omitempty"`
	Memberof     string      `json:"memberof,omitempty" yaml:"memberof,omitempty"`
	Description  string      `json:"description,omitempty" yaml:"description,omitempty"`
	Classdesc    string      `json:"classdesc,omitempty" yaml:"classdesc,omitempty"`
	Params       []Param     `json:"params,omitempty" yaml:"params,omitempty"`
	Returns      []Return    `json:"returns,omitempty" yaml:"returns,omitempty"`
	Type         *TypeExpr   `json:"type,omitempty" yaml:"type,omitempty"`
	Properties   []Param     `json:"properties,omitempty" yaml:"properties,omitempty"`
	Augments     []string    `json:"augments,omitempty" yaml:"augments,omitempty"`
	Implements   []string    `json:"implements,omitempty" yaml:"implements,omitempty"`
	Mixes        []string    `json:"mixes,omitempty" yaml:"mixes,omitempty"`
	Access       string      `json:"access,omitempty" yaml:"access,omitempty"`
	Since        string      `json:"since,omitempty" yaml:"since,omitempty"`
	Deprecated   Deprecation `json:"deprecated,omitzero" yaml:"deprecated,omitempty"`
	Readonly     bool        `json:"readonly,omitempty" yaml:"readonly,omitempty"`
	Virtual      bool        `json:"virtual,omitempty" yaml:"virtual,omitempty"`
	IsEnum       bool        `json:"isEnum,omitempty" yaml:"isEnum,omitempty"`
	Ignore       bool        `json:"ignore,omitempty" yaml:"ignore,omitempty"`
	Undocumented bool        `json:"undocumented,omitempty" yaml:"undocumented,omitempty"`
	DefaultValue any         `json:"defaultvalue,omitempty" yaml:"defaultvalue,omitempty"`
	Meta         Meta        `json:"meta,omitzero" yaml:"meta,omitempty"`
}

// Param is a function parameter or a typedef property. Name may be dotted
// (opts.a, opts.a.b, items[].name).
type Param struct {
	Name         string    `json:"name" yaml:"name"`
	Type         *TypeExpr `json:"type,omitempty" yaml:"type,omitempty"`
	Optional     bool      `json:"optional,omitempty" yaml:"optional,omitempty"`
	Nullable     *bool     `json:"nullable,omitempty" yaml:"nullable,omitempty"`
	Variable     bool      `json:"variable,omitempty" yaml:"variable,omitempty"`
	DefaultValue any       `json:"defaultvalue,omitempty" yaml:"defaultvalue,omitempty"`
	Description  string    `json:"description,omitempty" yaml:"description,omitempty"`
}

// IsNullable reports whether the parameter was explicitly marked nullable.
func (p Param) IsNullable() bool {
	return p.Nullable != nil && *p.Nullable
}

// Return is one @returns entry.
type Return struct {
	Type        *TypeExpr `json:"type,omitempty" yaml:"type,omitempty"`
	Nullable    *bool     `json:"nullable,omitempty" yaml:"nullable,omitempty"`
	Description string    `json:"description,omitempty" yaml:"description,omitempty"`
}

// Meta is the source position jsdoc recorded for a doclet.
type Meta struct {
	Filename string `json:"filename,omitempty" yaml:"filename,omitempty"`
	Path     string `json:"path,omitempty" yaml:"path,omitempty"`
	Lineno   int    `json:"lineno,omitempty" yaml:"lineno,omitempty"`
}

// Location converts the meta block into a diagnostic location.
func (m Meta) Location() diag.Location {
	file := m.Filename
	if m.Path != "" && file != "" {
		file = strings.TrimSuffix(m.Path, "/") + "/" + file
	}
	return diag.Location{File: file, Line: m.Lineno}
}

// Location is the source position of the doclet.
func (d *Doclet) Location() diag.Location {
	return d.Meta.Location()
}

// IsPrivate reports whether the doclet has private access.
func (d *Doclet) IsPrivate() bool {
	return d.Access == "private"
}

// TypeExpr is a JSDoc type expression. jsdoc writes {"names": [...]}; hand
// written input may use a plain string.
type TypeExpr struct {
	Expr string
}

// NewTypeExpr returns a TypeExpr for expr.
func NewTypeExpr(expr string) *TypeExpr {
	return &TypeExpr{Expr: expr}
}

// String returns the expression text, or "" for a nil TypeExpr.
func (t *TypeExpr) String() string {
	if t == nil {
		return ""
	}
	return t.Expr
}

type typeNames struct {
	Names []string `json:"names" yaml:"names"`
}

func (t *TypeExpr) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		t.Expr = s
		return nil
	}
	var names typeNames
	if err := json.Unmarshal(data, &names); err != nil {
		return err
	}
	t.Expr = strings.Join(names.Names, "|")
	return nil
}

func (t TypeExpr) MarshalJSON() ([]byte, error) {
	return json.Marshal(typeNames{Names: splitTopLevel(t.Expr)})
}

func (t *TypeExpr) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind == yaml.ScalarNode {
		t.Expr = node.Value
		return nil
	}
	var names typeNames
	if err := node.Decode(&names); err != nil {
		return err
	}
	t.Expr = strings.Join(names.Names, "|")
	return nil
}

// splitTopLevel splits a union at pipes that are not nested in brackets.
func splitTopLevel(expr string) []string {
	var out []string
	depth, start := 0, 0
	for i := 0; i < len(expr); i++ {
		switch expr[i] {
		case '(', '<', '{', '[':
			depth++
		case ')', '>', '}', ']':
			depth--
		case '|':
			if depth == 0 {
				out = append(out, expr[start:i])
				start = i + 1
			}
		}
	}
	return append(out, expr[start:])
}

// Deprecation is jsdoc's deprecated field: true or a reason.
type Deprecation struct {
	Deprecated bool
	Reason     string
}

func (d Deprecation) IsZero() bool {
	return !d.Deprecated
}

func (d *Deprecation) UnmarshalJSON(data []byte) error {
	var b bool
	if err := json.Unmarshal(data, &b); err == nil {
		*d = Deprecation{Deprecated: b}
		return nil
	}
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	*d = Deprecation{Deprecated: true, Reason: s}
	return nil
}

func (d Deprecation) MarshalJSON() ([]byte, error) {
	if d.Reason != "" {
		return json.Marshal(d.Reason)
	}
	return json.Marshal(d.Deprecated)
}

func (d *Deprecation) UnmarshalYAML(node *yaml.Node) error {
	var b bool
	if node.Tag == "!!bool" {
		if err := node.Decode(&b); err != nil {
			return err
		}
		*d = Deprecation{Deprecated: b}
		return nil
	}
	*d = Deprecation{Deprecated: true, Reason: node.Value}
	return nil
}
