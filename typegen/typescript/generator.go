// Package typescript renders a prepared symbol tree as an ambient
// TypeScript declaration file.
package typescript

import (
	"strings"

	"github.com/teranos/dtsgen/diag"
	"github.com/teranos/dtsgen/errors"
	"github.com/teranos/dtsgen/logger"
	"github.com/teranos/dtsgen/symbol"
)

// UnresolvedMode selects how type references to undocumented names print.
type UnresolvedMode string

const (
	UnresolvedAny      UnresolvedMode = "any"
	UnresolvedVerbatim UnresolvedMode = "verbatim"
)

// ParseUnresolvedMode validates a configured mode. Empty means any.
func ParseUnresolvedMode(s string) (UnresolvedMode, error) {
	switch UnresolvedMode(strings.ToLower(s)) {
	case "", UnresolvedAny:
		return UnresolvedAny, nil
	case UnresolvedVerbatim:
		return UnresolvedVerbatim, nil
	}
	return "", errors.NewInvalidInputError("unresolved type mode %q (want any or verbatim)", s)
}

// Options control rendering.
type Options struct {
	// DocComments emits description, @param, @since and @deprecated blocks
	DocComments bool
	// UnresolvedTypes decides what undocumented type names print as
	UnresolvedTypes UnresolvedMode
}

// Generator implements typegen.Generator for TypeScript declaration files
type Generator struct {
	opts Options
}

// NewGenerator creates a new TypeScript generator
func NewGenerator(opts Options) *Generator {
	if opts.UnresolvedTypes == "" {
		opts.UnresolvedTypes = UnresolvedAny
	}
	return &Generator{opts: opts}
}

// Language returns "typescript"
func (g *Generator) Language() string {
	return "typescript"
}

// FileExtension returns "d.ts"
func (g *Generator) FileExtension() string {
	return "d.ts"
}

// GenerateFile renders every root of tree, separated by blank lines.
// Names are assigned for the whole tree before anything is printed.
func (g *Generator) GenerateFile(tree *symbol.Tree, diags *diag.Collector) (string, error) {
	if tree == nil {
		return "", errors.New("no symbol tree to render")
	}

	names := assignNames(tree, diags)
	e := &emitter{
		opts:  g.opts,
		names: names,
		res:   newResolver(tree, names, diags, g.opts.UnresolvedTypes),
	}

	for i, root := range tree.Roots {
		if i > 0 {
			e.sb.WriteString("\n")
		}
		e.declaration(root, 0)
		if e.err != nil {
			return "", e.err
		}
	}

	out := e.sb.String()
	logger.Debugw("declarations emitted",
		logger.FieldPhase, "emit",
		logger.FieldCount, e.declarations,
		logger.FieldSize, len(out))
	return out, nil
}
