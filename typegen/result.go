package typegen

import (
	"github.com/teranos/dtsgen/diag"
	"github.com/teranos/dtsgen/symbol"
)

// Result is the outcome of one compilation.
type Result struct {
	// Text is the generated file, including the header when requested
	Text string

	// Language is the generator's target language
	Language string

	// Tree is the prepared symbol tree the text was rendered from
	Tree *symbol.Tree

	// Diagnostics holds everything reported while compiling, in order
	Diagnostics []diag.Diagnostic

	// Stats counts what went into the output
	Stats Stats
}

// Stats summarizes a compilation for status output.
type Stats struct {
	// Doclets is the number of input records
	Doclets int
	// Skipped counts doclets removed by Filter
	Skipped int
	// Symbols is the number of nodes in the tree
	Symbols int
	// Synthesized counts nodes that no doclet declared
	Synthesized int
}
