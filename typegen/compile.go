package typegen

import (
	"time"

	"github.com/Masterminds/semver/v3"

	"github.com/teranos/dtsgen/diag"
	"github.com/teranos/dtsgen/doclet"
	"github.com/teranos/dtsgen/errors"
	"github.com/teranos/dtsgen/logger"
	"github.com/teranos/dtsgen/symbol"
	"github.com/teranos/dtsgen/version"
)

// GeneratedHeader is the first line of every file written with a header.
const GeneratedHeader = "// Code generated by dtsgen. DO NOT EDIT."

// versionPrefix starts the metadata line check mode ignores.
const versionPrefix = "// Generator version:"

// Options control a compilation.
type Options struct {
	// Strict promotes every warning to an error
	Strict bool
	// Private keeps doclets with private access
	Private bool
	// APIVersion drops doclets whose since is newer; empty keeps everything
	APIVersion string
	// Header prepends the generated-file header
	Header bool
}

// Header returns the generated-file header, ending in a blank line.
func Header() string {
	return GeneratedHeader + "\n" + versionPrefix + " " + version.Get().Short() + "\n\n"
}

// Compile runs every phase over doclets and renders the result with gen.
//
// On a fatal diagnostic the returned Result carries the diagnostics but no
// text, and the error is marked with errors.ErrFatal.
func Compile(doclets []doclet.Doclet, gen Generator, opts Options) (*Result, error) {
	start := time.Now()
	diags := diag.NewCollector(opts.Strict)
	result := &Result{
		Language: gen.Language(),
		Stats:    Stats{Doclets: len(doclets)},
	}
	fail := func(err error, phase string) (*Result, error) {
		result.Diagnostics = diags.Diagnostics()
		return result, errors.Wrapf(err, "%s failed", phase)
	}

	kept, err := Filter(doclets, opts, diags)
	if err != nil {
		return nil, err
	}
	result.Stats.Skipped = len(doclets) - len(kept)

	tree, err := symbol.Build(kept, diags)
	if err != nil {
		return fail(err, "build")
	}
	if err := symbol.MergeOverloads(tree, diags); err != nil {
		return fail(err, "merge")
	}
	symbol.ExpandPropertyParams(tree, diags)

	text, err := gen.GenerateFile(tree, diags)
	if err != nil {
		return fail(err, gen.Language()+" generation")
	}
	// warnings promoted by strict mode fail once every phase has run
	if err := diags.Err(); err != nil {
		return fail(err, gen.Language()+" generation")
	}

	if opts.Header {
		text = Header() + text
	}
	result.Text = text
	result.Tree = tree
	result.Diagnostics = diags.Diagnostics()
	tree.Walk(func(n *symbol.Node) {
		result.Stats.Symbols++
		if n.Synthesized {
			result.Stats.Synthesized++
		}
	})

	logger.Named("typegen").Infow("compilation finished",
		logger.FieldCount, result.Stats.Symbols,
		logger.FieldSize, len(text),
		logger.FieldDurationMS, time.Since(start).Milliseconds())
	return result, nil
}

// Filter drops doclets that are never emitted: ignored, undocumented and
// (unless opts.Private) private ones, plus those whose since is newer than
// opts.APIVersion. Members of a dropped symbol are dropped with it.
func Filter(doclets []doclet.Doclet, opts Options, diags *diag.Collector) ([]doclet.Doclet, error) {
	var api *semver.Version
	if opts.APIVersion != "" {
		v, err := semver.NewVersion(opts.APIVersion)
		if err != nil {
			return nil, errors.WithHint(
				errors.WrapInvalidInput(err, "api version "+opts.APIVersion),
				"use a semantic version such as 2.1.0")
		}
		api = v
	}

	dropped := make(map[string]bool)
	kept := make(map[string]bool)
	out := make([]doclet.Doclet, 0, len(doclets))
	for i := range doclets {
		d := &doclets[i]
		if !keep(d, opts.Private, api, diags) {
			dropped[d.Longname] = true
			continue
		}
		kept[d.Longname] = true
		out = append(out, *d)
	}
	for name := range kept {
		delete(dropped, name)
	}
	if len(dropped) == 0 {
		return out, nil
	}

	filtered := out[:0]
	for _, d := range out {
		if !underDropped(d, dropped) {
			filtered = append(filtered, d)
		}
	}
	return filtered, nil
}

func keep(d *doclet.Doclet, private bool, api *semver.Version, diags *diag.Collector) bool {
	if d.Ignore || d.Undocumented {
		return false
	}
	if d.IsPrivate() && !private {
		return false
	}
	if api == nil || d.Since == "" {
		return true
	}
	since, err := semver.NewVersion(d.Since)
	if err != nil {
		diags.Warn(diag.KindInvalidSince, d.Longname, d.Location(),
			"since %q is not a semantic version; keeping the declaration", d.Since)
		return true
	}
	return !since.GreaterThan(api)
}

func underDropped(d doclet.Doclet, dropped map[string]bool) bool {
	parent := d.Memberof
	if parent == "" {
		parent = symbol.ParentLongname(d.Longname)
	}
	for parent != "" {
		if dropped[parent] {
			return true
		}
		parent = symbol.ParentLongname(parent)
	}
	return false
}
