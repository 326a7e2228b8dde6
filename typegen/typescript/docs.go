package typescript

import (
	"strings"

	"github.com/teranos/dtsgen/doclet"
	"github.com/teranos/dtsgen/symbol"
)

// comment writes a JSDoc block. Nothing is written when doc comments are
// disabled or there is nothing to say.
func (e *emitter) comment(depth int, lines []string) {
	if !e.opts.DocComments || len(lines) == 0 {
		return
	}
	e.writeLine(depth, "/**")
	for _, l := range lines {
		if l == "" {
			e.writeLine(depth, " *")
			continue
		}
		e.writeLine(depth, " * "+strings.ReplaceAll(l, "*/", `*\/`))
	}
	e.writeLine(depth, " */")
}

func splitLines(s string) []string {
	s = strings.TrimSpace(strings.ReplaceAll(s, "\r\n", "\n"))
	if s == "" {
		return nil
	}
	lines := strings.Split(s, "\n")
	for i, l := range lines {
		lines[i] = strings.TrimRight(l, " \t")
	}
	return lines
}

func docLines(d *doclet.Doclet) []string {
	if d == nil {
		return nil
	}
	return append(splitLines(d.Description), tagLines(d)...)
}

// classDocLines prefers the class description over the constructor's.
func classDocLines(d *doclet.Doclet) []string {
	if d == nil {
		return nil
	}
	desc := d.Classdesc
	if desc == "" {
		desc = d.Description
	}
	return append(splitLines(desc), tagLines(d)...)
}

func tagLines(d *doclet.Doclet) []string {
	var out []string
	if d.Since != "" {
		out = append(out, "@since "+d.Since)
	}
	if d.Deprecated.Deprecated {
		tag := "@deprecated"
		if d.Deprecated.Reason != "" {
			tag += " " + strings.Join(splitLines(d.Deprecated.Reason), " ")
		}
		out = append(out, tag)
	}
	return out
}

func paramDocLines(sig *symbol.Signature, names []string) []string {
	var out []string
	for i, p := range sig.Params {
		if p.Description != "" {
			out = append(out, "@param "+names[i]+" "+strings.Join(splitLines(p.Description), " "))
		}
	}
	return out
}

// signatureDocLines documents one overload from the doclet it came from.
func (e *emitter) signatureDocLines(sig *symbol.Signature, names []string) []string {
	if sig.Doclet == nil {
		return paramDocLines(sig, names)
	}
	lines := splitLines(sig.Doclet.Description)
	lines = append(lines, paramDocLines(sig, names)...)
	for _, r := range sig.Doclet.Returns {
		if r.Description != "" {
			lines = append(lines, "@returns "+strings.Join(splitLines(r.Description), " "))
			break
		}
	}
	return append(lines, tagLines(sig.Doclet)...)
}
