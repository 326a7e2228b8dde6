package symbol

import "strings"

const modulePrefix = "module:"

// SplitLongname splits a longname at its last separator (. # or ~) outside
// quotes. A bare module path has no parent.
func SplitLongname(longname string) (parent string, sep byte, name string) {
	last := -1
	inQuote := false
	for i := 0; i < len(longname); i++ {
		switch c := longname[i]; c {
		case '"':
			inQuote = !inQuote
		case '.', '#', '~':
			if !inQuote && i > 0 {
				last = i
			}
		}
	}
	if last < 0 {
		return "", 0, longname
	}
	return longname[:last], longname[last], longname[last+1:]
}

// ParentLongname returns the longname implied by the longname's prefix.
func ParentLongname(longname string) string {
	parent, _, _ := SplitLongname(longname)
	return parent
}

// ModulePath returns the module: prefix of a longname, or "" when the
// longname is not inside a module.
func ModulePath(longname string) string {
	if !strings.HasPrefix(longname, modulePrefix) {
		return ""
	}
	inQuote := false
	for i := len(modulePrefix); i < len(longname); i++ {
		switch longname[i] {
		case '"':
			inQuote = !inQuote
		case '.', '#', '~':
			if !inQuote {
				return longname[:i]
			}
		}
	}
	return longname
}

// IsModulePath reports whether longname names a module itself.
func IsModulePath(longname string) bool {
	return longname != "" && ModulePath(longname) == longname
}

// ModuleName returns the import specifier for a module longname:
// module:"foo.bar"/baz becomes foo.bar/baz.
func ModuleName(longname string) string {
	return strings.ReplaceAll(strings.TrimPrefix(ModulePath(longname), modulePrefix), `"`, "")
}

// unquote strips jsdoc's quoting from a name segment.
func unquote(name string) string {
	if len(name) >= 2 && name[0] == '"' && name[len(name)-1] == '"' {
		return name[1 : len(name)-1]
	}
	return name
}
