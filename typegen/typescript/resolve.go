package typescript

import (
	"strings"

	"github.com/teranos/dtsgen/diag"
	"github.com/teranos/dtsgen/symbol"
	"github.com/teranos/dtsgen/typeexpr"
)

// builtins are global names every declaration file can reference.
var builtins = map[string]bool{
	"Array": true, "ReadonlyArray": true, "Promise": true, "PromiseLike": true,
	"Map": true, "WeakMap": true, "Set": true, "WeakSet": true,
	"Date": true, "RegExp": true, "Error": true, "TypeError": true, "RangeError": true,
	"SyntaxError": true, "Function": true, "Symbol": true, "Proxy": true,
	"Record": true, "Partial": true, "Required": true, "Readonly": true,
	"Pick": true, "Omit": true, "ReturnType": true, "InstanceType": true,
	"Iterable": true, "Iterator": true, "IterableIterator": true,
	"AsyncIterable": true, "AsyncIterator": true, "Generator": true,
	"ArrayBuffer": true, "SharedArrayBuffer": true, "DataView": true,
	"Int8Array": true, "Uint8Array": true, "Uint8ClampedArray": true,
	"Int16Array": true, "Uint16Array": true, "Int32Array": true, "Uint32Array": true,
	"Float32Array": true, "Float64Array": true, "BigInt64Array": true, "BigUint64Array": true,
	"JSON": true, "Math": true, "Intl": true,
	"Element": true, "HTMLElement": true, "HTMLCanvasElement": true, "HTMLInputElement": true,
	"Node": true, "NodeList": true, "Document": true, "DocumentFragment": true, "Window": true,
	"Event": true, "EventTarget": true, "CustomEvent": true, "MouseEvent": true,
	"KeyboardEvent": true, "Blob": true, "File": true, "FormData": true,
	"Headers": true, "Request": true, "Response": true, "URL": true,
	"URLSearchParams": true, "WebSocket": true, "Worker": true, "Buffer": true,
}

// resolver maps longnames used in type expressions to the qualified names
// they were declared under.
type resolver struct {
	tree     *symbol.Tree
	names    map[*symbol.Node]string
	canon    map[string]*symbol.Node
	diags    *diag.Collector
	mode     UnresolvedMode
	reported map[string]bool
}

var separators = strings.NewReplacer("#", ".", "~", ".")

func newResolver(tree *symbol.Tree, names map[*symbol.Node]string, diags *diag.Collector, mode UnresolvedMode) *resolver {
	r := &resolver{
		tree:     tree,
		names:    names,
		canon:    make(map[string]*symbol.Node),
		diags:    diags,
		mode:     mode,
		reported: make(map[string]bool),
	}
	// Foo.Bar finds Foo~Bar; the first node in emission order wins
	tree.Walk(func(n *symbol.Node) {
		key := separators.Replace(n.Longname)
		if _, ok := r.canon[key]; !ok {
			r.canon[key] = n
		}
	})
	return r
}

func (r *resolver) lookup(name string) *symbol.Node {
	name = strings.TrimPrefix(name, "external:")
	if n, ok := r.tree.Lookup(name); ok {
		return n
	}
	return r.canon[separators.Replace(name)]
}

// forNode returns the typeexpr.Resolver used while printing from's
// declaration.
func (r *resolver) forNode(from *symbol.Node) typeexpr.Resolver {
	return func(name string) string {
		return r.typeRef(name, from)
	}
}

func (r *resolver) typeRef(name string, from *symbol.Node) string {
	if n := r.lookup(name); n != nil {
		if ref, ok := r.reference(n, from, true); ok {
			return ref
		}
	}
	if builtins[name] {
		return name
	}

	key := from.Longname + "\x00" + name
	if !r.reported[key] {
		r.reported[key] = true
		if r.mode == UnresolvedVerbatim {
			r.diags.Warn(diag.KindUnresolvedType, from.Longname, from.Location(),
				"type %s is not documented; printed as written", name)
		} else {
			r.diags.WarnWithHint(diag.KindUnresolvedType, from.Longname, from.Location(),
				"document the type or set emit.unresolved_types = \"verbatim\"",
				"type %s is not documented; using any", name)
		}
	}
	if r.mode == UnresolvedVerbatim {
		if v, ok := verbatim(name); ok {
			return v
		}
	}
	return "any"
}

// supertype resolves an extends or implements target. Unknown supertypes
// are printed as written.
func (r *resolver) supertype(name string, from *symbol.Node) string {
	if n := r.lookup(name); n != nil {
		if ref, ok := r.reference(n, from, false); ok {
			return ref
		}
	}
	if !builtins[name] {
		r.diags.Warn(diag.KindUnresolvedSupertype, from.Longname, from.Location(),
			"supertype %s is not documented", name)
	}
	if v, ok := verbatim(name); ok {
		return v
	}
	return bindingName(name)
}

// reference returns the qualified path of n as seen from inside from's
// module. Values referenced in type position get a typeof query when
// asType is set. Members printed inside a class body have no path.
func (r *resolver) reference(n, from *symbol.Node, asType bool) (string, bool) {
	if n.Kind == symbol.KindModule {
		return "typeof import(" + quote(r.names[n]) + ")", true
	}
	if placementOf(n) != inBlock {
		return "", false
	}

	var segs []string
	for c := n; c != nil && c.Kind != symbol.KindModule; c = c.Parent {
		name := r.names[c]
		if c != n && placementOf(c) != inBlock {
			name = bindingName(name)
		}
		segs = append(segs, name)
	}
	for i, j := 0, len(segs)-1; i < j; i, j = i+1, j-1 {
		segs[i], segs[j] = segs[j], segs[i]
	}
	path := strings.Join(segs, ".")

	if mod := moduleOf(n); mod != nil && mod != moduleOf(from) {
		path = "import(" + quote(r.names[mod]) + ")." + path
	}
	if asType && !isTypeDeclaration(n) {
		path = "typeof " + path
	}
	return path, true
}

func moduleOf(n *symbol.Node) *symbol.Node {
	for ; n != nil; n = n.Parent {
		if n.Kind == symbol.KindModule {
			return n
		}
	}
	return nil
}

// verbatim converts a longname into a dotted path when every segment is an
// identifier.
func verbatim(name string) (string, bool) {
	if symbol.ModulePath(name) != "" {
		return "", false
	}
	path := separators.Replace(strings.TrimPrefix(name, "external:"))
	for _, seg := range strings.Split(path, ".") {
		if !typeexpr.IsIdentifier(seg) {
			return "", false
		}
	}
	return path, true
}

func quote(s string) string {
	s = strings.ReplaceAll(s, `\`, `\\`)
	return "'" + strings.ReplaceAll(s, "'", `\'`) + "'"
}
