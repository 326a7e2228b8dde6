package typeexpr

import (
	"fmt"
	"strings"

	"github.com/teranos/dtsgen/errors"
)

// Translate parses a JSDoc type expression.
//
// An empty expression is any. On a syntax error the returned type is Unknown
// and err describes the problem; the type is always usable.
func Translate(expr string) (Type, Modifiers, error) {
	src := strings.TrimSpace(expr)
	if src == "" {
		return Any, Modifiers{}, nil
	}

	p := &parser{tokens: newLexer(src).tokens(), src: src}
	t, mods, err := p.parseTop()
	if err != nil {
		return Unknown{Source: src}, Modifiers{}, errors.Wrapf(err, "malformed type expression %q", src)
	}
	return t, mods, nil
}

// MustTranslate is Translate for expressions known to be well formed.
// It panics on a syntax error.
func MustTranslate(expr string) Type {
	t, _, err := Translate(expr)
	if err != nil {
		panic(err)
	}
	return t
}

type parser struct {
	tokens []token
	pos    int
	src    string
}

func (p *parser) cur() token {
	return p.tokens[p.pos]
}

func (p *parser) peek() token {
	if p.pos+1 < len(p.tokens) {
		return p.tokens[p.pos+1]
	}
	return p.tokens[len(p.tokens)-1]
}

func (p *parser) advance() token {
	tok := p.tokens[p.pos]
	if tok.typ != tokEOF {
		p.pos++
	}
	return tok
}

func (p *parser) is(t tokenType) bool {
	return p.cur().typ == t
}

func (p *parser) expect(t tokenType, what string) error {
	if !p.is(t) {
		return p.errorf("expected %s, got %s", what, p.cur())
	}
	p.advance()
	return nil
}

func (p *parser) errorf(format string, args ...interface{}) error {
	return errors.Newf(format, args...)
}

// parseTop parses the whole input as a modified expression.
func (p *parser) parseTop() (Type, Modifiers, error) {
	t, mods, err := p.parseModified()
	if err != nil {
		return nil, Modifiers{}, err
	}
	if !p.is(tokEOF) {
		return nil, Modifiers{}, p.errorf("unexpected %s", p.cur())
	}
	return t, mods, nil
}

// parseModified parses [...|?|!] union [=].
func (p *parser) parseModified() (Type, Modifiers, error) {
	var mods Modifiers

	for {
		switch {
		case p.is(tokEllipsis):
			p.advance()
			mods.Variadic = true
			if !p.startsType() {
				// function(...) with no element type
				return Any, mods, nil
			}
			continue
		case p.is(tokQuestion):
			if !p.startsTypeAt(p.peek()) {
				// A lone ? is the unknown type
				p.advance()
				t := Any
				if p.is(tokEquals) {
					p.advance()
					mods.Optional = true
				}
				return t, mods, nil
			}
			p.advance()
			mods.Nullable = true
			continue
		case p.is(tokBang):
			p.advance()
			mods.NonNull = true
			continue
		}
		break
	}

	t, err := p.parseUnion()
	if err != nil {
		return nil, Modifiers{}, err
	}

	if p.is(tokEquals) {
		p.advance()
		mods.Optional = true
	}
	return t, mods, nil
}

// parseNested parses a modified expression in a nested position, folding
// nullability and optionality into the type itself.
func (p *parser) parseNested() (Type, error) {
	t, mods, err := p.parseModified()
	if err != nil {
		return nil, err
	}
	return applyNested(t, mods), nil
}

func applyNested(t Type, mods Modifiers) Type {
	if mods.Nullable {
		t = appendUnion(t, Named{Name: "null"})
	}
	if mods.Optional {
		t = appendUnion(t, Named{Name: "undefined"})
	}
	if mods.Variadic {
		t = Array{Elem: t}
	}
	return t
}

func appendUnion(t Type, extra Type) Type {
	if u, ok := t.(Union); ok {
		types := append(append([]Type{}, u.Types...), extra)
		return Union{Types: types}
	}
	return Union{Types: []Type{t, extra}}
}

func (p *parser) startsType() bool {
	return p.startsTypeAt(p.cur())
}

func (p *parser) startsTypeAt(tok token) bool {
	switch tok.typ {
	case tokIdent, tokString, tokNumber, tokStar, tokLParen, tokLBrace, tokQuestion, tokBang:
		return true
	}
	return false
}

func (p *parser) parseUnion() (Type, error) {
	// A leading pipe is tolerated: (|A|B)
	if p.is(tokPipe) {
		p.advance()
	}

	first, err := p.parsePostfix()
	if err != nil {
		return nil, err
	}
	if !p.is(tokPipe) {
		return first, nil
	}

	members := []Type{first}
	for p.is(tokPipe) {
		p.advance()
		next, err := p.parsePostfix()
		if err != nil {
			return nil, err
		}
		members = append(members, next)
	}
	return Union{Types: flattenUnion(members)}, nil
}

func flattenUnion(members []Type) []Type {
	var out []Type
	for _, m := range members {
		if u, ok := m.(Union); ok {
			out = append(out, flattenUnion(u.Types)...)
			continue
		}
		out = append(out, m)
	}
	return out
}

// parsePostfix parses a primary followed by any number of [] suffixes.
func (p *parser) parsePostfix() (Type, error) {
	// Inner members of a union may carry their own nullability: ?string|number
	var prefix Modifiers
	if p.is(tokQuestion) && p.startsTypeAt(p.peek()) {
		p.advance()
		prefix.Nullable = true
	} else if p.is(tokBang) {
		p.advance()
	}

	t, err := p.parsePrimary()
	if err != nil {
		return nil, err
	}
	for p.is(tokLBracket) && p.peek().typ == tokRBracket {
		p.advance()
		p.advance()
		t = Array{Elem: t}
	}
	return applyNested(t, prefix), nil
}

func (p *parser) parsePrimary() (Type, error) {
	tok := p.cur()
	switch tok.typ {
	case tokLParen:
		p.advance()
		t, err := p.parseNested()
		if err != nil {
			return nil, err
		}
		if err := p.expect(tokRParen, "')'"); err != nil {
			return nil, err
		}
		return t, nil

	case tokStar:
		p.advance()
		return Any, nil

	case tokQuestion:
		p.advance()
		return Any, nil

	case tokLBrace:
		return p.parseRecord()

	case tokString:
		p.advance()
		return Literal{Value: normalizeStringLiteral(tok.lit)}, nil

	case tokNumber:
		p.advance()
		return Literal{Value: tok.lit}, nil

	case tokIdent:
		if tok.lit == "function" && p.peek().typ == tokLParen {
			return p.parseFunction()
		}
		p.advance()
		if p.is(tokLAngle) {
			args, err := p.parseTypeArgs()
			if err != nil {
				return nil, err
			}
			return instantiate(tok.lit, args), nil
		}
		return named(tok.lit), nil

	case tokEOF:
		return nil, p.errorf("unexpected end of expression")
	}

	return nil, p.errorf("unexpected %s", tok)
}

func (p *parser) parseTypeArgs() ([]Type, error) {
	if err := p.expect(tokLAngle, "'<'"); err != nil {
		return nil, err
	}
	var args []Type
	for {
		arg, err := p.parseNested()
		if err != nil {
			return nil, err
		}
		args = append(args, arg)
		if p.is(tokComma) {
			p.advance()
			continue
		}
		break
	}
	if err := p.expect(tokRAngle, "'>'"); err != nil {
		return nil, err
	}
	return args, nil
}

// parseFunction parses function(params): Return.
func (p *parser) parseFunction() (Type, error) {
	p.advance() // function
	p.advance() // (

	fn := Function{}
	index := 0
	for !p.is(tokRParen) {
		if p.is(tokIdent) && (p.cur().lit == "this" || p.cur().lit == "new") && p.peek().typ == tokColon {
			which := p.advance().lit
			p.advance() // :
			t, err := p.parseNested()
			if err != nil {
				return nil, err
			}
			if which == "this" {
				fn.This = t
			} else {
				fn.New = t
			}
		} else {
			t, mods, err := p.parseModified()
			if err != nil {
				return nil, err
			}
			if mods.Nullable {
				t = appendUnion(t, Named{Name: "null"})
				mods.Nullable = false
			}
			fn.Params = append(fn.Params, Param{
				Name:      fmt.Sprintf("arg%d", index),
				Type:      t,
				Modifiers: mods,
			})
			index++
		}

		if p.is(tokComma) {
			p.advance()
			continue
		}
		if !p.is(tokRParen) {
			return nil, p.errorf("expected ',' or ')' in function type, got %s", p.cur())
		}
	}
	p.advance() // )

	if p.is(tokColon) {
		p.advance()
		ret, err := p.parseNested()
		if err != nil {
			return nil, err
		}
		fn.Return = ret
	}
	return fn, nil
}

// parseRecord parses {name: Type, other, 'quoted': Type=}.
func (p *parser) parseRecord() (Type, error) {
	p.advance() // {

	rec := Record{}
	for !p.is(tokRBrace) {
		tok := p.cur()
		var name string
		switch tok.typ {
		case tokIdent, tokNumber:
			name = tok.lit
		case tokString:
			name = tok.lit[1 : len(tok.lit)-1]
		default:
			return nil, p.errorf("expected field name, got %s", tok)
		}
		p.advance()

		field := Field{Name: name, Type: Any}
		if p.is(tokQuestion) && p.peek().typ == tokColon {
			// {name?: Type}
			p.advance()
			field.Optional = true
		}
		if p.is(tokColon) {
			p.advance()
			t, mods, err := p.parseModified()
			if err != nil {
				return nil, err
			}
			if mods.Optional {
				field.Optional = true
				mods.Optional = false
			}
			field.Type = applyNested(t, mods)
		}
		rec.Fields = append(rec.Fields, field)

		if p.is(tokComma) {
			p.advance()
			continue
		}
		if !p.is(tokRBrace) {
			return nil, p.errorf("expected ',' or '}' in record type, got %s", p.cur())
		}
	}
	p.advance() // }
	return rec, nil
}

func normalizeStringLiteral(lit string) string {
	inner := lit[1 : len(lit)-1]
	if lit[0] == '"' {
		inner = strings.ReplaceAll(inner, `\"`, `"`)
		inner = strings.ReplaceAll(inner, `'`, `\'`)
	}
	return "'" + inner + "'"
}
