package typeexpr

import "fmt"

type tokenType int

const (
	tokEOF tokenType = iota
	tokIllegal
	tokIdent
	tokString
	tokNumber
	tokPipe     // |
	tokQuestion // ?
	tokBang     // !
	tokEquals   // =
	tokStar     // *
	tokEllipsis // ...
	tokLParen
	tokRParen
	tokLBracket
	tokRBracket
	tokLBrace
	tokRBrace
	tokLAngle // < or .<
	tokRAngle
	tokComma
	tokColon
)

type token struct {
	typ tokenType
	lit string
	pos int
}

func (t token) String() string {
	if t.typ == tokEOF {
		return "end of expression"
	}
	return fmt.Sprintf("%q at offset %d", t.lit, t.pos)
}

// namespacePrefixes may be followed by ':' inside a single name.
var namespacePrefixes = map[string]bool{
	"module":   true,
	"external": true,
	"event":    true,
}

// lexer reads a type expression one byte at a time.
type lexer struct {
	input        string
	position     int
	readPosition int
	ch           byte
}

func newLexer(input string) *lexer {
	l := &lexer{input: input}
	l.readChar()
	return l
}

func (l *lexer) readChar() {
	if l.readPosition >= len(l.input) {
		l.ch = 0
	} else {
		l.ch = l.input[l.readPosition]
	}
	l.position = l.readPosition
	l.readPosition++
}

func (l *lexer) peekChar() byte {
	if l.readPosition >= len(l.input) {
		return 0
	}
	return l.input[l.readPosition]
}

func (l *lexer) peekAt(offset int) byte {
	i := l.position + offset
	if i >= len(l.input) {
		return 0
	}
	return l.input[i]
}

// tokens lexes the whole input.
func (l *lexer) tokens() []token {
	var out []token
	for {
		tok := l.next()
		out = append(out, tok)
		if tok.typ == tokEOF {
			return out
		}
	}
}

func (l *lexer) next() token {
	l.skipWhitespace()
	pos := l.position

	single := func(t tokenType) token {
		tok := token{typ: t, lit: string(l.ch), pos: pos}
		l.readChar()
		return tok
	}

	switch l.ch {
	case 0:
		return token{typ: tokEOF, pos: pos}
	case '|':
		return single(tokPipe)
	case '?':
		return single(tokQuestion)
	case '!':
		return single(tokBang)
	case '=':
		return single(tokEquals)
	case '*':
		return single(tokStar)
	case '(':
		return single(tokLParen)
	case ')':
		return single(tokRParen)
	case '[':
		return single(tokLBracket)
	case ']':
		return single(tokRBracket)
	case '{':
		return single(tokLBrace)
	case '}':
		return single(tokRBrace)
	case '<':
		return single(tokLAngle)
	case '>':
		return single(tokRAngle)
	case ',':
		return single(tokComma)
	case ':':
		return single(tokColon)
	case '.':
		if l.peekChar() == '.' && l.peekAt(2) == '.' {
			l.readChar()
			l.readChar()
			l.readChar()
			return token{typ: tokEllipsis, lit: "...", pos: pos}
		}
		if l.peekChar() == '<' {
			// Array.<string>
			l.readChar()
			l.readChar()
			return token{typ: tokLAngle, lit: ".<", pos: pos}
		}
		return single(tokIllegal)
	case '"', '\'':
		return l.readString()
	case '-':
		if isDigit(l.peekChar()) {
			return l.readNumber()
		}
		return single(tokIllegal)
	}

	if isDigit(l.ch) {
		return l.readNumber()
	}
	if isIdentStart(l.ch) {
		return l.readIdent()
	}
	return single(tokIllegal)
}

func (l *lexer) skipWhitespace() {
	for l.ch == ' ' || l.ch == '\t' || l.ch == '\n' || l.ch == '\r' {
		l.readChar()
	}
}

func (l *lexer) readString() token {
	pos := l.position
	quote := l.ch
	l.readChar()
	for l.ch != quote {
		if l.ch == 0 {
			return token{typ: tokIllegal, lit: l.input[pos:], pos: pos}
		}
		if l.ch == '\\' {
			l.readChar()
		}
		l.readChar()
	}
	l.readChar()
	return token{typ: tokString, lit: l.input[pos:l.position], pos: pos}
}

func (l *lexer) readNumber() token {
	pos := l.position
	if l.ch == '-' {
		l.readChar()
	}
	for isDigit(l.ch) || l.ch == '.' && isDigit(l.peekChar()) {
		l.readChar()
	}
	return token{typ: tokNumber, lit: l.input[pos:l.position], pos: pos}
}

// readIdent reads a name, including the longname separators . # ~ and a
// namespace prefix such as module: whose path may contain / and -.
func (l *lexer) readIdent() token {
	pos := l.position
	for {
		for isIdentPart(l.ch) {
			if l.ch == '.' && (l.peekChar() == '<' || l.peekChar() == '.') {
				break
			}
			l.readChar()
		}
		if l.ch == ':' && namespacePrefixes[l.input[pos:l.position]] {
			l.readChar()
			l.readModulePath()
			continue
		}
		break
	}
	return token{typ: tokIdent, lit: l.input[pos:l.position], pos: pos}
}

// readModulePath consumes a module path up to the first separator that
// cannot belong to it. Quoted segments are taken verbatim.
func (l *lexer) readModulePath() {
	for {
		switch {
		case l.ch == '"':
			l.readChar()
			for l.ch != '"' && l.ch != 0 {
				l.readChar()
			}
			if l.ch == '"' {
				l.readChar()
			}
		case l.ch == '/' || l.ch == '-' || l.ch == '@':
			l.readChar()
		case isIdentPart(l.ch):
			if l.ch == '.' && l.peekChar() == '<' {
				return
			}
			l.readChar()
		default:
			return
		}
	}
}

func isDigit(ch byte) bool {
	return ch >= '0' && ch <= '9'
}

func isIdentStart(ch byte) bool {
	return ch >= 'a' && ch <= 'z' || ch >= 'A' && ch <= 'Z' || ch == '_' || ch == '$' || ch >= 0x80
}

func isIdentPart(ch byte) bool {
	return isIdentStart(ch) || isDigit(ch) || ch == '.' || ch == '#' || ch == '~'
}
