// Copyright (C) 2021 Michael J. Fromberger. All Rights Reserved.

package jvedit

import (
	"fmt"
	"io"
	"regexp"
	"unicode/utf8"

	"github.com/creachadair/jvedit/internal/numeric"
	"go4.org/mem"
)

// TokenType is the type of a lexical token in the JSON grammar.
type TokenType byte

// Constants defining the valid TokenType values.
const (
	Invalid     TokenType = iota // invalid token
	ObjectOpen                   // left brace "{"
	ObjectClose                  // right brace "}"
	ArrayOpen                    // left square bracket "["
	ArrayClose                   // right square bracket "]"
	String                       // quoted string
	Numeric                      // numeric literal
	Boolean                      // constant: true or false
	Null                         // constant: null
	Comma                        // comma ","
	Colon                        // colon ":"
)

var tokenStr = [...]string{
	Invalid:     "invalid token",
	ObjectOpen:  `"{"`,
	ObjectClose: `"}"`,
	ArrayOpen:   `"["`,
	ArrayClose:  `"]"`,
	String:      "string",
	Numeric:     "number",
	Boolean:     "boolean",
	Null:        "null",
	Comma:       `","`,
	Colon:       `":"`,
}

func (t TokenType) String() string {
	v := int(t)
	if v >= len(tokenStr) {
		return tokenStr[Invalid]
	}
	return tokenStr[v]
}

// A Token is a single lexical token of the input. The Text of a token is its
// exact source text: string tokens include their quotation marks and escape
// sequences as written.
type Token struct {
	Type  TokenType
	Text  string
	Index int // byte offset of the start of the token, 0-based
}

// Span returns the location span of t in its input.
func (t Token) Span() Span { return Span{Pos: t.Index, End: t.Index + len(t.Text)} }

func (t Token) String() string { return fmt.Sprintf("%v %#q at %d", t.Type, t.Text, t.Index) }

// A rule recognizes one kind of token at the front of the input.
// It returns the length in bytes of the longest matching prefix, or 0.
type rule interface {
	match(rest mem.RO) int
	tokenType() TokenType
}

type literalRule struct {
	text mem.RO
	tok  TokenType
}

func (r literalRule) match(rest mem.RO) int {
	if mem.HasPrefix(rest, r.text) {
		return r.text.Len()
	}
	return 0
}

func (r literalRule) tokenType() TokenType { return r.tok }

type patternRule struct {
	re  *regexp.Regexp // must be anchored at the start
	tok TokenType
}

func (r patternRule) match(rest mem.RO) int {
	if loc := r.re.FindReaderIndex(mem.NewReader(rest)); loc != nil {
		return loc[1]
	}
	return 0
}

func (r patternRule) tokenType() TokenType { return r.tok }

func lit(s string, tok TokenType) rule { return literalRule{text: mem.S(s), tok: tok} }

// The order of rules is significant only to break ties between matches of
// equal length: the earlier rule wins.
var rules = []rule{
	lit("{", ObjectOpen),
	lit("}", ObjectClose),
	lit("[", ArrayOpen),
	lit("]", ArrayClose),
	lit("null", Null),
	lit(",", Comma),
	lit(":", Colon),
	lit("true", Boolean),
	lit("false", Boolean),

	// A string admits any character after a backslash; escapes are checked
	// when the string is decoded, not here.
	patternRule{re: regexp.MustCompile(`(?s)^"(?:[^"\\]|\\.)*"`), tok: String},
	patternRule{re: numeric.Prefix, tok: Numeric},
}

// A Lexer reads lexical tokens from an input. Each call to Next returns the
// next token of the input, or reports an error.
//
// At each position the lexer tries every rule and selects the longest match.
// Whitespace between tokens is discarded.
type Lexer struct {
	src mem.RO
	pos int // offset of the next unread byte
}

// NewLexer constructs a lexer that reads tokens from src. The lexer does not
// modify src, and the caller must not modify it while the lexer is in use.
func NewLexer(src []byte) *Lexer { return &Lexer{src: mem.B(src)} }

// NewStringLexer constructs a lexer that reads tokens from src.
func NewStringLexer(src string) *Lexer { return &Lexer{src: mem.S(src)} }

// Next returns the next token of the input. When only whitespace remains,
// Next returns io.EOF. If no rule matches the input at the current position,
// Next returns an error of concrete type *InvalidTokenError, and the lexer
// does not advance.
func (l *Lexer) Next() (Token, error) {
	l.skipSpace()
	if l.pos >= l.src.Len() {
		return Token{}, io.EOF
	}

	rest := l.src.SliceFrom(l.pos)
	var best rule
	var bestLen int
	for _, r := range rules {
		if n := r.match(rest); n > bestLen {
			best, bestLen = r, n
		}
	}
	if best == nil {
		r, _ := mem.DecodeRune(rest)
		return Token{}, &InvalidTokenError{
			Offset:   l.pos,
			Position: l.Position(l.pos),
			Text:     string(r),
		}
	}

	tok := Token{
		Type:  best.tokenType(),
		Text:  rest.SliceTo(bestLen).StringCopy(),
		Index: l.pos,
	}
	l.pos += bestLen
	return tok, nil
}

// Offset returns the offset of the next unread byte of the input.
func (l *Lexer) Offset() int { return l.pos }

// Position returns the line and column of the given byte offset in the input
// of l. Offsets past the end of the input are clamped to the end.
func (l *Lexer) Position(offset int) LineCol {
	offset = min(offset, l.src.Len())
	lc := LineCol{Line: 1}
	for i := 0; i < offset; i++ {
		if l.src.At(i) == '\n' {
			lc.Line++
			lc.Column = 0
		} else {
			lc.Column++
		}
	}
	return lc
}

// Location returns the complete location of tok in the input of l.
func (l *Lexer) Location(tok Token) Location {
	span := tok.Span()
	return Location{Span: span, First: l.Position(span.Pos), Last: l.Position(span.End)}
}

func (l *Lexer) skipSpace() {
	for l.pos < l.src.Len() && isSpace(l.src.At(l.pos)) {
		l.pos++
	}
}

// Lex returns all the tokens of src in order. If src contains an invalid
// token, Lex returns the tokens preceding it along with an error of concrete
// type *InvalidTokenError.
func Lex(src string) ([]Token, error) {
	var out []Token
	lex := NewStringLexer(src)
	for {
		tok, err := lex.Next()
		if err == io.EOF {
			return out, nil
		} else if err != nil {
			return out, err
		}
		out = append(out, tok)
	}
}

// InvalidTokenError is the error reported when no lexical rule matches the
// input at some offset.
type InvalidTokenError struct {
	Offset   int     // byte offset of the unmatched input
	Position LineCol // line and column of Offset
	Text     string  // the first character of the unmatched input
}

func (e *InvalidTokenError) Error() string {
	if e.Text == string(utf8.RuneError) {
		return fmt.Sprintf("at %s: invalid input (offset %d)", e.Position, e.Offset)
	}
	return fmt.Sprintf("at %s: invalid token %q (offset %d)", e.Position, e.Text, e.Offset)
}

func isSpace(b byte) bool {
	return b == ' ' || b == '\r' || b == '\n' || b == '\t'
}
