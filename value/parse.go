// Copyright (C) 2021 Michael J. Fromberger. All Rights Reserved.

package value

import (
	"errors"
	"fmt"
	"io"
	"slices"
	"strings"

	"github.com/creachadair/jvedit"
	"github.com/creachadair/jvedit/internal/escape"
	"github.com/tailscale/hujson"
	"go4.org/mem"
)

// Parse parses a single JSON value from data. The input must contain exactly
// one value, optionally surrounded by whitespace.
//
// If data contains text that is not a valid token, Parse reports an error of
// concrete type *jvedit.InvalidTokenError. If the tokens do not form a valid
// value, Parse reports an error of concrete type *SyntaxError. No partial
// result is returned in either case.
//
// String values and member names are stored unescaped.
func Parse(data []byte) (Value, error) { return parseLexer(jvedit.NewLexer(data)) }

// ParseString parses a single JSON value from s. See [Parse].
func ParseString(s string) (Value, error) { return parseLexer(jvedit.NewStringLexer(s)) }

// ParseReader reads r to completion and parses a single JSON value from its
// contents. See [Parse].
func ParseReader(r io.Reader) (Value, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	return Parse(data)
}

// ParseLenient parses a single value from data, which may be written in the
// JSON With Commas and Comments (JWCC) dialect: comments and trailing commas
// are permitted and discarded. Standard JSON is accepted unchanged.
// The contents of data are not modified.
func ParseLenient(data []byte) (Value, error) {
	std, err := hujson.Standardize(slices.Clone(data))
	if err != nil {
		return nil, fmt.Errorf("lenient: %w", err)
	}
	return Parse(std)
}

// MustParse parses s as a single JSON value, and panics if parsing fails.
// It is intended for use in tests and variable initializers.
func MustParse(s string) Value {
	v, err := ParseString(s)
	if err != nil {
		panic(fmt.Sprintf("parse %#q: %v", s, err))
	}
	return v
}

func parseLexer(lex *jvedit.Lexer) (_ Value, err error) {
	p := &parser{lex: lex}
	defer p.recoverParseError(&err)

	v := p.parseElement(p.advance(valueTokens...))
	if tok := p.next(); tok.Type != jvedit.Invalid {
		p.syntaxError(tok, nil, "unexpected token after value")
	}
	return v, nil
}

// A parser is a recursive descent parser over the tokens from a lexer.
type parser struct {
	lex *jvedit.Lexer
}

var valueTokens = []jvedit.TokenType{
	jvedit.ObjectOpen, jvedit.ArrayOpen, jvedit.String,
	jvedit.Numeric, jvedit.Boolean, jvedit.Null,
}

func (p *parser) recoverParseError(errp *error) {
	if perr := recover(); perr != nil {
		switch err := perr.(type) {
		case *SyntaxError:
			*errp = err
		case lexError:
			*errp = err.error
		default:
			panic(perr)
		}
	}
}

// parseElement consumes a single value of any type beginning with tok.
func (p *parser) parseElement(tok jvedit.Token) Value {
	switch tok.Type {
	case jvedit.ObjectOpen:
		return p.parseMembers()
	case jvedit.ArrayOpen:
		return p.parseElements()
	case jvedit.String:
		return String(p.unquote(tok))
	case jvedit.Numeric:
		return Number(tok.Text)
	case jvedit.Boolean:
		return Bool(tok.Text == "true")
	case jvedit.Null:
		return Null{}
	default:
		p.syntaxError(tok, nil, "unexpected %v", tok.Type)
		panic("unreachable")
	}
}

// parseMembers consumes zero or more name:value object members.
// Precondition: the "{" has been consumed.
// Postcondition: the matching "}" has been consumed.
func (p *parser) parseMembers() Object {
	obj := Object{}
	tok := p.advance(jvedit.ObjectClose, jvedit.String)
	if tok.Type == jvedit.ObjectClose {
		return obj // empty object
	}
	for {
		name := p.unquote(tok)
		p.advance(jvedit.Colon)
		val := p.parseElement(p.advance(valueTokens...))
		obj = append(obj, Member{Name: name, Value: val})

		// Check whether we have more members (",") or are done ("}").
		if p.advance(jvedit.ObjectClose, jvedit.Comma).Type == jvedit.ObjectClose {
			return obj
		}
		tok = p.advance(jvedit.String) // no trailing comma
	}
}

// parseElements consumes zero or more comma-separated array values.
// Precondition: the "[" has been consumed.
// Postcondition: the matching "]" has been consumed.
func (p *parser) parseElements() Array {
	arr := Array{}
	tok := p.advance(append([]jvedit.TokenType{jvedit.ArrayClose}, valueTokens...)...)
	if tok.Type == jvedit.ArrayClose {
		return arr // empty array
	}
	for {
		arr = append(arr, p.parseElement(tok))
		if p.advance(jvedit.ArrayClose, jvedit.Comma).Type == jvedit.ArrayClose {
			return arr
		}
		tok = p.advance(valueTokens...) // no trailing comma
	}
}

// next returns the next token of the input. At the end of input it returns
// a token of type Invalid with empty text, positioned at the end.
func (p *parser) next() jvedit.Token {
	tok, err := p.lex.Next()
	if err == io.EOF {
		return jvedit.Token{Index: p.lex.Offset()}
	} else if err != nil {
		panic(lexError{err})
	}
	return tok
}

// advance returns the next token of the input, which must have one of the
// specified types.
func (p *parser) advance(types ...jvedit.TokenType) jvedit.Token {
	tok := p.next()
	if !slices.Contains(types, tok.Type) {
		p.syntaxError(tok, nil, "%s", tokLabel(types))
	}
	return tok
}

func (p *parser) unquote(tok jvedit.Token) string {
	dec, err := escape.Unquote(mem.S(tok.Text[1 : len(tok.Text)-1]))
	if err != nil {
		p.syntaxError(tok, err, "invalid string: %v", err)
	}
	return string(dec)
}

func (p *parser) syntaxError(tok jvedit.Token, err error, msg string, args ...any) {
	panic(&SyntaxError{
		Offset:   tok.Index,
		Text:     tok.Text,
		Location: p.lex.Position(tok.Index),
		Message:  fmt.Sprintf(msg, args...),
		err:      err,
	})
}

type lexError struct{ error }

// tokLabel makes a human-readable summary string for the given token types.
func tokLabel(types []jvedit.TokenType) string {
	if len(types) == len(valueTokens) && slices.Equal(types, valueTokens) {
		return "expected value"
	}
	ss := make([]string, len(types))
	for i, t := range types {
		ss[i] = t.String()
	}
	if len(ss) == 1 {
		return "expected " + ss[0]
	}
	last := len(ss) - 1
	return fmt.Sprintf("expected %s or %s", strings.Join(ss[:last], ", "), ss[last])
}

// SyntaxError is the concrete type of errors reported by the parser when the
// tokens of the input do not form a valid value.
type SyntaxError struct {
	Offset   int            // byte offset of the offending token
	Text     string         // text of the offending token; "" at end of input
	Location jvedit.LineCol // line and column of Offset
	Message  string         // what the parser expected

	err error
}

// Error satisfies the error interface.
func (s *SyntaxError) Error() string {
	if s.Text == "" {
		return fmt.Sprintf("at %s: unexpected end of input (offset %d): %s", s.Location, s.Offset, s.Message)
	}
	return fmt.Sprintf("at %s: invalid token `%s` (offset %d): %s", s.Location, s.Text, s.Offset, s.Message)
}

// Unwrap supports error wrapping.
func (s *SyntaxError) Unwrap() error { return s.err }

// IsSyntaxError reports whether err is or wraps a *SyntaxError or a
// *jvedit.InvalidTokenError.
func IsSyntaxError(err error) bool {
	var se *SyntaxError
	var ite *jvedit.InvalidTokenError
	return errors.As(err, &se) || errors.As(err, &ite)
}
