// Copyright (C) 2021 Michael J. Fromberger. All Rights Reserved.

package value

import (
	"io"
	"strings"

	"github.com/creachadair/jvedit/internal/escape"
	"go4.org/mem"
)

// AppendJSON appends the compact JSON encoding of v to dst and returns the
// extended slice. A nil Value is encoded as null.
func AppendJSON(dst []byte, v Value) []byte {
	return (&formatter{buf: dst}).value(v, 0).buf
}

// Format writes the JSON encoding of v to w. If indent == "" the output is
// compact; otherwise each object member and array element is written on its
// own line, indented by one copy of indent per level of nesting, and member
// names are followed by ": ". Empty objects and arrays are written as {} and
// [] in either mode. No trailing newline is written.
func Format(w io.Writer, v Value, indent string) error {
	f := &formatter{indent: indent}
	_, err := w.Write(f.value(v, 0).buf)
	return err
}

// FormatToString returns the JSON encoding of v as a string. See [Format].
func FormatToString(v Value, indent string) string {
	f := &formatter{indent: indent}
	return string(f.value(v, 0).buf)
}

type formatter struct {
	buf    []byte
	indent string
}

func (f *formatter) newline(depth int) {
	if f.indent != "" {
		f.buf = append(f.buf, '\n')
		f.buf = append(f.buf, strings.Repeat(f.indent, depth)...)
	}
}

func (f *formatter) value(v Value, depth int) *formatter {
	switch t := v.(type) {
	case nil, Null:
		f.buf = append(f.buf, "null"...)
	case Bool:
		if t {
			f.buf = append(f.buf, "true"...)
		} else {
			f.buf = append(f.buf, "false"...)
		}
	case String:
		f.buf = escape.AppendQuote(f.buf, mem.S(string(t)))
	case Number:
		if t.Valid() {
			f.buf = append(f.buf, string(t)...)
		} else {
			f.buf = escape.AppendQuote(f.buf, mem.S(string(t)))
		}
	case Array:
		if len(t) == 0 {
			f.buf = append(f.buf, "[]"...)
			break
		}
		f.buf = append(f.buf, '[')
		for i, elt := range t {
			if i > 0 {
				f.buf = append(f.buf, ',')
			}
			f.newline(depth + 1)
			f.value(elt, depth+1)
		}
		f.newline(depth)
		f.buf = append(f.buf, ']')
	case Object:
		if len(t) == 0 {
			f.buf = append(f.buf, "{}"...)
			break
		}
		f.buf = append(f.buf, '{')
		for i, m := range t {
			if i > 0 {
				f.buf = append(f.buf, ',')
			}
			f.newline(depth + 1)
			f.buf = escape.AppendQuote(f.buf, mem.S(m.Name))
			f.buf = append(f.buf, ':')
			if f.indent != "" {
				f.buf = append(f.buf, ' ')
			}
			f.value(m.Value, depth+1)
		}
		f.newline(depth)
		f.buf = append(f.buf, '}')
	default:
		panic("unknown value type")
	}
	return f
}
