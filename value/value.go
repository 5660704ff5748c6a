// Copyright (C) 2021 Michael J. Fromberger. All Rights Reserved.

// Package value defines an immutable tree representation of JSON values,
// a parser that constructs trees from JSON source, and a serializer that
// renders trees back to JSON text.
//
// Values are never modified in place. Operations that "change" a tree, such
// as those in the edit package, return a new root that shares every
// unaffected subtree with the original. Callers must not modify the
// underlying slices of an Array or Object they did not construct.
package value

import (
	"strconv"

	"github.com/creachadair/jvedit/internal/numeric"
)

// A Value is an arbitrary JSON value. The concrete type of a Value is one of
// Null, String, Bool, Number, Array, or Object.
type Value interface {
	// Kind reports which kind of JSON value this is.
	Kind() Kind

	// JSON returns the compact JSON encoding of the value.
	JSON() string

	isValue()
}

// Kind identifies the six kinds of JSON value.
type Kind byte

// Constants defining the valid Kind values.
const (
	NullKind Kind = iota
	StringKind
	BoolKind
	NumberKind
	ArrayKind
	ObjectKind
)

var kindStr = [...]string{
	NullKind:   "null",
	StringKind: "string",
	BoolKind:   "boolean",
	NumberKind: "number",
	ArrayKind:  "array",
	ObjectKind: "object",
}

func (k Kind) String() string {
	if int(k) >= len(kindStr) {
		return "invalid"
	}
	return kindStr[k]
}

// Null represents the null constant.
type Null struct{}

func (Null) Kind() Kind     { return NullKind }
func (v Null) JSON() string { return string(AppendJSON(nil, v)) }
func (Null) isValue()       {}

// A String is a string value. It holds the unescaped string content.
type String string

func (String) Kind() Kind     { return StringKind }
func (s String) JSON() string { return string(AppendJSON(nil, s)) }
func (String) isValue()       {}

// A Bool is a Boolean constant, true or false.
type Bool bool

func (Bool) Kind() Kind     { return BoolKind }
func (b Bool) JSON() string { return string(AppendJSON(nil, b)) }
func (Bool) isValue()       {}

// A Number is a numeric value. It holds the literal text of the number as it
// appeared in the source, not a parsed representation, so that arbitrary
// precision is preserved.
//
// A Number whose text is not a valid JSON numeric literal is rendered as a
// quoted string, so that output is always valid JSON.
type Number string

func (Number) Kind() Kind     { return NumberKind }
func (n Number) JSON() string { return string(AppendJSON(nil, n)) }
func (Number) isValue()       {}

// Valid reports whether n holds a valid JSON numeric literal.
func (n Number) Valid() bool { return numeric.Valid(string(n)) }

// IsInt reports whether n is a valid literal with no fraction or exponent.
func (n Number) IsInt() bool { return numeric.IsInteger(string(n)) }

// Int64 returns the value of n as an int64, or an error if n is not an
// integer literal representable in 64 bits.
func (n Number) Int64() (int64, error) { return strconv.ParseInt(string(n), 10, 64) }

// Float64 returns the value of n as a float64. Precision may be lost.
func (n Number) Float64() (float64, error) { return strconv.ParseFloat(string(n), 64) }

// Int returns a Number with the decimal text of z.
func Int(z int64) Number { return Number(strconv.FormatInt(z, 10)) }

// Float returns a Number with the shortest text that represents f exactly.
// The result is not Valid if f is an infinity or NaN.
func Float(f float64) Number { return Number(strconv.FormatFloat(f, 'g', -1, 64)) }

// An Array is an ordered sequence of values.
type Array []Value

func (Array) Kind() Kind     { return ArrayKind }
func (a Array) JSON() string { return string(AppendJSON(nil, a)) }
func (Array) isValue()       {}

// Len reports the number of elements in a.
func (a Array) Len() int { return len(a) }

// An Object is an ordered sequence of named members. Member order is
// significant, and duplicate names are permitted.
type Object []Member

func (Object) Kind() Kind     { return ObjectKind }
func (o Object) JSON() string { return string(AppendJSON(nil, o)) }
func (Object) isValue()       {}

// Len reports the number of members in o.
func (o Object) Len() int { return len(o) }

// Index returns the position of the first member of o with the given name,
// or -1 if there is none.
func (o Object) Index(name string) int {
	for i, m := range o {
		if m.Name == name {
			return i
		}
	}
	return -1
}

// Find returns the first member of o with the given name, or nil.
func (o Object) Find(name string) *Member {
	if i := o.Index(name); i >= 0 {
		return &o[i]
	}
	return nil
}

// Names returns the names of the members of o in order.
func (o Object) Names() []string {
	out := make([]string, len(o))
	for i, m := range o {
		out[i] = m.Name
	}
	return out
}

// A Member is a single name-value pair belonging to an Object.
type Member struct {
	Name  string
	Value Value
}

// Field constructs an object member with the given name and value.
func Field(name string, v Value) Member { return Member{Name: name, Value: v} }

// Equal reports whether a and b are structurally equal. Numbers are equal if
// their literal text is identical, so 1 and 1.0 are not equal. Object members
// are compared in order.
func Equal(a, b Value) bool {
	switch av := a.(type) {
	case nil:
		return b == nil
	case Null:
		_, ok := b.(Null)
		return ok
	case String:
		bv, ok := b.(String)
		return ok && av == bv
	case Bool:
		bv, ok := b.(Bool)
		return ok && av == bv
	case Number:
		bv, ok := b.(Number)
		return ok && av == bv
	case Array:
		bv, ok := b.(Array)
		if !ok || len(av) != len(bv) {
			return false
		}
		for i := range av {
			if !Equal(av[i], bv[i]) {
				return false
			}
		}
		return true
	case Object:
		bv, ok := b.(Object)
		if !ok || len(av) != len(bv) {
			return false
		}
		for i := range av {
			if av[i].Name != bv[i].Name || !Equal(av[i].Value, bv[i].Value) {
				return false
			}
		}
		return true
	}
	return false
}
