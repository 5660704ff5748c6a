// Copyright (C) 2021 Michael J. Fromberger. All Rights Reserved.

// Package jspath defines paths that address nodes within a tree of JSON
// values.
//
// A Path is an immutable sequence of string segments. Each segment names an
// object member, or an array element by its decimal index. The empty path
// addresses the root. The string form of a path joins its segments with "/";
// this is a private addressing convention and is not a JSON Pointer: no
// escaping is applied, so a member name containing "/" cannot be addressed by
// a parsed string, only by a path built with Append.
package jspath

import (
	"slices"
	"strconv"
	"strings"
)

// Separator is the default separator between path segments.
const Separator = "/"

// A Path is an immutable sequence of segments. The zero value is the empty
// path, which addresses the root.
type Path struct {
	elems []string
}

// Empty is the empty path.
var Empty Path

// Of returns a path with the given segments.
func Of(elems ...string) Path {
	if len(elems) == 0 {
		return Empty
	}
	return Path{elems: slices.Clone(elems)}
}

// Parse parses s as a path whose segments are separated by "/". The empty
// string parses as the empty path. Every other input is split at each "/",
// so "a//b" has an empty middle segment.
func Parse(s string) Path {
	if s == "" {
		return Empty
	}
	return Path{elems: strings.Split(s, Separator)}
}

// IsEmpty reports whether p is the empty path.
func (p Path) IsEmpty() bool { return len(p.elems) == 0 }

// Len reports the number of segments in p.
func (p Path) Len() int { return len(p.elems) }

// Elems returns a copy of the segments of p.
func (p Path) Elems() []string { return append(make([]string, 0, len(p.elems)), p.elems...) }

// Elem returns the segment of p at index i. It panics if i is out of range.
func (p Path) Elem(i int) string { return p.elems[i] }

// Head returns the first segment of p, or "", false if p is empty.
func (p Path) Head() (string, bool) {
	if len(p.elems) == 0 {
		return "", false
	}
	return p.elems[0], true
}

// Tail returns the path of all segments of p after the first.
// The tail of the empty path is empty.
func (p Path) Tail() Path {
	if len(p.elems) <= 1 {
		return Empty
	}
	return Path{elems: p.elems[1:]}
}

// Last returns the final segment of p, or "", false if p is empty.
func (p Path) Last() (string, bool) {
	if len(p.elems) == 0 {
		return "", false
	}
	return p.elems[len(p.elems)-1], true
}

// Parent returns the path of all segments of p except the last. It reports
// false if p is empty, since the root has no parent.
func (p Path) Parent() (Path, bool) {
	if len(p.elems) == 0 {
		return Empty, false
	}
	return Path{elems: p.elems[:len(p.elems)-1]}, true
}

// Append returns a new path with elem added after the segments of p.
// The receiver is not modified.
func (p Path) Append(elem string) Path {
	return Path{elems: append(slices.Clip(p.elems), elem)}
}

// AppendIndex returns a new path with the decimal form of i added after the
// segments of p.
func (p Path) AppendIndex(i int) Path { return p.Append(strconv.Itoa(i)) }

// Concat returns a new path with the segments of q after those of p.
func (p Path) Concat(q Path) Path {
	if q.IsEmpty() {
		return p
	}
	return Path{elems: slices.Concat(p.elems, q.elems)}
}

// IsParentOf reports whether the segments of p are a prefix of the segments
// of q. Every path is a parent of itself, and the empty path is a parent of
// every path. Segments are compared whole, so "a1" is not a parent of "a10".
func (p Path) IsParentOf(q Path) bool {
	if len(p.elems) > len(q.elems) {
		return false
	}
	return slices.Equal(p.elems, q.elems[:len(p.elems)])
}

// Equal reports whether p and q have the same segments.
func (p Path) Equal(q Path) bool { return slices.Equal(p.elems, q.elems) }

// Format returns the segments of p joined by sep.
func (p Path) Format(sep string) string { return strings.Join(p.elems, sep) }

// String returns the segments of p joined by "/".
func (p Path) String() string { return p.Format(Separator) }

// MarshalText implements the encoding.TextMarshaler interface.
func (p Path) MarshalText() ([]byte, error) { return []byte(p.String()), nil }

// UnmarshalText implements the encoding.TextUnmarshaler interface.
func (p *Path) UnmarshalText(data []byte) error {
	*p = Parse(string(data))
	return nil
}
