// Copyright (C) 2023 Michael J. Fromberger. All Rights Reserved.

// Package edit implements pure structural edits on trees of JSON values,
// addressed by paths.
//
// Every function in this package treats its inputs as immutable. An edit
// returns a new root that shares all unaffected subtrees with the original;
// only the ancestors of the edited node are copied.
//
// Navigation is lenient: a path segment that names a missing member, an
// out-of-range or non-numeric array index, or a step into a scalar does not
// resolve. Reads report such a path as absent, and edits at such a path
// return the original root unchanged rather than an error. Within an object,
// a segment addresses the first member with that name.
package edit

import (
	"math"

	"github.com/creachadair/jvedit/jspath"
	"github.com/creachadair/jvedit/value"
	"github.com/creachadair/mds/mapset"
)

// Direction is the direction in which to move a member or element.
type Direction int

const (
	// Up moves toward the beginning (index - 1).
	Up Direction = iota

	// Down moves toward the end (index + 1).
	Down
)

func (d Direction) String() string {
	if d == Up {
		return "up"
	}
	return "down"
}

// offset returns the index delta for a move in direction d.
func (d Direction) offset() int {
	if d == Up {
		return -1
	}
	return 1
}

// Get returns the value at path within root. It reports false if the path
// does not resolve. The empty path resolves to root itself.
func Get(root value.Value, path jspath.Path) (value.Value, bool) {
	cur := root
	for i := 0; i < path.Len(); i++ {
		next, ok := child(cur, path.Elem(i))
		if !ok {
			return nil, false
		}
		cur = next
	}
	return cur, true
}

// child returns the child of v addressed by seg, if any.
func child(v value.Value, seg string) (value.Value, bool) {
	switch t := v.(type) {
	case value.Object:
		if i := t.Index(seg); i >= 0 {
			return t[i].Value, true
		}
	case value.Array:
		if i, ok := parseIndex(seg); ok && i < len(t) {
			return t[i], true
		}
	}
	return nil, false
}

// parseIndex parses seg as a non-negative decimal array index. Only decimal
// digits are accepted, so signs, spaces, and trailing text do not resolve.
// Indexes too large for an int do not resolve either.
func parseIndex(seg string) (int, bool) {
	if seg == "" {
		return 0, false
	}
	var n int
	for i := 0; i < len(seg); i++ {
		c := seg[i]
		if c < '0' || c > '9' {
			return 0, false
		}
		d := int(c - '0')
		if n > (math.MaxInt-d)/10 {
			return 0, false
		}
		n = n*10 + d
	}
	return n, true
}

// A MapFunc computes a replacement for the value it is given. If it returns
// false, the value is deleted from its parent.
type MapFunc func(value.Value) (value.Value, bool)

// Map applies f to the value at path within root and returns the updated
// root. If f reports false, the value is removed from its parent object or
// array, and if path is empty Map returns nil, false: the root itself was
// deleted, and the caller must decide what replaces it.
//
// If path does not resolve, f is not called and Map returns root unchanged.
func Map(root value.Value, path jspath.Path, f MapFunc) (value.Value, bool) {
	out, keep, _ := mapAt(root, path, 0, func(v value.Value) (value.Value, bool, bool) {
		nv, ok := f(v)
		return nv, ok, true
	})
	return out, keep
}

// editFunc is the internal form of a MapFunc. It additionally reports whether
// it changed its input, so that no-op edits preserve the original tree.
type editFunc func(value.Value) (out value.Value, keep, changed bool)

// mapAt applies f to the node at path[i:] below v. It returns the new node,
// whether the node is kept, and whether anything changed. If nothing changed,
// the result is v itself.
func mapAt(v value.Value, path jspath.Path, i int, f editFunc) (value.Value, bool, bool) {
	if i == path.Len() {
		return f(v)
	}
	seg := path.Elem(i)
	switch t := v.(type) {
	case value.Object:
		pos := t.Index(seg)
		if pos < 0 {
			return v, true, false
		}
		nv, keep, changed := mapAt(t[pos].Value, path, i+1, f)
		if !changed {
			return v, true, false
		}
		out := make(value.Object, 0, len(t))
		out = append(out, t[:pos]...)
		if keep {
			out = append(out, value.Member{Name: t[pos].Name, Value: nv})
		}
		return append(out, t[pos+1:]...), true, true

	case value.Array:
		pos, ok := parseIndex(seg)
		if !ok || pos >= len(t) {
			return v, true, false
		}
		nv, keep, changed := mapAt(t[pos], path, i+1, f)
		if !changed {
			return v, true, false
		}
		out := make(value.Array, 0, len(t))
		out = append(out, t[:pos]...)
		if keep {
			out = append(out, nv)
		}
		return append(out, t[pos+1:]...), true, true
	}
	return v, true, false // cannot descend into a scalar
}

// Set returns a copy of root with the value at path replaced by v. If path is
// empty, the result is v. If path does not resolve, Set returns root.
// Set never adds new members or elements; see AddProperty and AppendElement.
func Set(root value.Value, path jspath.Path, v value.Value) value.Value {
	out, keep, _ := mapAt(root, path, 0, func(value.Value) (value.Value, bool, bool) {
		return v, true, true
	})
	if !keep {
		return root
	}
	return out
}

// Delete returns a copy of root with the value at path removed from its
// parent. Deleting the root itself (the empty path) reports nil, false. If
// path does not resolve, Delete returns root, true.
func Delete(root value.Value, path jspath.Path) (value.Value, bool) {
	out, keep, _ := mapAt(root, path, 0, func(value.Value) (value.Value, bool, bool) {
		return nil, false, true
	})
	if !keep {
		return nil, false
	}
	return out, true
}

// swap returns a copy of s with the elements at i and i+d.offset() exchanged.
// It reports false without copying if either index is out of range.
func swap[T any, S ~[]T](s S, i int, d Direction) (S, bool) {
	j := i + d.offset()
	if i < 0 || i >= len(s) || j < 0 || j >= len(s) {
		return s, false
	}
	out := make(S, len(s))
	copy(out, s)
	out[i], out[j] = s[j], s[i]
	return out, true
}

// MoveProperty swaps the first member named name of the object at objectPath
// with its neighbor in direction d. If there is no such object or member, or
// the member has no neighbor in that direction, root is returned unchanged.
func MoveProperty(root value.Value, objectPath jspath.Path, name string, d Direction) value.Value {
	out, _, _ := mapAt(root, objectPath, 0, func(v value.Value) (value.Value, bool, bool) {
		obj, ok := v.(value.Object)
		if !ok {
			return v, true, false
		}
		moved, ok := swap(obj, obj.Index(name), d)
		if !ok {
			return v, true, false
		}
		return moved, true, true
	})
	return out
}

// MoveElement swaps the element at index of the array at arrayPath with its
// neighbor in direction d. If there is no such array or element, or the
// element has no neighbor in that direction, root is returned unchanged.
func MoveElement(root value.Value, arrayPath jspath.Path, index int, d Direction) value.Value {
	out, _, _ := mapAt(root, arrayPath, 0, func(v value.Value) (value.Value, bool, bool) {
		arr, ok := v.(value.Array)
		if !ok {
			return v, true, false
		}
		moved, ok := swap(arr, index, d)
		if !ok {
			return v, true, false
		}
		return moved, true, true
	})
	return out
}

// Move moves the node at path one position in direction d within its parent,
// which may be an object or an array. If path is empty or does not resolve,
// or the move is out of bounds, root is returned unchanged.
func Move(root value.Value, path jspath.Path, d Direction) value.Value {
	parentPath, ok := path.Parent()
	if !ok {
		return root
	}
	last, _ := path.Last()
	parent, ok := Get(root, parentPath)
	if !ok {
		return root
	}
	switch parent.(type) {
	case value.Object:
		return MoveProperty(root, parentPath, last, d)
	case value.Array:
		if i, ok := parseIndex(last); ok {
			return MoveElement(root, parentPath, i, d)
		}
	}
	return root
}

// MergeProperties returns an object containing every member of into, in
// order, followed by each member of from whose name does not occur in into,
// in the order they appear in from. Members of into win on conflicts.
func MergeProperties(from, into value.Object) value.Object {
	have := mapset.New(into.Names()...)
	out := make(value.Object, len(into), len(into)+len(from))
	copy(out, into)
	for _, m := range from {
		if !have.Has(m.Name) {
			out = append(out, m)
		}
	}
	return out
}

// IndexOfPathInParent returns the position of the node addressed by path
// among the children of its parent: the index of the first member with that
// name in an object, or the element index in an array. It returns -1 if path
// is empty, the parent does not resolve or is a scalar, or the last segment
// does not address an existing child.
func IndexOfPathInParent(root value.Value, path jspath.Path) int {
	parentPath, ok := path.Parent()
	if !ok {
		return -1
	}
	last, _ := path.Last()
	parent, ok := Get(root, parentPath)
	if !ok {
		return -1
	}
	switch t := parent.(type) {
	case value.Object:
		return t.Index(last)
	case value.Array:
		if i, ok := parseIndex(last); ok && i < len(t) {
			return i
		}
	}
	return -1
}

// AddProperty appends a member with the given name and value to the object
// at objectPath. The new member is added even if the object already has a
// member with that name. If objectPath does not resolve to an object, root
// is returned unchanged.
func AddProperty(root value.Value, objectPath jspath.Path, name string, v value.Value) value.Value {
	out, _, _ := mapAt(root, objectPath, 0, func(cur value.Value) (value.Value, bool, bool) {
		obj, ok := cur.(value.Object)
		if !ok {
			return cur, true, false
		}
		nobj := make(value.Object, len(obj), len(obj)+1)
		copy(nobj, obj)
		return append(nobj, value.Member{Name: name, Value: v}), true, true
	})
	return out
}

// AppendElement appends v to the end of the array at arrayPath. If arrayPath
// does not resolve to an array, root is returned unchanged.
func AppendElement(root value.Value, arrayPath jspath.Path, v value.Value) value.Value {
	out, _, _ := mapAt(root, arrayPath, 0, func(cur value.Value) (value.Value, bool, bool) {
		arr, ok := cur.(value.Array)
		if !ok {
			return cur, true, false
		}
		narr := make(value.Array, len(arr), len(arr)+1)
		copy(narr, arr)
		return append(narr, v), true, true
	})
	return out
}
