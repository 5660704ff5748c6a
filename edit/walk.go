// Copyright (C) 2023 Michael J. Fromberger. All Rights Reserved.

package edit

import (
	"errors"

	"github.com/creachadair/jvedit/jspath"
	"github.com/creachadair/jvedit/value"
)

// SkipChildren is returned by a WalkFunc to skip the descendants of the
// current node. Walk does not report it as an error.
var SkipChildren = errors.New("skip children")

// A WalkFunc is called by Walk for each node of a tree, with the path of the
// node from the root.
type WalkFunc func(path jspath.Path, v value.Value) error

// Walk calls f for each node of root in document order, parents before their
// children. If f reports an error other than SkipChildren, the walk stops and
// Walk returns that error.
//
// The path of a member whose name duplicates an earlier member of the same
// object addresses the earlier member, since that is how edits resolve it.
func Walk(root value.Value, f WalkFunc) error {
	type entry struct {
		path jspath.Path
		v    value.Value
	}
	stk := []entry{{jspath.Empty, root}}
	for len(stk) != 0 {
		next := stk[len(stk)-1]
		stk = stk[:len(stk)-1]

		if err := f(next.path, next.v); errors.Is(err, SkipChildren) {
			continue
		} else if err != nil {
			return err
		}

		// Push in reverse order, so we visit in document order.
		switch t := next.v.(type) {
		case value.Object:
			for i := len(t) - 1; i >= 0; i-- {
				stk = append(stk, entry{next.path.Append(t[i].Name), t[i].Value})
			}
		case value.Array:
			for i := len(t) - 1; i >= 0; i-- {
				stk = append(stk, entry{next.path.AppendIndex(i), t[i]})
			}
		}
	}
	return nil
}

// Paths returns the paths of all the nodes of root in document order,
// beginning with the empty path of the root itself.
func Paths(root value.Value) []jspath.Path {
	var out []jspath.Path
	Walk(root, func(p jspath.Path, _ value.Value) error {
		out = append(out, p)
		return nil
	})
	return out
}
