// Copyright (C) 2023 Michael J. Fromberger. All Rights Reserved.

package edit_test

import (
	"reflect"
	"testing"

	"github.com/creachadair/jvedit/edit"
	"github.com/creachadair/jvedit/internal/testutil"
	"github.com/creachadair/jvedit/jspath"
	"github.com/creachadair/jvedit/value"
	"github.com/google/go-cmp/cmp"
)

const testJSON = `{
  "list": [
    {"x": 1},
    {"x": 2}
  ],
  "y": {"hello": "there"},
  "o": ["hi", "yourself"],
  "xyz": {"p": true, "d": true, "q": false},
  "y": "duplicate"
}`

// sameRef reports whether a and b are the same node: identical scalars, or
// containers sharing the same underlying storage.
func sameRef(a, b value.Value) bool {
	ra, rb := reflect.ValueOf(a), reflect.ValueOf(b)
	if !ra.IsValid() || !rb.IsValid() || ra.Type() != rb.Type() {
		return false
	}
	if ra.Kind() == reflect.Slice {
		return ra.Pointer() == rb.Pointer() && ra.Len() == rb.Len()
	}
	return a == b
}

func TestGet(t *testing.T) {
	root := testutil.MustParse(t, testJSON)
	tests := []struct {
		path string
		want string // "" means absent
	}{
		{"", root.JSON()},
		{"list", `[{"x":1},{"x":2}]`},
		{"list/1", `{"x":2}`},
		{"list/1/x", `2`},
		{"list/01", `{"x":2}`},
		{"y", `{"hello":"there"}`}, // first of duplicates
		{"y/hello", `"there"`},
		{"xyz/q", `false`},

		{"nonesuch", ""},
		{"list/2", ""},
		{"list/-1", ""},
		{"list/+1", ""},
		{"list/x", ""},
		{"list/", ""},
		{"list/9223372036854775808", ""},
		{"list/99999999999999999999", ""},
		{"o/0/0", ""}, // cannot descend into a string
		{"xyz/p/q", ""},
		{"y/hello/there", ""},
	}
	for _, test := range tests {
		got, ok := edit.Get(root, jspath.Parse(test.path))
		if test.want == "" {
			if ok {
				t.Errorf("Get %q: got %s, want absent", test.path, got.JSON())
			}
			continue
		}
		if !ok {
			t.Errorf("Get %q: got absent, want %s", test.path, test.want)
		} else if js := got.JSON(); js != test.want {
			t.Errorf("Get %q: got %s, want %s", test.path, js, test.want)
		}
	}

	if got, ok := edit.Get(root, jspath.Empty); !ok || !sameRef(got, root) {
		t.Errorf("Get empty path: got %v, %v; want root", got, ok)
	}
}

func TestSet(t *testing.T) {
	root := testutil.MustParse(t, `{"a":1,"b":[1,2,3],"c":{"d":null},"a":"dup"}`)
	tests := []struct {
		path string
		v    value.Value
		want string
	}{
		{"", value.String("new"), `"new"`},
		{"a", value.Bool(true), `{"a":true,"b":[1,2,3],"c":{"d":null},"a":"dup"}`},
		{"b/1", value.Null{}, `{"a":1,"b":[1,null,3],"c":{"d":null},"a":"dup"}`},
		{"c/d", value.Array{}, `{"a":1,"b":[1,2,3],"c":{"d":[]},"a":"dup"}`},
		{"c", value.Int(5), `{"a":1,"b":[1,2,3],"c":5,"a":"dup"}`},
	}
	for _, test := range tests {
		got := edit.Set(root, jspath.Parse(test.path), test.v)
		if js := got.JSON(); js != test.want {
			t.Errorf("Set %q: got %s, want %s", test.path, js, test.want)
		}
	}

	// The original is not modified.
	if got, want := root.JSON(), `{"a":1,"b":[1,2,3],"c":{"d":null},"a":"dup"}`; got != want {
		t.Errorf("Original changed: got %s, want %s", got, want)
	}
}

func TestSet_sharing(t *testing.T) {
	root := testutil.MustParse(t, `{"a":{"x":[1]},"b":{"y":[2]},"c":[{"z":3},{"w":4}]}`)
	got := edit.Set(root, jspath.Parse("c/1/w"), value.Int(5))

	for _, p := range []string{"a", "b", "c/0"} {
		want, _ := edit.Get(root, jspath.Parse(p))
		have, _ := edit.Get(got, jspath.Parse(p))
		if !sameRef(want, have) {
			t.Errorf("Path %q is not shared after Set", p)
		}
	}
	for _, p := range []string{"", "c", "c/1"} {
		want, _ := edit.Get(root, jspath.Parse(p))
		have, _ := edit.Get(got, jspath.Parse(p))
		if sameRef(want, have) {
			t.Errorf("Path %q was not copied by Set", p)
		}
	}
}

func TestNoOp(t *testing.T) {
	root := testutil.MustParse(t, testJSON)
	for _, p := range []string{
		"nonesuch", "list/9", "list/x", "list/-1", "o/0/0", "xyz/p/q", "y/nope",
		"list/18446744073709551617", "o/99999999999999999999/0",
	} {
		path := jspath.Parse(p)
		if v, ok := edit.Get(root, path); ok {
			t.Errorf("Get %q: got %v, want absent", p, v)
		}
		if got := edit.Set(root, path, value.Int(1)); !sameRef(got, root) {
			t.Errorf("Set %q: got %s, want original root", p, got.JSON())
		}
		if got, ok := edit.Delete(root, path); !ok || !sameRef(got, root) {
			t.Errorf("Delete %q: got %v, %v; want original root", p, got, ok)
		}
		called := false
		got, ok := edit.Map(root, path, func(v value.Value) (value.Value, bool) {
			called = true
			return v, true
		})
		if called || !ok || !sameRef(got, root) {
			t.Errorf("Map %q: called=%v, got %v, %v; want original root", p, called, got, ok)
		}
	}
}

func TestDelete(t *testing.T) {
	tests := []struct {
		input, path, want string
	}{
		{`{"foo":"bar","blah":"yalla"}`, "foo", `{"blah":"yalla"}`},
		{`{"a":1,"b":2,"c":3}`, "b", `{"a":1,"c":3}`},
		{`{"a":1,"b":2,"a":3}`, "a", `{"b":2,"a":3}`},
		{`[1,2,3]`, "0", `[2,3]`},
		{`[1,2,3]`, "2", `[1,2]`},
		{`{"x":[{"y":1,"z":2}]}`, "x/0/y", `{"x":[{"z":2}]}`},
		{`{"x":[{"y":1,"z":2}]}`, "x/0", `{"x":[]}`},
	}
	for _, test := range tests {
		root := testutil.MustParse(t, test.input)
		got, ok := edit.Delete(root, jspath.Parse(test.path))
		if !ok {
			t.Errorf("Delete %q from %s: root was deleted", test.path, test.input)
			continue
		}
		if js := got.JSON(); js != test.want {
			t.Errorf("Delete %q from %s: got %s, want %s", test.path, test.input, js, test.want)
		}
	}

	// Deleting the root reports no result.
	if got, ok := edit.Delete(value.Int(1), jspath.Empty); ok {
		t.Errorf("Delete root: got %v, want absent", got)
	}
}

func TestMap(t *testing.T) {
	root := testutil.MustParse(t, `{"n":[1,2,3],"s":"x"}`)

	double := func(v value.Value) (value.Value, bool) {
		arr, ok := v.(value.Array)
		if !ok {
			return v, true
		}
		return append(append(value.Array{}, arr...), arr...), true
	}
	got, ok := edit.Map(root, jspath.Parse("n"), double)
	if !ok {
		t.Fatal("Map: root deleted")
	}
	if js := got.JSON(); js != `{"n":[1,2,3,1,2,3],"s":"x"}` {
		t.Errorf("Map: got %s", js)
	}

	drop := func(value.Value) (value.Value, bool) { return nil, false }
	got, ok = edit.Map(root, jspath.Parse("n/1"), drop)
	if !ok || got.JSON() != `{"n":[1,3],"s":"x"}` {
		t.Errorf("Map drop: got %v, %v", got, ok)
	}
	if got, ok := edit.Map(root, jspath.Empty, drop); ok {
		t.Errorf("Map drop root: got %v, want absent", got)
	}
}

func TestMoveProperty(t *testing.T) {
	const input = `{"a":1,"b":2,"c":3}`
	tests := []struct {
		name string
		dir  edit.Direction
		want string
	}{
		{"b", edit.Up, `{"b":2,"a":1,"c":3}`},
		{"b", edit.Down, `{"a":1,"c":3,"b":2}`},
		{"c", edit.Up, `{"a":1,"c":3,"b":2}`},
		{"a", edit.Down, `{"b":2,"a":1,"c":3}`},

		// Boundaries and missing members are no-ops.
		{"a", edit.Up, input},
		{"c", edit.Down, input},
		{"nonesuch", edit.Up, input},
		{"nonesuch", edit.Down, input},
	}
	root := testutil.MustParse(t, input)
	for _, test := range tests {
		got := edit.MoveProperty(root, jspath.Empty, test.name, test.dir)
		if js := got.JSON(); js != test.want {
			t.Errorf("MoveProperty(%q, %v): got %s, want %s", test.name, test.dir, js, test.want)
		}
		if test.want == input && !sameRef(got, root) {
			t.Errorf("MoveProperty(%q, %v): no-op did not return the original", test.name, test.dir)
		}
	}

	// Nested objects, and paths that do not address an object.
	nested := testutil.MustParse(t, `{"p":{"x":1,"y":2},"q":[1,2]}`)
	if got := edit.MoveProperty(nested, jspath.Parse("p"), "y", edit.Up); got.JSON() != `{"p":{"y":2,"x":1},"q":[1,2]}` {
		t.Errorf("MoveProperty nested: got %s", got.JSON())
	}
	if got := edit.MoveProperty(nested, jspath.Parse("q"), "0", edit.Down); !sameRef(got, nested) {
		t.Errorf("MoveProperty on array: got %s, want no change", got.JSON())
	}
}

func TestMoveElement(t *testing.T) {
	const input = `[1,2,3]`
	tests := []struct {
		index int
		dir   edit.Direction
		want  string
	}{
		{1, edit.Up, `[2,1,3]`},
		{1, edit.Down, `[1,3,2]`},
		{0, edit.Up, input},
		{2, edit.Down, input},
		{5, edit.Up, input},
		{-1, edit.Down, input},
	}
	root := testutil.MustParse(t, input)
	for _, test := range tests {
		got := edit.MoveElement(root, jspath.Empty, test.index, test.dir)
		if js := got.JSON(); js != test.want {
			t.Errorf("MoveElement(%d, %v): got %s, want %s", test.index, test.dir, js, test.want)
		}
	}
}

func TestMove(t *testing.T) {
	root := testutil.MustParse(t, `{"a":[1,2,3],"b":{"x":1,"y":2},"c":"s"}`)
	tests := []struct {
		path string
		dir  edit.Direction
		want string
	}{
		{"a/2", edit.Up, `{"a":[1,3,2],"b":{"x":1,"y":2},"c":"s"}`},
		{"b/x", edit.Down, `{"a":[1,2,3],"b":{"y":2,"x":1},"c":"s"}`},
		{"c", edit.Up, `{"a":[1,2,3],"c":"s","b":{"x":1,"y":2}}`},
		{"a", edit.Up, root.JSON()},
		{"", edit.Down, root.JSON()},
		{"a/x", edit.Down, root.JSON()},
		{"c/0", edit.Down, root.JSON()},
		{"nope/0", edit.Down, root.JSON()},
		{"a/9223372036854775807", edit.Down, root.JSON()},
		{"a/99999999999999999999", edit.Up, root.JSON()},
	}
	for _, test := range tests {
		got := edit.Move(root, jspath.Parse(test.path), test.dir)
		if js := got.JSON(); js != test.want {
			t.Errorf("Move(%q, %v): got %s, want %s", test.path, test.dir, js, test.want)
		}
	}
}

func TestMergeProperties(t *testing.T) {
	tests := []struct {
		from, into, want string
	}{
		{`{"a":2,"b":2}`, `{"a":1,"c":3}`, `{"a":1,"c":3,"b":2}`},
		{`{}`, `{"a":1}`, `{"a":1}`},
		{`{"a":1,"b":2}`, `{}`, `{"a":1,"b":2}`},
		{`{"z":1,"y":2,"x":3}`, `{"y":0}`, `{"y":0,"z":1,"x":3}`},
		{`{"a":{"deep":true}}`, `{"a":null}`, `{"a":null}`},
	}
	for _, test := range tests {
		from := testutil.MustParse(t, test.from).(value.Object)
		into := testutil.MustParse(t, test.into).(value.Object)
		got := edit.MergeProperties(from, into)
		if js := got.JSON(); js != test.want {
			t.Errorf("MergeProperties(%s, %s): got %s, want %s", test.from, test.into, js, test.want)
		}

		// Neither input is modified.
		if from.JSON() != testutil.MustParse(t, test.from).JSON() ||
			into.JSON() != testutil.MustParse(t, test.into).JSON() {
			t.Errorf("MergeProperties modified its inputs")
		}
	}
}

func TestIndexOfPathInParent(t *testing.T) {
	root := testutil.MustParse(t, testJSON)
	tests := []struct {
		path string
		want int
	}{
		{"list", 0},
		{"y", 1},
		{"o", 2},
		{"xyz", 3},
		{"list/1", 1},
		{"xyz/q", 2},
		{"", -1},
		{"nonesuch", -1},
		{"list/2", -1},
		{"list/x", -1},
		{"list/99999999999999999999", -1},
		{"o/0/0", -1},
		{"nope/x", -1},
	}
	for _, test := range tests {
		if got := edit.IndexOfPathInParent(root, jspath.Parse(test.path)); got != test.want {
			t.Errorf("IndexOfPathInParent(%q): got %d, want %d", test.path, got, test.want)
		}
	}
}

func TestAdd(t *testing.T) {
	root := testutil.MustParse(t, `{"o":{"a":1},"l":[1],"s":"x"}`)

	got := edit.AddProperty(root, jspath.Parse("o"), "b", value.Null{})
	if js := got.JSON(); js != `{"o":{"a":1,"b":null},"l":[1],"s":"x"}` {
		t.Errorf("AddProperty: got %s", js)
	}
	got = edit.AddProperty(root, jspath.Parse("o"), "a", value.Int(2))
	if js := got.JSON(); js != `{"o":{"a":1,"a":2},"l":[1],"s":"x"}` {
		t.Errorf("AddProperty duplicate: got %s", js)
	}
	if got := edit.AddProperty(root, jspath.Parse("l"), "x", value.Null{}); !sameRef(got, root) {
		t.Errorf("AddProperty on array: got %s, want no change", got.JSON())
	}

	got = edit.AppendElement(root, jspath.Parse("l"), value.String("two"))
	if js := got.JSON(); js != `{"o":{"a":1},"l":[1,"two"],"s":"x"}` {
		t.Errorf("AppendElement: got %s", js)
	}
	if got := edit.AppendElement(root, jspath.Parse("s"), value.Null{}); !sameRef(got, root) {
		t.Errorf("AppendElement on string: got %s, want no change", got.JSON())
	}
	if got := edit.AppendElement(value.Array{}, jspath.Empty, value.Int(1)); got.JSON() != `[1]` {
		t.Errorf("AppendElement at root: got %s", got.JSON())
	}
}

func TestOrderPreservation(t *testing.T) {
	root := testutil.MustParse(t, `{"e":5,"d":4,"c":3,"b":2,"a":1}`)
	names := func(v value.Value) []string { return v.(value.Object).Names() }

	set := edit.Set(root, jspath.Parse("c"), value.Null{})
	if diff := cmp.Diff([]string{"e", "d", "c", "b", "a"}, names(set)); diff != "" {
		t.Errorf("Set order (-want, +got):\n%s", diff)
	}
	del, _ := edit.Delete(root, jspath.Parse("c"))
	if diff := cmp.Diff([]string{"e", "d", "b", "a"}, names(del)); diff != "" {
		t.Errorf("Delete order (-want, +got):\n%s", diff)
	}
}
