// Package testutil defines support code for unit tests.
package testutil

import (
	"testing"

	"github.com/creachadair/jvedit/jspath"
	"github.com/creachadair/jvedit/value"
)

// MustParse parses s as a single JSON value, or fails t.
func MustParse(t testing.TB, s string) value.Value {
	t.Helper()
	v, err := value.ParseString(s)
	if err != nil {
		t.Fatalf("Parse %#q: %v", s, err)
	}
	return v
}

// Path parses s as a slash-separated path.
func Path(s string) jspath.Path { return jspath.Parse(s) }

// JSON returns the compact encoding of v, or "<absent>" if ok is false.
// It is meant for reporting the optional results of lookups.
func JSON(v value.Value, ok bool) string {
	if !ok {
		return "<absent>"
	}
	return v.JSON()
}
