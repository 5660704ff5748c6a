// Copyright (C) 2023 Michael J. Fromberger. All Rights Reserved.

// Package facade defines the boundary between a document editor and an
// external schema validation service.
//
// The validator itself lives outside this module. A caller supplies a
// Validator, and the editor consumes the Result it returns: the validation
// errors, proposed values for a path, and the string formats a schema
// associates with a path. Paths at this boundary are jspath.Path values
// whose string form is the slash-separated format.
package facade

import (
	"fmt"
	"slices"

	"github.com/creachadair/jvedit/jspath"
	"github.com/creachadair/jvedit/value"
	json "github.com/goccy/go-json"
)

// An Error is a single validation failure reported for a path.
type Error struct {
	Path    jspath.Path `json:"path"`
	Message string      `json:"message"`
}

func (e Error) String() string {
	if e.Path.IsEmpty() {
		return e.Message
	}
	return fmt.Sprintf("%s: %s", e.Path, e.Message)
}

// A Result is the outcome of validating a document against a schema.
type Result interface {
	// Errors reports all the validation errors, in the order the validator
	// produced them.
	Errors() []Error

	// Propose returns candidate values for the node at path. If maxDepth is
	// non-negative, each proposal keeps at most maxDepth levels of content
	// (see Truncate); a negative maxDepth means no limit.
	Propose(path jspath.Path, maxDepth int) []value.Value

	// Formats returns the string formats the schema declares for path.
	Formats(path jspath.Path) []string
}

// A Validator checks a document against a schema.
type Validator interface {
	Validate(schema, doc value.Value) (Result, error)
}

// ValidatorFunc adapts a function to the Validator interface.
type ValidatorFunc func(schema, doc value.Value) (Result, error)

// Validate implements the Validator interface by calling f.
func (f ValidatorFunc) Validate(schema, doc value.Value) (Result, error) { return f(schema, doc) }

// ErrorsAt returns the errors of res reported exactly at path.
func ErrorsAt(res Result, path jspath.Path) []Error {
	if res == nil {
		return nil
	}
	var out []Error
	for _, e := range res.Errors() {
		if e.Path.Equal(path) {
			out = append(out, e)
		}
	}
	return out
}

// ErrorsUnder returns the errors of res reported at path or any of its
// descendants. Paths are compared segment by segment.
func ErrorsUnder(res Result, path jspath.Path) []Error {
	if res == nil {
		return nil
	}
	var out []Error
	for _, e := range res.Errors() {
		if path.IsParentOf(e.Path) {
			out = append(out, e)
		}
	}
	return out
}

// Report is a Result decoded from the JSON report of a validation service:
//
//	{
//	  "errors":    [{"path": "a/0", "message": "..."}, ...],
//	  "proposals": {"a/0": [<json>, ...], ...},
//	  "formats":   {"a/0": ["date", ...], ...}
//	}
//
// The keys of "proposals" and "formats" are slash-separated paths, with ""
// denoting the root. All three fields are optional.
type Report struct {
	errs      []Error
	proposals map[string][]value.Value
	formats   map[string][]string
}

type wireReport struct {
	Errors    []Error                      `json:"errors"`
	Proposals map[string][]json.RawMessage `json:"proposals"`
	Formats   map[string][]string          `json:"formats"`
}

// DecodeReport decodes a validation report from its JSON encoding.
// Proposal values are parsed with the value package, so numeric literals are
// preserved exactly as the service wrote them.
func DecodeReport(data []byte) (*Report, error) {
	var w wireReport
	if err := json.Unmarshal(data, &w); err != nil {
		return nil, fmt.Errorf("decode report: %w", err)
	}
	r := &Report{
		errs:      w.Errors,
		proposals: make(map[string][]value.Value, len(w.Proposals)),
		formats:   w.Formats,
	}
	for path, raw := range w.Proposals {
		vs := make([]value.Value, len(raw))
		for i, msg := range raw {
			v, err := value.Parse(msg)
			if err != nil {
				return nil, fmt.Errorf("decode report: proposal %d for %q: %w", i, path, err)
			}
			vs[i] = v
		}
		r.proposals[path] = vs
	}
	return r, nil
}

// Errors implements part of the Result interface.
func (r *Report) Errors() []Error { return slices.Clone(r.errs) }

// Propose implements part of the Result interface.
func (r *Report) Propose(path jspath.Path, maxDepth int) []value.Value {
	vs := r.proposals[path.String()]
	if len(vs) == 0 {
		return nil
	}
	out := make([]value.Value, len(vs))
	for i, v := range vs {
		out[i] = Truncate(v, maxDepth)
	}
	return out
}

// Formats implements part of the Result interface.
func (r *Report) Formats(path jspath.Path) []string { return slices.Clone(r.formats[path.String()]) }

// Truncate returns v with at most depth levels of container content. An array
// or object reached after depth levels is replaced by an empty container of
// the same kind, so Truncate(v, 0) of a container is empty. Scalars are never
// changed. If depth < 0, v is returned unchanged.
func Truncate(v value.Value, depth int) value.Value {
	if depth < 0 {
		return v
	}
	switch t := v.(type) {
	case value.Object:
		if depth == 0 {
			return value.Object{}
		}
		out := make(value.Object, len(t))
		for i, m := range t {
			out[i] = value.Member{Name: m.Name, Value: Truncate(m.Value, depth-1)}
		}
		return out
	case value.Array:
		if depth == 0 {
			return value.Array{}
		}
		out := make(value.Array, len(t))
		for i, e := range t {
			out[i] = Truncate(e, depth-1)
		}
		return out
	}
	return v
}
