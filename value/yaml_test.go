// Copyright (C) 2023 Michael J. Fromberger. All Rights Reserved.

package value_test

import (
	"fmt"
	"strings"
	"testing"

	"github.com/creachadair/jvedit/value"
)

func TestFromYAML(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"null", `null`},
		{"~", `null`},
		{"true", `true`},
		{"hello", `"hello"`},
		{`"123"`, `"123"`},
		{"9999999999999999", `9999999999999999`},
		{"1.50", `1.50`},
		{"0x1f", `31`},
		{"- a\n- 2\n- [x, {y: z}]\n", `["a",2,["x",{"y":"z"}]]`},
		{"zeta: 1\nalpha: 2\nmid: {}\n", `{"zeta":1,"alpha":2,"mid":{}}`},
		{"base: &b {x: 1}\nuse: *b\n", `{"base":{"x":1},"use":{"x":1}}`},
	}
	for _, test := range tests {
		v, err := value.FromYAML([]byte(test.input))
		if err != nil {
			t.Errorf("FromYAML(%q): unexpected error: %v", test.input, err)
			continue
		}
		if got := v.JSON(); got != test.want {
			t.Errorf("FromYAML(%q): got %s, want %s", test.input, got, test.want)
		}
	}
}

// nestedAliases returns a YAML document of the given depth in which each
// level is a sequence of ten aliases to the level before it.
func nestedAliases(depth int) string {
	var sb strings.Builder
	sb.WriteString("l0: &l0 [x, x, x, x, x, x, x, x, x, x]\n")
	for i := 1; i <= depth; i++ {
		ref := fmt.Sprintf("*l%d", i-1)
		refs := strings.TrimSuffix(strings.Repeat(ref+", ", 10), ", ")
		fmt.Fprintf(&sb, "l%d: &l%d [%s]\n", i, i, refs)
	}
	return sb.String()
}

func TestFromYAML_errors(t *testing.T) {
	for _, input := range []string{
		"",
		".inf",
		"? [a, b]\n: c\n",
		"a: [",
		"a: &x [1, *x]\n",
		"a: &x {b: [*x]}\n",
		nestedAliases(9),
	} {
		if v, err := value.FromYAML([]byte(input)); err == nil {
			t.Errorf("FromYAML(%q): got %v, want error", input, v)
		} else {
			t.Logf("FromYAML(%q): got expected error: %v", input, err)
		}
	}
}

func TestFromYAML_aliases(t *testing.T) {
	// Repeated aliases that do not refer to themselves are expanded.
	v, err := value.FromYAML([]byte(nestedAliases(2)))
	if err != nil {
		t.Fatalf("FromYAML: unexpected error: %v", err)
	}
	obj, ok := v.(value.Object)
	if !ok || len(obj) != 3 {
		t.Fatalf("FromYAML: got %s, want an object with 3 members", v.JSON())
	}
	l2, ok := obj[2].Value.(value.Array)
	if !ok || len(l2) != 10 {
		t.Fatalf("l2: got %s, want 10 elements", obj[2].Value.JSON())
	}
	if got, want := l2[9].JSON(), obj[1].Value.JSON(); got != want {
		t.Errorf("l2[9]: got %s, want %s", got, want)
	}
}

func TestYAMLRoundTrip(t *testing.T) {
	for _, input := range []string{
		`null`,
		`{"b":1,"a":[true,false,null],"c":{"d":"true","e":"1.5","f":""}}`,
		`[9999999999999999,1.5e10,-3,"x: y",[],{}]`,
	} {
		want := value.MustParse(input)
		data, err := value.ToYAML(want)
		if err != nil {
			t.Fatalf("ToYAML(%s): %v", input, err)
		}
		got, err := value.FromYAML(data)
		if err != nil {
			t.Fatalf("FromYAML(%q): %v", data, err)
		}
		if !value.Equal(want, got) {
			t.Errorf("YAML round trip of %s:\nyaml: %s\ngot: %s", input, data, got.JSON())
		}
	}
}
