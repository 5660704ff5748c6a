// Copyright (C) 2023 Michael J. Fromberger. All Rights Reserved.

package value

import (
	"bytes"
	"errors"
	"fmt"
	"math"
	"strconv"

	"github.com/creachadair/jvedit/internal/numeric"
	"gopkg.in/yaml.v3"
)

// FromYAML parses a single YAML document from data and converts it to a
// Value. Mapping order is preserved. Integer and floating-point scalars
// whose text is already a valid JSON numeric literal keep that text; other
// numeric forms (such as 0x1f or 1_000) are converted to their decimal
// value. Non-finite floats and non-string mapping keys are rejected.
// Aliases are expanded in place, but an alias inside the node it refers to
// is an error, as is a document that expands to too many values.
func FromYAML(data []byte) (Value, error) {
	var doc yaml.Node
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, err
	}
	if doc.Kind == 0 {
		return nil, errors.New("empty YAML document")
	}
	d := &yamlDecoder{
		expanding: make(map[*yaml.Node]bool),
		budget:    max(minAliasBudget, aliasRatio*len(data)),
	}
	return d.fromNode(&doc)
}

// Alias expansion may produce at most aliasRatio values per byte of input,
// and no fewer than minAliasBudget values in all.
const (
	aliasRatio     = 100
	minAliasBudget = 10000
)

// A yamlDecoder converts a tree of YAML nodes to values. It tracks the
// anchors being expanded on the current path, and the number of values it
// may still produce.
type yamlDecoder struct {
	expanding map[*yaml.Node]bool
	budget    int
}

func (d *yamlDecoder) fromNode(n *yaml.Node) (Value, error) {
	if d.budget--; d.budget < 0 {
		return nil, fmt.Errorf("line %d: document is too large after alias expansion", n.Line)
	}
	switch n.Kind {
	case yaml.DocumentNode:
		if len(n.Content) != 1 {
			return nil, fmt.Errorf("line %d: document has %d values", n.Line, len(n.Content))
		}
		return d.fromNode(n.Content[0])

	case yaml.AliasNode:
		if n.Alias == nil {
			return nil, fmt.Errorf("line %d: unknown anchor %q", n.Line, n.Value)
		} else if d.expanding[n.Alias] {
			return nil, fmt.Errorf("line %d: alias %q refers to itself", n.Line, n.Value)
		}
		d.expanding[n.Alias] = true
		defer delete(d.expanding, n.Alias)
		return d.fromNode(n.Alias)

	case yaml.SequenceNode:
		arr := make(Array, len(n.Content))
		for i, elt := range n.Content {
			v, err := d.fromNode(elt)
			if err != nil {
				return nil, err
			}
			arr[i] = v
		}
		return arr, nil

	case yaml.MappingNode:
		obj := make(Object, 0, len(n.Content)/2)
		for i := 0; i+1 < len(n.Content); i += 2 {
			key, val := n.Content[i], n.Content[i+1]
			if key.Kind != yaml.ScalarNode {
				return nil, fmt.Errorf("line %d: mapping key is not a scalar", key.Line)
			}
			v, err := d.fromNode(val)
			if err != nil {
				return nil, err
			}
			obj = append(obj, Member{Name: key.Value, Value: v})
		}
		return obj, nil

	case yaml.ScalarNode:
		return fromScalar(n)
	}
	return nil, fmt.Errorf("line %d: unknown YAML node kind %v", n.Line, n.Kind)
}

func fromScalar(n *yaml.Node) (Value, error) {
	switch n.ShortTag() {
	case "!!null":
		return Null{}, nil
	case "!!bool":
		var b bool
		if err := n.Decode(&b); err != nil {
			return nil, err
		}
		return Bool(b), nil
	case "!!int":
		if numeric.Valid(n.Value) {
			return Number(n.Value), nil
		}
		var z int64
		if err := n.Decode(&z); err != nil {
			var u uint64
			if uerr := n.Decode(&u); uerr != nil {
				return nil, fmt.Errorf("line %d: %w", n.Line, err)
			}
			return Number(strconv.FormatUint(u, 10)), nil
		}
		return Int(z), nil
	case "!!float":
		if numeric.Valid(n.Value) {
			return Number(n.Value), nil
		}
		var f float64
		if err := n.Decode(&f); err != nil {
			return nil, fmt.Errorf("line %d: %w", n.Line, err)
		}
		if math.IsInf(f, 0) || math.IsNaN(f) {
			return nil, fmt.Errorf("line %d: non-finite number %q", n.Line, n.Value)
		}
		return Float(f), nil
	default:
		return String(n.Value), nil
	}
}

// ToYAML renders v as a YAML document. Object member order is preserved, and
// numbers are written with their literal text.
func ToYAML(v Value) ([]byte, error) {
	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(toNode(v)); err != nil {
		return nil, err
	}
	if err := enc.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func toNode(v Value) *yaml.Node {
	switch t := v.(type) {
	case nil, Null:
		return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!null", Value: "null"}
	case Bool:
		return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!bool", Value: strconv.FormatBool(bool(t))}
	case String:
		return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: string(t)}
	case Number:
		if !t.Valid() {
			return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: string(t)}
		} else if t.IsInt() {
			return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!int", Value: string(t)}
		}
		return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!float", Value: string(t)}
	case Array:
		n := &yaml.Node{Kind: yaml.SequenceNode, Tag: "!!seq"}
		if len(t) == 0 {
			n.Style = yaml.FlowStyle
		}
		for _, elt := range t {
			n.Content = append(n.Content, toNode(elt))
		}
		return n
	case Object:
		n := &yaml.Node{Kind: yaml.MappingNode, Tag: "!!map"}
		if len(t) == 0 {
			n.Style = yaml.FlowStyle
		}
		for _, m := range t {
			n.Content = append(n.Content,
				&yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: m.Name},
				toNode(m.Value))
		}
		return n
	default:
		panic(fmt.Sprintf("unknown value type %T", v))
	}
}
