package exprtree

import (
	"encoding/json"
	"fmt"
	"math"

	"gopkg.in/yaml.v3"
)

// ============================================================
// Tree encoding
// ============================================================
//
// A tree is encoded as nested objects:
//
//	{"type": "num", "value": 2}
//	{"type": "sym", "name": "x"}
//	{"type": "add", "operands": [lhs, rhs]}
//
// with "sub", "mul", "div" and "pow" for the other operators.

var typeNames = map[Kind]string{
	KindNumber: "num",
	KindSymbol: "sym",
	KindAdd:    "add",
	KindSub:    "sub",
	KindMul:    "mul",
	KindDiv:    "div",
	KindPow:    "pow",
}

var typeKinds = func() map[string]Kind {
	m := make(map[string]Kind, len(typeNames))
	for k, name := range typeNames {
		m[name] = k
	}
	return m
}()

// Object returns the generic object form of e, ready for encoding/json or
// yaml.v3.
func Object(e Expr) (map[string]interface{}, error) {
	return PostVisit(e, objectNode, struct{}{})
}

func objectNode(e Expr, ops []map[string]interface{}, _ struct{}) (map[string]interface{}, error) {
	switch e.Kind() {
	case KindNumber:
		return map[string]interface{}{"type": "num", "value": e.(*Number).value}, nil
	case KindSymbol:
		return map[string]interface{}{"type": "sym", "name": e.(*Symbol).name}, nil
	}
	operands := make([]interface{}, len(ops))
	for i, o := range ops {
		operands[i] = o
	}
	return map[string]interface{}{"type": typeNames[e.Kind()], "operands": operands}, nil
}

func ToJSON(e Expr) (string, error) {
	obj, err := Object(e)
	if err != nil {
		return "", err
	}
	b, err := json.Marshal(obj)
	return string(b), err
}

func ToYAML(e Expr) ([]byte, error) {
	obj, err := Object(e)
	if err != nil {
		return nil, err
	}
	return yaml.Marshal(obj)
}

// FromYAML decodes a tree written by ToYAML, or any YAML document of the
// same shape.
func FromYAML(data []byte) (Expr, error) {
	var m map[string]interface{}
	if err := yaml.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("yaml: %w", err)
	}
	if m == nil {
		return nil, fmt.Errorf("expression must be an object")
	}
	return FromJSON(m)
}

// FromJSON decodes the object form of a tree, as produced by
// json.Unmarshal into a map.
func FromJSON(data map[string]interface{}) (Expr, error) {
	if data == nil {
		return nil, fmt.Errorf("expression must be an object")
	}
	typAny, ok := data["type"]
	if !ok {
		return nil, fmt.Errorf("missing 'type' field")
	}
	typ, ok := typAny.(string)
	if !ok || typ == "" {
		return nil, fmt.Errorf("field 'type' must be a non-empty string")
	}
	kind, ok := typeKinds[typ]
	if !ok {
		return nil, fmt.Errorf("unknown expression type: %s", typ)
	}

	switch kind {
	case KindNumber:
		v, ok := data["value"]
		if !ok {
			return nil, fmt.Errorf("num: missing %q", "value")
		}
		n, err := NewNumber(v)
		if err != nil {
			return nil, fmt.Errorf("num: %q: %w", "value", err)
		}
		if math.IsNaN(n.value) || math.IsInf(n.value, 0) {
			return nil, fmt.Errorf("num: %q: %w: %v", "value", ErrNotFinite, n.value)
		}
		return n, nil

	case KindSymbol:
		v, ok := data["name"]
		if !ok {
			return nil, fmt.Errorf("sym: missing %q", "name")
		}
		s, err := NewSymbol(v)
		if err != nil {
			return nil, fmt.Errorf("sym: %q must be a non-empty string: %w", "name", err)
		}
		return s, nil
	}

	v, ok := data["operands"]
	if !ok {
		return nil, fmt.Errorf("%s: missing %q", typ, "operands")
	}
	raw, ok := v.([]interface{})
	if !ok {
		return nil, fmt.Errorf("%s: %q must be an array", typ, "operands")
	}
	if len(raw) != 2 {
		return nil, fmt.Errorf("%s: want 2 operands, got %d", typ, len(raw))
	}
	var operands [2]Expr
	for i, it := range raw {
		m, ok := it.(map[string]interface{})
		if !ok {
			return nil, fmt.Errorf("%s: operands[%d] must be an object", typ, i)
		}
		e, err := FromJSON(m)
		if err != nil {
			return nil, fmt.Errorf("%s: operands[%d]: %w", typ, i, err)
		}
		operands[i] = e
	}
	return NewBinary(kind, operands[0], operands[1]), nil
}
