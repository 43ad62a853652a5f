package exprtree_test

import (
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/njchilds90/exprtree"
)

func decodeJSON(t *testing.T, s string) map[string]interface{} {
	t.Helper()
	var m map[string]interface{}
	if err := json.Unmarshal([]byte(s), &m); err != nil {
		t.Fatalf("invalid JSON %s: %v", s, err)
	}
	return m
}

// ============================================================
// JSON tests
// ============================================================

func TestToJSON(t *testing.T) {
	got, err := exprtree.ToJSON(exprtree.Add(x, exprtree.Num(2)))
	if err != nil {
		t.Fatal(err)
	}
	want := `{"operands":[{"name":"x","type":"sym"},{"type":"num","value":2}],"type":"add"}`
	if got != want {
		t.Errorf("want %s, got %s", want, got)
	}
}

func TestJSON_RoundTrip(t *testing.T) {
	for _, e := range sampleTrees() {
		s, err := exprtree.ToJSON(e)
		if err != nil {
			t.Fatal(err)
		}
		back, err := exprtree.FromJSON(decodeJSON(t, s))
		if err != nil {
			t.Fatalf("FromJSON(%s): %v", s, err)
		}
		if back.GoString() != e.GoString() {
			t.Errorf("round trip changed the tree: want %#v, got %#v", e, back)
		}

		want, _ := exprtree.Object(e)
		got, _ := exprtree.Object(back)
		if diff := cmp.Diff(want, got); diff != "" {
			t.Errorf("object form mismatch (-want +got):\n%s", diff)
		}
	}
}

func TestFromJSON_Errors(t *testing.T) {
	tests := []struct {
		in      string
		wantErr string
	}{
		{`{}`, "missing 'type'"},
		{`{"type": 3}`, "must be a non-empty string"},
		{`{"type": "mod", "operands": []}`, "unknown expression type: mod"},
		{`{"type": "num"}`, `num: missing "value"`},
		{`{"type": "add", "operands": [{"type": "num", "value": 1}]}`, "add: want 2 operands, got 1"},
		{`{"type": "add", "operands": {}}`, `add: "operands" must be an array`},
		{`{"type": "mul", "operands": [{"type": "num", "value": 1}, 2]}`, "mul: operands[1] must be an object"},
		{`{"type": "add", "operands": [{"type": "sym", "name": "x"}, {"type": "sym", "name": ""}]}`, "add: operands[1]: sym:"},
	}
	for _, tt := range tests {
		_, err := exprtree.FromJSON(decodeJSON(t, tt.in))
		if err == nil {
			t.Errorf("FromJSON(%s) should fail", tt.in)
			continue
		}
		if !strings.Contains(err.Error(), tt.wantErr) {
			t.Errorf("FromJSON(%s): want error containing %q, got %q", tt.in, tt.wantErr, err)
		}
	}
}

func TestFromJSON_TypeKind(t *testing.T) {
	_, err := exprtree.FromJSON(decodeJSON(t, `{"type": "num", "value": "not a number"}`))
	if !errors.Is(err, exprtree.ErrTypeKind) {
		t.Errorf("want ErrTypeKind, got %v", err)
	}
	_, err = exprtree.FromJSON(decodeJSON(t, `{"type": "sym", "name": 7}`))
	if !errors.Is(err, exprtree.ErrTypeKind) {
		t.Errorf("want ErrTypeKind, got %v", err)
	}
}

func TestToJSON_Nil(t *testing.T) {
	if _, err := exprtree.ToJSON(nil); !errors.Is(err, exprtree.ErrNilExpr) {
		t.Errorf("want ErrNilExpr, got %v", err)
	}
}

// ============================================================
// YAML tests
// ============================================================

func TestYAML_RoundTrip(t *testing.T) {
	for _, e := range sampleTrees() {
		b, err := exprtree.ToYAML(e)
		if err != nil {
			t.Fatal(err)
		}
		back, err := exprtree.FromYAML(b)
		if err != nil {
			t.Fatalf("FromYAML(%s): %v", b, err)
		}
		if back.GoString() != e.GoString() {
			t.Errorf("round trip changed the tree: want %#v, got %#v", e, back)
		}
	}
}

func TestFromYAML_Document(t *testing.T) {
	doc := `
type: div
operands:
  - type: add
    operands:
      - {type: sym, name: x}
      - {type: num, value: 1}
  - {type: num, value: 2.5}
`
	e, err := exprtree.FromYAML([]byte(doc))
	if err != nil {
		t.Fatal(err)
	}
	if e.String() != "(x + 1) / 2.5" {
		t.Errorf("want '(x + 1) / 2.5', got %s", e.String())
	}
}

func TestFromYAML_NotAnObject(t *testing.T) {
	if _, err := exprtree.FromYAML([]byte("")); err == nil {
		t.Error("empty document should fail")
	}
	if _, err := exprtree.FromYAML([]byte("- 1\n- 2\n")); err == nil {
		t.Error("a sequence should fail")
	}
}

func TestFromYAML_NonFinite(t *testing.T) {
	for _, doc := range []string{
		"{type: num, value: .inf}",
		"{type: num, value: -.inf}",
		"{type: num, value: .nan}",
		"{type: add, operands: [{type: sym, name: x}, {type: num, value: .inf}]}",
	} {
		if _, err := exprtree.FromYAML([]byte(doc)); !errors.Is(err, exprtree.ErrNotFinite) {
			t.Errorf("FromYAML(%s): want ErrNotFinite, got %v", doc, err)
		}
	}
}
