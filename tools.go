package exprtree

import (
	"encoding/json"
	"fmt"
	"math"
	"sort"

	multierror "github.com/hashicorp/go-multierror"
)

// ============================================================
// Tool Interface
// ============================================================

type ToolRequest struct {
	Tool   string                 `json:"tool"`
	Params map[string]interface{} `json:"params"`
}

type ToolResponse struct {
	Result interface{} `json:"result,omitempty"`
	LaTeX  string      `json:"latex,omitempty"`
	String string      `json:"string,omitempty"`
	Error  string      `json:"error,omitempty"`
}

// MaxDiffOrder bounds the diff tool's n. Derivatives are never simplified,
// so each order roughly triples the size of the result.
const MaxDiffOrder = 10

var operatorTypes = map[string]Kind{
	"add": KindAdd,
	"sub": KindSub,
	"mul": KindMul,
	"div": KindDiv,
	"pow": KindPow,
}

// params reads typed values out of a tool request, remembering every
// problem so a caller sees all of them at once.
type params struct {
	raw  map[string]interface{}
	errs *multierror.Error
}

func (p *params) fail(err error) { p.errs = multierror.Append(p.errs, err) }

func (p *params) has(key string) bool {
	_, ok := p.raw[key]
	return ok
}

func (p *params) expr(key string) Expr {
	v, ok := p.raw[key]
	if !ok {
		p.fail(fmt.Errorf("missing param: %s", key))
		return nil
	}
	m, ok := v.(map[string]interface{})
	if !ok {
		p.fail(fmt.Errorf("param %s must be an expression object", key))
		return nil
	}
	e, err := FromJSON(m)
	if err != nil {
		p.fail(fmt.Errorf("param %s: %w", key, err))
		return nil
	}
	return e
}

// operand accepts either a number or an expression object.
func (p *params) operand(key string) Expr {
	v, ok := p.raw[key]
	if !ok {
		p.fail(fmt.Errorf("missing param: %s", key))
		return nil
	}
	if _, isObj := v.(map[string]interface{}); isObj {
		return p.expr(key)
	}
	e, err := Promote(v)
	if err != nil {
		p.fail(fmt.Errorf("param %s: %w", key, err))
		return nil
	}
	return e
}

func (p *params) str(key string) string {
	v, ok := p.raw[key]
	if !ok {
		p.fail(fmt.Errorf("missing param: %s", key))
		return ""
	}
	s, ok := v.(string)
	if !ok || s == "" {
		p.fail(fmt.Errorf("param %s must be a non-empty string", key))
		return ""
	}
	return s
}

// integer reads an optional integer in [0, limit].
func (p *params) integer(key string, def, limit int) int {
	v, ok := p.raw[key]
	if !ok {
		return def
	}
	f, ok := toFloat(v)
	if !ok || f != math.Trunc(f) || f < 0 {
		p.fail(fmt.Errorf("param %s must be a non-negative integer", key))
		return def
	}
	if f > float64(limit) {
		p.fail(fmt.Errorf("param %s must be at most %d, got %v", key, limit, f))
		return def
	}
	return int(f)
}

func (p *params) values(key string) SymbolMap {
	env := SymbolMap{}
	v, ok := p.raw[key]
	if !ok {
		return env
	}
	m, ok := v.(map[string]interface{})
	if !ok {
		p.fail(fmt.Errorf("param %s must be an object of numbers", key))
		return env
	}
	names := make([]string, 0, len(m))
	for name := range m {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		f, ok := toFloat(m[name])
		if !ok {
			p.fail(fmt.Errorf("param %s[%q] must be a number", key, name))
			continue
		}
		env[name] = f
	}
	return env
}

func (p *params) err() error { return p.errs.ErrorOrNil() }

// HandleToolCall runs one tool request. Failures, including panics from
// malformed input, are reported in ToolResponse.Error.
func HandleToolCall(req ToolRequest) (resp ToolResponse) {
	defer func() {
		if r := recover(); r != nil {
			resp = ToolResponse{Error: fmt.Sprintf("internal error: %v", r)}
		}
	}()

	p := &params{raw: req.Params}
	if p.raw == nil {
		p.raw = map[string]interface{}{}
	}
	exprResp := func(e Expr) ToolResponse {
		obj, err := Object(e)
		if err != nil {
			return ToolResponse{Error: err.Error()}
		}
		return ToolResponse{Result: obj, String: e.String(), LaTeX: LaTeX(e)}
	}

	switch req.Tool {
	case "render":
		e := p.expr("expr")
		if err := p.err(); err != nil {
			return ToolResponse{Error: err.Error()}
		}
		return ToolResponse{Result: e.String(), String: e.String()}

	case "repr":
		e := p.expr("expr")
		if err := p.err(); err != nil {
			return ToolResponse{Error: err.Error()}
		}
		return ToolResponse{Result: e.GoString(), String: e.String()}

	case "to_latex":
		e := p.expr("expr")
		if err := p.err(); err != nil {
			return ToolResponse{Error: err.Error()}
		}
		return ToolResponse{Result: LaTeX(e), LaTeX: LaTeX(e)}

	case "diff":
		e := p.expr("expr")
		v := p.str("var")
		n := p.integer("n", 1, MaxDiffOrder)
		if err := p.err(); err != nil {
			return ToolResponse{Error: err.Error()}
		}
		return exprResp(DiffN(e, v, n))

	case "eval":
		e := p.expr("expr")
		env := p.values("values")
		if err := p.err(); err != nil {
			return ToolResponse{Error: err.Error()}
		}
		v, err := Eval(e, env)
		if err != nil {
			return ToolResponse{Error: err.Error()}
		}
		// JSON has no NaN or infinity.
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return ToolResponse{Error: fmt.Sprintf("eval: %v: %s", ErrNotFinite, formatNumber(v))}
		}
		return ToolResponse{Result: v, String: formatNumber(v)}

	case "free_symbols":
		e := p.expr("expr")
		if err := p.err(); err != nil {
			return ToolResponse{Error: err.Error()}
		}
		return ToolResponse{Result: FreeSymbols(e)}

	case "compose":
		op := p.str("op")
		lhs := p.operand("lhs")
		rhs := p.operand("rhs")
		kind, ok := operatorTypes[op]
		if op != "" && !ok {
			p.fail(fmt.Errorf("param op: %w: %q", ErrUnsupported, op))
		}
		if err := p.err(); err != nil {
			return ToolResponse{Error: err.Error()}
		}
		e, err := Compose(kind, lhs, rhs)
		if err != nil {
			return ToolResponse{Error: err.Error()}
		}
		return exprResp(e)

	case "tool_spec":
		return ToolResponse{Result: ToolSpec()}
	}
	return ToolResponse{Error: fmt.Sprintf("unknown tool: %s", req.Tool)}
}

// ToolSpec returns the JSON schema of every tool HandleToolCall accepts.
func ToolSpec() string {
	tools := []map[string]interface{}{
		ts("render", "Render an expression with minimal parentheses", []string{"expr"}, map[string]string{"expr": "object"}),
		ts("repr", "Debug representation, e.g. Add(Symbol(\"x\"), Number(1))", []string{"expr"}, map[string]string{"expr": "object"}),
		ts("to_latex", "Convert to LaTeX", []string{"expr"}, map[string]string{"expr": "object"}),
		ts("diff", fmt.Sprintf("Symbolic derivative d/dvar, n-th (n <= %d) when n is given", MaxDiffOrder), []string{"expr", "var"}, map[string]string{"expr": "object", "var": "string", "n": "integer"}),
		ts("eval", "Evaluate numerically; values maps symbol names to numbers", []string{"expr"}, map[string]string{"expr": "object", "values": "object"}),
		ts("free_symbols", "Return the sorted symbol names", []string{"expr"}, map[string]string{"expr": "object"}),
		ts("compose", "Combine lhs and rhs (numbers or expressions) with op: add, sub, mul, div, pow", []string{"op", "lhs", "rhs"}, map[string]string{"op": "string", "lhs": "object", "rhs": "object"}),
		ts("tool_spec", "Return this tool schema", []string{}, map[string]string{}),
	}
	spec := map[string]interface{}{"tools": tools}
	b, _ := json.MarshalIndent(spec, "", "  ")
	return string(b)
}

func ts(name, description string, required []string, props map[string]string) map[string]interface{} {
	properties := map[string]interface{}{}
	for k, typ := range props {
		properties[k] = map[string]interface{}{"type": typ}
	}
	return map[string]interface{}{
		"name":        name,
		"description": description,
		"inputSchema": map[string]interface{}{
			"type":       "object",
			"properties": properties,
			"required":   required,
		},
	}
}
