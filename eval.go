package exprtree

import (
	"fmt"
	"math"
	"sort"
)

// SymbolMap binds symbol names to values for Evaluate.
type SymbolMap map[string]float64

// Evaluate computes the numeric value of e from its operands' values.
// It is meant to be driven by PostVisit:
//
//	v, err := exprtree.PostVisit(e, exprtree.Evaluate, exprtree.SymbolMap{"x": 3})
func Evaluate(e Expr, vals []float64, env SymbolMap) (float64, error) {
	switch e.Kind() {
	case KindNumber:
		return e.(*Number).value, nil
	case KindSymbol:
		name := e.(*Symbol).name
		v, ok := env[name]
		if !ok {
			return 0, fmt.Errorf("%w: %s", ErrUnknownSymbol, name)
		}
		return v, nil
	case KindAdd:
		return vals[0] + vals[1], nil
	case KindSub:
		return vals[0] - vals[1], nil
	case KindMul:
		return vals[0] * vals[1], nil
	case KindDiv:
		if vals[1] == 0 {
			return 0, fmt.Errorf("%v: %w", e, ErrDivideByZero)
		}
		return vals[0] / vals[1], nil
	case KindPow:
		return math.Pow(vals[0], vals[1]), nil
	}
	panic(fmt.Sprintf("exprtree: cannot evaluate %v", e.Kind()))
}

// Eval evaluates e under env.
func Eval(e Expr, env SymbolMap) (float64, error) {
	return PostVisit(e, Evaluate, env)
}

// FreeSymbols returns the sorted names of the symbols occurring in e.
func FreeSymbols(e Expr) []string {
	seen := map[string]struct{}{}
	_, _ = PostVisit(e, func(n Expr, _ []struct{}, _ struct{}) (struct{}, error) {
		if s, ok := n.(*Symbol); ok {
			seen[s.name] = struct{}{}
		}
		return struct{}{}, nil
	}, struct{}{})

	names := make([]string, 0, len(seen))
	for name := range seen {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
