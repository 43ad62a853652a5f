package exprtree_test

import (
	"errors"
	"math"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/njchilds90/exprtree"
)

// reprNode folds a tree into its debug representation.
func reprNode(e exprtree.Expr, ops []string, _ struct{}) (string, error) {
	if len(ops) == 0 {
		return e.GoString(), nil
	}
	return e.Kind().String() + "(" + strings.Join(ops, ", ") + ")", nil
}

// recursiveFold is the naive bottom-up fold PostVisit must agree with.
func recursiveFold[R, C any](e exprtree.Expr, fn func(exprtree.Expr, []R, C) (R, error), ctx C) (R, error) {
	var results []R
	for _, o := range e.Operands() {
		r, err := recursiveFold(o, fn, ctx)
		if err != nil {
			return r, err
		}
		results = append(results, r)
	}
	return fn(e, results, ctx)
}

func sampleTrees() []exprtree.Expr {
	return []exprtree.Expr{
		exprtree.N(7),
		x,
		exprtree.Add(x, exprtree.Mul(y, z)),
		exprtree.Div(exprtree.Sub(exprtree.Mul(y, exprtree.Num(2)), x), exprtree.Pow(y, exprtree.Num(2))),
		exprtree.Add(exprtree.Mul(exprtree.Num(2), exprtree.Pow(x, exprtree.Num(3))), exprtree.Mul(exprtree.Pow(x, exprtree.Num(2)), y)),
	}
}

// ============================================================
// PostVisit tests
// ============================================================

func TestPostVisit_MatchesRecursiveFold(t *testing.T) {
	env := exprtree.SymbolMap{"x": 1.5, "y": -2, "z": 4}
	for _, e := range sampleTrees() {
		got, err := exprtree.PostVisit(e, reprNode, struct{}{})
		if err != nil {
			t.Fatalf("PostVisit(%v): %v", e, err)
		}
		want, _ := recursiveFold(e, reprNode, struct{}{})
		if diff := cmp.Diff(want, got); diff != "" {
			t.Errorf("repr fold mismatch (-want +got):\n%s", diff)
		}
		if got != e.GoString() {
			t.Errorf("want %s, got %s", e.GoString(), got)
		}

		v, err := exprtree.PostVisit(e, exprtree.Evaluate, env)
		if err != nil {
			t.Fatalf("Evaluate(%v): %v", e, err)
		}
		wantV, _ := recursiveFold(e, exprtree.Evaluate, env)
		if v != wantV {
			t.Errorf("%v: want %v, got %v", e, wantV, v)
		}
	}
}

func TestPostVisit_OperandsBeforeNode(t *testing.T) {
	e := exprtree.Add(exprtree.Mul(x, y), exprtree.Sub(z, exprtree.Num(1)))
	done := map[exprtree.Expr]bool{}
	_, err := exprtree.PostVisit(e, func(n exprtree.Expr, ops []int, _ struct{}) (int, error) {
		for _, o := range n.Operands() {
			if !done[o] {
				t.Errorf("%v combined before its operand %v", n, o)
			}
		}
		if len(ops) != len(n.Operands()) {
			t.Errorf("%v: want %d operand results, got %d", n, len(n.Operands()), len(ops))
		}
		done[n] = true
		return 0, nil
	}, struct{}{})
	if err != nil {
		t.Fatal(err)
	}
	if len(done) != 7 {
		t.Errorf("want 7 nodes combined, got %d", len(done))
	}
}

func TestPostVisit_OperandOrder(t *testing.T) {
	// Non-commutative operators expose any operand swap.
	e := exprtree.Sub(exprtree.Div(x, y), exprtree.Pow(y, x))
	got, err := exprtree.PostVisit(e, exprtree.Evaluate, exprtree.SymbolMap{"x": 2, "y": 3})
	if err != nil {
		t.Fatal(err)
	}
	a, b := 2.0, 3.0
	want := a/b - math.Pow(b, a)
	if got != want {
		t.Errorf("want %v, got %v", want, got)
	}
}

func TestPostVisit_SharedSubtreeCombinedOnce(t *testing.T) {
	shared := exprtree.Add(x, exprtree.Num(1))
	e := exprtree.Sub(exprtree.Mul(shared, y), exprtree.Div(shared, exprtree.Mul(shared, shared)))

	calls := map[exprtree.Expr]int{}
	_, err := exprtree.PostVisit(e, func(n exprtree.Expr, _ []struct{}, _ struct{}) (struct{}, error) {
		calls[n]++
		return struct{}{}, nil
	}, struct{}{})
	if err != nil {
		t.Fatal(err)
	}
	for n, c := range calls {
		if c != 1 {
			t.Errorf("%v combined %d times", n, c)
		}
	}
	// Sub, Mul, Div, inner Mul, shared, x, 1, y
	if len(calls) != 8 {
		t.Errorf("want 8 distinct nodes, got %d", len(calls))
	}
}

func TestPostVisit_IdenticalSubtreesAreDistinct(t *testing.T) {
	e := exprtree.Add(exprtree.Mul(x, y), exprtree.Mul(x, y))
	count := 0
	_, _ = exprtree.PostVisit(e, func(n exprtree.Expr, _ []struct{}, _ struct{}) (struct{}, error) {
		if n.Kind() == exprtree.KindMul {
			count++
		}
		return struct{}{}, nil
	}, struct{}{})
	if count != 2 {
		t.Errorf("separately built Mul nodes should be combined separately, got %d calls", count)
	}
}

func TestPostVisit_ErrorPropagatesUnchanged(t *testing.T) {
	boom := errors.New("boom")
	e := exprtree.Add(x, exprtree.Mul(exprtree.S("bad"), y))
	_, err := exprtree.PostVisit(e, func(n exprtree.Expr, _ []int, _ struct{}) (int, error) {
		if s, ok := n.(*exprtree.Symbol); ok && s.Name() == "bad" {
			return 0, boom
		}
		return 0, nil
	}, struct{}{})
	if err != boom {
		t.Errorf("want the combining function's error itself, got %v", err)
	}
}

func TestPostVisit_NilRoot(t *testing.T) {
	_, err := exprtree.PostVisit(nil, exprtree.Evaluate, exprtree.SymbolMap{})
	if !errors.Is(err, exprtree.ErrNilExpr) {
		t.Errorf("want ErrNilExpr, got %v", err)
	}
}

func TestPostVisit_DeepTree(t *testing.T) {
	const depth = 100000
	var e exprtree.Expr = x
	for i := 0; i < depth; i++ {
		e = exprtree.Add(e, exprtree.Num(1))
	}
	got, err := exprtree.Eval(e, exprtree.SymbolMap{"x": 0})
	if err != nil {
		t.Fatal(err)
	}
	if got != depth {
		t.Errorf("want %d, got %v", depth, got)
	}
}
