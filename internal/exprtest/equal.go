// Package exprtest holds helpers for testing code that builds expression
// trees.
package exprtest

import (
	"github.com/njchilds90/exprtree"
)

// Equal reports whether two trees are the same expression up to operand
// order of Add and Mul. Numbers compare by value, so 1 and 1.0 match. Two
// subtrees without symbols also match when they evaluate to the same number.
// No other algebraic equivalence is recognized.
//
// Results are memoized per pair of nodes, so the cost is bounded by the
// product of the two tree sizes even though Add and Mul try both orders.
func Equal(a, b exprtree.Expr) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	c := &comparer{
		pairs:  map[[2]exprtree.Expr]bool{},
		consts: map[exprtree.Expr]constant{},
	}
	c.fold(a)
	c.fold(b)
	return c.equal(a, b)
}

// constant is the value of a symbol-free subtree; ok is false for subtrees
// with symbols or that fail to evaluate.
type constant struct {
	v  float64
	ok bool
}

type comparer struct {
	pairs  map[[2]exprtree.Expr]bool
	consts map[exprtree.Expr]constant
}

// fold records the constant value of every node under root.
func (c *comparer) fold(root exprtree.Expr) {
	_, _ = exprtree.PostVisit(root, func(e exprtree.Expr, ops []constant, _ struct{}) (constant, error) {
		r := c.constantOf(e, ops)
		c.consts[e] = r
		return r, nil
	}, struct{}{})
}

func (c *comparer) constantOf(e exprtree.Expr, ops []constant) constant {
	vals := make([]float64, len(ops))
	for i, o := range ops {
		if !o.ok {
			return constant{}
		}
		vals[i] = o.v
	}
	if e.Kind() == exprtree.KindSymbol {
		return constant{}
	}
	v, err := exprtree.Evaluate(e, vals, nil)
	if err != nil {
		return constant{}
	}
	return constant{v: v, ok: true}
}

func (c *comparer) equal(a, b exprtree.Expr) bool {
	key := [2]exprtree.Expr{a, b}
	if r, ok := c.pairs[key]; ok {
		return r
	}
	r := c.structurallyEqual(a, b) || c.numericallyEqual(a, b)
	c.pairs[key] = r
	return r
}

func (c *comparer) structurallyEqual(a, b exprtree.Expr) bool {
	if a.Kind() != b.Kind() {
		return false
	}
	switch a.Kind() {
	case exprtree.KindNumber:
		return a.(*exprtree.Number).Value() == b.(*exprtree.Number).Value()
	case exprtree.KindSymbol:
		return a.(*exprtree.Symbol).Name() == b.(*exprtree.Symbol).Name()
	}

	x, y := a.Operands(), b.Operands()
	if c.equal(x[0], y[0]) && c.equal(x[1], y[1]) {
		return true
	}
	switch a.Kind() {
	case exprtree.KindAdd, exprtree.KindMul:
		return c.equal(x[0], y[1]) && c.equal(x[1], y[0])
	}
	return false
}

func (c *comparer) numericallyEqual(a, b exprtree.Expr) bool {
	va, vb := c.consts[a], c.consts[b]
	return va.ok && vb.ok && va.v == vb.v
}
