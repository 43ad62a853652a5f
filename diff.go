package exprtree

import "fmt"

// Var names the variable to differentiate with respect to.
type Var string

// Differentiate is the derivative rule table, written as a combining
// function so that PostVisit drives it:
//
//	d, err := exprtree.PostVisit(e, exprtree.Differentiate, exprtree.Var("x"))
//
// d holds the derivatives of e's operands. The product, quotient and power
// rules also read the original operands from e itself.
//
// The power rule is d(u^n) = n * u^(n-1) * d(u): the chain factor is the
// derivative of the base, not of the exponent, and the exponent is assumed
// constant in v.
func Differentiate(e Expr, d []Expr, v Var) (Expr, error) {
	switch e.Kind() {
	case KindNumber:
		return N(0), nil
	case KindSymbol:
		if e.(*Symbol).name == string(v) {
			return N(1), nil
		}
		return N(0), nil
	}

	b := e.(*Binary)
	u, w := b.lhs, b.rhs
	du, dw := d[0], d[1]
	switch b.kind {
	case KindAdd:
		return Add(du, dw), nil
	case KindSub:
		return Sub(du, dw), nil
	case KindMul:
		return Add(Mul(u, dw), Mul(w, du)), nil
	case KindDiv:
		return Div(Sub(Mul(w, du), Mul(u, dw)), Pow(w, Num(2))), nil
	case KindPow:
		return Mul(Mul(w, Pow(u, Sub(w, Num(1)))), du), nil
	}
	panic(fmt.Sprintf("exprtree: no derivative rule for %v", e.Kind()))
}

// Diff returns the first derivative of e with respect to varName. It panics
// if e is nil.
func Diff(e Expr, varName string) Expr {
	d, err := PostVisit(e, Differentiate, Var(varName))
	if err != nil {
		panic("exprtree: " + err.Error())
	}
	return d
}

// DiffN returns the n-th derivative. DiffN(e, v, 0) is e.
func DiffN(e Expr, varName string, n int) Expr {
	for i := 0; i < n; i++ {
		e = Diff(e, varName)
	}
	return e
}
