package exprtree

import "fmt"

// LaTeX renders e as a LaTeX math fragment.
func LaTeX(e Expr) string {
	s, err := PostVisit(e, latexNode, struct{}{})
	if err != nil {
		return ""
	}
	return s
}

func latexNode(e Expr, ops []string, _ struct{}) (string, error) {
	switch e.Kind() {
	case KindNumber, KindSymbol:
		return e.String(), nil
	}

	b := e.(*Binary)
	lhs, rhs := ops[0], ops[1]
	switch b.kind {
	case KindDiv:
		// The fraction bar groups both sides.
		return "\\frac{" + lhs + "}{" + rhs + "}", nil
	case KindPow:
		// A nested power needs grouping for the superscript to be valid.
		if b.lhs.Precedence() <= b.Precedence() {
			lhs = "\\left(" + lhs + "\\right)"
		}
		return lhs + "^{" + rhs + "}", nil
	}

	if b.lhs.Precedence() < b.Precedence() {
		lhs = "\\left(" + lhs + "\\right)"
	}
	if b.rhs.Precedence() < b.Precedence() {
		rhs = "\\left(" + rhs + "\\right)"
	}
	switch b.kind {
	case KindAdd:
		return lhs + " + " + rhs, nil
	case KindSub:
		return lhs + " - " + rhs, nil
	case KindMul:
		return lhs + " \\cdot " + rhs, nil
	}
	panic(fmt.Sprintf("exprtree: cannot render %v", e.Kind()))
}
