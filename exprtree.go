// Package exprtree models arithmetic expressions as immutable trees.
//
// Design goals:
//   - Immutable nodes: Number, Symbol and the binary operators + - * / ^
//   - Rendering with minimal, precedence-correct parentheses
//   - One generic traversal (PostVisit) driving evaluation, differentiation,
//     LaTeX output and the codec
//   - Embeddable in Go services: JSON/YAML trees and a tool-call dispatcher
package exprtree

import (
	"fmt"
	"strconv"
	"strings"
)

// ============================================================
// Kinds
// ============================================================

// Kind tags the variant of an expression node.
type Kind int

const (
	KindNumber Kind = iota
	KindSymbol
	KindAdd
	KindSub
	KindMul
	KindDiv
	KindPow
)

// Terminal precedence binds tighter than any operator.
const terminalPrecedence = 4

var kindNames = [...]string{
	KindNumber: "Number",
	KindSymbol: "Symbol",
	KindAdd:    "Add",
	KindSub:    "Sub",
	KindMul:    "Mul",
	KindDiv:    "Div",
	KindPow:    "Pow",
}

func (k Kind) String() string {
	if k < 0 || int(k) >= len(kindNames) {
		return fmt.Sprintf("Kind(%d)", int(k))
	}
	return kindNames[k]
}

// Symbol returns the infix symbol of an operator kind, or "" for terminals.
func (k Kind) Symbol() string {
	switch k {
	case KindAdd:
		return "+"
	case KindSub:
		return "-"
	case KindMul:
		return "*"
	case KindDiv:
		return "/"
	case KindPow:
		return "^"
	}
	return ""
}

// Precedence is used only to decide parenthesization when rendering.
func (k Kind) Precedence() int {
	switch k {
	case KindAdd, KindSub:
		return 1
	case KindMul, KindDiv:
		return 2
	case KindPow:
		return 3
	}
	return terminalPrecedence
}

func (k Kind) IsOperator() bool { return k >= KindAdd && k <= KindPow }

// ============================================================
// Core Interface
// ============================================================

// Expr is a node of an expression tree. The only implementations are
// *Number, *Symbol and *Binary. Nodes are never mutated, and node identity
// (the pointer) is what PostVisit memoizes on.
type Expr interface {
	Kind() Kind
	// Operands returns a copy of the node's operands in left-to-right order.
	Operands() []Expr
	Precedence() int
	String() string
	GoString() string
	operand() Expr
}

// Operand is anything that can stand on either side of a composition:
// an Expr, or a numeric literal wrapped in Num.
type Operand interface {
	operand() Expr
}

// Num promotes a numeric literal to a Number when used as an Operand.
type Num float64

func (n Num) operand() Expr { return N(float64(n)) }

// ============================================================
// Number
// ============================================================

type Number struct{ value float64 }

func N(v float64) *Number { return &Number{value: v} }

func (n *Number) Kind() Kind       { return KindNumber }
func (n *Number) Operands() []Expr { return nil }
func (n *Number) Precedence() int  { return terminalPrecedence }
func (n *Number) Value() float64   { return n.value }
func (n *Number) String() string   { return formatNumber(n.value) }
func (n *Number) GoString() string { return "Number(" + formatNumber(n.value) + ")" }
func (n *Number) operand() Expr    { return n }

func formatNumber(v float64) string { return strconv.FormatFloat(v, 'g', -1, 64) }

// ============================================================
// Symbol
// ============================================================

type Symbol struct{ name string }

func S(name string) *Symbol { return &Symbol{name: name} }

func (s *Symbol) Kind() Kind       { return KindSymbol }
func (s *Symbol) Operands() []Expr { return nil }
func (s *Symbol) Precedence() int  { return terminalPrecedence }
func (s *Symbol) Name() string     { return s.name }
func (s *Symbol) String() string   { return s.name }
func (s *Symbol) GoString() string { return "Symbol(" + strconv.Quote(s.name) + ")" }
func (s *Symbol) operand() Expr    { return s }

// ============================================================
// Binary operators
// ============================================================

// Binary is an operator node: Add, Sub, Mul, Div or Pow.
type Binary struct {
	kind     Kind
	lhs, rhs Expr
}

// NewBinary builds an operator node. It panics if kind is not an operator
// kind or an operand is nil; use Compose for values of unknown shape.
func NewBinary(kind Kind, lhs, rhs Expr) *Binary {
	if !kind.IsOperator() {
		panic(fmt.Sprintf("exprtree: %v is not an operator kind", kind))
	}
	if lhs == nil || rhs == nil {
		panic("exprtree: nil operand")
	}
	return &Binary{kind: kind, lhs: lhs, rhs: rhs}
}

func Add(a, b Operand) *Binary { return NewBinary(KindAdd, a.operand(), b.operand()) }
func Sub(a, b Operand) *Binary { return NewBinary(KindSub, a.operand(), b.operand()) }
func Mul(a, b Operand) *Binary { return NewBinary(KindMul, a.operand(), b.operand()) }
func Div(a, b Operand) *Binary { return NewBinary(KindDiv, a.operand(), b.operand()) }
func Pow(a, b Operand) *Binary { return NewBinary(KindPow, a.operand(), b.operand()) }

func (b *Binary) Kind() Kind       { return b.kind }
func (b *Binary) Operands() []Expr { return []Expr{b.lhs, b.rhs} }
func (b *Binary) Precedence() int  { return b.kind.Precedence() }
func (b *Binary) LHS() Expr        { return b.lhs }
func (b *Binary) RHS() Expr        { return b.rhs }
func (b *Binary) operand() Expr    { return b }

// String renders "lhs op rhs", parenthesizing a side only when its
// precedence is strictly lower than the operator's. Left associativity is
// assumed: x - (y - z) renders as "x - y - z".
func (b *Binary) String() string {
	lhs := b.lhs.String()
	rhs := b.rhs.String()
	if b.lhs.Precedence() < b.Precedence() {
		lhs = "(" + lhs + ")"
	}
	if b.rhs.Precedence() < b.Precedence() {
		rhs = "(" + rhs + ")"
	}
	return lhs + " " + b.kind.Symbol() + " " + rhs
}

func (b *Binary) GoString() string {
	var sb strings.Builder
	sb.WriteString(b.kind.String())
	sb.WriteByte('(')
	sb.WriteString(b.lhs.GoString())
	sb.WriteString(", ")
	sb.WriteString(b.rhs.GoString())
	sb.WriteByte(')')
	return sb.String()
}
