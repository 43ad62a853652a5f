package exprtree

import (
	"encoding/json"
	"errors"
	"fmt"
)

var (
	// ErrTypeKind reports a terminal payload of the wrong scalar kind.
	ErrTypeKind = errors.New("wrong payload kind")
	// ErrUnsupported reports a composition operand that is neither a
	// number nor an Expr, or an operator kind that does not exist.
	ErrUnsupported = errors.New("unsupported operand")
	// ErrUnknownSymbol reports a symbol missing from the evaluation map.
	ErrUnknownSymbol = errors.New("unknown symbol")
	ErrDivideByZero  = errors.New("division by zero")
	ErrNilExpr       = errors.New("nil expression")
	// ErrEmptyName reports a Symbol built from the empty string.
	ErrEmptyName = errors.New("empty symbol name")
	// ErrNotFinite reports NaN or an infinity where only finite numbers can
	// be represented, such as the JSON codec.
	ErrNotFinite = errors.New("not a finite number")
)

// NewNumber builds a Number from any Go integer or float value, or from a
// json.Number.
func NewNumber(v interface{}) (*Number, error) {
	f, ok := toFloat(v)
	if !ok {
		return nil, fmt.Errorf("number: %w: %T", ErrTypeKind, v)
	}
	return N(f), nil
}

// NewSymbol builds a Symbol from a non-empty string. A non-string fails with
// ErrTypeKind and "" with ErrEmptyName.
func NewSymbol(v interface{}) (*Symbol, error) {
	name, ok := v.(string)
	if !ok {
		return nil, fmt.Errorf("symbol: %w: %T", ErrTypeKind, v)
	}
	if name == "" {
		return nil, fmt.Errorf("symbol: %w", ErrEmptyName)
	}
	return S(name), nil
}

// Promote turns v into an Expr: expressions pass through and numbers become
// Number nodes.
func Promote(v interface{}) (Expr, error) {
	switch x := v.(type) {
	case Expr:
		if isNilExpr(x) {
			return nil, ErrNilExpr
		}
		return x, nil
	case Num:
		return N(float64(x)), nil
	}
	if f, ok := toFloat(v); ok {
		return N(f), nil
	}
	return nil, fmt.Errorf("%w: %T", ErrUnsupported, v)
}

// Compose is the dynamic form of Add, Sub, Mul, Div and Pow, for operands
// whose type is only known at run time.
func Compose(kind Kind, a, b interface{}) (Expr, error) {
	if !kind.IsOperator() {
		return nil, fmt.Errorf("%w: %v is not an operator", ErrUnsupported, kind)
	}
	lhs, err := Promote(a)
	if err != nil {
		return nil, fmt.Errorf("%v: lhs: %w", kind, err)
	}
	rhs, err := Promote(b)
	if err != nil {
		return nil, fmt.Errorf("%v: rhs: %w", kind, err)
	}
	return NewBinary(kind, lhs, rhs), nil
}

func toFloat(v interface{}) (float64, bool) {
	switch x := v.(type) {
	case float64:
		return x, true
	case float32:
		return float64(x), true
	case int:
		return float64(x), true
	case int8:
		return float64(x), true
	case int16:
		return float64(x), true
	case int32:
		return float64(x), true
	case int64:
		return float64(x), true
	case uint:
		return float64(x), true
	case uint8:
		return float64(x), true
	case uint16:
		return float64(x), true
	case uint32:
		return float64(x), true
	case uint64:
		return float64(x), true
	case json.Number:
		f, err := x.Float64()
		return f, err == nil
	}
	return 0, false
}

// isNilExpr catches typed nil pointers stored in an Expr.
func isNilExpr(e Expr) bool {
	switch x := e.(type) {
	case *Number:
		return x == nil
	case *Symbol:
		return x == nil
	case *Binary:
		return x == nil
	}
	return e == nil
}
