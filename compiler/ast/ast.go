package ast

import (
	"fmt"
	"strconv"

	"tlog.app/go/errors"

	"github.com/alarie-c/darcy2/compiler/token"
)

type (
	Node interface {
		node()
	}

	BinaryOp int

	BinaryExpr struct {
		Op BinaryOp

		Left  Key
		Right Key
	}

	StringLiteral struct {
		Value string
	}

	NumberLiteral struct {
		Value Number
	}

	// Number is either Float or Integer.
	Number interface {
		number()
		String() string
	}

	Float   float64
	Integer int32

	RootMarker struct{}

	EndMarker struct{}
)

const (
	Plus BinaryOp = iota
	Minus
	Multiply
	Divide
	Modulus
)

var opNames = [...]string{
	Plus:     "+",
	Minus:    "-",
	Multiply: "*",
	Divide:   "/",
	Modulus:  "%",
}

func (BinaryExpr) node()    {}
func (StringLiteral) node() {}
func (NumberLiteral) node() {}
func (RootMarker) node()    {}
func (EndMarker) node()     {}

func (Float) number()   {}
func (Integer) number() {}

// OpFor maps an arithmetic operator token kind to its BinaryOp.
func OpFor(k token.Kind) (BinaryOp, bool) {
	switch k {
	case token.Plus:
		return Plus, true
	case token.Minus:
		return Minus, true
	case token.Star:
		return Multiply, true
	case token.Slash:
		return Divide, true
	case token.Modulus:
		return Modulus, true
	default:
		return 0, false
	}
}

// NewNumber converts the result of token.ParseNumber.
func NewNumber(v any) (Number, error) {
	switch v := v.(type) {
	case float64:
		return Float(v), nil
	case int32:
		return Integer(v), nil
	default:
		return nil, errors.New("unsupported number type: %T", v)
	}
}

func (op BinaryOp) String() string {
	if op >= 0 && int(op) < len(opNames) {
		return opNames[op]
	}

	return fmt.Sprintf("BinaryOp(%d)", int(op))
}

func (f Float) String() string {
	s := strconv.FormatFloat(float64(f), 'f', -1, 64)

	for _, c := range s {
		if c == '.' {
			return s
		}
	}

	return s + ".0"
}

func (i Integer) String() string {
	return strconv.FormatInt(int64(i), 10)
}
