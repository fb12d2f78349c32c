package baseconv

import (
	"fmt"

	"github.com/holiman/uint256"
)

// Operator is a binary operation on two words.
type Operator string

const (
	OpAdd Operator = "+"
	OpSub Operator = "-"
	OpMul Operator = "*"
	OpDiv Operator = "/"
	OpMod Operator = "%"
	OpAnd Operator = "&"
	OpOr  Operator = "|"
	OpXor Operator = "^"
	OpShl Operator = "<<"
	OpShr Operator = ">>"
)

// Calculate parses both operands in base, applies op and formats the result
// in the same base. Add, Sub and Mul fail with ErrOverflow instead of
// wrapping; shifts of 256 bits or more give zero.
func Calculate(lhs string, op Operator, rhs string, base Base) (string, error) {
	x, err := Parse(lhs, base)
	if err != nil {
		return "", err
	}
	y, err := Parse(rhs, base)
	if err != nil {
		return "", err
	}
	z, err := apply(x, op, y)
	if err != nil {
		return "", err
	}
	return Format(z, base)
}

func apply(x *uint256.Int, op Operator, y *uint256.Int) (*uint256.Int, error) {
	z := new(uint256.Int)
	switch op {
	case OpAdd:
		if _, overflow := z.AddOverflow(x, y); overflow {
			return nil, ErrOverflow
		}
	case OpSub:
		if _, underflow := z.SubOverflow(x, y); underflow {
			return nil, fmt.Errorf("%w: negative result", ErrOverflow)
		}
	case OpMul:
		if _, overflow := z.MulOverflow(x, y); overflow {
			return nil, ErrOverflow
		}
	case OpDiv:
		if y.IsZero() {
			return nil, ErrDivisionByZero
		}
		z.Div(x, y)
	case OpMod:
		if y.IsZero() {
			return nil, ErrDivisionByZero
		}
		z.Mod(x, y)
	case OpAnd:
		z.And(x, y)
	case OpOr:
		z.Or(x, y)
	case OpXor:
		z.Xor(x, y)
	case OpShl, OpShr:
		if !y.IsUint64() || y.Uint64() >= 256 {
			return z, nil
		}
		if op == OpShl {
			z.Lsh(x, uint(y.Uint64()))
		} else {
			z.Rsh(x, uint(y.Uint64()))
		}
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownOperator, op)
	}
	return z, nil
}
