// Package baseconv converts and combines unsigned 256-bit words written in
// binary, decimal or hexadecimal.
//
// The operand base is always passed explicitly; the package holds no state.
package baseconv

import (
	"errors"
	"fmt"
	"math/big"
	"strings"

	"github.com/holiman/uint256"
)

// Base is the radix a value is written in.
type Base int

const (
	Binary  Base = 2
	Decimal Base = 10
	Hex     Base = 16
)

var (
	ErrEmpty           = errors.New("baseconv: empty value")
	ErrUnsupportedBase = errors.New("baseconv: unsupported base")
	ErrOverflow        = errors.New("baseconv: value does not fit in 256 bits")
	ErrDivisionByZero  = errors.New("baseconv: division by zero")
	ErrUnknownOperator = errors.New("baseconv: unknown operator")
)

// DigitError reports the first character that is not a digit of the base.
type DigitError struct {
	Value string
	Base  Base
	Pos   int
}

func (e *DigitError) Error() string {
	return fmt.Sprintf("baseconv: %q is not a %s number (position %d)", e.Value, e.Base, e.Pos)
}

func (b Base) String() string {
	switch b {
	case Binary:
		return "binary"
	case Decimal:
		return "decimal"
	case Hex:
		return "hex"
	default:
		return fmt.Sprintf("base(%d)", int(b))
	}
}

// ParseBase accepts a base by name ("bin", "binary", "dec", "decimal", "hex",
// "hexadecimal") or radix ("2", "10", "16").
func ParseBase(s string) (Base, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "2", "bin", "binary":
		return Binary, nil
	case "10", "dec", "decimal":
		return Decimal, nil
	case "16", "hex", "hexadecimal":
		return Hex, nil
	default:
		return 0, fmt.Errorf("%w: %q", ErrUnsupportedBase, s)
	}
}

func (b Base) digits() (string, error) {
	switch b {
	case Binary:
		return "01", nil
	case Decimal:
		return "0123456789", nil
	case Hex:
		return "0123456789abcdefABCDEF", nil
	default:
		return "", fmt.Errorf("%w: %d", ErrUnsupportedBase, int(b))
	}
}

func (b Base) prefix() string {
	switch b {
	case Binary:
		return "0b"
	case Hex:
		return "0x"
	default:
		return ""
	}
}

// stripPrefix removes surrounding space and an optional 0b or 0x prefix
// matching the base.
func stripPrefix(value string, base Base) string {
	value = strings.TrimSpace(value)
	if p := base.prefix(); p != "" && len(value) >= 2 && strings.EqualFold(value[:2], p) {
		return value[2:]
	}
	return value
}

// Validate reports whether value is a well-formed number in base that fits
// in 256 bits.
func Validate(value string, base Base) error {
	_, err := Parse(value, base)
	return err
}

// Parse reads value in base.
func Parse(value string, base Base) (*uint256.Int, error) {
	allowed, err := base.digits()
	if err != nil {
		return nil, err
	}
	digits := stripPrefix(value, base)
	if digits == "" {
		return nil, ErrEmpty
	}
	for i, c := range digits {
		if !strings.ContainsRune(allowed, c) {
			return nil, &DigitError{Value: value, Base: base, Pos: i}
		}
	}

	b, ok := new(big.Int).SetString(digits, int(base))
	if !ok {
		return nil, &DigitError{Value: value, Base: base}
	}
	x, overflow := uint256.FromBig(b)
	if overflow {
		return nil, ErrOverflow
	}
	return x, nil
}

// Format writes x in base. Binary and hex output carry their 0b and 0x prefixes.
func Format(x *uint256.Int, base Base) (string, error) {
	switch base {
	case Binary:
		return "0b" + x.ToBig().Text(2), nil
	case Decimal:
		return x.Dec(), nil
	case Hex:
		return x.Hex(), nil
	default:
		return "", fmt.Errorf("%w: %d", ErrUnsupportedBase, int(base))
	}
}

// Convert rewrites value from one base to another.
func Convert(value string, from, to Base) (string, error) {
	x, err := Parse(value, from)
	if err != nil {
		return "", err
	}
	return Format(x, to)
}

// Forms is a value written in every supported base.
type Forms struct {
	Binary  string `json:"binary"`
	Decimal string `json:"decimal"`
	Hex     string `json:"hex"`
}

// All parses value in base and returns it in every supported base.
func All(value string, base Base) (*Forms, error) {
	x, err := Parse(value, base)
	if err != nil {
		return nil, err
	}
	bin, _ := Format(x, Binary)
	dec, _ := Format(x, Decimal)
	hex, _ := Format(x, Hex)
	return &Forms{Binary: bin, Decimal: dec, Hex: hex}, nil
}
