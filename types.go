package abikit

import (
	"fmt"
	"strings"
	"unicode"

	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/common"
)

// syntheticName is the name given to an unnamed parameter when one is required.
func syntheticName(index int) string {
	return fmt.Sprintf("arg%d", index)
}

// componentMarshaling converts tuple components to the go-ethereum form.
// go-ethereum builds a Go struct per tuple, so every component needs a
// distinct name that camel-cases to a valid field name. Components without
// one are given their synthetic name here.
func componentMarshaling(components []Parameter) []abi.ArgumentMarshaling {
	if len(components) == 0 {
		return nil
	}
	used := make(map[string]bool, len(components))
	out := make([]abi.ArgumentMarshaling, len(components))
	for i, c := range components {
		name := c.Name
		if field := abi.ToCamelCase(name); !validFieldName(field) || used[field] {
			name = syntheticName(i)
		}
		for n := 1; used[abi.ToCamelCase(name)]; n++ {
			name = fmt.Sprintf("%s_%d", syntheticName(i), n)
		}
		used[abi.ToCamelCase(name)] = true

		out[i] = abi.ArgumentMarshaling{
			Name:       name,
			Type:       c.Type,
			Components: componentMarshaling(c.Components),
			Indexed:    c.Indexed,
		}
	}
	return out
}

// validFieldName reports whether s can name an exported struct field.
func validFieldName(s string) bool {
	for i, r := range s {
		if !unicode.IsLetter(r) && r != '_' && (i == 0 || !unicode.IsDigit(r)) {
			return false
		}
	}
	return s != ""
}

// abiType builds the go-ethereum type for a parameter.
func abiType(p Parameter) (abi.Type, error) {
	if strings.HasPrefix(p.Type, "tuple") && len(p.Components) == 0 {
		return abi.Type{}, fmt.Errorf("tuple type %q has no components", p.Type)
	}
	t, err := abi.NewType(p.Type, "", componentMarshaling(p.Components))
	if err != nil {
		return abi.Type{}, err
	}
	return t, checkSizes(t)
}

// checkSizes rejects integer widths go-ethereum accepts but the ABI does not,
// such as uint7 or int264.
func checkSizes(t abi.Type) error {
	switch t.T {
	case abi.IntTy, abi.UintTy:
		if t.Size < 8 || t.Size > 256 || t.Size%8 != 0 {
			return fmt.Errorf("invalid integer size in %s", t)
		}
	case abi.SliceTy, abi.ArrayTy:
		return checkSizes(*t.Elem)
	case abi.TupleTy:
		for _, elem := range t.TupleElems {
			if err := checkSizes(*elem); err != nil {
				return err
			}
		}
	}
	return nil
}

// toArguments converts parameters to go-ethereum arguments, preserving order.
func toArguments(params []Parameter) (abi.Arguments, error) {
	args := make(abi.Arguments, len(params))
	for i, p := range params {
		t, err := abiType(p)
		if err != nil {
			return nil, fmt.Errorf("parameter %d (%s): %w", i, p.Type, err)
		}
		args[i] = abi.Argument{Name: p.Name, Type: t, Indexed: p.Indexed}
	}
	return args, nil
}

func abiMethod(fn *Function) (abi.Method, error) {
	inputs, err := toArguments(fn.Inputs)
	if err != nil {
		return abi.Method{}, err
	}
	outputs, err := toArguments(fn.Outputs)
	if err != nil {
		return abi.Method{}, err
	}
	mutability := fn.StateMutability
	if mutability == "" {
		mutability = "nonpayable"
	}
	isConst := mutability == "view" || mutability == "pure"
	return abi.NewMethod(fn.Name, fn.Name, abi.Function, mutability, isConst, mutability == "payable", inputs, outputs), nil
}

func abiConstructor(c *Constructor) (abi.Method, error) {
	inputs, err := toArguments(c.Inputs)
	if err != nil {
		return abi.Method{}, err
	}
	return abi.NewMethod("", "", abi.Constructor, c.StateMutability, false, c.StateMutability == "payable", inputs, nil), nil
}

func abiEvent(ev *Event) (abi.Event, error) {
	inputs, err := toArguments(ev.Inputs)
	if err != nil {
		return abi.Event{}, err
	}
	return abi.NewEvent(ev.Name, ev.Name, ev.Anonymous, inputs), nil
}

func abiError(e *CustomError) (abi.Error, error) {
	inputs, err := toArguments(e.Inputs)
	if err != nil {
		return abi.Error{}, err
	}
	return abi.NewError(e.Name, inputs), nil
}

// canonicalList renders "(type,type,...)" with tuples expanded.
func canonicalList(params []Parameter) (string, error) {
	args, err := toArguments(params)
	if err != nil {
		return "", err
	}
	types := make([]string, len(args))
	for i, a := range args {
		types[i] = a.Type.String()
	}
	return "(" + strings.Join(types, ",") + ")", nil
}

// Signature returns the canonical signature of an item, such as
// "transfer(address,uint256)". Constructors render as "constructor(...)" and
// tuples as the bare list.
func Signature(item Item) (string, error) {
	list, err := canonicalList(Parameters(item))
	if err != nil {
		return "", err
	}
	switch it := item.(type) {
	case *Function:
		return it.Name + list, nil
	case *Event:
		return it.Name + list, nil
	case *CustomError:
		return it.Name + list, nil
	case *Constructor:
		return "constructor" + list, nil
	case *Tuple:
		return list, nil
	default:
		return "", ErrUnknownItem
	}
}

// Selector returns the 4-byte selector of a function or custom error.
func Selector(item Item) ([4]byte, error) {
	var sel [4]byte
	switch it := item.(type) {
	case *Function:
		method, err := abiMethod(it)
		if err != nil {
			return sel, err
		}
		copy(sel[:], method.ID[:4])
	case *CustomError:
		e, err := abiError(it)
		if err != nil {
			return sel, err
		}
		copy(sel[:], e.ID[:4])
	default:
		return sel, fmt.Errorf("abikit: %s has no selector", item.Kind())
	}
	return sel, nil
}

// Topic returns the signature hash of an event, which is its topic0 unless
// the event is anonymous.
func Topic(ev *Event) (common.Hash, error) {
	e, err := abiEvent(ev)
	if err != nil {
		return common.Hash{}, err
	}
	return e.ID, nil
}
