package abikit

import (
	"encoding/json"
	"fmt"
	"math/big"
	"reflect"
	"strconv"
	"strings"

	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
)

var bigIntType = reflect.TypeOf((*big.Int)(nil))

// parseArguments converts positional argument strings into the Go values
// go-ethereum packs for each argument type.
func parseArguments(args abi.Arguments, raw []string) ([]any, error) {
	values := make([]any, len(raw))
	for i, s := range raw {
		v, err := parseValue(args[i].Type, s)
		if err != nil {
			return nil, &ArgumentError{Index: i, Type: args[i].Type.String(), Err: err}
		}
		values[i] = v.Interface()
	}
	return values, nil
}

// parseValue converts one argument to a value of t.GetType().
// raw is a string at the top level; inside arrays and tuples it may be any
// JSON-decoded value.
func parseValue(t abi.Type, raw any) (reflect.Value, error) {
	switch t.T {
	case abi.SliceTy, abi.ArrayTy:
		return parseList(t, raw)
	case abi.TupleTy:
		return parseTuple(t, raw)
	}

	s, err := scalarString(raw)
	if err != nil {
		return reflect.Value{}, err
	}

	switch t.T {
	case abi.IntTy, abi.UintTy:
		return parseInteger(t, s)
	case abi.BoolTy:
		b, err := strconv.ParseBool(strings.TrimSpace(s))
		if err != nil {
			return reflect.Value{}, fmt.Errorf("invalid bool %q", s)
		}
		return reflect.ValueOf(b), nil
	case abi.StringTy:
		return reflect.ValueOf(s), nil
	case abi.AddressTy:
		s = strings.TrimSpace(s)
		if !common.IsHexAddress(s) {
			return reflect.Value{}, fmt.Errorf("invalid address %q", s)
		}
		return reflect.ValueOf(common.HexToAddress(s)), nil
	case abi.BytesTy:
		b, err := hexutil.Decode(strings.TrimSpace(s))
		if err != nil {
			return reflect.Value{}, fmt.Errorf("invalid bytes %q: %w", s, err)
		}
		return reflect.ValueOf(b), nil
	case abi.FixedBytesTy, abi.FunctionTy:
		b, err := hexutil.Decode(strings.TrimSpace(s))
		if err != nil {
			return reflect.Value{}, fmt.Errorf("invalid %s %q: %w", t, s, err)
		}
		arr := reflect.New(t.GetType()).Elem()
		if len(b) != arr.Len() {
			return reflect.Value{}, fmt.Errorf("%s needs %d bytes, got %d", t, arr.Len(), len(b))
		}
		reflect.Copy(arr, reflect.ValueOf(b))
		return arr, nil
	default:
		return reflect.Value{}, fmt.Errorf("unsupported type %s", t)
	}
}

// scalarString renders a JSON scalar as the string form parseValue expects.
func scalarString(raw any) (string, error) {
	switch v := raw.(type) {
	case string:
		return v, nil
	case json.Number:
		return v.String(), nil
	case bool:
		return strconv.FormatBool(v), nil
	default:
		return "", fmt.Errorf("expected a scalar, got %T", raw)
	}
}

// parseInteger accepts decimal or 0x-prefixed hex, with an optional sign,
// and range-checks the result against the type's bit size.
func parseInteger(t abi.Type, s string) (reflect.Value, error) {
	text := strings.TrimSpace(s)
	neg := strings.HasPrefix(text, "-")
	digits := strings.TrimPrefix(text, "-")

	base := 10
	if strings.HasPrefix(digits, "0x") || strings.HasPrefix(digits, "0X") {
		base = 16
		digits = digits[2:]
	}
	x, ok := new(big.Int).SetString(digits, base)
	if !ok || digits == "" {
		return reflect.Value{}, fmt.Errorf("invalid integer %q", s)
	}
	if neg {
		x.Neg(x)
	}

	if t.T == abi.UintTy {
		if x.Sign() < 0 {
			return reflect.Value{}, fmt.Errorf("%s cannot be negative", t)
		}
		if x.BitLen() > t.Size {
			return reflect.Value{}, fmt.Errorf("%s overflows %s", s, t)
		}
	} else {
		limit := new(big.Int).Lsh(big.NewInt(1), uint(t.Size-1))
		minimum := new(big.Int).Neg(limit)
		if x.Cmp(minimum) < 0 || x.Cmp(limit) >= 0 {
			return reflect.Value{}, fmt.Errorf("%s overflows %s", s, t)
		}
	}

	goType := t.GetType()
	if goType == bigIntType {
		return reflect.ValueOf(x), nil
	}
	v := reflect.New(goType).Elem()
	switch goType.Kind() {
	case reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		v.SetInt(x.Int64())
	case reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		v.SetUint(x.Uint64())
	default:
		return reflect.Value{}, fmt.Errorf("unsupported integer type %s", goType)
	}
	return v, nil
}

// decodeJSON parses a composite argument. Numbers are kept as json.Number so
// that large integers survive.
func decodeJSON(s string) (any, error) {
	dec := json.NewDecoder(strings.NewReader(s))
	dec.UseNumber()
	var v any
	if err := dec.Decode(&v); err != nil {
		return nil, err
	}
	return v, nil
}

func parseList(t abi.Type, raw any) (reflect.Value, error) {
	if s, ok := raw.(string); ok {
		v, err := decodeJSON(s)
		if err != nil {
			return reflect.Value{}, fmt.Errorf("%s must be a JSON array: %w", t, err)
		}
		raw = v
	}
	elems, ok := raw.([]any)
	if !ok {
		return reflect.Value{}, fmt.Errorf("%s must be an array, got %T", t, raw)
	}

	var out reflect.Value
	if t.T == abi.ArrayTy {
		if len(elems) != t.Size {
			return reflect.Value{}, fmt.Errorf("%s needs %d elements, got %d", t, t.Size, len(elems))
		}
		out = reflect.New(t.GetType()).Elem()
	} else {
		out = reflect.MakeSlice(t.GetType(), len(elems), len(elems))
	}
	for i, e := range elems {
		v, err := parseValue(*t.Elem, e)
		if err != nil {
			return reflect.Value{}, fmt.Errorf("element %d: %w", i, err)
		}
		out.Index(i).Set(v)
	}
	return out, nil
}

// parseTuple accepts a positional JSON array or an object keyed by component name.
func parseTuple(t abi.Type, raw any) (reflect.Value, error) {
	if s, ok := raw.(string); ok {
		v, err := decodeJSON(s)
		if err != nil {
			return reflect.Value{}, fmt.Errorf("%s must be a JSON array or object: %w", t, err)
		}
		raw = v
	}

	var elems []any
	switch v := raw.(type) {
	case []any:
		elems = v
	case map[string]any:
		elems = make([]any, len(t.TupleRawNames))
		for i, name := range t.TupleRawNames {
			e, ok := v[name]
			if !ok {
				return reflect.Value{}, fmt.Errorf("%s is missing component %q", t, name)
			}
			elems[i] = e
		}
	default:
		return reflect.Value{}, fmt.Errorf("%s must be an array or object, got %T", t, raw)
	}
	if len(elems) != len(t.TupleElems) {
		return reflect.Value{}, fmt.Errorf("%s needs %d components, got %d", t, len(t.TupleElems), len(elems))
	}

	out := reflect.New(t.TupleType).Elem()
	for i, e := range elems {
		v, err := parseValue(*t.TupleElems[i], e)
		if err != nil {
			return reflect.Value{}, fmt.Errorf("component %d: %w", i, err)
		}
		out.Field(i).Set(v)
	}
	return out, nil
}

// normalize converts a go-ethereum decoded value to its canonical form:
// integers as *big.Int, addresses as checksummed hex, byte strings as 0x hex,
// arrays and tuples as []any.
func normalize(t abi.Type, v any) any {
	rv := reflect.ValueOf(v)
	switch t.T {
	case abi.IntTy, abi.UintTy:
		return toBig(rv)
	case abi.AddressTy:
		return v.(common.Address).Hex()
	case abi.BytesTy:
		return hexutil.Encode(rv.Bytes())
	case abi.FixedBytesTy, abi.FunctionTy, abi.HashTy:
		return hexutil.Encode(arrayBytes(rv))
	case abi.SliceTy, abi.ArrayTy:
		out := make([]any, rv.Len())
		for i := range out {
			out[i] = normalize(*t.Elem, rv.Index(i).Interface())
		}
		return out
	case abi.TupleTy:
		out := make([]any, len(t.TupleElems))
		for i, elem := range t.TupleElems {
			out[i] = normalize(*elem, rv.Field(i).Interface())
		}
		return out
	default:
		return v
	}
}

// normalizeAll normalizes positional values against their arguments.
func normalizeAll(args abi.Arguments, values []any) []any {
	out := make([]any, len(values))
	for i, v := range values {
		out[i] = normalize(args[i].Type, v)
	}
	return out
}

// toBig returns an integer reflect value as a fresh *big.Int.
func toBig(rv reflect.Value) *big.Int {
	switch rv.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return big.NewInt(rv.Int())
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return new(big.Int).SetUint64(rv.Uint())
	default:
		return new(big.Int).Set(rv.Interface().(*big.Int))
	}
}

// arrayBytes copies a fixed-size byte array into a slice.
func arrayBytes(rv reflect.Value) []byte {
	b := make([]byte, rv.Len())
	reflect.Copy(reflect.ValueOf(b), rv)
	return b
}
