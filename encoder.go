package abikit

import (
	"math/big"
	"reflect"

	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/math"
	"github.com/ethereum/go-ethereum/crypto"
)

// WordSize is the width of one ABI slot in bytes.
const WordSize = 32

// MaxTopics is the number of topics a log can carry.
const MaxTopics = 4

// encodePacked produces Solidity's non-standard packed encoding: each value at
// its natural width with no padding, except array elements which take a full
// word each. The result carries no lengths or offsets and cannot be decoded
// without the types.
func encodePacked(args abi.Arguments, values []any) ([]byte, error) {
	var out []byte
	for i, v := range values {
		packed, err := packValue(args[i].Type, reflect.ValueOf(v), false)
		if err != nil {
			return nil, err
		}
		out = append(out, packed...)
	}
	return out, nil
}

// packValue packs one value. inArray selects word-padded element encoding.
func packValue(t abi.Type, v reflect.Value, inArray bool) ([]byte, error) {
	switch t.T {
	case abi.IntTy, abi.UintTy:
		width := t.Size / 8
		if inArray {
			width = WordSize
		}
		return twosComplement(toBig(v), width), nil

	case abi.BoolTy:
		b := []byte{0}
		if v.Bool() {
			b[0] = 1
		}
		if inArray {
			return common.LeftPadBytes(b, WordSize), nil
		}
		return b, nil

	case abi.AddressTy:
		addr := v.Interface().(common.Address)
		if inArray {
			return common.LeftPadBytes(addr.Bytes(), WordSize), nil
		}
		return addr.Bytes(), nil

	case abi.FixedBytesTy, abi.FunctionTy:
		b := arrayBytes(v)
		if inArray {
			return common.RightPadBytes(b, WordSize), nil
		}
		return b, nil

	case abi.BytesTy, abi.StringTy:
		if inArray {
			return nil, &PackedEncodingError{Type: t.String(), Reason: "dynamic values cannot be array elements"}
		}
		if t.T == abi.StringTy {
			return []byte(v.String()), nil
		}
		return v.Bytes(), nil

	case abi.SliceTy, abi.ArrayTy:
		if inArray {
			return nil, &PackedEncodingError{Type: t.String(), Reason: "nested arrays are not supported"}
		}
		var out []byte
		for i := 0; i < v.Len(); i++ {
			packed, err := packValue(*t.Elem, v.Index(i), true)
			if err != nil {
				return nil, err
			}
			out = append(out, packed...)
		}
		return out, nil

	case abi.TupleTy:
		return nil, &PackedEncodingError{Type: t.String(), Reason: "tuples are not supported"}

	default:
		return nil, &PackedEncodingError{Type: t.String(), Reason: "unsupported type"}
	}
}

// topicFor encodes an indexed event argument as a topic. Value types are
// stored as their ABI word; strings and bytes are hashed; arrays and tuples
// are hashed over their in-place encoding.
func topicFor(t abi.Type, value any) (common.Hash, error) {
	switch t.T {
	case abi.StringTy:
		return crypto.Keccak256Hash([]byte(value.(string))), nil
	case abi.BytesTy:
		return crypto.Keccak256Hash(value.([]byte)), nil
	case abi.SliceTy, abi.ArrayTy, abi.TupleTy:
		encoded, err := inPlace(t, reflect.ValueOf(value))
		if err != nil {
			return common.Hash{}, err
		}
		return crypto.Keccak256Hash(encoded), nil
	}

	return packWord(t, value)
}

// inPlace encodes a value the way indexed reference types are hashed: every
// element takes whole words, strings and bytes are right padded, and no
// lengths or offsets are written.
func inPlace(t abi.Type, v reflect.Value) ([]byte, error) {
	switch t.T {
	case abi.StringTy:
		return padWords([]byte(v.String())), nil
	case abi.BytesTy:
		return padWords(v.Bytes()), nil
	case abi.SliceTy, abi.ArrayTy:
		var out []byte
		for i := 0; i < v.Len(); i++ {
			encoded, err := inPlace(*t.Elem, v.Index(i))
			if err != nil {
				return nil, err
			}
			out = append(out, encoded...)
		}
		return out, nil
	case abi.TupleTy:
		var out []byte
		for i, elem := range t.TupleElems {
			encoded, err := inPlace(*elem, v.Field(i))
			if err != nil {
				return nil, err
			}
			out = append(out, encoded...)
		}
		return out, nil
	}

	word, err := packWord(t, v.Interface())
	if err != nil {
		return nil, err
	}
	return word.Bytes(), nil
}

// packWord returns the single ABI word of a value type.
func packWord(t abi.Type, value any) (common.Hash, error) {
	word, err := abi.Arguments{{Type: t}}.Pack(value)
	if err != nil {
		return common.Hash{}, err
	}
	return common.BytesToHash(word), nil
}

// padWords right pads b to a whole number of words.
func padWords(b []byte) []byte {
	return common.RightPadBytes(b, (len(b)+WordSize-1)/WordSize*WordSize)
}

// decodeTopic recovers an indexed argument. Hashed types cannot be reversed,
// so the topic itself is returned as hex.
func decodeTopic(t abi.Type, topic common.Hash) (any, error) {
	switch t.T {
	case abi.StringTy, abi.BytesTy, abi.SliceTy, abi.ArrayTy, abi.TupleTy:
		return topic.Hex(), nil
	}
	values, err := abi.Arguments{{Type: t}}.Unpack(topic.Bytes())
	if err != nil {
		return nil, err
	}
	return normalize(t, values[0]), nil
}

// twosComplement returns the low width bytes of x in 256-bit two's complement.
func twosComplement(x *big.Int, width int) []byte {
	word := math.U256Bytes(new(big.Int).Set(x))
	return word[WordSize-width:]
}
