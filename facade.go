package abikit

import (
	"bytes"
	"fmt"

	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/common"
	orderedmap "github.com/wk8/go-ordered-map/v2"
)

// Encode encodes positional argument strings for an item.
//
//   - Function and CustomError produce Data: selector followed by the arguments.
//   - Event produces a *Log: topic0 (unless anonymous), one topic per indexed
//     argument, and the non-indexed arguments as data.
//   - Constructor produces Data: bytecode followed by the arguments.
//   - Tuple produces Data, packed when WithPacked(true) is given.
func Encode(item Item, args []string, opts ...EncodeOption) (Payload, error) {
	cfg := defaultEncodeConfig()
	for _, opt := range opts {
		opt(cfg)
	}

	if item == nil {
		return nil, ErrUnknownItem
	}
	if params := Parameters(item); len(args) != len(params) {
		return nil, &ArityError{Kind: item.Kind(), Want: len(params), Got: len(args)}
	}

	switch it := item.(type) {
	case *Function:
		method, err := abiMethod(it)
		if err != nil {
			return nil, &EncodingError{Kind: KindFunction, Op: "encode", Err: err}
		}
		return encodeWithSelector(KindFunction, method.ID[:4], method.Inputs, args)

	case *CustomError:
		e, err := abiError(it)
		if err != nil {
			return nil, &EncodingError{Kind: KindError, Op: "encode", Err: err}
		}
		return encodeWithSelector(KindError, e.ID[:4], e.Inputs, args)

	case *Event:
		return encodeEvent(it, args)

	case *Constructor:
		if cfg.requireBytecode && len(cfg.bytecode) == 0 {
			return nil, ErrMissingBytecode
		}
		inputs, err := toArguments(it.Inputs)
		if err != nil {
			return nil, &EncodingError{Kind: KindConstructor, Op: "encode", Err: err}
		}
		return encodeWithSelector(KindConstructor, cfg.bytecode, inputs, args)

	case *Tuple:
		components, err := toArguments(it.Components)
		if err != nil {
			return nil, &EncodingError{Kind: KindTuple, Op: "encode", Err: err}
		}
		values, err := parseArguments(components, args)
		if err != nil {
			return nil, err
		}
		if cfg.packed {
			packed, err := encodePacked(components, values)
			if err != nil {
				return nil, err
			}
			return Data(packed), nil
		}
		packed, err := components.Pack(values...)
		if err != nil {
			return nil, &EncodingError{Kind: KindTuple, Op: "encode", Err: err}
		}
		return Data(packed), nil

	default:
		return nil, ErrUnknownItem
	}
}

// encodeWithSelector packs args and prepends prefix (a selector or bytecode).
func encodeWithSelector(kind Kind, prefix []byte, inputs abi.Arguments, args []string) (Payload, error) {
	values, err := parseArguments(inputs, args)
	if err != nil {
		return nil, err
	}
	packed, err := inputs.Pack(values...)
	if err != nil {
		return nil, &EncodingError{Kind: kind, Op: "encode", Err: err}
	}
	out := make([]byte, 0, len(prefix)+len(packed))
	out = append(out, prefix...)
	return Data(append(out, packed...)), nil
}

func encodeEvent(it *Event, args []string) (Payload, error) {
	ev, err := abiEvent(it)
	if err != nil {
		return nil, &EncodingError{Kind: KindEvent, Op: "encode", Err: err}
	}
	values, err := parseArguments(ev.Inputs, args)
	if err != nil {
		return nil, err
	}

	topics := make([]common.Hash, 0, MaxTopics)
	if !ev.Anonymous {
		topics = append(topics, ev.ID)
	}
	nonIndexed := make([]any, 0, len(values))
	for i, input := range ev.Inputs {
		if !input.Indexed {
			nonIndexed = append(nonIndexed, values[i])
			continue
		}
		topic, err := topicFor(input.Type, values[i])
		if err != nil {
			return nil, &ArgumentError{Index: i, Type: input.Type.String(), Err: err}
		}
		topics = append(topics, topic)
	}
	if len(topics) > MaxTopics {
		return nil, &EncodingError{
			Kind: KindEvent,
			Op:   "encode",
			Err:  fmt.Errorf("%d topics exceeds the limit of %d", len(topics), MaxTopics),
		}
	}

	data, err := ev.Inputs.NonIndexed().Pack(nonIndexed...)
	if err != nil {
		return nil, &EncodingError{Kind: KindEvent, Op: "encode", Err: err}
	}
	return &Log{Topics: topics, Data: data}, nil
}

// Decode decodes a payload into positional values, one per parameter.
//
// Each kind requires one payload shape and fails with *PayloadShapeError on
// any other: Data for functions, errors and tuples, *Log for events and
// *Deployment for constructors. Packed tuple data is not decodable.
func Decode(item Item, payload Payload) ([]any, error) {
	switch it := item.(type) {
	case *Function:
		data, ok := payload.(Data)
		if !ok {
			return nil, &PayloadShapeError{Kind: KindFunction, Want: "data object", Got: payloadShape(payload)}
		}
		method, err := abiMethod(it)
		if err != nil {
			return nil, &EncodingError{Kind: KindFunction, Op: "decode", Err: err}
		}
		return decodeWithSelector(KindFunction, method.ID[:4], method.Inputs, data)

	case *CustomError:
		data, ok := payload.(Data)
		if !ok {
			return nil, &PayloadShapeError{Kind: KindError, Want: "data object", Got: payloadShape(payload)}
		}
		e, err := abiError(it)
		if err != nil {
			return nil, &EncodingError{Kind: KindError, Op: "decode", Err: err}
		}
		return decodeWithSelector(KindError, e.ID[:4], e.Inputs, data)

	case *Event:
		log, ok := payload.(*Log)
		if !ok || log == nil {
			return nil, &PayloadShapeError{Kind: KindEvent, Want: "topics/data log", Got: payloadShape(payload)}
		}
		return decodeEvent(it, log)

	case *Constructor:
		dep, ok := payload.(*Deployment)
		if !ok || dep == nil {
			return nil, &PayloadShapeError{Kind: KindConstructor, Want: "bytecode/data deployment", Got: payloadShape(payload)}
		}
		if len(dep.Bytecode) == 0 {
			return nil, &PayloadShapeError{Kind: KindConstructor, Want: "bytecode/data deployment", Got: "deployment without bytecode"}
		}
		if !bytes.HasPrefix(dep.Data, dep.Bytecode) {
			return nil, ErrBytecodeMismatch
		}
		inputs, err := toArguments(it.Inputs)
		if err != nil {
			return nil, &EncodingError{Kind: KindConstructor, Op: "decode", Err: err}
		}
		return unpack(KindConstructor, inputs, dep.Data[len(dep.Bytecode):])

	case *Tuple:
		data, ok := payload.(Data)
		if !ok {
			return nil, &PayloadShapeError{Kind: KindTuple, Want: "data object", Got: payloadShape(payload)}
		}
		components, err := toArguments(it.Components)
		if err != nil {
			return nil, &EncodingError{Kind: KindTuple, Op: "decode", Err: err}
		}
		return unpack(KindTuple, components, data)

	default:
		return nil, ErrUnknownItem
	}
}

func decodeWithSelector(kind Kind, selector []byte, inputs abi.Arguments, data []byte) ([]any, error) {
	if len(data) < len(selector) {
		return nil, &EncodingError{
			Kind: kind,
			Op:   "decode",
			Err:  fmt.Errorf("%d bytes is too short for a selector", len(data)),
		}
	}
	if !bytes.Equal(data[:len(selector)], selector) {
		return nil, fmt.Errorf("%w: want %x, got %x", ErrSelectorMismatch, selector, data[:len(selector)])
	}
	return unpack(kind, inputs, data[len(selector):])
}

func unpack(kind Kind, args abi.Arguments, data []byte) ([]any, error) {
	values, err := args.Unpack(data)
	if err != nil {
		return nil, &EncodingError{Kind: kind, Op: "decode", Err: err}
	}
	return normalizeAll(args, values), nil
}

func decodeEvent(it *Event, log *Log) ([]any, error) {
	ev, err := abiEvent(it)
	if err != nil {
		return nil, &EncodingError{Kind: KindEvent, Op: "decode", Err: err}
	}

	topics := log.Topics
	if !ev.Anonymous {
		if len(topics) == 0 || topics[0] != ev.ID {
			return nil, fmt.Errorf("%w: topic0 is not %s", ErrSelectorMismatch, ev.ID.Hex())
		}
		topics = topics[1:]
	}

	indexed := 0
	for _, input := range ev.Inputs {
		if input.Indexed {
			indexed++
		}
	}
	if len(topics) != indexed {
		return nil, &EncodingError{
			Kind: KindEvent,
			Op:   "decode",
			Err:  fmt.Errorf("expected %d indexed topics, got %d", indexed, len(topics)),
		}
	}

	nonIndexedArgs := ev.Inputs.NonIndexed()
	nonIndexed, err := nonIndexedArgs.Unpack(log.Data)
	if err != nil {
		return nil, &EncodingError{Kind: KindEvent, Op: "decode", Err: err}
	}

	values := make([]any, len(ev.Inputs))
	var ti, di int
	for i, input := range ev.Inputs {
		if input.Indexed {
			v, err := decodeTopic(input.Type, topics[ti])
			if err != nil {
				return nil, &EncodingError{Kind: KindEvent, Op: "decode", Err: err}
			}
			values[i] = v
			ti++
			continue
		}
		values[i] = normalize(input.Type, nonIndexed[di])
		di++
	}
	return values, nil
}

// DecodeNamed decodes like Decode and keys the values by parameter name in
// declaration order. Unnamed or repeated names use "arg<index>".
func DecodeNamed(item Item, payload Payload) (*orderedmap.OrderedMap[string, any], error) {
	values, err := Decode(item, payload)
	if err != nil {
		return nil, err
	}
	return nameValues(Parameters(item), values), nil
}

func nameValues(params []Parameter, values []any) *orderedmap.OrderedMap[string, any] {
	named := orderedmap.New[string, any]()
	for i, p := range params {
		name := p.Name
		if name == "" {
			name = syntheticName(i)
		}
		if _, exists := named.Get(name); exists {
			name = syntheticName(i)
		}
		for n := 1; ; n++ {
			if _, exists := named.Get(name); !exists {
				break
			}
			name = fmt.Sprintf("%s_%d", syntheticName(i), n)
		}
		named.Set(name, values[i])
	}
	return named
}

// DecodeOutputs decodes a function's return data.
func DecodeOutputs(fn *Function, data []byte) ([]any, error) {
	outputs, err := toArguments(fn.Outputs)
	if err != nil {
		return nil, &EncodingError{Kind: KindFunction, Op: "decode outputs", Err: err}
	}
	return unpack(KindFunction, outputs, data)
}
