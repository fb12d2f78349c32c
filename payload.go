package abikit

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
)

// Payload is the wire form an item encodes to and decodes from.
// This is a sealed interface - only types within this package can implement it.
type Payload interface {
	isPayload()
}

// Data is a flat byte string: call data, revert data, tuple bytes or deploy data.
type Data []byte

func (Data) isPayload() {}

// Hex returns the 0x-prefixed hex form.
func (d Data) Hex() string {
	return hexutil.Encode(d)
}

// MarshalText implements encoding.TextMarshaler.
func (d Data) MarshalText() ([]byte, error) {
	return hexutil.Bytes(d).MarshalText()
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (d *Data) UnmarshalText(input []byte) error {
	return (*hexutil.Bytes)(d).UnmarshalText(input)
}

// Log is an event payload: ordered topics plus non-indexed data.
type Log struct {
	Topics []common.Hash `json:"topics"`
	Data   hexutil.Bytes `json:"data"`
}

func (*Log) isPayload() {}

// Deployment is a constructor payload. Data is the full deploy data, that is
// Bytecode followed by the encoded constructor arguments.
type Deployment struct {
	Bytecode hexutil.Bytes `json:"bytecode"`
	Data     hexutil.Bytes `json:"data"`
}

func (*Deployment) isPayload() {}

// payloadShape names a payload's shape for error messages.
func payloadShape(p Payload) string {
	switch p.(type) {
	case Data:
		return "data object"
	case *Log:
		return "topics/data log"
	case *Deployment:
		return "bytecode/data deployment"
	case nil:
		return "nothing"
	default:
		return fmt.Sprintf("%T", p)
	}
}

// payloadFields is the union of JSON payload fields.
type payloadFields struct {
	Topics   []common.Hash  `json:"topics"`
	Bytecode *hexutil.Bytes `json:"bytecode"`
	Data     hexutil.Bytes  `json:"data"`
}

// ParsePayload reads a payload from text. A JSON object with "topics" is a
// Log, one with "bytecode" is a Deployment; anything else must be 0x hex.
func ParsePayload(text string) (Payload, error) {
	text = strings.TrimSpace(text)
	if strings.HasPrefix(text, "{") && json.Valid([]byte(text)) {
		var f payloadFields
		if err := json.Unmarshal([]byte(text), &f); err != nil {
			return nil, fmt.Errorf("abikit: invalid payload object: %w", err)
		}
		switch {
		case f.Topics != nil:
			return &Log{Topics: f.Topics, Data: f.Data}, nil
		case f.Bytecode != nil:
			return &Deployment{Bytecode: *f.Bytecode, Data: f.Data}, nil
		default:
			return Data(f.Data), nil
		}
	}

	b, err := hexutil.Decode(text)
	if err != nil {
		return nil, fmt.Errorf("abikit: invalid payload hex: %w", err)
	}
	return Data(b), nil
}
