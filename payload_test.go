package abikit

import (
	"encoding/json"
	"testing"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParsePayload(t *testing.T) {
	topic := "0xddf252ad1be2c89b69c2b068fc378daa952ba7f163c4a11628f55a4df523b3ef"

	tests := []struct {
		name  string
		input string
		want  Payload
	}{
		{"hex", "0xa9059cbb", Data{0xa9, 0x05, 0x9c, 0xbb}},
		{"hex with spaces", "  0x01\n", Data{0x01}},
		{"data object", `{"data":"0x0102"}`, Data{0x01, 0x02}},
		{
			"log",
			`{"topics":["` + topic + `"],"data":"0x"}`,
			&Log{Topics: []common.Hash{common.HexToHash(topic)}, Data: hexutil.Bytes{}},
		},
		{
			"log without data",
			`{"topics":[]}`,
			&Log{Topics: []common.Hash{}},
		},
		{
			"deployment",
			`{"bytecode":"0x6080","data":"0x60800001"}`,
			&Deployment{Bytecode: hexutil.Bytes{0x60, 0x80}, Data: hexutil.Bytes{0x60, 0x80, 0x00, 0x01}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParsePayload(tt.input)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParsePayloadEmptyHex(t *testing.T) {
	got, err := ParsePayload("0x")
	require.NoError(t, err)
	require.IsType(t, Data{}, got)
	assert.Empty(t, got)
}

func TestParsePayloadErrors(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{"no prefix", "a9059cbb"},
		{"odd length", "0x123"},
		{"bad topic", `{"topics":["0x12"]}`},
		{"empty", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParsePayload(tt.input)
			assert.Error(t, err)
		})
	}
}

func TestDataText(t *testing.T) {
	d := Data{0xde, 0xad}
	assert.Equal(t, "0xdead", d.Hex())

	out, err := json.Marshal(d)
	require.NoError(t, err)
	assert.JSONEq(t, `"0xdead"`, string(out))

	var back Data
	require.NoError(t, json.Unmarshal(out, &back))
	assert.Equal(t, d, back)
}

func TestLogJSON(t *testing.T) {
	log := &Log{
		Topics: []common.Hash{common.HexToHash("0x01")},
		Data:   hexutil.Bytes{0x02},
	}

	out, err := json.Marshal(log)
	require.NoError(t, err)
	assert.JSONEq(t, `{
		"topics": ["0x0000000000000000000000000000000000000000000000000000000000000001"],
		"data": "0x02"
	}`, string(out))
}

func TestPayloadShape(t *testing.T) {
	assert.Equal(t, "data object", payloadShape(Data{}))
	assert.Equal(t, "topics/data log", payloadShape(&Log{}))
	assert.Equal(t, "bytecode/data deployment", payloadShape(&Deployment{}))
	assert.Equal(t, "nothing", payloadShape(nil))
}
