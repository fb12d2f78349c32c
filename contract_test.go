package abikit

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const erc20ABI = `[
	{
		"inputs": [
			{"name": "name", "type": "string"},
			{"name": "symbol", "type": "string"}
		],
		"stateMutability": "nonpayable",
		"type": "constructor"
	},
	{
		"inputs": [
			{"name": "to", "type": "address"},
			{"name": "amount", "type": "uint256"}
		],
		"name": "transfer",
		"outputs": [{"name": "", "type": "bool"}],
		"stateMutability": "nonpayable",
		"type": "function"
	},
	{
		"constant": true,
		"inputs": [{"name": "owner", "type": "address"}],
		"name": "balanceOf",
		"outputs": [{"name": "", "type": "uint"}],
		"type": "function"
	},
	{
		"anonymous": false,
		"inputs": [
			{"indexed": true, "name": "from", "type": "address"},
			{"indexed": true, "name": "to", "type": "address"},
			{"indexed": false, "name": "value", "type": "uint256"}
		],
		"name": "Transfer",
		"type": "event"
	},
	{
		"inputs": [
			{"name": "available", "type": "uint256"},
			{"name": "required", "type": "uint256"}
		],
		"name": "InsufficientBalance",
		"type": "error"
	},
	{"stateMutability": "payable", "type": "receive"}
]`

func TestParseABI(t *testing.T) {
	items, err := ParseABI([]byte(erc20ABI))
	require.NoError(t, err)
	require.Len(t, items, 5, "receive entries are skipped")

	kinds := make([]Kind, len(items))
	for i, item := range items {
		kinds[i] = item.Kind()
	}
	assert.Equal(t, []Kind{KindConstructor, KindFunction, KindFunction, KindEvent, KindError}, kinds)

	t.Run("legacy constant flag", func(t *testing.T) {
		fn := items[2].(*Function)
		assert.Equal(t, "view", fn.StateMutability)
		assert.Equal(t, "uint256", fn.Outputs[0].Type)
	})

	t.Run("indexed flags", func(t *testing.T) {
		ev := items[3].(*Event)
		assert.True(t, ev.Inputs[0].Indexed)
		assert.False(t, ev.Inputs[2].Indexed)
	})

	t.Run("single object", func(t *testing.T) {
		items, err := ParseABI([]byte(`{"type":"function","name":"ping","inputs":[]}`))
		require.NoError(t, err)
		require.Len(t, items, 1)
		assert.Equal(t, "ping", Name(items[0]))
	})

	t.Run("invalid json", func(t *testing.T) {
		_, err := ParseABI([]byte(`[{"type":`))
		assert.Error(t, err)
	})

	t.Run("invalid type", func(t *testing.T) {
		_, err := ParseABI([]byte(`[{"type":"function","name":"f","inputs":[{"type":"uint7"}]}]`))
		assert.Error(t, err)
	})
}

func TestLookupABI(t *testing.T) {
	tests := []struct {
		name       string
		kind       Kind
		identifier string
		want       string
	}{
		{"function by selector", KindFunction, "0xa9059cbb", "transfer(address,uint256)"},
		{"function by upper-case selector", KindFunction, "0xA9059CBB", "transfer(address,uint256)"},
		{"function by name", KindFunction, "balanceOf", "balanceOf(address)"},
		{"function by signature", KindFunction, "transfer(address,uint256)", "transfer(address,uint256)"},
		{"event by topic", KindEvent, transferTopic, "Transfer(address,address,uint256)"},
		{"event by name", KindEvent, "Transfer", "Transfer(address,address,uint256)"},
		{"error by name", KindError, "InsufficientBalance", "InsufficientBalance(uint256,uint256)"},
		{"constructor", KindConstructor, "", "constructor(string,string)"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			item, ok, err := LookupABI([]byte(erc20ABI), tt.kind, tt.identifier)
			require.NoError(t, err)
			require.True(t, ok)

			sig, err := Signature(item)
			require.NoError(t, err)
			assert.Equal(t, tt.want, sig)
		})
	}
}

func TestLookupABIMisses(t *testing.T) {
	tests := []struct {
		name       string
		kind       Kind
		identifier string
	}{
		{"unknown selector", KindFunction, "0x00000000"},
		{"partial selector", KindFunction, "0xa905"},
		{"wrong kind", KindEvent, "transfer"},
		{"selector for event", KindEvent, "0xa9059cbb"},
		{"topic for function", KindFunction, transferTopic},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			item, ok, err := LookupABI([]byte(erc20ABI), tt.kind, tt.identifier)
			assert.NoError(t, err)
			assert.False(t, ok)
			assert.Nil(t, item)
		})
	}

	t.Run("malformed json is an error", func(t *testing.T) {
		_, _, err := LookupABI([]byte(`not json`), KindFunction, "transfer")
		assert.Error(t, err)
	})
}

func TestParse(t *testing.T) {
	t.Run("signature", func(t *testing.T) {
		item, err := Parse("transfer(address,uint256)")
		require.NoError(t, err)
		assert.Equal(t, KindFunction, item.Kind())
	})

	t.Run("json object", func(t *testing.T) {
		item, err := Parse(`{"type":"error","name":"Oops","inputs":[{"name":"code","type":"uint"}]}`)
		require.NoError(t, err)
		assert.Equal(t, &CustomError{Name: "Oops", Inputs: []Parameter{{Name: "code", Type: "uint256"}}}, item)
	})

	t.Run("json array with several items", func(t *testing.T) {
		_, err := Parse(erc20ABI)
		assert.Error(t, err)
	})

	t.Run("json array with no items", func(t *testing.T) {
		_, err := Parse(`[]`)
		assert.ErrorIs(t, err, ErrNotFound)
	})

	t.Run("bad signature", func(t *testing.T) {
		_, err := Parse("transfer(")
		var classErr *ClassificationError
		assert.True(t, errors.As(err, &classErr))
	})
}

func TestMustParseABIPanics(t *testing.T) {
	assert.Panics(t, func() { MustParseABI("[") })
	assert.Len(t, MustParseABI(erc20ABI), 5)
}
