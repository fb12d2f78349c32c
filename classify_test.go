package abikit

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClassifyTuple(t *testing.T) {
	t.Run("canonicalizes uint and int", func(t *testing.T) {
		item, err := Classify("(uint,address)")
		require.NoError(t, err)

		tuple, ok := item.(*Tuple)
		require.True(t, ok, "expected *Tuple, got %T", item)
		assert.Equal(t, []Parameter{{Type: "uint256"}, {Type: "address"}}, tuple.Components)
	})

	t.Run("trims and drops empty entries", func(t *testing.T) {
		item, err := Classify("  ( int , , bytes32[] ,bool ) ")
		require.NoError(t, err)
		assert.Equal(t, []Parameter{{Type: "int256"}, {Type: "bytes32[]"}, {Type: "bool"}}, Parameters(item))
	})

	t.Run("canonicalizes array aliases", func(t *testing.T) {
		item, err := Classify("(uint[2],int[])")
		require.NoError(t, err)
		assert.Equal(t, []Parameter{{Type: "uint256[2]"}, {Type: "int256[]"}}, Parameters(item))
	})

	invalid := []struct {
		name  string
		input string
	}{
		{"empty", "()"},
		{"only commas", "( , ,)"},
		{"named entry", "(uint256 amount)"},
		{"nested tuple", "((uint256,address),bool)"},
		{"unknown type", "(uint256,float)"},
	}
	for _, tt := range invalid {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Classify(tt.input)
			var tupleErr *InvalidTupleError
			require.True(t, errors.As(err, &tupleErr), "expected InvalidTupleError, got %v", err)
		})
	}
}

func TestClassifyKinds(t *testing.T) {
	tests := []struct {
		name  string
		input string
		kind  Kind
		sig   string
	}{
		{"error", "error InsufficientBalance(uint256 available, uint256 required)", KindError, "InsufficientBalance(uint256,uint256)"},
		{"event", "event Transfer(address indexed from, address indexed to, uint256 value)", KindEvent, "Transfer(address,address,uint256)"},
		{"function", "function transfer(address to, uint256 amount) external returns (bool)", KindFunction, "transfer(address,uint256)"},
		{"constructor", "constructor(string name, string symbol)", KindConstructor, "constructor(string,string)"},
		{"keyword-less function", "approve(address,uint256)", KindFunction, "approve(address,uint256)"},
		{"tuple parameter", "function submit((uint256 id, address[] owners)[] orders, bytes data)", KindFunction, "submit((uint256,address[])[],bytes)"},
		{"tuple keyword", "function f(tuple(uint a, bool b) s)", KindFunction, "f((uint256,bool))"},
		{"data locations", "function setName(string memory name, bytes calldata proof)", KindFunction, "setName(string,bytes)"},
		{"no parameters", "function totalSupply() view returns (uint256)", KindFunction, "totalSupply()"},
		{"address payable", "function send(address payable to, uint256 amount)", KindFunction, "send(address,uint256)"},
		{"address payable array", "function pay(address payable[] memory to)", KindFunction, "pay(address[])"},
		{"component names that are not identifiers", "function f((uint256 $a, uint256 b) x)", KindFunction, "f((uint256,uint256))"},
		{"component name colliding with fallback", "function f((uint256, uint256 arg0) x)", KindFunction, "f((uint256,uint256))"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			item, err := Classify(tt.input)
			require.NoError(t, err)
			assert.Equal(t, tt.kind, item.Kind())

			sig, err := Signature(item)
			require.NoError(t, err)
			assert.Equal(t, tt.sig, sig)
		})
	}
}

func TestClassifyFallbackMatchesFunctionKeyword(t *testing.T) {
	bare, err := Classify("approve(address,uint256)")
	require.NoError(t, err)
	keyword, err := Classify("function approve(address,uint256)")
	require.NoError(t, err)

	assert.Equal(t, keyword, bare)
}

func TestClassifyFunctionModifiers(t *testing.T) {
	item, err := Classify("function balanceOf(address owner) external view returns (uint256 balance)")
	require.NoError(t, err)

	fn := item.(*Function)
	assert.Equal(t, "balanceOf", fn.Name)
	assert.Equal(t, "view", fn.StateMutability)
	assert.Equal(t, []Parameter{{Name: "owner", Type: "address"}}, fn.Inputs)
	assert.Equal(t, []Parameter{{Name: "balance", Type: "uint256"}}, fn.Outputs)

	t.Run("defaults to nonpayable", func(t *testing.T) {
		item, err := Classify("function burn(uint256)")
		require.NoError(t, err)
		assert.Equal(t, "nonpayable", item.(*Function).StateMutability)
		assert.Empty(t, item.(*Function).Outputs)
	})

	t.Run("payable constructor", func(t *testing.T) {
		item, err := Classify("constructor() payable")
		require.NoError(t, err)
		assert.Equal(t, "payable", item.(*Constructor).StateMutability)
		assert.Empty(t, Parameters(item))
	})
}

func TestClassifyEventQualifiers(t *testing.T) {
	item, err := Classify("event Deposit(address indexed owner, uint256 amount) anonymous")
	require.NoError(t, err)

	ev := item.(*Event)
	assert.True(t, ev.Anonymous)
	assert.Equal(t, []Parameter{
		{Name: "owner", Type: "address", Indexed: true},
		{Name: "amount", Type: "uint256"},
	}, ev.Inputs)
}

func TestClassifyAddressPayable(t *testing.T) {
	item, err := Classify("function send(address payable to, uint256 amount)")
	require.NoError(t, err)
	assert.Equal(t, []Parameter{
		{Name: "to", Type: "address"},
		{Name: "amount", Type: "uint256"},
	}, Parameters(item))
}

func TestClassifyDoesNotInventNames(t *testing.T) {
	item, err := Classify("function f(uint256, (address, bool))")
	require.NoError(t, err)

	for _, p := range Parameters(item) {
		assert.Empty(t, p.Name)
		for _, c := range p.Components {
			assert.Empty(t, c.Name)
		}
	}
}

func TestClassifyErrors(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{"empty", ""},
		{"plain word", "transfer"},
		{"unknown type", "transfer(adress,uint256)"},
		{"unclosed list", "function transfer(address,uint256"},
		{"indexed outside event", "function f(uint256 indexed x)"},
		{"error trailer", "error Oops(uint256) view"},
		{"duplicate mutability", "function f() view pure"},
		{"constructor trailer", "constructor() view"},
		{"garbage after returns", "function f() returns (uint256) extra"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Classify(tt.input)
			var classErr *ClassificationError
			require.True(t, errors.As(err, &classErr), "expected ClassificationError, got %v", err)
			assert.Equal(t, tt.input, classErr.Input)
		})
	}
}

func TestClassifyCandidates(t *testing.T) {
	items := ClassifyCandidates([]string{
		"transfer(address,uint256)",
		"not a signature",
		"many_msg_babbage(bytes1)",
	})
	require.Len(t, items, 2)
	assert.Equal(t, "transfer", Name(items[0]))
	assert.Equal(t, "many_msg_babbage", Name(items[1]))
}

func TestMustClassifyPanics(t *testing.T) {
	assert.Panics(t, func() { MustClassify("(") })
	assert.NotPanics(t, func() { MustClassify("transfer(address,uint256)") })
}
