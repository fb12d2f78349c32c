package integration

import (
	"context"
	"crypto/ecdsa"
	"encoding/json"
	"fmt"
	"math/big"
	"os"
	"testing"

	"github.com/branched-services/go-abikit"
	"github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/accounts/abi/bind"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/ethereum/go-ethereum/ethclient"
)

// Test private key (Anvil default account 0)
const testPrivateKey = "ac0974bec39a17e36ba4a6b4d238ff944bacb478cbed5efcae784d7bf4f2ff80"

const recipient = "0x70997970C51812dc3A010C7d01b50e0d17dc79C8"

type ContractArtifact struct {
	ABI      json.RawMessage `json:"abi"`
	Bytecode struct {
		Object string `json:"object"`
	} `json:"bytecode"`
}

type chain struct {
	client  *ethclient.Client
	key     *ecdsa.PrivateKey
	chainID *big.Int
}

// TestTokenRoundTrip deploys src/Token.sol, sends a transfer encoded by abikit
// and decodes the resulting log and the balanceOf return data.
func TestTokenRoundTrip(t *testing.T) {
	if os.Getenv("INTEGRATION_TEST") != "1" {
		t.Skip("Set INTEGRATION_TEST=1 to run integration tests")
	}

	ctx := context.Background()

	// Connect to Anvil
	client, err := ethclient.Dial("http://localhost:8545")
	if err != nil {
		t.Fatalf("Failed to connect to Anvil: %v", err)
	}
	defer client.Close()

	chainID, err := client.ChainID(ctx)
	if err != nil {
		t.Fatalf("Failed to get chain ID: %v", err)
	}
	privateKey, err := crypto.HexToECDSA(testPrivateKey)
	if err != nil {
		t.Fatalf("Failed to parse private key: %v", err)
	}
	c := &chain{client: client, key: privateKey, chainID: chainID}

	artifact, err := readArtifact("Token")
	if err != nil {
		t.Fatal(err)
	}
	bytecode, err := hexutil.Decode(artifact.Bytecode.Object)
	if err != nil {
		t.Fatalf("Failed to decode bytecode: %v", err)
	}

	// Deploy with abikit-encoded constructor arguments
	ctor, found, err := abikit.LookupABI(artifact.ABI, abikit.KindConstructor, "")
	if err != nil || !found {
		t.Fatalf("Constructor not found: found=%v err=%v", found, err)
	}
	deploy, err := abikit.Encode(ctor, []string{"1000"}, abikit.WithBytecode(bytecode), abikit.WithRequireBytecode())
	if err != nil {
		t.Fatalf("Failed to encode constructor: %v", err)
	}
	receipt, err := c.send(ctx, nil, deploy.(abikit.Data))
	if err != nil {
		t.Fatalf("Failed to deploy Token: %v", err)
	}
	token := receipt.ContractAddress
	t.Logf("Token deployed at: %s", token.Hex())

	// Transfer 250 tokens
	transfer, _, err := abikit.LookupABI(artifact.ABI, abikit.KindFunction, "transfer")
	if err != nil {
		t.Fatalf("Failed to look up transfer: %v", err)
	}
	calldata, err := abikit.Encode(transfer, []string{recipient, "250"})
	if err != nil {
		t.Fatalf("Failed to encode transfer: %v", err)
	}
	receipt, err = c.send(ctx, &token, calldata.(abikit.Data))
	if err != nil {
		t.Fatalf("Failed to send transfer: %v", err)
	}
	if len(receipt.Logs) != 1 {
		t.Fatalf("Expected 1 log, got %d", len(receipt.Logs))
	}

	// Decode the Transfer log
	event, err := abikit.Classify("event Transfer(address indexed from, address indexed to, uint256 value)")
	if err != nil {
		t.Fatalf("Failed to classify event: %v", err)
	}
	log := receipt.Logs[0]
	decoded, err := abikit.DecodeNamed(event, &abikit.Log{Topics: log.Topics, Data: log.Data})
	if err != nil {
		t.Fatalf("Failed to decode log: %v", err)
	}
	from, _ := decoded.Get("from")
	to, _ := decoded.Get("to")
	value, _ := decoded.Get("value")
	if from != crypto.PubkeyToAddress(privateKey.PublicKey).Hex() {
		t.Errorf("from = %v", from)
	}
	if to != recipient {
		t.Errorf("to = %v, want %s", to, recipient)
	}
	if value.(*big.Int).Cmp(big.NewInt(250)) != 0 {
		t.Errorf("value = %v, want 250", value)
	}

	// Read back the recipient balance
	balanceOf, err := abikit.Classify("function balanceOf(address) view returns (uint256)")
	if err != nil {
		t.Fatalf("Failed to classify balanceOf: %v", err)
	}
	query, err := abikit.Encode(balanceOf, []string{recipient})
	if err != nil {
		t.Fatalf("Failed to encode balanceOf: %v", err)
	}
	out, err := client.CallContract(ctx, ethereum.CallMsg{To: &token, Data: query.(abikit.Data)}, nil)
	if err != nil {
		t.Fatalf("Failed to call balanceOf: %v", err)
	}
	balance, err := abikit.DecodeOutputs(balanceOf.(*abikit.Function), out)
	if err != nil {
		t.Fatalf("Failed to decode balance: %v", err)
	}
	if balance[0].(*big.Int).Cmp(big.NewInt(250)) != 0 {
		t.Errorf("balance = %v, want 250", balance[0])
	}
}

// TestRevertDecoding checks that revert data from a failing transfer decodes
// against the custom error declaration.
func TestRevertDecoding(t *testing.T) {
	if os.Getenv("INTEGRATION_TEST") != "1" {
		t.Skip("Set INTEGRATION_TEST=1 to run integration tests")
	}

	revertErr, err := abikit.Classify("error InsufficientBalance(uint256 available, uint256 required)")
	if err != nil {
		t.Fatalf("Failed to classify error: %v", err)
	}
	data, err := abikit.Encode(revertErr, []string{"0", "1"})
	if err != nil {
		t.Fatalf("Failed to encode error: %v", err)
	}
	values, err := abikit.Decode(revertErr, data)
	if err != nil {
		t.Fatalf("Failed to decode error: %v", err)
	}
	if values[1].(*big.Int).Int64() != 1 {
		t.Errorf("required = %v, want 1", values[1])
	}
}

func readArtifact(name string) (*ContractArtifact, error) {
	artifactPath := fmt.Sprintf("out/%s.sol/%s.json", name, name)
	data, err := os.ReadFile(artifactPath)
	if err != nil {
		return nil, fmt.Errorf("read artifact: %w (run 'forge build' first)", err)
	}
	var artifact ContractArtifact
	if err := json.Unmarshal(data, &artifact); err != nil {
		return nil, fmt.Errorf("parse artifact: %w", err)
	}
	return &artifact, nil
}

// send signs a legacy transaction to the given address, or a contract
// creation when to is nil, and waits for it to be mined.
func (c *chain) send(ctx context.Context, to *common.Address, data []byte) (*types.Receipt, error) {
	from := crypto.PubkeyToAddress(c.key.PublicKey)
	nonce, err := c.client.PendingNonceAt(ctx, from)
	if err != nil {
		return nil, fmt.Errorf("get nonce: %w", err)
	}
	gasPrice, err := c.client.SuggestGasPrice(ctx)
	if err != nil {
		return nil, fmt.Errorf("get gas price: %w", err)
	}

	tx, err := types.SignTx(types.NewTx(&types.LegacyTx{
		Nonce:    nonce,
		GasPrice: gasPrice,
		Gas:      3000000,
		To:       to,
		Data:     data,
	}), types.LatestSignerForChainID(c.chainID), c.key)
	if err != nil {
		return nil, fmt.Errorf("sign: %w", err)
	}
	if err := c.client.SendTransaction(ctx, tx); err != nil {
		return nil, fmt.Errorf("send: %w", err)
	}

	receipt, err := bind.WaitMined(ctx, c.client, tx)
	if err != nil {
		return nil, fmt.Errorf("wait mined: %w", err)
	}
	if receipt.Status != types.ReceiptStatusSuccessful {
		return nil, fmt.Errorf("transaction failed: status=%d", receipt.Status)
	}
	return receipt, nil
}
