// Package abikit encodes and decodes EVM contract call data, event logs,
// custom errors and constructor arguments from human-readable signatures or
// ABI JSON.
//
// # Basic Usage
//
// Classify a signature, then encode or decode with it:
//
//	item, err := abikit.Classify("function transfer(address to, uint256 amount)")
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	payload, err := abikit.Encode(item, []string{recipient, "1000"})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println(payload.(abikit.Data).Hex())
//
//	values, err := abikit.Decode(item, payload)
//
// # Signatures
//
// Classify accepts, in order of precedence:
//
//   - Bare tuples: "(uint256,address)"
//   - Errors: "error InsufficientBalance(uint256 available, uint256 required)"
//   - Events: "event Transfer(address indexed from, address indexed to, uint256 value)"
//   - Functions: "function balanceOf(address) view returns (uint256)"
//   - Constructors: "constructor(string name, string symbol) payable"
//
// A string with no keyword, such as "approve(address,uint256)", is read as a
// function. The aliases uint and int become uint256 and int256.
//
// ABI JSON is handled by ParseABI, Parse and LookupABI. LookupABI selects an
// item by name, 4-byte selector or 32-byte topic and reports a miss without
// an error.
//
// # Items and Payloads
//
// Every item kind exposes the same three operations: Parameters, Encode and
// Decode. The wire shape differs per kind:
//
//   - Function, CustomError: Data holding selector ++ arguments
//   - Event: *Log holding topics and non-indexed data
//   - Constructor: Data holding bytecode ++ arguments; decoded from *Deployment
//   - Tuple: Data holding the standard encoding, or the packed encoding when
//     WithPacked(true) is set
//
// Decode enforces the payload shape for each kind and fails with a
// *PayloadShapeError rather than guessing. Packed tuples cannot be decoded
// because the packed form carries no lengths or offsets.
//
// # Argument Strings
//
// Arguments are strings: integers in decimal or 0x hex, addresses and byte
// strings in 0x hex, bools as true/false, strings verbatim, and arrays or
// tuples as JSON arrays of the same forms.
//
// # Decoded Values
//
// Integers decode to *big.Int, addresses to checksummed hex strings, byte
// strings to 0x hex, arrays and tuples to []any. Indexed event parameters of
// hashed types (string, bytes, arrays) decode to their topic hash.
package abikit
