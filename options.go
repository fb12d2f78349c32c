package abikit

// EncodeOption configures the Encode() operation.
type EncodeOption func(*encodeConfig)

// encodeConfig holds configuration for the Encode() function.
type encodeConfig struct {
	packed          bool
	bytecode        []byte
	requireBytecode bool
}

// defaultEncodeConfig returns the default encode configuration.
func defaultEncodeConfig() *encodeConfig {
	return &encodeConfig{
		packed:          false,
		bytecode:        nil,
		requireBytecode: false,
	}
}

// WithPacked enables or disables packed encoding for tuples.
// Packed output omits padding and cannot be decoded. Other kinds ignore it.
func WithPacked(enabled bool) EncodeOption {
	return func(c *encodeConfig) {
		c.packed = enabled
	}
}

// WithBytecode sets the creation bytecode that prefixes constructor arguments.
// Default is empty bytecode.
func WithBytecode(code []byte) EncodeOption {
	return func(c *encodeConfig) {
		c.bytecode = append([]byte(nil), code...)
	}
}

// WithRequireBytecode makes constructor encoding fail with ErrMissingBytecode
// when no bytecode was supplied, instead of defaulting to empty.
func WithRequireBytecode() EncodeOption {
	return func(c *encodeConfig) {
		c.requireBytecode = true
	}
}
