package abikit

import (
	"errors"
	"fmt"
)

// Sentinel errors for common failure conditions.
var (
	// ErrNotFound indicates an ABI lookup matched no item of the requested kind.
	// LookupABI itself reports a miss softly; callers that need an error use this.
	ErrNotFound = errors.New("abikit: no matching ABI item found")

	// ErrMissingBytecode indicates constructor encoding was asked to require bytecode.
	ErrMissingBytecode = errors.New("abikit: constructor encoding requires bytecode")

	// ErrSelectorMismatch indicates call or revert data starts with another selector.
	ErrSelectorMismatch = errors.New("abikit: data selector does not match item")

	// ErrBytecodeMismatch indicates deploy data does not start with the given bytecode.
	ErrBytecodeMismatch = errors.New("abikit: deploy data does not start with bytecode")

	// ErrUnknownItem indicates an Item implementation outside this package.
	ErrUnknownItem = errors.New("abikit: unknown item kind")
)

// ClassificationError indicates no signature grammar matched the input.
type ClassificationError struct {
	Input string
	Err   error
}

func (e *ClassificationError) Error() string {
	return fmt.Sprintf("abikit: cannot classify %q: %v", e.Input, e.Err)
}

func (e *ClassificationError) Unwrap() error {
	return e.Err
}

// InvalidTupleError indicates an empty or malformed bare type list.
type InvalidTupleError struct {
	Input  string
	Reason string
}

func (e *InvalidTupleError) Error() string {
	return fmt.Sprintf("abikit: invalid tuple %q: %s", e.Input, e.Reason)
}

// ArityError indicates the argument count differs from the parameter count.
type ArityError struct {
	Kind Kind
	Want int
	Got  int
}

func (e *ArityError) Error() string {
	return fmt.Sprintf("abikit: %s expects %d arguments, got %d", e.Kind, e.Want, e.Got)
}

// PayloadShapeError indicates a payload composite that the item kind cannot decode.
type PayloadShapeError struct {
	Kind Kind
	Want string
	Got  string
}

func (e *PayloadShapeError) Error() string {
	return fmt.Sprintf("abikit: %s decoding requires %s, got %s", e.Kind, e.Want, e.Got)
}

// PackedEncodingError indicates a type that cannot be packed in its position.
type PackedEncodingError struct {
	Type   string
	Reason string
}

func (e *PackedEncodingError) Error() string {
	return fmt.Sprintf("abikit: cannot pack %s: %s", e.Type, e.Reason)
}

// ArgumentError indicates an argument string that does not parse as its parameter type.
type ArgumentError struct {
	Index int
	Type  string
	Err   error
}

func (e *ArgumentError) Error() string {
	return fmt.Sprintf("abikit: argument %d (%s): %v", e.Index, e.Type, e.Err)
}

func (e *ArgumentError) Unwrap() error {
	return e.Err
}

// EncodingError wraps a failure from the underlying ABI codec.
type EncodingError struct {
	Kind Kind
	Op   string
	Err  error
}

func (e *EncodingError) Error() string {
	return fmt.Sprintf("abikit: %s %s: %v", e.Kind, e.Op, e.Err)
}

func (e *EncodingError) Unwrap() error {
	return e.Err
}
