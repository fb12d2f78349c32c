package abikit

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
)

// abiEntry is one element of a contract ABI JSON array.
type abiEntry struct {
	Type            string      `json:"type"`
	Name            string      `json:"name"`
	Inputs          []Parameter `json:"inputs"`
	Outputs         []Parameter `json:"outputs"`
	StateMutability string      `json:"stateMutability"`
	Anonymous       bool        `json:"anonymous"`

	// Pre-0.6 compilers emit these instead of stateMutability.
	Constant bool `json:"constant"`
	Payable  bool `json:"payable"`
}

func (e abiEntry) mutability() string {
	switch {
	case e.StateMutability != "":
		return e.StateMutability
	case e.Payable:
		return "payable"
	case e.Constant:
		return "view"
	default:
		return "nonpayable"
	}
}

// item converts the entry. ok is false for entries with no parameters to
// encode, such as fallback and receive.
func (e abiEntry) item() (Item, bool, error) {
	inputs := canonicalParams(e.Inputs)
	switch e.Type {
	case "function", "":
		return &Function{
			Name:            e.Name,
			Inputs:          inputs,
			Outputs:         canonicalParams(e.Outputs),
			StateMutability: e.mutability(),
		}, true, nil
	case "event":
		return &Event{Name: e.Name, Inputs: inputs, Anonymous: e.Anonymous}, true, nil
	case "error":
		return &CustomError{Name: e.Name, Inputs: inputs}, true, nil
	case "constructor":
		return &Constructor{Inputs: inputs, StateMutability: e.mutability()}, true, nil
	case "fallback", "receive":
		return nil, false, nil
	default:
		return nil, false, fmt.Errorf("abikit: unsupported ABI entry type %q", e.Type)
	}
}

// ParseABI parses a contract ABI JSON array, or a single ABI object, into
// items in declaration order. Fallback and receive entries are skipped.
func ParseABI(abiJSON []byte) ([]Item, error) {
	trimmed := bytes.TrimSpace(abiJSON)

	var entries []abiEntry
	if len(trimmed) > 0 && trimmed[0] == '{' {
		var entry abiEntry
		if err := json.Unmarshal(trimmed, &entry); err != nil {
			return nil, fmt.Errorf("abikit: invalid ABI object: %w", err)
		}
		entries = []abiEntry{entry}
	} else if err := json.Unmarshal(trimmed, &entries); err != nil {
		return nil, fmt.Errorf("abikit: invalid ABI JSON: %w", err)
	}

	items := make([]Item, 0, len(entries))
	for i, entry := range entries {
		item, ok, err := entry.item()
		if err != nil {
			return nil, fmt.Errorf("entry %d: %w", i, err)
		}
		if !ok {
			continue
		}
		if err := validateItem(item); err != nil {
			return nil, fmt.Errorf("abikit: entry %d (%s %s): %w", i, entry.Type, entry.Name, err)
		}
		items = append(items, item)
	}
	return items, nil
}

// MustParseABI is like ParseABI but panics on error.
func MustParseABI(abiJSON string) []Item {
	items, err := ParseABI([]byte(abiJSON))
	if err != nil {
		panic(err)
	}
	return items
}

// Parse turns either ABI JSON or a human-readable signature into an item.
// JSON must hold exactly one usable item; use LookupABI to pick from a
// larger ABI.
func Parse(source string) (Item, error) {
	trimmed := strings.TrimSpace(source)
	if json.Valid([]byte(trimmed)) {
		items, err := ParseABI([]byte(trimmed))
		if err != nil {
			return nil, err
		}
		switch len(items) {
		case 0:
			return nil, ErrNotFound
		case 1:
			return items[0], nil
		default:
			return nil, fmt.Errorf("abikit: ABI holds %d items, select one by name or selector", len(items))
		}
	}
	return Classify(trimmed)
}

// LookupABI finds the first item of the given kind in an ABI that matches
// identifier. The identifier may be a 4-byte selector (functions and errors),
// a 32-byte topic (events), a canonical signature or a plain name.
//
// A well-formed ABI with no match returns ok == false and a nil error;
// callers probing with partially typed identifiers should expect misses.
func LookupABI(abiJSON []byte, kind Kind, identifier string) (item Item, ok bool, err error) {
	items, err := ParseABI(abiJSON)
	if err != nil {
		return nil, false, err
	}
	id := strings.TrimSpace(identifier)
	for _, candidate := range items {
		if candidate.Kind() != kind {
			continue
		}
		if matchesIdentifier(candidate, id) {
			return candidate, true, nil
		}
	}
	return nil, false, nil
}

// selector and topic identifier lengths, including the 0x prefix.
const (
	selectorHexLen = 2 + 2*4
	topicHexLen    = 2 + 2*common.HashLength
)

func matchesIdentifier(item Item, id string) bool {
	if isHexID(id) {
		switch len(id) {
		case selectorHexLen:
			sel, err := Selector(item)
			return err == nil && strings.EqualFold(hexutil.Encode(sel[:]), id)
		case topicHexLen:
			ev, isEvent := item.(*Event)
			if !isEvent {
				return false
			}
			topic, err := Topic(ev)
			return err == nil && strings.EqualFold(topic.Hex(), id)
		}
	}

	if item.Kind() == KindConstructor {
		return id == "" || id == "constructor"
	}
	if id == Name(item) {
		return true
	}
	sig, err := Signature(item)
	return err == nil && sig == id
}

func isHexID(id string) bool {
	if !strings.HasPrefix(id, "0x") && !strings.HasPrefix(id, "0X") {
		return false
	}
	for _, c := range id[2:] {
		if !strings.ContainsRune("0123456789abcdefABCDEF", c) {
			return false
		}
	}
	return true
}
