package abikit

import (
	"errors"
	"fmt"
	"regexp"
	"strings"
)

const identPattern = `[A-Za-z_$][A-Za-z0-9_$]*`

// Grammar headers. The parameter lists that follow are parsed by sigScanner.
var (
	tupleRe       = regexp.MustCompile(`(?s)^\(.*\)$`)
	tupleTokenRe  = regexp.MustCompile(`^[A-Za-z0-9_\[\]]+$`)
	errorRe       = regexp.MustCompile(`(?s)^error\s+(` + identPattern + `)\s*(\(.*)$`)
	eventRe       = regexp.MustCompile(`(?s)^event\s+(` + identPattern + `)\s*(\(.*)$`)
	functionRe    = regexp.MustCompile(`(?s)^function\s+(` + identPattern + `)\s*(\(.*)$`)
	constructorRe = regexp.MustCompile(`(?s)^constructor\s*(\(.*)$`)
)

var (
	visibilities = map[string]bool{"external": true, "public": true}
	mutabilities = map[string]bool{"pure": true, "view": true, "nonpayable": true, "payable": true}
)

// Classify parses a human-readable signature into an Item.
//
// Grammars are tried in order: bare tuple, error, event, function,
// constructor. A string with no keyword, such as "approve(address,uint256)",
// is retried as a function.
func Classify(raw string) (Item, error) {
	src := strings.TrimSpace(raw)

	if tupleRe.MatchString(src) {
		return classifyTuple(src)
	}

	var (
		item Item
		err  error
	)
	switch {
	case errorRe.MatchString(src):
		m := errorRe.FindStringSubmatch(src)
		item, err = parseError(m[1], m[2])
	case eventRe.MatchString(src):
		m := eventRe.FindStringSubmatch(src)
		item, err = parseEvent(m[1], m[2])
	case functionRe.MatchString(src):
		m := functionRe.FindStringSubmatch(src)
		item, err = parseFunction(m[1], m[2])
	case constructorRe.MatchString(src):
		m := constructorRe.FindStringSubmatch(src)
		item, err = parseConstructor(m[1])
	default:
		m := functionRe.FindStringSubmatch("function " + src)
		if m == nil {
			return nil, &ClassificationError{Input: raw, Err: errors.New("no signature grammar matched")}
		}
		item, err = parseFunction(m[1], m[2])
	}
	if err != nil {
		return nil, &ClassificationError{Input: raw, Err: err}
	}
	if err := validateItem(item); err != nil {
		return nil, &ClassificationError{Input: raw, Err: err}
	}
	return item, nil
}

// MustClassify is like Classify but panics on error.
func MustClassify(raw string) Item {
	item, err := Classify(raw)
	if err != nil {
		panic(err)
	}
	return item
}

// ClassifyCandidates classifies signature names returned by a lookup service,
// dropping any that do not parse.
func ClassifyCandidates(names []string) []Item {
	items := make([]Item, 0, len(names))
	for _, name := range names {
		item, err := Classify(name)
		if err != nil {
			continue
		}
		items = append(items, item)
	}
	return items
}

func classifyTuple(src string) (Item, error) {
	inner := src[1 : len(src)-1]
	components := make([]Parameter, 0)
	for _, entry := range strings.Split(inner, ",") {
		entry = strings.TrimSpace(entry)
		if entry == "" {
			continue
		}
		entry = canonicalType(entry)
		if !tupleTokenRe.MatchString(entry) {
			return nil, &InvalidTupleError{Input: src, Reason: fmt.Sprintf("malformed type %q", entry)}
		}
		components = append(components, Parameter{Type: entry})
	}
	if len(components) == 0 {
		return nil, &InvalidTupleError{Input: src, Reason: "no types"}
	}
	for _, c := range components {
		if _, err := abiType(c); err != nil {
			return nil, &InvalidTupleError{Input: src, Reason: err.Error()}
		}
	}
	return &Tuple{Components: components}, nil
}

func parseError(name, rest string) (Item, error) {
	s := newSigScanner(rest)
	inputs, err := s.paramList(false)
	if err != nil {
		return nil, err
	}
	if words := s.trailer(); len(words) > 0 {
		return nil, fmt.Errorf("unexpected %q after error parameters", strings.Join(words, " "))
	}
	return &CustomError{Name: name, Inputs: inputs}, nil
}

func parseEvent(name, rest string) (Item, error) {
	s := newSigScanner(rest)
	inputs, err := s.paramList(true)
	if err != nil {
		return nil, err
	}
	ev := &Event{Name: name, Inputs: inputs}
	switch words := s.trailer(); {
	case len(words) == 0:
	case len(words) == 1 && words[0] == "anonymous":
		ev.Anonymous = true
	default:
		return nil, fmt.Errorf("unexpected %q after event parameters", strings.Join(words, " "))
	}
	return ev, nil
}

func parseFunction(name, rest string) (Item, error) {
	s := newSigScanner(rest)
	inputs, err := s.paramList(false)
	if err != nil {
		return nil, err
	}
	fn := &Function{
		Name:            name,
		Inputs:          inputs,
		Outputs:         make([]Parameter, 0),
		StateMutability: "nonpayable",
	}

	var sawVisibility, sawMutability bool
	for {
		s.skipSpace()
		if s.eof() {
			return fn, nil
		}
		w := s.word()
		switch {
		case visibilities[w] && !sawVisibility:
			sawVisibility = true
		case mutabilities[w] && !sawMutability:
			sawMutability = true
			fn.StateMutability = w
		case w == "returns":
			outputs, err := s.paramList(false)
			if err != nil {
				return nil, err
			}
			fn.Outputs = outputs
			if words := s.trailer(); len(words) > 0 {
				return nil, fmt.Errorf("unexpected %q after returns", strings.Join(words, " "))
			}
			return fn, nil
		case w == "":
			return nil, s.errorf("unexpected character after function parameters")
		default:
			return nil, fmt.Errorf("unexpected %q after function parameters", w)
		}
	}
}

func parseConstructor(rest string) (Item, error) {
	s := newSigScanner(rest)
	inputs, err := s.paramList(false)
	if err != nil {
		return nil, err
	}
	c := &Constructor{Inputs: inputs, StateMutability: "nonpayable"}
	switch words := s.trailer(); {
	case len(words) == 0:
	case len(words) == 1 && words[0] == "payable":
		c.StateMutability = "payable"
	default:
		return nil, fmt.Errorf("unexpected %q after constructor parameters", strings.Join(words, " "))
	}
	return c, nil
}

// validateItem checks that every parameter type is a valid ABI type.
func validateItem(item Item) error {
	if _, err := toArguments(Parameters(item)); err != nil {
		return err
	}
	if fn, ok := item.(*Function); ok {
		if _, err := toArguments(fn.Outputs); err != nil {
			return fmt.Errorf("returns: %w", err)
		}
	}
	return nil
}
