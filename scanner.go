package abikit

import (
	"fmt"
	"strings"
)

// dataLocations are Solidity storage qualifiers that may follow a parameter type.
// They carry no ABI meaning and are skipped.
var dataLocations = map[string]bool{
	"memory":   true,
	"calldata": true,
	"storage":  true,
}

// sigScanner walks a human-readable signature one token at a time.
type sigScanner struct {
	src string
	pos int
}

func newSigScanner(src string) *sigScanner {
	return &sigScanner{src: src}
}

func isDigit(c byte) bool {
	return c >= '0' && c <= '9'
}

func isAlpha(c byte) bool {
	return (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}

func isWordChar(c byte) bool {
	return isAlpha(c) || isDigit(c) || c == '_' || c == '$'
}

func isSpace(c byte) bool {
	return c == ' ' || c == '\t' || c == '\n' || c == '\r'
}

func (s *sigScanner) eof() bool {
	return s.pos >= len(s.src)
}

// peek returns the current byte, or 0 at the end of input.
func (s *sigScanner) peek() byte {
	if s.eof() {
		return 0
	}
	return s.src[s.pos]
}

func (s *sigScanner) skipSpace() {
	for !s.eof() && isSpace(s.src[s.pos]) {
		s.pos++
	}
}

// word consumes a run of identifier characters. It returns "" if none are present.
func (s *sigScanner) word() string {
	start := s.pos
	for !s.eof() && isWordChar(s.src[s.pos]) {
		s.pos++
	}
	return s.src[start:s.pos]
}

func (s *sigScanner) expect(c byte) error {
	s.skipSpace()
	if s.peek() != c {
		return s.errorf("expected %q", c)
	}
	s.pos++
	return nil
}

func (s *sigScanner) errorf(format string, args ...any) error {
	found := "end of input"
	if !s.eof() {
		found = fmt.Sprintf("%q", s.src[s.pos])
	}
	return fmt.Errorf("offset %d: %s, found %s", s.pos, fmt.Sprintf(format, args...), found)
}

// hasTuplePrefix reports whether the input continues with "tuple(".
func (s *sigScanner) hasTuplePrefix() bool {
	rest := s.src[s.pos:]
	if !strings.HasPrefix(rest, "tuple") {
		return false
	}
	return strings.HasPrefix(strings.TrimLeft(rest[len("tuple"):], " \t\r\n"), "(")
}

// paramList parses "( param, param, ... )".
func (s *sigScanner) paramList(allowIndexed bool) ([]Parameter, error) {
	if err := s.expect('('); err != nil {
		return nil, err
	}
	params := make([]Parameter, 0)
	s.skipSpace()
	if s.peek() == ')' {
		s.pos++
		return params, nil
	}
	for {
		p, err := s.param(allowIndexed)
		if err != nil {
			return nil, err
		}
		params = append(params, p)

		s.skipSpace()
		switch s.peek() {
		case ',':
			s.pos++
		case ')':
			s.pos++
			return params, nil
		default:
			return nil, s.errorf("expected ',' or ')'")
		}
	}
}

// param parses "type [indexed] [location] [name]".
func (s *sigScanner) param(allowIndexed bool) (Parameter, error) {
	var p Parameter

	s.skipSpace()
	if s.peek() == '(' || s.hasTuplePrefix() {
		if s.peek() != '(' {
			s.pos += len("tuple")
		}
		components, err := s.paramList(false)
		if err != nil {
			return p, err
		}
		p.Type = "tuple"
		p.Components = components
	} else {
		t := s.word()
		if t == "" || !isAlpha(t[0]) {
			return p, s.errorf("expected type")
		}
		p.Type = canonicalType(t)
		if t == "address" {
			s.skipPayable()
		}
	}

	suffix, err := s.arraySuffix()
	if err != nil {
		return p, err
	}
	p.Type += suffix

	for {
		s.skipSpace()
		if c := s.peek(); c == ',' || c == ')' || c == 0 {
			return p, nil
		}
		w := s.word()
		switch {
		case w == "":
			return p, s.errorf("unexpected character")
		case w == "indexed":
			if !allowIndexed {
				return p, fmt.Errorf("offset %d: indexed is only valid on event parameters", s.pos)
			}
			p.Indexed = true
		case dataLocations[w]:
		case p.Name == "" && !isDigit(w[0]):
			p.Name = w
		default:
			return p, fmt.Errorf("offset %d: unexpected %q after parameter %s", s.pos, w, p.Type)
		}
	}
}

// skipPayable consumes a "payable" modifier following address.
func (s *sigScanner) skipPayable() {
	start := s.pos
	s.skipSpace()
	if s.word() != "payable" {
		s.pos = start
	}
}

// arraySuffix consumes any number of "[]" or "[N]" suffixes.
func (s *sigScanner) arraySuffix() (string, error) {
	var b strings.Builder
	for s.peek() == '[' {
		b.WriteByte('[')
		s.pos++
		for isDigit(s.peek()) {
			b.WriteByte(s.src[s.pos])
			s.pos++
		}
		if s.peek() != ']' {
			return "", s.errorf("expected ']'")
		}
		b.WriteByte(']')
		s.pos++
	}
	return b.String(), nil
}

// trailer returns the remaining whitespace-separated words.
func (s *sigScanner) trailer() []string {
	return strings.Fields(s.src[s.pos:])
}

// canonicalType widens the uint and int aliases to their 256-bit names,
// keeping any array suffix.
func canonicalType(t string) string {
	base, suffix := t, ""
	if i := strings.IndexByte(t, '['); i >= 0 {
		base, suffix = t[:i], t[i:]
	}
	switch base {
	case "uint":
		base = "uint256"
	case "int":
		base = "int256"
	}
	return base + suffix
}

// canonicalParams applies canonicalType to every parameter, recursively.
func canonicalParams(params []Parameter) []Parameter {
	out := make([]Parameter, len(params))
	for i, p := range params {
		p.Type = canonicalType(p.Type)
		if len(p.Components) > 0 {
			p.Components = canonicalParams(p.Components)
		}
		out[i] = p
	}
	return out
}
