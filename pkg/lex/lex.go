// Package lex classifies raw argv tokens. It performs no schema lookup and
// no validation: unknown flags are classified, not rejected. The caller
// feeds it the argument vector minus the program name.
package lex

import "strings"

// Kind discriminates classified tokens.
type Kind int

const (
	// Value is a free-standing token: a positional candidate, a
	// subcommand name, or an option's separate value.
	Value Kind = iota
	// LongFlag is a --name token, optionally carrying an inline =value.
	LongFlag
	// ShortGroup is a -abc token; each rune resolves independently
	// against the schema, so -abc is equivalent to -a -b -c.
	ShortGroup
)

// Token is one classified argv element.
type Token struct {
	Kind Kind
	// Text is the original token, used verbatim in error reporting and
	// as the value for Value tokens.
	Text string
	// Name is the flag name without dashes for LongFlag, or the rune
	// sequence for ShortGroup.
	Name string
	// Inline carries the value after '=' for LongFlag tokens written as
	// --name=value.
	Inline    string
	HasInline bool
	// Terminated marks a token that appeared after the "--" terminator.
	// Such tokens are plain values and never dispatch a subcommand.
	Terminated bool
}

// Scanner walks an argument vector lazily, classifying one token per Next
// call. A lone "--" terminates flag parsing: every later token is a Value
// regardless of leading dashes. The scan is a single linear pass and can be
// restarted with Reset.
type Scanner struct {
	argv       []string
	pos        int
	terminated bool
}

// NewScanner creates a Scanner over argv (program name excluded).
func NewScanner(argv []string) *Scanner {
	return &Scanner{argv: argv}
}

// Next returns the next classified token. The second return is false once
// the input is exhausted.
func (s *Scanner) Next() (Token, bool) {
	for s.pos < len(s.argv) {
		raw := s.argv[s.pos]
		s.pos++
		if !s.terminated && raw == "--" {
			s.terminated = true
			continue
		}
		return s.classify(raw), true
	}
	return Token{}, false
}

// Peek returns the upcoming token without consuming it.
func (s *Scanner) Peek() (Token, bool) {
	pos, terminated := s.pos, s.terminated
	tok, ok := s.Next()
	s.pos, s.terminated = pos, terminated
	return tok, ok
}

// Reset rewinds the scanner to the start of the input.
func (s *Scanner) Reset() {
	s.pos = 0
	s.terminated = false
}

// Remaining returns the raw tokens not yet consumed. Used when matching
// hands the rest of the input to an invoked subcommand.
func (s *Scanner) Remaining() []string {
	rest := s.argv[s.pos:]
	if s.terminated {
		// Keep the terminator's effect for the nested scan.
		rest = append([]string{"--"}, rest...)
	}
	return rest
}

func (s *Scanner) classify(raw string) Token {
	if s.terminated {
		return Token{Kind: Value, Text: raw, Terminated: true}
	}
	switch {
	case strings.HasPrefix(raw, "--"):
		name := raw[2:]
		if eq := strings.IndexByte(name, '='); eq >= 0 {
			return Token{
				Kind:      LongFlag,
				Text:      raw,
				Name:      name[:eq],
				Inline:    name[eq+1:],
				HasInline: true,
			}
		}
		return Token{Kind: LongFlag, Text: raw, Name: name}
	case len(raw) > 1 && raw[0] == '-':
		return Token{Kind: ShortGroup, Text: raw, Name: raw[1:]}
	default:
		// Includes a lone "-", conventionally a stdin/stdout marker.
		return Token{Kind: Value, Text: raw}
	}
}
