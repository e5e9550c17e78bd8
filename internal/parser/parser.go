// Package parser turns source text into a Value tree.
//
// Parse is a pure function: it consumes one expression and returns the
// unread remainder, so callers can drive script files and the REPL with
// the same entry point.
package parser

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/luizgabriel/LispInterpreter/internal/value"
)

// Error is a syntax error at a byte offset of the input.
type Error struct {
	Offset  int
	Message string
}

func (e *Error) Error() string {
	return fmt.Sprintf("syntax error at offset %d: %s", e.Offset, e.Message)
}

// Parse reads one expression from input and returns it together with
// the remaining unread text.
func Parse(input string) (value.Value, string, error) {
	s := &scanner{input: input}
	s.skipWhitespace()
	expr, err := s.parseExpression()
	if err != nil {
		return nil, "", err
	}
	s.skipWhitespace()
	return expr, s.input[s.position:], nil
}

// ParseAll reads every expression in input, as script files need.
func ParseAll(input string) ([]value.Value, error) {
	var exprs []value.Value
	rest := input
	for strings.TrimSpace(rest) != "" {
		expr, remaining, err := Parse(rest)
		if err != nil {
			return nil, err
		}
		exprs = append(exprs, expr)
		rest = remaining
	}
	return exprs, nil
}

type scanner struct {
	input    string
	position int // current position in input (points to current byte)
}

func (s *scanner) peek() byte {
	if s.position >= len(s.input) {
		return 0
	}
	return s.input[s.position]
}

func (s *scanner) peekAt(offset int) byte {
	if s.position+offset >= len(s.input) {
		return 0
	}
	return s.input[s.position+offset]
}

func (s *scanner) skipWhitespace() {
	for s.position < len(s.input) {
		switch s.input[s.position] {
		case ' ', '\t', '\n', '\r':
			s.position++
		default:
			return
		}
	}
}

func (s *scanner) errorf(format string, args ...interface{}) *Error {
	return &Error{Offset: s.position, Message: fmt.Sprintf(format, args...)}
}

func (s *scanner) parseExpression() (value.Value, error) {
	ch := s.peek()
	switch {
	case ch == 0:
		return nil, s.errorf("unexpected end of input")
	case ch == '\'':
		s.position++
		s.skipWhitespace()
		inner, err := s.parseExpression()
		if err != nil {
			return nil, err
		}
		return &value.Quoted{Value: inner}, nil
	case ch == '(':
		return s.parseSequence()
	case ch == '"':
		return s.parseText()
	case isDigit(ch) || ((ch == '+' || ch == '-') && isDigit(s.peekAt(1))):
		return s.parseNumber()
	case isOperator(ch):
		return s.parseOperator()
	case isIdentStart(ch):
		return s.parseIdentifier()
	}
	return nil, s.errorf("unexpected character %q", ch)
}

func (s *scanner) parseSequence() (value.Value, error) {
	s.position++ // consume '('
	var elements []value.Value
	for {
		s.skipWhitespace()
		switch s.peek() {
		case ')':
			s.position++
			return &value.Sequence{Elements: elements}, nil
		case 0:
			return nil, s.errorf("unclosed list")
		}
		el, err := s.parseExpression()
		if err != nil {
			return nil, err
		}
		elements = append(elements, el)
	}
}

func (s *scanner) parseText() (value.Value, error) {
	s.position++ // consume opening quote
	var b strings.Builder
	for {
		switch ch := s.peek(); ch {
		case 0:
			return nil, s.errorf("unterminated string")
		case '"':
			s.position++
			return &value.Text{Value: b.String()}, nil
		case '\\':
			s.position++
			switch esc := s.peek(); esc {
			case 'n':
				b.WriteByte('\n')
			case 't':
				b.WriteByte('\t')
			case 'r':
				b.WriteByte('\r')
			case '\\', '"', '\'', '/':
				b.WriteByte(esc)
			case '0':
				b.WriteByte(0)
			default:
				return nil, s.errorf("invalid escape sequence %q", esc)
			}
			s.position++
		default:
			b.WriteByte(ch)
			s.position++
		}
	}
}

func (s *scanner) parseNumber() (value.Value, error) {
	start := s.position
	if ch := s.peek(); ch == '+' || ch == '-' {
		s.position++
	}
	for isDigit(s.peek()) {
		s.position++
	}
	text := s.input[start:s.position]
	n, err := strconv.ParseInt(strings.TrimPrefix(text, "+"), 10, 64)
	if err != nil {
		return nil, &Error{Offset: start, Message: fmt.Sprintf("invalid number %q", text)}
	}
	return &value.Number{Value: n}, nil
}

func (s *scanner) parseOperator() (value.Value, error) {
	start := s.position
	for isOperator(s.peek()) {
		s.position++
	}
	return &value.Symbol{Name: s.input[start:s.position]}, nil
}

func (s *scanner) parseIdentifier() (value.Value, error) {
	start := s.position
	s.position++
	for isIdentPart(s.peek()) {
		s.position++
	}
	// Optional trailing predicate/form marker.
	if ch := s.peek(); ch == '?' || ch == '!' {
		s.position++
	}
	name := s.input[start:s.position]
	switch name {
	case "true":
		return value.True, nil
	case "false":
		return value.False, nil
	}
	return &value.Symbol{Name: name}, nil
}

func isDigit(ch byte) bool {
	return ch >= '0' && ch <= '9'
}

func isIdentStart(ch byte) bool {
	return ch == '_' || (ch >= 'a' && ch <= 'z') || (ch >= 'A' && ch <= 'Z')
}

func isIdentPart(ch byte) bool {
	return isIdentStart(ch) || isDigit(ch)
}

func isOperator(ch byte) bool {
	switch ch {
	case '>', '<', '+', '-', '*', '/', '%', '=':
		return true
	}
	return false
}
