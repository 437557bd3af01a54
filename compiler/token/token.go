package token

import (
	"fmt"
	"strconv"
	"strings"

	"tlog.app/go/errors"
	"tlog.app/go/tlog/tlwire"
)

type (
	Kind int

	Token struct {
		Kind   Kind
		Lexeme string
		Line   int
	}
)

const (
	Illegal Kind = iota

	// binary operators
	Plus
	Minus
	Star
	Slash
	Modulus

	// symbols
	Equals
	Bang

	// literals
	StringLit
	NumberLit
	Type

	// keywords
	Cout

	Newline
	EOF
)

const EndLexeme = "<-- END OF FILE -->"

var kindNames = [...]string{
	Illegal:   "Illegal",
	Plus:      "Plus",
	Minus:     "Minus",
	Star:      "Star",
	Slash:     "Slash",
	Modulus:   "Modulus",
	Equals:    "Equals",
	Bang:      "Bang",
	StringLit: "StringLit",
	NumberLit: "NumberLit",
	Type:      "Type",
	Cout:      "Cout",
	Newline:   "Newline",
	EOF:       "EOF",
}

var Keywords = map[string]Kind{
	"cout": Cout,
}

var ErrBadNumber = errors.New("malformed number literal")

func New(k Kind, lexeme string, line int) Token {
	return Token{
		Kind:   k,
		Lexeme: lexeme,
		Line:   line,
	}
}

// End returns the end-of-input sentinel.
func End(line int) Token {
	return New(EOF, EndLexeme, line)
}

// ParseNumber applies the literal rule shared by the lexer and the builder:
// a lexeme with a decimal point is a float64, anything else an int32.
func ParseNumber(lexeme string) (any, error) {
	if strings.Contains(lexeme, ".") {
		f, err := strconv.ParseFloat(lexeme, 64)
		if err != nil {
			return nil, errors.Wrap(ErrBadNumber, "float %q", lexeme)
		}

		return f, nil
	}

	i, err := strconv.ParseInt(lexeme, 10, 32)
	if err != nil {
		return nil, errors.Wrap(ErrBadNumber, "integer %q", lexeme)
	}

	return int32(i), nil
}

func (k Kind) String() string {
	if k >= 0 && int(k) < len(kindNames) {
		return kindNames[k]
	}

	return fmt.Sprintf("Kind(%d)", int(k))
}

func (k Kind) IsOperator() bool {
	return k >= Plus && k <= Modulus
}

func (t Token) String() string {
	return fmt.Sprintf("%v %d: %q", t.Kind, t.Line, t.Lexeme)
}

func (t Token) TlogAppend(b []byte) []byte {
	var e tlwire.Encoder

	b = e.AppendMap(b, 3)
	b = e.AppendKeyString(b, "kind", t.Kind.String())
	b = e.AppendKeyString(b, "lexeme", t.Lexeme)
	b = e.AppendKeyInt(b, "line", t.Line)

	return b
}
