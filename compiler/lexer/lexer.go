package lexer

import (
	"context"
	"fmt"
	"strings"
	"unicode"
	"unicode/utf8"

	"tlog.app/go/errors"
	"tlog.app/go/loc"
	"tlog.app/go/tlog"

	"github.com/alarie-c/darcy2/compiler/token"
)

type (
	Lexer struct {
		text  []byte
		lines []string

		cur  rune
		pos  int // offset of cur
		next int // offset of the rune after cur
		bad  bool

		line int

		tokens []token.Token
	}

	Error struct {
		Err    error
		Line   int
		Lexeme string
		Source string
	}
)

var (
	ErrUnterminatedString = errors.New("unterminated string literal")
	ErrBadNumber          = token.ErrBadNumber
	ErrUnexpectedChar     = errors.New("unexpected character")
	ErrUnknownIdent       = errors.New("unresolved identifier")
)

var symbols = map[rune]token.Kind{
	'=': token.Equals,
	'!': token.Bang,
	'+': token.Plus,
	'-': token.Minus,
	'/': token.Slash,
	'*': token.Star,
	'%': token.Modulus,
}

func New(text []byte, lines []string) *Lexer {
	return &Lexer{
		text:  text,
		lines: lines,
	}
}

func Scan(ctx context.Context, text []byte) ([]token.Token, error) {
	return New(text, Lines(text)).Scan(ctx)
}

// Lines splits text the way diagnostics number it: line n is Lines(text)[n-1].
func Lines(text []byte) []string {
	return strings.Split(string(text), "\n")
}

// Line returns source line n or "" if it's unknown.
func (l *Lexer) Line(n int) string {
	if n < 1 || n > len(l.lines) {
		return ""
	}

	return strings.TrimSuffix(l.lines[n-1], "\r")
}

func (l *Lexer) Scan(ctx context.Context) (toks []token.Token, err error) {
	tr, _ := tlog.SpawnFromContextAndWrap(ctx, "lexer: scan", "size", len(l.text), "lines", len(l.lines))
	defer tr.Finish("err", &err)

	l.reset()

	more := l.advance()

	for more {
		more, err = l.step()
		if err != nil {
			return nil, err
		}
	}

	l.tokens = append(l.tokens, token.End(l.line))

	if tr.If("dump_tokens") {
		for i, t := range l.tokens {
			tr.Printw("token", "i", i, "token", t)
		}
	}

	tr.Printw("scanned", "tokens", len(l.tokens), "lines", l.line)

	return l.tokens, nil
}

func (l *Lexer) reset() {
	l.tokens = nil
	l.cur = 0
	l.pos = 0
	l.next = 0
	l.bad = false
	l.line = 1
}

// step consumes the token starting at cur.
// more is false once the input is exhausted.
func (l *Lexer) step() (more bool, err error) {
	c := l.cur

	switch {
	case l.bad:
		return false, l.newError(ErrUnexpectedChar, l.line, fmt.Sprintf("%q", l.text[l.pos]))
	case Blank.Has(c):
		return l.advance(), nil
	case c == '\n':
		l.push(token.Newline, "\n", l.line)
		l.line++

		return l.advance(), nil
	case c == '"':
		return l.takeString()
	case c >= '0' && c <= '9':
		return l.takeNumber()
	}

	if k, ok := symbols[c]; ok {
		l.push(k, string(c), l.line)

		return l.advance(), nil
	}

	return l.takeWord()
}

func (l *Lexer) takeString() (more bool, err error) {
	line := l.line
	st := l.next

	for {
		if !l.advance() {
			return false, l.newError(ErrUnterminatedString, line, string(l.text[st-1:]))
		}

		if l.bad {
			return false, l.newError(ErrUnexpectedChar, l.line, fmt.Sprintf("%q", l.text[l.pos]))
		}

		if l.cur == '"' {
			break
		}

		if l.cur == '\n' {
			l.line++
		}
	}

	l.push(token.StringLit, string(l.text[st:l.pos]), line)

	return l.advance(), nil
}

func (l *Lexer) takeNumber() (more bool, err error) {
	var b []byte
	dot := false

	more = true

loop:
	for more {
		switch c := l.cur; {
		case l.bad:
			break loop
		case c >= '0' && c <= '9':
			b = append(b, byte(c))
		case c == '_':
		case c == '.' && !dot:
			dot = true
			b = append(b, '.')
		default:
			break loop
		}

		more = l.advance()
	}

	lexeme := string(b)

	if _, err = token.ParseNumber(lexeme); err != nil {
		return false, l.newError(err, l.line, lexeme)
	}

	l.push(token.NumberLit, lexeme, l.line)

	return more, nil
}

func (l *Lexer) takeWord() (more bool, err error) {
	st := l.pos
	more = true

	for more && !l.bad && isWord(l.cur) {
		more = l.advance()
	}

	w := string(l.text[st:l.pos])

	if w == "" {
		return false, l.newError(ErrUnexpectedChar, l.line, string(l.cur))
	}

	k, ok := token.Keywords[w]
	if !ok {
		return false, l.newError(ErrUnknownIdent, l.line, w)
	}

	l.push(k, w, l.line)

	return more, nil
}

// advance moves cur to the next rune. It returns false at the end of input.
func (l *Lexer) advance() bool {
	l.pos = l.next

	if l.pos >= len(l.text) {
		l.cur = 0
		l.pos = len(l.text)

		return false
	}

	r, w := utf8.DecodeRune(l.text[l.pos:])

	l.cur = r
	l.next = l.pos + w
	l.bad = r == utf8.RuneError && w == 1

	return true
}

func (l *Lexer) push(k token.Kind, lexeme string, line int) {
	l.tokens = append(l.tokens, token.New(k, lexeme, line))
}

func (l *Lexer) newError(err error, line int, lexeme string) *Error {
	e := &Error{
		Err:    err,
		Line:   line,
		Lexeme: lexeme,
		Source: l.Line(line),
	}

	tlog.V("errors").Printw("lexer error", "err", e.Err, "line", line, "lexeme", lexeme, "from", loc.Caller(1))

	return e
}

func isWord(r rune) bool {
	return r == '_' || unicode.IsLetter(r) || unicode.IsDigit(r)
}

func (e *Error) Error() string {
	s := fmt.Sprintf("line %d: %v: %q", e.Line, e.Err, e.Lexeme)

	if e.Source != "" {
		s += "\n\t" + e.Source
	}

	return s
}

func (e *Error) Unwrap() error { return e.Err }
