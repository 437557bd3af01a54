package parse

import (
	"context"
	"fmt"

	"tlog.app/go/errors"
	"tlog.app/go/loc"
	"tlog.app/go/tlog"

	"github.com/alarie-c/darcy2/compiler/ast"
	"github.com/alarie-c/darcy2/compiler/token"
)

type (
	// Builder turns a token stream into a Tree. It's single use.
	Builder struct {
		// Ops are operator tokens folded into ast.BinaryExpr.
		Ops map[token.Kind]ast.BinaryOp

		tokens []token.Token
		i      int

		arena *ast.Arena
		root  ast.Key
		keys  []ast.Key

		used bool
	}

	Tree struct {
		Arena *ast.Arena

		Root ast.Key
		End  ast.Key // Nil if the stream had no EOF token

		// Keys are top-level nodes in source order.
		Keys []ast.Key
	}

	Error struct {
		Err   error
		Token token.Token
	}

	result struct {
		kind resultKind
		key  ast.Key
	}

	resultKind int
)

const (
	noMatch resultKind = iota
	matched
	endOfStream
)

var (
	DefaultOps = map[token.Kind]ast.BinaryOp{
		token.Plus: ast.Plus,
	}

	ArithmeticOps = arithmeticOps()
)

var (
	ErrEmptyStream     = errors.New("empty token stream")
	ErrMissingLeft     = errors.New("missing left operand")
	ErrMissingRight    = errors.New("missing right operand")
	ErrMissingRightEOF = errors.New("missing right operand at end of file")
	ErrBadNumber       = token.ErrBadNumber
	ErrBuilderUsed     = errors.New("builder already used")
)

func Build(ctx context.Context, tokens []token.Token) (*Tree, error) {
	b, err := New(tokens)
	if err != nil {
		return nil, err
	}

	return b.Build(ctx)
}

func New(tokens []token.Token) (*Builder, error) {
	if len(tokens) == 0 {
		return nil, ErrEmptyStream
	}

	b := &Builder{
		Ops:    DefaultOps,
		tokens: tokens,
		arena:  ast.NewArena(),
	}

	b.root = b.arena.Insert(ast.RootMarker{})

	return b, nil
}

func (b *Builder) Build(ctx context.Context) (t *Tree, err error) {
	tr, _ := tlog.SpawnFromContextAndWrap(ctx, "parse: build", "tokens", len(b.tokens))
	defer tr.Finish("err", &err)

	if b.used {
		return nil, ErrBuilderUsed
	}

	b.used = true

	t = &Tree{
		Arena: b.arena,
		Root:  b.root,
	}

	for ; b.i < len(b.tokens); b.i++ {
		res, err := b.classify(b.Ops)
		if err != nil {
			return nil, err
		}

		if res.kind == endOfStream {
			t.End = b.arena.Insert(ast.EndMarker{})

			break
		}
	}

	t.Keys = b.keys

	if tr.If("dump_nodes") {
		for _, k := range b.arena.Keys() {
			n, _ := b.arena.Get(k)

			tr.Printw("node", "key", k, "typ", tlog.NextAsType, n, "node", n)
		}
	}

	tr.Printw("built", "nodes", b.arena.Len(), "top_level", len(t.Keys))

	return t, nil
}

// classify handles the token under the cursor.
// Binary operators from ops consume one more token for the right operand.
func (b *Builder) classify(ops map[token.Kind]ast.BinaryOp) (result, error) {
	t := b.tokens[b.i]

	switch t.Kind {
	case token.NumberLit:
		v, err := token.ParseNumber(t.Lexeme)
		if err != nil {
			return result{}, b.newError(err, t)
		}

		num, err := ast.NewNumber(v)
		if err != nil {
			return result{}, b.newError(err, t)
		}

		return b.record(ast.NumberLiteral{Value: num}), nil
	case token.StringLit:
		return b.record(ast.StringLiteral{Value: t.Lexeme}), nil
	case token.EOF:
		return result{kind: endOfStream}, nil
	}

	if op, ok := ops[t.Kind]; ok {
		return b.binary(op, t)
	}

	return result{kind: noMatch}, nil
}

// binary takes the most recent top-level node as the left operand,
// adjacent or not.
func (b *Builder) binary(op ast.BinaryOp, t token.Token) (result, error) {
	if len(b.keys) == 0 {
		return result{}, b.newError(ErrMissingLeft, t)
	}

	left := b.keys[len(b.keys)-1]

	if b.i+1 == len(b.tokens) {
		return result{}, b.newError(ErrMissingRightEOF, t)
	}

	b.i++

	r, err := b.classify(nil)
	if err != nil {
		return result{}, err
	}

	switch r.kind {
	case noMatch:
		return result{}, b.newError(errors.Wrap(ErrMissingRight, "got %v", b.tokens[b.i].Kind), t)
	case endOfStream:
		return result{}, b.newError(ErrMissingRightEOF, t)
	}

	return b.record(ast.BinaryExpr{
		Op:    op,
		Left:  left,
		Right: r.key,
	}), nil
}

func arithmeticOps() map[token.Kind]ast.BinaryOp {
	m := map[token.Kind]ast.BinaryOp{}

	for k := token.Plus; k.IsOperator(); k++ {
		if op, ok := ast.OpFor(k); ok {
			m[k] = op
		}
	}

	return m
}

func (b *Builder) record(n ast.Node) result {
	k := b.arena.Insert(n)
	b.keys = append(b.keys, k)

	return result{kind: matched, key: k}
}

func (b *Builder) newError(err error, t token.Token) *Error {
	tlog.V("errors").Printw("parse error", "err", err, "token", t, "from", loc.Caller(1))

	return &Error{
		Err:   err,
		Token: t,
	}
}

func (e *Error) Error() string {
	return fmt.Sprintf("line %d: %v: %q", e.Token.Line, e.Err, e.Token.Lexeme)
}

func (e *Error) Unwrap() error { return e.Err }
