package compiler

import (
	"context"
	"os"

	"tlog.app/go/errors"
	"tlog.app/go/tlog"

	"github.com/alarie-c/darcy2/compiler/lexer"
	"github.com/alarie-c/darcy2/compiler/parse"
	"github.com/alarie-c/darcy2/compiler/token"
)

type (
	Options struct {
		// AllOps folds every arithmetic operator, not just +.
		AllOps bool
	}
)

func TokenizeFile(ctx context.Context, name string) ([]token.Token, error) {
	text, err := readFile(ctx, name)
	if err != nil {
		return nil, err
	}

	return Tokenize(ctx, name, text)
}

func ParseFile(ctx context.Context, name string, opts Options) (*parse.Tree, error) {
	text, err := readFile(ctx, name)
	if err != nil {
		return nil, err
	}

	return Parse(ctx, name, text, opts)
}

func Tokenize(ctx context.Context, name string, text []byte) (toks []token.Token, err error) {
	tr, ctx := tlog.SpawnFromContextAndWrap(ctx, "tokenize", "name", name, "size", len(text))
	defer tr.Finish("err", &err)

	l := lexer.New(text, lexer.Lines(text))

	toks, err = l.Scan(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "tokenize")
	}

	return toks, nil
}

func Parse(ctx context.Context, name string, text []byte, opts Options) (t *parse.Tree, err error) {
	tr, ctx := tlog.SpawnFromContextAndWrap(ctx, "parse", "name", name, "size", len(text))
	defer tr.Finish("err", &err)

	toks, err := Tokenize(ctx, name, text)
	if err != nil {
		return nil, err
	}

	b, err := parse.New(toks)
	if err != nil {
		return nil, errors.Wrap(err, "build")
	}

	if opts.AllOps {
		b.Ops = parse.ArithmeticOps
	}

	t, err = b.Build(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "build")
	}

	return t, nil
}

func readFile(ctx context.Context, name string) ([]byte, error) {
	text, err := os.ReadFile(name)
	if err != nil {
		return nil, errors.Wrap(err, "read file")
	}

	tlog.SpanFromContext(ctx).Printw("read file", "size", len(text), "name", name)

	return text, nil
}
