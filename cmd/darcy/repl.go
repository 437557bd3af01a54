package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/peterh/liner"
	"nikand.dev/go/cli"
	"tlog.app/go/errors"

	"github.com/alarie-c/darcy2/compiler"
	"github.com/alarie-c/darcy2/compiler/format"
	"github.com/alarie-c/darcy2/compiler/lexer"
)

type (
	prompter interface {
		Prompt(prompt string) (string, error)
	}
)

const (
	historyFile = ".darcy_history"

	promptMain = "darcy> "
	promptCont = "  ...> "
)

func replAct(c *cli.Command) (err error) {
	ctx := newContext(c)

	opts := compiler.Options{
		AllOps: c.Bool("all-ops"),
	}

	ln := liner.NewLiner()
	defer ln.Close()

	ln.SetCtrlCAborts(true)

	if home, err := os.UserHomeDir(); err == nil {
		hist := filepath.Join(home, c.String("history"))

		if f, err := os.Open(hist); err == nil {
			_, _ = ln.ReadHistory(f)
			_ = f.Close()
		}

		defer func() {
			if f, err := os.Create(hist); err == nil {
				_, _ = ln.WriteHistory(f)
				_ = f.Close()
			}
		}()
	}

	showTokens := false

	for {
		src, ok := readSource(ctx, ln)
		if !ok {
			fmt.Println()
			return nil
		}

		switch cmd := strings.TrimSpace(src); cmd {
		case ":quit", ":q":
			return nil
		case ":tokens":
			showTokens = !showTokens
			fmt.Printf("tokens: %v\n", showTokens)

			continue
		case ":ops":
			opts.AllOps = !opts.AllOps
			fmt.Printf("all ops: %v\n", opts.AllOps)

			continue
		}

		if lexer.BlankAll.Only([]byte(src)) {
			continue
		}

		ln.AppendHistory(strings.ReplaceAll(src, "\n", " "))

		if err := evalSource(ctx, src, opts, showTokens); err != nil {
			fmt.Fprintf(os.Stderr, "error: %v\n", err)
		}
	}
}

func evalSource(ctx context.Context, src string, opts compiler.Options, showTokens bool) error {
	if showTokens {
		toks, err := compiler.Tokenize(ctx, "repl", []byte(src))
		if err != nil {
			return err
		}

		fmt.Printf("%s", format.Tokens(nil, toks))
	}

	t, err := compiler.Parse(ctx, "repl", []byte(src), opts)
	if err != nil {
		return err
	}

	b, err := format.Tree(nil, t)
	if err != nil {
		return errors.Wrap(err, "format")
	}

	for _, k := range t.Roots() {
		b = append(b, "= "...)

		b, err = format.Expr(b, t, k)
		if err != nil {
			return errors.Wrap(err, "format")
		}

		b = append(b, '\n')
	}

	fmt.Printf("%s", b)

	return nil
}

// readSource reads lines until the text no longer ends inside a string literal.
// Any prompt error ends the session.
func readSource(ctx context.Context, ln prompter) (string, bool) {
	var b strings.Builder

	for {
		prompt := promptMain
		if b.Len() != 0 {
			prompt = promptCont
		}

		line, err := ln.Prompt(prompt)
		if err != nil {
			if !errors.Is(err, io.EOF) && !errors.Is(err, liner.ErrPromptAborted) {
				fmt.Fprintf(os.Stderr, "prompt: %v\n", err)
			}

			return "", false
		}

		if b.Len() != 0 {
			b.WriteByte('\n')
		}

		b.WriteString(line)

		_, err = lexer.Scan(ctx, []byte(b.String()))
		if errors.Is(err, lexer.ErrUnterminatedString) {
			continue
		}

		return b.String(), true
	}
}
