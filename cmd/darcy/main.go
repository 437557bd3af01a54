package main

import (
	"context"
	"fmt"
	"os"

	"nikand.dev/go/cli"
	"tlog.app/go/errors"
	"tlog.app/go/tlog"

	"github.com/alarie-c/darcy2/compiler"
	"github.com/alarie-c/darcy2/compiler/format"
)

func main() {
	tokensCmd := &cli.Command{
		Name:        "tokens",
		Description: "print token stream of files",
		Action:      tokensAct,
		Args:        cli.Args{},
		Flags:       flags(),
	}

	parseCmd := &cli.Command{
		Name:        "parse",
		Description: "print syntax tree of files",
		Action:      parseAct,
		Args:        cli.Args{},
		Flags: flags(
			cli.NewFlag("all-ops", false, "fold - * / % as well as +"),
		),
	}

	replCmd := &cli.Command{
		Name:        "repl",
		Description: "tokenize and parse interactively",
		Action:      replAct,
		Flags: flags(
			cli.NewFlag("all-ops", false, "fold - * / % as well as +"),
			cli.NewFlag("history", historyFile, "history file name in home dir"),
		),
	}

	app := &cli.Command{
		Name:        "darcy",
		Description: "darcy is a tool for inspecting darcy source code",
		Commands: []*cli.Command{
			tokensCmd,
			parseCmd,
			replCmd,
		},
	}

	cli.RunAndExit(app, os.Args, os.Environ())
}

func flags(fs ...*cli.Flag) []*cli.Flag {
	return append(fs, cli.NewFlag("v", "", "tlog verbosity topics, dump_tokens,dump_nodes,errors"))
}

func newContext(c *cli.Command) context.Context {
	if v := c.String("v"); v != "" {
		tlog.SetVerbosity(v)
	}

	ctx := context.Background()

	return tlog.ContextWithSpan(ctx, tlog.Root())
}

func tokensAct(c *cli.Command) (err error) {
	ctx := newContext(c)

	for _, a := range c.Args {
		toks, err := compiler.TokenizeFile(ctx, a)
		if err != nil {
			return errors.Wrap(err, "file %v", a)
		}

		fmt.Printf("%s", format.Tokens(nil, toks))
	}

	return nil
}

func parseAct(c *cli.Command) (err error) {
	ctx := newContext(c)

	opts := compiler.Options{
		AllOps: c.Bool("all-ops"),
	}

	for _, a := range c.Args {
		t, err := compiler.ParseFile(ctx, a, opts)
		if err != nil {
			return errors.Wrap(err, "file %v", a)
		}

		b, err := format.Tree(nil, t)
		if err != nil {
			return errors.Wrap(err, "format %v", a)
		}

		fmt.Printf("%s", b)
	}

	return nil
}
