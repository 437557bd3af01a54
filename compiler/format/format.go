package format

import (
	"github.com/nikandfor/hacked/hfmt"
	"tlog.app/go/errors"

	"github.com/alarie-c/darcy2/compiler/ast"
	"github.com/alarie-c/darcy2/compiler/parse"
	"github.com/alarie-c/darcy2/compiler/token"
)

// Tokens appends one line per token: line, kind and quoted lexeme.
func Tokens(b []byte, toks []token.Token) []byte {
	for _, t := range toks {
		b = hfmt.Appendf(b, "%4d  %-10v %q\n", t.Line, t.Kind, t.Lexeme)
	}

	return b
}

// Tree appends the tree as an indented outline, one node per line.
// Operands of binary expressions are nested under them.
func Tree(b []byte, t *parse.Tree) (_ []byte, err error) {
	b, err = formatNode(b, t, t.Root, 0)
	if err != nil {
		return nil, errors.Wrap(err, "root")
	}

	for _, k := range t.Roots() {
		err = t.Walk(k, func(k ast.Key, n ast.Node, d int) (err error) {
			b, err = formatNode(b, t, k, d+1)
			return
		})
		if err != nil {
			return nil, errors.Wrap(err, "node %v", k)
		}
	}

	if t.End != ast.Nil {
		b, err = formatNode(b, t, t.End, 0)
		if err != nil {
			return nil, errors.Wrap(err, "end")
		}
	}

	return b, nil
}

// Expr appends the expression rooted at k in source form,
// binary expressions parenthesized.
func Expr(b []byte, t *parse.Tree, k ast.Key) (_ []byte, err error) {
	n, err := t.Node(k)
	if err != nil {
		return nil, err
	}

	switch n := n.(type) {
	case ast.NumberLiteral:
		b = append(b, n.Value.String()...)
	case ast.StringLiteral:
		b = hfmt.Appendf(b, "%q", n.Value)
	case ast.BinaryExpr:
		b = append(b, '(')

		b, err = Expr(b, t, n.Left)
		if err != nil {
			return nil, errors.Wrap(err, "left")
		}

		b = hfmt.Appendf(b, " %v ", n.Op)

		b, err = Expr(b, t, n.Right)
		if err != nil {
			return nil, errors.Wrap(err, "right")
		}

		b = append(b, ')')
	default:
		return nil, errors.New("unsupported expr: %T", n)
	}

	return b, nil
}

func formatNode(b []byte, t *parse.Tree, k ast.Key, d int) ([]byte, error) {
	n, err := t.Node(k)
	if err != nil {
		return nil, err
	}

	switch n := n.(type) {
	case ast.RootMarker:
		b = app(b, d, "Root %v\n", k)
	case ast.EndMarker:
		b = app(b, d, "End %v\n", k)
	case ast.StringLiteral:
		b = app(b, d, "String %q %v\n", n.Value, k)
	case ast.NumberLiteral:
		switch n.Value.(type) {
		case ast.Float:
			b = app(b, d, "Float %v %v\n", n.Value, k)
		default:
			b = app(b, d, "Integer %v %v\n", n.Value, k)
		}
	case ast.BinaryExpr:
		b = app(b, d, "BinaryExpr %v %v\n", n.Op, k)
	default:
		return nil, errors.New("unsupported node: %T", n)
	}

	return b, nil
}

func app(b []byte, d int, f string, args ...any) []byte {
	const tabs = "\t\t\t\t\t\t\t\t\t\t\t\t\t\t\t\t"

	b = append(b, tabs[:min(d, len(tabs))]...)
	b = hfmt.Appendf(b, f, args...)

	return b
}
