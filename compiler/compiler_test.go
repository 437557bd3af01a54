package compiler

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/alarie-c/darcy2/compiler/ast"
	"github.com/alarie-c/darcy2/compiler/lexer"
	"github.com/alarie-c/darcy2/compiler/parse"
	"github.com/alarie-c/darcy2/compiler/token"
)

func TestParseFile(t *testing.T) {
	name := filepath.Join(t.TempDir(), "main.dc")

	err := os.WriteFile(name, []byte("cout 1 + 2\n"), 0o644)
	require.NoError(t, err)

	ctx := context.Background()

	toks, err := TokenizeFile(ctx, name)
	require.NoError(t, err)
	assert.Len(t, toks, 6)
	assert.Equal(t, token.EOF, toks[len(toks)-1].Kind)
	assert.Equal(t, 2, toks[len(toks)-1].Line)

	tr, err := ParseFile(ctx, name, Options{})
	require.NoError(t, err)
	require.NoError(t, tr.Check())

	require.Len(t, tr.Keys, 3)

	n, err := tr.Node(tr.Keys[2])
	require.NoError(t, err)
	assert.IsType(t, ast.BinaryExpr{}, n)

	_, err = ParseFile(ctx, filepath.Join(t.TempDir(), "missing.dc"), Options{})
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestParseErrors(t *testing.T) {
	ctx := context.Background()

	for _, tc := range []struct {
		Src string
		Err error
	}{
		{`"open`, lexer.ErrUnterminatedString},
		{"1 + 2147483648", lexer.ErrBadNumber},
		{"1 $", lexer.ErrUnexpectedChar},
		{"x + 1", lexer.ErrUnknownIdent},
		{"+ 1", parse.ErrMissingLeft},
		{"1 +", parse.ErrMissingRightEOF},
		{"1 + = 2", parse.ErrMissingRight},
	} {
		tr, err := Parse(ctx, "test", []byte(tc.Src), Options{})
		assert.ErrorIs(t, err, tc.Err, "source: %q", tc.Src)
		assert.Nil(t, tr, "source: %q", tc.Src)
	}
}

func TestParseAllOps(t *testing.T) {
	ctx := context.Background()

	tr, err := Parse(ctx, "test", []byte("6 * 7"), Options{})
	require.NoError(t, err)
	assert.Len(t, tr.Keys, 2)

	tr, err = Parse(ctx, "test", []byte("6 * 7"), Options{AllOps: true})
	require.NoError(t, err)
	require.Len(t, tr.Keys, 3)

	n, err := tr.Node(tr.Keys[2])
	require.NoError(t, err)
	assert.Equal(t, ast.Multiply, n.(ast.BinaryExpr).Op)
}
