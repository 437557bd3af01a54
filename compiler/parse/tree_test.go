package parse

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/alarie-c/darcy2/compiler/ast"
)

func TestWalk(t *testing.T) {
	tr := build(t, num("1"), plus, num("2"), plus, str("x"), eof)

	type visit struct {
		Index int
		Depth int
	}

	var got []visit

	err := tr.Walk(tr.Roots()[0], func(k ast.Key, n ast.Node, d int) error {
		got = append(got, visit{k.Index(), d})
		return nil
	})
	require.NoError(t, err)

	assert.Equal(t, []visit{{5, 0}, {3, 1}, {1, 2}, {2, 2}, {4, 1}}, got)

	err = tr.Walk(ast.Nil, func(ast.Key, ast.Node, int) error { return nil })
	assert.ErrorIs(t, err, ast.ErrNilKey)
}

func TestRootsSeparateExprs(t *testing.T) {
	tr := build(t, num("1"), plus, num("2"), nl, str("a"), nl, num("7"), eof)

	roots := tr.Roots()
	require.Len(t, roots, 3)

	assert.Equal(t, []int{3, 4, 5}, []int{roots[0].Index(), roots[1].Index(), roots[2].Index()})
}

func TestCheck(t *testing.T) {
	a := ast.NewArena()
	root := a.Insert(ast.RootMarker{})
	one := a.Insert(ast.NumberLiteral{Value: ast.Integer(1)})
	two := a.Insert(ast.NumberLiteral{Value: ast.Integer(2)})

	ok := &Tree{Arena: a, Root: root, Keys: []ast.Key{one, two}}
	assert.NoError(t, ok.Check())

	for name, tr := range map[string]*Tree{
		"no_arena":       {Root: root},
		"nil_root":       {Arena: a},
		"root_is_lit":    {Arena: a, Root: one},
		"end_not_marker": {Arena: a, Root: root, End: two},
		"marker_in_keys": {Arena: a, Root: root, Keys: []ast.Key{root}},
	} {
		assert.ErrorIs(t, tr.Check(), ErrMalformedTree, name)
	}

	shared := a.Insert(ast.BinaryExpr{Op: ast.Plus, Left: one, Right: one})

	tr := &Tree{Arena: a, Root: root, Keys: []ast.Key{one, shared}}
	assert.ErrorIs(t, tr.Check(), ErrMalformedTree)

	b := ast.NewArena()
	b.Insert(ast.RootMarker{})
	foreign := b.Insert(ast.StringLiteral{Value: "x"})

	bad := a.Insert(ast.BinaryExpr{Op: ast.Plus, Left: two, Right: foreign})

	tr = &Tree{Arena: a, Root: root, Keys: []ast.Key{two, bad}}
	assert.ErrorIs(t, tr.Check(), ErrMalformedTree)

	toRoot := a.Insert(ast.BinaryExpr{Op: ast.Plus, Left: two, Right: root})

	tr = &Tree{Arena: a, Root: root, Keys: []ast.Key{toRoot}}
	assert.ErrorIs(t, tr.Check(), ErrMalformedTree)
}
