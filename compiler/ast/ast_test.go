package ast

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/alarie-c/darcy2/compiler/token"
)

func TestArena(t *testing.T) {
	a := NewArena()

	root := a.Insert(RootMarker{})
	one := a.Insert(NumberLiteral{Value: Integer(1)})
	two := a.Insert(NumberLiteral{Value: Integer(2)})
	sum := a.Insert(BinaryExpr{Op: Plus, Left: one, Right: two})

	assert.Equal(t, 4, a.Len())
	assert.Equal(t, []Key{root, one, two, sum}, a.Keys())
	assert.Equal(t, 0, root.Index())
	assert.Equal(t, 3, sum.Index())

	n, err := a.Get(sum)
	require.NoError(t, err)
	assert.Equal(t, BinaryExpr{Op: Plus, Left: one, Right: two}, n)

	n, err = a.Get(n.(BinaryExpr).Left)
	require.NoError(t, err)
	assert.Equal(t, NumberLiteral{Value: Integer(1)}, n)

	assert.True(t, a.Contains(root))
	assert.False(t, a.Contains(Nil))
}

func TestArenaKeysAreScoped(t *testing.T) {
	a := NewArena()
	b := NewArena()

	ka := a.Insert(StringLiteral{Value: "a"})
	kb := b.Insert(StringLiteral{Value: "b"})

	assert.Equal(t, ka.Index(), kb.Index())
	assert.NotEqual(t, ka, kb)

	_, err := a.Get(kb)
	assert.ErrorIs(t, err, ErrForeignKey)
	assert.False(t, a.Contains(kb))

	_, err = a.Get(Nil)
	assert.ErrorIs(t, err, ErrNilKey)

	a2 := NewArena()
	a2.Insert(RootMarker{})
	k := a2.Insert(EndMarker{})

	short := NewArena()
	short.Insert(RootMarker{})

	k.arena = short.id

	_, err = short.Get(k)
	assert.ErrorIs(t, err, ErrBadKey)
}

func TestKeyString(t *testing.T) {
	a := NewArena()
	k := a.Insert(RootMarker{})

	assert.Equal(t, "#0", k.String())
	assert.Equal(t, "#nil", Nil.String())
	assert.Equal(t, -1, Nil.Index())
}

func TestNumbers(t *testing.T) {
	n, err := NewNumber(int32(5))
	require.NoError(t, err)
	assert.Equal(t, Integer(5), n)
	assert.Equal(t, "5", n.String())

	n, err = NewNumber(2.5)
	require.NoError(t, err)
	assert.Equal(t, Float(2.5), n)
	assert.Equal(t, "2.5", n.String())

	assert.Equal(t, "3.0", Float(3).String())

	_, err = NewNumber("5")
	assert.Error(t, err)
}

func TestOps(t *testing.T) {
	for k, want := range map[token.Kind]BinaryOp{
		token.Plus:    Plus,
		token.Minus:   Minus,
		token.Star:    Multiply,
		token.Slash:   Divide,
		token.Modulus: Modulus,
	} {
		op, ok := OpFor(k)
		assert.True(t, ok, "%v", k)
		assert.Equal(t, want, op, "%v", k)
	}

	_, ok := OpFor(token.Equals)
	assert.False(t, ok)

	assert.Equal(t, "+", Plus.String())
	assert.Equal(t, "%", Modulus.String())
}
