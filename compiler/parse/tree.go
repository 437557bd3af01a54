package parse

import (
	"tlog.app/go/errors"
	"tlog.app/go/tlog"

	"github.com/alarie-c/darcy2/compiler/ast"
	"github.com/alarie-c/darcy2/compiler/set"
)

type (
	WalkFunc func(k ast.Key, n ast.Node, depth int) error
)

var ErrMalformedTree = errors.New("malformed tree")

func (t *Tree) Node(k ast.Key) (ast.Node, error) {
	return t.Arena.Get(k)
}

// Walk visits k and its operands depth first, parent before children.
func (t *Tree) Walk(k ast.Key, fn WalkFunc) error {
	return t.walk(k, fn, 0)
}

func (t *Tree) walk(k ast.Key, fn WalkFunc, d int) error {
	n, err := t.Arena.Get(k)
	if err != nil {
		return errors.Wrap(err, "get %v", k)
	}

	if err = fn(k, n, d); err != nil {
		return err
	}

	x, ok := n.(ast.BinaryExpr)
	if !ok {
		return nil
	}

	if err = t.walk(x.Left, fn, d+1); err != nil {
		return err
	}

	return t.walk(x.Right, fn, d+1)
}

// Roots returns top-level nodes that are not an operand of another node.
func (t *Tree) Roots() []ast.Key {
	var operands set.Bitmap

	for _, k := range t.Keys {
		n, err := t.Arena.Get(k)
		if err != nil {
			continue
		}

		if x, ok := n.(ast.BinaryExpr); ok {
			operands.Set(x.Left.Index())
			operands.Set(x.Right.Index())
		}
	}

	var r []ast.Key

	for _, k := range t.Keys {
		if !operands.IsSet(k.Index()) {
			r = append(r, k)
		}
	}

	return r
}

// Check verifies structural invariants:
// markers are in place, operand keys resolve to earlier nodes,
// and no node is an operand twice.
func (t *Tree) Check() error {
	if t.Arena == nil {
		return errors.Wrap(ErrMalformedTree, "no arena")
	}

	n, err := t.Arena.Get(t.Root)
	if err != nil {
		return errors.Wrap(ErrMalformedTree, "root: %v", err)
	}

	if _, ok := n.(ast.RootMarker); !ok || t.Root.Index() != 0 {
		return errors.Wrap(ErrMalformedTree, "root is %T at %v", n, t.Root)
	}

	if t.End != ast.Nil {
		n, err := t.Arena.Get(t.End)
		if err != nil {
			return errors.Wrap(ErrMalformedTree, "end: %v", err)
		}

		if _, ok := n.(ast.EndMarker); !ok || t.End.Index() != t.Arena.Len()-1 {
			return errors.Wrap(ErrMalformedTree, "end is %T at %v", n, t.End)
		}
	}

	var operand set.Bitmap

	for _, k := range t.Keys {
		n, err := t.Arena.Get(k)
		if err != nil {
			return errors.Wrap(ErrMalformedTree, "top-level %v: %v", k, err)
		}

		switch n := n.(type) {
		case ast.RootMarker, ast.EndMarker:
			return errors.Wrap(ErrMalformedTree, "marker %T in top-level list at %v", n, k)
		case ast.BinaryExpr:
			for _, c := range []ast.Key{n.Left, n.Right} {
				if err := t.checkOperand(k, c); err != nil {
					return err
				}

				if !operand.Add(c.Index()) {
					return errors.Wrap(ErrMalformedTree, "%v is an operand twice", c)
				}
			}
		}
	}

	tlog.V("dump_nodes").Printw("tree checked", "nodes", t.Arena.Len(), "operands", operand)

	return nil
}

func (t *Tree) checkOperand(parent, c ast.Key) error {
	n, err := t.Arena.Get(c)
	if err != nil {
		return errors.Wrap(ErrMalformedTree, "%v operand %v: %v", parent, c, err)
	}

	if c.Index() >= parent.Index() {
		return errors.Wrap(ErrMalformedTree, "%v operand %v is not inserted before it", parent, c)
	}

	switch n.(type) {
	case ast.RootMarker, ast.EndMarker:
		return errors.Wrap(ErrMalformedTree, "%v operand %v is a marker", parent, c)
	}

	return nil
}
