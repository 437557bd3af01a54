package ast

import (
	"fmt"
	"sync/atomic"

	"tlog.app/go/errors"
	"tlog.app/go/tlog/tlwire"
)

type (
	// Key addresses a Node in the Arena that returned it.
	// The zero Key is Nil and never addresses anything.
	Key struct {
		arena uint32
		id    uint32 // index+1
	}

	// Arena is append-only node storage.
	Arena struct {
		id    uint32
		nodes []Node
	}
)

var Nil Key

var (
	ErrNilKey     = errors.New("nil key")
	ErrForeignKey = errors.New("key from another arena")
	ErrBadKey     = errors.New("key out of range")
)

var arenaIDs atomic.Uint32

func NewArena() *Arena {
	return &Arena{
		id: arenaIDs.Add(1),
	}
}

func (a *Arena) Insert(n Node) Key {
	a.nodes = append(a.nodes, n)

	return Key{
		arena: a.id,
		id:    uint32(len(a.nodes)),
	}
}

func (a *Arena) Get(k Key) (Node, error) {
	switch {
	case k == Nil:
		return nil, ErrNilKey
	case k.arena != a.id:
		return nil, errors.Wrap(ErrForeignKey, "key %v", k)
	case int(k.id) > len(a.nodes):
		return nil, errors.Wrap(ErrBadKey, "key %v (len %d)", k, len(a.nodes))
	}

	return a.nodes[k.id-1], nil
}

func (a *Arena) Contains(k Key) bool {
	return k != Nil && k.arena == a.id && int(k.id) <= len(a.nodes)
}

func (a *Arena) Len() int {
	return len(a.nodes)
}

// Keys returns keys of all the nodes in insertion order.
func (a *Arena) Keys() []Key {
	r := make([]Key, len(a.nodes))

	for i := range a.nodes {
		r[i] = Key{arena: a.id, id: uint32(i + 1)}
	}

	return r
}

// Index is the insertion position of the node, -1 for Nil.
func (k Key) Index() int {
	return int(k.id) - 1
}

func (k Key) String() string {
	if k == Nil {
		return "#nil"
	}

	return fmt.Sprintf("#%d", k.Index())
}

func (k Key) TlogAppend(b []byte) []byte {
	var e tlwire.Encoder

	return e.AppendInt(b, k.Index())
}
