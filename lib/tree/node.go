package tree

import (
	"github.com/benz9527/xtree/lib/infra"
)

type nodeID int32

const nilID nodeID = -1

// Node slots live in the tree arena. The parent is stored as an id so the
// parent back reference never forms an ownership cycle.
type node[E any] struct {
	elem   E
	parent nodeID
	left   nodeID
	right  nodeID
	height int32
	color  RBColor
	inUse  bool
}

// arena hands out node slots and reuses the released ones.
// The pointers returned by at are invalidated by the next alloc.
type arena[E any] struct {
	nodes []node[E]
	free  []nodeID
}

func (a *arena[E]) alloc(e E) nodeID {
	var id nodeID
	if l := len(a.free); l > 0 {
		id = a.free[l-1]
		a.free = a.free[:l-1]
	} else {
		a.nodes = append(a.nodes, node[E]{})
		id = nodeID(len(a.nodes) - 1)
	}
	a.nodes[id] = node[E]{
		elem:   e,
		parent: nilID,
		left:   nilID,
		right:  nilID,
		color:  Red,
		inUse:  true,
	}
	return id
}

func (a *arena[E]) release(id nodeID) {
	if !a.valid(id) {
		// impossible run to here
		panic( /* debug assertion */ "[tree] release a node slot not in use")
	}
	a.nodes[id] = node[E]{
		parent: nilID,
		left:   nilID,
		right:  nilID,
	}
	a.free = append(a.free, id)
}

func (a *arena[E]) at(id nodeID) *node[E] {
	return &a.nodes[id]
}

func (a *arena[E]) valid(id nodeID) bool {
	return id >= 0 && int(id) < len(a.nodes) && a.nodes[id].inUse
}

func (a *arena[E]) reset() {
	clear(a.nodes)
	a.nodes = a.nodes[:0]
	a.free = a.free[:0]
}

var _ Node[struct{}] = (*nodeRef[struct{}])(nil)

type nodeRef[E any] struct {
	tree *bsTree[E]
	id   nodeID
}

func (ref *nodeRef[E]) Element() E {
	return ref.tree.elem(ref.id)
}

func (ref *nodeRef[E]) Parent() Node[E] {
	return ref.tree.view(ref.tree.parent(ref.id))
}

func (ref *nodeRef[E]) Left() Node[E] {
	return ref.tree.view(ref.tree.left(ref.id))
}

func (ref *nodeRef[E]) Right() Node[E] {
	return ref.tree.view(ref.tree.right(ref.id))
}

func (ref *nodeRef[E]) HasParent() bool {
	return ref.tree.parent(ref.id) != nilID
}

func (ref *nodeRef[E]) HasLeft() bool {
	return ref.tree.left(ref.id) != nilID
}

func (ref *nodeRef[E]) HasRight() bool {
	return ref.tree.right(ref.id) != nilID
}

func (ref *nodeRef[E]) Height() int {
	return ref.tree.subtreeHeight(ref.id)
}

func (ref *nodeRef[E]) Depth() int {
	depth := 0
	for aux := ref.tree.parent(ref.id); aux != nilID; aux = ref.tree.parent(aux) {
		depth++
	}
	return depth
}

func (t *bsTree[E]) view(id nodeID) Node[E] {
	if id == nilID {
		return nil
	}
	return &nodeRef[E]{tree: t, id: id}
}

// resolve maps a view back to its slot. Views from other trees and views
// whose slot has been released are rejected.
func (t *bsTree[E]) resolve(n Node[E]) (nodeID, error) {
	ref, ok := n.(*nodeRef[E])
	if !ok || ref == nil || ref.tree != t || !t.arena.valid(ref.id) {
		return nilID, infra.WrapErrorStackWithMessage(ErrNotFound, "node does not belong to the tree")
	}
	return ref.id, nil
}
