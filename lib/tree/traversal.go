package tree

import (
	"iter"

	"github.com/benz9527/xtree/lib/list"
)

// All traversals are iterative, the action returns false to stop.

func (t *bsTree[E]) ForeachPreOrder(action func(idx int64, e E) bool) {
	if t.root == nilID || action == nil {
		return
	}

	stack := list.NewStack[nodeID]()
	stack.Push(t.root)
	for idx := int64(0); !stack.IsEmpty(); idx++ {
		aux, _ := stack.Pop()
		if !action(idx, t.elem(aux)) {
			return
		}
		if r := t.right(aux); r != nilID {
			stack.Push(r)
		}
		if l := t.left(aux); l != nilID {
			stack.Push(l)
		}
	}
}

// Inorder traversal to implement the DFS.
func (t *bsTree[E]) ForeachInOrder(action func(idx int64, e E) bool) {
	if t.root == nilID || action == nil {
		return
	}

	stack := list.NewStack[nodeID]()
	for aux := t.root; aux != nilID; aux = t.left(aux) {
		stack.Push(aux)
	}
	for idx := int64(0); !stack.IsEmpty(); idx++ {
		aux, _ := stack.Pop()
		if !action(idx, t.elem(aux)) {
			return
		}
		for aux = t.right(aux); aux != nilID; aux = t.left(aux) {
			stack.Push(aux)
		}
	}
}

// The reversed (root, right, left) order popped from a second stack.
func (t *bsTree[E]) ForeachPostOrder(action func(idx int64, e E) bool) {
	if t.root == nilID || action == nil {
		return
	}

	stack, out := list.NewStack[nodeID](), list.NewStack[nodeID]()
	stack.Push(t.root)
	for !stack.IsEmpty() {
		aux, _ := stack.Pop()
		out.Push(aux)
		if l := t.left(aux); l != nilID {
			stack.Push(l)
		}
		if r := t.right(aux); r != nilID {
			stack.Push(r)
		}
	}
	out.Foreach(func(idx int64, aux nodeID) bool {
		return action(idx, t.elem(aux))
	})
}

func (t *bsTree[E]) ForeachBreadthFirst(action func(idx int64, e E) bool) {
	t.foreachLevel(func(idx int64, aux nodeID) bool {
		return action(idx, t.elem(aux))
	})
}

func (t *bsTree[E]) foreachLevel(action func(idx int64, aux nodeID) bool) {
	if t.root == nilID || action == nil {
		return
	}

	queue := list.NewQueue[nodeID]()
	queue.Enqueue(t.root)
	for idx := int64(0); !queue.IsEmpty(); idx++ {
		aux, _ := queue.Dequeue()
		if !action(idx, aux) {
			return
		}
		if l := t.left(aux); l != nilID {
			queue.Enqueue(l)
		}
		if r := t.right(aux); r != nilID {
			queue.Enqueue(r)
		}
	}
}

func seqOf[E any](foreach func(action func(idx int64, e E) bool)) iter.Seq[E] {
	return func(yield func(E) bool) {
		foreach(func(_ int64, e E) bool {
			return yield(e)
		})
	}
}

func (t *bsTree[E]) PreOrder() iter.Seq[E] {
	return seqOf[E](t.ForeachPreOrder)
}

func (t *bsTree[E]) InOrder() iter.Seq[E] {
	return seqOf[E](t.ForeachInOrder)
}

func (t *bsTree[E]) PostOrder() iter.Seq[E] {
	return seqOf[E](t.ForeachPostOrder)
}

func (t *bsTree[E]) BreadthFirst() iter.Seq[E] {
	return seqOf[E](t.ForeachBreadthFirst)
}

func (t *bsTree[E]) All() iter.Seq[E] {
	return t.InOrder()
}
