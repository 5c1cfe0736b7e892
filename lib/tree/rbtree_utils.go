package tree

import (
	"errors"

	"github.com/benz9527/xtree/lib/list"
)

// Tree rule validation utilities. They walk the public node views only.

// References:
// https://github1s.com/minghu6/rust-minghu6/blob/master/coll_st/src/bst/rb.rs

func isRedNode[E any](tree RBTree[E], node Node[E]) bool {
	if node == nil {
		return false
	}
	color, err := tree.Color(node)
	return err == nil && color == Red
}

func blackDepthTo[E any](tree RBTree[E], target Node[E]) int {
	depth := 0
	for aux := target; aux != nil; aux = aux.Parent() {
		if !isRedNode[E](tree, aux) {
			depth++
		}
	}
	return depth
}

// Inorder traversal to validate the rbtree properties.
func RedViolationValidate[E any](tree RBTree[E]) error {
	aux, err := tree.Root()
	if err != nil {
		return nil
	}
	if isRedNode[E](tree, aux) {
		return errors.New("rbtree red root violation")
	}

	stack := list.NewStack[Node[E]]()
	for ; aux != nil; aux = aux.Left() {
		stack.Push(aux)
	}
	for !stack.IsEmpty() {
		aux, _ = stack.Pop()
		if isRedNode[E](tree, aux) &&
			(isRedNode[E](tree, aux.Left()) || isRedNode[E](tree, aux.Right())) {
			return errors.New("rbtree red violation")
		}
		for aux = aux.Right(); aux != nil; aux = aux.Left() {
			stack.Push(aux)
		}
	}
	return nil
}

// BFS traversal to load all nodes owning a nil child.
func bfsLeaves[E any](tree BSTree[E]) []Node[E] {
	root, err := tree.Root()
	if err != nil {
		return nil
	}

	leaves := make([]Node[E], 0, tree.Len()>>1+1)
	queue := list.NewQueue[Node[E]]()
	queue.Enqueue(root)
	for !queue.IsEmpty() {
		aux, _ := queue.Dequeue()
		if /* nil leaves, keep one */ !aux.HasLeft() || !aux.HasRight() {
			leaves = append(leaves, aux)
		}
		if aux.HasLeft() {
			queue.Enqueue(aux.Left())
		}
		if aux.HasRight() {
			queue.Enqueue(aux.Right())
		}
	}
	return leaves
}

/*
<X> is a RED node.
[X] is a BLACK node (or NIL).

	        [13]
			/  \
		 <8>    [15]
		 / \    /  \
	  [6] [11] [14] [17]
	  /              /
	<1>            [16]

2-3-4 tree like:

	       <8> --- [13] --- <15>
		  /  \             /    \
		 /    \           /      \
	  <1>-[6][11]      [14] <16>-[17]

Each leaf node to root node black depth are equal.
*/
func BlackViolationValidate[E any](tree RBTree[E]) error {
	leaves := bfsLeaves[E](tree)
	if leaves == nil {
		return nil
	}

	blackDepth := blackDepthTo[E](tree, leaves[0])
	for i := 1; i < len(leaves); i++ {
		if blackDepthTo[E](tree, leaves[i]) != blackDepth {
			return errors.New("rbtree black violation")
		}
	}
	return nil
}

// AVLViolationValidate checks every balance factor and the height of the
// tree recomputed from the structure.
func AVLViolationValidate[E any](tree AVLTree[E]) error {
	var err error
	stack := list.NewStack[Node[E]]()
	if root, rootErr := tree.Root(); rootErr == nil {
		stack.Push(root)
	}
	for !stack.IsEmpty() && err == nil {
		aux, _ := stack.Pop()
		bal, balErr := tree.Balance(aux)
		if balErr != nil {
			return balErr
		}
		lh, rh := -1, -1
		if aux.HasLeft() {
			lh = aux.Left().Height()
			stack.Push(aux.Left())
		}
		if aux.HasRight() {
			rh = aux.Right().Height()
			stack.Push(aux.Right())
		}
		if bal != lh-rh {
			err = errors.New("avl height violation")
		} else if bal < -1 || bal > 1 {
			err = errors.New("avl balance violation")
		}
	}
	return err
}

// OrderViolationValidate checks the in order sequence is non-decreasing.
func OrderViolationValidate[E any](tree BSTree[E], cmp func(i, j E) int64) error {
	var (
		prev    E
		hasPrev bool
		err     error
	)
	tree.ForeachInOrder(func(idx int64, e E) bool {
		if hasPrev && cmp(prev, e) > 0 {
			err = errors.New("bst order violation")
			return false
		}
		prev, hasPrev = e, true
		return true
	})
	return err
}
