package tree

import (
	"iter"

	"github.com/benz9527/xtree/lib/infra"
)

// go install golang.org/x/tools/cmd/stringer@latest

//go:generate stringer -type=RBColor
type RBColor uint8

const (
	Black RBColor = iota
	Red
)

//go:generate stringer -type=RBDirection
type RBDirection int8

const (
	Left RBDirection = -1 + iota
	Root
	Right
)

var (
	ErrNilElement           = infra.ErrNilElement
	ErrEmptyStructure       = infra.ErrEmptyStructure
	ErrNotFound             = infra.ErrNotFound
	ErrUnsupportedOperation = infra.ErrUnsupportedOperation
)

// Node is a read only view of a tree node.
// A view is valid until the next mutation of its tree.
type Node[E any] interface {
	Element() E
	Parent() Node[E]
	Left() Node[E]
	Right() Node[E]
	HasParent() bool
	HasLeft() bool
	HasRight() bool
	// Height of the subtree rooted at the node, a leaf is 0.
	Height() int
	// Depth is the number of edges to the root.
	Depth() int
}

// BSTree is an ordered binary search tree.
// Elements in the left subtree compare <= the node, and elements in the
// right subtree compare >= the node.
//
// Search and Delete locate candidates by the comparator and then match them
// by equality. The comparator must agree with the equality, otherwise a
// different duplicate may be matched.
//
// Not thread safe.
type BSTree[E any] interface {
	Len() int64
	IsEmpty() bool
	// Height of the tree, -1 when it is empty.
	Height() int
	Root() (Node[E], error)
	// LastInserted returns the node created by the latest Insert.
	// It is nil after any other mutation.
	LastInserted() Node[E]
	Insert(e E) error
	// Delete removes the element and reports whether it was present.
	Delete(e E) bool
	Search(e E) (Node[E], error)
	Contains(e E) bool
	Clear()
	RotateLeft(n Node[E]) error
	RotateRight(n Node[E]) error

	ForeachPreOrder(action func(idx int64, e E) bool)
	ForeachInOrder(action func(idx int64, e E) bool)
	ForeachPostOrder(action func(idx int64, e E) bool)
	ForeachBreadthFirst(action func(idx int64, e E) bool)
	PreOrder() iter.Seq[E]
	InOrder() iter.Seq[E]
	PostOrder() iter.Seq[E]
	BreadthFirst() iter.Seq[E]
	// All iterates in order.
	All() iter.Seq[E]

	// Equal reports whether both trees have the same shape and elements.
	Equal(other BSTree[E]) bool
	String() string
}

// AVLTree keeps |height(left) - height(right)| <= 1 for every node.
type AVLTree[E any] interface {
	BSTree[E]
	Balance(n Node[E]) (int, error)
}

// RBTree keeps the red black properties.
type RBTree[E any] interface {
	BSTree[E]
	Color(n Node[E]) (RBColor, error)
}
