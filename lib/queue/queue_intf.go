package queue

import (
	"iter"

	"github.com/benz9527/xtree/lib/infra"
)

var (
	ErrNilElement      = infra.ErrNilElement
	ErrEmptyStructure  = infra.ErrEmptyStructure
	ErrIndexOutOfRange = infra.ErrIndexOutOfRange
)

// Indexer is an element carrying its own heap position.
// The heap keeps heap[e.Index()] == e for every stored element and
// sets the index to -1 once the element leaves the heap.
type Indexer interface {
	Index() int64
	SetIndex(idx int64)
}

type HeapElement interface {
	comparable
	Indexer
}

// IndexedMinHeap is a binary min-heap whose elements track their positions,
// so arbitrary removal and re-sifting after a key change are O(log n).
//
// Not thread safe.
type IndexedMinHeap[E HeapElement] interface {
	Len() int64
	IsEmpty() bool
	Push(e E) error
	// ExtractMin removes and returns the minimum element.
	ExtractMin() (E, error)
	Peek() (E, error)
	// Remove removes the element, no-op if the heap does not hold it.
	Remove(e E) bool
	// Reorder restores the heap order after the priority of e was
	// changed externally, no-op if the heap does not hold it.
	Reorder(e E) bool
	Contains(e E) bool
	// Get returns the element stored at the array position i (level order).
	Get(i int64) (E, error)
	Clear()
	// All iterates in level order.
	All() iter.Seq[E]
}

type ReadOnlyPQItem[V any] interface {
	Index() int64
	Value() V
	Priority() int64
}

type PQItem[V any] interface {
	ReadOnlyPQItem[V]
	SetIndex(idx int64)
	SetPriority(pri int64)
}
