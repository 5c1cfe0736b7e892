package queue

import (
	"container/heap"
	"iter"

	"github.com/samber/lo"

	"github.com/benz9527/xtree/lib/infra"
)

const defaultIndexedMinHeapCapacity = 64

var _ heap.Interface = (*arrayHeap[*pqItem[int]])(nil)

// arrayHeap is driven by container/heap. Swap and Pop keep the element
// indexes in sync with the array positions.
type arrayHeap[E HeapElement] struct {
	arr []E
	cmp infra.Comparator[E]
}

func (h *arrayHeap[E]) Len() int { return len(h.arr) }

// A tie is not less, so the sift stops once nothing improves.
func (h *arrayHeap[E]) Less(i, j int) bool {
	return h.cmp(h.arr[i], h.arr[j]) < 0
}

func (h *arrayHeap[E]) Swap(i, j int) {
	h.arr[i], h.arr[j] = h.arr[j], h.arr[i]
	h.arr[i].SetIndex(int64(i))
	h.arr[j].SetIndex(int64(j))
}

func (h *arrayHeap[E]) Push(x any) {
	e, ok := x.(E)
	if !ok {
		return
	}
	e.SetIndex(int64(len(h.arr)))
	h.arr = append(h.arr, e)
}

func (h *arrayHeap[E]) Pop() any {
	prev := h.arr
	n := len(prev)
	if n <= 0 {
		return nil
	}

	e := prev[n-1]
	e.SetIndex(-1)
	var zero E
	prev[n-1] = zero // Help GC.
	h.arr = prev[:n-1]
	return e
}

var _ IndexedMinHeap[*pqItem[int]] = (*indexedMinHeap[*pqItem[int]])(nil)

type indexedMinHeap[E HeapElement] struct {
	h *arrayHeap[E]
}

func (mh *indexedMinHeap[E]) Len() int64 {
	return int64(len(mh.h.arr))
}

func (mh *indexedMinHeap[E]) IsEmpty() bool {
	return len(mh.h.arr) == 0
}

func (mh *indexedMinHeap[E]) Push(e E) error {
	if lo.IsNil(e) {
		return infra.WrapErrorStack(ErrNilElement)
	}
	heap.Push(mh.h, e)
	return nil
}

func (mh *indexedMinHeap[E]) ExtractMin() (e E, err error) {
	if len(mh.h.arr) == 0 {
		return e, infra.WrapErrorStack(ErrEmptyStructure)
	}
	return heap.Pop(mh.h).(E), nil
}

func (mh *indexedMinHeap[E]) Peek() (e E, err error) {
	if len(mh.h.arr) == 0 {
		return e, infra.WrapErrorStack(ErrEmptyStructure)
	}
	return mh.h.arr[0], nil
}

func (mh *indexedMinHeap[E]) Contains(e E) bool {
	if lo.IsNil(e) {
		return false
	}
	idx := e.Index()
	return idx >= 0 && idx < int64(len(mh.h.arr)) && mh.h.arr[idx] == e
}

func (mh *indexedMinHeap[E]) Remove(e E) bool {
	if !mh.Contains(e) {
		return false
	}
	heap.Remove(mh.h, int(e.Index()))
	return true
}

func (mh *indexedMinHeap[E]) Reorder(e E) bool {
	if !mh.Contains(e) {
		return false
	}
	heap.Fix(mh.h, int(e.Index()))
	return true
}

func (mh *indexedMinHeap[E]) Get(i int64) (e E, err error) {
	if i < 0 || i >= int64(len(mh.h.arr)) {
		return e, infra.WrapErrorStack(ErrIndexOutOfRange)
	}
	return mh.h.arr[i], nil
}

func (mh *indexedMinHeap[E]) Clear() {
	for _, e := range mh.h.arr {
		e.SetIndex(-1)
	}
	clear(mh.h.arr)
	mh.h.arr = mh.h.arr[:0]
}

func (mh *indexedMinHeap[E]) All() iter.Seq[E] {
	return func(yield func(E) bool) {
		for i := 0; i < len(mh.h.arr); i++ {
			if !yield(mh.h.arr[i]) {
				return
			}
		}
	}
}

type IndexedMinHeapOption func(*indexedMinHeapCfg)

type indexedMinHeapCfg struct {
	capacity int
}

func WithIndexedMinHeapCapacity(capacity int) IndexedMinHeapOption {
	return func(cfg *indexedMinHeapCfg) {
		if capacity > 0 {
			cfg.capacity = capacity
		}
	}
}

func NewIndexedMinHeap[E HeapElement](cmp infra.Comparator[E], opts ...IndexedMinHeapOption) IndexedMinHeap[E] {
	return BuildIndexedMinHeap[E](cmp, nil, opts...)
}

// BuildIndexedMinHeap heapifies the elements in O(n). The nil elements
// are skipped.
func BuildIndexedMinHeap[E HeapElement](cmp infra.Comparator[E], elements []E, opts ...IndexedMinHeapOption) IndexedMinHeap[E] {
	if cmp == nil {
		panic("[queue] nil comparator")
	}
	cfg := &indexedMinHeapCfg{
		capacity: defaultIndexedMinHeapCapacity,
	}
	for _, o := range opts {
		o(cfg)
	}

	arr := make([]E, 0, max(cfg.capacity, len(elements)))
	for _, e := range elements {
		if lo.IsNil(e) {
			continue
		}
		e.SetIndex(int64(len(arr)))
		arr = append(arr, e)
	}
	h := &arrayHeap[E]{
		arr: arr,
		cmp: cmp,
	}
	heap.Init(h)
	return &indexedMinHeap[E]{h: h}
}
