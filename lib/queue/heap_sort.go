package queue

import (
	"github.com/benz9527/xtree/lib/infra"
)

// heapSortItem adapts a plain value to the heap element contract.
type heapSortItem[T any] struct {
	value T
	index int64
}

func (item *heapSortItem[T]) Index() int64 {
	return item.index
}

func (item *heapSortItem[T]) SetIndex(idx int64) {
	item.index = idx
}

// HeapSort returns the values in non-decreasing order. The input is not
// modified.
func HeapSort[T any](values []T, cmp infra.Comparator[T]) []T {
	items := make([]*heapSortItem[T], 0, len(values))
	for _, v := range values {
		items = append(items, &heapSortItem[T]{value: v})
	}
	h := BuildIndexedMinHeap[*heapSortItem[T]](func(i, j *heapSortItem[T]) int64 {
		return cmp(i.value, j.value)
	}, items, WithIndexedMinHeapCapacity(len(items)))

	res := make([]T, 0, len(values))
	for !h.IsEmpty() {
		item, err := h.ExtractMin()
		if err != nil {
			// impossible run to here
			panic( /* debug assertion */ "[queue] heap sort extract from an empty heap")
		}
		res = append(res, item.value)
	}
	return res
}
