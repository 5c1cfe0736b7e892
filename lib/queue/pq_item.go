package queue

import (
	"sync/atomic"

	"github.com/benz9527/xtree/lib/infra"
)

type pqItem[V any] struct {
	priority int64
	index    int64
	value    V
}

func (item *pqItem[V]) Index() int64 {
	if item == nil {
		return -1
	}
	return atomic.LoadInt64(&item.index)
}

func (item *pqItem[V]) Value() (val V) {
	if item == nil {
		// return empty value by default
		return
	}
	return item.value
}

func (item *pqItem[V]) Priority() int64 {
	if item == nil {
		return -1
	}
	return atomic.LoadInt64(&item.priority)
}

func (item *pqItem[V]) SetIndex(idx int64) {
	if item == nil {
		return
	}
	atomic.SwapInt64(&item.index, idx)
}

func (item *pqItem[V]) SetPriority(pri int64) {
	if item == nil {
		return
	}
	atomic.SwapInt64(&item.priority, pri)
}

// NewPriorityQueueItem returns an item outside of any heap (index -1).
func NewPriorityQueueItem[V any](val V, pri int64) PQItem[V] {
	return &pqItem[V]{
		priority: pri,
		value:    val,
		index:    -1,
	}
}

// PQItemComparator orders the items by ascending priority.
func PQItemComparator[V any]() infra.Comparator[PQItem[V]] {
	return func(i, j PQItem[V]) int64 {
		pi, pj := i.Priority(), j.Priority()
		if pi == pj {
			return 0
		} else if pi < pj {
			return -1
		}
		return 1
	}
}
