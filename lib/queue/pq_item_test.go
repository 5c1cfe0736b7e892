package queue

import (
	"testing"
	"unsafe"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type employee struct {
	name   string
	age    int
	salary int64
}

func TestPriorityQueueItemAlignmentAndSize(t *testing.T) {
	item := NewPriorityQueueItem[*employee](&employee{age: 10, name: "p0"}, 1)
	t.Logf("item alignment size: %d\n", unsafe.Alignof(item))
	prototype := item.(*pqItem[*employee])
	t.Logf("item prototype alignment size: %d\n", unsafe.Alignof(prototype))
	t.Logf("item prototype value alignment size: %d\n", unsafe.Alignof(prototype.value))
	t.Logf("item prototype priority alignment size: %d\n", unsafe.Alignof(prototype.priority))
	t.Logf("item prototype index alignment size: %d\n", unsafe.Alignof(prototype.index))
	t.Logf("item prototype size: %d\n", unsafe.Sizeof(prototype))
}

func TestPriorityQueueItem_NilReceiver(t *testing.T) {
	var item *pqItem[int]
	require.Equal(t, int64(-1), item.Index())
	require.Equal(t, int64(-1), item.Priority())
	require.Equal(t, 0, item.Value())
	item.SetIndex(1)
	item.SetPriority(1)
}

func TestPriorityQueue_MinValueAsHighPriority(t *testing.T) {
	pq := NewIndexedMinHeap[PQItem[*employee]](
		PQItemComparator[*employee](),
		WithIndexedMinHeapCapacity(32),
	)
	require.NoError(t, pq.Push(NewPriorityQueueItem[*employee](&employee{age: 10, name: "p0"}, 1)))
	require.NoError(t, pq.Push(NewPriorityQueueItem[*employee](&employee{age: 101, name: "p1"}, 101)))
	require.NoError(t, pq.Push(NewPriorityQueueItem[*employee](&employee{age: 10, name: "p2"}, 10)))
	require.NoError(t, pq.Push(NewPriorityQueueItem[*employee](&employee{age: 200, name: "p3"}, 200)))
	require.NoError(t, pq.Push(NewPriorityQueueItem[*employee](&employee{age: 3, name: "p4"}, 3)))
	require.NoError(t, pq.Push(NewPriorityQueueItem[*employee](&employee{age: 1, name: "p5"}, 1)))
	require.NoError(t, pq.Push(NewPriorityQueueItem[*employee](&employee{age: 5, name: "p6"}, 5)))

	expectedPriorities := []int64{1, 1, 3, 5, 10, 101, 200}
	for i, priority := range expectedPriorities {
		item, err := pq.ExtractMin()
		require.NoError(t, err)
		t.Logf("%v， priority: %d", item.Value(), item.Priority())
		assert.Equal(t, priority, item.Priority(), "priority", i)
	}
}

func TestPriorityQueue_MaxValueAsHighPriority(t *testing.T) {
	pq := NewIndexedMinHeap[PQItem[*employee]](PQItemComparator[*employee]().Reverse())
	for i, pri := range []int64{1, 101, 10, 200, 3} {
		require.NoError(t, pq.Push(NewPriorityQueueItem[*employee](&employee{age: i}, pri)))
	}
	expectedPriorities := []int64{200, 101, 10, 3, 1}
	for _, priority := range expectedPriorities {
		item, err := pq.ExtractMin()
		require.NoError(t, err)
		assert.Equal(t, priority, item.Priority())
	}
}
