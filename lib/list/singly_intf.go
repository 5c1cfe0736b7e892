package list

// Note that the stack and the queue are not thread safe.
// Both are backed by a singly linked chain of nodes.

// Stack is a LIFO container.
type Stack[T any] interface {
	Len() int64
	IsEmpty() bool
	// Push pushes the values in order, the last one ends on the top.
	Push(values ...T)
	// Pop removes and returns the top value, false if the stack is empty.
	Pop() (T, bool)
	// Peek returns the top value without removing it.
	Peek() (T, bool)
	Clear()
	// Foreach traverses from the top to the bottom.
	// If fn returns false, the traversal stops.
	Foreach(fn func(idx int64, v T) bool)
}

// Queue is a FIFO container.
type Queue[T any] interface {
	Len() int64
	IsEmpty() bool
	// Enqueue appends the values at the tail in order.
	Enqueue(values ...T)
	// Dequeue removes and returns the head value, false if the queue is empty.
	Dequeue() (T, bool)
	// Peek returns the head value without removing it.
	Peek() (T, bool)
	Clear()
	// Foreach traverses from the head to the tail.
	// If fn returns false, the traversal stops.
	Foreach(fn func(idx int64, v T) bool)
}
