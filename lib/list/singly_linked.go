package list

type singlyNode[T any] struct {
	next  *singlyNode[T]
	value T
}

var (
	_ Stack[struct{}] = (*linkedStack[struct{}])(nil)
	_ Queue[struct{}] = (*linkedQueue[struct{}])(nil)
)

type linkedStack[T any] struct {
	top *singlyNode[T]
	len int64
}

func NewStack[T any]() Stack[T] {
	return &linkedStack[T]{}
}

func (s *linkedStack[T]) Len() int64 {
	return s.len
}

func (s *linkedStack[T]) IsEmpty() bool {
	return s.len == 0
}

func (s *linkedStack[T]) Push(values ...T) {
	for _, v := range values {
		s.top = &singlyNode[T]{
			next:  s.top,
			value: v,
		}
		s.len++
	}
}

func (s *linkedStack[T]) Pop() (v T, ok bool) {
	if s.top == nil {
		return v, false
	}
	n := s.top
	s.top = n.next
	n.next = nil // Help GC.
	s.len--
	return n.value, true
}

func (s *linkedStack[T]) Peek() (v T, ok bool) {
	if s.top == nil {
		return v, false
	}
	return s.top.value, true
}

func (s *linkedStack[T]) Clear() {
	s.top = nil
	s.len = 0
}

func (s *linkedStack[T]) Foreach(fn func(idx int64, v T) bool) {
	if fn == nil {
		return
	}
	var idx int64
	for n := s.top; n != nil; n = n.next {
		if !fn(idx, n.value) {
			return
		}
		idx++
	}
}

type linkedQueue[T any] struct {
	head, tail *singlyNode[T]
	len        int64
}

func NewQueue[T any]() Queue[T] {
	return &linkedQueue[T]{}
}

func (q *linkedQueue[T]) Len() int64 {
	return q.len
}

func (q *linkedQueue[T]) IsEmpty() bool {
	return q.len == 0
}

func (q *linkedQueue[T]) Enqueue(values ...T) {
	for _, v := range values {
		n := &singlyNode[T]{value: v}
		if q.tail == nil {
			q.head = n
		} else {
			q.tail.next = n
		}
		q.tail = n
		q.len++
	}
}

func (q *linkedQueue[T]) Dequeue() (v T, ok bool) {
	if q.head == nil {
		return v, false
	}
	n := q.head
	q.head = n.next
	if q.head == nil {
		q.tail = nil
	}
	n.next = nil
	q.len--
	return n.value, true
}

func (q *linkedQueue[T]) Peek() (v T, ok bool) {
	if q.head == nil {
		return v, false
	}
	return q.head.value, true
}

func (q *linkedQueue[T]) Clear() {
	q.head, q.tail = nil, nil
	q.len = 0
}

func (q *linkedQueue[T]) Foreach(fn func(idx int64, v T) bool) {
	if fn == nil {
		return
	}
	var idx int64
	for n := q.head; n != nil; n = n.next {
		if !fn(idx, n.value) {
			return
		}
		idx++
	}
}
