// Package queue provides a minimal FIFO buffer used to hold values that arrive
// before anyone is ready to observe them.
package queue

import "iter"

type node[T any] struct {
	value T
	next  *node[T]
}

// Queue is a singly linked FIFO. It is not safe for concurrent use; it is
// owned by exactly one subscription and mutated on one logical thread.
type Queue[T any] struct {
	size       int
	head, tail *node[T]
}

// New returns a queue holding the given values in order.
func New[T any](initial ...T) *Queue[T] {
	q := &Queue[T]{}
	q.Push(initial...)
	return q
}

// From returns a queue holding every value yielded by seq.
func From[T any](seq iter.Seq[T]) *Queue[T] {
	q := &Queue[T]{}
	for v := range seq {
		q.pushOne(v)
	}
	return q
}

// Size reports the number of buffered values.
func (q *Queue[T]) Size() int {
	if q.head == nil || q.tail == nil {
		return 0
	}
	return q.size
}

// Push appends values and returns the new size.
func (q *Queue[T]) Push(values ...T) int {
	for _, v := range values {
		q.pushOne(v)
	}
	return q.size
}

// Shift removes and returns the head value. ok is false when the queue is empty.
func (q *Queue[T]) Shift() (value T, ok bool) {
	head := q.head
	if head == nil {
		return value, false
	}

	q.head = head.next
	if q.head == nil {
		q.tail = nil
	}
	q.size--

	return head.value, true
}

// Dissolve drains the queue and returns only the most recent value.
// ok is false when the queue was already empty.
func (q *Queue[T]) Dissolve() (last T, ok bool) {
	for q.Size() > 0 {
		last, ok = q.Shift()
	}
	return last, ok
}

// All yields buffered values head first without removing them.
func (q *Queue[T]) All() iter.Seq[T] {
	return func(yield func(T) bool) {
		for n := q.head; n != nil; n = n.next {
			if !yield(n.value) {
				return
			}
		}
	}
}

func (q *Queue[T]) pushOne(v T) {
	n := &node[T]{value: v}
	q.size++
	if q.tail != nil {
		q.tail.next = n
		q.tail = n
		return
	}
	q.head, q.tail = n, n
}
