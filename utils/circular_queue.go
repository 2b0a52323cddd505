package utils

import (
	"iter"

	"github.com/oomph-ac/locomotion/oerror"
)

var (
	ErrQueueRange    = oerror.New("circular queue: index out of range")
	ErrQueueCapacity = oerror.New("circular queue: append on zero capacity queue")
)

// CircularQueue is a fixed capacity FIFO that overwrites its oldest item once full.
type CircularQueue[T any] struct {
	items []T
	head  int
	size  int
}

// NewCircularQueue creates an empty queue holding at most capacity items.
func NewCircularQueue[T any](capacity int) *CircularQueue[T] {
	return &CircularQueue[T]{items: make([]T, max(capacity, 0))}
}

// Get returns the item at logical position index (0 = oldest).
func (q *CircularQueue[T]) Get(index int) (T, error) {
	var zero T
	if index < 0 || index >= q.size {
		return zero, ErrQueueRange
	}
	return q.items[(q.head+index)%len(q.items)], nil
}

// Set replaces the item at logical position index (0 = oldest).
func (q *CircularQueue[T]) Set(index int, item T) error {
	if index < 0 || index >= q.size {
		return ErrQueueRange
	}
	q.items[(q.head+index)%len(q.items)] = item
	return nil
}

// Last returns the newest item.
func (q *CircularQueue[T]) Last() (T, bool) {
	item, err := q.Get(q.size - 1)
	return item, err == nil
}

// Iter yields the items from oldest to newest.
func (q *CircularQueue[T]) Iter() iter.Seq[T] {
	return func(yield func(T) bool) {
		for index := range q.size {
			if !yield(q.items[(q.head+index)%len(q.items)]) {
				return
			}
		}
	}
}

// Slice copies the items from oldest to newest.
func (q *CircularQueue[T]) Slice() []T {
	out := make([]T, 0, q.size)
	for item := range q.Iter() {
		out = append(out, item)
	}
	return out
}

// Len returns the number of items in the queue.
func (q *CircularQueue[T]) Len() int {
	return q.size
}

// Cap returns the maximum number of items the queue can hold.
func (q *CircularQueue[T]) Cap() int {
	return len(q.items)
}

// Pop removes and returns the oldest item. ok is false if the queue is empty.
func (q *CircularQueue[T]) Pop() (item T, ok bool) {
	if q.size == 0 {
		return item, false
	}
	var zero T
	item = q.items[q.head]
	q.items[q.head] = zero
	q.head = (q.head + 1) % len(q.items)
	q.size--
	return item, true
}

// Append adds an item as the newest, dropping the oldest item if the queue is full.
func (q *CircularQueue[T]) Append(item T) error {
	if len(q.items) == 0 {
		return ErrQueueCapacity
	}

	if q.size == len(q.items) {
		q.items[q.head] = item
		q.head = (q.head + 1) % len(q.items)
		return nil
	}
	q.items[(q.head+q.size)%len(q.items)] = item
	q.size++
	return nil
}
