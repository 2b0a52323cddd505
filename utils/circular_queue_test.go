package utils

import (
	"errors"
	"slices"
	"testing"
)

func TestCircularQueueOverwritesOldest(t *testing.T) {
	q := NewCircularQueue[int](3)
	if q.Len() != 0 || q.Cap() != 3 {
		t.Fatalf("expected an empty queue of capacity 3, got len=%d cap=%d", q.Len(), q.Cap())
	}
	for i := 1; i <= 5; i++ {
		if err := q.Append(i); err != nil {
			t.Fatalf("append failed: %v", err)
		}
	}
	if got := q.Slice(); !slices.Equal(got, []int{3, 4, 5}) {
		t.Fatalf("expected [3 4 5], got %v", got)
	}
	if last, ok := q.Last(); !ok || last != 5 {
		t.Fatalf("expected newest item 5, got %v", last)
	}
	if first, _ := q.Get(0); first != 3 {
		t.Fatalf("expected oldest item 3, got %v", first)
	}
}

func TestCircularQueuePop(t *testing.T) {
	q := NewCircularQueue[int](2)
	q.Append(1)
	q.Append(2)
	q.Append(3)

	if item, ok := q.Pop(); !ok || item != 2 {
		t.Fatalf("expected to pop 2, got %v", item)
	}
	q.Append(4)
	if got := q.Slice(); !slices.Equal(got, []int{3, 4}) {
		t.Fatalf("expected [3 4], got %v", got)
	}
	q.Pop()
	q.Pop()
	if _, ok := q.Pop(); ok {
		t.Fatalf("pop on an empty queue should fail")
	}
	if _, ok := q.Last(); ok {
		t.Fatalf("empty queue has no newest item")
	}
}

func TestCircularQueueErrors(t *testing.T) {
	q := NewCircularQueue[int](0)
	if err := q.Append(1); !errors.Is(err, ErrQueueCapacity) {
		t.Fatalf("expected ErrQueueCapacity, got %v", err)
	}

	q = NewCircularQueue[int](2)
	q.Append(1)
	if _, err := q.Get(1); !errors.Is(err, ErrQueueRange) {
		t.Fatalf("expected ErrQueueRange, got %v", err)
	}
	if err := q.Set(0, 7); err != nil {
		t.Fatalf("set failed: %v", err)
	}
	if item, _ := q.Get(0); item != 7 {
		t.Fatalf("expected 7, got %v", item)
	}
}
