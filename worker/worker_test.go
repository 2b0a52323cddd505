package worker

import (
	"errors"
	"sync/atomic"
	"testing"
)

func TestPoolRunsEveryJob(t *testing.T) {
	p := NewPool(4, nil)
	var done atomic.Int64
	for i := 0; i < 100; i++ {
		if err := p.Submit("count", func() { done.Add(1) }); err != nil {
			t.Fatalf("submit failed: %v", err)
		}
	}
	p.Close()
	if done.Load() != 100 {
		t.Fatalf("expected 100 jobs to run, got %d", done.Load())
	}
}

func TestPoolSurvivesPanics(t *testing.T) {
	p := NewPool(1, nil)
	var done atomic.Int64
	p.Submit("boom", func() { panic("boom") })
	p.Submit("after", func() { done.Add(1) })
	p.Close()

	if p.Panics() != 1 {
		t.Fatalf("expected one panic, got %d", p.Panics())
	}
	if done.Load() != 1 {
		t.Fatalf("job after the panic did not run")
	}
}

func TestSubmitAfterClose(t *testing.T) {
	p := NewPool(0, nil)
	p.Close()
	p.Close()
	if err := p.Submit("late", func() {}); !errors.Is(err, ErrClosed) {
		t.Fatalf("expected ErrClosed, got %v", err)
	}
}
