// Package timer schedules callbacks against simulation time. Nothing here reads the wall clock:
// time only moves when the owner calls Advance.
package timer

import "container/heap"

// Handle refers to a scheduled callback. The zero Handle refers to nothing. Every call to After
// returns a handle that is never reused, so a stale handle can not cancel a later timer.
type Handle struct {
	id uint64
}

// Valid returns true if the handle was returned by After.
func (h Handle) Valid() bool {
	return h.id != 0
}

type event struct {
	id       uint64
	deadline float64
	f        func()
}

type queue []*event

func (q queue) Len() int { return len(q) }
func (q queue) Less(i, j int) bool {
	if q[i].deadline == q[j].deadline {
		return q[i].id < q[j].id
	}
	return q[i].deadline < q[j].deadline
}
func (q queue) Swap(i, j int) { q[i], q[j] = q[j], q[i] }
func (q *queue) Push(x any)   { *q = append(*q, x.(*event)) }
func (q *queue) Pop() any {
	old := *q
	n := len(old)
	e := old[n-1]
	old[n-1] = nil
	*q = old[:n-1]
	return e
}

// Scheduler fires callbacks once their deadline has been reached in simulation time. It is not
// safe for concurrent use; it belongs to the simulation tick that advances it.
type Scheduler struct {
	now    float64
	lastID uint64

	queue   queue
	pending map[uint64]*event
}

// NewScheduler creates a scheduler at time zero.
func NewScheduler() *Scheduler {
	return &Scheduler{pending: make(map[uint64]*event)}
}

// Now returns the current simulation time in seconds.
func (s *Scheduler) Now() float64 {
	return s.now
}

// After schedules f to run once delay seconds of simulation time have passed. Negative delays are
// treated as zero, so the callback fires on the next Advance.
func (s *Scheduler) After(delay float32, f func()) Handle {
	if delay < 0 {
		delay = 0
	}
	s.lastID++
	e := &event{id: s.lastID, deadline: s.now + float64(delay), f: f}
	s.pending[e.id] = e
	heap.Push(&s.queue, e)
	return Handle{id: e.id}
}

// Cancel stops the callback from running. It returns false if the callback already ran, was
// already cancelled, or the handle is invalid.
func (s *Scheduler) Cancel(h Handle) bool {
	if _, ok := s.pending[h.id]; !ok {
		return false
	}
	delete(s.pending, h.id)
	return true
}

// Pending returns true if the callback is still waiting to run.
func (s *Scheduler) Pending(h Handle) bool {
	_, ok := s.pending[h.id]
	return ok
}

// Remaining returns the simulation time left before the callback runs, or false if it is no longer
// pending.
func (s *Scheduler) Remaining(h Handle) (float32, bool) {
	e, ok := s.pending[h.id]
	if !ok {
		return 0, false
	}
	return float32(e.deadline - s.now), true
}

// Len returns the number of pending callbacks.
func (s *Scheduler) Len() int {
	return len(s.pending)
}

// Advance moves simulation time forward by dt and runs every callback whose deadline has been
// reached, in deadline order. Callbacks may schedule or cancel other callbacks; newly scheduled
// ones that are already due run during the same call. It returns the number of callbacks run.
func (s *Scheduler) Advance(dt float32) int {
	if dt > 0 {
		s.now += float64(dt)
	}

	fired := 0
	for s.queue.Len() > 0 && s.queue[0].deadline <= s.now {
		e := heap.Pop(&s.queue).(*event)
		if _, ok := s.pending[e.id]; !ok {
			continue
		}
		delete(s.pending, e.id)
		e.f()
		fired++
	}
	return fired
}
