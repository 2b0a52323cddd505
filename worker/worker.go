package worker

import (
	"runtime"
	"sync"
	"sync/atomic"
	"time"

	"github.com/getsentry/sentry-go"
	"github.com/oomph-ac/locomotion/oerror"
	"go.uber.org/zap"
)

var ErrClosed = oerror.New("worker pool closed")

type job struct {
	name string
	f    func()
}

// Pool runs independent jobs, such as scenario simulations, on a fixed number of goroutines. A job
// that panics is reported to sentry and does not take its worker down.
type Pool struct {
	jobs chan job
	wg   sync.WaitGroup
	log  *zap.Logger

	mu     sync.RWMutex
	closed bool

	panics atomic.Int64
}

// NewPool starts a pool with the given number of workers. A non-positive count uses one worker per
// CPU.
func NewPool(workers int, log *zap.Logger) *Pool {
	if workers <= 0 {
		workers = runtime.NumCPU()
	}
	if log == nil {
		log = zap.NewNop()
	}
	p := &Pool{jobs: make(chan job, workers), log: log.Named("worker")}
	p.wg.Add(workers)
	for i := 0; i < workers; i++ {
		go p.worker()
	}
	return p
}

func (p *Pool) worker() {
	defer p.wg.Done()
	for j := range p.jobs {
		p.run(j)
	}
}

func (p *Pool) run(j job) {
	defer func() {
		if err := recover(); err != nil {
			p.panics.Add(1)
			p.log.Error("job panicked", zap.String("job", j.name), zap.Any("panic", err))
			hub := sentry.CurrentHub().Clone()
			hub.ConfigureScope(func(scope *sentry.Scope) {
				scope.SetTag("job", j.name)
			})

			hub.Recover(oerror.New("%v", err))
			hub.Flush(time.Second * 5)
		}
	}()
	j.f()
}

// Submit queues f to run on the pool, blocking while every worker is busy and the queue is full.
func (p *Pool) Submit(name string, f func()) error {
	p.mu.RLock()
	defer p.mu.RUnlock()
	if p.closed {
		return ErrClosed
	}
	p.jobs <- job{name: name, f: f}
	return nil
}

// Close stops accepting jobs and waits for the queued ones to finish.
func (p *Pool) Close() {
	p.mu.Lock()
	if !p.closed {
		p.closed = true
		close(p.jobs)
	}
	p.mu.Unlock()
	p.wg.Wait()
}

// Panics returns the number of jobs that panicked.
func (p *Pool) Panics() int64 {
	return p.panics.Load()
}
