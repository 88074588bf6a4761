// Package pool implements the fixed-size worker pool that drives the
// judge engine: workers consume Units, run them to completion, and
// re-enqueue any Followups they produce — with panic-safe worker
// replacement and a join that waits for full quiescence.
package pool

import (
	"runtime"
	"sync"
	"sync/atomic"
)

// sharedData is the state every worker goroutine and the Pool handle
// both see; it outlives any individual worker (a panicking worker is
// replaced, not the sharedData it was bound to).
type sharedData struct {
	queue *jobQueue

	maxWorkers int64
	active     atomic.Int64
	panicked   atomic.Int64
	queued     atomic.Int64

	done    atomic.Bool
	running atomic.Bool

	idleMu    sync.Mutex
	idleCond  *sync.Cond
	joinTimes atomic.Int64
}

func (s *sharedData) isIdle() bool {
	return s.queued.Load() == 0 && s.active.Load() == 0
}

func (s *sharedData) notifyWhenIdle() {
	if s.isIdle() {
		s.idleMu.Lock()
		s.idleCond.Broadcast()
		s.idleMu.Unlock()
	}
}

// Pool is a fixed-size worker set processing Units from a single
// shared queue.
type Pool struct {
	shared *sharedData
}

// New creates a pool with n workers. n<=0 defaults to GOMAXPROCS. The
// pool starts paused; call Resume to let workers begin consuming jobs.
func New(n int) *Pool {
	if n <= 0 {
		n = runtime.GOMAXPROCS(0)
	}
	shared := &sharedData{
		queue:      newJobQueue(),
		maxWorkers: int64(n),
	}
	shared.idleCond = sync.NewCond(&shared.idleMu)

	p := &Pool{shared: shared}
	for id := 0; id < n; id++ {
		spawnWorker(id, shared)
	}
	return p
}

func spawnWorker(id int, shared *sharedData) {
	go runWorker(id, shared)
}

func runWorker(id int, shared *sharedData) {
	s := newSentinel(id, shared)
	defer s.guard()

	for {
		if shared.done.Load() {
			return
		}
		if !shared.running.Load() {
			runtime.Gosched()
			continue
		}

		unit, ok := shared.queue.pop()
		if !ok {
			continue
		}

		shared.active.Add(1)
		shared.queued.Add(-1)

		followups := unit()

		for _, f := range followups {
			f := f
			shared.queued.Add(1)
			shared.queue.push(func() []Followup {
				_ = f.ExecuteOnce()
				return nil
			})
		}

		shared.active.Add(-1)
		shared.notifyWhenIdle()
	}
}

// Submit enqueues a unit of work.
func (p *Pool) Submit(job Unit) {
	p.shared.queued.Add(1)
	if !p.shared.queue.push(job) {
		p.shared.queued.Add(-1)
	}
}

// Resume opens the running gate so workers start consuming jobs.
func (p *Pool) Resume() {
	p.shared.running.Store(true)
}

// Pause closes the running gate; in-flight jobs finish, new ones wait.
func (p *Pool) Pause() {
	p.shared.running.Store(false)
}

// Stop sets the shutdown flag so every worker exits on its next
// iteration. If drain is true, queued-but-not-started jobs are
// discarded first; otherwise they are simply abandoned when workers
// observe shutdown. Either way, Stop unblocks any worker parked in a
// blocking dequeue.
func (p *Pool) Stop(drain bool) {
	if drain {
		p.shared.queue.drain()
	}
	p.shared.done.Store(true)
	p.shared.queue.close()
}

// Join blocks until the queue is empty and no worker is active.
func (p *Pool) Join() {
	if p.shared.isIdle() {
		return
	}

	joinTimes := p.shared.joinTimes.Load()
	p.shared.idleMu.Lock()
	for joinTimes == p.shared.joinTimes.Load() && !p.shared.isIdle() {
		p.shared.idleCond.Wait()
	}
	p.shared.idleMu.Unlock()

	p.shared.joinTimes.CompareAndSwap(joinTimes, joinTimes+1)
}

func (p *Pool) MaxWorkers() int     { return int(p.shared.maxWorkers) }
func (p *Pool) ActiveWorkers() int  { return int(p.shared.active.Load()) }
func (p *Pool) PanickedWorkers() int { return int(p.shared.panicked.Load()) }
func (p *Pool) Queued() int         { return int(p.shared.queued.Load()) }
