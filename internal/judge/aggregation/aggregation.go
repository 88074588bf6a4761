// Package aggregation holds the shared, atomically-updated record that
// every RunnerJob belonging to one submission reports into.
package aggregation

import "sync/atomic"

// Finalizer is invoked exactly once, when the last testcase for a
// submission reports in.
type Finalizer func(*Aggregation)

// Aggregation is the per-submission shared progress record. All
// mutation happens through atomics except the finalizer hand-off,
// which uses a compare-and-swap on taken to guarantee a single caller
// ever runs the finalizer.
type Aggregation struct {
	Total   int64
	Command []string
	BinPath string

	completed    atomic.Int64
	wrong        atomic.Int64
	runtimeError atomic.Bool
	timeTotal    atomic.Int64
	memTotal     atomic.Int64

	taken     atomic.Bool
	finalizer Finalizer
}

// New creates an Aggregation for total testcases. If total is zero
// (no testcases discovered), the finalizer fires immediately, since no
// RunnerJob will ever exist to trip the completed==total edge.
func New(total int, command []string, binPath string, finalizer Finalizer) *Aggregation {
	agg := &Aggregation{
		Total:     int64(total),
		Command:   command,
		BinPath:   binPath,
		finalizer: finalizer,
	}
	if total == 0 {
		agg.finalize()
	}
	return agg
}

// RecordTestcase folds one completed testcase's outcome into the
// shared counters and, if this is the completing increment, takes and
// runs the finalizer.
func (a *Aggregation) RecordTestcase(wrong, runtimeErr bool, timeMs, memKB int64) {
	if wrong {
		a.wrong.Add(1)
	}
	if runtimeErr {
		a.runtimeError.Store(true)
	}
	a.timeTotal.Add(timeMs)
	a.memTotal.Add(memKB)

	if a.completed.Add(1) == a.Total {
		a.finalize()
	}
}

func (a *Aggregation) finalize() {
	if a.taken.CompareAndSwap(false, true) {
		a.finalizer(a)
	}
}

func (a *Aggregation) Completed() int64    { return a.completed.Load() }
func (a *Aggregation) Wrong() int64        { return a.wrong.Load() }
func (a *Aggregation) RuntimeError() bool  { return a.runtimeError.Load() }
func (a *Aggregation) TimeTotalMs() int64  { return a.timeTotal.Load() }
func (a *Aggregation) MemTotalKB() int64   { return a.memTotal.Load() }
