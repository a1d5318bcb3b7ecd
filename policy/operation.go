package policy

import (
	"runtime"
	"sync/atomic"
)

// operation is mutation of one key, split into steps.
// Any goroutine can execute operation: first goroutine that claims a step
// makes its side effect, others observe step as done after that.
// Steps are done strictly in order.
type operation struct {
	token    uint64
	steps    []step
	finished atomic.Bool
	// onFinish called once, after all steps are done.
	onFinish func()
}

type step struct {
	claimed atomic.Bool
	done    atomic.Bool
	action  func()
}

func newOperation(token uint64, onFinish func(), actions ...func()) *operation {
	o := &operation{
		token:    token,
		steps:    make([]step, len(actions)),
		onFinish: onFinish,
	}
	for i, a := range actions {
		o.steps[i].action = a
	}
	return o
}

// execute makes as much steps as it can. Returns true, when operation is complete.
// Returns false only when some step is claimed by another goroutine and not done yet.
func (o *operation) execute() (complete bool) {
	if o.finished.Load() {
		return true
	}
	for i := range o.steps {
		if !o.steps[i].run() {
			return false
		}
	}
	if o.finished.CompareAndSwap(false, true) {
		o.onFinish()
	}
	return true
}

// complete executes operation until it is complete.
func (o *operation) complete() {
	for !o.execute() {
		runtime.Gosched()
	}
}

func (s *step) run() (done bool) {
	if s.done.Load() {
		return true
	}
	if s.claimed.CompareAndSwap(false, true) {
		s.action()
		s.done.Store(true)
		return true
	}
	return s.done.Load()
}
