package deferred

import "time"

// Co is the handle a running task uses to suspend itself. It is only valid
// inside the task it was passed to.
type Co struct {
	task *task
}

// Sleep parks the task until d has elapsed on the loop's clock, letting
// other tasks run meanwhile. A non-positive d still yields the turn once.
func (co *Co) Sleep(d time.Duration) {
	co.task.loop.sleep(co.task, d)
}

// Future is the eventual result of a spawned task.
type Future[T any] struct {
	loop    *Loop
	done    bool
	value   T
	waiters []*task
}

// Spawn registers fn as a new task on l and returns its future. fn does not
// start until the loop is driven.
func Spawn[T any](l *Loop, fn func(co *Co) T) *Future[T] {
	f := &Future[T]{loop: l}
	l.spawn(func(co *Co) {
		v := fn(co)

		l.mu.Lock()
		f.value, f.done = v, true
		l.schedule(f.waiters...)
		f.waiters = nil
		l.mu.Unlock()
	})
	return f
}

// Done reports whether the task has finished.
func (f *Future[T]) Done() bool {
	f.loop.mu.Lock()
	defer f.loop.mu.Unlock()
	return f.done
}

// Value returns the task's result and whether it has finished.
func (f *Future[T]) Value() (T, bool) {
	f.loop.mu.Lock()
	defer f.loop.mu.Unlock()
	return f.value, f.done
}

// Await suspends the calling task until f has finished and returns its
// result. f must belong to the same loop as co.
func Await[T any](co *Co, f *Future[T]) T {
	l := f.loop
	if co.task.loop != l {
		panic("deferred: await across loops")
	}

	l.mu.Lock()
	if f.done {
		v := f.value
		l.mu.Unlock()
		return v
	}
	f.waiters = append(f.waiters, co.task)
	l.mu.Unlock()

	co.task.park()

	l.mu.Lock()
	defer l.mu.Unlock()
	return f.value
}
