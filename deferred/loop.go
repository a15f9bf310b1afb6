package deferred

import (
	"container/heap"
	"context"
	"errors"
	"sync"
	"time"

	"github.com/benbjohnson/clock"
)

// ErrStalled is returned by Run when unfinished tasks remain but nothing
// can ever wake them.
var ErrStalled = errors.New("deferred: tasks blocked with no pending timers")

// Loop is a single-threaded cooperative scheduler.
type Loop struct {
	clock clock.Clock

	mu     sync.Mutex
	ready  []*task
	timers timerQueue
	live   int
	seq    uint64

	wake chan struct{}
}

// Option configures a Loop.
type Option func(*Loop)

// WithClock sets the clock used for sleeping. Defaults to the wall clock.
func WithClock(c clock.Clock) Option {
	return func(l *Loop) {
		l.clock = c
	}
}

// New creates an idle loop.
func New(opts ...Option) *Loop {
	l := &Loop{
		clock: clock.New(),
		wake:  make(chan struct{}, 1),
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// Clock returns the loop's clock.
func (l *Loop) Clock() clock.Clock { return l.clock }

// Pending returns the number of spawned tasks that have not finished,
// including tasks that were never driven.
func (l *Loop) Pending() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.live
}

// RunUntilIdle runs ready tasks and fires timers that are due on the loop's
// clock until nothing is runnable. It never waits on the clock. It reports
// whether unfinished tasks remain.
func (l *Loop) RunUntilIdle() bool {
	for t := l.next(); t != nil; t = l.next() {
		t.step()
	}
	return l.Pending() > 0
}

// Run drives the loop until every task has finished, waiting on the clock
// for sleeping tasks. If ctx is cancelled Run returns ctx.Err() and leaves
// the remaining tasks parked; the loop can be driven again later. A loop
// must not be driven from two goroutines at once.
func (l *Loop) Run(ctx context.Context) error {
	for {
		l.RunUntilIdle()

		l.mu.Lock()
		switch {
		case l.live == 0:
			l.mu.Unlock()
			return nil
		case len(l.ready) > 0:
			l.mu.Unlock()
			continue
		case l.timers.Len() == 0:
			l.mu.Unlock()
			return ErrStalled
		}
		wait := l.timers[0].at.Sub(l.clock.Now())
		l.mu.Unlock()

		timer := l.clock.Timer(wait)
		select {
		case <-timer.C:
		case <-l.wake:
			timer.Stop()
		case <-ctx.Done():
			timer.Stop()
			return ctx.Err()
		}
	}
}

// next returns the next runnable task, first moving due timers to the
// ready queue. It returns nil when nothing is runnable.
func (l *Loop) next() *task {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.clock.Now()
	for l.timers.Len() > 0 && !l.timers[0].at.After(now) {
		tm := heap.Pop(&l.timers).(*timer)
		l.ready = append(l.ready, tm.task)
	}

	if len(l.ready) == 0 {
		return nil
	}
	t := l.ready[0]
	l.ready[0] = nil
	l.ready = l.ready[1:]
	return t
}

func (l *Loop) spawn(fn func(co *Co)) {
	t := &task{
		loop:   l,
		fn:     fn,
		resume: make(chan struct{}),
		yield:  make(chan struct{}),
	}

	l.mu.Lock()
	l.live++
	l.ready = append(l.ready, t)
	l.mu.Unlock()

	l.notify()
}

// schedule makes parked tasks runnable again. The caller holds l.mu.
func (l *Loop) schedule(ts ...*task) {
	l.ready = append(l.ready, ts...)
}

// sleep parks t until d has elapsed on the loop's clock. The caller is the
// goroutine of t, which must hold the turn.
func (l *Loop) sleep(t *task, d time.Duration) {
	l.mu.Lock()
	l.seq++
	heap.Push(&l.timers, &timer{at: l.clock.Now().Add(d), seq: l.seq, task: t})
	l.mu.Unlock()

	t.park()
}

func (l *Loop) notify() {
	select {
	case l.wake <- struct{}{}:
	default:
	}
}

// task is one unit of cooperative work backed by a goroutine that only runs
// while it holds the loop's turn. The goroutine is started on first step.
type task struct {
	loop *Loop
	fn   func(co *Co)

	started  bool
	panicked any

	resume chan struct{}
	yield  chan struct{}
}

// step hands the turn to t and waits until t parks or finishes.
func (t *task) step() {
	if !t.started {
		t.started = true
		go t.run()
	} else {
		t.resume <- struct{}{}
	}
	<-t.yield

	if p := t.panicked; p != nil {
		t.panicked = nil
		panic(p)
	}
}

func (t *task) run() {
	defer func() {
		if p := recover(); p != nil {
			t.panicked = p
		}
		t.loop.mu.Lock()
		t.loop.live--
		t.loop.mu.Unlock()
		t.yield <- struct{}{}
	}()

	t.fn(&Co{task: t})
}

// park gives the turn back to the driver and blocks until resumed.
func (t *task) park() {
	t.yield <- struct{}{}
	<-t.resume
}

// timer is a sleeping task ordered by wake time, then by sleep order.
type timer struct {
	at   time.Time
	seq  uint64
	task *task
}

type timerQueue []*timer

func (q timerQueue) Len() int { return len(q) }

func (q timerQueue) Less(i, j int) bool {
	if q[i].at.Equal(q[j].at) {
		return q[i].seq < q[j].seq
	}
	return q[i].at.Before(q[j].at)
}

func (q timerQueue) Swap(i, j int) { q[i], q[j] = q[j], q[i] }

func (q *timerQueue) Push(x any) { *q = append(*q, x.(*timer)) }

func (q *timerQueue) Pop() any {
	old := *q
	n := len(old)
	tm := old[n-1]
	old[n-1] = nil
	*q = old[:n-1]
	return tm
}
