package deferred_test

import (
	"context"
	"testing"
	"time"

	"github.com/benbjohnson/clock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bjaus/views/deferred"
)

func TestLoop_nothing_runs_until_driven(t *testing.T) {
	t.Parallel()

	loop := deferred.New(deferred.WithClock(clock.NewMock()))

	ran := false
	f := deferred.Spawn(loop, func(_ *deferred.Co) bool {
		ran = true
		return true
	})

	assert.False(t, ran)
	assert.False(t, f.Done())
	assert.Equal(t, 1, loop.Pending())

	assert.False(t, loop.RunUntilIdle())
	assert.True(t, ran)
	assert.Equal(t, 0, loop.Pending())
}

func TestLoop_sleepers_overlap(t *testing.T) {
	t.Parallel()

	mock := clock.NewMock()
	loop := deferred.New(deferred.WithClock(mock))

	a := deferred.Spawn(loop, deferred.Producer[string]{Delay: time.Second, Value: "a"}.Produce)
	b := deferred.Spawn(loop, deferred.Producer[string]{Delay: time.Second, Value: "b"}.Produce)

	require.True(t, loop.RunUntilIdle())

	mock.Add(time.Second)
	require.False(t, loop.RunUntilIdle())

	va, ok := a.Value()
	require.True(t, ok)
	assert.Equal(t, "a", va)

	vb, ok := b.Value()
	require.True(t, ok)
	assert.Equal(t, "b", vb)
}

func TestLoop_wake_order(t *testing.T) {
	t.Parallel()

	tests := map[string]struct {
		delays []time.Duration
		want   []int
	}{
		"shorter delay wakes first": {
			delays: []time.Duration{2 * time.Second, time.Second},
			want:   []int{1, 0},
		},
		"equal delays wake in sleep order": {
			delays: []time.Duration{time.Second, time.Second, time.Second},
			want:   []int{0, 1, 2},
		},
	}

	for name, tc := range tests {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			mock := clock.NewMock()
			loop := deferred.New(deferred.WithClock(mock))

			var order []int
			for i, d := range tc.delays {
				deferred.Spawn(loop, func(co *deferred.Co) struct{} {
					co.Sleep(d)
					order = append(order, i)
					return struct{}{}
				})
			}

			loop.RunUntilIdle()
			mock.Add(10 * time.Second)
			require.False(t, loop.RunUntilIdle())

			assert.Equal(t, tc.want, order)
		})
	}
}

func TestCo_Sleep_zero_yields(t *testing.T) {
	t.Parallel()

	loop := deferred.New(deferred.WithClock(clock.NewMock()))

	var order []string
	deferred.Spawn(loop, func(co *deferred.Co) struct{} {
		order = append(order, "a1")
		co.Sleep(0)
		order = append(order, "a2")
		return struct{}{}
	})
	deferred.Spawn(loop, func(_ *deferred.Co) struct{} {
		order = append(order, "b")
		return struct{}{}
	})

	require.False(t, loop.RunUntilIdle())
	assert.Equal(t, []string{"a1", "b", "a2"}, order)
}

func TestAwait(t *testing.T) {
	t.Parallel()

	mock := clock.NewMock()
	loop := deferred.New(deferred.WithClock(mock))

	inner := deferred.Spawn(loop, deferred.NewProducer().Produce)
	outer := deferred.Spawn(loop, func(co *deferred.Co) int {
		return deferred.Await(co, inner) * 2
	})

	loop.RunUntilIdle()
	assert.False(t, outer.Done())

	mock.Add(deferred.DefaultDelay)
	require.False(t, loop.RunUntilIdle())

	v, ok := outer.Value()
	require.True(t, ok)
	assert.Equal(t, 246, v)
}

func TestAwait_finished_future(t *testing.T) {
	t.Parallel()

	loop := deferred.New(deferred.WithClock(clock.NewMock()))

	first := deferred.Spawn(loop, func(_ *deferred.Co) string { return "ready" })
	loop.RunUntilIdle()
	require.True(t, first.Done())

	second := deferred.Spawn(loop, func(co *deferred.Co) string {
		return deferred.Await(co, first)
	})
	require.False(t, loop.RunUntilIdle())

	v, _ := second.Value()
	assert.Equal(t, "ready", v)
}

func TestAwait_across_loops_panics(t *testing.T) {
	t.Parallel()

	other := deferred.New(deferred.WithClock(clock.NewMock()))
	foreign := deferred.Spawn(other, func(_ *deferred.Co) int { return 1 })

	loop := deferred.New(deferred.WithClock(clock.NewMock()))
	deferred.Spawn(loop, func(co *deferred.Co) int {
		return deferred.Await(co, foreign)
	})

	assert.PanicsWithValue(t, "deferred: await across loops", func() {
		loop.RunUntilIdle()
	})
}

func TestLoop_task_panic_reaches_driver(t *testing.T) {
	t.Parallel()

	loop := deferred.New(deferred.WithClock(clock.NewMock()))
	deferred.Spawn(loop, func(_ *deferred.Co) int {
		panic("boom")
	})

	assert.PanicsWithValue(t, "boom", func() {
		loop.RunUntilIdle()
	})
	assert.Equal(t, 0, loop.Pending())
}

func TestLoop_Run(t *testing.T) {
	t.Parallel()

	loop := deferred.New()
	f := deferred.Spawn(loop, deferred.Producer[int]{Delay: 20 * time.Millisecond, Value: 7}.Produce)

	start := time.Now()
	require.NoError(t, loop.Run(context.Background()))

	assert.GreaterOrEqual(t, time.Since(start), 20*time.Millisecond)
	v, ok := f.Value()
	require.True(t, ok)
	assert.Equal(t, 7, v)
}

func TestLoop_Run_stalled(t *testing.T) {
	t.Parallel()

	loop := deferred.New(deferred.WithClock(clock.NewMock()))

	var b *deferred.Future[int]
	a := deferred.Spawn(loop, func(co *deferred.Co) int { return deferred.Await(co, b) })
	b = deferred.Spawn(loop, func(co *deferred.Co) int { return deferred.Await(co, a) })

	err := loop.Run(context.Background())
	require.ErrorIs(t, err, deferred.ErrStalled)
	assert.Equal(t, 2, loop.Pending())
}

func TestLoop_Run_cancelled(t *testing.T) {
	t.Parallel()

	loop := deferred.New()
	f := deferred.Spawn(loop, deferred.Producer[int]{Delay: time.Hour, Value: 1}.Produce)

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	err := loop.Run(ctx)
	require.ErrorIs(t, err, context.DeadlineExceeded)
	assert.False(t, f.Done())
	assert.Equal(t, 1, loop.Pending())
}
