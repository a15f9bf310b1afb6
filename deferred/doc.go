// Package deferred runs units of work on a single-threaded cooperative
// loop. A task holds the loop's only turn while it runs and gives it up at
// suspension points: sleeping on the loop's clock or awaiting another task.
// Nothing runs until the loop is driven with Run or RunUntilIdle, so a task
// that is spawned and never driven has no observable effect.
//
//	loop := deferred.New()
//	deferred.Spawn(loop, func(co *deferred.Co) error {
//	    return deferred.Consume(co, deferred.Producer[int]{Delay: time.Second, Value: 123}, os.Stdout)
//	})
//	if err := loop.Run(ctx); err != nil {
//	    ...
//	}
//
// Time comes from a clock.Clock, so tests can swap in clock.NewMock and
// step through delays with RunUntilIdle instead of waiting on the wall clock.
package deferred
