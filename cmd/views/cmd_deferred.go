package main

import (
	"os"

	"go.n16f.net/program"

	"github.com/bjaus/views/deferred"
)

func cmdDeferred(p *program.Program) {
	cfg := loadConfig(p)
	logger := newLogger(os.Stderr, p.IsOptionSet("debug"))

	ctx, stop := signalContext()
	defer stop()

	producer := deferred.Producer[int]{
		Delay: cfg.Deferred.Delay,
		Value: cfg.Deferred.Value,
	}

	logger.DebugContext(ctx, "producing value", "delay", producer.Delay, "value", producer.Value)

	loop := deferred.New()
	result := deferred.Spawn(loop, func(co *deferred.Co) error {
		return deferred.Consume(co, producer, os.Stdout)
	})

	if err := loop.Run(ctx); err != nil {
		p.Fatal("cannot run loop: %v", err)
	}

	if err, _ := result.Value(); err != nil {
		p.Fatal("%v", err)
	}
}
