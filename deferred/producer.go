package deferred

import (
	"fmt"
	"io"
	"time"
)

// Defaults for a Producer.
const (
	DefaultDelay = time.Second
	DefaultValue = 123
)

// Producer suspends for Delay and then yields Value. It has no failure
// path and cannot be cancelled once started.
type Producer[T any] struct {
	Delay time.Duration
	Value T
}

// NewProducer returns a producer with the default delay and value.
func NewProducer() Producer[int] {
	return Producer[int]{Delay: DefaultDelay, Value: DefaultValue}
}

// Produce parks the calling task for p.Delay and returns p.Value.
func (p Producer[T]) Produce(co *Co) T {
	co.Sleep(p.Delay)
	return p.Value
}

// Consume awaits p and writes the produced value to w as a single
// ">> value" line.
func Consume[T any](co *Co, p Producer[T], w io.Writer) error {
	v := p.Produce(co)
	if _, err := fmt.Fprintln(w, ">>", v); err != nil {
		return fmt.Errorf("deferred: write value: %w", err)
	}
	return nil
}
