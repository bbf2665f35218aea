package hardware

import (
	"errors"
	"fmt"

	"github.com/sirupsen/logrus"
)

// ErrHorizonReached is returned by Clock.Run when the tick limit is hit
// before the machine was switched off.
var ErrHorizonReached = errors.New("simulation horizon reached")

// Subscriber receives every clock tick, in subscription order.
type Subscriber interface {
	Tick(tick int64) error
}

// SubscriberFunc adapts a function to Subscriber.
type SubscriberFunc func(tick int64) error

func (f SubscriberFunc) Tick(tick int64) error { return f(tick) }

// Clock emits ticks to its subscribers until stopped.
type Clock struct {
	subscribers []Subscriber
	tick        int64
	running     bool
	halted      bool
}

// NewClock creates a stopped clock at tick 0.
func NewClock() *Clock {
	return &Clock{}
}

// AddSubscriber appends s to the notification list.
func (c *Clock) AddSubscriber(s Subscriber) {
	if s == nil {
		panic("AddSubscriber: subscriber must not be nil")
	}
	c.subscribers = append(c.subscribers, s)
}

// Now returns the index of the next tick to be emitted.
func (c *Clock) Now() int64 { return c.tick }

// Tick emits a single tick. It stops at the first subscriber error.
func (c *Clock) Tick() error {
	n := c.tick
	c.tick++
	for _, s := range c.subscribers {
		if err := s.Tick(n); err != nil {
			return fmt.Errorf("tick %d: %w", n, err)
		}
		if c.halted {
			// switched off by a handler during this tick
			break
		}
	}
	return nil
}

// Run ticks until Stop is called, a subscriber fails, or maxTicks ticks have
// been emitted. maxTicks <= 0 means no limit.
func (c *Clock) Run(maxTicks int64) error {
	c.running = true
	c.halted = false
	start := c.tick
	for !c.halted {
		if maxTicks > 0 && c.tick-start >= maxTicks {
			c.running = false
			c.halted = true
			logrus.Warnf("[tick %07d] horizon of %d ticks reached", c.tick, maxTicks)
			return ErrHorizonReached
		}
		if err := c.Tick(); err != nil {
			c.running = false
			return err
		}
	}
	c.running = false
	logrus.Infof("[tick %07d] clock stopped", c.tick)
	return nil
}

// Stop ends Run after the current tick. Subscribers later in the list do not
// see the tick during which Stop was called.
func (c *Clock) Stop() { c.halted = true }

// Halted reports whether Stop has been called since the last Run.
func (c *Clock) Halted() bool { return c.halted }

// Running reports whether Run is active.
func (c *Clock) Running() bool { return c.running }
