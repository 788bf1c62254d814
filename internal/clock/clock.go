// Package clock implements the rotation clock: an angle that keeps advancing on a
// fixed cadence, independent of the scheduling steps.
package clock

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/slok/asyncviz/internal/geometry"
	"github.com/slok/asyncviz/internal/log"
	"github.com/slok/asyncviz/internal/model"
)

// Advance returns angle advanced by increment degrees, wrapped to [0, 360).
func Advance(angle, increment float64) float64 {
	return geometry.NormalizeAngle(angle + increment)
}

// TickerFunc returns a channel that delivers ticks every d and a function that
// releases the ticker.
type TickerFunc func(d time.Duration) (ticks <-chan time.Time, stop func())

func timeTicker(d time.Duration) (<-chan time.Time, func()) {
	t := time.NewTicker(d)
	return t.C, t.Stop
}

// Config is the configuration for the rotation clock.
type Config struct {
	// Interval is the tick cadence.
	Interval time.Duration
	// Increment is the amount of degrees added on every tick.
	Increment float64
	// Initial is the starting angle.
	Initial float64
	// OnTick is called synchronously from the clock loop after every advance.
	// It must not call Stop.
	OnTick func(angle float64)
	// TickerFunc creates the underlying ticker, defaults to a time.Ticker.
	TickerFunc TickerFunc
	Logger     log.Logger
}

func (c *Config) defaults() error {
	if c.Interval <= 0 {
		return fmt.Errorf("interval must be positive")
	}

	if c.OnTick == nil {
		c.OnTick = func(float64) {}
	}

	if c.TickerFunc == nil {
		c.TickerFunc = timeTicker
	}

	if c.Logger == nil {
		c.Logger = log.Noop
	}
	c.Logger = c.Logger.WithValues(log.Kv{"svc": "clock.Rotation"})

	return nil
}

// Clock is the rotation clock. It can run once, and once stopped no more ticks
// are delivered.
type Clock struct {
	interval   time.Duration
	increment  float64
	onTick     func(angle float64)
	tickerFunc TickerFunc
	logger     log.Logger

	mu      sync.Mutex
	angle   float64
	started bool

	stopOnce sync.Once
	stopC    chan struct{}
	doneC    chan struct{}
}

// New returns a new rotation clock.
func New(cfg Config) (*Clock, error) {
	if err := cfg.defaults(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return &Clock{
		interval:   cfg.Interval,
		increment:  cfg.Increment,
		onTick:     cfg.OnTick,
		tickerFunc: cfg.TickerFunc,
		logger:     cfg.Logger,
		angle:      geometry.NormalizeAngle(cfg.Initial),
		stopC:      make(chan struct{}),
		doneC:      make(chan struct{}),
	}, nil
}

// Run advances the clock on every tick until the context is cancelled or Stop is called.
func (c *Clock) Run(ctx context.Context) error {
	c.mu.Lock()
	if c.started {
		c.mu.Unlock()
		return fmt.Errorf("rotation clock: %w", model.ErrAlreadyStarted)
	}
	c.started = true
	c.mu.Unlock()
	defer close(c.doneC)

	ticks, stop := c.tickerFunc(c.interval)
	defer stop()

	c.logger.Debugf("Rotation clock started (interval: %s, increment: %v)", c.interval, c.increment)
	defer c.logger.Debugf("Rotation clock stopped")

	for {
		select {
		case <-ctx.Done():
			return nil
		case <-c.stopC:
			return nil
		case <-ticks:
			// Select is random when both are ready, stop must win.
			select {
			case <-c.stopC:
				return nil
			default:
			}

			c.onTick(c.advance())
		}
	}
}

func (c *Clock) advance() float64 {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.angle = Advance(c.angle, c.increment)
	return c.angle
}

// Stop stops the clock. When Stop returns no tick is being delivered and none
// will be delivered anymore. It is safe to call it multiple times.
func (c *Clock) Stop() {
	c.stopOnce.Do(func() { close(c.stopC) })

	c.mu.Lock()
	started := c.started
	c.mu.Unlock()

	if started {
		<-c.doneC
	}
}

// Angle returns the current angle of the clock.
func (c *Clock) Angle() float64 {
	c.mu.Lock()
	defer c.mu.Unlock()

	return c.angle
}
