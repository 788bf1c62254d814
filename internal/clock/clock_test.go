package clock_test

import (
	"context"
	"math"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/slok/asyncviz/internal/clock"
	"github.com/slok/asyncviz/internal/model"
)

func TestAdvance(t *testing.T) {
	tests := map[string]struct {
		angle     float64
		increment float64
		exp       float64
	}{
		"A small increment should be added.": {
			angle:     10,
			increment: 0.2,
			exp:       10.2,
		},
		"Reaching 360 should wrap to 0.": {
			angle:     359.75,
			increment: 0.25,
			exp:       0,
		},
		"Passing 360 should wrap.": {
			angle:     359.75,
			increment: 0.5,
			exp:       0.25,
		},
		"A zero increment should keep the angle.": {
			angle:     42,
			increment: 0,
			exp:       42,
		},
	}

	for name, test := range tests {
		t.Run(name, func(t *testing.T) {
			assert.InDelta(t, test.exp, clock.Advance(test.angle, test.increment), 1e-9)
		})
	}
}

func TestAdvanceManyTicks(t *testing.T) {
	const (
		initial   = 17.0
		increment = 0.2
	)

	angle := initial
	for k := 1; k <= 5000; k++ {
		angle = clock.Advance(angle, increment)

		require.GreaterOrEqual(t, angle, 0.0)
		require.Less(t, angle, 360.0)

		exp := math.Mod(initial+float64(k)*increment, 360)
		// Accumulated float error stays tiny, compare on the circle.
		diff := math.Abs(exp - angle)
		diff = math.Min(diff, 360-diff)
		require.InDelta(t, 0, diff, 1e-6, "tick %d", k)
	}
}

// manualTicker is a ticker controlled by the test.
type manualTicker struct {
	ticks   chan time.Time
	stopped bool
	mu      sync.Mutex
}

func newManualTicker() *manualTicker {
	return &manualTicker{ticks: make(chan time.Time)}
}

func (m *manualTicker) TickerFunc(time.Duration) (<-chan time.Time, func()) {
	return m.ticks, func() {
		m.mu.Lock()
		defer m.mu.Unlock()
		m.stopped = true
	}
}

func (m *manualTicker) isStopped() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.stopped
}

func TestClockRun(t *testing.T) {
	require := require.New(t)
	assert := assert.New(t)

	ticker := newManualTicker()
	var mu sync.Mutex
	var got []float64

	c, err := clock.New(clock.Config{
		Interval:   50 * time.Millisecond,
		Increment:  0.5,
		Initial:    359,
		TickerFunc: ticker.TickerFunc,
		OnTick: func(angle float64) {
			mu.Lock()
			defer mu.Unlock()
			got = append(got, angle)
		},
	})
	require.NoError(err)

	errC := make(chan error, 1)
	go func() { errC <- c.Run(context.Background()) }()

	// Unbuffered sends return once the loop has received the tick.
	for i := 0; i < 3; i++ {
		ticker.ticks <- time.Now()
	}

	c.Stop()
	require.NoError(<-errC)
	assert.True(ticker.isStopped())

	mu.Lock()
	defer mu.Unlock()
	require.Len(got, 3)
	assert.InDelta(359.5, got[0], 1e-9)
	assert.InDelta(0, got[1], 1e-9)
	assert.InDelta(0.5, got[2], 1e-9)
	assert.InDelta(0.5, c.Angle(), 1e-9)
}

func TestClockNoTickAfterStop(t *testing.T) {
	require := require.New(t)

	ticker := newManualTicker()
	var mu sync.Mutex
	stopped := false
	ticksAfterStop := 0

	c, err := clock.New(clock.Config{
		Interval:   time.Millisecond,
		Increment:  1,
		TickerFunc: ticker.TickerFunc,
		OnTick: func(float64) {
			mu.Lock()
			defer mu.Unlock()
			if stopped {
				ticksAfterStop++
			}
		},
	})
	require.NoError(err)

	errC := make(chan error, 1)
	go func() { errC <- c.Run(context.Background()) }()
	ticker.ticks <- time.Now()

	c.Stop()
	mu.Lock()
	stopped = true
	mu.Unlock()

	// Nobody reads the ticker anymore.
	select {
	case ticker.ticks <- time.Now():
		t.Fatal("tick delivered after stop")
	case <-time.After(20 * time.Millisecond):
	}

	require.NoError(<-errC)
	mu.Lock()
	defer mu.Unlock()
	require.Zero(ticksAfterStop)
}

func TestClockStopBeforeRun(t *testing.T) {
	require := require.New(t)

	c, err := clock.New(clock.Config{Interval: time.Millisecond, Increment: 1})
	require.NoError(err)

	c.Stop()
	c.Stop()
	require.NoError(c.Run(context.Background()))
	require.Zero(c.Angle())
}

func TestNewInvalidConfig(t *testing.T) {
	_, err := clock.New(clock.Config{})
	assert.Error(t, err)
}

func TestClockAlreadyStartedError(t *testing.T) {
	c, err := clock.New(clock.Config{Interval: time.Millisecond})
	require.NoError(t, err)
	c.Stop()
	require.NoError(t, c.Run(context.Background()))

	err = c.Run(context.Background())
	assert.ErrorIs(t, err, model.ErrAlreadyStarted)
}
