package session

import (
	"context"
	"crypto/rand"
	"fmt"
	"sync"
	"time"

	"github.com/oklog/ulid/v2"

	"github.com/slok/asyncviz/internal/clock"
	"github.com/slok/asyncviz/internal/log"
	"github.com/slok/asyncviz/internal/model"
	"github.com/slok/asyncviz/internal/schedule"
)

// ServiceConfig is the configuration for the session service.
type ServiceConfig struct {
	Scene model.Scene
	// InitialStep is the step the session starts on.
	InitialStep int
	// TickerFunc is the rotation clock ticker, by default a real time ticker.
	TickerFunc clock.TickerFunc
	TimeNow    func() time.Time
	Logger     log.Logger
}

func (c *ServiceConfig) defaults() error {
	if err := c.Scene.Validate(); err != nil {
		return fmt.Errorf("invalid scene: %w", err)
	}

	if err := schedule.ValidateStep(c.Scene, c.InitialStep); err != nil {
		return fmt.Errorf("invalid initial step: %w", err)
	}

	if c.TimeNow == nil {
		c.TimeNow = time.Now
	}

	if c.Logger == nil {
		c.Logger = log.Noop
	}
	c.Logger = c.Logger.WithValues(log.Kv{"svc": "app.Session"})

	return nil
}

// stepCmd asks the session loop to move the step control.
type stepCmd struct {
	// step returns the target step based on the current one.
	step func(current int) (int, error)
	resp chan stepResult
}

type stepResult struct {
	frame model.Frame
	err   error
}

// Service is a running visualisation: it owns the rotation clock and the step
// control, and recomputes the tasks on every change from a single loop.
type Service struct {
	id         string
	scene      model.Scene
	tickerFunc clock.TickerFunc
	startedAt  time.Time
	logger     log.Logger

	tickC chan float64
	cmdC  chan stepCmd
	doneC chan struct{}

	mu      sync.RWMutex
	state   schedule.State
	frame   model.Frame
	running bool
	stopped bool
	subs    map[int]chan model.Frame
	nextSub int
}

// NewService creates a new session service.
func NewService(cfg ServiceConfig) (*Service, error) {
	if err := cfg.defaults(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	state, err := schedule.NewState(cfg.Scene)
	if err != nil {
		return nil, fmt.Errorf("could not create initial state: %w", err)
	}

	state, err = schedule.WalkTo(cfg.Scene, state, cfg.InitialStep)
	if err != nil {
		return nil, fmt.Errorf("could not move to initial step: %w", err)
	}

	startedAt := cfg.TimeNow().UTC()
	id := ulid.MustNew(ulid.Timestamp(startedAt), rand.Reader).String()

	s := &Service{
		id:         id,
		scene:      cfg.Scene,
		tickerFunc: cfg.TickerFunc,
		startedAt:  startedAt,
		logger:     cfg.Logger.WithValues(log.Kv{"session": id}),
		tickC:      make(chan float64),
		cmdC:       make(chan stepCmd),
		doneC:      make(chan struct{}),
		subs:       map[int]chan model.Frame{},
	}
	s.setState(state)

	return s, nil
}

// ID returns the session ID.
func (s *Service) ID() string { return s.id }

// Scene returns the scene the session is visualising.
func (s *Service) Scene() model.Scene { return s.scene }

// Run starts the rotation clock and processes the clock ticks and step changes
// until the context is cancelled. A session can only run once.
func (s *Service) Run(ctx context.Context) error {
	s.mu.Lock()
	if s.running {
		s.mu.Unlock()
		return fmt.Errorf("session %s: %w", s.id, model.ErrAlreadyStarted)
	}
	s.running = true
	initialAngle := s.state.RotationAngle
	s.mu.Unlock()
	defer close(s.doneC)

	ctx, cancel := context.WithCancel(ctx)

	clk, err := clock.New(clock.Config{
		Interval:   s.scene.TickInterval,
		Increment:  s.scene.AngleIncrement,
		Initial:    initialAngle,
		TickerFunc: s.tickerFunc,
		Logger:     s.logger,
		OnTick: func(angle float64) {
			select {
			case s.tickC <- angle:
			case <-ctx.Done():
			}
		},
	})
	if err != nil {
		cancel()
		return fmt.Errorf("could not create rotation clock: %w", err)
	}

	clockErrC := make(chan error, 1)
	go func() { clockErrC <- clk.Run(ctx) }()

	// The clock may be blocked handing a tick to the loop, cancel first so Stop can't deadlock.
	defer func() {
		cancel()
		clk.Stop()
		s.closeSubscribers()
	}()

	s.logger.Infof("Session started with %d tasks", s.scene.NumTasks())

	for {
		select {
		case <-ctx.Done():
			s.logger.Infof("Session stopped")
			return nil

		case err := <-clockErrC:
			if err != nil {
				return fmt.Errorf("rotation clock failed: %w", err)
			}
			return nil

		case angle := <-s.tickC:
			state, err := schedule.Rotate(s.scene, s.currentState(), angle)
			if err != nil {
				return fmt.Errorf("could not rotate: %w", err)
			}
			s.setState(state)

		case cmd := <-s.cmdC:
			cmd.resp <- s.handleStep(cmd)
		}
	}
}

func (s *Service) handleStep(cmd stepCmd) stepResult {
	current := s.currentState()

	target, err := cmd.step(current.Step)
	if err != nil {
		return stepResult{err: err}
	}

	state, err := schedule.WalkTo(s.scene, current, target)
	if err != nil {
		return stepResult{err: err}
	}

	frame := s.setState(state)
	s.logger.Debugf("Step %d: %s", frame.Step, frame.Caption)

	return stepResult{frame: frame}
}

// SetStep moves the step control to step, passing through every intermediate step.
func (s *Service) SetStep(ctx context.Context, step int) (model.Frame, error) {
	return s.sendStep(ctx, func(int) (int, error) {
		if err := schedule.ValidateStep(s.scene, step); err != nil {
			return 0, err
		}
		return step, nil
	})
}

// Next moves the step control one step forward, it stays on the last step.
func (s *Service) Next(ctx context.Context) (model.Frame, error) {
	return s.sendStep(ctx, func(current int) (int, error) {
		return schedule.ClampStep(s.scene, current+1), nil
	})
}

// Prev moves the step control one step back, it stays on the first step.
func (s *Service) Prev(ctx context.Context) (model.Frame, error) {
	return s.sendStep(ctx, func(current int) (int, error) {
		return schedule.ClampStep(s.scene, current-1), nil
	})
}

func (s *Service) sendStep(ctx context.Context, step func(current int) (int, error)) (model.Frame, error) {
	cmd := stepCmd{step: step, resp: make(chan stepResult, 1)}

	select {
	case s.cmdC <- cmd:
	case <-s.doneC:
		return model.Frame{}, fmt.Errorf("session %s: %w", s.id, model.ErrStopped)
	case <-ctx.Done():
		return model.Frame{}, ctx.Err()
	}

	// Once received the loop always answers.
	res := <-cmd.resp
	if res.err != nil {
		return model.Frame{}, fmt.Errorf("could not change step: %w", res.err)
	}

	return res.frame, nil
}

// Frame returns the latest frame.
func (s *Service) Frame() model.Frame {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.frame
}

// Subscribe returns a channel that receives every new frame. Slow receivers only
// get the latest frame. The channel is closed when cancel is called or the session stops.
func (s *Service) Subscribe() (frames <-chan model.Frame, cancel func()) {
	s.mu.Lock()
	defer s.mu.Unlock()

	ch := make(chan model.Frame, 1)
	ch <- s.frame

	if s.stopped {
		close(ch)
		return ch, func() {}
	}

	id := s.nextSub
	s.nextSub++
	s.subs[id] = ch

	var once sync.Once
	return ch, func() {
		once.Do(func() {
			s.mu.Lock()
			defer s.mu.Unlock()

			if c, ok := s.subs[id]; ok {
				delete(s.subs, id)
				close(c)
			}
		})
	}
}

func (s *Service) currentState() schedule.State {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.state
}

// setState stores the new state and publishes its frame.
func (s *Service) setState(state schedule.State) model.Frame {
	frame := schedule.NewFrame(s.scene, state, schedule.FrameInfo{
		SessionID: s.id,
		StartedAt: s.startedAt,
	})

	s.mu.Lock()
	defer s.mu.Unlock()

	s.state = state
	s.frame = frame
	for _, ch := range s.subs {
		// Drop the stale frame if the receiver didn't consume it.
		select {
		case <-ch:
		default:
		}
		ch <- frame
	}

	return frame
}

func (s *Service) closeSubscribers() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.stopped = true
	for id, ch := range s.subs {
		delete(s.subs, id)
		close(ch)
	}
}
