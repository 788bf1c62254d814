package render

import (
	"context"
	"fmt"
	"math"
	"time"

	"github.com/slok/asyncviz/internal/log"
	"github.com/slok/asyncviz/internal/model"
	"github.com/slok/asyncviz/internal/schedule"
)

// ServiceConfig is the configuration for the render service.
type ServiceConfig struct {
	Scene   model.Scene
	TimeNow func() time.Time
	Logger  log.Logger
}

func (c *ServiceConfig) defaults() error {
	if err := c.Scene.Validate(); err != nil {
		return fmt.Errorf("invalid scene: %w", err)
	}

	if c.TimeNow == nil {
		c.TimeNow = time.Now
	}

	if c.Logger == nil {
		c.Logger = log.Noop
	}
	c.Logger = c.Logger.WithValues(log.Kv{"svc": "app.Render"})

	return nil
}

// Service computes single frames without running a session.
type Service struct {
	scene   model.Scene
	timeNow func() time.Time
	logger  log.Logger
}

// NewService creates a new render service.
func NewService(cfg ServiceConfig) (*Service, error) {
	if err := cfg.defaults(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return &Service{
		scene:   cfg.Scene,
		timeNow: cfg.TimeNow,
		logger:  cfg.Logger,
	}, nil
}

// Request represents the render request parameters.
type Request struct {
	Step int
	// RotationAngle is the rotation clock angle in degrees.
	RotationAngle float64
	// Elapsed is used instead of RotationAngle when set: the angle the rotation
	// clock reaches after running for that long.
	Elapsed time.Duration
}

// Run returns the frame reached moving the step control from the first step to
// the requested one.
func (s *Service) Run(ctx context.Context, req Request) (*model.Frame, error) {
	if err := schedule.ValidateStep(s.scene, req.Step); err != nil {
		return nil, fmt.Errorf("invalid request: %w", err)
	}

	if math.IsNaN(req.RotationAngle) || math.IsInf(req.RotationAngle, 0) {
		return nil, fmt.Errorf("invalid request: rotation angle must be a finite number: %w", model.ErrNotValid)
	}

	if req.Elapsed < 0 {
		return nil, fmt.Errorf("invalid request: elapsed can't be negative: %w", model.ErrNotValid)
	}

	angle := req.RotationAngle
	if req.Elapsed > 0 {
		ticks := int64(req.Elapsed / s.scene.TickInterval)
		angle = float64(ticks) * s.scene.AngleIncrement
		s.logger.Debugf("%d rotation ticks in %s", ticks, req.Elapsed)
	}

	state, err := schedule.Replay(s.scene, req.Step, angle)
	if err != nil {
		return nil, fmt.Errorf("could not compute state: %w", err)
	}

	frame := schedule.NewFrame(s.scene, state, schedule.FrameInfo{StartedAt: s.timeNow().UTC()})
	s.logger.Debugf("Rendered step %d at %.2f°: %s", frame.Step, frame.RotationAngle, frame.Caption)

	return &frame, nil
}
