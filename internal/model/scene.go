package model

import (
	"fmt"
	"math"
	"time"
)

// PhasesPerTask is the number of steps each task spends on the event loop:
// start, await, resume and complete.
const PhasesPerTask = 4

// Scene holds the constants of a visualisation.
type Scene struct {
	// Radius of the orbit idle tasks travel on.
	Radius float64
	// Center is the event loop hub.
	Center Point
	Width  int
	Height int
	// TickInterval is the rotation clock cadence.
	TickInterval time.Duration
	// AngleIncrement is the amount of degrees the rotation advances on every tick.
	AngleIncrement float64
	// TaskNames are the labels of the tasks in round-robin order.
	TaskNames []string
}

// DefaultScene returns the scene used when no configuration is provided.
func DefaultScene() Scene {
	return Scene{
		Radius:         180,
		Center:         Point{X: 350, Y: 350},
		Width:          700,
		Height:         700,
		TickInterval:   50 * time.Millisecond,
		AngleIncrement: 0.2,
		TaskNames: []string{
			"async def task_1()",
			"async def task_2()",
			"async def task_3()",
		},
	}
}

// NumTasks returns the number of tasks of the scene.
func (s Scene) NumTasks() int { return len(s.TaskNames) }

// TotalSteps returns the number of steps of a complete scheduling cycle.
func (s Scene) TotalSteps() int { return s.NumTasks() * PhasesPerTask }

// MaxStep returns the last valid step index.
func (s Scene) MaxStep() int { return s.TotalSteps() - 1 }

// BaseAngle returns the evenly spaced orbit angle of the task at index i (0-based).
func (s Scene) BaseAngle(i int) float64 {
	return float64(i) * 360 / float64(s.NumTasks())
}

// Validate validates the scene model.
func (s Scene) Validate() error {
	if !isFinite(s.Radius) || !isFinite(s.AngleIncrement) || !isFinite(s.Center.X) || !isFinite(s.Center.Y) {
		return fmt.Errorf("radius, center and angle increment must be finite numbers: %w", ErrNotValid)
	}

	if s.Radius <= 0 {
		return fmt.Errorf("radius must be positive, got: %v: %w", s.Radius, ErrNotValid)
	}

	if s.Width <= 0 || s.Height <= 0 {
		return fmt.Errorf("canvas size must be positive, got: %dx%d: %w", s.Width, s.Height, ErrNotValid)
	}

	if s.TickInterval <= 0 {
		return fmt.Errorf("tick interval must be positive, got: %s: %w", s.TickInterval, ErrNotValid)
	}

	if s.AngleIncrement < 0 {
		return fmt.Errorf("angle increment cannot be negative, got: %v: %w", s.AngleIncrement, ErrNotValid)
	}

	if len(s.TaskNames) == 0 {
		return fmt.Errorf("at least one task is required: %w", ErrNotValid)
	}

	for i, name := range s.TaskNames {
		if name == "" {
			return fmt.Errorf("task %d name is required: %w", i+1, ErrNotValid)
		}
	}

	return nil
}

func isFinite(f float64) bool {
	return !math.IsNaN(f) && !math.IsInf(f, 0)
}
