package schedule

import (
	"fmt"
	"math"

	"github.com/slok/asyncviz/internal/clock"
	"github.com/slok/asyncviz/internal/geometry"
	"github.com/slok/asyncviz/internal/model"
)

// State is an immutable snapshot of the visualisation. Functions in this package
// return new states, they never modify the received one.
type State struct {
	Step          int
	RotationAngle float64
	Tasks         []model.Task
}

// Clone returns a deep copy of the state.
func (s State) Clone() State {
	tasks := make([]model.Task, len(s.Tasks))
	copy(tasks, s.Tasks)
	s.Tasks = tasks
	return s
}

// NewState returns the state at step 0 with no rotation.
func NewState(scene model.Scene) (State, error) {
	if err := scene.Validate(); err != nil {
		return State{}, fmt.Errorf("invalid scene: %w", err)
	}

	tasks, err := Derive(scene, 0, 0, InitialTasks(scene))
	if err != nil {
		return State{}, err
	}

	return State{Step: 0, RotationAngle: 0, Tasks: tasks}, nil
}

// ApplyStep returns the state at step keeping the current rotation. The prior
// statuses are the ones of state, no intermediate steps are applied.
func ApplyStep(scene model.Scene, state State, step int) (State, error) {
	tasks, err := Derive(scene, step, state.RotationAngle, state.Tasks)
	if err != nil {
		return State{}, err
	}

	return State{Step: step, RotationAngle: state.RotationAngle, Tasks: tasks}, nil
}

// Rotate returns the state with the rotation angle set to angle.
func Rotate(scene model.Scene, state State, angle float64) (State, error) {
	if math.IsNaN(angle) || math.IsInf(angle, 0) {
		return State{}, fmt.Errorf("rotation angle must be a finite number, got: %v: %w", angle, model.ErrNotValid)
	}

	angle = geometry.NormalizeAngle(angle)
	tasks, err := Derive(scene, state.Step, angle, state.Tasks)
	if err != nil {
		return State{}, err
	}

	return State{Step: state.Step, RotationAngle: angle, Tasks: tasks}, nil
}

// AdvanceClock returns the state after a single rotation clock tick.
func AdvanceClock(scene model.Scene, state State) (State, error) {
	return Rotate(scene, state, clock.Advance(state.RotationAngle, scene.AngleIncrement))
}

// WalkTo moves state to target one step at a time, the way a single step range
// control does. Each intermediate step is applied so completions along the way are kept.
func WalkTo(scene model.Scene, state State, target int) (State, error) {
	if err := ValidateStep(scene, target); err != nil {
		return State{}, err
	}

	if state.Step == target {
		return ApplyStep(scene, state, target)
	}

	dir := 1
	if target < state.Step {
		dir = -1
	}

	var err error
	for state.Step != target {
		state, err = ApplyStep(scene, state, state.Step+dir)
		if err != nil {
			return State{}, err
		}
	}

	return state, nil
}

// Replay returns the state reached from a fresh visualisation by moving the step
// control from 0 to step at the rotation angle.
func Replay(scene model.Scene, step int, angle float64) (State, error) {
	state, err := NewState(scene)
	if err != nil {
		return State{}, err
	}

	state, err = Rotate(scene, state, angle)
	if err != nil {
		return State{}, err
	}

	return WalkTo(scene, state, step)
}
