// Package schedule derives the state of every task from the current step and
// rotation angle.
//
// A step selects one active task (step / PhasesPerTask) and the phase of its turn
// (step % PhasesPerTask):
//
//	phase 0: running, on the event loop (center).
//	phase 1: awaiting, halfway between the center and its orbit position.
//	phase 2: running, back on the event loop.
//	phase 3: completed, back on its orbit.
//
// Every other task follows its orbit. Completed tasks stay completed, the rest wait.
package schedule

import (
	"fmt"

	"github.com/slok/asyncviz/internal/geometry"
	"github.com/slok/asyncviz/internal/model"
)

const awaitRatio = 0.5

// ValidateStep returns an error if step is outside [0, TotalSteps-1].
func ValidateStep(scene model.Scene, step int) error {
	if step < 0 || step > scene.MaxStep() {
		return fmt.Errorf("step %d out of range [0, %d]: %w", step, scene.MaxStep(), model.ErrNotValid)
	}
	return nil
}

// ClampStep returns step limited to [0, TotalSteps-1].
func ClampStep(scene model.Scene, step int) int {
	return min(max(step, 0), scene.MaxStep())
}

// ActiveTask returns the 0-based index of the task occupying the event loop and the
// phase of its turn.
func ActiveTask(step int) (index, phase int) {
	return step / model.PhasesPerTask, step % model.PhasesPerTask
}

// InitialTasks returns the tasks of the scene before any step has been applied:
// all waiting on their orbit at no rotation.
func InitialTasks(scene model.Scene) []model.Task {
	tasks := make([]model.Task, 0, scene.NumTasks())
	for i, name := range scene.TaskNames {
		base := scene.BaseAngle(i)
		tasks = append(tasks, model.Task{
			ID:        i + 1,
			Name:      name,
			BaseAngle: base,
			Status:    model.TaskStatusWaiting,
			Position:  geometry.Position(base, scene.Radius, scene.Center),
		})
	}
	return tasks
}

// OrbitPosition returns where a task with baseAngle sits on the orbit at the rotation angle.
func OrbitPosition(scene model.Scene, baseAngle, rotationAngle float64) model.Point {
	return geometry.Position(geometry.NormalizeAngle(baseAngle+rotationAngle), scene.Radius, scene.Center)
}

// AwaitPoint returns the await point for an orbit position.
func AwaitPoint(scene model.Scene, orbit model.Point) model.Point {
	return geometry.Midpoint(scene.Center, orbit, awaitRatio)
}

// Derive returns the new task list for step and rotationAngle. Prior is only used
// to know the identity of the tasks and which ones already completed, it's not modified.
func Derive(scene model.Scene, step int, rotationAngle float64, prior []model.Task) ([]model.Task, error) {
	if err := ValidateStep(scene, step); err != nil {
		return nil, err
	}

	if len(prior) != scene.NumTasks() {
		return nil, fmt.Errorf("expected %d prior tasks, got %d: %w", scene.NumTasks(), len(prior), model.ErrNotValid)
	}

	activeIndex, phase := ActiveTask(step)

	tasks := make([]model.Task, len(prior))
	for i, t := range prior {
		orbit := OrbitPosition(scene, t.BaseAngle, rotationAngle)

		if i != activeIndex {
			t.Position = orbit
			if t.Status != model.TaskStatusCompleted {
				t.Status = model.TaskStatusWaiting
			}
			tasks[i] = t
			continue
		}

		switch phase {
		case 0: // Starts execution.
			t.Status = model.TaskStatusRunning
			t.Position = scene.Center
		case 1: // Reaches an await point.
			t.Status = model.TaskStatusAwaiting
			t.Position = AwaitPoint(scene, orbit)
		case 2: // Resumes.
			t.Status = model.TaskStatusRunning
			t.Position = scene.Center
		case 3: // Completes.
			t.Status = model.TaskStatusCompleted
			t.Position = orbit
		}
		tasks[i] = t
	}

	return tasks, nil
}

// Caption returns the human readable description of a step.
func Caption(step int) string {
	index, phase := ActiveTask(step)
	n := index + 1

	switch phase {
	case 0:
		return fmt.Sprintf("Task %d starts execution", n)
	case 1:
		return fmt.Sprintf("Task %d reaches await point", n)
	case 2:
		return fmt.Sprintf("Task %d resumes execution", n)
	case 3:
		return fmt.Sprintf("Task %d completes", n)
	}

	return ""
}
