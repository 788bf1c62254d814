package schedule_test

import (
	"fmt"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/slok/asyncviz/internal/geometry"
	"github.com/slok/asyncviz/internal/model"
	"github.com/slok/asyncviz/internal/schedule"
)

const tolerance = 1e-9

func assertPoint(t *testing.T, exp, got model.Point, msgAndArgs ...any) {
	t.Helper()
	assert.InDelta(t, exp.X, got.X, tolerance, msgAndArgs...)
	assert.InDelta(t, exp.Y, got.Y, tolerance, msgAndArgs...)
}

func orbit(scene model.Scene, base, rotation float64) model.Point {
	return geometry.Position(base+rotation, scene.Radius, scene.Center)
}

func TestDeriveScenarios(t *testing.T) {
	scene := model.DefaultScene()
	center := scene.Center
	const rotation = 33.4

	tests := map[string]struct {
		step        int
		expStatuses []model.TaskStatus
		expPosition func() []model.Point
	}{
		"Step 0 should start the first task on the event loop.": {
			step:        0,
			expStatuses: []model.TaskStatus{model.TaskStatusRunning, model.TaskStatusWaiting, model.TaskStatusWaiting},
			expPosition: func() []model.Point {
				return []model.Point{center, orbit(scene, 120, rotation), orbit(scene, 240, rotation)}
			},
		},
		"Step 1 should leave the first task on its await point.": {
			step:        1,
			expStatuses: []model.TaskStatus{model.TaskStatusAwaiting, model.TaskStatusWaiting, model.TaskStatusWaiting},
			expPosition: func() []model.Point {
				o := orbit(scene, 0, rotation)
				mid := model.Point{X: center.X + 0.5*(o.X-center.X), Y: center.Y + 0.5*(o.Y-center.Y)}
				return []model.Point{mid, orbit(scene, 120, rotation), orbit(scene, 240, rotation)}
			},
		},
		"Step 2 should resume the first task on the event loop.": {
			step:        2,
			expStatuses: []model.TaskStatus{model.TaskStatusRunning, model.TaskStatusWaiting, model.TaskStatusWaiting},
			expPosition: func() []model.Point {
				return []model.Point{center, orbit(scene, 120, rotation), orbit(scene, 240, rotation)}
			},
		},
		"Step 3 should complete the first task on its orbit.": {
			step:        3,
			expStatuses: []model.TaskStatus{model.TaskStatusCompleted, model.TaskStatusWaiting, model.TaskStatusWaiting},
			expPosition: func() []model.Point {
				return []model.Point{orbit(scene, 0, rotation), orbit(scene, 120, rotation), orbit(scene, 240, rotation)}
			},
		},
		"Step 4 should keep the first task completed and start the second one.": {
			step:        4,
			expStatuses: []model.TaskStatus{model.TaskStatusCompleted, model.TaskStatusRunning, model.TaskStatusWaiting},
			expPosition: func() []model.Point {
				return []model.Point{orbit(scene, 0, rotation), center, orbit(scene, 240, rotation)}
			},
		},
		"Step 11 should have all the tasks completed.": {
			step:        11,
			expStatuses: []model.TaskStatus{model.TaskStatusCompleted, model.TaskStatusCompleted, model.TaskStatusCompleted},
			expPosition: func() []model.Point {
				return []model.Point{orbit(scene, 0, rotation), orbit(scene, 120, rotation), orbit(scene, 240, rotation)}
			},
		},
	}

	for name, test := range tests {
		t.Run(name, func(t *testing.T) {
			require := require.New(t)
			assert := assert.New(t)

			state, err := schedule.Replay(scene, test.step, rotation)
			require.NoError(err)

			require.Len(state.Tasks, 3)
			assert.Equal(test.step, state.Step)
			for i, task := range state.Tasks {
				assert.Equal(i+1, task.ID)
				assert.Equal(scene.TaskNames[i], task.Name)
				assert.Equal(test.expStatuses[i], task.Status, "task %d", task.ID)
				assertPoint(t, test.expPosition()[i], task.Position, "task %d", task.ID)
			}
		})
	}
}

func TestDeriveSingleActiveTask(t *testing.T) {
	scene := model.DefaultScene()

	for step := 0; step <= scene.MaxStep(); step++ {
		state, err := schedule.Replay(scene, step, 0)
		require.NoError(t, err)

		active, phase := schedule.ActiveTask(step)
		require.Contains(t, []int{0, 1, 2}, active)

		for i, task := range state.Tasks {
			switch {
			case i == active && phase != 3:
				assert.Contains(t, []model.TaskStatus{model.TaskStatusRunning, model.TaskStatusAwaiting}, task.Status)
			case i == active:
				assert.Equal(t, model.TaskStatusCompleted, task.Status)
			default:
				assert.Contains(t, []model.TaskStatus{model.TaskStatusWaiting, model.TaskStatusCompleted}, task.Status, "step %d task %d", step, task.ID)
			}
		}
	}
}

func TestCompletedNeverRegresses(t *testing.T) {
	scene := model.DefaultScene()
	require := require.New(t)

	state, err := schedule.NewState(scene)
	require.NoError(err)

	completedAt := map[int]int{}
	for step := 0; step <= scene.MaxStep(); step++ {
		state, err = schedule.ApplyStep(scene, state, step)
		require.NoError(err)
		// Rotation in between must not change statuses.
		state, err = schedule.AdvanceClock(scene, state)
		require.NoError(err)

		for _, task := range state.Tasks {
			if first, ok := completedAt[task.ID]; ok {
				require.Equal(model.TaskStatusCompleted, task.Status, "task %d completed at %d, regressed at %d", task.ID, first, step)
			}
			if task.Status == model.TaskStatusCompleted {
				if _, ok := completedAt[task.ID]; !ok {
					completedAt[task.ID] = step
				}
			}
		}
	}

	require.Equal(map[int]int{1: 3, 2: 7, 3: 11}, completedAt)
}

func TestMovingBack(t *testing.T) {
	scene := model.DefaultScene()

	tests := map[string]struct {
		move        func(state schedule.State) (schedule.State, error)
		expStatuses []model.TaskStatus
	}{
		"Walking back step by step should replay the turns of the later tasks.": {
			move: func(state schedule.State) (schedule.State, error) {
				return schedule.WalkTo(scene, state, 0)
			},
			expStatuses: []model.TaskStatus{model.TaskStatusRunning, model.TaskStatusWaiting, model.TaskStatusWaiting},
		},
		"Jumping back should keep the completion of the other tasks.": {
			move: func(state schedule.State) (schedule.State, error) {
				return schedule.ApplyStep(scene, state, 0)
			},
			expStatuses: []model.TaskStatus{model.TaskStatusRunning, model.TaskStatusCompleted, model.TaskStatusCompleted},
		},
	}

	for name, test := range tests {
		t.Run(name, func(t *testing.T) {
			require := require.New(t)

			state, err := schedule.Replay(scene, 11, 0)
			require.NoError(err)

			state, err = test.move(state)
			require.NoError(err)

			require.Equal(0, state.Step)
			for i, task := range state.Tasks {
				require.Equal(test.expStatuses[i], task.Status, "task %d", task.ID)
			}
		})
	}
}

func TestApplyStepDoesNotWalk(t *testing.T) {
	scene := model.DefaultScene()
	require := require.New(t)

	state, err := schedule.NewState(scene)
	require.NoError(err)

	state, err = schedule.ApplyStep(scene, state, 11)
	require.NoError(err)

	require.Equal(model.TaskStatusWaiting, state.Tasks[0].Status)
	require.Equal(model.TaskStatusWaiting, state.Tasks[1].Status)
	require.Equal(model.TaskStatusCompleted, state.Tasks[2].Status)
}

func TestCompletedTasksKeepOrbiting(t *testing.T) {
	scene := model.DefaultScene()
	require := require.New(t)

	state, err := schedule.Replay(scene, 5, 0)
	require.NoError(err)
	before := state.Tasks[0].Position

	state, err = schedule.Rotate(scene, state, 90)
	require.NoError(err)

	require.Equal(model.TaskStatusCompleted, state.Tasks[0].Status)
	require.NotEqual(before, state.Tasks[0].Position)
	assertPoint(t, orbit(scene, 0, 90), state.Tasks[0].Position)
}

func TestDeriveIsDeterministic(t *testing.T) {
	scene := model.DefaultScene()
	require := require.New(t)

	prior := schedule.InitialTasks(scene)
	prior[1].Status = model.TaskStatusCompleted

	a, err := schedule.Derive(scene, 9, 271.6, prior)
	require.NoError(err)
	b, err := schedule.Derive(scene, 9, 271.6, prior)
	require.NoError(err)

	require.Equal(a, b)
	// Prior is not modified.
	require.Equal(model.TaskStatusWaiting, prior[0].Status)
}

func TestDeriveInvalid(t *testing.T) {
	scene := model.DefaultScene()

	tests := map[string]struct {
		step  int
		prior []model.Task
	}{
		"A negative step should fail.": {
			step:  -1,
			prior: schedule.InitialTasks(scene),
		},
		"A step after the last one should fail.": {
			step:  12,
			prior: schedule.InitialTasks(scene),
		},
		"A prior list with a different number of tasks should fail.": {
			step:  0,
			prior: schedule.InitialTasks(scene)[:2],
		},
	}

	for name, test := range tests {
		t.Run(name, func(t *testing.T) {
			_, err := schedule.Derive(scene, test.step, 0, test.prior)
			assert.ErrorIs(t, err, model.ErrNotValid)
		})
	}
}

func TestRotateRejectsNonFiniteAngles(t *testing.T) {
	scene := model.DefaultScene()

	tests := map[string]struct {
		angle float64
	}{
		"NaN should fail.":               {angle: math.NaN()},
		"Positive infinity should fail.": {angle: math.Inf(1)},
		"Negative infinity should fail.": {angle: math.Inf(-1)},
	}

	for name, test := range tests {
		t.Run(name, func(t *testing.T) {
			state, err := schedule.NewState(scene)
			require.NoError(t, err)

			_, err = schedule.Rotate(scene, state, test.angle)
			assert.ErrorIs(t, err, model.ErrNotValid)
		})
	}
}

func TestClampStep(t *testing.T) {
	scene := model.DefaultScene()

	assert.Equal(t, 0, schedule.ClampStep(scene, -3))
	assert.Equal(t, 7, schedule.ClampStep(scene, 7))
	assert.Equal(t, 11, schedule.ClampStep(scene, 99))
}

func TestAdvanceClockKeepsAngleInRange(t *testing.T) {
	scene := model.DefaultScene()
	scene.AngleIncrement = 7.5
	require := require.New(t)

	state, err := schedule.NewState(scene)
	require.NoError(err)

	for k := 1; k <= 200; k++ {
		state, err = schedule.AdvanceClock(scene, state)
		require.NoError(err)
		require.GreaterOrEqual(state.RotationAngle, 0.0)
		require.Less(state.RotationAngle, 360.0)
		require.InDelta(float64(k)*7.5-360*float64(int(float64(k)*7.5/360)), state.RotationAngle, 1e-9)
	}
}

func TestCaption(t *testing.T) {
	exp := []string{
		"Task 1 starts execution",
		"Task 1 reaches await point",
		"Task 1 resumes execution",
		"Task 1 completes",
		"Task 2 starts execution",
		"Task 2 reaches await point",
		"Task 2 resumes execution",
		"Task 2 completes",
		"Task 3 starts execution",
		"Task 3 reaches await point",
		"Task 3 resumes execution",
		"Task 3 completes",
	}

	for step, caption := range exp {
		t.Run(fmt.Sprintf("step %d", step), func(t *testing.T) {
			assert.Equal(t, caption, schedule.Caption(step))
		})
	}
}

func TestNewFrame(t *testing.T) {
	scene := model.DefaultScene()
	require := require.New(t)
	assert := assert.New(t)

	state, err := schedule.Replay(scene, 9, 45)
	require.NoError(err)

	frame := schedule.NewFrame(scene, state, schedule.FrameInfo{SessionID: "01HZX"})

	assert.Equal("01HZX", frame.SessionID)
	assert.Equal(9, frame.Step)
	assert.Equal(12, frame.TotalSteps)
	assert.Equal("Task 3 reaches await point", frame.Caption)
	assert.InDelta(45, frame.RotationAngle, tolerance)
	require.Len(frame.AwaitMarkers, 3)
	for i, marker := range frame.AwaitMarkers {
		// Markers sit halfway to the orbit.
		assert.InDelta(scene.Radius/2, geometry.Distance(scene.Center, marker), 1e-6, "marker %d", i)
	}
	// The awaiting task sits on its marker.
	assertPoint(t, frame.AwaitMarkers[2], frame.Tasks[2].Position)

	// The frame does not share memory with the state.
	frame.Tasks[0].Status = model.TaskStatusRunning
	assert.Equal(model.TaskStatusCompleted, state.Tasks[0].Status)
}
