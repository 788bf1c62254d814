package schedule

import (
	"time"

	"github.com/slok/asyncviz/internal/model"
)

// FrameInfo is the session information attached to a frame.
type FrameInfo struct {
	SessionID string
	StartedAt time.Time
}

// NewFrame returns the render contract of a state.
func NewFrame(scene model.Scene, state State, info FrameInfo) model.Frame {
	markers := make([]model.Point, 0, scene.NumTasks())
	for i := 0; i < scene.NumTasks(); i++ {
		markers = append(markers, AwaitPoint(scene, OrbitPosition(scene, scene.BaseAngle(i), state.RotationAngle)))
	}

	return model.Frame{
		SessionID:     info.SessionID,
		Step:          state.Step,
		TotalSteps:    scene.TotalSteps(),
		RotationAngle: state.RotationAngle,
		Caption:       Caption(state.Step),
		Tasks:         state.Clone().Tasks,
		AwaitMarkers:  markers,
		Scene:         scene,
		StartedAt:     info.StartedAt,
	}
}
