package model

import "time"

// Frame is the derived snapshot the presentation layer renders.
type Frame struct {
	SessionID     string
	Step          int
	TotalSteps    int
	RotationAngle float64
	Caption       string
	Tasks         []Task
	// AwaitMarkers are the await points of every orbit slot at the current rotation.
	AwaitMarkers []Point
	Scene        Scene
	StartedAt    time.Time
}
