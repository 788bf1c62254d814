package model

// TaskStatus represents the scheduling state of a task.
type TaskStatus string

const (
	TaskStatusWaiting   TaskStatus = "waiting"
	TaskStatusRunning   TaskStatus = "running"
	TaskStatusAwaiting  TaskStatus = "awaiting"
	TaskStatusCompleted TaskStatus = "completed"
)

// TaskStatuses are all the known task statuses in lifecycle order.
var TaskStatuses = []TaskStatus{
	TaskStatusWaiting,
	TaskStatusRunning,
	TaskStatusAwaiting,
	TaskStatusCompleted,
}

// Point is a position on the drawing plane.
type Point struct {
	X float64
	Y float64
}

// Task represents a cooperative task taking turns on the event loop.
type Task struct {
	// ID is 1-based and stable for the lifetime of a session.
	ID   int
	Name string
	// BaseAngle is the fixed orbit angle in degrees before rotation is applied.
	BaseAngle float64
	Status    TaskStatus
	Position  Point
}
