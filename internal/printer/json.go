package printer

import (
	"encoding/json"
	"io"
	"time"

	"github.com/slok/asyncviz/internal/model"
)

// JSONPrinter prints frames in JSON format.
type JSONPrinter struct {
	writer io.Writer
}

// NewJSONPrinter creates a new JSON printer.
func NewJSONPrinter(w io.Writer) *JSONPrinter {
	return &JSONPrinter{writer: w}
}

// FrameOutput is the JSON representation of a frame.
type FrameOutput struct {
	SessionID     string        `json:"session_id,omitempty"`
	Step          int           `json:"step"`
	TotalSteps    int           `json:"total_steps"`
	RotationAngle float64       `json:"rotation_angle"`
	Caption       string        `json:"caption"`
	Tasks         []TaskOutput  `json:"tasks"`
	AwaitMarkers  []PointOutput `json:"await_markers"`
	StartedAt     *time.Time    `json:"started_at,omitempty"`
}

// TaskOutput is the JSON representation of a task.
type TaskOutput struct {
	ID       int         `json:"id"`
	Label    string      `json:"label"`
	Status   string      `json:"status"`
	Color    string      `json:"color"`
	Position PointOutput `json:"position"`
}

// PointOutput is the JSON representation of a point.
type PointOutput struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// messageOutput represents a simple message output.
type messageOutput struct {
	Message string `json:"message"`
}

// NewFrameOutput maps a frame to its JSON representation.
func NewFrameOutput(frame model.Frame) FrameOutput {
	out := FrameOutput{
		SessionID:     frame.SessionID,
		Step:          frame.Step,
		TotalSteps:    frame.TotalSteps,
		RotationAngle: frame.RotationAngle,
		Caption:       frame.Caption,
		Tasks:         make([]TaskOutput, 0, len(frame.Tasks)),
		AwaitMarkers:  make([]PointOutput, 0, len(frame.AwaitMarkers)),
	}

	for _, t := range frame.Tasks {
		out.Tasks = append(out.Tasks, TaskOutput{
			ID:       t.ID,
			Label:    t.Name,
			Status:   string(t.Status),
			Color:    StatusColor(t.Status).Name,
			Position: PointOutput{X: t.Position.X, Y: t.Position.Y},
		})
	}

	for _, p := range frame.AwaitMarkers {
		out.AwaitMarkers = append(out.AwaitMarkers, PointOutput{X: p.X, Y: p.Y})
	}

	if !frame.StartedAt.IsZero() {
		utcTime := frame.StartedAt.UTC()
		out.StartedAt = &utcTime
	}

	return out
}

// PrintFrame prints a frame in JSON format.
func (j *JSONPrinter) PrintFrame(frame model.Frame) error {
	enc := json.NewEncoder(j.writer)
	enc.SetIndent("", "  ")
	return enc.Encode(NewFrameOutput(frame))
}

// PrintMessage prints a simple message in JSON format.
func (j *JSONPrinter) PrintMessage(msg string) error {
	output := messageOutput{Message: msg}
	enc := json.NewEncoder(j.writer)
	enc.SetIndent("", "  ")
	return enc.Encode(output)
}
