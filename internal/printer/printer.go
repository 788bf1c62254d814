package printer

import (
	"strings"

	"github.com/slok/asyncviz/internal/model"
)

// Printer knows how to print visualisation frames in different formats.
type Printer interface {
	PrintFrame(frame model.Frame) error
	PrintMessage(msg string) error
}

// Color is a status color in the different representations the printers need.
type Color struct {
	Name string
	Hex  string
	// ANSI is the terminal escape code of the color.
	ANSI string
}

var (
	colorGreen  = Color{Name: "green", Hex: "#22c55e", ANSI: "\033[32m"}
	colorYellow = Color{Name: "yellow", Hex: "#eab308", ANSI: "\033[33m"}
	colorPurple = Color{Name: "purple", Hex: "#a855f7", ANSI: "\033[35m"}
	colorBlue   = Color{Name: "blue", Hex: "#3b82f6", ANSI: "\033[34m"}
	colorGray   = Color{Name: "gray", Hex: "#6b7280", ANSI: "\033[90m"}
)

const ansiReset = "\033[0m"

// Title returns the color name capitalized, as shown in the legend.
func (c Color) Title() string {
	if c.Name == "" {
		return ""
	}
	return strings.ToUpper(c.Name[:1]) + c.Name[1:]
}

// StatusColor returns the fixed color of a task status.
func StatusColor(status model.TaskStatus) Color {
	switch status {
	case model.TaskStatusRunning:
		return colorGreen
	case model.TaskStatusWaiting:
		return colorYellow
	case model.TaskStatusAwaiting:
		return colorPurple
	case model.TaskStatusCompleted:
		return colorBlue
	}
	return colorGray
}

// LegendEntry explains what a status color means.
type LegendEntry struct {
	Status      model.TaskStatus
	Color       Color
	Description string
}

// Legend returns the color legend in display order.
func Legend() []LegendEntry {
	return []LegendEntry{
		{Status: model.TaskStatusRunning, Color: colorGreen, Description: "Currently executing (in event loop)"},
		{Status: model.TaskStatusWaiting, Color: colorYellow, Description: "Waiting for execution"},
		{Status: model.TaskStatusAwaiting, Color: colorPurple, Description: "Awaiting I/O or other operation"},
		{Status: model.TaskStatusCompleted, Color: colorBlue, Description: "Completed execution"},
	}
}
