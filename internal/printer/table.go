package printer

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/slok/asyncviz/internal/model"
)

// TablePrinter prints frames in a table format.
type TablePrinter struct {
	writer  io.Writer
	color   bool
	timeNow func() time.Time
}

// NewTablePrinter creates a new table printer.
func NewTablePrinter(w io.Writer) *TablePrinter {
	return &TablePrinter{writer: w, timeNow: time.Now}
}

// NewColorTablePrinter creates a new table printer that colors statuses with ANSI codes.
func NewColorTablePrinter(w io.Writer) *TablePrinter {
	return &TablePrinter{writer: w, color: true, timeNow: time.Now}
}

// WithTimeNow sets the clock used for the session age.
func (t *TablePrinter) WithTimeNow(timeNow func() time.Time) *TablePrinter {
	t.timeNow = timeNow
	return t
}

// PrintFrame prints the tasks of a frame in a table format followed by the step caption.
func (t *TablePrinter) PrintFrame(frame model.Frame) error {
	tw := tabwriter.NewWriter(t.writer, 0, 0, 2, ' ', 0)

	// Print header
	fmt.Fprintln(tw, "ID\tNAME\tSTATUS\tX\tY")

	// Print rows
	for _, task := range frame.Tasks {
		fmt.Fprintf(tw, "%d\t%s\t%s\t%.2f\t%.2f\n", task.ID, task.Name, t.status(task.Status), task.Position.X, task.Position.Y)
	}

	if err := tw.Flush(); err != nil {
		return fmt.Errorf("could not flush table: %w", err)
	}

	fmt.Fprintln(t.writer)
	fmt.Fprintf(t.writer, "Step:       %s\n", StepCounter(frame))
	fmt.Fprintf(t.writer, "Rotation:   %.1f°\n", frame.RotationAngle)
	fmt.Fprintf(t.writer, "Caption:    %s\n", frame.Caption)

	if frame.SessionID != "" {
		fmt.Fprintf(t.writer, "Session:    %s\n", frame.SessionID)
	}

	if !frame.StartedAt.IsZero() {
		fmt.Fprintf(t.writer, "Started:    %s (%s ago)\n", FormatTimestamp(frame.StartedAt), Elapsed(frame.StartedAt, t.timeNow()))
	}

	return nil
}

func (t *TablePrinter) status(s model.TaskStatus) string {
	if !t.color {
		return string(s)
	}
	return StatusColor(s).ANSI + string(s) + ansiReset
}

// PrintLegend prints the status color legend.
func (t *TablePrinter) PrintLegend() error {
	var b strings.Builder
	b.WriteString("How it works:\n")
	for _, e := range Legend() {
		name := e.Color.Title()
		if t.color {
			name = e.Color.ANSI + name + ansiReset
		}
		fmt.Fprintf(&b, "  %s: %s\n", name, e.Description)
	}

	_, err := io.WriteString(t.writer, b.String())
	return err
}

// PrintMessage prints a simple text message.
func (t *TablePrinter) PrintMessage(msg string) error {
	fmt.Fprintln(t.writer, msg)
	return nil
}

// StepCounter returns the "step/last step" counter shown next to the step control.
func StepCounter(frame model.Frame) string {
	return fmt.Sprintf("%d/%d", frame.Step, frame.TotalSteps-1)
}
