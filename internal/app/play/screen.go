package play

import (
	"fmt"
	"io"

	"github.com/slok/asyncviz/internal/model"
	"github.com/slok/asyncviz/internal/printer"
)

const clearScreen = "\033[H\033[2J"

// TerminalScreen draws the frames as a table followed by the legend and the
// player help.
type TerminalScreen struct {
	out     io.Writer
	printer *printer.TablePrinter
	clear   bool
}

// NewTerminalScreen returns a new terminal screen. When clear is set the
// terminal is cleared before every frame.
func NewTerminalScreen(out io.Writer, color, clear bool) *TerminalScreen {
	p := printer.NewTablePrinter(out)
	if color {
		p = printer.NewColorTablePrinter(out)
	}

	return &TerminalScreen{
		out:     out,
		printer: p,
		clear:   clear,
	}
}

func (t *TerminalScreen) Draw(frame model.Frame) error {
	if t.clear {
		if _, err := io.WriteString(t.out, clearScreen); err != nil {
			return err
		}
	}

	if err := t.printer.PrintFrame(frame); err != nil {
		return err
	}

	fmt.Fprintln(t.out)
	if err := t.printer.PrintLegend(); err != nil {
		return err
	}

	fmt.Fprintln(t.out)
	return t.printer.PrintMessage(HelpMessage(frame.TotalSteps - 1))
}

func (t *TerminalScreen) Message(msg string) error {
	return t.printer.PrintMessage("> " + msg)
}
