package commands

import (
	"context"
	"fmt"

	"github.com/alecthomas/kingpin/v2"

	"github.com/slok/asyncviz/internal/schedule"
)

type CaptionCommand struct {
	Cmd     *kingpin.CmdClause
	rootCmd *RootCommand

	step int
}

// NewCaptionCommand returns the caption command.
func NewCaptionCommand(rootCmd *RootCommand, app *kingpin.Application) *CaptionCommand {
	c := &CaptionCommand{rootCmd: rootCmd}

	c.Cmd = app.Command("caption", "Print the caption of a step.")
	c.Cmd.Arg("step", "Step control value.").Required().IntVar(&c.step)

	return c
}

func (c CaptionCommand) Name() string { return c.Cmd.FullCommand() }

func (c CaptionCommand) Run(ctx context.Context) error {
	scene, err := c.rootCmd.LoadScene(ctx)
	if err != nil {
		return err
	}

	if err := schedule.ValidateStep(scene, c.step); err != nil {
		return fmt.Errorf("invalid step: %w", err)
	}

	fmt.Fprintln(c.rootCmd.Stdout, schedule.Caption(c.step))

	return nil
}
