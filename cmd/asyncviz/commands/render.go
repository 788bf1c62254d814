package commands

import (
	"context"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/alecthomas/kingpin/v2"

	"github.com/slok/asyncviz/internal/app/render"
	"github.com/slok/asyncviz/internal/printer"
)

type RenderCommand struct {
	Cmd     *kingpin.CmdClause
	rootCmd *RootCommand

	step    int
	angle   float64
	elapsed time.Duration
	format  string
	caption bool
	out     string
}

// NewRenderCommand returns the render command.
func NewRenderCommand(rootCmd *RootCommand, app *kingpin.Application) *RenderCommand {
	c := &RenderCommand{rootCmd: rootCmd}

	c.Cmd = app.Command("render", "Render a single visualisation frame.")
	c.Cmd.Flag("step", "Step control value.").Short('s').Default("0").IntVar(&c.step)
	c.Cmd.Flag("angle", "Rotation angle in degrees.").Short('a').Default("0").Float64Var(&c.angle)
	c.Cmd.Flag("elapsed", "Rotation clock running time, takes precedence over --angle (e.g. 5s).").DurationVar(&c.elapsed)
	c.Cmd.Flag("format", "Output format (svg, json, table).").Default("svg").EnumVar(&c.format, "svg", "json", "table")
	c.Cmd.Flag("caption", "Include the step caption in the SVG.").Default("true").BoolVar(&c.caption)
	c.Cmd.Flag("out", "Output file, stdout by default.").Short('o').StringVar(&c.out)

	return c
}

func (c RenderCommand) Name() string { return c.Cmd.FullCommand() }

func (c RenderCommand) Run(ctx context.Context) error {
	logger := c.rootCmd.Logger

	scene, err := c.rootCmd.LoadScene(ctx)
	if err != nil {
		return err
	}

	svc, err := render.NewService(render.ServiceConfig{
		Scene:  scene,
		Logger: logger,
	})
	if err != nil {
		return fmt.Errorf("could not create service: %w", err)
	}

	frame, err := svc.Run(ctx, render.Request{
		Step:          c.step,
		RotationAngle: c.angle,
		Elapsed:       c.elapsed,
	})
	if err != nil {
		return fmt.Errorf("could not render frame: %w", err)
	}

	var w io.Writer = c.rootCmd.Stdout
	if c.out != "" {
		f, err := os.Create(c.out)
		if err != nil {
			return fmt.Errorf("could not create output file: %w", err)
		}
		defer f.Close()
		w = f
	}

	var p printer.Printer
	switch c.format {
	case "json":
		p = printer.NewJSONPrinter(w)
	case "table":
		if c.rootCmd.NoColor || c.out != "" {
			p = printer.NewTablePrinter(w)
		} else {
			p = printer.NewColorTablePrinter(w)
		}
	default: // svg
		p = printer.NewSVGPrinter(w, c.caption)
	}

	if err := p.PrintFrame(*frame); err != nil {
		return fmt.Errorf("could not print frame: %w", err)
	}

	if c.out != "" {
		logger.Infof("Frame written to %s", c.out)
	}

	return nil
}
