package commands

import (
	"context"
	"fmt"
	"time"

	"github.com/alecthomas/kingpin/v2"
	"github.com/oklog/run"

	"github.com/slok/asyncviz/internal/app/play"
	"github.com/slok/asyncviz/internal/app/session"
)

type PlayCommand struct {
	Cmd     *kingpin.CmdClause
	rootCmd *RootCommand

	step    int
	refresh time.Duration
	noClear bool
}

// NewPlayCommand returns the play command.
func NewPlayCommand(rootCmd *RootCommand, app *kingpin.Application) *PlayCommand {
	c := &PlayCommand{rootCmd: rootCmd}

	c.Cmd = app.Command("play", "Run the visualisation interactively on the terminal.")
	c.Cmd.Flag("step", "Initial step control value.").Short('s').Default("0").IntVar(&c.step)
	c.Cmd.Flag("refresh", "Screen refresh interval.").Default("200ms").DurationVar(&c.refresh)
	c.Cmd.Flag("no-clear", "Don't clear the screen between frames.").BoolVar(&c.noClear)

	return c
}

func (c PlayCommand) Name() string { return c.Cmd.FullCommand() }

func (c PlayCommand) Run(ctx context.Context) error {
	logger := c.rootCmd.Logger

	scene, err := c.rootCmd.LoadScene(ctx)
	if err != nil {
		return err
	}

	sess, err := session.NewService(session.ServiceConfig{
		Scene:       scene,
		InitialStep: c.step,
		Logger:      logger,
	})
	if err != nil {
		return fmt.Errorf("could not create session: %w", err)
	}

	player, err := play.NewService(play.ServiceConfig{
		Session:         sess,
		Screen:          play.NewTerminalScreen(c.rootCmd.Stdout, !c.rootCmd.NoColor, !c.noClear),
		Input:           c.rootCmd.Stdin,
		RefreshInterval: c.refresh,
		Logger:          logger,
	})
	if err != nil {
		return fmt.Errorf("could not create player: %w", err)
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	var g run.Group

	// Session.
	g.Add(
		func() error {
			return sess.Run(ctx)
		},
		func(_ error) {
			cancel()
		},
	)

	// Player, ends the group when the user quits.
	g.Add(
		func() error {
			return player.Run(ctx)
		},
		func(_ error) {
			cancel()
		},
	)

	return g.Run()
}
