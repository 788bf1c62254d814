package commands

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/alecthomas/kingpin/v2"
	"github.com/oklog/run"

	"github.com/slok/asyncviz/internal/app/session"
	"github.com/slok/asyncviz/internal/server"
)

type ServeCommand struct {
	Cmd     *kingpin.CmdClause
	rootCmd *RootCommand

	listen          string
	step            int
	shutdownTimeout time.Duration
}

// NewServeCommand returns the serve command.
func NewServeCommand(rootCmd *RootCommand, app *kingpin.Application) *ServeCommand {
	c := &ServeCommand{rootCmd: rootCmd}

	c.Cmd = app.Command("serve", "Serve the visualisation over HTTP.")
	c.Cmd.Flag("listen", "Address to listen on.").Short('l').Default("localhost:8080").StringVar(&c.listen)
	c.Cmd.Flag("step", "Initial step control value.").Short('s').Default("0").IntVar(&c.step)
	c.Cmd.Flag("shutdown-timeout", "Time to wait for in-flight requests on shutdown.").Default("5s").DurationVar(&c.shutdownTimeout)

	return c
}

func (c ServeCommand) Name() string { return c.Cmd.FullCommand() }

func (c ServeCommand) Run(ctx context.Context) error {
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

	handler, err := server.New(server.ServerConfig{
		Session: sess,
		Logger:  logger,
	})
	if err != nil {
		return fmt.Errorf("could not create server: %w", err)
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

	// HTTP server.
	{
		srv := &http.Server{
			Addr:              c.listen,
			Handler:           handler,
			ReadHeaderTimeout: 10 * time.Second,
		}

		g.Add(
			func() error {
				logger.Infof("Listening on http://%s (session %s)", c.listen, sess.ID())
				if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
					return fmt.Errorf("http server failed: %w", err)
				}
				return nil
			},
			func(_ error) {
				cancel()
				shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), c.shutdownTimeout)
				defer shutdownCancel()
				if err := srv.Shutdown(shutdownCtx); err != nil {
					logger.Warningf("Could not shut down HTTP server: %s", err)
				}
			},
		)
	}

	return g.Run()
}
