package play

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/slok/asyncviz/internal/log"
	"github.com/slok/asyncviz/internal/model"
)

// Session is the running visualisation the player controls.
type Session interface {
	SetStep(ctx context.Context, step int) (model.Frame, error)
	Next(ctx context.Context) (model.Frame, error)
	Prev(ctx context.Context) (model.Frame, error)
	Subscribe() (frames <-chan model.Frame, cancel func())
}

// Screen draws frames and messages on the terminal.
type Screen interface {
	Draw(frame model.Frame) error
	Message(msg string) error
}

// ServiceConfig is the configuration for the play service.
type ServiceConfig struct {
	Session Session
	Screen  Screen
	// Input is where the step commands are read from, one per line.
	Input io.Reader
	// RefreshInterval limits how often the screen is redrawn.
	RefreshInterval time.Duration
	Logger          log.Logger
}

func (c *ServiceConfig) defaults() error {
	if c.Session == nil {
		return fmt.Errorf("session is required")
	}

	if c.Screen == nil {
		return fmt.Errorf("screen is required")
	}

	if c.Input == nil {
		return fmt.Errorf("input is required")
	}

	if c.RefreshInterval <= 0 {
		c.RefreshInterval = 100 * time.Millisecond
	}

	if c.Logger == nil {
		c.Logger = log.Noop
	}
	c.Logger = c.Logger.WithValues(log.Kv{"svc": "app.Play"})

	return nil
}

// Service is an interactive terminal player: it redraws the session frames and
// moves the step control with the commands read from the input.
type Service struct {
	session         Session
	screen          Screen
	input           io.Reader
	refreshInterval time.Duration
	logger          log.Logger
}

// NewService creates a new play service.
func NewService(cfg ServiceConfig) (*Service, error) {
	if err := cfg.defaults(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return &Service{
		session:         cfg.Session,
		screen:          cfg.Screen,
		input:           cfg.Input,
		refreshInterval: cfg.RefreshInterval,
		logger:          cfg.Logger,
	}, nil
}

// HelpMessage explains the player commands for a scene whose last step is maxStep.
func HelpMessage(maxStep int) string {
	return fmt.Sprintf("Commands: [enter|n] next step, [p] previous step, [0-%d] go to step, [q] quit.", maxStep)
}

// CommandKind is the action of a player command.
type CommandKind int

const (
	CommandNext CommandKind = iota
	CommandPrev
	CommandGoto
	CommandQuit
)

// Command is a parsed player input line.
type Command struct {
	Kind CommandKind
	// Step is the target step of goto commands.
	Step int
}

// ParseCommand parses a player input line.
func ParseCommand(line string) (Command, error) {
	line = strings.ToLower(strings.TrimSpace(line))

	switch line {
	case "", "n", "next":
		return Command{Kind: CommandNext}, nil
	case "p", "prev":
		return Command{Kind: CommandPrev}, nil
	case "q", "quit", "exit":
		return Command{Kind: CommandQuit}, nil
	}

	step, err := strconv.Atoi(line)
	if err != nil {
		return Command{}, fmt.Errorf("unknown command %q: %w", line, model.ErrNotValid)
	}

	return Command{Kind: CommandGoto, Step: step}, nil
}

// Run draws the frames and processes the input commands. It returns when the
// context is cancelled, the input ends, the user quits, or the session stops.
func (s *Service) Run(ctx context.Context) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	frames, unsubscribe := s.session.Subscribe()
	defer unsubscribe()

	lines := make(chan string)
	inputErrC := make(chan error, 1)
	// The read can't be interrupted, on exit this goroutine finishes with the input.
	go func() {
		sc := bufio.NewScanner(s.input)
		for sc.Scan() {
			select {
			case lines <- sc.Text():
			case <-ctx.Done():
				return
			}
		}
		inputErrC <- sc.Err()
	}()

	ticker := time.NewTicker(s.refreshInterval)
	defer ticker.Stop()

	var (
		latest  model.Frame
		pending bool
		message string
	)

	for {
		select {
		case <-ctx.Done():
			return nil

		case err := <-inputErrC:
			if err != nil {
				return fmt.Errorf("could not read input: %w", err)
			}
			s.logger.Debugf("Input closed")
			return s.flush(latest, message, pending)

		case frame, ok := <-frames:
			if !ok {
				s.logger.Debugf("Session stopped")
				return nil
			}
			latest = frame
			pending = true

		case <-ticker.C:
			if !pending {
				continue
			}
			if err := s.draw(latest, message); err != nil {
				return err
			}
			pending = false

		case line := <-lines:
			cmd, err := ParseCommand(line)
			if err != nil {
				message = err.Error()
				pending = true
				continue
			}

			if cmd.Kind == CommandQuit {
				return s.flush(latest, message, pending)
			}

			frame, err := s.apply(ctx, cmd)
			switch {
			case errors.Is(err, model.ErrNotValid):
				message = err.Error()
			case errors.Is(err, model.ErrStopped):
				return nil
			case err != nil:
				return err
			default:
				message = ""
				latest = frame
			}
			pending = true
		}
	}
}

func (s *Service) apply(ctx context.Context, cmd Command) (model.Frame, error) {
	switch cmd.Kind {
	case CommandNext:
		return s.session.Next(ctx)
	case CommandPrev:
		return s.session.Prev(ctx)
	case CommandGoto:
		return s.session.SetStep(ctx, cmd.Step)
	}

	return model.Frame{}, fmt.Errorf("unknown command kind %d", cmd.Kind)
}

// flush draws the frame the refresh interval didn't get to show yet.
func (s *Service) flush(frame model.Frame, message string, pending bool) error {
	if !pending {
		return nil
	}

	return s.draw(frame, message)
}

func (s *Service) draw(frame model.Frame, message string) error {
	if err := s.screen.Draw(frame); err != nil {
		return fmt.Errorf("could not draw frame: %w", err)
	}

	if message != "" {
		if err := s.screen.Message(message); err != nil {
			return fmt.Errorf("could not draw message: %w", err)
		}
	}

	return nil
}
