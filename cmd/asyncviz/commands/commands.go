package commands

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/alecthomas/kingpin/v2"
	"k8s.io/client-go/util/homedir"

	"github.com/slok/asyncviz/internal/log"
	"github.com/slok/asyncviz/internal/model"
	"github.com/slok/asyncviz/internal/storage"
	storageio "github.com/slok/asyncviz/internal/storage/io"
	"github.com/slok/asyncviz/internal/storage/memory"
)

const (
	// LoggerTypeDefault is the logger default type.
	LoggerTypeDefault = "default"
	// LoggerTypeJSON is the logger json type.
	LoggerTypeJSON = "json"
)

// Command represents an application command, all commands that want to be executed
// should implement and setup on main.
type Command interface {
	Name() string
	Run(ctx context.Context) error
}

// DefaultScenePath is the scene file used when none is set.
var DefaultScenePath = filepath.Join(homedir.HomeDir(), ".asyncviz", "scene.yaml")

// RootCommand represents the root command configuration and global configuration
// for all the commands.
type RootCommand struct {
	// Global flags.
	Debug      bool
	NoLog      bool
	NoColor    bool
	LoggerType string
	ScenePath  string

	// Global instances.
	Stdin  io.Reader
	Stdout io.Writer
	Stderr io.Writer
	Logger log.Logger
}

// NewRootCommand initializes the main root configuration.
func NewRootCommand(app *kingpin.Application) *RootCommand {
	c := &RootCommand{}

	app.Flag("debug", "Enable debug mode.").BoolVar(&c.Debug)
	app.Flag("no-log", "Disable logger.").BoolVar(&c.NoLog)
	app.Flag("no-color", "Disable logger and output color.").BoolVar(&c.NoColor)
	app.Flag("logger", "Selects the logger type.").Default(LoggerTypeDefault).EnumVar(&c.LoggerType, LoggerTypeDefault, LoggerTypeJSON)
	app.Flag("scene", "Path to the scene YAML file.").Envar("ASYNCVIZ_SCENE").Default(DefaultScenePath).StringVar(&c.ScenePath)

	return c
}

// LoadScene loads the scene file. A missing default scene file means the
// built-in scene.
func (r RootCommand) LoadScene(ctx context.Context) (model.Scene, error) {
	path, err := filepath.Abs(r.ScenePath)
	if err != nil {
		return model.Scene{}, fmt.Errorf("invalid scene path: %w", err)
	}

	var repo storage.SceneRepository = storageio.NewSceneYAMLRepository(os.DirFS(filepath.Dir(path)))
	if r.ScenePath == DefaultScenePath {
		if _, err := os.Stat(path); errors.Is(err, fs.ErrNotExist) {
			r.Logger.Debugf("Scene file %q missing, using default scene", path)
			repo, err = memory.NewRepository(memory.RepositoryConfig{
				Scenes: map[string]model.Scene{filepath.Base(path): model.DefaultScene()},
				Logger: r.Logger,
			})
			if err != nil {
				return model.Scene{}, fmt.Errorf("could not create repository: %w", err)
			}
		}
	}

	scene, err := repo.GetScene(ctx, filepath.Base(path))
	if err != nil {
		return model.Scene{}, fmt.Errorf("could not load scene %q: %w", path, err)
	}
	r.Logger.Debugf("Scene loaded from %q", path)

	return scene, nil
}
