package io

import (
	"context"
	"fmt"
	"io/fs"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/slok/asyncviz/internal/model"
)

// SceneYAMLRepository loads scene configuration from YAML files.
type SceneYAMLRepository struct {
	fs fs.FS
}

// NewSceneYAMLRepository creates a new YAML scene repository.
func NewSceneYAMLRepository(filesystem fs.FS) *SceneYAMLRepository {
	return &SceneYAMLRepository{fs: filesystem}
}

// GetScene loads a scene from a YAML file and returns a validated domain model.
// Fields not present in the file keep the default scene values.
func (r *SceneYAMLRepository) GetScene(ctx context.Context, path string) (model.Scene, error) {
	data, err := fs.ReadFile(r.fs, path)
	if err != nil {
		return model.Scene{}, fmt.Errorf("reading scene file: %w", err)
	}

	if ctx.Err() != nil {
		return model.Scene{}, ctx.Err()
	}

	var cfg SceneConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return model.Scene{}, fmt.Errorf("parsing YAML: %w", err)
	}

	scene, err := cfg.toModel(model.DefaultScene())
	if err != nil {
		return model.Scene{}, fmt.Errorf("invalid configuration: %w", err)
	}

	if err := scene.Validate(); err != nil {
		return model.Scene{}, fmt.Errorf("invalid configuration: %w", err)
	}

	return scene, nil
}

// SceneConfig represents the YAML structure for the scene configuration.
type SceneConfig struct {
	Radius *float64      `yaml:"radius"`
	Center *PointConfig  `yaml:"center"`
	Canvas *CanvasConfig `yaml:"canvas"`
	Clock  *ClockConfig  `yaml:"clock"`
	Tasks  []TaskConfig  `yaml:"tasks"`
}

// PointConfig represents the YAML structure for a point.
type PointConfig struct {
	X float64 `yaml:"x"`
	Y float64 `yaml:"y"`
}

// CanvasConfig represents the YAML structure for the drawing size.
type CanvasConfig struct {
	Width  int `yaml:"width"`
	Height int `yaml:"height"`
}

// ClockConfig represents the YAML structure for the rotation clock.
type ClockConfig struct {
	TickInterval   string   `yaml:"tick_interval"`
	AngleIncrement *float64 `yaml:"angle_increment"`
}

// TaskConfig represents the YAML structure for a task.
type TaskConfig struct {
	Name string `yaml:"name"`
}

func (c SceneConfig) toModel(base model.Scene) (model.Scene, error) {
	scene := base

	if c.Radius != nil {
		scene.Radius = *c.Radius
	}

	if c.Center != nil {
		scene.Center = model.Point{X: c.Center.X, Y: c.Center.Y}
	}

	if c.Canvas != nil {
		scene.Width = c.Canvas.Width
		scene.Height = c.Canvas.Height
	}

	if c.Clock != nil {
		if c.Clock.TickInterval != "" {
			d, err := time.ParseDuration(c.Clock.TickInterval)
			if err != nil {
				return model.Scene{}, fmt.Errorf("clock tick_interval: %w", err)
			}
			scene.TickInterval = d
		}

		if c.Clock.AngleIncrement != nil {
			scene.AngleIncrement = *c.Clock.AngleIncrement
		}
	}

	if len(c.Tasks) > 0 {
		scene.TaskNames = make([]string, 0, len(c.Tasks))
		for _, t := range c.Tasks {
			scene.TaskNames = append(scene.TaskNames, t.Name)
		}
	}

	return scene, nil
}
