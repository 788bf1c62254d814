package memory

import (
	"context"
	"fmt"
	"sync"

	"github.com/slok/asyncviz/internal/log"
	"github.com/slok/asyncviz/internal/model"
)

// RepositoryConfig is the configuration for the memory repository.
type RepositoryConfig struct {
	// Scenes are the initial scenes by path.
	Scenes map[string]model.Scene
	Logger log.Logger
}

func (c *RepositoryConfig) defaults() error {
	if c.Logger == nil {
		c.Logger = log.Noop
	}
	c.Logger = c.Logger.WithValues(log.Kv{"svc": "storage.Memory"})
	return nil
}

// Repository is an in-memory implementation of storage.SceneRepository.
type Repository struct {
	scenes map[string]model.Scene
	mu     sync.RWMutex
	logger log.Logger
}

// NewRepository creates a new memory repository.
func NewRepository(cfg RepositoryConfig) (*Repository, error) {
	if err := cfg.defaults(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	r := &Repository{
		scenes: make(map[string]model.Scene),
		logger: cfg.Logger,
	}
	for path, scene := range cfg.Scenes {
		if err := r.SetScene(context.Background(), path, scene); err != nil {
			return nil, err
		}
	}

	return r, nil
}

// SetScene stores a scene under a path, replacing any previous one.
func (r *Repository) SetScene(ctx context.Context, path string, scene model.Scene) error {
	if err := scene.Validate(); err != nil {
		return fmt.Errorf("scene %s: %w", path, err)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	scene.TaskNames = append([]string{}, scene.TaskNames...)
	r.scenes[path] = scene
	r.logger.Debugf("Stored scene in repository: %s", path)

	return nil
}

// GetScene retrieves a scene by path.
func (r *Repository) GetScene(ctx context.Context, path string) (model.Scene, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	scene, ok := r.scenes[path]
	if !ok {
		return model.Scene{}, fmt.Errorf("scene %s: %w", path, model.ErrNotFound)
	}

	scene.TaskNames = append([]string{}, scene.TaskNames...)
	return scene, nil
}
