package storage

import (
	"context"

	"github.com/slok/asyncviz/internal/model"
)

// SceneRepository is the interface for scene loading.
type SceneRepository interface {
	GetScene(ctx context.Context, path string) (model.Scene, error)
}
