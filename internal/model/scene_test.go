package model_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/slok/asyncviz/internal/model"
)

func TestSceneValidate(t *testing.T) {
	tests := map[string]struct {
		scene  func() model.Scene
		expErr bool
	}{
		"Default scene should be valid.": {
			scene: model.DefaultScene,
		},
		"Infinite radius should fail.": {
			scene: func() model.Scene {
				s := model.DefaultScene()
				s.Radius = math.Inf(1)
				return s
			},
			expErr: true,
		},
		"NaN radius should fail.": {
			scene: func() model.Scene {
				s := model.DefaultScene()
				s.Radius = math.NaN()
				return s
			},
			expErr: true,
		},
		"NaN angle increment should fail.": {
			scene: func() model.Scene {
				s := model.DefaultScene()
				s.AngleIncrement = math.NaN()
				return s
			},
			expErr: true,
		},
		"Infinite angle increment should fail.": {
			scene: func() model.Scene {
				s := model.DefaultScene()
				s.AngleIncrement = math.Inf(1)
				return s
			},
			expErr: true,
		},
		"Non finite center should fail.": {
			scene: func() model.Scene {
				s := model.DefaultScene()
				s.Center = model.Point{X: math.NaN(), Y: math.Inf(-1)}
				return s
			},
			expErr: true,
		},
		"Negative angle increment should fail.": {
			scene: func() model.Scene {
				s := model.DefaultScene()
				s.AngleIncrement = -0.2
				return s
			},
			expErr: true,
		},
		"No tasks should fail.": {
			scene: func() model.Scene {
				s := model.DefaultScene()
				s.TaskNames = nil
				return s
			},
			expErr: true,
		},
	}

	for name, test := range tests {
		t.Run(name, func(t *testing.T) {
			err := test.scene().Validate()

			if test.expErr {
				assert.ErrorIs(t, err, model.ErrNotValid)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}
