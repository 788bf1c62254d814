package geometry_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/slok/asyncviz/internal/geometry"
	"github.com/slok/asyncviz/internal/model"
)

const tolerance = 1e-9

func TestPosition(t *testing.T) {
	center := model.Point{X: 350, Y: 350}

	tests := map[string]struct {
		angle  float64
		radius float64
		exp    model.Point
	}{
		"Zero degrees should be on the right of the center.": {
			angle:  0,
			radius: 180,
			exp:    model.Point{X: 530, Y: 350},
		},
		"Ninety degrees should be below the center (screen coordinates).": {
			angle:  90,
			radius: 180,
			exp:    model.Point{X: 350, Y: 530},
		},
		"One hundred eighty degrees should be on the left of the center.": {
			angle:  180,
			radius: 180,
			exp:    model.Point{X: 170, Y: 350},
		},
		"Negative angles should go counterclockwise.": {
			angle:  -90,
			radius: 180,
			exp:    model.Point{X: 350, Y: 170},
		},
		"A zero radius should return the center.": {
			angle:  42,
			radius: 0,
			exp:    center,
		},
	}

	for name, test := range tests {
		t.Run(name, func(t *testing.T) {
			assert := assert.New(t)

			got := geometry.Position(test.angle, test.radius, center)
			assert.InDelta(test.exp.X, got.X, tolerance)
			assert.InDelta(test.exp.Y, got.Y, tolerance)
		})
	}
}

func TestPositionDistanceIsRadius(t *testing.T) {
	centers := []model.Point{{X: 0, Y: 0}, {X: 350, Y: 350}, {X: -12.5, Y: 99.25}}
	radii := []float64{0.5, 1, 180, 1234.5}

	for _, c := range centers {
		for _, r := range radii {
			for angle := -720.0; angle <= 720; angle += 7.3 {
				p := geometry.Position(angle, r, c)
				assert.InDelta(t, r, geometry.Distance(c, p), 1e-6, "angle %v radius %v center %v", angle, r, c)
			}
		}
	}
}

func TestMidpoint(t *testing.T) {
	center := model.Point{X: 350, Y: 350}
	got := geometry.Midpoint(center, model.Point{X: 530, Y: 350}, 0.5)
	assert.Equal(t, model.Point{X: 440, Y: 350}, got)
}

func TestNormalizeAngle(t *testing.T) {
	tests := map[string]struct {
		angle float64
		exp   float64
	}{
		"In range angles should not change.":   {angle: 123.4, exp: 123.4},
		"360 should wrap to 0.":                {angle: 360, exp: 0},
		"Bigger angles should wrap.":           {angle: 725, exp: 5},
		"Negative angles should wrap forward.": {angle: -90, exp: 270},
	}

	for name, test := range tests {
		t.Run(name, func(t *testing.T) {
			assert.InDelta(t, test.exp, geometry.NormalizeAngle(test.angle), tolerance)
		})
	}
}
