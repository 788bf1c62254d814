// Package geometry converts between the polar coordinates the scheduler thinks
// in and the Cartesian plane the presentation draws on.
package geometry

import (
	"math"

	"github.com/slok/asyncviz/internal/model"
)

// Position returns the point at angleDeg degrees and radius distance from center.
// It is defined for every real input.
func Position(angleDeg, radius float64, center model.Point) model.Point {
	rad := angleDeg * math.Pi / 180
	return model.Point{
		X: center.X + radius*math.Cos(rad),
		Y: center.Y + radius*math.Sin(rad),
	}
}

// Midpoint returns the point at ratio of the way from center to p.
func Midpoint(center, p model.Point, ratio float64) model.Point {
	return model.Point{
		X: center.X + (p.X-center.X)*ratio,
		Y: center.Y + (p.Y-center.Y)*ratio,
	}
}

// Distance returns the euclidean distance between a and b.
func Distance(a, b model.Point) float64 {
	return math.Hypot(b.X-a.X, b.Y-a.Y)
}

// NormalizeAngle wraps any angle in degrees into [0, 360).
func NormalizeAngle(deg float64) float64 {
	a := math.Mod(deg, 360)
	if a < 0 {
		a += 360
	}
	// -tiny + 360 rounds up to 360 in floating point.
	if a >= 360 {
		a = 0
	}
	return a
}
