// Package core provides fundamental types and utilities for the game.
// It contains no external dependencies (especially no Bubble Tea) to keep game
// logic pure and testable.
package core

import "math"

// Rect is an integer cell rectangle used for screen layout (panels, boxes).
type Rect struct {
	X, Y int // Top-left corner position
	W, H int // Width and height
}

// NewRect creates a new rectangle with the given position and dimensions.
func NewRect(x, y, w, h int) Rect {
	return Rect{X: x, Y: y, W: w, H: h}
}

// Right returns the x-coordinate of the right edge.
func (r Rect) Right() int {
	return r.X + r.W
}

// Bottom returns the y-coordinate of the bottom edge.
func (r Rect) Bottom() int {
	return r.Y + r.H
}

// Box is a world-space axis-aligned bounding box covering [X, X+W) × [Y, Y+H).
type Box struct {
	X, Y float64
	W, H float64
}

// NewBox creates a bounding box.
func NewBox(x, y, w, h float64) Box {
	return Box{X: x, Y: y, W: w, H: h}
}

// Right returns the exclusive right edge.
func (b Box) Right() float64 {
	return b.X + b.W
}

// Bottom returns the exclusive bottom edge.
func (b Box) Bottom() float64 {
	return b.Y + b.H
}

// Intersects reports whether two boxes overlap.
// Inequalities are strict: boxes sharing only an edge do not intersect.
func (b Box) Intersects(o Box) bool {
	return b.X < o.Right() && b.Right() > o.X &&
		b.Y < o.Bottom() && b.Bottom() > o.Y
}

// Cells converts the box to the screen cells it covers.
func (b Box) Cells() Rect {
	x := int(math.Floor(b.X))
	y := int(math.Floor(b.Y))
	return NewRect(x, y, int(math.Ceil(b.Right()))-x, int(math.Ceil(b.Bottom()))-y)
}

// Clamp restricts a value to be within [min, max].
func Clamp(val, min, max int) int {
	if val < min {
		return min
	}
	if val > max {
		return max
	}
	return val
}

// ClampF restricts a float64 value to be within [min, max].
func ClampF(val, min, max float64) float64 {
	if val < min {
		return min
	}
	if val > max {
		return max
	}
	return val
}
