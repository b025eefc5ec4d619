// Package flappy implements a Flappy Bird-style game.
// The player controls a bird that must navigate through gaps between
// pooled obstacle pairs scrolling in from the right.
package flappy

import "github.com/vovakirdan/tui-flappy/internal/core"

// minEntitySize keeps every entity's bounding box non-empty.
const minEntitySize = 1.0

// Entity is anything with a position, a size and an axis-aligned bounding box.
type Entity interface {
	Position() (x, y float64)
	Size() (w, h float64)
	Bounds() core.Box
}

// body is the shared position/size state embedded by entities.
type body struct {
	x, y float64
	w, h float64
}

func newBody(x, y, w, h float64) body {
	return body{x: x, y: y, w: max(w, minEntitySize), h: max(h, minEntitySize)}
}

// Position returns the top-left corner in world cells.
func (b *body) Position() (x, y float64) {
	return b.x, b.y
}

// Size returns width and height in world cells.
func (b *body) Size() (w, h float64) {
	return b.w, b.h
}

// Bounds returns the bounding box [x, x+w) × [y, y+h).
func (b *body) Bounds() core.Box {
	return core.NewBox(b.x, b.y, b.w, b.h)
}
