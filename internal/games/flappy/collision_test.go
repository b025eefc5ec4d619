package flappy

import (
	"testing"

	"github.com/vovakirdan/tui-flappy/internal/core"
)

func TestOverlaps(t *testing.T) {
	a := core.NewBox(0, 0, 2, 2)

	tests := []struct {
		name     string
		b        core.Box
		expected bool
	}{
		{"overlapping", core.NewBox(1, 1, 2, 2), true},
		{"contained", core.NewBox(0.5, 0.5, 0.5, 0.5), true},
		{"shared right edge", core.NewBox(2, 0, 2, 2), false},
		{"shared bottom edge", core.NewBox(0, 2, 2, 2), false},
		{"shared corner", core.NewBox(2, 2, 1, 1), false},
		{"just inside", core.NewBox(1.999, 0, 2, 2), true},
		{"apart", core.NewBox(10, 10, 1, 1), false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := Overlaps(a, tc.b); got != tc.expected {
				t.Errorf("Overlaps(%v, %v) = %v, expected %v", a, tc.b, got, tc.expected)
			}
			if got := Overlaps(tc.b, a); got != tc.expected {
				t.Errorf("Overlaps is not symmetric for %v", tc.b)
			}
		})
	}
}

func TestHasPassed(t *testing.T) {
	p := NewPool(1, 5, 10, -1, nil)
	o := p.Acquire(40, 0, KindBottom, 1)

	tests := []struct {
		playerX  float64
		expected bool
	}{
		{44, false},
		{45, false}, // Level with the trailing edge
		{45.01, true},
		{60, true},
	}
	for _, tc := range tests {
		if got := HasPassed(core.NewBox(tc.playerX, 50, 2, 2), o); got != tc.expected {
			t.Errorf("HasPassed(x=%f) = %v, expected %v", tc.playerX, got, tc.expected)
		}
	}
}
