package flappy

import (
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-flappy/internal/core"
)

// Pool recycles obstacles. Every obstacle it has allocated is in exactly
// one of the free or active sets; Acquire and Release are the only
// operations that move it between them.
type Pool struct {
	free   []*Obstacle
	active []*Obstacle // Spawn order, also draw order
	member map[*Obstacle]bool

	capacity  int
	width     float64
	height    float64
	velocity  float64
	nextID    int
	nextPair  int
	overflows int

	log *log.Logger
}

// NewPool preallocates capacity obstacles of the given size.
// Capacity is a soft limit: Acquire allocates past it and counts an overflow.
func NewPool(capacity int, width, height, velocity float64, logger *log.Logger) *Pool {
	if logger == nil {
		logger = discardLogger()
	}
	capacity = max(capacity, 0)
	p := &Pool{
		free:     make([]*Obstacle, 0, capacity),
		active:   make([]*Obstacle, 0, capacity),
		member:   make(map[*Obstacle]bool, capacity),
		capacity: capacity,
		width:    width,
		height:   height,
		velocity: velocity,
		log:      logger,
	}
	for range capacity {
		o := p.allocate()
		p.free = append(p.free, o)
		p.member[o] = false
	}
	return p
}

func (p *Pool) allocate() *Obstacle {
	p.nextID++
	return &Obstacle{
		body: newBody(0, 0, p.width, p.height),
		id:   p.nextID,
	}
}

// Acquire hands out an obstacle positioned at (x, y) with cleared flags.
func (p *Pool) Acquire(x, y float64, kind ObstacleKind, tier int) *Obstacle {
	var o *Obstacle
	if n := len(p.free); n > 0 {
		o = p.free[n-1]
		p.free[n-1] = nil
		p.free = p.free[:n-1]
	} else {
		o = p.allocate()
		p.overflows++
		p.log.Warn("obstacle pool exhausted, allocating", "capacity", p.capacity, "allocated", len(p.member)+1)
	}

	o.x, o.y = x, y
	o.w, o.h = max(p.width, minEntitySize), max(p.height, minEntitySize)
	o.Kind = kind
	o.LevelTier = tier
	o.HorizontalVelocity = p.velocity
	o.pairID = 0
	o.clearFlags()

	p.active = append(p.active, o)
	p.member[o] = true
	return o
}

// AcquirePair spawns a top and bottom half around a gap starting at gapY.
// The top half reaches the ceiling and the bottom half reaches floorY, so
// the pool height is only a minimum.
func (p *Pool) AcquirePair(x, gapY, gap, floorY float64, tier int) (top, bottom *Obstacle) {
	p.nextPair++
	top = p.Acquire(x, min(gapY-p.height, 0), KindTop, tier)
	top.h = max(gapY-top.y, minEntitySize)
	bottom = p.Acquire(x, gapY+gap, KindBottom, tier)
	bottom.h = max(p.height, floorY-bottom.y+1, minEntitySize)
	top.pairID = p.nextPair
	bottom.pairID = p.nextPair
	return top, bottom
}

// FitFloor stretches or shrinks active bottom halves so they end just
// past floorY, after the play area changes size.
func (p *Pool) FitFloor(floorY float64) {
	for _, o := range p.active {
		if o.Kind == KindBottom {
			o.h = max(p.height, floorY-o.y+1, minEntitySize)
		}
	}
}

// Release returns an active obstacle to the free set.
// It returns false and does nothing if o is not active.
func (p *Pool) Release(o *Obstacle) bool {
	if o == nil || !p.member[o] {
		return false
	}
	for i, a := range p.active {
		if a == o {
			copy(p.active[i:], p.active[i+1:])
			p.active[len(p.active)-1] = nil
			p.active = p.active[:len(p.active)-1]
			break
		}
	}
	o.clearFlags()
	p.free = append(p.free, o)
	p.member[o] = false
	return true
}

// UpdateActive moves every active obstacle and releases those whose right
// edge has passed the left boundary. It returns how many were released.
func (p *Pool) UpdateActive(dt float64) int {
	var gone []*Obstacle
	for _, o := range p.active {
		o.advance(dt)
		if o.offScreen() {
			gone = append(gone, o)
		}
	}
	for _, o := range gone {
		p.Release(o)
	}
	return len(gone)
}

// CheckCollisions returns the first active obstacle overlapping box, or nil.
func (p *Pool) CheckCollisions(box core.Box) *Obstacle {
	for _, o := range p.active {
		if Overlaps(box, o.Bounds()) {
			return o
		}
	}
	return nil
}

// CheckPassed marks and returns active obstacles the player has newly cleared.
func (p *Pool) CheckPassed(player core.Box) []*Obstacle {
	var passed []*Obstacle
	for _, o := range p.active {
		if o.HasBeenPassed || !HasPassed(player, o) {
			continue
		}
		o.HasBeenPassed = true
		passed = append(passed, o)
	}
	return passed
}

// ProcessScoring returns the scoring units earned by passed obstacles.
// Only Bottom halves score, and each at most once.
func (p *Pool) ProcessScoring(passed []*Obstacle) int {
	units := 0
	for _, o := range passed {
		if o.Kind != KindBottom || o.HasBeenScored {
			continue
		}
		o.HasBeenScored = true
		units++
	}
	return units
}

// Clear releases every active obstacle.
func (p *Pool) Clear() {
	for len(p.active) > 0 {
		p.Release(p.active[len(p.active)-1])
	}
}

// SetVelocity changes the horizontal velocity of active and future obstacles.
func (p *Pool) SetVelocity(v float64) {
	p.velocity = v
	for _, o := range p.active {
		o.HorizontalVelocity = v
	}
}

// Velocity returns the shared horizontal velocity.
func (p *Pool) Velocity() float64 {
	return p.velocity
}

// Active returns the active obstacles in spawn order.
// The slice is owned by the pool and must not be modified.
func (p *Pool) Active() []*Obstacle {
	return p.active
}

// Contains reports which set o belongs to.
func (p *Pool) Contains(o *Obstacle) (inFree, inActive bool) {
	active, known := p.member[o]
	if !known {
		return false, false
	}
	return !active, active
}

// FreeCount returns the number of idle obstacles.
func (p *Pool) FreeCount() int {
	return len(p.free)
}

// Len returns the number of obstacles the pool has ever allocated.
func (p *Pool) Len() int {
	return len(p.member)
}

// Capacity returns the soft capacity.
func (p *Pool) Capacity() int {
	return p.capacity
}

// Overflows returns how many times Acquire had to allocate past capacity.
func (p *Pool) Overflows() int {
	return p.overflows
}
