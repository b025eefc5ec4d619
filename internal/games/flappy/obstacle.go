package flappy

// ObstacleKind tells which half of a pair an obstacle is.
type ObstacleKind int

const (
	KindTop ObstacleKind = iota
	KindBottom
)

// String returns a human-readable name for the kind.
func (k ObstacleKind) String() string {
	switch k {
	case KindTop:
		return "Top"
	case KindBottom:
		return "Bottom"
	default:
		return "Unknown"
	}
}

// Obstacle is one half of a top/bottom pair.
// Obstacles are owned by a Pool and recycled rather than destroyed.
type Obstacle struct {
	body

	Kind               ObstacleKind
	HorizontalVelocity float64 // Negative, moves leftward
	HasBeenPassed      bool
	HasBeenScored      bool // Only ever set on the Bottom half
	LevelTier          int  // Cosmetic: fallback colour and particle style

	id     int
	pairID int
}

// ID returns the pool-assigned identifier. It is stable across reuse.
func (o *Obstacle) ID() int {
	return o.id
}

// PairID returns the identifier shared by both halves of one spawn.
func (o *Obstacle) PairID() int {
	return o.pairID
}

// advance moves the obstacle by its velocity over dt seconds.
func (o *Obstacle) advance(dt float64) {
	o.x += o.HorizontalVelocity * dt
}

// offScreen reports whether the trailing edge has left the visible area.
func (o *Obstacle) offScreen() bool {
	return o.x+o.w < 0
}

func (o *Obstacle) clearFlags() {
	o.HasBeenPassed = false
	o.HasBeenScored = false
}
