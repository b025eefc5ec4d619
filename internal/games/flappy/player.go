package flappy

import (
	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"

	"github.com/vovakirdan/tui-flappy/internal/config"
)

// PlayerState is a label derived from vertical velocity each tick.
// Dead is sticky until Reset.
type PlayerState int

const (
	PlayerIdle PlayerState = iota
	PlayerAscending
	PlayerDescending
	PlayerDead
)

// String returns a human-readable name for the state.
func (s PlayerState) String() string {
	switch s {
	case PlayerIdle:
		return "Idle"
	case PlayerAscending:
		return "Ascending"
	case PlayerDescending:
		return "Descending"
	case PlayerDead:
		return "Dead"
	default:
		return "Unknown"
	}
}

// Cosmetic tween targets, degrees and scale factors.
const (
	flapRotation = -25.0
	diveRotation = 90.0
	flapScale    = 1.35
)

// Player is the bird: vertical-only physics with a cosmetic tilt and squash.
type Player struct {
	body

	physics config.FlappyPhysics
	startX  float64
	startY  float64
	floorY  float64

	VerticalVelocity float64 // Positive = falling
	State            PlayerState
	JumpCount        int
	AliveTimeMs      float64
	MaxHeightReached float64 // Smallest y observed

	Rotation float64
	Scale    float64

	rotTween   *gween.Tween
	scaleTween *gween.Tween
}

// NewPlayer creates a player at (x, y) that dies when its bottom edge reaches floorY.
func NewPlayer(x, y, w, h, floorY float64, physics config.FlappyPhysics) *Player {
	p := &Player{
		body:    newBody(x, y, w, h),
		physics: physics,
		startX:  x,
		startY:  y,
		floorY:  floorY,
	}
	p.Reset()
	return p
}

// Reset restores every mutable field to its construction-time value.
func (p *Player) Reset() {
	p.x = p.startX
	p.y = p.startY
	p.VerticalVelocity = 0
	p.State = PlayerIdle
	p.JumpCount = 0
	p.AliveTimeMs = 0
	p.MaxHeightReached = p.startY
	p.Rotation = 0
	p.Scale = 1
	p.rotTween = nil
	p.scaleTween = nil
}

// SetStart moves the reset position. Used when the play area is resized.
func (p *Player) SetStart(x, y float64) {
	p.startX = x
	p.startY = y
}

// SetFloor changes the floor boundary.
func (p *Player) SetFloor(floorY float64) {
	p.floorY = floorY
}

// Floor returns the floor boundary.
func (p *Player) Floor() float64 {
	return p.floorY
}

// IsDead reports whether the player has died since the last reset.
func (p *Player) IsDead() bool {
	return p.State == PlayerDead
}

// Jump applies the flap impulse. Callers only invoke it while playing.
func (p *Player) Jump() {
	if p.IsDead() {
		return
	}
	p.VerticalVelocity = p.physics.JumpVelocity
	p.JumpCount++
	p.rotTween = gween.New(float32(p.Rotation), flapRotation, 0.12, ease.OutQuad)
	p.scaleTween = gween.New(flapScale, 1, 0.25, ease.OutBack)
}

// Tick advances physics by dt seconds. It returns false once the player
// reaches the floor; a dead player is left untouched and keeps returning false.
func (p *Player) Tick(dt float64) bool {
	if p.IsDead() {
		return false
	}

	p.VerticalVelocity += p.physics.Gravity * dt
	if p.VerticalVelocity > p.physics.TerminalVelocity {
		p.VerticalVelocity = p.physics.TerminalVelocity
	}

	p.y = max(0, p.y+p.VerticalVelocity*dt)
	p.MaxHeightReached = min(p.MaxHeightReached, p.y)
	p.AliveTimeMs += dt * 1000

	prev := p.State
	p.State = p.deriveState()
	if p.State == PlayerDescending && prev != PlayerDescending {
		p.rotTween = gween.New(float32(p.Rotation), diveRotation, 0.6, ease.InQuad)
	}
	p.updateTweens(dt)

	if p.y+p.h >= p.floorY {
		p.State = PlayerDead
		return false
	}
	return true
}

// Kill marks the player dead, e.g. after an obstacle collision.
func (p *Player) Kill() {
	p.State = PlayerDead
}

func (p *Player) deriveState() PlayerState {
	switch {
	case p.VerticalVelocity < -p.physics.IdleThreshold:
		return PlayerAscending
	case p.VerticalVelocity > p.physics.IdleThreshold:
		return PlayerDescending
	default:
		return PlayerIdle
	}
}

func (p *Player) updateTweens(dt float64) {
	if p.rotTween != nil {
		rot, done := p.rotTween.Update(float32(dt))
		p.Rotation = float64(rot)
		if done {
			p.rotTween = nil
		}
	}
	if p.scaleTween != nil {
		scale, done := p.scaleTween.Update(float32(dt))
		p.Scale = float64(scale)
		if done {
			p.scaleTween = nil
			p.Scale = 1
		}
	}
}
