package flappy

import (
	"testing"

	"github.com/vovakirdan/tui-flappy/internal/config"
)

func testPhysics() config.FlappyPhysics {
	return config.FlappyPhysics{
		Gravity:          120,
		JumpVelocity:     -32,
		TerminalVelocity: 40,
		ScrollSpeed:      24,
		IdleThreshold:    2,
	}
}

func TestPlayerGravityClamp(t *testing.T) {
	p := NewPlayer(10, 0, 2, 2, 1e9, testPhysics())

	for i := 0; i < 1000; i++ {
		p.Tick(1.0 / 60)
		if p.VerticalVelocity > 40 {
			t.Fatalf("tick %d: velocity %f exceeds terminal velocity", i, p.VerticalVelocity)
		}
	}
	if p.VerticalVelocity != 40 {
		t.Errorf("velocity = %f, expected to settle at 40", p.VerticalVelocity)
	}
	if p.State != PlayerDescending {
		t.Errorf("state = %v, expected Descending", p.State)
	}
}

func TestPlayerJump(t *testing.T) {
	p := NewPlayer(10, 10, 2, 2, 22, testPhysics())

	p.Jump()
	if p.VerticalVelocity != -32 {
		t.Errorf("velocity = %f, expected -32", p.VerticalVelocity)
	}
	if p.JumpCount != 1 {
		t.Errorf("JumpCount = %d, expected 1", p.JumpCount)
	}

	p.Tick(0.05)
	if _, y := p.Position(); y >= 10 {
		t.Errorf("jump should move player up, y = %f", y)
	}
	if p.State != PlayerAscending {
		t.Errorf("state = %v, expected Ascending", p.State)
	}
	if p.Rotation >= 0 {
		t.Errorf("rotation = %f, expected a nose-up tilt", p.Rotation)
	}
	if p.Scale <= 1 {
		t.Errorf("scale = %f, expected the flap squash", p.Scale)
	}
}

func TestPlayerTopBoundary(t *testing.T) {
	p := NewPlayer(10, 1, 2, 2, 22, testPhysics())
	p.Jump()
	// Four ticks keep the velocity negative
	for i := 0; i < 4; i++ {
		if !p.Tick(0.05) {
			t.Fatal("hitting the ceiling must not kill the player")
		}
	}
	if _, y := p.Position(); y != 0 {
		t.Errorf("y = %f, expected clamp to 0", y)
	}
	if p.MaxHeightReached != 0 {
		t.Errorf("MaxHeightReached = %f, expected 0", p.MaxHeightReached)
	}
}

func TestPlayerMaxHeightMonotonic(t *testing.T) {
	p := NewPlayer(10, 10, 2, 2, 1e9, testPhysics())
	last := p.MaxHeightReached
	for i := 0; i < 200; i++ {
		if i%20 == 0 {
			p.Jump()
		}
		p.Tick(1.0 / 60)
		if p.MaxHeightReached > last {
			t.Fatalf("tick %d: MaxHeightReached increased from %f to %f", i, last, p.MaxHeightReached)
		}
		last = p.MaxHeightReached
	}
}

func TestPlayerDeathOnFloor(t *testing.T) {
	p := NewPlayer(10, 18, 2, 2, 22, testPhysics())

	deaths := 0
	alive := true
	for i := 0; i < 120 && alive; i++ {
		alive = p.Tick(1.0 / 60)
		if !alive {
			deaths++
		}
	}
	if deaths != 1 {
		t.Fatalf("expected to die exactly once, got %d", deaths)
	}
	if !p.IsDead() {
		t.Error("state should be Dead")
	}
	if _, y := p.Position(); y+2 < 22 {
		t.Errorf("died above the floor at y = %f", y)
	}

	aliveMs, maxH, vel := p.AliveTimeMs, p.MaxHeightReached, p.VerticalVelocity
	_, y := p.Position()
	for i := 0; i < 10; i++ {
		if p.Tick(1.0 / 60) {
			t.Fatal("a dead player must not come back")
		}
	}
	if p.AliveTimeMs != aliveMs || p.MaxHeightReached != maxH || p.VerticalVelocity != vel {
		t.Error("ticks after death must not change the player")
	}
	if _, y2 := p.Position(); y2 != y {
		t.Errorf("y moved after death: %f -> %f", y, y2)
	}

	p.Jump()
	if p.JumpCount != 0 {
		t.Error("a dead player cannot jump")
	}
}

func TestPlayerReset(t *testing.T) {
	p := NewPlayer(10, 9, 2, 2, 22, testPhysics())
	for i := 0; i < 30; i++ {
		if i%10 == 0 {
			p.Jump()
		}
		p.Tick(1.0 / 60)
	}
	p.Kill()

	p.Reset()
	if x, y := p.Position(); x != 10 || y != 9 {
		t.Errorf("position = (%f, %f), expected (10, 9)", x, y)
	}
	if p.VerticalVelocity != 0 || p.JumpCount != 0 || p.AliveTimeMs != 0 {
		t.Errorf("reset left velocity=%f jumps=%d alive=%f", p.VerticalVelocity, p.JumpCount, p.AliveTimeMs)
	}
	if p.MaxHeightReached != 9 || p.State != PlayerIdle {
		t.Errorf("reset left maxHeight=%f state=%v", p.MaxHeightReached, p.State)
	}
	if p.Rotation != 0 || p.Scale != 1 {
		t.Errorf("reset left rotation=%f scale=%f", p.Rotation, p.Scale)
	}
}

func TestPlayerMinimumSize(t *testing.T) {
	p := NewPlayer(0, 0, 0, -3, 22, testPhysics())
	if w, h := p.Size(); w <= 0 || h <= 0 {
		t.Errorf("size = %fx%f, expected positive", w, h)
	}
}
