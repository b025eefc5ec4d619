package flappy

import (
	"errors"
	"fmt"
	"time"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-flappy/internal/assets"
	"github.com/vovakirdan/tui-flappy/internal/audio"
	"github.com/vovakirdan/tui-flappy/internal/config"
	"github.com/vovakirdan/tui-flappy/internal/core"
	"github.com/vovakirdan/tui-flappy/internal/leaderboard"
)

// boardSize is how many standings the leaderboard panel requests.
const boardSize = 8

// groundRows is the number of rows below the floor line.
const groundRows = 1

// BestScoreStore persists a player's best score across sessions.
type BestScoreStore interface {
	LoadBest(player string) (int, error)
	SaveBest(player string, score int) error
}

// MemoryBest keeps best scores for the lifetime of the process only.
type MemoryBest map[string]int

func (m MemoryBest) LoadBest(player string) (int, error) {
	return m[player], nil
}

func (m MemoryBest) SaveBest(player string, score int) error {
	if score > m[player] {
		m[player] = score
	}
	return nil
}

// Options configures a Session. Zero-valued collaborators fall back to
// in-memory best scores, no sound, placeholder sprites and an offline leaderboard.
type Options struct {
	Config  config.FlappyConfig
	Runtime core.RuntimeConfig
	Player  string
	Best    BestScoreStore
	Gateway leaderboard.Gateway
	Sounds  audio.Sounds
	Assets  assets.Store
	Logger  *log.Logger
	Timeout time.Duration // Per leaderboard call
}

// Session owns one player's game: the clock, state machine, entities and
// collaborators. It is driven from a single goroutine.
type Session struct {
	cfg        config.FlappyConfig
	rt         core.RuntimeConfig
	identity   string
	log        *log.Logger
	machine    *Machine
	clock      *core.Clock
	player     *Player
	pool       *Pool
	spawner    *Spawner
	particles  *Particles
	difficulty *config.DifficultyManager
	dispatcher *leaderboard.Dispatcher
	best       BestScoreStore
	sounds     audio.Sounds
	assets     assets.Store

	score     int
	bestScore int
	newBest   bool
	level     config.Level
	ticks     int
	elapsed   float64 // Gameplay seconds this run
	runs      int
	runSeed   int64
	lastRun   *leaderboard.RunSummary
	panics    int
	lastFrame time.Time
	fps       float64

	debug        bool
	showBoard    bool
	boardGen     int // Bumped per fetch and per run; older results are dropped
	board        []leaderboard.Standing
	rank         *leaderboard.Rank
	boardErr     error
	submitStatus string
}

// NewSession creates a session in the Loading state.
func NewSession(opts Options) *Session {
	logger := opts.Logger
	if logger == nil {
		logger = discardLogger()
	}
	rt := opts.Runtime
	if rt.ScreenW <= 0 || rt.ScreenH <= 0 {
		def := core.DefaultConfig()
		rt.ScreenW, rt.ScreenH = def.ScreenW, def.ScreenH
	}
	if rt.TickRate <= 0 {
		rt.TickRate = opts.Config.Loop.TickRate
	}

	s := &Session{
		cfg:        opts.Config,
		rt:         rt,
		identity:   opts.Player,
		log:        logger,
		machine:    NewMachine(),
		clock:      core.NewClock(rt.TickRate, opts.Config.Loop.MaxFrame()),
		difficulty: config.NewDifficultyManager(opts.Config.Difficulty),
		dispatcher: leaderboard.NewDispatcher(opts.Gateway, opts.Timeout, logger),
		best:       opts.Best,
		sounds:     opts.Sounds,
		assets:     opts.Assets,
	}
	if s.best == nil {
		s.best = MemoryBest{}
	}
	if s.sounds == nil {
		s.sounds = audio.Nop{}
	}
	if s.assets == nil {
		s.assets = assets.Static{}
	}

	pc := s.cfg.Player
	s.player = NewPlayer(pc.X, s.startY(), pc.Width, pc.Height, s.floorY(), s.cfg.Physics)
	s.pool = NewPool(s.cfg.Obstacles.PoolSize, s.cfg.Obstacles.Width, s.cfg.Obstacles.Height, -s.cfg.Physics.ScrollSpeed, logger)
	s.runSeed = s.nextSeed()
	s.spawner = NewSpawner(&s.cfg, s.difficulty, s.runSeed)
	s.particles = NewParticles(s.runSeed)
	s.level = LevelForScore(0, s.cfg.Scoring.Levels)

	s.machine.OnTransition(s.onTransition)
	return s
}

// Frame runs one display frame at wall time now: it collects finished
// background work, then runs the fixed steps that are due if playing.
func (s *Session) Frame(now time.Time) {
	s.trackFPS(now)
	s.drainResults()

	if s.machine.State() == StateLoading && s.assets.Done() {
		s.machine.Fire(EventAssetsReady)
	}

	steps := s.clock.Advance(now)
	dt := s.clock.Step()
	for i := 0; i < steps && s.machine.State() == StatePlaying; i++ {
		s.safeStep(dt)
	}
}

// Step runs exactly one fixed step if playing. Tests and replays use it
// to drive the simulation without a wall clock.
func (s *Session) Step() {
	if s.machine.State() == StatePlaying {
		s.safeStep(s.clock.Step())
	}
}

// safeStep runs a gameplay step, turning a panic into a logged no-op so a
// single bad step never ends the session.
func (s *Session) safeStep(dt float64) {
	defer func() {
		if r := recover(); r != nil {
			s.panics++
			s.log.Error("gameplay step failed", "tick", s.ticks, "panic", r)
		}
	}()
	s.step(dt)
}

// step is one fixed update: player, obstacles and spawning, collision,
// pass/score, level. A point earned on the same step as a collision counts.
func (s *Session) step(dt float64) {
	s.ticks++
	s.elapsed += dt

	alive := s.player.Tick(dt)

	speed := s.difficulty.Speed(s.cfg.Physics.ScrollSpeed, s.score, s.ticks)
	s.pool.SetVelocity(-speed)
	s.pool.UpdateActive(dt)
	s.spawner.Update(dt, s.pool, float64(s.rt.ScreenW), s.floorY(), s.score, s.ticks, s.level.Tier)

	box := s.player.Bounds()
	hit := s.pool.CheckCollisions(box)

	passed := s.pool.CheckPassed(box)
	if units := s.pool.ProcessScoring(passed); units > 0 {
		s.addScore(units, passed)
	}

	if lvl := LevelForScore(s.score, s.cfg.Scoring.Levels); lvl.Number != s.level.Number {
		s.log.Debug("level up", "level", lvl.Number, "tier", lvl.Tier, "score", s.score)
		s.level = lvl
	}

	s.particles.Update(dt)

	if !alive || hit != nil {
		s.player.Kill()
		s.machine.Fire(EventDeath)
	}
}

func (s *Session) addScore(units int, passed []*Obstacle) {
	s.score += units * s.cfg.Scoring.PointsPerPair
	s.sounds.Play(audio.EffectScore)

	n := s.cfg.Effects.ParticlesPerScore
	if n <= 0 {
		return
	}
	for _, o := range passed {
		if o.Kind == KindBottom && o.HasBeenScored {
			s.particles.Burst(o.x+o.w, o.y, n, o.LevelTier, s.cfg.Effects.ParticleLifetime)
		}
	}
}

// HandleAction maps an input action to a state-dependent event.
// Quit is left to the caller.
func (s *Session) HandleAction(a core.Action) {
	state := s.machine.State()
	var ev Event
	switch a {
	case core.ActionDebug:
		s.debug = !s.debug
		return

	case core.ActionJump:
		switch state {
		case StatePaused:
			ev = EventResume
		case StateGameOver:
			ev = EventRestart
		default:
			ev = EventPrimary
		}

	case core.ActionPause:
		ev = EventPause
		if state == StatePaused {
			ev = EventResume
		}

	case core.ActionRestart:
		ev = EventRestart

	case core.ActionLeaderboard:
		if state == StateGameOver {
			s.toggleBoard()
		}
		return

	case core.ActionBack:
		if state == StateGameOver && s.showBoard {
			s.showBoard = false
			return
		}
		ev = EventBack

	default:
		return
	}

	if !s.machine.Can(ev) {
		s.log.Debug("action ignored", "action", a, "state", state)
		return
	}
	s.machine.Fire(ev)
}

// Blur pauses a running game when the terminal loses focus.
func (s *Session) Blur() {
	s.machine.Fire(EventPause)
}

func (s *Session) onTransition(from, to State, ev Event) {
	s.log.Debug("state transition", "from", from, "to", to, "event", ev)

	switch {
	case from == StateLoading:
		s.loadBest()
	case to == StatePlaying && (from == StateMenu || from == StateGameOver):
		s.resetRun()
	case from == StatePlaying && to == StatePlaying:
		s.player.Jump()
		s.sounds.Play(audio.EffectFlap)
	case from == StatePaused && to == StatePlaying:
		s.clock.Resync()
	case to == StateGameOver:
		s.endRun()
	case to == StateMenu:
		s.showBoard = false
	}
}

func (s *Session) loadBest() {
	best, err := s.best.LoadBest(s.identity)
	if err != nil {
		s.log.Warn("could not load best score", "player", s.identity, "err", err)
		return
	}
	s.bestScore = best
}

// resetRun puts the player, pool and counters back to a fresh run.
func (s *Session) resetRun() {
	s.player.SetStart(s.cfg.Player.X, s.startY())
	s.player.SetFloor(s.floorY())
	s.player.Reset()
	s.pool.Clear()
	s.pool.SetVelocity(-s.cfg.Physics.ScrollSpeed)
	s.particles.Clear()

	s.runs++
	s.runSeed = s.nextSeed()
	s.spawner.Reset(s.runSeed)

	s.score = 0
	s.ticks = 0
	s.elapsed = 0
	s.newBest = false
	s.level = LevelForScore(0, s.cfg.Scoring.Levels)
	s.showBoard = false
	s.boardGen++
	s.board = nil
	s.rank = nil
	s.boardErr = nil
	s.submitStatus = ""
	s.clock.Resync()
}

// endRun records the finished run: sound, best score, leaderboard submit.
func (s *Session) endRun() {
	s.sounds.Play(audio.EffectDeath)

	if s.score > s.bestScore {
		s.bestScore = s.score
		s.newBest = true
		if err := s.best.SaveBest(s.identity, s.score); err != nil {
			s.log.Warn("could not save best score", "player", s.identity, "err", err)
		}
	}

	summary := leaderboard.NewRunSummary(
		s.identity,
		s.score,
		s.level.Number,
		s.player.AliveTimeMs,
		s.player.JumpCount,
		s.player.MaxHeightReached,
	)
	s.lastRun = &summary
	s.submitStatus = "saving score…"
	s.dispatcher.SubmitRun(summary)

	s.log.Info("run ended",
		"player", s.identity,
		"score", s.score,
		"level", s.level.Number,
		"duration", time.Duration(s.player.AliveTimeMs*float64(time.Millisecond)).Round(time.Millisecond),
		"jumps", s.player.JumpCount,
	)
}

func (s *Session) toggleBoard() {
	s.showBoard = !s.showBoard
	if s.showBoard {
		s.boardGen++
		s.boardErr = nil
		s.dispatcher.FetchBoard(boardSize, s.boardGen)
	}
}

// drainResults applies finished leaderboard calls. Failures only change
// what the game over screen says.
func (s *Session) drainResults() {
	for _, res := range s.dispatcher.Drain() {
		switch res.Op {
		case leaderboard.OpSubmit:
			if s.lastRun == nil || res.RunID != s.lastRun.ID.String() {
				continue // A previous run's result
			}
			s.submitStatus = submitMessage(res.Err)
		case leaderboard.OpTopN:
			if res.Gen != s.boardGen {
				continue // Fetched for a panel that has since closed
			}
			if res.Err != nil {
				s.boardErr = res.Err
				continue
			}
			s.board = res.Standings
		case leaderboard.OpRank:
			if res.Gen != s.boardGen {
				continue
			}
			if res.Err != nil {
				if s.boardErr == nil {
					s.boardErr = res.Err
				}
				continue
			}
			s.rank = res.Rank
		}
	}
}

func submitMessage(err error) string {
	switch {
	case err == nil:
		return "score saved"
	case errors.Is(err, leaderboard.ErrOffline):
		return "leaderboard offline"
	case errors.Is(err, leaderboard.ErrUnauthenticated):
		return "not signed in, score kept locally"
	default:
		return "couldn't save score"
	}
}

// Resize adapts the play area. The current run keeps going; the player's
// floor moves with the bottom edge.
func (s *Session) Resize(w, h int) {
	if w <= 0 || h <= 0 {
		return
	}
	s.rt.ScreenW, s.rt.ScreenH = w, h
	s.player.SetFloor(s.floorY())
	s.player.SetStart(s.cfg.Player.X, s.startY())
	s.pool.FitFloor(s.floorY())
}

func (s *Session) trackFPS(now time.Time) {
	if !s.lastFrame.IsZero() {
		if d := now.Sub(s.lastFrame).Seconds(); d > 0 {
			// Exponential moving average keeps the readout steady
			s.fps = s.fps*0.9 + (1/d)*0.1
		}
	}
	s.lastFrame = now
}

func (s *Session) nextSeed() int64 {
	if s.rt.Seed != 0 {
		return s.rt.Seed
	}
	return time.Now().UnixNano()
}

// floorY is the first row the player may not occupy.
func (s *Session) floorY() float64 {
	return float64(s.rt.ScreenH - groundRows)
}

func (s *Session) startY() float64 {
	return float64(int(s.floorY() * s.cfg.Player.StartY))
}

// State returns the current state.
func (s *Session) State() State {
	return s.machine.State()
}

// Score returns the current run's score.
func (s *Session) Score() int {
	return s.score
}

// Best returns the best score known for this player.
func (s *Session) Best() int {
	return s.bestScore
}

// Level returns the level reached this run.
func (s *Session) Level() config.Level {
	return s.level
}

// Player returns the player entity. Callers must treat it as read-only.
func (s *Session) Player() *Player {
	return s.player
}

// Pool returns the obstacle pool. Callers must treat it as read-only.
func (s *Session) Pool() *Pool {
	return s.pool
}

// Elapsed returns gameplay time this run, which excludes paused time.
func (s *Session) Elapsed() time.Duration {
	return time.Duration(s.elapsed * float64(time.Second))
}

// Ticks returns the number of fixed steps this run.
func (s *Session) Ticks() int {
	return s.ticks
}

// LastRun returns the summary of the most recent finished run.
func (s *Session) LastRun() *leaderboard.RunSummary {
	return s.lastRun
}

// Identity returns the name runs are recorded under.
func (s *Session) Identity() string {
	return s.identity
}

// Debug reports whether the debug overlay is on.
func (s *Session) Debug() bool {
	return s.debug
}

// BoardOpen reports whether the leaderboard panel is shown.
func (s *Session) BoardOpen() bool {
	return s.showBoard
}

// Pending reports whether leaderboard calls are in flight.
func (s *Session) Pending() bool {
	return s.dispatcher.Pending() > 0
}

// Dispatcher exposes the leaderboard dispatcher, mainly so tests can wait on it.
func (s *Session) Dispatcher() *leaderboard.Dispatcher {
	return s.dispatcher
}

// Status is a one-line description for the status bar.
func (s *Session) Status() string {
	switch s.machine.State() {
	case StateLoading:
		return "loading sprites"
	case StateMenu:
		if s.identity != "" {
			return fmt.Sprintf("playing as %s", s.identity)
		}
		return "playing anonymously"
	case StatePlaying:
		return fmt.Sprintf("level %d", s.level.Number)
	case StatePaused:
		return "paused"
	case StateGameOver:
		if s.showBoard && s.Pending() {
			return "loading leaderboard…"
		}
		return s.submitStatus
	}
	return ""
}
