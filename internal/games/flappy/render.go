package flappy

import (
	"errors"
	"fmt"
	"math"

	"github.com/vovakirdan/tui-flappy/internal/assets"
	"github.com/vovakirdan/tui-flappy/internal/core"
	"github.com/vovakirdan/tui-flappy/internal/leaderboard"
)

// Placeholder glyphs used until (or instead of) sprites.
const (
	PlayerChar    = '▶'
	PlayerBody    = '●'
	PipeChar      = '█'
	PipeCapTop    = '▄'
	PipeCapBottom = '▀'
	GroundChar    = '═'
)

// tierColor is the fallback obstacle colour per level tier.
func tierColor(tier int) core.Color {
	if tier >= 2 {
		return core.ColorMagenta
	}
	return core.ColorGreen
}

// Render draws the frame: background, obstacles, particles, player, HUD,
// then the overlay for the current state.
func (s *Session) Render(dst *core.Screen) {
	dst.Clear()

	s.drawBackground(dst)
	for _, o := range s.pool.Active() {
		s.drawObstacle(dst, o)
	}
	s.drawParticles(dst)
	s.drawPlayer(dst)
	s.drawHUD(dst)

	switch s.machine.State() {
	case StateLoading:
		drawPanel(dst, core.ColorCyan, "LOADING", "preparing sprites…")
	case StateMenu:
		drawPanel(dst, core.ColorBrightYellow,
			"FLAPPY",
			"",
			"SPACE / click to flap",
			"P to pause, Q to quit",
			fmt.Sprintf("best: %d", s.bestScore),
		)
	case StatePaused:
		drawPanel(dst, core.ColorCyan, "PAUSED", "press P or SPACE to resume")
	case StateGameOver:
		if s.showBoard {
			s.drawBoard(dst)
		} else {
			s.drawGameOver(dst)
		}
	}

	if s.debug {
		s.drawDebug(dst)
	}
}

func (s *Session) drawBackground(dst *core.Screen) {
	groundY := int(s.floorY())
	if sp, ok := s.assets.Get("ground"); ok {
		r := []rune(sp.Rows[0])
		for x := 0; x < dst.Width(); x++ {
			dst.SetColor(x, groundY, r[x%len(r)], sp.Color)
		}
		return
	}
	dst.DrawHLine(0, groundY, dst.Width(), GroundChar, core.ColorGray)
}

func (s *Session) drawObstacle(dst *core.Screen, o *Obstacle) {
	fill, color := PipeChar, tierColor(o.LevelTier)
	if sp, ok := s.assets.Get(fmt.Sprintf("obstacle_tier%d", o.LevelTier)); ok {
		fill, color = []rune(sp.Rows[0])[0], sp.Color
	}
	capRune, capColor := PipeCapBottom, color
	if o.Kind == KindTop {
		capRune = PipeCapTop
	}
	if sp, ok := s.assets.Get("obstacle_cap"); ok && o.Kind == KindBottom {
		capRune, capColor = []rune(sp.Rows[0])[0], sp.Color
	}

	cells := o.Bounds().Cells()
	groundY := int(s.floorY())
	top := max(cells.Y, 0)
	bottom := min(cells.Bottom(), groundY)
	if top >= bottom {
		return
	}
	dst.DrawRect(core.NewRect(cells.X, top, cells.W, bottom-top), fill, color)

	// Cap on the edge facing the gap
	capY := cells.Y
	if o.Kind == KindTop {
		capY = cells.Bottom() - 1
	}
	if capY >= top && capY < bottom {
		dst.DrawHLine(cells.X, capY, cells.W, capRune, capColor)
	}
}

func (s *Session) drawParticles(dst *core.Screen) {
	for _, p := range s.particles.Live() {
		r, c := '·', core.ColorBrightGreen
		if p.Tier >= 2 {
			r, c = '*', core.ColorBrightMagenta
		}
		if p.Fade() < 0.3 {
			r = '.'
		}
		dst.SetColor(int(math.Floor(p.X)), int(math.Floor(p.Y)), r, c)
	}
}

func (s *Session) playerSprite() string {
	p := s.player
	switch {
	case p.IsDead():
		return "player_dead"
	case p.Rotation < -10:
		return "player_up"
	case p.Rotation > 30:
		return "player_down"
	default:
		return "player"
	}
}

func (s *Session) drawPlayer(dst *core.Screen) {
	p := s.player
	cells := p.Bounds().Cells()

	sp, ok := s.assets.Get(s.playerSprite())
	if !ok {
		sp, ok = s.assets.Get("player")
	}
	if !ok {
		sp = placeholderPlayer(cells.W, cells.H)
	}

	color := sp.Color
	if p.Scale > 1.1 {
		color = core.ColorWhite // Flap flash
	}
	drawSprite(dst, cells.X, cells.Y, sp, color)
}

// placeholderPlayer is a w×h block of body glyphs with a beak at the top right.
func placeholderPlayer(w, h int) assets.Sprite {
	rows := make([]string, h)
	for y := range rows {
		row := make([]rune, w)
		for x := range row {
			row[x] = PlayerBody
		}
		if y == 0 {
			row[w-1] = PlayerChar
		}
		rows[y] = string(row)
	}
	return assets.Sprite{Rows: rows, Color: core.ColorYellow}
}

// drawSprite draws rows at (x, y). Spaces are transparent.
func drawSprite(dst *core.Screen, x, y int, sp assets.Sprite, c core.Color) {
	for dy, row := range sp.Rows {
		dx := 0
		for _, r := range row {
			if r != ' ' {
				dst.SetColor(x+dx, y+dy, r, c)
			}
			dx++
		}
	}
}

func (s *Session) drawHUD(dst *core.Screen) {
	dst.DrawTextColor(2, 0, fmt.Sprintf(" Score: %d ", s.score), core.ColorWhite)

	right := fmt.Sprintf(" Best: %d  Lv %d ", s.bestScore, s.level.Number)
	dst.DrawTextColor(dst.Width()-len([]rune(right))-2, 0, right, core.ColorGray)
}

func (s *Session) drawGameOver(dst *core.Screen) {
	lines := []string{
		"GAME OVER",
		"",
		fmt.Sprintf("score %d  ·  best %d", s.score, s.bestScore),
	}
	if s.newBest {
		lines = append(lines, "new best!")
	}
	if s.submitStatus != "" {
		lines = append(lines, s.submitStatus)
	}
	lines = append(lines, "", "SPACE/R restart  ·  L leaderboard  ·  B menu")
	drawPanel(dst, core.ColorRed, lines...)
}

func (s *Session) drawBoard(dst *core.Screen) {
	lines := []string{"LEADERBOARD", ""}

	switch {
	case s.boardErr != nil && len(s.board) == 0:
		lines = append(lines, boardError(s.boardErr))
	case len(s.board) == 0 && s.Pending():
		lines = append(lines, "loading leaderboard…")
	case len(s.board) == 0:
		lines = append(lines, "no runs yet")
	default:
		for _, st := range s.board {
			lines = append(lines, fmt.Sprintf("%2d. %-12s %5d", st.Rank, truncate(st.Player, 12), st.Score))
		}
	}

	if s.rank != nil {
		lines = append(lines, "", fmt.Sprintf("you: #%d of %d  (best %d)", s.rank.Rank, s.rank.Total, s.rank.BestScore))
	}
	lines = append(lines, "", "L/B close")
	drawPanel(dst, core.ColorCyan, lines...)
}

func boardError(err error) string {
	if errors.Is(err, leaderboard.ErrUnauthenticated) {
		return "sign in to see your rank"
	}
	return "leaderboard offline"
}

func (s *Session) drawDebug(dst *core.Screen) {
	dst.DrawBox(s.player.Bounds().Cells(), core.ColorRed)
	for _, o := range s.pool.Active() {
		dst.DrawBox(o.Bounds().Cells(), core.ColorOrange)
	}

	stats := fmt.Sprintf(" %s  tick %d  pool %d/%d free %d ovf %d  fps %.0f  v %.1f ",
		s.machine.State(), s.ticks,
		len(s.pool.Active()), s.pool.Len(), s.pool.FreeCount(), s.pool.Overflows(),
		s.fps, s.player.VerticalVelocity,
	)
	dst.DrawTextColor(1, 1, stats, core.ColorGray)
}

// drawPanel draws a bordered box of centered lines in the middle of the screen.
func drawPanel(dst *core.Screen, c core.Color, lines ...string) {
	width := 0
	for _, l := range lines {
		width = max(width, len([]rune(l)))
	}
	boxW := width + 4
	boxH := len(lines) + 2
	boxX := (dst.Width() - boxW) / 2
	boxY := (dst.Height() - boxH) / 2

	box := core.NewRect(boxX, boxY, boxW, boxH)
	dst.DrawRect(box, ' ', core.ColorDefault)
	dst.DrawBox(box, c)

	for i, l := range lines {
		x := boxX + (boxW-len([]rune(l)))/2
		color := core.ColorWhite
		if i == 0 {
			color = c
		}
		dst.DrawTextColor(x, boxY+1+i, l, color)
	}
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-1]) + "…"
}
