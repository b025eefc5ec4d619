package tui

import (
	"io"
	"os"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-flappy/internal/assets"
	"github.com/vovakirdan/tui-flappy/internal/config"
	"github.com/vovakirdan/tui-flappy/internal/core"
	"github.com/vovakirdan/tui-flappy/internal/games/flappy"
)

var t0 = time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)

func newTestModel(t *testing.T, width, height int) Model {
	t.Helper()
	session := flappy.NewSession(flappy.Options{
		Config:  config.DefaultFlappyConfig(),
		Runtime: playArea(core.RuntimeConfig{ScreenW: width, ScreenH: height, Seed: 7}),
		Player:  "tester",
		Assets:  assets.Static{},
	})
	m := NewModel(session, width, height, 60,
		WithScreenshotDir(t.TempDir()),
		WithLogger(log.New(io.Discard)),
	)
	m, _ = update(t, m, FrameMsg(t0))
	if got := m.Session().State(); got != flappy.StateMenu {
		t.Fatalf("state after first frame = %v, expected Menu", got)
	}
	return m
}

func update(t *testing.T, m Model, msg tea.Msg) (Model, tea.Cmd) {
	t.Helper()
	next, cmd := m.Update(msg)
	nm, ok := next.(Model)
	if !ok {
		t.Fatalf("Update returned %T, expected Model", next)
	}
	return nm, cmd
}

func TestModelKeysDriveSession(t *testing.T) {
	m := newTestModel(t, 80, 25)

	steps := []struct {
		msg  tea.Msg
		want flappy.State
	}{
		{tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}}, flappy.StatePlaying},
		{runes("p"), flappy.StatePaused},
		{runes("p"), flappy.StatePlaying},
		{tea.KeyMsg{Type: tea.KeyEsc}, flappy.StatePaused},
		{tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}}, flappy.StatePlaying},
	}
	for i, s := range steps {
		m, _ = update(t, m, s.msg)
		if got := m.Session().State(); got != s.want {
			t.Fatalf("step %d: state = %v, expected %v", i, got, s.want)
		}
	}
}

func TestModelQuit(t *testing.T) {
	m := newTestModel(t, 80, 25)

	m, cmd := update(t, m, runes("q"))
	if cmd == nil {
		t.Fatal("expected a quit command")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Error("expected tea.QuitMsg from q")
	}
	if m.View() != "" {
		t.Error("expected empty view after quitting")
	}
}

func TestModelBlurPauses(t *testing.T) {
	m := newTestModel(t, 80, 25)
	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}})

	m, _ = update(t, m, tea.BlurMsg{})
	if got := m.Session().State(); got != flappy.StatePaused {
		t.Errorf("state after blur = %v, expected Paused", got)
	}

	// Blur outside of play changes nothing
	m, _ = update(t, m, tea.BlurMsg{})
	if got := m.Session().State(); got != flappy.StatePaused {
		t.Errorf("state after second blur = %v, expected Paused", got)
	}
}

func TestModelClickStartsAndFlaps(t *testing.T) {
	m := newTestModel(t, 80, 25)
	click := tea.MouseMsg{Action: tea.MouseActionPress, Button: tea.MouseButtonLeft}

	m, _ = update(t, m, click)
	if got := m.Session().State(); got != flappy.StatePlaying {
		t.Fatalf("state after click = %v, expected Playing", got)
	}

	m, _ = update(t, m, click)
	if got := m.Session().Player().JumpCount; got != 1 {
		t.Errorf("jumps after second click = %d, expected 1", got)
	}
}

func TestModelFrameAdvancesGame(t *testing.T) {
	m := newTestModel(t, 80, 25)
	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}})

	now := t0
	for range 10 {
		now = now.Add(16 * time.Millisecond)
		var cmd tea.Cmd
		m, cmd = update(t, m, FrameMsg(now))
		if cmd == nil {
			t.Fatal("expected the next frame to be scheduled")
		}
	}
	if m.Session().Ticks() == 0 {
		t.Error("expected fixed steps to run while playing")
	}
}

func TestModelResize(t *testing.T) {
	m := newTestModel(t, 80, 25)

	m, _ = update(t, m, tea.WindowSizeMsg{Width: 100, Height: 30})

	// 30 rows: 29 of play area, the last of which is ground
	if got := m.Session().Player().Floor(); got != 28 {
		t.Errorf("floor after resize = %v, expected 28", got)
	}
	if got := strings.Count(m.View(), "\n"); got != 29 {
		t.Errorf("view has %d line breaks, expected 29", got)
	}
}

func TestModelHelpKeepsHeight(t *testing.T) {
	m := newTestModel(t, 80, 25)
	short := strings.Count(m.View(), "\n")

	m, _ = update(t, m, runes("?"))
	full := strings.Count(m.View(), "\n")

	if short != 24 || full != short {
		t.Errorf("line breaks: short help %d, full help %d, expected 24 both", short, full)
	}
	if !strings.Contains(m.View(), "screenshot") {
		t.Error("full help should list the screenshot binding")
	}
}

func TestModelScreenshot(t *testing.T) {
	dir := t.TempDir()
	session := flappy.NewSession(flappy.Options{
		Config:  config.DefaultFlappyConfig(),
		Runtime: core.RuntimeConfig{ScreenW: 80, ScreenH: 24, Seed: 7},
		Assets:  assets.Static{},
	})
	m := NewModel(session, 80, 25, 60, WithScreenshotDir(dir), WithLogger(log.New(io.Discard)))
	m, _ = update(t, m, FrameMsg(t0))

	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyCtrlS})

	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatalf("ReadDir: %v", err)
	}
	if len(entries) != 1 {
		t.Fatalf("expected 1 screenshot, got %d", len(entries))
	}
	if !strings.HasPrefix(entries[0].Name(), "flappy_") {
		t.Errorf("unexpected screenshot name %q", entries[0].Name())
	}
	data, err := os.ReadFile(dir + "/" + entries[0].Name())
	if err != nil {
		t.Fatalf("ReadFile: %v", err)
	}
	if !strings.Contains(string(data), "FLAPPY") {
		t.Error("screenshot should contain the menu panel")
	}
	if !strings.Contains(m.View(), "saved flappy_") {
		t.Error("expected the status bar to confirm the screenshot")
	}
}

func TestRenderScreenPlainText(t *testing.T) {
	s := core.NewScreen(4, 2)
	s.SetColor(0, 0, 'a', core.ColorRed)
	s.SetColor(1, 0, 'b', core.ColorRed)
	s.Set(0, 1, 'c')

	out := RenderScreen(s)
	if got := strings.Count(out, "\n"); got != 1 {
		t.Errorf("expected 1 line break, got %d", got)
	}
	if !strings.Contains(out, "ab") {
		t.Error("same-coloured cells should render as one run")
	}
}
