package tui

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-flappy/internal/core"
	"github.com/vovakirdan/tui-flappy/internal/games/flappy"
)

// noticeTTL is how long a one-off status message stays up.
const noticeTTL = 3 * time.Second

// Model is the Bubble Tea model driving one game session.
type Model struct {
	session *flappy.Session
	screen  *core.Screen
	keys    KeyMap
	help    help.Model
	spinner spinner.Model
	fps     int
	log     *log.Logger

	screenshotDir string
	notice        string
	noticeUntil   time.Time

	width    int
	spinning bool
	quitting bool
}

// ModelOption configures a Model.
type ModelOption func(*Model)

// WithScreenshotDir changes where ctrl+s screenshots are written.
func WithScreenshotDir(dir string) ModelOption {
	return func(m *Model) { m.screenshotDir = dir }
}

// WithLogger sets the logger for UI events.
func WithLogger(logger *log.Logger) ModelOption {
	return func(m *Model) {
		if logger != nil {
			m.log = logger
		}
	}
}

// NewModel creates a model for session, drawn at fps frames per second.
// width and height are the full terminal size.
func NewModel(session *flappy.Session, width, height, fps int, opts ...ModelOption) Model {
	area := playArea(core.RuntimeConfig{ScreenW: width, ScreenH: height})

	sp := spinner.New()
	sp.Spinner = spinner.MiniDot
	sp.Style = noticeStyle

	h := help.New()
	h.Width = width

	m := Model{
		session:       session,
		screen:        core.NewScreen(area.ScreenW, area.ScreenH),
		keys:          DefaultKeyMap(),
		help:          h,
		spinner:       sp,
		fps:           fps,
		log:           log.New(io.Discard),
		screenshotDir: defaultScreenshotDir(),
		width:         width,
	}
	for _, opt := range opts {
		opt(&m)
	}
	return m
}

func defaultScreenshotDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(".arcade", "screenshots")
	}
	return filepath.Join(home, ".arcade", "screenshots")
}

// Init starts the frame loop.
func (m Model) Init() tea.Cmd {
	return frameCmd(m.fps)
}

// Update handles messages and updates the model state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.MouseMsg:
		m.session.HandleAction(MouseAction(msg))
		return m, nil

	case tea.BlurMsg:
		m.session.Blur()
		return m, nil

	case tea.WindowSizeMsg:
		return m.handleResize(msg)

	case FrameMsg:
		return m.handleFrame(time.Time(msg))

	case spinner.TickMsg:
		if !m.session.Pending() {
			m.spinning = false
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	}

	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Screenshot):
		m.saveScreenshot()
		return m, nil
	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll
		return m, nil
	}

	action := m.keys.Action(msg)
	if action == core.ActionQuit {
		m.quitting = true
		return m, tea.Quit
	}
	m.session.HandleAction(action)
	return m, nil
}

func (m Model) handleResize(msg tea.WindowSizeMsg) (tea.Model, tea.Cmd) {
	area := playArea(core.RuntimeConfig{ScreenW: msg.Width, ScreenH: msg.Height})
	m.screen.Resize(area.ScreenW, area.ScreenH)
	m.session.Resize(area.ScreenW, area.ScreenH)
	m.help.Width = msg.Width
	m.width = msg.Width
	return m, nil
}

func (m Model) handleFrame(now time.Time) (tea.Model, tea.Cmd) {
	m.session.Frame(now)

	cmds := []tea.Cmd{frameCmd(m.fps)}
	if m.session.Pending() && !m.spinning {
		m.spinning = true
		cmds = append(cmds, m.spinner.Tick)
	}
	if m.notice != "" && now.After(m.noticeUntil) {
		m.notice = ""
	}
	return m, tea.Batch(cmds...)
}

// saveScreenshot writes the current frame as plain text.
func (m *Model) saveScreenshot() {
	m.session.Render(m.screen)

	path, err := writeScreenshot(m.screenshotDir, m.screen, time.Now())
	if err != nil {
		m.log.Warn("screenshot failed", "err", err)
		m.setNotice("screenshot failed")
		return
	}
	m.log.Info("screenshot saved", "path", path)
	m.setNotice("saved " + filepath.Base(path))
}

func writeScreenshot(dir string, s *core.Screen, at time.Time) (string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("tui: cannot create screenshot directory: %w", err)
	}
	path := filepath.Join(dir, fmt.Sprintf("flappy_%s.txt", at.Format("20060102_150405")))
	if err := os.WriteFile(path, []byte(s.String()), 0o600); err != nil {
		return "", fmt.Errorf("tui: cannot write screenshot: %w", err)
	}
	return path, nil
}

func (m *Model) setNotice(s string) {
	m.notice = s
	m.noticeUntil = time.Now().Add(noticeTTL)
}

// View renders the play area followed by the status bar.
func (m Model) View() string {
	if m.quitting {
		return ""
	}

	m.session.Render(m.screen)
	world := RenderScreen(m.screen)

	if m.help.ShowAll {
		// Full help takes over the bottom rows of the play area.
		full := statusStyle.Render(m.help.View(m.keys))
		rows := strings.Split(world, "\n")
		keep := max(len(rows)-strings.Count(full, "\n"), 0)
		return strings.Join(rows[:keep], "\n") + "\n" + full
	}
	return world + "\n" + m.statusBar()
}

func (m Model) statusBar() string {
	right := m.session.Status()
	if m.notice != "" {
		right = m.notice
	}
	if m.session.Pending() {
		right = m.spinner.View() + " " + right
	}
	right = noticeStyle.Render(right)
	return statusLine(statusStyle.Render(m.help.View(m.keys)), right, m.width)
}

// Session returns the session this model drives.
func (m Model) Session() *flappy.Session {
	return m.session
}

// Run starts an interactive program for session in the current terminal.
func Run(session *flappy.Session, width, height, fps int, opts ...ModelOption) error {
	model := NewModel(session, width, height, fps, opts...)

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(),
		tea.WithMouseCellMotion(),
		tea.WithReportFocus(),
	)

	_, err := p.Run()
	return err
}
