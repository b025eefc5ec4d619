package tui

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/tui-flappy/internal/leaderboard"
)

// Board layout constants
const (
	boardRows       = 50 // Standings to fetch
	boardChrome     = 8  // Title, rank line, help and margins
	boardMinTableH  = 3
	boardDateLayout = "Jan 02 15:04"
)

// BoardKeyMap defines the key bindings for the leaderboard screen.
type BoardKeyMap struct {
	Up      key.Binding
	Down    key.Binding
	Refresh key.Binding
	Quit    key.Binding
}

// ShortHelp returns key bindings for the short help view.
func (k BoardKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.Refresh, k.Quit}
}

// FullHelp returns key bindings for the full help view.
func (k BoardKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{k.ShortHelp()}
}

// DefaultBoardKeyMap returns default key bindings.
func DefaultBoardKeyMap() BoardKeyMap {
	return BoardKeyMap{
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("up/k", "scroll up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("down/j", "scroll down"),
		),
		Refresh: key.NewBinding(
			key.WithKeys("r"),
			key.WithHelp("r", "refresh"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "esc", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}

// boardLoadedMsg carries one fetch of the leaderboard.
type boardLoadedMsg struct {
	standings []leaderboard.Standing
	rank      *leaderboard.Rank
	err       error
	rankErr   error
}

// BoardModel is the Bubble Tea model for the leaderboard screen.
type BoardModel struct {
	gw      leaderboard.Gateway
	timeout time.Duration
	table   table.Model
	help    help.Model
	spinner spinner.Model
	keys    BoardKeyMap

	standings []leaderboard.Standing
	rank      *leaderboard.Rank
	err       error
	rankErr   error
	loading   bool
	width     int
	height    int
}

// NewBoardModel creates a leaderboard screen reading from gw.
func NewBoardModel(gw leaderboard.Gateway, width, height int) BoardModel {
	if gw == nil {
		gw = leaderboard.Offline{}
	}
	sp := spinner.New()
	sp.Spinner = spinner.MiniDot

	m := BoardModel{
		gw:      gw,
		timeout: leaderboard.DefaultTimeout,
		help:    help.New(),
		spinner: sp,
		keys:    DefaultBoardKeyMap(),
		loading: true,
		width:   width,
		height:  height,
	}
	m.table = m.createTable()
	return m
}

func (m *BoardModel) createTable() table.Model {
	columns := []table.Column{
		{Title: "Rank", Width: 6},
		{Title: "Player", Width: 16},
		{Title: "Score", Width: 8},
		{Title: "Level", Width: 6},
		{Title: "Runs", Width: 6},
		{Title: "Date", Width: 14},
	}
	// Give spare width to the player column
	if spare := m.width - 4 - 56 - 2*len(columns); spare > 0 {
		columns[1].Width += min(spare, 16)
	}

	t := table.New(
		table.WithColumns(columns),
		table.WithFocused(true),
		table.WithHeight(max(m.height-boardChrome, boardMinTableH)),
	)

	s := table.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("240")).
		BorderBottom(true).
		Bold(true)
	s.Selected = s.Selected.
		Foreground(lipgloss.Color("229")).
		Background(lipgloss.Color("57")).
		Bold(false)
	t.SetStyles(s)
	return t
}

// fetch loads the standings and the player's rank.
func (m BoardModel) fetch() tea.Msg {
	ctx, cancel := context.WithTimeout(context.Background(), m.timeout)
	defer cancel()

	var msg boardLoadedMsg
	msg.standings, msg.err = m.gw.TopN(ctx, boardRows)
	msg.rank, msg.rankErr = m.gw.UserRank(ctx)
	return msg
}

func (m *BoardModel) updateTableRows() {
	rows := make([]table.Row, len(m.standings))
	for i, s := range m.standings {
		date := ""
		if !s.AchievedAt.IsZero() {
			date = s.AchievedAt.Local().Format(boardDateLayout)
		}
		rows[i] = table.Row{
			fmt.Sprintf("#%d", s.Rank),
			s.Player,
			fmt.Sprintf("%d", s.Score),
			fmt.Sprintf("%d", s.LevelReached),
			fmt.Sprintf("%d", s.Runs),
			date,
		}
	}
	m.table.SetRows(rows)
	m.table.GotoTop()
}

// Init starts the first fetch.
func (m BoardModel) Init() tea.Cmd {
	return tea.Batch(m.fetch, m.spinner.Tick)
}

// Update handles messages for the leaderboard screen.
func (m BoardModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			return m, tea.Quit
		case key.Matches(msg, m.keys.Refresh):
			if m.loading {
				return m, nil
			}
			m.loading = true
			return m, tea.Batch(m.fetch, m.spinner.Tick)
		}

	case boardLoadedMsg:
		m.loading = false
		m.standings, m.rank = msg.standings, msg.rank
		m.err, m.rankErr = msg.err, msg.rankErr
		m.updateTableRows()
		return m, nil

	case spinner.TickMsg:
		if !m.loading {
			return m, nil
		}
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.table = m.createTable()
		m.updateTableRows()
		m.help.Width = msg.Width
		return m, nil
	}

	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

// View renders the leaderboard.
func (m BoardModel) View() string {
	var b strings.Builder

	titleStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("229"))
	b.WriteString(titleStyle.Render("FLAPPY LEADERBOARD"))
	b.WriteString("\n\n")

	boxStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("240")).
		Padding(0, 1)
	b.WriteString(boxStyle.Render(m.tableContent()))
	b.WriteString("\n")

	b.WriteString(statusStyle.Render(m.rankLine()))
	b.WriteString("\n\n")
	b.WriteString(statusStyle.Render(m.help.View(m.keys)))
	return b.String()
}

func (m BoardModel) tableContent() string {
	emptyStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("241")).
		Italic(true).
		Padding(1, 4)

	switch {
	case m.loading && len(m.standings) == 0:
		return emptyStyle.Render(m.spinner.View() + " loading leaderboard…")
	case m.err != nil:
		return emptyStyle.Render("Leaderboard unavailable.\n" + m.err.Error())
	case len(m.standings) == 0:
		return emptyStyle.Render("No runs recorded yet.\nPlay a game to claim the top spot!")
	}
	return m.table.View()
}

func (m BoardModel) rankLine() string {
	switch {
	case m.loading:
		return ""
	case errors.Is(m.rankErr, leaderboard.ErrUnauthenticated):
		return "Playing anonymously: set --name to get a rank."
	case m.rankErr != nil:
		return "Your rank is unavailable."
	case m.rank == nil:
		return "You have no runs yet."
	}
	return fmt.Sprintf("You are #%d of %d with %d (%d runs).",
		m.rank.Rank, m.rank.Total, m.rank.BestScore, m.rank.Runs)
}

// RunBoard shows the leaderboard screen until the user quits.
func RunBoard(gw leaderboard.Gateway, width, height int) error {
	p := tea.NewProgram(NewBoardModel(gw, width, height), tea.WithAltScreen())
	_, err := p.Run()
	return err
}
