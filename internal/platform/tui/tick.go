// Package tui runs the game in a terminal with Bubble Tea. It owns the
// frame loop, maps keys and mouse to actions, and serves sessions over SSH.
package tui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// FrameMsg is sent once per display frame with the wall time it fired at.
type FrameMsg time.Time

// frameCmd schedules the next display frame at fps frames per second.
// The frame rate only affects smoothness; simulation runs at the session's
// fixed tick rate regardless.
func frameCmd(fps int) tea.Cmd {
	if fps <= 0 {
		fps = 60
	}
	interval := time.Second / time.Duration(fps)
	return tea.Tick(interval, func(t time.Time) tea.Msg {
		return FrameMsg(t)
	})
}
