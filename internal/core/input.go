package core

// Action represents a semantic game action, abstracted from physical key presses.
// The game decides what an action means based on its current state.
type Action int

const (
	ActionNone        Action = iota
	ActionJump               // Space, Up, W, click - start, flap, resume or restart depending on state
	ActionPause              // P, Escape - pause/unpause game
	ActionRestart            // R - restart game after game over
	ActionLeaderboard        // L - open the leaderboard from game over
	ActionDebug              // D - toggle debug overlay
	ActionBack               // B - return to the menu from game over
	ActionQuit               // Q, Ctrl+C - exit
)

// String returns a human-readable name for the action.
func (a Action) String() string {
	switch a {
	case ActionNone:
		return "None"
	case ActionJump:
		return "Jump"
	case ActionPause:
		return "Pause"
	case ActionRestart:
		return "Restart"
	case ActionLeaderboard:
		return "Leaderboard"
	case ActionDebug:
		return "Debug"
	case ActionBack:
		return "Back"
	case ActionQuit:
		return "Quit"
	default:
		return "Unknown"
	}
}

// InputFrame collects the actions triggered between two frames.
type InputFrame struct {
	// Actions keeps trigger order so a frame replays deterministically.
	Actions []Action
}

// NewInputFrame creates an empty input frame.
func NewInputFrame(actions ...Action) InputFrame {
	return InputFrame{Actions: append([]Action(nil), actions...)}
}

// Set records an action for this frame.
func (f *InputFrame) Set(a Action) {
	if a == ActionNone {
		return
	}
	f.Actions = append(f.Actions, a)
}

// Has returns true if the given action was triggered this frame.
func (f InputFrame) Has(a Action) bool {
	for _, got := range f.Actions {
		if got == a {
			return true
		}
	}
	return false
}

// Clear resets all actions for the next frame.
func (f *InputFrame) Clear() {
	f.Actions = f.Actions[:0]
}
