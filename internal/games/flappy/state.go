package flappy

// State is a node of the game state machine.
type State int

const (
	StateLoading State = iota
	StateMenu
	StatePlaying
	StatePaused
	StateGameOver
)

// String returns a human-readable name for the state.
func (s State) String() string {
	switch s {
	case StateLoading:
		return "Loading"
	case StateMenu:
		return "Menu"
	case StatePlaying:
		return "Playing"
	case StatePaused:
		return "Paused"
	case StateGameOver:
		return "GameOver"
	default:
		return "Unknown"
	}
}

// Event drives state transitions.
type Event int

const (
	EventAssetsReady Event = iota
	EventPrimary
	EventPause
	EventResume
	EventDeath
	EventRestart
	EventBack
)

// String returns a human-readable name for the event.
func (e Event) String() string {
	switch e {
	case EventAssetsReady:
		return "AssetsReady"
	case EventPrimary:
		return "Primary"
	case EventPause:
		return "Pause"
	case EventResume:
		return "Resume"
	case EventDeath:
		return "Death"
	case EventRestart:
		return "Restart"
	case EventBack:
		return "Back"
	default:
		return "Unknown"
	}
}

var transitions = map[State]map[Event]State{
	StateLoading: {
		EventAssetsReady: StateMenu,
	},
	StateMenu: {
		EventPrimary: StatePlaying,
	},
	StatePlaying: {
		EventPrimary: StatePlaying,
		EventPause:   StatePaused,
		EventDeath:   StateGameOver,
	},
	StatePaused: {
		EventResume: StatePlaying,
	},
	StateGameOver: {
		EventRestart: StatePlaying,
		EventBack:    StateMenu,
	},
}

// TransitionFunc observes a completed transition.
type TransitionFunc func(from, to State, ev Event)

// Machine is the game state machine. Requests that are not valid from the
// current state are ignored.
type Machine struct {
	state     State
	listeners []TransitionFunc
}

// NewMachine creates a machine in the Loading state.
func NewMachine() *Machine {
	return &Machine{state: StateLoading}
}

// State returns the current state.
func (m *Machine) State() State {
	return m.state
}

// Can reports whether ev is valid from the current state.
func (m *Machine) Can(ev Event) bool {
	_, ok := transitions[m.state][ev]
	return ok
}

// Fire applies ev. It returns false, with no side effects, if ev is not
// valid from the current state.
func (m *Machine) Fire(ev Event) bool {
	to, ok := transitions[m.state][ev]
	if !ok {
		return false
	}
	from := m.state
	m.state = to
	for _, fn := range m.listeners {
		fn(from, to, ev)
	}
	return true
}

// OnTransition registers a listener called after every transition,
// including Playing's self-transition on a flap.
func (m *Machine) OnTransition(fn TransitionFunc) {
	m.listeners = append(m.listeners, fn)
}
