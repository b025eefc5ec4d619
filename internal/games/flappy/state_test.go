package flappy

import "testing"

func TestMachineTransitions(t *testing.T) {
	tests := []struct {
		from State
		ev   Event
		to   State
		ok   bool
	}{
		{StateLoading, EventAssetsReady, StateMenu, true},
		{StateLoading, EventPrimary, StateLoading, false},
		{StateMenu, EventPrimary, StatePlaying, true},
		{StateMenu, EventPause, StateMenu, false},
		{StatePlaying, EventPrimary, StatePlaying, true},
		{StatePlaying, EventPause, StatePaused, true},
		{StatePlaying, EventDeath, StateGameOver, true},
		{StatePlaying, EventRestart, StatePlaying, false},
		{StatePaused, EventResume, StatePlaying, true},
		{StatePaused, EventPause, StatePaused, false},
		{StatePaused, EventDeath, StatePaused, false},
		{StateGameOver, EventRestart, StatePlaying, true},
		{StateGameOver, EventBack, StateMenu, true},
		{StateGameOver, EventDeath, StateGameOver, false},
	}

	for _, tc := range tests {
		t.Run(tc.from.String()+"/"+tc.ev.String(), func(t *testing.T) {
			m := &Machine{state: tc.from}
			if got := m.Can(tc.ev); got != tc.ok {
				t.Errorf("Can() = %v, expected %v", got, tc.ok)
			}
			if m.State() != tc.from {
				t.Errorf("Can() changed the state to %v", m.State())
			}
			if got := m.Fire(tc.ev); got != tc.ok {
				t.Errorf("Fire() = %v, expected %v", got, tc.ok)
			}
			if m.State() != tc.to {
				t.Errorf("state = %v, expected %v", m.State(), tc.to)
			}
		})
	}
}

func TestMachineListeners(t *testing.T) {
	m := NewMachine()

	type transition struct {
		from, to State
		ev       Event
	}
	var seen []transition
	m.OnTransition(func(from, to State, ev Event) {
		seen = append(seen, transition{from, to, ev})
	})

	m.Fire(EventAssetsReady)
	m.Fire(EventPause) // Invalid in Menu, no notification
	m.Fire(EventPrimary)
	m.Fire(EventPrimary) // Self-transition still notifies

	expected := []transition{
		{StateLoading, StateMenu, EventAssetsReady},
		{StateMenu, StatePlaying, EventPrimary},
		{StatePlaying, StatePlaying, EventPrimary},
	}
	if len(seen) != len(expected) {
		t.Fatalf("saw %d transitions, expected %d", len(seen), len(expected))
	}
	for i := range expected {
		if seen[i] != expected[i] {
			t.Errorf("transition %d = %+v, expected %+v", i, seen[i], expected[i])
		}
	}
}
