package audio

import (
	"testing"
	"time"

	"github.com/gopxl/beep"
)

func TestSweepLength(t *testing.T) {
	rate := beep.SampleRate(1000)
	s := NewSweep(100, 200, 50*time.Millisecond, rate)

	buf := make([][2]float64, 30)
	total := 0
	for {
		n, ok := s.Stream(buf)
		total += n
		if !ok {
			break
		}
	}
	if total != 50 {
		t.Errorf("Expected 50 samples, got %d", total)
	}
	if s.Err() != nil {
		t.Errorf("Expected no error, got: %v", s.Err())
	}
}

func TestSweepRange(t *testing.T) {
	s := NewSweep(440, 880, 100*time.Millisecond, sampleRate)

	samples := make([][2]float64, 512)
	n, ok := s.Stream(samples)
	if !ok || n != 512 {
		t.Fatalf("Stream() = %d, %v; expected 512, true", n, ok)
	}
	if samples[0][0] != 0 {
		t.Errorf("Expected the fade-in to start silent, got %f", samples[0][0])
	}
	for i := 0; i < n; i++ {
		if samples[i][0] < -1.0 || samples[i][0] > 1.0 {
			t.Errorf("Sample %d out of range: %f", i, samples[i][0])
		}
		if samples[i][0] != samples[i][1] {
			t.Errorf("Sample %d: channels differ", i)
		}
	}
}

func TestSynthesize(t *testing.T) {
	tests := []struct {
		effect Effect
		valid  bool
	}{
		{EffectFlap, true},
		{EffectScore, true},
		{EffectDeath, true},
		{Effect(99), false},
	}

	for _, tc := range tests {
		t.Run(tc.effect.String(), func(t *testing.T) {
			s := Synthesize(tc.effect)
			if (s != nil) != tc.valid {
				t.Errorf("Synthesize(%v) = %v, expected valid=%v", tc.effect, s, tc.valid)
			}
		})
	}
}

func TestOpenDisabled(t *testing.T) {
	if _, ok := Open(false, 1, nil).(Nop); !ok {
		t.Error("Open(false) should return Nop")
	}
}
