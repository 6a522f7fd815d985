package clock

import (
	"testing"
	"time"
)

func TestTempoDerivation(t *testing.T) {
	tests := []struct {
		bpm     int
		quarter int64
		pulse   int64
	}{
		{bpm: 120, quarter: 500000, pulse: 20833},
		{bpm: 60, quarter: 1000000, pulse: 41666},
		{bpm: 90, quarter: 666666, pulse: 27777},
		{bpm: 0, quarter: 0, pulse: 0},
	}
	for _, tt := range tests {
		q := QuarterNoteDuration(tt.bpm)
		if q != tt.quarter {
			t.Errorf("bpm %d: expected quarter %d, got %d", tt.bpm, tt.quarter, q)
		}
		if p := PulseDuration(q); p != tt.pulse {
			t.Errorf("bpm %d: expected pulse %d, got %d", tt.bpm, tt.pulse, p)
		}
	}
}

func TestPulseInterval(t *testing.T) {
	if got := PulseInterval(120); got != 20833*time.Microsecond {
		t.Errorf("expected 20.833ms, got %v", got)
	}
}

func TestGeneratorClampsTempo(t *testing.T) {
	g := NewGenerator(5)
	if g.Tempo() != MinTempo {
		t.Errorf("expected %d, got %d", MinTempo, g.Tempo())
	}
	g.SetTempo(999)
	if g.Tempo() != MaxTempo {
		t.Errorf("expected %d, got %d", MaxTempo, g.Tempo())
	}
	g.SetTempo(60)
	if g.Interval() != 41666*time.Microsecond {
		t.Errorf("unexpected interval %v", g.Interval())
	}
}

func TestGeneratorDeadlinesAreAbsolute(t *testing.T) {
	g := NewGenerator(120)
	t0 := time.Unix(1000, 0)
	g.Begin(t0)

	// deadlines depend only on the anchor, never on when a pulse was handled
	var deadline time.Time
	for n := 1; n <= 96; n++ {
		deadline = g.Next()
		want := t0.Add(time.Duration(n) * 20833 * time.Microsecond)
		if !deadline.Equal(want) {
			t.Fatalf("pulse %d: deadline %v, want %v", n, deadline.Sub(t0), want.Sub(t0))
		}
		time.Sleep(time.Millisecond)
	}
	if got := deadline.Sub(t0); got != 96*20833*time.Microsecond {
		t.Errorf("four quarter notes took %v", got)
	}
}

func TestGeneratorTempoChangeReanchors(t *testing.T) {
	g := NewGenerator(120)
	t0 := time.Unix(1000, 0)
	g.Begin(t0)
	var last time.Time
	for i := 0; i < 24; i++ {
		last = g.Next()
	}

	g.SetTempo(60)
	if got := g.Next(); !got.Equal(last.Add(41666 * time.Microsecond)) {
		t.Errorf("first pulse after tempo change at %v, want %v", got.Sub(t0), last.Add(41666*time.Microsecond).Sub(t0))
	}

	t1 := t0.Add(time.Hour)
	g.Begin(t1)
	if got := g.Next(); !got.Equal(t1.Add(41666 * time.Microsecond)) {
		t.Errorf("Begin should reset the anchor, got %v", got.Sub(t1))
	}
}

func TestMeter(t *testing.T) {
	var m Meter
	if got := m.Boundary(1_000_000); got != 0 {
		t.Errorf("expected no estimate after one boundary, got %d", got)
	}
	if got := m.Boundary(1_500_000); got != 120 {
		t.Errorf("expected 120, got %d", got)
	}
	m.Reset()
	if got := m.Boundary(9_000_000); got != 120 {
		t.Errorf("reset should keep the last estimate until a new pair, got %d", got)
	}
	if got := m.Boundary(10_000_000); got != 60 {
		t.Errorf("expected 60, got %d", got)
	}
}
