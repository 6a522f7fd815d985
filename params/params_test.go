package params

import (
	"testing"

	"hopkinsville/lcd"
)

func TestNoteName(t *testing.T) {
	tests := map[int]string{0: "C ", 1: "Db", 9: "A ", 11: "B ", 12: "? ", -1: "? "}
	for v, want := range tests {
		if got := NoteName(v); got != want {
			t.Errorf("NoteName(%d) = %q, want %q", v, got, want)
		}
	}
}

func TestModeAndDirection(t *testing.T) {
	if ModeName(5) != "m" {
		t.Errorf("mode 5 should be minor")
	}
	if DirectionName(DirectionUpDown) != lcd.Char(lcd.GlyphUpDownArrow) {
		t.Errorf("up-down should render the up-down glyph")
	}
	if Range(0) != "1" || Range(MaxRange) != "4" {
		t.Errorf("range should render 1..4")
	}
}

func TestRootNote(t *testing.T) {
	tests := []struct {
		root int
		want uint8
	}{
		{0, 72},  // C
		{8, 80},  // Ab
		{9, 69},  // A
		{11, 71}, // B
	}
	for _, tt := range tests {
		if got := RootNote(tt.root); got != tt.want {
			t.Errorf("RootNote(%d) = %d, want %d", tt.root, got, tt.want)
		}
	}
}

func TestInterval(t *testing.T) {
	// dorian: 0 2 3 5 7 9 10
	want := []int{0, 2, 3, 5, 7, 9, 10}
	for d, w := range want {
		if got := Interval(1, d); got != w {
			t.Errorf("dorian degree %d: got %d, want %d", d, got, w)
		}
	}
	// minor third in aeolian
	if got := Interval(5, 2); got != 3 {
		t.Errorf("aeolian third: got %d", got)
	}
}

func TestScaleNote(t *testing.T) {
	if got := ScaleNote(9, 0, 4, 0); got != 76 {
		t.Errorf("A major fifth: got %d, want 76", got)
	}
	if got := ScaleNote(9, 0, 0, 1); got != 81 {
		t.Errorf("A one octave up: got %d, want 81", got)
	}
}

func TestDirectionPatch(t *testing.T) {
	p := DirectionPatch(DirectionDown)
	if len(p) != 4 || p[0].Param != DirectionNRPNA || p[0].Value != DirectionDown {
		t.Errorf("unexpected patch %+v", p)
	}
	if c := ClockModePatch(true); c[0].Value != ClockExternal {
		t.Errorf("expected external clock value")
	}
}
