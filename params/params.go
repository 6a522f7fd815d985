// Package params holds the fixed tables behind the instrument's editable
// fields and the functions that render their values for the LCD.
package params

import (
	"fmt"
	"strconv"

	"hopkinsville/lcd"
)

// Note names, indexed from C.
var NoteNames = []string{"C", "Db", "D", "Eb", "E", "F", "Gb", "G", "Ab", "A", "Bb", "B"}

// Mode names follow the degrees of the major scale: major, dorian, phrygian,
// lydian, mixolydian, minor, locrian.
var ModeNames = []string{"M", "D", "P", "L", "X", "m", "O"}

// ModeFormula is the major scale in semitones above the root.
var ModeFormula = []int{0, 2, 4, 5, 7, 9, 11}

// Arpeggiator directions as sent to the synth.
const (
	DirectionUp = iota
	DirectionDown
	DirectionUpDown
)

// Field maxima (inclusive).
const (
	MaxNote      = 11
	MaxMode      = 6
	MaxDirection = DirectionUpDown
	MaxRange     = 3
	MaxDegree    = 6
)

// NoteA is the MIDI note the root table starts from; roots C..Ab sit above
// it, A..B at or just above it.
const NoteA = 69

// NoteName renders a root note, padded to two cells so a shorter name
// overwrites a longer one.
func NoteName(v int) string {
	return fmt.Sprintf("%-2s", lookup(NoteNames, v))
}

// ModeName renders a mode as its single-letter code.
func ModeName(v int) string {
	return lookup(ModeNames, v)
}

// DirectionName renders an arpeggiator direction as its arrow glyph.
func DirectionName(v int) string {
	switch v {
	case DirectionUp:
		return lcd.Char(lcd.GlyphUpArrow)
	case DirectionDown:
		return lcd.Char(lcd.GlyphDownArrow)
	case DirectionUpDown:
		return lcd.Char(lcd.GlyphUpDownArrow)
	}
	return "?"
}

// Range renders an octave range value 0..3 as 1..4.
func Range(v int) string {
	return strconv.Itoa(v + 1)
}

// Degree renders a mode degree value 0..6 as 1..7.
func Degree(v int) string {
	return strconv.Itoa(v + 1)
}

// RootNote returns the MIDI note for a root index (0 = C).
func RootNote(root int) uint8 {
	return uint8(NoteA + mod(root+3, 12))
}

// Interval returns the semitones from the root to degree in mode.
func Interval(mode, degree int) int {
	m := mod(mode, len(ModeFormula))
	d := mod(m+degree, len(ModeFormula))
	return mod(ModeFormula[d]-ModeFormula[m], 12)
}

// ScaleNote returns the MIDI note of degree in mode above root, raised by
// octave octaves.
func ScaleNote(root, mode, degree, octave int) uint8 {
	n := int(RootNote(root)) + Interval(mode, degree) + 12*octave
	if n > 127 {
		n = 127
	}
	return uint8(n)
}

func lookup(table []string, v int) string {
	if v < 0 || v >= len(table) {
		return "?"
	}
	return table[v]
}

func mod(a, b int) int {
	return ((a % b) + b) % b
}
