package nav

import "strconv"

// Renderer turns a field value into the text shown on the display.
// It runs inside the refresh path and must not touch shared state.
type Renderer func(value int) string

// ref is a 1-based position in Navigation.items; 0 means no item.
type ref int

// Item is one bounded integer parameter bound to a fixed display coordinate.
// The value always stays within 0..Max.
type Item struct {
	nav  *Navigation
	self ref

	row, col int
	value    int
	max      int
	clear    string
	render   Renderer

	prev, next ref
}

// NewItem creates an item at (row, col) and registers it with n as the
// final step, so it becomes the last item of the sequence.
// An initial value outside 0..max is clamped.
func NewItem(row, col, max, value int, clear string, n *Navigation, render Renderer) *Item {
	if max < 0 {
		max = 0
	}
	it := &Item{
		row:    row,
		col:    col,
		max:    max,
		value:  clamp(value, max),
		clear:  clear,
		render: render,
	}
	n.Register(it)
	return it
}

// SetPrevious links it back to p (nil clears the link).
func (it *Item) SetPrevious(p *Item) {
	it.prev = p.ref()
}

// SetNext links it forward to p (nil clears the link).
func (it *Item) SetNext(p *Item) {
	it.next = p.ref()
}

// IncrementValue adds one unless the value is already at Max.
func (it *Item) IncrementValue() {
	if it.value < it.max {
		it.value++
	}
}

// DecrementValue subtracts one unless the value is already 0.
func (it *Item) DecrementValue() {
	if it.value > 0 {
		it.value--
	}
}

func (it *Item) Value() int    { return it.value }
func (it *Item) Max() int      { return it.max }
func (it *Item) Row() int      { return it.row }
func (it *Item) Column() int   { return it.col }
func (it *Item) Clear() string { return it.clear }

// Text renders the current value. Items built without a renderer print the
// plain number.
func (it *Item) Text() string {
	if it.render == nil {
		return strconv.Itoa(it.value)
	}
	return it.render(it.value)
}

// Previous returns the item before it, or nil at the start of the sequence.
func (it *Item) Previous() *Item {
	if it.nav == nil {
		return nil
	}
	return it.nav.at(it.prev)
}

// Next returns the item after it, or nil at the end of the sequence.
func (it *Item) Next() *Item {
	if it.nav == nil {
		return nil
	}
	return it.nav.at(it.next)
}

func (it *Item) ref() ref {
	if it == nil {
		return 0
	}
	return it.self
}

func clamp(v, max int) int {
	if v < 0 {
		return 0
	}
	if v > max {
		return max
	}
	return v
}
