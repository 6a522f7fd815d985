// Package nav keeps the ordered set of editable fields shown on the display
// and the two cursors that walk it: one used to repaint every field, one
// pointing at the field that receives encoder input.
//
// Items live in an append-only arena owned by the Navigation and link to each
// other by position, so the chain is never circular. Wraparound when moving
// focus is applied by FocusNext/FocusPrevious, never stored in the links.
//
// All methods are meant to be called from a single goroutine.
package nav

// Display is the character display the fields are painted on.
type Display interface {
	SetCursor(col, row int)
	Print(text string)
}

// Navigation owns the field sequence and its cursors. The zero value is an
// empty registry ready for use.
type Navigation struct {
	items []*Item

	first, last ref
	current     ref // refresh cursor
	editing     ref // focus cursor

	display Display
}

// New returns an empty Navigation.
func New() *Navigation {
	return &Navigation{}
}

// Register appends it to the end of the sequence. The first registered item
// seeds both cursors. Registering the same item twice is not supported.
func (n *Navigation) Register(it *Item) {
	n.items = append(n.items, it)
	it.nav = n
	it.self = ref(len(n.items))

	if n.first == 0 {
		n.first = it.self
		n.current = it.self
		n.editing = it.self
	} else {
		last := n.at(n.last)
		it.SetPrevious(last)
		last.SetNext(it)
	}
	n.last = it.self
}

// BindDisplay attaches the display used by the painting methods. Painting
// before a display is bound does nothing.
func (n *Navigation) BindDisplay(d Display) {
	n.display = d
}

// RefreshAll repaints every item from first to last.
func (n *Navigation) RefreshAll() {
	if n.display == nil || n.first == 0 {
		return
	}
	n.current = n.first
	for {
		it := n.at(n.current)
		n.paint(it)
		if it.next == 0 {
			return
		}
		n.current = it.next
	}
}

// RepaintFocused repaints only the focused item.
func (n *Navigation) RepaintFocused() {
	it := n.Focused()
	if n.display == nil || it == nil {
		return
	}
	n.paint(it)
}

// BlankFocused overwrites the focused item with its clear text. Alternating
// this with RepaintFocused makes the field blink while it is being edited.
func (n *Navigation) BlankFocused() {
	it := n.Focused()
	if n.display == nil || it == nil {
		return
	}
	n.display.SetCursor(it.col, it.row)
	n.display.Print(it.clear)
}

// IncrementFocusedValue steps the focused value up, saturating at its max.
func (n *Navigation) IncrementFocusedValue() {
	if it := n.Focused(); it != nil {
		it.IncrementValue()
	}
}

// DecrementFocusedValue steps the focused value down, saturating at 0.
func (n *Navigation) DecrementFocusedValue() {
	if it := n.Focused(); it != nil {
		it.DecrementValue()
	}
}

// FocusNext moves focus forward, wrapping from the last item to the first.
func (n *Navigation) FocusNext() {
	it := n.Focused()
	if it == nil {
		return
	}
	if it.next != 0 {
		n.editing = it.next
	} else {
		n.editing = n.first
	}
}

// FocusPrevious moves focus backward, wrapping from the first item to the last.
func (n *Navigation) FocusPrevious() {
	it := n.Focused()
	if it == nil {
		return
	}
	if it.prev != 0 {
		n.editing = it.prev
	} else {
		n.editing = n.last
	}
}

// Focus moves the focus cursor to it. Items registered elsewhere are ignored.
func (n *Navigation) Focus(it *Item) {
	if it == nil || it.nav != n {
		return
	}
	n.editing = it.self
}

// Focused returns the item receiving input, or nil when nothing is registered.
func (n *Navigation) Focused() *Item { return n.at(n.editing) }

// Refreshing returns the item the last refresh pass stopped on.
func (n *Navigation) Refreshing() *Item { return n.at(n.current) }

func (n *Navigation) First() *Item { return n.at(n.first) }
func (n *Navigation) Last() *Item  { return n.at(n.last) }
func (n *Navigation) Len() int     { return len(n.items) }

// Items returns the items in sequence order.
func (n *Navigation) Items() []*Item {
	out := make([]*Item, 0, len(n.items))
	for it := n.First(); it != nil; it = it.Next() {
		out = append(out, it)
	}
	return out
}

func (n *Navigation) paint(it *Item) {
	n.display.SetCursor(it.col, it.row)
	n.display.Print(it.Text())
}

func (n *Navigation) at(r ref) *Item {
	if r <= 0 || int(r) > len(n.items) {
		return nil
	}
	return n.items[r-1]
}
