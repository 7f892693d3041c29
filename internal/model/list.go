package model

import (
	"iter"
	"slices"
	"strings"
)

// List is an ordered, labelled group of items.
//
// A List owns its ordering, not its items: lists derived with Filter hold
// the same *Item pointers as their source, so marking an item through one
// list is visible through every list that holds it. List is not safe for
// concurrent use.
type List struct {
	label string
	items []*Item
}

// NewList returns an empty list.
func NewList(label string) *List {
	return &List{label: label}
}

func (l *List) Label() string { return l.label }
func (l *List) Size() int     { return len(l.items) }

// Add appends it to the end of the list.
func (l *List) Add(it *Item) error {
	if it == nil {
		return ErrTypeMismatch
	}
	l.items = append(l.items, it)
	return nil
}

// First returns the item at position 0, or false when the list is empty.
func (l *List) First() (*Item, bool) {
	if len(l.items) == 0 {
		return nil, false
	}
	return l.items[0], true
}

// Last returns the final item, or false when the list is empty.
func (l *List) Last() (*Item, bool) {
	if len(l.items) == 0 {
		return nil, false
	}
	return l.items[len(l.items)-1], true
}

func (l *List) validateIndex(i int) error {
	if i < 0 || i >= len(l.items) {
		return &IndexError{Index: i, Size: len(l.items)}
	}
	return nil
}

// ItemAt returns the item at position i. Positions are not clamped or
// wrapped: anything outside [0, Size()) is an *IndexError.
func (l *List) ItemAt(i int) (*Item, error) {
	if err := l.validateIndex(i); err != nil {
		return nil, err
	}
	return l.items[i], nil
}

func (l *List) MarkDoneAt(i int) error {
	it, err := l.ItemAt(i)
	if err != nil {
		return err
	}
	it.MarkDone()
	return nil
}

func (l *List) MarkUndoneAt(i int) error {
	it, err := l.ItemAt(i)
	if err != nil {
		return err
	}
	it.MarkUndone()
	return nil
}

// IsDone reports whether every item is done. An empty list is done.
func (l *List) IsDone() bool {
	for _, it := range l.items {
		if !it.IsDone() {
			return false
		}
	}
	return true
}

// RemoveAt removes and returns the item at position i. Later items shift
// down by one.
func (l *List) RemoveAt(i int) (*Item, error) {
	if err := l.validateIndex(i); err != nil {
		return nil, err
	}
	it := l.items[i]
	l.items = slices.Delete(l.items, i, i+1)
	return it, nil
}

// Pop removes and returns the last item.
func (l *List) Pop() (*Item, bool) {
	if len(l.items) == 0 {
		return nil, false
	}
	it := l.items[len(l.items)-1]
	l.items = slices.Delete(l.items, len(l.items)-1, len(l.items))
	return it, true
}

// Shift removes and returns the first item.
func (l *List) Shift() (*Item, bool) {
	if len(l.items) == 0 {
		return nil, false
	}
	it := l.items[0]
	l.items = slices.Delete(l.items, 0, 1)
	return it, true
}

func (l *List) ForEach(fn func(*Item)) {
	for _, it := range l.items {
		fn(it)
	}
}

// All yields position/item pairs in order.
func (l *List) All() iter.Seq2[int, *Item] {
	return func(yield func(int, *Item) bool) {
		for i, it := range l.items {
			if !yield(i, it) {
				return
			}
		}
	}
}

// Filter returns a new list with the same label holding, in order, the
// items for which keep returns true.
func (l *List) Filter(keep func(*Item) bool) *List {
	out := NewList(l.label)
	l.ForEach(func(it *Item) {
		if keep(it) {
			out.items = append(out.items, it)
		}
	})
	return out
}

// FindByTitle returns the first item whose title equals title exactly.
func (l *List) FindByTitle(title string) (*Item, bool) {
	return l.Filter(func(it *Item) bool { return it.Title() == title }).First()
}

func (l *List) AllDone() *List {
	return l.Filter(func(it *Item) bool { return it.IsDone() })
}

func (l *List) AllNotDone() *List {
	return l.Filter(func(it *Item) bool { return !it.IsDone() })
}

// MarkDoneByTitle marks the first item titled title as done. It reports
// whether such an item exists; a missing title is not an error.
func (l *List) MarkDoneByTitle(title string) bool {
	it, ok := l.FindByTitle(title)
	if ok {
		it.MarkDone()
	}
	return ok
}

func (l *List) MarkAllDone() {
	l.ForEach(func(it *Item) { it.MarkDone() })
}

func (l *List) MarkAllUndone() {
	l.ForEach(func(it *Item) { it.MarkUndone() })
}

// Items returns a snapshot of the items. The slice is the caller's; the
// items in it are shared.
func (l *List) Items() []*Item {
	return slices.Clone(l.items)
}

// Stats counts done and pending items.
func (l *List) Stats() (done, pending int) {
	for _, it := range l.items {
		if it.IsDone() {
			done++
		} else {
			pending++
		}
	}
	return
}

// String renders a "---- label ----" header line followed by one line per
// item.
func (l *List) String() string {
	lines := make([]string, 0, len(l.items))
	for _, it := range l.items {
		lines = append(lines, it.String())
	}
	return "---- " + l.label + " ----\n" + strings.Join(lines, "\n")
}
