package session

import "github.com/f3rmion/scribe/internal/lexicon"

// Selection is the bulk workflow: any subset of entries may be selected.
type Selection struct {
	entries  []lexicon.Entry
	selected []bool
}

// NewSelection starts a selection with nothing selected.
func NewSelection(entries []lexicon.Entry) *Selection {
	return &Selection{
		entries:  entries,
		selected: make([]bool, len(entries)),
	}
}

func (s *Selection) Mode() Mode { return ModeSelection }
func (s *Selection) Len() int   { return len(s.entries) }

// Entries returns the entries under selection. Callers must not modify them.
func (s *Selection) Entries() []lexicon.Entry { return s.entries }

// Toggle flips entry i. Out-of-range indices are ignored.
func (s *Selection) Toggle(i int) {
	if i < 0 || i >= len(s.selected) {
		return
	}
	s.selected[i] = !s.selected[i]
}

func (s *Selection) SelectAll() {
	for i := range s.selected {
		s.selected[i] = true
	}
}

func (s *Selection) DeselectAll() {
	for i := range s.selected {
		s.selected[i] = false
	}
}

func (s *Selection) Invert() {
	for i := range s.selected {
		s.selected[i] = !s.selected[i]
	}
}

func (s *Selection) IsSelected(i int) bool {
	return i >= 0 && i < len(s.selected) && s.selected[i]
}

// Count returns how many entries are selected.
func (s *Selection) Count() int {
	n := 0
	for _, sel := range s.selected {
		if sel {
			n++
		}
	}
	return n
}

// Finalize returns the selected words in entry order.
func (s *Selection) Finalize() ([]string, error) {
	var out []string
	for i, sel := range s.selected {
		if sel {
			out = append(out, s.entries[i].Word)
		}
	}
	if len(out) == 0 {
		return nil, ErrEmptySelection
	}
	return out, nil
}
