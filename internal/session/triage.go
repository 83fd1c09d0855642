package session

import (
	"fmt"

	"github.com/f3rmion/scribe/internal/lexicon"
)

// Label is a triage decision.
type Label int

const (
	Unknown Label = iota
	Known
)

func (l Label) String() string {
	if l == Known {
		return "known"
	}
	return "unknown"
}

// Triage walks the entries one at a time, partitioning them into known and
// unknown. The cursor only moves forward.
type Triage struct {
	entries []lexicon.Entry
	cursor  int
	known   []lexicon.Entry
	unknown []lexicon.Entry
}

// Summary is the outcome of a triage pass.
type Summary struct {
	Known   int
	Unknown int
	Total   int
}

func (s Summary) String() string {
	return fmt.Sprintf("%d known, %d unknown of %d", s.Known, s.Unknown, s.Total)
}

// NewTriage starts a triage pass. It refuses an empty entry list.
func NewTriage(entries []lexicon.Entry) (*Triage, error) {
	if len(entries) == 0 {
		return nil, ErrNoEntries
	}
	return &Triage{entries: entries}, nil
}

func (t *Triage) Mode() Mode { return ModeTriage }
func (t *Triage) Len() int   { return len(t.entries) }

// Cursor is the index of the next undecided entry.
func (t *Triage) Cursor() int { return t.cursor }

// Complete reports whether every entry has been decided.
func (t *Triage) Complete() bool { return t.cursor >= len(t.entries) }

// Current returns the entry awaiting a decision.
func (t *Triage) Current() (lexicon.Entry, bool) {
	if t.Complete() {
		return lexicon.Entry{}, false
	}
	return t.entries[t.cursor], true
}

// Decide labels the current entry and advances. Once complete it does
// nothing and returns false.
func (t *Triage) Decide(l Label) bool {
	if t.Complete() {
		return false
	}
	entry := t.entries[t.cursor]
	if l == Known {
		t.known = append(t.known, entry)
	} else {
		t.unknown = append(t.unknown, entry)
	}
	t.cursor++
	return true
}

// Progress is the decided fraction in [0, 1].
func (t *Triage) Progress() float64 {
	if len(t.entries) == 0 {
		return 0
	}
	return float64(t.cursor) / float64(len(t.entries))
}

func (t *Triage) Known() []lexicon.Entry   { return t.known }
func (t *Triage) Unknown() []lexicon.Entry { return t.unknown }

func (t *Triage) Summary() Summary {
	return Summary{Known: len(t.known), Unknown: len(t.unknown), Total: len(t.entries)}
}

// Finalize returns the unknown words in decision order.
func (t *Triage) Finalize() ([]string, error) {
	if !t.Complete() {
		return nil, ErrTriageIncomplete
	}
	if len(t.unknown) == 0 {
		return nil, ErrNothingToSubmit
	}
	return words(t.unknown), nil
}
