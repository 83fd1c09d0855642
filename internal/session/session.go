// Package session holds the two decision workflows run over an import:
// bulk selection and sequential triage.
package session

import "github.com/f3rmion/scribe/internal/lexicon"

// Mode identifies the active workflow.
type Mode int

const (
	ModeSelection Mode = iota
	ModeTriage
)

func (m Mode) String() string {
	switch m {
	case ModeSelection:
		return "selection"
	case ModeTriage:
		return "triage"
	default:
		return "unknown"
	}
}

// ParseMode maps a mode name to a Mode.
func ParseMode(s string) (Mode, bool) {
	switch s {
	case "selection", "select":
		return ModeSelection, true
	case "triage":
		return ModeTriage, true
	default:
		return ModeSelection, false
	}
}

// State is the single active workflow of an import cycle.
type State interface {
	Mode() Mode
	Len() int
	// Finalize returns the words to submit, or a *ValidationError.
	Finalize() ([]string, error)
}

func words(entries []lexicon.Entry) []string {
	out := make([]string, len(entries))
	for i, e := range entries {
		out[i] = e.Word
	}
	return out
}
