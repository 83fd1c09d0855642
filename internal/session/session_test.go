package session

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/f3rmion/scribe/internal/lexicon"
)

func entries(words ...string) []lexicon.Entry {
	out := make([]lexicon.Entry, len(words))
	for i, w := range words {
		out[i] = lexicon.Entry{Word: w}
	}
	return out
}

func TestSelection_FinalizeKeepsEntryOrder(t *testing.T) {
	s := NewSelection(entries("a", "b", "c", "d"))

	s.Toggle(3)
	s.Toggle(0)
	s.Toggle(2)

	got, err := s.Finalize()
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "c", "d"}, got)
}

func TestSelection_Operations(t *testing.T) {
	s := NewSelection(entries("a", "b", "c"))

	s.Toggle(-1)
	s.Toggle(3)
	assert.Equal(t, 0, s.Count())

	s.SelectAll()
	assert.Equal(t, 3, s.Count())

	s.Toggle(1)
	s.Invert()
	assert.True(t, s.IsSelected(1))
	assert.False(t, s.IsSelected(0))
	assert.False(t, s.IsSelected(7))

	s.DeselectAll()
	assert.Equal(t, 0, s.Count())
	assert.Equal(t, ModeSelection, s.Mode())
	assert.Equal(t, 3, s.Len())
}

func TestSelection_EmptyFinalize(t *testing.T) {
	s := NewSelection(entries("a"))

	_, err := s.Finalize()
	require.ErrorIs(t, err, ErrEmptySelection)
	require.ErrorIs(t, err, ErrValidation)

	var ve *ValidationError
	require.True(t, errors.As(err, &ve))
	assert.Equal(t, "select at least one word", ve.Message)
}

func TestNewTriage_Empty(t *testing.T) {
	tr, err := NewTriage(nil)
	assert.Nil(t, tr)
	require.ErrorIs(t, err, ErrNoEntries)
	require.ErrorIs(t, err, ErrValidation)
}

func TestTriage_KnownUnknownUnknown(t *testing.T) {
	es := entries("one", "two", "three")
	tr, err := NewTriage(es)
	require.NoError(t, err)

	assert.InDelta(t, 0.0, tr.Progress(), 1e-9)

	var progress []string
	for _, l := range []Label{Known, Unknown, Unknown} {
		require.True(t, tr.Decide(l))
		progress = append(progress, fmt.Sprintf("%d/%d", tr.Cursor(), tr.Len()))
	}

	assert.Equal(t, []string{"1/3", "2/3", "3/3"}, progress)
	assert.True(t, tr.Complete())
	assert.InDelta(t, 1.0, tr.Progress(), 1e-9)
	assert.Equal(t, es[:1], tr.Known())
	assert.Equal(t, es[1:], tr.Unknown())
	assert.Equal(t, Summary{Known: 1, Unknown: 2, Total: 3}, tr.Summary())

	words, err := tr.Finalize()
	require.NoError(t, err)
	assert.Equal(t, []string{"two", "three"}, words)
}

func TestTriage_IdleAfterComplete(t *testing.T) {
	tr, err := NewTriage(entries("only"))
	require.NoError(t, err)
	require.True(t, tr.Decide(Unknown))

	assert.False(t, tr.Decide(Known))
	assert.Equal(t, 1, tr.Cursor())
	assert.Empty(t, tr.Known())
	assert.Len(t, tr.Unknown(), 1)

	_, ok := tr.Current()
	assert.False(t, ok)
}

func TestTriage_PartitionIsTotal(t *testing.T) {
	es := entries("a", "b", "c", "d", "e", "f", "g")

	// every label sequence over 7 entries, encoded as bits
	for mask := 0; mask < 1<<len(es); mask++ {
		tr, err := NewTriage(es)
		require.NoError(t, err)

		for i := 0; !tr.Complete(); i++ {
			cur, ok := tr.Current()
			require.True(t, ok)
			require.Equal(t, es[i], cur)

			label := Unknown
			if mask&(1<<i) != 0 {
				label = Known
			}
			tr.Decide(label)

			decided := len(tr.Known()) + len(tr.Unknown())
			require.Equal(t, len(es), decided+(tr.Len()-tr.Cursor()))
		}

		seen := map[string]int{}
		for _, e := range tr.Known() {
			seen[e.Word]++
		}
		for _, e := range tr.Unknown() {
			seen[e.Word]++
		}
		require.Len(t, seen, len(es))
		for _, n := range seen {
			require.Equal(t, 1, n)
		}
	}
}

func TestTriage_Finalize(t *testing.T) {
	t.Run("incomplete", func(t *testing.T) {
		tr, _ := NewTriage(entries("a", "b"))
		tr.Decide(Unknown)

		_, err := tr.Finalize()
		require.ErrorIs(t, err, ErrTriageIncomplete)
	})

	t.Run("all known", func(t *testing.T) {
		tr, _ := NewTriage(entries("a", "b"))
		tr.Decide(Known)
		tr.Decide(Known)

		_, err := tr.Finalize()
		require.ErrorIs(t, err, ErrNothingToSubmit)
	})
}

func TestParseMode(t *testing.T) {
	m, ok := ParseMode("triage")
	assert.True(t, ok)
	assert.Equal(t, ModeTriage, m)

	_, ok = ParseMode("bogus")
	assert.False(t, ok)
}
