package store

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()

	s, err := Open(context.Background(), filepath.Join(t.TempDir(), "nested", "known.db"))
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s
}

func TestStore_AddCountsSkipped(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	added, skipped, err := s.Add(ctx, []string{"Apple", " cat ", "", "   ", "apple"})
	require.NoError(t, err)
	assert.Equal(t, 2, added)
	assert.Equal(t, 1, skipped)

	added, skipped, err = s.Add(ctx, []string{"CAT", "dog"})
	require.NoError(t, err)
	assert.Equal(t, 1, added)
	assert.Equal(t, 1, skipped)

	words, err := s.All(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"apple", "cat", "dog"}, words)

	n, err := s.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, 3, n)
}

func TestStore_ContainsAndRemove(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	_, _, err := s.Add(ctx, []string{"word"})
	require.NoError(t, err)

	ok, err := s.Contains(ctx, "WORD")
	require.NoError(t, err)
	assert.True(t, ok)

	removed, err := s.Remove(ctx, "Word")
	require.NoError(t, err)
	assert.True(t, removed)

	removed, err = s.Remove(ctx, "word")
	require.NoError(t, err)
	assert.False(t, removed)

	ok, err = s.Contains(ctx, "word")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestStore_PersistsAcrossOpen(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "known.db")

	s, err := Open(ctx, path)
	require.NoError(t, err)
	_, _, err = s.Add(ctx, []string{"kept"})
	require.NoError(t, err)
	require.NoError(t, s.Close())

	s, err = Open(ctx, path)
	require.NoError(t, err)
	defer s.Close()

	words, err := s.All(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"kept"}, words)
}

func TestStore_InMemory(t *testing.T) {
	s, err := Open(context.Background(), ":memory:")
	require.NoError(t, err)
	defer s.Close()

	words, err := s.All(context.Background())
	require.NoError(t, err)
	assert.Empty(t, words)
}
