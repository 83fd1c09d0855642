package cmd

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/f3rmion/scribe/internal/lexicon"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestInspect_Document(t *testing.T) {
	path := writeFile(t, "words.json", `[
  {"headWord": "apple", "content": {"word": {"content": {"usphone": "ˈæpl", "trans": [{"tranCn": "苹果"}]}}}},
  {"headWord": "pear"},
  {"note": "no head word"},
]`)

	var out bytes.Buffer
	err := inspect(context.Background(), &out, path, inspectOptions{Limit: 1})
	require.NoError(t, err)

	got := out.String()
	assert.Contains(t, got, "Grammar:  document")
	assert.Contains(t, got, "Entries:  2")
	assert.Contains(t, got, "Skipped:  1")
	assert.Contains(t, got, "Sample Entries (first 1)")
	assert.Contains(t, got, "apple  /ˈæpl/  苹果")
	assert.NotContains(t, got, "  pear")
}

func TestInspect_LinesWithErrors(t *testing.T) {
	path := writeFile(t, "words.jsonl", "{\"headWord\":\"apple\"}\n{broken\n{\"headWord\":\"pear\"}\n")

	var out bytes.Buffer
	err := inspect(context.Background(), &out, path, inspectOptions{Limit: 5})
	require.NoError(t, err)

	got := out.String()
	assert.Contains(t, got, "Grammar:  lines")
	assert.Contains(t, got, "Bad lines: 1")
	assert.Contains(t, got, "line 2")
}

func TestInspect_Malformed(t *testing.T) {
	path := writeFile(t, "bad.json", "{not json at all")

	var out bytes.Buffer
	err := inspect(context.Background(), &out, path, inspectOptions{})

	var malformed *lexicon.MalformedError
	require.True(t, errors.As(err, &malformed))
	assert.Contains(t, out.String(), "Result:   malformed")
	assert.Contains(t, out.String(), "  {not json at all")
}

func TestInspect_Empty(t *testing.T) {
	path := writeFile(t, "empty.json", `[{"note": 1}]`)

	var out bytes.Buffer
	err := inspect(context.Background(), &out, path, inspectOptions{})
	assert.ErrorIs(t, err, lexicon.ErrEmptyLexicon)
	assert.Contains(t, out.String(), "Entries:  0")
}

func TestInspect_Fix(t *testing.T) {
	path := writeFile(t, "words.json", "\ufeff// exported\n[{\"headWord\":\"apple\"},]\n")
	fixed := fixedPath(path)
	assert.Equal(t, filepath.Join(filepath.Dir(path), "words_fixed.json"), fixed)

	var out bytes.Buffer
	require.NoError(t, inspect(context.Background(), &out, path, inspectOptions{FixTo: fixed}))

	data, err := os.ReadFile(fixed)
	require.NoError(t, err)
	assert.Equal(t, "\n[{\"headWord\":\"apple\"}]\n", string(data))

	imp, err := lexicon.Load(string(data), lexicon.LoadOptions{})
	require.NoError(t, err)
	assert.Equal(t, []string{"apple"}, imp.Words())
}

func TestInspect_MissingFile(t *testing.T) {
	var out bytes.Buffer
	err := inspect(context.Background(), &out, filepath.Join(t.TempDir(), "nope.json"), inspectOptions{})
	require.Error(t, err)
}
