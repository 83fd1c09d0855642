package clipboard

import (
	"bytes"
	"encoding/base64"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWrite_System(t *testing.T) {
	var got string
	var term bytes.Buffer
	c := &Clipboard{Terminal: &term, system: func(s string) error { got = s; return nil }}

	method, err := c.WriteWords([]string{"two", "three"})
	require.NoError(t, err)

	assert.Equal(t, MethodSystem, method)
	assert.Equal(t, "two\nthree", got)
	assert.Zero(t, term.Len())
}

func TestWrite_FallsBackToOSC52(t *testing.T) {
	var term bytes.Buffer
	c := &Clipboard{Terminal: &term, system: func(string) error { return errors.New("no display") }}

	method, err := c.Write("apple")
	require.NoError(t, err)

	assert.Equal(t, MethodOSC52, method)
	assert.Contains(t, term.String(), "\x1b]52;")
	assert.Contains(t, term.String(), base64.StdEncoding.EncodeToString([]byte("apple")))
}

func TestWrite_Nothing(t *testing.T) {
	c := &Clipboard{}

	_, err := c.Write("x")
	require.Error(t, err)
}
