// Package clipboard copies word lists to the system clipboard.
package clipboard

import (
	"fmt"
	"io"
	"os"
	"strings"

	atotto "github.com/atotto/clipboard"
	"github.com/aymanbagabas/go-osc52/v2"
)

// Method reports how text reached the clipboard.
type Method string

const (
	MethodSystem Method = "system"
	MethodOSC52  Method = "osc52"
)

// Clipboard writes text using the system clipboard when one is available
// and the terminal's OSC 52 escape otherwise.
type Clipboard struct {
	// Terminal receives the OSC 52 sequence.
	Terminal io.Writer

	system func(string) error
}

// New returns a Clipboard that falls back to OSC 52 on stderr.
func New() *Clipboard {
	c := &Clipboard{Terminal: os.Stderr}
	if !atotto.Unsupported {
		c.system = atotto.WriteAll
	}
	return c
}

// Write copies text.
func (c *Clipboard) Write(text string) (Method, error) {
	if c.system != nil {
		if err := c.system(text); err == nil {
			return MethodSystem, nil
		}
	}
	if c.Terminal == nil {
		return "", fmt.Errorf("no clipboard available")
	}
	if _, err := osc52.New(text).WriteTo(c.Terminal); err != nil {
		return "", fmt.Errorf("writing osc52 sequence: %w", err)
	}
	return MethodOSC52, nil
}

// WriteWords copies words, one per line.
func (c *Clipboard) WriteWords(words []string) (Method, error) {
	return c.Write(strings.Join(words, "\n"))
}
