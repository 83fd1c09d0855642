// Package importer owns one import cycle: it loads a lexicon file, holds
// the active decision workflow and submits its outcome.
package importer

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"sync/atomic"

	"github.com/google/uuid"

	"github.com/f3rmion/scribe/internal/knownwords"
	"github.com/f3rmion/scribe/internal/lexicon"
	"github.com/f3rmion/scribe/internal/session"
)

// ErrBusy is returned when an import or submission is already running.
var ErrBusy = errors.New("another operation is in progress")

// Reader reads the text of a chosen file.
type Reader interface {
	ReadText(ctx context.Context, handle string) (string, error)
}

// Registrar submits words to the known-words store.
type Registrar interface {
	Register(ctx context.Context, words []string) (knownwords.Result, error)
}

// FileReader reads handles as paths on the local disk.
type FileReader struct{}

func (FileReader) ReadText(ctx context.Context, path string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("reading lexicon file: %w", err)
	}
	return string(data), nil
}

// Options tunes the controller.
type Options struct {
	Load lexicon.LoadOptions
}

// Controller is the single owner of the import cycle. Cycle state is only
// touched from the caller's goroutine; Import and Submit may run
// elsewhere because they never read or write it.
type Controller struct {
	reader    Reader
	registrar Registrar
	log       *slog.Logger
	opts      Options

	busy atomic.Bool

	pending string
	cycleID string
	entries []lexicon.Entry
	state   session.State
}

// NewController creates a Controller.
func NewController(reader Reader, registrar Registrar, logger *slog.Logger, opts Options) *Controller {
	return &Controller{
		reader:    reader,
		registrar: registrar,
		log:       logger.With("component", "importer"),
		opts:      opts,
	}
}

// Choose records the file the operator picked.
func (c *Controller) Choose(handle string) {
	c.pending = handle
}

// Pending returns the chosen file, or "".
func (c *Controller) Pending() string {
	return c.pending
}

// Busy reports whether an import or submission is running.
func (c *Controller) Busy() bool {
	return c.busy.Load()
}

func (c *Controller) acquire() (release func(), err error) {
	if !c.busy.CompareAndSwap(false, true) {
		return nil, ErrBusy
	}
	return func() { c.busy.Store(false) }, nil
}

// Import reads and parses handle. It does not change the current cycle.
func (c *Controller) Import(ctx context.Context, handle string) (*lexicon.Import, error) {
	release, err := c.acquire()
	if err != nil {
		return nil, err
	}
	defer release()

	text, err := c.reader.ReadText(ctx, handle)
	if err != nil {
		c.log.WarnContext(ctx, "read failed", slog.String("file", handle), slog.String("error", err.Error()))
		return nil, err
	}

	imp, err := lexicon.Load(text, c.opts.Load)
	if err != nil {
		c.log.WarnContext(ctx, "import failed", slog.String("file", handle), slog.String("error", err.Error()))
		return imp, err
	}

	c.log.InfoContext(ctx, "lexicon parsed",
		slog.String("file", handle),
		slog.String("grammar", imp.Grammar.String()),
		slog.Int("entries", len(imp.Entries)),
		slog.Int("skipped", imp.Skipped),
		slog.Int("line_errors", imp.LineErrors),
	)
	return imp, nil
}

// Begin discards the current cycle and starts a new one in selection mode.
func (c *Controller) Begin(imp *lexicon.Import) {
	c.Reset()
	c.cycleID = uuid.NewString()
	c.entries = imp.Entries
	c.state = session.NewSelection(c.entries)

	c.log.Info("cycle started", slog.String("cycle", c.cycleID), slog.Int("entries", len(c.entries)))
}

// Open imports handle and, on success, begins a cycle with it. On failure
// the current cycle is left untouched.
func (c *Controller) Open(ctx context.Context, handle string) (*lexicon.Import, error) {
	imp, err := c.Import(ctx, handle)
	if err != nil {
		return imp, err
	}
	c.Begin(imp)
	c.pending = handle
	return imp, nil
}

// Active reports whether a cycle is running.
func (c *Controller) Active() bool {
	return c.state != nil
}

// CycleID identifies the running cycle, or "".
func (c *Controller) CycleID() string {
	return c.cycleID
}

// Entries returns the entries of the running cycle.
func (c *Controller) Entries() []lexicon.Entry {
	return c.entries
}

// Mode returns the active workflow. Without a cycle it is ModeSelection.
func (c *Controller) Mode() session.Mode {
	if c.state == nil {
		return session.ModeSelection
	}
	return c.state.Mode()
}

// Selection returns the active selection, or nil.
func (c *Controller) Selection() *session.Selection {
	s, _ := c.state.(*session.Selection)
	return s
}

// Triage returns the active triage, or nil.
func (c *Controller) Triage() *session.Triage {
	t, _ := c.state.(*session.Triage)
	return t
}

// SwitchMode replaces the active workflow with a fresh one of mode.
// Switching to the current mode keeps its progress.
func (c *Controller) SwitchMode(mode session.Mode) error {
	if c.state == nil {
		return session.ErrNoEntries
	}
	if c.state.Mode() == mode {
		return nil
	}

	switch mode {
	case session.ModeSelection:
		c.state = session.NewSelection(c.entries)
	case session.ModeTriage:
		t, err := session.NewTriage(c.entries)
		if err != nil {
			return err
		}
		c.state = t
	default:
		return fmt.Errorf("unknown mode %d", mode)
	}

	c.log.Info("mode switched", slog.String("cycle", c.cycleID), slog.String("mode", mode.String()))
	return nil
}

// Finalize returns the words the active workflow would submit.
func (c *Controller) Finalize() ([]string, error) {
	if c.state == nil {
		return nil, session.ErrNoEntries
	}
	return c.state.Finalize()
}

// Submit registers words with the store in one request. The cycle is not
// modified, so a failed submission can be retried.
func (c *Controller) Submit(ctx context.Context, words []string) (knownwords.Result, error) {
	if len(words) == 0 {
		return knownwords.Result{}, session.ErrNoWords
	}

	release, err := c.acquire()
	if err != nil {
		return knownwords.Result{}, err
	}
	defer release()

	res, err := c.registrar.Register(ctx, words)
	if err != nil {
		c.log.WarnContext(ctx, "submission failed",
			slog.String("cycle", c.cycleID),
			slog.Int("words", len(words)),
			slog.String("error", err.Error()),
		)
		return knownwords.Result{}, err
	}

	c.log.InfoContext(ctx, "submission accepted",
		slog.String("cycle", c.cycleID),
		slog.Int("added", res.Added),
		slog.Int("skipped", res.Skipped),
	)
	return res, nil
}

// Reset clears the cycle and the pending file. It is always safe to call.
func (c *Controller) Reset() {
	if c.cycleID != "" {
		c.log.Info("cycle reset", slog.String("cycle", c.cycleID))
	}
	c.pending = ""
	c.cycleID = ""
	c.entries = nil
	c.state = nil
}
