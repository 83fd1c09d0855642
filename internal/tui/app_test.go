package tui

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/f3rmion/scribe/internal/clipboard"
	"github.com/f3rmion/scribe/internal/config"
	"github.com/f3rmion/scribe/internal/importer"
	"github.com/f3rmion/scribe/internal/knownwords"
	"github.com/f3rmion/scribe/internal/logging"
	"github.com/f3rmion/scribe/internal/session"
	"github.com/f3rmion/scribe/internal/tui/views"
)

const twoWords = `[{"headWord":"apple"},{"headWord":"pear"}]`

type files map[string]string

func (f files) ReadText(_ context.Context, handle string) (string, error) {
	text, ok := f[handle]
	if !ok {
		return "", fmt.Errorf("reading lexicon file: %s not found", handle)
	}
	return text, nil
}

type registrar struct {
	calls [][]string
	err   error
}

func (r *registrar) Register(_ context.Context, words []string) (knownwords.Result, error) {
	r.calls = append(r.calls, words)
	if r.err != nil {
		return knownwords.Result{}, r.err
	}
	return knownwords.Result{Added: len(words)}, nil
}

type copier struct {
	words []string
}

func (c *copier) WriteWords(words []string) (clipboard.Method, error) {
	c.words = words
	return clipboard.MethodOSC52, nil
}

type prober struct {
	err error
}

func (p prober) Probe(context.Context) error { return p.err }

type harness struct {
	app  AppModel
	ctrl *importer.Controller
	reg  *registrar
	clip *copier
}

func newHarness(t *testing.T, f files) *harness {
	t.Helper()

	cfg := config.Default(t.TempDir())
	cfg.Import.StartDir = t.TempDir()
	cfg.Import.ResetDelay = time.Millisecond

	h := &harness{reg: &registrar{}, clip: &copier{}}
	h.ctrl = importer.NewController(f, h.reg, logging.Discard(), importer.Options{})
	h.app = NewApp(Deps{
		Controller: h.ctrl,
		Copier:     h.clip,
		Config:     &cfg,
		Logger:     logging.Discard(),
	})
	h.send(tea.WindowSizeMsg{Width: 120, Height: 40})
	return h
}

// send feeds msg to the app and returns the messages its command produces.
func (h *harness) send(msg tea.Msg) []tea.Msg {
	next, cmd := h.app.Update(msg)
	h.app = next.(AppModel)
	return collect(cmd)
}

// run feeds msg and then every message it produces, except timers of the
// busy spinner.
func (h *harness) run(msg tea.Msg) {
	for _, out := range h.send(msg) {
		switch out.(type) {
		case nil:
		case importDoneMsg, submitDoneMsg, resetMsg, probeMsg,
			views.SubmitRequestedMsg, views.CopyRequestedMsg:
			h.run(out)
		}
	}
}

func (h *harness) key(s string) {
	switch s {
	case "enter":
		h.run(tea.KeyMsg{Type: tea.KeyEnter})
	case "right":
		h.run(tea.KeyMsg{Type: tea.KeyRight})
	case "left":
		h.run(tea.KeyMsg{Type: tea.KeyLeft})
	default:
		h.run(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)})
	}
}

func collect(cmd tea.Cmd) []tea.Msg {
	if cmd == nil {
		return nil
	}
	msg := cmd()
	if batch, ok := msg.(tea.BatchMsg); ok {
		var out []tea.Msg
		for _, c := range batch {
			out = append(out, collect(c)...)
		}
		return out
	}
	return []tea.Msg{msg}
}

func TestApp_ImportOpensSelection(t *testing.T) {
	h := newHarness(t, files{"words.json": twoWords})

	h.run(views.FileSelectedMsg{Path: "words.json"})

	require.True(t, h.ctrl.Active())
	assert.Equal(t, ViewSelect, h.app.currentView)
	assert.Equal(t, session.ModeSelection, h.ctrl.Mode())
	assert.Equal(t, "words.json: imported 2, skipped 0", h.app.status.text)
	assert.False(t, h.app.busy)
	assert.Contains(t, h.app.View(), "apple")
}

func TestApp_MalformedImportKeepsCycle(t *testing.T) {
	h := newHarness(t, files{"words.json": twoWords, "bad.json": "{not json"})

	h.run(views.FileSelectedMsg{Path: "words.json"})
	cycle := h.ctrl.CycleID()

	h.run(views.FileSelectedMsg{Path: "bad.json"})

	assert.Equal(t, cycle, h.ctrl.CycleID())
	assert.Equal(t, statusError, h.app.status.kind)
	assert.Contains(t, h.app.status.text, "malformed lexicon")
	assert.Equal(t, "{not json", h.app.status.detail)
}

func TestApp_BusyIgnoresInput(t *testing.T) {
	h := newHarness(t, files{"words.json": twoWords})

	pending := h.send(views.FileSelectedMsg{Path: "words.json"})
	require.True(t, h.app.busy)

	h.key("3")
	assert.Equal(t, ViewOpen, h.app.currentView)

	next, cmd := h.app.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("q")})
	h.app = next.(AppModel)
	require.NotNil(t, cmd)
	assert.IsType(t, tea.QuitMsg{}, cmd())

	for _, msg := range pending {
		if done, ok := msg.(importDoneMsg); ok {
			h.run(done)
		}
	}
	assert.False(t, h.app.busy)
	assert.True(t, h.ctrl.Active())
}

func TestApp_SelectionSubmitAndReset(t *testing.T) {
	h := newHarness(t, files{"words.json": twoWords})
	h.run(views.FileSelectedMsg{Path: "words.json"})

	// Nothing selected yet.
	h.key("enter")
	assert.Equal(t, session.ErrEmptySelection.Error(), h.app.status.text)
	assert.Empty(t, h.reg.calls)

	h.key(" ")
	h.key("enter")

	require.Len(t, h.reg.calls, 1)
	assert.Equal(t, []string{"apple"}, h.reg.calls[0])
	assert.Equal(t, "added 1, skipped 0", h.app.status.text)

	assert.False(t, h.ctrl.Active(), "the cycle resets after the delay")
	assert.Equal(t, ViewOpen, h.app.currentView)
}

func TestApp_TriageFlow(t *testing.T) {
	h := newHarness(t, files{"words.json": twoWords})
	h.run(views.FileSelectedMsg{Path: "words.json"})

	h.key("3")
	require.Equal(t, session.ModeTriage, h.ctrl.Mode())
	assert.True(t, h.app.triageView.Attached())

	h.key("right")
	h.key("left")
	require.True(t, h.ctrl.Triage().Complete())

	h.key("y")
	assert.Equal(t, []string{"pear"}, h.clip.words)
	assert.Equal(t, "copied 1 words (osc52)", h.app.status.text)

	h.key("enter")
	require.Len(t, h.reg.calls, 1)
	assert.Equal(t, []string{"pear"}, h.reg.calls[0])
	assert.False(t, h.ctrl.Active())
}

func TestApp_TriageKeysDetachOutsideTriage(t *testing.T) {
	h := newHarness(t, files{"words.json": twoWords})
	h.run(views.FileSelectedMsg{Path: "words.json"})

	h.key("3")
	tr := h.ctrl.Triage()
	require.NotNil(t, tr)

	h.run(tea.KeyMsg{Type: tea.KeyTab})
	assert.False(t, h.app.triageView.Attached())
	h.key("h")
	assert.Equal(t, 0, tr.Cursor())

	h.run(tea.KeyMsg{Type: tea.KeyTab})
	assert.True(t, h.app.triageView.Attached())
	h.key("right")
	assert.Equal(t, 1, tr.Cursor())

	h.key("2")
	assert.False(t, h.app.triageView.Attached())
	assert.Equal(t, session.ModeSelection, h.ctrl.Mode())
}

func TestApp_SubmitFailureKeepsState(t *testing.T) {
	h := newHarness(t, files{"words.json": twoWords})
	h.reg.err = &knownwords.TransportError{Err: errors.New("connection refused")}
	h.run(views.FileSelectedMsg{Path: "words.json"})

	h.key("a")
	h.key("enter")

	assert.Equal(t, statusError, h.app.status.kind)
	assert.Contains(t, h.app.status.text, "network error")
	require.True(t, h.ctrl.Active())
	assert.Equal(t, 2, h.ctrl.Selection().Count())

	h.reg.err = nil
	h.key("enter")
	require.Len(t, h.reg.calls, 2)
	assert.False(t, h.ctrl.Active())
}

func TestApp_FilterOwnsKeys(t *testing.T) {
	h := newHarness(t, files{"words.json": twoWords})
	h.run(views.FileSelectedMsg{Path: "words.json"})

	h.key("/")
	h.key("3")
	assert.Equal(t, ViewSelect, h.app.currentView)
	assert.Equal(t, session.ModeSelection, h.ctrl.Mode())
}

func TestApp_ExplicitReset(t *testing.T) {
	h := newHarness(t, files{"words.json": twoWords})
	h.run(views.FileSelectedMsg{Path: "words.json"})

	h.key("R")
	assert.False(t, h.ctrl.Active())
	assert.Equal(t, ViewOpen, h.app.currentView)
	assert.Nil(t, h.app.selectionView.Selection())
}

func TestApp_ProbeStatus(t *testing.T) {
	ctrl := importer.NewController(files{}, &registrar{}, logging.Discard(), importer.Options{})
	app := NewApp(Deps{Controller: ctrl, Prober: prober{err: errors.New("down")}})

	msgs := collect(app.Init())
	require.Len(t, msgs, 1)

	next, _ := app.Update(msgs[0])
	app = next.(AppModel)
	assert.Equal(t, statusError, app.status.kind)
	assert.Equal(t, "known-words store unavailable: down", app.status.text)
}

func TestApp_StartsInControllerMode(t *testing.T) {
	ctrl := importer.NewController(files{"words.json": twoWords}, &registrar{}, logging.Discard(), importer.Options{})
	_, err := ctrl.Open(context.Background(), "words.json")
	require.NoError(t, err)
	require.NoError(t, ctrl.SwitchMode(session.ModeTriage))

	app := NewApp(Deps{Controller: ctrl})
	assert.Equal(t, ViewTriage, app.currentView)
	assert.True(t, app.triageView.Attached())
}
