package views

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/progress"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/f3rmion/scribe/internal/lexicon"
	"github.com/f3rmion/scribe/internal/session"
	"github.com/f3rmion/scribe/internal/tui/banner"
)

// Zone ids of the triage controls.
const (
	ZoneReject = "triage-reject"
	ZoneAccept = "triage-accept"
	ZoneSubmit = "triage-submit"
)

var (
	trWordStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(colorAccent)

	trBannerStyle = lipgloss.NewStyle().
			Foreground(colorAccent)

	trPhoneticStyle = lipgloss.NewStyle().
			Foreground(colorSecondary).
			Italic(true)

	trDefinitionStyle = lipgloss.NewStyle().
				Foreground(colorText)

	trExampleStyle = lipgloss.NewStyle().
			Foreground(colorMuted).
			Italic(true)

	trHintStyle = lipgloss.NewStyle().
			Foreground(colorSecondary).
			Bold(true)

	trCounterStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#888888"))

	trCardStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(colorBorder).
			Padding(1, 3)

	trRejectStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(colorText).
			Background(lipgloss.Color("#c0392b")).
			Padding(0, 2)

	trAcceptStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#1a1a2e")).
			Background(colorSuccess).
			Padding(0, 2)

	trSubmitStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#1a1a2e")).
			Background(colorAccent).
			Padding(0, 2)
)

type triageKeys struct {
	Reject key.Binding
	Accept key.Binding
	Reveal key.Binding
	Submit key.Binding
	Copy   key.Binding
}

func newTriageKeys() triageKeys {
	return triageKeys{
		Reject: key.NewBinding(key.WithKeys("left", "h"), key.WithHelp("←/h", "unknown")),
		Accept: key.NewBinding(key.WithKeys("right", "l"), key.WithHelp("→/l", "known")),
		Reveal: key.NewBinding(key.WithKeys(" "), key.WithHelp("space", "reveal")),
		Submit: key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "submit unknown")),
		Copy:   key.NewBinding(key.WithKeys("y"), key.WithHelp("y", "copy")),
	}
}

func (k *triageKeys) setEnabled(v bool) {
	k.Reject.SetEnabled(v)
	k.Accept.SetEnabled(v)
	k.Reveal.SetEnabled(v)
	k.Submit.SetEnabled(v)
	k.Copy.SetEnabled(v)
}

// TriageModel is the one-card-at-a-time known/unknown view.
type TriageModel struct {
	tr       *session.Triage
	revealed bool

	keys   triageKeys
	zones  Zones
	banner *banner.Renderer
	bar    progress.Model

	width  int
	height int
}

// NewTriageModel creates a detached triage view.
func NewTriageModel(zones Zones, renderer *banner.Renderer) TriageModel {
	m := TriageModel{
		keys:   newTriageKeys(),
		zones:  zones,
		banner: renderer,
		bar:    progress.New(progress.WithDefaultGradient(), progress.WithoutPercentage()),
	}
	m.keys.setEnabled(false)
	return m
}

// SetTriage shows tr, or clears the view when tr is nil.
func (m *TriageModel) SetTriage(tr *session.Triage) {
	m.tr = tr
	m.revealed = false
}

// Triage returns the session being shown, or nil.
func (m TriageModel) Triage() *session.Triage {
	return m.tr
}

// Attach enables the decision keys. Call it when the view comes to the
// foreground.
func (m *TriageModel) Attach() {
	m.keys.setEnabled(true)
}

// Detach disables the decision keys. Call it when the view leaves the
// foreground.
func (m *TriageModel) Detach() {
	m.keys.setEnabled(false)
	m.revealed = false
}

// Attached reports whether the decision keys are live.
func (m TriageModel) Attached() bool {
	return m.keys.Accept.Enabled()
}

// Revealed reports whether the back of the card is showing.
func (m TriageModel) Revealed() bool {
	return m.revealed
}

// SetSize updates the view dimensions.
func (m *TriageModel) SetSize(width, height int) {
	m.width = width
	m.height = height
	m.bar.Width = max(min(width-16, 50), 10)
}

// decide is the single entry point for both keyboard and mouse decisions.
func (m *TriageModel) decide(label session.Label) {
	if m.tr == nil {
		return
	}
	if m.tr.Decide(label) {
		m.revealed = false
	}
}

// Update handles messages.
func (m TriageModel) Update(msg tea.Msg) (TriageModel, tea.Cmd) {
	if m.tr == nil || !m.Attached() {
		return m, nil
	}

	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Reject):
			m.decide(session.Unknown)
		case key.Matches(msg, m.keys.Accept):
			m.decide(session.Known)
		case key.Matches(msg, m.keys.Reveal):
			if !m.tr.Complete() {
				m.revealed = !m.revealed
			}
		case key.Matches(msg, m.keys.Submit):
			if m.tr.Complete() {
				return m, func() tea.Msg { return SubmitRequestedMsg{} }
			}
		case key.Matches(msg, m.keys.Copy):
			if m.tr.Complete() {
				return m, func() tea.Msg { return CopyRequestedMsg{} }
			}
		}

	case tea.MouseMsg:
		if !isClick(msg) || m.zones == nil {
			return m, nil
		}
		switch {
		case m.zones.Hit(ZoneReject, msg):
			m.decide(session.Unknown)
		case m.zones.Hit(ZoneAccept, msg):
			m.decide(session.Known)
		case m.zones.Hit(ZoneSubmit, msg):
			if m.tr.Complete() {
				return m, func() tea.Msg { return SubmitRequestedMsg{} }
			}
		}
	}

	return m, nil
}

func (m TriageModel) mark(id, s string) string {
	if m.zones == nil {
		return s
	}
	return m.zones.Mark(id, s)
}

// View renders the current card or the completion summary.
func (m TriageModel) View() string {
	if m.tr == nil {
		return mutedStyle.Render("No triage running. Open a file (1), then press 3.")
	}

	var b strings.Builder

	b.WriteString(titleStyle.Render("Triage"))
	b.WriteString("\n\n")
	b.WriteString(m.bar.ViewAs(m.tr.Progress()))
	b.WriteString(trCounterStyle.Render(fmt.Sprintf("  %d/%d", m.tr.Cursor(), m.tr.Len())))
	b.WriteString("\n\n")

	if m.tr.Complete() {
		b.WriteString(m.renderSummary())
		return b.String()
	}

	entry, _ := m.tr.Current()
	b.WriteString(trCardStyle.Width(max(m.width-6, 20)).Render(m.renderCard(entry)))
	b.WriteString("\n\n")

	reject := m.mark(ZoneReject, trRejectStyle.Render("← unknown"))
	accept := m.mark(ZoneAccept, trAcceptStyle.Render("known →"))
	b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, reject, "   ", accept))
	b.WriteString("\n\n")
	b.WriteString(helpView([]key.Binding{m.keys.Reject, m.keys.Accept, m.keys.Reveal}))

	return b.String()
}

func (m TriageModel) renderCard(entry lexicon.Entry) string {
	inner := max(m.width-14, 16)

	var parts []string
	if art := m.renderBanner(entry.Word, inner); art != "" {
		parts = append(parts, trBannerStyle.Render(art))
	}
	parts = append(parts, trWordStyle.Render(entry.Word))

	if !m.revealed {
		parts = append(parts, "", trHintStyle.Render("space to reveal"))
		return lipgloss.JoinVertical(lipgloss.Left, parts...)
	}

	if entry.Phonetic != "" {
		parts = append(parts, trPhoneticStyle.Render("/"+entry.Phonetic+"/"))
	}
	if entry.Definitions != "" {
		parts = append(parts, "", trDefinitionStyle.Render(wrap(entry.Definitions, inner)))
	}
	for _, ex := range entry.Examples {
		parts = append(parts, "", trExampleStyle.Render(wrap(ex.Source, inner)))
		if ex.Translation != "" {
			parts = append(parts, trExampleStyle.Render(wrap(ex.Translation, inner)))
		}
	}
	return lipgloss.JoinVertical(lipgloss.Left, parts...)
}

func (m TriageModel) renderBanner(word string, cols int) string {
	if m.banner == nil || m.height < 24 {
		return ""
	}
	return m.banner.Render(word, cols, 4)
}

func (m TriageModel) renderSummary() string {
	var b strings.Builder

	sum := m.tr.Summary()
	b.WriteString(trHintStyle.Render("Triage complete: " + sum.String()))
	b.WriteString("\n\n")

	unknown := m.tr.Unknown()
	if len(unknown) == 0 {
		b.WriteString(mutedStyle.Render("Every word was marked known. Press R to start over."))
		return b.String()
	}

	shown := min(len(unknown), max(m.height-16, 3))
	for _, e := range unknown[:shown] {
		b.WriteString("  • " + e.Word + "\n")
	}
	if shown < len(unknown) {
		b.WriteString(mutedStyle.Render(fmt.Sprintf("  … and %d more", len(unknown)-shown)))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(m.mark(ZoneSubmit, trSubmitStyle.Render(fmt.Sprintf("submit %d unknown", len(unknown)))))
	b.WriteString("\n\n")
	b.WriteString(helpView([]key.Binding{m.keys.Submit, m.keys.Copy}))

	return b.String()
}
