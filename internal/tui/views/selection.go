package views

import (
	"fmt"
	"strings"

	"github.com/agnivade/levenshtein"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"

	"github.com/f3rmion/scribe/internal/session"
)

var (
	selRowStyle = lipgloss.NewStyle().
			Foreground(colorText)

	selCheckedStyle = lipgloss.NewStyle().
			Foreground(colorSuccess).
			Bold(true)

	selCursorStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(colorAccent).
			Background(colorBgAlt)

	selCountStyle = lipgloss.NewStyle().
			Foreground(colorSecondary)
)

type selectionKeys struct {
	Up     key.Binding
	Down   key.Binding
	Toggle key.Binding
	All    key.Binding
	None   key.Binding
	Invert key.Binding
	Filter key.Binding
	Submit key.Binding
}

func newSelectionKeys() selectionKeys {
	return selectionKeys{
		Up:     key.NewBinding(key.WithKeys("k", "up"), key.WithHelp("↑/k", "up")),
		Down:   key.NewBinding(key.WithKeys("j", "down"), key.WithHelp("↓/j", "down")),
		Toggle: key.NewBinding(key.WithKeys(" "), key.WithHelp("space", "toggle")),
		All:    key.NewBinding(key.WithKeys("a"), key.WithHelp("a", "all")),
		None:   key.NewBinding(key.WithKeys("n"), key.WithHelp("n", "none")),
		Invert: key.NewBinding(key.WithKeys("i"), key.WithHelp("i", "invert")),
		Filter: key.NewBinding(key.WithKeys("/"), key.WithHelp("/", "filter")),
		Submit: key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "submit")),
	}
}

func (k selectionKeys) ShortHelp() []key.Binding {
	return []key.Binding{k.Toggle, k.All, k.None, k.Invert, k.Filter, k.Submit}
}

// SelectionModel is the bulk multi-select view.
type SelectionModel struct {
	sel *session.Selection

	visible []int // entry indices passing the filter
	cursor  int
	offset  int

	filter    textinput.Model
	filtering bool

	keys selectionKeys

	width  int
	height int
}

// NewSelectionModel creates an empty selection view.
func NewSelectionModel() SelectionModel {
	ti := textinput.New()
	ti.Placeholder = "filter words"
	ti.Prompt = "/ "
	ti.CharLimit = 64

	return SelectionModel{
		filter: ti,
		keys:   newSelectionKeys(),
	}
}

// SetSelection shows sel, or clears the view when sel is nil.
func (m *SelectionModel) SetSelection(sel *session.Selection) {
	m.sel = sel
	m.cursor = 0
	m.offset = 0
	m.filtering = false
	m.filter.Blur()
	m.filter.SetValue("")
	m.applyFilter()
}

// Selection returns the session being shown, or nil.
func (m SelectionModel) Selection() *session.Selection {
	return m.sel
}

// SetSize updates the view dimensions.
func (m *SelectionModel) SetSize(width, height int) {
	m.width = width
	m.height = height
	m.filter.Width = max(width-8, 10)
}

// Filtering reports whether the filter input has focus.
func (m SelectionModel) Filtering() bool {
	return m.filtering
}

// Visible returns the entry indices currently listed.
func (m SelectionModel) Visible() []int {
	return m.visible
}

// Cursor returns the entry index under the cursor, or -1.
func (m SelectionModel) Cursor() int {
	if m.cursor < 0 || m.cursor >= len(m.visible) {
		return -1
	}
	return m.visible[m.cursor]
}

func (m *SelectionModel) applyFilter() {
	m.visible = nil
	if m.sel == nil {
		return
	}

	query := m.filter.Value()
	for i, e := range m.sel.Entries() {
		if MatchWord(query, e.Word) {
			m.visible = append(m.visible, i)
		}
	}
	m.cursor = min(m.cursor, max(len(m.visible)-1, 0))
	m.adjustScroll()
}

// MatchWord reports whether word passes the filter query: a substring
// match, or for queries of three or more runes a single-edit typo.
func MatchWord(query, word string) bool {
	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		return true
	}
	w := strings.ToLower(word)
	if strings.Contains(w, q) {
		return true
	}
	return len([]rune(q)) >= 3 && levenshtein.ComputeDistance(q, w) <= 1
}

// Update handles messages.
func (m SelectionModel) Update(msg tea.Msg) (SelectionModel, tea.Cmd) {
	if m.sel == nil {
		return m, nil
	}

	if m.filtering {
		return m.updateFilter(msg)
	}

	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	switch {
	case key.Matches(keyMsg, m.keys.Down):
		if m.cursor < len(m.visible)-1 {
			m.cursor++
			m.adjustScroll()
		}
	case key.Matches(keyMsg, m.keys.Up):
		if m.cursor > 0 {
			m.cursor--
			m.adjustScroll()
		}
	case key.Matches(keyMsg, m.keys.Toggle):
		if i := m.Cursor(); i >= 0 {
			m.sel.Toggle(i)
		}
		if m.cursor < len(m.visible)-1 {
			m.cursor++
			m.adjustScroll()
		}
	case key.Matches(keyMsg, m.keys.All):
		m.sel.SelectAll()
	case key.Matches(keyMsg, m.keys.None):
		m.sel.DeselectAll()
	case key.Matches(keyMsg, m.keys.Invert):
		m.sel.Invert()
	case key.Matches(keyMsg, m.keys.Filter):
		m.filtering = true
		return m, m.filter.Focus()
	case key.Matches(keyMsg, m.keys.Submit):
		return m, func() tea.Msg { return SubmitRequestedMsg{} }
	}

	return m, nil
}

func (m SelectionModel) updateFilter(msg tea.Msg) (SelectionModel, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		switch keyMsg.String() {
		case "enter":
			m.filtering = false
			m.filter.Blur()
			return m, nil
		case "esc":
			m.filtering = false
			m.filter.Blur()
			m.filter.SetValue("")
			m.applyFilter()
			return m, nil
		}
	}

	var cmd tea.Cmd
	m.filter, cmd = m.filter.Update(msg)
	m.applyFilter()
	return m, cmd
}

func (m *SelectionModel) visibleHeight() int {
	return max(m.height-8, 3)
}

func (m *SelectionModel) adjustScroll() {
	h := m.visibleHeight()
	if m.cursor < m.offset {
		m.offset = m.cursor
	}
	if m.cursor >= m.offset+h {
		m.offset = m.cursor - h + 1
	}
}

// View renders the list.
func (m SelectionModel) View() string {
	if m.sel == nil {
		return mutedStyle.Render("No lexicon loaded. Press 1 to open a file.")
	}

	var b strings.Builder

	b.WriteString(titleStyle.Render("Select Words"))
	b.WriteString("  ")
	b.WriteString(selCountStyle.Render(fmt.Sprintf("%d of %d selected", m.sel.Count(), m.sel.Len())))
	b.WriteString("\n\n")

	if m.filtering || m.filter.Value() != "" {
		b.WriteString(m.filter.View())
		b.WriteString(mutedStyle.Render(fmt.Sprintf("  %d match", len(m.visible))))
		b.WriteString("\n")
	}
	b.WriteString(divider(m.width))
	b.WriteString("\n")

	entries := m.sel.Entries()
	rowWidth := max(m.width-6, 20)
	end := min(m.offset+m.visibleHeight(), len(m.visible))
	for row := m.offset; row < end; row++ {
		i := m.visible[row]
		e := entries[i]

		check := "[ ] "
		style := selRowStyle
		if m.sel.IsSelected(i) {
			check = "[x] "
			style = selCheckedStyle
		}

		line := check + e.Word
		if e.Phonetic != "" {
			line += "  /" + e.Phonetic + "/"
		}
		if e.Definitions != "" {
			line += "  " + e.Definitions
		}
		line = runewidth.Truncate(line, rowWidth, "…")

		if row == m.cursor {
			b.WriteString("> " + selCursorStyle.Render(line))
		} else {
			b.WriteString("  " + style.Render(line))
		}
		b.WriteString("\n")
	}

	if len(m.visible) == 0 {
		b.WriteString(mutedStyle.Render("  (no words match)"))
		b.WriteString("\n")
	}

	b.WriteString(divider(m.width))
	b.WriteString("\n")
	b.WriteString(helpView(m.keys.ShortHelp()))

	return b.String()
}
