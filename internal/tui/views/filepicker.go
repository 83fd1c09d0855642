package views

import (
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// FileSelectedMsg is sent when a lexicon file is chosen.
type FileSelectedMsg struct {
	Path string
}

var (
	fpTitleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(colorPrimary).
			MarginBottom(1)

	fpPathStyle = lipgloss.NewStyle().
			Foreground(colorMuted).
			Italic(true).
			MarginBottom(1)

	fpDirStyle = lipgloss.NewStyle().
			Foreground(colorSecondary).
			Bold(true)

	fpFileStyle = lipgloss.NewStyle().
			Foreground(colorText)

	fpSelectedStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(colorAccent).
			Background(colorBgAlt)
)

type filePickerKeys struct {
	Up     key.Binding
	Down   key.Binding
	Open   key.Binding
	Parent key.Binding
	Home   key.Binding
	Top    key.Binding
	Bottom key.Binding
	Hidden key.Binding
}

func newFilePickerKeys() filePickerKeys {
	return filePickerKeys{
		Up:     key.NewBinding(key.WithKeys("k", "up"), key.WithHelp("↑/k", "up")),
		Down:   key.NewBinding(key.WithKeys("j", "down"), key.WithHelp("↓/j", "down")),
		Open:   key.NewBinding(key.WithKeys("enter", "l", "right"), key.WithHelp("enter", "open")),
		Parent: key.NewBinding(key.WithKeys("backspace", "h", "left"), key.WithHelp("backspace", "parent")),
		Home:   key.NewBinding(key.WithKeys("~"), key.WithHelp("~", "home")),
		Top:    key.NewBinding(key.WithKeys("g"), key.WithHelp("g", "top")),
		Bottom: key.NewBinding(key.WithKeys("G"), key.WithHelp("G", "bottom")),
		Hidden: key.NewBinding(key.WithKeys("."), key.WithHelp(".", "hidden files")),
	}
}

func (k filePickerKeys) ShortHelp() []key.Binding {
	return []key.Binding{k.Open, k.Parent, k.Home, k.Hidden}
}

// FileEntry is a file or directory row.
type FileEntry struct {
	Name  string
	IsDir bool
	Path  string
}

// FilePickerModel browses the disk for lexicon files.
type FilePickerModel struct {
	currentDir string
	entries    []FileEntry
	selected   int
	offset     int

	extensions []string
	showHidden bool
	chosen     string

	keys filePickerKeys
	err  error

	width  int
	height int
}

// NewFilePickerModel starts in startDir, or the home directory when it is
// empty or missing. Only files with one of extensions are listed.
func NewFilePickerModel(startDir string, extensions []string) FilePickerModel {
	if startDir == "" {
		startDir, _ = os.Getwd()
	}
	if _, err := os.Stat(startDir); err != nil {
		startDir, _ = os.UserHomeDir()
	}
	if startDir == "" {
		startDir = string(filepath.Separator)
	}

	m := FilePickerModel{
		currentDir: startDir,
		extensions: extensions,
		keys:       newFilePickerKeys(),
	}
	m.loadDir()
	return m
}

// SetSize updates the view dimensions.
func (m *FilePickerModel) SetSize(width, height int) {
	m.width = width
	m.height = height
}

// Dir returns the directory being shown.
func (m FilePickerModel) Dir() string {
	return m.currentDir
}

// Entries returns the listed rows.
func (m FilePickerModel) Entries() []FileEntry {
	return m.entries
}

// SetChosen marks path as the pending import.
func (m *FilePickerModel) SetChosen(path string) {
	m.chosen = path
}

func (m *FilePickerModel) loadDir() {
	m.entries = nil
	m.selected = 0
	m.offset = 0
	m.err = nil

	entries, err := os.ReadDir(m.currentDir)
	if err != nil {
		m.err = err
		return
	}

	if parent := filepath.Dir(m.currentDir); parent != m.currentDir {
		m.entries = append(m.entries, FileEntry{Name: "..", IsDir: true, Path: parent})
	}

	var dirs, files []FileEntry
	for _, entry := range entries {
		if !m.showHidden && strings.HasPrefix(entry.Name(), ".") {
			continue
		}

		fe := FileEntry{
			Name:  entry.Name(),
			IsDir: entry.IsDir(),
			Path:  filepath.Join(m.currentDir, entry.Name()),
		}
		if entry.IsDir() {
			dirs = append(dirs, fe)
		} else if m.matchesExtension(entry.Name()) {
			files = append(files, fe)
		}
	}

	byName := func(list []FileEntry) func(i, j int) bool {
		return func(i, j int) bool {
			return strings.ToLower(list[i].Name) < strings.ToLower(list[j].Name)
		}
	}
	sort.Slice(dirs, byName(dirs))
	sort.Slice(files, byName(files))

	m.entries = append(m.entries, dirs...)
	m.entries = append(m.entries, files...)
}

func (m *FilePickerModel) matchesExtension(name string) bool {
	if len(m.extensions) == 0 {
		return true
	}
	ext := strings.ToLower(filepath.Ext(name))
	for _, e := range m.extensions {
		if ext == strings.ToLower(e) {
			return true
		}
	}
	return false
}

func (m *FilePickerModel) changeDir(dir string) {
	m.currentDir = dir
	m.loadDir()
}

// Update handles messages.
func (m FilePickerModel) Update(msg tea.Msg) (FilePickerModel, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	switch {
	case key.Matches(keyMsg, m.keys.Down):
		if m.selected < len(m.entries)-1 {
			m.selected++
			m.adjustScroll()
		}
	case key.Matches(keyMsg, m.keys.Up):
		if m.selected > 0 {
			m.selected--
			m.adjustScroll()
		}
	case key.Matches(keyMsg, m.keys.Open):
		if m.selected >= len(m.entries) {
			return m, nil
		}
		entry := m.entries[m.selected]
		if entry.IsDir {
			m.changeDir(entry.Path)
			return m, nil
		}
		return m, func() tea.Msg {
			return FileSelectedMsg{Path: entry.Path}
		}
	case key.Matches(keyMsg, m.keys.Parent):
		if parent := filepath.Dir(m.currentDir); parent != m.currentDir {
			m.changeDir(parent)
		}
	case key.Matches(keyMsg, m.keys.Home):
		if home, _ := os.UserHomeDir(); home != "" {
			m.changeDir(home)
		}
	case key.Matches(keyMsg, m.keys.Top):
		m.selected = 0
		m.offset = 0
	case key.Matches(keyMsg, m.keys.Bottom):
		m.selected = max(len(m.entries)-1, 0)
		m.adjustScroll()
	case key.Matches(keyMsg, m.keys.Hidden):
		m.showHidden = !m.showHidden
		m.loadDir()
	}

	return m, nil
}

func (m *FilePickerModel) visibleHeight() int {
	return max(m.height-10, 5)
}

func (m *FilePickerModel) adjustScroll() {
	h := m.visibleHeight()
	if m.selected < m.offset {
		m.offset = m.selected
	}
	if m.selected >= m.offset+h {
		m.offset = m.selected - h + 1
	}
}

// View renders the file picker.
func (m FilePickerModel) View() string {
	var b strings.Builder

	b.WriteString(fpTitleStyle.Render("Open Lexicon (" + strings.Join(m.extensions, " ") + ")"))
	b.WriteString("\n")
	b.WriteString(fpPathStyle.Render(m.currentDir))
	b.WriteString("\n")

	if m.chosen != "" {
		b.WriteString(mutedStyle.Render("loaded: " + filepath.Base(m.chosen)))
		b.WriteString("\n")
	}

	if m.err != nil {
		b.WriteString(errorStyle.Render("Error: " + m.err.Error()))
		b.WriteString("\n\n")
	}

	b.WriteString(divider(m.width))
	b.WriteString("\n")

	if len(m.entries) == 0 {
		b.WriteString(mutedStyle.Render("  (no lexicon files here)"))
		b.WriteString("\n")
	}

	end := min(m.offset+m.visibleHeight(), len(m.entries))
	for i := m.offset; i < end; i++ {
		entry := m.entries[i]

		icon := "[FILE] "
		style := fpFileStyle
		if entry.IsDir {
			icon = "[DIR]  "
			style = fpDirStyle
		}

		prefix := "  "
		if i == m.selected {
			prefix = "> "
			style = fpSelectedStyle
		}

		b.WriteString(prefix)
		b.WriteString(style.Render(icon + entry.Name))
		b.WriteString("\n")
	}

	if len(m.entries) > m.visibleHeight() {
		b.WriteString(mutedStyle.Render("  ↕ scroll"))
		b.WriteString("\n")
	}

	b.WriteString(divider(m.width))
	b.WriteString("\n")
	b.WriteString(helpView(m.keys.ShortHelp()))

	return b.String()
}
