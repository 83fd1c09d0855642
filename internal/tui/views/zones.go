package views

import (
	tea "github.com/charmbracelet/bubbletea"
	zone "github.com/lrstanley/bubblezone"
)

// Zones marks clickable regions in rendered output and hit-tests mouse
// events against them.
type Zones interface {
	Mark(id, s string) string
	Hit(id string, msg tea.MouseMsg) bool
}

// ManagerZones backs Zones with a bubblezone manager. The root view must
// pass its output through the manager's Scan for zones to resolve.
type ManagerZones struct {
	m      *zone.Manager
	prefix string
}

// NewManagerZones wraps m, namespacing ids with a fresh prefix.
func NewManagerZones(m *zone.Manager) *ManagerZones {
	return &ManagerZones{m: m, prefix: m.NewPrefix()}
}

func (z *ManagerZones) Mark(id, s string) string {
	return z.m.Mark(z.prefix+id, s)
}

func (z *ManagerZones) Hit(id string, msg tea.MouseMsg) bool {
	info := z.m.Get(z.prefix + id)
	return info != nil && info.InBounds(msg)
}

// isClick reports a completed left click.
func isClick(msg tea.MouseMsg) bool {
	return msg.Action == tea.MouseActionRelease && msg.Button == tea.MouseButtonLeft
}
