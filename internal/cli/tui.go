package cli

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/depview/depview/pkg/pkggraph"
)

// List styles
var (
	listSelectedStyle = lipgloss.NewStyle().Bold(true).Foreground(colorCyan)
	listNormalStyle   = lipgloss.NewStyle().Foreground(colorWhite)
	listDimStyle      = lipgloss.NewStyle().Foreground(colorDim)
)

// packageListModel is the bubbletea model for interactive package
// selection. Space toggles packages, enter confirms, q or esc cancels.
type packageListModel struct {
	entries  []*pkggraph.Entry
	cursor   int
	offset   int
	height   int
	checked  map[int]bool
	accepted bool
}

func newPackageListModel(g *pkggraph.PackageDAG) packageListModel {
	return packageListModel{
		entries: g.Items(),
		height:  15,
		checked: make(map[int]bool),
	}
}

func (m packageListModel) Init() tea.Cmd {
	return nil
}

func (m packageListModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		case "up", "k":
			if m.cursor > 0 {
				m.cursor--
				if m.cursor < m.offset {
					m.offset = m.cursor
				}
			}
		case "down", "j":
			if m.cursor < len(m.entries)-1 {
				m.cursor++
				if m.cursor >= m.offset+m.height {
					m.offset = m.cursor - m.height + 1
				}
			}
		case " ":
			m.checked[m.cursor] = !m.checked[m.cursor]
		case "enter":
			if len(m.entries) > 0 && !m.anyChecked() {
				m.checked[m.cursor] = true
			}
			m.accepted = true
			return m, tea.Quit
		}
	case tea.WindowSizeMsg:
		m.height = msg.Height - 6
		if m.height < 5 {
			m.height = 5
		}
	}
	return m, nil
}

func (m packageListModel) View() string {
	var b strings.Builder

	b.WriteString(StyleTitle.Render("Select Packages"))
	b.WriteString("\n")
	b.WriteString(listDimStyle.Render("↑/↓ navigate  space toggle  ⏎ confirm  q quit"))
	b.WriteString("\n\n")

	end := m.offset + m.height
	if end > len(m.entries) {
		end = len(m.entries)
	}

	for i := m.offset; i < end; i++ {
		e := m.entries[i]

		cursor := "  "
		if i == m.cursor {
			cursor = "▸ "
		}
		check := "[ ]"
		if m.checked[i] {
			check = "[x]"
		}

		version := e.Pkg.Version
		if e.Pkg.Missing || version == "" {
			version = "?"
		}
		line := fmt.Sprintf("%s%s %-30s %s", cursor, check, e.Pkg.Name, listDimStyle.Render(version))

		switch {
		case i == m.cursor:
			b.WriteString(listSelectedStyle.Render(line))
		case m.checked[i]:
			b.WriteString(StyleSuccess.Render(line))
		default:
			b.WriteString(listNormalStyle.Render(line))
		}
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(listDimStyle.Render(fmt.Sprintf("  [%d/%d]  %d selected", m.cursor+1, len(m.entries), len(m.selectedKeys()))))

	return b.String()
}

func (m packageListModel) anyChecked() bool {
	for _, v := range m.checked {
		if v {
			return true
		}
	}
	return false
}

// selectedKeys returns the graph keys of the confirmed selection, in
// list order. An aborted selection returns nil.
func (m packageListModel) selectedKeys() []string {
	if !m.accepted {
		return nil
	}
	var keys []string
	for i, e := range m.entries {
		if m.checked[i] {
			keys = append(keys, e.Pkg.Key)
		}
	}
	return keys
}
