package cli

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/loadstone/loadstone/pkg/catalog"
	"github.com/loadstone/loadstone/pkg/errors"
	"github.com/loadstone/loadstone/pkg/inventory"
)

var (
	listSelectedStyle = lipgloss.NewStyle().Bold(true).Foreground(colorCyan)
	listNormalStyle   = lipgloss.NewStyle().Foreground(colorWhite)
	listDimStyle      = lipgloss.NewStyle().Foreground(colorDim)
)

// modListModel is the bubbletea model for choosing one installed mod when
// the tree command is run without an argument.
type modListModel struct {
	entries  []inventory.Entry
	cursor   int
	selected *inventory.Entry
	height   int
	offset   int
}

func newModListModel(entries []inventory.Entry) modListModel {
	return modListModel{entries: entries, height: 15}
}

func (m modListModel) Init() tea.Cmd {
	return nil
}

func (m modListModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
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
		case "enter":
			entry := m.entries[m.cursor]
			m.selected = &entry
			return m, tea.Quit
		}
	case tea.WindowSizeMsg:
		m.height = msg.Height - 5
		if m.height < 5 {
			m.height = 5
		}
	}
	return m, nil
}

func (m modListModel) View() string {
	var b strings.Builder

	b.WriteString(styleTitle.Render("Select Mod"))
	b.WriteString("\n")
	b.WriteString(listDimStyle.Render("↑/↓ navigate  ⏎ select  q quit"))
	b.WriteString("\n\n")

	end := m.offset + m.height
	if end > len(m.entries) {
		end = len(m.entries)
	}
	for i := m.offset; i < end; i++ {
		entry := m.entries[i]
		line := "  " + listNormalStyle.Render(entry.Folder)
		if i == m.cursor {
			line = listSelectedStyle.Render("▸ " + entry.Folder)
		}
		b.WriteString(line + " " + listDimStyle.Render("("+string(entry.ID)+")") + "\n")
	}
	return b.String()
}

// pickable drops the rows the inventory never indexes: separators and
// entries without a catalog id.
func pickable(entries []inventory.Entry) []inventory.Entry {
	out := make([]inventory.Entry, 0, len(entries))
	for _, e := range entries {
		if e.Separator || e.ID == "" {
			continue
		}
		out = append(out, e)
	}
	return out
}

// pickMod lets the user choose one installed mod interactively and returns
// its catalog id.
func pickMod(entries []inventory.Entry) (catalog.ModID, error) {
	entries = pickable(entries)
	if len(entries) == 0 {
		return "", errors.New(errors.ErrCodeInvalidModlist, "no installed mods with catalog ids")
	}

	prog := tea.NewProgram(newModListModel(entries))
	final, err := prog.Run()
	if err != nil {
		return "", fmt.Errorf("run picker: %w", err)
	}
	model, ok := final.(modListModel)
	if !ok || model.selected == nil {
		return "", errors.New(errors.ErrCodeInvalidInput, "no mod selected")
	}
	return model.selected.ID, nil
}
