package cli

import (
	"fmt"
	"slices"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/matzehuels/chartkit/pkg/catalog"
)

// List styles
var (
	listTabStyle       = lipgloss.NewStyle().Padding(0, 1).Foreground(colorGray)
	listActiveTabStyle = lipgloss.NewStyle().Padding(0, 1).Bold(true).Foreground(colorCyan).Underline(true)
	listDimStyle       = lipgloss.NewStyle().Foreground(colorDim)
)

const defaultListHeight = 15

// browseCommand creates the interactive catalog browser.
func (c *CLI) browseCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "browse",
		Short: "Browse the component catalog interactively",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			final, err := tea.NewProgram(NewComponentListModel(catalog.All()), tea.WithContext(cmd.Context())).Run()
			if err != nil {
				return fmt.Errorf("browse: %w", err)
			}
			if m, ok := final.(ComponentListModel); ok && m.Selected != nil {
				printComponent(*m.Selected)
			}
			return nil
		},
	}
}

// =============================================================================
// ComponentListModel - Interactive catalog browser
// =============================================================================

// ComponentListModel is the bubbletea model for browsing components. Tab
// cycles categories, enter opens a component's detail view, and enter again
// selects it.
type ComponentListModel struct {
	All        []catalog.Component
	Categories []string
	Category   int
	Visible    []catalog.Component
	Cursor     int
	Offset     int
	Height     int
	Detail     bool
	Selected   *catalog.Component
}

// NewComponentListModel creates a browser over components, starting on
// every category.
func NewComponentListModel(components []catalog.Component) ComponentListModel {
	cats := []string{catalog.AllCategories}
	for _, c := range components {
		if !slices.Contains(cats, c.Category) {
			cats = append(cats, c.Category)
		}
	}
	m := ComponentListModel{All: components, Categories: cats, Height: defaultListHeight}
	m.filter()
	return m
}

// filter recomputes the visible components and resets the cursor.
func (m *ComponentListModel) filter() {
	cat := m.Categories[m.Category]
	var visible []catalog.Component
	for _, c := range m.All {
		if cat == catalog.AllCategories || c.Category == cat {
			visible = append(visible, c)
		}
	}
	m.Visible = visible
	m.Cursor, m.Offset = 0, 0
}

func (m ComponentListModel) Init() tea.Cmd {
	return nil
}

func (m ComponentListModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if m.Detail {
			return m.updateDetail(msg)
		}
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		case "up", "k":
			if m.Cursor > 0 {
				m.Cursor--
				if m.Cursor < m.Offset {
					m.Offset = m.Cursor
				}
			}
		case "down", "j":
			if m.Cursor < len(m.Visible)-1 {
				m.Cursor++
				if m.Cursor >= m.Offset+m.Height {
					m.Offset = m.Cursor - m.Height + 1
				}
			}
		case "tab", "right", "l":
			m.Category = (m.Category + 1) % len(m.Categories)
			m.filter()
		case "shift+tab", "left", "h":
			m.Category = (m.Category + len(m.Categories) - 1) % len(m.Categories)
			m.filter()
		case "enter":
			if len(m.Visible) > 0 {
				m.Detail = true
			}
		}
	case tea.WindowSizeMsg:
		m.Height = max(msg.Height-8, 5)
	}
	return m, nil
}

func (m ComponentListModel) updateDetail(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c", "q":
		return m, tea.Quit
	case "esc", "backspace":
		m.Detail = false
	case "enter":
		c := m.Visible[m.Cursor]
		m.Selected = &c
		return m, tea.Quit
	}
	return m, nil
}

func (m ComponentListModel) View() string {
	if m.Detail {
		return m.detailView()
	}

	var b strings.Builder
	b.WriteString(StyleTitle.Render("Component Catalog"))
	b.WriteString("\n")
	tabs := make([]string, len(m.Categories))
	for i, cat := range m.Categories {
		if i == m.Category {
			tabs[i] = listActiveTabStyle.Render(cat)
		} else {
			tabs[i] = listTabStyle.Render(cat)
		}
	}
	b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, tabs...))
	b.WriteString("\n")
	b.WriteString(listDimStyle.Render("↑/↓ navigate  ⇥ category  ⏎ details  q quit"))
	b.WriteString("\n\n")

	if len(m.Visible) == 0 {
		b.WriteString(listDimStyle.Render("  no components"))
		return b.String()
	}

	end := min(m.Offset+m.Height, len(m.Visible))
	rows := [][]string{}
	for i := m.Offset; i < end; i++ {
		c := m.Visible[i]
		cursor := "  "
		if i == m.Cursor {
			cursor = "▸ "
		}
		kind := "—"
		if c.Renderable() {
			kind = string(c.Kind)
		}
		rows = append(rows, []string{cursor, c.Title, c.Category, kind})
	}

	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Headers("", "Component", "Category", "Kind").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == headerRow {
				return tableHeaderStyle
			}
			idx := m.Offset + row
			if idx >= len(m.Visible) {
				return lipgloss.NewStyle()
			}
			base := lipgloss.NewStyle()
			if !m.Visible[idx].Renderable() {
				base = base.Foreground(colorDim)
			} else if col == 3 {
				base = base.Foreground(colorGreen)
			}
			if idx == m.Cursor {
				return base.Bold(true).Foreground(colorCyan)
			}
			return base
		})

	b.WriteString(t.Render())
	b.WriteString("\n\n")
	b.WriteString(listDimStyle.Render(fmt.Sprintf("  [%d/%d]", m.Cursor+1, len(m.Visible))))
	return b.String()
}

func (m ComponentListModel) detailView() string {
	c := m.Visible[m.Cursor]
	var b strings.Builder
	b.WriteString(StyleTitle.Render(c.Title))
	b.WriteString(" " + listDimStyle.Render(c.ID))
	b.WriteString("\n")
	b.WriteString(listDimStyle.Render("⏎ select  esc back  q quit"))
	b.WriteString("\n\n")
	b.WriteString(c.Description)
	b.WriteString("\n\n")
	if len(c.Props) > 0 {
		b.WriteString(propTable(c.Props))
		b.WriteString("\n")
	}
	if len(c.Examples) > 0 {
		ex := c.Examples[0]
		b.WriteString(StyleTitle.Render("Example: ") + ex.Title + "\n")
		b.WriteString(listDimStyle.Render(strings.TrimRight(ex.Code, "\n")))
		b.WriteString("\n")
	}
	return b.String()
}
