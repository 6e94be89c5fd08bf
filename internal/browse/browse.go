// Package browse is an interactive terminal browser for a built index:
// type to filter entries, arrows to move, esc to leave.
package browse

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/indexmd/indexmd/internal/index"
)

// row is one flattened entry line.
type row struct {
	entry *index.Entry
	path  string
}

type model struct {
	rows     []row
	filtered []row
	input    textinput.Model
	cursor   int
	offset   int
	width    int
	height   int
	styles   *StyleManager
}

// Run opens the browser over the entries of a processed index.
func Run(ix *index.Index) error {
	rows := flatten(ix.Entries(), nil)
	if len(rows) == 0 {
		return fmt.Errorf("no index entries to browse")
	}

	input := textinput.New()
	input.Placeholder = "filter entries"
	input.Prompt = "> "
	input.Focus()

	m := model{
		rows:     rows,
		filtered: rows,
		input:    input,
		styles:   DefaultStyles(),
	}

	_, err := tea.NewProgram(m, tea.WithAltScreen()).Run()
	return err
}

func flatten(entries []*index.Entry, ancestors []string) []row {
	var rows []row
	for _, e := range entries {
		path := append(append([]string{}, ancestors...), e.Label)
		rows = append(rows, row{entry: e, path: strings.Join(path, " > ")})
		rows = append(rows, flatten(e.Children, path)...)
	}
	return rows
}

func (m model) Init() tea.Cmd {
	return textinput.Blink
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "esc":
			return m, tea.Quit
		case "up", "ctrl+p":
			m.moveCursor(-1)
			return m, nil
		case "down", "ctrl+n":
			m.moveCursor(1)
			return m, nil
		case "pgup":
			m.moveCursor(-m.visibleRows())
			return m, nil
		case "pgdown":
			m.moveCursor(m.visibleRows())
			return m, nil
		case "enter":
			return m, tea.Quit
		}
	}

	var cmd tea.Cmd
	before := m.input.Value()
	m.input, cmd = m.input.Update(msg)
	if m.input.Value() != before {
		m.applyFilter()
	}
	return m, cmd
}

func (m *model) applyFilter() {
	query := strings.ToLower(m.input.Value())
	if query == "" {
		m.filtered = m.rows
	} else {
		m.filtered = nil
		for _, r := range m.rows {
			if strings.Contains(strings.ToLower(r.path), query) {
				m.filtered = append(m.filtered, r)
			}
		}
	}
	m.cursor = 0
	m.offset = 0
}

func (m *model) moveCursor(delta int) {
	m.cursor += delta
	if m.cursor < 0 {
		m.cursor = 0
	}
	if m.cursor >= len(m.filtered) {
		m.cursor = len(m.filtered) - 1
	}
	if m.cursor < 0 {
		m.cursor = 0
	}
	if m.cursor < m.offset {
		m.offset = m.cursor
	}
	if m.cursor >= m.offset+m.visibleRows() {
		m.offset = m.cursor - m.visibleRows() + 1
	}
}

func (m model) visibleRows() int {
	// Input line, title, bordered detail pane, and a spacer line.
	rows := m.height - 8
	if rows < 1 {
		return 1
	}
	return rows
}

func (m model) View() string {
	var b strings.Builder

	b.WriteString(m.styles.Title.Render("indexmd browser"))
	fmt.Fprintf(&b, " %s\n", m.styles.Dim.Render(
		fmt.Sprintf("(%d/%d entries)", len(m.filtered), len(m.rows))))
	b.WriteString(m.input.View())
	b.WriteString("\n\n")

	end := m.offset + m.visibleRows()
	if end > len(m.filtered) {
		end = len(m.filtered)
	}
	for i := m.offset; i < end; i++ {
		r := m.filtered[i]
		line := m.renderRow(r)
		if i == m.cursor {
			line = m.styles.Cursor.Render("> ") + m.styles.Selected.Render(line)
		} else {
			line = "  " + line
		}
		b.WriteString(line)
		b.WriteString("\n")
	}

	if m.cursor < len(m.filtered) {
		b.WriteString("\n")
		b.WriteString(m.renderDetail(m.filtered[m.cursor].entry))
	}
	return b.String()
}

func (m model) renderRow(r row) string {
	label := m.styles.Label.Render(r.path)
	if cut := strings.LastIndex(r.path, " > "); cut >= 0 {
		label = m.styles.Path.Render(r.path[:cut+3]) + m.styles.Label.Render(r.path[cut+3:])
	}
	count := m.styles.Count.Render(fmt.Sprintf("%d loc", len(r.entry.Refs)))
	if len(r.entry.XRefs) > 0 {
		count += m.styles.XRef.Render(fmt.Sprintf(" %d xref", len(r.entry.XRefs)))
	}
	return label + "  " + count
}

func (m model) renderDetail(e *index.Entry) string {
	var parts []string
	for _, ref := range e.Refs {
		loc := strconv.Itoa(ref.StartID)
		if ref.EndID != 0 {
			loc += "–" + strconv.Itoa(ref.EndID)
		}
		if ref.Section != "" {
			loc = ref.Section
		}
		parts = append(parts, loc)
	}
	detail := "locators: "
	if len(parts) > 0 {
		detail += strings.Join(parts, ", ")
	} else {
		detail += "none"
	}
	for _, xref := range e.XRefs {
		detail += fmt.Sprintf("\n%s: %s", xref.Kind, strings.Join(xref.Path, " > "))
	}
	return m.styles.Border.Render(m.styles.Dim.Render(detail))
}
