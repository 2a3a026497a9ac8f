package main

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FAFAFA")).
			Background(lipgloss.Color("#7D56F4")).
			Padding(0, 1)

	structStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#98FB98"))

	typeStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#87CEEB"))

	selectedStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FAFAFA")).
			Background(lipgloss.Color("#7D56F4"))

	padStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FF6B6B"))

	offsetStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#666666"))

	helpStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#666666"))

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FF6B6B"))
)

// fieldColors cycles across fields in the byte map.
var fieldColors = []lipgloss.Color{
	"#98FB98", "#87CEEB", "#FFD700", "#FFA07A", "#DDA0DD", "#40E0D0",
}

type modelState int

const (
	stateSelect modelState = iota
	stateDetail
)

type inspectorModel struct {
	err      error
	dir      string
	infos    []structInfo
	visible  []int // indexes into infos matching the filter
	filter   textinput.Model
	selected int
	state    modelState
	width    int
}

type analyzedMsg struct {
	err   error
	infos []structInfo
}

func newInspectorModel(dir string) *inspectorModel {
	ti := textinput.New()
	ti.Placeholder = "filter structs"
	ti.Prompt = "/ "
	ti.Width = 30
	ti.Focus()

	return &inspectorModel{
		dir:    dir,
		filter: ti,
		state:  stateSelect,
		width:  80,
	}
}

func (m *inspectorModel) Init() tea.Cmd {
	return m.analyze
}

func (m *inspectorModel) analyze() tea.Msg {
	infos, err := analyzeDir(m.dir)
	return analyzedMsg{infos: infos, err: err}
}

func (m *inspectorModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c":
			return m, tea.Quit

		case "q":
			// The filter owns plain keys in the select state.
			if m.state == stateDetail {
				return m, tea.Quit
			}

		case "up", "ctrl+k":
			if m.state == stateSelect && m.selected > 0 {
				m.selected--
			}

		case "down", "ctrl+j":
			if m.state == stateSelect && m.selected < len(m.visible)-1 {
				m.selected++
			}

		case "enter":
			if m.state == stateSelect && len(m.visible) > 0 {
				m.state = stateDetail
			}

		case "esc":
			switch m.state {
			case stateDetail:
				m.state = stateSelect
			case stateSelect:
				m.filter.SetValue("")
				m.refilter()
			}
		}

	case analyzedMsg:
		m.err = msg.err
		m.infos = msg.infos
		m.refilter()
	}

	if m.state == stateSelect {
		var cmd tea.Cmd
		before := m.filter.Value()
		m.filter, cmd = m.filter.Update(msg)
		if m.filter.Value() != before {
			m.refilter()
		}
		return m, cmd
	}

	return m, nil
}

func (m *inspectorModel) refilter() {
	m.visible = m.visible[:0]
	needle := strings.ToLower(m.filter.Value())
	for i, info := range m.infos {
		if needle == "" || strings.Contains(strings.ToLower(info.name), needle) {
			m.visible = append(m.visible, i)
		}
	}
	if m.selected >= len(m.visible) {
		m.selected = 0
	}
}

func (m *inspectorModel) View() string {
	if m.err != nil {
		return errorStyle.Render(fmt.Sprintf("Error: %v\n\nPress ctrl+c to quit.", m.err))
	}
	if m.infos == nil {
		return "Analyzing package..."
	}

	var b strings.Builder
	b.WriteString(titleStyle.Render("Padding Inspector"))
	b.WriteString(" ")
	b.WriteString(m.dir)
	b.WriteString("\n\n")

	switch m.state {
	case stateSelect:
		b.WriteString(m.filter.View())
		b.WriteString("\n\n")
		for row, idx := range m.visible {
			info := m.infos[idx]
			line := fmt.Sprintf("%s  %s",
				structStyle.Render(fmt.Sprintf("%-24s", info.name)),
				typeStyle.Render(fmt.Sprintf("%d bytes, %d padding", info.size, info.paddingCount())))
			if row == m.selected {
				b.WriteString(selectedStyle.Render("> " + info.name))
				b.WriteString("  ")
				b.WriteString(typeStyle.Render(fmt.Sprintf("%d bytes, %d padding", info.size, info.paddingCount())))
			} else {
				b.WriteString("  " + line)
			}
			b.WriteString("\n")
		}
		b.WriteString("\n")
		b.WriteString(helpStyle.Render("↑/↓ select • enter inspect • type to filter • ctrl+c quit"))

	case stateDetail:
		info := m.infos[m.visible[m.selected]]
		b.WriteString(m.renderByteMap(info))
		b.WriteString("\n")
		b.WriteString(helpStyle.Render("esc back • q quit"))
	}

	return b.String()
}

// renderByteMap draws one cell per byte: the field's legend letter for
// data bytes, the sentinel value for padding bytes.
func (m *inspectorModel) renderByteMap(info structInfo) string {
	var b strings.Builder

	b.WriteString(structStyle.Render(info.name))
	b.WriteString(typeStyle.Render(fmt.Sprintf("  %d bytes, %d padding\n\n", info.size, info.paddingCount())))

	perRow := (m.width - 8) / 3
	if perRow < 8 {
		perRow = 8
	}
	// Round down to whole 8-byte groups for readable offsets.
	perRow -= perRow % 8
	if perRow == 0 {
		perRow = 8
	}

	for base := int64(0); base < info.size; base += int64(perRow) {
		b.WriteString(offsetStyle.Render(fmt.Sprintf("%5d ", base)))
		for off := base; off < base+int64(perRow) && off < info.size; off++ {
			b.WriteString(m.renderByte(info, off))
			b.WriteString(" ")
		}
		b.WriteString("\n")
	}

	b.WriteString("\n")
	for i, f := range info.fields {
		style := lipgloss.NewStyle().Foreground(fieldColors[i%len(fieldColors)])
		b.WriteString(fmt.Sprintf("  %s %s %s %s\n",
			style.Render(string(legendLetter(i))+string(legendLetter(i))),
			structStyle.Render(fmt.Sprintf("%-16s", f.name)),
			typeStyle.Render(fmt.Sprintf("%-20s", f.typeStr)),
			offsetStyle.Render(fmt.Sprintf("@%d+%d", f.offset, f.size))))
	}
	b.WriteString(fmt.Sprintf("  %s %s\n",
		padStyle.Render("FE"),
		offsetStyle.Render("padding (sentinel-filled by safebytes)")))

	return b.String()
}

func (m *inspectorModel) renderByte(info structInfo, off int64) string {
	if info.padding[off] {
		return padStyle.Render("FE")
	}
	for i, f := range info.fields {
		if off >= f.offset && off < f.offset+f.size {
			style := lipgloss.NewStyle().Foreground(fieldColors[i%len(fieldColors)])
			return style.Render(string(legendLetter(i)) + string(legendLetter(i)))
		}
	}
	return "··"
}

func legendLetter(i int) rune {
	return rune('a' + i%26)
}

func runInteractive(dir string) error {
	p := tea.NewProgram(newInspectorModel(dir), tea.WithAltScreen())
	_, err := p.Run()
	return err
}
