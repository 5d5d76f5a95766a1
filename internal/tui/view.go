package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

const (
	defaultWidth = 60
	minWidth     = 24
	maxWidth     = 80
)

var (
	borderColor  = lipgloss.Color("39")
	titleStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("230"))
	messageStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("252"))
	buttonStyle  = lipgloss.NewStyle().Padding(0, 1).Foreground(lipgloss.Color("252"))
	focusStyle   = lipgloss.NewStyle().Padding(0, 1).Bold(true).
			Foreground(lipgloss.Color("16")).Background(lipgloss.Color("39"))
	cancelStyle = lipgloss.NewStyle().Padding(0, 1).Foreground(lipgloss.Color("245"))
	boxStyle    = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).
			BorderForeground(borderColor).Padding(1, 2)
)

// View implements tea.Model.
func (m *Model) View() string {
	if m.dialog == nil {
		return ""
	}
	d := m.dialog
	width := dialogWidth(m.width)

	var s strings.Builder
	s.WriteString(titleStyle.Width(width).Align(lipgloss.Center).Render(d.title))
	s.WriteString("\n\n")
	if d.message != "" {
		s.WriteString(messageStyle.Width(width).Render(d.message))
		s.WriteString("\n\n")
	}
	s.WriteString(lipgloss.NewStyle().Width(width).Align(lipgloss.Center).Render(m.renderButtons()))
	s.WriteString("\n\n")
	s.WriteString(m.help.View(m.keys))

	return boxStyle.Render(s.String())
}

func (m *Model) renderButtons() string {
	d := m.dialog
	rendered := make([]string, len(d.buttons))
	for i, title := range d.buttons {
		label := fmt.Sprintf("%d %s", i+1, title)
		switch {
		case i == d.focus:
			rendered[i] = focusStyle.Render(label)
		case i == d.cancel:
			rendered[i] = cancelStyle.Render(label)
		default:
			rendered[i] = buttonStyle.Render(label)
		}
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, rendered...)
}

func dialogWidth(termWidth int) int {
	// border and padding take 6 columns
	width := termWidth - 6
	if width > maxWidth {
		width = maxWidth
	}
	if width < minWidth {
		width = minWidth
	}
	return width
}
