// Package picker provides a generic option picker component.
package picker

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	zone "github.com/lrstanley/bubblezone"

	"github.com/zjrosen/campus/internal/keys"
	"github.com/zjrosen/campus/internal/ui/styles"
)

// Option represents a picker option with label and value.
type Option struct {
	Label string
	Value int
	Color lipgloss.TerminalColor // Optional color for the label
}

// Model holds the picker state.
type Model struct {
	id       string
	title    string
	options  []Option
	selected int
	boxWidth int
}

// ChosenMsg is sent when an option is chosen with enter or a mouse click.
type ChosenMsg struct {
	PickerID string
	Option   Option
}

// New creates a new picker. id tags its ChosenMsg and its mouse zones.
func New(id, title string, options []Option) Model {
	return Model{
		id:      id,
		title:   title,
		options: options,
	}
}

// ID returns the picker id.
func (m Model) ID() string {
	return m.id
}

// SetBoxWidth sets the width of the picker box itself.
func (m Model) SetBoxWidth(width int) Model {
	m.boxWidth = width
	return m
}

// SetSelected sets the selected index. Out of range values are ignored.
func (m Model) SetSelected(index int) Model {
	if index >= 0 && index < len(m.options) {
		m.selected = index
	}
	return m
}

// Selected returns the currently selected option.
func (m Model) Selected() Option {
	if m.selected >= 0 && m.selected < len(m.options) {
		return m.options[m.selected]
	}
	return Option{}
}

func (m Model) zoneID(i int) string {
	return fmt.Sprintf("picker-%s-%d", m.id, i)
}

func (m Model) choose() tea.Cmd {
	if len(m.options) == 0 {
		return nil
	}
	msg := ChosenMsg{PickerID: m.id, Option: m.Selected()}
	return func() tea.Msg { return msg }
}

// Update handles messages.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, keys.Default.Down):
			if m.selected < len(m.options)-1 {
				m.selected++
			}
		case key.Matches(msg, keys.Default.Up):
			if m.selected > 0 {
				m.selected--
			}
		case key.Matches(msg, keys.Default.Enter):
			return m, m.choose()
		}
	case tea.MouseMsg:
		if msg.Button != tea.MouseButtonLeft || msg.Action != tea.MouseActionRelease {
			return m, nil
		}
		for i := range m.options {
			if z := zone.Get(m.zoneID(i)); z != nil && z.InBounds(msg) {
				m.selected = i
				return m, m.choose()
			}
		}
	}
	return m, nil
}

// View renders the picker box. Callers scan the final frame with zone.Scan.
func (m Model) View() string {
	width := m.boxWidth
	if width == 0 {
		width = 32
	}

	var options strings.Builder
	for i, opt := range m.options {
		labelStyle := lipgloss.NewStyle()
		if opt.Color != nil {
			labelStyle = labelStyle.Foreground(opt.Color)
		}

		var line string
		if i == m.selected {
			line = styles.SelectionIndicatorStyle.Render(">") + labelStyle.Bold(true).Render(opt.Label)
		} else {
			line = " " + labelStyle.Render(opt.Label)
		}
		options.WriteString(zone.Mark(m.zoneID(i), line))
		if i < len(m.options)-1 {
			options.WriteString("\n")
		}
	}

	divider := lipgloss.NewStyle().Foreground(styles.BorderColor).Render(strings.Repeat("─", width))
	content := styles.TitleStyle.PaddingLeft(1).Render(m.title) + "\n" +
		divider + "\n" +
		options.String()

	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(styles.BorderColor).
		Width(width).
		Render(content)
}
