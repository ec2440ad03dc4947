// Package logview is the debug log panel toggled over the running program.
// It keeps the most recent entries received from the log broker and can
// filter them by level.
package logview

import (
	"strings"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"

	"github.com/zjrosen/campus/internal/log"
	"github.com/zjrosen/campus/internal/ui/overlay"
	"github.com/zjrosen/campus/internal/ui/styles"
)

const (
	// DefaultLimit is how many entries are kept when New gets a limit <= 0.
	DefaultLimit = 200

	maxRows  = 20
	minRows  = 3
	maxWidth = 140
	minWidth = 40
	chrome   = 6 // title, two dividers, hint line and the border
)

// ClosedMsg is sent when the panel closes itself.
type ClosedMsg struct{}

// Model holds the panel state.
type Model struct {
	entries  []string
	limit    int
	minLevel log.Level
	visible  bool
	width    int
	height   int
	viewport viewport.Model
}

// New creates a hidden panel keeping up to limit entries.
func New(limit int) Model {
	if limit <= 0 {
		limit = DefaultLimit
	}
	return Model{limit: limit, minLevel: log.LevelDebug}
}

// Append records a log line, dropping the oldest once the limit is reached.
func (m Model) Append(entry string) Model {
	entry = strings.TrimRight(entry, "\n")
	if entry == "" {
		return m
	}
	if len(m.entries) >= m.limit {
		m.entries = append(m.entries[:0:0], m.entries[len(m.entries)-m.limit+1:]...)
	}
	m.entries = append(m.entries, entry)
	if m.visible {
		m.refresh()
	}
	return m
}

// Entries returns the entries that pass the level filter, oldest first.
func (m Model) Entries() []string {
	out := make([]string, 0, len(m.entries))
	for _, e := range m.entries {
		if levelOf(e) >= m.minLevel {
			out = append(out, e)
		}
	}
	return out
}

// MinLevel returns the active filter.
func (m Model) MinLevel() log.Level { return m.minLevel }

// Visible reports whether the panel is open.
func (m Model) Visible() bool { return m.visible }

// Toggle opens or closes the panel.
func (m Model) Toggle() Model {
	m.visible = !m.visible
	if m.visible {
		m.refresh()
	}
	return m
}

// SetSize records the terminal size.
func (m Model) SetSize(width, height int) Model {
	m.width = width
	m.height = height
	m.refresh()
	return m
}

// Update handles keys while the panel is open.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	if !m.visible {
		return m, nil
	}
	km, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	switch km.String() {
	case "d":
		m.minLevel = log.LevelDebug
	case "i":
		m.minLevel = log.LevelInfo
	case "w":
		m.minLevel = log.LevelWarn
	case "e":
		m.minLevel = log.LevelError
	case "c":
		m.entries = nil
	case "j", "down":
		m.viewport.ScrollDown(1)
		return m, nil
	case "k", "up":
		m.viewport.ScrollUp(1)
		return m, nil
	case "g":
		m.viewport.GotoTop()
		return m, nil
	case "G":
		m.viewport.GotoBottom()
		return m, nil
	case "esc", "ctrl+x":
		m.visible = false
		return m, func() tea.Msg { return ClosedMsg{} }
	default:
		return m, nil
	}
	m.refresh()
	return m, nil
}

// View renders the boxed panel, or "" when hidden.
func (m Model) View() string {
	if !m.visible {
		return ""
	}
	w := m.boxWidth()
	divider := lipgloss.NewStyle().Foreground(styles.BorderColor).Render(strings.Repeat("─", w))

	var b strings.Builder
	b.WriteString(styles.TitleStyle.Render("Logs"))
	b.WriteString("\n" + divider + "\n")
	b.WriteString(m.viewport.View())
	b.WriteString("\n" + divider + "\n")
	b.WriteString(m.hints())

	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(styles.BorderColor).
		Width(w).
		Render(b.String())
}

// Overlay draws the panel centred on bg. A hidden panel returns bg as is.
func (m Model) Overlay(bg string) string {
	if !m.visible {
		return bg
	}
	return overlay.Draw(overlay.Frame{Width: m.width, Height: m.height, Anchor: overlay.Center}, m.View(), bg)
}

func (m *Model) refresh() {
	if m.width == 0 || m.height == 0 {
		return
	}
	rows := max(min(maxRows, m.height-chrome), minRows)
	inner := m.boxWidth() - 2

	m.viewport = viewport.New(inner, rows)
	m.viewport.SetContent(m.content(inner))
	m.viewport.GotoBottom()
}

func (m Model) content(width int) string {
	entries := m.Entries()
	if len(entries) == 0 {
		return styles.MutedStyle.Italic(true).Render("No logs to display")
	}
	lines := make([]string, 0, len(entries))
	for _, e := range entries {
		if ansi.StringWidth(e) > width {
			e = ansi.Truncate(e, width, "…")
		}
		lines = append(lines, lipgloss.NewStyle().Foreground(levelColor(levelOf(e))).Render(e))
	}
	return strings.Join(lines, "\n")
}

func (m Model) boxWidth() int {
	return max(min(m.width-4, maxWidth), minWidth)
}

func (m Model) hints() string {
	muted := styles.MutedStyle
	active := lipgloss.NewStyle().Bold(true)

	parts := []string{muted.Render("[c] Clear")}
	for _, f := range []struct {
		label string
		level log.Level
	}{
		{"[d] Debug", log.LevelDebug},
		{"[i] Info", log.LevelInfo},
		{"[w] Warn", log.LevelWarn},
		{"[e] Error", log.LevelError},
	} {
		if f.level == m.minLevel {
			parts = append(parts, active.Render(f.label))
		} else {
			parts = append(parts, muted.Render(f.label))
		}
	}
	return strings.Join(parts, "  ")
}

// levelOf reads the "[LEVEL]" tag written by the log package. Lines without
// one count as debug.
func levelOf(entry string) log.Level {
	start := strings.IndexByte(entry, '[')
	if start < 0 {
		return log.LevelDebug
	}
	end := strings.IndexByte(entry[start:], ']')
	if end < 0 {
		return log.LevelDebug
	}
	return log.ParseLevel(entry[start+1 : start+end])
}

func levelColor(l log.Level) lipgloss.TerminalColor {
	switch l {
	case log.LevelError:
		return styles.ErrorColor
	case log.LevelWarn:
		return styles.WarnColor
	case log.LevelInfo:
		return styles.InfoColor
	default:
		return styles.TextMutedColor
	}
}
