// Package form provides a vertical stack of labelled text inputs with
// per-field validation.
package form

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/zjrosen/campus/internal/keys"
	"github.com/zjrosen/campus/internal/ui/styles"
)

// Field configures one input.
type Field struct {
	Label       string
	Placeholder string
	// Validate checks the trimmed value on submit. Nil accepts anything.
	Validate func(string) error
}

// Int accepts base-10 integers.
func Int(s string) error {
	if _, err := strconv.Atoi(s); err != nil {
		return fmt.Errorf("%q is not a whole number", s)
	}
	return nil
}

// Float accepts finite decimal numbers.
func Float(s string) error {
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return fmt.Errorf("%q is not a number", s)
	}
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return fmt.Errorf("%q is not a finite number", s)
	}
	return nil
}

// SubmittedMsg carries the trimmed field values in field order.
type SubmittedMsg struct {
	FormID string
	Values []string
}

// Model holds the form state.
type Model struct {
	id     string
	title  string
	fields []Field
	inputs []textinput.Model
	focus  int
	errs   []string
}

// New creates a form with the first field focused.
func New(id, title string, fields ...Field) Model {
	inputs := make([]textinput.Model, len(fields))
	for i, f := range fields {
		ti := textinput.New()
		ti.Placeholder = f.Placeholder
		ti.Prompt = ""
		ti.CharLimit = 100
		ti.Width = 36
		inputs[i] = ti
	}
	m := Model{
		id:     id,
		title:  title,
		fields: fields,
		inputs: inputs,
		errs:   make([]string, len(fields)),
	}
	if len(inputs) > 0 {
		m.inputs[0].Focus()
	}
	return m
}

// ID returns the form id.
func (m Model) ID() string {
	return m.id
}

// Focused returns the index of the focused field.
func (m Model) Focused() int {
	return m.focus
}

// Errors returns the validation message per field, "" when valid.
func (m Model) Errors() []string {
	return m.errs
}

// Values returns the trimmed input values.
func (m Model) Values() []string {
	out := make([]string, len(m.inputs))
	for i := range m.inputs {
		out[i] = strings.TrimSpace(m.inputs[i].Value())
	}
	return out
}

// SetValue sets the value of field i.
func (m Model) SetValue(i int, v string) Model {
	if i >= 0 && i < len(m.inputs) {
		m.inputs[i].SetValue(v)
	}
	return m
}

// Init starts the cursor blink.
func (m Model) Init() tea.Cmd {
	return textinput.Blink
}

func (m Model) focusField(i int) (Model, tea.Cmd) {
	if len(m.inputs) == 0 {
		return m, nil
	}
	i = (i + len(m.inputs)) % len(m.inputs)
	m.inputs[m.focus].Blur()
	m.focus = i
	return m, m.inputs[i].Focus()
}

// validate records errors and reports whether every field passed.
func (m *Model) validate() bool {
	ok := true
	for i, f := range m.fields {
		m.errs[i] = ""
		v := strings.TrimSpace(m.inputs[i].Value())
		if f.Validate == nil {
			continue
		}
		if err := f.Validate(v); err != nil {
			m.errs[i] = err.Error()
			ok = false
		}
	}
	return ok
}

// Update handles messages. Enter on the last field validates and submits.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok {
		switch {
		case key.Matches(msg, keys.Default.Next), msg.Type == tea.KeyDown:
			return m.focusField(m.focus + 1)
		case key.Matches(msg, keys.Default.Prev), msg.Type == tea.KeyUp:
			return m.focusField(m.focus - 1)
		case key.Matches(msg, keys.Default.Enter):
			if m.focus < len(m.inputs)-1 {
				return m.focusField(m.focus + 1)
			}
			if !m.validate() {
				return m, nil
			}
			submitted := SubmittedMsg{FormID: m.id, Values: m.Values()}
			return m, func() tea.Msg { return submitted }
		}
	}

	if len(m.inputs) == 0 {
		return m, nil
	}
	var cmd tea.Cmd
	m.inputs[m.focus], cmd = m.inputs[m.focus].Update(msg)
	return m, cmd
}

// View renders the form.
func (m Model) View() string {
	labelStyle := lipgloss.NewStyle().Bold(true)
	focusedLabel := labelStyle.Foreground(styles.HighlightColor)

	var b strings.Builder
	b.WriteString(styles.TitleStyle.Render(m.title))
	b.WriteString("\n")
	for i, f := range m.fields {
		b.WriteString("\n")
		if i == m.focus {
			b.WriteString(styles.SelectionIndicatorStyle.Render(">") + focusedLabel.Render(f.Label))
		} else {
			b.WriteString(" " + labelStyle.Render(f.Label))
		}
		b.WriteString("\n  ")
		b.WriteString(m.inputs[i].View())
		b.WriteString("\n")
		if m.errs[i] != "" {
			b.WriteString("  " + styles.ErrorTextStyle.Render(m.errs[i]) + "\n")
		}
	}
	return styles.BoxStyle.Render(strings.TrimRight(b.String(), "\n"))
}
