// Package presentation renders registry lists for terminals and scripts.
package presentation

import (
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/mattn/go-runewidth"
	"gopkg.in/yaml.v3"

	"github.com/zjrosen/campus/internal/campus/application"
	campus "github.com/zjrosen/campus/internal/campus/domain"
)

// Format selects an output encoding.
type Format string

const (
	FormatText     Format = "text"
	FormatMarkdown Format = "markdown"
	FormatJSON     Format = "json"
	FormatYAML     Format = "yaml"
)

// Formats lists the supported formats.
func Formats() []Format {
	return []Format{FormatText, FormatMarkdown, FormatJSON, FormatYAML}
}

// ParseFormat validates a --format value.
func ParseFormat(s string) (Format, error) {
	for _, f := range Formats() {
		if string(f) == strings.ToLower(s) {
			return f, nil
		}
	}
	return "", fmt.Errorf("unknown format %q (want text, markdown, json or yaml)", s)
}

// Formatter handles output formatting.
type Formatter struct {
	writer io.Writer
	format Format
}

// NewFormatter creates a formatter writing format to writer.
func NewFormatter(writer io.Writer, format Format) *Formatter {
	return &Formatter{
		writer: writer,
		format: format,
	}
}

// FormatLists writes every non-nil list in lists.
func (f *Formatter) FormatLists(lists application.Lists) error {
	switch f.format {
	case FormatJSON:
		encoder := json.NewEncoder(f.writer)
		encoder.SetIndent("", "  ")
		return encoder.Encode(lists)
	case FormatYAML:
		encoder := yaml.NewEncoder(f.writer)
		encoder.SetIndent(2)
		if err := encoder.Encode(lists); err != nil {
			return err
		}
		return encoder.Close()
	case FormatMarkdown:
		_, err := io.WriteString(f.writer, Markdown(lists))
		return err
	case FormatText, "":
		_, err := io.WriteString(f.writer, Text(lists))
		return err
	default:
		return fmt.Errorf("unknown format %q", f.format)
	}
}

// Section is one titled list of rendered lines.
type Section struct {
	Kind  campus.EntityKind
	Title string
	Lines []string
}

// Sections renders each non-nil list in menu order.
func Sections(lists application.Lists) []Section {
	var out []Section
	if lists.Students != nil {
		out = append(out, section(campus.KindStudent, lists.Students))
	}
	if lists.Instructors != nil {
		out = append(out, section(campus.KindInstructor, lists.Instructors))
	}
	if lists.Courses != nil {
		out = append(out, section(campus.KindCourse, lists.Courses))
	}
	if lists.Departments != nil {
		out = append(out, section(campus.KindDepartment, lists.Departments))
	}
	return out
}

func section[T fmt.Stringer](kind campus.EntityKind, items []T) Section {
	lines := make([]string, 0, len(items))
	for _, item := range items {
		lines = append(lines, item.String())
	}
	return Section{Kind: kind, Title: "List of " + kind.Plural() + ":", Lines: lines}
}

// Text renders lists as plain lines under a "List of <Kind>s:" heading.
func Text(lists application.Lists) string {
	var b strings.Builder
	for i, s := range Sections(lists) {
		if i > 0 {
			b.WriteByte('\n')
		}
		b.WriteString(s.Title)
		b.WriteByte('\n')
		for _, line := range s.Lines {
			b.WriteString(line)
			b.WriteByte('\n')
		}
	}
	return b.String()
}

// Markdown renders lists as one table per kind.
func Markdown(lists application.Lists) string {
	var b strings.Builder
	write := func(title string, header []string, rows [][]string) {
		if b.Len() > 0 {
			b.WriteByte('\n')
		}
		fmt.Fprintf(&b, "## %s\n\n", title)
		if len(rows) == 0 {
			b.WriteString("_None yet._\n")
			return
		}
		writeTable(&b, header, rows)
	}

	if lists.Students != nil {
		rows := make([][]string, 0, len(lists.Students))
		for _, p := range lists.Students {
			rows = append(rows, []string{p.Name, strconv.Itoa(p.Age), strconv.Itoa(p.RollNumber), campus.JoinNames(p.Courses)})
		}
		write(campus.KindStudent.Plural(), []string{"Name", "Age", "Roll Number", "Courses"}, rows)
	}
	if lists.Instructors != nil {
		rows := make([][]string, 0, len(lists.Instructors))
		for _, p := range lists.Instructors {
			rows = append(rows, []string{p.Name, strconv.Itoa(p.Age), campus.FormatSalary(p.Salary), campus.JoinNames(p.Courses)})
		}
		write(campus.KindInstructor.Plural(), []string{"Name", "Age", "Salary", "Courses"}, rows)
	}
	if lists.Courses != nil {
		rows := make([][]string, 0, len(lists.Courses))
		for _, p := range lists.Courses {
			rows = append(rows, []string{strconv.Itoa(p.Number), p.Name, campus.JoinNames(p.Students), campus.JoinNames(p.Instructors)})
		}
		write(campus.KindCourse.Plural(), []string{"ID", "Name", "Students", "Instructors"}, rows)
	}
	if lists.Departments != nil {
		rows := make([][]string, 0, len(lists.Departments))
		for _, p := range lists.Departments {
			rows = append(rows, []string{p.Name, campus.JoinNames(p.Courses)})
		}
		write(campus.KindDepartment.Plural(), []string{"Name", "Courses"}, rows)
	}
	return b.String()
}

var cellEscaper = strings.NewReplacer("|", `\|`, "\n", " ")

// writeTable writes a pipe table with every column padded to its widest
// cell, so the raw markdown lines up in a terminal.
func writeTable(b *strings.Builder, header []string, rows [][]string) {
	escaped := make([][]string, 0, len(rows)+1)
	for _, row := range append([][]string{header}, rows...) {
		cells := make([]string, len(row))
		for i, c := range row {
			cells[i] = cellEscaper.Replace(c)
		}
		escaped = append(escaped, cells)
	}

	widths := make([]int, len(header))
	for i := range widths {
		widths[i] = 3
	}
	for _, row := range escaped {
		for i, c := range row {
			widths[i] = max(widths[i], runewidth.StringWidth(c))
		}
	}

	sep := make([]string, len(widths))
	for i, w := range widths {
		sep[i] = strings.Repeat("-", w)
	}

	writeRow(b, escaped[0], widths)
	writeRow(b, sep, widths)
	for _, row := range escaped[1:] {
		writeRow(b, row, widths)
	}
}

func writeRow(b *strings.Builder, cells []string, widths []int) {
	b.WriteString("|")
	for i, c := range cells {
		b.WriteString(" ")
		b.WriteString(runewidth.FillRight(c, widths[i]))
		b.WriteString(" |")
	}
	b.WriteByte('\n')
}
