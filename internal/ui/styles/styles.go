// Package styles contains Lip Gloss style definitions.
package styles

import (
	"github.com/charmbracelet/lipgloss"

	campus "github.com/zjrosen/campus/internal/campus/domain"
)

var (
	// Semantic color names
	HighlightColor = lipgloss.AdaptiveColor{Light: "#5A3FC0", Dark: "#9D7CF8"} // Banner, titles, focused input
	SuccessColor   = lipgloss.AdaptiveColor{Light: "#43BF6D", Dark: "#73F59F"} // Success toasts
	ErrorColor     = lipgloss.AdaptiveColor{Light: "#FF6B6B", Dark: "#FF8787"} // Errors
	InfoColor      = lipgloss.AdaptiveColor{Light: "#2E86C1", Dark: "#54A0FF"} // Info toasts
	WarnColor      = lipgloss.AdaptiveColor{Light: "#FECA57", Dark: "#FECA57"} // Warnings
	TextMutedColor = lipgloss.AdaptiveColor{Light: "#888888", Dark: "#696969"} // Hints, help text, footers
	BorderColor    = lipgloss.AdaptiveColor{Light: "#D9DCCF", Dark: "#696969"} // Box borders

	// Per-kind list colors
	StudentColor    = lipgloss.AdaptiveColor{Light: "#B7950B", Dark: "#F9E2AF"}
	InstructorColor = lipgloss.AdaptiveColor{Light: "#1E8449", Dark: "#A6E3A1"}
	CourseColor     = lipgloss.AdaptiveColor{Light: "#8839EF", Dark: "#F5C2E7"}
	DepartmentColor = lipgloss.AdaptiveColor{Light: "#1E66F5", Dark: "#89B4FA"}

	SelectionIndicatorColor = lipgloss.AdaptiveColor{Light: "#000000", Dark: "#FFFFFF"}
)

var (
	BannerStyle             lipgloss.Style
	TitleStyle              lipgloss.Style
	SelectionIndicatorStyle lipgloss.Style
	MutedStyle              lipgloss.Style
	ErrorTextStyle          lipgloss.Style
	BoxStyle                lipgloss.Style
)

func init() {
	rebuild()
}

// rebuild recreates the styles from the current colors.
func rebuild() {
	BannerStyle = lipgloss.NewStyle().
		Bold(true).
		Reverse(true).
		Foreground(SuccessColor).
		Padding(0, 2)
	TitleStyle = lipgloss.NewStyle().Bold(true).Foreground(HighlightColor)
	SelectionIndicatorStyle = lipgloss.NewStyle().Bold(true).Foreground(SelectionIndicatorColor)
	MutedStyle = lipgloss.NewStyle().Foreground(TextMutedColor)
	ErrorTextStyle = lipgloss.NewStyle().Foreground(ErrorColor)
	BoxStyle = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(BorderColor).
		Padding(0, 1)
}

// KindColor returns the list color for kind.
func KindColor(kind campus.EntityKind) lipgloss.AdaptiveColor {
	switch kind {
	case campus.KindStudent:
		return StudentColor
	case campus.KindInstructor:
		return InstructorColor
	case campus.KindCourse:
		return CourseColor
	case campus.KindDepartment:
		return DepartmentColor
	default:
		return TextMutedColor
	}
}
