package styles

import (
	"fmt"
	"regexp"
	"sort"

	"github.com/charmbracelet/lipgloss"
)

var hexColor = regexp.MustCompile(`^#(?:[0-9a-fA-F]{3}|[0-9a-fA-F]{6})$`)

// tokens maps theme keys to the colors they override.
var tokens = map[string]*lipgloss.AdaptiveColor{
	"highlight":  &HighlightColor,
	"success":    &SuccessColor,
	"error":      &ErrorColor,
	"info":       &InfoColor,
	"student":    &StudentColor,
	"instructor": &InstructorColor,
	"course":     &CourseColor,
	"department": &DepartmentColor,
}

var defaults = snapshot()

func snapshot() map[string]lipgloss.AdaptiveColor {
	out := make(map[string]lipgloss.AdaptiveColor, len(tokens))
	for k, c := range tokens {
		out[k] = *c
	}
	return out
}

// Tokens returns the theme keys in sorted order.
func Tokens() []string {
	keys := make([]string, 0, len(tokens))
	for k := range tokens {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// ApplyTheme resets every color to its default, then applies colors, which
// maps theme keys to hex values used for both light and dark terminals.
// Nothing changes when any entry is invalid.
func ApplyTheme(colors map[string]string) error {
	for key, value := range colors {
		if _, ok := tokens[key]; !ok {
			return fmt.Errorf("unknown color token: %s", key)
		}
		if !hexColor.MatchString(value) {
			return fmt.Errorf("invalid hex color for %s: %s", key, value)
		}
	}

	for key, c := range defaults {
		*tokens[key] = c
	}
	for key, value := range colors {
		*tokens[key] = lipgloss.AdaptiveColor{Light: value, Dark: value}
	}
	rebuild()
	return nil
}
