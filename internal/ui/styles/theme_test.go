package styles

import (
	"testing"

	"github.com/charmbracelet/lipgloss"
	"github.com/stretchr/testify/require"

	campus "github.com/zjrosen/campus/internal/campus/domain"
)

func TestApplyTheme_OverridesAndResets(t *testing.T) {
	t.Cleanup(func() { _ = ApplyTheme(nil) })
	original := StudentColor

	require.NoError(t, ApplyTheme(map[string]string{"student": "#FF0000"}))
	require.Equal(t, lipgloss.AdaptiveColor{Light: "#FF0000", Dark: "#FF0000"}, StudentColor)
	require.Equal(t, StudentColor, KindColor(campus.KindStudent))

	require.NoError(t, ApplyTheme(map[string]string{}))
	require.Equal(t, original, StudentColor, "reapplying without the key restores the default")
}

func TestApplyTheme_RejectsInvalid(t *testing.T) {
	t.Cleanup(func() { _ = ApplyTheme(nil) })
	before := ErrorColor

	err := ApplyTheme(map[string]string{"error": "red"})
	require.ErrorContains(t, err, "invalid hex color")
	require.Equal(t, before, ErrorColor)

	err = ApplyTheme(map[string]string{"sparkle": "#FFF"})
	require.ErrorContains(t, err, "unknown color token")
}

func TestTokens(t *testing.T) {
	require.Equal(t, []string{
		"course", "department", "error", "highlight", "info", "instructor", "student", "success",
	}, Tokens())
}

func TestKindColor_Unknown(t *testing.T) {
	require.Equal(t, TextMutedColor, KindColor(campus.EntityKind(99)))
}
