package formatter

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"ismaalAdmin/internal/models"
)

// Dashboard palette.
var (
	ColorGreen  = lipgloss.Color("#16a34a")
	ColorYellow = lipgloss.Color("#ca8a04")
	ColorRed    = lipgloss.Color("#dc2626")
	ColorBlue   = lipgloss.Color("#2563eb")
	ColorDim    = lipgloss.Color("#6b7280")
	ColorHeader = lipgloss.Color("#7c3aed")
)

var (
	StyleGreen  = lipgloss.NewStyle().Foreground(ColorGreen)
	StyleYellow = lipgloss.NewStyle().Foreground(ColorYellow)
	StyleRed    = lipgloss.NewStyle().Foreground(ColorRed)
	StyleBlue   = lipgloss.NewStyle().Foreground(ColorBlue)
	StyleDim    = lipgloss.NewStyle().Foreground(ColorDim)
	StyleHeader = lipgloss.NewStyle().Foreground(ColorHeader).Bold(true)
	StyleBold   = lipgloss.NewStyle().Bold(true)
)

var plain bool

// SetPlain turns styling off, for output that is not a terminal.
func SetPlain(v bool) { plain = v }

func render(s lipgloss.Style, text string) string {
	if plain {
		return text
	}
	return s.Render(text)
}

// StatusStyle colours approved and active green, rejected red and
// everything else (pending, absent) yellow.
func StatusStyle(status models.SubmissionStatus) lipgloss.Style {
	switch status {
	case models.StatusApproved, models.StatusActive:
		return StyleGreen
	case models.StatusRejected:
		return StyleRed
	default:
		return StyleYellow
	}
}

// Status renders a status badge such as "● APPROVED".
func Status(raw string) string {
	status := models.NormalizeStatus(raw)
	return render(StatusStyle(status), "● "+string(status))
}

// Header renders a section header with an underline.
func Header(text string) string {
	upper := strings.ToUpper(text)
	return render(StyleHeader, upper) + "\n" + render(StyleDim, strings.Repeat("─", len([]rune(upper))))
}

func Dim(text string) string  { return render(StyleDim, text) }
func Bold(text string) string { return render(StyleBold, text) }

// Success renders a confirmation line.
func Success(text string) string { return render(StyleGreen, "✓ ") + text }
