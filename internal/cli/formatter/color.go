package formatter

import (
	"fmt"
	"strings"

	"github.com/alexanderramin/krsplan/internal/domain"
	"github.com/charmbracelet/lipgloss"
)

// Gruvbox-inspired color palette.
var (
	ColorGreen  = lipgloss.Color("#8ec07c")
	ColorYellow = lipgloss.Color("#fabd2f")
	ColorRed    = lipgloss.Color("#fb4934")
	ColorBlue   = lipgloss.Color("#83a598")
	ColorPurple = lipgloss.Color("#d3869b")
	ColorDim    = lipgloss.Color("#928374")
	ColorFg     = lipgloss.Color("#ebdbb2")
	ColorHeader = lipgloss.Color("#fe8019")
)

// Predefined lipgloss styles.
var (
	StyleGreen  = lipgloss.NewStyle().Foreground(ColorGreen)
	StyleYellow = lipgloss.NewStyle().Foreground(ColorYellow)
	StyleRed    = lipgloss.NewStyle().Foreground(ColorRed)
	StyleBlue   = lipgloss.NewStyle().Foreground(ColorBlue)
	StylePurple = lipgloss.NewStyle().Foreground(ColorPurple)
	StyleDim    = lipgloss.NewStyle().Foreground(ColorDim)
	StyleFg     = lipgloss.NewStyle().Foreground(ColorFg)
	StyleHeader = lipgloss.NewStyle().Foreground(ColorHeader).Bold(true)
	StyleBold   = lipgloss.NewStyle().Foreground(ColorFg).Bold(true)
)

// tagColors maps each course color tag to the swatch drawn for it.
var tagColors = map[domain.ColorTag]lipgloss.Color{
	domain.ColorBlue:   lipgloss.Color("#458588"),
	domain.ColorGreen:  lipgloss.Color("#98971a"),
	domain.ColorYellow: lipgloss.Color("#d79921"),
	domain.ColorRed:    lipgloss.Color("#cc241d"),
	domain.ColorPurple: lipgloss.Color("#b16286"),
	domain.ColorPink:   lipgloss.Color("#f5a3c7"),
	domain.ColorIndigo: lipgloss.Color("#5b6ee1"),
	domain.ColorCyan:   lipgloss.Color("#689d6a"),
	domain.ColorTeal:   lipgloss.Color("#2aa198"),
	domain.ColorLime:   lipgloss.Color("#b8bb26"),
	domain.ColorOrange: lipgloss.Color("#d65d0e"),
	domain.ColorViolet: lipgloss.Color("#8f3f71"),
}

// TagStyle returns the foreground style for a course color tag.
func TagStyle(tag domain.ColorTag) lipgloss.Style {
	c, ok := tagColors[tag]
	if !ok {
		return StyleDim
	}
	return lipgloss.NewStyle().Foreground(c)
}

// ColorSwatch renders a colored block followed by the tag name.
func ColorSwatch(tag domain.ColorTag) string {
	if tag == "" {
		return StyleDim.Render("--")
	}
	return TagStyle(tag).Render("■") + " " + string(tag)
}

// SeverityBadge renders a diagnostic severity marker.
func SeverityBadge(s domain.Severity) string {
	switch s {
	case domain.SeverityFatal:
		return StyleRed.Render("✖ FATAL")
	case domain.SeverityWarning:
		return StyleYellow.Render("▲ WARNING")
	default:
		return StyleBlue.Render("● INFO")
	}
}

// Header renders a section header with the orange header style and an underline.
func Header(text string) string {
	upper := strings.ToUpper(text)
	line := strings.Repeat("─", len(upper))
	return fmt.Sprintf("%s\n%s", StyleHeader.Render(upper), StyleDim.Render(line))
}

// Dim renders text in the muted/dim color.
func Dim(text string) string {
	return StyleDim.Render(text)
}

// Bold renders text in bold with the foreground color.
func Bold(text string) string {
	return StyleBold.Render(text)
}
