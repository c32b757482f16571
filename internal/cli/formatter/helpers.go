package formatter

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

const (
	filledBlock = "█"
	emptyBlock  = "░"
)

// RenderBox wraps content in a rounded-border box with an optional title.
func RenderBox(title string, content string) string {
	boxStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(ColorDim).
		PaddingLeft(2).
		PaddingRight(2).
		PaddingTop(1).
		PaddingBottom(1)

	if title != "" {
		return boxStyle.Render(StyleHeader.Render(strings.ToUpper(title)) + "\n\n" + content)
	}
	return boxStyle.Render(content)
}

// RenderLoad renders used against limit as a bar like [████░░░░] 12/24.
// The bar turns yellow past two thirds and red once the limit is reached.
func RenderLoad(used, limit, width int) string {
	if width < 2 {
		width = 2
	}
	pct := 0.0
	if limit > 0 {
		pct = min(max(float64(used)/float64(limit), 0), 1)
	}
	filled := int(pct * float64(width))
	bar := strings.Repeat(filledBlock, filled) + strings.Repeat(emptyBlock, width-filled)

	style := StyleGreen
	switch {
	case used >= limit:
		style = StyleRed
	case pct >= 0.66:
		style = StyleYellow
	}
	return fmt.Sprintf("[%s] %d/%d", style.Render(bar), used, limit)
}

// Sections joins section names, or renders a dim dash when there are none.
func Sections(names []string) string {
	if len(names) == 0 {
		return StyleDim.Render("--")
	}
	return strings.Join(names, ", ")
}
