package domain

// ColorTag is the visual identifier given to a chosen course.
type ColorTag string

const (
	ColorBlue   ColorTag = "blue"
	ColorGreen  ColorTag = "green"
	ColorYellow ColorTag = "yellow"
	ColorRed    ColorTag = "red"
	ColorPurple ColorTag = "purple"
	ColorPink   ColorTag = "pink"
	ColorIndigo ColorTag = "indigo"
	ColorCyan   ColorTag = "cyan"
	ColorTeal   ColorTag = "teal"
	ColorLime   ColorTag = "lime"
	ColorOrange ColorTag = "orange"
	ColorViolet ColorTag = "violet"
)

// Palette returns the full color palette in hand-out order. Its length
// equals CourseLimit.
func Palette() []ColorTag {
	return []ColorTag{
		ColorBlue, ColorGreen, ColorYellow, ColorRed,
		ColorPurple, ColorPink, ColorIndigo, ColorCyan,
		ColorTeal, ColorLime, ColorOrange, ColorViolet,
	}
}
