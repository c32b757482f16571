package formatter

import (
	"fmt"
	"strings"
)

// FormatShellWelcome renders the welcome banner shown on shell startup.
func FormatShellWelcome() string {
	var b strings.Builder
	b.WriteString("\n")
	b.WriteString(StylePurple.Render("  krsplan") + "\n")
	b.WriteString(StyleDim.Render("  ─────────────────────────────") + "\n\n")
	b.WriteString(StyleDim.Render("  Pick courses, rank their classes, then validate and submit.") + "\n\n")
	b.WriteString("  " + StyleGreen.Render("catalog") + StyleDim.Render("          List offered courses") + "\n")
	b.WriteString("  " + StyleGreen.Render("add <kode>") + StyleDim.Render("       Choose a course") + "\n")
	b.WriteString("  " + StyleGreen.Render("plan <kode> 1 A") + StyleDim.Render("  Rank class A first") + "\n")
	b.WriteString("  " + StyleGreen.Render("submit") + StyleDim.Render("           Validate and submit") + "\n")
	b.WriteString("  " + StyleGreen.Render("help") + StyleDim.Render("             Show all commands") + "\n\n")
	return b.String()
}

type helpCategory struct {
	title    string
	commands [][]string
}

func renderHelpCategory(cat helpCategory) string {
	var b strings.Builder
	b.WriteString("\n " + StyleHeader.Render(strings.ToUpper(cat.title)) + "\n")
	for _, c := range cat.commands {
		b.WriteString(fmt.Sprintf("  %-24s %s\n", StyleGreen.Render(c[0]), StyleDim.Render(c[1])))
	}
	return b.String()
}

// FormatShellHelp renders the categorized command reference.
func FormatShellHelp() string {
	categories := []helpCategory{
		{
			title: "Catalog",
			commands: [][]string{
				{"catalog [prefix]", "List courses in the jurusan filter"},
				{"info <kode>", "Show a course and its classes"},
				{"filter [jurusan...|all]", "Show or set the jurusan filter"},
			},
		},
		{
			title: "Selection",
			commands: [][]string{
				{"add <kode>...", "Choose courses"},
				{"rm <kode>...", "Drop courses"},
				{"toggle <kode>", "Choose or drop a course"},
				{"show", "Show chosen courses and totals"},
			},
		},
		{
			title: "Priorities",
			commands: [][]string{
				{"plan <kode> <n> <kelas>", "Put a class at priority n (1 = first)"},
				{"unplan <kode> <n>", "Remove priority n; later ones move up"},
				{"trim <kode> <n>", "Keep only the first n priorities"},
			},
		},
		{
			title: "Submission",
			commands: [][]string{
				{"validate", "Check the plan"},
				{"submit", "Check and submit the plan"},
				{"reset", "Clear courses and priorities"},
			},
		},
		{
			title: "Shell",
			commands: [][]string{
				{"help", "Show this help"},
				{"exit", "Leave the shell"},
			},
		},
	}
	var b strings.Builder
	for _, c := range categories {
		b.WriteString(renderHelpCategory(c))
	}
	return b.String()
}
