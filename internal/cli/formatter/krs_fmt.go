package formatter

import (
	"fmt"
	"strings"

	"github.com/alexanderramin/krsplan/internal/domain"
	"github.com/alexanderramin/krsplan/internal/plan"
	"github.com/alexanderramin/krsplan/internal/service"
	"github.com/alexanderramin/krsplan/internal/textfmt"
)

// FormatPriorities renders a plan entry as "1:A 2:- 3:B".
func FormatPriorities(p plan.Priorities) string {
	if len(p) == 0 {
		return StyleDim.Render("--")
	}
	parts := make([]string, len(p))
	for i := range p {
		sec, ok := p.At(i)
		if !ok {
			sec = StyleDim.Render("-")
		}
		parts[i] = fmt.Sprintf("%d:%s", i+1, sec)
	}
	return strings.Join(parts, " ")
}

// FormatSelection renders the chosen courses, newest first, with their
// planned sections.
func FormatSelection(chosen []domain.ChosenCourse, plans plan.State) string {
	if len(chosen) == 0 {
		return Dim("No courses chosen. Use 'add <kode>' to pick one.")
	}
	rows := make([][]string, len(chosen))
	for i, c := range chosen {
		p, _ := plans.Get(c.Kode)
		rows[i] = []string{
			ColorSwatch(c.Color),
			Bold(c.Kode),
			textfmt.ProperCase(c.Nama),
			fmt.Sprintf("%d", c.SKS),
			FormatPriorities(p),
		}
	}
	return RenderTable([]string{"COLOR", "KODE", "NAMA", "SKS", "PRIORITAS"}, rows)
}

// FormatSummary renders the selection totals against both limits.
func FormatSummary(s service.Summary) string {
	var b strings.Builder
	b.WriteString(fmt.Sprintf("  %s  %s\n", StyleDim.Render("SKS   "), RenderLoad(s.TotalSKS, s.SKSLimit, 24)))
	b.WriteString(fmt.Sprintf("  %s  %s\n", StyleDim.Render("COURSE"), RenderLoad(s.CourseCount, s.CourseLimit, 12)))
	b.WriteString(fmt.Sprintf("  %s  %d left\n", StyleDim.Render("COLORS"), len(s.AvailableColors)))
	if s.Submitted {
		b.WriteString("  " + StyleGreen.Render("✔ Submitted") + "\n")
	}
	return b.String()
}

// FormatCourseList renders catalog courses, marking those already chosen.
func FormatCourseList(courses []domain.Course, chosen []domain.ChosenCourse) string {
	if len(courses) == 0 {
		return Dim("No courses match.")
	}
	colors := make(map[string]domain.ColorTag, len(chosen))
	for _, c := range chosen {
		colors[c.Kode] = c.Color
	}
	rows := make([][]string, len(courses))
	for i, c := range courses {
		mark := "  "
		if tag, ok := colors[c.Kode]; ok {
			mark = TagStyle(tag).Render("■") + " "
		}
		rows[i] = []string{
			mark + c.Kode,
			textfmt.ProperCase(c.Nama),
			fmt.Sprintf("%d", c.SKS),
			domain.CoalesceStr(c.Jurusan, "--"),
			Sections(c.SectionNames()),
		}
	}
	return RenderTable([]string{"KODE", "NAMA", "SKS", "JURUSAN", "KELAS"}, rows)
}

// FormatCourseDetail renders one course with its offered sections.
func FormatCourseDetail(c *domain.Course) string {
	var b strings.Builder
	b.WriteString(fmt.Sprintf("%s  %s\n", Bold(c.Kode), textfmt.ProperCase(c.Nama)))
	b.WriteString(fmt.Sprintf("%s %d   %s %s\n\n",
		StyleDim.Render("SKS"), c.SKS,
		StyleDim.Render("JURUSAN"), domain.CoalesceStr(c.Jurusan, "--")))

	rows := make([][]string, len(c.Kelas))
	for i, s := range c.Kelas {
		rows[i] = []string{s.Kelas, domain.CoalesceStr(s.Dosen, "--"), domain.CoalesceStr(s.Jadwal, "--")}
	}
	if len(rows) == 0 {
		b.WriteString(Dim("No sections offered."))
	} else {
		b.WriteString(RenderTable([]string{"KELAS", "DOSEN", "JADWAL"}, rows))
	}
	return RenderBox("", b.String())
}

// FormatReport renders validation diagnostics.
func FormatReport(r domain.Report) string {
	if len(r) == 0 {
		return StyleGreen.Render("✔ Plan is valid.")
	}
	var b strings.Builder
	for _, d := range r {
		b.WriteString(SeverityBadge(d.Severity) + "  ")
		if d.Kode != "" {
			b.WriteString(Bold(d.Kode) + "  ")
		}
		b.WriteString(d.Message + "\n")
	}
	if r.HasFatal() {
		b.WriteString(StyleRed.Render(fmt.Sprintf("%d problem(s) must be fixed before submitting.",
			len(r.BySeverity(domain.SeverityFatal)))))
	}
	return strings.TrimRight(b.String(), "\n")
}

// FormatAddResult renders the outcome of adding a course.
func FormatAddResult(r *service.AddResult) string {
	if r.Added {
		return fmt.Sprintf("%s %s %s (%d sks)",
			StyleGreen.Render("+"), ColorSwatch(r.Course.Color), Bold(r.Course.Kode), r.Course.SKS)
	}
	return StyleYellow.Render(fmt.Sprintf("%s not added: %s", r.Course.Kode, RejectMessage(r.Reason)))
}

// RejectMessage explains a rejected add.
func RejectMessage(reason service.RejectReason) string {
	switch reason {
	case service.RejectAlreadyChosen:
		return "already chosen"
	case service.RejectCourseLimit:
		return fmt.Sprintf("at most %d courses", domain.CourseLimit)
	case service.RejectSKSLimit:
		return fmt.Sprintf("total would exceed %d sks", domain.SKSLimit)
	case service.RejectNoColor:
		return "no color left"
	default:
		return string(reason)
	}
}

// FormatSubmitResult renders a submission outcome.
func FormatSubmitResult(r *service.SubmitResult) string {
	if r.Submitted {
		return StyleGreen.Render("✔ Submitted") + " " + Dim("session "+r.SessionID)
	}
	return FormatReport(r.Report)
}

// FormatImportResult renders a catalog import summary.
func FormatImportResult(r *service.ImportResult) string {
	return StyleGreen.Render("Catalog imported: ") +
		fmt.Sprintf("%d courses, %d sections", r.CourseCount, r.SectionCount)
}

// FormatReplay lists problems met while replaying a draft.
func FormatReplay(r *service.DraftReplay) string {
	if len(r.Problems) == 0 {
		return ""
	}
	var b strings.Builder
	b.WriteString(StyleYellow.Render(fmt.Sprintf("Draft replayed with %d problem(s):", len(r.Problems))) + "\n")
	for _, p := range r.Problems {
		b.WriteString(StyleYellow.Render("  - ") + p + "\n")
	}
	return strings.TrimRight(b.String(), "\n")
}

// FormatSuggestions renders "did you mean" hints for an unknown kode.
func FormatSuggestions(kode string, courses []domain.Course) string {
	msg := StyleRed.Render(fmt.Sprintf("Course %s not found.", kode))
	if len(courses) == 0 {
		return msg
	}
	names := make([]string, len(courses))
	for i, c := range courses {
		names[i] = Bold(c.Kode)
	}
	return msg + " " + Dim("Did you mean ") + strings.Join(names, Dim(", ")) + Dim("?")
}
