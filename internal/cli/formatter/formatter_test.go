package formatter

import (
	"regexp"
	"strings"
	"testing"

	"github.com/alexanderramin/krsplan/internal/domain"
	"github.com/alexanderramin/krsplan/internal/plan"
	"github.com/alexanderramin/krsplan/internal/service"
	"github.com/alexanderramin/krsplan/internal/testutil"
	"github.com/stretchr/testify/assert"
)

var ansiPattern = regexp.MustCompile(`\x1b\[[0-9;]*[a-zA-Z]`)

func stripANSI(s string) string {
	return ansiPattern.ReplaceAllString(s, "")
}

func TestRenderTable_AlignsColumns(t *testing.T) {
	out := stripANSI(RenderTable(
		[]string{"KODE", "SKS"},
		[][]string{{"IF2110", "4"}, {"MA1101", "10"}},
	))
	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	assert.Len(t, lines, 4)
	assert.Equal(t, "KODE    SKS", lines[0])
	assert.Equal(t, "──────  ───", lines[1])
	assert.Equal(t, "IF2110  4", lines[2])
	assert.Equal(t, "MA1101  10", lines[3])
}

func TestRenderTable_NoHeaders(t *testing.T) {
	assert.Empty(t, RenderTable(nil, [][]string{{"x"}}))
}

func TestRenderLoad(t *testing.T) {
	assert.Equal(t, "[██████░░░░░░] 12/24", stripANSI(RenderLoad(12, 24, 12)))
	assert.Equal(t, "[████████████] 24/24", stripANSI(RenderLoad(24, 24, 12)))
	assert.Equal(t, "[░░] 0/0", stripANSI(RenderLoad(0, 0, 1)))
}

func TestColorSwatch(t *testing.T) {
	assert.Equal(t, "■ teal", stripANSI(ColorSwatch(domain.ColorTeal)))
	assert.Equal(t, "--", stripANSI(ColorSwatch("")))
	for _, tag := range domain.Palette() {
		_, ok := tagColors[tag]
		assert.True(t, ok, "palette color %s has no swatch", tag)
	}
}

func TestFormatPriorities(t *testing.T) {
	p := plan.Priorities{{Section: "A", Set: true}, {}, {Section: "B", Set: true}}
	assert.Equal(t, "1:A 2:- 3:B", stripANSI(FormatPriorities(p)))
	assert.Equal(t, "--", stripANSI(FormatPriorities(nil)))
}

func TestFormatSelection(t *testing.T) {
	chosen := []domain.ChosenCourse{
		{Course: testutil.NewTestCourse("IF2110", 4, testutil.WithNama("ALGORITMA DAN STRUKTUR DATA")), Color: domain.ColorBlue},
	}
	store := plan.NewStore()
	store.SetPlan("IF2110", 1, "B")

	out := stripANSI(FormatSelection(chosen, store.Snapshot()))
	assert.Contains(t, out, "■ blue")
	assert.Contains(t, out, "Algoritma Dan Struktur Data")
	assert.Contains(t, out, "1:- 2:B")

	assert.Contains(t, stripANSI(FormatSelection(nil, plan.State{})), "No courses chosen")
}

func TestFormatSummary(t *testing.T) {
	out := stripANSI(FormatSummary(service.Summary{
		CourseCount: 2, CourseLimit: 12,
		TotalSKS: 7, SKSLimit: 24,
		AvailableColors: domain.Palette()[2:],
		Submitted:       true,
	}))
	assert.Contains(t, out, "7/24")
	assert.Contains(t, out, "2/12")
	assert.Contains(t, out, "10 left")
	assert.Contains(t, out, "Submitted")
}

func TestFormatCourseList_MarksChosen(t *testing.T) {
	courses := testutil.SampleCatalog()[:2]
	chosen := []domain.ChosenCourse{{Course: courses[1], Color: domain.ColorRed}}

	out := stripANSI(FormatCourseList(courses, chosen))
	assert.Contains(t, out, "■ IF2120")
	assert.Contains(t, out, "  IF2110")
	assert.Contains(t, out, "A, B")
	assert.Contains(t, stripANSI(FormatCourseList(nil, nil)), "No courses match")
}

func TestFormatCourseDetail(t *testing.T) {
	c := testutil.NewTestCourse("IF2130", 3, testutil.WithSections("K1", "K2"))
	out := stripANSI(FormatCourseDetail(&c))
	assert.Contains(t, out, "IF2130")
	assert.Contains(t, out, "K1")
	assert.Contains(t, out, "JURUSAN Informatika")
}

func TestFormatReport(t *testing.T) {
	assert.Contains(t, stripANSI(FormatReport(nil)), "Plan is valid")

	out := stripANSI(FormatReport(domain.Report{
		{Severity: domain.SeverityFatal, Kode: "IF2110", Message: "duplikat"},
		{Severity: domain.SeverityWarning, Message: "bentrok"},
	}))
	assert.Contains(t, out, "✖ FATAL  IF2110  duplikat")
	assert.Contains(t, out, "▲ WARNING  bentrok")
	assert.Contains(t, out, "1 problem(s) must be fixed")
}

func TestFormatAddResult(t *testing.T) {
	c := testutil.NewTestCourse("KU1011", 2)
	ok := stripANSI(FormatAddResult(&service.AddResult{Course: domain.ChosenCourse{Course: c, Color: domain.ColorLime}, Added: true}))
	assert.Equal(t, "+ ■ lime KU1011 (2 sks)", ok)

	rejected := stripANSI(FormatAddResult(&service.AddResult{Course: domain.ChosenCourse{Course: c}, Reason: service.RejectSKSLimit}))
	assert.Equal(t, "KU1011 not added: total would exceed 24 sks", rejected)
}

func TestFormatSuggestions(t *testing.T) {
	out := stripANSI(FormatSuggestions("IF2111", testutil.SampleCatalog()[:2]))
	assert.Equal(t, "Course IF2111 not found. Did you mean IF2110, IF2120?", out)
	assert.Equal(t, "Course X not found.", stripANSI(FormatSuggestions("X", nil)))
}

func TestFormatShellHelp_ListsCommands(t *testing.T) {
	out := stripANSI(FormatShellHelp())
	for _, cmd := range []string{"add <kode>", "plan <kode> <n> <kelas>", "unplan", "trim", "validate", "submit", "filter"} {
		assert.Contains(t, out, cmd)
	}
}
