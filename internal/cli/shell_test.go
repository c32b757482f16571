package cli

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/alexanderramin/krsplan/internal/teatest"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSplitShellArgs(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		input   string
		want    []string
		wantErr bool
	}{
		{name: "single word", input: "show", want: []string{"show"}},
		{name: "extra spaces", input: "  add   IF2110  MA1101 ", want: []string{"add", "IF2110", "MA1101"}},
		{name: "double quoted", input: `filter "Teknik Elektro" DMU`, want: []string{"filter", "Teknik Elektro", "DMU"}},
		{name: "single quoted", input: "catalog 'struktur data'", want: []string{"catalog", "struktur data"}},
		{name: "escaped space", input: `plan IF2130 1 K\ 1`, want: []string{"plan", "IF2130", "1", "K 1"}},
		{name: "empty quoted arg", input: `filter ""`, want: []string{"filter", ""}},
		{name: "unterminated quote", input: `filter "oops`, wantErr: true},
		{name: "unterminated escape", input: `add IF\`, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got, err := splitShellArgs(tt.input)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func execLine(t *testing.T, m *shellModel, line string) string {
	t.Helper()
	out, _ := m.executeCommand(line)
	return stripANSI(out)
}

func TestShell_AddShowRemove(t *testing.T) {
	app, _ := testAppWithCatalog(t)
	m := newShellModel(app)

	out := execLine(t, &m, "add if2110 MA1101")
	assert.Contains(t, out, "+ ■ blue IF2110 (4 sks)")
	assert.Contains(t, out, "+ ■ green MA1101 (4 sks)")

	out = execLine(t, &m, "add IF2110")
	assert.Contains(t, out, "IF2110 not added: already chosen")

	out = execLine(t, &m, "show")
	assert.Contains(t, out, "Matematika Ia")
	assert.Contains(t, out, "8/24")
	assert.Contains(t, out, "2/12")

	out = execLine(t, &m, "rm MA1101 KU1011")
	assert.Contains(t, out, "- MA1101")
	assert.Contains(t, out, "KU1011 is not chosen.")
	require.Len(t, app.Planner.Selection(), 1)
}

func TestShell_AddUnknownSuggests(t *testing.T) {
	app, _ := testAppWithCatalog(t)
	m := newShellModel(app)

	out := execLine(t, &m, "add IF2111")
	assert.Equal(t, "Course IF2111 not found. Did you mean IF2110, IF2120?", out)
	assert.Empty(t, app.Planner.Selection())
}

func TestShell_Toggle(t *testing.T) {
	app, _ := testAppWithCatalog(t)
	m := newShellModel(app)

	assert.Contains(t, execLine(t, &m, "toggle EL2101"), "+ ■ blue EL2101")
	assert.Equal(t, "- EL2101", execLine(t, &m, "toggle el2101"))
	assert.Empty(t, app.Planner.Selection())
}

func TestShell_PlanCommands(t *testing.T) {
	app, _ := testAppWithCatalog(t)
	m := newShellModel(app)
	execLine(t, &m, "add MA1101")

	assert.Equal(t, "MA1101  1:A", execLine(t, &m, "plan MA1101 1 A"))
	assert.Equal(t, "MA1101  1:A 2:- 3:C", execLine(t, &m, "plan ma1101 3 C"))
	assert.Equal(t, "MA1101  1:- 2:C", execLine(t, &m, "unplan MA1101 1"))
	assert.Equal(t, "MA1101  1:-", execLine(t, &m, "trim MA1101 1"))

	assert.Contains(t, execLine(t, &m, "plan MA1101 0 A"), "priority must be a number from 1")
	assert.Contains(t, execLine(t, &m, "plan MA1101 1 Z"), `MA1101 has no section "Z"`)
	assert.Contains(t, execLine(t, &m, "trim MA1101 -1"), "count must be a non-negative number")
	assert.Contains(t, execLine(t, &m, "plan MA1101 1"), "Usage: plan <kode> <priority> <kelas>")

	out := execLine(t, &m, "plan IF2120 1 B")
	assert.Contains(t, out, "IF2120  1:B")
	assert.Contains(t, out, "IF2120 is not chosen yet")

	assert.Equal(t, "IF2110 has no priorities.", execLine(t, &m, "unplan IF2110 1"))
}

func TestShell_CatalogAndFilter(t *testing.T) {
	app, _ := testAppWithCatalog(t)
	m := newShellModel(app)

	out := execLine(t, &m, "catalog")
	assert.Contains(t, out, "IF2120")
	assert.NotContains(t, out, "EL2101")

	out = execLine(t, &m, "catalog diskrit")
	assert.Contains(t, out, "IF2120")
	assert.NotContains(t, out, "IF2110")

	assert.Equal(t, "Jurusan filter: Elektro", execLine(t, &m, "filter Elektro"))
	assert.Contains(t, execLine(t, &m, "catalog"), "EL2101")
	assert.Equal(t, "Jurusan filter: all", execLine(t, &m, "filter all"))
	assert.Equal(t, "Jurusan filter: all", execLine(t, &m, "filter"))

	assert.Contains(t, execLine(t, &m, "info IF2110"), "Dr. Budi")
	assert.Contains(t, execLine(t, &m, "info"), "Usage: info <kode>")
}

func TestShell_UnknownCommand(t *testing.T) {
	app, _ := testApp(t)
	m := newShellModel(app)

	assert.Contains(t, execLine(t, &m, "enroll IF2110"), `unknown command "enroll"`)
	assert.Contains(t, execLine(t, &m, `add "IF`), "unterminated quoted string")
	assert.Contains(t, execLine(t, &m, "help"), "PRIORITIES")
}

func TestShell_ValidateRunsInBackground(t *testing.T) {
	app, _ := testAppWithCatalog(t)
	m := newShellModel(app)
	execLine(t, &m, "add IF2110")

	out, cmd := m.executeCommand("validate")
	assert.Empty(t, out)
	require.NotNil(t, cmd)
	assert.Equal(t, modeBusy, m.mode)
	assert.Contains(t, stripANSI(m.View()), "Validating...")

	// Keys are ignored while busy.
	updated, _ := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("x")})
	busy := updated.(shellModel)
	assert.Empty(t, busy.input.Value())

	updated, _ = busy.Update(cmd())
	done := updated.(shellModel)
	assert.Equal(t, modePrompt, done.mode)
	assert.Contains(t, stripANSI(done.lastOutput),
		"Mata kuliah Algoritma Dan Struktur Data harus memiliki setidaknya satu kelas yang dipilih")
}

func shellOf(d *teatest.Driver) shellModel {
	return d.Model.(shellModel)
}

func TestShellDriver_PlanAndSubmit(t *testing.T) {
	app, submitted := testAppWithCatalog(t)
	d := teatest.New(t, newShellModel(app), teatest.WithSize(100, 30))
	d.DrainInit()

	assert.Contains(t, stripANSI(d.View()), "krsplan ❯")

	d.Enter("add IF2110")
	assert.Contains(t, stripANSI(shellOf(d).lastOutput), "IF2110")
	assert.Contains(t, stripANSI(d.View()), "krsplan (4/24 sks) ❯")

	d.Enter("submit")
	assert.Contains(t, stripANSI(shellOf(d).lastOutput), "FATAL")
	assert.Empty(t, submitted.String())

	d.Enter("plan IF2110 1 B")
	d.Enter("validate")
	assert.Contains(t, stripANSI(shellOf(d).lastOutput), "Plan is valid")

	d.Enter("submit")
	assert.Contains(t, stripANSI(shellOf(d).lastOutput), "Submitted")
	assert.Contains(t, submitted.String(), `"kode": "IF2110"`)
	assert.Contains(t, stripANSI(d.View()), "4/24 sks ✔")

	d.Enter("rm IF2110")
	assert.NotContains(t, stripANSI(d.View()), "✔")
}

func TestShellDriver_ResetConfirm(t *testing.T) {
	app, _ := testAppWithCatalog(t)
	d := teatest.New(t, newShellModel(app))
	d.DrainInit()

	d.Enter("add IF2110")
	d.Enter("reset")
	assert.Contains(t, stripANSI(d.View()), "Clear all courses and priorities? (y/n)")

	d.Enter("n")
	assert.Contains(t, stripANSI(shellOf(d).lastOutput), "Cancelled.")
	require.Len(t, app.Planner.Selection(), 1)

	d.Enter("reset")
	d.PressEsc()
	assert.Equal(t, modePrompt, shellOf(d).mode)
	require.Len(t, app.Planner.Selection(), 1)

	d.Enter("reset")
	d.Enter("y")
	assert.Contains(t, stripANSI(shellOf(d).lastOutput), "Session cleared.")
	assert.Empty(t, app.Planner.Selection())
}

func TestShellDriver_ExitAndCtrlC(t *testing.T) {
	app, _ := testApp(t)

	d := teatest.New(t, newShellModel(app))
	d.Enter("exit")
	assert.True(t, d.Quitting)
	assert.Contains(t, stripANSI(d.View()), "Goodbye.")

	d = teatest.New(t, newShellModel(app))
	d.PressCtrlC()
	assert.True(t, d.Quitting)
}

func TestShellDriver_HistoryRecall(t *testing.T) {
	app, _ := testAppWithCatalog(t)
	app.HistoryPath = filepath.Join(t.TempDir(), "history")
	d := teatest.New(t, newShellModel(app))

	d.Enter("show")
	d.Enter("catalog")
	d.PressUp()
	assert.Equal(t, "catalog", shellOf(d).input.Value())
	d.PressUp()
	assert.Equal(t, "show", shellOf(d).input.Value())
	d.PressDown()
	d.PressDown()
	assert.Empty(t, shellOf(d).input.Value())

	assert.Equal(t, []string{"show", "catalog"}, loadHistory(app.HistoryPath))

	// A new shell starts from the saved history.
	m := newShellModel(app)
	assert.Equal(t, []string{"show", "catalog"}, m.history)
}

func TestLoadHistory(t *testing.T) {
	dir := t.TempDir()

	assert.Nil(t, loadHistory(""))
	assert.Nil(t, loadHistory(filepath.Join(dir, "missing")))

	path := filepath.Join(dir, "history")
	var b strings.Builder
	for i := 0; i < maxHistoryLines+20; i++ {
		b.WriteString("show\n\n")
	}
	require.NoError(t, os.WriteFile(path, []byte(b.String()), 0o644))
	assert.Len(t, loadHistory(path), maxHistoryLines)
}

func TestAppendHistory_SkipsBlank(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "history")
	appendHistory(path, "  ")
	appendHistory(path, " add IF2110 ")
	appendHistory("", "ignored")
	assert.Equal(t, []string{"add IF2110"}, loadHistory(path))
}

func TestFilterSuggestions(t *testing.T) {
	assert.Equal(t, []string{"add"}, filterSuggestions(shellCommandNames(), "ad"))
	assert.Equal(t, []string{"IF2110", "IF2120"}, filterSuggestions([]string{"IF2110", "IF2120", "MA1101"}, "if"))
	assert.Nil(t, filterSuggestions([]string{"show"}, "x"))
}
