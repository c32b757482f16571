package cli

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/alexanderramin/krsplan/internal/cli/formatter"
	"github.com/alexanderramin/krsplan/internal/domain"
	"github.com/alexanderramin/krsplan/internal/repository"
	tea "github.com/charmbracelet/bubbletea"
)

// executeCommand runs one shell line. It returns text to print and an
// optional command for work that finishes later.
func (m *shellModel) executeCommand(input string) (string, tea.Cmd) {
	parts, err := splitShellArgs(input)
	if err != nil {
		return shellError(err), nil
	}
	if len(parts) == 0 {
		return "", nil
	}
	ctx := context.Background()
	cmd, args := strings.ToLower(parts[0]), parts[1:]

	switch cmd {
	case "help", "?":
		return formatter.FormatShellHelp(), nil
	case "exit", "quit":
		m.quitting = true
		return formatter.Dim("Goodbye."), tea.Quit
	case "catalog", "ls":
		return m.execCatalog(ctx, args), nil
	case "info":
		return m.execInfo(ctx, args), nil
	case "filter":
		return m.execFilter(args), nil
	case "add":
		return m.execAdd(ctx, args), nil
	case "rm", "remove":
		return m.execRemove(ctx, args), nil
	case "toggle":
		return m.execToggle(ctx, args), nil
	case "show":
		return m.execShow(), nil
	case "plan":
		return m.execPlan(ctx, args), nil
	case "unplan":
		return m.execUnplan(ctx, args), nil
	case "trim":
		return m.execTrim(ctx, args), nil
	case "validate":
		return m.startValidate()
	case "submit":
		return m.startSubmit()
	case "reset":
		m.confirm("Clear all courses and priorities?", func(m *shellModel) string {
			m.app.Planner.Reset(context.Background())
			return formatter.Dim("Session cleared.")
		})
		return "", nil
	default:
		return shellError(fmt.Errorf("unknown command %q, type 'help' for the list", cmd)), nil
	}
}

func (m *shellModel) execCatalog(ctx context.Context, args []string) string {
	courses, err := m.app.Catalog.List(ctx, m.app.Planner.JurusanFilter())
	if err != nil {
		return shellError(err)
	}
	if len(args) > 0 {
		q := strings.ToUpper(strings.Join(args, " "))
		var matched []domain.Course
		for _, c := range courses {
			if strings.HasPrefix(c.Kode, q) || strings.Contains(strings.ToUpper(c.Nama), q) {
				matched = append(matched, c)
			}
		}
		courses = matched
	}
	return formatter.FormatCourseList(courses, m.app.Planner.Selection())
}

func (m *shellModel) execInfo(ctx context.Context, args []string) string {
	if len(args) != 1 {
		return usage("info <kode>")
	}
	c, err := m.app.Catalog.Get(ctx, args[0])
	if err != nil {
		return m.courseError(ctx, args[0], err)
	}
	return formatter.FormatCourseDetail(c)
}

func (m *shellModel) execFilter(args []string) string {
	switch {
	case len(args) == 0:
	case len(args) == 1 && strings.EqualFold(args[0], "all"):
		m.app.Planner.SetJurusanFilter(nil)
	default:
		m.app.Planner.SetJurusanFilter(args)
	}
	current := m.app.Planner.JurusanFilter()
	if len(current) == 0 {
		return formatter.Dim("Jurusan filter: ") + "all"
	}
	return formatter.Dim("Jurusan filter: ") + strings.Join(current, ", ")
}

func (m *shellModel) execAdd(ctx context.Context, args []string) string {
	if len(args) == 0 {
		return usage("add <kode>...")
	}
	lines := make([]string, 0, len(args))
	for _, kode := range args {
		res, err := m.app.Planner.AddCourse(ctx, kode)
		if err != nil {
			lines = append(lines, m.courseError(ctx, kode, err))
			continue
		}
		lines = append(lines, formatter.FormatAddResult(res))
	}
	return strings.Join(lines, "\n")
}

func (m *shellModel) execRemove(ctx context.Context, args []string) string {
	if len(args) == 0 {
		return usage("rm <kode>...")
	}
	lines := make([]string, 0, len(args))
	for _, kode := range args {
		kode = strings.ToUpper(kode)
		if _, chosen := m.chosen(kode); !chosen {
			lines = append(lines, formatter.Dim(kode+" is not chosen."))
			continue
		}
		m.app.Planner.RemoveCourse(ctx, kode)
		lines = append(lines, formatter.StyleRed.Render("-")+" "+formatter.Bold(kode))
	}
	return strings.Join(lines, "\n")
}

func (m *shellModel) execToggle(ctx context.Context, args []string) string {
	if len(args) != 1 {
		return usage("toggle <kode>")
	}
	kode := strings.ToUpper(args[0])
	res, err := m.app.Planner.ToggleCourse(ctx, kode)
	if err != nil {
		return m.courseError(ctx, kode, err)
	}
	switch {
	case res.Chosen:
		c, _ := m.chosen(kode)
		return fmt.Sprintf("%s %s %s", formatter.StyleGreen.Render("+"), formatter.ColorSwatch(c.Color), formatter.Bold(kode))
	case res.Changed:
		return formatter.StyleRed.Render("-") + " " + formatter.Bold(kode)
	default:
		return formatter.StyleYellow.Render(fmt.Sprintf("%s not added: %s", kode, formatter.RejectMessage(res.Reason)))
	}
}

func (m *shellModel) execShow() string {
	return formatter.FormatSelection(m.app.Planner.Selection(), m.app.Planner.Plans()) +
		"\n" + formatter.FormatSummary(m.app.Planner.Summary())
}

func (m *shellModel) execPlan(ctx context.Context, args []string) string {
	if len(args) != 3 {
		return usage("plan <kode> <priority> <kelas>")
	}
	priority, err := parsePriority(args[1])
	if err != nil {
		return shellError(err)
	}
	kode := strings.ToUpper(args[0])
	if err := m.app.Planner.SetPlan(ctx, kode, priority-1, args[2]); err != nil {
		return m.courseError(ctx, kode, err)
	}
	out := m.planLine(kode)
	if _, chosen := m.chosen(kode); !chosen {
		out += "\n" + formatter.Dim(kode+" is not chosen yet; 'add "+kode+"' to include it.")
	}
	return out
}

func (m *shellModel) execUnplan(ctx context.Context, args []string) string {
	if len(args) != 2 {
		return usage("unplan <kode> <priority>")
	}
	priority, err := parsePriority(args[1])
	if err != nil {
		return shellError(err)
	}
	kode := strings.ToUpper(args[0])
	m.app.Planner.RemovePlan(ctx, kode, priority-1)
	return m.planLine(kode)
}

func (m *shellModel) execTrim(ctx context.Context, args []string) string {
	if len(args) != 2 {
		return usage("trim <kode> <count>")
	}
	n, err := strconv.Atoi(args[1])
	if err != nil || n < 0 {
		return shellError(fmt.Errorf("count must be a non-negative number, got %q", args[1]))
	}
	kode := strings.ToUpper(args[0])
	m.app.Planner.TrimPlans(ctx, kode, n)
	return m.planLine(kode)
}

func (m *shellModel) startValidate() (string, tea.Cmd) {
	m.mode = modeBusy
	m.busyLabel = "Validating"
	planner := m.app.Planner
	return "", func() tea.Msg {
		return validationDoneMsg{report: planner.Validate(context.Background())}
	}
}

func (m *shellModel) startSubmit() (string, tea.Cmd) {
	m.mode = modeBusy
	m.busyLabel = "Submitting"
	planner := m.app.Planner
	return "", func() tea.Msg {
		result, err := planner.Submit(context.Background())
		return submitDoneMsg{result: result, err: err}
	}
}

func (m *shellModel) planLine(kode string) string {
	p, ok := m.app.Planner.Plans().Get(kode)
	if !ok {
		return formatter.Dim(kode + " has no priorities.")
	}
	return formatter.Bold(kode) + "  " + formatter.FormatPriorities(p)
}

func (m *shellModel) chosen(kode string) (domain.ChosenCourse, bool) {
	for _, c := range m.app.Planner.Selection() {
		if c.Kode == kode {
			return c, true
		}
	}
	return domain.ChosenCourse{}, false
}

// courseError renders err, with "did you mean" hints for an unknown kode.
func (m *shellModel) courseError(ctx context.Context, kode string, err error) string {
	if !errors.Is(err, repository.ErrCourseNotFound) {
		return shellError(err)
	}
	kode = strings.ToUpper(kode)
	suggestions, _ := m.app.Catalog.Suggest(ctx, kode, 3)
	return formatter.FormatSuggestions(kode, suggestions)
}

// parsePriority reads a 1-based priority as typed in the shell.
func parsePriority(s string) (int, error) {
	n, err := strconv.Atoi(s)
	if err != nil || n < 1 {
		return 0, fmt.Errorf("priority must be a number from 1, got %q", s)
	}
	return n, nil
}

func usage(form string) string {
	return formatter.StyleYellow.Render("Usage: " + form)
}

// splitShellArgs splits a line into words, honoring single and double
// quotes and backslash escapes.
func splitShellArgs(input string) ([]string, error) {
	var parts []string
	var cur strings.Builder

	inSingle := false
	inDouble := false
	escaped := false
	tokenStarted := false

	flush := func() {
		parts = append(parts, cur.String())
		cur.Reset()
		tokenStarted = false
	}

	for _, r := range input {
		switch {
		case escaped:
			cur.WriteRune(r)
			escaped = false
		case inSingle:
			if r == '\'' {
				inSingle = false
			} else {
				cur.WriteRune(r)
			}
		case inDouble:
			switch r {
			case '"':
				inDouble = false
			case '\\':
				escaped = true
			default:
				cur.WriteRune(r)
			}
		case r == '\\':
			escaped = true
			tokenStarted = true
		case r == '\'':
			inSingle = true
			tokenStarted = true
		case r == '"':
			inDouble = true
			tokenStarted = true
		case r == ' ' || r == '\t' || r == '\n' || r == '\r':
			if tokenStarted {
				flush()
			}
		default:
			cur.WriteRune(r)
			tokenStarted = true
		}
	}

	if escaped {
		return nil, fmt.Errorf("unterminated escape sequence")
	}
	if inSingle || inDouble {
		return nil, fmt.Errorf("unterminated quoted string")
	}
	if tokenStarted {
		flush()
	}
	return parts, nil
}
