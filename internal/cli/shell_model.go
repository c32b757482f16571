package cli

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/alexanderramin/krsplan/internal/cli/formatter"
	"github.com/alexanderramin/krsplan/internal/domain"
	"github.com/alexanderramin/krsplan/internal/service"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
)

type shellMode int

const (
	modePrompt  shellMode = iota // Normal command input.
	modeConfirm                  // Awaiting y/n for a destructive command.
	modeBusy                     // Validation or submission in flight.
)

type pendingConfirmation struct {
	question string
	run      func(m *shellModel) string
}

// validationDoneMsg carries the report of a background validate.
type validationDoneMsg struct {
	report domain.Report
}

// submitDoneMsg carries the outcome of a background submit.
type submitDoneMsg struct {
	result *service.SubmitResult
	err    error
}

// shellModel is the bubbletea Model for the interactive shell.
type shellModel struct {
	input textinput.Model
	width int

	app   *App
	kodes *kodeCache

	mode           shellMode
	busyLabel      string
	pendingConfirm *pendingConfirmation

	history    []string
	historyIdx int

	// lastOutput is the most recent text printed above the prompt.
	lastOutput string
	quitting   bool
}

func newShellModel(app *App) shellModel {
	ti := textinput.New()
	ti.Focus()
	ti.Prompt = ""
	ti.ShowSuggestions = true
	ti.CharLimit = 200
	// Tab accepts a suggestion; Up/Down are history.
	ti.KeyMap.NextSuggestion = key.NewBinding(key.WithKeys("ctrl+n"))
	ti.KeyMap.PrevSuggestion = key.NewBinding(key.WithKeys("ctrl+p"))

	hist := loadHistory(app.HistoryPath)
	return shellModel{
		input:      ti,
		app:        app,
		kodes:      &kodeCache{},
		history:    hist,
		historyIdx: len(hist),
	}
}

func (m shellModel) Init() tea.Cmd {
	return tea.Batch(
		textinput.Blink,
		tea.Println(formatter.FormatShellWelcome()),
	)
}

func (m shellModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.input.Width = max(msg.Width-len(m.promptPrefix())-1, 10)
		return m, nil

	case validationDoneMsg:
		m.mode = modePrompt
		cmd := m.print(formatter.FormatReport(msg.report))
		return m, cmd

	case submitDoneMsg:
		m.mode = modePrompt
		var out string
		switch {
		case msg.err != nil && !errors.Is(msg.err, service.ErrSubmissionBlocked):
			out = shellError(msg.err)
		default:
			out = formatter.FormatSubmitResult(msg.result)
		}
		cmd := m.print(out)
		return m, cmd

	case tea.KeyMsg:
		if msg.Type == tea.KeyCtrlC {
			m.quitting = true
			return m, tea.Quit
		}
		switch m.mode {
		case modeBusy:
			return m, nil
		case modeConfirm:
			return m.updateConfirm(msg)
		default:
			return m.updatePrompt(msg)
		}
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m shellModel) View() string {
	if m.quitting {
		return formatter.Dim("Goodbye.") + "\n"
	}
	if m.mode == modeBusy {
		return formatter.StyleYellow.Render(m.busyLabel+"...") + "\n"
	}
	return m.promptPrefix() + m.input.View()
}

func (m *shellModel) promptPrefix() string {
	if m.mode == modeConfirm {
		return formatter.StyleYellow.Render(m.pendingConfirm.question+" (y/n)") + " " + formatter.Dim("❯") + " "
	}
	sum := m.app.Planner.Summary()
	if sum.CourseCount == 0 {
		return formatter.StylePurple.Render("krsplan") + " " + formatter.Dim("❯") + " "
	}
	load := fmt.Sprintf("%d/%d sks", sum.TotalSKS, sum.SKSLimit)
	if sum.Submitted {
		load += " ✔"
	}
	return formatter.StylePurple.Render("krsplan") + " " +
		formatter.Dim("(") + formatter.StyleGreen.Render(load) + formatter.Dim(")") +
		" " + formatter.Dim("❯") + " "
}

// print records out as the latest output and prints it above the prompt.
func (m *shellModel) print(out string) tea.Cmd {
	m.lastOutput = out
	if out == "" {
		return nil
	}
	return tea.Println(out)
}

func (m shellModel) updatePrompt(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEnter:
		input := strings.TrimSpace(m.input.Value())
		m.input.Reset()
		m.input.SetSuggestions(nil)
		if input == "" {
			return m, nil
		}
		m.addHistory(input)
		output, cmd := m.executeCommand(input)
		cmd = tea.Batch(m.print(output), cmd)
		return m, cmd

	case tea.KeyUp:
		m.historyUp()
		return m, nil

	case tea.KeyDown:
		m.historyDown()
		return m, nil

	default:
		var cmd tea.Cmd
		m.input, cmd = m.input.Update(msg)
		m.updateSuggestions()
		return m, cmd
	}
}

func (m shellModel) updateConfirm(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEnter:
		answer := strings.ToLower(strings.TrimSpace(m.input.Value()))
		m.input.Reset()
		pending := m.pendingConfirm
		m.pendingConfirm = nil
		m.mode = modePrompt

		out := formatter.Dim("Cancelled.")
		if answer == "y" || answer == "yes" {
			out = pending.run(&m)
		}
		cmd := m.print(out)
		return m, cmd
	case tea.KeyEsc:
		m.input.Reset()
		m.pendingConfirm = nil
		m.mode = modePrompt
		cmd := m.print(formatter.Dim("Cancelled."))
		return m, cmd
	default:
		var cmd tea.Cmd
		m.input, cmd = m.input.Update(msg)
		return m, cmd
	}
}

func (m *shellModel) confirm(question string, run func(m *shellModel) string) {
	m.mode = modeConfirm
	m.pendingConfirm = &pendingConfirmation{question: question, run: run}
}

// ── history ──────────────────────────────────────────────────────────────────

func (m *shellModel) addHistory(line string) {
	m.history = append(m.history, line)
	m.historyIdx = len(m.history)
	appendHistory(m.app.HistoryPath, line)
}

func (m *shellModel) historyUp() {
	if m.historyIdx > 0 {
		m.historyIdx--
		m.input.SetValue(m.history[m.historyIdx])
		m.input.CursorEnd()
	}
}

func (m *shellModel) historyDown() {
	if m.historyIdx < len(m.history)-1 {
		m.historyIdx++
		m.input.SetValue(m.history[m.historyIdx])
		m.input.CursorEnd()
		return
	}
	m.historyIdx = len(m.history)
	m.input.SetValue("")
}

// ── suggestions ──────────────────────────────────────────────────────────────

// kodeCache holds catalog kodes for completion. It is shared by every copy
// of the model and refreshed after a catalog change.
type kodeCache struct {
	mu    sync.Mutex
	kodes []string
	ok    bool
}

func (c *kodeCache) get(app *App) []string {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.ok {
		return c.kodes
	}
	courses, err := app.Catalog.List(context.Background(), nil)
	if err != nil {
		return nil
	}
	c.kodes = make([]string, len(courses))
	for i, course := range courses {
		c.kodes[i] = course.Kode
	}
	c.ok = true
	return c.kodes
}

var kodeCommands = map[string]bool{
	"add": true, "rm": true, "toggle": true, "info": true,
	"plan": true, "unplan": true, "trim": true,
}

func (m *shellModel) updateSuggestions() {
	text := m.input.Value()
	parts := strings.Fields(text)
	if len(parts) == 0 {
		m.input.SetSuggestions(nil)
		return
	}
	trailingSpace := strings.HasSuffix(text, " ")

	if len(parts) == 1 && !trailingSpace {
		m.input.SetSuggestions(filterSuggestions(shellCommandNames(), parts[0]))
		return
	}

	// Index of the word being typed.
	word := len(parts) - 1
	if trailingSpace {
		word = len(parts)
	}
	cmd := strings.ToLower(parts[0])
	multi := cmd == "add" || cmd == "rm"
	if !kodeCommands[cmd] || (!multi && word != 1) {
		m.input.SetSuggestions(nil)
		return
	}

	// Complete the kode being typed, keeping the words before it.
	prefix := ""
	head := text
	if !trailingSpace {
		prefix = parts[len(parts)-1]
		head = strings.TrimSuffix(text, prefix)
	}
	var out []string
	for _, k := range filterSuggestions(m.kodes.get(m.app), strings.ToUpper(prefix)) {
		out = append(out, head+k)
	}
	m.input.SetSuggestions(out)
}

func filterSuggestions(candidates []string, prefix string) []string {
	var out []string
	for _, c := range candidates {
		if strings.HasPrefix(strings.ToLower(c), strings.ToLower(prefix)) {
			out = append(out, c)
		}
	}
	return out
}

func shellCommandNames() []string {
	return []string{
		"catalog", "info", "filter",
		"add", "rm", "toggle", "show",
		"plan", "unplan", "trim",
		"validate", "submit", "reset",
		"help", "exit",
	}
}

func shellError(err error) string {
	return formatter.StyleRed.Render("Error: " + err.Error())
}
