package cmd

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/suderio/jdice/internal/session"
)

const (
	welcome     = "Welcome to jdice!\nType 'help' for commands, 'exit' to quit."
	historySize = 5
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FAFAFA")).
			Background(lipgloss.Color("#7D56F4")).
			Padding(0, 1).
			MarginBottom(1)

	infoStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#999999"))

	stateBoxStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("#874BFD")).
			Padding(1, 2)

	logBoxStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("#04B575")).
			Padding(0, 1)

	autocompleteStyle = lipgloss.NewStyle().
				Border(lipgloss.RoundedBorder()).
				BorderForeground(lipgloss.Color("#F25D94"))
)

// Commands offered by autocomplete before preset names.
var baseCommands = []string{"roll ", "roll as: ", "preset ", "presets", "total", "clear", "help ", "exit", "quit"}

type suggestion string

func (s suggestion) Title() string       { return string(s) }
func (s suggestion) Description() string { return "" }
func (s suggestion) FilterValue() string { return string(s) }

type replModel struct {
	app         *session.Session
	textInput   textinput.Model
	viewport    viewport.Model
	suggestions list.Model
	history     []string
	historyIdx  int
	logContent  string
	width       int
	height      int
	showList    bool
}

func newREPLModel(app *session.Session) replModel {
	ti := textinput.New()
	ti.Placeholder = "Enter dice or a command (e.g., 2x1d20+5 or preset d6)..."
	ti.Focus()
	ti.CharLimit = 256
	ti.Width = 60

	vp := viewport.New(0, 0)
	vp.SetContent(welcome)

	// Configure a minimalist list for autocomplete
	delegate := list.NewDefaultDelegate()
	delegate.ShowDescription = false
	delegate.SetHeight(1)
	delegate.SetSpacing(0)
	sugList := list.New([]list.Item{}, delegate, 50, 7)
	sugList.SetShowTitle(false)
	sugList.SetShowStatusBar(false)
	sugList.SetFilteringEnabled(false) // We filter manually
	sugList.SetShowHelp(false)

	return replModel{
		app:         app,
		textInput:   ti,
		viewport:    vp,
		suggestions: sugList,
		history:     []string{},
		historyIdx:  -1,
		logContent:  welcome,
	}
}

func (m *replModel) Init() tea.Cmd {
	return textinput.Blink
}

// completions lists what val may expand to: commands, then "preset <name>"
// for every loaded preset.
func (m *replModel) completions(val string) []string {
	if val == "" {
		return nil
	}
	lower := strings.ToLower(val)

	var out []string
	for _, c := range baseCommands {
		if strings.HasPrefix(c, lower) && len(val) < len(c) {
			out = append(out, c)
		}
	}

	if strings.HasPrefix(lower, "preset ") {
		prefix := strings.TrimPrefix(lower, "preset ")
		for _, name := range m.app.Presets().Names() {
			if strings.HasPrefix(strings.ToLower(name), prefix) && len(prefix) < len(name) {
				out = append(out, "preset "+name)
			}
		}
	}
	return out
}

func (m *replModel) updateSuggestions() {
	var items []list.Item
	for _, c := range m.completions(m.textInput.Value()) {
		items = append(items, suggestion(c))
	}

	m.suggestions.SetItems(items)
	m.showList = len(items) > 0
	if m.showList {
		m.suggestions.SetHeight(min(max(len(items), 4), 10))
		m.suggestions.ResetSelected()
	}
}

// submit runs one line through the session and appends the outcome to the log.
func (m *replModel) submit(val string) {
	m.logContent += fmt.Sprintf("\n\n> %s\n", val)
	events, err := m.app.Execute(val)
	if err != nil {
		m.logContent += fmt.Sprintf("Error: %v", err)
		return
	}
	for _, evt := range events {
		if msg := evt.Message(); msg != "" {
			m.logContent += msg + "\n"
		}
	}
}

// recall steps through the input history; step is -1 for older, +1 for newer.
func (m *replModel) recall(step int) {
	if len(m.history) == 0 {
		return
	}
	switch {
	case step < 0 && m.historyIdx == -1:
		m.historyIdx = len(m.history) - 1
	case step < 0 && m.historyIdx > 0:
		m.historyIdx--
	case step > 0 && m.historyIdx == -1:
		return
	case step > 0 && m.historyIdx == len(m.history)-1:
		m.historyIdx = -1
		m.textInput.SetValue("")
		m.updateSuggestions()
		return
	case step > 0:
		m.historyIdx++
	}
	m.textInput.SetValue(m.history[m.historyIdx])
	m.updateSuggestions()
}

// remember records val unless it repeats the previous line.
func (m *replModel) remember(val string) {
	if n := len(m.history); n == 0 || m.history[n-1] != val {
		m.history = append(m.history, val)
	}
	m.historyIdx = -1
}

// resizeLog gives the log viewport whatever height the other boxes leave.
func (m *replModel) resizeLog() {
	used := lipgloss.Height(titleStyle.Render(" ")) +
		lipgloss.Height(m.renderState()) +
		lipgloss.Height(infoStyle.Render(" ")) +
		12 // input line, spacer and log borders
	if m.showList {
		used += m.suggestions.Height() + 2
	}
	m.viewport.Height = max(m.height-used, 4)
}

func (m *replModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.Type {
		case tea.KeyCtrlC, tea.KeyEsc:
			return m, tea.Quit

		case tea.KeyUp, tea.KeyDown:
			if m.showList {
				var cmd tea.Cmd
				m.suggestions, cmd = m.suggestions.Update(msg)
				cmds = append(cmds, cmd)
			} else if msg.Type == tea.KeyUp {
				m.recall(-1)
			} else {
				m.recall(1)
			}

		case tea.KeyTab:
			if item, ok := m.suggestions.SelectedItem().(suggestion); ok && m.showList {
				m.textInput.SetValue(string(item))
				m.textInput.CursorEnd()
				m.updateSuggestions()
			}

		case tea.KeyEnter:
			val := strings.TrimSpace(m.textInput.Value())
			if val == "exit" || val == "quit" {
				return m, tea.Quit
			}
			if val == "" {
				break
			}
			m.remember(val)
			m.textInput.SetValue("")
			m.updateSuggestions()
			m.submit(val)
			m.viewport.SetContent(m.logContent)
			m.viewport.GotoBottom()

		default:
			var cmd tea.Cmd
			m.textInput, cmd = m.textInput.Update(msg)
			cmds = append(cmds, cmd)
			m.updateSuggestions()
		}

	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.viewport.Width = msg.Width - 4
		m.suggestions.SetWidth(msg.Width - 6)
	}

	var vpCmd tea.Cmd
	m.viewport, vpCmd = m.viewport.Update(msg)
	cmds = append(cmds, vpCmd)
	m.resizeLog()

	return m, tea.Batch(cmds...)
}

func (m *replModel) renderState() string {
	state := m.app.State()

	var sb strings.Builder
	sb.WriteString("=== Tally ===\n\n")
	sb.WriteString(fmt.Sprintf("Cumulative Total: %d\n", state.Cumulative))
	sb.WriteString(fmt.Sprintf("Rolls: %d", state.Rolls))
	if state.Passed+state.Failed > 0 {
		sb.WriteString(fmt.Sprintf("   Checks: %d passed, %d failed", state.Passed, state.Failed))
	}
	sb.WriteString("\n")

	last := state.Last(historySize)
	if len(last) == 0 {
		sb.WriteString("\nNo rolls yet.")
	} else {
		sb.WriteString("\nRecent:")
		for _, line := range last {
			sb.WriteString("\n - " + line)
		}
	}

	return stateBoxStyle.Width(m.width - 4).Render(sb.String())
}

func (m *replModel) View() string {
	if m.width == 0 {
		return "Initializing..."
	}

	title := titleStyle.Render(fmt.Sprintf(" jdice | %d presets ", len(m.app.Presets().Names())))
	stateBox := m.renderState()
	logBox := logBoxStyle.Width(m.width - 4).Render(m.viewport.View())

	inputArea := m.textInput.View()
	if m.showList {
		inputArea = fmt.Sprintf("%s\n%s", inputArea, autocompleteStyle.Render(m.suggestions.View()))
	}

	mainView := lipgloss.JoinVertical(lipgloss.Left,
		title,
		stateBox,
		logBox,
		"\n",
		inputArea,
		infoStyle.Render("(esc to quit, tab to complete, up/down history)"),
	)

	return mainView + strings.Repeat("\n", 7)
}

// RunTUI runs the interactive shell on app until the user quits.
func RunTUI(app *session.Session) error {
	m := newREPLModel(app)
	p := tea.NewProgram(&m, tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		return err
	}
	return nil
}
