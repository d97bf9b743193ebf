package ui

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/sfairchild/parasvg/internal/auth"
	"github.com/sfairchild/parasvg/internal/gist"
	"github.com/sfairchild/parasvg/internal/state"
	"github.com/sfairchild/parasvg/internal/svgdoc"
)

// Options configure the UI runtime.
type Options struct {
	Context     context.Context
	Coordinator *state.Coordinator
	Session     *auth.Session
	Gist        gist.SnapshotClient
	Exchanger   auth.Exchanger
	ThemeName   string
	AuthHost    string
	InitialGist string
	InitialName string
	LastGist    string // prefills the open prompt with the previously synced gist
}

type focusArea int

const (
	focusEditor focusArea = iota
	focusVariables
)

type promptKind int

const (
	promptNone promptKind = iota
	promptBasename
	promptLoginCode
	promptGistID
	promptVariable
)

const (
	maxVisibleToasts = 4
	defaultBasename  = "sketch"
)

// Model is the bubbletea model for the editor shell. All remote
// completions funnel through Update, so state transitions are applied one
// at a time in arrival order.
type Model struct {
	opts   Options
	keys   keyMap
	theme  Theme
	styles Styles

	editor textarea.Model
	input  textinput.Model
	spin   spinner.Model

	focus  focusArea
	prompt promptKind

	varCursor    int
	editVarIndex int // -1 while adding a new variable

	width  int
	height int
}

// Run wires up the model and blocks until the user quits or ctx is cancelled.
func Run(opts Options) error {
	if opts.Coordinator == nil {
		return fmt.Errorf("ui requires a coordinator")
	}
	if opts.Session == nil {
		return fmt.Errorf("ui requires an auth session")
	}
	if opts.Context == nil {
		opts.Context = context.Background()
	}

	model := newModel(opts)
	program := tea.NewProgram(model, tea.WithAltScreen(), tea.WithContext(opts.Context))
	_, err := program.Run()
	if err != nil && !errors.Is(err, context.Canceled) {
		return fmt.Errorf("run ui: %w", err)
	}
	return nil
}

func newModel(opts Options) Model {
	theme := themeByName(opts.ThemeName)
	styles := theme.Styles()

	editor := textarea.New()
	editor.Placeholder = "<svg>...</svg>"
	editor.SetValue(opts.Coordinator.Document().Markup)
	editor.Focus()

	input := textinput.New()
	input.Prompt = "> "

	spin := spinner.New(spinner.WithSpinner(spinner.Dot))
	spin.Style = styles.AccentText

	return Model{
		opts:         opts,
		keys:         defaultKeyMap(),
		theme:        theme,
		styles:       styles,
		editor:       editor,
		input:        input,
		spin:         spin,
		editVarIndex: -1,
	}
}

// Init starts the cursor blink and, when a gist id was given on the
// command line, kicks off the initial load.
func (m Model) Init() tea.Cmd {
	cmds := []tea.Cmd{textarea.Blink}
	if m.opts.InitialGist != "" {
		name := m.opts.InitialName
		if name == "" {
			name = defaultBasename
		}
		cmds = append(cmds, m.beginLoad(m.opts.InitialGist, name), m.spin.Tick)
	}
	return tea.Batch(cmds...)
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.layout()
		return m, nil

	case spinner.TickMsg:
		if !spinning(m.control()) {
			return m, nil
		}
		var cmd tea.Cmd
		m.spin, cmd = m.spin.Update(msg)
		return m, cmd

	case exchangeResultMsg:
		m.opts.Session.ApplyExchangeResult(msg.seq, msg.token, msg.err)
		m.drainAuthFailures()
		return m, nil

	case saveResultMsg:
		m.opts.Coordinator.ApplySaveResult(msg.seq, msg.id, msg.err)
		return m, nil

	case loadResultMsg:
		m.opts.Coordinator.ApplyLoadResult(msg.seq, msg.remoteID, msg.doc, msg.err)
		if msg.err == nil {
			m.opts.Coordinator.SetBasename(strings.TrimSuffix(msg.resourceName, state.ResourceSuffix))
			m.editor.SetValue(m.opts.Coordinator.Document().Markup)
		}
		return m, nil

	case contentsReadyMsg:
		if msg.err != nil {
			m.opts.Coordinator.PushFailure("Preparing the file for upload failed: " + msg.err.Error())
			return m, nil
		}
		// If a keystroke slipped in while the render was in flight, the
		// coordinator rejects the stale staging and trySave renders again
		// from the current document.
		m.opts.Coordinator.StageContents(msg.payload, msg.doc)
		cmd := m.trySave()
		return m, cmd

	case tea.KeyMsg:
		return m.updateKeys(msg)
	}

	return m, nil
}

func (m Model) updateKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if key.Matches(msg, m.keys.Quit) {
		return m, tea.Quit
	}

	if m.prompt != promptNone {
		return m.updatePrompt(msg)
	}

	switch {
	case key.Matches(msg, m.keys.Save):
		cmd := m.requestSave()
		return m, cmd

	case key.Matches(msg, m.keys.SignIn):
		if m.opts.Session.Authenticated() || m.opts.Session.SigningIn() {
			return m, nil
		}
		cmd := m.openPrompt(promptLoginCode, "login code", "")
		return m, cmd

	case key.Matches(msg, m.keys.Open):
		cmd := m.openPrompt(promptGistID, "gist id [name]", m.opts.LastGist)
		return m, cmd

	case key.Matches(msg, m.keys.SwitchTo):
		if m.focus == focusEditor {
			m.focus = focusVariables
			m.editor.Blur()
		} else {
			m.focus = focusEditor
			m.editor.Focus()
		}
		return m, nil
	}

	if m.focus == focusVariables {
		return m.updateVariableKeys(msg)
	}

	var cmd tea.Cmd
	m.editor, cmd = m.editor.Update(msg)
	m.opts.Coordinator.SetMarkup(m.editor.Value())
	return m, cmd
}

func (m Model) updateVariableKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	vars := m.opts.Coordinator.Document().Variables

	switch {
	case key.Matches(msg, m.keys.Up):
		if m.varCursor > 0 {
			m.varCursor--
		}
		return m, nil

	case key.Matches(msg, m.keys.Down):
		if m.varCursor < len(vars)-1 {
			m.varCursor++
		}
		return m, nil

	case key.Matches(msg, m.keys.AddVar):
		m.editVarIndex = -1
		cmd := m.openPrompt(promptVariable, "name = value", "")
		return m, cmd

	case key.Matches(msg, m.keys.EditVar):
		if m.varCursor >= len(vars) {
			return m, nil
		}
		v := vars[m.varCursor]
		m.editVarIndex = m.varCursor
		cmd := m.openPrompt(promptVariable, "name = value", v.Name+" = "+v.Value)
		return m, cmd

	case key.Matches(msg, m.keys.DeleteVar):
		if m.varCursor >= len(vars) {
			return m, nil
		}
		vars = append(vars[:m.varCursor], vars[m.varCursor+1:]...)
		m.opts.Coordinator.SetVariables(vars)
		if m.varCursor >= len(vars) && m.varCursor > 0 {
			m.varCursor--
		}
		return m, nil
	}

	return m, nil
}

func (m *Model) openPrompt(kind promptKind, placeholder, value string) tea.Cmd {
	m.prompt = kind
	m.input.Placeholder = placeholder
	m.input.SetValue(value)
	m.input.CursorEnd()
	m.editor.Blur()
	return m.input.Focus()
}

func (m *Model) closePrompt() {
	m.prompt = promptNone
	m.input.Blur()
	m.input.SetValue("")
	if m.focus == focusEditor {
		m.editor.Focus()
	}
}

func (m Model) updatePrompt(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Cancel):
		kind := m.prompt
		m.closePrompt()
		if kind == promptBasename {
			// The confirmation step was abandoned; staged contents are
			// stale by definition.
			m.opts.Coordinator.InvalidateContents()
		}
		return m, nil

	case msg.Type == tea.KeyEnter:
		value := strings.TrimSpace(m.input.Value())
		kind := m.prompt
		m.closePrompt()
		return m.submitPrompt(kind, value)
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m Model) submitPrompt(kind promptKind, value string) (tea.Model, tea.Cmd) {
	switch kind {
	case promptBasename:
		if value == "" {
			m.opts.Coordinator.InvalidateContents()
			return m, nil
		}
		m.opts.Coordinator.SetBasename(value)
		// The prompt intervened between staging and saving, so contents
		// are re-requested rather than trusted.
		m.opts.Coordinator.InvalidateContents()
		cmd := m.trySave()
		return m, cmd

	case promptLoginCode:
		seq, ok := m.opts.Session.BeginExchange(value)
		if !ok {
			m.drainAuthFailures()
			return m, nil
		}
		return m, tea.Batch(exchangeCmd(m.opts.Context, m.opts.Exchanger, seq, value), m.spin.Tick)

	case promptGistID:
		if value == "" {
			return m, nil
		}
		fields := strings.Fields(value)
		name := m.opts.Coordinator.Basename()
		if len(fields) > 1 {
			name = fields[1]
		}
		if name == "" {
			name = defaultBasename
		}
		return m, tea.Batch(m.beginLoad(fields[0], name), m.spin.Tick)

	case promptVariable:
		if value == "" {
			return m, nil
		}
		name, varValue, found := strings.Cut(value, "=")
		if !found {
			m.opts.Coordinator.PushFailure("Variables are entered as name = value.")
			return m, nil
		}
		vars := m.opts.Coordinator.Document().Variables
		entry := svgdoc.Variable{Name: strings.TrimSpace(name), Value: strings.TrimSpace(varValue)}
		if m.editVarIndex >= 0 && m.editVarIndex < len(vars) {
			vars[m.editVarIndex] = entry
		} else {
			vars = append(vars, entry)
			m.varCursor = len(vars) - 1
		}
		m.opts.Coordinator.SetVariables(vars)
		return m, nil
	}

	return m, nil
}

// requestSave is the user-initiated save entry point. Without a GitHub
// connection it routes to sign-in instead of letting the save fail.
func (m *Model) requestSave() tea.Cmd {
	if !m.opts.Session.Authenticated() {
		m.opts.Coordinator.PushFailure("Connect your GitHub account before saving (ctrl+g).")
		return nil
	}
	if m.opts.Coordinator.Synced() {
		// Nothing changed since the last sync; saving again is a no-op.
		return nil
	}
	return m.trySave()
}

// trySave walks the save preconditions: a missing basename opens the
// prompt, missing contents trigger the serialization round trip, and only
// a fully staged attempt goes out on the wire.
func (m *Model) trySave() tea.Cmd {
	attempt, err := m.opts.Coordinator.BeginSave(m.opts.Session.CurrentToken())
	switch {
	case errors.Is(err, state.ErrSavePending):
		return nil
	case errors.Is(err, state.ErrNoBasename):
		return m.openPrompt(promptBasename, "file name", "")
	case errors.Is(err, state.ErrNoContents):
		return renderContentsCmd(m.opts.Coordinator.Document())
	case err != nil:
		m.opts.Coordinator.PushFailure("Saving failed: " + err.Error())
		return nil
	}
	return tea.Batch(saveCmd(m.opts.Context, m.opts.Gist, attempt), m.spin.Tick)
}

func (m Model) beginLoad(id, basename string) tea.Cmd {
	resourceName := basename + state.ResourceSuffix
	seq := m.opts.Coordinator.BeginLoad()
	return loadCmd(m.opts.Context, m.opts.Gist, seq, id, resourceName)
}

func (m Model) drainAuthFailures() {
	for _, failure := range m.opts.Session.TakeFailures() {
		m.opts.Coordinator.PushFailure(failure)
	}
}

func (m Model) control() controlState {
	return deriveControl(controlInputs{
		Authenticated: m.opts.Session.Authenticated(),
		SigningIn:     m.opts.Session.SigningIn(),
		Status:        m.opts.Coordinator.Status(),
		HasSnapshot:   hasSnapshot(m.opts.Coordinator),
		Dirty:         m.opts.Coordinator.Dirty(),
	})
}

func hasSnapshot(c *state.Coordinator) bool {
	_, ok := c.Snapshot()
	return ok
}

func (m *Model) layout() {
	editorWidth := m.width * 2 / 3
	if editorWidth < 20 {
		editorWidth = m.width
	}
	contentHeight := m.height - 4 - maxVisibleToasts
	if contentHeight < 3 {
		contentHeight = 3
	}
	m.editor.SetWidth(editorWidth - 2)
	m.editor.SetHeight(contentHeight - 2)
	m.input.Width = m.width - 4
}

func (m Model) View() string {
	var b strings.Builder

	b.WriteString(m.renderHeader())
	b.WriteString("\n")
	b.WriteString(m.renderPanes())
	b.WriteString("\n")
	b.WriteString(m.renderToasts())
	b.WriteString(m.renderFooter())

	return b.String()
}

func (m Model) renderHeader() string {
	control := m.control()
	label := controlLabel(control, m.opts.Coordinator.RemoteID())
	if spinning(control) {
		label = m.spin.View() + " " + label
	}

	parts := []string{
		m.styles.Title.Render("parasvg"),
		m.styles.StatusText.Render(label),
	}
	if name := m.opts.Coordinator.Basename(); name != "" {
		parts = append(parts, m.styles.MutedText.Render(name+state.ResourceSuffix))
	}
	return m.styles.Header.Width(m.width).Render(strings.Join(parts, "  "))
}

func (m Model) renderPanes() string {
	editorStyle := m.styles.PaneBorder
	varsStyle := m.styles.PaneBorder
	if m.focus == focusEditor {
		editorStyle = m.styles.FocusBorder
	} else {
		varsStyle = m.styles.FocusBorder
	}

	varsWidth := m.width / 3
	if varsWidth < 20 {
		varsWidth = 20
	}
	editorPane := editorStyle.Render(m.editor.View())
	varsPane := varsStyle.Width(varsWidth - 2).Render(m.renderVariables())

	return lipgloss.JoinHorizontal(lipgloss.Top, editorPane, varsPane)
}

func (m Model) renderVariables() string {
	vars := m.opts.Coordinator.Document().Variables
	if len(vars) == 0 {
		return m.styles.MutedText.Render("no variables\npress tab, then a to add one")
	}

	lines := make([]string, 0, len(vars))
	for i, v := range vars {
		line := v.Name + " = " + v.Value
		if m.focus == focusVariables && i == m.varCursor {
			line = m.styles.AccentText.Render("› " + line)
		} else {
			line = m.styles.StatusText.Render("  " + line)
		}
		lines = append(lines, line)
	}
	return strings.Join(lines, "\n")
}

func (m Model) renderToasts() string {
	toasts := m.opts.Coordinator.Toasts()
	if len(toasts) > maxVisibleToasts {
		toasts = toasts[len(toasts)-maxVisibleToasts:]
	}
	var b strings.Builder
	for _, toast := range toasts {
		b.WriteString(m.styles.Toast.Render(toast.Message))
		if toast.ActionLabel != "" {
			b.WriteString(" ")
			b.WriteString(m.styles.ToastLink.Render(toast.ActionLabel + ": " + toast.ActionURL))
		}
		b.WriteString("\n")
	}
	return b.String()
}

func (m Model) renderFooter() string {
	if m.prompt != promptNone {
		hint := ""
		if m.prompt == promptLoginCode {
			hint = m.styles.MutedText.Render("  authorize at " + m.opts.AuthHost + " and paste the code, or enter nothing to cancel")
		}
		return m.input.View() + hint
	}

	bindings := []key.Binding{
		m.keys.Save, m.keys.SignIn, m.keys.Open, m.keys.SwitchTo, m.keys.Quit,
	}
	if m.focus == focusVariables {
		bindings = []key.Binding{
			m.keys.AddVar, m.keys.EditVar, m.keys.DeleteVar, m.keys.SwitchTo, m.keys.Quit,
		}
	}
	segments := make([]string, 0, len(bindings))
	for _, b := range bindings {
		help := b.Help()
		segments = append(segments,
			m.styles.CmdKey.Render("<"+help.Key+">")+" "+m.styles.CmdDesc.Render(help.Desc))
	}
	return strings.Join(segments, "  ")
}
