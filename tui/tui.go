package tui

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/muesli/reflow/wordwrap"

	"github.com/nathoo/act/engine"
	"github.com/nathoo/act/engine/parser"
	"github.com/nathoo/act/engine/state"
	"github.com/nathoo/act/types"
)

// rawLine stores an unstyled transcript line with its classification,
// so we can re-wrap and re-style when the terminal is resized.
type rawLine struct {
	text string
	kind lineKind
}

// Options configures the TUI.
type Options struct {
	Trace bool
	// RecoverUnknownRoom sends the player back to the previous room when a
	// move leads nowhere, instead of ending the game.
	RecoverUnknownRoom bool
}

// Model is the Bubble Tea model for the act TUI.
type Model struct {
	engine *engine.Engine

	viewport viewport.Model
	input    textinput.Model
	history  *History

	rawLines []rawLine // transcript since the last move (unstyled, for re-wrapping)

	width    int
	height   int
	ready    bool
	trace    bool
	recover  bool
	quitting bool
	err      error // set when the game cannot continue
}

// startMsg asks the model to show the first room.
type startMsg struct{}

// New creates a TUI model wired to the given engine.
func New(eng *engine.Engine, opts Options) Model {
	ti := textinput.New()
	ti.Prompt = "> "
	ti.Focus()
	ti.CharLimit = 256
	ti.PromptStyle = styleInputPrompt

	return Model{
		engine:  eng,
		input:   ti,
		history: NewHistory(100),
		trace:   opts.Trace,
		recover: opts.RecoverUnknownRoom,
	}
}

// Run starts the Bubble Tea program and returns the error that ended the
// game, if any.
func Run(eng *engine.Engine, opts Options) error {
	p := tea.NewProgram(New(eng, opts), tea.WithAltScreen(), tea.WithMouseCellMotion())
	final, err := p.Run()
	if err != nil {
		return err
	}
	if m, ok := final.(Model); ok {
		return m.err
	}
	return nil
}

// Err returns the error that ended the game, if any.
func (m Model) Err() error { return m.err }

// Init blinks the cursor and shows the starting room.
func (m Model) Init() tea.Cmd {
	return tea.Batch(textinput.Blink, func() tea.Msg { return startMsg{} })
}

// Update handles messages (key presses, window resize, start).
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height

		vpHeight := m.height - 2 // 1 status bar + 1 input line
		if vpHeight < 1 {
			vpHeight = 1
		}

		if !m.ready {
			m.viewport = viewport.New(m.width, vpHeight)
			m.viewport.KeyMap = viewportKeyMap()
			m.ready = true
		} else {
			m.viewport.Width = m.width
			m.viewport.Height = vpHeight
		}

		m.refreshViewport()

	case startMsg:
		m = m.showRoom()
		if m.err != nil {
			return m, tea.Quit
		}
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c":
			m.quitting = true
			return m, tea.Quit

		case "enter":
			return m.handleEnter()

		case "up":
			if prev, ok := m.history.Older(); ok {
				m.input.SetValue(prev)
				m.input.CursorEnd()
			}
			return m, nil

		case "down":
			next, _ := m.history.Newer()
			m.input.SetValue(next)
			m.input.CursorEnd()
			return m, nil

		case "pgup", "pgdown", "ctrl+u", "ctrl+d":
			var vpCmd tea.Cmd
			m.viewport, vpCmd = m.viewport.Update(msg)
			return m, vpCmd
		}
	}

	var inputCmd tea.Cmd
	m.input, inputCmd = m.input.Update(msg)
	return m, inputCmd
}

// handleEnter processes the submitted input line.
func (m Model) handleEnter() (tea.Model, tea.Cmd) {
	input := m.input.Value()
	m.input.SetValue("")

	if strings.TrimSpace(input) == "" {
		return m, nil
	}
	m.history.Push(input)

	if parser.IsMeta(input) {
		output, quit := m.handleMeta(strings.TrimSpace(input))
		m = m.appendInput(input)
		m = m.appendLines(kindSystem, output...)
		if quit {
			m.quitting = true
			return m, tea.Quit
		}
		return m, nil
	}

	result := m.engine.Step(input)
	if result.Ignored {
		return m, nil
	}

	if result.Clear {
		m.rawLines = nil
	} else {
		m = m.appendInput(input)
	}
	if result.Effect.Kind == types.Blocked {
		m = m.appendLines(kindBlocked, engine.BlockedMessage(result))
	}
	if m.trace {
		m = m.appendLines(kindTrace, formatTrace(result))
	}

	m = m.showRoom()
	if m.err != nil {
		m.quitting = true
		return m, tea.Quit
	}
	return m, nil
}

// showRoom appends the current room's scene and numbered actions.
func (m Model) showRoom() Model {
	room, err := m.engine.Room()
	if err != nil {
		if !m.recover {
			m.err = err
			return m
		}
		m = m.appendLines(kindSystem, fmt.Sprintf("%v; returning to the previous room.", err))
		m.engine.RestorePrevious()
		return m.showRoom()
	}

	if room.Scene != "" {
		m = m.appendLines(kindScene, strings.Split(strings.TrimSuffix(room.Scene, "\n"), "\n")...)
	}
	m = m.appendLines(kindScene, "")
	for i, a := range room.Actions {
		m = m.appendLines(kindAction, strconv.Itoa(i)+". "+a.Label())
	}
	return m.appendLines(kindScene, "")
}

func (m Model) appendInput(input string) Model {
	return m.appendLines(kindInput, "> "+input)
}

// appendLines adds lines to the transcript and refreshes the viewport.
func (m Model) appendLines(kind lineKind, lines ...string) Model {
	for _, line := range lines {
		m.rawLines = append(m.rawLines, rawLine{text: line, kind: kind})
	}
	m.refreshViewport()
	return m
}

// refreshViewport re-wraps and re-styles all raw lines at the current width
// and updates the viewport content.
func (m *Model) refreshViewport() {
	if !m.ready {
		return
	}

	width := m.width
	if width < 10 {
		width = 10
	}

	styled := make([]string, 0, len(m.rawLines))
	for _, rl := range m.rawLines {
		if rl.text == "" {
			styled = append(styled, "")
			continue
		}
		styled = append(styled, rl.kind.style().Render(wordwrap.String(rl.text, width)))
	}

	m.viewport.SetContent(strings.Join(styled, "\n"))
	m.viewport.GotoBottom()
}

// View renders the full TUI layout: viewport + status bar + input.
func (m Model) View() string {
	if m.quitting {
		return ""
	}
	if !m.ready {
		return "Loading..."
	}

	return m.viewport.View() + "\n" + m.renderStatusBar() + "\n" + m.input.View()
}

// handleMeta dispatches meta-commands. Returns output lines and quit flag.
func (m *Model) handleMeta(input string) ([]string, bool) {
	cmd := strings.Fields(input)[0]

	switch cmd {
	case "/quit", "/exit":
		return []string{"[Goodbye.]"}, true

	case "/help":
		return cmdHelp(), false

	case "/state":
		return m.cmdState(), false

	case "/trace":
		m.trace = !m.trace
		if m.trace {
			return []string{"[Trace output enabled.]"}, false
		}
		return []string{"[Trace output disabled.]"}, false

	default:
		return []string{fmt.Sprintf("[Unknown command: %s. Type /help for available commands.]", cmd)}, false
	}
}

func cmdHelp() []string {
	return []string{
		"Type the number of an action and press Enter.",
		"",
		"System:",
		"  /quit   Exit game",
		"  /help   Show this help",
		"  /state  Show room, inventory and turn count",
		"  /trace  Toggle effect trace output",
		"",
		"Navigation: PgUp/PgDn to scroll, Up/Down for input history",
	}
}

func (m *Model) cmdState() []string {
	inv := state.InventoryList(m.engine.Player)
	items := "(empty)"
	if len(inv) > 0 {
		items = strings.Join(inv, ", ")
	}
	return []string{
		fmt.Sprintf("[Turn: %d]", m.engine.Turns),
		fmt.Sprintf("[Room: %s]", m.engine.Player.Room),
		fmt.Sprintf("[Inventory: %s]", items),
	}
}

func formatTrace(result types.Result) string {
	return fmt.Sprintf("[trace] action %d: %s %s", result.Index, result.Effect.Kind, result.Effect.Target)
}

// viewportKeyMap returns a viewport keymap with Up/Down disabled
// (we use those for input history).
func viewportKeyMap() viewport.KeyMap {
	return viewport.KeyMap{
		PageDown:     key.NewBinding(key.WithKeys("pgdown")),
		PageUp:       key.NewBinding(key.WithKeys("pgup")),
		HalfPageDown: key.NewBinding(key.WithKeys("ctrl+d")),
		HalfPageUp:   key.NewBinding(key.WithKeys("ctrl+u")),
		Up:           key.NewBinding(key.WithDisabled()),
		Down:         key.NewBinding(key.WithDisabled()),
	}
}
