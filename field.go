package otpfield

import (
	"github.com/charmbracelet/bubbles/cursor"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

const (
	DefaultMaxDigits = 6
	MinDigits        = 4
	MaxDigits        = 6
)

// Config is supplied by the host and may be swapped between renders with
// SetConfig. Zero values fall back to the defaults noted per field.
type Config struct {
	// MaxDigits is the number of slots and the longest value emitted.
	// 0 means DefaultMaxDigits; negative values render no slots.
	MaxDigits int
	// AccentColor paints borders and underlines. nil means DefaultAccentColor.
	AccentColor lipgloss.TerminalColor
	// TextColor paints digits. nil means DefaultTextColor.
	TextColor lipgloss.TerminalColor
	Style     Style
	// MaskGlyph replaces filled digits when Keyboard.Type is
	// KeyboardNumberPassword. It must be one column wide.
	MaskGlyph string

	Keyboard KeyboardOptions
	Actions  KeyboardActions

	// OnValueChange receives every accepted edit, already truncated.
	OnValueChange func(value string)
}

func (c Config) normalise() Config {
	switch {
	case c.MaxDigits == 0:
		c.MaxDigits = DefaultMaxDigits
	case c.MaxDigits < 0:
		c.MaxDigits = 0
	}
	if !c.Style.Valid() {
		c.Style = StyleBorderedBox
	}
	if c.AccentColor == nil {
		c.AccentColor = DefaultAccentColor
	}
	if c.TextColor == nil {
		c.TextColor = DefaultTextColor
	}
	return c
}

// Model is a Bubble Tea component that shows a row of digit slots over an
// undrawn textinput. The textinput keeps focus and does the key handling;
// the value itself belongs to the host and comes back in through SetValue.
type Model struct {
	cfg   Config
	value string
	width int
	input textinput.Model
}

func New(cfg Config) Model {
	m := Model{cfg: cfg.normalise(), input: newHiddenInput()}
	m.input.Focus()
	return m
}

// the inner input is never drawn; its styles are blanked once here so a
// stray View call still prints nothing visible
func newHiddenInput() textinput.Model {
	ti := textinput.New()
	ti.Prompt = ""
	ti.Placeholder = ""
	ti.CharLimit = 0
	ti.ShowSuggestions = false
	ti.TextStyle = lipgloss.NewStyle()
	ti.PlaceholderStyle = lipgloss.NewStyle()
	ti.Cursor.Style = lipgloss.NewStyle()
	ti.Cursor.TextStyle = lipgloss.NewStyle()
	ti.Cursor.SetMode(cursor.CursorHide)
	// the host decides where clipboard text comes from and hands it to Paste
	ti.KeyMap.Paste.SetEnabled(false)
	return ti
}

func (m Model) Init() tea.Cmd {
	return nil
}

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	if !m.input.Focused() {
		return m, nil
	}
	if key, ok := msg.(tea.KeyMsg); ok && key.Type == tea.KeyEnter {
		return m, m.cfg.Actions.run(m.cfg.Keyboard.Action, m.value)
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	proposed := m.input.Value()
	m.syncInput()
	if proposed != m.value {
		m.propose(proposed)
	}
	return m, cmd
}

// Paste proposes the current value with text appended, as if typed.
func (m Model) Paste(text string) {
	if !m.input.Focused() || text == "" {
		return
	}
	m.propose(m.value + text)
}

func (m Model) propose(proposed string) {
	next, ok := Accept(proposed, m.cfg.MaxDigits)
	if !ok {
		return
	}
	if m.cfg.OnValueChange != nil {
		m.cfg.OnValueChange(next)
	}
}

func (m Model) View() string {
	return Render(m.value, m.cfg, m.width)
}

func (m Model) Value() string {
	return m.value
}

// SetValue installs the host-owned value for the next render.
func (m *Model) SetValue(value string) {
	m.value = value
	m.syncInput()
}

func (m Model) Config() Config {
	return m.cfg
}

func (m *Model) SetConfig(cfg Config) {
	m.cfg = cfg.normalise()
}

func (m *Model) SetWidth(width int) {
	if width < 0 {
		width = 0
	}
	m.width = width
}

func (m *Model) Focus() tea.Cmd {
	return m.input.Focus()
}

func (m *Model) Blur() {
	m.input.Blur()
}

func (m Model) Focused() bool {
	return m.input.Focused()
}

// keep the inner input equal to the host value with the caret parked at the
// end; nothing shows where the caret is, so it never wanders mid-code
func (m *Model) syncInput() {
	if m.input.Value() != m.value {
		m.input.SetValue(m.value)
	}
	m.input.CursorEnd()
}
