package prompt

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/help"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/sirupsen/logrus"

	"github.com/unkn0wn-root/otpfield"
	"github.com/unkn0wn-root/otpfield/internal/bindings"
	"github.com/unkn0wn-root/otpfield/internal/telemetry"
	"github.com/unkn0wn-root/otpfield/internal/theme"
)

type Config struct {
	Title     string
	Subtitle  string
	Digits    int
	Style     otpfield.Style
	Mask      bool
	MaskGlyph string
	Theme     *theme.Theme
	Bindings  *bindings.Map
	Span      telemetry.SessionSpan
	Logger    *logrus.Logger
	// Clipboard defaults to the system clipboard.
	Clipboard func() (string, error)
}

// Result is what the prompt ended with.
type Result struct {
	Code      string
	Submitted bool
}

// entry is shared between copies of Model so the field's change callback
// has somewhere stable to write.
type entry struct {
	code   string
	result Result
}

type Model struct {
	cfg       Config
	th        theme.Theme
	entry     *entry
	field     otpfield.Model
	help      help.Model
	keys      helpKeys
	status    string
	statusErr bool
	width     int
}

type submitMsg struct{ value string }

type clipboardMsg struct {
	text string
	err  error
}

func New(cfg Config) Model {
	if cfg.Bindings == nil {
		cfg.Bindings = bindings.DefaultMap()
	}
	if cfg.Span == nil {
		_, cfg.Span = telemetry.Noop().Start(context.Background(), telemetry.SessionStart{})
	}
	if cfg.Logger == nil {
		cfg.Logger = logrus.New()
		cfg.Logger.SetOutput(io.Discard)
	}
	if cfg.Clipboard == nil {
		cfg.Clipboard = clipboard.ReadAll
	}
	th := theme.DefaultTheme()
	if cfg.Theme != nil {
		th = *cfg.Theme
	}
	if strings.TrimSpace(cfg.Title) == "" {
		cfg.Title = "Enter verification code"
	}

	m := Model{
		cfg:   cfg,
		th:    th,
		entry: &entry{},
		help:  newHelp(th),
		keys:  newHelpKeys(cfg.Bindings),
	}
	m.field = otpfield.New(m.fieldConfig(cfg.Style, cfg.Mask))
	return m
}

func newHelp(th theme.Theme) help.Model {
	h := help.New()
	h.Styles.ShortKey = th.HelpKey
	h.Styles.ShortDesc = th.HelpDesc
	h.Styles.ShortSeparator = th.HelpSeparator
	h.Styles.FullKey = th.HelpKey
	h.Styles.FullDesc = th.HelpDesc
	h.Styles.FullSeparator = th.HelpSeparator
	return h
}

func (m Model) fieldConfig(style otpfield.Style, mask bool) otpfield.Config {
	kb := otpfield.KeyboardOptions{Type: otpfield.KeyboardNumber, Action: otpfield.ActionDone}
	if mask {
		kb.Type = otpfield.KeyboardNumberPassword
	}
	e := m.entry
	span := m.cfg.Span
	logger := m.cfg.Logger
	return otpfield.Config{
		MaxDigits:   m.cfg.Digits,
		AccentColor: m.th.OTPAccent,
		TextColor:   m.th.OTPText,
		Style:       style,
		MaskGlyph:   m.cfg.MaskGlyph,
		Keyboard:    kb,
		Actions: otpfield.KeyboardActions{
			OnDone: func(value string) tea.Cmd {
				return func() tea.Msg { return submitMsg{value: value} }
			},
		},
		OnValueChange: func(value string) {
			e.code = value
			span.RecordEdit(len(value))
			logger.WithField("length", len(value)).Debug("code edited")
		},
	}
}

func (m Model) Init() tea.Cmd {
	return m.field.Init()
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		inner := msg.Width - m.th.AppFrame.GetHorizontalFrameSize()
		m.field.SetWidth(inner)
		m.help.Width = inner
		return m, nil
	case tea.KeyMsg:
		if action, ok := m.cfg.Bindings.Match(msg.String()); ok {
			return m.runAction(action)
		}
	case submitMsg:
		return m.submit(msg.value)
	case clipboardMsg:
		if msg.err != nil {
			m.setStatus(fmt.Sprintf("clipboard: %v", msg.err), true)
			m.cfg.Logger.WithError(msg.err).Warn("clipboard read failed")
			return m, nil
		}
		before := m.entry.code
		m.field.Paste(strings.TrimSpace(msg.text))
		m.field.SetValue(m.entry.code)
		if m.entry.code == before {
			m.setStatus("clipboard holds no usable code", true)
		} else {
			m.clearStatus()
		}
		return m, nil
	}

	var cmd tea.Cmd
	before := m.entry.code
	m.field, cmd = m.field.Update(msg)
	m.field.SetValue(m.entry.code)
	if m.entry.code != before {
		m.clearStatus()
	}
	return m, cmd
}

func (m Model) runAction(action bindings.ActionID) (tea.Model, tea.Cmd) {
	switch action {
	case bindings.ActionClear:
		if m.entry.code != "" {
			m.entry.code = ""
			m.cfg.Span.RecordEdit(0)
		}
		m.field.SetValue("")
		m.clearStatus()
	case bindings.ActionToggleStyle:
		cfg := m.field.Config()
		masked := cfg.Keyboard.Type == otpfield.KeyboardNumberPassword
		m.field.SetConfig(m.fieldConfig(cfg.Style.Next(), masked))
	case bindings.ActionToggleMask:
		cfg := m.field.Config()
		m.field.SetConfig(m.fieldConfig(cfg.Style, cfg.Keyboard.Type == otpfield.KeyboardNumber))
	case bindings.ActionPaste:
		read := m.cfg.Clipboard
		return m, func() tea.Msg {
			text, err := read()
			return clipboardMsg{text: text, err: err}
		}
	case bindings.ActionQuit:
		m.entry.result = Result{}
		m.cfg.Logger.Debug("prompt cancelled")
		return m, tea.Quit
	}
	return m, nil
}

// completeness is the host's call, the field accepts partial codes
func (m Model) submit(value string) (tea.Model, tea.Cmd) {
	digits := m.field.Config().MaxDigits
	if len(value) != digits {
		m.cfg.Span.RecordSubmit(false)
		m.setStatus(fmt.Sprintf("enter all %d digits", digits), true)
		return m, nil
	}
	m.cfg.Span.RecordSubmit(true)
	m.entry.result = Result{Code: value, Submitted: true}
	m.cfg.Logger.WithField("digits", digits).Info("code submitted")
	return m, tea.Quit
}

func (m *Model) setStatus(text string, isErr bool) {
	m.status = text
	m.statusErr = isErr
}

func (m *Model) clearStatus() {
	m.status = ""
	m.statusErr = false
}

func (m Model) Result() Result {
	return m.entry.result
}

func (m Model) Code() string {
	return m.entry.code
}

func (m Model) View() string {
	var status string
	switch {
	case m.status == "":
		status = m.th.StatusBar.Render(progress(len(m.entry.code), m.field.Config().MaxDigits))
	case m.statusErr:
		status = m.th.Error.Render(m.status)
	default:
		status = m.th.Success.Render(m.status)
	}

	parts := []string{m.th.Title.Render(m.cfg.Title)}
	if sub := strings.TrimSpace(m.cfg.Subtitle); sub != "" {
		parts = append(parts, m.th.Subtitle.Render(sub))
	}
	field := m.field
	if cfg := field.Config(); len(m.entry.code) == cfg.MaxDigits {
		cfg.AccentColor = m.th.OTPAccentFocus
		field.SetConfig(cfg)
	}
	parts = append(parts, "", field.View(), "", status, m.help.View(m.keys))

	body := lipgloss.JoinVertical(lipgloss.Center, parts...)
	return m.th.AppFrame.Render(body)
}

func progress(have, want int) string {
	return fmt.Sprintf("%d/%d digits", have, want)
}
