package otpfield

import tea "github.com/charmbracelet/bubbletea"

// KeyboardType is the input hint handed through to the field. Terminals have
// no soft keyboard, so the only visible effect is masking.
type KeyboardType int

const (
	KeyboardNumber KeyboardType = iota
	// KeyboardNumberPassword masks filled slots.
	KeyboardNumberPassword
)

// ImeAction picks which KeyboardActions callback Enter triggers.
type ImeAction int

const (
	ActionDone ImeAction = iota
	ActionGo
	ActionNone
)

type KeyboardOptions struct {
	Type   KeyboardType
	Action ImeAction
}

// KeyboardActions receive the current value when the matching action fires.
// A nil callback makes the action a no-op.
type KeyboardActions struct {
	OnDone func(value string) tea.Cmd
	OnGo   func(value string) tea.Cmd
}

func (a KeyboardActions) run(action ImeAction, value string) tea.Cmd {
	var fn func(string) tea.Cmd
	switch action {
	case ActionDone:
		fn = a.OnDone
	case ActionGo:
		fn = a.OnGo
	case ActionNone:
		return nil
	}
	if fn == nil {
		return nil
	}
	return fn(value)
}
