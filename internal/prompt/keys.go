package prompt

import (
	"github.com/charmbracelet/bubbles/key"

	"github.com/unkn0wn-root/otpfield/internal/bindings"
)

type helpKeys struct {
	submit key.Binding
	clear  key.Binding
	paste  key.Binding
	style  key.Binding
	mask   key.Binding
	quit   key.Binding
}

func newHelpKeys(m *bindings.Map) helpKeys {
	return helpKeys{
		submit: key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "submit")),
		clear:  m.KeyBinding(bindings.ActionClear),
		paste:  m.KeyBinding(bindings.ActionPaste),
		style:  m.KeyBinding(bindings.ActionToggleStyle),
		mask:   m.KeyBinding(bindings.ActionToggleMask),
		quit:   m.KeyBinding(bindings.ActionQuit),
	}
}

func (k helpKeys) ShortHelp() []key.Binding {
	return []key.Binding{k.submit, k.clear, k.paste, k.quit}
}

func (k helpKeys) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.submit, k.clear, k.paste},
		{k.style, k.mask, k.quit},
	}
}
