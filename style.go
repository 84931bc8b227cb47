package otpfield

import (
	"fmt"
	"strings"
)

// Style selects how each digit slot is drawn.
type Style int

const (
	// StyleBorderedBox draws a rounded outline around every digit.
	StyleBorderedBox Style = iota
	// StyleUnderline draws a rule under every digit.
	StyleUnderline
)

func (s Style) String() string {
	switch s {
	case StyleBorderedBox:
		return "bordered_box"
	case StyleUnderline:
		return "underline"
	}
	return fmt.Sprintf("Style(%d)", int(s))
}

func (s Style) Valid() bool {
	return s == StyleBorderedBox || s == StyleUnderline
}

// Next cycles to the other style.
func (s Style) Next() Style {
	if s == StyleBorderedBox {
		return StyleUnderline
	}
	return StyleBorderedBox
}

// ParseStyle accepts the names produced by String plus a few loose aliases
// used in settings files and flags.
func ParseStyle(raw string) (Style, error) {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "", "bordered_box", "bordered-box", "box", "bordered":
		return StyleBorderedBox, nil
	case "underline", "underlined", "line":
		return StyleUnderline, nil
	default:
		return StyleBorderedBox, fmt.Errorf("otpfield: unknown style %q", raw)
	}
}

func (s Style) MarshalText() ([]byte, error) {
	if !s.Valid() {
		return nil, fmt.Errorf("otpfield: invalid style %d", int(s))
	}
	return []byte(s.String()), nil
}

func (s *Style) UnmarshalText(text []byte) error {
	parsed, err := ParseStyle(string(text))
	if err != nil {
		return err
	}
	*s = parsed
	return nil
}
