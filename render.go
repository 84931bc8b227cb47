package otpfield

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"
)

// Layout in terminal cells. A slot is square in layout units (48x48) which
// comes out at 7 columns by 3 rows; the 12 unit gap is a quarter of that.
const (
	SlotWidth  = 7
	SlotHeight = 3
	SlotGap    = 2
)

const DefaultMaskGlyph = "•"

var (
	DefaultAccentColor lipgloss.TerminalColor = lipgloss.Color("#7D56F4")
	DefaultTextColor   lipgloss.TerminalColor = lipgloss.Color("#E6E1FF")
)

// Palette holds the two colours a slot is painted with.
type Palette struct {
	Accent lipgloss.TerminalColor
	Text   lipgloss.TerminalColor
}

func (p Palette) withDefaults() Palette {
	if p.Accent == nil {
		p.Accent = DefaultAccentColor
	}
	if p.Text == nil {
		p.Text = DefaultTextColor
	}
	return p
}

// Slots derives what each of the maxDigits positions shows: the digit at that
// index, or "" past the end of value.
func Slots(value string, maxDigits int) []string {
	if maxDigits <= 0 {
		return nil
	}
	out := make([]string, maxDigits)
	for i := range out {
		if i < len(value) {
			out[i] = value[i : i+1]
		}
	}
	return out
}

// RenderSlot draws a single SlotWidth x SlotHeight cell block.
func RenderSlot(char string, style Style, palette Palette) string {
	palette = palette.withDefaults()
	digit := lipgloss.NewStyle().
		Bold(true).
		Foreground(palette.Text).
		Render(char)

	switch style {
	case StyleBorderedBox:
		return lipgloss.NewStyle().
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(palette.Accent).
			Width(SlotWidth-2).
			Height(SlotHeight-2).
			Align(lipgloss.Center, lipgloss.Center).
			Render(digit)
	case StyleUnderline:
		return lipgloss.NewStyle().
			Border(lipgloss.ThickBorder(), false, false, true, false).
			BorderForeground(palette.Accent).
			Width(SlotWidth).
			Height(SlotHeight-1).
			Align(lipgloss.Center, lipgloss.Bottom).
			Render(digit)
	}
	panic(fmt.Sprintf("otpfield: unhandled style %v", style))
}

// Render lays out the whole row for value. When width is positive the row
// is centred within it.
func Render(value string, cfg Config, width int) string {
	cfg = cfg.normalise()
	slots := Slots(value, cfg.MaxDigits)
	if len(slots) == 0 {
		return ""
	}

	mask := cfg.Keyboard.Type == KeyboardNumberPassword
	glyph := maskGlyph(cfg.MaskGlyph)
	gap := lipgloss.NewStyle().MarginLeft(SlotGap)
	palette := Palette{Accent: cfg.AccentColor, Text: cfg.TextColor}

	blocks := make([]string, len(slots))
	for i, char := range slots {
		if mask && char != "" {
			char = glyph
		}
		block := RenderSlot(char, cfg.Style, palette)
		if i > 0 {
			block = gap.Render(block)
		}
		blocks[i] = block
	}

	row := lipgloss.JoinHorizontal(lipgloss.Center, blocks...)
	if width > 0 && lipgloss.Width(row) < width {
		row = lipgloss.PlaceHorizontal(width, lipgloss.Center, row)
	}
	return row
}

// RowWidth is the number of columns a row of n slots occupies.
func RowWidth(n int) int {
	if n <= 0 {
		return 0
	}
	return n*SlotWidth + (n-1)*SlotGap
}

// a mask glyph has to fit one column or the slot content shifts off centre
func maskGlyph(glyph string) string {
	glyph = strings.TrimSpace(glyph)
	if glyph == "" || runewidth.StringWidth(glyph) != 1 {
		return DefaultMaskGlyph
	}
	return glyph
}
