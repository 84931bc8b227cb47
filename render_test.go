package otpfield

import (
	"os"
	"strings"
	"testing"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
	"github.com/muesli/termenv"
)

func TestMain(m *testing.M) {
	lipgloss.SetColorProfile(termenv.Ascii)
	os.Exit(m.Run())
}

func renderedLines(s string) []string {
	return strings.Split(ansi.Strip(s), "\n")
}

func TestSlotsExactCount(t *testing.T) {
	for _, max := range []int{1, 4, 5, 6, 8} {
		if got := len(Slots("", max)); got != max {
			t.Fatalf("Slots(\"\", %d) produced %d slots", max, got)
		}
	}
	if got := Slots("123", 0); got != nil {
		t.Fatalf("expected no slots for zero digits, got %v", got)
	}
	if got := Slots("123", -1); got != nil {
		t.Fatalf("expected no slots for negative digits, got %v", got)
	}
}

func TestSlotsByIndex(t *testing.T) {
	got := Slots("1234", 6)
	want := []string{"1", "2", "3", "4", "", ""}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("slot %d = %q, want %q (all %q)", i, got[i], want[i], got)
		}
	}
}

func TestSlotsIgnoresOverflow(t *testing.T) {
	got := Slots("1234567", 4)
	if len(got) != 4 || got[3] != "4" {
		t.Fatalf("unexpected slots %q", got)
	}
}

func TestRenderSlotBorderedBox(t *testing.T) {
	lines := renderedLines(RenderSlot("7", StyleBorderedBox, Palette{}))
	want := []string{"╭─────╮", "│  7  │", "╰─────╯"}
	if len(lines) != len(want) {
		t.Fatalf("expected %d lines, got %q", len(want), lines)
	}
	for i := range want {
		if lines[i] != want[i] {
			t.Fatalf("line %d = %q, want %q", i, lines[i], want[i])
		}
	}
}

func TestRenderSlotUnderline(t *testing.T) {
	lines := renderedLines(RenderSlot("7", StyleUnderline, Palette{}))
	want := []string{"       ", "   7   ", "━━━━━━━"}
	if len(lines) != len(want) {
		t.Fatalf("expected %d lines, got %q", len(want), lines)
	}
	for i := range want {
		if lines[i] != want[i] {
			t.Fatalf("line %d = %q, want %q", i, lines[i], want[i])
		}
	}
}

func TestRenderSlotStylesDiffer(t *testing.T) {
	box := RenderSlot("1", StyleBorderedBox, Palette{})
	line := RenderSlot("1", StyleUnderline, Palette{})
	if box == line {
		t.Fatalf("expected the two styles to render differently")
	}
	if box != RenderSlot("1", StyleBorderedBox, Palette{}) {
		t.Fatalf("expected rendering to be deterministic")
	}
}

func TestRenderSlotSquareFootprint(t *testing.T) {
	for _, style := range []Style{StyleBorderedBox, StyleUnderline} {
		for _, char := range []string{"", "5"} {
			out := RenderSlot(char, style, Palette{})
			if w := lipgloss.Width(out); w != SlotWidth {
				t.Fatalf("%s slot %q width %d, want %d", style, char, w, SlotWidth)
			}
			if h := lipgloss.Height(out); h != SlotHeight {
				t.Fatalf("%s slot %q height %d, want %d", style, char, h, SlotHeight)
			}
		}
	}
}

func TestRenderEmptyValueShowsBlankSlots(t *testing.T) {
	lines := renderedLines(Render("", Config{MaxDigits: 6}, 0))
	if got := strings.Count(lines[0], "╭"); got != 6 {
		t.Fatalf("expected 6 slots, got %d in %q", got, lines[0])
	}
	if strings.Trim(lines[1], "│ ") != "" {
		t.Fatalf("expected blank slots, got %q", lines[1])
	}
}

func TestRenderPartialValue(t *testing.T) {
	lines := renderedLines(Render("1234", Config{MaxDigits: 6}, 0))
	want := "│  1  │  │  2  │  │  3  │  │  4  │  │     │  │     │"
	if lines[1] != want {
		t.Fatalf("middle line = %q, want %q", lines[1], want)
	}
	if got := strings.Count(lines[2], "╰"); got != 6 {
		t.Fatalf("expected 6 slots, got %d", got)
	}
}

func TestRenderNeverAddsExtraSlot(t *testing.T) {
	for _, max := range []int{4, 5, 6} {
		out := Render("123456789", Config{MaxDigits: max, Style: StyleUnderline}, 0)
		lines := renderedLines(out)
		last := lines[len(lines)-1]
		if got := strings.Count(last, strings.Repeat("━", SlotWidth)); got != max {
			t.Fatalf("max %d rendered %d underline slots", max, got)
		}
		if w := lipgloss.Width(out); w != RowWidth(max) {
			t.Fatalf("max %d row width %d, want %d", max, w, RowWidth(max))
		}
	}
}

func TestRenderMasksFilledSlots(t *testing.T) {
	cfg := Config{
		MaxDigits: 4,
		Keyboard:  KeyboardOptions{Type: KeyboardNumberPassword},
	}
	lines := renderedLines(Render("12", cfg, 0))
	if strings.ContainsAny(lines[1], "12") {
		t.Fatalf("expected digits to be masked, got %q", lines[1])
	}
	if got := strings.Count(lines[1], DefaultMaskGlyph); got != 2 {
		t.Fatalf("expected 2 mask glyphs, got %d in %q", got, lines[1])
	}
}

func TestRenderMaskGlyphFallsBackWhenWide(t *testing.T) {
	cfg := Config{
		MaxDigits: 4,
		MaskGlyph: "＊",
		Keyboard:  KeyboardOptions{Type: KeyboardNumberPassword},
	}
	lines := renderedLines(Render("1", cfg, 0))
	if !strings.Contains(lines[1], DefaultMaskGlyph) {
		t.Fatalf("expected wide glyph to fall back to default, got %q", lines[1])
	}
}

func TestRenderCentresWithinWidth(t *testing.T) {
	out := Render("", Config{MaxDigits: 4}, 60)
	lines := renderedLines(out)
	pad := (60 - RowWidth(4)) / 2
	if !strings.HasPrefix(lines[0], strings.Repeat(" ", pad)+"╭") {
		t.Fatalf("expected %d columns of left padding, got %q", pad, lines[0])
	}
	if w := lipgloss.Width(out); w != 60 {
		t.Fatalf("expected row to fill width 60, got %d", w)
	}
}

func TestRenderNoSlots(t *testing.T) {
	if out := Render("12", Config{MaxDigits: -1}, 40); out != "" {
		t.Fatalf("expected empty render, got %q", out)
	}
}
