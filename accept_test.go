package otpfield

import "testing"

func TestAccept(t *testing.T) {
	cases := []struct {
		name     string
		proposed string
		max      int
		want     string
		ok       bool
	}{
		{name: "empty clears", proposed: "", max: 6, want: "", ok: true},
		{name: "partial value", proposed: "123", max: 6, want: "123", ok: true},
		{name: "exact length", proposed: "123456", max: 6, want: "123456", ok: true},
		{name: "over length truncated", proposed: "123456", max: 4, want: "1234", ok: true},
		{name: "trailing letter", proposed: "123456a", max: 6, ok: false},
		{name: "leading letter", proposed: "a1", max: 6, ok: false},
		{name: "space", proposed: "12 34", max: 6, ok: false},
		{name: "sign", proposed: "-12", max: 6, ok: false},
		{name: "non-ascii digit", proposed: "12٣", max: 6, ok: false},
		{name: "fullwidth digit", proposed: "１２", max: 6, ok: false},
		{name: "zero max", proposed: "12", max: 0, want: "", ok: true},
		{name: "negative max", proposed: "12", max: -3, want: "", ok: true},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, ok := Accept(tc.proposed, tc.max)
			if ok != tc.ok {
				t.Fatalf("Accept(%q, %d) ok = %v, want %v", tc.proposed, tc.max, ok, tc.ok)
			}
			if ok && got != tc.want {
				t.Fatalf("Accept(%q, %d) = %q, want %q", tc.proposed, tc.max, got, tc.want)
			}
		})
	}
}

func TestAcceptRejectsWholeProposal(t *testing.T) {
	// a single bad rune must not be filtered out while the digits survive
	if got, ok := Accept("1a2b3c", 6); ok {
		t.Fatalf("expected rejection, got %q", got)
	}
}

func TestDigitsOnly(t *testing.T) {
	if !DigitsOnly("") {
		t.Fatalf("empty string should count as digits only")
	}
	if !DigitsOnly("0123456789") {
		t.Fatalf("expected all ascii digits to pass")
	}
	if DigitsOnly("12.5") {
		t.Fatalf("expected decimal point to fail")
	}
}
