package otpfield

// Accept decides whether a proposed edit may replace the current value.
// A proposal is rejected as a whole when it holds any rune outside 0-9; an
// all-digit proposal is kept and cut down to its first maxDigits digits.
// The empty string is always accepted.
func Accept(proposed string, maxDigits int) (string, bool) {
	if !DigitsOnly(proposed) {
		return "", false
	}
	if maxDigits < 0 {
		maxDigits = 0
	}
	// digits are single-byte, so byte and rune offsets agree here
	if len(proposed) > maxDigits {
		proposed = proposed[:maxDigits]
	}
	return proposed, true
}

// DigitsOnly reports whether s consists solely of ASCII decimal digits.
func DigitsOnly(s string) bool {
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}
