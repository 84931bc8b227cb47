package theme

import "github.com/charmbracelet/lipgloss"

type Theme struct {
	AppFrame       lipgloss.Style
	Title          lipgloss.Style
	Subtitle       lipgloss.Style
	HelpKey        lipgloss.Style
	HelpDesc       lipgloss.Style
	HelpSeparator  lipgloss.Style
	StatusBar      lipgloss.Style
	Error          lipgloss.Style
	Success        lipgloss.Style
	OTPAccent      lipgloss.Color
	OTPAccentFocus lipgloss.Color
	OTPText        lipgloss.Color
}

func DefaultTheme() Theme {
	accent := lipgloss.Color("#7D56F4")

	return Theme{
		AppFrame: lipgloss.NewStyle().
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("#403B59")).
			Padding(1, 2),
		Title: lipgloss.NewStyle().
			Foreground(accent).
			Bold(true),
		Subtitle:      lipgloss.NewStyle().Foreground(lipgloss.Color("#A6A1BB")),
		HelpKey:       lipgloss.NewStyle().Foreground(lipgloss.Color("#FF8B39")).Bold(true),
		HelpDesc:      lipgloss.NewStyle().Foreground(lipgloss.Color("#6E6A86")),
		HelpSeparator: lipgloss.NewStyle().Foreground(lipgloss.Color("#3A3547")),
		StatusBar:     lipgloss.NewStyle().Foreground(lipgloss.Color("#A6A1BB")),
		Error:         lipgloss.NewStyle().Foreground(lipgloss.Color("#FF6E6E")),
		Success:       lipgloss.NewStyle().Foreground(lipgloss.Color("#6EF17E")),
		// primary / on-surface of the palette
		OTPAccent:      accent,
		OTPAccentFocus: lipgloss.Color("#A78BFA"),
		OTPText:        lipgloss.Color("#E6E1FF"),
	}
}
