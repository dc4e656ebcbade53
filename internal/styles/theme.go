package styles

import "github.com/charmbracelet/lipgloss"

// palette is one terminal color scheme. Two instances exist, picked by
// background luminance; everything else styles against the adaptive
// colors below so individual styles never branch on the theme.
type palette struct {
	Primary   lipgloss.Color
	Secondary lipgloss.Color
	Accent    lipgloss.Color

	TextMuted lipgloss.Color

	Error  lipgloss.Color
	Border lipgloss.Color
}

var dark = palette{
	Primary:   lipgloss.Color("#957FB8"),
	Secondary: lipgloss.Color("#7FB4CA"),
	Accent:    lipgloss.Color("#FFA066"),
	TextMuted: lipgloss.Color("#64748B"),
	Error:     lipgloss.Color("#E46876"),
	Border:    lipgloss.Color("#27272A"),
}

var light = palette{
	Primary:   lipgloss.Color("#6F5E93"),
	Secondary: lipgloss.Color("#426F85"),
	Accent:    lipgloss.Color("#CC6D00"),
	TextMuted: lipgloss.Color("#A1A1AA"),
	Error:     lipgloss.Color("#C4304A"),
	Border:    lipgloss.Color("#E4E4E7"),
}

func adaptive(pick func(palette) lipgloss.Color) lipgloss.AdaptiveColor {
	return lipgloss.AdaptiveColor{
		Light: string(pick(light)),
		Dark:  string(pick(dark)),
	}
}

var (
	FgPrimary   = adaptive(func(p palette) lipgloss.Color { return p.Primary })
	FgSecondary = adaptive(func(p palette) lipgloss.Color { return p.Secondary })
	FgMuted     = adaptive(func(p palette) lipgloss.Color { return p.TextMuted })
	FgError     = adaptive(func(p palette) lipgloss.Color { return p.Error })
	Accent      = adaptive(func(p palette) lipgloss.Color { return p.Accent })
	BorderColor = adaptive(func(p palette) lipgloss.Color { return p.Border })
)

// InitTheme probes the terminal background once before the program starts.
// lipgloss caches the answer; probing after bubbletea takes over the tty
// returns garbage.
func InitTheme() {
	_ = lipgloss.HasDarkBackground()
}
