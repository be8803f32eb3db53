package viz

import "github.com/charmbracelet/lipgloss"

// Theme defines the color scheme of the preview chrome. Model colors come
// from the scene itself unless Mono is set.
type Theme struct {
	Name      string
	Primary   lipgloss.Color
	Secondary lipgloss.Color
	Accent    lipgloss.Color
	Text      lipgloss.Color
	Muted     lipgloss.Color
	Success   lipgloss.Color
	Warning   lipgloss.Color
	Error     lipgloss.Color
	// Mono draws every edge in Primary.
	Mono bool
}

var (
	ThemeClassroom = Theme{
		Name:      "classroom",
		Primary:   lipgloss.Color("#4ecdc4"),
		Secondary: lipgloss.Color("#45b7d1"),
		Accent:    lipgloss.Color("#ffe66d"),
		Text:      lipgloss.Color("#f7fff7"),
		Muted:     lipgloss.Color("#6c7a89"),
		Success:   lipgloss.Color("#96ceb4"),
		Warning:   lipgloss.Color("#ffcc5c"),
		Error:     lipgloss.Color("#ff6b6b"),
	}

	ThemeChalkboard = Theme{
		Name:      "chalkboard",
		Primary:   lipgloss.Color("#e8f5e9"),
		Secondary: lipgloss.Color("#a5d6a7"),
		Accent:    lipgloss.Color("#fff59d"),
		Text:      lipgloss.Color("#ffffff"),
		Muted:     lipgloss.Color("#557755"),
		Success:   lipgloss.Color("#a5d6a7"),
		Warning:   lipgloss.Color("#fff59d"),
		Error:     lipgloss.Color("#ef9a9a"),
		Mono:      true,
	}

	ThemeBlueprint = Theme{
		Name:      "blueprint",
		Primary:   lipgloss.Color("#8ecae6"),
		Secondary: lipgloss.Color("#219ebc"),
		Accent:    lipgloss.Color("#ffb703"),
		Text:      lipgloss.Color("#e0f0ff"),
		Muted:     lipgloss.Color("#4488aa"),
		Success:   lipgloss.Color("#00ff88"),
		Warning:   lipgloss.Color("#ffcc00"),
		Error:     lipgloss.Color("#ff4444"),
		Mono:      true,
	}

	ThemeSunset = Theme{
		Name:      "sunset",
		Primary:   lipgloss.Color("#ff6b6b"),
		Secondary: lipgloss.Color("#feca57"),
		Accent:    lipgloss.Color("#ff9ff3"),
		Text:      lipgloss.Color("#fff5f5"),
		Muted:     lipgloss.Color("#8b6b8c"),
		Success:   lipgloss.Color("#5fd068"),
		Warning:   lipgloss.Color("#ffc048"),
		Error:     lipgloss.Color("#ff4757"),
	}

	ThemeMinimal = Theme{
		Name:      "minimal",
		Primary:   lipgloss.Color("#ffffff"),
		Secondary: lipgloss.Color("#cccccc"),
		Accent:    lipgloss.Color("#0088ff"),
		Text:      lipgloss.Color("#ffffff"),
		Muted:     lipgloss.Color("#888888"),
		Success:   lipgloss.Color("#00ff00"),
		Warning:   lipgloss.Color("#ffaa00"),
		Error:     lipgloss.Color("#ff0000"),
		Mono:      true,
	}

	Themes = []Theme{
		ThemeClassroom,
		ThemeChalkboard,
		ThemeBlueprint,
		ThemeSunset,
		ThemeMinimal,
	}
)

// ThemeIndex returns the position of the named theme, or 0.
func ThemeIndex(name string) int {
	for i, t := range Themes {
		if t.Name == name {
			return i
		}
	}
	return 0
}

func ThemeNames() []string {
	names := make([]string, len(Themes))
	for i, t := range Themes {
		names[i] = t.Name
	}
	return names
}
