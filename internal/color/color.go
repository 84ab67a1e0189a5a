package color

import (
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Palette.
var (
	Primary = lipgloss.AdaptiveColor{Light: "#5A56E0", Dark: "#7571F9"}
	Success = lipgloss.AdaptiveColor{Light: "#05A167", Dark: "#05D176"}
	Error   = lipgloss.AdaptiveColor{Light: "#E06A56", Dark: "#F97171"}
	Warning = lipgloss.AdaptiveColor{Light: "#E0A956", Dark: "#F9C171"}
	Info    = lipgloss.AdaptiveColor{Light: "#5A9FE0", Dark: "#71B7F9"}
	Subtle  = lipgloss.AdaptiveColor{Light: "#9B9B9B", Dark: "#5C5C5C"}
	Border  = lipgloss.AdaptiveColor{Light: "#D1D1D1", Dark: "#3C3C3C"}
	Text    = lipgloss.AdaptiveColor{Light: "#1A1A1A", Dark: "#DDDDDD"}

	HighlightBg  = lipgloss.AdaptiveColor{Light: "#F9E79F", Dark: "#7D6608"}
	StatusBarBg  = lipgloss.AdaptiveColor{Light: "#E4E4E4", Dark: "#262626"}
	StatusInfoBg = lipgloss.AdaptiveColor{Light: "#D6EAF8", Dark: "#1B4F72"}
)

// Styles.
var (
	AppStyle = lipgloss.NewStyle()

	HeaderStyle = lipgloss.NewStyle().Bold(true).Foreground(Primary)
	LabelStyle  = lipgloss.NewStyle().Foreground(Subtle)
	ValueStyle  = lipgloss.NewStyle().Foreground(Text).Bold(true)

	PanelStyle        = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(Border)
	PanelHoveredStyle = PanelStyle.BorderForeground(Info)
	PanelActiveStyle  = PanelStyle.BorderStyle(lipgloss.ThickBorder()).BorderForeground(Primary)
	PanelTitleStyle   = lipgloss.NewStyle().Bold(true).Foreground(Primary)

	TabStyle       = lipgloss.NewStyle().Padding(0, 1).Foreground(Subtle)
	TabActiveStyle = lipgloss.NewStyle().Padding(0, 1).Bold(true).Foreground(Primary).Underline(true)

	SuccessTextStyle = lipgloss.NewStyle().Foreground(Success)
	ErrorTextStyle   = lipgloss.NewStyle().Foreground(Error)
	WarningTextStyle = lipgloss.NewStyle().Foreground(Warning)
	InfoTextStyle    = lipgloss.NewStyle().Foreground(Info)
	SubtleTextStyle  = lipgloss.NewStyle().Foreground(Subtle)

	HighlightStyle = lipgloss.NewStyle().Background(HighlightBg).Bold(true)
	SelectedStyle  = lipgloss.NewStyle().Foreground(Primary).Bold(true)

	DialogStyle = lipgloss.NewStyle().Border(lipgloss.DoubleBorder()).BorderForeground(Primary).Padding(0, 1)
	InputStyle  = lipgloss.NewStyle().Foreground(Text)
	CursorStyle = lipgloss.NewStyle().Reverse(true)

	StatusBarStyle       = lipgloss.NewStyle().Background(StatusBarBg).Foreground(Text)
	StatusMessageInfo    = lipgloss.NewStyle().Background(StatusInfoBg).Foreground(Text)
	StatusMessageSuccess = lipgloss.NewStyle().Background(StatusBarBg).Foreground(Success).Bold(true)
	StatusMessageError   = lipgloss.NewStyle().Background(StatusBarBg).Foreground(Error).Bold(true)
	StatusMessageWarning = lipgloss.NewStyle().Background(StatusBarBg).Foreground(Warning).Bold(true)
)

// ThemeEnv forces the theme: "dark" or "light".
const ThemeEnv = "WUKONG_THEME"

// Initialize fixes the background lipgloss assumes when resolving adaptive
// colors.
func Initialize(isDarkMode bool) {
	lipgloss.SetHasDarkBackground(isDarkMode)
}

// DetectDarkMode reads ThemeEnv and falls back to querying the terminal.
func DetectDarkMode() bool {
	switch strings.ToLower(strings.TrimSpace(os.Getenv(ThemeEnv))) {
	case "dark":
		return true
	case "light":
		return false
	}
	return lipgloss.HasDarkBackground()
}
