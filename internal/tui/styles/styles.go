package styles

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
)

// Color palette
var (
	PixGreen   = lipgloss.Color("#48C774")
	SlateDark  = lipgloss.Color("#1F2937")
	SlateLight = lipgloss.Color("#374151")
	DimGray    = lipgloss.Color("#6B7280")
	LightGray  = lipgloss.Color("#9CA3AF")
	White      = lipgloss.Color("#F9FAFB")
	Amber      = lipgloss.Color("#F59E0B")
	Red        = lipgloss.Color("#EF4444")
	Blue       = lipgloss.Color("#3B82F6")
)

// SpinnerFrames is the braille spinner used outside Bubble Tea
var SpinnerFrames = []string{"⠋", "⠙", "⠹", "⠸", "⠼", "⠴", "⠦", "⠧", "⠇", "⠏"}

// Text styles
var (
	TitleStyle = lipgloss.NewStyle().
			Foreground(White).
			Bold(true)

	SubtitleStyle = lipgloss.NewStyle().
			Foreground(LightGray)

	DimStyle = lipgloss.NewStyle().
			Foreground(DimGray)

	AccentStyle = lipgloss.NewStyle().
			Foreground(PixGreen)

	ErrorStyle = lipgloss.NewStyle().
			Foreground(Red)
)

// Search bar
var (
	SearchBarStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(DimGray).
			Padding(0, 1)

	SearchBarFocusedStyle = lipgloss.NewStyle().
				Border(lipgloss.RoundedBorder()).
				BorderForeground(PixGreen).
				Padding(0, 1)

	SearchPromptStyle = lipgloss.NewStyle().
				Foreground(PixGreen).
				Bold(true)

	SuggestionStyle = lipgloss.NewStyle().
			Foreground(DimGray)
)

// Photo cards
var (
	CardStyle = lipgloss.NewStyle().
			Foreground(LightGray).
			PaddingLeft(2)

	CardSelectedStyle = lipgloss.NewStyle().
				Foreground(White).
				Background(SlateLight).
				PaddingLeft(1).
				Border(lipgloss.ThickBorder(), false, false, false, true).
				BorderForeground(PixGreen)

	StatStyle = lipgloss.NewStyle().
			Foreground(PixGreen)
)

// Load more control
var (
	LoadMoreStyle = lipgloss.NewStyle().
			Foreground(SlateDark).
			Background(PixGreen).
			Bold(true).
			Padding(0, 2)

	EndOfResultsStyle = lipgloss.NewStyle().
				Foreground(DimGray).
				Italic(true)
)

// Toast styles per notice kind
var (
	toastBase = lipgloss.NewStyle().
			Foreground(SlateDark).
			Padding(0, 1).
			Bold(true)

	ToastSuccessStyle = toastBase.Background(PixGreen)
	ToastWarningStyle = toastBase.Background(Amber)
	ToastFailureStyle = toastBase.Background(Red).Foreground(White)
)

// Help and filter
var (
	HelpKeyStyle = lipgloss.NewStyle().
			Foreground(PixGreen)

	HelpDescStyle = lipgloss.NewStyle().
			Foreground(DimGray)

	FilterStyle = lipgloss.NewStyle().
			Foreground(PixGreen)

	FilterPromptStyle = lipgloss.NewStyle().
				Foreground(PixGreen).
				Bold(true)

	MatchHighlightStyle = lipgloss.NewStyle().
				Foreground(Amber).
				Bold(true)

	SpinnerStyle = lipgloss.NewStyle().
			Foreground(PixGreen)
)

// Truncate truncates a string to the given display width with ellipsis
func Truncate(s string, width int) string {
	if width <= 0 {
		return ""
	}
	return ansi.Truncate(s, width, "…")
}
