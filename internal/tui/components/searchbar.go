package components

import (
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/mmcdole/pixa/internal/tui/styles"
)

// maxSuggestions caps the history suggestions shown under the input
const maxSuggestions = 3

// SuggestFunc returns remembered queries matching the typed input
type SuggestFunc func(input string, n int) []string

// SearchBar is the search form: a text input plus history suggestions
type SearchBar struct {
	input       textinput.Model
	suggest     SuggestFunc
	suggestions []string
	choice      int // -1 when no suggestion is selected
	width       int
}

// NewSearchBar creates a search bar; suggest may be nil
func NewSearchBar(suggest SuggestFunc) SearchBar {
	ti := textinput.New()
	ti.Placeholder = "Search images..."
	ti.Prompt = "⌕ "
	ti.PromptStyle = styles.SearchPromptStyle
	ti.CharLimit = 100

	return SearchBar{input: ti, suggest: suggest, choice: -1}
}

// Focus gives the input keyboard focus
func (s *SearchBar) Focus() tea.Cmd {
	return s.input.Focus()
}

// Blur removes keyboard focus
func (s *SearchBar) Blur() {
	s.input.Blur()
	s.suggestions = nil
	s.choice = -1
}

// Focused reports whether the input has focus
func (s SearchBar) Focused() bool {
	return s.input.Focused()
}

// SetWidth sets the rendered width
func (s *SearchBar) SetWidth(w int) {
	s.width = w
	s.input.Width = w - 6
}

// Value returns the raw typed value, or the highlighted suggestion
func (s SearchBar) Value() string {
	if s.choice >= 0 && s.choice < len(s.suggestions) {
		return s.suggestions[s.choice]
	}
	return s.input.Value()
}

// Reset clears the input, like a form reset after submit
func (s *SearchBar) Reset() {
	s.input.SetValue("")
	s.suggestions = nil
	s.choice = -1
}

// Update handles input events, returns (bar, cmd, submitted)
func (s SearchBar) Update(msg tea.Msg) (SearchBar, tea.Cmd, bool) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		switch keyMsg.String() {
		case "enter":
			return s, nil, true
		case "down", "ctrl+n":
			if len(s.suggestions) > 0 {
				s.choice = (s.choice + 1) % len(s.suggestions)
			}
			return s, nil, false
		case "up", "ctrl+p":
			if len(s.suggestions) > 0 {
				s.choice--
				if s.choice < -1 {
					s.choice = len(s.suggestions) - 1
				}
			}
			return s, nil, false
		}
	}

	before := s.input.Value()
	var cmd tea.Cmd
	s.input, cmd = s.input.Update(msg)
	if s.input.Value() != before {
		s.refreshSuggestions()
	}
	return s, cmd, false
}

func (s *SearchBar) refreshSuggestions() {
	s.choice = -1
	if s.suggest == nil || strings.TrimSpace(s.input.Value()) == "" {
		s.suggestions = nil
		return
	}
	s.suggestions = s.suggest(s.input.Value(), maxSuggestions)
}

// Suggestions returns the current suggestions
func (s SearchBar) Suggestions() []string {
	return s.suggestions
}

// View renders the bar and, when focused, its suggestions
func (s SearchBar) View() string {
	style := styles.SearchBarStyle
	if s.input.Focused() {
		style = styles.SearchBarFocusedStyle
	}
	if s.width > 2 {
		style = style.Width(s.width - 2)
	}

	var b strings.Builder
	b.WriteString(style.Render(s.input.View()))
	if s.input.Focused() {
		for i, sug := range s.suggestions {
			b.WriteString("\n")
			if i == s.choice {
				b.WriteString(styles.AccentStyle.Render("  › " + sug))
			} else {
				b.WriteString(styles.SuggestionStyle.Render("    " + sug))
			}
		}
	}
	return b.String()
}
