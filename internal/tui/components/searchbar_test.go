package components

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func typeInto(s SearchBar, text string) SearchBar {
	for _, r := range text {
		s, _, _ = s.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}})
	}
	return s
}

func TestSearchBarSubmit(t *testing.T) {
	s := NewSearchBar(nil)
	s.Focus()
	s = typeInto(s, "cats")

	_, _, submitted := s.Update(tea.KeyMsg{Type: tea.KeyEnter})
	assert.True(t, submitted)
	assert.Equal(t, "cats", s.Value())

	s.Reset()
	assert.Empty(t, s.Value())
}

func TestSearchBarSuggestions(t *testing.T) {
	var asked []string
	suggest := func(input string, n int) []string {
		asked = append(asked, input)
		return []string{"mountain lake", "mountains"}
	}

	s := NewSearchBar(suggest)
	s.Focus()
	s = typeInto(s, "mou")

	assert.Equal(t, []string{"m", "mo", "mou"}, asked)
	require.Len(t, s.Suggestions(), 2)
	assert.Equal(t, "mou", s.Value(), "typed text wins until a suggestion is chosen")

	s, _, _ = s.Update(tea.KeyMsg{Type: tea.KeyDown})
	assert.Equal(t, "mountain lake", s.Value())
	s, _, _ = s.Update(tea.KeyMsg{Type: tea.KeyDown})
	assert.Equal(t, "mountains", s.Value())
	s, _, _ = s.Update(tea.KeyMsg{Type: tea.KeyUp})
	s, _, _ = s.Update(tea.KeyMsg{Type: tea.KeyUp})
	assert.Equal(t, "mou", s.Value())

	assert.Contains(t, s.View(), "mountain lake")

	s.Blur()
	assert.Empty(t, s.Suggestions())
}
