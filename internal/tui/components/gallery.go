package components

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/mmcdole/pixa/internal/domain"
	"github.com/mmcdole/pixa/internal/trigger"
	"github.com/mmcdole/pixa/internal/tui/styles"
	"github.com/sahilm/fuzzy"
)

// Layout constants for the gallery
const (
	// Each card: title line, stats line, url line, spacer
	CardHeight = 4

	// Line reserved for the filter bar when active
	FilterLines = 1

	// SentinelTarget names the end-of-gallery sentinel in intersection entries
	SentinelTarget = "gallery-end"
)

// Gallery is a scrollable list of photo cards
type Gallery struct {
	photos []domain.Photo

	// Selection
	cursor     int
	offset     int
	maxVisible int

	// Dimensions
	width  int
	height int

	// How close to the end (in cards) the sentinel sits
	prefetch int

	// Filter state
	filterActive bool
	filterInput  textinput.Model
	filteredIdx  []int // indices into photos
	matches      map[int][]int
}

// NewGallery creates a gallery with the sentinel prefetch cards from the end
func NewGallery(prefetch int) Gallery {
	ti := textinput.New()
	ti.Placeholder = "filter by tag..."
	ti.Prompt = "/ "
	ti.PromptStyle = styles.FilterPromptStyle
	ti.TextStyle = styles.FilterStyle

	return Gallery{
		prefetch:    prefetch,
		filterInput: ti,
		maxVisible:  1,
	}
}

// SetPhotos replaces the content, used for the first page of a search
func (g *Gallery) SetPhotos(photos []domain.Photo) {
	g.photos = append([]domain.Photo(nil), photos...)
	g.cursor = 0
	g.offset = 0
	g.clearFilter()
}

// Append adds the next page below the current content
func (g *Gallery) Append(photos []domain.Photo) {
	g.photos = append(g.photos, photos...)
	if g.filterActive {
		g.applyFilter()
	}
}

// Clear empties the gallery
func (g *Gallery) Clear() {
	g.SetPhotos(nil)
}

// Len returns the number of loaded photos
func (g Gallery) Len() int {
	return len(g.photos)
}

// SetSize updates the component dimensions
func (g *Gallery) SetSize(width, height int) {
	g.width = width
	g.height = height
	g.recalcMaxVisible()
	g.ensureVisible()
}

func (g *Gallery) recalcMaxVisible() {
	h := g.height
	if g.filterActive {
		h -= FilterLines
	}
	g.maxVisible = h / CardHeight
	if g.maxVisible < 1 {
		g.maxVisible = 1
	}
}

// visible returns the indices into photos currently listed
func (g Gallery) visible() []int {
	if g.filterActive && g.filterInput.Value() != "" {
		return g.filteredIdx
	}
	idx := make([]int, len(g.photos))
	for i := range idx {
		idx[i] = i
	}
	return idx
}

func (g Gallery) itemCount() int {
	if g.filterActive && g.filterInput.Value() != "" {
		return len(g.filteredIdx)
	}
	return len(g.photos)
}

// Selected returns the photo under the cursor
func (g Gallery) Selected() (domain.Photo, bool) {
	idx := g.visible()
	if g.cursor < 0 || g.cursor >= len(idx) {
		return domain.Photo{}, false
	}
	return g.photos[idx[g.cursor]], true
}

// Cursor returns the cursor position in the listed items
func (g Gallery) Cursor() int {
	return g.cursor
}

// MoveCursor moves the cursor by delta, clamped
func (g *Gallery) MoveCursor(delta int) {
	g.SetCursor(g.cursor + delta)
}

// SetCursor sets the cursor position, clamped
func (g *Gallery) SetCursor(pos int) {
	max := g.itemCount() - 1
	if max < 0 {
		g.cursor = 0
		g.offset = 0
		return
	}
	if pos < 0 {
		pos = 0
	}
	if pos > max {
		pos = max
	}
	g.cursor = pos
	g.ensureVisible()
}

// PageSize returns how many cards fit on screen
func (g Gallery) PageSize() int {
	return g.maxVisible
}

func (g *Gallery) ensureVisible() {
	if g.cursor < g.offset {
		g.offset = g.cursor
	}
	if g.cursor >= g.offset+g.maxVisible {
		g.offset = g.cursor - g.maxVisible + 1
	}
	if g.offset < 0 {
		g.offset = 0
	}
}

// Sentinel reports whether the end-of-gallery sentinel is on screen. It sits
// prefetch cards before the last card. Filtered views never report it.
func (g Gallery) Sentinel() trigger.Entry {
	entry := trigger.Entry{Target: SentinelTarget}
	if g.filterActive || len(g.photos) == 0 {
		return entry
	}
	lastShown := g.offset + g.maxVisible - 1
	entry.Intersecting = lastShown >= len(g.photos)-1-g.prefetch
	return entry
}

// === Filter ===

// FilterActive reports whether the filter bar is open
func (g Gallery) FilterActive() bool {
	return g.filterActive
}

// StartFilter opens the filter bar
func (g *Gallery) StartFilter() tea.Cmd {
	g.filterActive = true
	g.filterInput.SetValue("")
	g.recalcMaxVisible()
	return g.filterInput.Focus()
}

// StopFilter closes the filter bar and restores the cursor onto the same photo
func (g *Gallery) StopFilter() {
	selected := -1
	if idx := g.visible(); g.cursor < len(idx) {
		selected = idx[g.cursor]
	}
	g.clearFilter()
	g.recalcMaxVisible()
	if selected >= 0 {
		g.SetCursor(selected)
	}
}

func (g *Gallery) clearFilter() {
	g.filterActive = false
	g.filterInput.SetValue("")
	g.filterInput.Blur()
	g.filteredIdx = nil
	g.matches = nil
}

// UpdateFilter forwards input to the filter bar
func (g *Gallery) UpdateFilter(msg tea.Msg) tea.Cmd {
	var cmd tea.Cmd
	g.filterInput, cmd = g.filterInput.Update(msg)
	g.applyFilter()
	return cmd
}

// SetFilter sets the filter text directly
func (g *Gallery) SetFilter(query string) {
	g.filterActive = true
	g.filterInput.SetValue(query)
	g.recalcMaxVisible()
	g.applyFilter()
}

func (g *Gallery) applyFilter() {
	query := g.filterInput.Value()
	if query == "" {
		g.filteredIdx = nil
		g.matches = nil
		return
	}

	lines := make([]string, len(g.photos))
	for i, p := range g.photos {
		lines[i] = strings.ToLower(p.TagLine())
	}

	found := fuzzy.Find(strings.ToLower(query), lines)

	g.filteredIdx = make([]int, len(found))
	g.matches = make(map[int][]int, len(found))
	for i, m := range found {
		g.filteredIdx[i] = m.Index
		g.matches[m.Index] = m.MatchedIndexes
	}

	// Reset cursor to first match
	g.cursor = 0
	g.offset = 0
}

// === Rendering ===

// View renders the visible cards
func (g Gallery) View() string {
	var b strings.Builder

	if g.filterActive {
		b.WriteString(g.filterInput.View())
		b.WriteString("\n")
	}

	idx := g.visible()
	if len(idx) == 0 {
		if g.filterActive && g.filterInput.Value() != "" {
			b.WriteString(styles.DimStyle.Render("  no photos match the filter"))
		}
		return b.String()
	}

	end := g.offset + g.maxVisible
	if end > len(idx) {
		end = len(idx)
	}
	for i := g.offset; i < end; i++ {
		b.WriteString(g.renderCard(idx[i], i == g.cursor))
		if i < end-1 {
			b.WriteString("\n")
		}
	}
	return b.String()
}

func (g Gallery) renderCard(i int, selected bool) string {
	p := g.photos[i]
	width := g.width - 4
	if width < 20 {
		width = 20
	}

	tags := g.highlightTags(i)
	title := fmt.Sprintf("#%d  %s", i+1, tags)
	size := styles.DimStyle.Render(fmt.Sprintf("%d×%d", p.Width, p.Height))

	stats := fmt.Sprintf("%s %d  %s %d  %s %d  %s %d",
		styles.StatStyle.Render("Likes"), p.Likes,
		styles.StatStyle.Render("Views"), p.Views,
		styles.StatStyle.Render("Comments"), p.Comments,
		styles.StatStyle.Render("Downloads"), p.Downloads)
	if p.User != "" {
		stats += styles.DimStyle.Render("  by " + p.User)
	}

	lines := []string{
		styles.Truncate(title+"  "+size, width),
		styles.Truncate(stats, width),
		styles.DimStyle.Render(styles.Truncate(p.WebformatURL, width)),
		"",
	}
	card := lipgloss.JoinVertical(lipgloss.Left, lines...)

	if selected {
		return styles.CardSelectedStyle.Width(width).Render(card)
	}
	return styles.CardStyle.Width(width).Render(card)
}

// highlightTags renders the tag line with filter matches emphasised
func (g Gallery) highlightTags(i int) string {
	line := g.photos[i].TagLine()
	matched := g.matches[i]
	if len(matched) == 0 {
		return line
	}

	set := make(map[int]bool, len(matched))
	for _, m := range matched {
		set[m] = true
	}

	var b strings.Builder
	for pos, r := range line {
		if set[pos] {
			b.WriteString(styles.MatchHighlightStyle.Render(string(r)))
		} else {
			b.WriteRune(r)
		}
	}
	return b.String()
}
