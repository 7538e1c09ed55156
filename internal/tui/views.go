package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/lipgloss"
	"github.com/mmcdole/pixa/internal/paging"
	"github.com/mmcdole/pixa/internal/trigger"
	"github.com/mmcdole/pixa/internal/tui/styles"
)

// View renders the application
func (m Model) View() string {
	if !m.Ready {
		return "Loading..."
	}
	if m.ShowHelp {
		return m.renderHelp()
	}

	sections := []string{
		m.renderHeader(),
		m.SearchBar.View(),
	}
	if toasts := m.Toasts.View(m.Width); toasts != "" {
		sections = append(sections, toasts)
	}
	sections = append(sections, m.renderGallery(), m.renderFooter())

	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

func (m Model) renderHeader() string {
	title := styles.TitleStyle.Render("pixa")

	s := m.Controller.Session()
	var info string
	switch {
	case s.Query == "":
		info = "type a query and press enter"
	case m.Gallery.Len() > 0:
		info = fmt.Sprintf("%q  page %d  %d loaded", s.Query, s.Page, m.Gallery.Len())
		if s.TotalHits >= 0 {
			info += fmt.Sprintf(" of %d", s.TotalHits)
		}
	default:
		info = fmt.Sprintf("%q", s.Query)
	}

	return title + "  " + styles.DimStyle.Render(styles.Truncate(info, m.Width-8))
}

func (m Model) renderGallery() string {
	h := m.galleryHeight()
	view := m.Gallery.View()
	if m.Gallery.Len() == 0 && m.Controller.State() == paging.FirstPage {
		view = RenderSpinner(m.SpinnerFrame) + styles.DimStyle.Render(" searching...")
	}
	return lipgloss.NewStyle().Height(h).MaxHeight(h).Render(view)
}

func (m Model) galleryHeight() int {
	chrome := HeaderHeight + SearchBarHeight + FooterHeight + len(m.Toasts.Items())
	if m.Focus == FocusSearch {
		chrome += len(m.SearchBar.Suggestions())
	}
	h := m.Height - chrome
	if h < 1 {
		h = 1
	}
	return h
}

// renderFooter shows the paging control on the first line and hints or
// status on the second
func (m Model) renderFooter() string {
	return m.renderPagingLine() + "\n" + m.renderStatusLine()
}

func (m Model) renderPagingLine() string {
	if m.Controller.InFlight() && m.Gallery.Len() > 0 {
		return RenderSpinner(m.SpinnerFrame) + styles.DimStyle.Render(" loading more...")
	}

	switch m.Controller.State() {
	case paging.Paging:
		if m.Trigger.Kind() == trigger.KindManual && m.Trigger.Enabled() {
			return styles.LoadMoreStyle.Render("Load more") + styles.DimStyle.Render("  press m")
		}
		return styles.DimStyle.Render("scroll for more")
	case paging.Exhausted:
		if m.Gallery.Len() > 0 {
			return styles.EndOfResultsStyle.Render("end of results")
		}
	}
	return ""
}

func (m Model) renderStatusLine() string {
	if m.StatusMsg != "" {
		if m.StatusIsErr {
			return styles.ErrorStyle.Render(styles.Truncate(m.StatusMsg, m.Width))
		}
		return styles.AccentStyle.Render(styles.Truncate(m.StatusMsg, m.Width))
	}
	return renderBindings(Keys.ShortHelp())
}

func (m Model) renderHelp() string {
	var b strings.Builder
	b.WriteString(styles.TitleStyle.Render("Keys"))
	b.WriteString("\n\n")
	for _, column := range Keys.FullHelp() {
		for _, binding := range column {
			h := binding.Help()
			b.WriteString(fmt.Sprintf("  %s  %s\n",
				styles.HelpKeyStyle.Width(8).Render(h.Key),
				styles.HelpDescStyle.Render(h.Desc)))
		}
		b.WriteString("\n")
	}
	b.WriteString(styles.DimStyle.Render("press any key to close"))
	return b.String()
}

func renderBindings(bindings []key.Binding) string {
	parts := make([]string, 0, len(bindings))
	for _, binding := range bindings {
		h := binding.Help()
		parts = append(parts, styles.HelpKeyStyle.Render(h.Key)+" "+styles.HelpDescStyle.Render(h.Desc))
	}
	return strings.Join(parts, "  ")
}

// RenderSpinner renders a loading spinner
func RenderSpinner(frame int) string {
	return styles.SpinnerStyle.Render(styles.SpinnerFrames[frame%len(styles.SpinnerFrames)])
}
