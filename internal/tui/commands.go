package tui

import (
	"context"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/mmcdole/pixa/internal/domain"
	"github.com/mmcdole/pixa/internal/history"
	"github.com/mmcdole/pixa/internal/opener"
	"github.com/mmcdole/pixa/internal/paging"
)

// Command factories for async operations

// FetchPageCmd executes a fetch ticket off the event loop
func FetchPageCmd(ctrl *paging.Controller, f *paging.Fetch, timeout time.Duration) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()

		return PageFetchedMsg{Outcome: ctrl.Execute(ctx, f)}
	}
}

// WaitForNoticeCmd reads the next notice from the channel
func WaitForNoticeCmd(ch <-chan domain.Notice) tea.Cmd {
	if ch == nil {
		return nil
	}
	return func() tea.Msg {
		n, ok := <-ch
		if !ok {
			return nil
		}
		return NoticeMsg{Notice: n}
	}
}

// ClearToastCmd dismisses toast id after delay
func ClearToastCmd(id int, delay time.Duration) tea.Cmd {
	return tea.Tick(delay, func(t time.Time) tea.Msg {
		return ClearToastMsg{ID: id}
	})
}

// OpenPhotoCmd opens the large version of a photo in the image viewer
func OpenPhotoCmd(o *opener.Opener, p domain.Photo) tea.Cmd {
	return func() tea.Msg {
		url := p.LargeImageURL
		if url == "" {
			url = p.WebformatURL
		}
		if err := o.Open(url); err != nil {
			return ErrMsg{Err: err, Context: "opening photo"}
		}
		return PhotoOpenedMsg{Photo: p}
	}
}

// RecordHistoryCmd saves a submitted query
func RecordHistoryCmd(store *history.Store, query string) tea.Cmd {
	if store == nil {
		return nil
	}
	return func() tea.Msg {
		if err := store.Record(query); err != nil {
			return ErrMsg{Err: err, Context: "saving history"}
		}
		return HistoryRecordedMsg{Query: query}
	}
}

// TickCmd returns a command that sends a tick after a delay
func TickCmd(delay time.Duration) tea.Cmd {
	return tea.Tick(delay, func(t time.Time) tea.Msg {
		return TickMsg{}
	})
}

// ClearStatusCmd returns a command that clears status after a delay
func ClearStatusCmd(delay time.Duration) tea.Cmd {
	return tea.Tick(delay, func(t time.Time) tea.Msg {
		return ClearStatusMsg{}
	})
}
