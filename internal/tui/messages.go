package tui

import (
	"github.com/mmcdole/pixa/internal/domain"
	"github.com/mmcdole/pixa/internal/paging"
)

// Message types for the TUI

// ErrMsg represents an error
type ErrMsg struct {
	Err     error
	Context string
}

// Error implements the error interface
func (e ErrMsg) Error() string {
	if e.Context != "" {
		return e.Context + ": " + e.Err.Error()
	}
	return e.Err.Error()
}

// SubmitMsg starts a search as if typed into the search bar
type SubmitMsg struct {
	Query string
}

// PageFetchedMsg carries a completed fetch back to the event loop
type PageFetchedMsg struct {
	Outcome paging.Outcome
}

// NoticeMsg delivers a notice from the controller
type NoticeMsg struct {
	Notice domain.Notice
}

// ClearToastMsg dismisses a toast once its display time is over
type ClearToastMsg struct {
	ID int
}

// PhotoOpenedMsg signals that the viewer was launched
type PhotoOpenedMsg struct {
	Photo domain.Photo
}

// HistoryRecordedMsg signals that a query was saved to history
type HistoryRecordedMsg struct {
	Query string
}

// TickMsg is sent periodically to animate the spinner
type TickMsg struct{}

// ClearStatusMsg clears the status line
type ClearStatusMsg struct{}
