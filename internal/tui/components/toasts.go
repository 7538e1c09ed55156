package components

import (
	"strings"
	"time"

	"github.com/mmcdole/pixa/internal/domain"
	"github.com/mmcdole/pixa/internal/tui/styles"
)

// maxToasts caps how many notices are stacked at once
const maxToasts = 3

// Toast is a notice on screen
type Toast struct {
	ID      int
	Notice  domain.Notice
	Expires time.Time
}

// Toasts is a small stack of timed notifications, newest last
type Toasts struct {
	items  []Toast
	nextID int
}

// Push adds a notice and returns its toast ID
func (t *Toasts) Push(n domain.Notice, now time.Time) int {
	t.nextID++
	timeout := n.Timeout
	if timeout <= 0 {
		timeout = domain.NoticeTimeout
	}
	t.items = append(t.items, Toast{ID: t.nextID, Notice: n, Expires: now.Add(timeout)})
	if len(t.items) > maxToasts {
		t.items = t.items[len(t.items)-maxToasts:]
	}
	return t.nextID
}

// Dismiss removes the toast with id
func (t *Toasts) Dismiss(id int) {
	for i, item := range t.items {
		if item.ID == id {
			t.items = append(t.items[:i], t.items[i+1:]...)
			return
		}
	}
}

// Expire drops every toast past its deadline
func (t *Toasts) Expire(now time.Time) {
	kept := t.items[:0]
	for _, item := range t.items {
		if now.Before(item.Expires) {
			kept = append(kept, item)
		}
	}
	t.items = kept
}

// Items returns the toasts on screen, oldest first
func (t Toasts) Items() []Toast {
	return t.items
}

// View renders the stack, one line per toast
func (t Toasts) View(width int) string {
	if len(t.items) == 0 {
		return ""
	}
	lines := make([]string, 0, len(t.items))
	for _, item := range t.items {
		lines = append(lines, renderNotice(item.Notice, width))
	}
	return strings.Join(lines, "\n")
}

func renderNotice(n domain.Notice, width int) string {
	msg := styles.Truncate(n.Message, width-2)
	switch n.Kind {
	case domain.NoticeSuccess:
		return styles.ToastSuccessStyle.Render(msg)
	case domain.NoticeWarning:
		return styles.ToastWarningStyle.Render(msg)
	default:
		return styles.ToastFailureStyle.Render(msg)
	}
}
