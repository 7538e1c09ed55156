package trigger

import "github.com/mmcdole/pixa/internal/paging"

// Manual is a "load more" control. It is shown only while paging and asks
// for exactly one page per press.
type Manual struct {
	pager Pager
}

// NewManual creates a manual trigger
func NewManual(pager Pager) *Manual {
	return &Manual{pager: pager}
}

func (m *Manual) Kind() Kind { return KindManual }

// Enabled reports whether the control should be visible
func (m *Manual) Enabled() bool {
	return m.pager.State() == paging.Paging
}

// Press asks for the next page. The controller refuses while a page is in
// flight, so repeated presses never duplicate a request.
func (m *Manual) Press() (*paging.Fetch, bool) {
	if !m.Enabled() {
		return nil, false
	}
	return m.pager.Next()
}

// Settle is a no-op; the manual control keeps no state of its own
func (m *Manual) Settle(paging.Outcome) {}

// Reset is a no-op
func (m *Manual) Reset() {}
