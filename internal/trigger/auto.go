package trigger

import "github.com/mmcdole/pixa/internal/paging"

// Entry is one visibility change of an observed sentinel
type Entry struct {
	Target       string
	Intersecting bool
}

// Auto requests the next page when a sentinel near the end of the gallery
// becomes visible. It keeps its own in-flight flag because visibility can
// report again before the previous page arrives.
type Auto struct {
	pager    Pager
	inFlight *paging.Fetch
}

// NewAuto creates an automatic trigger
func NewAuto(pager Pager) *Auto {
	return &Auto{pager: pager}
}

func (a *Auto) Kind() Kind { return KindAuto }

// Enabled reports whether an intersection would currently request a page
func (a *Auto) Enabled() bool {
	return a.inFlight == nil && a.pager.State() == paging.Paging
}

// InFlight reports whether a fetch handed out by this trigger is unresolved
func (a *Auto) InFlight() bool {
	return a.inFlight != nil
}

// Observe handles a batch of entries. Each entry is considered on its own;
// at most one fetch is handed out while the previous one is unresolved.
func (a *Auto) Observe(entries []Entry) []*paging.Fetch {
	var fetches []*paging.Fetch
	for _, e := range entries {
		if f, ok := a.observe(e); ok {
			fetches = append(fetches, f)
		}
	}
	return fetches
}

func (a *Auto) observe(e Entry) (*paging.Fetch, bool) {
	if !e.Intersecting || !a.Enabled() {
		return nil, false
	}
	f, ok := a.pager.Next()
	if !ok {
		return nil, false
	}
	a.inFlight = f
	return f, true
}

// Settle clears the in-flight flag when o resolves the fetch this trigger
// handed out. Outcomes of other fetches are ignored.
func (a *Auto) Settle(o paging.Outcome) {
	if a.inFlight != nil && o.Fetch == a.inFlight {
		a.inFlight = nil
	}
}

// Reset forgets any in-flight fetch, used when a new search replaces the old one
func (a *Auto) Reset() {
	a.inFlight = nil
}
