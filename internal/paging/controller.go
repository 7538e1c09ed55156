// Package paging drives one search at a time through its pages.
//
// A Controller owns the SearchSession and moves it through
// Idle -> FirstPage -> Paging -> Exhausted. Work is split in three phases so
// that a UI event loop can keep all state changes on its own goroutine:
//
//   - Submit / Next decide whether a fetch may start and hand out a Fetch ticket
//   - Execute performs the network call and touches no state
//   - Resolve applies the outcome, emits notices and returns an Update
//
// SubmitQuery and RequestNextPage compose the three phases for callers that
// can block.
package paging

import (
	"context"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/mmcdole/pixa/internal/domain"
	"github.com/mmcdole/pixa/internal/session"
)

// DefaultEndNoticeDelay lets the "found N" notice display before the
// end-of-search notice when the first page already holds every hit.
const DefaultEndNoticeDelay = 4100 * time.Millisecond

// Options configures a Controller
type Options struct {
	PerPage        int
	EndNoticeDelay time.Duration // zero uses DefaultEndNoticeDelay, negative emits immediately
	Scheduler      Scheduler     // nil uses time.AfterFunc
}

// Fetch is a ticket for one page request. It is only valid for the search
// generation it was issued in.
type Fetch struct {
	Generation uint64
	Request    domain.PageRequest
	First      bool
}

// Outcome is the result of executing a Fetch
type Outcome struct {
	Fetch  *Fetch
	Result *domain.PageResult
	Err    error
}

// Update describes what Resolve changed, for the render side
type Update struct {
	Generation uint64
	Query      string
	Page       int
	State      State

	// Reset is set on the first page of a new search: replace, don't append
	Reset  bool
	Photos []domain.Photo

	// Stale is set when the outcome belonged to a replaced search and was dropped
	Stale bool

	// Err is set when the fetch failed; state and page are unchanged
	Err *domain.FetchError
}

// Controller is the pagination state machine
type Controller struct {
	searcher  domain.PhotoSearcher
	sink      domain.NoticeSink
	scheduler Scheduler
	endDelay  time.Duration
	logger    *slog.Logger

	mu          sync.Mutex
	session     *session.SearchSession
	state       State
	inFlight    bool
	generation  uint64
	endNotified bool
	stopEnd     func() bool
}

// NewController creates a controller in the Idle state
func NewController(searcher domain.PhotoSearcher, sink domain.NoticeSink, opts Options, logger *slog.Logger) *Controller {
	if logger == nil {
		logger = slog.Default()
	}
	if opts.Scheduler == nil {
		opts.Scheduler = timerScheduler{}
	}
	if opts.EndNoticeDelay == 0 {
		opts.EndNoticeDelay = DefaultEndNoticeDelay
	}
	return &Controller{
		searcher:  searcher,
		sink:      sink,
		scheduler: opts.Scheduler,
		endDelay:  opts.EndNoticeDelay,
		logger:    logger,
		session:   session.New(opts.PerPage),
		state:     Idle,
	}
}

// State returns the current state
func (c *Controller) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// InFlight reports whether a fetch of the current search is unresolved
func (c *Controller) InFlight() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.inFlight
}

// Generation identifies the current search; it increases on every Submit
func (c *Controller) Generation() uint64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.generation
}

// Session returns a copy of the session state
func (c *Controller) Session() session.SearchSession {
	c.mu.Lock()
	defer c.mu.Unlock()
	return *c.session
}

// Submit starts a new search. Invalid queries leave everything untouched and
// return a *domain.ValidationError. Any earlier fetch still in flight is not
// cancelled; its outcome will be dropped as stale.
func (c *Controller) Submit(raw string) (*Fetch, error) {
	q, err := session.ValidateQuery(raw)
	if err != nil {
		c.logger.Debug("query rejected", "query", strings.TrimSpace(raw), "error", err)
		c.emit(invalidQueryNotice(strings.TrimSpace(raw), err))
		return nil, err
	}

	c.mu.Lock()
	c.generation++
	if c.stopEnd != nil {
		c.stopEnd()
		c.stopEnd = nil
	}
	c.session.SetQuery(q)
	c.state = FirstPage
	c.inFlight = true
	c.endNotified = false
	f := &Fetch{Generation: c.generation, Request: c.session.Request(), First: true}
	c.mu.Unlock()

	c.logger.Info("search submitted", "query", q, "generation", f.Generation)
	return f, nil
}

// Next hands out a ticket for the following page. It only does so from
// Paging with nothing in flight; otherwise it returns false and no request
// may be made.
func (c *Controller) Next() (*Fetch, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.state != Paging || c.inFlight {
		c.logger.Debug("next page ignored", "state", c.state, "inFlight", c.inFlight)
		return nil, false
	}
	c.inFlight = true
	return &Fetch{Generation: c.generation, Request: c.session.NextRequest()}, true
}

// Execute performs the network call for f
func (c *Controller) Execute(ctx context.Context, f *Fetch) Outcome {
	res, err := c.searcher.SearchPhotos(ctx, f.Request)
	if err == nil && res == nil {
		res = &domain.PageResult{TotalHits: domain.UnknownTotal}
	}
	return Outcome{Fetch: f, Result: res, Err: err}
}

// Resolve applies a completed fetch and emits the resulting notices
func (c *Controller) Resolve(o Outcome) Update {
	c.mu.Lock()
	u, notices := c.resolveLocked(o)
	c.mu.Unlock()

	for _, n := range notices {
		c.emit(n)
	}
	return u
}

func (c *Controller) resolveLocked(o Outcome) (Update, []domain.Notice) {
	f := o.Fetch
	if f.Generation != c.generation {
		c.logger.Debug("dropping stale page", "generation", f.Generation, "current", c.generation, "page", f.Request.Page)
		return Update{Generation: f.Generation, Stale: true, State: c.state}, nil
	}
	c.inFlight = false

	q := c.session.Query
	if o.Err != nil {
		fe := domain.AsFetchError(o.Err)
		c.logger.Warn("page fetch failed", "query", q, "page", f.Request.Page, "kind", fe.Kind, "error", fe)
		u := Update{Generation: f.Generation, Query: q, Page: c.session.Page, State: c.state, Err: fe}
		return u, []domain.Notice{fetchFailedNotice(q, f.Generation, fe)}
	}

	res := o.Result
	if !f.First {
		c.session.AdvancePage()
	}
	c.session.RecordFetchResult(len(res.Items), res.TotalHits)

	var notices []domain.Notice
	if f.First {
		if res.TotalHits == 0 || (res.TotalHits == domain.UnknownTotal && len(res.Items) == 0) {
			c.state = Exhausted
			c.endNotified = true
			notices = append(notices, noResultsNotice(q, f.Generation))
		} else {
			found := res.TotalHits
			if found == domain.UnknownTotal {
				found = len(res.Items)
			}
			notices = append(notices, foundNotice(q, f.Generation, found))
			c.state = Paging
			if c.session.IsExhausted() {
				c.state = Exhausted
				notices = append(notices, c.endOfResultsLocked(f.Generation, c.endDelay)...)
			}
		}
	} else if c.session.IsExhausted() {
		c.state = Exhausted
		notices = append(notices, c.endOfResultsLocked(f.Generation, 0)...)
	}

	c.logger.Info("page resolved",
		"query", q, "page", c.session.Page, "items", len(res.Items),
		"totalHits", res.TotalHits, "state", c.state)

	return Update{
		Generation: f.Generation,
		Query:      q,
		Page:       c.session.Page,
		State:      c.state,
		Reset:      f.First,
		Photos:     res.Items,
	}, notices
}

// endOfResultsLocked returns the end-of-search notice, or schedules it after
// delay. It is emitted at most once per search.
func (c *Controller) endOfResultsLocked(gen uint64, delay time.Duration) []domain.Notice {
	if c.endNotified {
		return nil
	}
	if delay <= 0 {
		c.endNotified = true
		return []domain.Notice{endOfResultsNotice(c.session.Query, gen)}
	}
	c.stopEnd = c.scheduler.AfterFunc(delay, func() { c.fireEndOfResults(gen) })
	return nil
}

func (c *Controller) fireEndOfResults(gen uint64) {
	c.mu.Lock()
	if gen != c.generation || c.endNotified {
		c.mu.Unlock()
		return
	}
	c.endNotified = true
	c.stopEnd = nil
	n := endOfResultsNotice(c.session.Query, gen)
	c.mu.Unlock()

	c.emit(n)
}

func (c *Controller) emit(n domain.Notice) {
	c.logger.Debug("notice", "kind", n.Kind, "reason", n.Reason, "message", n.Message)
	if c.sink != nil {
		c.sink.Notify(n)
	}
}

// SubmitQuery submits raw and fetches its first page, blocking until resolved
func (c *Controller) SubmitQuery(ctx context.Context, raw string) (Update, error) {
	f, err := c.Submit(raw)
	if err != nil {
		return Update{State: c.State()}, err
	}
	u := c.Resolve(c.Execute(ctx, f))
	if u.Err != nil {
		return u, u.Err
	}
	return u, nil
}

// RequestNextPage fetches the following page, blocking until resolved. It
// returns false without any network call unless the controller is Paging
// with nothing in flight.
func (c *Controller) RequestNextPage(ctx context.Context) (Update, bool) {
	f, ok := c.Next()
	if !ok {
		return Update{}, false
	}
	return c.Resolve(c.Execute(ctx, f)), true
}
