// Package session holds the mutable state of one search, from submission
// until it is exhausted or replaced by the next submission.
package session

import (
	"strings"
	"unicode/utf8"

	"github.com/mmcdole/pixa/internal/domain"
)

// DefaultPerPage is the page size used when none is configured
const DefaultPerPage = 40

// SearchSession tracks query, page cursor and the size of the last fetch.
// It is owned by a single paging.Controller and is not safe for concurrent use.
type SearchSession struct {
	Query               string
	Page                int // 1-based
	PerPage             int
	LastPageResultCount int
	TotalHits           int // domain.UnknownTotal until reported

	fetched bool
}

// New returns an idle session with the given page size
func New(perPage int) *SearchSession {
	if perPage <= 0 {
		perPage = DefaultPerPage
	}
	return &SearchSession{
		Page:      1,
		PerPage:   perPage,
		TotalHits: domain.UnknownTotal,
	}
}

// SetQuery starts a new search: page back to 1, fetch results cleared
func (s *SearchSession) SetQuery(q string) {
	s.Query = q
	s.Page = 1
	s.LastPageResultCount = 0
	s.TotalHits = domain.UnknownTotal
	s.fetched = false
}

// AdvancePage moves the cursor to the following page
func (s *SearchSession) AdvancePage() {
	s.Page++
}

// RecordFetchResult stores the size of the page just fetched and the
// server-reported total (domain.UnknownTotal if absent)
func (s *SearchSession) RecordFetchResult(count, total int) {
	s.LastPageResultCount = count
	s.TotalHits = total
	s.fetched = true
}

// Fetched reports whether a fetch has completed for the current query
func (s SearchSession) Fetched() bool {
	return s.fetched
}

// IsExhausted reports whether no further page exists for the current query.
// A known total decides alone; a short last page is the fallback signal.
func (s SearchSession) IsExhausted() bool {
	if !s.fetched {
		return false
	}
	if s.TotalHits != domain.UnknownTotal {
		return s.Page*s.PerPage >= s.TotalHits
	}
	return s.LastPageResultCount < s.PerPage
}

// Request returns the request for the current page
func (s SearchSession) Request() domain.PageRequest {
	return domain.PageRequest{Query: s.Query, Page: s.Page, PerPage: s.PerPage}
}

// NextRequest returns the request for the page after the current one
// without moving the cursor
func (s SearchSession) NextRequest() domain.PageRequest {
	req := s.Request()
	req.Page++
	return req
}

// Loaded returns how many items the pages up to the cursor account for
func (s SearchSession) Loaded() int {
	if !s.fetched {
		return 0
	}
	return (s.Page-1)*s.PerPage + s.LastPageResultCount
}

// ValidateQuery trims raw and rejects terms shorter than domain.MinQueryLength
func ValidateQuery(raw string) (string, error) {
	q := strings.TrimSpace(raw)
	if utf8.RuneCountInString(q) < domain.MinQueryLength {
		return "", &domain.ValidationError{Query: q, Err: domain.ErrQueryTooShort}
	}
	return q, nil
}
