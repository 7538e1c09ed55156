package domain

import "strings"

// Photo is a single search hit as rendered in the gallery
type Photo struct {
	ID            int
	PageURL       string   // Photo page on the provider site
	PreviewURL    string   // Small thumbnail
	WebformatURL  string   // Medium size, used for the gallery card
	LargeImageURL string   // Opened by the viewer
	Tags          []string // e.g. "cat", "kitten", "pet"
	Likes         int
	Views         int
	Comments      int
	Downloads     int
	User          string
	Width         int
	Height        int
}

// TagLine returns the tags joined for display and filtering
func (p Photo) TagLine() string {
	return strings.Join(p.Tags, ", ")
}

// UnknownTotal marks a PageResult whose server did not report totalHits
const UnknownTotal = -1

// PageRequest identifies one page of one query
type PageRequest struct {
	Query   string
	Page    int // 1-based
	PerPage int
}

// PageResult is one normalized page of search results
type PageResult struct {
	Items []Photo

	// TotalHits is the number of hits reachable through the API for this
	// query, or UnknownTotal.
	TotalHits int

	// Total is the full match count, informational only
	Total int
}
