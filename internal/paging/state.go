package paging

// State is the position of a search in its lifecycle
type State int

const (
	// Idle means no query has been submitted
	Idle State = iota
	// FirstPage means a query was submitted and its first page is in flight
	FirstPage
	// Paging means more pages may be requested
	Paging
	// Exhausted is terminal until the next submission
	Exhausted
)

func (s State) String() string {
	switch s {
	case Idle:
		return "idle"
	case FirstPage:
		return "first-page"
	case Paging:
		return "paging"
	case Exhausted:
		return "exhausted"
	default:
		return "unknown"
	}
}
