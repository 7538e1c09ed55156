package domain

import "time"

// NoticeKind selects the styling of a notification
type NoticeKind int

const (
	NoticeSuccess NoticeKind = iota
	NoticeWarning
	NoticeFailure
)

func (k NoticeKind) String() string {
	switch k {
	case NoticeSuccess:
		return "success"
	case NoticeWarning:
		return "warning"
	case NoticeFailure:
		return "failure"
	default:
		return "unknown"
	}
}

// NoticeReason says why a notification was emitted. Content states
// (no results, end of results) are reasons of their own and never carry an error.
type NoticeReason int

const (
	ReasonFound NoticeReason = iota
	ReasonNoResults
	ReasonEndOfResults
	ReasonInvalidQuery
	ReasonFetchFailed
)

// Display durations
const (
	NoticeTimeout    = 4 * time.Second
	EndNoticeTimeout = 5 * time.Second
)

// Notice is a user-facing notification event
type Notice struct {
	Kind       NoticeKind
	Reason     NoticeReason
	Message    string
	Query      string
	Generation uint64        // search session that produced it
	Timeout    time.Duration // how long the sink should display it
	Err        error         // set for ReasonInvalidQuery and ReasonFetchFailed only
}
