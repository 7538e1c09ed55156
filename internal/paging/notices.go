package paging

import (
	"fmt"
	"strings"

	"github.com/mmcdole/pixa/internal/domain"
)

func invalidQueryNotice(query string, err error) domain.Notice {
	return domain.Notice{
		Kind:    domain.NoticeWarning,
		Reason:  domain.ReasonInvalidQuery,
		Message: "Warning! Search must not be empty and must contain at least 3 characters",
		Query:   query,
		Timeout: domain.NoticeTimeout,
		Err:     err,
	}
}

func foundNotice(query string, gen uint64, totalHits int) domain.Notice {
	return domain.Notice{
		Kind:       domain.NoticeSuccess,
		Reason:     domain.ReasonFound,
		Message:    fmt.Sprintf("Hooray! We found %d images", totalHits),
		Query:      query,
		Generation: gen,
		Timeout:    domain.NoticeTimeout,
	}
}

func noResultsNotice(query string, gen uint64) domain.Notice {
	return domain.Notice{
		Kind:       domain.NoticeFailure,
		Reason:     domain.ReasonNoResults,
		Message:    "Sorry, there are no images matching your search query. Please try again",
		Query:      query,
		Generation: gen,
		Timeout:    domain.NoticeTimeout,
	}
}

func endOfResultsNotice(query string, gen uint64) domain.Notice {
	return domain.Notice{
		Kind:   domain.NoticeWarning,
		Reason: domain.ReasonEndOfResults,
		Message: fmt.Sprintf("We're sorry, but you've reached the end of search %q. Please start a new search",
			strings.ToUpper(query)),
		Query:      query,
		Generation: gen,
		Timeout:    domain.EndNoticeTimeout,
	}
}

func fetchFailedNotice(query string, gen uint64, fe *domain.FetchError) domain.Notice {
	var msg string
	switch fe.Kind {
	case domain.ServerRejected:
		msg = fmt.Sprintf("Sorry, an error occurred - %d. Try again", fe.StatusCode)
	case domain.NoResponse:
		msg = "Sorry, the request was made, but no response was received. Try again"
	default:
		msg = "Something happened in setting up the request that triggered an error. Try again"
	}
	return domain.Notice{
		Kind:       domain.NoticeFailure,
		Reason:     domain.ReasonFetchFailed,
		Message:    msg,
		Query:      query,
		Generation: gen,
		Timeout:    domain.NoticeTimeout,
		Err:        fe,
	}
}
