package domain

import "context"

// PhotoSearcher issues exactly one paginated search request per call.
// Failures are always *FetchError.
type PhotoSearcher interface {
	SearchPhotos(ctx context.Context, req PageRequest) (*PageResult, error)
}

// NoticeSink receives notifications for display. Implementations must not block.
type NoticeSink interface {
	Notify(n Notice)
}

// NoticeFunc adapts a function to NoticeSink
type NoticeFunc func(n Notice)

// Notify calls f(n)
func (f NoticeFunc) Notify(n Notice) { f(n) }
