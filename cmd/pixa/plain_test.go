package main

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/mmcdole/pixa/internal/config"
	"github.com/mmcdole/pixa/internal/domain"
	"github.com/mmcdole/pixa/internal/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubSearcher struct {
	total int
	err   error
	pages []int
}

func (s *stubSearcher) SearchPhotos(ctx context.Context, req domain.PageRequest) (*domain.PageResult, error) {
	s.pages = append(s.pages, req.Page)
	if s.err != nil {
		return nil, s.err
	}
	start := (req.Page - 1) * req.PerPage
	n := min(req.PerPage, s.total-start)
	items := make([]domain.Photo, max(n, 0))
	for i := range items {
		items[i] = domain.Photo{ID: start + i + 1, Tags: []string{"sea"}, LargeImageURL: "https://cdn.example/large.jpg"}
	}
	return &domain.PageResult{Items: items, TotalHits: s.total, Total: s.total}, nil
}

func plainConfig() *config.Config {
	cfg := config.DefaultConfig()
	cfg.API.PerPage = 5
	return cfg
}

func TestPrintPagesStopsAtExhaustion(t *testing.T) {
	searcher := &stubSearcher{total: 12}
	var out, errOut bytes.Buffer

	err := printPages(context.Background(), searcher, plainConfig(),
		options{query: "sea", pages: 10}, &out, &errOut, 200, log.NullLogger())
	require.NoError(t, err)

	assert.Equal(t, []int{1, 2, 3}, searcher.pages)
	lines := strings.Split(strings.TrimSpace(out.String()), "\n")
	require.Len(t, lines, 12)
	assert.True(t, strings.HasPrefix(lines[11], "12\t"))

	notices := errOut.String()
	assert.Contains(t, notices, "[info] Hooray! We found 12 images")
	assert.Contains(t, notices, `[warning] We're sorry, but you've reached the end of search "SEA"`)
}

func TestPrintPagesHonoursPageCount(t *testing.T) {
	searcher := &stubSearcher{total: 100}
	var out, errOut bytes.Buffer

	err := printPages(context.Background(), searcher, plainConfig(),
		options{query: "sea", pages: 2}, &out, &errOut, 200, log.NullLogger())
	require.NoError(t, err)
	assert.Equal(t, []int{1, 2}, searcher.pages)
}

func TestPrintPagesRejectsShortQuery(t *testing.T) {
	searcher := &stubSearcher{total: 100}
	var out, errOut bytes.Buffer

	err := printPages(context.Background(), searcher, plainConfig(),
		options{query: "ab", pages: 1}, &out, &errOut, 200, log.NullLogger())

	var verr *domain.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Empty(t, searcher.pages)
	assert.Contains(t, errOut.String(), "[warning]")
}

func TestPrintPagesReportsFetchFailure(t *testing.T) {
	searcher := &stubSearcher{err: &domain.FetchError{Kind: domain.ServerRejected, StatusCode: 400, Err: errors.New("bad key")}}
	var out, errOut bytes.Buffer

	err := printPages(context.Background(), searcher, plainConfig(),
		options{query: "sea", pages: 1}, &out, &errOut, 200, log.NullLogger())

	var fe *domain.FetchError
	require.ErrorAs(t, err, &fe)
	assert.Equal(t, 400, fe.StatusCode)
	assert.Contains(t, errOut.String(), "[error] Sorry, an error occurred - 400. Try again")
}

func TestDescribeKeyError(t *testing.T) {
	rejected := &domain.FetchError{Kind: domain.ServerRejected, StatusCode: 400}
	assert.EqualError(t, describeKeyError(rejected), "key rejected by Pixabay")

	offline := &domain.FetchError{Kind: domain.NoResponse, Err: errors.New("dial tcp")}
	assert.Same(t, offline, describeKeyError(offline))
}
