package trigger

import (
	"context"
	"testing"

	"github.com/mmcdole/pixa/internal/domain"
	"github.com/mmcdole/pixa/internal/paging"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakePager mimics the controller's guard: one ticket until settled
type fakePager struct {
	state    paging.State
	inFlight bool
	issued   int
}

func (p *fakePager) State() paging.State { return p.state }

func (p *fakePager) Next() (*paging.Fetch, bool) {
	if p.state != paging.Paging || p.inFlight {
		return nil, false
	}
	p.inFlight = true
	p.issued++
	return &paging.Fetch{Request: domain.PageRequest{Page: p.issued + 1}}, true
}

func (p *fakePager) resolve() { p.inFlight = false }

func TestParseKind(t *testing.T) {
	tests := []struct {
		in      string
		want    Kind
		wantErr bool
	}{
		{in: "", want: KindManual},
		{in: "manual", want: KindManual},
		{in: " Auto ", want: KindAuto},
		{in: "scroll", wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseKind(tt.in)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestNew(t *testing.T) {
	p := &fakePager{}
	assert.Equal(t, KindManual, New(KindManual, p).Kind())
	assert.Equal(t, KindAuto, New(KindAuto, p).Kind())
}

func TestManual_EnabledOnlyWhilePaging(t *testing.T) {
	p := &fakePager{}
	m := NewManual(p)

	for _, s := range []paging.State{paging.Idle, paging.FirstPage, paging.Exhausted} {
		p.state = s
		assert.False(t, m.Enabled(), s.String())
		_, ok := m.Press()
		assert.False(t, ok, s.String())
	}
	assert.Zero(t, p.issued)

	p.state = paging.Paging
	assert.True(t, m.Enabled())
}

func TestManual_OnePagePerPress(t *testing.T) {
	p := &fakePager{state: paging.Paging}
	m := NewManual(p)

	f, ok := m.Press()
	require.True(t, ok)
	assert.Equal(t, 2, f.Request.Page)

	_, ok = m.Press()
	assert.False(t, ok, "pressed again before the page arrived")

	p.resolve()
	m.Settle(paging.Outcome{Fetch: f})
	f, ok = m.Press()
	require.True(t, ok)
	assert.Equal(t, 3, f.Request.Page)
	assert.Equal(t, 2, p.issued)
}

func TestAuto_IgnoresNonIntersecting(t *testing.T) {
	p := &fakePager{state: paging.Paging}
	a := NewAuto(p)

	fetches := a.Observe([]Entry{{Target: "end", Intersecting: false}})
	assert.Empty(t, fetches)
	assert.Zero(t, p.issued)
}

func TestAuto_BatchYieldsOneFetch(t *testing.T) {
	p := &fakePager{state: paging.Paging}
	a := NewAuto(p)

	fetches := a.Observe([]Entry{
		{Target: "end", Intersecting: true},
		{Target: "end", Intersecting: true},
		{Target: "end", Intersecting: false},
		{Target: "end", Intersecting: true},
	})
	assert.Len(t, fetches, 1)
	assert.Equal(t, 1, p.issued)
	assert.True(t, a.InFlight())
	assert.False(t, a.Enabled())
}

func TestAuto_RefiresAfterSettle(t *testing.T) {
	p := &fakePager{state: paging.Paging}
	a := NewAuto(p)

	first := a.Observe([]Entry{{Intersecting: true}})
	require.Len(t, first, 1)

	assert.Empty(t, a.Observe([]Entry{{Intersecting: true}}), "re-fired before resolution")

	// an unrelated outcome does not clear the flag
	a.Settle(paging.Outcome{Fetch: &paging.Fetch{}})
	assert.True(t, a.InFlight())

	p.resolve()
	a.Settle(paging.Outcome{Fetch: first[0]})
	assert.False(t, a.InFlight())

	second := a.Observe([]Entry{{Intersecting: true}})
	require.Len(t, second, 1)
	assert.Equal(t, 3, second[0].Request.Page)
}

func TestAuto_OwnGuardSkipsPager(t *testing.T) {
	p := &fakePager{state: paging.Paging}
	a := NewAuto(p)

	require.Len(t, a.Observe([]Entry{{Intersecting: true}}), 1)

	// even if the pager would allow it, the trigger's own flag holds
	p.resolve()
	assert.Empty(t, a.Observe([]Entry{{Intersecting: true}}))
	assert.Equal(t, 1, p.issued)

	a.Reset()
	assert.Len(t, a.Observe([]Entry{{Intersecting: true}}), 1)
}

func TestAuto_NotPaging(t *testing.T) {
	p := &fakePager{state: paging.Exhausted}
	a := NewAuto(p)
	assert.Empty(t, a.Observe([]Entry{{Intersecting: true}}))
	assert.False(t, a.Enabled())
}

// Both variants drive a real controller identically
func TestTriggersWithController(t *testing.T) {
	for _, kind := range []Kind{KindManual, KindAuto} {
		t.Run(string(kind), func(t *testing.T) {
			searcher := &pagedSearcher{total: 100}
			c := paging.NewController(searcher, nil, paging.Options{PerPage: 40, EndNoticeDelay: -1}, nil)
			ctx := context.Background()

			_, err := c.SubmitQuery(ctx, "dogs")
			require.NoError(t, err)

			tr := New(kind, c)
			for tr.Enabled() {
				var f *paging.Fetch
				switch v := tr.(type) {
				case *Manual:
					var ok bool
					f, ok = v.Press()
					require.True(t, ok)
				case *Auto:
					fs := v.Observe([]Entry{{Intersecting: true}, {Intersecting: true}})
					require.Len(t, fs, 1)
					f = fs[0]
				}
				o := c.Execute(ctx, f)
				c.Resolve(o)
				tr.Settle(o)
			}

			assert.Equal(t, paging.Exhausted, c.State())
			assert.Equal(t, []int{1, 2, 3}, searcher.pages)
		})
	}
}

type pagedSearcher struct {
	total int
	pages []int
}

func (s *pagedSearcher) SearchPhotos(ctx context.Context, req domain.PageRequest) (*domain.PageResult, error) {
	s.pages = append(s.pages, req.Page)
	n := s.total - (req.Page-1)*req.PerPage
	if n > req.PerPage {
		n = req.PerPage
	}
	return &domain.PageResult{Items: make([]domain.Photo, n), TotalHits: s.total}, nil
}
