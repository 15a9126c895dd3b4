package directory

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/VendoraHQ/Vendora/app/models"
	"github.com/VendoraHQ/Vendora/internal/pkg/tiers"
)

// memoryStore answers listing queries from a fixed product slice. Slice order
// is the relevance order; filters are ignored because the paginator passes
// them through untouched.
type memoryStore struct {
	products  []models.Product
	seenSets  []VendorSet
	fetchSets []VendorSet
	countErr  error
	fetchErr  error
	shortRead int // drop this many rows from the first fetch
}

func (m *memoryStore) matches(p models.Product, set VendorSet) bool {
	switch set.Mode {
	case VendorSetInclude:
		for _, id := range set.IDs {
			if p.VendorID == id {
				return true
			}
		}
		return false
	case VendorSetExclude:
		for _, id := range set.IDs {
			if p.VendorID == id {
				return false
			}
		}
		return true
	default:
		return true
	}
}

func (m *memoryStore) selectRows(set VendorSet) []models.Product {
	var out []models.Product
	for _, p := range m.products {
		if m.matches(p, set) {
			out = append(out, p)
		}
	}
	return out
}

func (m *memoryStore) CountListings(ctx context.Context, filters ListingFilters, set VendorSet) (int64, error) {
	if m.countErr != nil {
		return 0, m.countErr
	}
	m.seenSets = append(m.seenSets, set)
	return int64(len(m.selectRows(set))), nil
}

func (m *memoryStore) FetchListings(ctx context.Context, filters ListingFilters, set VendorSet, sort SortMode, offset, limit int) ([]models.Product, error) {
	if m.fetchErr != nil {
		return nil, m.fetchErr
	}
	m.fetchSets = append(m.fetchSets, set)

	rows := m.selectRows(set)
	if offset >= len(rows) {
		return nil, nil
	}
	end := offset + limit
	if end > len(rows) {
		end = len(rows)
	}
	out := rows[offset:end]

	if m.shortRead > 0 {
		if m.shortRead > len(out) {
			m.shortRead = len(out)
		}
		out = out[:len(out)-m.shortRead]
		m.shortRead = 0
	}
	return out, nil
}

type rankCall struct {
	offset int
	limit  int
}

type rankResult struct {
	rows  []models.Product
	total int64
	err   error
}

// scriptedRanker replays canned results in order and records every call.
type scriptedRanker struct {
	calls   []rankCall
	results []rankResult
}

func (r *scriptedRanker) RankListings(ctx context.Context, filters ListingFilters, sort SortMode, offset, limit int) ([]models.Product, int64, error) {
	r.calls = append(r.calls, rankCall{offset: offset, limit: limit})
	if len(r.results) == 0 {
		return nil, 0, errors.New("scripted ranker exhausted")
	}
	res := r.results[0]
	r.results = r.results[1:]
	return res.rows, res.total, res.err
}

type stubSubs struct {
	subs []models.VendorSubscription
	err  error
}

func (s *stubSubs) ActiveSubscriptions(ctx context.Context, now time.Time) ([]models.VendorSubscription, error) {
	return s.subs, s.err
}

func testProduct(id, vendorID uint) models.Product {
	return models.Product{
		ID:       id,
		VendorID: vendorID,
		Name:     fmt.Sprintf("product-%d", id),
		Status:   models.PRODUCT_STATUS_ACTIVE,
	}
}

// scenarioFixture: vendor 1 holds Diamond with 3 products, vendor 2 holds
// Gold with 2, vendor 3 has no subscription and 5 products.
func scenarioFixture() (*memoryStore, *stubSubs) {
	store := &memoryStore{products: []models.Product{
		testProduct(1, 1), testProduct(2, 1), testProduct(3, 1),
		testProduct(4, 2), testProduct(5, 2),
		testProduct(6, 3), testProduct(7, 3), testProduct(8, 3), testProduct(9, 3), testProduct(10, 3),
	}}
	started := time.Date(2025, 4, 1, 0, 0, 0, 0, time.UTC)
	subs := &stubSubs{subs: []models.VendorSubscription{
		{VendorID: 1, PlanName: "Diamond Partner", StartedAt: started},
		{VendorID: 2, PlanName: "Gold Membership", StartedAt: started},
	}}
	return store, subs
}

func rowIDs(rows []Row) []uint {
	ids := make([]uint, len(rows))
	for i, r := range rows {
		ids[i] = r.ID
	}
	return ids
}

func TestPageFoldScenario(t *testing.T) {
	store, subs := scenarioFixture()
	p := NewPaginator(store, nil, subs)

	page1, err := p.Page(context.Background(), ListingFilters{}, SortRelevance, NewPageRequest(1, 4))
	require.NoError(t, err)
	assert.Equal(t, []uint{1, 2, 3, 4}, rowIDs(page1.Rows), "diamond rows first, then gold fills the page")
	assert.Equal(t, int64(10), page1.Total)

	page2, err := p.Page(context.Background(), ListingFilters{}, SortRelevance, NewPageRequest(2, 4))
	require.NoError(t, err)
	assert.Equal(t, []uint{5, 6, 7, 8}, rowIDs(page2.Rows), "gold remainder, then unsubscribed rows")
	assert.Equal(t, int64(10), page2.Total, "total must not depend on the requested page")

	page3, err := p.Page(context.Background(), ListingFilters{}, SortRelevance, NewPageRequest(3, 4))
	require.NoError(t, err)
	assert.Equal(t, []uint{9, 10}, rowIDs(page3.Rows))
	assert.Equal(t, int64(10), page3.Total)
}

func TestPageCompletenessAcrossPages(t *testing.T) {
	store, subs := scenarioFixture()
	p := NewPaginator(store, nil, subs)

	var all []uint
	for page := 1; ; page++ {
		res, err := p.Page(context.Background(), ListingFilters{}, SortRelevance, NewPageRequest(page, 3))
		require.NoError(t, err)
		if len(res.Rows) == 0 {
			break
		}
		all = append(all, rowIDs(res.Rows)...)
	}

	assert.Equal(t, []uint{1, 2, 3, 4, 5, 6, 7, 8, 9, 10}, all,
		"walking every page must yield each row exactly once, tiers in priority order, unsubscribed last")
}

func TestPageRowAnnotations(t *testing.T) {
	store, subs := scenarioFixture()
	p := NewPaginator(store, nil, subs)

	res, err := p.Page(context.Background(), ListingFilters{}, SortRelevance, NewPageRequest(1, 50))
	require.NoError(t, err)
	require.Len(t, res.Rows, 10)

	assert.Equal(t, tiers.TierDiamond, res.Rows[0].TierName)
	assert.Equal(t, "Diamond", res.Rows[0].TierLabel)
	assert.Equal(t, 700, res.Rows[0].TierPriority)

	assert.Equal(t, tiers.TierGold, res.Rows[3].TierName)

	// unsubscribed vendors surface with the lowest declared tier
	last := res.Rows[9]
	assert.Equal(t, tiers.TierTrial, last.TierName)
	assert.Equal(t, "Trial", last.TierLabel)
	assert.Equal(t, 100, last.TierPriority)
}

func TestPageSkipsEmptyTiersAndAlwaysExcludes(t *testing.T) {
	store, subs := scenarioFixture()
	p := NewPaginator(store, nil, subs)

	_, err := p.Page(context.Background(), ListingFilters{}, SortRelevance, NewPageRequest(1, 4))
	require.NoError(t, err)

	// only DIAMOND, GOLD and the unsubscribed rest reach the store,
	// BOOSTER/CERTIFIED/TRIAL have no vendors and are skipped outright
	require.Len(t, store.seenSets, 3)
	assert.Equal(t, IncludeVendors([]uint{1}), store.seenSets[0])
	assert.Equal(t, IncludeVendors([]uint{2}), store.seenSets[1])
	assert.Equal(t, ExcludeVendors([]uint{1, 2}), store.seenSets[2])
	for _, set := range store.seenSets {
		assert.False(t, set.MatchesNothing(), "empty include groups must never hit the store")
	}
}

func TestPageNoSubscribersSingleGroup(t *testing.T) {
	store, _ := scenarioFixture()
	p := NewPaginator(store, nil, &stubSubs{})

	res, err := p.Page(context.Background(), ListingFilters{}, SortRelevance, NewPageRequest(1, 4))
	require.NoError(t, err)

	assert.Equal(t, []uint{1, 2, 3, 4}, rowIDs(res.Rows))
	assert.Equal(t, int64(10), res.Total)
	// excluding nothing still queries, it is the whole directory
	require.Len(t, store.seenSets, 1)
	assert.Equal(t, ExcludeVendors([]uint{}), store.seenSets[0])
	for _, row := range res.Rows {
		assert.Equal(t, tiers.TierTrial, row.TierName)
	}
}

func TestPageShortReadFillsFromNextGroup(t *testing.T) {
	store, subs := scenarioFixture()
	store.shortRead = 1
	p := NewPaginator(store, nil, subs)

	res, err := p.Page(context.Background(), ListingFilters{}, SortRelevance, NewPageRequest(1, 4))
	require.NoError(t, err)

	// diamond delivered only 2 of its 3 counted rows, the window stays open
	// and gold tops the page up
	assert.Equal(t, []uint{1, 2, 4, 5}, rowIDs(res.Rows))
	assert.Equal(t, int64(10), res.Total)
}

func TestPageFastPathServesWithoutStore(t *testing.T) {
	store, subs := scenarioFixture()
	ranker := &scriptedRanker{results: []rankResult{
		{rows: []models.Product{testProduct(1, 1), testProduct(2, 1), testProduct(3, 1), testProduct(4, 2)}, total: 10},
	}}
	p := NewPaginator(store, ranker, subs)

	res, err := p.Page(context.Background(), ListingFilters{}, SortRelevance, NewPageRequest(1, 4))
	require.NoError(t, err)

	assert.Equal(t, []uint{1, 2, 3, 4}, rowIDs(res.Rows))
	assert.Equal(t, int64(10), res.Total)
	assert.Empty(t, store.seenSets, "fast path must not touch the fallback store")
	assert.Equal(t, tiers.TierGold, res.Rows[3].TierName, "fast path rows get annotated too")
}

func TestPageDegradesOnRankerError(t *testing.T) {
	store, subs := scenarioFixture()
	ranker := &scriptedRanker{results: []rankResult{
		{err: errors.New("view missing")},
	}}
	p := NewPaginator(store, ranker, subs)

	res, err := p.Page(context.Background(), ListingFilters{}, SortRelevance, NewPageRequest(1, 4))
	require.NoError(t, err, "ranker failures must stay invisible to the caller")

	assert.Equal(t, []uint{1, 2, 3, 4}, rowIDs(res.Rows))
	assert.Equal(t, int64(10), res.Total)
	assert.NotEmpty(t, store.seenSets, "fallback must have served the page")
}

func TestPageProbeRecoversTotal(t *testing.T) {
	store, subs := scenarioFixture()
	// first result is the requested page far past the end, second the probe
	ranker := &scriptedRanker{results: []rankResult{
		{rows: nil, total: 0},
		{rows: []models.Product{testProduct(1, 1)}, total: 10},
	}}
	p := NewPaginator(store, ranker, subs)

	res, err := p.Page(context.Background(), ListingFilters{}, SortRelevance, NewPageRequest(5, 4))
	require.NoError(t, err)

	assert.Empty(t, res.Rows, "probe rows are discarded")
	assert.Equal(t, int64(10), res.Total, "probe recovers the real total")
	require.Len(t, ranker.calls, 2)
	assert.Equal(t, rankCall{offset: 16, limit: 4}, ranker.calls[0])
	assert.Equal(t, rankCall{offset: 0, limit: 1}, ranker.calls[1])
	assert.Empty(t, store.seenSets, "a successful probe keeps the request on the fast path")
}

func TestPageNoProbeOnFirstPage(t *testing.T) {
	store, subs := &memoryStore{}, &stubSubs{}
	ranker := &scriptedRanker{results: []rankResult{
		{rows: nil, total: 0},
	}}
	p := NewPaginator(store, ranker, subs)

	res, err := p.Page(context.Background(), ListingFilters{}, SortRelevance, NewPageRequest(1, 4))
	require.NoError(t, err)

	assert.Empty(t, res.Rows)
	assert.Equal(t, int64(0), res.Total)
	require.Len(t, ranker.calls, 1, "an empty first page needs no probe")
}

func TestPageProbeFailureFallsBack(t *testing.T) {
	store, subs := scenarioFixture()
	ranker := &scriptedRanker{results: []rankResult{
		{rows: nil, total: 0},
		{err: errors.New("probe timeout")},
	}}
	p := NewPaginator(store, ranker, subs)

	res, err := p.Page(context.Background(), ListingFilters{}, SortRelevance, NewPageRequest(5, 4))
	require.NoError(t, err)

	// offset 16 is past the 10 fixture rows, the fold serves an empty page
	// with the true total
	assert.Empty(t, res.Rows)
	assert.Equal(t, int64(10), res.Total)
	assert.NotEmpty(t, store.seenSets)
}

func TestPageNilRankerUsesFold(t *testing.T) {
	store, subs := scenarioFixture()
	p := NewPaginator(store, nil, subs)

	res, err := p.Page(context.Background(), ListingFilters{}, SortRelevance, NewPageRequest(1, 2))
	require.NoError(t, err)
	assert.Equal(t, []uint{1, 2}, rowIDs(res.Rows))
	assert.Equal(t, int64(10), res.Total)
}

func TestPageAssignmentFailureIsFatal(t *testing.T) {
	store, _ := scenarioFixture()
	boom := errors.New("subscriptions unavailable")
	p := NewPaginator(store, nil, &stubSubs{err: boom})

	_, err := p.Page(context.Background(), ListingFilters{}, SortRelevance, NewPageRequest(1, 4))
	require.Error(t, err)
	assert.ErrorIs(t, err, boom)
}

func TestPageFoldErrorPropagates(t *testing.T) {
	store, subs := scenarioFixture()
	store.countErr = errors.New("connection reset")
	p := NewPaginator(store, nil, subs)

	_, err := p.Page(context.Background(), ListingFilters{}, SortRelevance, NewPageRequest(1, 4))
	require.Error(t, err)
	assert.ErrorIs(t, err, store.countErr)
}

func TestNewPageRequestClamps(t *testing.T) {
	tests := []struct {
		page      int
		limit     int
		wantPage  int
		wantLimit int
	}{
		{page: 0, limit: 0, wantPage: 1, wantLimit: DefaultPageSize},
		{page: -3, limit: 10, wantPage: 1, wantLimit: 10},
		{page: 2, limit: 500, wantPage: 2, wantLimit: MaxPageSize},
		{page: MaxPage + 1, limit: 20, wantPage: MaxPage, wantLimit: 20},
	}

	for _, tt := range tests {
		got := NewPageRequest(tt.page, tt.limit)
		if got.Page != tt.wantPage || got.Limit != tt.wantLimit {
			t.Fatalf("NewPageRequest(%d, %d) = %+v, want page %d limit %d",
				tt.page, tt.limit, got, tt.wantPage, tt.wantLimit)
		}
	}
}

func TestPageRequestOffset(t *testing.T) {
	if got := NewPageRequest(1, 20).Offset(); got != 0 {
		t.Fatalf("page 1 offset = %d, want 0", got)
	}
	if got := NewPageRequest(3, 25).Offset(); got != 50 {
		t.Fatalf("page 3 offset = %d, want 50", got)
	}
}
