package directory

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/gofiber/fiber/v2/log"

	"github.com/VendoraHQ/Vendora/app/models"
	"github.com/VendoraHQ/Vendora/internal/pkg/tiers"
)

// Paginator serves ranked directory pages. It prefers the pre-aggregated
// ranker and silently degrades to folding per-tier queries when the ranker is
// missing or failing; callers cannot tell which path served them apart from
// latency. Stateless across requests, safe for concurrent use.
type Paginator struct {
	store  ListingQuery
	ranker Ranker
	subs   tiers.SubscriptionSource
}

// NewPaginator wires a paginator. ranker may be nil when fast ranking is
// disabled, every request then takes the fallback directly.
func NewPaginator(store ListingQuery, ranker Ranker, subs tiers.SubscriptionSource) *Paginator {
	return &Paginator{store: store, ranker: ranker, subs: subs}
}

// Page serves one directory page for the given filters. Tier assignments are
// resolved fresh on every call; a failure there is fatal because ranking
// without assignments would invent an order.
func (p *Paginator) Page(ctx context.Context, filters ListingFilters, sort SortMode, page PageRequest) (*PageResult, error) {
	assignments, err := tiers.ResolveAssignments(ctx, p.subs, time.Now())
	if err != nil {
		return nil, fmt.Errorf("directory page: %w", err)
	}

	rows, total, err := p.rankedPage(ctx, filters, sort, page)
	if err == nil {
		return &PageResult{Rows: annotateRows(rows, assignments), Total: total}, nil
	}
	if !errors.Is(err, ErrRankingUnavailable) {
		log.Warnf("[Directory] fast ranking failed, using tier fold: %v", err)
	}

	rows, total, err = p.foldPage(ctx, filters, sort, page, assignments)
	if err != nil {
		return nil, err
	}

	return &PageResult{Rows: annotateRows(rows, assignments), Total: total}, nil
}

// rankedPage reads the page from the pre-aggregated ranking. Past the last
// page the ranked read returns no rows and no usable total, so one probe at
// the start of the ranking recovers the real total; the probe's rows are
// thrown away. A failing probe fails the whole fast path.
func (p *Paginator) rankedPage(ctx context.Context, filters ListingFilters, sort SortMode, page PageRequest) ([]models.Product, int64, error) {
	if p.ranker == nil {
		return nil, 0, ErrRankingUnavailable
	}

	rows, total, err := p.ranker.RankListings(ctx, filters, sort, page.Offset(), page.Limit)
	if err != nil {
		return nil, 0, err
	}

	if len(rows) == 0 && page.Offset() > 0 {
		_, total, err = p.ranker.RankListings(ctx, filters, sort, 0, 1)
		if err != nil {
			return nil, 0, err
		}

		return nil, total, nil
	}

	return rows, total, nil
}

// foldPage walks the tier groups from highest to lowest priority and finally
// the unsubscribed rest, counting every group and fetching only the slices
// that fall inside the requested window. Tiers with no assigned vendors are
// skipped without a round trip. The unsubscribed group excludes the full set
// of actively subscribed vendors regardless of its size; capping that set
// would leak subscribed rows into the tail.
func (p *Paginator) foldPage(ctx context.Context, filters ListingFilters, sort SortMode, page PageRequest, assignments *tiers.Assignments) ([]models.Product, int64, error) {
	groups := make([]VendorSet, 0, len(tiers.Catalog())+1)
	for _, tier := range tiers.Catalog() {
		ids := assignments.VendorsInTier(tier.Key)
		if len(ids) == 0 {
			continue
		}
		groups = append(groups, IncludeVendors(ids))
	}
	groups = append(groups, ExcludeVendors(assignments.ActiveVendorIDs()))

	window := newPageWindow(page.Offset(), page.Limit)
	rows := make([]models.Product, 0, page.Limit)

	for _, group := range groups {
		count, err := p.store.CountListings(ctx, filters, group)
		if err != nil {
			return nil, 0, fmt.Errorf("directory fold count: %w", err)
		}

		next, fetch, ok := window.advance(count)
		window = next
		if !ok {
			continue
		}

		fetched, err := p.store.FetchListings(ctx, filters, group, sort, fetch.Offset, fetch.Limit)
		if err != nil {
			return nil, 0, fmt.Errorf("directory fold fetch: %w", err)
		}
		rows = append(rows, fetched...)
		window = window.fill(len(fetched))
	}

	return rows, window.total, nil
}

// annotateRows labels every product with the tier of its vendor. Vendors
// without an active subscription are labeled with the lowest declared tier.
func annotateRows(products []models.Product, assignments *tiers.Assignments) []Row {
	rows := make([]Row, len(products))
	for i, product := range products {
		tier := assignments.AnnotationFor(product.VendorID)
		rows[i] = Row{
			Product:      product,
			TierName:     tier.Key,
			TierLabel:    tier.Label,
			TierPriority: tier.Priority,
		}
	}

	return rows
}
