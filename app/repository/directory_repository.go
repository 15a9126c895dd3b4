package repository

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"github.com/VendoraHQ/Vendora/app/models"
	"github.com/VendoraHQ/Vendora/internal/pkg/directory"
)

// directoryRepository implements the directory engine's store contracts on
// MySQL. Count and fetch share one query builder so both always apply the
// same visibility rules; if the rules drifted apart, counts and rows would
// disagree mid-page.
type directoryRepository struct {
	db *gorm.DB
}

// NewDirectoryRepository creates a new directory repository instance
func NewDirectoryRepository(db *gorm.DB) DirectoryRepository {
	return &directoryRepository{db: db}
}

// visibleListings scopes a query to active products of active, not deleted
// vendors and applies the request filters. Soft-deleted products are dropped
// by GORM itself.
func (r *directoryRepository) visibleListings(ctx context.Context, filters directory.ListingFilters) *gorm.DB {
	q := r.db.WithContext(ctx).
		Model(&models.Product{}).
		Joins("JOIN vendors ON vendors.id = products.vendor_id AND vendors.deleted_at IS NULL").
		Where("products.status = ?", models.PRODUCT_STATUS_ACTIVE).
		Where("vendors.status = ?", models.VENDOR_STATUS_ACTIVE)

	if filters.CategoryID != nil {
		q = q.Where("products.category_id = ?", *filters.CategoryID)
	}
	if filters.StateID != nil {
		q = q.Where("products.state_id = ?", *filters.StateID)
	}
	if filters.CityID != nil {
		q = q.Where("products.city_id = ?", *filters.CityID)
	}
	if filters.Query != "" {
		like := "%" + filters.Query + "%"
		q = q.Where("(products.name LIKE ? OR products.description LIKE ?)", like, like)
	}

	return q
}

// applyVendorSet narrows a query to the given vendor group. The exclusion
// always covers the full id set; capping the NOT IN list would let subscribed
// vendors reappear in the unsubscribed tail group.
func applyVendorSet(q *gorm.DB, set directory.VendorSet) *gorm.DB {
	switch set.Mode {
	case directory.VendorSetInclude:
		return q.Where("products.vendor_id IN ?", set.IDs)
	case directory.VendorSetExclude:
		if len(set.IDs) == 0 {
			return q
		}
		return q.Where("products.vendor_id NOT IN ?", set.IDs)
	default:
		return q
	}
}

// listingOrder builds the intra-group ORDER BY. Every mode ends on id so
// pagination stays stable across equal sort keys.
func listingOrder(sort directory.SortMode) string {
	switch sort {
	case directory.SortPriceAsc:
		return "products.price ASC, products.id ASC"
	case directory.SortPriceDesc:
		return "products.price DESC, products.id ASC"
	default:
		return "products.created_at DESC, products.id DESC"
	}
}

// CountListings implements directory.ListingQuery.
func (r *directoryRepository) CountListings(ctx context.Context, filters directory.ListingFilters, vendors directory.VendorSet) (int64, error) {
	if vendors.MatchesNothing() {
		return 0, nil
	}

	var count int64
	err := applyVendorSet(r.visibleListings(ctx, filters), vendors).Count(&count).Error
	if err != nil {
		return 0, fmt.Errorf("count listings: %w", err)
	}
	return count, nil
}

// FetchListings implements directory.ListingQuery.
func (r *directoryRepository) FetchListings(ctx context.Context, filters directory.ListingFilters, vendors directory.VendorSet, sort directory.SortMode, offset, limit int) ([]models.Product, error) {
	if vendors.MatchesNothing() || limit <= 0 {
		return nil, nil
	}

	var products []models.Product
	err := applyVendorSet(r.visibleListings(ctx, filters), vendors).
		Order(listingOrder(sort)).
		Offset(offset).
		Limit(limit).
		Find(&products).Error
	if err != nil {
		return nil, fmt.Errorf("fetch listings: %w", err)
	}
	return products, nil
}

// rankedOrder sorts by tier first, then the requested mode inside each tier.
// The view exposes tier_priority, so one ORDER BY covers the whole catalog.
func rankedOrder(sort directory.SortMode) string {
	switch sort {
	case directory.SortPriceAsc:
		return "tier_priority DESC, price ASC, id ASC"
	case directory.SortPriceDesc:
		return "tier_priority DESC, price DESC, id ASC"
	default:
		return "tier_priority DESC, created_at DESC, id DESC"
	}
}

// RankListings implements directory.Ranker over the directory_rankings view.
// Step one pages ranked ids and reads the overall total in the same statement
// through a window COUNT; step two loads the product rows for those ids and
// restores ranked order. Ids that vanished between the two steps are simply
// skipped, the paginator treats that as a short read.
func (r *directoryRepository) RankListings(ctx context.Context, filters directory.ListingFilters, sort directory.SortMode, offset, limit int) ([]models.Product, int64, error) {
	if limit <= 0 {
		return nil, 0, nil
	}

	q := r.db.WithContext(ctx).
		Table("directory_rankings").
		Select("id, COUNT(*) OVER () AS total")

	if filters.CategoryID != nil {
		q = q.Where("category_id = ?", *filters.CategoryID)
	}
	if filters.StateID != nil {
		q = q.Where("state_id = ?", *filters.StateID)
	}
	if filters.CityID != nil {
		q = q.Where("city_id = ?", *filters.CityID)
	}
	if filters.Query != "" {
		like := "%" + filters.Query + "%"
		q = q.Where("(name LIKE ? OR description LIKE ?)", like, like)
	}

	var ranked []struct {
		ID    uint
		Total int64
	}
	err := q.Order(rankedOrder(sort)).Offset(offset).Limit(limit).Scan(&ranked).Error
	if err != nil {
		return nil, 0, fmt.Errorf("rank listings: %w", err)
	}
	if len(ranked) == 0 {
		return nil, 0, nil
	}

	total := ranked[0].Total
	ids := make([]uint, len(ranked))
	for i, row := range ranked {
		ids[i] = row.ID
	}

	var products []models.Product
	err = r.db.WithContext(ctx).Where("id IN ?", ids).Find(&products).Error
	if err != nil {
		return nil, 0, fmt.Errorf("load ranked listings: %w", err)
	}

	byID := make(map[uint]models.Product, len(products))
	for _, p := range products {
		byID[p.ID] = p
	}
	out := make([]models.Product, 0, len(ranked))
	for _, row := range ranked {
		if p, ok := byID[row.ID]; ok {
			out = append(out, p)
		}
	}
	return out, total, nil
}
