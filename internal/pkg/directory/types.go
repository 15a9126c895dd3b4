package directory

import (
	"context"
	"errors"

	"github.com/VendoraHQ/Vendora/app/models"
)

// ErrRankingUnavailable marks a paginator wired without the pre-aggregated
// ranker, which happens when DIRECTORY_FAST_RANKING is off. The paginator
// treats it as the normal fallback trigger, not a failure worth logging.
var ErrRankingUnavailable = errors.New("directory: ranking source unavailable")

// Page and query bounds shared between the engine and the HTTP layer.
const (
	DefaultPageSize = 20
	MaxPageSize     = 50
	MaxPage         = 100000
	MaxQueryLength  = 200
)

// SortMode selects the row order inside each tier group. Every mode carries a
// deterministic id tiebreak so pages never overlap or drop rows on ties.
type SortMode string

const (
	SortRelevance SortMode = "relevance"
	SortPriceAsc  SortMode = "price_asc"
	SortPriceDesc SortMode = "price_desc"
)

// ParseSortMode maps a raw query value to a SortMode, defaulting to relevance.
func ParseSortMode(v string) SortMode {
	switch SortMode(v) {
	case SortPriceAsc:
		return SortPriceAsc
	case SortPriceDesc:
		return SortPriceDesc
	default:
		return SortRelevance
	}
}

// VendorSetMode discriminates how a VendorSet selects vendors.
type VendorSetMode int

const (
	VendorSetAll VendorSetMode = iota
	VendorSetInclude
	VendorSetExclude
)

// VendorSet selects which vendors a listing operation sees. Including an
// empty list matches nothing; excluding an empty list constrains nothing.
// The zero value matches every vendor.
type VendorSet struct {
	Mode VendorSetMode
	IDs  []uint
}

// AllVendors matches every vendor.
func AllVendors() VendorSet {
	return VendorSet{Mode: VendorSetAll}
}

// IncludeVendors matches only the given vendors.
func IncludeVendors(ids []uint) VendorSet {
	return VendorSet{Mode: VendorSetInclude, IDs: ids}
}

// ExcludeVendors matches every vendor except the given ones. The exclusion
// holds no matter how many ids there are.
func ExcludeVendors(ids []uint) VendorSet {
	return VendorSet{Mode: VendorSetExclude, IDs: ids}
}

// MatchesNothing reports whether no vendor can satisfy the set, which lets
// callers skip the round trip entirely.
func (s VendorSet) MatchesNothing() bool {
	return s.Mode == VendorSetInclude && len(s.IDs) == 0
}

// ListingFilters narrows the directory to one portal view. Immutable for the
// duration of a request; both pagination paths see the same values.
type ListingFilters struct {
	CategoryID *uint
	Query      string
	StateID    *uint
	CityID     *uint
}

// ListingQuery is the store contract the fallback folds over. Both operations
// must apply identical visibility rules: active products of active vendors
// only, otherwise counts and rows drift apart between the two calls.
type ListingQuery interface {
	CountListings(ctx context.Context, filters ListingFilters, vendors VendorSet) (int64, error)
	FetchListings(ctx context.Context, filters ListingFilters, vendors VendorSet, sort SortMode, offset, limit int) ([]models.Product, error)
}

// Ranker serves a whole page from a pre-aggregated ranking in one read,
// returning the page rows and the total row count across all pages. It is
// optional; any error sends the request to the fallback.
type Ranker interface {
	RankListings(ctx context.Context, filters ListingFilters, sort SortMode, offset, limit int) ([]models.Product, int64, error)
}

// PageRequest is a 1-based page window. NewPageRequest clamps out-of-range
// values so a hand-built request cannot produce a negative offset.
type PageRequest struct {
	Page  int
	Limit int
}

func NewPageRequest(page, limit int) PageRequest {
	if page < 1 {
		page = 1
	}
	if page > MaxPage {
		page = MaxPage
	}
	if limit < 1 {
		limit = DefaultPageSize
	}
	if limit > MaxPageSize {
		limit = MaxPageSize
	}

	return PageRequest{Page: page, Limit: limit}
}

// Offset returns the number of rows ranked before this page.
func (r PageRequest) Offset() int {
	return (r.Page - 1) * r.Limit
}

// Row is one directory listing annotated with the tier that ranked it.
type Row struct {
	models.Product
	TierName     string `json:"tier_name"`
	TierLabel    string `json:"tier_label"`
	TierPriority int    `json:"tier_priority"`
}

// PageResult is one page of the directory. Total counts every visible row of
// the same filter set across all pages, whatever page was requested.
type PageResult struct {
	Rows  []Row
	Total int64
}
