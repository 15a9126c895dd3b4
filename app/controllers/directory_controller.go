package controllers

import (
	"context"
	"strconv"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/log"

	"github.com/VendoraHQ/Vendora/app/repository"
	"github.com/VendoraHQ/Vendora/internal/pkg/categories"
	"github.com/VendoraHQ/Vendora/internal/pkg/directory"
	"github.com/VendoraHQ/Vendora/internal/pkg/env"
	metrics "github.com/VendoraHQ/Vendora/internal/pkg/metrics/counter"
	"github.com/VendoraHQ/Vendora/internal/pkg/statistics"
	"github.com/VendoraHQ/Vendora/internal/pkg/tiers"
)

// directoryPager is the slice of the pagination engine the controller needs.
type directoryPager interface {
	Page(ctx context.Context, filters directory.ListingFilters, sort directory.SortMode, page directory.PageRequest) (*directory.PageResult, error)
}

// categoryResolver maps a category slug to its id.
type categoryResolver interface {
	ResolveSlug(slug string) (uint, bool)
}

// DirectoryController handles the public directory endpoints
type DirectoryController struct {
	pager      directoryPager
	categories categoryResolver
}

// NewDirectoryController creates a new directory controller with its dependencies
func NewDirectoryController(pager directoryPager, categories categoryResolver) *DirectoryController {
	return &DirectoryController{
		pager:      pager,
		categories: categories,
	}
}

// Global directory controller instance
var directoryController *DirectoryController

// InitializeDirectoryController wires the global directory controller. The
// pre-aggregated ranker can be switched off per environment; the paginator
// then serves every request through the per-tier fold.
func InitializeDirectoryController() {
	repos := repository.GetGlobalRepositories()

	var ranker directory.Ranker
	if env.GetEnv("DIRECTORY_FAST_RANKING", "true") != "false" {
		ranker = repos.Directory
	}

	pager := directory.NewPaginator(repos.Directory, ranker, repos.Subscription)
	directoryController = NewDirectoryController(pager, categories.NewResolver(repos.Category))
}

// GetDirectoryController returns the global directory controller instance
func GetDirectoryController() *DirectoryController {
	if directoryController == nil {
		InitializeDirectoryController()
	}
	return directoryController
}

// HandleDirectoryIndex - Adapter for the directory listing endpoint
func HandleDirectoryIndex(c *fiber.Ctx) error {
	return GetDirectoryController().HandleIndex(c)
}

// HandleDirectoryTiers - Adapter for the tier catalog endpoint
func HandleDirectoryTiers(c *fiber.Ctx) error {
	return GetDirectoryController().HandleTiers(c)
}

// HandleDirectoryStats - Adapter for the marketplace statistics endpoint
func HandleDirectoryStats(c *fiber.Ctx) error {
	return GetDirectoryController().HandleStats(c)
}

// HandleIndex serves GET /api/v1/directory: one globally ranked page of the
// product directory. Ranker failures never surface here, the engine degrades
// on its own; an error from the engine means the fallback reads failed too.
func (dc *DirectoryController) HandleIndex(c *fiber.Ctx) error {
	filters, unknownCategory := dc.parseListingFilters(c)
	if unknownCategory {
		// a slug nobody owns has no matches by definition, skip the engine
		return c.JSON(fiber.Map{
			"success": true,
			"data":    []directory.Row{},
			"count":   0,
		})
	}

	sort := directory.ParseSortMode(c.Query("sort"))
	page, _ := strconv.Atoi(c.Query("page", "1"))
	limit, _ := strconv.Atoi(c.Query("limit", strconv.Itoa(directory.DefaultPageSize)))

	result, err := dc.pager.Page(c.Context(), filters, sort, directory.NewPageRequest(page, limit))
	if err != nil {
		log.Errorf("[Directory] listing failed: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"success": false,
			"message": "failed to load directory listings",
		})
	}

	countRowImpressions(result.Rows)

	return c.JSON(fiber.Map{
		"success": true,
		"data":    result.Rows,
		"count":   result.Total,
	})
}

// HandleTiers serves GET /api/v1/directory/tiers: the declared tier catalog
// for pricing and display clients.
func (dc *DirectoryController) HandleTiers(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"success": true,
		"data":    tiers.Catalog(),
	})
}

// HandleStats serves GET /api/v1/directory/stats from the statistics cache.
func (dc *DirectoryController) HandleStats(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"success": true,
		"data":    statistics.GetDirectoryStats(),
	})
}

// parseListingFilters reads the directory filters off the query string. The
// second return is true when a category slug was provided but is unknown; the
// caller then serves an empty page without invoking the engine.
func (dc *DirectoryController) parseListingFilters(c *fiber.Ctx) (directory.ListingFilters, bool) {
	filters := directory.ListingFilters{
		Query:   capQueryText(c.Query("query")),
		StateID: parseOptionalID(c.Query("state_id")),
		CityID:  parseOptionalID(c.Query("city_id")),
	}

	if slug := strings.TrimSpace(c.Query("category")); slug != "" {
		id, ok := dc.categories.ResolveSlug(slug)
		if !ok {
			return filters, true
		}
		filters.CategoryID = &id
	}

	return filters, false
}

// capQueryText trims free text and caps it at the engine's query bound.
func capQueryText(q string) string {
	q = strings.TrimSpace(q)
	if len(q) > directory.MaxQueryLength {
		q = q[:directory.MaxQueryLength]
	}
	return q
}

// parseOptionalID parses an optional uint query parameter. Unparsable or zero
// values read as absent rather than failing the request.
func parseOptionalID(raw string) *uint {
	if raw == "" {
		return nil
	}
	id, err := strconv.ParseUint(raw, 10, 32)
	if err != nil || id == 0 {
		return nil
	}
	out := uint(id)
	return &out
}

// countRowImpressions credits one impression per served row to its vendor.
// Counting lives in Redis and must never fail the request.
func countRowImpressions(rows []directory.Row) {
	if len(rows) == 0 {
		return
	}
	ids := make([]uint, len(rows))
	for i, row := range rows {
		ids[i] = row.VendorID
	}
	if err := metrics.AddVendorImpressions(ids); err != nil {
		log.Debugf("[Directory] impression counting failed: %v", err)
	}
}
