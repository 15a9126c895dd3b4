package categories

import (
	"errors"
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2/log"
	"gorm.io/gorm"

	"github.com/VendoraHQ/Vendora/app/repository"
	"github.com/VendoraHQ/Vendora/internal/pkg/cache"
)

const (
	cacheKeyPrefix = "categories:slug:"
	cacheTTL       = 10 * time.Minute
	// unknown slugs are cached briefly so repeated garbage lookups do not
	// hammer the database
	negativeTTL    = 1 * time.Minute
	negativeMarker = "0"
)

// Resolver maps category slugs to ids with a Redis cache in front of the
// database. A cache failure only costs the round trip, never the request.
type Resolver struct {
	repo repository.CategoryRepository
}

// NewResolver creates a resolver on top of an existing category repository
func NewResolver(repo repository.CategoryRepository) *Resolver {
	return &Resolver{repo: repo}
}

// NewResolverFromDB creates a resolver with its own repository
func NewResolverFromDB(db *gorm.DB) *Resolver {
	return NewResolver(repository.NewCategoryRepository(db))
}

// ResolveSlug returns the id of the category with the given slug, or false
// when no such category exists. Lookup errors are logged and reported as
// unknown, the directory then serves an empty page instead of failing.
func (r *Resolver) ResolveSlug(slug string) (uint, bool) {
	if slug == "" {
		return 0, false
	}

	key := cacheKeyPrefix + slug
	if val, err := cache.Get(key); err == nil {
		if val == negativeMarker {
			return 0, false
		}
		if id, parseErr := strconv.ParseUint(val, 10, 32); parseErr == nil {
			return uint(id), true
		}
	}

	category, err := r.repo.GetBySlug(slug)
	if err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			log.Errorf("[Categories] slug lookup failed for %q: %v", slug, err)
			return 0, false
		}
		if cacheErr := cache.Set(key, negativeMarker, negativeTTL); cacheErr != nil {
			log.Debugf("[Categories] caching miss for %q failed: %v", slug, cacheErr)
		}
		return 0, false
	}

	if cacheErr := cache.Set(key, strconv.FormatUint(uint64(category.ID), 10), cacheTTL); cacheErr != nil {
		log.Debugf("[Categories] caching %q failed: %v", slug, cacheErr)
	}
	return category.ID, true
}

// Invalidate drops a slug from the cache after a category change
func (r *Resolver) Invalidate(slug string) {
	if err := cache.Delete(cacheKeyPrefix + slug); err != nil {
		log.Debugf("[Categories] invalidating %q failed: %v", slug, err)
	}
}
