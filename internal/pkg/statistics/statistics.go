package statistics

import (
	"context"
	"fmt"
	"log"
	"strconv"
	"sync"
	"time"

	"github.com/VendoraHQ/Vendora/app/models"
	"github.com/VendoraHQ/Vendora/app/repository"
	"github.com/VendoraHQ/Vendora/internal/pkg/cache"
	"github.com/VendoraHQ/Vendora/internal/pkg/database"
	"github.com/VendoraHQ/Vendora/internal/pkg/tiers"
)

const (
	CacheKeyActiveProducts = "statistics:products:active"
	CacheKeyActiveVendors  = "statistics:vendors:active"
	CacheKeyTierVendors    = "statistics:tiers:%s" // format with the tier key
	CacheExpiration        = 30 * time.Minute
)

// DirectoryStats holds the public marketplace numbers
type DirectoryStats struct {
	ActiveProducts int            `json:"active_products"`
	ActiveVendors  int            `json:"active_vendors"`
	VendorsPerTier map[string]int `json:"vendors_per_tier"`
}

var (
	lastCacheUpdate     time.Time
	cacheUpdateMutex    sync.Mutex
	cacheUpdateInterval = 5 * time.Minute
)

// ShouldUpdateCache checks whether the refresh interval has elapsed
func ShouldUpdateCache() bool {
	cacheUpdateMutex.Lock()
	defer cacheUpdateMutex.Unlock()

	return time.Since(lastCacheUpdate) > cacheUpdateInterval
}

// UpdateCacheIfNeeded refreshes the cache when the interval has elapsed
func UpdateCacheIfNeeded() {
	if ShouldUpdateCache() {
		cacheUpdateMutex.Lock()
		defer cacheUpdateMutex.Unlock()

		if err := UpdateStatisticsCache(); err != nil {
			log.Printf("Error updating statistics cache: %v", err)
		} else {
			lastCacheUpdate = time.Now()
		}
	}
}

// ResetCacheUpdateTimer forces the next UpdateCacheIfNeeded to refresh
func ResetCacheUpdateTimer() {
	cacheUpdateMutex.Lock()
	defer cacheUpdateMutex.Unlock()

	lastCacheUpdate = time.Time{}
}

// UpdateStatisticsCache recomputes all marketplace statistics and stores them
// in the cache
func UpdateStatisticsCache() error {
	db := database.GetDB()

	var activeProducts int64
	if err := db.Model(&models.Product{}).Where("status = ?", models.PRODUCT_STATUS_ACTIVE).Count(&activeProducts).Error; err != nil {
		log.Printf("Error counting active products: %v", err)
		return err
	}

	var activeVendors int64
	if err := db.Model(&models.Vendor{}).Where("status = ?", models.VENDOR_STATUS_ACTIVE).Count(&activeVendors).Error; err != nil {
		log.Printf("Error counting active vendors: %v", err)
		return err
	}

	perTier, err := countVendorsPerTier()
	if err != nil {
		log.Printf("Error counting vendors per tier: %v", err)
		return err
	}

	if err := cache.Set(CacheKeyActiveProducts, strconv.FormatInt(activeProducts, 10), CacheExpiration); err != nil {
		log.Printf("Error caching active products: %v", err)
		return err
	}
	if err := cache.Set(CacheKeyActiveVendors, strconv.FormatInt(activeVendors, 10), CacheExpiration); err != nil {
		log.Printf("Error caching active vendors: %v", err)
		return err
	}
	for key, n := range perTier {
		if err := cache.Set(fmt.Sprintf(CacheKeyTierVendors, key), strconv.Itoa(n), CacheExpiration); err != nil {
			log.Printf("Error caching tier count for %s: %v", key, err)
			return err
		}
	}

	log.Printf("Statistics updated in cache: Active Products: %d, Active Vendors: %d",
		activeProducts, activeVendors)

	return nil
}

// countVendorsPerTier resolves the current tier assignments and counts the
// vendors in every declared tier
func countVendorsPerTier() (map[string]int, error) {
	src := repository.NewSubscriptionRepository(database.GetDB())
	assignments, err := tiers.ResolveAssignments(context.Background(), src, time.Now())
	if err != nil {
		return nil, err
	}

	out := make(map[string]int, len(tiers.Catalog()))
	for _, tier := range tiers.Catalog() {
		out[tier.Key] = len(assignments.VendorsInTier(tier.Key))
	}
	return out, nil
}

// GetActiveProducts returns the active product count from cache or database
func GetActiveProducts() int {
	val, err := cache.Get(CacheKeyActiveProducts)
	if err != nil {
		var count int64
		db := database.GetDB()
		if err := db.Model(&models.Product{}).Where("status = ?", models.PRODUCT_STATUS_ACTIVE).Count(&count).Error; err != nil {
			log.Printf("Error counting active products: %v", err)
			return 0
		}

		if err := cache.Set(CacheKeyActiveProducts, strconv.FormatInt(count, 10), CacheExpiration); err != nil {
			log.Printf("Error caching active products: %v", err)
		}

		return int(count)
	}

	count, err := strconv.ParseInt(val, 10, 64)
	if err != nil {
		return 0
	}

	return int(count)
}

// GetActiveVendors returns the active vendor count from cache or database
func GetActiveVendors() int {
	val, err := cache.Get(CacheKeyActiveVendors)
	if err != nil {
		var count int64
		db := database.GetDB()
		if err := db.Model(&models.Vendor{}).Where("status = ?", models.VENDOR_STATUS_ACTIVE).Count(&count).Error; err != nil {
			log.Printf("Error counting active vendors: %v", err)
			return 0
		}

		if err := cache.Set(CacheKeyActiveVendors, strconv.FormatInt(count, 10), CacheExpiration); err != nil {
			log.Printf("Error caching active vendors: %v", err)
		}

		return int(count)
	}

	count, err := strconv.ParseInt(val, 10, 64)
	if err != nil {
		return 0
	}

	return int(count)
}

// GetVendorsPerTier returns the vendor count per declared tier from cache,
// recomputing the whole map on a miss
func GetVendorsPerTier() map[string]int {
	out := make(map[string]int, len(tiers.Catalog()))

	for _, tier := range tiers.Catalog() {
		n, err := cache.GetInt(fmt.Sprintf(CacheKeyTierVendors, tier.Key))
		if err != nil {
			perTier, dbErr := countVendorsPerTier()
			if dbErr != nil {
				log.Printf("Error counting vendors per tier: %v", dbErr)
				return out
			}
			for key, count := range perTier {
				if cacheErr := cache.Set(fmt.Sprintf(CacheKeyTierVendors, key), strconv.Itoa(count), CacheExpiration); cacheErr != nil {
					log.Printf("Error caching tier count for %s: %v", key, cacheErr)
				}
			}
			return perTier
		}
		out[tier.Key] = n
	}

	return out
}

// GetDirectoryStats returns all marketplace statistics, refreshing the cache
// when the interval has elapsed
func GetDirectoryStats() DirectoryStats {
	UpdateCacheIfNeeded()

	return DirectoryStats{
		ActiveProducts: GetActiveProducts(),
		ActiveVendors:  GetActiveVendors(),
		VendorsPerTier: GetVendorsPerTier(),
	}
}
