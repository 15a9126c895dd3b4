package repository

import (
	"context"
	"time"

	"gorm.io/gorm"

	"github.com/VendoraHQ/Vendora/app/models"
	"github.com/VendoraHQ/Vendora/internal/pkg/directory"
)

// VendorRepository defines the interface for vendor-related database operations
type VendorRepository interface {
	Create(vendor *models.Vendor) error
	GetByID(id uint) (*models.Vendor, error)
	GetByUUID(uuid string) (*models.Vendor, error)
	Update(vendor *models.Vendor) error
	Delete(id uint) error
	List(offset, limit int) ([]models.Vendor, error)
	Count() (int64, error)
	CountActive() (int64, error)
	Search(query string) ([]models.Vendor, error)
}

// ProductRepository defines the interface for product-related database operations
type ProductRepository interface {
	Create(product *models.Product) error
	GetByID(id uint) (*models.Product, error)
	GetByUUID(uuid string) (*models.Product, error)
	GetByVendorID(vendorID uint, offset, limit int) ([]models.Product, error)
	Update(product *models.Product) error
	Delete(id uint) error
	Count() (int64, error)
	CountActive() (int64, error)
}

// SubscriptionRepository defines the interface for vendor subscription
// operations. ActiveSubscriptions satisfies tiers.SubscriptionSource.
type SubscriptionRepository interface {
	Create(sub *models.VendorSubscription) error
	GetByID(id uint) (*models.VendorSubscription, error)
	GetByVendorID(vendorID uint) ([]models.VendorSubscription, error)
	ActiveSubscriptions(ctx context.Context, now time.Time) ([]models.VendorSubscription, error)
	ExpireOverdue(ctx context.Context, now time.Time) (int64, error)
	Count() (int64, error)
}

// CategoryRepository defines the interface for category operations
type CategoryRepository interface {
	Create(category *models.Category) error
	GetByID(id uint) (*models.Category, error)
	GetBySlug(slug string) (*models.Category, error)
	GetActive() ([]models.Category, error)
	Update(category *models.Category) error
	Delete(id uint) error
	SlugExists(slug string) (bool, error)
}

// GeoRepository defines the interface for state and city lookups
type GeoRepository interface {
	GetStates() ([]models.State, error)
	GetCitiesByState(stateID uint) ([]models.City, error)
}

// DirectoryRepository bundles the listing store and the pre-aggregated ranker
// behind the directory engine's contracts. Wiring decides whether the ranker
// half is actually handed to the paginator.
type DirectoryRepository interface {
	directory.ListingQuery
	directory.Ranker
}

// Repositories struct holds all repository instances
type Repositories struct {
	Vendor       VendorRepository
	Product      ProductRepository
	Subscription SubscriptionRepository
	Category     CategoryRepository
	Geo          GeoRepository
	Directory    DirectoryRepository
}

// NewRepositories creates a new instance of all repositories
func NewRepositories(db *gorm.DB) *Repositories {
	return &Repositories{
		Vendor:       NewVendorRepository(db),
		Product:      NewProductRepository(db),
		Subscription: NewSubscriptionRepository(db),
		Category:     NewCategoryRepository(db),
		Geo:          NewGeoRepository(db),
		Directory:    NewDirectoryRepository(db),
	}
}
