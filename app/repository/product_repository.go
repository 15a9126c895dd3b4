package repository

import (
	"gorm.io/gorm"

	"github.com/VendoraHQ/Vendora/app/models"
)

// productRepository implements the ProductRepository interface
type productRepository struct {
	db *gorm.DB
}

// NewProductRepository creates a new product repository instance
func NewProductRepository(db *gorm.DB) ProductRepository {
	return &productRepository{db: db}
}

// Create creates a new product in the database
func (r *productRepository) Create(product *models.Product) error {
	return r.db.Create(product).Error
}

// GetByID retrieves a product by its ID
func (r *productRepository) GetByID(id uint) (*models.Product, error) {
	var product models.Product
	err := r.db.Preload("Vendor").Preload("Category").First(&product, id).Error
	if err != nil {
		return nil, err
	}
	return &product, nil
}

// GetByUUID retrieves a product by its public UUID
func (r *productRepository) GetByUUID(uuid string) (*models.Product, error) {
	var product models.Product
	err := r.db.Preload("Vendor").Preload("Category").Where("uuid = ?", uuid).First(&product).Error
	if err != nil {
		return nil, err
	}
	return &product, nil
}

// GetByVendorID retrieves a vendor's products with pagination
func (r *productRepository) GetByVendorID(vendorID uint, offset, limit int) ([]models.Product, error) {
	var products []models.Product
	err := r.db.Where("vendor_id = ?", vendorID).
		Order("created_at DESC, id DESC").Offset(offset).Limit(limit).Find(&products).Error
	return products, err
}

// Update updates an existing product in the database
func (r *productRepository) Update(product *models.Product) error {
	return r.db.Save(product).Error
}

// Delete soft deletes a product by its ID
func (r *productRepository) Delete(id uint) error {
	return r.db.Delete(&models.Product{}, id).Error
}

// Count returns the total number of products
func (r *productRepository) Count() (int64, error) {
	var count int64
	err := r.db.Model(&models.Product{}).Count(&count).Error
	return count, err
}

// CountActive returns the number of active products
func (r *productRepository) CountActive() (int64, error) {
	var count int64
	err := r.db.Model(&models.Product{}).Where("status = ?", models.PRODUCT_STATUS_ACTIVE).Count(&count).Error
	return count, err
}
