package repository

import (
	"gorm.io/gorm"

	"github.com/VendoraHQ/Vendora/app/models"
)

// vendorRepository implements the VendorRepository interface
type vendorRepository struct {
	db *gorm.DB
}

// NewVendorRepository creates a new vendor repository instance
func NewVendorRepository(db *gorm.DB) VendorRepository {
	return &vendorRepository{db: db}
}

// Create creates a new vendor in the database
func (r *vendorRepository) Create(vendor *models.Vendor) error {
	return r.db.Create(vendor).Error
}

// GetByID retrieves a vendor by its ID
func (r *vendorRepository) GetByID(id uint) (*models.Vendor, error) {
	var vendor models.Vendor
	err := r.db.Preload("State").Preload("City").First(&vendor, id).Error
	if err != nil {
		return nil, err
	}
	return &vendor, nil
}

// GetByUUID retrieves a vendor by its public UUID
func (r *vendorRepository) GetByUUID(uuid string) (*models.Vendor, error) {
	var vendor models.Vendor
	err := r.db.Preload("State").Preload("City").Where("uuid = ?", uuid).First(&vendor).Error
	if err != nil {
		return nil, err
	}
	return &vendor, nil
}

// Update updates an existing vendor in the database
func (r *vendorRepository) Update(vendor *models.Vendor) error {
	return r.db.Save(vendor).Error
}

// Delete soft deletes a vendor by its ID
func (r *vendorRepository) Delete(id uint) error {
	return r.db.Delete(&models.Vendor{}, id).Error
}

// List retrieves vendors with pagination
func (r *vendorRepository) List(offset, limit int) ([]models.Vendor, error) {
	var vendors []models.Vendor
	err := r.db.Order("company_name ASC").Offset(offset).Limit(limit).Find(&vendors).Error
	return vendors, err
}

// Count returns the total number of vendors
func (r *vendorRepository) Count() (int64, error) {
	var count int64
	err := r.db.Model(&models.Vendor{}).Count(&count).Error
	return count, err
}

// CountActive returns the number of vendors visible in the directory
func (r *vendorRepository) CountActive() (int64, error) {
	var count int64
	err := r.db.Model(&models.Vendor{}).Where("status = ?", models.VENDOR_STATUS_ACTIVE).Count(&count).Error
	return count, err
}

// Search finds vendors by company name
func (r *vendorRepository) Search(query string) ([]models.Vendor, error) {
	var vendors []models.Vendor
	err := r.db.Where("company_name LIKE ?", "%"+query+"%").
		Order("company_name ASC").Limit(50).Find(&vendors).Error
	return vendors, err
}
