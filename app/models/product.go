package models

import (
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	PRODUCT_STATUS_ACTIVE   = "active"
	PRODUCT_STATUS_INACTIVE = "inactive"
)

type Product struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	UUID        string    `gorm:"type:char(36) CHARACTER SET utf8 COLLATE utf8_bin;uniqueIndex;not null" json:"uuid"`
	VendorID    uint      `gorm:"not null;index:idx_products_vendor_status,priority:1" json:"vendor_id"`
	Vendor      Vendor    `gorm:"foreignKey:VendorID" json:"vendor,omitempty"`
	CategoryID  *uint     `gorm:"index" json:"category_id,omitempty"`
	Category    *Category `gorm:"foreignKey:CategoryID" json:"category,omitempty"`
	Name        string    `gorm:"type:varchar(255);not null;index" json:"name" validate:"required,min=2,max=255"`
	Description string    `gorm:"type:text" json:"description" validate:"max=5000"`
	Price       float64   `gorm:"type:decimal(12,2);index" json:"price" validate:"gte=0"`
	Unit        string    `gorm:"type:varchar(50);default:null" json:"unit" validate:"max=50"`
	MinOrderQty int       `gorm:"default:1" json:"min_order_qty" validate:"gte=1"`
	// denormalized vendor location at listing time, used by directory filters
	StateID   *uint          `gorm:"index" json:"state_id,omitempty"`
	CityID    *uint          `gorm:"index" json:"city_id,omitempty"`
	ImageURL  string         `gorm:"type:varchar(255);default:null" json:"image_url" validate:"max=255"`
	Status    string         `gorm:"type:varchar(50);default:'active';index:idx_products_vendor_status,priority:2" json:"status" validate:"oneof=active inactive"`
	CreatedAt time.Time      `gorm:"autoCreateTime;index" json:"created_at"`
	UpdatedAt time.Time      `gorm:"autoUpdateTime" json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

func (p *Product) Validate() error {
	v := validator.New()

	return v.Struct(p)
}

// BeforeCreate generates the public UUID if none was set
func (p *Product) BeforeCreate(tx *gorm.DB) error {
	if p.UUID == "" {
		p.UUID = uuid.New().String()
	}

	return nil
}

// IsActive reports whether the product is visible in the public directory
func (p *Product) IsActive() bool {
	return p.Status == PRODUCT_STATUS_ACTIVE
}
