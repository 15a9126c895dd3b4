package models

import (
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	VENDOR_STATUS_ACTIVE    = "active"
	VENDOR_STATUS_PENDING   = "pending"
	VENDOR_STATUS_SUSPENDED = "suspended"
)

type Vendor struct {
	ID              uint           `gorm:"primaryKey" json:"id"`
	UUID            string         `gorm:"type:char(36) CHARACTER SET utf8 COLLATE utf8_bin;uniqueIndex;not null" json:"uuid"`
	CompanyName     string         `gorm:"type:varchar(200);not null;index" json:"company_name" validate:"required,min=2,max=200"`
	ContactEmail    string         `gorm:"type:varchar(200) CHARACTER SET utf8 COLLATE utf8_bin;uniqueIndex" json:"contact_email" validate:"required,email,min=5,max=200"`
	Phone           string         `gorm:"type:varchar(20);default:null" json:"phone" validate:"max=20"`
	Website         string         `gorm:"type:varchar(255);default:null" json:"website" validate:"omitempty,url,max=255"`
	About           string         `gorm:"type:text" json:"about" validate:"max=2000"`
	StateID         *uint          `gorm:"index" json:"state_id,omitempty"`
	State           *State         `gorm:"foreignKey:StateID" json:"state,omitempty"`
	CityID          *uint          `gorm:"index" json:"city_id,omitempty"`
	City            *City          `gorm:"foreignKey:CityID" json:"city,omitempty"`
	Status          string         `gorm:"type:varchar(50);default:'pending';index" json:"status" validate:"oneof=active pending suspended"`
	ImpressionCount int64          `gorm:"default:0" json:"impression_count"`
	CreatedAt       time.Time      `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt       time.Time      `gorm:"autoUpdateTime" json:"updated_at"`
	DeletedAt       gorm.DeletedAt `gorm:"index" json:"-"`
}

func (v *Vendor) Validate() error {
	val := validator.New()

	return val.Struct(v)
}

// BeforeCreate generates the public UUID if none was set
func (v *Vendor) BeforeCreate(tx *gorm.DB) error {
	if v.UUID == "" {
		v.UUID = uuid.New().String()
	}

	return nil
}

// IsActive reports whether the vendor is visible in the public directory
func (v *Vendor) IsActive() bool {
	return v.Status == VENDOR_STATUS_ACTIVE
}
