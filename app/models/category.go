package models

import (
	"time"

	"github.com/go-playground/validator/v10"
)

type Category struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Name      string    `gorm:"type:varchar(150);not null" json:"name" validate:"required,min=2,max=150"`
	Slug      string    `gorm:"type:varchar(150) CHARACTER SET utf8 COLLATE utf8_bin;uniqueIndex;not null" json:"slug" validate:"required,min=2,max=150"`
	ParentID  *uint     `gorm:"index" json:"parent_id,omitempty"`
	Parent    *Category `gorm:"foreignKey:ParentID" json:"-"`
	IsActive  bool      `gorm:"default:true;index" json:"is_active"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

func (c *Category) Validate() error {
	v := validator.New()

	return v.Struct(c)
}
