package models

import "time"

type City struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	StateID   uint      `gorm:"not null;index" json:"state_id"`
	State     State     `gorm:"foreignKey:StateID" json:"state,omitempty"`
	Name      string    `gorm:"type:varchar(150);not null;index" json:"name"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}
