package models

import "time"

const (
	SubscriptionStatusActive    = "ACTIVE"
	SubscriptionStatusExpired   = "EXPIRED"
	SubscriptionStatusCancelled = "CANCELLED"
)

// VendorSubscription records a purchased directory plan. The plan name arrives
// as free text from billing; the tier is derived from it at read time, so a
// renamed plan never needs a schema change.
type VendorSubscription struct {
	ID        uint       `gorm:"primaryKey" json:"id"`
	VendorID  uint       `gorm:"not null;index:idx_vendor_subscriptions_vendor_started,priority:1" json:"vendor_id"`
	Vendor    Vendor     `gorm:"foreignKey:VendorID" json:"vendor,omitempty"`
	PlanName  string     `gorm:"type:varchar(191);not null" json:"plan_name"`
	Status    string     `gorm:"type:varchar(32);not null;default:'ACTIVE';index:idx_vendor_subscriptions_status_ends,priority:1" json:"status"`
	StartedAt time.Time  `gorm:"type:timestamp;not null;index:idx_vendor_subscriptions_vendor_started,priority:2" json:"started_at"`
	EndsAt    *time.Time `gorm:"type:timestamp;default:null;index:idx_vendor_subscriptions_status_ends,priority:2" json:"ends_at,omitempty"`
	Amount    float64    `gorm:"type:decimal(12,2);default:0" json:"amount"`
	CreatedAt time.Time  `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time  `gorm:"autoUpdateTime" json:"updated_at"`
}

// IsCurrentlyActive reports whether the subscription grants a tier at the
// given instant: status ACTIVE and not ended. Status alone is never enough,
// the expiry sweep runs on an interval and can lag behind ends_at.
func (s *VendorSubscription) IsCurrentlyActive(now time.Time) bool {
	if s.Status != SubscriptionStatusActive {
		return false
	}

	return s.EndsAt == nil || s.EndsAt.After(now)
}
