package repository

import (
	"context"
	"time"

	"gorm.io/gorm"

	"github.com/VendoraHQ/Vendora/app/models"
)

// subscriptionRepository implements the SubscriptionRepository interface
type subscriptionRepository struct {
	db *gorm.DB
}

// NewSubscriptionRepository creates a new subscription repository instance
func NewSubscriptionRepository(db *gorm.DB) SubscriptionRepository {
	return &subscriptionRepository{db: db}
}

// Create creates a new vendor subscription in the database
func (r *subscriptionRepository) Create(sub *models.VendorSubscription) error {
	return r.db.Create(sub).Error
}

// GetByID retrieves a subscription by its ID
func (r *subscriptionRepository) GetByID(id uint) (*models.VendorSubscription, error) {
	var sub models.VendorSubscription
	err := r.db.First(&sub, id).Error
	if err != nil {
		return nil, err
	}
	return &sub, nil
}

// GetByVendorID retrieves all subscriptions of a vendor, newest first
func (r *subscriptionRepository) GetByVendorID(vendorID uint) ([]models.VendorSubscription, error) {
	var subs []models.VendorSubscription
	err := r.db.Where("vendor_id = ?", vendorID).
		Order("started_at DESC, id DESC").Find(&subs).Error
	return subs, err
}

// ActiveSubscriptions returns every subscription that currently grants a
// tier: status ACTIVE and open ended or ending after the given instant. Rows
// come back most recently started first so the tier resolver can keep the
// first row per vendor.
func (r *subscriptionRepository) ActiveSubscriptions(ctx context.Context, now time.Time) ([]models.VendorSubscription, error) {
	var subs []models.VendorSubscription
	err := r.db.WithContext(ctx).
		Where("status = ?", models.SubscriptionStatusActive).
		Where("ends_at IS NULL OR ends_at > ?", now).
		Order("started_at DESC, id DESC").
		Find(&subs).Error
	return subs, err
}

// ExpireOverdue flips ACTIVE subscriptions whose end date has passed to
// EXPIRED and reports how many rows changed. Hygiene only; readers never
// trust the status column without the date predicate.
func (r *subscriptionRepository) ExpireOverdue(ctx context.Context, now time.Time) (int64, error) {
	res := r.db.WithContext(ctx).
		Model(&models.VendorSubscription{}).
		Where("status = ?", models.SubscriptionStatusActive).
		Where("ends_at IS NOT NULL AND ends_at <= ?", now).
		Update("status", models.SubscriptionStatusExpired)
	return res.RowsAffected, res.Error
}

// Count returns the total number of subscriptions
func (r *subscriptionRepository) Count() (int64, error) {
	var count int64
	err := r.db.Model(&models.VendorSubscription{}).Count(&count).Error
	return count, err
}
