package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestVendorSubscriptionIsCurrentlyActive(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	past := now.Add(-24 * time.Hour)
	future := now.Add(24 * time.Hour)

	open := &VendorSubscription{Status: SubscriptionStatusActive, StartedAt: past}
	assert.True(t, open.IsCurrentlyActive(now), "open-ended ACTIVE subscription should be active")

	running := &VendorSubscription{Status: SubscriptionStatusActive, StartedAt: past, EndsAt: &future}
	assert.True(t, running.IsCurrentlyActive(now))

	// ends_at has passed but the expiry sweep has not flipped the status yet
	lagging := &VendorSubscription{Status: SubscriptionStatusActive, StartedAt: past, EndsAt: &past}
	assert.False(t, lagging.IsCurrentlyActive(now), "date predicate must win over stale ACTIVE status")

	expired := &VendorSubscription{Status: SubscriptionStatusExpired, StartedAt: past, EndsAt: &future}
	assert.False(t, expired.IsCurrentlyActive(now))

	cancelled := &VendorSubscription{Status: SubscriptionStatusCancelled, StartedAt: past}
	assert.False(t, cancelled.IsCurrentlyActive(now))
}

func TestVendorSubscriptionBoundaryEnd(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

	// ends_at exactly now counts as ended
	s := &VendorSubscription{Status: SubscriptionStatusActive, StartedAt: now.Add(-time.Hour), EndsAt: &now}
	assert.False(t, s.IsCurrentlyActive(now))
}
