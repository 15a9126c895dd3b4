package tiers

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/VendoraHQ/Vendora/app/models"
)

// SubscriptionSource yields the subscriptions that currently grant a tier:
// status ACTIVE and not ended at the given instant, ordered most recently
// started first. The data layer supplies the ordering.
type SubscriptionSource interface {
	ActiveSubscriptions(ctx context.Context, now time.Time) ([]models.VendorSubscription, error)
}

// Assignments is the resolved vendor to tier mapping for a single request.
// It is never cached across requests, a subscription bought mid-session must
// show up on the next page load.
type Assignments struct {
	planByVendor map[uint]string
	tierByVendor map[uint]string
}

// ResolveAssignments maps every actively subscribed vendor to its tier. A
// vendor with several active subscriptions keeps the most recently started
// one; the source returns rows newest first, so the first row per vendor wins.
func ResolveAssignments(ctx context.Context, src SubscriptionSource, now time.Time) (*Assignments, error) {
	subs, err := src.ActiveSubscriptions(ctx, now)
	if err != nil {
		return nil, fmt.Errorf("resolve tier assignments: %w", err)
	}

	a := &Assignments{
		planByVendor: make(map[uint]string, len(subs)),
		tierByVendor: make(map[uint]string, len(subs)),
	}
	for _, sub := range subs {
		if _, seen := a.planByVendor[sub.VendorID]; seen {
			continue
		}
		a.planByVendor[sub.VendorID] = sub.PlanName
		a.tierByVendor[sub.VendorID] = Classify(sub.PlanName)
	}

	return a, nil
}

// TierKeyFor returns the assigned tier key and whether the vendor holds an
// active subscription at all.
func (a *Assignments) TierKeyFor(vendorID uint) (string, bool) {
	key, ok := a.tierByVendor[vendorID]

	return key, ok
}

// PlanNameFor returns the winning plan name for a vendor.
func (a *Assignments) PlanNameFor(vendorID uint) (string, bool) {
	plan, ok := a.planByVendor[vendorID]

	return plan, ok
}

// VendorsInTier returns the ids of vendors assigned to the given tier key in
// ascending order. Sorted so the SQL built from it is deterministic.
func (a *Assignments) VendorsInTier(key string) []uint {
	var ids []uint
	for vendorID, tierKey := range a.tierByVendor {
		if tierKey == key {
			ids = append(ids, vendorID)
		}
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })

	return ids
}

// ActiveVendorIDs returns every actively subscribed vendor id in ascending
// order. The pagination fallback excludes this whole set to form the
// unsubscribed group.
func (a *Assignments) ActiveVendorIDs() []uint {
	ids := make([]uint, 0, len(a.tierByVendor))
	for vendorID := range a.tierByVendor {
		ids = append(ids, vendorID)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })

	return ids
}

// AnnotationFor returns the tier a vendor's rows are labeled with. Vendors
// without an active subscription are labeled with the lowest declared tier.
func (a *Assignments) AnnotationFor(vendorID uint) Tier {
	key, ok := a.tierByVendor[vendorID]
	if !ok {
		return Lowest()
	}
	tier, ok := ByKey(key)
	if !ok {
		return Lowest()
	}

	return tier
}
