package tiers

import "testing"

func TestClassify(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{in: "Diamond", want: TierDiamond},
		{in: "Diamond Partner Annual", want: TierDiamond},
		{in: "GOLD", want: TierGold},
		{in: "Gold Membership (Quarterly)", want: TierGold},
		{in: "Visibility Booster", want: TierBooster},
		{in: "boost pack", want: TierBooster},
		{in: "Verified Certificate", want: TierCertified},
		{in: "Certified Supplier", want: TierCertified},
		{in: "Free Trial", want: TierTrial},
		{in: "", want: TierTrial},
		{in: "Legacy Plan 2019", want: TierTrial},
		{in: "  gold  ", want: TierGold},
		// first match in catalog order wins
		{in: "Diamond + Gold Combo", want: TierDiamond},
	}

	for _, tt := range tests {
		if got := Classify(tt.in); got != tt.want {
			t.Fatalf("Classify(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestCatalogOrder(t *testing.T) {
	cat := Catalog()
	if len(cat) != 5 {
		t.Fatalf("expected 5 declared tiers, got %d", len(cat))
	}
	for i := 1; i < len(cat); i++ {
		if cat[i-1].Priority <= cat[i].Priority {
			t.Fatalf("catalog not ordered by priority: %s (%d) before %s (%d)",
				cat[i-1].Key, cat[i-1].Priority, cat[i].Key, cat[i].Priority)
		}
	}
	if cat[0].Key != TierDiamond {
		t.Fatalf("expected DIAMOND first, got %s", cat[0].Key)
	}
	if Lowest().Key != TierTrial {
		t.Fatalf("expected TRIAL as lowest tier, got %s", Lowest().Key)
	}
	if Lowest().Priority <= UnsubscribedPriority {
		t.Fatalf("lowest declared tier must outrank the unsubscribed group")
	}
}

func TestCatalogReturnsCopy(t *testing.T) {
	cat := Catalog()
	cat[0].Priority = 1

	if fresh := Catalog(); fresh[0].Priority != 700 {
		t.Fatalf("Catalog must return a copy, mutation leaked: %d", fresh[0].Priority)
	}
}

func TestByKey(t *testing.T) {
	tier, ok := ByKey(TierGold)
	if !ok || tier.Label != "Gold" || tier.Priority != 600 {
		t.Fatalf("ByKey(GOLD) = %+v, %v", tier, ok)
	}
	if _, ok := ByKey("PLATINUM"); ok {
		t.Fatalf("expected unknown key to miss")
	}
}
