package tiers

import "strings"

// Tier keys are stable identifiers used in API payloads and the ranking view.
// Labels are for display only.
const (
	TierDiamond   = "DIAMOND"
	TierGold      = "GOLD"
	TierBooster   = "BOOSTER"
	TierCertified = "CERTIFIED"
	TierTrial     = "TRIAL"
)

// UnsubscribedPriority ranks below every declared tier. Vendors without an
// active subscription are grouped there during pagination; their rows are
// still annotated with the lowest declared tier.
const UnsubscribedPriority = 0

// Tier is one priority band of the public directory. Higher priority lists
// earlier.
type Tier struct {
	Key      string `json:"key"`
	Label    string `json:"label"`
	Priority int    `json:"priority"`
}

// catalog order is the ranking order, highest priority first.
var catalog = []Tier{
	{Key: TierDiamond, Label: "Diamond", Priority: 700},
	{Key: TierGold, Label: "Gold", Priority: 600},
	{Key: TierBooster, Label: "Booster", Priority: 400},
	{Key: TierCertified, Label: "Certified", Priority: 300},
	{Key: TierTrial, Label: "Trial", Priority: 100},
}

// Catalog returns the declared tiers, highest priority first.
func Catalog() []Tier {
	out := make([]Tier, len(catalog))
	copy(out, catalog)

	return out
}

// ByKey looks up a declared tier by its key.
func ByKey(key string) (Tier, bool) {
	for _, t := range catalog {
		if t.Key == key {
			return t, true
		}
	}

	return Tier{}, false
}

// Lowest returns the lowest declared tier.
func Lowest() Tier {
	return catalog[len(catalog)-1]
}

// Classify maps a billing plan name to a tier key. Matching is substring
// based so marketing renames like "Diamond Partner Annual" keep resolving;
// the first match in catalog order wins. Unknown or empty names fall back
// to TRIAL. The directory_rankings view mirrors this keyword mapping, keep
// the two in sync.
func Classify(planName string) string {
	name := strings.ToLower(strings.TrimSpace(planName))

	switch {
	case strings.Contains(name, "diamond"):
		return TierDiamond
	case strings.Contains(name, "gold"):
		return TierGold
	case strings.Contains(name, "boost"):
		return TierBooster
	case strings.Contains(name, "certificate"), strings.Contains(name, "certified"):
		return TierCertified
	case strings.Contains(name, "trial"):
		return TierTrial
	default:
		return TierTrial
	}
}
