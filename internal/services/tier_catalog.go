package services

import (
	"dreamoracle/internal/models/db_models"
)

type TierFeature string

const (
	FeatureCalendar         TierFeature = "calendar"
	FeatureAdvancedStats    TierFeature = "advanced_statistics"
	FeatureNotifications    TierFeature = "notifications"
	FeatureCustomThemes     TierFeature = "custom_themes"
	FeatureSymbolDictionary TierFeature = "symbol_dictionary"
	FeaturePatternAnalysis  TierFeature = "pattern_analysis"
	FeaturePrioritySupport  TierFeature = "priority_support"
	FeatureCloudBackup      TierFeature = "cloud_backup"
)

type allowanceKind int

const (
	allowanceCapped allowanceKind = iota
	allowanceUnlimited
	allowanceUnavailable
)

// Allowance is a monthly quota for one metered action. The tagged form keeps
// "unlimited" and "not offered" out of the integer space; WireValue restores
// the -1/0/N convention the API clients expect.
type Allowance struct {
	kind allowanceKind
	cap  int
}

func Unlimited() Allowance   { return Allowance{kind: allowanceUnlimited} }
func Unavailable() Allowance { return Allowance{kind: allowanceUnavailable} }

func Capped(n int) Allowance {
	if n <= 0 {
		return Unavailable()
	}
	return Allowance{kind: allowanceCapped, cap: n}
}

func (a Allowance) IsUnlimited() bool   { return a.kind == allowanceUnlimited }
func (a Allowance) IsUnavailable() bool { return a.kind == allowanceUnavailable }

// Cap returns the monthly limit; only meaningful for capped allowances.
func (a Allowance) Cap() int { return a.cap }

func (a Allowance) WireValue() int {
	switch a.kind {
	case allowanceUnlimited:
		return -1
	case allowanceUnavailable:
		return 0
	default:
		return a.cap
	}
}

type TierLimits struct {
	Allowances map[db_models.MeteredAction]Allowance
	Features   map[TierFeature]bool
}

// Catalog is the static entitlement table. It is built once and injected into
// the services that need it; nothing consults a package global, so tests can
// substitute alternate tables.
type Catalog struct {
	tiers map[db_models.SubscriptionTier]TierLimits
	order []db_models.SubscriptionTier
}

func NewCatalog(tiers map[db_models.SubscriptionTier]TierLimits) *Catalog {
	return &Catalog{
		tiers: tiers,
		order: []db_models.SubscriptionTier{
			db_models.TierFree,
			db_models.TierEssential,
			db_models.TierPremium,
		},
	}
}

// DefaultCatalog is the production table. Allowances are non-decreasing from
// free to premium for every action; tier_catalog_test.go guards that.
func DefaultCatalog() *Catalog {
	return NewCatalog(map[db_models.SubscriptionTier]TierLimits{
		db_models.TierFree: {
			Allowances: map[db_models.MeteredAction]Allowance{
				db_models.ActionDream:          Capped(10),
				db_models.ActionInterpretation: Capped(2),
				db_models.ActionTranscription:  Unavailable(),
				db_models.ActionExport:         Unavailable(),
			},
			Features: map[TierFeature]bool{},
		},
		db_models.TierEssential: {
			Allowances: map[db_models.MeteredAction]Allowance{
				db_models.ActionDream:          Unlimited(),
				db_models.ActionInterpretation: Capped(30),
				db_models.ActionTranscription:  Capped(10),
				db_models.ActionExport:         Capped(5),
			},
			Features: map[TierFeature]bool{
				FeatureCalendar:         true,
				FeatureNotifications:    true,
				FeatureSymbolDictionary: true,
			},
		},
		db_models.TierPremium: {
			Allowances: map[db_models.MeteredAction]Allowance{
				db_models.ActionDream:          Unlimited(),
				db_models.ActionInterpretation: Unlimited(),
				db_models.ActionTranscription:  Unlimited(),
				db_models.ActionExport:         Unlimited(),
			},
			Features: map[TierFeature]bool{
				FeatureCalendar:         true,
				FeatureAdvancedStats:    true,
				FeatureNotifications:    true,
				FeatureCustomThemes:     true,
				FeatureSymbolDictionary: true,
				FeaturePatternAnalysis:  true,
				FeaturePrioritySupport:  true,
				FeatureCloudBackup:      true,
			},
		},
	})
}

// limitsFor falls back to the free tier for a tier value the table does not
// know, so a bad row in the accounts table degrades instead of panicking.
func (c *Catalog) limitsFor(tier db_models.SubscriptionTier) TierLimits {
	if limits, ok := c.tiers[tier]; ok {
		return limits
	}
	return c.tiers[db_models.TierFree]
}

func (c *Catalog) LimitFor(tier db_models.SubscriptionTier, action db_models.MeteredAction) Allowance {
	return c.limitsFor(tier).Allowances[action]
}

func (c *Catalog) IsUnlimited(tier db_models.SubscriptionTier, action db_models.MeteredAction) bool {
	return c.LimitFor(tier, action).IsUnlimited()
}

func (c *Catalog) HasFeature(tier db_models.SubscriptionTier, feature TierFeature) bool {
	return c.limitsFor(tier).Features[feature]
}

// Tiers returns the catalog's tiers from lowest to highest.
func (c *Catalog) Tiers() []db_models.SubscriptionTier {
	return c.order
}

// UpgradeFor suggests the tier a blocked user should move to for more of the
// given action. Premium users get nothing. Free users are pointed at essential
// unless essential does not offer the action at all, in which case premium.
// Essential users are pointed at premium only when that actually removes a
// finite cap.
func (c *Catalog) UpgradeFor(tier db_models.SubscriptionTier, action db_models.MeteredAction) (db_models.SubscriptionTier, bool) {
	switch tier {
	case db_models.TierPremium:
		return "", false
	case db_models.TierEssential:
		current := c.LimitFor(db_models.TierEssential, action)
		if !current.IsUnlimited() && c.IsUnlimited(db_models.TierPremium, action) {
			return db_models.TierPremium, true
		}
		return "", false
	default:
		if c.LimitFor(db_models.TierEssential, action).IsUnavailable() {
			return db_models.TierPremium, true
		}
		return db_models.TierEssential, true
	}
}
