package services

import (
	"testing"

	"dreamoracle/internal/models/db_models"
)

func TestAllowanceWireValue(t *testing.T) {
	tests := []struct {
		name      string
		allowance Allowance
		want      int
	}{
		{"unlimited maps to -1", Unlimited(), -1},
		{"unavailable maps to 0", Unavailable(), 0},
		{"capped maps to its cap", Capped(10), 10},
		{"capped one", Capped(1), 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.allowance.WireValue(); got != tt.want {
				t.Fatalf("WireValue() = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestCappedNonPositiveBecomesUnavailable(t *testing.T) {
	for _, n := range []int{0, -1, -100} {
		a := Capped(n)
		if !a.IsUnavailable() {
			t.Fatalf("Capped(%d) should be unavailable", n)
		}
		if a.WireValue() != 0 {
			t.Fatalf("Capped(%d).WireValue() = %d, want 0", n, a.WireValue())
		}
	}
}

func TestUnlimitedMatchesWireSentinel(t *testing.T) {
	c := DefaultCatalog()
	actions := []db_models.MeteredAction{
		db_models.ActionDream,
		db_models.ActionInterpretation,
		db_models.ActionTranscription,
		db_models.ActionExport,
	}

	for _, tier := range c.Tiers() {
		for _, action := range actions {
			a := c.LimitFor(tier, action)
			if a.IsUnlimited() != (a.WireValue() == -1) {
				t.Errorf("%s/%s: IsUnlimited=%v but WireValue=%d", tier, action, a.IsUnlimited(), a.WireValue())
			}
		}
	}
}

// Every action's allowance must be non-decreasing from free to essential to
// premium, treating unlimited as larger than any cap. A catalog edit that
// breaks this gives downgrade-shaped upgrade suggestions.
func TestDefaultCatalogMonotonicity(t *testing.T) {
	c := DefaultCatalog()
	actions := []db_models.MeteredAction{
		db_models.ActionDream,
		db_models.ActionInterpretation,
		db_models.ActionTranscription,
		db_models.ActionExport,
	}

	rank := func(a Allowance) int {
		if a.IsUnlimited() {
			return int(^uint(0) >> 1)
		}
		return a.WireValue()
	}

	tiers := c.Tiers()
	for _, action := range actions {
		for i := 1; i < len(tiers); i++ {
			lower := c.LimitFor(tiers[i-1], action)
			higher := c.LimitFor(tiers[i], action)
			if rank(higher) < rank(lower) {
				t.Errorf("%s: %s offers less than %s (%d < %d)",
					action, tiers[i], tiers[i-1], rank(higher), rank(lower))
			}
		}
	}
}

func TestDefaultCatalogFeaturesGrow(t *testing.T) {
	c := DefaultCatalog()
	features := []TierFeature{
		FeatureCalendar, FeatureAdvancedStats, FeatureNotifications,
		FeatureCustomThemes, FeatureSymbolDictionary, FeaturePatternAnalysis,
		FeaturePrioritySupport, FeatureCloudBackup,
	}

	tiers := c.Tiers()
	for _, f := range features {
		for i := 1; i < len(tiers); i++ {
			if c.HasFeature(tiers[i-1], f) && !c.HasFeature(tiers[i], f) {
				t.Errorf("feature %s present on %s but missing on %s", f, tiers[i-1], tiers[i])
			}
		}
	}
}

func TestUpgradeFor(t *testing.T) {
	c := DefaultCatalog()

	tests := []struct {
		name     string
		tier     db_models.SubscriptionTier
		action   db_models.MeteredAction
		want     db_models.SubscriptionTier
		wantSome bool
	}{
		{"premium never upgrades", db_models.TierPremium, db_models.ActionDream, "", false},
		{"free with essential allowance goes essential", db_models.TierFree, db_models.ActionInterpretation, db_models.TierEssential, true},
		{"free dream quota goes essential", db_models.TierFree, db_models.ActionDream, db_models.TierEssential, true},
		{"essential finite cap goes premium", db_models.TierEssential, db_models.ActionTranscription, db_models.TierPremium, true},
		{"essential unlimited action has no upgrade", db_models.TierEssential, db_models.ActionDream, "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := c.UpgradeFor(tt.tier, tt.action)
			if ok != tt.wantSome || got != tt.want {
				t.Fatalf("UpgradeFor(%s, %s) = (%q, %v), want (%q, %v)",
					tt.tier, tt.action, got, ok, tt.want, tt.wantSome)
			}
		})
	}

	// Free tier is pointed past essential when essential does not offer the
	// action at all.
	skipping := NewCatalog(map[db_models.SubscriptionTier]TierLimits{
		db_models.TierFree: {
			Allowances: map[db_models.MeteredAction]Allowance{
				db_models.ActionExport: Unavailable(),
			},
		},
		db_models.TierEssential: {
			Allowances: map[db_models.MeteredAction]Allowance{
				db_models.ActionExport: Unavailable(),
			},
		},
		db_models.TierPremium: {
			Allowances: map[db_models.MeteredAction]Allowance{
				db_models.ActionExport: Unlimited(),
			},
		},
	})
	got, ok := skipping.UpgradeFor(db_models.TierFree, db_models.ActionExport)
	if !ok || got != db_models.TierPremium {
		t.Fatalf("UpgradeFor(free, export) on skipping catalog = (%q, %v), want (premium, true)", got, ok)
	}
}

func TestLimitForUnknownTierDegradesToFree(t *testing.T) {
	c := DefaultCatalog()
	a := c.LimitFor(db_models.SubscriptionTier("platinum"), db_models.ActionDream)
	want := c.LimitFor(db_models.TierFree, db_models.ActionDream)
	if a != want {
		t.Fatalf("unknown tier should use free limits, got %+v want %+v", a, want)
	}
}
