package db_models

import (
	"gorm.io/datatypes"
)

// Plan is the billing/display side of a tier: price, trial, marketing copy.
// Entitlement limits come from the compiled-in tier catalog, keyed by Tier.
type Plan struct {
	BaseModel
	Code        string           `gorm:"uniqueIndex"` // e.g. "essential_monthly", "premium_yearly"
	Tier        SubscriptionTier `gorm:"type:varchar(16);index"`
	Name        string
	Description *string
	Period      BillingPeriod `gorm:"type:varchar(8)"` // "month" | "year"
	PriceMinor  int64         // 499 = $4.99
	Currency    string        `gorm:"size:3"`
	TrialDays   int32         `gorm:"default:0"`
	IsActive    bool          `gorm:"default:true"`

	Highlights datatypes.JSON `gorm:"type:jsonb;default:'[]'"` // marketing bullet points
}
