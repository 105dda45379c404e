package db_models

type SubscriptionTier string

const (
	TierFree      SubscriptionTier = "free"
	TierEssential SubscriptionTier = "essential"
	TierPremium   SubscriptionTier = "premium"
)

type Account struct {
	BaseModel
	Name         string
	Email        string `gorm:"unique"`
	PasswordHash string
	Role         string `gorm:"default:'user'"`

	// Subscription snapshot consumed by the credit checker. The stored tier is
	// what the user paid for; whether it still applies is decided per request.
	SubscriptionTier   SubscriptionTier   `gorm:"type:varchar(16);default:'free';index"`
	SubscriptionStatus SubscriptionStatus `gorm:"type:varchar(16);default:'active'"`
	SubscriptionEnds   *int64
	// CreditsResetAt anchors the rolling billing window to the user's personal
	// day-of-month. Set once at signup, moved by the payment webhook.
	CreditsResetAt int64

	Dreams []Dream
}
