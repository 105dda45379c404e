package response_models

import "dreamoracle/internal/models/db_models"

// CreditResult is the outcome of a single entitlement check. Limit keeps the
// wire convention the clients already speak: -1 unlimited, 0 unavailable,
// N monthly cap.
type CreditResult struct {
	Allowed     bool `json:"allowed"`
	Used        int  `json:"used"`
	Limit       int  `json:"limit"`
	Remaining   int  `json:"remaining"`
	IsUnlimited bool `json:"is_unlimited"`

	Tier db_models.SubscriptionTier `json:"tier"`

	UpgradeRecommendation db_models.SubscriptionTier `json:"upgrade_recommendation,omitempty"`
	Message               string                     `json:"message,omitempty"`
}

type ActionUsage struct {
	Used        int  `json:"used"`
	Limit       int  `json:"limit"`
	Remaining   int  `json:"remaining"`
	IsUnlimited bool `json:"is_unlimited"`
}

type UsageStats struct {
	Tier db_models.SubscriptionTier `json:"tier"`

	Dreams          ActionUsage `json:"dreams"`
	Interpretations ActionUsage `json:"interpretations"`
	Transcriptions  ActionUsage `json:"transcriptions"`
	Exports         ActionUsage `json:"exports"`

	// ResetDate is when the current billing window rolls over (unix seconds).
	ResetDate int64 `json:"reset_date"`
}
