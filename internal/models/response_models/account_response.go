package response_models

type AccountLoginResponse struct {
	Token      string `json:"token"`
	HasPremium bool   `json:"has_premium"`
}

type AccountResponse struct {
	ID                 string `json:"id"`
	Name               string `json:"name"`
	Email              string `json:"email"`
	SubscriptionTier   string `json:"subscription_tier"`
	SubscriptionStatus string `json:"subscription_status"`
	SubscriptionEnds   *int64 `json:"subscription_ends,omitempty"`
}
