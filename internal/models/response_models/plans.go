package response_models

import "github.com/google/uuid"

type SubscriptionPlan struct {
	ID          uuid.UUID `json:"id"`
	Code        string    `json:"code"` // e.g. "essential_monthly"
	Tier        string    `json:"tier"`
	Name        string    `json:"name"`
	Description *string   `json:"description,omitempty"`
	Period      string    `json:"period"` // "month" | "year"
	Price       int64     `json:"price"`  // minor units
	Currency    string    `json:"currency"`
	TrialDays   int32     `json:"trial_days"`
	IsActive    bool      `json:"is_active"`
	Highlights  []string  `json:"highlights,omitempty"`
}

type CreateCheckoutResponse struct {
	OrderCode    int64  `json:"order_code"`
	Amount       int64  `json:"amount"`
	PaymentURL   string `json:"payment_url"`
	ProviderName string `json:"provider"`
}
