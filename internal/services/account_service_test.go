package services

import (
	"context"
	"testing"

	"dreamoracle/internal/models/db_models"
)

func TestGetAllAccounts(t *testing.T) {
	free := newTestAccount(db_models.TierFree)
	premium := newTestAccount(db_models.TierPremium)
	repo := &fakeAccountRepo{accounts: map[string]*db_models.Account{
		free.ID.String():    free,
		premium.ID.String(): premium,
	}}
	svc := NewAccountService(repo, nil, nil)

	accounts, err := svc.GetAllAccounts(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(accounts) != 2 {
		t.Fatalf("got %d accounts, want 2", len(accounts))
	}

	seen := map[string]bool{}
	for _, a := range accounts {
		seen[a.SubscriptionTier] = true
	}
	if !seen["free"] || !seen["premium"] {
		t.Fatalf("tiers = %v", seen)
	}
}
