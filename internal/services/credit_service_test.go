package services

import (
	"context"
	"errors"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"

	"dreamoracle/internal/models/db_models"
)

type fakeAccountRepo struct {
	accounts map[string]*db_models.Account
	err      error
}

func (f *fakeAccountRepo) Insert(ctx context.Context, account *db_models.Account) error {
	f.accounts[account.ID.String()] = account
	return nil
}

func (f *fakeAccountRepo) FindById(ctx context.Context, id string) (*db_models.Account, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.accounts[id], nil
}

func (f *fakeAccountRepo) FindByEmail(ctx context.Context, email string) (*db_models.Account, error) {
	for _, a := range f.accounts {
		if a.Email == email {
			return a, nil
		}
	}
	return nil, nil
}

func (f *fakeAccountRepo) ListAll(ctx context.Context) ([]db_models.Account, error) {
	if f.err != nil {
		return nil, f.err
	}
	out := make([]db_models.Account, 0, len(f.accounts))
	for _, a := range f.accounts {
		out = append(out, *a)
	}
	return out, nil
}

func (f *fakeAccountRepo) UpdatePassword(ctx context.Context, email, passwordHash string) error {
	return nil
}

type usageEntry struct {
	accountID uuid.UUID
	action    db_models.MeteredAction
	at        int64
}

// fakeUsageLedger keeps the append-only ledger in memory and counts how often
// each path is hit, so tests can assert the unlimited fast path skips the
// count query entirely.
type fakeUsageLedger struct {
	entries    []usageEntry
	countCalls int
	recordErr  error
}

func (f *fakeUsageLedger) Record(ctx context.Context, accountID uuid.UUID, action db_models.MeteredAction, metadata datatypes.JSON) error {
	if f.recordErr != nil {
		return f.recordErr
	}
	f.entries = append(f.entries, usageEntry{accountID: accountID, action: action, at: time.Now().Unix()})
	return nil
}

func (f *fakeUsageLedger) CountSince(ctx context.Context, accountID uuid.UUID, action db_models.MeteredAction, since int64) (int64, error) {
	f.countCalls++
	var n int64
	for _, e := range f.entries {
		if e.accountID == accountID && e.action == action && e.at >= since {
			n++
		}
	}
	return n, nil
}

func newTestAccount(tier db_models.SubscriptionTier) *db_models.Account {
	a := &db_models.Account{
		Email:              string(tier) + "@example.com",
		SubscriptionTier:   tier,
		SubscriptionStatus: db_models.SubStatusActive,
		CreditsResetAt:     time.Now().Unix(),
	}
	a.ID = uuid.New()
	a.CreatedAt = time.Now().Unix()
	return a
}

func newTestCreditService(accounts ...*db_models.Account) (CreditServiceInterface, *fakeAccountRepo, *fakeUsageLedger) {
	repo := &fakeAccountRepo{accounts: map[string]*db_models.Account{}}
	for _, a := range accounts {
		repo.accounts[a.ID.String()] = a
	}
	ledger := &fakeUsageLedger{}
	return NewCreditService(repo, ledger, DefaultCatalog()), repo, ledger
}

func TestBillingPeriodStart(t *testing.T) {
	utc := time.UTC
	tests := []struct {
		name      string
		now       time.Time
		anchorDay int
		want      time.Time
	}{
		{
			"on the anchor day the window starts today",
			time.Date(2026, 3, 15, 9, 0, 0, 0, utc), 15,
			time.Date(2026, 3, 15, 0, 0, 0, 0, utc),
		},
		{
			"after the anchor day the window started this month",
			time.Date(2026, 3, 20, 9, 0, 0, 0, utc), 15,
			time.Date(2026, 3, 15, 0, 0, 0, 0, utc),
		},
		{
			"before the anchor day the window started last month",
			time.Date(2026, 3, 10, 9, 0, 0, 0, utc), 15,
			time.Date(2026, 2, 15, 0, 0, 0, 0, utc),
		},
		{
			"january before the anchor rolls back to december",
			time.Date(2026, 1, 5, 9, 0, 0, 0, utc), 15,
			time.Date(2025, 12, 15, 0, 0, 0, 0, utc),
		},
		{
			"anchor 31 clamps to february 28",
			time.Date(2026, 3, 10, 9, 0, 0, 0, utc), 31,
			time.Date(2026, 2, 28, 0, 0, 0, 0, utc),
		},
		{
			"anchor 31 clamps to february 29 in a leap year",
			time.Date(2028, 3, 10, 9, 0, 0, 0, utc), 31,
			time.Date(2028, 2, 29, 0, 0, 0, 0, utc),
		},
		{
			"anchor 31 clamps to april 30",
			time.Date(2026, 5, 10, 9, 0, 0, 0, utc), 31,
			time.Date(2026, 4, 30, 0, 0, 0, 0, utc),
		},
		{
			"anchor below one is treated as the first",
			time.Date(2026, 3, 10, 9, 0, 0, 0, utc), 0,
			time.Date(2026, 3, 1, 0, 0, 0, 0, utc),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := BillingPeriodStart(tt.now, tt.anchorDay)
			if !got.Equal(tt.want) {
				t.Fatalf("BillingPeriodStart(%v, %d) = %v, want %v", tt.now, tt.anchorDay, got, tt.want)
			}
		})
	}
}

func TestNextResetDate(t *testing.T) {
	utc := time.UTC
	tests := []struct {
		name        string
		periodStart time.Time
		anchorDay   int
		want        time.Time
	}{
		{
			"plain next month",
			time.Date(2026, 3, 15, 0, 0, 0, 0, utc), 15,
			time.Date(2026, 4, 15, 0, 0, 0, 0, utc),
		},
		{
			"december rolls into january",
			time.Date(2025, 12, 15, 0, 0, 0, 0, utc), 15,
			time.Date(2026, 1, 15, 0, 0, 0, 0, utc),
		},
		{
			"anchor 31 after a clamped february lands on march 31",
			time.Date(2026, 2, 28, 0, 0, 0, 0, utc), 31,
			time.Date(2026, 3, 31, 0, 0, 0, 0, utc),
		},
		{
			"anchor 31 from march clamps to april 30",
			time.Date(2026, 3, 31, 0, 0, 0, 0, utc), 31,
			time.Date(2026, 4, 30, 0, 0, 0, 0, utc),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := NextResetDate(tt.periodStart, tt.anchorDay)
			if !got.Equal(tt.want) {
				t.Fatalf("NextResetDate(%v, %d) = %v, want %v", tt.periodStart, tt.anchorDay, got, tt.want)
			}
		})
	}
}

func TestEffectiveTier(t *testing.T) {
	now := time.Date(2026, 3, 15, 12, 0, 0, 0, time.UTC)
	future := now.Add(30 * 24 * time.Hour).Unix()
	past := now.Add(-24 * time.Hour).Unix()

	tests := []struct {
		name    string
		account db_models.Account
		want    db_models.SubscriptionTier
	}{
		{
			"active premium stays premium",
			db_models.Account{SubscriptionTier: db_models.TierPremium, SubscriptionStatus: db_models.SubStatusActive, SubscriptionEnds: &future},
			db_models.TierPremium,
		},
		{
			"active with no end date stays paid",
			db_models.Account{SubscriptionTier: db_models.TierEssential, SubscriptionStatus: db_models.SubStatusActive},
			db_models.TierEssential,
		},
		{
			"canceled premium demotes to free",
			db_models.Account{SubscriptionTier: db_models.TierPremium, SubscriptionStatus: db_models.SubStatusCanceled, SubscriptionEnds: &future},
			db_models.TierFree,
		},
		{
			"expired window demotes to free even while active",
			db_models.Account{SubscriptionTier: db_models.TierPremium, SubscriptionStatus: db_models.SubStatusActive, SubscriptionEnds: &past},
			db_models.TierFree,
		},
		{
			"empty tier defaults to free",
			db_models.Account{SubscriptionStatus: db_models.SubStatusActive},
			db_models.TierFree,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := EffectiveTier(&tt.account, now); got != tt.want {
				t.Fatalf("EffectiveTier() = %s, want %s", got, tt.want)
			}
		})
	}
}

// A free user burns through the interpretation quota: every call up to the cap
// succeeds, the next is denied with an essential upgrade suggestion, and
// remaining never goes negative.
func TestUseCreditExhaustsFreeInterpretations(t *testing.T) {
	account := newTestAccount(db_models.TierFree)
	svc, _, _ := newTestCreditService(account)
	ctx := context.Background()

	limit := DefaultCatalog().LimitFor(db_models.TierFree, db_models.ActionInterpretation).Cap()

	for i := 0; i < limit; i++ {
		result, err := svc.UseCredit(ctx, account.ID.String(), db_models.ActionInterpretation, nil)
		if err != nil {
			t.Fatalf("call %d: unexpected error: %v", i+1, err)
		}
		if !result.Allowed {
			t.Fatalf("call %d of %d should be allowed", i+1, limit)
		}
		if result.Remaining < 0 {
			t.Fatalf("call %d: remaining went negative: %d", i+1, result.Remaining)
		}
	}

	result, err := svc.UseCredit(ctx, account.ID.String(), db_models.ActionInterpretation, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.Allowed {
		t.Fatal("call past the limit should be denied")
	}
	if result.Remaining != 0 {
		t.Fatalf("denied result remaining = %d, want 0", result.Remaining)
	}
	if result.UpgradeRecommendation != db_models.TierEssential {
		t.Fatalf("upgrade recommendation = %q, want essential", result.UpgradeRecommendation)
	}
	if result.Message == "" {
		t.Fatal("denied result should carry a message")
	}
}

// An essential user burns through the transcription quota: the denial names
// the cap in its message and points at premium, since premium removes the
// finite limit.
func TestUseCreditExhaustsEssentialTranscriptions(t *testing.T) {
	account := newTestAccount(db_models.TierEssential)
	svc, _, _ := newTestCreditService(account)
	ctx := context.Background()

	limit := DefaultCatalog().LimitFor(db_models.TierEssential, db_models.ActionTranscription).Cap()

	for i := 0; i < limit; i++ {
		result, err := svc.UseCredit(ctx, account.ID.String(), db_models.ActionTranscription, nil)
		if err != nil {
			t.Fatalf("call %d: unexpected error: %v", i+1, err)
		}
		if !result.Allowed {
			t.Fatalf("call %d of %d should be allowed", i+1, limit)
		}
	}

	result, err := svc.UseCredit(ctx, account.ID.String(), db_models.ActionTranscription, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.Allowed {
		t.Fatal("call past the limit should be denied")
	}
	if result.Tier != db_models.TierEssential {
		t.Fatalf("tier = %s, want essential", result.Tier)
	}
	if !strings.Contains(result.Message, strconv.Itoa(limit)) {
		t.Fatalf("message %q should name the cap %d", result.Message, limit)
	}
	if result.UpgradeRecommendation != db_models.TierPremium {
		t.Fatalf("upgrade recommendation = %q, want premium", result.UpgradeRecommendation)
	}
}

// The unlimited path must not touch the ledger count: premium checks short-
// circuit before any query.
func TestUnlimitedSkipsCounting(t *testing.T) {
	account := newTestAccount(db_models.TierPremium)
	svc, _, ledger := newTestCreditService(account)
	ctx := context.Background()

	for i := 0; i < 5; i++ {
		result, err := svc.UseCredit(ctx, account.ID.String(), db_models.ActionInterpretation, nil)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !result.Allowed || !result.IsUnlimited {
			t.Fatalf("premium interpretation should be allowed and unlimited, got %+v", result)
		}
		if result.Limit != -1 || result.Remaining != -1 {
			t.Fatalf("unlimited result should use -1 sentinels, got limit=%d remaining=%d", result.Limit, result.Remaining)
		}
	}

	if ledger.countCalls != 0 {
		t.Fatalf("unlimited path issued %d count queries, want 0", ledger.countCalls)
	}
	if len(ledger.entries) != 5 {
		t.Fatalf("usage should still be recorded, got %d entries, want 5", len(ledger.entries))
	}
}

// Free tier does not offer transcription at all: denied up front with an
// upgrade pointer, and nothing is written to the ledger.
func TestUnavailableActionDenied(t *testing.T) {
	account := newTestAccount(db_models.TierFree)
	svc, _, ledger := newTestCreditService(account)

	result, err := svc.UseCredit(context.Background(), account.ID.String(), db_models.ActionTranscription, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.Allowed {
		t.Fatal("transcription should not be allowed on free")
	}
	if result.Limit != 0 {
		t.Fatalf("unavailable limit = %d, want 0", result.Limit)
	}
	if result.UpgradeRecommendation != db_models.TierEssential {
		t.Fatalf("upgrade recommendation = %q, want essential", result.UpgradeRecommendation)
	}
	if len(ledger.entries) != 0 {
		t.Fatalf("denied action must not be recorded, got %d entries", len(ledger.entries))
	}
	if ledger.countCalls != 0 {
		t.Fatalf("unavailable action issued %d count queries, want 0", ledger.countCalls)
	}
}

// A canceled premium subscription is metered at free limits on the very next
// check; nothing is written back to the stored tier.
func TestCanceledPremiumMeteredAsFree(t *testing.T) {
	account := newTestAccount(db_models.TierPremium)
	account.SubscriptionStatus = db_models.SubStatusCanceled
	svc, repo, _ := newTestCreditService(account)

	result, err := svc.CheckCredits(context.Background(), account.ID.String(), db_models.ActionDream)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.Tier != db_models.TierFree {
		t.Fatalf("effective tier = %s, want free", result.Tier)
	}
	if result.IsUnlimited {
		t.Fatal("demoted account should not see unlimited dreams")
	}

	stored := repo.accounts[account.ID.String()]
	if stored.SubscriptionTier != db_models.TierPremium {
		t.Fatalf("stored tier mutated to %s; demotion must stay computed", stored.SubscriptionTier)
	}
}

func TestMissingUserIsDeniedNotError(t *testing.T) {
	svc, _, _ := newTestCreditService()

	result, err := svc.CheckCredits(context.Background(), uuid.NewString(), db_models.ActionDream)
	if err != nil {
		t.Fatalf("missing user should not be an error, got %v", err)
	}
	if result.Allowed {
		t.Fatal("missing user should be denied")
	}
	if result.Message != "User not found" {
		t.Fatalf("message = %q", result.Message)
	}
}

func TestCheckCreditsDoesNotConsume(t *testing.T) {
	account := newTestAccount(db_models.TierFree)
	svc, _, ledger := newTestCreditService(account)
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		result, err := svc.CheckCredits(ctx, account.ID.String(), db_models.ActionDream)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if result.Used != 0 {
			t.Fatalf("check %d reported used=%d, checks must not consume", i+1, result.Used)
		}
	}
	if len(ledger.entries) != 0 {
		t.Fatalf("checks wrote %d ledger entries", len(ledger.entries))
	}
}

func TestGetUsageStats(t *testing.T) {
	account := newTestAccount(db_models.TierEssential)
	svc, _, _ := newTestCreditService(account)
	ctx := context.Background()

	// Dreams are unlimited on essential but the ledger still records them, so
	// the usage screen can show a real count next to the infinity badge.
	for i := 0; i < 3; i++ {
		if _, err := svc.UseCredit(ctx, account.ID.String(), db_models.ActionDream, nil); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	}
	if _, err := svc.UseCredit(ctx, account.ID.String(), db_models.ActionInterpretation, nil); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	stats, err := svc.GetUsageStats(ctx, account.ID.String())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if stats.Tier != db_models.TierEssential {
		t.Fatalf("tier = %s, want essential", stats.Tier)
	}
	if !stats.Dreams.IsUnlimited || stats.Dreams.Limit != -1 || stats.Dreams.Used != 3 {
		t.Fatalf("dreams = %+v, want unlimited with 3 used", stats.Dreams)
	}
	if stats.Interpretations.Used != 1 || stats.Interpretations.Limit != 30 || stats.Interpretations.Remaining != 29 {
		t.Fatalf("interpretations = %+v", stats.Interpretations)
	}
	if stats.Transcriptions.Used != 0 || stats.Transcriptions.Limit != 10 {
		t.Fatalf("transcriptions = %+v", stats.Transcriptions)
	}
	if stats.ResetDate <= time.Now().Unix() {
		t.Fatalf("reset date %d should be in the future", stats.ResetDate)
	}
}

func TestGetUsageStatsMissingUser(t *testing.T) {
	svc, _, _ := newTestCreditService()
	stats, err := svc.GetUsageStats(context.Background(), uuid.NewString())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if stats != nil {
		t.Fatalf("stats for a missing user = %+v, want nil", stats)
	}
}

func TestHasFeature(t *testing.T) {
	free := newTestAccount(db_models.TierFree)
	premium := newTestAccount(db_models.TierPremium)
	svc, _, _ := newTestCreditService(free, premium)
	ctx := context.Background()

	ok, err := svc.HasFeature(ctx, free.ID.String(), FeatureSymbolDictionary)
	if err != nil || ok {
		t.Fatalf("free symbol dictionary = (%v, %v), want (false, nil)", ok, err)
	}
	ok, err = svc.HasFeature(ctx, premium.ID.String(), FeatureSymbolDictionary)
	if err != nil || !ok {
		t.Fatalf("premium symbol dictionary = (%v, %v), want (true, nil)", ok, err)
	}
	ok, err = svc.HasFeature(ctx, uuid.NewString(), FeatureCalendar)
	if err != nil || ok {
		t.Fatalf("missing user feature = (%v, %v), want (false, nil)", ok, err)
	}
}

func TestAsError(t *testing.T) {
	account := newTestAccount(db_models.TierFree)
	svc, _, _ := newTestCreditService(account)

	result, err := svc.CheckCredits(context.Background(), account.ID.String(), db_models.ActionExport)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	wrapped := AsError(result, db_models.ActionExport)
	var exhausted *CreditsExhaustedError
	if !errors.As(wrapped, &exhausted) {
		t.Fatalf("AsError should yield *CreditsExhaustedError, got %T", wrapped)
	}
	if exhausted.Action != db_models.ActionExport || exhausted.UpgradeRecommendation != db_models.TierEssential {
		t.Fatalf("exhausted error = %+v", exhausted)
	}

	allowed, err := svc.CheckCredits(context.Background(), account.ID.String(), db_models.ActionDream)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if AsError(allowed, db_models.ActionDream) != nil {
		t.Fatal("allowed result should convert to nil error")
	}
}

// Two requests racing past the same check can both record and overshoot the
// cap by one; that is accepted, the window only ever overshoots by the request
// concurrency and the very next check denies. This test pins the single-
// threaded behavior; the race itself is deliberately not synchronized away.
func TestUseCreditSequentialNeverOvershoots(t *testing.T) {
	account := newTestAccount(db_models.TierEssential)
	svc, _, ledger := newTestCreditService(account)
	ctx := context.Background()

	limit := DefaultCatalog().LimitFor(db_models.TierEssential, db_models.ActionExport).Cap()
	for i := 0; i < limit+3; i++ {
		if _, err := svc.UseCredit(ctx, account.ID.String(), db_models.ActionExport, nil); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	}

	if len(ledger.entries) != limit {
		t.Fatalf("ledger has %d entries, want exactly the cap %d", len(ledger.entries), limit)
	}
}
