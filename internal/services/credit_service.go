package services

import (
	"context"
	"fmt"
	"time"

	"gorm.io/datatypes"

	"dreamoracle/internal/models/db_models"
	"dreamoracle/internal/models/response_models"
	"dreamoracle/internal/repositories"
	"dreamoracle/pkg/utils"
)

// CreditServiceInterface is the single decision point for "may this user
// perform this metered action", and the accounting behind the usage screen.
type CreditServiceInterface interface {
	CheckCredits(ctx context.Context, userID string, action db_models.MeteredAction) (*response_models.CreditResult, error)
	UseCredit(ctx context.Context, userID string, action db_models.MeteredAction, metadata datatypes.JSON) (*response_models.CreditResult, error)
	GetUsageStats(ctx context.Context, userID string) (*response_models.UsageStats, error)
	HasFeature(ctx context.Context, userID string, feature TierFeature) (bool, error)
}

type CreditService struct {
	accountRepo repositories.AccountRepository
	usageRepo   repositories.UsageRepository
	catalog     *Catalog
}

func NewCreditService(
	accountRepo repositories.AccountRepository,
	usageRepo repositories.UsageRepository,
	catalog *Catalog,
) CreditServiceInterface {
	return &CreditService{
		accountRepo: accountRepo,
		usageRepo:   usageRepo,
		catalog:     catalog,
	}
}

// CreditsExhaustedError re-packages a failed check for call sites that prefer
// error handling over branching on the result. The result type stays the
// primary API.
type CreditsExhaustedError struct {
	Action                db_models.MeteredAction
	Tier                  db_models.SubscriptionTier
	UpgradeRecommendation db_models.SubscriptionTier
	Message               string
}

func (e *CreditsExhaustedError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	return fmt.Sprintf("credits exhausted for %s at tier %s", e.Action, e.Tier)
}

// AsError converts a denied result into a CreditsExhaustedError, nil otherwise.
func AsError(result *response_models.CreditResult, action db_models.MeteredAction) error {
	if result == nil || result.Allowed {
		return nil
	}
	return &CreditsExhaustedError{
		Action:                action,
		Tier:                  result.Tier,
		UpgradeRecommendation: result.UpgradeRecommendation,
		Message:               result.Message,
	}
}

// EffectiveTier degrades an inactive or expired paid subscription to free.
// Computed fresh on every check; the stored tier is never written back here —
// billing reconciliation owns persisting demotions.
func EffectiveTier(account *db_models.Account, now time.Time) db_models.SubscriptionTier {
	tier := account.SubscriptionTier
	if tier == "" {
		tier = db_models.TierFree
	}

	if account.SubscriptionStatus != db_models.SubStatusActive {
		return db_models.TierFree
	}
	if account.SubscriptionEnds != nil && *account.SubscriptionEnds < now.Unix() {
		return db_models.TierFree
	}

	return tier
}

func daysInMonth(year int, month time.Month) int {
	return time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC).Day()
}

// BillingPeriodStart computes when the current rolling window began. The
// window is anchored to the user's personal day-of-month: before the anchor
// day the window started last month, on or after it this month. Anchor days
// past a month's end clamp to its last day, so an anchor of 31 is well-defined
// in April or February.
func BillingPeriodStart(now time.Time, anchorDay int) time.Time {
	if anchorDay < 1 {
		anchorDay = 1
	}

	year, month, _ := now.Date()
	if now.Day() < anchorDay {
		month--
		if month < time.January {
			month = time.December
			year--
		}
	}

	day := anchorDay
	if last := daysInMonth(year, month); day > last {
		day = last
	}

	return time.Date(year, month, day, 0, 0, 0, 0, now.Location())
}

// NextResetDate is the anchor day of the month after the period start, again
// clamped for short months.
func NextResetDate(periodStart time.Time, anchorDay int) time.Time {
	if anchorDay < 1 {
		anchorDay = 1
	}

	year, month, _ := periodStart.Date()
	month++
	if month > time.December {
		month = time.January
		year++
	}

	day := anchorDay
	if last := daysInMonth(year, month); day > last {
		day = last
	}

	return time.Date(year, month, day, 0, 0, 0, 0, periodStart.Location())
}

// anchorDayOf extracts the billing anchor day from the stored reset date,
// falling back to the signup day.
func anchorDayOf(account *db_models.Account) int {
	if account.CreditsResetAt > 0 {
		return utils.FromUnixSeconds(account.CreditsResetAt).Day()
	}
	if account.CreatedAt > 0 {
		return utils.FromUnixSeconds(account.CreatedAt).Day()
	}
	return 1
}

func notFoundResult() *response_models.CreditResult {
	return &response_models.CreditResult{
		Allowed:   false,
		Used:      0,
		Limit:     0,
		Remaining: 0,
		Tier:      db_models.TierFree,
		Message:   "User not found",
	}
}

func (s *CreditService) CheckCredits(ctx context.Context, userID string, action db_models.MeteredAction) (*response_models.CreditResult, error) {
	account, err := s.accountRepo.FindById(ctx, userID)
	if err != nil {
		return nil, utils.ErrDatabaseError
	}
	if account == nil {
		// Deliberately a denied result, not an error: callers render the same
		// "sign in or upgrade" screen either way.
		return notFoundResult(), nil
	}

	return s.check(ctx, account, action, time.Now())
}

func (s *CreditService) check(ctx context.Context, account *db_models.Account, action db_models.MeteredAction, now time.Time) (*response_models.CreditResult, error) {
	tier := EffectiveTier(account, now)
	allowance := s.catalog.LimitFor(tier, action)

	if allowance.IsUnlimited() {
		// No point counting rows we will never compare against.
		return &response_models.CreditResult{
			Allowed:     true,
			Used:        0,
			Limit:       -1,
			Remaining:   -1,
			IsUnlimited: true,
			Tier:        tier,
		}, nil
	}

	if allowance.IsUnavailable() {
		result := &response_models.CreditResult{
			Allowed:   false,
			Used:      0,
			Limit:     0,
			Remaining: 0,
			Tier:      tier,
			Message:   "This feature is not included in your plan",
		}
		if upgrade, ok := s.catalog.UpgradeFor(tier, action); ok {
			result.UpgradeRecommendation = upgrade
		}
		return result, nil
	}

	periodStart := BillingPeriodStart(now, anchorDayOf(account))
	used, err := s.usageRepo.CountSince(ctx, account.ID, action, periodStart.Unix())
	if err != nil {
		return nil, utils.ErrDatabaseError
	}

	limit := allowance.Cap()
	remaining := limit - int(used)
	if remaining < 0 {
		remaining = 0
	}

	result := &response_models.CreditResult{
		Allowed:   remaining > 0,
		Used:      int(used),
		Limit:     limit,
		Remaining: remaining,
		Tier:      tier,
	}

	if !result.Allowed {
		result.Message = fmt.Sprintf("You have reached your monthly limit of %d", limit)
		if upgrade, ok := s.catalog.UpgradeFor(tier, action); ok {
			result.UpgradeRecommendation = upgrade
		}
	}

	return result, nil
}

// UseCredit runs the check and, when allowed, appends the usage event. The
// returned used/remaining are bumped in memory as a display convenience; two
// racing requests can both pass the check before either records, so the
// authoritative count is always the next fresh CountSince, and a month can
// overshoot by at most the request concurrency.
func (s *CreditService) UseCredit(ctx context.Context, userID string, action db_models.MeteredAction, metadata datatypes.JSON) (*response_models.CreditResult, error) {
	account, err := s.accountRepo.FindById(ctx, userID)
	if err != nil {
		return nil, utils.ErrDatabaseError
	}
	if account == nil {
		return notFoundResult(), nil
	}

	result, err := s.check(ctx, account, action, time.Now())
	if err != nil {
		return nil, err
	}
	if !result.Allowed {
		return result, nil
	}

	if err := s.usageRepo.Record(ctx, account.ID, action, metadata); err != nil {
		return nil, utils.ErrDatabaseError
	}

	if !result.IsUnlimited {
		result.Used++
		result.Remaining--
		if result.Remaining < 0 {
			result.Remaining = 0
		}
	}

	return result, nil
}

// GetUsageStats assembles the whole usage screen in one call. Unlike the
// check path it counts usage even for unlimited actions, so the screen can
// show "47 dreams this month" next to the infinity badge.
func (s *CreditService) GetUsageStats(ctx context.Context, userID string) (*response_models.UsageStats, error) {
	account, err := s.accountRepo.FindById(ctx, userID)
	if err != nil {
		return nil, utils.ErrDatabaseError
	}
	if account == nil {
		return nil, nil
	}

	now := time.Now()
	tier := EffectiveTier(account, now)
	anchorDay := anchorDayOf(account)
	periodStart := BillingPeriodStart(now, anchorDay)

	stats := &response_models.UsageStats{
		Tier:      tier,
		ResetDate: NextResetDate(periodStart, anchorDay).Unix(),
	}

	fill := func(action db_models.MeteredAction, out *response_models.ActionUsage) error {
		allowance := s.catalog.LimitFor(tier, action)

		used, err := s.usageRepo.CountSince(ctx, account.ID, action, periodStart.Unix())
		if err != nil {
			return utils.ErrDatabaseError
		}

		out.Used = int(used)
		out.Limit = allowance.WireValue()
		switch {
		case allowance.IsUnlimited():
			out.IsUnlimited = true
			out.Remaining = -1
		case allowance.IsUnavailable():
			out.Remaining = 0
		default:
			out.Remaining = allowance.Cap() - int(used)
			if out.Remaining < 0 {
				out.Remaining = 0
			}
		}
		return nil
	}

	if err := fill(db_models.ActionDream, &stats.Dreams); err != nil {
		return nil, err
	}
	if err := fill(db_models.ActionInterpretation, &stats.Interpretations); err != nil {
		return nil, err
	}
	if err := fill(db_models.ActionTranscription, &stats.Transcriptions); err != nil {
		return nil, err
	}
	if err := fill(db_models.ActionExport, &stats.Exports); err != nil {
		return nil, err
	}

	return stats, nil
}

func (s *CreditService) HasFeature(ctx context.Context, userID string, feature TierFeature) (bool, error) {
	account, err := s.accountRepo.FindById(ctx, userID)
	if err != nil {
		return false, utils.ErrDatabaseError
	}
	if account == nil {
		return false, nil
	}

	return s.catalog.HasFeature(EffectiveTier(account, time.Now()), feature), nil
}
