package services

import (
	"context"
	"sort"
	"time"

	"github.com/google/uuid"

	"dreamoracle/internal/models/db_models"
	"dreamoracle/internal/models/response_models"
	"dreamoracle/internal/repositories"
	"dreamoracle/pkg/utils"
)

type AnalyticsServiceInterface interface {
	// BuildAnalytics aggregates the user's whole journal in memory. Gated by
	// the advanced-statistics feature flag.
	BuildAnalytics(ctx context.Context, userID string) (*response_models.DreamAnalytics, error)
}

type AnalyticsService struct {
	dreamRepo     repositories.IDreamRepository
	creditService CreditServiceInterface
}

func NewAnalyticsService(dreamRepo repositories.IDreamRepository, creditService CreditServiceInterface) AnalyticsServiceInterface {
	return &AnalyticsService{
		dreamRepo:     dreamRepo,
		creditService: creditService,
	}
}

func (s *AnalyticsService) BuildAnalytics(ctx context.Context, userID string) (*response_models.DreamAnalytics, error) {
	allowed, err := s.creditService.HasFeature(ctx, userID, FeatureAdvancedStats)
	if err != nil {
		return nil, err
	}
	if !allowed {
		return nil, utils.ErrFeatureNotIncluded
	}

	accountID, err := uuid.Parse(userID)
	if err != nil {
		return nil, utils.ErrAccountNotFound
	}

	dreams, err := s.dreamRepo.ListAll(ctx, accountID)
	if err != nil {
		return nil, utils.ErrDatabaseError
	}

	return AggregateDreams(dreams, time.Now()), nil
}

// AggregateDreams folds a chronologically ordered dream list into the
// analytics snapshot. Pure; now only matters for the current-streak cutoff.
func AggregateDreams(dreams []db_models.Dream, now time.Time) *response_models.DreamAnalytics {
	out := &response_models.DreamAnalytics{
		MoodHistogram: map[string]int{},
		MonthlyCounts: map[string]int{},
	}

	tagCounts := map[string]int{}
	days := map[string]bool{}

	for i := range dreams {
		dream := &dreams[i]
		out.TotalDreams++
		if dream.Lucid {
			out.LucidDreams++
		}
		if dream.Mood != "" {
			out.MoodHistogram[dream.Mood]++
		}

		created := utils.FromUnixSeconds(dream.CreatedAt)
		days[created.Format("2006-01-02")] = true
		out.MonthlyCounts[created.Format("2006-01")]++

		if dream.WokeAt != nil {
			out.WakeHourHeatmap[utils.FromUnixSeconds(*dream.WokeAt).Hour()]++
		}

		for _, tag := range dream.Tags {
			tagCounts[tag]++
		}
	}

	out.CurrentStreak, out.LongestStreak = streaks(days, now)
	out.TopTags = topTags(tagCounts, 10)

	return out
}

// streaks walks the set of journaling days: longest is the longest run of
// consecutive days anywhere, current is the run ending today or yesterday
// (an entry this morning about last night still counts).
func streaks(days map[string]bool, now time.Time) (current, longest int) {
	if len(days) == 0 {
		return 0, 0
	}

	sorted := make([]string, 0, len(days))
	for day := range days {
		sorted = append(sorted, day)
	}
	sort.Strings(sorted)

	run := 1
	longest = 1
	for i := 1; i < len(sorted); i++ {
		prev, _ := time.Parse("2006-01-02", sorted[i-1])
		cur, _ := time.Parse("2006-01-02", sorted[i])
		if cur.Sub(prev) == 24*time.Hour {
			run++
		} else {
			run = 1
		}
		if run > longest {
			longest = run
		}
	}

	today := now.UTC().Format("2006-01-02")
	yesterday := now.UTC().AddDate(0, 0, -1).Format("2006-01-02")
	if days[today] || days[yesterday] {
		current = run
		last := sorted[len(sorted)-1]
		if last != today && last != yesterday {
			current = 0
		}
	}

	return current, longest
}

func topTags(tagCounts map[string]int, limit int) []response_models.TagCount {
	if len(tagCounts) == 0 {
		return nil
	}

	tags := make([]response_models.TagCount, 0, len(tagCounts))
	for tag, count := range tagCounts {
		tags = append(tags, response_models.TagCount{Tag: tag, Count: count})
	}

	sort.Slice(tags, func(i, j int) bool {
		if tags[i].Count != tags[j].Count {
			return tags[i].Count > tags[j].Count
		}
		return tags[i].Tag < tags[j].Tag
	})

	if len(tags) > limit {
		tags = tags[:limit]
	}
	return tags
}
