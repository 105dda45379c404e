package services

import (
	"testing"
	"time"

	"github.com/lib/pq"

	"dreamoracle/internal/models/db_models"
)

func dayUnix(t *testing.T, day string, hour int) int64 {
	t.Helper()
	parsed, err := time.Parse("2006-01-02", day)
	if err != nil {
		t.Fatalf("bad day %q: %v", day, err)
	}
	return parsed.Add(time.Duration(hour) * time.Hour).Unix()
}

func dreamOn(t *testing.T, day string, mutate func(*db_models.Dream)) db_models.Dream {
	t.Helper()
	d := db_models.Dream{}
	d.CreatedAt = dayUnix(t, day, 8)
	if mutate != nil {
		mutate(&d)
	}
	return d
}

func TestAggregateDreamsEmpty(t *testing.T) {
	out := AggregateDreams(nil, time.Now())
	if out.TotalDreams != 0 || out.LucidDreams != 0 {
		t.Fatalf("empty journal should aggregate to zeros, got %+v", out)
	}
	if out.CurrentStreak != 0 || out.LongestStreak != 0 {
		t.Fatalf("empty journal streaks = %d/%d, want 0/0", out.CurrentStreak, out.LongestStreak)
	}
}

func TestAggregateDreamsCountsAndHistograms(t *testing.T) {
	woke := dayUnix(t, "2026-03-10", 7)
	dreams := []db_models.Dream{
		dreamOn(t, "2026-03-09", func(d *db_models.Dream) {
			d.Mood = "anxious"
			d.Lucid = true
			d.Tags = pq.StringArray{"water", "falling"}
		}),
		dreamOn(t, "2026-03-10", func(d *db_models.Dream) {
			d.Mood = "calm"
			d.WokeAt = &woke
			d.Tags = pq.StringArray{"water"}
		}),
		dreamOn(t, "2026-02-20", func(d *db_models.Dream) {
			d.Mood = "anxious"
		}),
	}

	out := AggregateDreams(dreams, time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC))

	if out.TotalDreams != 3 {
		t.Fatalf("total = %d, want 3", out.TotalDreams)
	}
	if out.LucidDreams != 1 {
		t.Fatalf("lucid = %d, want 1", out.LucidDreams)
	}
	if out.MoodHistogram["anxious"] != 2 || out.MoodHistogram["calm"] != 1 {
		t.Fatalf("mood histogram = %v", out.MoodHistogram)
	}
	if out.MonthlyCounts["2026-03"] != 2 || out.MonthlyCounts["2026-02"] != 1 {
		t.Fatalf("monthly counts = %v", out.MonthlyCounts)
	}
	if out.WakeHourHeatmap[7] != 1 {
		t.Fatalf("wake heatmap = %v", out.WakeHourHeatmap)
	}
	if len(out.TopTags) == 0 || out.TopTags[0].Tag != "water" || out.TopTags[0].Count != 2 {
		t.Fatalf("top tags = %v", out.TopTags)
	}
}

func TestStreaks(t *testing.T) {
	now := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name        string
		days        []string
		wantCurrent int
		wantLongest int
	}{
		{"single entry today", []string{"2026-03-10"}, 1, 1},
		{"run ending today", []string{"2026-03-08", "2026-03-09", "2026-03-10"}, 3, 3},
		{"run ending yesterday still current", []string{"2026-03-08", "2026-03-09"}, 2, 2},
		{"stale run is not current", []string{"2026-03-01", "2026-03-02", "2026-03-03"}, 0, 3},
		{"longest in the past beats current", []string{"2026-02-01", "2026-02-02", "2026-02-03", "2026-02-04", "2026-03-10"}, 1, 4},
		{"gap resets the run", []string{"2026-03-06", "2026-03-08", "2026-03-09", "2026-03-10"}, 3, 3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			days := map[string]bool{}
			for _, d := range tt.days {
				days[d] = true
			}
			current, longest := streaks(days, now)
			if current != tt.wantCurrent || longest != tt.wantLongest {
				t.Fatalf("streaks() = (%d, %d), want (%d, %d)", current, longest, tt.wantCurrent, tt.wantLongest)
			}
		})
	}
}

func TestTopTagsOrderingAndLimit(t *testing.T) {
	counts := map[string]int{}
	for i := 0; i < 15; i++ {
		counts[string(rune('a'+i))] = i + 1
	}
	counts["tie-b"] = 100
	counts["tie-a"] = 100

	tags := topTags(counts, 10)
	if len(tags) != 10 {
		t.Fatalf("len = %d, want 10", len(tags))
	}
	if tags[0].Tag != "tie-a" || tags[1].Tag != "tie-b" {
		t.Fatalf("ties should break alphabetically, got %v %v", tags[0], tags[1])
	}
	for i := 1; i < len(tags); i++ {
		if tags[i].Count > tags[i-1].Count {
			t.Fatalf("tags out of order at %d: %v", i, tags)
		}
	}
}
