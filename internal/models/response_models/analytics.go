package response_models

type DreamAnalytics struct {
	TotalDreams   int `json:"total_dreams"`
	LucidDreams   int `json:"lucid_dreams"`
	CurrentStreak int `json:"current_streak"`
	LongestStreak int `json:"longest_streak"`

	// MoodHistogram counts dreams per recorded mood.
	MoodHistogram map[string]int `json:"mood_histogram"`

	// WakeHourHeatmap has 24 buckets counting dreams by wake hour.
	WakeHourHeatmap [24]int `json:"wake_hour_heatmap"`

	// MonthlyCounts maps "2026-01" style keys to dream counts.
	MonthlyCounts map[string]int `json:"monthly_counts"`

	TopTags []TagCount `json:"top_tags,omitempty"`
}

type TagCount struct {
	Tag   string `json:"tag"`
	Count int    `json:"count"`
}
