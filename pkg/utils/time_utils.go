package utils

import "time"

// DB columns store unix seconds; keep the conversion helpers in one place.
func NowUnixSeconds() int64 { return time.Now().Unix() }

func FromUnixSeconds(t int64) time.Time {
	if t <= 0 {
		return time.Time{}
	}
	return time.Unix(t, 0).UTC()
}
