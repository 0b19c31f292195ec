package domain

import "time"

// WatchHistoryEntry records one viewing of one content item. Re-watches
// produce multiple entries for the same content ID.
type WatchHistoryEntry struct {
	ContentID    int64     `json:"content_id"`
	WatchedAt    time.Time `json:"watched_at"`
	WatchTimePct float64   `json:"watch_time_pct"` // 0-100
	Completed    bool      `json:"completed"`
}

// CalculateProgress returns the watch progress percentage for the given
// watched seconds and total duration, clamped to [0, 100]. A zero or
// negative duration yields 0.
func CalculateProgress(watchedSec, durationSec int) float64 {
	if durationSec <= 0 {
		return 0
	}
	pct := float64(watchedSec) / float64(durationSec) * 100
	if pct < 0 {
		return 0
	}
	if pct > 100 {
		return 100
	}
	return pct
}
