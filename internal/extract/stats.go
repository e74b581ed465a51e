package extract

import (
	"slices"
	"sort"
	"sync"
	"time"
)

// StatsSnapshot is a point-in-time aggregate of extraction call latencies.
type StatsSnapshot struct {
	Count int     `json:"count"`
	MinMs int64   `json:"min_ms"`
	MaxMs int64   `json:"max_ms"`
	AvgMs float64 `json:"avg_ms"`
	P50Ms float64 `json:"p50_ms"`
	P95Ms float64 `json:"p95_ms"`
	P99Ms float64 `json:"p99_ms"`
}

// CallStats keeps a rolling window of extraction call latencies. Samples
// are appended in wall-clock order, so expiry only ever trims a prefix.
type CallStats struct {
	mu     sync.Mutex
	at     []time.Time
	ms     []int64
	maxAge time.Duration
}

func NewCallStats(maxAge time.Duration) *CallStats {
	if maxAge <= 0 {
		maxAge = time.Hour
	}
	return &CallStats{maxAge: maxAge}
}

func (s *CallStats) Record(durationMs int64) {
	if durationMs < 0 {
		durationMs = 0
	}
	now := time.Now()

	s.mu.Lock()
	defer s.mu.Unlock()

	s.expireLocked(now)
	s.at = append(s.at, now)
	s.ms = append(s.ms, durationMs)
}

func (s *CallStats) Snapshot() StatsSnapshot {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.expireLocked(time.Now())
	n := len(s.ms)
	if n == 0 {
		return StatsSnapshot{}
	}

	snap := StatsSnapshot{Count: n, MinMs: s.ms[0], MaxMs: s.ms[0]}
	var sum int64
	for _, v := range s.ms {
		sum += v
		if v < snap.MinMs {
			snap.MinMs = v
		}
		if v > snap.MaxMs {
			snap.MaxMs = v
		}
	}
	snap.AvgMs = float64(sum) / float64(n)

	sorted := slices.Clone(s.ms)
	slices.Sort(sorted)
	snap.P50Ms = float64(nearestRank(sorted, 50))
	snap.P95Ms = float64(nearestRank(sorted, 95))
	snap.P99Ms = float64(nearestRank(sorted, 99))
	return snap
}

// expireLocked drops samples older than the window. Timestamps are
// non-decreasing, so the expired region is the prefix up to the first
// sample still inside the window.
func (s *CallStats) expireLocked(now time.Time) {
	cutoff := now.Add(-s.maxAge)
	first := sort.Search(len(s.at), func(i int) bool {
		return !s.at[i].Before(cutoff)
	})
	if first == 0 {
		return
	}
	n := copy(s.at, s.at[first:])
	copy(s.ms, s.ms[first:])
	s.at = s.at[:n]
	s.ms = s.ms[:n]
}

// nearestRank picks the smallest value with at least pct percent of the
// sorted samples at or below it.
func nearestRank(sorted []int64, pct int) int64 {
	rank := (len(sorted)*pct + 99) / 100
	if rank < 1 {
		rank = 1
	}
	return sorted[rank-1]
}
