package model

import "time"

// DayStat holds the aggregate for one local calendar day.
type DayStat struct {
	Date     time.Time
	Models   []string
	Tokens   TokenCounts
	Cost     float64
	Messages int
	Sessions int
}

// ModelStat holds the aggregate for one distinct model identifier.
// Cost is recomputed from the raw token sums against the current pricing
// table when the snapshot is built, never accumulated incrementally.
type ModelStat struct {
	Model       string
	DisplayName string
	Tokens      TokenCounts
	Cost        float64
	Messages    int
}

// Totals holds the grand totals across the whole log tree.
type Totals struct {
	Messages int
	Sessions int
	Tokens   TokenCounts
	Cost     float64
}

// Snapshot is the immutable result of one completed scan. It is built in
// full by the engine and handed across to consumers as a pointer; it is
// superseded by the next scan, never mutated.
type Snapshot struct {
	Today      DayStat
	Last7Days  []DayStat   // exactly 7 entries, oldest first
	Last30Days []DayStat   // exactly 30 entries, oldest first
	Models     []ModelStat // sorted by cost descending
	Days       []DayStat   // sorted by date descending
	Totals     Totals
	UpdatedAt  time.Time

	// Degradation counters, for diagnostics only.
	FileErrors int
	LineErrors int
}

// EmptySnapshot returns an all-zero snapshot for the given instant, used
// when the log root does not exist yet.
func EmptySnapshot(now time.Time) *Snapshot {
	s := &Snapshot{UpdatedAt: now}
	s.Today = DayStat{Date: dayStart(now)}
	s.Last7Days = zeroSeries(now, 7)
	s.Last30Days = zeroSeries(now, 30)
	return s
}

func zeroSeries(now time.Time, n int) []DayStat {
	series := make([]DayStat, n)
	start := dayStart(now)
	for i := range series {
		series[i] = DayStat{Date: start.AddDate(0, 0, i-n+1)}
	}
	return series
}

func dayStart(t time.Time) time.Time {
	local := t.Local()
	return time.Date(local.Year(), local.Month(), local.Day(), 0, 0, 0, 0, time.Local)
}
