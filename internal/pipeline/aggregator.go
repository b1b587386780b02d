// Package pipeline drives the scan: discovery, decoding, deduplication,
// aggregation, and snapshot publication.
package pipeline

import (
	"sort"
	"time"

	"github.com/rub1cc/barcc/internal/model"
	"github.com/rub1cc/barcc/internal/pricing"
)

const dayFormat = "2006-01-02"

// Aggregator folds deduplicated assistant events into per-day, per-model,
// and global running totals. The fold is commutative (sums and set
// insertions only), so results do not depend on file or line order.
type Aggregator struct {
	table *pricing.Table
	today string

	days     map[string]*dayAccum
	models   map[string]*modelAccum
	sessions map[string]struct{}
	messages int
}

type dayAccum struct {
	tokens   model.TokenCounts
	cost     float64
	messages int
	models   map[string]struct{}
	sessions map[string]struct{}
}

type modelAccum struct {
	tokens   model.TokenCounts
	messages int
}

// NewAggregator returns an aggregator bucketing against the given "today"
// (local calendar date in dayFormat, fixed at scan start).
func NewAggregator(table *pricing.Table, today string) *Aggregator {
	return &Aggregator{
		table:    table,
		today:    today,
		days:     make(map[string]*dayAccum),
		models:   make(map[string]*modelAccum),
		sessions: make(map[string]struct{}),
	}
}

// Add folds one already-deduplicated event into the running totals.
func (a *Aggregator) Add(ev model.UsageEvent) {
	day := ev.Timestamp.Local().Format(dayFormat)
	cost := a.table.CostOf(ev.Model, ev.Tokens)

	da, ok := a.days[day]
	if !ok {
		da = &dayAccum{
			models:   make(map[string]struct{}),
			sessions: make(map[string]struct{}),
		}
		a.days[day] = da
	}
	da.tokens.Add(ev.Tokens)
	da.cost += cost
	da.messages++
	da.models[ev.Model] = struct{}{}

	ma, ok := a.models[ev.Model]
	if !ok {
		ma = &modelAccum{}
		a.models[ev.Model] = ma
	}
	ma.tokens.Add(ev.Tokens)
	ma.messages++

	a.messages++
	if ev.SessionID != "" {
		a.sessions[ev.SessionID] = struct{}{}
		da.sessions[ev.SessionID] = struct{}{}
	}
}

// Build assembles the immutable snapshot: full day breakdown sorted by
// date descending, fixed-length 7- and 30-day series anchored on today,
// per-model totals re-priced from raw sums and sorted by cost descending,
// and grand totals.
func (a *Aggregator) Build(now time.Time) *model.Snapshot {
	s := &model.Snapshot{UpdatedAt: now}

	for day, da := range a.days {
		s.Days = append(s.Days, a.dayStat(day, da))
	}
	sort.Slice(s.Days, func(i, j int) bool {
		return s.Days[i].Date.After(s.Days[j].Date)
	})

	s.Today = a.seriesEntry(a.today)
	s.Last7Days = a.series(now, 7)
	s.Last30Days = a.series(now, 30)

	for name, ma := range a.models {
		s.Models = append(s.Models, model.ModelStat{
			Model:       name,
			DisplayName: pricing.DisplayName(name),
			Tokens:      ma.tokens,
			// Derived from the raw sums against the current table so a
			// recalibrated schedule re-prices history without compounding
			// rounding.
			Cost:     a.table.CostOf(name, ma.tokens),
			Messages: ma.messages,
		})
	}
	sort.Slice(s.Models, func(i, j int) bool {
		if s.Models[i].Cost != s.Models[j].Cost {
			return s.Models[i].Cost > s.Models[j].Cost
		}
		return s.Models[i].Model < s.Models[j].Model
	})

	s.Totals.Messages = a.messages
	s.Totals.Sessions = len(a.sessions)
	for _, ms := range s.Models {
		s.Totals.Tokens.Add(ms.Tokens)
		s.Totals.Cost += ms.Cost
	}

	return s
}

// series builds exactly n entries ending on today, oldest first. Days with
// no events contribute zeros, never omission.
func (a *Aggregator) series(now time.Time, n int) []model.DayStat {
	local := now.Local()
	start := time.Date(local.Year(), local.Month(), local.Day(), 0, 0, 0, 0, time.Local)

	out := make([]model.DayStat, n)
	for i := range out {
		date := start.AddDate(0, 0, i-n+1)
		out[i] = a.seriesEntry(date.Format(dayFormat))
	}
	return out
}

func (a *Aggregator) seriesEntry(day string) model.DayStat {
	if da, ok := a.days[day]; ok {
		return a.dayStat(day, da)
	}
	date, _ := time.ParseInLocation(dayFormat, day, time.Local)
	return model.DayStat{Date: date}
}

func (a *Aggregator) dayStat(day string, da *dayAccum) model.DayStat {
	date, _ := time.ParseInLocation(dayFormat, day, time.Local)

	models := make([]string, 0, len(da.models))
	for m := range da.models {
		models = append(models, m)
	}
	sort.Strings(models)

	return model.DayStat{
		Date:     date,
		Models:   models,
		Tokens:   da.tokens,
		Cost:     da.cost,
		Messages: da.messages,
		Sessions: len(da.sessions),
	}
}
