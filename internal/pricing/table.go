// Package pricing maps model identifiers to tiered token price schedules.
//
// The table is deliberately data-only: model identity never selects a code
// path, so operators can recalibrate rates (the numbers track an internal
// plan's effective cost, not the published API price list) through config
// overrides without touching aggregation logic.
package pricing

import (
	"strings"

	"github.com/rub1cc/barcc/internal/model"
)

// TierThreshold is the token count above which the long-context rates
// apply, per category.
const TierThreshold int64 = 200_000

// TierRates holds the per-MTok rates charged for tokens above the
// threshold, one per category.
type TierRates struct {
	InputPerMTok      float64
	OutputPerMTok     float64
	CacheReadPerMTok  float64
	CacheWritePerMTok float64
}

// Schedule holds the per-MTok base rates for one model, plus optional
// long-context rates for the portion of each count above TierThreshold.
type Schedule struct {
	InputPerMTok      float64
	OutputPerMTok     float64
	CacheReadPerMTok  float64
	CacheWritePerMTok float64
	LongContext       *TierRates
}

// DefaultSchedule is applied to any model absent from the table.
var DefaultSchedule = Schedule{
	InputPerMTok:      3.00,
	OutputPerMTok:     15.00,
	CacheReadPerMTok:  0.30,
	CacheWritePerMTok: 3.75,
}

var baseSchedules = map[string]Schedule{
	"claude-sonnet-4-5-20250929": {
		InputPerMTok: 3.00, OutputPerMTok: 15.00,
		CacheReadPerMTok: 0.30, CacheWritePerMTok: 3.75,
		LongContext: &TierRates{
			InputPerMTok: 6.00, OutputPerMTok: 22.50,
			CacheReadPerMTok: 0.60, CacheWritePerMTok: 7.50,
		},
	},
	"claude-sonnet-4-5": {
		InputPerMTok: 3.00, OutputPerMTok: 15.00,
		CacheReadPerMTok: 0.30, CacheWritePerMTok: 3.75,
		LongContext: &TierRates{
			InputPerMTok: 6.00, OutputPerMTok: 22.50,
			CacheReadPerMTok: 0.60, CacheWritePerMTok: 7.50,
		},
	},
	"claude-sonnet-4-20250514": {
		InputPerMTok: 3.00, OutputPerMTok: 15.00,
		CacheReadPerMTok: 0.30, CacheWritePerMTok: 3.75,
		LongContext: &TierRates{
			InputPerMTok: 6.00, OutputPerMTok: 22.50,
			CacheReadPerMTok: 0.60, CacheWritePerMTok: 7.50,
		},
	},
	"claude-opus-4-5-20251101": {
		InputPerMTok: 5.00, OutputPerMTok: 25.00,
		CacheReadPerMTok: 0.50, CacheWritePerMTok: 6.25,
	},
	"claude-opus-4-1-20250805": {
		InputPerMTok: 15.00, OutputPerMTok: 75.00,
		CacheReadPerMTok: 1.50, CacheWritePerMTok: 18.75,
	},
	"claude-opus-4-20250514": {
		InputPerMTok: 15.00, OutputPerMTok: 75.00,
		CacheReadPerMTok: 1.50, CacheWritePerMTok: 18.75,
	},
	"claude-haiku-4-5-20251001": {
		InputPerMTok: 1.00, OutputPerMTok: 5.00,
		CacheReadPerMTok: 0.10, CacheWritePerMTok: 1.25,
	},
	"claude-3-5-haiku-20241022": {
		InputPerMTok: 0.80, OutputPerMTok: 4.00,
		CacheReadPerMTok: 0.08, CacheWritePerMTok: 1.00,
	},
}

// Table resolves model identifiers to schedules. Lookup is exact string
// match; unknown identifiers fall back to the default schedule.
type Table struct {
	schedules map[string]Schedule
	fallback  Schedule
}

// NewTable returns a table with the built-in schedules.
func NewTable() *Table {
	schedules := make(map[string]Schedule, len(baseSchedules))
	for name, s := range baseSchedules {
		schedules[name] = s
	}
	return &Table{schedules: schedules, fallback: DefaultSchedule}
}

// NewTableWith returns a table with the given schedules layered over the
// built-in ones. Used by config overrides and tests.
func NewTableWith(overrides map[string]Schedule) *Table {
	t := NewTable()
	for name, s := range overrides {
		t.schedules[name] = s
	}
	return t
}

// Lookup returns the schedule for a model, falling back to the default.
func (t *Table) Lookup(modelID string) Schedule {
	if s, ok := t.schedules[modelID]; ok {
		return s
	}
	return t.fallback
}

// CostOf computes the cost in USD for a token quadruple under the model's
// schedule. Each category is priced independently.
func (t *Table) CostOf(modelID string, tokens model.TokenCounts) float64 {
	s := t.Lookup(modelID)

	cost := tierCost(tokens.Input, s.InputPerMTok, s.LongContext, func(r *TierRates) float64 { return r.InputPerMTok })
	cost += tierCost(tokens.Output, s.OutputPerMTok, s.LongContext, func(r *TierRates) float64 { return r.OutputPerMTok })
	cost += tierCost(tokens.CacheRead, s.CacheReadPerMTok, s.LongContext, func(r *TierRates) float64 { return r.CacheReadPerMTok })
	cost += tierCost(tokens.CacheCreation, s.CacheWritePerMTok, s.LongContext, func(r *TierRates) float64 { return r.CacheWritePerMTok })
	return cost
}

func tierCost(tokens int64, base float64, long *TierRates, rate func(*TierRates) float64) float64 {
	if long == nil || tokens <= TierThreshold {
		return float64(tokens) * base / 1_000_000
	}
	return float64(TierThreshold)*base/1_000_000 +
		float64(tokens-TierThreshold)*rate(long)/1_000_000
}

// DisplayName classifies a model identifier into a short label. Substring
// match only; this never affects pricing.
func DisplayName(modelID string) string {
	switch {
	case strings.Contains(modelID, "opus"):
		return "Opus"
	case strings.Contains(modelID, "haiku"):
		return "Haiku"
	case strings.Contains(modelID, "sonnet-4-5"):
		return "Sonnet 4.5"
	default:
		return "Sonnet 4"
	}
}
