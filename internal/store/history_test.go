package store

import (
	"math"
	"path/filepath"
	"testing"
	"time"

	"github.com/rub1cc/barcc/internal/model"
)

func openTestHistory(t *testing.T) *History {
	t.Helper()
	h, err := Open(filepath.Join(t.TempDir(), "history.db"))
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	t.Cleanup(func() { _ = h.Close() })
	return h
}

func day(date time.Time, cost float64, messages int) model.DayStat {
	return model.DayStat{
		Date:     date,
		Models:   []string{"claude-sonnet-4-5-20250929"},
		Tokens:   model.TokenCounts{Input: 1000, Output: 500},
		Cost:     cost,
		Messages: messages,
		Sessions: 1,
	}
}

func TestHistory_RoundTrip(t *testing.T) {
	h := openTestHistory(t)

	d1 := time.Date(2026, 8, 28, 0, 0, 0, 0, time.Local)
	d2 := time.Date(2026, 8, 29, 0, 0, 0, 0, time.Local)
	snap := &model.Snapshot{Days: []model.DayStat{day(d2, 0.02, 3), day(d1, 0.01, 2)}}

	if err := h.RecordSnapshot(snap); err != nil {
		t.Fatalf("RecordSnapshot: %v", err)
	}

	days, err := h.Days(0)
	if err != nil {
		t.Fatalf("Days: %v", err)
	}
	if len(days) != 2 {
		t.Fatalf("got %d days, want 2", len(days))
	}
	// Most recent first.
	if !days[0].Date.Equal(d2) || !days[1].Date.Equal(d1) {
		t.Errorf("order = %v, %v; want %v, %v", days[0].Date, days[1].Date, d2, d1)
	}
	if days[0].Messages != 3 || math.Abs(days[0].Cost-0.02) > 1e-9 {
		t.Errorf("latest day = %+v", days[0])
	}
	if days[0].Tokens.Input != 1000 || days[0].Tokens.Output != 500 {
		t.Errorf("tokens = %+v", days[0].Tokens)
	}
	if len(days[0].Models) != 1 || days[0].Models[0] != "claude-sonnet-4-5-20250929" {
		t.Errorf("models = %v", days[0].Models)
	}
}

func TestHistory_UpsertReplacesDay(t *testing.T) {
	h := openTestHistory(t)
	d := time.Date(2026, 8, 29, 0, 0, 0, 0, time.Local)

	if err := h.RecordSnapshot(&model.Snapshot{Days: []model.DayStat{day(d, 0.01, 1)}}); err != nil {
		t.Fatal(err)
	}
	if err := h.RecordSnapshot(&model.Snapshot{Days: []model.DayStat{day(d, 0.05, 4)}}); err != nil {
		t.Fatal(err)
	}

	days, err := h.Days(0)
	if err != nil {
		t.Fatal(err)
	}
	if len(days) != 1 {
		t.Fatalf("got %d rows, want 1 (upsert)", len(days))
	}
	if days[0].Messages != 4 || math.Abs(days[0].Cost-0.05) > 1e-9 {
		t.Errorf("day not replaced: %+v", days[0])
	}
}

func TestHistory_RotatedDaysSurvive(t *testing.T) {
	h := openTestHistory(t)
	old := time.Date(2026, 7, 1, 0, 0, 0, 0, time.Local)
	recent := time.Date(2026, 8, 29, 0, 0, 0, 0, time.Local)

	if err := h.RecordSnapshot(&model.Snapshot{Days: []model.DayStat{day(old, 0.10, 5)}}); err != nil {
		t.Fatal(err)
	}
	// The old day's logs have rotated away; the next snapshot no longer
	// carries it, but the ledger keeps it.
	if err := h.RecordSnapshot(&model.Snapshot{Days: []model.DayStat{day(recent, 0.02, 1)}}); err != nil {
		t.Fatal(err)
	}

	days, err := h.Days(0)
	if err != nil {
		t.Fatal(err)
	}
	if len(days) != 2 {
		t.Fatalf("got %d days, want 2 (rotated day retained)", len(days))
	}
	if !days[1].Date.Equal(old) {
		t.Errorf("oldest day = %v, want %v", days[1].Date, old)
	}
}

func TestHistory_Limit(t *testing.T) {
	h := openTestHistory(t)
	var ds []model.DayStat
	for i := 0; i < 5; i++ {
		ds = append(ds, day(time.Date(2026, 8, 20+i, 0, 0, 0, 0, time.Local), 0.01, 1))
	}
	if err := h.RecordSnapshot(&model.Snapshot{Days: ds}); err != nil {
		t.Fatal(err)
	}

	days, err := h.Days(2)
	if err != nil {
		t.Fatal(err)
	}
	if len(days) != 2 {
		t.Fatalf("got %d days, want 2", len(days))
	}
	if days[0].Date.Day() != 24 {
		t.Errorf("limit did not keep the most recent days: %v", days[0].Date)
	}
}
