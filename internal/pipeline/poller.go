package pipeline

import (
	"context"
	"time"

	"github.com/rub1cc/barcc/internal/model"
)

// MinPollInterval is the enforced floor on the scan interval.
const MinPollInterval = 10 * time.Second

// Poller runs scans on a dedicated background worker: periodically on a
// ticker and on demand via Request. At most one scan is in flight;
// requests arriving while one runs are coalesced into at most one pending
// scan, never queued. New snapshots are published on Updates.
type Poller struct {
	engine   *Engine
	interval time.Duration
	requests chan struct{}
	updates  chan *model.Snapshot
}

// NewPoller returns a poller for the engine. Intervals below the floor
// are clamped to it.
func NewPoller(engine *Engine, interval time.Duration) *Poller {
	if interval < MinPollInterval {
		interval = MinPollInterval
	}
	return &Poller{
		engine:   engine,
		interval: interval,
		requests: make(chan struct{}, 1),
		updates:  make(chan *model.Snapshot, 1),
	}
}

// Request asks for an on-demand scan. Non-blocking; collapses into an
// already-pending request.
func (p *Poller) Request() {
	select {
	case p.requests <- struct{}{}:
	default:
	}
}

// Updates delivers each newly built snapshot. A short-circuited scan (same
// snapshot returned) is not republished. The latest snapshot replaces an
// unconsumed one rather than blocking the worker.
func (p *Poller) Updates() <-chan *model.Snapshot {
	return p.updates
}

// Run scans once immediately, then on every tick or request until ctx is
// canceled. It is the single scan worker; scans run to completion once
// started.
func (p *Poller) Run(ctx context.Context) {
	p.scanAndPublish()

	ticker := time.NewTicker(p.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			p.scanAndPublish()
		case <-p.requests:
			p.scanAndPublish()
		}
	}
}

func (p *Poller) scanAndPublish() {
	prev := p.engine.Snapshot()
	snap := p.engine.Scan()
	if snap == prev {
		return
	}
	// Replace a stale unconsumed snapshot instead of blocking.
	for {
		select {
		case p.updates <- snap:
			return
		default:
			select {
			case <-p.updates:
			default:
			}
		}
	}
}
