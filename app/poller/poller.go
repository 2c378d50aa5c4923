// Package poller owns the periodic refresh job: the current poll
// configuration, at most one live timer, and the last-poll timestamp.
package poller

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/lain-corp/lain-tv/app/database"
	"github.com/lain-corp/lain-tv/app/metrics"
)

// Pipeline is the unit of work a poll triggers.
type Pipeline interface {
	Run(ctx context.Context) (int, error)
}

// Poller schedules fetch cycles with a self-rearming one-shot timer. All
// timer state is guarded by mu; cancel-before-arm inside SetConfig is what
// keeps at most one timer live at any point.
type Poller struct {
	pipeline     Pipeline
	cycleTimeout time.Duration

	mu         sync.Mutex
	config     database.PollConfig
	timer      *time.Timer
	generation uint64
	lastPoll   *int64 // epoch milliseconds
}

func New(pipeline Pipeline, cycleTimeout time.Duration) *Poller {
	return &Poller{
		pipeline:     pipeline,
		cycleTimeout: cycleTimeout,
		config:       database.DefaultPollConfig(),
	}
}

// GetConfig returns the current poll configuration.
func (p *Poller) GetConfig() database.PollConfig {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.config
}

// LastPoll returns the completion time of the most recent fetch cycle in
// epoch milliseconds, or nil when no cycle has completed yet.
func (p *Poller) LastPoll() *int64 {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.lastPoll
}

// Armed reports whether a timer is currently scheduled.
func (p *Poller) Armed() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.timer != nil
}

// SetConfig replaces the poll configuration as one critical section: any
// existing timer is cancelled first, then the config is stored, then a new
// timer is armed if the config enables polling.
func (p *Poller) SetConfig(config database.PollConfig) {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.disarmLocked()
	p.config = config

	if config.Enabled {
		p.armLocked()
	}
}

// Stop cancels any pending timer. An already in-flight cycle runs to
// completion; its generation check prevents it from re-arming.
func (p *Poller) Stop() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.disarmLocked()
}

// TriggerNow runs one fetch cycle synchronously, independent of the timer.
// The last-poll timestamp is only updated on success.
func (p *Poller) TriggerNow(ctx context.Context) (int, error) {
	count, err := p.pipeline.Run(ctx)
	if err != nil {
		metrics.FetchCyclesTotal.WithLabelValues(metrics.TriggerManual, metrics.ResultError).Inc()
		return 0, err
	}
	metrics.FetchCyclesTotal.WithLabelValues(metrics.TriggerManual, metrics.ResultSuccess).Inc()

	now := time.Now().UnixMilli()
	p.mu.Lock()
	p.lastPoll = &now
	p.mu.Unlock()

	return count, nil
}

func (p *Poller) disarmLocked() {
	if p.timer != nil {
		p.timer.Stop()
		p.timer = nil
	}
	// Invalidate any firing that already left the timer and is running the
	// pipeline; it must not re-arm on top of whatever is armed next.
	p.generation++
}

func (p *Poller) armLocked() {
	gen := p.generation
	interval := time.Duration(p.config.IntervalSeconds) * time.Second
	p.timer = time.AfterFunc(interval, func() {
		p.fire(gen)
	})
}

// fire runs the scheduled fetch cycle. Errors are swallowed here so that
// periodic polling survives transient source failures; the last-poll
// timestamp is recorded regardless of the cycle's outcome.
func (p *Poller) fire(gen uint64) {
	ctx, cancel := context.WithTimeout(context.Background(), p.cycleTimeout)
	defer cancel()

	count, err := p.pipeline.Run(ctx)
	if err != nil {
		metrics.FetchCyclesTotal.WithLabelValues(metrics.TriggerScheduled, metrics.ResultError).Inc()
		slog.Error("Scheduled poll failed", "error", err)
	} else {
		metrics.FetchCyclesTotal.WithLabelValues(metrics.TriggerScheduled, metrics.ResultSuccess).Inc()
		slog.Info("Scheduled poll completed", "videos", count)
	}

	now := time.Now().UnixMilli()

	p.mu.Lock()
	defer p.mu.Unlock()

	p.lastPoll = &now

	if gen != p.generation || !p.config.Enabled {
		// Reconfigured or disabled while this cycle was in flight; the
		// current owner of the timer slot re-arms, not us.
		return
	}

	p.timer = nil
	p.armLocked()
}
