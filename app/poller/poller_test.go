package poller

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/lain-corp/lain-tv/app/database"
)

type stubPipeline struct {
	count int
	err   error
	runs  atomic.Int32
	fired chan struct{}
}

func newStubPipeline(count int, err error) *stubPipeline {
	return &stubPipeline{count: count, err: err, fired: make(chan struct{}, 16)}
}

func (s *stubPipeline) Run(ctx context.Context) (int, error) {
	s.runs.Add(1)
	select {
	case s.fired <- struct{}{}:
	default:
	}
	return s.count, s.err
}

func enabledConfig(seconds int64) database.PollConfig {
	return database.PollConfig{IntervalSeconds: seconds, Enabled: true}
}

func TestPoller_DefaultConfig(t *testing.T) {
	p := New(newStubPipeline(0, nil), time.Minute)

	config := p.GetConfig()
	if config.IntervalSeconds != 86400 || config.Enabled {
		t.Errorf("Expected 24h disabled default, got %+v", config)
	}
	if p.Armed() {
		t.Error("Expected no timer before configuration")
	}
	if p.LastPoll() != nil {
		t.Error("Expected no last poll before any cycle")
	}
}

func TestPoller_SetConfigArmsAndDisarms(t *testing.T) {
	p := New(newStubPipeline(0, nil), time.Minute)
	defer p.Stop()

	p.SetConfig(enabledConfig(3600))
	if !p.Armed() {
		t.Error("Expected timer armed after enabling")
	}

	p.SetConfig(database.PollConfig{IntervalSeconds: 3600, Enabled: false})
	if p.Armed() {
		t.Error("Expected timer cancelled after disabling")
	}
}

func TestPoller_SingleTimerInvariant(t *testing.T) {
	pipeline := newStubPipeline(0, nil)
	p := New(pipeline, time.Minute)
	defer p.Stop()

	// Any sequence of reconfigurations must leave at most one live timer.
	p.SetConfig(enabledConfig(3600))
	p.SetConfig(enabledConfig(1800))
	p.SetConfig(database.PollConfig{IntervalSeconds: 1800, Enabled: false})
	p.SetConfig(enabledConfig(1))

	select {
	case <-pipeline.fired:
	case <-time.After(3 * time.Second):
		t.Fatal("Expected the armed timer to fire")
	}

	// Allow a possible immediate re-fire of the re-armed 1s timer, but a
	// burst of firings would mean overlapping timers existed.
	time.Sleep(500 * time.Millisecond)
	if runs := pipeline.runs.Load(); runs > 2 {
		t.Errorf("Expected at most 2 firings from a single live timer chain, got %d", runs)
	}
}

func TestPoller_FiringRecordsLastPollAndRearms(t *testing.T) {
	pipeline := newStubPipeline(3, nil)
	p := New(pipeline, time.Minute)
	defer p.Stop()

	p.SetConfig(enabledConfig(1))

	select {
	case <-pipeline.fired:
	case <-time.After(3 * time.Second):
		t.Fatal("Expected timer to fire")
	}

	// The firing re-arms itself while enabled; poll until the rearm lands.
	deadline := time.Now().Add(2 * time.Second)
	for !p.Armed() {
		if time.Now().After(deadline) {
			t.Fatal("Expected timer re-armed after firing")
		}
		time.Sleep(10 * time.Millisecond)
	}

	if p.LastPoll() == nil {
		t.Error("Expected last poll recorded after scheduled firing")
	}
}

func TestPoller_FiringRecordsLastPollOnFailure(t *testing.T) {
	pipeline := newStubPipeline(0, errors.New("source down"))
	p := New(pipeline, time.Minute)
	defer p.Stop()

	p.SetConfig(enabledConfig(1))

	select {
	case <-pipeline.fired:
	case <-time.After(3 * time.Second):
		t.Fatal("Expected timer to fire")
	}

	deadline := time.Now().Add(2 * time.Second)
	for p.LastPoll() == nil {
		if time.Now().After(deadline) {
			t.Fatal("Scheduled path must record last poll even when the cycle fails")
		}
		time.Sleep(10 * time.Millisecond)
	}
}

func TestPoller_DisabledTimerNeverFires(t *testing.T) {
	pipeline := newStubPipeline(0, nil)
	p := New(pipeline, time.Minute)

	p.SetConfig(enabledConfig(1))
	p.SetConfig(database.PollConfig{IntervalSeconds: 1, Enabled: false})

	time.Sleep(1500 * time.Millisecond)
	if runs := pipeline.runs.Load(); runs != 0 {
		t.Errorf("Cancelled timer must not fire, got %d runs", runs)
	}
}

func TestPoller_TriggerNow(t *testing.T) {
	pipeline := newStubPipeline(3, nil)
	p := New(pipeline, time.Minute)

	count, err := p.TriggerNow(context.Background())
	if err != nil {
		t.Fatalf("TriggerNow failed: %v", err)
	}
	if count != 3 {
		t.Errorf("Expected 3 candidates, got %d", count)
	}
	if p.LastPoll() == nil {
		t.Error("Expected last poll recorded after successful manual trigger")
	}
	if p.Armed() {
		t.Error("Manual trigger must not arm a timer")
	}
}

func TestPoller_TriggerNowFailure(t *testing.T) {
	pipeline := newStubPipeline(0, errors.New("source down"))
	p := New(pipeline, time.Minute)

	if _, err := p.TriggerNow(context.Background()); err == nil {
		t.Fatal("Expected error from failing cycle")
	}
	if p.LastPoll() != nil {
		t.Error("Failed manual trigger must not update last poll")
	}
}
