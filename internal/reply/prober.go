package reply

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	logx "github.com/supplysight/assistant-core/pkg/logger"
)

// Status is the connectivity state of the assistant runtime, surfaced to the
// widget as a badge.
type Status string

const (
	StatusConnected Status = "connected"
	StatusLimited   Status = "limited"
	StatusOffline   Status = "offline"
)

// failureWindow is how long a generation failure keeps the status at limited.
const failureWindow = 30 * time.Second

// Prober owns the connectivity refresh timer. Polling only updates the badge;
// it is not part of the submission pipeline.
type Prober struct {
	engine   *Engine
	interval time.Duration

	status   atomic.Value
	stop     chan struct{}
	stopOnce sync.Once
}

func NewProber(engine *Engine, interval time.Duration) *Prober {
	p := &Prober{
		engine:   engine,
		interval: interval,
		stop:     make(chan struct{}),
	}
	p.status.Store(StatusOffline)
	return p
}

// Start refreshes the status immediately, then on every tick until Stop is
// called or the context is cancelled.
func (p *Prober) Start(ctx context.Context) {
	p.Refresh()
	go func() {
		ticker := time.NewTicker(p.interval)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-p.stop:
				return
			case <-ticker.C:
				p.Refresh()
			}
		}
	}()
}

// Stop halts the refresh timer. Safe to call more than once.
func (p *Prober) Stop() {
	p.stopOnce.Do(func() { close(p.stop) })
}

// Refresh recomputes and stores the current status.
func (p *Prober) Refresh() Status {
	s := p.check()
	if prev := p.Status(); prev != s {
		logx.Info().Str("from", string(prev)).Str("to", string(s)).Msg("assistant runtime connectivity changed")
	}
	p.status.Store(s)
	return s
}

// Status returns the last refreshed connectivity state.
func (p *Prober) Status() Status {
	return p.status.Load().(Status)
}

func (p *Prober) check() Status {
	if !p.engine.Available() {
		return StatusOffline
	}
	if p.engine.recentFailure(failureWindow) {
		return StatusLimited
	}
	return StatusConnected
}
