package health

import (
	"context"
	"sync"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/user/assistant-console/internal/api"
)

// Probe fetches one liveness report.
type Probe interface {
	Health(ctx context.Context) (*api.HealthStatus, error)
}

// Poller periodically probes the backend. Consumers read it as a boolean
// with a staleness window: a report older than two intervals no longer
// counts as online.
type Poller struct {
	probe    Probe
	interval time.Duration

	mu          sync.RWMutex
	last        *api.HealthStatus
	lastSuccess time.Time
	now         func() time.Time
}

func NewPoller(probe Probe, interval time.Duration) *Poller {
	return &Poller{
		probe:    probe,
		interval: interval,
		now:      time.Now,
	}
}

// Run probes immediately and then on every interval tick until the context
// is cancelled.
func (p *Poller) Run(ctx context.Context) error {
	p.refresh(ctx)

	ticker := time.NewTicker(p.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			p.refresh(ctx)
		case <-ctx.Done():
			return ctx.Err()
		}
	}
}

func (p *Poller) refresh(ctx context.Context) {
	probeCtx, cancel := context.WithTimeout(ctx, p.interval)
	defer cancel()

	status, err := p.probe.Health(probeCtx)
	if err != nil {
		log.Warn().Err(err).Msg("Health probe failed")
		return
	}

	p.mu.Lock()
	p.last = status
	p.lastSuccess = p.now()
	p.mu.Unlock()

	log.Debug().
		Str("status", status.Status).
		Int("documents", status.VectorStore.DocumentCount).
		Msg("Health probe succeeded")
}

// Online reports whether the backend is reachable: the last successful
// probe said "ok" and is within the staleness window.
func (p *Poller) Online() bool {
	p.mu.RLock()
	defer p.mu.RUnlock()
	if p.last == nil || p.last.Status != "ok" {
		return false
	}
	return p.now().Sub(p.lastSuccess) <= 2*p.interval
}

// Snapshot returns the most recent report, if any.
func (p *Poller) Snapshot() (*api.HealthStatus, bool) {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.last, p.last != nil
}
