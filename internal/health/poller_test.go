package health

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/user/assistant-console/internal/api"
)

type fakeProbe struct {
	status *api.HealthStatus
	err    error
	calls  int
}

func (p *fakeProbe) Health(ctx context.Context) (*api.HealthStatus, error) {
	p.calls++
	return p.status, p.err
}

func okStatus() *api.HealthStatus {
	s := &api.HealthStatus{Status: "ok", Version: "1.0"}
	s.VectorStore.DocumentCount = 2
	return s
}

func TestOnlineAfterSuccessfulProbe(t *testing.T) {
	probe := &fakeProbe{status: okStatus()}
	p := NewPoller(probe, 30*time.Second)

	assert.False(t, p.Online(), "no probe yet")

	p.refresh(context.Background())

	assert.True(t, p.Online())
	snapshot, ok := p.Snapshot()
	require.True(t, ok)
	assert.Equal(t, 2, snapshot.VectorStore.DocumentCount)
}

func TestFailedProbeKeepsLastReport(t *testing.T) {
	probe := &fakeProbe{status: okStatus()}
	p := NewPoller(probe, 30*time.Second)
	p.refresh(context.Background())

	probe.err = errors.New("connection refused")
	probe.status = nil
	p.refresh(context.Background())

	// Still online: the last good report is inside the staleness window.
	assert.True(t, p.Online())
	_, ok := p.Snapshot()
	assert.True(t, ok)
}

func TestStalenessWindowExpires(t *testing.T) {
	probe := &fakeProbe{status: okStatus()}
	p := NewPoller(probe, 30*time.Second)
	p.refresh(context.Background())
	require.True(t, p.Online())

	now := time.Now()
	p.now = func() time.Time { return now.Add(61 * time.Second) }

	assert.False(t, p.Online(), "report older than two intervals must not count as online")
}

func TestDegradedStatusIsOffline(t *testing.T) {
	probe := &fakeProbe{status: &api.HealthStatus{Status: "degraded"}}
	p := NewPoller(probe, 30*time.Second)
	p.refresh(context.Background())

	assert.False(t, p.Online())
}

func TestRunProbesUntilCancelled(t *testing.T) {
	probe := &fakeProbe{status: okStatus()}
	p := NewPoller(probe, 10*time.Millisecond)

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	err := p.Run(ctx)
	require.ErrorIs(t, err, context.DeadlineExceeded)
	assert.GreaterOrEqual(t, probe.calls, 2, "Run must probe immediately and on ticks")
	assert.True(t, p.Online())
}
