package scheduler

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gohub-app/gohub/internal/shared/logger"
)

type countingSweeper struct {
	calls atomic.Int32
	err   error
}

func (s *countingSweeper) SweepExpiredSessions(context.Context) (int64, error) {
	s.calls.Add(1)
	return 2, s.err
}

func TestSessionSweepJobRunsImmediatelyAndRepeats(t *testing.T) {
	m, err := NewSchedulerManager(logger.NewNopLogger())
	require.NoError(t, err)

	sweeper := &countingSweeper{}
	require.NoError(t, m.RegisterSessionSweepJob(sweeper, 50*time.Millisecond))
	require.Len(t, m.Jobs(), 1)
	assert.Equal(t, "session-sweeper", m.Jobs()[0].Name())

	m.Start()
	assert.True(t, m.IsStarted())
	t.Cleanup(func() { _ = m.Stop() })

	require.Eventually(t, func() bool { return sweeper.calls.Load() >= 2 }, 2*time.Second, 10*time.Millisecond)
}

func TestSessionSweepJobSurvivesErrors(t *testing.T) {
	m, err := NewSchedulerManager(logger.NewNopLogger())
	require.NoError(t, err)

	sweeper := &countingSweeper{err: errors.New("store down")}
	require.NoError(t, m.RegisterSessionSweepJob(sweeper, 50*time.Millisecond))
	m.Start()

	require.Eventually(t, func() bool { return sweeper.calls.Load() >= 2 }, 2*time.Second, 10*time.Millisecond)
	require.NoError(t, m.Stop())
	assert.False(t, m.IsStarted())
	assert.NoError(t, m.Stop(), "stopping twice is a no-op")
}
