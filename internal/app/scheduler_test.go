package app

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type fakeGenerator struct {
	calls      atomic.Int32
	weeksAhead atomic.Int32
	err        error
}

func (g *fakeGenerator) GenerateRecurring(_ context.Context, weeksAhead int) (int, error) {
	g.calls.Add(1)
	g.weeksAhead.Store(int32(weeksAhead))
	return 1, g.err
}

func TestSchedulerRunsImmediatelyAndPeriodically(t *testing.T) {
	gen := &fakeGenerator{}
	s := NewScheduler(gen, 10*time.Millisecond, 6, zap.NewNop())

	s.Start(context.Background())

	require.Eventually(t, func() bool { return gen.calls.Load() >= 3 }, time.Second, 5*time.Millisecond)
	s.Stop()
	s.Stop()

	assert.Equal(t, int32(6), gen.weeksAhead.Load())
}

func TestSchedulerStopsOnContextCancel(t *testing.T) {
	gen := &fakeGenerator{err: errors.New("db down")}
	s := NewScheduler(gen, time.Hour, 4, zap.NewNop())

	ctx, cancel := context.WithCancel(context.Background())
	s.Start(ctx)

	require.Eventually(t, func() bool { return gen.calls.Load() == 1 }, time.Second, 5*time.Millisecond)
	cancel()

	done := make(chan struct{})
	go func() {
		s.Stop()
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("scheduler did not stop")
	}
}
