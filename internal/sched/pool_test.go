package sched

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPool_ReuseWithinGracePeriod(t *testing.T) {
	t.Parallel()
	s := newTestScheduler(t, WithGracePeriod(time.Second))

	// Sequential, non-overlapping dispatches: the pool must keep reusing
	// the one worker it allocated rather than growing.
	var firstID int
	for i := 0; i < 5; i++ {
		h := s.Dispatch(echoModule{}, i)
		if i == 0 {
			firstID = h.WorkerID()
		} else {
			assert.Equal(t, firstID, h.WorkerID(), "worker must be reused, not reallocated")
		}
		c := <-h.Done()
		require.True(t, c.OK)
		// The completion signal fires before the worker re-enters the free
		// list, so wait for the release before dispatching again.
		require.Eventually(t, func() bool { return s.IdleWorkers() == 1 },
			time.Second, time.Millisecond, "worker must return to the free list")
		require.Equal(t, 1, s.LiveWorkers())
	}
}

func TestPool_GrowsToDemand(t *testing.T) {
	t.Parallel()
	s := newTestScheduler(t, WithGracePeriod(time.Second))

	const parallel = 4
	handles := make([]*Handle, 0, parallel)
	for i := 0; i < parallel; i++ {
		handles = append(handles, s.Dispatch(sleepModule{d: 100 * time.Millisecond}))
	}
	assert.Equal(t, parallel, s.LiveWorkers())

	for _, h := range handles {
		c := <-h.Done()
		require.True(t, c.OK)
	}
	require.Eventually(t, func() bool { return s.IdleWorkers() == parallel },
		time.Second, 5*time.Millisecond, "all workers should return to the free list")
}

func TestPool_EvictsAfterGracePeriod(t *testing.T) {
	t.Parallel()
	s := newTestScheduler(t, WithGracePeriod(50*time.Millisecond))

	ok, _ := s.Invoke(context.Background(), echoModule{})
	require.True(t, ok)
	require.Equal(t, 1, s.LiveWorkers())

	require.Eventually(t, func() bool { return s.LiveWorkers() == 0 },
		time.Second, 5*time.Millisecond, "idle worker should be destroyed after the grace period")
}

func TestPool_ReacquireCancelsEviction(t *testing.T) {
	t.Parallel()
	s := newTestScheduler(t, WithGracePeriod(80*time.Millisecond))

	ok, _ := s.Invoke(context.Background(), echoModule{})
	require.True(t, ok)

	// Keep touching the pool inside the grace period; the worker must
	// survive well past a single grace interval.
	for i := 0; i < 6; i++ {
		time.Sleep(40 * time.Millisecond)
		ok, _ := s.Invoke(context.Background(), echoModule{})
		require.True(t, ok)
		assert.Equal(t, 1, s.LiveWorkers())
	}
}
