package services_test

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zatekoja/coachplan/internal/application/services"
)

func TestDispatcher_RunsEveryJob(t *testing.T) {
	d := services.NewDispatcher(3, 10)
	var count atomic.Int32

	for i := 0; i < 10; i++ {
		require.NoError(t, d.Submit(func() { count.Add(1) }))
	}

	require.NoError(t, d.Stop(context.Background()))
	assert.Equal(t, int32(10), count.Load())
}

func TestDispatcher_FullQueueRejectsWithoutBlocking(t *testing.T) {
	d := services.NewDispatcher(1, 1)
	started := make(chan struct{})
	release := make(chan struct{})

	require.NoError(t, d.Submit(func() {
		close(started)
		<-release
	}))
	<-started

	require.NoError(t, d.Submit(func() {}))
	assert.ErrorIs(t, d.Submit(func() {}), services.ErrQueueFull)

	close(release)
	require.NoError(t, d.Stop(context.Background()))
}

func TestDispatcher_SubmitAfterStop(t *testing.T) {
	d := services.NewDispatcher(1, 1)
	require.NoError(t, d.Stop(context.Background()))

	assert.ErrorIs(t, d.Submit(func() {}), services.ErrDispatcherStopped)
	assert.NoError(t, d.Stop(context.Background()))
}

func TestDispatcher_SurvivesPanickingJob(t *testing.T) {
	d := services.NewDispatcher(1, 2)
	var ran atomic.Bool

	require.NoError(t, d.Submit(func() { panic("boom") }))
	require.NoError(t, d.Submit(func() { ran.Store(true) }))

	require.NoError(t, d.Stop(context.Background()))
	assert.True(t, ran.Load())
}

func TestDispatcher_StopHonoursDeadline(t *testing.T) {
	d := services.NewDispatcher(1, 1)
	release := make(chan struct{})
	started := make(chan struct{})
	require.NoError(t, d.Submit(func() {
		close(started)
		<-release
	}))
	<-started

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	assert.ErrorIs(t, d.Stop(ctx), context.DeadlineExceeded)
	close(release)
}
