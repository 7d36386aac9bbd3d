package main

import (
	"sync/atomic"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestScheduler_SkipsTickWhileSweepRuns(t *testing.T) {
	c := newScheduler(zerolog.Nop())

	var calls int32
	started := make(chan struct{})
	release := make(chan struct{})
	id, err := c.AddFunc("0 0 * * * *", func() {
		atomic.AddInt32(&calls, 1)
		close(started)
		<-release
	})
	require.NoError(t, err)
	job := c.Entry(id).WrappedJob

	done := make(chan struct{})
	go func() {
		job.Run()
		close(done)
	}()
	<-started

	// Segundo tick mientras el primero no terminó: se omite sin bloquear.
	job.Run()
	close(release)
	<-done

	assert.Equal(t, int32(1), atomic.LoadInt32(&calls))
}

func TestScheduler_RecoversPanickingSweep(t *testing.T) {
	c := newScheduler(zerolog.Nop())
	id, err := c.AddFunc("0 0 * * * *", func() { panic("boom") })
	require.NoError(t, err)

	assert.NotPanics(t, func() { c.Entry(id).WrappedJob.Run() })
}
