package kiter

import (
	"context"
	"syscall"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"go.uber.org/goleak"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

func waitDone(t *testing.T, ctx context.Context) {
	t.Helper()
	select {
	case <-ctx.Done():
	case <-time.After(time.Second):
		t.Fatal("context was not cancelled")
	}
}

func TestShutdownFirstSignalCancels(t *testing.T) {
	defer goleak.VerifyNone(t)
	core, logs := observer.New(zap.DebugLevel)
	s := newShutdown(context.Background(), zap.New(core))
	s.watch()
	defer s.Close()

	assert.False(t, s.Stopping())
	s.sigs <- syscall.SIGINT
	waitDone(t, s.Context())
	assert.True(t, s.Stopping())

	s.sigs <- syscall.SIGINT
	assert.Eventually(t, func() bool {
		return logs.FilterMessage("already stopping").Len() == 1
	}, time.Second, time.Millisecond)
	assert.Equal(t, 1, logs.FilterMessage("stopping").Len())
}

func TestShutdownTrigger(t *testing.T) {
	s := newShutdown(context.Background(), nil)
	s.Trigger("test")
	waitDone(t, s.Context())
	s.Trigger("again")
	assert.True(t, s.Stopping())
}

func TestShutdownParentCancel(t *testing.T) {
	parent, cancel := context.WithCancel(context.Background())
	s := newShutdown(parent, nil)
	cancel()
	waitDone(t, s.Context())
	assert.True(t, s.Stopping())
}

func TestShutdownClose(t *testing.T) {
	s := NewShutdown(context.Background(), zap.NewNop(), syscall.SIGUSR1)
	s.Close()
	s.Close()
	waitDone(t, s.Context())
}
