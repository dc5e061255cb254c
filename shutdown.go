package kiter

import (
	"context"
	"os"
	"os/signal"
	"sync"
	"sync/atomic"

	"go.uber.org/zap"
)

// Shutdown turns the first operator interrupt into cancellation of Context. Later signals
// have no further effect.
type Shutdown struct {
	ctx      context.Context
	cancel   context.CancelFunc
	sigs     chan os.Signal
	stopping atomic.Bool
	logger   *zap.Logger
	quit     chan struct{}
	once     sync.Once
	wg       sync.WaitGroup
}

// NewShutdown registers for sig (os.Interrupt when none is given) for the life of the
// returned Shutdown.
func NewShutdown(parent context.Context, logger *zap.Logger, sig ...os.Signal) *Shutdown {
	if len(sig) == 0 {
		sig = []os.Signal{os.Interrupt}
	}
	s := newShutdown(parent, logger)
	signal.Notify(s.sigs, sig...)
	s.watch()
	return s
}

func newShutdown(parent context.Context, logger *zap.Logger) *Shutdown {
	if logger == nil {
		logger = zap.NewNop()
	}
	ctx, cancel := context.WithCancel(parent)
	return &Shutdown{
		ctx:    ctx,
		cancel: cancel,
		sigs:   make(chan os.Signal, 1),
		logger: logger,
		quit:   make(chan struct{}),
	}
}

func (s *Shutdown) watch() {
	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		for {
			select {
			case sig := <-s.sigs:
				s.Trigger(sig.String())
			case <-s.quit:
				return
			}
		}
	}()
}

// Context is cancelled on the first signal or Trigger.
func (s *Shutdown) Context() context.Context {
	return s.ctx
}

// Stopping reports whether shutdown has started.
func (s *Shutdown) Stopping() bool {
	return s.stopping.Load() || s.ctx.Err() != nil
}

// Trigger starts shutdown as if a signal had arrived.
func (s *Shutdown) Trigger(reason string) {
	if !s.stopping.CompareAndSwap(false, true) {
		s.logger.Debug("already stopping", zap.String("reason", reason))
		return
	}
	s.logger.Info("stopping", zap.String("reason", reason))
	s.cancel()
}

// Close unregisters the signal handler. Context is cancelled as well.
func (s *Shutdown) Close() {
	s.once.Do(func() {
		signal.Stop(s.sigs)
		close(s.quit)
		s.wg.Wait()
		s.cancel()
	})
}
