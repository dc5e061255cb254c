package kiter

import (
	"errors"

	k "github.com/remind101/kiter/interface"
	"go.uber.org/zap"
)

// DefaultHandlers logs poller errors at the level matching their severity.
type DefaultHandlers struct {
	Logger *zap.Logger
}

func (h DefaultHandlers) Err(err error) {
	logger := h.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	severity := k.EError
	var kerr *k.Error
	if errors.As(err, &kerr) {
		severity = kerr.Severity
		logger = logger.With(zap.String("kind", string(kerr.Kind)))
		if kerr.ShardID != "" {
			logger = logger.With(zap.String("shard", kerr.ShardID))
		}
	}

	switch severity {
	case k.EDebug:
		logger.Debug("shard worker stopped", zap.Error(err))
	case k.EInfo:
		logger.Info("shard worker stopped", zap.Error(err))
	case k.EWarn:
		logger.Warn("shard worker stopped", zap.Error(err))
	default:
		logger.Error("shard worker stopped", zap.Error(err))
	}
}
