package kiter

import (
	"errors"
	"testing"

	k "github.com/remind101/kiter/interface"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestDefaultHandlersErr(t *testing.T) {
	core, logs := observer.New(zap.DebugLevel)
	h := DefaultHandlers{Logger: zap.New(core)}

	h.Err(k.NewTransportError("GetRecords failed", errors.New("boom")).WithShard("shard0"))
	h.Err(k.NewError(k.KindProtocol, k.EWarn, "odd response", nil))
	h.Err(errors.New("plain"))

	entries := logs.AllUntimed()
	require.Len(t, entries, 3)

	assert.Equal(t, zapcore.ErrorLevel, entries[0].Level)
	assert.Equal(t, "shard0", entries[0].ContextMap()["shard"])
	assert.Equal(t, string(k.KindTransport), entries[0].ContextMap()["kind"])

	assert.Equal(t, zapcore.WarnLevel, entries[1].Level)
	assert.NotContains(t, entries[1].ContextMap(), "shard")

	assert.Equal(t, zapcore.ErrorLevel, entries[2].Level)
}

func TestDefaultHandlersNilLogger(t *testing.T) {
	assert.NotPanics(t, func() {
		DefaultHandlers{}.Err(errors.New("boom"))
	})
}
