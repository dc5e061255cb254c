package kiteriface

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestErrorMessage(t *testing.T) {
	origin := errors.New("connection reset")
	err := NewTransportError("GetRecords failed", origin).WithShard("shard0")
	assert.Equal(t, "shard shard0: GetRecords failed from connection reset", err.Error())
	assert.True(t, errors.Is(err, origin))
	assert.Equal(t, EError, err.Severity)

	assert.Equal(t, "no iterator", NewProtocolError("no iterator").Error())
}

func TestIsKind(t *testing.T) {
	wrapped := fmt.Errorf("begin: %w", NewConfigError("bad"))
	assert.True(t, IsKind(wrapped, KindConfig))
	assert.False(t, IsKind(wrapped, KindTransport))
	assert.False(t, IsKind(errors.New("plain"), KindConfig))
}

func TestBatch(t *testing.T) {
	b := &Batch{}
	assert.True(t, b.Empty())
	assert.True(t, b.Closed())
	assert.Equal(t, "", b.LastSequenceNumber())
}
