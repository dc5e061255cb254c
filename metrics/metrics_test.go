package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
)

func TestRegister(t *testing.T) {
	reg := prometheus.NewRegistry()
	assert.NoError(t, Register(reg))
	assert.Error(t, Register(reg), "registering twice must fail")
}
