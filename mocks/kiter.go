package mocks

import (
	"context"

	k "github.com/remind101/kiter/interface"
	"github.com/stretchr/testify/mock"
)

type Kiter struct {
	mock.Mock
}

func (m *Kiter) Begin(ctx context.Context) ([]string, error) {
	ret := m.Called(ctx)

	var r0 []string
	if ret.Get(0) != nil {
		r0 = ret.Get(0).([]string)
	}
	r1 := ret.Error(1)

	return r0, r1
}
func (m *Kiter) End() {
	m.Called()
}
func (m *Kiter) Batches() <-chan *k.Batch {
	ret := m.Called()

	var r0 <-chan *k.Batch
	if ret.Get(0) != nil {
		r0 = ret.Get(0).(<-chan *k.Batch)
	}

	return r0
}
func (m *Kiter) Err() error {
	ret := m.Called()

	r0 := ret.Error(0)

	return r0
}
