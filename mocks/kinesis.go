package mocks

import (
	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/request"
	"github.com/aws/aws-sdk-go/service/kinesis"
	"github.com/stretchr/testify/mock"
)

type Kinesis struct {
	mock.Mock
}

func (m *Kinesis) ListShardsWithContext(_a0 aws.Context, _a1 *kinesis.ListShardsInput, _ ...request.Option) (*kinesis.ListShardsOutput, error) {
	ret := m.Called(_a0, _a1)

	var r0 *kinesis.ListShardsOutput
	if ret.Get(0) != nil {
		r0 = ret.Get(0).(*kinesis.ListShardsOutput)
	}
	r1 := ret.Error(1)

	return r0, r1
}
func (m *Kinesis) GetShardIteratorWithContext(_a0 aws.Context, _a1 *kinesis.GetShardIteratorInput, _ ...request.Option) (*kinesis.GetShardIteratorOutput, error) {
	ret := m.Called(_a0, _a1)

	var r0 *kinesis.GetShardIteratorOutput
	if ret.Get(0) != nil {
		r0 = ret.Get(0).(*kinesis.GetShardIteratorOutput)
	}
	r1 := ret.Error(1)

	return r0, r1
}
func (m *Kinesis) GetRecordsWithContext(_a0 aws.Context, _a1 *kinesis.GetRecordsInput, _ ...request.Option) (*kinesis.GetRecordsOutput, error) {
	ret := m.Called(_a0, _a1)

	var r0 *kinesis.GetRecordsOutput
	if ret.Get(0) != nil {
		r0 = ret.Get(0).(*kinesis.GetRecordsOutput)
	}
	r1 := ret.Error(1)

	return r0, r1
}
