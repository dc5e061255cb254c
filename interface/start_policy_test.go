package kiteriface

import (
	"testing"
	"time"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/service/kinesis"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseStartPolicyRequiredParameters(t *testing.T) {
	cases := []struct {
		iteratorType, seq, ts string
		wantErr               bool
	}{
		{"LATEST", "", "", false},
		{"TRIM_HORIZON", "", "", false},
		{"LATEST", "123", "1600000000", false},
		{"AT_SEQUENCE_NUMBER", "123", "", false},
		{"AT_SEQUENCE_NUMBER", "", "", true},
		{"AT_SEQUENCE_NUMBER", "", "1600000000", true},
		{"AFTER_SEQUENCE_NUMBER", "123", "", false},
		{"AFTER_SEQUENCE_NUMBER", "", "", true},
		{"AT_TIMESTAMP", "", "1600000000", false},
		{"AT_TIMESTAMP", "", "1600000000.25", false},
		{"AT_TIMESTAMP", "123", "", true},
		{"AT_TIMESTAMP", "", "yesterday", true},
		{"SOMETIME", "", "", true},
		{"", "", "", true},
	}
	for _, c := range cases {
		_, err := ParseStartPolicy(c.iteratorType, c.seq, c.ts)
		if c.wantErr {
			assert.Error(t, err, "%s seq=%q ts=%q", c.iteratorType, c.seq, c.ts)
			assert.True(t, IsKind(err, KindConfig))
		} else {
			assert.NoError(t, err, "%s seq=%q ts=%q", c.iteratorType, c.seq, c.ts)
		}
	}
}

func TestParseStartPolicyLowercase(t *testing.T) {
	p, err := ParseStartPolicy("trim_horizon", "", "")
	require.NoError(t, err)
	assert.Equal(t, TrimHorizon(), p)
}

func TestParseEpochFraction(t *testing.T) {
	ts, err := ParseEpoch("1600000000.5")
	require.NoError(t, err)
	assert.Equal(t, int64(1600000000), ts.Unix())
	assert.Equal(t, 500*time.Millisecond, time.Duration(ts.Nanosecond()))
}

func TestStartPolicyInput(t *testing.T) {
	in := Latest().Input("TestStream", "shard0")
	assert.Equal(t, "TestStream", aws.StringValue(in.StreamName))
	assert.Equal(t, "shard0", aws.StringValue(in.ShardId))
	assert.Equal(t, kinesis.ShardIteratorTypeLatest, aws.StringValue(in.ShardIteratorType))
	assert.Nil(t, in.StartingSequenceNumber)
	assert.Nil(t, in.Timestamp)

	in = AfterSequenceNumber("42").Input("TestStream", "shard0")
	assert.Equal(t, "42", aws.StringValue(in.StartingSequenceNumber))
	assert.Nil(t, in.Timestamp)

	at := time.Unix(1600000000, 0)
	in = AtTimestamp(at).Input("TestStream", "shard0")
	assert.Nil(t, in.StartingSequenceNumber)
	assert.True(t, at.Equal(aws.TimeValue(in.Timestamp)))
}
