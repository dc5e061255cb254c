package main

import (
	"flag"
	"testing"
	"time"

	"github.com/aws/aws-sdk-go/service/kinesis"
	k "github.com/remind101/kiter/interface"
	emptyprovisioner "github.com/remind101/kiter/provisioners/empty"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/urfave/cli"
	"go.uber.org/zap"
)

func newTestContext(t *testing.T, args ...string) *cli.Context {
	set := flag.NewFlagSet("test", flag.ContinueOnError)
	set.String(fStreamName, "", "")
	set.String(fIteratorType, "LATEST", "")
	set.String(fSequenceNumber, "", "")
	set.String(fTimestamp, "", "")
	set.Duration(fPollTime, time.Second, "")
	set.Uint64(fMaxRetries, 5, "")
	set.Int(fMaxShards, 0, "")
	set.Bool(fStopOnError, false, "")
	require.NoError(t, set.Parse(args))
	return cli.NewContext(nil, set, nil)
}

func TestGetOptions(t *testing.T) {
	ctx := newTestContext(t,
		"--"+fIteratorType, "after_sequence_number",
		"--"+fSequenceNumber, "42",
		"--"+fPollTime, "250ms",
		"--"+fMaxRetries, "0",
		"--"+fMaxShards, "2",
	)

	opt, err := getOptions(ctx, zap.NewNop())
	require.NoError(t, err)
	assert.Equal(t, k.AfterSequenceNumber("42"), opt.StartPolicy)
	assert.Equal(t, 250*time.Millisecond, opt.PollTime)
	assert.Equal(t, uint64(0), opt.MaxRetries)
	assert.Equal(t, 2, opt.MaxShards)
	assert.IsType(t, &emptyprovisioner.Provisioner{}, opt.Provisioner)
}

func TestGetOptionsMissingParameter(t *testing.T) {
	for _, typ := range []string{
		kinesis.ShardIteratorTypeAtSequenceNumber,
		kinesis.ShardIteratorTypeAfterSequenceNumber,
		kinesis.ShardIteratorTypeAtTimestamp,
	} {
		_, err := getOptions(newTestContext(t, "--"+fIteratorType, typ), zap.NewNop())
		assert.True(t, k.IsKind(err, k.KindConfig), typ)
	}
}

func TestGetStream(t *testing.T) {
	_, err := getStream(newTestContext(t))
	assert.Error(t, err)

	stream, err := getStream(newTestContext(t, "--"+fStreamName, "TestStream"))
	require.NoError(t, err)
	assert.Equal(t, "TestStream", stream)
}
