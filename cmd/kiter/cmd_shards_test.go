package main

import (
	"bytes"
	"strings"
	"testing"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/service/kinesis"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTable(t *testing.T) {
	tb := NewTable()
	tb.AddRowWith("a", "bbb").Header()
	tb.AddRowWith("cc", "d")
	tb.AddRowWith("e", "")

	var buf bytes.Buffer
	_, err := tb.WriteTo(&buf)
	require.NoError(t, err)
	assert.Equal(t, "A   BBB\ncc  d\ne   -\n", buf.String())
}

func TestPrintShards(t *testing.T) {
	shards := []*kinesis.Shard{
		{
			ShardId: aws.String("shardId-000000000000"),
			HashKeyRange: &kinesis.HashKeyRange{
				StartingHashKey: aws.String("0"),
				EndingHashKey:   aws.String("7f"),
			},
			SequenceNumberRange: &kinesis.SequenceNumberRange{
				StartingSequenceNumber: aws.String("0"),
				EndingSequenceNumber:   aws.String("100"),
			},
		},
		{
			ShardId:       aws.String("shardId-000000000001"),
			ParentShardId: aws.String("shardId-000000000000"),
			SequenceNumberRange: &kinesis.SequenceNumberRange{
				StartingSequenceNumber: aws.String("101"),
			},
		},
	}

	var buf bytes.Buffer
	require.NoError(t, printShards(&buf, "TestStream", shards))
	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 3)
	assert.True(t, strings.HasPrefix(lines[0], "SHARD ID"))
	assert.Equal(t, []string{"shardId-000000000000", "closed", "-", "-", "0", "7f", "0", "100"}, strings.Fields(lines[1]))
	assert.Equal(t, []string{"shardId-000000000001", "open", "shardId-000000000000", "-", "-", "-", "101", "-"}, strings.Fields(lines[2]))
}

func TestPrintNoShards(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, printShards(&buf, "TestStream", nil))
	assert.Equal(t, "No shards found on stream TestStream\n", buf.String())
}

func TestNewLogger(t *testing.T) {
	_, err := newLogger("debug")
	assert.NoError(t, err)
	_, err = newLogger("loud")
	assert.Error(t, err)
}
