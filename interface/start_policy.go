package kiteriface

import (
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/service/kinesis"
)

// IteratorTypes lists the accepted start policies, in the order the CLI documents them.
var IteratorTypes = []string{
	kinesis.ShardIteratorTypeLatest,
	kinesis.ShardIteratorTypeTrimHorizon,
	kinesis.ShardIteratorTypeAtSequenceNumber,
	kinesis.ShardIteratorTypeAfterSequenceNumber,
	kinesis.ShardIteratorTypeAtTimestamp,
}

// StartPolicy selects how a shard's first iterator is obtained. It is chosen once and applied
// to every shard.
type StartPolicy struct {
	IteratorType   string
	SequenceNumber string
	Timestamp      time.Time
}

func Latest() StartPolicy {
	return StartPolicy{IteratorType: kinesis.ShardIteratorTypeLatest}
}

func TrimHorizon() StartPolicy {
	return StartPolicy{IteratorType: kinesis.ShardIteratorTypeTrimHorizon}
}

func AtSequenceNumber(seq string) StartPolicy {
	return StartPolicy{IteratorType: kinesis.ShardIteratorTypeAtSequenceNumber, SequenceNumber: seq}
}

func AfterSequenceNumber(seq string) StartPolicy {
	return StartPolicy{IteratorType: kinesis.ShardIteratorTypeAfterSequenceNumber, SequenceNumber: seq}
}

func AtTimestamp(t time.Time) StartPolicy {
	return StartPolicy{IteratorType: kinesis.ShardIteratorTypeAtTimestamp, Timestamp: t}
}

// ParseStartPolicy builds a policy from operator input. timestamp is epoch seconds and may
// carry a fractional part. Parameters not needed by iteratorType are ignored.
func ParseStartPolicy(iteratorType, sequenceNumber, timestamp string) (StartPolicy, error) {
	p := StartPolicy{IteratorType: strings.ToUpper(strings.TrimSpace(iteratorType))}
	switch p.IteratorType {
	case kinesis.ShardIteratorTypeAtSequenceNumber, kinesis.ShardIteratorTypeAfterSequenceNumber:
		p.SequenceNumber = sequenceNumber
	case kinesis.ShardIteratorTypeAtTimestamp:
		if timestamp == "" {
			return p, NewConfigError("iterator type " + p.IteratorType + " requires a timestamp")
		}
		t, err := ParseEpoch(timestamp)
		if err != nil {
			return p, err
		}
		p.Timestamp = t
	}
	return p, p.Validate()
}

// ParseEpoch parses epoch seconds with optional sub-second precision.
func ParseEpoch(s string) (time.Time, error) {
	f, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return time.Time{}, NewConfigError("timestamp " + strconv.Quote(s) + " is not a numeric epoch value")
	}
	sec, frac := math.Modf(f)
	return time.Unix(int64(sec), int64(math.Round(frac*1e9))).UTC(), nil
}

// Validate returns a config error when a parameter required by the iterator type is missing.
func (p StartPolicy) Validate() error {
	switch p.IteratorType {
	case kinesis.ShardIteratorTypeLatest, kinesis.ShardIteratorTypeTrimHorizon:
		return nil
	case kinesis.ShardIteratorTypeAtSequenceNumber, kinesis.ShardIteratorTypeAfterSequenceNumber:
		if p.SequenceNumber == "" {
			return NewConfigError("iterator type " + p.IteratorType + " requires a sequence number")
		}
		return nil
	case kinesis.ShardIteratorTypeAtTimestamp:
		if p.Timestamp.IsZero() {
			return NewConfigError("iterator type " + p.IteratorType + " requires a timestamp")
		}
		return nil
	case "":
		return NewConfigError("iterator type is empty")
	default:
		return NewConfigError("unknown iterator type " + strconv.Quote(p.IteratorType))
	}
}

// Input builds the GetShardIterator request for one shard.
func (p StartPolicy) Input(stream, shardID string) *kinesis.GetShardIteratorInput {
	in := &kinesis.GetShardIteratorInput{
		StreamName:        aws.String(stream),
		ShardId:           aws.String(shardID),
		ShardIteratorType: aws.String(p.IteratorType),
	}
	switch p.IteratorType {
	case kinesis.ShardIteratorTypeAtSequenceNumber, kinesis.ShardIteratorTypeAfterSequenceNumber:
		in.StartingSequenceNumber = aws.String(p.SequenceNumber)
	case kinesis.ShardIteratorTypeAtTimestamp:
		in.Timestamp = aws.Time(p.Timestamp)
	}
	return in
}

func (p StartPolicy) String() string {
	switch p.IteratorType {
	case kinesis.ShardIteratorTypeAtSequenceNumber, kinesis.ShardIteratorTypeAfterSequenceNumber:
		return p.IteratorType + "(" + p.SequenceNumber + ")"
	case kinesis.ShardIteratorTypeAtTimestamp:
		return p.IteratorType + "(" + p.Timestamp.Format(time.RFC3339Nano) + ")"
	}
	return p.IteratorType
}
