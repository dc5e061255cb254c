package kiteriface

import (
	"github.com/aws/aws-sdk-go/service/kinesis"
)

// Batch is the result of one GetRecords call on one shard.
// A nil NextShardIterator means the shard is closed and no further batch will follow.
type Batch struct {
	ShardID string
	// Each record contains:
	//   Data []byte
	//   PartitionKey *string
	//   SequenceNumber *string
	//   ApproximateArrivalTimestamp *time.Time
	//   EncryptionType *string
	Records            []*kinesis.Record
	NextShardIterator  *string
	MillisBehindLatest int64
}

// Empty reports whether the batch carries no records.
func (b *Batch) Empty() bool {
	return len(b.Records) == 0
}

// Closed reports whether the shard has no successor iterator.
func (b *Batch) Closed() bool {
	return b.NextShardIterator == nil
}

// LastSequenceNumber returns the sequence number of the last record, or "" for an empty batch.
func (b *Batch) LastSequenceNumber() string {
	if len(b.Records) == 0 {
		return ""
	}
	rec := b.Records[len(b.Records)-1]
	if rec == nil || rec.SequenceNumber == nil {
		return ""
	}
	return *rec.SequenceNumber
}
