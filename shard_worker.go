package kiter

import (
	"context"
	"errors"
	"sync/atomic"
	"time"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/awserr"
	"github.com/aws/aws-sdk-go/aws/request"
	"github.com/aws/aws-sdk-go/service/kinesis"
	"github.com/cenkalti/backoff/v4"
	k "github.com/remind101/kiter/interface"
	"github.com/remind101/kiter/metrics"
	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

var errWorkerStarted = errors.New("shard worker already started")

// ShardWorker polls a single shard. It owns the shard's iterator: none until the start policy
// has been resolved, then the NextShardIterator of the last batch.
type ShardWorker struct {
	kinesis         k.Kinesis
	shard           *kinesis.Shard
	stream          string
	policy          k.StartPolicy
	provisioner     k.Provisioner
	limiter         *rate.Limiter
	c               chan<- *k.Batch
	logger          *zap.Logger
	GetRecordsLimit int64

	MaxRetries           uint64
	RetryInitialInterval time.Duration
	RetryMaxInterval     time.Duration

	// How often the lease is refreshed while blocked on a full output channel.
	HeartbeatInterval time.Duration

	// last sequence number pushed to c
	sequence string
	started  atomic.Bool
}

func newShardWorker(ki *KiterImpl, shard *kinesis.Shard, c chan<- *k.Batch) *ShardWorker {
	limit := rate.Inf
	if ki.opt.PollTime > 0 {
		limit = rate.Every(ki.opt.PollTime)
	}
	return &ShardWorker{
		kinesis:              ki.Kinesis,
		shard:                shard,
		stream:               ki.Stream,
		policy:               ki.opt.StartPolicy,
		provisioner:          ki.opt.Provisioner,
		limiter:              rate.NewLimiter(limit, 1),
		c:                    c,
		logger:               ki.opt.Logger.With(zap.String("shard", aws.StringValue(shard.ShardId))),
		GetRecordsLimit:      ki.opt.GetRecordsLimit,
		MaxRetries:           ki.opt.MaxRetries,
		RetryInitialInterval: ki.opt.RetryInitialInterval,
		RetryMaxInterval:     ki.opt.RetryMaxInterval,
		HeartbeatInterval:    ki.opt.HeartbeatInterval,
	}
}

func (s *ShardWorker) ShardID() string {
	return aws.StringValue(s.shard.ShardId)
}

// GetShardIterator resolves policy into an iterator for this shard.
func (s *ShardWorker) GetShardIterator(ctx context.Context, policy k.StartPolicy) (*string, error) {
	var resp *kinesis.GetShardIteratorOutput
	err := s.retry(ctx, "GetShardIterator", func() (err error) {
		resp, err = s.kinesis.GetShardIteratorWithContext(ctx, policy.Input(s.stream, s.ShardID()))
		return
	})
	if err != nil {
		if ctx.Err() == nil {
			metrics.ErrorsTotal.WithLabelValues(s.ShardID(), string(k.KindTransport)).Inc()
		}
		return nil, k.NewTransportError("GetShardIterator "+policy.String()+" failed", err).WithShard(s.ShardID())
	}
	if resp == nil || aws.StringValue(resp.ShardIterator) == "" {
		metrics.ErrorsTotal.WithLabelValues(s.ShardID(), string(k.KindProtocol)).Inc()
		return nil, k.NewProtocolError("GetShardIterator returned no iterator").WithShard(s.ShardID())
	}
	return resp.ShardIterator, nil
}

// GetRecords fetches the batch at it.
func (s *ShardWorker) GetRecords(ctx context.Context, it *string) (*k.Batch, error) {
	in := &kinesis.GetRecordsInput{
		ShardIterator: it,
	}
	if s.GetRecordsLimit > 0 {
		in.Limit = aws.Int64(s.GetRecordsLimit)
	}

	var resp *kinesis.GetRecordsOutput
	err := s.retry(ctx, "GetRecords", func() (err error) {
		resp, err = s.kinesis.GetRecordsWithContext(ctx, in)
		return
	})
	if err != nil {
		if ctx.Err() == nil {
			metrics.ErrorsTotal.WithLabelValues(s.ShardID(), string(k.KindTransport)).Inc()
		}
		return nil, k.NewTransportError("GetRecords failed", err).WithShard(s.ShardID())
	}
	if resp == nil {
		metrics.ErrorsTotal.WithLabelValues(s.ShardID(), string(k.KindProtocol)).Inc()
		return nil, k.NewProtocolError("GetRecords returned no response").WithShard(s.ShardID())
	}

	batch := &k.Batch{
		ShardID:            s.ShardID(),
		Records:            resp.Records,
		MillisBehindLatest: aws.Int64Value(resp.MillisBehindLatest),
	}
	if aws.StringValue(resp.NextShardIterator) != "" {
		batch.NextShardIterator = resp.NextShardIterator
	}

	metrics.BatchesTotal.WithLabelValues(batch.ShardID).Inc()
	metrics.RecordsTotal.WithLabelValues(batch.ShardID).Add(float64(len(batch.Records)))
	metrics.MillisBehindLatest.WithLabelValues(batch.ShardID).Set(float64(batch.MillisBehindLatest))
	return batch, nil
}

// RunWorker polls the shard until ctx is done or the shard is closed, pushing every batch,
// empty ones included, to the output channel. It returns nil on cancellation and on shard
// end. A worker runs at most once.
func (s *ShardWorker) RunWorker(ctx context.Context) error {
	if !s.started.CompareAndSwap(false, true) {
		return errWorkerStarted
	}

	var it *string
	policy := s.policy
	var expired uint64

	s.logger.Debug("starting shard worker", zap.Stringer("policy", policy))
	for {
		if ctx.Err() != nil {
			return nil
		}

		if err := s.heartbeat(); err != nil {
			return err
		}

		if it == nil {
			next, err := s.GetShardIterator(ctx, policy)
			if err != nil {
				if ctx.Err() != nil {
					return nil
				}
				return err
			}
			it = next
		}

		if err := s.limiter.Wait(ctx); err != nil {
			return nil
		}

		batch, err := s.GetRecords(ctx, it)
		if err != nil {
			if ctx.Err() != nil {
				return nil
			}
			if isExpiredIterator(err) && expired < s.MaxRetries {
				expired++
				it = nil
				policy = s.resumePolicy()
				s.logger.Warn("iterator expired, resolving a new one", zap.Stringer("policy", policy))
				continue
			}
			return err
		}
		expired = 0

		if ctx.Err() != nil {
			return nil
		}
		if ok, err := s.push(ctx, batch); !ok {
			return err
		}

		if seq := batch.LastSequenceNumber(); seq != "" {
			s.sequence = seq
		}
		if batch.Closed() {
			s.logger.Info("shard has reached its end", zap.String("sequence", s.sequence))
			return nil
		}
		it = batch.NextShardIterator
	}
}

func (s *ShardWorker) heartbeat() error {
	if err := s.provisioner.Heartbeat(s.ShardID()); err != nil {
		return k.NewError(k.KindTransport, k.EError, "heartbeat failed", err).WithShard(s.ShardID())
	}
	return nil
}

// push blocks until batch is on the output channel, keeping the lease alive meanwhile. It
// reports false when ctx is done or the lease is lost first.
func (s *ShardWorker) push(ctx context.Context, batch *k.Batch) (bool, error) {
	var tick <-chan time.Time
	if s.HeartbeatInterval > 0 {
		t := time.NewTicker(s.HeartbeatInterval)
		defer t.Stop()
		tick = t.C
	}
	for {
		select {
		case s.c <- batch:
			return true, nil
		case <-ctx.Done():
			return false, nil
		case <-tick:
			if err := s.heartbeat(); err != nil {
				return false, err
			}
		}
	}
}

// resumePolicy picks up right after the last delivered record, or falls back to the
// configured policy when nothing has been delivered yet.
func (s *ShardWorker) resumePolicy() k.StartPolicy {
	if s.sequence == "" {
		return s.policy
	}
	return k.AfterSequenceNumber(s.sequence)
}

func (s *ShardWorker) newBackOff(ctx context.Context) backoff.BackOff {
	b := backoff.NewExponentialBackOff()
	if s.RetryInitialInterval > 0 {
		b.InitialInterval = s.RetryInitialInterval
	}
	if s.RetryMaxInterval > 0 {
		b.MaxInterval = s.RetryMaxInterval
	}
	b.MaxElapsedTime = 0
	return backoff.WithContext(backoff.WithMaxRetries(b, s.MaxRetries), ctx)
}

// retry runs op until it succeeds, fails with a non-retryable error or the retry budget is spent.
func (s *ShardWorker) retry(ctx context.Context, name string, op func() error) error {
	return backoff.RetryNotify(func() error {
		err := op()
		if err == nil {
			return nil
		}
		if ctx.Err() != nil {
			return backoff.Permanent(ctx.Err())
		}
		if !isRetryable(err) {
			return backoff.Permanent(err)
		}
		return err
	}, s.newBackOff(ctx), func(err error, d time.Duration) {
		metrics.RetriesTotal.WithLabelValues(s.ShardID()).Inc()
		s.logger.Warn("retrying after transient error",
			zap.String("call", name), zap.Duration("backoff", d), zap.Error(err))
		// A lost lease is caught by the next tick's heartbeat.
		if err := s.provisioner.Heartbeat(s.ShardID()); err != nil {
			s.logger.Warn("heartbeat failed during backoff", zap.Error(err))
		}
	})
}

func isExpiredIterator(err error) bool {
	var aerr awserr.Error
	return errors.As(err, &aerr) && aerr.Code() == kinesis.ErrCodeExpiredIteratorException
}

func isRetryable(err error) bool {
	var aerr awserr.Error
	if errors.As(err, &aerr) {
		switch aerr.Code() {
		case kinesis.ErrCodeProvisionedThroughputExceededException,
			kinesis.ErrCodeLimitExceededException,
			kinesis.ErrCodeKMSThrottlingException:
			return true
		case kinesis.ErrCodeExpiredIteratorException,
			kinesis.ErrCodeResourceNotFoundException,
			kinesis.ErrCodeInvalidArgumentException,
			"AccessDeniedException":
			return false
		}
	}
	return request.IsErrorRetryable(err) || request.IsErrorThrottle(err)
}
