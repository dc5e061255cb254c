package kiter

import (
	"context"
	"errors"
	"math/rand"
	"sync"
	"time"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/service/kinesis"
	k "github.com/remind101/kiter/interface"
	"github.com/remind101/kiter/metrics"
	emptyprovisioner "github.com/remind101/kiter/provisioners/empty"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

var (
	errAlreadyBegun = errors.New("kiter has already begun")
	errNoShards     = errors.New("no shards to poll")
)

type KiterImpl struct {
	Kinesis k.Kinesis
	Stream  string
	opt     *Options
	batches chan *k.Batch
	cancel  context.CancelFunc
	done    chan struct{}
	err     error
	mu      sync.Mutex
}

type Options struct {
	// ShardIDs restricts polling to these shards. Empty means every shard of the stream.
	ShardIDs    []string
	StartPolicy k.StartPolicy

	ListShardsLimit int64
	// Zero lets the service pick its default.
	GetRecordsLimit int64
	// Minimum time between two GetRecords calls on the same shard.
	PollTime time.Duration
	// Output capacity is BufferPerShard times the number of polled shards.
	BufferPerShard int
	MaxShards      int

	// Retries for a single call after a transient failure. Zero disables retrying.
	MaxRetries           uint64
	RetryInitialInterval time.Duration
	RetryMaxInterval     time.Duration

	// Lease refresh period while a worker is blocked on a full output channel. Zero refreshes
	// only once per tick.
	HeartbeatInterval time.Duration

	// StopOnError stops every shard worker as soon as one of them fails.
	StopOnError bool

	Handlers    k.Handlers
	Provisioner k.Provisioner
	Logger      *zap.Logger
}

var DefaultOptions = Options{
	StartPolicy:          k.Latest(),
	ListShardsLimit:      1000,
	PollTime:             time.Second,
	BufferPerShard:       10,
	MaxRetries:           5,
	RetryInitialInterval: 500 * time.Millisecond,
	RetryMaxInterval:     30 * time.Second,
	HeartbeatInterval:    time.Second,
}

func NewDefaultKiter(awsOpt AWSOptions, stream string, opt *Options) (*KiterImpl, error) {
	kin, err := NewKinesis(awsOpt)
	if err != nil {
		return nil, err
	}
	return NewKiter(kin, stream, opt)
}

func NewKiter(kinesis k.Kinesis, stream string, opt *Options) (*KiterImpl, error) {
	if stream == "" {
		return nil, k.NewConfigError("stream name is empty")
	}
	if opt == nil {
		o := DefaultOptions
		opt = &o
	} else {
		o := *opt
		opt = &o
	}
	if opt.StartPolicy.IteratorType == "" {
		opt.StartPolicy = k.Latest()
	}
	if err := opt.StartPolicy.Validate(); err != nil {
		return nil, err
	}
	if opt.BufferPerShard <= 0 {
		opt.BufferPerShard = DefaultOptions.BufferPerShard
	}
	if opt.Logger == nil {
		opt.Logger = zap.NewNop()
	}
	if opt.Handlers == nil {
		opt.Handlers = DefaultHandlers{Logger: opt.Logger}
	}
	if opt.Provisioner == nil {
		opt.Provisioner = &emptyprovisioner.Provisioner{}
	}

	return &KiterImpl{
		Kinesis: kinesis,
		Stream:  stream,
		opt:     opt,
	}, nil
}

// GetShards lists every shard of the stream, following NextToken.
func (ki *KiterImpl) GetShards(ctx context.Context) ([]*kinesis.Shard, error) {
	shards := make([]*kinesis.Shard, 0)
	in := &kinesis.ListShardsInput{
		StreamName: aws.String(ki.Stream),
	}
	if ki.opt.ListShardsLimit > 0 {
		in.MaxResults = aws.Int64(ki.opt.ListShardsLimit)
	}
	for {
		resp, err := ki.Kinesis.ListShardsWithContext(ctx, in)
		if err != nil {
			return nil, k.NewTransportError("ListShards "+ki.Stream+" failed", err)
		}
		if resp == nil {
			return nil, k.NewProtocolError("ListShards returned no response")
		}
		shards = append(shards, resp.Shards...)
		if aws.StringValue(resp.NextToken) == "" {
			return shards, nil
		}
		// StreamName and NextToken are mutually exclusive.
		in = &kinesis.ListShardsInput{
			NextToken:  resp.NextToken,
			MaxResults: in.MaxResults,
		}
	}
}

// Shards returns the shards to poll: the configured ShardIDs, or every shard of the stream.
func (ki *KiterImpl) Shards(ctx context.Context) ([]*kinesis.Shard, error) {
	if len(ki.opt.ShardIDs) == 0 {
		return ki.GetShards(ctx)
	}
	seen := make(map[string]bool, len(ki.opt.ShardIDs))
	shards := make([]*kinesis.Shard, 0, len(ki.opt.ShardIDs))
	for _, id := range ki.opt.ShardIDs {
		if id == "" || seen[id] {
			continue
		}
		seen[id] = true
		shards = append(shards, &kinesis.Shard{ShardId: aws.String(id)})
	}
	return shards, nil
}

// Begin starts one shard worker per shard and returns the ids of the shards being polled.
// Workers stop when ctx is done, when End is called, or when their shard closes. The batches
// channel is closed once every worker has stopped.
func (ki *KiterImpl) Begin(ctx context.Context) ([]string, error) {
	ki.mu.Lock()
	defer ki.mu.Unlock()
	if ki.batches != nil {
		return nil, errAlreadyBegun
	}

	shards, err := ki.Shards(ctx)
	if err != nil {
		return nil, err
	}
	if len(shards) == 0 {
		return nil, errNoShards
	}

	n := ki.opt.MaxShards
	if n <= 0 || len(shards) < n {
		n = len(shards)
	} else {
		// Spread processes capped by MaxShards over different shards.
		perm := rand.Perm(len(shards))
		shuffled := make([]*kinesis.Shard, len(shards))
		for i, j := range perm {
			shuffled[i] = shards[j]
		}
		shards = shuffled
	}

	ctx, cancel := context.WithCancel(ctx)
	g, gctx := errgroup.WithContext(ctx)
	batches := make(chan *k.Batch, ki.opt.BufferPerShard*n)

	started := make([]string, 0, n)
	for _, shard := range shards {
		if len(started) == n {
			break
		}
		shardID := aws.StringValue(shard.ShardId)
		if err := ki.opt.Provisioner.TryAcquire(shardID); err != nil {
			ki.opt.Logger.Warn("could not acquire shard", zap.String("shard", shardID), zap.Error(err))
			continue
		}

		worker := newShardWorker(ki, shard, batches)
		g.Go(func() error {
			metrics.ActivePollers.Inc()
			defer metrics.ActivePollers.Dec()
			defer func() {
				if err := ki.opt.Provisioner.Release(shardID); err != nil {
					ki.opt.Logger.Warn("could not release shard", zap.String("shard", shardID), zap.Error(err))
				}
			}()

			err := worker.RunWorker(gctx)
			if err == nil {
				return nil
			}
			ki.opt.Handlers.Err(err)
			if ki.opt.StopOnError {
				return err
			}
			return nil
		})
		started = append(started, shardID)
	}

	if len(started) == 0 {
		cancel()
		return nil, errors.New("could not acquire any shard of " + ki.Stream)
	}

	ki.batches = batches
	ki.cancel = cancel
	ki.done = make(chan struct{})
	go func() {
		err := g.Wait()
		ki.mu.Lock()
		ki.err = err
		ki.mu.Unlock()
		close(batches)
		close(ki.done)
	}()

	ki.opt.Logger.Info("polling shards",
		zap.String("stream", ki.Stream),
		zap.Strings("shards", started),
		zap.Stringer("policy", ki.opt.StartPolicy))
	return started, nil
}

// End stops every shard worker and waits for them to exit. Batches already buffered stay
// readable from Batches.
func (ki *KiterImpl) End() {
	ki.mu.Lock()
	cancel, done := ki.cancel, ki.done
	ki.mu.Unlock()
	if cancel == nil {
		return
	}
	cancel()
	<-done
}

func (ki *KiterImpl) Batches() <-chan *k.Batch {
	ki.mu.Lock()
	defer ki.mu.Unlock()
	return ki.batches
}

// Err returns the error that stopped all workers when StopOnError is set. It should only be
// called after the batches channel has been closed.
func (ki *KiterImpl) Err() error {
	ki.mu.Lock()
	defer ki.mu.Unlock()
	return ki.err
}
