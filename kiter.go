package kiter

import (
	"context"

	k "github.com/remind101/kiter/interface"
)

type Kiter interface {
	Begin(ctx context.Context) (shardIDs []string, err error)
	End()
	Batches() <-chan *k.Batch
	// Err is the error that stopped every shard, once Batches is closed.
	Err() error
}
