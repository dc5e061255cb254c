package kiter

import (
	"context"

	k "github.com/remind101/kiter/interface"
)

// Consume hands every non-empty batch to fn, in arrival order, until batches is closed or ctx
// is done. Once ctx is done it hands over the batches that are already buffered and returns
// without waiting for more.
func Consume(ctx context.Context, batches <-chan *k.Batch, fn func(*k.Batch)) {
	handle := func(b *k.Batch) {
		if b != nil && !b.Empty() {
			fn(b)
		}
	}

	for {
		select {
		case <-ctx.Done():
			for {
				select {
				case b, ok := <-batches:
					if !ok {
						return
					}
					handle(b)
				default:
					return
				}
			}
		case b, ok := <-batches:
			if !ok {
				return
			}
			handle(b)
		}
	}
}
