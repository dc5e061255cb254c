package kiteriface

// Provisioner hands out per-shard leases so that cooperating processes do not poll the same shard.
type Provisioner interface {
	TryAcquire(shardID string) error
	Heartbeat(shardID string) error
	Release(shardID string) error
}
