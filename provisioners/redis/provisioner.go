package redisprovisioner

import (
	"errors"
	"sync"
	"time"

	"github.com/gomodule/redigo/redis"
	"github.com/pborman/uuid" // Exported from code.google.com/p/go-uuid
)

var (
	ErrAlreadyAcquired = errors.New("lock already acquired by this process")
	ErrLocked          = errors.New("shard is locked by another process")
	ErrLostLock        = errors.New("lock is no longer held by this process")
)

// Refresh the TTL only when it is owned by our lock value.
var refreshScript = redis.NewScript(1, `
if redis.call("GET", KEYS[1]) == ARGV[1] then
	return redis.call("PEXPIRE", KEYS[1], ARGV[2])
end
return 0`)

var releaseScript = redis.NewScript(1, `
if redis.call("GET", KEYS[1]) == ARGV[1] then
	return redis.call("DEL", KEYS[1])
end
return 0`)

type Provisioner struct {
	acquired    map[string]time.Time
	mu          sync.Mutex
	ttl         time.Duration
	pool        *redis.Pool
	redisPrefix string
	lock        string
	now         func() time.Time
}

type Options struct {
	// Leases expire after TTL unless refreshed by Heartbeat.
	TTL         time.Duration
	RedisPool   *redis.Pool
	RedisPrefix string
}

func New(opt *Options) (*Provisioner, error) {
	if opt.RedisPool == nil {
		return nil, errors.New("redis pool is required")
	}
	if opt.TTL < 3*time.Millisecond {
		return nil, errors.New("lease TTL is too short")
	}
	return &Provisioner{
		acquired:    make(map[string]time.Time),
		ttl:         opt.TTL,
		pool:        opt.RedisPool,
		redisPrefix: opt.RedisPrefix,
		lock:        uuid.New(),
		now:         time.Now,
	}, nil
}

func (p *Provisioner) key(shardID string) string {
	return p.redisPrefix + ".lock." + shardID
}

func (p *Provisioner) ttlMillis() int64 {
	return int64(p.ttl / time.Millisecond)
}

func (p *Provisioner) TryAcquire(shardID string) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if _, ok := p.acquired[shardID]; ok {
		return ErrAlreadyAcquired
	}

	conn := p.pool.Get()
	defer conn.Close()
	_, err := redis.String(conn.Do("SET", p.key(shardID), p.lock, "PX", p.ttlMillis(), "NX"))
	if err == redis.ErrNil {
		return ErrLocked
	}
	if err != nil {
		return err
	}
	p.acquired[shardID] = p.now()
	return nil
}

// Heartbeat extends the lease. Calls closer together than a third of the TTL are no-ops.
// The TTL must outlast the longest gap between two heartbeats of a worker, backoff included.
func (p *Provisioner) Heartbeat(shardID string) error {
	p.mu.Lock()
	last, ok := p.acquired[shardID]
	p.mu.Unlock()
	if !ok {
		return ErrLostLock
	}
	now := p.now()
	if now.Sub(last) < p.ttl/3 {
		return nil
	}

	conn := p.pool.Get()
	defer conn.Close()
	n, err := redis.Int(refreshScript.Do(conn, p.key(shardID), p.lock, p.ttlMillis()))
	if err != nil {
		return err
	}

	p.mu.Lock()
	defer p.mu.Unlock()
	if n == 0 {
		delete(p.acquired, shardID)
		return ErrLostLock
	}
	if _, ok := p.acquired[shardID]; ok {
		p.acquired[shardID] = now
	}
	return nil
}

func (p *Provisioner) Release(shardID string) error {
	p.mu.Lock()
	delete(p.acquired, shardID)
	p.mu.Unlock()

	conn := p.pool.Get()
	defer conn.Close()
	n, err := redis.Int(releaseScript.Do(conn, p.key(shardID), p.lock))
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrLostLock
	}
	return nil
}
