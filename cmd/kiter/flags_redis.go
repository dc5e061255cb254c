package main

import (
	"time"

	k "github.com/remind101/kiter/interface"
	emptyprovisioner "github.com/remind101/kiter/provisioners/empty"
	redisprovisioner "github.com/remind101/kiter/provisioners/redis"
	"github.com/remind101/kiter/redispool"
	"github.com/urfave/cli"
)

var (
	fRedisURL    = "redis.url"
	fRedisPrefix = "redis.prefix"
	fLeaseTTL    = "lease.ttl"
)

var flagsRedis = []cli.Flag{
	cli.StringFlag{
		Name:   fRedisURL,
		Usage:  "The Redis URL used to lease shards between processes, no leases when empty",
		EnvVar: "REDIS_URL",
	},
	cli.StringFlag{
		Name:   fRedisPrefix,
		Value:  "kiter",
		Usage:  "Prefix of the Redis lease keys",
		EnvVar: "REDIS_PREFIX",
	},
	cli.DurationFlag{
		Name:  fLeaseTTL,
		Value: 60 * time.Second,
		Usage: "Time after which the lease of a stopped process expires. Keep it above the longest retry backoff",
	},
}

func getProvisioner(ctx *cli.Context) (k.Provisioner, error) {
	url := ctx.String(fRedisURL)
	if url == "" {
		return &emptyprovisioner.Provisioner{}, nil
	}
	pool, err := redispool.NewRedisPool(url)
	if err != nil {
		return nil, err
	}
	prov, err := redisprovisioner.New(&redisprovisioner.Options{
		TTL:         ctx.Duration(fLeaseTTL),
		RedisPool:   pool,
		RedisPrefix: ctx.String(fRedisPrefix),
	})
	if err != nil {
		return nil, err
	}
	return prov, nil
}
