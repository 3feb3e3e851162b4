package store

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"
)

// Backend names accepted by OpenKV.
const (
	BackendAuto  = "auto"
	BackendFile  = "file"
	BackendRedis = "redis"
)

// pingTimeout bounds the reachability probe in auto mode.
const pingTimeout = 2 * time.Second

// KVOptions selects and configures a storage backend.
type KVOptions struct {
	Backend       string // "auto", "file" or "redis"
	FilePath      string
	RedisAddr     string
	RedisPassword string
	RedisDB       int
	RedisPrefix   string
}

// OpenKV opens the configured backend.
// In auto mode redis is used when an address is set and answers PING,
// otherwise the file backend.
func OpenKV(ctx context.Context, opts KVOptions) (KV, error) {
	switch opts.Backend {
	case BackendFile:
		return NewFileKV(opts.FilePath)

	case BackendRedis:
		if opts.RedisAddr == "" {
			return nil, fmt.Errorf("redis backend requires an address")
		}
		kv := newRedisFromOptions(opts)
		if err := kv.Ping(ctx); err != nil {
			_ = kv.Close()
			return nil, fmt.Errorf("failed to connect to redis at %s: %w", opts.RedisAddr, err)
		}
		return kv, nil

	case BackendAuto, "":
		if opts.RedisAddr != "" {
			kv := newRedisFromOptions(opts)
			pingCtx, cancel := context.WithTimeout(ctx, pingTimeout)
			err := kv.Ping(pingCtx)
			cancel()
			if err == nil {
				slog.Debug("using redis storage", "addr", opts.RedisAddr)
				return kv, nil
			}
			_ = kv.Close()
			slog.Warn("redis unreachable, falling back to file storage", "addr", opts.RedisAddr, "error", err)
		}
		slog.Debug("using file storage", "path", opts.FilePath)
		return NewFileKV(opts.FilePath)

	default:
		return nil, fmt.Errorf("unknown storage backend %q", opts.Backend)
	}
}

func newRedisFromOptions(opts KVOptions) *RedisKV {
	client := redis.NewClient(&redis.Options{
		Addr:     opts.RedisAddr,
		Password: opts.RedisPassword,
		DB:       opts.RedisDB,
	})
	return NewRedisKV(client, opts.RedisPrefix)
}
