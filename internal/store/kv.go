package store

import (
	"context"
	"fmt"
	"strings"
)

// KV is the persistence surface the milestone store needs: string values by key.
// Implementations must tolerate concurrent use from several goroutines/processes;
// there is no locking above this layer (last writer wins).
type KV interface {
	Get(ctx context.Context, key string) (value string, ok bool, err error)
	Set(ctx context.Context, key, value string) error
	Delete(ctx context.Context, key string) error
	Close() error
}

type Backend string

const (
	BackendSQLite Backend = "sqlite"
	BackendFile   Backend = "file"
	BackendRedis  Backend = "redis"
	BackendMemory Backend = "memory"
)

func ParseBackend(s string) (Backend, error) {
	switch Backend(strings.ToLower(strings.TrimSpace(s))) {
	case "", BackendSQLite:
		return BackendSQLite, nil
	case BackendFile:
		return BackendFile, nil
	case BackendRedis:
		return BackendRedis, nil
	case BackendMemory:
		return BackendMemory, nil
	default:
		return "", fmt.Errorf("unknown backend: %s (expected sqlite|file|redis|memory)", s)
	}
}

type RedisOptions struct {
	Addr     string
	Password string
	DB       int
	Prefix   string
}

type KVOptions struct {
	Backend Backend
	// Dir holds the sqlite/file backends' data.
	Dir   string
	Redis RedisOptions
}

// OpenKV opens the configured backend.
func OpenKV(ctx context.Context, opts KVOptions) (KV, error) {
	switch opts.Backend {
	case "", BackendSQLite:
		return OpenSQLiteKV(ctx, opts.Dir)
	case BackendFile:
		return OpenFileKV(opts.Dir)
	case BackendRedis:
		return OpenRedisKV(ctx, opts.Redis)
	case BackendMemory:
		return NewMemoryKV(), nil
	default:
		return nil, fmt.Errorf("unknown backend: %s", opts.Backend)
	}
}
