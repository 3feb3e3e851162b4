package store

import (
	"context"
	"path/filepath"
	"testing"

	miniredis "github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jmylchreest/panelo/internal/model"
)

func newMiniredis(t *testing.T) *miniredis.Miniredis {
	t.Helper()
	mr, err := miniredis.Run()
	require.NoError(t, err)
	t.Cleanup(mr.Close)
	return mr
}

func TestRedisKV(t *testing.T) {
	ctx := context.Background()
	mr := newMiniredis(t)
	kv := NewRedisKV(redis.NewClient(&redis.Options{Addr: mr.Addr()}), "")
	t.Cleanup(func() { _ = kv.Close() })

	assert.Equal(t, "redis", kv.Name())
	assert.Equal(t, DefaultRedisPrefix, kv.Prefix())
	assert.Equal(t, mr.Addr(), kv.Addr())
	require.NoError(t, kv.Ping(ctx))

	_, ok, err := kv.Get(ctx, "k")
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, kv.Set(ctx, "k", []byte(`[1]`)))
	v, ok, err := kv.Get(ctx, "k")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, `[1]`, string(v))

	raw, err := mr.Get("panelo:k")
	require.NoError(t, err)
	assert.Equal(t, `[1]`, raw)
	assert.Zero(t, mr.TTL("panelo:k"))
}

func TestRedisKV_CustomPrefix(t *testing.T) {
	ctx := context.Background()
	mr := newMiniredis(t)
	kv := NewRedisKV(redis.NewClient(&redis.Options{Addr: mr.Addr()}), "test:")
	t.Cleanup(func() { _ = kv.Close() })

	require.NoError(t, kv.Set(ctx, "k", []byte(`1`)))
	assert.True(t, mr.Exists("test:k"))
	assert.False(t, mr.Exists("panelo:k"))
}

func TestRedisKV_ServerDown(t *testing.T) {
	mr := newMiniredis(t)
	kv := NewRedisKV(redis.NewClient(&redis.Options{Addr: mr.Addr(), MaxRetries: -1}), "")
	t.Cleanup(func() { _ = kv.Close() })
	mr.Close()

	_, _, err := kv.Get(context.Background(), "k")
	assert.Error(t, err)
	assert.Error(t, kv.Set(context.Background(), "k", []byte(`1`)))
}

func TestRedisKV_LegacyMigration(t *testing.T) {
	ctx := context.Background()
	mr := newMiniredis(t)
	require.NoError(t, mr.Set("panelo:"+LegacyBoxesKey, `[{"id":"b1","url":"https://a.example"}]`))

	kv := NewRedisKV(redis.NewClient(&redis.Options{Addr: mr.Addr()}), "")
	p := NewKVPersistence(kv)
	t.Cleanup(func() { _ = p.Close() })

	ds, err := p.Load(ctx)
	require.NoError(t, err)
	require.Len(t, ds, 1)
	assert.Equal(t, model.DefaultDashboardID, ds[0].ID)
	require.Len(t, ds[0].Boxes, 1)
	assert.Equal(t, "b1", ds[0].Boxes[0].ID)

	assert.True(t, mr.Exists("panelo:"+DashboardsKey))
	assert.True(t, mr.Exists("panelo:"+LegacyBoxesKey))
}

func TestOpenKV(t *testing.T) {
	ctx := context.Background()
	mr := newMiniredis(t)
	file := filepath.Join(t.TempDir(), "storage.json")

	tests := []struct {
		name     string
		opts     KVOptions
		wantName string
		wantErr  bool
	}{
		{"file", KVOptions{Backend: BackendFile, FilePath: file}, "file", false},
		{"auto without redis", KVOptions{Backend: BackendAuto, FilePath: file}, "file", false},
		{"empty backend", KVOptions{FilePath: file}, "file", false},
		{"auto with redis", KVOptions{Backend: BackendAuto, FilePath: file, RedisAddr: mr.Addr()}, "redis", false},
		{"auto with dead redis", KVOptions{Backend: BackendAuto, FilePath: file, RedisAddr: "127.0.0.1:1"}, "file", false},
		{"redis", KVOptions{Backend: BackendRedis, RedisAddr: mr.Addr()}, "redis", false},
		{"redis without addr", KVOptions{Backend: BackendRedis}, "", true},
		{"redis unreachable", KVOptions{Backend: BackendRedis, RedisAddr: "127.0.0.1:1"}, "", true},
		{"unknown", KVOptions{Backend: "s3"}, "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			kv, err := OpenKV(ctx, tt.opts)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			defer kv.Close()
			assert.Equal(t, tt.wantName, kv.Name())
		})
	}
}
