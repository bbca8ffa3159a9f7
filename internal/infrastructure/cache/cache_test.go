package cache

import (
	"context"
	"strings"
	"testing"
	"time"

	miniredis "github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/amriddinov-m/panasonic-api/internal/core/apperror"
)

type countingRecorder struct {
	hits, misses int
}

func (r *countingRecorder) CacheLookup(_ string, hit bool) {
	if hit {
		r.hits++
	} else {
		r.misses++
	}
}

type result struct {
	Name  string   `json:"name"`
	Items []string `json:"items"`
}

func setupRedis(t *testing.T) (*miniredis.Miniredis, *redis.Client) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return mr, client
}

func TestReportCache_RoundTripAndInvalidate(t *testing.T) {
	ctx := context.Background()
	_, client := setupRedis(t)
	rec := &countingRecorder{}
	c, err := NewReportCache(client, time.Minute, 0)
	require.NoError(t, err)
	c.WithRecorder(rec)

	var got result
	ver, found, err := c.Get(ctx, "sales-volume", "k1", &got)
	require.NoError(t, err)
	assert.False(t, found)
	assert.Equal(t, int64(1), ver)

	want := result{Name: "x", Items: []string{"a", "b"}}
	require.NoError(t, c.Set(ctx, ver, "sales-volume", "k1", want))

	_, found, err = c.Get(ctx, "sales-volume", "k1", &got)
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, want, got)

	require.NoError(t, c.Invalidate(ctx))
	_, found, err = c.Get(ctx, "sales-volume", "k1", &got)
	require.NoError(t, err)
	assert.False(t, found)

	assert.Equal(t, 1, rec.hits)
	assert.Equal(t, 2, rec.misses)
}

func TestReportCache_CompressesLargePayloads(t *testing.T) {
	ctx := context.Background()
	mr, client := setupRedis(t)
	c, err := NewReportCache(client, time.Minute, 64)
	require.NoError(t, err)

	big := result{Name: strings.Repeat("product ", 100)}
	require.NoError(t, c.Set(ctx, 1, "top-products", "big", big))
	require.NoError(t, c.Set(ctx, 1, "top-products", "small", result{Name: "s"}))

	raw, err := mr.Get("reports:1:top-products:big")
	require.NoError(t, err)
	assert.Equal(t, byte(formatZstd), raw[0])
	assert.Less(t, len(raw), len(big.Name))

	raw, err = mr.Get("reports:1:top-products:small")
	require.NoError(t, err)
	assert.Equal(t, byte(formatJSON), raw[0])

	var got result
	_, found, err := c.Get(ctx, "top-products", "big", &got)
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, big, got)
}

func TestReportCache_TTL(t *testing.T) {
	ctx := context.Background()
	mr, client := setupRedis(t)
	c, err := NewReportCache(client, time.Minute, 0)
	require.NoError(t, err)

	ver, err := c.Version(ctx)
	require.NoError(t, err)
	require.NoError(t, c.Set(ctx, ver, "orders-count", "k", result{Name: "x"}))
	mr.FastForward(2 * time.Minute)

	var got result
	_, found, err := c.Get(ctx, "orders-count", "k", &got)
	require.NoError(t, err)
	assert.False(t, found)
}

func TestReportCache_InvalidateDuringBuild(t *testing.T) {
	ctx := context.Background()
	_, client := setupRedis(t)
	c, err := NewReportCache(client, time.Minute, 0)
	require.NoError(t, err)

	var got result
	ver, found, err := c.Get(ctx, "central-stock", "k", &got)
	require.NoError(t, err)
	require.False(t, found)

	// a ledger commit lands while the result is being built
	require.NoError(t, c.Invalidate(ctx))
	require.NoError(t, c.Set(ctx, ver, "central-stock", "k", result{Name: "stale"}))

	_, found, err = c.Get(ctx, "central-stock", "k", &got)
	require.NoError(t, err)
	assert.False(t, found, "a result built before the bump must not be served")
}

func TestLocker_ConflictWhileHeld(t *testing.T) {
	ctx := context.Background()
	_, client := setupRedis(t)
	l := NewLocker(client, time.Second)

	release, err := l.Obtain(ctx, "doc:outcome:1")
	require.NoError(t, err)

	_, err = l.Obtain(ctx, "doc:outcome:1")
	assert.True(t, apperror.HasCode(err, apperror.CodeConflict))

	other, err := l.Obtain(ctx, "doc:outcome:2")
	require.NoError(t, err)
	other()

	release()
	again, err := l.Obtain(ctx, "doc:outcome:1")
	require.NoError(t, err)
	again()
}
