// Package cache provides redis-backed report caching and document locks.
package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/klauspost/compress/zstd"
	"github.com/redis/go-redis/v9"

	"github.com/amriddinov-m/panasonic-api/pkg/logger"
)

const (
	versionKey = "reports:version"

	// payload prefixes
	formatJSON = 'j'
	formatZstd = 'z'

	DefaultTTL               = 5 * time.Minute
	DefaultCompressThreshold = 8 * 1024
)

// HitRecorder observes cache lookups (metrics).
type HitRecorder interface {
	CacheLookup(report string, hit bool)
}

type nopRecorder struct{}

func (nopRecorder) CacheLookup(string, bool) {}

// ReportCache stores report results under versioned keys. Bumping the
// version orphans every cached result at once; orphans expire by TTL.
type ReportCache struct {
	client    *redis.Client
	ttl       time.Duration
	threshold int
	encoder   *zstd.Encoder
	decoder   *zstd.Decoder
	recorder  HitRecorder
}

// NewReportCache creates a report cache. Payloads of threshold bytes or more
// are zstd-compressed; a threshold <= 0 disables compression.
func NewReportCache(client *redis.Client, ttl time.Duration, threshold int) (*ReportCache, error) {
	encoder, err := zstd.NewWriter(nil, zstd.WithEncoderLevel(zstd.SpeedDefault))
	if err != nil {
		return nil, fmt.Errorf("create zstd encoder: %w", err)
	}
	decoder, err := zstd.NewReader(nil)
	if err != nil {
		return nil, fmt.Errorf("create zstd decoder: %w", err)
	}
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &ReportCache{
		client:    client,
		ttl:       ttl,
		threshold: threshold,
		encoder:   encoder,
		decoder:   decoder,
		recorder:  nopRecorder{},
	}, nil
}

// WithRecorder attaches a hit/miss recorder.
func (c *ReportCache) WithRecorder(r HitRecorder) *ReportCache {
	if r != nil {
		c.recorder = r
	}
	return c
}

// Version returns the current cache version, initialising when missing.
func (c *ReportCache) Version(ctx context.Context) (int64, error) {
	ver, err := c.client.Get(ctx, versionKey).Int64()
	if errors.Is(err, redis.Nil) {
		// SETNX keeps a concurrent bump from being overwritten
		if err := c.client.SetNX(ctx, versionKey, 1, 0).Err(); err != nil {
			return 0, err
		}
		return c.client.Get(ctx, versionKey).Int64()
	}
	return ver, err
}

func entryKey(ver int64, report, key string) string {
	return fmt.Sprintf("reports:%d:%s:%s", ver, report, key)
}

// Get loads a cached result into dst and reports whether it was found. The
// returned version is the one the lookup ran under; a result built after a
// miss must be stored with that version so that an invalidation during the
// build orphans it.
func (c *ReportCache) Get(ctx context.Context, report, key string, dst any) (int64, bool, error) {
	ver, err := c.Version(ctx)
	if err != nil {
		return 0, false, fmt.Errorf("cache version: %w", err)
	}

	payload, err := c.client.Get(ctx, entryKey(ver, report, key)).Bytes()
	if errors.Is(err, redis.Nil) {
		c.recorder.CacheLookup(report, false)
		return ver, false, nil
	}
	if err != nil {
		return ver, false, fmt.Errorf("cache get: %w", err)
	}

	raw, err := c.decode(payload)
	if err != nil {
		return ver, false, err
	}
	if err := json.Unmarshal(raw, dst); err != nil {
		return ver, false, fmt.Errorf("cache unmarshal: %w", err)
	}
	c.recorder.CacheLookup(report, true)
	return ver, true, nil
}

// Set stores value under version ver, as returned by Get.
func (c *ReportCache) Set(ctx context.Context, ver int64, report, key string, value any) error {
	raw, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("cache marshal: %w", err)
	}
	if err := c.client.Set(ctx, entryKey(ver, report, key), c.encode(raw), c.ttl).Err(); err != nil {
		return fmt.Errorf("cache set: %w", err)
	}
	return nil
}

// Invalidate bumps the version after a committed document change.
func (c *ReportCache) Invalidate(ctx context.Context) error {
	ver, err := c.client.Incr(ctx, versionKey).Result()
	if err != nil {
		return fmt.Errorf("cache bump: %w", err)
	}
	logger.Debug(ctx, "report cache invalidated", "version", ver)
	return nil
}

func (c *ReportCache) encode(raw []byte) []byte {
	if c.threshold <= 0 || len(raw) < c.threshold {
		return append([]byte{formatJSON}, raw...)
	}
	return c.encoder.EncodeAll(raw, []byte{formatZstd})
}

func (c *ReportCache) decode(payload []byte) ([]byte, error) {
	if len(payload) == 0 {
		return nil, fmt.Errorf("cache payload is empty")
	}
	switch payload[0] {
	case formatJSON:
		return payload[1:], nil
	case formatZstd:
		raw, err := c.decoder.DecodeAll(payload[1:], nil)
		if err != nil {
			return nil, fmt.Errorf("cache decompress: %w", err)
		}
		return raw, nil
	}
	return nil, fmt.Errorf("cache payload has unknown format %q", payload[0])
}
