package cache

import (
	"context"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
)

// feedPagePrefix namespaces cached feed pages so Clear can scan them without
// touching rate-limit or session keys.
const feedPagePrefix = "feedpage:"

// FeedPageKey builds the cache key for a rendered feed page. The full request
// URL goes into the key so each page number caches separately.
func FeedPageKey(requestURL string) string {
	return feedPagePrefix + requestURL
}

// PageCache is a TTL'd cache of rendered response bodies. It is injected into
// the server rather than accessed as package state so tests can point it at a
// fake Redis. A nil client disables it; writes that create posts never
// invalidate entries, so staleness is bounded only by the TTL.
type PageCache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewPageCache returns a PageCache over the given client with the given TTL.
func NewPageCache(client *redis.Client, ttl time.Duration) *PageCache {
	return &PageCache{client: client, ttl: ttl}
}

// Enabled reports whether the cache is backed by a live client and a positive TTL.
func (p *PageCache) Enabled() bool {
	return p != nil && p.client != nil && p.ttl > 0
}

// Get returns the cached body for the key, if present.
func (p *PageCache) Get(ctx context.Context, key string) ([]byte, bool) {
	if !p.Enabled() {
		return nil, false
	}
	body, err := p.client.Get(ctx, key).Bytes()
	if err != nil {
		return nil, false
	}
	return body, true
}

// Set stores the body under the key for the cache TTL. Failures are ignored;
// a missed write only costs a recomputation.
func (p *PageCache) Set(ctx context.Context, key string, body []byte) {
	if !p.Enabled() {
		return
	}
	p.client.Set(ctx, key, body, p.ttl)
}

// Clear removes every cached feed page.
func (p *PageCache) Clear(ctx context.Context) error {
	if !p.Enabled() {
		return nil
	}
	iter := p.client.Scan(ctx, 0, feedPagePrefix+"*", 0).Iterator()
	var keys []string
	for iter.Next(ctx) {
		keys = append(keys, iter.Val())
	}
	if err := iter.Err(); err != nil {
		return err
	}
	if len(keys) == 0 {
		return nil
	}
	err := p.client.Del(ctx, keys...).Err()
	if errors.Is(err, redis.Nil) {
		return nil
	}
	return err
}
