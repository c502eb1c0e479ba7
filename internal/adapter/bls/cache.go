package bls

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/reedmaris/bls-data-service/internal/domain"
	"github.com/reedmaris/bls-data-service/internal/observability"
)

// CachedFetcher wraps a Fetcher with an in-memory LRU cache keyed by the
// requested series set and year range. Refreshes of an unchanged
// configuration hit the cache instead of burning API quota.
type CachedFetcher struct {
	inner   domain.Fetcher
	cache   *lruCache
	metrics *observability.Metrics
}

// NewCachedFetcher creates a cache decorator around a fetcher.
func NewCachedFetcher(inner domain.Fetcher, maxEntries int, metrics *observability.Metrics) *CachedFetcher {
	return &CachedFetcher{
		inner:   inner,
		cache:   newLRUCache(maxEntries),
		metrics: metrics,
	}
}

func (c *CachedFetcher) FetchSeries(ctx context.Context, ids []string, startYear, endYear int) ([]domain.SeriesData, error) {
	key := fmt.Sprintf("%s|%d-%d", strings.Join(ids, ","), startYear, endYear)
	if series, ok := c.cache.get(key); ok {
		c.metrics.FetchCache.WithLabelValues("hit").Inc()
		return series, nil
	}
	c.metrics.FetchCache.WithLabelValues("miss").Inc()

	series, err := c.inner.FetchSeries(ctx, ids, startYear, endYear)
	if err != nil {
		return nil, err
	}
	// Only cache non-empty results so a transient empty response can be retried.
	if len(series) > 0 {
		c.cache.put(key, series)
	}
	return series, nil
}

// lruCache is a simple thread-safe LRU cache for fetched payloads.
type lruCache struct {
	maxEntries int
	mu         sync.Mutex
	entries    map[string]*entry
	head       *entry // most recently used
	tail       *entry // least recently used
}

type entry struct {
	key   string
	value []domain.SeriesData
	prev  *entry
	next  *entry
}

func newLRUCache(maxEntries int) *lruCache {
	return &lruCache{
		maxEntries: maxEntries,
		entries:    make(map[string]*entry),
	}
}

func (c *lruCache) get(key string) ([]domain.SeriesData, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	e, ok := c.entries[key]
	if !ok {
		return nil, false
	}
	c.moveToFront(e)
	return e.value, true
}

func (c *lruCache) put(key string, value []domain.SeriesData) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if e, ok := c.entries[key]; ok {
		e.value = value
		c.moveToFront(e)
		return
	}

	e := &entry{key: key, value: value}
	c.entries[key] = e
	c.addToFront(e)

	if len(c.entries) > c.maxEntries {
		c.evictTail()
	}
}

func (c *lruCache) moveToFront(e *entry) {
	if e == c.head {
		return
	}
	c.remove(e)
	c.addToFront(e)
}

func (c *lruCache) addToFront(e *entry) {
	e.next = c.head
	e.prev = nil
	if c.head != nil {
		c.head.prev = e
	}
	c.head = e
	if c.tail == nil {
		c.tail = e
	}
}

func (c *lruCache) remove(e *entry) {
	if e.prev != nil {
		e.prev.next = e.next
	} else {
		c.head = e.next
	}
	if e.next != nil {
		e.next.prev = e.prev
	} else {
		c.tail = e.prev
	}
}

func (c *lruCache) evictTail() {
	if c.tail == nil {
		return
	}
	delete(c.entries, c.tail.key)
	c.remove(c.tail)
}
