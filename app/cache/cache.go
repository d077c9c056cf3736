package cache

import (
	"time"

	lru "github.com/hashicorp/golang-lru/v2"
)

// DefaultMaxKeys bounds the number of distinct cache keys. Relevant mostly
// for the local-news cache, whose key space (city/state combinations) would
// otherwise grow without limit over a long process lifetime.
const DefaultMaxKeys = 512

type entry[T any] struct {
	data     T
	storedAt time.Time
}

// Cache is a process-local time-decay cache: entries are fresh for a fixed
// TTL after being stored. Stale entries are not actively evicted; they stay
// until replaced by the next successful fetch or pushed out by the LRU
// key bound. Contents are lost on restart.
type Cache[T any] struct {
	store *lru.Cache[string, entry[T]]
	ttl   time.Duration
	now   func() time.Time
}

func New[T any](ttl time.Duration) *Cache[T] {
	return NewWithSize[T](ttl, DefaultMaxKeys)
}

func NewWithSize[T any](ttl time.Duration, maxKeys int) *Cache[T] {
	store, err := lru.New[string, entry[T]](maxKeys)
	if err != nil {
		// lru.New only fails on a non-positive size
		panic(err)
	}

	return &Cache[T]{
		store: store,
		ttl:   ttl,
		now:   time.Now,
	}
}

// Get returns the cached value for key and whether it is still fresh.
// A stale or absent entry yields the zero value and false.
func (c *Cache[T]) Get(key string) (T, bool) {
	cached, ok := c.store.Get(key)
	if !ok || c.now().Sub(cached.storedAt) >= c.ttl {
		var zero T
		return zero, false
	}
	return cached.data, true
}

func (c *Cache[T]) Set(key string, value T) {
	c.store.Add(key, entry[T]{data: value, storedAt: c.now()})
}

// Len reports the number of stored keys, fresh or stale.
func (c *Cache[T]) Len() int {
	return c.store.Len()
}

// TTL reports the configured freshness window.
func (c *Cache[T]) TTL() time.Duration {
	return c.ttl
}
