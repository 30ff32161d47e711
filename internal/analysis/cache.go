package analysis

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"time"

	lru "github.com/hashicorp/golang-lru/v2"
	"github.com/sirupsen/logrus"

	"github.com/papapumpkin/steer/internal/logging"
)

// DefaultCacheSize is the number of analyses kept in memory.
const DefaultCacheSize = 64

// Entry is one cached analysis, stored as JSON so every hit decodes a fresh
// copy.
type Entry struct {
	Key       string
	CreatedAt time.Time
	Value     []byte
}

// Store persists entries beyond the process lifetime.
type Store interface {
	Get(ctx context.Context, key string) (Entry, bool, error)
	Put(ctx context.Context, e Entry) error
	Delete(ctx context.Context, key string) error
	Close() error
}

// CacheKey derives the cache key for one project state. A content change
// alters the fingerprint and therefore the key.
func CacheKey(root string, depth Depth, fingerprint string) string {
	sum := sha256.Sum256([]byte(root + "|" + string(depth) + "|" + fingerprint))
	return hex.EncodeToString(sum[:])
}

// IsStale reports whether e is older than maxAge at now. A non-positive
// maxAge disables the age check.
func IsStale(e Entry, now time.Time, maxAge time.Duration) bool {
	if e.CreatedAt.IsZero() {
		return true
	}
	return maxAge > 0 && now.Sub(e.CreatedAt) > maxAge
}

// Cache is an in-memory LRU in front of an optional Store. It is safe for
// concurrent use.
type Cache struct {
	mem    *lru.Cache[string, Entry]
	store  Store
	maxAge time.Duration
	now    func() time.Time
	log    logrus.FieldLogger
}

// NewCache returns a cache holding up to size entries in memory. store may
// be nil.
func NewCache(size int, maxAge time.Duration, store Store, logger logrus.FieldLogger) (*Cache, error) {
	if size <= 0 {
		size = DefaultCacheSize
	}
	mem, err := lru.New[string, Entry](size)
	if err != nil {
		return nil, fmt.Errorf("analysis: create lru cache: %w", err)
	}
	return &Cache{
		mem:    mem,
		store:  store,
		maxAge: maxAge,
		now:    time.Now,
		log:    logging.OrDiscard(logger),
	}, nil
}

// Get returns the analysis stored under key. Stale and undecodable entries
// are evicted and reported as misses.
func (c *Cache) Get(ctx context.Context, key string) (*ProjectAnalysis, bool) {
	e, ok := c.mem.Get(key)
	if !ok && c.store != nil {
		var err error
		e, ok, err = c.store.Get(ctx, key)
		if err != nil {
			c.log.WithError(err).Warn("cache store read failed")
			return nil, false
		}
		if ok {
			c.mem.Add(key, e)
		}
	}
	if !ok {
		return nil, false
	}

	if IsStale(e, c.now(), c.maxAge) {
		c.log.WithFields(logrus.Fields{"key": key, "age": c.now().Sub(e.CreatedAt).String()}).Debug("cache entry stale")
		c.evict(ctx, key)
		return nil, false
	}

	var a ProjectAnalysis
	if err := json.Unmarshal(e.Value, &a); err != nil {
		c.log.WithError(err).Warn("cache entry undecodable")
		c.evict(ctx, key)
		return nil, false
	}
	return &a, true
}

// Put stores a under key.
func (c *Cache) Put(ctx context.Context, key string, a *ProjectAnalysis) error {
	data, err := json.Marshal(a)
	if err != nil {
		return fmt.Errorf("analysis: encode cache entry: %w", err)
	}
	e := Entry{Key: key, CreatedAt: c.now(), Value: data}
	c.mem.Add(key, e)
	if c.store != nil {
		if err := c.store.Put(ctx, e); err != nil {
			return fmt.Errorf("analysis: persist cache entry: %w", err)
		}
	}
	return nil
}

// Len returns the number of in-memory entries.
func (c *Cache) Len() int {
	return c.mem.Len()
}

// Close releases the backing store.
func (c *Cache) Close() error {
	if c.store == nil {
		return nil
	}
	return c.store.Close()
}

func (c *Cache) evict(ctx context.Context, key string) {
	c.mem.Remove(key)
	if c.store != nil {
		if err := c.store.Delete(ctx, key); err != nil {
			c.log.WithError(err).Warn("cache store delete failed")
		}
	}
}
