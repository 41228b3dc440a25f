package reconcile

import (
	"context"
	"strings"
	"time"

	"material-manager/core/matcher"

	gocache "github.com/patrickmn/go-cache"
	"golang.org/x/sync/singleflight"
)

// cachedSource memoizes lookups of another source. Not-found answers are
// cached too; errors never are.
type cachedSource struct {
	inner Source
	cache *gocache.Cache
	sf    singleflight.Group
}

type cacheEntry struct {
	match *Match
}

// Cached wraps a source with a TTL cache and stampede protection.
// A non-positive ttl returns the source unchanged.
func Cached(inner Source, ttl time.Duration) Source {
	if ttl <= 0 {
		return inner
	}
	return &cachedSource{
		inner: inner,
		cache: gocache.New(ttl, 2*ttl),
	}
}

func (c *cachedSource) Name() string {
	return c.inner.Name()
}

func (c *cachedSource) Lookup(ctx context.Context, subject Subject) (*Match, error) {
	key := cacheKey(subject)
	if v, ok := c.cache.Get(key); ok {
		return copyMatch(v.(cacheEntry).match), nil
	}

	v, err, _ := c.sf.Do(key, func() (any, error) {
		// Double-check after winning the flight
		if v, ok := c.cache.Get(key); ok {
			return v.(cacheEntry), nil
		}
		m, err := c.inner.Lookup(ctx, subject)
		if err != nil {
			return nil, err
		}
		entry := cacheEntry{match: m}
		c.cache.SetDefault(key, entry)
		return entry, nil
	})
	if err != nil {
		return nil, err
	}
	return copyMatch(v.(cacheEntry).match), nil
}

func cacheKey(s Subject) string {
	var b strings.Builder
	b.WriteString(matcher.DigitsOnly(s.ISBN))
	b.WriteByte('|')
	b.WriteString(matcher.Normalize(s.Name))
	return b.String()
}

// copyMatch keeps callers from mutating the cached value.
func copyMatch(m *Match) *Match {
	if m == nil {
		return nil
	}
	out := *m
	if m.ExternalID != nil {
		id := *m.ExternalID
		out.ExternalID = &id
	}
	if m.Price != nil {
		p := *m.Price
		out.Price = &p
	}
	if m.Stock != nil {
		s := *m.Stock
		out.Stock = &s
	}
	return &out
}
