package layout

import (
	"sync"

	"github.com/golang/groupcache/lru"
)

// TextMeasurer reports the rendered size of text in millimetres. It must
// be deterministic: the same text and font always measure the same.
type TextMeasurer interface {
	Measure(text string, font Font) (width, height float64)
}

// DefaultCacheEntries bounds the measurements a CachedMeasurer keeps.
const DefaultCacheEntries = 1 << 14

type measureKey struct {
	text string
	font Font
}

type measurement struct {
	width, height float64
}

// CachedMeasurer memoizes another measurer, dropping the least recently
// used measurements past its size. The engine measures every prefix of a
// verse once per wrap attempt, so most calls are repeats.
type CachedMeasurer struct {
	inner TextMeasurer

	mtx    sync.Mutex
	cache  *lru.Cache
	hits   int
	misses int
}

var _ TextMeasurer = (*CachedMeasurer)(nil)

func NewCachedMeasurer(inner TextMeasurer) *CachedMeasurer {
	return NewCachedMeasurerSize(inner, DefaultCacheEntries)
}

// NewCachedMeasurerSize keeps at most entries measurements.
func NewCachedMeasurerSize(inner TextMeasurer, entries int) *CachedMeasurer {
	if entries <= 0 {
		entries = DefaultCacheEntries
	}
	return &CachedMeasurer{
		inner: inner,
		cache: lru.New(entries),
	}
}

func (c *CachedMeasurer) Measure(text string, font Font) (width, height float64) {
	key := measureKey{text, font}
	c.mtx.Lock()
	if v, found := c.cache.Get(key); found {
		c.hits++
		c.mtx.Unlock()
		m := v.(measurement)
		return m.width, m.height
	}
	c.mtx.Unlock()

	// measured outside the lock, a racing miss stores the same value
	width, height = c.inner.Measure(text, font)

	c.mtx.Lock()
	defer c.mtx.Unlock()
	c.misses++
	c.cache.Add(key, measurement{width, height})
	return width, height
}

// Stats returns the cache hit and miss counts.
func (c *CachedMeasurer) Stats() (hits, misses int) {
	c.mtx.Lock()
	defer c.mtx.Unlock()
	return c.hits, c.misses
}

// Len is the number of measurements held.
func (c *CachedMeasurer) Len() int {
	c.mtx.Lock()
	defer c.mtx.Unlock()
	return c.cache.Len()
}
