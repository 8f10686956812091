package askclient

import (
	"container/list"
	"strings"
	"sync"
	"time"

	"github.com/jonboulle/clockwork"
)

// CacheStats holds runtime statistics for an answer cache.
type CacheStats struct {
	Hits      int64
	Misses    int64
	Evictions int64
	Entries   int
}

type cacheEntry struct {
	key     string
	answer  string
	expires time.Time // zero = no TTL
}

// answerCache is an in-memory LRU of answers keyed by normalised question,
// with optional TTL expiry.
type answerCache struct {
	maxEntries int
	ttl        time.Duration
	clock      clockwork.Clock

	mu        sync.Mutex
	lru       *list.List               // front = most recently used
	items     map[string]*list.Element // key -> element (value is *cacheEntry)
	hits      int64
	misses    int64
	evictions int64
}

func newAnswerCache(maxEntries int, ttl time.Duration, clock clockwork.Clock) *answerCache {
	return &answerCache{
		maxEntries: maxEntries,
		ttl:        ttl,
		clock:      clock,
		lru:        list.New(),
		items:      make(map[string]*list.Element),
	}
}

// cacheKey folds case and whitespace so "What's your stack?" and
// "what's   your stack?" share an entry.
func cacheKey(question string) string {
	return strings.Join(strings.Fields(strings.ToLower(question)), " ")
}

func (c *answerCache) get(question string) (string, bool) {
	key := cacheKey(question)

	c.mu.Lock()
	defer c.mu.Unlock()

	elem, ok := c.items[key]
	if !ok {
		c.misses++
		return "", false
	}
	entry := elem.Value.(*cacheEntry)
	if !entry.expires.IsZero() && !c.clock.Now().Before(entry.expires) {
		c.lru.Remove(elem)
		delete(c.items, key)
		c.misses++
		return "", false
	}

	c.lru.MoveToFront(elem)
	c.hits++
	return entry.answer, true
}

func (c *answerCache) put(question, answer string) {
	key := cacheKey(question)
	var expires time.Time
	if c.ttl > 0 {
		expires = c.clock.Now().Add(c.ttl)
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if elem, ok := c.items[key]; ok {
		entry := elem.Value.(*cacheEntry)
		entry.answer = answer
		entry.expires = expires
		c.lru.MoveToFront(elem)
		return
	}

	c.items[key] = c.lru.PushFront(&cacheEntry{key: key, answer: answer, expires: expires})

	for c.lru.Len() > c.maxEntries {
		oldest := c.lru.Back()
		c.lru.Remove(oldest)
		delete(c.items, oldest.Value.(*cacheEntry).key)
		c.evictions++
	}
}

func (c *answerCache) stats() CacheStats {
	c.mu.Lock()
	defer c.mu.Unlock()
	return CacheStats{
		Hits:      c.hits,
		Misses:    c.misses,
		Evictions: c.evictions,
		Entries:   c.lru.Len(),
	}
}
