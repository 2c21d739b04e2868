package providers

import (
	"strconv"
	"strings"
	"swiperank/internal/structures"
	"unsafe"

	"github.com/coocood/freecache"
)

type CacheProviderInterface interface {
	Get(key string) ([]byte, bool)
	Set(key string, value []byte)
}

// CacheNamespace prefixes every response cache key and labels its metrics.
type CacheNamespace string

const (
	CacheFeed            CacheNamespace = "feed"
	CacheRecommendations CacheNamespace = "recs"
)

// ResponseCacheKey identifies a rendered response. revision is the user's
// state revision and generation the catalog generation, so any change to
// either produces a new key and stale bodies simply age out.
func ResponseCacheKey(ns CacheNamespace, userID string, revision, generation uint64, limit int) string {
	var b strings.Builder
	b.Grow(len(ns) + len(userID) + 48)
	b.WriteString(string(ns))
	b.WriteByte(':')
	b.WriteString(userID)
	b.WriteByte(':')
	b.WriteString(strconv.FormatUint(revision, 10))
	b.WriteByte(':')
	b.WriteString(strconv.FormatUint(generation, 10))
	b.WriteByte(':')
	b.WriteString(strconv.Itoa(limit))
	return b.String()
}

func namespaceOf(key string) string {
	if i := strings.IndexByte(key, ':'); i > 0 {
		return key[:i]
	}
	return "other"
}

// CacheProvider holds rendered feed and recommendation bodies in freecache.
type CacheProvider struct {
	cache *freecache.Cache
	ttl   int
}

func NewCacheProvider(conf *structures.Config, logger Logger) CacheProviderInterface {
	if !conf.Cache.Enabled || conf.Cache.Size <= 0 {
		logger.Infof(TypeApp, "Response cache disabled")
		return &noopCache{}
	}

	ttl := max(int(conf.Cache.TTL.Seconds()), 1)
	logger.Infof(TypeApp, "Response cache: %dMB, entries expire after %ds", conf.Cache.Size, ttl)

	return &CacheProvider{
		cache: freecache.NewCache(conf.Cache.Size * 1024 * 1024),
		ttl:   ttl,
	}
}

// keyBytes avoids a copy; freecache only reads the key.
func keyBytes(s string) []byte {
	if s == "" {
		return nil
	}
	return unsafe.Slice(unsafe.StringData(s), len(s))
}

func (c *CacheProvider) Get(key string) ([]byte, bool) {
	val, err := c.cache.Get(keyBytes(key))
	if err != nil {
		return nil, false
	}
	return val, true
}

func (c *CacheProvider) Set(key string, value []byte) {
	_ = c.cache.Set(keyBytes(key), value, c.ttl)
}

type noopCache struct{}

func (n *noopCache) Get(_ string) ([]byte, bool) { return nil, false }
func (n *noopCache) Set(_ string, _ []byte)      {}
