package catalog

import (
	"context"
	"fmt"
	"time"

	lru "github.com/hashicorp/golang-lru/v2"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
)

// cacheKey identifies one (axis, version) catalog resolution, e.g.
// "icd10gm:2019" or "icdo3-morphology:2014".
type cacheKey struct {
	axis    string
	version string
}

// CachedCatalogConfig configures CachedCatalog's two cache tiers.
type CachedCatalogConfig struct {
	// RedisClient is optional; nil disables the shared tier and
	// CachedCatalog falls back to LRU-only, matching resource_cache's
	// "Redis if available" shape.
	RedisClient *redis.Client
	TTL         time.Duration
	MaxEntries  int
}

// CachedCatalog fronts a Catalogs implementation with an in-process
// LRU of resolved code Sets, plus an optional Redis layer that records
// which (axis, version) pairs have been resolved. Redis never serves a
// code Set: every LRU miss is resolved from origin. Grounded on
// resource_cache.go's memory-then-Redis-then-origin lookup chain,
// narrowed from "cache an HTTP response" to "cache a catalog version
// resolution".
type CachedCatalog struct {
	origin Catalogs
	lru    *lru.Cache[cacheKey, Set]
	redis  *redis.Client
	ttl    time.Duration
	log    *logrus.Logger
}

// NewCachedCatalog wraps origin with the configured cache tiers.
func NewCachedCatalog(origin Catalogs, cfg CachedCatalogConfig, log *logrus.Logger) (*CachedCatalog, error) {
	maxEntries := cfg.MaxEntries
	if maxEntries <= 0 {
		maxEntries = 256
	}
	ttl := cfg.TTL
	if ttl <= 0 {
		ttl = 30 * time.Minute
	}

	cache, err := lru.New[cacheKey, Set](maxEntries)
	if err != nil {
		return nil, fmt.Errorf("building catalog LRU: %w", err)
	}

	return &CachedCatalog{
		origin: origin,
		lru:    cache,
		redis:  cfg.RedisClient,
		ttl:    ttl,
		log:    log,
	}, nil
}

func (c *CachedCatalog) ICD10GM(version string) (Set, bool) {
	return c.resolve(context.Background(), "icd10gm", version, c.origin.ICD10GM)
}

func (c *CachedCatalog) ICDO3Topography(version string) (Set, bool) {
	return c.resolve(context.Background(), "icdo3-topography", version, c.origin.ICDO3Topography)
}

func (c *CachedCatalog) ICDO3Morphology(version string) (Set, bool) {
	return c.resolve(context.Background(), "icdo3-morphology", version, c.origin.ICDO3Morphology)
}

func (c *CachedCatalog) ATC() Set {
	return c.origin.ATC()
}

func (c *CachedCatalog) ICD10GMVersion(version string) bool {
	return c.origin.ICD10GMVersion(version)
}

func (c *CachedCatalog) ICDO3Version(version string) bool {
	return c.origin.ICDO3Version(version)
}

// resolve checks the LRU; on a miss it always resolves from origin and
// populates both tiers. Redis stores a simple "known" marker rather
// than the full code list: the origin catalog is the source of truth
// for code content. The Redis lookup before origin only logs a miss or
// a failure; its answer does not change the result.
func (c *CachedCatalog) resolve(ctx context.Context, axis, version string, lookup func(string) (Set, bool)) (Set, bool) {
	key := cacheKey{axis: axis, version: version}

	if set, ok := c.lru.Get(key); ok {
		return set, true
	}

	if c.redis != nil {
		redisKey := "mtbvalidator:catalog:" + axis + ":" + version
		known, err := c.redis.Exists(ctx, redisKey).Result()
		if err != nil {
			c.log.WithFields(logrus.Fields{"axis": axis, "version": version, "error": err}).
				Warn("catalog redis lookup failed, falling back to origin")
		} else if known == 0 {
			c.log.WithFields(logrus.Fields{"axis": axis, "version": version}).Debug("catalog redis cache miss")
		}
	}

	set, ok := lookup(version)
	if !ok {
		return nil, false
	}

	c.lru.Add(key, set)
	if c.redis != nil {
		redisKey := "mtbvalidator:catalog:" + axis + ":" + version
		if err := c.redis.Set(ctx, redisKey, "1", c.ttl).Err(); err != nil {
			c.log.WithFields(logrus.Fields{"axis": axis, "version": version, "error": err}).
				Warn("catalog redis write failed")
		}
	}
	return set, true
}
