package middleware

import (
	"sync"
	"time"

	"github.com/gofiber/fiber/v2"
)

type cacheEntry struct {
	body      []byte
	expiresAt time.Time
}

// statsCache is a read-through response cache for the expensive admin stats
// queries. Entries expire after the configured TTL; there is no eviction
// beyond expiry since the key space is a handful of dashboard paths.
var statsCache = struct {
	sync.RWMutex
	entries map[string]cacheEntry
}{entries: make(map[string]cacheEntry)}

// CacheResponse caches successful JSON responses keyed by request path and
// reports cache status via the X-Cache header (HIT or MISS).
func CacheResponse(ttl time.Duration) fiber.Handler {
	return func(c *fiber.Ctx) error {
		key := c.Path()

		statsCache.RLock()
		entry, found := statsCache.entries[key]
		statsCache.RUnlock()

		if found && time.Now().Before(entry.expiresAt) {
			c.Set("X-Cache", "HIT")
			c.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
			return c.Status(fiber.StatusOK).Send(entry.body)
		}

		c.Set("X-Cache", "MISS")
		if err := c.Next(); err != nil {
			return err
		}

		// Only cache successful responses
		if c.Response().StatusCode() == fiber.StatusOK {
			body := make([]byte, len(c.Response().Body()))
			copy(body, c.Response().Body())

			statsCache.Lock()
			statsCache.entries[key] = cacheEntry{body: body, expiresAt: time.Now().Add(ttl)}
			statsCache.Unlock()
		}

		return nil
	}
}

// InvalidateCache drops a cached response, if any
func InvalidateCache(path string) {
	statsCache.Lock()
	delete(statsCache.entries, path)
	statsCache.Unlock()
}
