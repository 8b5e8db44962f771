package geo

import (
	"context"
	"time"

	"github.com/patrickmn/go-cache"

	"github.com/fsdevblog/shortlinks/internal/models"
)

// CachedLocator запоминает найденные местоположения на ttl.
// Неудачные определения (Unknown) не кешируются.
type CachedLocator struct {
	next  Locator
	cache *cache.Cache
}

func NewCachedLocator(next Locator, ttl time.Duration) *CachedLocator {
	return &CachedLocator{
		next:  next,
		cache: cache.New(ttl, 2*ttl), //nolint:mnd
	}
}

func (c *CachedLocator) Locate(ctx context.Context, ip string) string {
	if v, ok := c.cache.Get(ip); ok {
		if location, isString := v.(string); isString {
			return location
		}
	}
	location := c.next.Locate(ctx, ip)
	if location != models.LocationUnknown {
		c.cache.SetDefault(ip, location)
	}
	return location
}
