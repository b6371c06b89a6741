package accounts

import (
	"strconv"
	"time"

	"github.com/gagliardetto/solana-go"
)

const (
	configCacheKey = "config"
)

// getCached returns the cached value for key, or nil, along with the cache
// generation the lookup observed.
func (p *Provider) getCached(key string) (any, uint64) {
	p.cacheMu.RLock()
	defer p.cacheMu.RUnlock()
	cached := p.cache.Get(key)
	if cached == nil {
		return nil, p.cacheGen
	}
	return cached.Value(), p.cacheGen
}

// setCached stores v unless the cache was invalidated since gen.
func (p *Provider) setCached(gen uint64, key string, v any, ttl time.Duration) bool {
	p.cacheMu.Lock()
	defer p.cacheMu.Unlock()
	if gen != p.cacheGen {
		return false
	}
	p.cache.Set(key, v, ttl)
	return true
}

func flightKey(gen uint64, key string) string {
	return strconv.FormatUint(gen, 10) + "/" + key
}

func userCacheKey(owner solana.PublicKey) string {
	return "user:" + owner.String()
}

func stakeCacheKey(mint solana.PublicKey) string {
	return "stake:" + mint.String()
}
