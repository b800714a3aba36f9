package cache

import (
	"sync"
	"time"

	"github.com/freightlink/portal/internal/auth"
	"github.com/freightlink/portal/internal/metrics"
)

// SessionCache keeps resolved bearer sessions in memory so the auth
// middleware does not hit the sessions table on every request. Entries are
// evicted lazily when read after their expiry.
type SessionCache struct {
	mu    sync.RWMutex
	cache map[string]auth.Session
}

func NewSessionCache() *SessionCache {
	return &SessionCache{
		cache: make(map[string]auth.Session),
	}
}

func (c *SessionCache) Get(token string) (auth.Session, bool) {
	c.mu.RLock()
	sess, found := c.cache[token]
	c.mu.RUnlock()
	if !found {
		return auth.Session{}, false
	}

	if sess.Expired(time.Now().UTC()) {
		c.Delete(token)
		return auth.Session{}, false
	}
	return sess, true
}

func (c *SessionCache) Set(sess auth.Session) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.cache[sess.Token] = sess
	metrics.SessionCacheItems.Set(float64(len(c.cache)))
}

func (c *SessionCache) Delete(token string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if _, found := c.cache[token]; found {
		delete(c.cache, token)
		metrics.SessionCacheItems.Set(float64(len(c.cache)))
	}
}
