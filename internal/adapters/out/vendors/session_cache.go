package vendors

import (
	"sync"
	"time"

	"courierhub/internal/core/domain/model/vendor"
)

// sessionCache guards the gateway's cached session. Expiry checks honour the
// session's own skew window, so a token is replaced before the vendor starts
// rejecting it.
type sessionCache struct {
	mu      sync.RWMutex
	session vendor.Session
}

func (c *sessionCache) live(now time.Time) (vendor.Session, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if c.session.Expired(now) {
		return vendor.Session{}, false
	}
	return c.session, true
}

func (c *sessionCache) store(session vendor.Session) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.session = session
}

func (c *sessionCache) invalidate() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.session = vendor.Session{}
}
