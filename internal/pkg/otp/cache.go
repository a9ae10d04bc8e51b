package otp

import (
	"context"
	"sync"
	"time"
)

type entry struct {
	code      string
	expiresAt time.Time
}

// Cache is a process-wide expiring store for single-use login codes.
// A code is consumed on first successful verification.
type Cache struct {
	mu      sync.Mutex
	entries map[string]entry
	ttl     time.Duration
	now     func() time.Time
}

func NewCache(ttl time.Duration) *Cache {
	return &Cache{
		entries: make(map[string]entry),
		ttl:     ttl,
		now:     time.Now,
	}
}

// Set stores a code for key, replacing any previous code.
func (c *Cache) Set(key, code string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[key] = entry{code: code, expiresAt: c.now().Add(c.ttl)}
}

// VerifyAndConsume reports whether code matches the live entry for key.
// A match removes the entry; expired entries never match.
func (c *Cache) VerifyAndConsume(key, code string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	e, ok := c.entries[key]
	if !ok {
		return false
	}
	if c.now().After(e.expiresAt) {
		delete(c.entries, key)
		return false
	}
	if e.code != code {
		return false
	}
	delete(c.entries, key)
	return true
}

// Sweep drops expired entries. Run periodically so abandoned logins
// do not accumulate.
func (c *Cache) Sweep(ctx context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	now := c.now()
	for key, e := range c.entries {
		if now.After(e.expiresAt) {
			delete(c.entries, key)
		}
	}
	return nil
}
