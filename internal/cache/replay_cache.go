package cache

import "sync"

// ReplayCache remembers gateway payment ids that already produced an
// order record, mapping each to the invoice URL returned the first
// time. It is only a fast path; the orders table's unique constraint
// on payment_id is the authoritative duplicate guard.
type ReplayCache struct {
	mu   sync.RWMutex
	seen map[string]string
}

func NewReplayCache() *ReplayCache {
	return &ReplayCache{
		seen: make(map[string]string),
	}
}

func (c *ReplayCache) Get(paymentID string) (string, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	url, ok := c.seen[paymentID]
	return url, ok
}

func (c *ReplayCache) Set(paymentID, invoiceURL string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.seen[paymentID] = invoiceURL
}
