// Package dedup discards QoS1 redeliveries: identical payloads hash to the
// same key, so a key seen within the TTL is a duplicate.
package dedup

import (
	"sync"
	"time"
)

type Deduper struct {
	mu   sync.Mutex
	ttl  time.Duration
	max  int
	seen map[string]time.Time // key -> expiry
}

func New(ttl time.Duration, max int) *Deduper {
	if ttl <= 0 {
		ttl = 10 * time.Minute
	}
	if max <= 0 {
		max = 10000
	}
	return &Deduper{ttl: ttl, max: max, seen: make(map[string]time.Time, max)}
}

// ShouldProcess records the key and reports whether the caller should handle
// the message. False means a duplicate inside the TTL window.
func (d *Deduper) ShouldProcess(key string) bool {
	if key == "" {
		return true
	}
	now := time.Now()

	d.mu.Lock()
	defer d.mu.Unlock()

	if exp, ok := d.seen[key]; ok && now.Before(exp) {
		return false
	}
	d.seen[key] = now.Add(d.ttl)

	if len(d.seen) > d.max {
		d.prune(now)
	}
	return true
}

// prune drops expired entries; called with the lock held. If everything is
// still live the map may stay above max until entries age out.
func (d *Deduper) prune(now time.Time) {
	for k, exp := range d.seen {
		if now.After(exp) {
			delete(d.seen, k)
		}
	}
}

// Len reports the current number of tracked keys.
func (d *Deduper) Len() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return len(d.seen)
}
