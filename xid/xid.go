package xid

import (
	"sync"
	"time"
)

var (
	mu   sync.Mutex
	last int64
)

// NextID returns a millisecond-timestamp identifier. Existing saved
// customers carry Date.now() style ids, so new ids use the same scale; the
// guard keeps two saves within one millisecond from colliding.
func NextID() int64 {
	mu.Lock()
	defer mu.Unlock()

	id := time.Now().UnixMilli()
	if id <= last {
		id = last + 1
	}
	last = id
	return id
}
