package content

import (
	"fmt"
	"sync/atomic"
	"time"
)

// IDSource generates store-unique entity ids.
//
// IDs have the form <prefix><unix-millis>-<counter>. The monotonic counter
// disambiguates entities created within the same millisecond, so ids from one
// source are pairwise distinct regardless of clock resolution.
//
// Safe for concurrent use (atomic counter), though stores call it from a
// single logical thread.
type IDSource struct {
	prefix  string
	counter atomic.Int64
	now     func() time.Time
}

// NewIDSource creates an id source for one entity kind.
// Conventional prefixes: "card", "event", "image", "param", "action".
func NewIDSource(prefix string) *IDSource {
	return &IDSource{prefix: prefix, now: time.Now}
}

// NewIDSourceAt creates an id source with a fixed clock. Used in tests to
// exercise same-millisecond creation.
func NewIDSourceAt(prefix string, now func() time.Time) *IDSource {
	return &IDSource{prefix: prefix, now: now}
}

// Next returns a fresh unique id.
func (s *IDSource) Next() string {
	return fmt.Sprintf("%s%d-%d", s.prefix, s.now().UnixMilli(), s.counter.Add(1))
}
