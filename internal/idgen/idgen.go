// Package idgen hands out user ids that stay unique under concurrent registration.
package idgen

import (
	"crypto/rand"
	"sync"
	"time"

	"github.com/oklog/ulid/v2"
)

// Generator produces lexicographically sortable ULIDs from a monotonic entropy source.
type Generator struct {
	mu      sync.Mutex
	entropy *ulid.MonotonicEntropy
	now     func() time.Time
}

func New() *Generator {
	return &Generator{
		entropy: ulid.Monotonic(rand.Reader, 0),
		now:     time.Now,
	}
}

// NewID returns a fresh id. Two calls never return the same value, even within one millisecond.
func (g *Generator) NewID() string {
	g.mu.Lock()
	defer g.mu.Unlock()

	return ulid.MustNew(ulid.Timestamp(g.now().UTC()), g.entropy).String()
}

var (
	defaultOnce sync.Once
	defaultGen  *Generator
)

// NewID uses the process-wide generator.
func NewID() string {
	defaultOnce.Do(func() { defaultGen = New() })
	return defaultGen.NewID()
}
