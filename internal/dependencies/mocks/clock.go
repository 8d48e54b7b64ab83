package mocks

import (
	"sync"
	"time"

	"github.com/miikama/game-lobby-REST-backend/internal/dependencies/clock"
)

// MockClock is a settable Clock for tests. It is safe for concurrent use
// since HTTP tests drive the coordinator from several goroutines.
type MockClock struct {
	mu      sync.Mutex
	current time.Time
	step    time.Duration
}

// Ensure MockClock implements Clock
var _ clock.Clock = (*MockClock)(nil)

// NewMockClock creates a MockClock set to the given time
func NewMockClock(t time.Time) *MockClock {
	return &MockClock{current: t}
}

// Now returns the mocked current time as a storable timestamp, then
// advances it by the step set with AutoAdvance
func (c *MockClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	now := c.current
	c.current = c.current.Add(c.step)
	return clock.Stamp(now)
}

// Advance moves the clock forward by the given duration
func (c *MockClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.current = c.current.Add(d)
}

// Set sets the clock to the given time
func (c *MockClock) Set(t time.Time) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.current = t
}

// AutoAdvance makes every Now call move the clock forward by d
func (c *MockClock) AutoAdvance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.step = d
}
