// Package auth contains authentication-related use cases.
package auth

// DefaultMaxAttempts is the default login attempt budget per session.
const DefaultMaxAttempts = 3

// AttemptCounter tracks consecutive failed logins within one login flow.
// It is caller-owned, in-memory and per-session; counters are never shared
// across processes and reset when a new session begins.
type AttemptCounter struct {
	count int
	max   int
}

// NewAttemptCounter creates a counter with the given maximum. A non-positive
// maximum falls back to DefaultMaxAttempts.
func NewAttemptCounter(max int) *AttemptCounter {
	if max <= 0 {
		max = DefaultMaxAttempts
	}
	return &AttemptCounter{max: max}
}

// Increment records one failed attempt.
func (c *AttemptCounter) Increment() {
	c.count++
}

// Exhausted reports whether the attempt budget has been used up.
func (c *AttemptCounter) Exhausted() bool {
	return c.count >= c.max
}

// Remaining returns the number of attempts left.
func (c *AttemptCounter) Remaining() int {
	if c.count >= c.max {
		return 0
	}
	return c.max - c.count
}

// Reset clears the counter for a new login flow.
func (c *AttemptCounter) Reset() {
	c.count = 0
}
