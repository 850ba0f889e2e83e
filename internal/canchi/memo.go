package canchi

import (
	"sync"
	"time"
)

// DefaultMemoCapacity is the number of dates the Calculator remembers before
// it clears its memo.
const DefaultMemoCapacity = 1000

type dateKey struct {
	year  int
	month time.Month
	day   int
}

// Calculator computes day Can-Chi values with a small bounded memo. When the
// memo reaches capacity it is cleared wholesale. Safe for concurrent use.
type Calculator struct {
	mu       sync.Mutex
	capacity int
	memo     map[dateKey]Pair
}

// NewCalculator returns a Calculator that remembers up to capacity dates.
// A capacity of zero or less disables memoization.
func NewCalculator(capacity int) *Calculator {
	c := &Calculator{capacity: capacity}
	if capacity > 0 {
		c.memo = make(map[dateKey]Pair, capacity)
	}
	return c
}

// Day returns the Can-Chi of the calendar date of t.
func (c *Calculator) Day(t time.Time) Pair {
	if c.capacity <= 0 {
		return DayCanChi(t)
	}

	y, m, d := t.Date()
	key := dateKey{y, m, d}

	c.mu.Lock()
	defer c.mu.Unlock()

	if p, ok := c.memo[key]; ok {
		return p
	}

	p := DayCanChi(t)
	if len(c.memo) >= c.capacity {
		clear(c.memo)
	}
	c.memo[key] = p
	return p
}

// Len returns the number of memoized dates.
func (c *Calculator) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.memo)
}
