package bookshelf

import "time"

// IDSource hands out book ids.
type IDSource interface {
	// Next returns an id greater than every id returned or observed before.
	Next() int64
	// Observe records an id that already exists.
	Observe(id int64)
}

// ClockIDs derives ids from the wall clock in milliseconds. Two calls within
// the same millisecond get consecutive ids instead of colliding.
// It is not safe for concurrent use; the Store serializes access.
type ClockIDs struct {
	now  func() time.Time
	last int64
}

// NewClockIDs returns a ClockIDs reading now, or time.Now when now is nil.
func NewClockIDs(now func() time.Time) *ClockIDs {
	if now == nil {
		now = time.Now
	}
	return &ClockIDs{now: now}
}

func (c *ClockIDs) Next() int64 {
	id := c.now().UnixMilli()
	if id <= c.last {
		id = c.last + 1
	}
	c.last = id
	return id
}

func (c *ClockIDs) Observe(id int64) {
	if id > c.last {
		c.last = id
	}
}
