// Package biztime is the single source of "now" for the domain layer.
// All timestamps are stored and transported in UTC.
package biztime

import (
	"sync"
	"time"
)

var (
	clockMu sync.RWMutex
	clock   = time.Now
)

// NowUTC returns the current time in UTC.
func NowUTC() time.Time {
	clockMu.RLock()
	defer clockMu.RUnlock()
	return clock().UTC()
}

// SetClock replaces the clock and returns a function restoring the previous one.
// Intended for tests.
func SetClock(fn func() time.Time) (restore func()) {
	clockMu.Lock()
	prev := clock
	clock = fn
	clockMu.Unlock()

	return func() {
		clockMu.Lock()
		clock = prev
		clockMu.Unlock()
	}
}

// ToUTC converts a time (any timezone) to UTC, keeping zero values zero.
func ToUTC(t time.Time) time.Time {
	if t.IsZero() {
		return t
	}
	return t.UTC()
}
