package testkit

import (
	"sync"
	"testing"
	"time"
)

var seamMu sync.Mutex

// Swap replaces *target for the rest of the test and restores it on cleanup
func Swap[T any](t *testing.T, target *T, replacement T) {
	t.Helper()
	orig := *target
	*target = replacement
	t.Cleanup(func() { *target = orig })
}

// Serial holds a process-wide lock until the test ends, for tests that swap package seams
func Serial(t *testing.T) {
	t.Helper()
	seamMu.Lock()
	t.Cleanup(seamMu.Unlock)
}

// FreezeClock swaps a `now` seam for one that always returns at
func FreezeClock(t *testing.T, now *func() time.Time, at time.Time) {
	t.Helper()
	Swap(t, now, func() time.Time { return at })
}
