package provenance

import (
	"sync"
	"time"
)

// Clock supplies entry timestamps.
type Clock interface {
	Now() time.Time
}

// Real returns the actual current time.
type Real struct{}

func (Real) Now() time.Time {
	return time.Now()
}

// Fixed is a controllable clock for deterministic tests.
type Fixed struct {
	mu      sync.RWMutex
	current time.Time
}

// NewFixed creates a fixed clock set to the given time.
func NewFixed(t time.Time) *Fixed {
	return &Fixed{current: t}
}

func (f *Fixed) Now() time.Time {
	f.mu.RLock()
	defer f.mu.RUnlock()
	return f.current
}

// Set moves the clock to an absolute time.
func (f *Fixed) Set(t time.Time) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.current = t
}

// Advance moves the clock forward by d.
func (f *Fixed) Advance(d time.Duration) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.current = f.current.Add(d)
}
