// Package provenance keeps the append-only trail of operations applied to
// described data. Every validation, remap and bookkeeping step lands here
// with a timestamp, so a column's history can be replayed or exported.
package provenance

import (
	"sync"
	"time"

	"github.com/google/uuid"
)

// Category classifies a log entry.
type Category string

const (
	CategoryPass    Category = "pass"
	CategoryError   Category = "error"
	CategoryDrop    Category = "drop"
	CategoryReplace Category = "replace"
	CategoryRecord  Category = "record"
	CategoryUpdate  Category = "update"
)

// Entry is one recorded operation. Entries are never edited or removed.
type Entry struct {
	ID        string
	Timestamp time.Time
	Column    string
	Command   string
	Category  Category
	Detail    string
}

// Record renders the entry as a flat string map for export.
func (e Entry) Record() map[string]string {
	return map[string]string{
		"id":        e.ID,
		"timestamp": e.Timestamp.Format(time.RFC3339Nano),
		"column":    e.Column,
		"command":   e.Command,
		"category":  string(e.Category),
		"detail":    e.Detail,
	}
}

// Log is an append-only sequence of entries in application order.
type Log struct {
	mu      sync.RWMutex
	clock   Clock
	entries []Entry
}

func NewLog() *Log {
	return &Log{clock: Real{}}
}

// WithClock swaps the timestamp source, meant for deterministic tests.
func (l *Log) WithClock(c Clock) *Log {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.clock = c
	return l
}

// Append records one operation and returns the stored entry.
func (l *Log) Append(column, command string, category Category, detail string) Entry {
	l.mu.Lock()
	defer l.mu.Unlock()
	e := Entry{
		ID:        uuid.New().String(),
		Timestamp: l.clock.Now(),
		Column:    column,
		Command:   command,
		Category:  category,
		Detail:    detail,
	}
	l.entries = append(l.entries, e)
	return e
}

// Copy appends an already built entry from another log, keeping its
// timestamp and id. Used when a column's history is folded into a
// dictionary-level trail.
func (l *Log) Copy(e Entry) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.entries = append(l.entries, e)
}

func (l *Log) Len() int {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return len(l.entries)
}

// Entries returns a copy of the trail in application order.
func (l *Log) Entries() []Entry {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return append([]Entry(nil), l.entries...)
}

// Last returns the most recent entry, ok is false on an empty log.
func (l *Log) Last() (Entry, bool) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	if len(l.entries) == 0 {
		return Entry{}, false
	}
	return l.entries[len(l.entries)-1], true
}

// Records renders the whole trail as flat maps for export.
func (l *Log) Records() []map[string]string {
	l.mu.RLock()
	defer l.mu.RUnlock()
	out := make([]map[string]string, len(l.entries))
	for i, e := range l.entries {
		out[i] = e.Record()
	}
	return out
}
