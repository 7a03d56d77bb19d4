// Package history keeps a bounded, in-process record of past rolls,
// keyed by request ID, so a REPL's HISTORY verb and the HTTP façade's
// GET /roll/{request_id} endpoint can look a result back up after the
// fact. It is grounded on server/dao/inmem's map-of-UUID style, simplified
// down to a single fixed-capacity log guarded by a mutex: there is no
// persistence layer in this system (spec.md's non-goals exclude one), so
// "bounded and in memory" is the whole contract.
package history

import (
	"sync"
	"time"

	"github.com/google/uuid"
)

// DefaultCapacity is how many Records a Log retains by default before it
// starts evicting the oldest entry on each Add.
const DefaultCapacity = 200

// Record is one completed roll, enough to redisplay or re-examine later.
type Record struct {
	ID       uuid.UUID
	Input    string
	Value    int64
	Trace    string
	RngCount int64
	Created  time.Time
}

// Log is a bounded, thread-safe store of Records in insertion order.
type Log struct {
	mu       sync.Mutex
	capacity int
	order    []uuid.UUID
	byID     map[uuid.UUID]Record
}

// New creates a Log that retains at most capacity Records. A capacity <= 0
// is treated as DefaultCapacity.
func New(capacity int) *Log {
	if capacity <= 0 {
		capacity = DefaultCapacity
	}
	return &Log{
		capacity: capacity,
		byID:     make(map[uuid.UUID]Record),
	}
}

// Add records a completed roll and returns the new Record, including the ID
// assigned to it. When the
// log is at capacity, the oldest Record is evicted first.
func (l *Log) Add(input string, value int64, trace string, rngCount int64) Record {
	l.mu.Lock()
	defer l.mu.Unlock()

	rec := Record{
		ID:       uuid.New(),
		Input:    input,
		Value:    value,
		Trace:    trace,
		RngCount: rngCount,
		Created:  time.Now(),
	}

	if len(l.order) >= l.capacity {
		oldest := l.order[0]
		l.order = l.order[1:]
		delete(l.byID, oldest)
	}
	l.order = append(l.order, rec.ID)
	l.byID[rec.ID] = rec

	return rec
}

// Get looks up a Record by ID. ok is false if it was never recorded or has
// since been evicted.
func (l *Log) Get(id uuid.UUID) (Record, bool) {
	l.mu.Lock()
	defer l.mu.Unlock()

	rec, ok := l.byID[id]
	return rec, ok
}

// Recent returns up to n of the most recently added Records, newest first.
// A negative or zero n returns nil.
func (l *Log) Recent(n int) []Record {
	l.mu.Lock()
	defer l.mu.Unlock()

	if n <= 0 || len(l.order) == 0 {
		return nil
	}
	if n > len(l.order) {
		n = len(l.order)
	}

	out := make([]Record, n)
	for i := 0; i < n; i++ {
		id := l.order[len(l.order)-1-i]
		out[i] = l.byID[id]
	}
	return out
}
