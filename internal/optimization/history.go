package optimization

import "sync"

// HistoryStore records completed optimization runs. Implementations
// must be safe for concurrent appenders and readers; the session never
// serializes access on the caller's behalf.
type HistoryStore interface {
	Append(result *OptimizationResult)
	Snapshot() []*OptimizationResult
	Len() int
}

// RingHistory is a bounded, mutex-guarded history store. Once the
// capacity is reached the oldest record is evicted, keeping memory use
// flat over the process lifetime.
type RingHistory struct {
	mu      sync.RWMutex
	records []*OptimizationResult
	start   int
	count   int
}

// NewRingHistory creates a history store holding at most capacity
// records. Non-positive capacities fall back to a single slot.
func NewRingHistory(capacity int) *RingHistory {
	if capacity < 1 {
		capacity = 1
	}
	return &RingHistory{
		records: make([]*OptimizationResult, capacity),
	}
}

// Append records a result, evicting the oldest entry when full.
func (h *RingHistory) Append(result *OptimizationResult) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.count < len(h.records) {
		h.records[(h.start+h.count)%len(h.records)] = result
		h.count++
		return
	}
	h.records[h.start] = result
	h.start = (h.start + 1) % len(h.records)
}

// Snapshot returns the stored records oldest-first. The returned slice
// is a copy and safe to retain.
func (h *RingHistory) Snapshot() []*OptimizationResult {
	h.mu.RLock()
	defer h.mu.RUnlock()

	out := make([]*OptimizationResult, h.count)
	for i := 0; i < h.count; i++ {
		out[i] = h.records[(h.start+i)%len(h.records)]
	}
	return out
}

// Len returns the number of stored records.
func (h *RingHistory) Len() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.count
}
