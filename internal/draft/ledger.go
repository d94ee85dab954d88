package draft

import "sync"

// LedgerReader answers purchase-count queries
type LedgerReader interface {
	Count(optionKey string) int
}

// Ledger records how many times each option has been purchased.
// Counts never decrease.
type Ledger interface {
	LedgerReader
	Increment(optionKey string) int
	Snapshot() map[string]int
}

// MemoryLedger is an in-memory Ledger
type MemoryLedger struct {
	mu     sync.RWMutex
	counts map[string]int
}

// NewMemoryLedger creates an empty ledger
func NewMemoryLedger() *MemoryLedger {
	return &MemoryLedger{counts: make(map[string]int)}
}

// Count returns the purchase count, 0 for options never purchased
func (l *MemoryLedger) Count(optionKey string) int {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.counts[optionKey]
}

// Increment adds one purchase and returns the new count
func (l *MemoryLedger) Increment(optionKey string) int {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.counts[optionKey]++
	return l.counts[optionKey]
}

// Snapshot returns a copy of all non-zero counts
func (l *MemoryLedger) Snapshot() map[string]int {
	l.mu.RLock()
	defer l.mu.RUnlock()
	out := make(map[string]int, len(l.counts))
	for k, v := range l.counts {
		out[k] = v
	}
	return out
}
