// Package merger provides a lease-counting flow.RasterThreadMerger.
//
// It tracks the merge state an embedder asks for without moving any work
// between threads, which is all the demo and tests need.
package merger

import (
	"log/slog"
	"sync"

	"github.com/gogpu/flow"
)

// LeaseMerger merges on request and unmerges once its lease of frames has
// been used up by DecrementLease. It is safe for concurrent use.
type LeaseMerger struct {
	mu     sync.Mutex
	merged bool
	lease  int
	log    *slog.Logger

	// Counters for tests and diagnostics.
	merges, extends int
}

var _ flow.RasterThreadMerger = (*LeaseMerger)(nil)

// New returns an unmerged LeaseMerger.
func New() *LeaseMerger {
	return &LeaseMerger{log: flow.Logger()}
}

// IsMerged implements flow.RasterThreadMerger.
func (m *LeaseMerger) IsMerged() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.merged
}

// MergeWithLease implements flow.RasterThreadMerger.
// Merging while merged only extends the lease.
func (m *LeaseMerger) MergeWithLease(leaseTerm int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.merges++
	if !m.merged {
		m.log.Info("merger: threads merged", "lease", leaseTerm)
		m.merged = true
		m.lease = leaseTerm
		return
	}
	m.lease = max(m.lease, leaseTerm)
}

// ExtendLeaseTo implements flow.RasterThreadMerger.
// It has no effect while unmerged.
func (m *LeaseMerger) ExtendLeaseTo(leaseTerm int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.extends++
	if m.merged {
		m.lease = max(m.lease, leaseTerm)
	}
}

// DecrementLease consumes one frame of the lease and unmerges when it runs
// out. It returns true if this call unmerged the threads.
func (m *LeaseMerger) DecrementLease() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	if !m.merged {
		return false
	}
	m.lease--
	if m.lease > 0 {
		return false
	}
	m.merged = false
	m.lease = 0
	m.log.Info("merger: threads unmerged")
	return true
}

// Lease returns the remaining lease in frames.
func (m *LeaseMerger) Lease() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.lease
}

// Stats returns how often MergeWithLease and ExtendLeaseTo were called.
func (m *LeaseMerger) Stats() (merges, extends int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.merges, m.extends
}
