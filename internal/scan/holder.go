package scan

import (
	"sync"
	"sync/atomic"
	"time"

	"github.com/seshatlabs/seshat/internal/parser"
)

// Snapshot is one completed scan: the full catalog plus the
// warnings it produced. Snapshots are never mutated after Store.
type Snapshot struct {
	Sessions  []parser.Session
	Warnings  []Warning
	ScannedAt time.Time
}

// Holder publishes the most recent Snapshot. A reader always sees
// a complete catalog, either the previous scan's or the new one;
// the swap itself is a single pointer store.
type Holder struct {
	current atomic.Pointer[Snapshot]
}

// Load returns the current snapshot, or nil before the first scan
// completes.
func (h *Holder) Load() *Snapshot {
	return h.current.Load()
}

// Store publishes a snapshot.
func (h *Holder) Store(snap *Snapshot) {
	h.current.Store(snap)
}

// Refresher runs scans serially and publishes each result. A
// refresh requested while one is running waits its turn, so the
// holder always ends up with the most recent completed scan.
type Refresher struct {
	scanner *Scanner
	holder  Holder
	mu      sync.Mutex // serializes scans
}

func NewRefresher(scanner *Scanner) *Refresher {
	return &Refresher{scanner: scanner}
}

// Holder returns the holder refreshes publish to.
func (r *Refresher) Holder() *Holder {
	return &r.holder
}

// Refresh runs one scan and publishes its snapshot.
func (r *Refresher) Refresh() *Snapshot {
	r.mu.Lock()
	defer r.mu.Unlock()

	sessions, warnings := r.scanner.Scan()
	snap := &Snapshot{
		Sessions:  sessions,
		Warnings:  warnings,
		ScannedAt: time.Now(),
	}
	r.holder.Store(snap)
	return snap
}
