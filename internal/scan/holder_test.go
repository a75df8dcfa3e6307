package scan

import (
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/seshatlabs/seshat/internal/testjsonl"
)

func TestHolderEmptyBeforeFirstStore(t *testing.T) {
	var h Holder
	if snap := h.Load(); snap != nil {
		t.Fatalf("Load before Store = %+v, want nil", snap)
	}
}

func TestHolderStoreThenLoad(t *testing.T) {
	var h Holder
	snap := &Snapshot{ScannedAt: time.Now()}
	h.Store(snap)

	if got := h.Load(); got != snap {
		t.Fatalf("Load = %p, want the stored snapshot %p", got, snap)
	}
}

func TestRefresherPublishesSnapshot(t *testing.T) {
	dir := t.TempDir()
	writeTranscript(t, dir, "s.jsonl",
		testjsonl.SessionMetaJSON("r-1", "/work", "2025-06-01T10:00:00Z"))

	r := NewRefresher(NewScanner([]string{dir}, 0))
	if r.Holder().Load() != nil {
		t.Fatal("holder should be empty before the first refresh")
	}

	snap := r.Refresh()
	if snap == nil {
		t.Fatal("Refresh returned nil")
	}
	if got := r.Holder().Load(); got != snap {
		t.Fatalf("holder has %p, want the refreshed snapshot %p", got, snap)
	}
	if len(snap.Sessions) != 1 || snap.Sessions[0].ID != "r-1" {
		t.Fatalf("unexpected sessions: %+v", snap.Sessions)
	}
	if snap.ScannedAt.IsZero() {
		t.Fatal("ScannedAt not set")
	}
}

// Concurrent refreshes may interleave with readers in any order,
// but a reader must never observe nil once the first snapshot is
// published.
func TestRefresherConcurrentAccess(t *testing.T) {
	dir := t.TempDir()
	writeTranscript(t, dir, "s.jsonl",
		testjsonl.SessionMetaJSON("r-2", "/work", "2025-06-01T10:00:00Z"))

	r := NewRefresher(NewScanner([]string{dir}, 2))
	r.Refresh()

	stopReads := make(chan struct{})
	var sawNil atomic.Bool
	var readers sync.WaitGroup
	for range 4 {
		readers.Go(func() {
			for {
				select {
				case <-stopReads:
					return
				default:
				}
				if r.Holder().Load() == nil {
					sawNil.Store(true)
					return
				}
			}
		})
	}

	var refreshes sync.WaitGroup
	for range 4 {
		refreshes.Go(func() {
			r.Refresh()
		})
	}
	refreshes.Wait()
	close(stopReads)
	readers.Wait()

	if sawNil.Load() {
		t.Fatal("reader observed nil snapshot after first refresh")
	}
}
