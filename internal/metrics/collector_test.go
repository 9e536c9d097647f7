package metrics

import (
	"sync"
	"testing"
	"time"
)

func TestCollector_Record(t *testing.T) {
	c := NewCollector()

	c.Record("tools/call", 10*time.Millisecond, false)
	c.Record("tools/call", 30*time.Millisecond, true)
	c.Record("tools/list", 5*time.Millisecond, false)

	snap := c.Snapshot()

	call, ok := snap.Methods["tools/call"]
	if !ok {
		t.Fatal("expected tools/call metrics")
	}
	if call.Count != 2 {
		t.Errorf("Count = %d, want 2", call.Count)
	}
	if call.Errors != 1 {
		t.Errorf("Errors = %d, want 1", call.Errors)
	}
	if call.MinTimeMs != 10 {
		t.Errorf("MinTimeMs = %d, want 10", call.MinTimeMs)
	}
	if call.MaxTimeMs != 30 {
		t.Errorf("MaxTimeMs = %d, want 30", call.MaxTimeMs)
	}
	if call.AvgTimeMs != 20 {
		t.Errorf("AvgTimeMs = %f, want 20", call.AvgTimeMs)
	}

	list, ok := snap.Methods["tools/list"]
	if !ok {
		t.Fatal("expected tools/list metrics")
	}
	if list.Count != 1 || list.Errors != 0 {
		t.Errorf("list = %+v", list)
	}
}

func TestCollector_EmptySnapshot(t *testing.T) {
	c := NewCollector()

	snap := c.Snapshot()
	if snap.Methods != nil {
		t.Errorf("expected nil Methods, got %v", snap.Methods)
	}
	if snap.UptimeSeconds < 0 {
		t.Errorf("negative uptime %f", snap.UptimeSeconds)
	}
}

func TestCollector_Concurrent(t *testing.T) {
	c := NewCollector()

	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 100; j++ {
				c.Record("tools/call", time.Millisecond, false)
			}
		}()
	}
	wg.Wait()

	if got := c.Snapshot().Methods["tools/call"].Count; got != 1000 {
		t.Errorf("Count = %d, want 1000", got)
	}
}
