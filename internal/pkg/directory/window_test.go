package directory

import "testing"

func TestPageWindowAdvance(t *testing.T) {
	tests := []struct {
		name       string
		offset     int
		limit      int
		group      int64
		wantTotal  int64
		wantOffset int
		wantLimit  int
		wantFetch  bool
		fetchOff   int
		fetchLim   int
	}{
		{name: "offset swallows whole group", offset: 5, limit: 4, group: 3, wantTotal: 3, wantOffset: 2, wantLimit: 4, wantFetch: false},
		{name: "offset equals group size", offset: 3, limit: 4, group: 3, wantTotal: 3, wantOffset: 0, wantLimit: 4, wantFetch: false},
		{name: "window starts inside group", offset: 2, limit: 4, group: 5, wantTotal: 5, wantOffset: 2, wantLimit: 4, wantFetch: true, fetchOff: 2, fetchLim: 4},
		{name: "window starts at group head", offset: 0, limit: 4, group: 9, wantTotal: 9, wantOffset: 0, wantLimit: 4, wantFetch: true, fetchOff: 0, fetchLim: 4},
		{name: "full page keeps counting", offset: 0, limit: 0, group: 7, wantTotal: 7, wantOffset: 0, wantLimit: 0, wantFetch: false},
		{name: "empty group changes nothing", offset: 0, limit: 4, group: 0, wantTotal: 0, wantOffset: 0, wantLimit: 4, wantFetch: false},
	}

	for _, tt := range tests {
		w := newPageWindow(tt.offset, tt.limit)
		next, fetch, ok := w.advance(tt.group)

		if next.total != tt.wantTotal {
			t.Fatalf("%s: total = %d, want %d", tt.name, next.total, tt.wantTotal)
		}
		if next.remainingOffset != tt.wantOffset {
			t.Fatalf("%s: remainingOffset = %d, want %d", tt.name, next.remainingOffset, tt.wantOffset)
		}
		if next.remainingLimit != tt.wantLimit {
			t.Fatalf("%s: remainingLimit = %d, want %d", tt.name, next.remainingLimit, tt.wantLimit)
		}
		if ok != tt.wantFetch {
			t.Fatalf("%s: fetch wanted = %v, want %v", tt.name, ok, tt.wantFetch)
		}
		if ok && (fetch.Offset != tt.fetchOff || fetch.Limit != tt.fetchLim) {
			t.Fatalf("%s: fetch = %+v, want offset %d limit %d", tt.name, fetch, tt.fetchOff, tt.fetchLim)
		}
	}
}

func TestPageWindowFill(t *testing.T) {
	w := newPageWindow(2, 4)
	w, fetch, ok := w.advance(10)
	if !ok || fetch.Offset != 2 || fetch.Limit != 4 {
		t.Fatalf("unexpected fetch window: %+v ok=%v", fetch, ok)
	}

	w = w.fill(4)
	if w.remainingOffset != 0 || w.remainingLimit != 0 {
		t.Fatalf("after full fill: offset %d limit %d, want 0/0", w.remainingOffset, w.remainingLimit)
	}

	// a short read keeps the window open for the next group
	w = newPageWindow(0, 4)
	w, _, _ = w.advance(3)
	w = w.fill(2)
	if w.remainingLimit != 2 {
		t.Fatalf("short read should leave limit 2, got %d", w.remainingLimit)
	}

	// over-delivery never drives the limit negative
	w = newPageWindow(0, 1).fill(5)
	if w.remainingLimit != 0 {
		t.Fatalf("over-delivery should clamp limit to 0, got %d", w.remainingLimit)
	}
}

func TestPageWindowSecondPageWalk(t *testing.T) {
	// groups of 3, 2 and 5 rows, requesting page 2 with limit 4
	w := newPageWindow(4, 4)

	w, _, ok := w.advance(3)
	if ok {
		t.Fatalf("first group must be swallowed by the offset")
	}
	if w.remainingOffset != 1 {
		t.Fatalf("remainingOffset = %d, want 1", w.remainingOffset)
	}

	w, fetch, ok := w.advance(2)
	if !ok || fetch.Offset != 1 || fetch.Limit != 4 {
		t.Fatalf("second group fetch = %+v ok=%v, want offset 1 limit 4", fetch, ok)
	}
	w = w.fill(1)

	w, fetch, ok = w.advance(5)
	if !ok || fetch.Offset != 0 || fetch.Limit != 3 {
		t.Fatalf("third group fetch = %+v ok=%v, want offset 0 limit 3", fetch, ok)
	}
	w = w.fill(3)

	if w.total != 10 {
		t.Fatalf("total = %d, want 10", w.total)
	}
	if w.remainingLimit != 0 {
		t.Fatalf("page should be full, remainingLimit = %d", w.remainingLimit)
	}
}
