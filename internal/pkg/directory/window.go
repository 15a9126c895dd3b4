package directory

// pageWindow is the fold state of the fallback pagination: the running total
// and how much of the requested window is still unserved while walking tier
// groups from highest to lowest priority. Values in, values out; one window
// never outlives its request.
type pageWindow struct {
	total           int64
	remainingOffset int
	remainingLimit  int
}

// fetchWindow is the slice of one group the store should actually read.
type fetchWindow struct {
	Offset int
	Limit  int
}

func newPageWindow(offset, limit int) pageWindow {
	return pageWindow{remainingOffset: offset, remainingLimit: limit}
}

// advance folds one group's row count into the window and decides whether a
// slice of that group belongs on the page. The count always lands in total,
// the fold keeps advancing through every group after the page is full so the
// total never depends on which page was asked for. When the remaining offset
// swallows the whole group there is nothing to fetch and the offset shrinks
// by the group size.
func (w pageWindow) advance(groupCount int64) (pageWindow, fetchWindow, bool) {
	w.total += groupCount

	if int64(w.remainingOffset) >= groupCount {
		w.remainingOffset -= int(groupCount)

		return w, fetchWindow{}, false
	}

	if w.remainingLimit <= 0 {
		return w, fetchWindow{}, false
	}

	return w, fetchWindow{Offset: w.remainingOffset, Limit: w.remainingLimit}, true
}

// fill credits rows that actually came back from a fetch. Short reads happen
// when rows vanish between the count and the fetch; only delivered rows
// shrink the limit. Any fetch lands inside the group, so the offset is spent
// either way.
func (w pageWindow) fill(fetched int) pageWindow {
	w.remainingOffset = 0
	w.remainingLimit -= fetched
	if w.remainingLimit < 0 {
		w.remainingLimit = 0
	}

	return w
}
