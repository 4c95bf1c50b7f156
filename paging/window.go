package paging

import (
	"iter"
	"slices"
	"strconv"
)

// PageNumber is an element of an ellipsized page sequence: either a 1-based
// page number or Gap.
type PageNumber int

// Gap marks one or more omitted page numbers.
const Gap PageNumber = 0

// IsGap reports whether n is the gap marker.
func (n PageNumber) IsGap() bool {
	return n == Gap
}

// Int returns n as an int. Gap is 0.
func (n PageNumber) Int() int {
	return int(n)
}

func (n PageNumber) String() string {
	if n.IsGap() {
		return "…"
	}
	return strconv.Itoa(int(n))
}

// MarshalJSON encodes Gap as null and page numbers as integers.
func (n PageNumber) MarshalJSON() ([]byte, error) {
	if n.IsGap() {
		return []byte("null"), nil
	}
	return strconv.AppendInt(nil, int64(n), 10), nil
}

// Window controls how many pages IterPageNumbers shows at each edge and on
// each side of the current page.
type Window struct {
	OnEdges    int
	OnEachSide int
}

// DefaultWindow shows two pages at each edge and three around the current page.
var DefaultWindow = Window{OnEdges: 2, OnEachSide: 3}

// IterPageNumbers lazily yields a compact navigation sequence for totalPages
// pages: the first w.OnEdges pages, a window of 2*w.OnEachSide+1 pages around
// current and the last w.OnEdges pages. A single Gap is yielded wherever pages
// are skipped; adjacent or overlapping runs are merged.
//
// Page numbers are strictly increasing and Gap never appears first, last or
// twice in a row. A current outside [1, totalPages] is clipped into that range.
// totalPages <= 0 yields nothing.
func IterPageNumbers(current, totalPages int, w Window) iter.Seq[PageNumber] {
	return func(yield func(PageNumber) bool) {
		if totalPages <= 0 {
			return
		}
		onEdges := max(w.OnEdges, 0)
		onEachSide := max(w.OnEachSide, 0)
		cur := min(max(current, 1), totalPages)

		pagesEnd := totalPages + 1

		leftEnd := min(1+onEdges, pagesEnd)
		if !yieldRange(yield, 1, leftEnd) {
			return
		}
		if leftEnd == pagesEnd {
			return
		}

		midStart := max(leftEnd, cur-onEachSide)
		midEnd := max(min(cur+onEachSide+1, pagesEnd), midStart)

		if midStart > leftEnd && leftEnd > 1 {
			if !yield(Gap) {
				return
			}
		}
		if !yieldRange(yield, midStart, midEnd) {
			return
		}
		if midEnd == pagesEnd {
			return
		}

		rightStart := max(midEnd, pagesEnd-onEdges)
		if rightStart == pagesEnd {
			return
		}
		if rightStart > midEnd {
			if !yield(Gap) {
				return
			}
		}
		yieldRange(yield, rightStart, pagesEnd)
	}
}

// PageNumbers collects IterPageNumbers into a slice.
func PageNumbers(current, totalPages int, w Window) []PageNumber {
	return slices.Collect(IterPageNumbers(current, totalPages, w))
}

func yieldRange(yield func(PageNumber) bool, start, end int) bool {
	for n := start; n < end; n++ {
		if !yield(PageNumber(n)) {
			return false
		}
	}
	return true
}
