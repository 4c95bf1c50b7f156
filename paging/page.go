package paging

import (
	"iter"
	"slices"
)

// Page is one bounded slice of a larger ordered result set together with the
// metadata describing its position. It is built eagerly by Paginate and holds
// no reference to the Source it came from.
//
// PrevNum and NextNum are plain arithmetic neighbours of Page and may fall
// outside [1, Pages]; use HasPrev and HasNext to test validity.
type Page[T any] struct {
	Page    int
	PerPage int
	Total   int
	Pages   int
	Items   []T
	First   int
	Last    int
	PrevNum int
	NextNum int
}

// HasPrev reports whether a previous page exists.
func (p *Page[T]) HasPrev() bool {
	return p.PrevNum >= 1
}

// HasNext reports whether a next page exists.
func (p *Page[T]) HasNext() bool {
	return p.NextNum <= p.Pages
}

// All yields the fetched items in order. Ranging over it again yields the same
// items; nothing is re-fetched.
func (p *Page[T]) All() iter.Seq[T] {
	return slices.Values(p.Items)
}

// IterPages yields the ellipsized navigation sequence for this page using
// DefaultWindow.
func (p *Page[T]) IterPages() iter.Seq[PageNumber] {
	return IterPageNumbers(p.Page, p.Pages, DefaultWindow)
}

// Meta is a render-ready summary of a Page without its items.
type Meta struct {
	Page    int          `json:"page"`
	PerPage int          `json:"per_page"`
	Total   int          `json:"total"`
	Pages   int          `json:"pages"`
	First   int          `json:"first"`
	Last    int          `json:"last"`
	PrevNum int          `json:"prev_num"`
	NextNum int          `json:"next_num"`
	HasPrev bool         `json:"has_prev"`
	HasNext bool         `json:"has_next"`
	Nav     []PageNumber `json:"nav"`
}

// Meta collects the page metadata and its navigation sequence.
func (p *Page[T]) Meta() Meta {
	nav := slices.Collect(p.IterPages())
	if nav == nil {
		nav = []PageNumber{}
	}
	return Meta{
		Page:    p.Page,
		PerPage: p.PerPage,
		Total:   p.Total,
		Pages:   p.Pages,
		First:   p.First,
		Last:    p.Last,
		PrevNum: p.PrevNum,
		NextNum: p.NextNum,
		HasPrev: p.HasPrev(),
		HasNext: p.HasNext(),
		Nav:     nav,
	}
}
