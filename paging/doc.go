// Package paging implements counted offset/limit pagination over any ordered
// data source, plus the ellipsized page-number sequence used to render
// navigation controls.
//
// A caller supplies a Source that can count its rows and fetch a bounded slice
// of them, the requested page number and a Config. Paginate counts, validates
// the page against the computed page total, fetches exactly the rows of that
// page and returns a Page value:
//
//	src := gormsource.New[Article](db.Order("id DESC"))
//	page, err := paging.Paginate(ctx, src, 3, paging.DefaultConfig())
//	if errors.Is(err, paging.ErrOutOfRange) {
//		// surface as "not found"
//	}
//	for item := range page.All() {
//		...
//	}
//	for n := range page.IterPages() {
//		if n.IsGap() {
//			// render "…"
//		}
//	}
//
// Raw page input from a transport (query string, CLI flag) is converted with
// ParsePage, which reports a RequestFormatError for non-integer input. The
// engine itself only ever receives integers.
package paging
