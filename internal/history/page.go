package history

import "github.com/sharewarp/timetrack/internal/store"

// DefaultPageSize is the number of records shown per history page.
const DefaultPageSize = 10

// Page is one fixed-size, 1-indexed slice of the sorted history.
type Page struct {
	Number     int
	TotalPages int
	Records    []store.Record
}

// TotalPages returns ceil(count/size) for a non-empty history and 0 for
// an empty one.
func TotalPages(count, size int) int {
	if count <= 0 || size <= 0 {
		return 0
	}
	return (count + size - 1) / size
}

// Paginate slices one page out of records. The requested page number is
// clamped to the valid range; page 1 of an empty history is an empty page.
func Paginate(records []store.Record, pageNumber, size int) Page {
	total := TotalPages(len(records), size)

	if pageNumber < 1 {
		pageNumber = 1
	}
	if total > 0 && pageNumber > total {
		pageNumber = total
	}

	lo := (pageNumber - 1) * size
	hi := lo + size
	if lo > len(records) {
		lo = len(records)
	}
	if hi > len(records) {
		hi = len(records)
	}

	return Page{Number: pageNumber, TotalPages: total, Records: records[lo:hi]}
}

// Pager tracks the current page across refreshes. Whenever the record
// count changes the page snaps back to 1 so it can never point past the
// new last page.
type Pager struct {
	size      int
	page      int
	lastCount int
}

// NewPager creates a pager starting on page 1. A non-positive size falls
// back to DefaultPageSize.
func NewPager(size int) *Pager {
	if size <= 0 {
		size = DefaultPageSize
	}
	return &Pager{size: size, page: 1, lastCount: -1}
}

// SetPage requests a page; the value is clamped when the page is built.
func (p *Pager) SetPage(n int) {
	if n < 1 {
		n = 1
	}
	p.page = n
}

// Current builds the page for the given records, resetting to page 1 when
// the record count has changed since the last call.
func (p *Pager) Current(records []store.Record) Page {
	if len(records) != p.lastCount {
		p.page = 1
		p.lastCount = len(records)
	}
	return Paginate(records, p.page, p.size)
}
