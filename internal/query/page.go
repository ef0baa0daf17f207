package query

// Page is an offset/limit window.
type Page struct {
	Offset int
	Limit  int
}

// NormalizePage applies the list defaults: a negative offset becomes 0, a
// non-positive limit becomes def, and limits above max are capped.
func NormalizePage(offset, limit, def, max int) Page {
	if offset < 0 {
		offset = 0
	}
	if limit <= 0 {
		limit = def
	}
	if max > 0 && limit > max {
		limit = max
	}
	return Page{Offset: offset, Limit: limit}
}

// Paginate slices an already filtered and sorted result.
func Paginate[T any](items []T, p Page) []T {
	if p.Offset >= len(items) {
		return []T{}
	}
	end := len(items)
	if p.Limit >= 0 && p.Offset+p.Limit < end {
		end = p.Offset + p.Limit
	}
	return items[p.Offset:end]
}
