package query

import (
	"fmt"
	"sort"
	"strings"

	"account-book/internal/apperr"
)

// Sort is a resolved ordering.
type Sort struct {
	Column string
	Desc   bool
}

// OrderBy renders the ordering; ties fall back to tiebreak ascending so
// equal keys keep insertion order.
func (s Sort) OrderBy(tiebreak string) string {
	dir := "ASC"
	if s.Desc {
		dir = "DESC"
	}
	if tiebreak == "" || tiebreak == s.Column {
		return fmt.Sprintf("%s %s", s.Column, dir)
	}
	return fmt.Sprintf("%s %s, %s ASC", s.Column, dir, tiebreak)
}

// Filters are the caller supplied list parameters that shape the predicate.
type Filters struct {
	// Search is OR-matched against every text column of the scheme.
	Search string
	// OwnerID restricts rows to one user; zero means no identity.
	OwnerID uint
	// Extra clauses are AND-ed after ownership.
	Extra []Predicate
	// Status rows are excluded. Callers default it to "deleted".
	Status string
}

// Scheme is the per-entity configuration of the filter builder.
type Scheme struct {
	TextColumns  []string
	OwnerColumn  string
	StatusColumn string
	IDColumn     string
	Sorts        map[string]Sort
}

// Build composes the list predicate with a fixed precedence: the search
// OR-group, then ownership, then the extra clauses, then status exclusion.
func (s Scheme) Build(f Filters) Predicate {
	var p Predicate

	if term := strings.TrimSpace(f.Search); term != "" {
		matches := make([]Predicate, 0, len(s.TextColumns))
		for _, col := range s.TextColumns {
			matches = append(matches, TextMatch(col, term))
		}
		p = Or(matches...)
	}
	if f.OwnerID != 0 {
		p = And(p, Equals(s.OwnerColumn, f.OwnerID))
	}
	for _, extra := range f.Extra {
		p = And(p, extra)
	}
	return And(p, Exclude(s.StatusColumn, f.Status))
}

// ResolveSort maps an enumerated sort key onto its ordering.
func (s Scheme) ResolveSort(key string) (Sort, error) {
	srt, ok := s.Sorts[key]
	if !ok {
		keys := make([]string, 0, len(s.Sorts))
		for k := range s.Sorts {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		return Sort{}, apperr.InvalidParameter("sort", fmt.Sprintf("%q is not one of %s", key, strings.Join(keys, ", ")))
	}
	return srt, nil
}

// Sort keys.
const (
	SortUpToDate   = "up_to_date"
	SortOutOfDate  = "out_of_date"
	SortHighBudget = "high_budget"
	SortLowBudget  = "low_budget"
	SortHighPrice  = "high_price"
	SortLowPrice   = "low_price"
)

// Books lists account books.
var Books = Scheme{
	TextColumns:  []string{"account_books.name"},
	OwnerColumn:  "account_books.user_id",
	StatusColumn: "account_books.status",
	IDColumn:     "account_books.id",
	Sorts: map[string]Sort{
		SortUpToDate:   {Column: "account_books.created_at", Desc: true},
		SortOutOfDate:  {Column: "account_books.created_at"},
		SortHighBudget: {Column: "account_books.budget", Desc: true},
		SortLowBudget:  {Column: "account_books.budget"},
	},
}

// Categories lists account book categories.
var Categories = Scheme{
	TextColumns:  []string{"account_book_categories.name"},
	OwnerColumn:  "account_book_categories.user_id",
	StatusColumn: "account_book_categories.status",
	IDColumn:     "account_book_categories.id",
	Sorts: map[string]Sort{
		SortUpToDate:  {Column: "account_book_categories.created_at", Desc: true},
		SortOutOfDate: {Column: "account_book_categories.created_at"},
	},
}

// Logs lists account book logs. It expects account_books and
// account_book_categories to be joined in.
var Logs = Scheme{
	TextColumns: []string{
		"account_book_logs.title",
		"account_book_logs.description",
		"account_book_categories.name",
	},
	OwnerColumn:  "account_books.user_id",
	StatusColumn: "account_book_logs.status",
	IDColumn:     "account_book_logs.id",
	Sorts: map[string]Sort{
		SortUpToDate:  {Column: "account_book_logs.created_at", Desc: true},
		SortOutOfDate: {Column: "account_book_logs.created_at"},
		SortHighPrice: {Column: "account_book_logs.price", Desc: true},
		SortLowPrice:  {Column: "account_book_logs.price"},
	},
}

// Log specific columns used for the extra clauses.
const (
	LogBookColumn     = "account_book_logs.book_id"
	LogCategoryColumn = "account_book_logs.category_id"
	LogTypeColumn     = "account_book_logs.types"
)
