// Package service implements the account book operations on behalf of an
// authenticated identity.
package service

import (
	"strings"

	"account-book/internal/models"
	"account-book/internal/query"
)

// Paging bounds list limits.
type Paging struct {
	DefaultLimit int
	MaxLimit     int
}

// ListParams are the parameters common to every list operation.
type ListParams struct {
	Search string
	Sort   string
	Status string
	Offset int
	Limit  int
}

// filters turns p into builder filters, defaulting the excluded status.
func (p ListParams) filters(ownerID uint, extra ...query.Predicate) query.Filters {
	status := strings.TrimSpace(p.Status)
	if status == "" {
		status = string(models.StatusDeleted)
	}
	return query.Filters{
		Search:  p.Search,
		OwnerID: ownerID,
		Extra:   extra,
		Status:  status,
	}
}

func (p ListParams) sortKey() string {
	if p.Sort == "" {
		return query.SortUpToDate
	}
	return p.Sort
}

func (p ListParams) page(paging Paging) query.Page {
	return query.NormalizePage(p.Offset, p.Limit, paging.DefaultLimit, paging.MaxLimit)
}

// present reports whether an optional text field carries a value.
func present(s *string) bool {
	return s != nil && strings.TrimSpace(*s) != ""
}
