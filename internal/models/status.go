package models

import "strings"

// Status is the soft-delete lifecycle state shared by books, categories and logs.
type Status string

const (
	StatusInUse   Status = "in_use"
	StatusDeleted Status = "deleted"
)

// EntryType tells income and expenditure log entries apart.
type EntryType string

const (
	EntryIncome      EntryType = "income"
	EntryExpenditure EntryType = "expenditure"
)

// ParseEntryType accepts the two entry types case-insensitively.
func ParseEntryType(s string) (EntryType, bool) {
	switch EntryType(strings.ToLower(strings.TrimSpace(s))) {
	case EntryIncome:
		return EntryIncome, true
	case EntryExpenditure:
		return EntryExpenditure, true
	}
	return "", false
}

// Entity kinds, used in error messages and logs.
const (
	KindAccountBook         = "account book"
	KindAccountBookCategory = "account book category"
	KindAccountBookLog      = "account book log"
)
