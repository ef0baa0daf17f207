// Package query composes list filters as an explicit predicate tree and
// renders it to SQL for the store.
//
// Clause columns are always constants chosen by the caller's Scheme; user
// input only ever reaches a predicate as a bound value.
package query

import (
	"fmt"
	"strings"
)

// ClauseKind tags a predicate node.
type ClauseKind int

const (
	// KindEmpty matches everything. It is the zero value.
	KindEmpty ClauseKind = iota
	KindTextMatch
	KindEquals
	KindSetMembership
	KindExclude
	KindAnd
	KindOr
)

func (k ClauseKind) String() string {
	switch k {
	case KindEmpty:
		return "empty"
	case KindTextMatch:
		return "text_match"
	case KindEquals:
		return "equals"
	case KindSetMembership:
		return "set_membership"
	case KindExclude:
		return "exclude"
	case KindAnd:
		return "and"
	case KindOr:
		return "or"
	}
	return fmt.Sprintf("ClauseKind(%d)", int(k))
}

// Predicate is one node of the filter tree. Leaves use Column and Value or
// Values; And/Or nodes use Children.
type Predicate struct {
	Kind     ClauseKind
	Column   string
	Value    any
	Values   []any
	FoldCase bool
	Children []Predicate
}

// TextMatch is a case-insensitive "column contains term".
func TextMatch(column, term string) Predicate {
	return Predicate{Kind: KindTextMatch, Column: column, Value: term}
}

// Equals is an exact match.
func Equals(column string, value any) Predicate {
	return Predicate{Kind: KindEquals, Column: column, Value: value}
}

// EqualsFold is a case-insensitive exact match on a text column.
func EqualsFold(column, value string) Predicate {
	return Predicate{Kind: KindEquals, Column: column, Value: value, FoldCase: true}
}

// In matches rows whose column is one of values. An empty set matches nothing.
func In[T any](column string, values ...T) Predicate {
	vs := make([]any, len(values))
	for i, v := range values {
		vs[i] = v
	}
	return Predicate{Kind: KindSetMembership, Column: column, Values: vs}
}

// Exclude drops rows whose column equals value, ignoring case.
func Exclude(column, value string) Predicate {
	return Predicate{Kind: KindExclude, Column: column, Value: value, FoldCase: true}
}

// And combines predicates; empty operands are dropped.
func And(ps ...Predicate) Predicate {
	return combine(KindAnd, ps)
}

// Or combines predicates; empty operands are dropped.
func Or(ps ...Predicate) Predicate {
	return combine(KindOr, ps)
}

func combine(kind ClauseKind, ps []Predicate) Predicate {
	children := make([]Predicate, 0, len(ps))
	for _, p := range ps {
		if p.IsEmpty() {
			continue
		}
		if p.Kind == kind {
			children = append(children, p.Children...)
			continue
		}
		children = append(children, p)
	}
	switch len(children) {
	case 0:
		return Predicate{}
	case 1:
		return children[0]
	}
	return Predicate{Kind: kind, Children: children}
}

// IsEmpty reports whether p matches everything.
func (p Predicate) IsEmpty() bool {
	return p.Kind == KindEmpty
}

// SQL renders p as a WHERE fragment with positional placeholders. An empty
// predicate renders as "".
func (p Predicate) SQL() (string, []any) {
	if p.IsEmpty() {
		return "", nil
	}
	var (
		sb   strings.Builder
		args []any
	)
	p.render(&sb, &args)
	return sb.String(), args
}

func (p Predicate) render(sb *strings.Builder, args *[]any) {
	switch p.Kind {
	case KindTextMatch:
		fmt.Fprintf(sb, `LOWER(%s) LIKE ? ESCAPE '\'`, p.Column)
		*args = append(*args, "%"+escapeLike(strings.ToLower(fmt.Sprint(p.Value)))+"%")
	case KindEquals:
		if p.FoldCase {
			fmt.Fprintf(sb, "LOWER(%s) = LOWER(?)", p.Column)
		} else {
			fmt.Fprintf(sb, "%s = ?", p.Column)
		}
		*args = append(*args, p.Value)
	case KindSetMembership:
		if len(p.Values) == 0 {
			sb.WriteString("1 = 0")
			return
		}
		fmt.Fprintf(sb, "%s IN (%s)", p.Column, strings.TrimSuffix(strings.Repeat("?, ", len(p.Values)), ", "))
		*args = append(*args, p.Values...)
	case KindExclude:
		fmt.Fprintf(sb, "NOT (LOWER(%s) = LOWER(?))", p.Column)
		*args = append(*args, p.Value)
	case KindAnd, KindOr:
		sep := " AND "
		if p.Kind == KindOr {
			sep = " OR "
		}
		sb.WriteByte('(')
		for i, c := range p.Children {
			if i > 0 {
				sb.WriteString(sep)
			}
			c.render(sb, args)
		}
		sb.WriteByte(')')
	default:
		sb.WriteString("1 = 1")
	}
}

func escapeLike(s string) string {
	r := strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)
	return r.Replace(s)
}
