// Package repository is the gorm backed store for users, account books,
// categories, logs and audit records.
package repository

import (
	"context"
	"errors"
	"fmt"

	"account-book/internal/lifecycle"

	"gorm.io/gorm"
)

// ErrNotFound is returned when a lookup by id or key matches no row.
var ErrNotFound = errors.New("record not found")

// Store wraps the database handle.
type Store struct {
	db *gorm.DB
}

func New(db *gorm.DB) *Store {
	return &Store{db: db}
}

// DB exposes the handle for migrations and tests.
func (s *Store) DB() *gorm.DB {
	return s.db
}

func first[T any](ctx context.Context, db *gorm.DB, what string, conds ...any) (*T, error) {
	var out T
	if err := db.WithContext(ctx).First(&out, conds...).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("find %s: %w", what, err)
	}
	return &out, nil
}

// WriteStatus updates only the status column of e.
func (s *Store) WriteStatus(ctx context.Context, e lifecycle.Entity) error {
	res := s.db.WithContext(ctx).Model(e).Update("status", e.CurrentStatus())
	if res.Error != nil {
		return fmt.Errorf("write %s %d status: %w", e.EntityKind(), e.EntityID(), res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}
