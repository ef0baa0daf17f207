package repository

import (
	"context"
	"fmt"

	"account-book/internal/models"
	"account-book/internal/query"

	"gorm.io/gorm/clause"
)

// FindBook loads a book with its owner, whatever its status.
func (s *Store) FindBook(ctx context.Context, id uint) (*models.AccountBook, error) {
	return first[models.AccountBook](ctx, s.db.Preload("User"), "account book", id)
}

// CreateBook inserts b and reloads it with its owner.
func (s *Store) CreateBook(ctx context.Context, b *models.AccountBook) error {
	if err := s.db.WithContext(ctx).Omit(clause.Associations).Create(b).Error; err != nil {
		return fmt.Errorf("create account book: %w", err)
	}
	return s.db.WithContext(ctx).Preload("User").First(b, b.ID).Error
}

// SaveBook writes every column of b but none of its associations.
func (s *Store) SaveBook(ctx context.Context, b *models.AccountBook) error {
	if err := s.db.WithContext(ctx).Omit(clause.Associations).Save(b).Error; err != nil {
		return fmt.Errorf("save account book %d: %w", b.ID, err)
	}
	return nil
}

// ListBooks returns every book matching pred in the given order.
func (s *Store) ListBooks(ctx context.Context, pred query.Predicate, srt query.Sort) ([]models.AccountBook, error) {
	q := s.db.WithContext(ctx).Model(&models.AccountBook{}).Preload("User")
	q = query.Books.Order(query.Apply(q, pred), srt)

	var books []models.AccountBook
	if err := q.Find(&books).Error; err != nil {
		return nil, fmt.Errorf("list account books: %w", err)
	}
	return books, nil
}
