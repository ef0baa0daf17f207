package repository

import (
	"context"
	"fmt"

	"account-book/internal/models"
	"account-book/internal/query"

	"gorm.io/gorm/clause"
)

func (s *Store) FindCategory(ctx context.Context, id uint) (*models.AccountBookCategory, error) {
	return first[models.AccountBookCategory](ctx, s.db.Preload("User"), "account book category", id)
}

func (s *Store) CreateCategory(ctx context.Context, c *models.AccountBookCategory) error {
	if err := s.db.WithContext(ctx).Omit(clause.Associations).Create(c).Error; err != nil {
		return fmt.Errorf("create account book category: %w", err)
	}
	return s.db.WithContext(ctx).Preload("User").First(c, c.ID).Error
}

func (s *Store) SaveCategory(ctx context.Context, c *models.AccountBookCategory) error {
	if err := s.db.WithContext(ctx).Omit(clause.Associations).Save(c).Error; err != nil {
		return fmt.Errorf("save account book category %d: %w", c.ID, err)
	}
	return nil
}

func (s *Store) ListCategories(ctx context.Context, pred query.Predicate, srt query.Sort) ([]models.AccountBookCategory, error) {
	q := s.db.WithContext(ctx).Model(&models.AccountBookCategory{}).Preload("User")
	q = query.Categories.Order(query.Apply(q, pred), srt)

	var categories []models.AccountBookCategory
	if err := q.Find(&categories).Error; err != nil {
		return nil, fmt.Errorf("list account book categories: %w", err)
	}
	return categories, nil
}
