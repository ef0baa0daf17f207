package repository

import (
	"context"
	"fmt"

	"account-book/internal/models"
	"account-book/internal/query"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Totals sums log prices per entry type.
type Totals struct {
	Income      decimal.Decimal
	Expenditure decimal.Decimal
}

func (s *Store) FindLog(ctx context.Context, id uint) (*models.AccountBookLog, error) {
	return first[models.AccountBookLog](ctx, s.db.Preload("Book.User").Preload("Category"), "account book log", id)
}

func (s *Store) CreateLog(ctx context.Context, l *models.AccountBookLog) error {
	if err := s.db.WithContext(ctx).Omit(clause.Associations).Create(l).Error; err != nil {
		return fmt.Errorf("create account book log: %w", err)
	}
	return s.db.WithContext(ctx).Preload("Book.User").Preload("Category").First(l, l.ID).Error
}

// SaveLog writes every column of l and reloads its category, which may
// have changed.
func (s *Store) SaveLog(ctx context.Context, l *models.AccountBookLog) error {
	if err := s.db.WithContext(ctx).Omit(clause.Associations).Save(l).Error; err != nil {
		return fmt.Errorf("save account book log %d: %w", l.ID, err)
	}
	l.Category = nil
	if l.CategoryID == nil {
		return nil
	}
	var c models.AccountBookCategory
	if err := s.db.WithContext(ctx).First(&c, *l.CategoryID).Error; err != nil {
		return fmt.Errorf("reload category of log %d: %w", l.ID, err)
	}
	l.Category = &c
	return nil
}

// logScope joins the tables the log scheme filters on.
func (s *Store) logScope(ctx context.Context) *gorm.DB {
	return s.db.WithContext(ctx).Model(&models.AccountBookLog{}).
		Joins("JOIN account_books ON account_books.id = account_book_logs.book_id").
		Joins("LEFT JOIN account_book_categories ON account_book_categories.id = account_book_logs.category_id")
}

// ListLogs returns every log matching pred in the given order.
func (s *Store) ListLogs(ctx context.Context, pred query.Predicate, srt query.Sort) ([]models.AccountBookLog, error) {
	q := s.logScope(ctx).
		Select("account_book_logs.*").
		Preload("Book.User").
		Preload("Category")
	q = query.Logs.Order(query.Apply(q, pred), srt)

	var logs []models.AccountBookLog
	if err := q.Find(&logs).Error; err != nil {
		return nil, fmt.Errorf("list account book logs: %w", err)
	}
	return logs, nil
}

type typeTotal struct {
	Types models.EntryType
	Total decimal.Decimal
}

// SumLogs totals the prices of every log matching pred by entry type. An
// empty match yields zero totals.
func (s *Store) SumLogs(ctx context.Context, pred query.Predicate) (Totals, error) {
	var rows []typeTotal
	q := s.logScope(ctx).
		Select("account_book_logs.types AS types, COALESCE(SUM(account_book_logs.price), 0) AS total")
	q = query.Apply(q, pred).Group("account_book_logs.types")
	if err := q.Scan(&rows).Error; err != nil {
		return Totals{}, fmt.Errorf("sum account book logs: %w", err)
	}

	totals := Totals{Income: decimal.Zero, Expenditure: decimal.Zero}
	for _, r := range rows {
		switch r.Types {
		case models.EntryIncome:
			totals.Income = totals.Income.Add(r.Total)
		case models.EntryExpenditure:
			totals.Expenditure = totals.Expenditure.Add(r.Total)
		}
	}
	return totals, nil
}
