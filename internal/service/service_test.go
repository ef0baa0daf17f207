package service

import (
	"testing"
	"time"

	"account-book/internal/auth"
	"account-book/internal/database/dbtest"
	"account-book/internal/logging"
	"account-book/internal/models"
	"account-book/internal/ownership"
	"account-book/internal/repository"

	"github.com/shopspring/decimal"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type env struct {
	db         *gorm.DB
	store      *repository.Store
	books      *BookService
	categories *CategoryService
	logs       *LogService
	users      *UserService
	audit      *AuditService
}

type stubIssuer struct{}

func (stubIssuer) Issue(userID uint) (string, time.Time, error) {
	return "token-for-user", time.Date(2030, 1, 1, 0, 0, 0, 0, time.UTC), nil
}

func newEnv(t *testing.T) *env {
	t.Helper()

	db := dbtest.Open(t)
	store := repository.New(db)
	logger := logging.Discard()
	resolver := ownership.NewResolver(store, logger)
	paging := Paging{DefaultLimit: 10, MaxLimit: 100}

	return &env{
		db:         db,
		store:      store,
		books:      NewBookService(store, resolver, paging, logger),
		categories: NewCategoryService(store, resolver, paging, logger),
		logs:       NewLogService(store, resolver, paging, logger),
		users:      NewUserService(store, stubIssuer{}, bcrypt.MinCost, logger),
		audit:      NewAuditService(store, "audit-key", paging, logger),
	}
}

func identityOf(u *models.User) auth.Identity {
	return auth.Identity{ID: u.ID, Nickname: u.Nickname}
}

func str(s string) *string { return &s }

func amount(v int64) *decimal.Decimal {
	d := decimal.NewFromInt(v)
	return &d
}

func names(books []models.AccountBook) []string {
	out := make([]string, 0, len(books))
	for _, b := range books {
		out = append(out, b.Name)
	}
	return out
}
