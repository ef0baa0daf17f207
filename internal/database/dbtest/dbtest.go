// Package dbtest opens migrated in-memory databases and seeds fixtures for
// store backed tests.
package dbtest

import (
	"testing"

	"account-book/internal/config"
	"account-book/internal/database"
	"account-book/internal/models"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

// Open returns a fresh migrated database closed at test cleanup.
func Open(t testing.TB) *gorm.DB {
	t.Helper()

	db, err := database.Init(config.DatabaseConfig{Path: database.MemoryPath})
	require.NoError(t, err)
	require.NoError(t, database.AutoMigrate(db))

	t.Cleanup(func() { _ = database.Close(db) })
	return db
}

// User inserts a user with a placeholder password hash.
func User(t testing.TB, db *gorm.DB, nickname string) *models.User {
	t.Helper()

	u := &models.User{
		Email:        nickname + "@example.com",
		Nickname:     nickname,
		PasswordHash: "x",
		IsActive:     true,
	}
	require.NoError(t, db.Create(u).Error)
	return u
}

// Book inserts an in-use book owned by u.
func Book(t testing.TB, db *gorm.DB, u *models.User, name string, budget int64) *models.AccountBook {
	t.Helper()

	b := &models.AccountBook{
		UserID: u.ID,
		Name:   name,
		Budget: decimal.NewFromInt(budget),
		Status: models.StatusInUse,
	}
	require.NoError(t, db.Omit("User").Create(b).Error)
	b.User = *u
	return b
}

// Category inserts an in-use category owned by u.
func Category(t testing.TB, db *gorm.DB, u *models.User, name string) *models.AccountBookCategory {
	t.Helper()

	c := &models.AccountBookCategory{
		UserID: u.ID,
		Name:   name,
		Status: models.StatusInUse,
	}
	require.NoError(t, db.Omit("User").Create(c).Error)
	c.User = *u
	return c
}

// Log inserts an in-use log in b.
func Log(t testing.TB, db *gorm.DB, b *models.AccountBook, c *models.AccountBookCategory, title string, typ models.EntryType, price int64) *models.AccountBookLog {
	t.Helper()

	l := &models.AccountBookLog{
		BookID: b.ID,
		Title:  title,
		Price:  decimal.NewFromInt(price),
		Type:   typ,
		Status: models.StatusInUse,
	}
	if c != nil {
		l.CategoryID = &c.ID
	}
	require.NoError(t, db.Omit("Book", "Category").Create(l).Error)
	l.Book = *b
	l.Category = c
	return l
}

// Delete flips a fixture to deleted directly in the table.
func Delete(t testing.TB, db *gorm.DB, model any) {
	t.Helper()
	require.NoError(t, db.Model(model).Update("status", models.StatusDeleted).Error)
}
