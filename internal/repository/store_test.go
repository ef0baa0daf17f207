package repository

import (
	"context"
	"testing"

	"account-book/internal/database/dbtest"
	"account-book/internal/models"
	"account-book/internal/query"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFindBookPreloadsOwner(t *testing.T) {
	db := dbtest.Open(t)
	store := New(db)
	ctx := context.Background()

	alice := dbtest.User(t, db, "alice")
	book := dbtest.Book(t, db, alice, "groceries", 300)

	got, err := store.FindBook(ctx, book.ID)
	require.NoError(t, err)
	assert.Equal(t, "alice", got.OwnerNickname())
	assert.True(t, decimal.NewFromInt(300).Equal(got.Budget))

	_, err = store.FindBook(ctx, book.ID+100)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestWriteStatusTouchesOnlyStatus(t *testing.T) {
	db := dbtest.Open(t)
	store := New(db)
	ctx := context.Background()

	alice := dbtest.User(t, db, "alice")
	book := dbtest.Book(t, db, alice, "trip", 100)

	stale := *book
	stale.Name = "renamed in memory"
	stale.Status = models.StatusDeleted
	require.NoError(t, store.WriteStatus(ctx, &stale))

	got, err := store.FindBook(ctx, book.ID)
	require.NoError(t, err)
	assert.Equal(t, models.StatusDeleted, got.Status)
	assert.Equal(t, "trip", got.Name)

	missing := &models.AccountBook{ID: 999, Status: models.StatusDeleted}
	assert.ErrorIs(t, store.WriteStatus(ctx, missing), ErrNotFound)
}

func TestListBooksFiltersAndSorts(t *testing.T) {
	db := dbtest.Open(t)
	store := New(db)
	ctx := context.Background()

	alice := dbtest.User(t, db, "alice")
	bob := dbtest.User(t, db, "bob")
	dbtest.Book(t, db, alice, "Food", 200)
	dbtest.Book(t, db, alice, "Seafood", 500)
	gone := dbtest.Book(t, db, alice, "Fast food", 900)
	dbtest.Delete(t, db, gone)
	dbtest.Book(t, db, bob, "Food", 1000)

	pred := query.Books.Build(query.Filters{Search: "FOOD", OwnerID: alice.ID, Status: string(models.StatusDeleted)})
	srt, err := query.Books.ResolveSort(query.SortHighBudget)
	require.NoError(t, err)

	books, err := store.ListBooks(ctx, pred, srt)
	require.NoError(t, err)
	require.Len(t, books, 2)
	assert.Equal(t, "Seafood", books[0].Name)
	assert.Equal(t, "Food", books[1].Name)
	assert.Equal(t, "alice", books[1].User.Nickname)
}

func TestListLogsSearchesCategoryName(t *testing.T) {
	db := dbtest.Open(t)
	store := New(db)
	ctx := context.Background()

	alice := dbtest.User(t, db, "alice")
	book := dbtest.Book(t, db, alice, "daily", 0)
	dining := dbtest.Category(t, db, alice, "Dining")
	dbtest.Log(t, db, book, dining, "ramen", models.EntryExpenditure, 12)
	dbtest.Log(t, db, book, nil, "salary", models.EntryIncome, 3000)

	pred := query.Logs.Build(query.Filters{
		Search:  "dining",
		OwnerID: alice.ID,
		Extra:   []query.Predicate{query.Equals(query.LogBookColumn, book.ID)},
		Status:  string(models.StatusDeleted),
	})
	srt, err := query.Logs.ResolveSort(query.SortUpToDate)
	require.NoError(t, err)

	logs, err := store.ListLogs(ctx, pred, srt)
	require.NoError(t, err)
	require.Len(t, logs, 1)
	assert.Equal(t, "ramen", logs[0].Title)
	require.NotNil(t, logs[0].Category)
	assert.Equal(t, "Dining", logs[0].Category.Name)
	assert.Equal(t, "alice", logs[0].OwnerNickname())
}

func TestSumLogsByType(t *testing.T) {
	db := dbtest.Open(t)
	store := New(db)
	ctx := context.Background()

	alice := dbtest.User(t, db, "alice")
	book := dbtest.Book(t, db, alice, "daily", 0)
	dbtest.Log(t, db, book, nil, "salary", models.EntryIncome, 3000)
	dbtest.Log(t, db, book, nil, "bonus", models.EntryIncome, 500)
	dbtest.Log(t, db, book, nil, "rent", models.EntryExpenditure, 1200)
	gone := dbtest.Log(t, db, book, nil, "refund", models.EntryIncome, 40)
	dbtest.Delete(t, db, gone)

	pred := query.Logs.Build(query.Filters{
		OwnerID: alice.ID,
		Extra:   []query.Predicate{query.Equals(query.LogBookColumn, book.ID)},
		Status:  string(models.StatusDeleted),
	})
	totals, err := store.SumLogs(ctx, pred)
	require.NoError(t, err)
	assert.True(t, decimal.NewFromInt(3500).Equal(totals.Income), totals.Income.String())
	assert.True(t, decimal.NewFromInt(1200).Equal(totals.Expenditure), totals.Expenditure.String())

	empty := query.And(pred, query.TextMatch("account_book_logs.title", "nothing matches"))
	totals, err = store.SumLogs(ctx, empty)
	require.NoError(t, err)
	assert.True(t, totals.Income.IsZero())
	assert.True(t, totals.Expenditure.IsZero())
}

func TestUserLookups(t *testing.T) {
	db := dbtest.Open(t)
	store := New(db)
	ctx := context.Background()

	alice := dbtest.User(t, db, "alice")

	got, err := store.FindUserByEmail(ctx, "alice@example.com")
	require.NoError(t, err)
	assert.Equal(t, alice.ID, got.ID)

	exists, err := store.EmailExists(ctx, "alice@example.com")
	require.NoError(t, err)
	assert.True(t, exists)

	taken, err := store.NicknameExists(ctx, "alice", alice.ID)
	require.NoError(t, err)
	assert.False(t, taken, "own nickname is not a conflict")

	taken, err = store.NicknameExists(ctx, "alice", 0)
	require.NoError(t, err)
	assert.True(t, taken)

	require.NoError(t, store.UpdateUser(ctx, alice, map[string]any{"nickname": "ally"}))
	got, err = store.FindUserByID(ctx, alice.ID)
	require.NoError(t, err)
	assert.Equal(t, "ally", got.Nickname)
}

func TestAuditLogsPaged(t *testing.T) {
	db := dbtest.Open(t)
	store := New(db)
	ctx := context.Background()

	alice := dbtest.User(t, db, "alice")
	for i := 0; i < 3; i++ {
		require.NoError(t, store.CreateAuditLog(ctx, &models.AuditLog{UserID: alice.ID, Method: "POST", Status: 201}))
	}
	require.NoError(t, store.CreateAuditLog(ctx, &models.AuditLog{UserID: alice.ID + 1, Method: "POST", Status: 201}))

	logs, total, err := store.ListAuditLogs(ctx, alice.ID, 0, 2)
	require.NoError(t, err)
	assert.EqualValues(t, 3, total)
	assert.Len(t, logs, 2)
}
