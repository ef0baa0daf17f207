package service

import (
	"context"
	"log/slog"
	"strings"

	"account-book/internal/apperr"
	"account-book/internal/auth"
	"account-book/internal/lifecycle"
	"account-book/internal/logging"
	"account-book/internal/models"
	"account-book/internal/ownership"
	"account-book/internal/query"
	"account-book/internal/repository"
	"account-book/internal/util"

	"github.com/shopspring/decimal"
)

const maxNameLen = 200

// BookInput carries the writable fields of a book; nil means absent.
type BookInput struct {
	Name   *string
	Budget *decimal.Decimal
}

type BookService struct {
	store    *repository.Store
	resolver *ownership.Resolver
	paging   Paging
	logger   *slog.Logger
}

func NewBookService(store *repository.Store, resolver *ownership.Resolver, paging Paging, logger *slog.Logger) *BookService {
	return &BookService{
		store:    store,
		resolver: resolver,
		paging:   paging,
		logger:   logging.Component(logger, logging.ComponentBooks),
	}
}

// List returns one page of ident's books.
func (s *BookService) List(ctx context.Context, ident auth.Identity, p ListParams) ([]models.AccountBook, error) {
	srt, err := query.Books.ResolveSort(p.sortKey())
	if err != nil {
		return nil, err
	}

	books, err := s.store.ListBooks(ctx, query.Books.Build(p.filters(ident.ID)), srt)
	if err != nil {
		return nil, apperr.Internal(err, "list account books")
	}
	return query.Paginate(books, p.page(s.paging)), nil
}

// Create validates name then budget and stores a new in-use book.
func (s *BookService) Create(ctx context.Context, ident auth.Identity, in BookInput) (*models.AccountBook, error) {
	if !present(in.Name) {
		return nil, apperr.MissingRequired("name")
	}
	name := strings.TrimSpace(*in.Name)
	if err := util.ValidateName(name, maxNameLen); err != nil {
		return nil, apperr.InvalidParameter("name", err.Error())
	}
	if in.Budget == nil {
		return nil, apperr.MissingRequired("budget")
	}
	if err := util.ValidateAmount(*in.Budget); err != nil {
		return nil, apperr.InvalidParameter("budget", err.Error())
	}

	book := &models.AccountBook{
		UserID: ident.ID,
		Name:   name,
		Budget: *in.Budget,
		Status: models.StatusInUse,
	}
	if err := s.store.CreateBook(ctx, book); err != nil {
		return nil, apperr.Internal(err, "create account book")
	}

	s.logger.Info("account book created", logging.FieldUserID, ident.ID, logging.FieldEntityID, book.ID)
	return book, nil
}

// Update applies the supplied fields to a book ident owns.
func (s *BookService) Update(ctx context.Context, ident auth.Identity, id uint, in BookInput) (*models.AccountBook, error) {
	book, err := s.resolver.Book(ctx, ident, id)
	if err != nil {
		return nil, err
	}

	if present(in.Name) {
		name := strings.TrimSpace(*in.Name)
		if err := util.ValidateName(name, maxNameLen); err != nil {
			return nil, apperr.InvalidParameter("name", err.Error())
		}
		book.Name = name
	}
	if in.Budget != nil {
		if err := util.ValidateAmount(*in.Budget); err != nil {
			return nil, apperr.InvalidParameter("budget", err.Error())
		}
		book.Budget = *in.Budget
	}

	if err := s.store.SaveBook(ctx, book); err != nil {
		return nil, apperr.Internal(err, "update account book")
	}
	return book, nil
}

func (s *BookService) Delete(ctx context.Context, ident auth.Identity, id uint) error {
	return s.transition(ctx, ident, id, lifecycle.Delete)
}

func (s *BookService) Restore(ctx context.Context, ident auth.Identity, id uint) error {
	return s.transition(ctx, ident, id, lifecycle.Restore)
}

func (s *BookService) transition(ctx context.Context, ident auth.Identity, id uint, move transitionFunc) error {
	book, err := s.resolver.Book(ctx, ident, id)
	if err != nil {
		return err
	}
	if err := move(ctx, s.store, book); err != nil {
		return err
	}
	s.logger.Info("account book status changed",
		logging.FieldUserID, ident.ID,
		logging.FieldEntityID, book.ID,
		"status", book.Status,
	)
	return nil
}

// Export returns a book ident owns together with its in-use logs, oldest first.
func (s *BookService) Export(ctx context.Context, ident auth.Identity, id uint) (*models.AccountBook, []models.AccountBookLog, error) {
	book, err := s.resolver.Book(ctx, ident, id)
	if err != nil {
		return nil, nil, err
	}

	pred := query.Logs.Build(ListParams{}.filters(ident.ID, query.Equals(query.LogBookColumn, book.ID)))
	logs, err := s.store.ListLogs(ctx, pred, query.Logs.Sorts[query.SortOutOfDate])
	if err != nil {
		return nil, nil, apperr.Internal(err, "list account book logs for export")
	}
	return book, logs, nil
}

type transitionFunc func(context.Context, lifecycle.StatusWriter, lifecycle.Entity) error
