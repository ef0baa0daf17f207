package service

import (
	"context"
	"fmt"
	"log/slog"
	"strconv"
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

const maxDescriptionLen = 255

// LogInput carries the fields of a log write. Zero ids and nil pointers
// mean absent.
type LogInput struct {
	BookID      uint
	CategoryID  uint
	Title       *string
	Types       *string
	Price       *decimal.Decimal
	Description *string
}

// LogFilters are the log specific list parameters.
type LogFilters struct {
	BookID uint
	// CategoryIDs is a comma separated id list.
	CategoryIDs string
	Types       string
}

// LogPage is one page of a book's logs plus totals over every match.
type LogPage struct {
	Book             *models.AccountBook
	TotalIncome      decimal.Decimal
	TotalExpenditure decimal.Decimal
	Logs             []models.AccountBookLog
}

type LogService struct {
	store    *repository.Store
	resolver *ownership.Resolver
	paging   Paging
	logger   *slog.Logger
}

func NewLogService(store *repository.Store, resolver *ownership.Resolver, paging Paging, logger *slog.Logger) *LogService {
	return &LogService{
		store:    store,
		resolver: resolver,
		paging:   paging,
		logger:   logging.Component(logger, logging.ComponentLogs),
	}
}

// List returns one page of a book's logs. Totals are computed before
// pagination so they cover the whole filtered set.
func (s *LogService) List(ctx context.Context, ident auth.Identity, f LogFilters, p ListParams) (*LogPage, error) {
	if f.BookID == 0 {
		return nil, apperr.MissingParameter("book_id")
	}
	book, err := s.resolver.Book(ctx, ident, f.BookID)
	if err != nil {
		return nil, err
	}

	srt, err := query.Logs.ResolveSort(p.sortKey())
	if err != nil {
		return nil, err
	}

	extra := []query.Predicate{query.Equals(query.LogBookColumn, book.ID)}
	if strings.TrimSpace(f.CategoryIDs) != "" {
		ids, err := parseIDList(f.CategoryIDs)
		if err != nil {
			return nil, err
		}
		if len(ids) > 0 {
			extra = append(extra, query.In(query.LogCategoryColumn, ids...))
		}
	}
	if types := strings.TrimSpace(f.Types); types != "" {
		extra = append(extra, query.EqualsFold(query.LogTypeColumn, types))
	}
	pred := query.Logs.Build(p.filters(ident.ID, extra...))

	logs, err := s.store.ListLogs(ctx, pred, srt)
	if err != nil {
		return nil, apperr.Internal(err, "list account book logs")
	}
	totals, err := s.store.SumLogs(ctx, pred)
	if err != nil {
		return nil, apperr.Internal(err, "sum account book logs")
	}

	return &LogPage{
		Book:             book,
		TotalIncome:      totals.Income,
		TotalExpenditure: totals.Expenditure,
		Logs:             query.Paginate(logs, p.page(s.paging)),
	}, nil
}

// Create checks the required fields in order, resolves the book and the
// category independently and stores the log.
func (s *LogService) Create(ctx context.Context, ident auth.Identity, in LogInput) (*models.AccountBookLog, error) {
	if in.BookID == 0 {
		return nil, apperr.MissingRequired("book_id")
	}
	if in.CategoryID == 0 {
		return nil, apperr.MissingRequired("category_id")
	}
	if !present(in.Title) {
		return nil, apperr.MissingRequired("title")
	}
	if !present(in.Types) {
		return nil, apperr.MissingRequired("types")
	}
	if in.Price == nil {
		return nil, apperr.MissingRequired("price")
	}
	if !present(in.Description) {
		return nil, apperr.MissingRequired("description")
	}

	log := &models.AccountBookLog{Status: models.StatusInUse}
	if err := applyLogFields(log, in); err != nil {
		return nil, err
	}

	book, err := s.resolver.Book(ctx, ident, in.BookID)
	if err != nil {
		return nil, err
	}
	category, err := s.resolver.Category(ctx, ident, in.CategoryID)
	if err != nil {
		return nil, err
	}
	log.BookID = book.ID
	log.CategoryID = &category.ID

	if err := s.store.CreateLog(ctx, log); err != nil {
		return nil, apperr.Internal(err, "create account book log")
	}

	s.logger.Info("account book log created", logging.FieldUserID, ident.ID, logging.FieldEntityID, log.ID)
	return log, nil
}

// Update resolves book, category and log in that order, then applies the
// supplied fields and replaces the category.
func (s *LogService) Update(ctx context.Context, ident auth.Identity, id uint, in LogInput) (*models.AccountBookLog, error) {
	if in.BookID == 0 {
		return nil, apperr.MissingRequired("book_id")
	}
	if in.CategoryID == 0 {
		return nil, apperr.MissingRequired("category_id")
	}

	book, err := s.resolver.Book(ctx, ident, in.BookID)
	if err != nil {
		return nil, err
	}
	category, err := s.resolver.Category(ctx, ident, in.CategoryID)
	if err != nil {
		return nil, err
	}
	log, err := s.resolver.Log(ctx, ident, id, book)
	if err != nil {
		return nil, err
	}

	if err := applyLogFields(log, in); err != nil {
		return nil, err
	}
	log.CategoryID = &category.ID

	if err := s.store.SaveLog(ctx, log); err != nil {
		return nil, apperr.Internal(err, "update account book log")
	}
	return log, nil
}

// Delete requires the parent book id so membership can be checked.
func (s *LogService) Delete(ctx context.Context, ident auth.Identity, bookID, id uint) error {
	return s.transition(ctx, ident, bookID, id, lifecycle.Delete)
}

func (s *LogService) Restore(ctx context.Context, ident auth.Identity, bookID, id uint) error {
	return s.transition(ctx, ident, bookID, id, lifecycle.Restore)
}

func (s *LogService) transition(ctx context.Context, ident auth.Identity, bookID, id uint, move transitionFunc) error {
	if bookID == 0 {
		return apperr.MissingParameter("account_book_id")
	}
	book, err := s.resolver.Book(ctx, ident, bookID)
	if err != nil {
		return err
	}
	log, err := s.resolver.Log(ctx, ident, id, book)
	if err != nil {
		return err
	}
	if err := move(ctx, s.store, log); err != nil {
		return err
	}
	s.logger.Info("account book log status changed",
		logging.FieldUserID, ident.ID,
		logging.FieldEntityID, log.ID,
		"status", log.Status,
	)
	return nil
}

// applyLogFields copies every supplied field of in onto log.
func applyLogFields(log *models.AccountBookLog, in LogInput) error {
	if present(in.Title) {
		title := strings.TrimSpace(*in.Title)
		if err := util.ValidateName(title, maxNameLen); err != nil {
			return apperr.InvalidParameter("title", err.Error())
		}
		log.Title = title
	}
	if present(in.Types) {
		t, ok := models.ParseEntryType(*in.Types)
		if !ok {
			return apperr.InvalidParameter("types", fmt.Sprintf("%q is not income or expenditure", *in.Types))
		}
		log.Type = t
	}
	if in.Price != nil {
		if err := util.ValidateAmount(*in.Price); err != nil {
			return apperr.InvalidParameter("price", err.Error())
		}
		log.Price = *in.Price
	}
	if present(in.Description) {
		desc := strings.TrimSpace(*in.Description)
		if len([]rune(desc)) > maxDescriptionLen {
			return apperr.InvalidParameter("description", fmt.Sprintf("longer than %d characters", maxDescriptionLen))
		}
		log.Description = desc
	}
	return nil
}

func parseIDList(s string) ([]uint, error) {
	var ids []uint
	for _, part := range strings.Split(s, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		id, err := strconv.ParseUint(part, 10, 64)
		if err != nil {
			return nil, apperr.InvalidParameter("category_id", fmt.Sprintf("%q is not an id", part))
		}
		ids = append(ids, uint(id))
	}
	return ids, nil
}
