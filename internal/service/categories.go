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
)

type CategoryService struct {
	store    *repository.Store
	resolver *ownership.Resolver
	paging   Paging
	logger   *slog.Logger
}

func NewCategoryService(store *repository.Store, resolver *ownership.Resolver, paging Paging, logger *slog.Logger) *CategoryService {
	return &CategoryService{
		store:    store,
		resolver: resolver,
		paging:   paging,
		logger:   logging.Component(logger, logging.ComponentBooks),
	}
}

func (s *CategoryService) List(ctx context.Context, ident auth.Identity, p ListParams) ([]models.AccountBookCategory, error) {
	srt, err := query.Categories.ResolveSort(p.sortKey())
	if err != nil {
		return nil, err
	}

	categories, err := s.store.ListCategories(ctx, query.Categories.Build(p.filters(ident.ID)), srt)
	if err != nil {
		return nil, apperr.Internal(err, "list account book categories")
	}
	return query.Paginate(categories, p.page(s.paging)), nil
}

func (s *CategoryService) Create(ctx context.Context, ident auth.Identity, name *string) (*models.AccountBookCategory, error) {
	if !present(name) {
		return nil, apperr.MissingRequired("name")
	}
	n := strings.TrimSpace(*name)
	if err := util.ValidateName(n, maxNameLen); err != nil {
		return nil, apperr.InvalidParameter("name", err.Error())
	}

	category := &models.AccountBookCategory{
		UserID: ident.ID,
		Name:   n,
		Status: models.StatusInUse,
	}
	if err := s.store.CreateCategory(ctx, category); err != nil {
		return nil, apperr.Internal(err, "create account book category")
	}
	return category, nil
}

func (s *CategoryService) Update(ctx context.Context, ident auth.Identity, id uint, name *string) (*models.AccountBookCategory, error) {
	category, err := s.resolver.Category(ctx, ident, id)
	if err != nil {
		return nil, err
	}

	if present(name) {
		n := strings.TrimSpace(*name)
		if err := util.ValidateName(n, maxNameLen); err != nil {
			return nil, apperr.InvalidParameter("name", err.Error())
		}
		category.Name = n
	}

	if err := s.store.SaveCategory(ctx, category); err != nil {
		return nil, apperr.Internal(err, "update account book category")
	}
	return category, nil
}

func (s *CategoryService) Delete(ctx context.Context, ident auth.Identity, id uint) error {
	return s.transition(ctx, ident, id, lifecycle.Delete)
}

func (s *CategoryService) Restore(ctx context.Context, ident auth.Identity, id uint) error {
	return s.transition(ctx, ident, id, lifecycle.Restore)
}

func (s *CategoryService) transition(ctx context.Context, ident auth.Identity, id uint, move transitionFunc) error {
	category, err := s.resolver.Category(ctx, ident, id)
	if err != nil {
		return err
	}
	if err := move(ctx, s.store, category); err != nil {
		return err
	}
	s.logger.Info("account book category status changed",
		logging.FieldUserID, ident.ID,
		logging.FieldEntityID, category.ID,
		"status", category.Status,
	)
	return nil
}
