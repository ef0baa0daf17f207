// Package ownership loads entities on behalf of an identity, refusing those
// that belong to someone else.
package ownership

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"account-book/internal/apperr"
	"account-book/internal/auth"
	"account-book/internal/logging"
	"account-book/internal/models"
	"account-book/internal/repository"
)

// Finder loads entities regardless of status. Missing rows are reported
// with repository.ErrNotFound.
type Finder interface {
	FindBook(ctx context.Context, id uint) (*models.AccountBook, error)
	FindCategory(ctx context.Context, id uint) (*models.AccountBookCategory, error)
	FindLog(ctx context.Context, id uint) (*models.AccountBookLog, error)
}

type owned interface {
	OwnerNickname() string
}

// Resolver applies the ownership rules. Entities are returned whatever
// their lifecycle status; that is the lifecycle's business.
type Resolver struct {
	finder Finder
	logger *slog.Logger
}

func NewResolver(finder Finder, logger *slog.Logger) *Resolver {
	return &Resolver{finder: finder, logger: logging.Component(logger, logging.ComponentSecurity)}
}

// Book returns book id if ident owns it.
func (r *Resolver) Book(ctx context.Context, ident auth.Identity, id uint) (*models.AccountBook, error) {
	return resolve(ctx, r, ident, models.KindAccountBook, id, r.finder.FindBook)
}

// Category returns category id if ident owns it.
func (r *Resolver) Category(ctx context.Context, ident auth.Identity, id uint) (*models.AccountBookCategory, error) {
	return resolve(ctx, r, ident, models.KindAccountBookCategory, id, r.finder.FindCategory)
}

// Log returns log id if ident owns its book and the log belongs to book.
// Ownership is checked before membership.
func (r *Resolver) Log(ctx context.Context, ident auth.Identity, id uint, book *models.AccountBook) (*models.AccountBookLog, error) {
	log, err := resolve(ctx, r, ident, models.KindAccountBookLog, id, r.finder.FindLog)
	if err != nil {
		return nil, err
	}
	if log.BookID != book.ID {
		return nil, apperr.NotInParent(log.ID, book.ID)
	}
	return log, nil
}

func resolve[T owned](ctx context.Context, r *Resolver, ident auth.Identity, kind string, id uint, find func(context.Context, uint) (T, error)) (T, error) {
	var zero T

	e, err := find(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return zero, apperr.NotFound(kind, id)
		}
		return zero, apperr.Internal(err, fmt.Sprintf("load %s %d", kind, id))
	}

	if e.OwnerNickname() != ident.Nickname {
		r.logger.Warn("ownership denied",
			logging.FieldUserID, ident.ID,
			logging.FieldKind, kind,
			logging.FieldEntityID, id,
		)
		return zero, apperr.Forbidden(kind)
	}
	return e, nil
}
