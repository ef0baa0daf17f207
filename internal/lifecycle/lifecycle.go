// Package lifecycle implements the soft-delete state machine shared by
// books, categories and logs. Only the status field ever changes; no row is
// removed.
package lifecycle

import (
	"context"
	"fmt"

	"account-book/internal/apperr"
	"account-book/internal/models"
)

// Entity is anything carrying a lifecycle status.
type Entity interface {
	EntityID() uint
	EntityKind() string
	CurrentStatus() models.Status
	SetStatus(models.Status)
}

// StatusWriter persists the status column of an entity and nothing else.
type StatusWriter interface {
	WriteStatus(ctx context.Context, e Entity) error
}

// Check reports whether e may move to the target status.
func Check(e Entity, to models.Status) error {
	switch to {
	case models.StatusDeleted:
		if e.CurrentStatus() == models.StatusDeleted {
			return apperr.AlreadyDeleted(e.EntityKind(), e.EntityID())
		}
	case models.StatusInUse:
		if e.CurrentStatus() == models.StatusInUse {
			return apperr.AlreadyActive(e.EntityKind(), e.EntityID())
		}
	default:
		return apperr.InvalidParameter("status", fmt.Sprintf("unknown status %q", to))
	}
	return nil
}

// Delete marks e deleted.
func Delete(ctx context.Context, w StatusWriter, e Entity) error {
	return transition(ctx, w, e, models.StatusDeleted)
}

// Restore marks e in use again.
func Restore(ctx context.Context, w StatusWriter, e Entity) error {
	return transition(ctx, w, e, models.StatusInUse)
}

func transition(ctx context.Context, w StatusWriter, e Entity, to models.Status) error {
	if err := Check(e, to); err != nil {
		return err
	}

	prev := e.CurrentStatus()
	e.SetStatus(to)
	if err := w.WriteStatus(ctx, e); err != nil {
		e.SetStatus(prev)
		return apperr.Internal(err, fmt.Sprintf("update %s %d status", e.EntityKind(), e.EntityID()))
	}
	return nil
}
