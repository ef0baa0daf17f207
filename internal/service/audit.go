package service

import (
	"context"
	"log/slog"
	"time"

	"account-book/internal/apperr"
	"account-book/internal/auth"
	"account-book/internal/logging"
	"account-book/internal/models"
	"account-book/internal/query"
	"account-book/internal/repository"
	"account-book/internal/util"
)

// AuditEntry describes one finished request.
type AuditEntry struct {
	UserID    uint
	Method    string
	Path      string
	Action    string
	Status    int
	IP        string
	UserAgent string
	RequestID string
}

// AuditRecord is a decrypted audit log.
type AuditRecord struct {
	ID        uint
	Method    string
	Path      string
	Action    string
	Status    int
	IP        string
	RequestID string
	CreatedAt time.Time
}

// AuditService stores request audit records with path and action encrypted.
type AuditService struct {
	store  *repository.Store
	key    string
	paging Paging
	logger *slog.Logger
}

func NewAuditService(store *repository.Store, key string, paging Paging, logger *slog.Logger) *AuditService {
	return &AuditService{
		store:  store,
		key:    key,
		paging: paging,
		logger: logging.Component(logger, logging.ComponentSecurity),
	}
}

// Record encrypts and stores e. Failures are logged, never returned: an
// audit problem must not fail the request it describes.
func (s *AuditService) Record(ctx context.Context, e AuditEntry) {
	pathEnc, err := util.EncryptField(s.key, e.Path)
	if err != nil {
		s.logger.Error("encrypt audit path", logging.FieldError, err)
		return
	}
	actionEnc, err := util.EncryptField(s.key, e.Action)
	if err != nil {
		s.logger.Error("encrypt audit action", logging.FieldError, err)
		return
	}

	rec := &models.AuditLog{
		UserID:    e.UserID,
		PathEnc:   pathEnc,
		Method:    e.Method,
		ActionEnc: actionEnc,
		Status:    e.Status,
		IP:        e.IP,
		UserAgent: e.UserAgent,
		RequestID: e.RequestID,
	}
	if err := s.store.CreateAuditLog(ctx, rec); err != nil {
		s.logger.Error("store audit log", logging.FieldError, err, logging.FieldRequestID, e.RequestID)
	}
}

// List returns one page of ident's audit records, newest first, and the total.
func (s *AuditService) List(ctx context.Context, ident auth.Identity, offset, limit int) ([]AuditRecord, int64, error) {
	page := query.NormalizePage(offset, limit, s.paging.DefaultLimit, s.paging.MaxLimit)

	logs, total, err := s.store.ListAuditLogs(ctx, ident.ID, page.Offset, page.Limit)
	if err != nil {
		return nil, 0, apperr.Internal(err, "list audit logs")
	}

	records := make([]AuditRecord, 0, len(logs))
	for _, l := range logs {
		records = append(records, AuditRecord{
			ID:        l.ID,
			Method:    l.Method,
			Path:      util.DecryptField(s.key, l.PathEnc),
			Action:    util.DecryptField(s.key, l.ActionEnc),
			Status:    l.Status,
			IP:        l.IP,
			RequestID: l.RequestID,
			CreatedAt: l.CreatedAt,
		})
	}
	return records, total, nil
}
