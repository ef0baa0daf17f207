package repository

import (
	"context"
	"fmt"

	"account-book/internal/models"

	"gorm.io/gorm"
)

func (s *Store) CreateAuditLog(ctx context.Context, a *models.AuditLog) error {
	if err := s.db.WithContext(ctx).Create(a).Error; err != nil {
		return fmt.Errorf("create audit log: %w", err)
	}
	return nil
}

// ListAuditLogs returns a page of userID's audit records, newest first, and
// the total count.
func (s *Store) ListAuditLogs(ctx context.Context, userID uint, offset, limit int) ([]models.AuditLog, int64, error) {
	scope := func() *gorm.DB {
		return s.db.WithContext(ctx).Model(&models.AuditLog{}).Where("user_id = ?", userID)
	}

	var total int64
	if err := scope().Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("count audit logs: %w", err)
	}

	var logs []models.AuditLog
	if err := scope().Order("created_at DESC, id DESC").Offset(offset).Limit(limit).Find(&logs).Error; err != nil {
		return nil, 0, fmt.Errorf("list audit logs: %w", err)
	}
	return logs, total, nil
}
