package repository

import (
	"context"
	"fmt"

	"account-book/internal/models"
)

func (s *Store) FindUserByID(ctx context.Context, id uint) (*models.User, error) {
	return first[models.User](ctx, s.db, "user", id)
}

func (s *Store) FindUserByEmail(ctx context.Context, email string) (*models.User, error) {
	return first[models.User](ctx, s.db, "user", "email = ?", email)
}

// EmailExists reports whether any user holds email.
func (s *Store) EmailExists(ctx context.Context, email string) (bool, error) {
	return s.exists(ctx, "email = ?", email)
}

// NicknameExists reports whether a user other than exceptID holds nickname.
func (s *Store) NicknameExists(ctx context.Context, nickname string, exceptID uint) (bool, error) {
	return s.exists(ctx, "nickname = ? AND id <> ?", nickname, exceptID)
}

func (s *Store) exists(ctx context.Context, cond string, args ...any) (bool, error) {
	var count int64
	if err := s.db.WithContext(ctx).Model(&models.User{}).Where(cond, args...).Count(&count).Error; err != nil {
		return false, fmt.Errorf("count users: %w", err)
	}
	return count > 0, nil
}

func (s *Store) CreateUser(ctx context.Context, u *models.User) error {
	if err := s.db.WithContext(ctx).Create(u).Error; err != nil {
		return fmt.Errorf("create user: %w", err)
	}
	return nil
}

// UpdateUser writes the given columns of u.
func (s *Store) UpdateUser(ctx context.Context, u *models.User, fields map[string]any) error {
	if len(fields) == 0 {
		return nil
	}
	if err := s.db.WithContext(ctx).Model(u).Updates(fields).Error; err != nil {
		return fmt.Errorf("update user %d: %w", u.ID, err)
	}
	return nil
}
