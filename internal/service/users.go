package service

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	"account-book/internal/apperr"
	"account-book/internal/auth"
	"account-book/internal/logging"
	"account-book/internal/models"
	"account-book/internal/repository"
	"account-book/internal/util"

	"golang.org/x/crypto/bcrypt"
)

const maxNicknameLen = 50

// TokenIssuer signs a credential for a user.
type TokenIssuer interface {
	Issue(userID uint) (string, time.Time, error)
}

// SignUpInput is the sign-up form.
type SignUpInput struct {
	Email    string
	Nickname string
	Password string
}

// ProfileInput changes the nickname and/or the password. A new password
// requires the old one.
type ProfileInput struct {
	Nickname    *string
	OldPassword string
	NewPassword string
}

// Session is the result of a successful login.
type Session struct {
	Token     string
	ExpiresAt time.Time
	User      *models.User
}

type UserService struct {
	store      *repository.Store
	issuer     TokenIssuer
	bcryptCost int
	logger     *slog.Logger
}

func NewUserService(store *repository.Store, issuer TokenIssuer, bcryptCost int, logger *slog.Logger) *UserService {
	if bcryptCost < bcrypt.MinCost || bcryptCost > bcrypt.MaxCost {
		bcryptCost = bcrypt.DefaultCost
	}
	return &UserService{
		store:      store,
		issuer:     issuer,
		bcryptCost: bcryptCost,
		logger:     logging.Component(logger, logging.ComponentAuth),
	}
}

// SignUp validates email, password and nickname in that order and creates
// the user.
func (s *UserService) SignUp(ctx context.Context, in SignUpInput) (*models.User, error) {
	email := strings.TrimSpace(in.Email)
	if email == "" {
		return nil, apperr.MissingRequired("email")
	}
	if err := util.ValidateEmail(email); err != nil {
		return nil, apperr.InvalidParameter("email", err.Error())
	}
	exists, err := s.store.EmailExists(ctx, email)
	if err != nil {
		return nil, apperr.Internal(err, "check email")
	}
	if exists {
		return nil, apperr.Duplicate("email", email)
	}

	if in.Password == "" {
		return nil, apperr.MissingRequired("password")
	}
	if err := util.ValidatePassword(in.Password); err != nil {
		return nil, apperr.InvalidParameter("password", err.Error())
	}

	nickname := strings.TrimSpace(in.Nickname)
	if nickname == "" {
		return nil, apperr.MissingRequired("nickname")
	}
	if err := s.checkNickname(ctx, nickname, 0); err != nil {
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), s.bcryptCost)
	if err != nil {
		return nil, apperr.Internal(err, "hash password")
	}

	user := &models.User{
		Email:        email,
		Nickname:     nickname,
		PasswordHash: string(hash),
		IsActive:     true,
	}
	if err := s.store.CreateUser(ctx, user); err != nil {
		return nil, apperr.Internal(err, "create user")
	}

	s.logger.Info("user signed up", logging.FieldUserID, user.ID)
	return user, nil
}

// Login checks the password and issues a credential. Unknown emails and
// wrong passwords are indistinguishable to the caller.
func (s *UserService) Login(ctx context.Context, email, password string) (*Session, error) {
	email = strings.TrimSpace(email)
	if email == "" {
		return nil, apperr.MissingRequired("email")
	}
	if password == "" {
		return nil, apperr.MissingRequired("password")
	}

	user, err := s.store.FindUserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, apperr.InvalidCredentials()
		}
		return nil, apperr.Internal(err, "find user")
	}
	if !user.IsActive || bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		s.logger.Warn("login rejected", logging.FieldUserID, user.ID)
		return nil, apperr.InvalidCredentials()
	}

	token, exp, err := s.issuer.Issue(user.ID)
	if err != nil {
		return nil, apperr.Internal(err, "issue token")
	}
	return &Session{Token: token, ExpiresAt: exp, User: user}, nil
}

// Profile returns the stored user behind ident.
func (s *UserService) Profile(ctx context.Context, ident auth.Identity) (*models.User, error) {
	user, err := s.store.FindUserByID(ctx, ident.ID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, apperr.Unauthenticated(apperr.ReasonUnknownSubject)
		}
		return nil, apperr.Internal(err, "find user")
	}
	return user, nil
}

// UpdateProfile applies a nickname and/or password change.
func (s *UserService) UpdateProfile(ctx context.Context, ident auth.Identity, in ProfileInput) (*models.User, error) {
	user, err := s.Profile(ctx, ident)
	if err != nil {
		return nil, err
	}

	fields := map[string]any{}

	if present(in.Nickname) {
		nickname := strings.TrimSpace(*in.Nickname)
		if err := s.checkNickname(ctx, nickname, user.ID); err != nil {
			return nil, err
		}
		fields["nickname"] = nickname
	}

	if in.NewPassword != "" {
		if in.OldPassword == "" {
			return nil, apperr.MissingRequired("old_password")
		}
		if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(in.OldPassword)) != nil {
			return nil, apperr.InvalidParameter("old_password", "does not match")
		}
		if err := util.ValidatePassword(in.NewPassword); err != nil {
			return nil, apperr.InvalidParameter("new_password", err.Error())
		}
		hash, err := bcrypt.GenerateFromPassword([]byte(in.NewPassword), s.bcryptCost)
		if err != nil {
			return nil, apperr.Internal(err, "hash password")
		}
		fields["password_hash"] = string(hash)
	}

	if err := s.store.UpdateUser(ctx, user, fields); err != nil {
		return nil, apperr.Internal(err, "update user")
	}
	if len(fields) > 0 {
		if v, ok := fields["nickname"].(string); ok {
			user.Nickname = v
		}
		if v, ok := fields["password_hash"].(string); ok {
			user.PasswordHash = v
		}
		s.logger.Info("profile updated", logging.FieldUserID, user.ID)
	}
	return user, nil
}

func (s *UserService) checkNickname(ctx context.Context, nickname string, exceptID uint) error {
	if err := util.ValidateName(nickname, maxNicknameLen); err != nil {
		return apperr.InvalidParameter("nickname", err.Error())
	}
	taken, err := s.store.NicknameExists(ctx, nickname, exceptID)
	if err != nil {
		return apperr.Internal(err, "check nickname")
	}
	if taken {
		return apperr.Duplicate("nickname", nickname)
	}
	return nil
}
