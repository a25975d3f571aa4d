package admin

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

const (
	minPasswordLength = 6
	// bcrypt only hashes the first 72 bytes and rejects longer input.
	maxPasswordBytes = 72
)

// validate applies the rules gin's binding uses, so the CLI and HTTP paths
// accept the same addresses.
var validate = validator.New()

// CreateInput describes a new admin account.
type CreateInput struct {
	Email       string
	Password    string
	DisplayName string
}

// Session is an issued login token.
type Session struct {
	Token     string
	ExpiresAt time.Time
	User      *User
}

// Service manages admin accounts and sessions.
type Service struct {
	repo       Repository
	jwt        *JWTManager
	logger     *zap.Logger
	bcryptCost int
	now        func() time.Time
}

// NewService creates a new admin service. jwt may be nil when login is unused.
func NewService(repo Repository, jwt *JWTManager, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{
		repo:       repo,
		jwt:        jwt,
		logger:     logger.Named("admin"),
		bcryptCost: bcrypt.DefaultCost,
		now:        time.Now,
	}
}

// Create registers a new admin account.
func (s *Service) Create(ctx context.Context, in CreateInput) (*User, error) {
	email, err := normalizeEmail(in.Email)
	if err != nil {
		return nil, err
	}
	if err := checkPassword(in.Password); err != nil {
		return nil, err
	}

	if _, err := s.repo.GetByEmail(ctx, email); err == nil {
		return nil, ErrEmailAlreadyExists
	} else if !errors.Is(err, ErrUserNotFound) {
		return nil, err
	}

	hash, err := s.hash(in.Password)
	if err != nil {
		return nil, err
	}

	now := s.now().UTC()
	user := &User{
		ID:           uuid.NewString(),
		Email:        email,
		DisplayName:  strings.TrimSpace(in.DisplayName),
		PasswordHash: hash,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := s.repo.Create(ctx, user); err != nil {
		return nil, err
	}

	s.logger.Info("admin user created", zap.String("uid", user.ID), zap.String("email", user.Email))
	return user, nil
}

// Upsert creates the account or resets its password and display name.
// It reports whether a new account was created.
func (s *Service) Upsert(ctx context.Context, in CreateInput) (*User, bool, error) {
	email, err := normalizeEmail(in.Email)
	if err != nil {
		return nil, false, err
	}

	existing, err := s.repo.GetByEmail(ctx, email)
	if errors.Is(err, ErrUserNotFound) {
		user, err := s.Create(ctx, in)
		return user, err == nil, err
	}
	if err != nil {
		return nil, false, err
	}

	if err := checkPassword(in.Password); err != nil {
		return nil, false, err
	}
	hash, err := s.hash(in.Password)
	if err != nil {
		return nil, false, err
	}
	existing.PasswordHash = hash
	if name := strings.TrimSpace(in.DisplayName); name != "" {
		existing.DisplayName = name
	}
	existing.UpdatedAt = s.now().UTC()
	if err := s.repo.Update(ctx, existing); err != nil {
		return nil, false, err
	}

	s.logger.Info("admin user updated", zap.String("uid", existing.ID))
	return existing, false, nil
}

// List returns all admin accounts.
func (s *Service) List(ctx context.Context) ([]*User, error) {
	return s.repo.List(ctx)
}

// Delete removes an admin account.
func (s *Service) Delete(ctx context.Context, uid string) error {
	if err := s.repo.Delete(ctx, strings.TrimSpace(uid)); err != nil {
		return err
	}
	s.logger.Info("admin user deleted", zap.String("uid", uid))
	return nil
}

// Login checks credentials and issues a session token.
func (s *Service) Login(ctx context.Context, email, password string) (*Session, error) {
	if s.jwt == nil {
		return nil, errors.New("admin login not configured")
	}

	user, err := s.repo.GetByEmail(ctx, strings.ToLower(strings.TrimSpace(email)))
	if err != nil {
		if errors.Is(err, ErrUserNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		s.logger.Warn("admin login rejected", zap.String("uid", user.ID))
		return nil, ErrInvalidCredentials
	}

	token, expiresAt, err := s.jwt.GenerateAccessToken(user)
	if err != nil {
		return nil, err
	}

	now := s.now().UTC()
	user.LastSignInAt = &now
	user.UpdatedAt = now
	if err := s.repo.Update(ctx, user); err != nil {
		s.logger.Warn("record admin sign-in", zap.String("uid", user.ID), zap.Error(err))
	}

	return &Session{Token: token, ExpiresAt: expiresAt, User: user}, nil
}

func (s *Service) hash(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), s.bcryptCost)
	if err != nil {
		return "", fmt.Errorf("hash password: %w", err)
	}
	return string(hash), nil
}

func checkPassword(password string) error {
	if utf8.RuneCountInString(password) < minPasswordLength {
		return ErrPasswordTooShort
	}
	if len(password) > maxPasswordBytes {
		return ErrPasswordTooLong
	}
	return nil
}

func normalizeEmail(email string) (string, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if err := validate.Var(email, "required,email"); err != nil {
		return "", ErrInvalidEmail
	}
	return email, nil
}
