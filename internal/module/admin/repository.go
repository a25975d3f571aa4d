package admin

import (
	"context"
	"errors"

	"gorm.io/gorm"

	apperrors "github.com/Juninho21/split-de-pagamentos/internal/shared/errors"
)

// Repository defines the interface for admin account storage.
type Repository interface {
	Create(ctx context.Context, user *User) error
	Update(ctx context.Context, user *User) error
	GetByID(ctx context.Context, id string) (*User, error)
	GetByEmail(ctx context.Context, email string) (*User, error)
	List(ctx context.Context) ([]*User, error)
	Delete(ctx context.Context, id string) error
}

type repository struct {
	db *gorm.DB
}

// NewRepository creates a gorm-backed admin repository.
func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) Create(ctx context.Context, user *User) error {
	if err := r.db.WithContext(ctx).Create(user).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return ErrEmailAlreadyExists
		}
		return apperrors.Storage("create admin user", err)
	}
	return nil
}

func (r *repository) Update(ctx context.Context, user *User) error {
	if err := r.db.WithContext(ctx).Save(user).Error; err != nil {
		return apperrors.Storage("update admin user", err)
	}
	return nil
}

func (r *repository) GetByID(ctx context.Context, id string) (*User, error) {
	return r.first(ctx, "id = ?", id)
}

func (r *repository) GetByEmail(ctx context.Context, email string) (*User, error) {
	return r.first(ctx, "email = ?", email)
}

func (r *repository) first(ctx context.Context, query string, arg any) (*User, error) {
	var u User
	if err := r.db.WithContext(ctx).First(&u, query, arg).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, apperrors.Storage("get admin user", err)
	}
	return &u, nil
}

func (r *repository) List(ctx context.Context) ([]*User, error) {
	var users []*User
	if err := r.db.WithContext(ctx).Order("created_at ASC").Find(&users).Error; err != nil {
		return nil, apperrors.Storage("list admin users", err)
	}
	return users, nil
}

func (r *repository) Delete(ctx context.Context, id string) error {
	result := r.db.WithContext(ctx).Delete(&User{}, "id = ?", id)
	if result.Error != nil {
		return apperrors.Storage("delete admin user", result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrUserNotFound
	}
	return nil
}
