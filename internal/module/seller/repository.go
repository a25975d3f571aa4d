package seller

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/Juninho21/split-de-pagamentos/internal/shared/crypto"
	apperrors "github.com/Juninho21/split-de-pagamentos/internal/shared/errors"
)

// Repository defines the interface for seller credential storage.
type Repository interface {
	// Save inserts or fully overwrites the record keyed by seller.ID.
	Save(ctx context.Context, seller *Seller) error
	Get(ctx context.Context, id string) (*Seller, error)
	List(ctx context.Context) ([]*Seller, error)
	Count(ctx context.Context) (int64, error)
	Delete(ctx context.Context, id string) error
}

type repository struct {
	db *gorm.DB
}

// NewRepository creates a gorm-backed seller repository.
func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) Save(ctx context.Context, seller *Seller) error {
	err := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "id"}},
			UpdateAll: true,
		}).
		Create(seller).Error
	if err != nil {
		return apperrors.Storage("save seller", err)
	}
	return nil
}

func (r *repository) Get(ctx context.Context, id string) (*Seller, error) {
	var s Seller
	err := r.db.WithContext(ctx).First(&s, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrSellerNotFound
		}
		return nil, apperrors.Storage("get seller", err)
	}
	return &s, nil
}

func (r *repository) List(ctx context.Context) ([]*Seller, error) {
	var sellers []*Seller
	if err := r.db.WithContext(ctx).Order("connected_at ASC").Find(&sellers).Error; err != nil {
		return nil, apperrors.Storage("list sellers", err)
	}
	return sellers, nil
}

func (r *repository) Count(ctx context.Context) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&Seller{}).Count(&count).Error; err != nil {
		return 0, apperrors.Storage("count sellers", err)
	}
	return count, nil
}

func (r *repository) Delete(ctx context.Context, id string) error {
	result := r.db.WithContext(ctx).Delete(&Seller{}, "id = ?", id)
	if result.Error != nil {
		return apperrors.Storage("delete seller", result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrSellerNotFound
	}
	return nil
}

// sealedRepository encrypts tokens on the way in and decrypts them on the way out.
type sealedRepository struct {
	Repository
	sealer crypto.Sealer
}

// NewSealedRepository wraps inner so tokens are stored sealed.
func NewSealedRepository(inner Repository, sealer crypto.Sealer) Repository {
	if _, ok := sealer.(crypto.NopSealer); ok || sealer == nil {
		return inner
	}
	return &sealedRepository{Repository: inner, sealer: sealer}
}

func (r *sealedRepository) Save(ctx context.Context, seller *Seller) error {
	cp := seller.Clone()
	var err error
	if cp.AccessToken, err = r.sealer.Seal(seller.AccessToken); err != nil {
		return fmt.Errorf("seal access token: %w", err)
	}
	if cp.RefreshToken, err = r.sealer.Seal(seller.RefreshToken); err != nil {
		return fmt.Errorf("seal refresh token: %w", err)
	}
	return r.Repository.Save(ctx, cp)
}

func (r *sealedRepository) Get(ctx context.Context, id string) (*Seller, error) {
	s, err := r.Repository.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	return r.open(s)
}

func (r *sealedRepository) List(ctx context.Context) ([]*Seller, error) {
	sellers, err := r.Repository.List(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]*Seller, 0, len(sellers))
	for _, s := range sellers {
		opened, err := r.open(s)
		if err != nil {
			return nil, err
		}
		out = append(out, opened)
	}
	return out, nil
}

func (r *sealedRepository) open(s *Seller) (*Seller, error) {
	var err error
	if s.AccessToken, err = r.sealer.Open(s.AccessToken); err != nil {
		return nil, fmt.Errorf("open access token for seller %s: %w", s.ID, err)
	}
	if s.RefreshToken, err = r.sealer.Open(s.RefreshToken); err != nil {
		return nil, fmt.Errorf("open refresh token for seller %s: %w", s.ID, err)
	}
	return s, nil
}
