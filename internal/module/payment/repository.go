package payment

import (
	"context"
	"errors"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	apperrors "github.com/Juninho21/split-de-pagamentos/internal/shared/errors"
)

// Repository defines the interface for payment record storage.
type Repository interface {
	// Create stores a newly created payment. If a reconciliation already
	// inserted the id, only the seller linkage and created-at are filled in.
	Create(ctx context.Context, p *Payment) error
	Get(ctx context.Context, id string) (*Payment, error)
	// Merge upserts p. On an existing record only status, status detail,
	// amount, fee and updated-at change; seller linkage and created-at stay.
	Merge(ctx context.Context, p *Payment) error
	List(ctx context.Context) ([]*Payment, error)
	Totals(ctx context.Context, status string) (*Totals, error)
}

var (
	// mergeColumns are the columns a reconciliation may overwrite.
	mergeColumns = []string{"status", "status_detail", "amount", "fee", "updated_at"}
	// linkColumns are the columns only creation knows.
	linkColumns = []string{"seller_id", "payer_email", "created_at"}
)

type repository struct {
	db *gorm.DB
}

// NewRepository creates a gorm-backed payment repository.
func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) Create(ctx context.Context, p *Payment) error {
	err := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "id"}},
			DoUpdates: clause.AssignmentColumns(linkColumns),
		}).
		Create(p).Error
	if err != nil {
		return apperrors.Storage("create payment", err)
	}
	return nil
}

func (r *repository) Get(ctx context.Context, id string) (*Payment, error) {
	var p Payment
	err := r.db.WithContext(ctx).First(&p, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrPaymentNotFound
		}
		return nil, apperrors.Storage("get payment", err)
	}
	return &p, nil
}

func (r *repository) Merge(ctx context.Context, p *Payment) error {
	err := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "id"}},
			DoUpdates: clause.AssignmentColumns(mergeColumns),
		}).
		Create(p).Error
	if err != nil {
		return apperrors.Storage("merge payment", err)
	}
	return nil
}

func (r *repository) List(ctx context.Context) ([]*Payment, error) {
	var payments []*Payment
	if err := r.db.WithContext(ctx).Order("created_at ASC").Find(&payments).Error; err != nil {
		return nil, apperrors.Storage("list payments", err)
	}
	return payments, nil
}

func (r *repository) Totals(ctx context.Context, status string) (*Totals, error) {
	var row struct {
		Count  int64
		Amount decimal.NullDecimal
		Fee    decimal.NullDecimal
	}
	err := r.db.WithContext(ctx).Model(&Payment{}).
		Select("COUNT(*) AS count, SUM(amount) AS amount, SUM(fee) AS fee").
		Where("status = ?", status).
		Scan(&row).Error
	if err != nil {
		return nil, apperrors.Storage("sum payments", err)
	}
	return &Totals{
		Count:  row.Count,
		Amount: row.Amount.Decimal,
		Fee:    row.Fee.Decimal,
	}, nil
}
