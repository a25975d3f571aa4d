package report

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/Juninho21/split-de-pagamentos/internal/module/payment"
)

// SellerCounter counts connected sellers.
type SellerCounter interface {
	Count(ctx context.Context) (int64, error)
}

// PaymentTotals sums stored payments by status.
type PaymentTotals interface {
	Totals(ctx context.Context, status string) (*payment.Totals, error)
}

// Stats is the marketplace summary. It is recomputed on every call.
type Stats struct {
	TotalSellers     int64
	ApprovedPayments int64
	TotalAmount      decimal.Decimal
	TotalFees        decimal.Decimal
}

// Service derives read-only statistics.
type Service struct {
	sellers  SellerCounter
	payments PaymentTotals
}

// NewService creates a new report service.
func NewService(sellers SellerCounter, payments PaymentTotals) *Service {
	return &Service{sellers: sellers, payments: payments}
}

// Stats counts every seller and sums amount and fee over approved payments.
func (s *Service) Stats(ctx context.Context) (*Stats, error) {
	count, err := s.sellers.Count(ctx)
	if err != nil {
		return nil, err
	}
	totals, err := s.payments.Totals(ctx, payment.StatusApproved)
	if err != nil {
		return nil, err
	}
	return &Stats{
		TotalSellers:     count,
		ApprovedPayments: totals.Count,
		TotalAmount:      totals.Amount,
		TotalFees:        totals.Fee,
	}, nil
}
