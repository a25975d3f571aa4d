package seller

import (
	"context"
	"strings"
	"time"

	"go.uber.org/zap"
)

// Service manages seller credential records.
type Service struct {
	repo   Repository
	logger *zap.Logger
	now    func() time.Time
}

// NewService creates a new seller service.
func NewService(repo Repository, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{
		repo:   repo,
		logger: logger.Named("seller"),
		now:    time.Now,
	}
}

// Connect stores freshly granted credentials, replacing any previous record
// for the same seller. ConnectedAt is stamped here.
func (s *Service) Connect(ctx context.Context, seller *Seller) (*Seller, error) {
	seller.ID = strings.TrimSpace(seller.ID)
	if seller.ID == "" {
		return nil, ErrInvalidSellerID
	}

	now := s.now().UTC()
	seller.ConnectedAt = now
	seller.UpdatedAt = now

	if err := s.repo.Save(ctx, seller); err != nil {
		return nil, err
	}

	s.logger.Info("seller connected",
		zap.String("seller_id", seller.ID),
		zap.Bool("live_mode", seller.LiveMode))
	return seller, nil
}

// Get returns the seller or ErrSellerNotFound.
func (s *Service) Get(ctx context.Context, id string) (*Seller, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return nil, ErrSellerNotFound
	}
	return s.repo.Get(ctx, id)
}

// List returns all sellers ordered by connection time.
func (s *Service) List(ctx context.Context) ([]*Seller, error) {
	return s.repo.List(ctx)
}

// Count returns the number of connected sellers.
func (s *Service) Count(ctx context.Context) (int64, error) {
	return s.repo.Count(ctx)
}

// Disconnect removes a seller's credentials. Operator use only.
func (s *Service) Disconnect(ctx context.Context, id string) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	s.logger.Info("seller disconnected", zap.String("seller_id", id))
	return nil
}
