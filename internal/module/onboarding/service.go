package onboarding

import (
	"context"
	"errors"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/Juninho21/split-de-pagamentos/internal/module/onboarding/oauth"
	"github.com/Juninho21/split-de-pagamentos/internal/module/seller"
	"github.com/Juninho21/split-de-pagamentos/internal/shared/events"
	"github.com/Juninho21/split-de-pagamentos/internal/shared/metrics"
)

// Provider is the OAuth side of onboarding.
type Provider interface {
	AuthURL() string
	Exchange(ctx context.Context, code string) (*oauth.Grant, error)
}

// SellerStore persists granted credentials.
type SellerStore interface {
	Connect(ctx context.Context, s *seller.Seller) (*seller.Seller, error)
}

// Service drives seller onboarding.
type Service struct {
	provider Provider
	sellers  SellerStore
	bus      *events.Bus
	metrics  *metrics.Metrics
	logger   *zap.Logger
}

// NewService creates a new onboarding service.
func NewService(provider Provider, sellers SellerStore, bus *events.Bus, m *metrics.Metrics, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{
		provider: provider,
		sellers:  sellers,
		bus:      bus,
		metrics:  m,
		logger:   logger.Named("onboarding"),
	}
}

// AuthorizationURL returns the URL a seller opens to grant access.
func (s *Service) AuthorizationURL() string {
	return s.provider.AuthURL()
}

// CompleteAuthorization exchanges code for credentials and stores them.
// Nothing is written unless the exchange succeeds.
func (s *Service) CompleteAuthorization(ctx context.Context, code string) (*seller.Seller, error) {
	code = strings.TrimSpace(code)
	if code == "" {
		s.record("missing_code")
		return nil, ErrMissingCode
	}

	grant, err := s.provider.Exchange(ctx, code)
	if err != nil {
		s.record("exchange_failed")
		detail := err.Error()
		var ex *oauth.ExchangeError
		if errors.As(err, &ex) {
			detail = ex.Detail()
		}
		s.logger.Warn("oauth exchange failed", zap.String("detail", detail))
		return nil, ErrOAuthExchange.WithDetails(detail).Wrap(err)
	}

	connected, err := s.sellers.Connect(ctx, &seller.Seller{
		ID:           grant.SellerID,
		AccessToken:  grant.AccessToken,
		RefreshToken: grant.RefreshToken,
		PublicKey:    grant.PublicKey,
		Scope:        grant.Scope,
		LiveMode:     grant.LiveMode,
		ExpiresAt:    expiry(grant),
	})
	if err != nil {
		s.record("storage_failed")
		s.logger.Error("store seller credentials", zap.String("seller_id", grant.SellerID), zap.Error(err))
		return nil, err
	}

	s.record("connected")
	if s.bus != nil {
		s.bus.Publish(events.NewSellerConnectedEvent(connected.ID, connected.LiveMode))
	}
	return connected, nil
}

func (s *Service) record(result string) {
	if s.metrics != nil {
		s.metrics.RecordOnboarding(result)
	}
}

func expiry(g *oauth.Grant) *time.Time {
	if g.Expiry.IsZero() {
		return nil
	}
	t := g.Expiry.UTC()
	return &t
}
