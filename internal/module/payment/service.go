package payment

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/Juninho21/split-de-pagamentos/internal/module/payment/provider"
	"github.com/Juninho21/split-de-pagamentos/internal/module/seller"
	apperrors "github.com/Juninho21/split-de-pagamentos/internal/shared/errors"
	"github.com/Juninho21/split-de-pagamentos/internal/shared/events"
	"github.com/Juninho21/split-de-pagamentos/internal/shared/metrics"
	"github.com/Juninho21/split-de-pagamentos/internal/shared/requestctx"
)

// Gateway is the payment processor.
type Gateway interface {
	CreatePayment(ctx context.Context, accessToken string, req *provider.PaymentRequest) (*provider.Payment, error)
	GetPayment(ctx context.Context, id string) (*provider.Payment, error)
}

// SellerLookup resolves seller credentials.
type SellerLookup interface {
	Get(ctx context.Context, id string) (*seller.Seller, error)
}

// Options are the fixed parts of every split payment request.
type Options struct {
	Description      string
	PaymentMethod    string
	PayerIDType      string
	PayerIDNumber    string
	NotificationURL  string
	ConfirmationText string
}

// SplitInput is a request to charge a payer on behalf of a seller.
type SplitInput struct {
	SellerID   string
	Amount     decimal.Decimal
	FeePercent decimal.Decimal
	PayerEmail string
	// IdempotencyKey falls back to the request context, then to a fresh uuid.
	IdempotencyKey string
}

// SplitResult is what the payer needs to complete the payment.
type SplitResult struct {
	Payment      *Payment
	QRCode       string
	QRCodeBase64 string
	TicketURL    string
	Detail       string
}

// Service creates split payments and reconciles their state.
type Service struct {
	repo    Repository
	sellers SellerLookup
	gateway Gateway
	opts    Options
	bus     *events.Bus
	metrics *metrics.Metrics
	logger  *zap.Logger
	now     func() time.Time
}

// NewService creates a new payment service.
func NewService(repo Repository, sellers SellerLookup, gateway Gateway, opts Options, bus *events.Bus, m *metrics.Metrics, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	if opts.PaymentMethod == "" {
		opts.PaymentMethod = "pix"
	}
	return &Service{
		repo:    repo,
		sellers: sellers,
		gateway: gateway,
		opts:    opts,
		bus:     bus,
		metrics: m,
		logger:  logger.Named("payment"),
		now:     time.Now,
	}
}

// CreateSplitPayment charges the payer with the seller's credentials and
// retains ComputeFee(amount, percent) for the platform. Input and seller
// checks run before the gateway is contacted; a record is written only
// after the gateway accepts the payment.
func (s *Service) CreateSplitPayment(ctx context.Context, in SplitInput) (*SplitResult, error) {
	if err := validateAmount(in.Amount); err != nil {
		s.record("invalid", decimal.Zero)
		return nil, err
	}
	if err := validatePercent(in.FeePercent); err != nil {
		s.record("invalid", decimal.Zero)
		return nil, err
	}

	sel, err := s.sellers.Get(ctx, strings.TrimSpace(in.SellerID))
	if err != nil {
		if errors.Is(err, seller.ErrSellerNotFound) {
			s.record("seller_not_found", decimal.Zero)
		}
		return nil, err
	}

	fee := ComputeFee(in.Amount, in.FeePercent)
	key := in.IdempotencyKey
	if key == "" {
		key = requestctx.IdempotencyKey(ctx)
	}
	if key == "" {
		key = uuid.NewString()
	}

	created, err := s.gateway.CreatePayment(ctx, sel.AccessToken, &provider.PaymentRequest{
		Amount:            in.Amount,
		ApplicationFee:    fee,
		Description:       s.opts.Description,
		PaymentMethodID:   s.opts.PaymentMethod,
		PayerEmail:        in.PayerEmail,
		PayerIDType:       s.opts.PayerIDType,
		PayerIDNumber:     s.opts.PayerIDNumber,
		NotificationURL:   s.opts.NotificationURL,
		ExternalReference: key,
		IdempotencyKey:    key,
	})
	if err != nil {
		s.record("gateway_failed", decimal.Zero)
		s.logger.Warn("create split payment failed",
			zap.String("seller_id", sel.ID),
			zap.String("request_id", requestctx.RequestID(ctx)),
			zap.Error(err))
		return nil, gatewayError(ErrPaymentCreation, err)
	}
	if created.ID == "" {
		s.record("gateway_failed", decimal.Zero)
		return nil, ErrPaymentCreation.WithDetails("resposta sem identificador de pagamento")
	}

	now := s.now().UTC()
	p := &Payment{
		ID:           created.ID,
		SellerID:     sel.ID,
		Status:       created.Status,
		StatusDetail: created.StatusDetail,
		Amount:       in.Amount,
		Fee:          fee,
		PayerEmail:   in.PayerEmail,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := s.repo.Create(ctx, p); err != nil {
		s.record("storage_failed", decimal.Zero)
		// The gateway already holds the payment; a later webhook re-inserts it.
		s.logger.Error("store created payment",
			zap.String("payment_id", p.ID),
			zap.String("seller_id", p.SellerID),
			zap.Error(err))
		return nil, err
	}

	s.record("created", fee)
	s.logger.Info("split payment created",
		zap.String("payment_id", p.ID),
		zap.String("seller_id", p.SellerID),
		zap.String("status", p.Status),
		zap.String("amount", p.Amount.StringFixed(2)),
		zap.String("fee", p.Fee.StringFixed(2)))
	if s.bus != nil {
		s.bus.Publish(events.NewPaymentCreatedEvent(p.ID, p.SellerID, p.Status, p.Amount, p.Fee))
	}

	return &SplitResult{
		Payment:      p,
		QRCode:       created.QRCode,
		QRCodeBase64: created.QRCodeBase64,
		TicketURL:    created.TicketURL,
		Detail:       s.opts.ConfirmationText,
	}, nil
}

// Reconcile fetches the authoritative state of a payment with the platform
// credentials and merges it into the stored record.
func (s *Service) Reconcile(ctx context.Context, id string) (*Payment, error) {
	remote, err := s.gateway.GetPayment(ctx, id)
	if err != nil {
		var apiErr *provider.APIError
		if errors.As(err, &apiErr) && apiErr.StatusCode == http.StatusNotFound {
			return nil, ErrPaymentNotFound.Wrap(err)
		}
		return nil, gatewayError(ErrPaymentFetch, err)
	}

	now := s.now().UTC()
	update := &Payment{
		ID:           id,
		Status:       remote.Status,
		StatusDetail: remote.StatusDetail,
		Amount:       remote.Amount,
		Fee:          remote.Fee,
		PayerEmail:   remote.PayerEmail,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := s.repo.Merge(ctx, update); err != nil {
		return nil, err
	}

	s.logger.Info("payment reconciled",
		zap.String("payment_id", id),
		zap.String("status", update.Status))
	if s.bus != nil {
		s.bus.Publish(events.NewPaymentReconciledEvent(id, update.Status))
	}
	return update, nil
}

// Get returns a stored payment.
func (s *Service) Get(ctx context.Context, id string) (*Payment, error) {
	return s.repo.Get(ctx, id)
}

// Totals sums payments with the given status.
func (s *Service) Totals(ctx context.Context, status string) (*Totals, error) {
	return s.repo.Totals(ctx, status)
}

func (s *Service) record(result string, fee decimal.Decimal) {
	if s.metrics != nil {
		s.metrics.RecordSplitPayment(result, fee.InexactFloat64())
	}
}

// gatewayError maps a gateway failure; rejections and transport errors
// become base carrying the gateway detail.
func gatewayError(base *apperrors.AppError, err error) error {
	var apiErr *provider.APIError
	switch {
	case errors.Is(err, provider.ErrTimeout):
		return ErrGatewayTimeout.Wrap(err)
	case errors.Is(err, provider.ErrCircuitOpen):
		return ErrGatewayUnavailable.Wrap(err)
	case errors.As(err, &apiErr):
		return base.WithDetails(apiErr).Wrap(err)
	default:
		return base.WithDetails(err.Error()).Wrap(err)
	}
}
