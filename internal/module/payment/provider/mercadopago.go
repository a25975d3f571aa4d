package provider

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/sony/gobreaker/v2"
	"go.uber.org/zap"
	"golang.org/x/oauth2"

	"github.com/Juninho21/split-de-pagamentos/internal/shared/metrics"
)

const maxResponseBody = 1 << 20

// Config contains gateway client configuration.
type Config struct {
	BaseURL string
	// PlatformToken is the marketplace's own access token, used for reads.
	PlatformToken string

	BreakerFailureThreshold uint32
	BreakerOpenTimeout      time.Duration
}

type rawResponse struct {
	status int
	body   []byte
}

// MercadoPago is a typed client for the payments API.
type MercadoPago struct {
	baseURL       string
	platformToken string
	httpClient    *http.Client
	breaker       *gobreaker.CircuitBreaker[*rawResponse]
	metrics       *metrics.Metrics
	logger        *zap.Logger
}

// NewMercadoPago creates a gateway client. httpClient carries the timeout.
func NewMercadoPago(cfg *Config, httpClient *http.Client, m *metrics.Metrics, logger *zap.Logger) *MercadoPago {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 15 * time.Second}
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	threshold := cfg.BreakerFailureThreshold
	if threshold == 0 {
		threshold = 5
	}
	logger = logger.Named("mercadopago")

	breaker := gobreaker.NewCircuitBreaker[*rawResponse](gobreaker.Settings{
		Name:        "mercadopago",
		MaxRequests: 1,
		Timeout:     cfg.BreakerOpenTimeout,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= threshold
		},
		// A 4xx is the gateway working correctly and rejecting input.
		IsSuccessful: func(err error) bool {
			var apiErr *APIError
			if errors.As(err, &apiErr) {
				return !apiErr.Retryable()
			}
			return err == nil
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			logger.Warn("circuit breaker state changed",
				zap.String("breaker", name),
				zap.String("from", from.String()),
				zap.String("to", to.String()))
		},
	})

	return &MercadoPago{
		baseURL:       strings.TrimRight(cfg.BaseURL, "/"),
		platformToken: cfg.PlatformToken,
		httpClient:    httpClient,
		breaker:       breaker,
		metrics:       m,
		logger:        logger,
	}
}

// Name returns the provider name.
func (p *MercadoPago) Name() string {
	return "mercadopago"
}

// CreatePayment submits req using the seller's access token.
func (p *MercadoPago) CreatePayment(ctx context.Context, accessToken string, req *PaymentRequest) (*Payment, error) {
	body := createPaymentBody{
		TransactionAmount: json.Number(req.Amount.StringFixed(2)),
		Description:       req.Description,
		PaymentMethodID:   req.PaymentMethodID,
		Payer:             payerBody{Email: req.PayerEmail},
		ApplicationFee:    json.Number(req.ApplicationFee.StringFixed(2)),
		NotificationURL:   req.NotificationURL,
		ExternalReference: req.ExternalReference,
	}
	if req.PayerIDType != "" {
		body.Payer.Identification = &identificationBody{Type: req.PayerIDType, Number: req.PayerIDNumber}
	}

	payload, err := json.Marshal(body)
	if err != nil {
		return nil, fmt.Errorf("encode payment request: %w", err)
	}

	headers := http.Header{}
	if req.IdempotencyKey != "" {
		headers.Set("X-Idempotency-Key", req.IdempotencyKey)
	}

	var out paymentBody
	if err := p.call(ctx, "create_payment", accessToken, http.MethodPost, "/v1/payments", payload, headers, &out); err != nil {
		return nil, err
	}
	return out.toPayment(), nil
}

// GetPayment fetches the authoritative state of a payment using the platform token.
func (p *MercadoPago) GetPayment(ctx context.Context, id string) (*Payment, error) {
	var out paymentBody
	path := "/v1/payments/" + url.PathEscape(id)
	if err := p.call(ctx, "get_payment", p.platformToken, http.MethodGet, path, nil, nil, &out); err != nil {
		return nil, err
	}
	return out.toPayment(), nil
}

func (p *MercadoPago) call(ctx context.Context, op, token, method, path string, payload []byte, headers http.Header, out any) error {
	start := time.Now()

	resp, err := p.breaker.Execute(func() (*rawResponse, error) {
		return p.roundTrip(ctx, token, method, path, payload, headers)
	})

	outcome := "ok"
	switch {
	case err == nil:
	case errors.Is(err, gobreaker.ErrOpenState), errors.Is(err, gobreaker.ErrTooManyRequests):
		outcome = "open"
		err = fmt.Errorf("%s: %w", op, ErrCircuitOpen)
	case errors.Is(err, ErrTimeout):
		outcome = "timeout"
	default:
		var apiErr *APIError
		if errors.As(err, &apiErr) {
			outcome = "rejected"
		} else {
			outcome = "error"
		}
	}
	if p.metrics != nil {
		p.metrics.RecordGatewayCall(op, outcome, time.Since(start))
	}
	if err != nil {
		p.logger.Warn("gateway call failed",
			zap.String("operation", op),
			zap.String("outcome", outcome),
			zap.Duration("duration", time.Since(start)),
			zap.Error(err))
		return err
	}

	if err := json.Unmarshal(resp.body, out); err != nil {
		return fmt.Errorf("%s: decode response: %w", op, err)
	}
	return nil
}

func (p *MercadoPago) roundTrip(ctx context.Context, token, method, path string, payload []byte, headers http.Header) (*rawResponse, error) {
	var body io.Reader
	if payload != nil {
		body = bytes.NewReader(payload)
	}
	req, err := http.NewRequestWithContext(ctx, method, p.baseURL+path, body)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	for k, vs := range headers {
		for _, v := range vs {
			req.Header.Add(k, v)
		}
	}
	req.Header.Set("Accept", "application/json")
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := p.clientFor(token).Do(req)
	if err != nil {
		if isTimeout(err) {
			return nil, fmt.Errorf("%s %s: %w", method, path, ErrTimeout)
		}
		return nil, fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBody))
	if err != nil {
		if isTimeout(err) {
			return nil, fmt.Errorf("%s %s: read body: %w", method, path, ErrTimeout)
		}
		return nil, fmt.Errorf("%s %s: read body: %w", method, path, err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, decodeAPIError(resp.StatusCode, data)
	}
	return &rawResponse{status: resp.StatusCode, body: data}, nil
}

// clientFor returns a client that authenticates as token.
func (p *MercadoPago) clientFor(token string) *http.Client {
	base := p.httpClient.Transport
	if base == nil {
		base = http.DefaultTransport
	}
	return &http.Client{
		Transport: &oauth2.Transport{
			Source: oauth2.StaticTokenSource(&oauth2.Token{AccessToken: token, TokenType: "Bearer"}),
			Base:   base,
		},
		Timeout: p.httpClient.Timeout,
	}
}

func decodeAPIError(status int, data []byte) *APIError {
	apiErr := &APIError{StatusCode: status}
	var eb errorBody
	if err := json.Unmarshal(data, &eb); err != nil {
		apiErr.Message = strings.TrimSpace(string(data))
		if apiErr.Message == "" {
			apiErr.Message = http.StatusText(status)
		}
		return apiErr
	}
	apiErr.Message = eb.Message
	apiErr.Code = eb.Error
	for _, c := range eb.Cause {
		apiErr.Causes = append(apiErr.Causes, Cause{
			Code:        strings.Trim(string(c.Code), `"`),
			Description: c.Description,
		})
	}
	if apiErr.Message == "" {
		apiErr.Message = http.StatusText(status)
	}
	return apiErr
}

func isTimeout(err error) bool {
	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}
	var netErr net.Error
	return errors.As(err, &netErr) && netErr.Timeout()
}
