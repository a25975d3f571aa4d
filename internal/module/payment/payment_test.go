package payment

import (
	"bytes"
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/Juninho21/split-de-pagamentos/internal/module/payment/provider"
	"github.com/Juninho21/split-de-pagamentos/internal/module/seller"
	apperrors "github.com/Juninho21/split-de-pagamentos/internal/shared/errors"
	"github.com/Juninho21/split-de-pagamentos/internal/shared/events"
	"github.com/Juninho21/split-de-pagamentos/internal/shared/metrics"
	"github.com/Juninho21/split-de-pagamentos/internal/shared/requestctx"
	"github.com/Juninho21/split-de-pagamentos/internal/shared/response"
	"github.com/Juninho21/split-de-pagamentos/internal/shared/task"
)

func init() {
	gin.SetMode(gin.TestMode)
}

// --- Mocks ---

type MockGateway struct {
	mock.Mock
}

func (m *MockGateway) CreatePayment(ctx context.Context, token string, req *provider.PaymentRequest) (*provider.Payment, error) {
	args := m.Called(ctx, token, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*provider.Payment), args.Error(1)
}

func (m *MockGateway) GetPayment(ctx context.Context, id string) (*provider.Payment, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*provider.Payment), args.Error(1)
}

// inlineSubmitter runs jobs synchronously.
type inlineSubmitter struct {
	err  error
	jobs []string
}

func (s *inlineSubmitter) Submit(name string, job task.Job) error {
	if s.err != nil {
		return s.err
	}
	s.jobs = append(s.jobs, name)
	return job(context.Background())
}

// --- Fixture ---

type fixture struct {
	repo    *MemoryRepository
	sellers *seller.MemoryRepository
	gateway *MockGateway
	metrics *metrics.Metrics
	service *Service
	events  []events.Event
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	f := &fixture{
		repo:    NewMemoryRepository(),
		sellers: seller.NewMemoryRepository(),
		gateway: new(MockGateway),
		metrics: metrics.New("test"),
	}
	require.NoError(t, f.sellers.Save(context.Background(), &seller.Seller{
		ID:          "S1",
		AccessToken: "SELLER-TOKEN",
		ConnectedAt: time.Now().UTC(),
	}))

	bus := events.NewBus(zap.NewNop())
	bus.Register(events.NewHandlerFunc(
		[]string{events.PaymentCreatedType, events.PaymentReconciledType},
		func(e events.Event) error {
			f.events = append(f.events, e)
			return nil
		}))

	f.service = NewService(f.repo, f.sellers, f.gateway, Options{
		Description:      "Venda Marketplace com Split (%)",
		PayerIDType:      "CPF",
		PayerIDNumber:    "19119119100",
		NotificationURL:  "https://shop.example.com/webhook",
		ConfirmationText: "Pagamento criado em nome do vendedor. Comissão retida automaticamente.",
	}, bus, f.metrics, zap.NewNop())
	return f
}

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func pendingPayment(id string) *provider.Payment {
	return &provider.Payment{
		ID:           id,
		Status:       "pending",
		Amount:       dec("100"),
		Fee:          dec("10"),
		QRCode:       "00020126",
		QRCodeBase64: "iVBORw0KGgo=",
	}
}

// --- Service tests ---

func TestService_CreateSplitPayment(t *testing.T) {
	ctx := context.Background()

	t.Run("creates with the seller token and stores the record", func(t *testing.T) {
		f := newFixture(t)
		f.gateway.On("CreatePayment", mock.Anything, "SELLER-TOKEN", mock.MatchedBy(func(r *provider.PaymentRequest) bool {
			return r.Amount.Equal(dec("100")) &&
				r.ApplicationFee.StringFixed(2) == "10.00" &&
				r.PaymentMethodID == "pix" &&
				r.PayerEmail == "a@b.com" &&
				r.PayerIDType == "CPF" &&
				r.NotificationURL == "https://shop.example.com/webhook" &&
				r.IdempotencyKey != ""
		})).Return(pendingPayment("P1"), nil)

		res, err := f.service.CreateSplitPayment(ctx, SplitInput{
			SellerID: "S1", Amount: dec("100"), FeePercent: dec("10"), PayerEmail: "a@b.com",
		})
		require.NoError(t, err)
		assert.Equal(t, "P1", res.Payment.ID)
		assert.Equal(t, "00020126", res.QRCode)
		assert.Contains(t, res.Detail, "Comissão retida")

		stored, err := f.repo.Get(ctx, "P1")
		require.NoError(t, err)
		assert.Equal(t, "S1", stored.SellerID)
		assert.Equal(t, "pending", stored.Status)
		assert.Equal(t, "10.00", stored.Fee.StringFixed(2))
		assert.Equal(t, "a@b.com", stored.PayerEmail)

		require.Len(t, f.events, 1)
		assert.Equal(t, events.PaymentCreatedType, f.events[0].EventType())
		assert.Equal(t, 1.0, testutil.ToFloat64(f.metrics.SplitPaymentsTotal.WithLabelValues("created")))
		assert.Equal(t, 10.0, testutil.ToFloat64(f.metrics.FeesRetainedTotal))
		f.gateway.AssertExpectations(t)
	})

	t.Run("forwards the caller idempotency key", func(t *testing.T) {
		f := newFixture(t)
		f.gateway.On("CreatePayment", mock.Anything, "SELLER-TOKEN", mock.MatchedBy(func(r *provider.PaymentRequest) bool {
			return r.IdempotencyKey == "order-77"
		})).Return(pendingPayment("P2"), nil)

		_, err := f.service.CreateSplitPayment(requestctx.WithIdempotencyKey(ctx, "order-77"), SplitInput{
			SellerID: "S1", Amount: dec("10"), FeePercent: dec("5"), PayerEmail: "a@b.com",
		})
		require.NoError(t, err)
		f.gateway.AssertExpectations(t)
	})

	t.Run("unknown seller never reaches the gateway", func(t *testing.T) {
		f := newFixture(t)

		_, err := f.service.CreateSplitPayment(ctx, SplitInput{
			SellerID: "nope", Amount: dec("100"), FeePercent: dec("10"), PayerEmail: "a@b.com",
		})
		assert.ErrorIs(t, err, seller.ErrSellerNotFound)
		assert.Equal(t, http.StatusNotFound, apperrors.GetStatusCode(err))
		f.gateway.AssertNotCalled(t, "CreatePayment", mock.Anything, mock.Anything, mock.Anything)

		all, _ := f.repo.List(ctx)
		assert.Empty(t, all)
	})

	t.Run("rejects invalid input before any lookup", func(t *testing.T) {
		f := newFixture(t)

		_, err := f.service.CreateSplitPayment(ctx, SplitInput{SellerID: "S1", Amount: dec("-1"), FeePercent: dec("10")})
		assert.ErrorIs(t, err, ErrInvalidAmount)

		_, err = f.service.CreateSplitPayment(ctx, SplitInput{SellerID: "S1", Amount: dec("10"), FeePercent: dec("150")})
		assert.ErrorIs(t, err, ErrInvalidFeePercent)
		f.gateway.AssertNotCalled(t, "CreatePayment", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("gateway rejection writes nothing", func(t *testing.T) {
		f := newFixture(t)
		apiErr := &provider.APIError{StatusCode: 400, Message: "invalid access token"}
		f.gateway.On("CreatePayment", mock.Anything, mock.Anything, mock.Anything).Return(nil, apiErr)

		_, err := f.service.CreateSplitPayment(ctx, SplitInput{
			SellerID: "S1", Amount: dec("100"), FeePercent: dec("10"), PayerEmail: "a@b.com",
		})
		require.Error(t, err)
		assert.ErrorIs(t, err, ErrPaymentCreation)
		assert.Equal(t, http.StatusBadGateway, apperrors.GetStatusCode(err))

		appErr, ok := apperrors.As(err)
		require.True(t, ok)
		assert.Equal(t, apiErr, appErr.Details)

		all, _ := f.repo.List(ctx)
		assert.Empty(t, all)
		assert.Empty(t, f.events)
	})

	t.Run("timeout and open breaker map to 504 and 503", func(t *testing.T) {
		f := newFixture(t)
		f.gateway.On("CreatePayment", mock.Anything, mock.Anything, mock.Anything).Return(nil, provider.ErrTimeout).Once()
		f.gateway.On("CreatePayment", mock.Anything, mock.Anything, mock.Anything).Return(nil, provider.ErrCircuitOpen).Once()

		in := SplitInput{SellerID: "S1", Amount: dec("1"), FeePercent: dec("1"), PayerEmail: "a@b.com"}
		_, err := f.service.CreateSplitPayment(ctx, in)
		assert.Equal(t, http.StatusGatewayTimeout, apperrors.GetStatusCode(err))

		_, err = f.service.CreateSplitPayment(ctx, in)
		assert.Equal(t, http.StatusServiceUnavailable, apperrors.GetStatusCode(err))
	})
}

func TestService_Reconcile(t *testing.T) {
	ctx := context.Background()

	seed := func(t *testing.T) *fixture {
		f := newFixture(t)
		f.gateway.On("CreatePayment", mock.Anything, mock.Anything, mock.Anything).Return(pendingPayment("P1"), nil)
		_, err := f.service.CreateSplitPayment(ctx, SplitInput{
			SellerID: "S1", Amount: dec("100"), FeePercent: dec("10"), PayerEmail: "a@b.com",
		})
		require.NoError(t, err)
		return f
	}

	t.Run("out of order deliveries converge and keep the seller", func(t *testing.T) {
		for _, order := range [][]string{{"pending", "approved"}, {"approved", "approved"}} {
			f := seed(t)
			for _, status := range order {
				f.gateway.On("GetPayment", mock.Anything, "P1").
					Return(&provider.Payment{ID: "P1", Status: status, Amount: dec("100"), Fee: dec("10")}, nil).Once()
				_, err := f.service.Reconcile(ctx, "P1")
				require.NoError(t, err)
			}

			got, err := f.repo.Get(ctx, "P1")
			require.NoError(t, err)
			assert.Equal(t, "approved", got.Status)
			assert.Equal(t, "S1", got.SellerID)
			assert.Equal(t, "a@b.com", got.PayerEmail)
		}
	})

	t.Run("missing fee defaults to zero", func(t *testing.T) {
		f := seed(t)
		f.gateway.On("GetPayment", mock.Anything, "P1").
			Return(&provider.Payment{ID: "P1", Status: "cancelled", Amount: dec("100")}, nil)

		_, err := f.service.Reconcile(ctx, "P1")
		require.NoError(t, err)

		got, _ := f.repo.Get(ctx, "P1")
		assert.True(t, got.Fee.IsZero())
		assert.Equal(t, "cancelled", got.Status)
	})

	t.Run("unknown payment is inserted without seller", func(t *testing.T) {
		f := newFixture(t)
		f.gateway.On("GetPayment", mock.Anything, "X9").
			Return(&provider.Payment{ID: "X9", Status: "approved", Amount: dec("5"), Fee: dec("0.5")}, nil)

		_, err := f.service.Reconcile(ctx, "X9")
		require.NoError(t, err)

		got, err := f.repo.Get(ctx, "X9")
		require.NoError(t, err)
		assert.Empty(t, got.SellerID)
	})

	t.Run("creation after an early webhook links the seller", func(t *testing.T) {
		f := newFixture(t)
		f.gateway.On("GetPayment", mock.Anything, "P1").
			Return(&provider.Payment{ID: "P1", Status: "approved", Amount: dec("100"), Fee: dec("10")}, nil)
		f.gateway.On("CreatePayment", mock.Anything, mock.Anything, mock.Anything).Return(pendingPayment("P1"), nil)

		_, err := f.service.Reconcile(ctx, "P1")
		require.NoError(t, err)
		_, err = f.service.CreateSplitPayment(ctx, SplitInput{
			SellerID: "S1", Amount: dec("100"), FeePercent: dec("10"), PayerEmail: "a@b.com",
		})
		require.NoError(t, err)

		got, _ := f.repo.Get(ctx, "P1")
		assert.Equal(t, "approved", got.Status)
		assert.Equal(t, "S1", got.SellerID)
	})

	t.Run("gateway 404 is not found", func(t *testing.T) {
		f := newFixture(t)
		f.gateway.On("GetPayment", mock.Anything, "nope").Return(nil, &provider.APIError{StatusCode: 404})

		_, err := f.service.Reconcile(ctx, "nope")
		assert.ErrorIs(t, err, ErrPaymentNotFound)
	})

	t.Run("fetch failures carry their own code", func(t *testing.T) {
		f := seed(t)
		f.gateway.On("GetPayment", mock.Anything, "P1").
			Return(nil, &provider.APIError{StatusCode: 500, Message: "internal_error"})

		_, err := f.service.Reconcile(ctx, "P1")
		assert.ErrorIs(t, err, ErrPaymentFetch)
		assert.NotErrorIs(t, err, ErrPaymentCreation)
		assert.Equal(t, http.StatusBadGateway, apperrors.GetStatusCode(err))

		stored, err := f.repo.Get(ctx, "P1")
		require.NoError(t, err)
		assert.Equal(t, "pending", stored.Status)
	})

	t.Run("fetch timeout is 504", func(t *testing.T) {
		f := newFixture(t)
		f.gateway.On("GetPayment", mock.Anything, "P9").Return(nil, provider.ErrTimeout)

		_, err := f.service.Reconcile(ctx, "P9")
		assert.ErrorIs(t, err, ErrGatewayTimeout)
	})
}

func TestMemoryRepository_Totals(t *testing.T) {
	ctx := context.Background()
	repo := NewMemoryRepository()
	require.NoError(t, repo.Create(ctx, &Payment{ID: "A", Status: StatusApproved, Amount: dec("100"), Fee: dec("10")}))
	require.NoError(t, repo.Create(ctx, &Payment{ID: "B", Status: "pending", Amount: dec("50"), Fee: dec("5")}))

	totals, err := repo.Totals(ctx, StatusApproved)
	require.NoError(t, err)
	assert.Equal(t, int64(1), totals.Count)
	assert.Equal(t, "100.00", totals.Amount.StringFixed(2))
	assert.Equal(t, "10.00", totals.Fee.StringFixed(2))
}

// --- Handler tests ---

func newRouter(f *fixture) *gin.Engine {
	r := gin.New()
	NewHandler(f.service).RegisterRoutes(r)
	return r
}

func postJSON(r http.Handler, path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, path, bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestHandler_CreateSplit(t *testing.T) {
	t.Run("accepts numeric strings", func(t *testing.T) {
		f := newFixture(t)
		f.gateway.On("CreatePayment", mock.Anything, "SELLER-TOKEN", mock.Anything).Return(pendingPayment("P1"), nil)

		w := postJSON(newRouter(f), "/pay/split", `{"sellerId":"S1","amount":"100","fee":"10","payerEmail":"a@b.com"}`)
		require.Equal(t, http.StatusOK, w.Code)

		var body SplitPaymentResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
		assert.Equal(t, "P1", body.ID)
		assert.Equal(t, "pending", body.Status)
		assert.NotEmpty(t, body.QRCode)
		assert.NotEmpty(t, body.QRCodeBase64)
		assert.NotEmpty(t, body.Detail)
	})

	t.Run("accepts json numbers and numeric seller ids", func(t *testing.T) {
		f := newFixture(t)
		require.NoError(t, f.sellers.Save(context.Background(), &seller.Seller{ID: "123", AccessToken: "T123"}))
		f.gateway.On("CreatePayment", mock.Anything, "T123", mock.Anything).Return(pendingPayment("P3"), nil)

		w := postJSON(newRouter(f), "/pay/split", `{"sellerId":123,"amount":25.5,"fee":7.5,"payerEmail":"a@b.com"}`)
		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("rejects non numeric amount", func(t *testing.T) {
		f := newFixture(t)

		w := postJSON(newRouter(f), "/pay/split", `{"sellerId":"S1","amount":"abc","fee":"10","payerEmail":"a@b.com"}`)
		assert.Equal(t, http.StatusBadRequest, w.Code)

		var body response.ErrorResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
		assert.Equal(t, "INVALID_REQUEST", body.Code)
		f.gateway.AssertNotCalled(t, "CreatePayment", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("amounts beyond cents are rejected", func(t *testing.T) {
		f := newFixture(t)

		w := postJSON(newRouter(f), "/pay/split", `{"sellerId":"S1","amount":"10.005","fee":"10","payerEmail":"a@b.com"}`)
		assert.Equal(t, http.StatusBadRequest, w.Code)

		var body response.ErrorResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
		assert.Equal(t, "INVALID_AMOUNT", body.Code)
		assert.Equal(t, "no máximo duas casas decimais", body.Details)
		f.gateway.AssertNotCalled(t, "CreatePayment", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("out of range values never reach the gateway", func(t *testing.T) {
		f := newFixture(t)
		cases := []struct {
			payload string
			code    string
		}{
			{`{"sellerId":"S1","amount":"1e20000000","fee":"10","payerEmail":"a@b.com"}`, "INVALID_AMOUNT"},
			{`{"sellerId":"S1","amount":"1e-20000000","fee":"10","payerEmail":"a@b.com"}`, "INVALID_AMOUNT"},
			{`{"sellerId":"S1","amount":"1e20","fee":"10","payerEmail":"a@b.com"}`, "INVALID_AMOUNT"},
			{`{"sellerId":"S1","amount":"100","fee":"1e-20000000","payerEmail":"a@b.com"}`, "INVALID_FEE_PERCENT"},
		}
		for _, tc := range cases {
			start := time.Now()
			w := postJSON(newRouter(f), "/pay/split", tc.payload)
			assert.Less(t, time.Since(start), time.Second, tc.payload)
			assert.Equal(t, http.StatusBadRequest, w.Code, tc.payload)

			var body response.ErrorResponse
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
			assert.Equal(t, tc.code, body.Code, tc.payload)
		}
		f.gateway.AssertNotCalled(t, "CreatePayment", mock.Anything, mock.Anything, mock.Anything)

		all, err := f.repo.List(context.Background())
		require.NoError(t, err)
		assert.Empty(t, all)
	})

	t.Run("unknown seller is 404", func(t *testing.T) {
		f := newFixture(t)

		w := postJSON(newRouter(f), "/pay/split", `{"sellerId":"ghost","amount":"100","fee":"10","payerEmail":"a@b.com"}`)
		assert.Equal(t, http.StatusNotFound, w.Code)

		var body response.ErrorResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
		assert.Equal(t, "Vendedor não encontrado ou não conectado.", body.Error)
	})

	t.Run("gateway failure is 502 with details", func(t *testing.T) {
		f := newFixture(t)
		f.gateway.On("CreatePayment", mock.Anything, mock.Anything, mock.Anything).
			Return(nil, &provider.APIError{StatusCode: 400, Message: "invalid access token"})

		w := postJSON(newRouter(f), "/pay/split", `{"sellerId":"S1","amount":"100","fee":"10","payerEmail":"a@b.com"}`)
		assert.Equal(t, http.StatusBadGateway, w.Code)
		assert.Contains(t, w.Body.String(), "invalid access token")
		assert.Contains(t, w.Body.String(), "Erro ao processar pagamento")
	})
}

// --- Webhook tests ---

func newWebhookRouter(f *fixture, sub Submitter, secret string) *gin.Engine {
	r := gin.New()
	NewWebhookHandler(f.service, sub, secret, f.metrics, zap.NewNop()).RegisterRoutes(r)
	return r
}

func TestWebhookHandler(t *testing.T) {
	t.Run("reconciles payment notifications", func(t *testing.T) {
		f := newFixture(t)
		f.gateway.On("GetPayment", mock.Anything, "P1").
			Return(&provider.Payment{ID: "P1", Status: "approved", Amount: dec("100"), Fee: dec("10")}, nil)
		sub := &inlineSubmitter{}

		w := postJSON(newWebhookRouter(f, sub, ""), "/webhook", `{"type":"payment","data":{"id":"P1"}}`)
		assert.Equal(t, http.StatusOK, w.Code)
		assert.JSONEq(t, `{"status":"received"}`, w.Body.String())
		assert.Equal(t, []string{"reconcile:P1"}, sub.jobs)

		got, err := f.repo.Get(context.Background(), "P1")
		require.NoError(t, err)
		assert.Equal(t, "approved", got.Status)
		assert.Equal(t, 1.0, testutil.ToFloat64(f.metrics.WebhooksTotal.WithLabelValues("reconciled")))
	})

	t.Run("numeric ids and query forms", func(t *testing.T) {
		f := newFixture(t)
		f.gateway.On("GetPayment", mock.Anything, mock.Anything).
			Return(&provider.Payment{Status: "pending", Amount: dec("1")}, nil)
		sub := &inlineSubmitter{}
		r := newWebhookRouter(f, sub, "")

		postJSON(r, "/webhook", `{"type":"payment","data":{"id":12345}}`)
		postJSON(r, "/webhook?type=payment&data.id=222", ``)
		postJSON(r, "/webhook?topic=payment&id=333", ``)

		assert.Equal(t, []string{"reconcile:12345", "reconcile:222", "reconcile:333"}, sub.jobs)
	})

	t.Run("acks and ignores other types", func(t *testing.T) {
		f := newFixture(t)
		sub := &inlineSubmitter{}

		w := postJSON(newWebhookRouter(f, sub, ""), "/webhook", `{"type":"merchant_order","data":{"id":"9"}}`)
		assert.Equal(t, http.StatusOK, w.Code)
		assert.Empty(t, sub.jobs)
		assert.Equal(t, 1.0, testutil.ToFloat64(f.metrics.WebhooksTotal.WithLabelValues("ignored")))
	})

	t.Run("acks even when processing fails", func(t *testing.T) {
		f := newFixture(t)
		f.gateway.On("GetPayment", mock.Anything, "P1").Return(nil, errors.New("connection reset"))

		w := postJSON(newWebhookRouter(f, &inlineSubmitter{}, ""), "/webhook", `{"type":"payment","data":{"id":"P1"}}`)
		assert.Equal(t, http.StatusOK, w.Code)
		assert.JSONEq(t, `{"status":"received"}`, w.Body.String())
		assert.Equal(t, 1.0, testutil.ToFloat64(f.metrics.WebhooksTotal.WithLabelValues("fetch_failed")))
	})

	t.Run("acks when the queue is full", func(t *testing.T) {
		f := newFixture(t)

		w := postJSON(newWebhookRouter(f, &inlineSubmitter{err: task.ErrQueueFull}, ""), "/webhook", `{"type":"payment","data":{"id":"P1"}}`)
		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, 1.0, testutil.ToFloat64(f.metrics.WebhooksTotal.WithLabelValues("dropped")))
	})

	t.Run("signature verification", func(t *testing.T) {
		const secret = "whsec"
		f := newFixture(t)
		f.gateway.On("GetPayment", mock.Anything, "P1").
			Return(&provider.Payment{ID: "P1", Status: "approved", Amount: dec("1")}, nil)
		sub := &inlineSubmitter{}
		r := newWebhookRouter(f, sub, secret)

		mac := hmac.New(sha256.New, []byte(secret))
		mac.Write([]byte("id:p1;request-id:req-1;ts:1704908010;"))
		valid := "ts=1704908010,v1=" + hex.EncodeToString(mac.Sum(nil))

		send := func(sig string) {
			req := httptest.NewRequest(http.MethodPost, "/webhook?data.id=P1&type=payment", nil)
			req.Header.Set("x-signature", sig)
			req.Header.Set("x-request-id", "req-1")
			w := httptest.NewRecorder()
			r.ServeHTTP(w, req)
			assert.Equal(t, http.StatusOK, w.Code)
		}

		send("ts=1704908010,v1=deadbeef")
		send("")
		assert.Empty(t, sub.jobs)
		assert.Equal(t, 2.0, testutil.ToFloat64(f.metrics.WebhooksTotal.WithLabelValues("invalid_signature")))

		send(valid)
		assert.Equal(t, []string{"reconcile:P1"}, sub.jobs)
	})
}
