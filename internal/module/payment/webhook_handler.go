package payment

import (
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	apperrors "github.com/Juninho21/split-de-pagamentos/internal/shared/errors"
	"github.com/Juninho21/split-de-pagamentos/internal/shared/metrics"
	"github.com/Juninho21/split-de-pagamentos/internal/shared/task"
)

const notificationTypePayment = "payment"

// Reconciler refreshes a stored payment from the gateway.
type Reconciler interface {
	Reconcile(ctx context.Context, id string) (*Payment, error)
}

// Submitter runs jobs after the request has been answered.
type Submitter interface {
	Submit(name string, job task.Job) error
}

// Notification is the gateway's webhook payload. Only type and data.id are read.
type Notification struct {
	Type   string           `json:"type"`
	Action string           `json:"action,omitempty"`
	Data   NotificationData `json:"data"`
}

// NotificationData identifies the resource that changed.
type NotificationData struct {
	ID FlexString `json:"id"`
}

// WebhookHandler acknowledges gateway notifications and reconciles in the background.
type WebhookHandler struct {
	reconciler Reconciler
	submitter  Submitter
	secret     string
	metrics    *metrics.Metrics
	logger     *zap.Logger
}

// NewWebhookHandler creates a webhook handler. An empty secret disables
// signature verification.
func NewWebhookHandler(reconciler Reconciler, submitter Submitter, secret string, m *metrics.Metrics, logger *zap.Logger) *WebhookHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &WebhookHandler{
		reconciler: reconciler,
		submitter:  submitter,
		secret:     secret,
		metrics:    m,
		logger:     logger.Named("webhook"),
	}
}

// RegisterRoutes registers POST /webhook.
func (h *WebhookHandler) RegisterRoutes(r gin.IRouter) {
	r.POST("/webhook", h.Receive)
}

// Receive godoc
// @Summary      Gateway notification
// @Description  Always acknowledged; payment notifications are reconciled asynchronously.
// @Tags         payments
// @Accept       json
// @Produce      json
// @Param        notification  body      Notification  false  "Notification"
// @Success      200           {object}  map[string]string
// @Router       /webhook [post]
func (h *WebhookHandler) Receive(c *gin.Context) {
	defer c.JSON(http.StatusOK, gin.H{"status": "received"})

	n := parseNotification(c)
	id := string(n.Data.ID)
	if n.Type != notificationTypePayment || id == "" {
		h.record("ignored")
		h.logger.Debug("notification ignored", zap.String("type", n.Type), zap.String("id", id))
		return
	}

	if h.secret != "" && !verifySignature(h.secret, c.GetHeader("x-signature"), c.GetHeader("x-request-id"), id) {
		h.record("invalid_signature")
		h.logger.Warn("notification signature rejected", zap.String("payment_id", id))
		return
	}

	if err := h.submitter.Submit("reconcile:"+id, h.reconcileJob(id)); err != nil {
		h.record("dropped")
		h.logger.Error("reconciliation not queued", zap.String("payment_id", id), zap.Error(err))
	}
}

func (h *WebhookHandler) reconcileJob(id string) task.Job {
	return func(ctx context.Context) error {
		p, err := h.reconciler.Reconcile(ctx, id)
		if err != nil {
			if errors.Is(err, apperrors.ErrStorage) {
				h.record("store_failed")
			} else {
				h.record("fetch_failed")
			}
			return fmt.Errorf("reconcile payment %s: %w", id, err)
		}
		h.record("reconciled")
		h.logger.Debug("notification processed", zap.String("payment_id", id), zap.String("status", p.Status))
		return nil
	}
}

func (h *WebhookHandler) record(outcome string) {
	if h.metrics != nil {
		h.metrics.RecordWebhook(outcome)
	}
}

// parseNotification reads the JSON body, falling back to the query forms
// ?type=payment&data.id=… and the legacy ?topic=payment&id=….
func parseNotification(c *gin.Context) Notification {
	var n Notification
	_ = c.ShouldBindJSON(&n)

	if n.Type == "" {
		n.Type = c.Query("type")
	}
	if n.Type == "" {
		n.Type = c.Query("topic")
	}
	if n.Data.ID == "" {
		n.Data.ID = FlexString(c.Query("data.id"))
	}
	if n.Data.ID == "" {
		n.Data.ID = FlexString(c.Query("id"))
	}
	n.Data.ID = FlexString(strings.TrimSpace(string(n.Data.ID)))
	return n
}

// verifySignature checks an x-signature header of the form "ts=…,v1=…"
// against HMAC-SHA256 of "id:<id>;request-id:<request id>;ts:<ts>;".
func verifySignature(secret, header, requestID, id string) bool {
	var ts, v1 string
	for _, part := range strings.Split(header, ",") {
		k, v, ok := strings.Cut(strings.TrimSpace(part), "=")
		if !ok {
			continue
		}
		switch k {
		case "ts":
			ts = v
		case "v1":
			v1 = v
		}
	}
	if ts == "" || v1 == "" {
		return false
	}

	var manifest strings.Builder
	manifest.WriteString("id:" + strings.ToLower(id) + ";")
	if requestID != "" {
		manifest.WriteString("request-id:" + requestID + ";")
	}
	manifest.WriteString("ts:" + ts + ";")

	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write([]byte(manifest.String()))
	want := mac.Sum(nil)

	got, err := hex.DecodeString(v1)
	if err != nil {
		return false
	}
	return hmac.Equal(want, got)
}
