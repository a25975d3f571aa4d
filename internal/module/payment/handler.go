package payment

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Juninho21/split-de-pagamentos/internal/shared/response"
)

// Handler handles split payment requests.
type Handler struct {
	service *Service
}

// NewHandler creates a new payment handler.
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// RegisterRoutes registers POST /pay/split.
func (h *Handler) RegisterRoutes(r gin.IRouter) {
	r.POST("/pay/split", h.CreateSplit)
}

// CreateSplit godoc
// @Summary      Create a split payment
// @Description  Charges the payer on behalf of the seller and retains the marketplace fee.
// @Tags         payments
// @Accept       json
// @Produce      json
// @Param        Idempotency-Key  header    string               false  "Replay-safe request key"
// @Param        request          body      SplitPaymentRequest  true   "Split payment"
// @Success      200              {object}  SplitPaymentResponse
// @Failure      400              {object}  response.ErrorResponse
// @Failure      404              {object}  response.ErrorResponse
// @Failure      502              {object}  response.ErrorResponse
// @Failure      504              {object}  response.ErrorResponse
// @Router       /pay/split [post]
func (h *Handler) CreateSplit(c *gin.Context) {
	var req SplitPaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Fail(c, ErrInvalidRequest.WithDetails(err.Error()))
		return
	}

	result, err := h.service.CreateSplitPayment(c.Request.Context(), SplitInput{
		SellerID:   string(req.SellerID),
		Amount:     *req.Amount,
		FeePercent: *req.Fee,
		PayerEmail: req.PayerEmail,
	})
	if err != nil {
		response.Fail(c, err)
		return
	}

	c.JSON(http.StatusOK, toResponse(result))
}
