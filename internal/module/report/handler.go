package report

import (
	"encoding/json"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Juninho21/split-de-pagamentos/internal/shared/response"
)

// StatsResponse is the body of GET /api/stats. Money is rendered with two decimals.
type StatsResponse struct {
	TotalSellers     int64       `json:"total_sellers"`
	ApprovedPayments int64       `json:"approved_payments"`
	TotalAmount      json.Number `json:"total_amount" swaggertype:"number" example:"100.00"`
	TotalFees        json.Number `json:"total_fees" swaggertype:"number" example:"10.00"`
}

// Handler serves marketplace statistics.
type Handler struct {
	service *Service
}

// NewHandler creates a new report handler.
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// RegisterRoutes registers the report routes on the /api group.
func (h *Handler) RegisterRoutes(r *gin.RouterGroup) {
	r.GET("/stats", h.Stats)
}

// Stats godoc
// @Summary      Marketplace statistics
// @Description  Seller count and approved payment totals.
// @Tags         reports
// @Produce      json
// @Success      200  {object}  StatsResponse
// @Failure      500  {object}  response.ErrorResponse
// @Router       /api/stats [get]
func (h *Handler) Stats(c *gin.Context) {
	stats, err := h.service.Stats(c.Request.Context())
	if err != nil {
		response.Fail(c, err)
		return
	}

	c.JSON(http.StatusOK, StatsResponse{
		TotalSellers:     stats.TotalSellers,
		ApprovedPayments: stats.ApprovedPayments,
		TotalAmount:      json.Number(stats.TotalAmount.StringFixed(2)),
		TotalFees:        json.Number(stats.TotalFees.StringFixed(2)),
	})
}
