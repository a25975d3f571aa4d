package seller

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Juninho21/split-de-pagamentos/internal/shared/response"
)

// Handler handles HTTP requests for sellers.
type Handler struct {
	service *Service
}

// NewHandler creates a new seller handler.
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// RegisterRoutes registers the seller routes on the /api group.
func (h *Handler) RegisterRoutes(r *gin.RouterGroup) {
	r.GET("/sellers", h.List)
}

// List godoc
// @Summary      List connected sellers
// @Tags         sellers
// @Produce      json
// @Success      200  {array}   SellerSummary
// @Failure      500  {object}  response.ErrorResponse
// @Router       /api/sellers [get]
func (h *Handler) List(c *gin.Context) {
	sellers, err := h.service.List(c.Request.Context())
	if err != nil {
		response.Fail(c, err)
		return
	}

	out := make([]SellerSummary, 0, len(sellers))
	for _, s := range sellers {
		out = append(out, s.ToSummary())
	}
	c.JSON(http.StatusOK, out)
}
