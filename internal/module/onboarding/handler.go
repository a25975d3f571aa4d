package onboarding

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/render"

	apperrors "github.com/Juninho21/split-de-pagamentos/internal/shared/errors"
)

// AuthURLResponse is returned by GET /auth/url.
type AuthURLResponse struct {
	URL string `json:"url" example:"https://auth.mercadopago.com.br/authorization?client_id=123&platform_id=mp&redirect_uri=https%3A%2F%2Fshop.example.com%2Fcallback&response_type=code"`
}

// Handler handles the onboarding HTTP endpoints.
type Handler struct {
	service  *Service
	redirect string
}

// NewHandler creates a new onboarding handler. redirect is where a non-popup
// browser lands after a successful connection.
func NewHandler(service *Service, redirect string) *Handler {
	if redirect == "" {
		redirect = "/?status=success_connected"
	}
	return &Handler{service: service, redirect: redirect}
}

// RegisterRoutes registers the onboarding routes at the root.
func (h *Handler) RegisterRoutes(r gin.IRouter) {
	r.GET("/auth/url", h.AuthURL)
	r.GET("/callback", h.Callback)
}

// AuthURL godoc
// @Summary      Seller authorization URL
// @Tags         onboarding
// @Produce      json
// @Success      200  {object}  AuthURLResponse
// @Router       /auth/url [get]
func (h *Handler) AuthURL(c *gin.Context) {
	c.JSON(http.StatusOK, AuthURLResponse{URL: h.service.AuthorizationURL()})
}

// Callback godoc
// @Summary      OAuth redirect target
// @Tags         onboarding
// @Produce      html
// @Param        code  query  string  true  "Authorization code"
// @Success      200
// @Failure      400
// @Failure      502
// @Router       /callback [get]
func (h *Handler) Callback(c *gin.Context) {
	_, err := h.service.CompleteAuthorization(c.Request.Context(), c.Query("code"))
	if err != nil {
		h.renderError(c, err)
		return
	}

	c.Render(http.StatusOK, render.HTML{
		Template: connectedPage,
		Data:     connectedData{Redirect: h.redirect},
	})
}

func (h *Handler) renderError(c *gin.Context, err error) {
	status := apperrors.GetStatusCode(err)
	data := errorData{Title: "Erro ao conectar", Message: "Erro interno."}

	if appErr, ok := apperrors.As(err); ok {
		data.Message = appErr.Message
		if appErr.Details != nil {
			data.Message = fmt.Sprint(appErr.Details)
		}
		if appErr.Is(ErrMissingCode) {
			data.Title = "Código não fornecido"
		}
	}

	_ = c.Error(err)
	c.Render(status, render.HTML{Template: errorPage, Data: data})
}
