package admin

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Juninho21/split-de-pagamentos/internal/shared/response"
)

// Handler handles admin account requests.
type Handler struct {
	service *Service
}

// NewHandler creates a new admin handler.
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// RegisterRoutes registers the account routes on the /api group.
func (h *Handler) RegisterRoutes(r *gin.RouterGroup) {
	users := r.Group("/users")
	{
		users.GET("", h.List)
		users.POST("", h.Create)
		users.DELETE("/:uid", h.Delete)
	}
}

// RegisterPublicRoutes registers routes reachable without a session.
func (h *Handler) RegisterPublicRoutes(r *gin.RouterGroup) {
	r.POST("/login", h.Login)
}

// List godoc
// @Summary      List admin accounts
// @Tags         admin
// @Produce      json
// @Security     BearerAuth
// @Success      200  {array}   UserResponse
// @Failure      500  {object}  response.ErrorResponse
// @Router       /api/users [get]
func (h *Handler) List(c *gin.Context) {
	users, err := h.service.List(c.Request.Context())
	if err != nil {
		response.Fail(c, err)
		return
	}

	out := make([]UserResponse, 0, len(users))
	for _, u := range users {
		out = append(out, u.ToResponse())
	}
	c.JSON(http.StatusOK, out)
}

// Create godoc
// @Summary      Create an admin account
// @Tags         admin
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        request  body      CreateUserRequest  true  "Account"
// @Success      201      {object}  MessageResponse
// @Failure      400      {object}  response.ErrorResponse
// @Failure      409      {object}  response.ErrorResponse
// @Router       /api/users [post]
func (h *Handler) Create(c *gin.Context) {
	var req CreateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Fail(c, ErrInvalidRequest.WithDetails(err.Error()))
		return
	}

	user, err := h.service.Create(c.Request.Context(), CreateInput{
		Email:       req.Email,
		Password:    req.Password,
		DisplayName: req.DisplayName,
	})
	if err != nil {
		response.Fail(c, err)
		return
	}

	c.JSON(http.StatusCreated, MessageResponse{Message: "Usuário criado com sucesso", UID: user.ID})
}

// Delete godoc
// @Summary      Delete an admin account
// @Tags         admin
// @Produce      json
// @Security     BearerAuth
// @Param        uid  path      string  true  "Account id"
// @Success      200  {object}  MessageResponse
// @Failure      404  {object}  response.ErrorResponse
// @Router       /api/users/{uid} [delete]
func (h *Handler) Delete(c *gin.Context) {
	if err := h.service.Delete(c.Request.Context(), c.Param("uid")); err != nil {
		response.Fail(c, err)
		return
	}
	c.JSON(http.StatusOK, MessageResponse{Message: "Usuário excluído com sucesso"})
}

// Login godoc
// @Summary      Admin login
// @Tags         admin
// @Accept       json
// @Produce      json
// @Param        request  body      LoginRequest  true  "Credentials"
// @Success      200      {object}  LoginResponse
// @Failure      401      {object}  response.ErrorResponse
// @Router       /api/login [post]
func (h *Handler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Fail(c, ErrInvalidRequest.WithDetails(err.Error()))
		return
	}

	session, err := h.service.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		response.Fail(c, err)
		return
	}

	c.JSON(http.StatusOK, LoginResponse{
		Token:     session.Token,
		ExpiresAt: session.ExpiresAt,
		User:      session.User.ToResponse(),
	})
}
