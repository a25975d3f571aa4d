package admin

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/Juninho21/split-de-pagamentos/internal/shared/middleware"
	"github.com/Juninho21/split-de-pagamentos/internal/shared/response"
)

func init() {
	gin.SetMode(gin.TestMode)
}

const testSecret = "test-secret-key-that-is-long-enough"

func newTestService() (*Service, *MemoryRepository) {
	repo := NewMemoryRepository()
	svc := NewService(repo, NewJWTManager(&JWTConfig{Secret: testSecret}), zap.NewNop())
	svc.bcryptCost = bcrypt.MinCost
	return svc, repo
}

// --- JWT ---

func TestNewJWTManager(t *testing.T) {
	t.Run("fills defaults", func(t *testing.T) {
		m := NewJWTManager(&JWTConfig{Secret: testSecret})
		assert.Equal(t, 12*time.Hour, m.AccessTokenExpiry())
	})

	t.Run("nil config uses defaults", func(t *testing.T) {
		assert.Equal(t, 12*time.Hour, NewJWTManager(nil).AccessTokenExpiry())
	})
}

func TestJWTManager_RoundTrip(t *testing.T) {
	m := NewJWTManager(&JWTConfig{Secret: testSecret, AccessTokenExpiry: time.Minute})
	user := &User{ID: "u-1", Email: "admin@splitpay.com"}

	token, expiresAt, err := m.GenerateAccessToken(user)
	require.NoError(t, err)
	assert.True(t, expiresAt.After(time.Now()))

	claims, err := m.ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, "u-1", claims.AdminID)
	assert.Equal(t, "admin@splitpay.com", claims.Email)
}

func TestJWTManager_Rejects(t *testing.T) {
	m := NewJWTManager(&JWTConfig{Secret: testSecret, AccessTokenExpiry: time.Minute})
	token, _, err := m.GenerateAccessToken(&User{ID: "u-1"})
	require.NoError(t, err)

	t.Run("wrong secret", func(t *testing.T) {
		other := NewJWTManager(&JWTConfig{Secret: "another-secret-key-long-enough"})
		_, err := other.ValidateToken(token)
		assert.ErrorIs(t, err, ErrInvalidToken)
	})

	t.Run("expired", func(t *testing.T) {
		late := NewJWTManager(&JWTConfig{Secret: testSecret})
		late.now = func() time.Time { return time.Now().Add(time.Hour) }
		_, err := late.ValidateToken(token)
		assert.ErrorIs(t, err, ErrInvalidToken)
	})

	t.Run("garbage", func(t *testing.T) {
		_, err := m.ValidateToken("not-a-token")
		assert.ErrorIs(t, err, ErrInvalidToken)
	})

	t.Run("missing secret cannot sign", func(t *testing.T) {
		_, _, err := NewJWTManager(&JWTConfig{}).GenerateAccessToken(&User{ID: "u"})
		assert.Error(t, err)
	})
}

// --- Service ---

func TestService_Create(t *testing.T) {
	ctx := context.Background()

	t.Run("hashes the password", func(t *testing.T) {
		svc, repo := newTestService()
		user, err := svc.Create(ctx, CreateInput{Email: " Admin@SplitPay.com ", Password: "admin123456", DisplayName: "Administrador"})
		require.NoError(t, err)
		assert.NotEmpty(t, user.ID)
		assert.Equal(t, "admin@splitpay.com", user.Email)

		stored, err := repo.GetByID(ctx, user.ID)
		require.NoError(t, err)
		assert.NotEqual(t, "admin123456", stored.PasswordHash)
		assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(stored.PasswordHash), []byte("admin123456")))
	})

	t.Run("password shorter than six", func(t *testing.T) {
		svc, repo := newTestService()
		_, err := svc.Create(ctx, CreateInput{Email: "a@b.com", Password: "12345"})
		assert.ErrorIs(t, err, ErrPasswordTooShort)

		all, _ := repo.List(ctx)
		assert.Empty(t, all)
	})

	t.Run("password longer than bcrypt accepts", func(t *testing.T) {
		svc, repo := newTestService()
		_, err := svc.Create(ctx, CreateInput{Email: "a@b.com", Password: strings.Repeat("x", 73)})
		assert.ErrorIs(t, err, ErrPasswordTooLong)

		all, _ := repo.List(ctx)
		assert.Empty(t, all)

		_, err = svc.Create(ctx, CreateInput{Email: "a@b.com", Password: strings.Repeat("x", 72)})
		assert.NoError(t, err)
	})

	t.Run("invalid email", func(t *testing.T) {
		svc, _ := newTestService()
		for _, email := range []string{"nope", "", "ops@", "Ops <ops@example.com>"} {
			_, err := svc.Create(ctx, CreateInput{Email: email, Password: "123456"})
			assert.ErrorIs(t, err, ErrInvalidEmail, email)
		}
	})

	t.Run("duplicate email", func(t *testing.T) {
		svc, _ := newTestService()
		_, err := svc.Create(ctx, CreateInput{Email: "a@b.com", Password: "123456"})
		require.NoError(t, err)
		_, err = svc.Create(ctx, CreateInput{Email: "A@b.com", Password: "654321"})
		assert.ErrorIs(t, err, ErrEmailAlreadyExists)
	})
}

func TestService_Upsert(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTestService()

	first, created, err := svc.Upsert(ctx, CreateInput{Email: "admin@splitpay.com", Password: "admin123456", DisplayName: "Administrador"})
	require.NoError(t, err)
	assert.True(t, created)

	second, created, err := svc.Upsert(ctx, CreateInput{Email: "admin@splitpay.com", Password: "newpassword"})
	require.NoError(t, err)
	assert.False(t, created)
	assert.Equal(t, first.ID, second.ID)
	assert.Equal(t, "Administrador", second.DisplayName)

	_, err = svc.Login(ctx, "admin@splitpay.com", "admin123456")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
	_, err = svc.Login(ctx, "admin@splitpay.com", "newpassword")
	assert.NoError(t, err)

	_, _, err = svc.Upsert(ctx, CreateInput{Email: "admin@splitpay.com", Password: strings.Repeat("é", 40)})
	assert.ErrorIs(t, err, ErrPasswordTooLong)
}

func TestService_Login(t *testing.T) {
	ctx := context.Background()
	svc, repo := newTestService()
	user, err := svc.Create(ctx, CreateInput{Email: "a@b.com", Password: "secret1"})
	require.NoError(t, err)

	t.Run("valid credentials stamp last sign-in", func(t *testing.T) {
		session, err := svc.Login(ctx, "a@b.com", "secret1")
		require.NoError(t, err)
		assert.NotEmpty(t, session.Token)

		stored, _ := repo.GetByID(ctx, user.ID)
		require.NotNil(t, stored.LastSignInAt)
	})

	t.Run("wrong password", func(t *testing.T) {
		_, err := svc.Login(ctx, "a@b.com", "wrong")
		assert.ErrorIs(t, err, ErrInvalidCredentials)
	})

	t.Run("unknown email", func(t *testing.T) {
		_, err := svc.Login(ctx, "x@y.com", "secret1")
		assert.ErrorIs(t, err, ErrInvalidCredentials)
	})
}

func TestService_Delete(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTestService()
	user, err := svc.Create(ctx, CreateInput{Email: "a@b.com", Password: "123456"})
	require.NoError(t, err)

	require.NoError(t, svc.Delete(ctx, user.ID))
	assert.ErrorIs(t, svc.Delete(ctx, user.ID), ErrUserNotFound)
}

// --- Handler ---

func setupRouter(svc *Service, protect bool) *gin.Engine {
	r := gin.New()
	api := r.Group("/api")
	h := NewHandler(svc)
	h.RegisterPublicRoutes(api)
	protected := api.Group("")
	if protect {
		protected.Use(middleware.RequireAdmin(svc.jwt))
	}
	h.RegisterRoutes(protected)
	return r
}

func do(r http.Handler, method, path, body, token string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestHandler_Users(t *testing.T) {
	svc, _ := newTestService()
	r := setupRouter(svc, false)

	w := do(r, http.MethodPost, "/api/users", `{"email":"a@b.com","password":"123456","displayName":"Ana"}`, "")
	require.Equal(t, http.StatusCreated, w.Code)
	var created MessageResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &created))
	assert.NotEmpty(t, created.UID)
	assert.NotEmpty(t, created.Message)

	w = do(r, http.MethodPost, "/api/users", `{"email":"a@b.com","password":"123456"}`, "")
	assert.Equal(t, http.StatusConflict, w.Code)

	w = do(r, http.MethodPost, "/api/users", `{"email":"c@d.com","password":"123"}`, "")
	assert.Equal(t, http.StatusBadRequest, w.Code)
	var errBody response.ErrorResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &errBody))
	assert.Equal(t, "PASSWORD_TOO_SHORT", errBody.Code)

	w = do(r, http.MethodPost, "/api/users", `{"email":"c@d.com","password":"`+strings.Repeat("a", 100)+`"}`, "")
	assert.Equal(t, http.StatusBadRequest, w.Code)
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &errBody))
	assert.Equal(t, "PASSWORD_TOO_LONG", errBody.Code)

	w = do(r, http.MethodGet, "/api/users", "", "")
	require.Equal(t, http.StatusOK, w.Code)
	var list []map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &list))
	require.Len(t, list, 1)
	assert.Equal(t, created.UID, list[0]["uid"])
	assert.Equal(t, "Ana", list[0]["displayName"])
	metadata := list[0]["metadata"].(map[string]any)
	assert.NotEmpty(t, metadata["creationTime"])
	assert.Nil(t, metadata["lastSignInTime"])
	assert.NotContains(t, w.Body.String(), "password")

	w = do(r, http.MethodDelete, "/api/users/"+created.UID, "", "")
	assert.Equal(t, http.StatusOK, w.Code)
	w = do(r, http.MethodDelete, "/api/users/"+created.UID, "", "")
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestHandler_LoginProtectsRoutes(t *testing.T) {
	svc, _ := newTestService()
	_, err := svc.Create(context.Background(), CreateInput{Email: "a@b.com", Password: "secret1"})
	require.NoError(t, err)
	r := setupRouter(svc, true)

	w := do(r, http.MethodGet, "/api/users", "", "")
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = do(r, http.MethodPost, "/api/login", `{"email":"a@b.com","password":"wrong1"}`, "")
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = do(r, http.MethodPost, "/api/login", `{"email":"a@b.com","password":"secret1"}`, "")
	require.Equal(t, http.StatusOK, w.Code)
	var login LoginResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &login))
	require.NotEmpty(t, login.Token)

	w = do(r, http.MethodGet, "/api/users", "", login.Token)
	assert.Equal(t, http.StatusOK, w.Code)

	w = do(r, http.MethodGet, "/api/users", "", "tampered."+login.Token)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}
