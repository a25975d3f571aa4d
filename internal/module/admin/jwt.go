package admin

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/Juninho21/split-de-pagamentos/internal/shared/middleware"
)

// Claims represents admin session token claims.
type Claims struct {
	jwt.RegisteredClaims
	AdminID string `json:"admin_id"`
	Email   string `json:"email"`
}

// JWTConfig holds JWT configuration.
type JWTConfig struct {
	Secret            string
	AccessTokenExpiry time.Duration
	Issuer            string
}

// DefaultJWTConfig returns default JWT configuration.
func DefaultJWTConfig() *JWTConfig {
	return &JWTConfig{
		AccessTokenExpiry: 12 * time.Hour,
		Issuer:            "splitpay",
	}
}

// JWTManager issues and validates admin session tokens.
type JWTManager struct {
	config *JWTConfig
	now    func() time.Time
}

// NewJWTManager creates a new JWT manager.
func NewJWTManager(config *JWTConfig) *JWTManager {
	if config == nil {
		config = DefaultJWTConfig()
	}
	if config.AccessTokenExpiry == 0 {
		config.AccessTokenExpiry = DefaultJWTConfig().AccessTokenExpiry
	}
	if config.Issuer == "" {
		config.Issuer = DefaultJWTConfig().Issuer
	}
	return &JWTManager{config: config, now: time.Now}
}

// GenerateAccessToken signs a session token for user.
func (m *JWTManager) GenerateAccessToken(user *User) (string, time.Time, error) {
	if m.config.Secret == "" {
		return "", time.Time{}, errors.New("jwt secret not configured")
	}
	now := m.now()
	expiresAt := now.Add(m.config.AccessTokenExpiry)
	claims := &Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    m.config.Issuer,
			Subject:   user.ID,
			ExpiresAt: jwt.NewNumericDate(expiresAt),
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
			ID:        uuid.New().String(),
		},
		AdminID: user.ID,
		Email:   user.Email,
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(m.config.Secret))
	if err != nil {
		return "", time.Time{}, fmt.Errorf("sign access token: %w", err)
	}
	return signed, expiresAt, nil
}

// ParseAccessToken validates a token and returns its claims.
func (m *JWTManager) ParseAccessToken(tokenString string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(m.config.Secret), nil
	}, jwt.WithIssuer(m.config.Issuer), jwt.WithTimeFunc(m.now))
	if err != nil {
		return nil, ErrInvalidToken.Wrap(err)
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid || claims.AdminID == "" {
		return nil, ErrInvalidToken
	}
	return claims, nil
}

// ValidateToken implements middleware.TokenValidator.
func (m *JWTManager) ValidateToken(tokenString string) (*middleware.TokenClaims, error) {
	claims, err := m.ParseAccessToken(tokenString)
	if err != nil {
		return nil, err
	}
	return &middleware.TokenClaims{AdminID: claims.AdminID, Email: claims.Email}, nil
}

// AccessTokenExpiry returns the session lifetime.
func (m *JWTManager) AccessTokenExpiry() time.Duration {
	return m.config.AccessTokenExpiry
}
