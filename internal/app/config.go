package app

import (
	"errors"
	"fmt"

	"github.com/Juninho21/split-de-pagamentos/internal/shared/config"
)

// LoadConfig loads application configuration.
func LoadConfig() (*config.Config, error) {
	return config.Load()
}

// ValidateServing rejects configurations the HTTP server cannot run with.
// It returns the gateway settings that are unset as warnings; onboarding and
// payments fail at request time without them, so startup still proceeds.
func ValidateServing(cfg *config.Config) (missing []string, err error) {
	if cfg.Auth.Enabled && cfg.Auth.JWTSecret == "" {
		return nil, errors.New("auth.enabled requires auth.jwt_secret")
	}
	if cfg.Webhook.Workers < 1 {
		return nil, fmt.Errorf("webhook.workers must be positive, got %d", cfg.Webhook.Workers)
	}

	settings := []struct {
		name  string
		value string
	}{
		{"MP_APP_ID", cfg.MercadoPago.AppID},
		{"MP_CLIENT_SECRET", cfg.MercadoPago.ClientSecret},
		{"MP_ACCESS_TOKEN", cfg.MercadoPago.AccessToken},
		{"REDIRECT_URI", cfg.MercadoPago.RedirectURI},
	}
	for _, s := range settings {
		if s.value == "" {
			missing = append(missing, s.name)
		}
	}
	return missing, nil
}
