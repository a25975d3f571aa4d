package oauth

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"golang.org/x/oauth2"
)

// Config holds the marketplace application's OAuth settings.
type Config struct {
	ClientID     string
	ClientSecret string
	RedirectURL  string
	AuthURL      string
	TokenURL     string
}

// Grant is the result of a successful code exchange.
type Grant struct {
	SellerID     string
	AccessToken  string
	RefreshToken string
	PublicKey    string
	Scope        string
	LiveMode     bool
	Expiry       time.Time
}

// ExchangeError carries the gateway's explanation for a rejected exchange.
type ExchangeError struct {
	StatusCode  int
	Code        string
	Description string
	Err         error
}

func (e *ExchangeError) Error() string {
	switch {
	case e.Description != "":
		return fmt.Sprintf("oauth exchange failed (%d %s): %s", e.StatusCode, e.Code, e.Description)
	case e.Code != "":
		return fmt.Sprintf("oauth exchange failed (%d): %s", e.StatusCode, e.Code)
	default:
		return fmt.Sprintf("oauth exchange failed: %v", e.Err)
	}
}

func (e *ExchangeError) Unwrap() error { return e.Err }

// Detail returns the most specific human-readable reason.
func (e *ExchangeError) Detail() string {
	if e.Description != "" {
		return e.Description
	}
	if e.Code != "" {
		return e.Code
	}
	if e.Err != nil {
		return e.Err.Error()
	}
	return "unknown error"
}

// MercadoPagoProvider implements the seller authorization-code flow.
type MercadoPagoProvider struct {
	config     *oauth2.Config
	httpClient *http.Client
}

// NewMercadoPagoProvider creates a provider. httpClient may be nil.
func NewMercadoPagoProvider(cfg *Config, httpClient *http.Client) *MercadoPagoProvider {
	return &MercadoPagoProvider{
		config: &oauth2.Config{
			ClientID:     cfg.ClientID,
			ClientSecret: cfg.ClientSecret,
			RedirectURL:  cfg.RedirectURL,
			Endpoint: oauth2.Endpoint{
				AuthURL:   cfg.AuthURL,
				TokenURL:  cfg.TokenURL,
				AuthStyle: oauth2.AuthStyleInParams,
			},
		},
		httpClient: httpClient,
	}
}

// Name returns the provider name.
func (p *MercadoPagoProvider) Name() string {
	return "mercadopago"
}

// AuthURL returns the seller authorization URL. It carries no state and is
// identical on every call.
func (p *MercadoPagoProvider) AuthURL() string {
	return p.config.AuthCodeURL("", oauth2.SetAuthURLParam("platform_id", "mp"))
}

// Exchange trades an authorization code for seller credentials.
func (p *MercadoPagoProvider) Exchange(ctx context.Context, code string) (*Grant, error) {
	if p.httpClient != nil {
		ctx = context.WithValue(ctx, oauth2.HTTPClient, p.httpClient)
	}

	token, err := p.config.Exchange(ctx, code)
	if err != nil {
		return nil, toExchangeError(err)
	}

	sellerID, err := extraString(token, "user_id")
	if err != nil {
		return nil, &ExchangeError{StatusCode: http.StatusOK, Err: err}
	}
	publicKey, _ := extraString(token, "public_key")
	scope, _ := extraString(token, "scope")
	liveMode, _ := token.Extra("live_mode").(bool)

	return &Grant{
		SellerID:     sellerID,
		AccessToken:  token.AccessToken,
		RefreshToken: token.RefreshToken,
		PublicKey:    publicKey,
		Scope:        scope,
		LiveMode:     liveMode,
		Expiry:       token.Expiry,
	}, nil
}

func toExchangeError(err error) error {
	var retrieveErr *oauth2.RetrieveError
	if errors.As(err, &retrieveErr) {
		ex := &ExchangeError{
			Code:        retrieveErr.ErrorCode,
			Description: retrieveErr.ErrorDescription,
			Err:         err,
		}
		if retrieveErr.Response != nil {
			ex.StatusCode = retrieveErr.Response.StatusCode
		}
		// Mercado Pago answers {"message": "...", "error": "..."}.
		if ex.Description == "" && len(retrieveErr.Body) > 0 {
			var body struct {
				Message string `json:"message"`
				Error   string `json:"error"`
			}
			if json.Unmarshal(retrieveErr.Body, &body) == nil {
				ex.Description = body.Message
				if ex.Code == "" {
					ex.Code = body.Error
				}
			}
		}
		return ex
	}
	return &ExchangeError{Err: err}
}

// extraString reads a token response field that may be a JSON number or string.
func extraString(token *oauth2.Token, key string) (string, error) {
	switch v := token.Extra(key).(type) {
	case string:
		if strings.TrimSpace(v) == "" {
			return "", fmt.Errorf("token response field %q is empty", key)
		}
		return v, nil
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64), nil
	case json.Number:
		return v.String(), nil
	case int64:
		return strconv.FormatInt(v, 10), nil
	case nil:
		return "", fmt.Errorf("token response missing %q", key)
	default:
		return fmt.Sprint(v), nil
	}
}
