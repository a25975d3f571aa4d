package onboarding

import apperrors "github.com/Juninho21/split-de-pagamentos/internal/shared/errors"

// Module errors.
var (
	ErrMissingCode   = apperrors.Validation("MISSING_CODE", "Código não fornecido.")
	ErrOAuthExchange = apperrors.Upstream("OAUTH_EXCHANGE_FAILED", "Erro ao conectar")
)
