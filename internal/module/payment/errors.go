package payment

import apperrors "github.com/Juninho21/split-de-pagamentos/internal/shared/errors"

var (
	ErrInvalidAmount     = apperrors.Validation("INVALID_AMOUNT", "Valor da transação inválido.")
	ErrInvalidFeePercent = apperrors.Validation("INVALID_FEE_PERCENT", "Comissão deve estar entre 0 e 100.")
	ErrInvalidRequest    = apperrors.Validation("INVALID_REQUEST", "Requisição inválida.")

	ErrPaymentNotFound    = apperrors.NotFound("PAYMENT_NOT_FOUND", "Pagamento não encontrado.")
	ErrPaymentCreation    = apperrors.Upstream("PAYMENT_CREATION_FAILED", "Erro ao processar pagamento")
	ErrPaymentFetch       = apperrors.Upstream("PAYMENT_FETCH_FAILED", "Erro ao consultar pagamento")
	ErrGatewayTimeout     = apperrors.Timeout("GATEWAY_TIMEOUT", "Tempo esgotado ao contatar o Mercado Pago")
	ErrGatewayUnavailable = apperrors.Unavailable("GATEWAY_UNAVAILABLE", "Mercado Pago indisponível, tente novamente")
)
