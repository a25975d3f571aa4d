package seller

import apperrors "github.com/Juninho21/split-de-pagamentos/internal/shared/errors"

// Module errors.
var (
	ErrSellerNotFound  = apperrors.NotFound("SELLER_NOT_FOUND", "Vendedor não encontrado ou não conectado.")
	ErrInvalidSellerID = apperrors.Validation("INVALID_SELLER_ID", "seller id is required")
)
