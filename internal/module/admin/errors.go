package admin

import apperrors "github.com/Juninho21/split-de-pagamentos/internal/shared/errors"

var (
	ErrUserNotFound       = apperrors.NotFound("USER_NOT_FOUND", "Usuário não encontrado.")
	ErrEmailAlreadyExists = apperrors.Conflict("EMAIL_ALREADY_EXISTS", "E-mail já cadastrado.")
	ErrInvalidEmail       = apperrors.Validation("INVALID_EMAIL", "E-mail inválido.")
	ErrPasswordTooShort   = apperrors.Validation("PASSWORD_TOO_SHORT", "A senha deve ter pelo menos 6 caracteres.")
	ErrPasswordTooLong    = apperrors.Validation("PASSWORD_TOO_LONG", "A senha deve ter no máximo 72 bytes.")
	ErrInvalidRequest     = apperrors.Validation("INVALID_REQUEST", "Requisição inválida.")
	ErrInvalidCredentials = apperrors.Unauthorized("INVALID_CREDENTIALS", "E-mail ou senha inválidos.")
	ErrInvalidToken       = apperrors.Unauthorized("INVALID_TOKEN", "Token inválido ou expirado.")
)
