package util

import (
	"net/mail"
	"strings"

	"github.com/rotaforte/frota/pkg/fleet"
)

// ValidationError marca entrada inválida do cliente. Os handlers só
// respondem 400 para este tipo; qualquer outro erro é tratado como
// falha interna e sai com mensagem genérica.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string { return e.Message }

// Invalid cria um erro de validação com a mensagem dada.
func Invalid(message string) error {
	return &ValidationError{Message: message}
}

// ValidateEmail retorna erro para e-mails inválidos.
func ValidateEmail(email string) error {
	email = strings.TrimSpace(email)
	if email == "" {
		return Invalid("email obrigatório")
	}
	if _, err := mail.ParseAddress(email); err != nil {
		return Invalid("Email inválido")
	}
	return nil
}

// ValidatePassword verifica requisitos mínimos de senha.
func ValidatePassword(password string) error {
	if len(password) < 6 {
		return Invalid(fleet.MsgWeakPassword)
	}
	return nil
}

// RequireString garante string não vazia.
func RequireString(value, field string) error {
	if strings.TrimSpace(value) == "" {
		return Invalid(field + " obrigatório")
	}
	return nil
}
