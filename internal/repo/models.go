package repo

import (
	"time"

	"github.com/google/uuid"
)

// Usuario representa um operador do backoffice da transportadora.
type Usuario struct {
	ID              uuid.UUID
	Nome            string
	Email           string
	Telefone        string
	Papel           string
	SenhaHash       string
	Ativo           bool
	EmailConfirmado bool
	UltimoLogin     *time.Time
	CriadoEm        time.Time
	AtualizadoEm    time.Time
}

// TokenRefresh modela tabela de refresh tokens.
type TokenRefresh struct {
	ID        uuid.UUID
	Subject   uuid.UUID
	TokenHash string
	Expiracao time.Time
	CriadoEm  time.Time
	Revogado  bool
}

// InsertUsuarioParams agrupa os campos de criação de usuário.
// Confirmado entra como TRUE apenas em contas criadas por administrador.
type InsertUsuarioParams struct {
	ID         uuid.UUID
	Nome       string
	Email      string
	Telefone   string
	Papel      string
	SenhaHash  string
	Confirmado bool
}

// UpdateUsuarioParams aplica patch parcial; campos nil não mudam.
type UpdateUsuarioParams struct {
	Nome      *string
	Email     *string
	Telefone  *string
	Papel     *string
	Status    *string
	SenhaHash *string
}

// InsertRefreshTokenParams agrupa os campos do refresh token.
type InsertRefreshTokenParams struct {
	ID        uuid.UUID
	Subject   uuid.UUID
	TokenHash string
	Expiracao time.Time
	CriadoEm  time.Time
}
