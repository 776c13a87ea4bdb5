package driver

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

var (
	ErrNotFound     = errors.New("Motorista não encontrado")
	ErrCPFDuplicado = errors.New("Este CPF já está cadastrado")
	ErrCNHDuplicada = errors.New("Esta CNH já está cadastrada")
)

// Driver representa um motorista da frota.
type Driver struct {
	ID          uuid.UUID `json:"id"`
	Name        string    `json:"name"`
	CPF         string    `json:"cpf"`
	Phone       string    `json:"phone"`
	CNH         string    `json:"cnh"`
	CNHCategory string    `json:"cnh_category"`
	CNHExpiry   string    `json:"cnh_expiry"`
	Status      string    `json:"status"`
	ImageURL    *string   `json:"image_url,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// CreateInput contém os campos de cadastro de motorista.
type CreateInput struct {
	Name        string  `json:"name"`
	CPF         string  `json:"cpf"`
	Phone       string  `json:"phone"`
	CNH         string  `json:"cnh"`
	CNHCategory string  `json:"cnh_category"`
	CNHExpiry   string  `json:"cnh_expiry"`
	ImageURL    *string `json:"image_url"`
}

// UpdateInput aplica patch parcial; campos nil não mudam.
type UpdateInput struct {
	Name        *string `json:"name"`
	CPF         *string `json:"cpf"`
	Phone       *string `json:"phone"`
	CNH         *string `json:"cnh"`
	CNHCategory *string `json:"cnh_category"`
	CNHExpiry   *string `json:"cnh_expiry"`
	Status      *string `json:"status"`
	ImageURL    *string `json:"image_url"`
}

// empty informa se o patch não altera nenhum campo.
func (in UpdateInput) empty() bool {
	return in.Name == nil && in.CPF == nil && in.Phone == nil &&
		in.CNH == nil && in.CNHCategory == nil && in.CNHExpiry == nil &&
		in.Status == nil && in.ImageURL == nil
}
