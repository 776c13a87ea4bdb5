package supplier

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

var (
	ErrNotFound      = errors.New("Fornecedor não encontrado")
	ErrCNPJDuplicado = errors.New("Este CNPJ já está cadastrado")
)

// Supplier representa um fornecedor de produtos.
type Supplier struct {
	ID            uuid.UUID `json:"id"`
	Name          string    `json:"name"`
	CNPJ          string    `json:"cnpj"`
	Phone         string    `json:"phone"`
	Email         string    `json:"email"`
	Address       string    `json:"address"`
	ContactPerson string    `json:"contact_person"`
	Status        string    `json:"status"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

// CreateInput contém os campos de cadastro de fornecedor.
type CreateInput struct {
	Name          string `json:"name"`
	CNPJ          string `json:"cnpj"`
	Phone         string `json:"phone"`
	Email         string `json:"email"`
	Address       string `json:"address"`
	ContactPerson string `json:"contact_person"`
}

// UpdateInput aplica patch parcial; campos nil não mudam.
type UpdateInput struct {
	Name          *string `json:"name"`
	CNPJ          *string `json:"cnpj"`
	Phone         *string `json:"phone"`
	Email         *string `json:"email"`
	Address       *string `json:"address"`
	ContactPerson *string `json:"contact_person"`
	Status        *string `json:"status"`
}

// empty informa se o patch não altera nenhum campo.
func (in UpdateInput) empty() bool {
	return in.Name == nil && in.CNPJ == nil && in.Phone == nil &&
		in.Email == nil && in.Address == nil && in.ContactPerson == nil &&
		in.Status == nil
}
