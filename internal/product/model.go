package product

import (
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/rotaforte/frota/internal/util"
)

var (
	ErrNotFound           = errors.New("Entrada de produto não encontrada")
	ErrFornecedorInvalido = util.Invalid("Fornecedor não encontrado ou inativo")
)

// Entry representa uma entrada de produto recebida de fornecedor.
type Entry struct {
	ID           uuid.UUID      `json:"id"`
	EntryDate    string         `json:"entry_date"`
	ProductType  string         `json:"product_type"`
	SupplierID   uuid.UUID      `json:"supplier_id"`
	Tonnage      float64        `json:"tonnage"`
	Observations *string        `json:"observations,omitempty"`
	HasImage     bool           `json:"has_image"`
	Status       string         `json:"status"`
	CreatedAt    time.Time      `json:"created_at"`
	UpdatedAt    time.Time      `json:"updated_at"`
	Supplier     *EntrySupplier `json:"supplier,omitempty"`
}

// EntrySupplier é a projeção do fornecedor embutida na entrada.
type EntrySupplier struct {
	ID   uuid.UUID `json:"id"`
	Name string    `json:"name"`
}

// CreateInput contém os campos de registro de entrada.
type CreateInput struct {
	EntryDate    string    `json:"entry_date"`
	ProductType  string    `json:"product_type"`
	SupplierID   uuid.UUID `json:"supplier_id"`
	Tonnage      float64   `json:"tonnage"`
	Observations *string   `json:"observations"`
	HasImage     bool      `json:"has_image"`
	Status       string    `json:"status"`
}

// UpdateInput aplica patch parcial; campos nil não mudam.
type UpdateInput struct {
	EntryDate    *string    `json:"entry_date"`
	ProductType  *string    `json:"product_type"`
	SupplierID   *uuid.UUID `json:"supplier_id"`
	Tonnage      *float64   `json:"tonnage"`
	Observations *string    `json:"observations"`
	HasImage     *bool      `json:"has_image"`
	Status       *string    `json:"status"`
}

func validStatus(value string) bool {
	switch value {
	case "received", "pending", "processing":
		return true
	}
	return false
}

// empty informa se o patch não altera nenhum campo.
func (in UpdateInput) empty() bool {
	return in.EntryDate == nil && in.ProductType == nil && in.SupplierID == nil &&
		in.Tonnage == nil && in.Observations == nil && in.HasImage == nil &&
		in.Status == nil
}
