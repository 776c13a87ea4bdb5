package vehicle

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

var (
	ErrNotFound       = errors.New("Veículo não encontrado")
	ErrPlacaDuplicada = errors.New("Esta placa já está cadastrada")
)

// Vehicle representa um caminhão da frota.
type Vehicle struct {
	ID        uuid.UUID `json:"id"`
	Plate     string    `json:"plate"`
	Model     string    `json:"model"`
	Brand     string    `json:"brand"`
	Year      string    `json:"year"`
	Capacity  *string   `json:"capacity,omitempty"`
	FuelType  string    `json:"fuel_type"`
	Status    string    `json:"status"`
	ImageURL  *string   `json:"image_url,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// CreateInput contém os campos de cadastro de veículo.
type CreateInput struct {
	Plate    string  `json:"plate"`
	Model    string  `json:"model"`
	Brand    string  `json:"brand"`
	Year     string  `json:"year"`
	Capacity *string `json:"capacity"`
	FuelType string  `json:"fuel_type"`
	ImageURL *string `json:"image_url"`
}

// UpdateInput aplica patch parcial; campos nil não mudam.
type UpdateInput struct {
	Plate    *string `json:"plate"`
	Model    *string `json:"model"`
	Brand    *string `json:"brand"`
	Year     *string `json:"year"`
	Capacity *string `json:"capacity"`
	FuelType *string `json:"fuel_type"`
	Status   *string `json:"status"`
	ImageURL *string `json:"image_url"`
}

func validFuelType(value string) bool {
	switch value {
	case "diesel", "gasoline", "ethanol":
		return true
	}
	return false
}

func validStatus(value string) bool {
	switch value {
	case "active", "inactive", "maintenance":
		return true
	}
	return false
}

// empty informa se o patch não altera nenhum campo.
func (in UpdateInput) empty() bool {
	return in.Plate == nil && in.Model == nil && in.Brand == nil &&
		in.Year == nil && in.Capacity == nil && in.FuelType == nil &&
		in.Status == nil && in.ImageURL == nil
}
