package trip

import (
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/rotaforte/frota/internal/util"
)

var (
	ErrNotFound          = errors.New("Viagem não encontrada")
	ErrMotoristaInvalido = util.Invalid("Motorista não encontrado ou inativo")
	ErrVeiculoInvalido   = util.Invalid("Veículo não encontrado ou indisponível")
)

// FuelTrip representa um abastecimento/viagem registrado.
type FuelTrip struct {
	ID           uuid.UUID   `json:"id"`
	TripDate     string      `json:"trip_date"`
	Destination  string      `json:"destination"`
	DriverID     uuid.UUID   `json:"driver_id"`
	VehicleID    uuid.UUID   `json:"vehicle_id"`
	FuelCost     float64     `json:"fuel_cost"`
	Observations *string     `json:"observations,omitempty"`
	HasImage     bool        `json:"has_image"`
	Status       string      `json:"status"`
	CreatedAt    time.Time   `json:"created_at"`
	UpdatedAt    time.Time   `json:"updated_at"`
	Driver       *TripDriver `json:"driver,omitempty"`
	Vehicle      *TripTruck  `json:"vehicle,omitempty"`
}

// TripDriver é a projeção do motorista embutida na viagem.
type TripDriver struct {
	ID   uuid.UUID `json:"id"`
	Name string    `json:"name"`
}

// TripTruck é a projeção do veículo embutida na viagem.
type TripTruck struct {
	ID    uuid.UUID `json:"id"`
	Plate string    `json:"plate"`
	Model string    `json:"model"`
	Brand string    `json:"brand"`
}

// CreateInput contém os campos de registro de viagem.
type CreateInput struct {
	TripDate     string    `json:"trip_date"`
	Destination  string    `json:"destination"`
	DriverID     uuid.UUID `json:"driver_id"`
	VehicleID    uuid.UUID `json:"vehicle_id"`
	FuelCost     float64   `json:"fuel_cost"`
	Observations *string   `json:"observations"`
	HasImage     bool      `json:"has_image"`
	Status       string    `json:"status"`
}

// UpdateInput aplica patch parcial; campos nil não mudam.
type UpdateInput struct {
	TripDate     *string    `json:"trip_date"`
	Destination  *string    `json:"destination"`
	DriverID     *uuid.UUID `json:"driver_id"`
	VehicleID    *uuid.UUID `json:"vehicle_id"`
	FuelCost     *float64   `json:"fuel_cost"`
	Observations *string    `json:"observations"`
	HasImage     *bool      `json:"has_image"`
	Status       *string    `json:"status"`
}

// empty informa se o patch não altera nenhum campo.
func (in UpdateInput) empty() bool {
	return in.TripDate == nil && in.Destination == nil && in.DriverID == nil &&
		in.VehicleID == nil && in.FuelCost == nil && in.Observations == nil &&
		in.HasImage == nil && in.Status == nil
}
