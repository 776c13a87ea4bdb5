package trip

import (
	"context"
	"errors"

	"github.com/google/uuid"

	"github.com/rotaforte/frota/internal/driver"
	"github.com/rotaforte/frota/internal/util"
	"github.com/rotaforte/frota/internal/vehicle"
)

type repository interface {
	List(ctx context.Context) ([]FuelTrip, error)
	GetByID(ctx context.Context, id uuid.UUID) (*FuelTrip, error)
	Create(ctx context.Context, input CreateInput) (*FuelTrip, error)
	Update(ctx context.Context, id uuid.UUID, input UpdateInput) (*FuelTrip, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type driverDirectory interface {
	GetByID(ctx context.Context, id uuid.UUID) (*driver.Driver, error)
}

type vehicleDirectory interface {
	GetByID(ctx context.Context, id uuid.UUID) (*vehicle.Vehicle, error)
}

// Service aplica as regras de registro de viagens e abastecimentos.
// Referências a motorista e veículo são verificadas no servidor antes
// de gravar, nunca confiando apenas nos dropdowns do cliente.
type Service struct {
	repo     repository
	drivers  driverDirectory
	vehicles vehicleDirectory
}

// NewService cria o serviço de viagens.
func NewService(repo repository, drivers driverDirectory, vehicles vehicleDirectory) *Service {
	return &Service{repo: repo, drivers: drivers, vehicles: vehicles}
}

func validStatus(value string) bool {
	return value == "completed" || value == "pending"
}

func (s *Service) checkDriver(ctx context.Context, id uuid.UUID) error {
	d, err := s.drivers.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, driver.ErrNotFound) {
			return ErrMotoristaInvalido
		}
		return err
	}
	if d.Status != "active" {
		return ErrMotoristaInvalido
	}
	return nil
}

func (s *Service) checkVehicle(ctx context.Context, id uuid.UUID) error {
	v, err := s.vehicles.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, vehicle.ErrNotFound) {
			return ErrVeiculoInvalido
		}
		return err
	}
	if v.Status != "active" {
		return ErrVeiculoInvalido
	}
	return nil
}

// List devolve todas as viagens.
func (s *Service) List(ctx context.Context) ([]FuelTrip, error) {
	return s.repo.List(ctx)
}

// Get busca uma viagem por id.
func (s *Service) Get(ctx context.Context, id uuid.UUID) (*FuelTrip, error) {
	return s.repo.GetByID(ctx, id)
}

// Create valida e registra uma viagem; status default é pending.
func (s *Service) Create(ctx context.Context, input CreateInput) (*FuelTrip, error) {
	if err := util.RequireString(input.TripDate, "Data da viagem"); err != nil {
		return nil, err
	}
	if err := util.RequireString(input.Destination, "Destino"); err != nil {
		return nil, err
	}
	if input.DriverID == uuid.Nil {
		return nil, util.Invalid("Motorista é obrigatório")
	}
	if input.VehicleID == uuid.Nil {
		return nil, util.Invalid("Veículo é obrigatório")
	}
	if input.FuelCost < 0 {
		return nil, util.Invalid("Custo do combustível deve ser maior que zero")
	}
	if input.Status == "" {
		input.Status = "pending"
	}
	if !validStatus(input.Status) {
		return nil, util.Invalid("Status inválido")
	}

	if err := s.checkDriver(ctx, input.DriverID); err != nil {
		return nil, err
	}
	if err := s.checkVehicle(ctx, input.VehicleID); err != nil {
		return nil, err
	}

	return s.repo.Create(ctx, input)
}

// Update valida os campos presentes e aplica o patch. Patch vazio não
// grava nada: devolve o registro atual, preservando updated_at.
func (s *Service) Update(ctx context.Context, id uuid.UUID, input UpdateInput) (*FuelTrip, error) {
	if input.empty() {
		return s.repo.GetByID(ctx, id)
	}
	if input.TripDate != nil {
		if err := util.RequireString(*input.TripDate, "Data da viagem"); err != nil {
			return nil, err
		}
	}
	if input.Destination != nil {
		if err := util.RequireString(*input.Destination, "Destino"); err != nil {
			return nil, err
		}
	}
	if input.FuelCost != nil && *input.FuelCost < 0 {
		return nil, util.Invalid("Custo do combustível deve ser maior que zero")
	}
	if input.Status != nil && !validStatus(*input.Status) {
		return nil, util.Invalid("Status inválido")
	}

	if input.DriverID != nil {
		if err := s.checkDriver(ctx, *input.DriverID); err != nil {
			return nil, err
		}
	}
	if input.VehicleID != nil {
		if err := s.checkVehicle(ctx, *input.VehicleID); err != nil {
			return nil, err
		}
	}

	return s.repo.Update(ctx, id, input)
}

// Delete remove a viagem.
func (s *Service) Delete(ctx context.Context, id uuid.UUID) error {
	return s.repo.Delete(ctx, id)
}
