package vehicle

import (
	"context"

	"github.com/google/uuid"

	"github.com/rotaforte/frota/internal/util"
)

type repository interface {
	List(ctx context.Context) ([]Vehicle, error)
	GetByID(ctx context.Context, id uuid.UUID) (*Vehicle, error)
	Create(ctx context.Context, input CreateInput) (*Vehicle, error)
	Update(ctx context.Context, id uuid.UUID, input UpdateInput) (*Vehicle, error)
	Delete(ctx context.Context, id uuid.UUID) error
	ToggleStatus(ctx context.Context, id uuid.UUID) (*Vehicle, error)
}

// Service aplica as regras de cadastro da frota.
type Service struct {
	repo repository
}

// NewService cria o serviço de veículos.
func NewService(repo repository) *Service {
	return &Service{repo: repo}
}

// List devolve todos os veículos.
func (s *Service) List(ctx context.Context) ([]Vehicle, error) {
	return s.repo.List(ctx)
}

// Get busca um veículo por id.
func (s *Service) Get(ctx context.Context, id uuid.UUID) (*Vehicle, error) {
	return s.repo.GetByID(ctx, id)
}

// Create valida e insere um veículo; status inicial é active.
func (s *Service) Create(ctx context.Context, input CreateInput) (*Vehicle, error) {
	if err := util.RequireString(input.Plate, "Placa"); err != nil {
		return nil, err
	}
	if err := util.RequireString(input.Model, "Modelo"); err != nil {
		return nil, err
	}
	if err := util.RequireString(input.Brand, "Marca"); err != nil {
		return nil, err
	}
	if err := util.RequireString(input.Year, "Ano"); err != nil {
		return nil, err
	}
	if !validFuelType(input.FuelType) {
		return nil, util.Invalid("Tipo de combustível inválido")
	}

	return s.repo.Create(ctx, input)
}

// Update valida os campos presentes e aplica o patch. Patch vazio não
// grava nada: devolve o registro atual, preservando updated_at.
func (s *Service) Update(ctx context.Context, id uuid.UUID, input UpdateInput) (*Vehicle, error) {
	if input.empty() {
		return s.repo.GetByID(ctx, id)
	}
	if input.Plate != nil {
		if err := util.RequireString(*input.Plate, "Placa"); err != nil {
			return nil, err
		}
	}
	if input.Model != nil {
		if err := util.RequireString(*input.Model, "Modelo"); err != nil {
			return nil, err
		}
	}
	if input.FuelType != nil && !validFuelType(*input.FuelType) {
		return nil, util.Invalid("Tipo de combustível inválido")
	}
	if input.Status != nil && !validStatus(*input.Status) {
		return nil, util.Invalid("Status inválido")
	}

	return s.repo.Update(ctx, id, input)
}

// Delete remove o veículo.
func (s *Service) Delete(ctx context.Context, id uuid.UUID) error {
	return s.repo.Delete(ctx, id)
}

// ToggleStatus alterna o status do veículo.
func (s *Service) ToggleStatus(ctx context.Context, id uuid.UUID) (*Vehicle, error) {
	return s.repo.ToggleStatus(ctx, id)
}
