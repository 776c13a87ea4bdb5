package driver

import (
	"context"

	"github.com/google/uuid"

	"github.com/rotaforte/frota/internal/util"
)

type repository interface {
	List(ctx context.Context) ([]Driver, error)
	GetByID(ctx context.Context, id uuid.UUID) (*Driver, error)
	Create(ctx context.Context, input CreateInput) (*Driver, error)
	Update(ctx context.Context, id uuid.UUID, input UpdateInput) (*Driver, error)
	Delete(ctx context.Context, id uuid.UUID) error
	ToggleStatus(ctx context.Context, id uuid.UUID) (*Driver, error)
}

// Service aplica as regras de cadastro de motoristas.
type Service struct {
	repo repository
}

// NewService cria o serviço de motoristas.
func NewService(repo repository) *Service {
	return &Service{repo: repo}
}

func validateCategory(category string) error {
	if category != "D" && category != "E" {
		return util.Invalid("Categoria da CNH deve ser D ou E")
	}
	return nil
}

// List devolve todos os motoristas.
func (s *Service) List(ctx context.Context) ([]Driver, error) {
	return s.repo.List(ctx)
}

// Get busca um motorista por id.
func (s *Service) Get(ctx context.Context, id uuid.UUID) (*Driver, error) {
	return s.repo.GetByID(ctx, id)
}

// Create valida e insere um motorista; status inicial é active.
func (s *Service) Create(ctx context.Context, input CreateInput) (*Driver, error) {
	if err := util.RequireString(input.Name, "Nome"); err != nil {
		return nil, err
	}
	if err := util.RequireString(input.CPF, "CPF"); err != nil {
		return nil, err
	}
	if err := util.RequireString(input.Phone, "Telefone"); err != nil {
		return nil, err
	}
	if err := util.RequireString(input.CNH, "CNH"); err != nil {
		return nil, err
	}
	if err := validateCategory(input.CNHCategory); err != nil {
		return nil, err
	}
	if err := util.RequireString(input.CNHExpiry, "Data de vencimento da CNH"); err != nil {
		return nil, err
	}

	return s.repo.Create(ctx, input)
}

// Update valida os campos presentes e aplica o patch. Patch vazio não
// grava nada: devolve o registro atual, preservando updated_at.
func (s *Service) Update(ctx context.Context, id uuid.UUID, input UpdateInput) (*Driver, error) {
	if input.empty() {
		return s.repo.GetByID(ctx, id)
	}
	if input.Name != nil {
		if err := util.RequireString(*input.Name, "Nome"); err != nil {
			return nil, err
		}
	}
	if input.CPF != nil {
		if err := util.RequireString(*input.CPF, "CPF"); err != nil {
			return nil, err
		}
	}
	if input.CNH != nil {
		if err := util.RequireString(*input.CNH, "CNH"); err != nil {
			return nil, err
		}
	}
	if input.CNHCategory != nil {
		if err := validateCategory(*input.CNHCategory); err != nil {
			return nil, err
		}
	}
	if input.Status != nil && *input.Status != "active" && *input.Status != "inactive" {
		return nil, util.Invalid("Status inválido")
	}

	return s.repo.Update(ctx, id, input)
}

// Delete remove o motorista.
func (s *Service) Delete(ctx context.Context, id uuid.UUID) error {
	return s.repo.Delete(ctx, id)
}

// ToggleStatus alterna o status do motorista.
func (s *Service) ToggleStatus(ctx context.Context, id uuid.UUID) (*Driver, error) {
	return s.repo.ToggleStatus(ctx, id)
}
