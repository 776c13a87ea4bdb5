package supplier

import (
	"context"

	"github.com/google/uuid"

	"github.com/rotaforte/frota/internal/util"
)

type repository interface {
	List(ctx context.Context) ([]Supplier, error)
	GetByID(ctx context.Context, id uuid.UUID) (*Supplier, error)
	Create(ctx context.Context, input CreateInput) (*Supplier, error)
	Update(ctx context.Context, id uuid.UUID, input UpdateInput) (*Supplier, error)
	Delete(ctx context.Context, id uuid.UUID) error
	ToggleStatus(ctx context.Context, id uuid.UUID) (*Supplier, error)
}

// Service aplica as regras de cadastro de fornecedores.
type Service struct {
	repo repository
}

// NewService cria o serviço de fornecedores.
func NewService(repo repository) *Service {
	return &Service{repo: repo}
}

// List devolve todos os fornecedores.
func (s *Service) List(ctx context.Context) ([]Supplier, error) {
	return s.repo.List(ctx)
}

// Get busca um fornecedor por id.
func (s *Service) Get(ctx context.Context, id uuid.UUID) (*Supplier, error) {
	return s.repo.GetByID(ctx, id)
}

// Create valida e insere um fornecedor; status inicial é active.
func (s *Service) Create(ctx context.Context, input CreateInput) (*Supplier, error) {
	if err := util.RequireString(input.Name, "Nome"); err != nil {
		return nil, err
	}
	if err := util.RequireString(input.CNPJ, "CNPJ"); err != nil {
		return nil, err
	}
	if err := util.RequireString(input.Phone, "Telefone"); err != nil {
		return nil, err
	}
	if err := util.ValidateEmail(input.Email); err != nil {
		return nil, err
	}

	return s.repo.Create(ctx, input)
}

// Update valida os campos presentes e aplica o patch. Patch vazio não
// grava nada: devolve o registro atual, preservando updated_at.
func (s *Service) Update(ctx context.Context, id uuid.UUID, input UpdateInput) (*Supplier, error) {
	if input.empty() {
		return s.repo.GetByID(ctx, id)
	}
	if input.Name != nil {
		if err := util.RequireString(*input.Name, "Nome"); err != nil {
			return nil, err
		}
	}
	if input.CNPJ != nil {
		if err := util.RequireString(*input.CNPJ, "CNPJ"); err != nil {
			return nil, err
		}
	}
	if input.Email != nil {
		if err := util.ValidateEmail(*input.Email); err != nil {
			return nil, err
		}
	}
	if input.Status != nil && *input.Status != "active" && *input.Status != "inactive" {
		return nil, util.Invalid("Status inválido")
	}

	return s.repo.Update(ctx, id, input)
}

// Delete remove o fornecedor.
func (s *Service) Delete(ctx context.Context, id uuid.UUID) error {
	return s.repo.Delete(ctx, id)
}

// ToggleStatus alterna o status do fornecedor.
func (s *Service) ToggleStatus(ctx context.Context, id uuid.UUID) (*Supplier, error) {
	return s.repo.ToggleStatus(ctx, id)
}
