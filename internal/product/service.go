package product

import (
	"context"
	"errors"

	"github.com/google/uuid"

	"github.com/rotaforte/frota/internal/supplier"
	"github.com/rotaforte/frota/internal/util"
)

type repository interface {
	List(ctx context.Context) ([]Entry, error)
	GetByID(ctx context.Context, id uuid.UUID) (*Entry, error)
	Create(ctx context.Context, input CreateInput) (*Entry, error)
	Update(ctx context.Context, id uuid.UUID, input UpdateInput) (*Entry, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type supplierDirectory interface {
	GetByID(ctx context.Context, id uuid.UUID) (*supplier.Supplier, error)
}

// Service aplica as regras de entrada de produtos. O fornecedor
// referenciado é verificado no servidor antes de gravar.
type Service struct {
	repo      repository
	suppliers supplierDirectory
}

// NewService cria o serviço de entradas de produto.
func NewService(repo repository, suppliers supplierDirectory) *Service {
	return &Service{repo: repo, suppliers: suppliers}
}

func (s *Service) checkSupplier(ctx context.Context, id uuid.UUID) error {
	sup, err := s.suppliers.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, supplier.ErrNotFound) {
			return ErrFornecedorInvalido
		}
		return err
	}
	if sup.Status != "active" {
		return ErrFornecedorInvalido
	}
	return nil
}

// List devolve todas as entradas.
func (s *Service) List(ctx context.Context) ([]Entry, error) {
	return s.repo.List(ctx)
}

// Get busca uma entrada por id.
func (s *Service) Get(ctx context.Context, id uuid.UUID) (*Entry, error) {
	return s.repo.GetByID(ctx, id)
}

// Create valida e registra uma entrada; status default é pending.
func (s *Service) Create(ctx context.Context, input CreateInput) (*Entry, error) {
	if err := util.RequireString(input.EntryDate, "Data de entrada"); err != nil {
		return nil, err
	}
	if err := util.RequireString(input.ProductType, "Tipo de produto"); err != nil {
		return nil, err
	}
	if input.SupplierID == uuid.Nil {
		return nil, util.Invalid("Fornecedor é obrigatório")
	}
	if input.Tonnage <= 0 {
		return nil, util.Invalid("Tonelagem deve ser maior que zero")
	}
	if input.Status == "" {
		input.Status = "pending"
	}
	if !validStatus(input.Status) {
		return nil, util.Invalid("Status inválido")
	}

	if err := s.checkSupplier(ctx, input.SupplierID); err != nil {
		return nil, err
	}

	return s.repo.Create(ctx, input)
}

// Update valida os campos presentes e aplica o patch. Patch vazio não
// grava nada: devolve o registro atual, preservando updated_at.
func (s *Service) Update(ctx context.Context, id uuid.UUID, input UpdateInput) (*Entry, error) {
	if input.empty() {
		return s.repo.GetByID(ctx, id)
	}
	if input.EntryDate != nil {
		if err := util.RequireString(*input.EntryDate, "Data de entrada"); err != nil {
			return nil, err
		}
	}
	if input.ProductType != nil {
		if err := util.RequireString(*input.ProductType, "Tipo de produto"); err != nil {
			return nil, err
		}
	}
	if input.Tonnage != nil && *input.Tonnage <= 0 {
		return nil, util.Invalid("Tonelagem deve ser maior que zero")
	}
	if input.Status != nil && !validStatus(*input.Status) {
		return nil, util.Invalid("Status inválido")
	}

	if input.SupplierID != nil {
		if err := s.checkSupplier(ctx, *input.SupplierID); err != nil {
			return nil, err
		}
	}

	return s.repo.Update(ctx, id, input)
}

// Delete remove a entrada.
func (s *Service) Delete(ctx context.Context, id uuid.UUID) error {
	return s.repo.Delete(ctx, id)
}
