package service

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"

	"github.com/rotaforte/frota/internal/auth"
	"github.com/rotaforte/frota/internal/rbac"
	"github.com/rotaforte/frota/internal/repo"
	"github.com/rotaforte/frota/internal/util"
)

var (
	// ErrUserNotFound indica usuário inexistente.
	ErrUserNotFound = errors.New("Usuário não encontrado")
	// ErrAdminImmutable protege contas de administrador contra remoção.
	ErrAdminImmutable = errors.New("Não é possível remover usuários administradores")
	// ErrInvalidRole indica papel fora do conjunto conhecido.
	ErrInvalidRole = util.Invalid("Papel inválido")
)

type userRepository interface {
	ListUsuarios(ctx context.Context) ([]repo.Usuario, error)
	GetUsuarioByID(ctx context.Context, id uuid.UUID) (repo.Usuario, error)
	InsertUsuario(ctx context.Context, arg repo.InsertUsuarioParams) (repo.Usuario, error)
	UpdateUsuario(ctx context.Context, id uuid.UUID, arg repo.UpdateUsuarioParams) (repo.Usuario, error)
	DeleteUsuario(ctx context.Context, id uuid.UUID) error
	ToggleUsuarioStatus(ctx context.Context, id uuid.UUID) (repo.Usuario, error)
}

// UserService concentra a gestão de contas feita pelo administrador.
type UserService struct {
	repo userRepository
}

// NewUserService cria novo serviço.
func NewUserService(r userRepository) *UserService {
	return &UserService{repo: r}
}

// List devolve todos os usuários, mais recentes primeiro.
func (s *UserService) List(ctx context.Context) ([]repo.Usuario, error) {
	return s.repo.ListUsuarios(ctx)
}

// Get devolve um usuário por id.
func (s *UserService) Get(ctx context.Context, id uuid.UUID) (repo.Usuario, error) {
	user, err := s.repo.GetUsuarioByID(ctx, id)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return repo.Usuario{}, ErrUserNotFound
		}
		return repo.Usuario{}, err
	}
	return user, nil
}

// CreateUserInput carrega os campos de criação de conta pelo admin.
type CreateUserInput struct {
	Nome     string
	Email    string
	Telefone string
	Papel    string
	Senha    string
}

// Create cria uma conta já confirmada — contas criadas pelo admin não
// passam pelo fluxo de confirmação por e-mail.
func (s *UserService) Create(ctx context.Context, in CreateUserInput) (repo.Usuario, error) {
	if err := util.RequireString(in.Nome, "Nome"); err != nil {
		return repo.Usuario{}, err
	}
	if err := util.ValidateEmail(in.Email); err != nil {
		return repo.Usuario{}, err
	}
	if err := util.ValidatePassword(in.Senha); err != nil {
		return repo.Usuario{}, err
	}
	papel := strings.ToLower(strings.TrimSpace(in.Papel))
	if papel == "" {
		papel = string(rbac.DefaultRole)
	} else if !rbac.IsValid(papel) {
		return repo.Usuario{}, ErrInvalidRole
	}

	hash, err := auth.Hash(in.Senha)
	if err != nil {
		return repo.Usuario{}, err
	}

	user, err := s.repo.InsertUsuario(ctx, repo.InsertUsuarioParams{
		ID:         uuid.New(),
		Nome:       strings.TrimSpace(in.Nome),
		Email:      in.Email,
		Telefone:   strings.TrimSpace(in.Telefone),
		Papel:      papel,
		SenhaHash:  hash,
		Confirmado: true,
	})
	if err != nil {
		if errors.Is(err, repo.ErrDuplicate) {
			return repo.Usuario{}, ErrEmailTaken
		}
		return repo.Usuario{}, err
	}
	return user, nil
}

// UpdateUserInput carrega campos opcionais de atualização; nil mantém
// o valor atual.
type UpdateUserInput struct {
	Nome     *string
	Email    *string
	Telefone *string
	Papel    *string
	Status   *string
	Senha    *string
}

// Update aplica alterações parciais em uma conta. Patch vazio não
// grava nada: devolve o registro atual.
func (s *UserService) Update(ctx context.Context, id uuid.UUID, in UpdateUserInput) (repo.Usuario, error) {
	if in.Nome == nil && in.Email == nil && in.Telefone == nil &&
		in.Papel == nil && in.Status == nil && in.Senha == nil {
		return s.Get(ctx, id)
	}

	if in.Nome != nil {
		if err := util.RequireString(*in.Nome, "Nome"); err != nil {
			return repo.Usuario{}, err
		}
	}
	if in.Email != nil {
		if err := util.ValidateEmail(*in.Email); err != nil {
			return repo.Usuario{}, err
		}
	}
	if in.Papel != nil {
		p := strings.ToLower(strings.TrimSpace(*in.Papel))
		if !rbac.IsValid(p) {
			return repo.Usuario{}, ErrInvalidRole
		}
		in.Papel = &p
	}
	if in.Status != nil && *in.Status != "active" && *in.Status != "inactive" {
		return repo.Usuario{}, util.Invalid("Status inválido")
	}

	params := repo.UpdateUsuarioParams{
		Nome:     in.Nome,
		Email:    in.Email,
		Telefone: in.Telefone,
		Papel:    in.Papel,
		Status:   in.Status,
	}

	if in.Senha != nil {
		if err := util.ValidatePassword(*in.Senha); err != nil {
			return repo.Usuario{}, err
		}
		hash, err := auth.Hash(*in.Senha)
		if err != nil {
			return repo.Usuario{}, err
		}
		params.SenhaHash = &hash
	}

	user, err := s.repo.UpdateUsuario(ctx, id, params)
	if err != nil {
		switch {
		case errors.Is(err, repo.ErrNotFound):
			return repo.Usuario{}, ErrUserNotFound
		case errors.Is(err, repo.ErrDuplicate):
			return repo.Usuario{}, ErrEmailTaken
		}
		return repo.Usuario{}, err
	}
	return user, nil
}

// Delete remove uma conta. Administradores não podem ser removidos.
func (s *UserService) Delete(ctx context.Context, id uuid.UUID) error {
	user, err := s.repo.GetUsuarioByID(ctx, id)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return ErrUserNotFound
		}
		return err
	}
	if rbac.RoleFromString(user.Papel) == rbac.RoleAdmin {
		return ErrAdminImmutable
	}
	if err := s.repo.DeleteUsuario(ctx, id); err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return ErrUserNotFound
		}
		return err
	}
	return nil
}

// ToggleStatus alterna uma conta entre ativa e inativa.
func (s *UserService) ToggleStatus(ctx context.Context, id uuid.UUID) (repo.Usuario, error) {
	user, err := s.repo.ToggleUsuarioStatus(ctx, id)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return repo.Usuario{}, ErrUserNotFound
		}
		return repo.Usuario{}, err
	}
	return user, nil
}
