package supplier

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/rotaforte/frota/internal/repo"
)

// Repository provê acesso ao armazenamento de fornecedores.
type Repository struct {
	db repo.DBTX
}

// NewRepository cria um novo repositório de fornecedores.
func NewRepository(db repo.DBTX) *Repository {
	return &Repository{db: db}
}

const columns = `id, name, cnpj, phone, email, address, contact_person, status, created_at, updated_at`

func scanSupplier(row pgx.Row) (*Supplier, error) {
	var s Supplier
	err := row.Scan(&s.ID, &s.Name, &s.CNPJ, &s.Phone, &s.Email, &s.Address,
		&s.ContactPerson, &s.Status, &s.CreatedAt, &s.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &s, nil
}

// List devolve todos os fornecedores, mais recentes primeiro.
func (r *Repository) List(ctx context.Context) ([]Supplier, error) {
	rows, err := r.db.Query(ctx, `SELECT `+columns+` FROM suppliers ORDER BY created_at DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var suppliers []Supplier
	for rows.Next() {
		s, err := scanSupplier(rows)
		if err != nil {
			return nil, err
		}
		suppliers = append(suppliers, *s)
	}
	return suppliers, rows.Err()
}

// GetByID busca fornecedor pelo identificador.
func (r *Repository) GetByID(ctx context.Context, id uuid.UUID) (*Supplier, error) {
	row := r.db.QueryRow(ctx, `SELECT `+columns+` FROM suppliers WHERE id = $1`, id)
	return scanSupplier(row)
}

// Create insere fornecedor; CNPJ duplicado vira ErrCNPJDuplicado.
func (r *Repository) Create(ctx context.Context, input CreateInput) (*Supplier, error) {
	row := r.db.QueryRow(ctx, `
        INSERT INTO suppliers (id, name, cnpj, phone, email, address, contact_person, status)
        VALUES ($1, $2, $3, $4, lower($5), $6, $7, 'active')
        RETURNING `+columns,
		uuid.New(), strings.TrimSpace(input.Name), strings.TrimSpace(input.CNPJ),
		strings.TrimSpace(input.Phone), strings.TrimSpace(input.Email),
		strings.TrimSpace(input.Address), strings.TrimSpace(input.ContactPerson))

	s, err := scanSupplier(row)
	if err != nil {
		if repo.IsUniqueViolation(err) {
			return nil, ErrCNPJDuplicado
		}
		return nil, err
	}
	return s, nil
}

// Update aplica patch parcial e devolve o registro atualizado.
func (r *Repository) Update(ctx context.Context, id uuid.UUID, input UpdateInput) (*Supplier, error) {
	row := r.db.QueryRow(ctx, `
        UPDATE suppliers
        SET name = COALESCE($2, name),
            cnpj = COALESCE($3, cnpj),
            phone = COALESCE($4, phone),
            email = COALESCE(lower($5), email),
            address = COALESCE($6, address),
            contact_person = COALESCE($7, contact_person),
            status = COALESCE($8, status),
            updated_at = now()
        WHERE id = $1
        RETURNING `+columns,
		id, input.Name, input.CNPJ, input.Phone, input.Email,
		input.Address, input.ContactPerson, input.Status)

	s, err := scanSupplier(row)
	if err != nil {
		if repo.IsUniqueViolation(err) {
			return nil, ErrCNPJDuplicado
		}
		return nil, err
	}
	return s, nil
}

// Delete remove o fornecedor.
func (r *Repository) Delete(ctx context.Context, id uuid.UUID) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM suppliers WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// ToggleStatus alterna active/inactive e devolve o registro.
func (r *Repository) ToggleStatus(ctx context.Context, id uuid.UUID) (*Supplier, error) {
	row := r.db.QueryRow(ctx, `
        UPDATE suppliers
        SET status = CASE WHEN status = 'active' THEN 'inactive' ELSE 'active' END,
            updated_at = now()
        WHERE id = $1
        RETURNING `+columns, id)
	return scanSupplier(row)
}
