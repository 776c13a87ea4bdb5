package driver

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/rotaforte/frota/internal/repo"
)

// Repository provê acesso ao armazenamento de motoristas.
type Repository struct {
	db repo.DBTX
}

// NewRepository cria um novo repositório de motoristas.
func NewRepository(db repo.DBTX) *Repository {
	return &Repository{db: db}
}

const columns = `id, name, cpf, phone, cnh, cnh_category, cnh_expiry, status, image_url, created_at, updated_at`

func scanDriver(row pgx.Row) (*Driver, error) {
	var d Driver
	err := row.Scan(&d.ID, &d.Name, &d.CPF, &d.Phone, &d.CNH, &d.CNHCategory,
		&d.CNHExpiry, &d.Status, &d.ImageURL, &d.CreatedAt, &d.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &d, nil
}

// List devolve todos os motoristas, mais recentes primeiro.
func (r *Repository) List(ctx context.Context) ([]Driver, error) {
	rows, err := r.db.Query(ctx, `SELECT `+columns+` FROM drivers ORDER BY created_at DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var drivers []Driver
	for rows.Next() {
		d, err := scanDriver(rows)
		if err != nil {
			return nil, err
		}
		drivers = append(drivers, *d)
	}
	return drivers, rows.Err()
}

// GetByID busca motorista pelo identificador.
func (r *Repository) GetByID(ctx context.Context, id uuid.UUID) (*Driver, error) {
	row := r.db.QueryRow(ctx, `SELECT `+columns+` FROM drivers WHERE id = $1`, id)
	return scanDriver(row)
}

// Create insere motorista; CPF/CNH duplicados viram erros próprios.
func (r *Repository) Create(ctx context.Context, input CreateInput) (*Driver, error) {
	row := r.db.QueryRow(ctx, `
        INSERT INTO drivers (id, name, cpf, phone, cnh, cnh_category, cnh_expiry, status, image_url)
        VALUES ($1, $2, $3, $4, $5, $6, $7, 'active', $8)
        RETURNING `+columns,
		uuid.New(), strings.TrimSpace(input.Name), strings.TrimSpace(input.CPF),
		strings.TrimSpace(input.Phone), strings.TrimSpace(input.CNH),
		input.CNHCategory, input.CNHExpiry, input.ImageURL)

	d, err := scanDriver(row)
	if err != nil {
		return nil, mapUniqueViolation(err)
	}
	return d, nil
}

// Update aplica patch parcial e devolve o registro atualizado.
func (r *Repository) Update(ctx context.Context, id uuid.UUID, input UpdateInput) (*Driver, error) {
	row := r.db.QueryRow(ctx, `
        UPDATE drivers
        SET name = COALESCE($2, name),
            cpf = COALESCE($3, cpf),
            phone = COALESCE($4, phone),
            cnh = COALESCE($5, cnh),
            cnh_category = COALESCE($6, cnh_category),
            cnh_expiry = COALESCE($7, cnh_expiry),
            status = COALESCE($8, status),
            image_url = COALESCE($9, image_url),
            updated_at = now()
        WHERE id = $1
        RETURNING `+columns,
		id, input.Name, input.CPF, input.Phone, input.CNH, input.CNHCategory,
		input.CNHExpiry, input.Status, input.ImageURL)

	d, err := scanDriver(row)
	if err != nil {
		return nil, mapUniqueViolation(err)
	}
	return d, nil
}

// Delete remove o motorista.
func (r *Repository) Delete(ctx context.Context, id uuid.UUID) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM drivers WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// ToggleStatus alterna active/inactive e devolve o registro.
func (r *Repository) ToggleStatus(ctx context.Context, id uuid.UUID) (*Driver, error) {
	row := r.db.QueryRow(ctx, `
        UPDATE drivers
        SET status = CASE WHEN status = 'active' THEN 'inactive' ELSE 'active' END,
            updated_at = now()
        WHERE id = $1
        RETURNING `+columns, id)
	return scanDriver(row)
}

func mapUniqueViolation(err error) error {
	constraint := repo.UniqueConstraint(err)
	switch {
	case strings.Contains(constraint, "cpf"):
		return ErrCPFDuplicado
	case strings.Contains(constraint, "cnh"):
		return ErrCNHDuplicada
	}
	return err
}
