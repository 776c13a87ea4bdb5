package vehicle

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/rotaforte/frota/internal/repo"
)

// Repository provê acesso ao armazenamento de veículos.
type Repository struct {
	db repo.DBTX
}

// NewRepository cria um novo repositório de veículos.
func NewRepository(db repo.DBTX) *Repository {
	return &Repository{db: db}
}

const columns = `id, plate, model, brand, year, capacity, fuel_type, status, image_url, created_at, updated_at`

func scanVehicle(row pgx.Row) (*Vehicle, error) {
	var v Vehicle
	err := row.Scan(&v.ID, &v.Plate, &v.Model, &v.Brand, &v.Year, &v.Capacity,
		&v.FuelType, &v.Status, &v.ImageURL, &v.CreatedAt, &v.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &v, nil
}

// List devolve todos os veículos, mais recentes primeiro.
func (r *Repository) List(ctx context.Context) ([]Vehicle, error) {
	rows, err := r.db.Query(ctx, `SELECT `+columns+` FROM vehicles ORDER BY created_at DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var vehicles []Vehicle
	for rows.Next() {
		v, err := scanVehicle(rows)
		if err != nil {
			return nil, err
		}
		vehicles = append(vehicles, *v)
	}
	return vehicles, rows.Err()
}

// GetByID busca veículo pelo identificador.
func (r *Repository) GetByID(ctx context.Context, id uuid.UUID) (*Vehicle, error) {
	row := r.db.QueryRow(ctx, `SELECT `+columns+` FROM vehicles WHERE id = $1`, id)
	return scanVehicle(row)
}

// Create insere veículo; placa duplicada vira ErrPlacaDuplicada.
func (r *Repository) Create(ctx context.Context, input CreateInput) (*Vehicle, error) {
	row := r.db.QueryRow(ctx, `
        INSERT INTO vehicles (id, plate, model, brand, year, capacity, fuel_type, status, image_url)
        VALUES ($1, upper($2), $3, $4, $5, $6, $7, 'active', $8)
        RETURNING `+columns,
		uuid.New(), strings.TrimSpace(input.Plate), strings.TrimSpace(input.Model),
		strings.TrimSpace(input.Brand), strings.TrimSpace(input.Year),
		input.Capacity, input.FuelType, input.ImageURL)

	v, err := scanVehicle(row)
	if err != nil {
		if repo.IsUniqueViolation(err) {
			return nil, ErrPlacaDuplicada
		}
		return nil, err
	}
	return v, nil
}

// Update aplica patch parcial e devolve o registro atualizado.
func (r *Repository) Update(ctx context.Context, id uuid.UUID, input UpdateInput) (*Vehicle, error) {
	var plate *string
	if input.Plate != nil {
		normalized := strings.ToUpper(strings.TrimSpace(*input.Plate))
		plate = &normalized
	}

	row := r.db.QueryRow(ctx, `
        UPDATE vehicles
        SET plate = COALESCE($2, plate),
            model = COALESCE($3, model),
            brand = COALESCE($4, brand),
            year = COALESCE($5, year),
            capacity = COALESCE($6, capacity),
            fuel_type = COALESCE($7, fuel_type),
            status = COALESCE($8, status),
            image_url = COALESCE($9, image_url),
            updated_at = now()
        WHERE id = $1
        RETURNING `+columns,
		id, plate, input.Model, input.Brand, input.Year, input.Capacity,
		input.FuelType, input.Status, input.ImageURL)

	v, err := scanVehicle(row)
	if err != nil {
		if repo.IsUniqueViolation(err) {
			return nil, ErrPlacaDuplicada
		}
		return nil, err
	}
	return v, nil
}

// Delete remove o veículo.
func (r *Repository) Delete(ctx context.Context, id uuid.UUID) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM vehicles WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// ToggleStatus alterna active/inactive; manutenção volta para active.
func (r *Repository) ToggleStatus(ctx context.Context, id uuid.UUID) (*Vehicle, error) {
	row := r.db.QueryRow(ctx, `
        UPDATE vehicles
        SET status = CASE WHEN status = 'active' THEN 'inactive' ELSE 'active' END,
            updated_at = now()
        WHERE id = $1
        RETURNING `+columns, id)
	return scanVehicle(row)
}
