package trip

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/rotaforte/frota/internal/repo"
)

// Repository provê acesso ao armazenamento de viagens.
type Repository struct {
	db repo.DBTX
}

// NewRepository cria um novo repositório de viagens.
func NewRepository(db repo.DBTX) *Repository {
	return &Repository{db: db}
}

const selectTrip = `
    SELECT t.id, t.trip_date, t.destination, t.driver_id, t.vehicle_id,
           t.fuel_cost, t.observations, t.has_image, t.status, t.created_at, t.updated_at,
           d.name, v.plate, v.model, v.brand
    FROM fuel_trips t
    JOIN drivers d ON d.id = t.driver_id
    JOIN vehicles v ON v.id = t.vehicle_id`

func scanTrip(row pgx.Row) (*FuelTrip, error) {
	var (
		t          FuelTrip
		driverName string
		plate      string
		model      string
		brand      string
	)

	err := row.Scan(&t.ID, &t.TripDate, &t.Destination, &t.DriverID, &t.VehicleID,
		&t.FuelCost, &t.Observations, &t.HasImage, &t.Status, &t.CreatedAt, &t.UpdatedAt,
		&driverName, &plate, &model, &brand)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	t.Driver = &TripDriver{ID: t.DriverID, Name: driverName}
	t.Vehicle = &TripTruck{ID: t.VehicleID, Plate: plate, Model: model, Brand: brand}
	return &t, nil
}

// List devolve todas as viagens com motorista e veículo embutidos.
func (r *Repository) List(ctx context.Context) ([]FuelTrip, error) {
	rows, err := r.db.Query(ctx, selectTrip+` ORDER BY t.created_at DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var trips []FuelTrip
	for rows.Next() {
		t, err := scanTrip(rows)
		if err != nil {
			return nil, err
		}
		trips = append(trips, *t)
	}
	return trips, rows.Err()
}

// GetByID busca viagem pelo identificador.
func (r *Repository) GetByID(ctx context.Context, id uuid.UUID) (*FuelTrip, error) {
	row := r.db.QueryRow(ctx, selectTrip+` WHERE t.id = $1`, id)
	return scanTrip(row)
}

// Create insere a viagem e devolve o registro com os dados embutidos.
func (r *Repository) Create(ctx context.Context, input CreateInput) (*FuelTrip, error) {
	id := uuid.New()
	_, err := r.db.Exec(ctx, `
        INSERT INTO fuel_trips (id, trip_date, destination, driver_id, vehicle_id, fuel_cost, observations, has_image, status)
        VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`,
		id, input.TripDate, strings.TrimSpace(input.Destination), input.DriverID,
		input.VehicleID, input.FuelCost, input.Observations, input.HasImage, input.Status)
	if err != nil {
		return nil, err
	}

	return r.GetByID(ctx, id)
}

// Update aplica patch parcial e devolve o registro atualizado.
func (r *Repository) Update(ctx context.Context, id uuid.UUID, input UpdateInput) (*FuelTrip, error) {
	tag, err := r.db.Exec(ctx, `
        UPDATE fuel_trips
        SET trip_date = COALESCE($2, trip_date),
            destination = COALESCE($3, destination),
            driver_id = COALESCE($4, driver_id),
            vehicle_id = COALESCE($5, vehicle_id),
            fuel_cost = COALESCE($6, fuel_cost),
            observations = COALESCE($7, observations),
            has_image = COALESCE($8, has_image),
            status = COALESCE($9, status),
            updated_at = now()
        WHERE id = $1`,
		id, input.TripDate, input.Destination, input.DriverID, input.VehicleID,
		input.FuelCost, input.Observations, input.HasImage, input.Status)
	if err != nil {
		return nil, err
	}
	if tag.RowsAffected() == 0 {
		return nil, ErrNotFound
	}

	return r.GetByID(ctx, id)
}

// Delete remove a viagem.
func (r *Repository) Delete(ctx context.Context, id uuid.UUID) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM fuel_trips WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}
