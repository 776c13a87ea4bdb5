package product

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/rotaforte/frota/internal/repo"
)

// Repository provê acesso ao armazenamento de entradas de produto.
type Repository struct {
	db repo.DBTX
}

// NewRepository cria um novo repositório de entradas.
func NewRepository(db repo.DBTX) *Repository {
	return &Repository{db: db}
}

const selectEntry = `
    SELECT e.id, e.entry_date, e.product_type, e.supplier_id, e.tonnage,
           e.observations, e.has_image, e.status, e.created_at, e.updated_at,
           s.name
    FROM product_entries e
    JOIN suppliers s ON s.id = e.supplier_id`

func scanEntry(row pgx.Row) (*Entry, error) {
	var (
		e            Entry
		supplierName string
	)

	err := row.Scan(&e.ID, &e.EntryDate, &e.ProductType, &e.SupplierID, &e.Tonnage,
		&e.Observations, &e.HasImage, &e.Status, &e.CreatedAt, &e.UpdatedAt, &supplierName)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	e.Supplier = &EntrySupplier{ID: e.SupplierID, Name: supplierName}
	return &e, nil
}

// List devolve todas as entradas com fornecedor embutido.
func (r *Repository) List(ctx context.Context) ([]Entry, error) {
	rows, err := r.db.Query(ctx, selectEntry+` ORDER BY e.created_at DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var entries []Entry
	for rows.Next() {
		e, err := scanEntry(rows)
		if err != nil {
			return nil, err
		}
		entries = append(entries, *e)
	}
	return entries, rows.Err()
}

// GetByID busca entrada pelo identificador.
func (r *Repository) GetByID(ctx context.Context, id uuid.UUID) (*Entry, error) {
	row := r.db.QueryRow(ctx, selectEntry+` WHERE e.id = $1`, id)
	return scanEntry(row)
}

// Create insere a entrada e devolve o registro com fornecedor embutido.
func (r *Repository) Create(ctx context.Context, input CreateInput) (*Entry, error) {
	id := uuid.New()
	_, err := r.db.Exec(ctx, `
        INSERT INTO product_entries (id, entry_date, product_type, supplier_id, tonnage, observations, has_image, status)
        VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
		id, input.EntryDate, strings.TrimSpace(input.ProductType), input.SupplierID,
		input.Tonnage, input.Observations, input.HasImage, input.Status)
	if err != nil {
		return nil, err
	}

	return r.GetByID(ctx, id)
}

// Update aplica patch parcial e devolve o registro atualizado.
func (r *Repository) Update(ctx context.Context, id uuid.UUID, input UpdateInput) (*Entry, error) {
	tag, err := r.db.Exec(ctx, `
        UPDATE product_entries
        SET entry_date = COALESCE($2, entry_date),
            product_type = COALESCE($3, product_type),
            supplier_id = COALESCE($4, supplier_id),
            tonnage = COALESCE($5, tonnage),
            observations = COALESCE($6, observations),
            has_image = COALESCE($7, has_image),
            status = COALESCE($8, status),
            updated_at = now()
        WHERE id = $1`,
		id, input.EntryDate, input.ProductType, input.SupplierID, input.Tonnage,
		input.Observations, input.HasImage, input.Status)
	if err != nil {
		return nil, err
	}
	if tag.RowsAffected() == 0 {
		return nil, ErrNotFound
	}

	return r.GetByID(ctx, id)
}

// Delete remove a entrada.
func (r *Repository) Delete(ctx context.Context, id uuid.UUID) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM product_entries WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}
