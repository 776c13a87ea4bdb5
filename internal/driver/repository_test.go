package driver

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupRepo(t *testing.T) (*Repository, pgxmock.PgxPoolIface) {
	t.Helper()
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	t.Cleanup(func() { mock.Close() })
	return NewRepository(mock), mock
}

func driverRow(id uuid.UUID, name, cpf string) *pgxmock.Rows {
	now := time.Now()
	return pgxmock.NewRows([]string{
		"id", "name", "cpf", "phone", "cnh", "cnh_category", "cnh_expiry",
		"status", "image_url", "created_at", "updated_at",
	}).AddRow(id, name, cpf, "(11) 99999-0000", "12345678900", "D", "2027-06-30",
		"active", (*string)(nil), now, now)
}

func TestRepositoryListNewestFirst(t *testing.T) {
	repo, mock := setupRepo(t)

	mock.ExpectQuery(`SELECT .+ FROM drivers ORDER BY created_at DESC`).
		WillReturnRows(driverRow(uuid.New(), "Carlos Oliveira", "11111111111"))

	drivers, err := repo.List(context.Background())

	require.NoError(t, err)
	assert.Len(t, drivers, 1)
	assert.Equal(t, "Carlos Oliveira", drivers[0].Name)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRepositoryCreateInsertsActive(t *testing.T) {
	repo, mock := setupRepo(t)
	id := uuid.New()

	mock.ExpectQuery(`INSERT INTO drivers`).
		WithArgs(pgxmock.AnyArg(), "Carlos Oliveira", "11111111111", "(11) 99999-0000",
			"12345678900", "D", "2027-06-30", (*string)(nil)).
		WillReturnRows(driverRow(id, "Carlos Oliveira", "11111111111"))

	d, err := repo.Create(context.Background(), CreateInput{
		Name:        "Carlos Oliveira",
		CPF:         "11111111111",
		Phone:       "(11) 99999-0000",
		CNH:         "12345678900",
		CNHCategory: "D",
		CNHExpiry:   "2027-06-30",
	})

	require.NoError(t, err)
	assert.Equal(t, id, d.ID)
	assert.Equal(t, "active", d.Status)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRepositoryCreateMapsUniqueViolations(t *testing.T) {
	repo, mock := setupRepo(t)

	cases := []struct {
		constraint string
		want       error
	}{
		{"drivers_cpf_key", ErrCPFDuplicado},
		{"drivers_cnh_key", ErrCNHDuplicada},
	}

	for _, tc := range cases {
		mock.ExpectQuery(`INSERT INTO drivers`).
			WithArgs(pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg(),
				pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg()).
			WillReturnError(&pgconn.PgError{Code: "23505", ConstraintName: tc.constraint})

		_, err := repo.Create(context.Background(), CreateInput{
			Name:        "Carlos Oliveira",
			CPF:         "11111111111",
			Phone:       "(11) 99999-0000",
			CNH:         "12345678900",
			CNHCategory: "D",
			CNHExpiry:   "2027-06-30",
		})

		assert.ErrorIs(t, err, tc.want, "constraint %s", tc.constraint)
	}
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRepositoryGetByIDNotFound(t *testing.T) {
	repo, mock := setupRepo(t)
	id := uuid.New()

	mock.ExpectQuery(`SELECT .+ FROM drivers WHERE id`).
		WithArgs(id).
		WillReturnRows(pgxmock.NewRows([]string{
			"id", "name", "cpf", "phone", "cnh", "cnh_category", "cnh_expiry",
			"status", "image_url", "created_at", "updated_at",
		}))

	_, err := repo.GetByID(context.Background(), id)

	assert.ErrorIs(t, err, ErrNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRepositoryDeleteNotFound(t *testing.T) {
	repo, mock := setupRepo(t)
	id := uuid.New()

	mock.ExpectExec(`DELETE FROM drivers WHERE id`).
		WithArgs(id).
		WillReturnResult(pgxmock.NewResult("DELETE", 0))

	err := repo.Delete(context.Background(), id)

	assert.ErrorIs(t, err, ErrNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRepositoryToggleStatus(t *testing.T) {
	repo, mock := setupRepo(t)
	id := uuid.New()
	now := time.Now()

	mock.ExpectQuery(`UPDATE drivers`).
		WithArgs(id).
		WillReturnRows(pgxmock.NewRows([]string{
			"id", "name", "cpf", "phone", "cnh", "cnh_category", "cnh_expiry",
			"status", "image_url", "created_at", "updated_at",
		}).AddRow(id, "Carlos Oliveira", "11111111111", "(11) 99999-0000",
			"12345678900", "D", "2027-06-30", "inactive", (*string)(nil), now, now))

	d, err := repo.ToggleStatus(context.Background(), id)

	require.NoError(t, err)
	assert.Equal(t, "inactive", d.Status)
	assert.NoError(t, mock.ExpectationsWereMet())
}
