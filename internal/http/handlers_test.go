package http

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/rotaforte/frota/internal/driver"
	"github.com/rotaforte/frota/internal/repo"
	"github.com/rotaforte/frota/internal/service"
)

// failingDriverRepo simula o banco fora do ar: toda operação devolve o
// erro bruto do driver de conexão.
type failingDriverRepo struct {
	err error
}

func (f *failingDriverRepo) List(ctx context.Context) ([]driver.Driver, error) {
	return nil, f.err
}

func (f *failingDriverRepo) GetByID(ctx context.Context, id uuid.UUID) (*driver.Driver, error) {
	return nil, f.err
}

func (f *failingDriverRepo) Create(ctx context.Context, input driver.CreateInput) (*driver.Driver, error) {
	return nil, f.err
}

func (f *failingDriverRepo) Update(ctx context.Context, id uuid.UUID, input driver.UpdateInput) (*driver.Driver, error) {
	return nil, f.err
}

func (f *failingDriverRepo) Delete(ctx context.Context, id uuid.UUID) error {
	return f.err
}

func (f *failingDriverRepo) ToggleStatus(ctx context.Context, id uuid.UUID) (*driver.Driver, error) {
	return nil, f.err
}

type failingUserRepo struct {
	err error
}

func (f *failingUserRepo) ListUsuarios(ctx context.Context) ([]repo.Usuario, error) {
	return nil, f.err
}

func (f *failingUserRepo) GetUsuarioByID(ctx context.Context, id uuid.UUID) (repo.Usuario, error) {
	return repo.Usuario{}, f.err
}

func (f *failingUserRepo) InsertUsuario(ctx context.Context, arg repo.InsertUsuarioParams) (repo.Usuario, error) {
	return repo.Usuario{}, f.err
}

func (f *failingUserRepo) UpdateUsuario(ctx context.Context, id uuid.UUID, arg repo.UpdateUsuarioParams) (repo.Usuario, error) {
	return repo.Usuario{}, f.err
}

func (f *failingUserRepo) DeleteUsuario(ctx context.Context, id uuid.UUID) error {
	return f.err
}

func (f *failingUserRepo) ToggleUsuarioStatus(ctx context.Context, id uuid.UUID) (repo.Usuario, error) {
	return repo.Usuario{}, f.err
}

func withURLParam(r *http.Request, key, value string) *http.Request {
	rctx := chi.NewRouteContext()
	rctx.URLParams.Add(key, value)
	return r.WithContext(context.WithValue(r.Context(), chi.RouteCtxKey, rctx))
}

func decodeEnvelope(t *testing.T, rec *httptest.ResponseRecorder) Envelope {
	t.Helper()
	var env Envelope
	if err := json.NewDecoder(rec.Body).Decode(&env); err != nil {
		t.Fatalf("invalid envelope: %v", err)
	}
	return env
}

const validDriverBody = `{"name":"José Carlos","cpf":"123.456.789-00","phone":"(11) 98877-6655","cnh":"01234567890","cnh_category":"E","cnh_expiry":"2027-03-10"}`

func TestCreateDriverStoreFailureIsGeneric500(t *testing.T) {
	storeErr := errors.New("dial tcp 10.0.0.5:5432: connect: connection refused")
	h := &Handler{drivers: driver.NewService(&failingDriverRepo{err: storeErr})}

	req := httptest.NewRequest(http.MethodPost, "/api/drivers", strings.NewReader(validDriverBody))
	rec := httptest.NewRecorder()
	h.CreateDriver(rec, req)

	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("expected 500 for store failure, got %d", rec.Code)
	}
	env := decodeEnvelope(t, rec)
	if env.Success {
		t.Fatal("expected success=false")
	}
	if env.Error != "Erro interno do servidor" {
		t.Fatalf("expected generic message, got %q", env.Error)
	}
	if strings.Contains(rec.Body.String(), "dial tcp") {
		t.Fatalf("store internals leaked to the client: %s", rec.Body.String())
	}
}

func TestCreateDriverValidationIs400WithMessage(t *testing.T) {
	storeErr := errors.New("store must not be reached")
	h := &Handler{drivers: driver.NewService(&failingDriverRepo{err: storeErr})}

	body := `{"name":"José Carlos","cpf":"123.456.789-00","phone":"(11) 98877-6655","cnh":"01234567890","cnh_category":"B","cnh_expiry":"2027-03-10"}`
	req := httptest.NewRequest(http.MethodPost, "/api/drivers", strings.NewReader(body))
	rec := httptest.NewRecorder()
	h.CreateDriver(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for invalid input, got %d", rec.Code)
	}
	env := decodeEnvelope(t, rec)
	if env.Error != "Categoria da CNH deve ser D ou E" {
		t.Fatalf("expected validation message, got %q", env.Error)
	}
}

func TestUpdateDriverStoreFailureIsGeneric500(t *testing.T) {
	storeErr := errors.New("conn busy")
	h := &Handler{drivers: driver.NewService(&failingDriverRepo{err: storeErr})}

	req := httptest.NewRequest(http.MethodPatch, "/api/drivers/{id}", strings.NewReader(`{"name":"Outro"}`))
	req = withURLParam(req, "id", uuid.NewString())
	rec := httptest.NewRecorder()
	h.UpdateDriver(rec, req)

	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("expected 500 for store failure, got %d", rec.Code)
	}
	if env := decodeEnvelope(t, rec); env.Error != "Erro interno do servidor" {
		t.Fatalf("expected generic message, got %q", env.Error)
	}
}

func TestCreateUserStoreFailureIsGeneric500(t *testing.T) {
	storeErr := errors.New("unexpected EOF on connection")
	h := &Handler{users: service.NewUserService(&failingUserRepo{err: storeErr})}

	body := `{"name":"Maria Silva","email":"maria@rotaforte.com.br","phone":"(11) 91234-5678","role":"operator","password":"segredo123"}`
	req := httptest.NewRequest(http.MethodPost, "/api/users", strings.NewReader(body))
	rec := httptest.NewRecorder()
	h.CreateUser(rec, req)

	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("expected 500 for store failure, got %d", rec.Code)
	}
	env := decodeEnvelope(t, rec)
	if env.Error != "Erro interno do servidor" {
		t.Fatalf("expected generic message, got %q", env.Error)
	}
	if strings.Contains(rec.Body.String(), "EOF") {
		t.Fatalf("store internals leaked to the client: %s", rec.Body.String())
	}
}
