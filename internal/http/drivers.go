package http

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/rotaforte/frota/internal/driver"
)

func parseID(r *http.Request) (uuid.UUID, error) {
	return uuid.Parse(chi.URLParam(r, "id"))
}

func writeDriverError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, driver.ErrNotFound):
		WriteError(w, http.StatusNotFound, err.Error())
	case errors.Is(err, driver.ErrCPFDuplicado), errors.Is(err, driver.ErrCNHDuplicada):
		WriteError(w, http.StatusConflict, err.Error())
	default:
		writeServiceError(w, err)
	}
}

// ListDrivers devolve todos os motoristas, mais recentes primeiro.
func (h *Handler) ListDrivers(w http.ResponseWriter, r *http.Request) {
	drivers, err := h.drivers.List(r.Context())
	if err != nil {
		WriteError(w, http.StatusInternalServerError, "Erro interno do servidor")
		return
	}
	WriteJSON(w, http.StatusOK, drivers)
}

// GetDriver busca motorista por id.
func (h *Handler) GetDriver(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(r)
	if err != nil {
		WriteError(w, http.StatusNotFound, driver.ErrNotFound.Error())
		return
	}

	d, err := h.drivers.Get(r.Context(), id)
	if err != nil {
		writeDriverError(w, err)
		return
	}
	WriteJSON(w, http.StatusOK, d)
}

// CreateDriver cadastra um novo motorista.
func (h *Handler) CreateDriver(w http.ResponseWriter, r *http.Request) {
	var input driver.CreateInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		WriteError(w, http.StatusBadRequest, "JSON inválido")
		return
	}

	d, err := h.drivers.Create(r.Context(), input)
	if err != nil {
		writeDriverError(w, err)
		return
	}
	WriteJSON(w, http.StatusCreated, d)
}

// UpdateDriver aplica patch parcial em um motorista.
func (h *Handler) UpdateDriver(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(r)
	if err != nil {
		WriteError(w, http.StatusNotFound, driver.ErrNotFound.Error())
		return
	}

	var input driver.UpdateInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		WriteError(w, http.StatusBadRequest, "JSON inválido")
		return
	}

	d, err := h.drivers.Update(r.Context(), id, input)
	if err != nil {
		writeDriverError(w, err)
		return
	}
	WriteJSON(w, http.StatusOK, d)
}

// DeleteDriver remove um motorista.
func (h *Handler) DeleteDriver(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(r)
	if err != nil {
		WriteError(w, http.StatusNotFound, driver.ErrNotFound.Error())
		return
	}

	if err := h.drivers.Delete(r.Context(), id); err != nil {
		writeDriverError(w, err)
		return
	}
	WriteJSON(w, http.StatusOK, map[string]bool{"deleted": true})
}

// ToggleDriverStatus alterna motorista entre ativo e inativo.
func (h *Handler) ToggleDriverStatus(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(r)
	if err != nil {
		WriteError(w, http.StatusNotFound, driver.ErrNotFound.Error())
		return
	}

	d, err := h.drivers.ToggleStatus(r.Context(), id)
	if err != nil {
		writeDriverError(w, err)
		return
	}
	WriteJSON(w, http.StatusOK, d)
}
