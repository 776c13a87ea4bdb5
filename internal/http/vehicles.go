package http

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/rotaforte/frota/internal/vehicle"
)

func writeVehicleError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, vehicle.ErrNotFound):
		WriteError(w, http.StatusNotFound, err.Error())
	case errors.Is(err, vehicle.ErrPlacaDuplicada):
		WriteError(w, http.StatusConflict, err.Error())
	default:
		writeServiceError(w, err)
	}
}

// ListVehicles devolve todos os veículos, mais recentes primeiro.
func (h *Handler) ListVehicles(w http.ResponseWriter, r *http.Request) {
	vehicles, err := h.vehicles.List(r.Context())
	if err != nil {
		WriteError(w, http.StatusInternalServerError, "Erro interno do servidor")
		return
	}
	WriteJSON(w, http.StatusOK, vehicles)
}

// GetVehicle busca veículo por id.
func (h *Handler) GetVehicle(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(r)
	if err != nil {
		WriteError(w, http.StatusNotFound, vehicle.ErrNotFound.Error())
		return
	}

	v, err := h.vehicles.Get(r.Context(), id)
	if err != nil {
		writeVehicleError(w, err)
		return
	}
	WriteJSON(w, http.StatusOK, v)
}

// CreateVehicle cadastra um novo veículo.
func (h *Handler) CreateVehicle(w http.ResponseWriter, r *http.Request) {
	var input vehicle.CreateInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		WriteError(w, http.StatusBadRequest, "JSON inválido")
		return
	}

	v, err := h.vehicles.Create(r.Context(), input)
	if err != nil {
		writeVehicleError(w, err)
		return
	}
	WriteJSON(w, http.StatusCreated, v)
}

// UpdateVehicle aplica patch parcial em um veículo.
func (h *Handler) UpdateVehicle(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(r)
	if err != nil {
		WriteError(w, http.StatusNotFound, vehicle.ErrNotFound.Error())
		return
	}

	var input vehicle.UpdateInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		WriteError(w, http.StatusBadRequest, "JSON inválido")
		return
	}

	v, err := h.vehicles.Update(r.Context(), id, input)
	if err != nil {
		writeVehicleError(w, err)
		return
	}
	WriteJSON(w, http.StatusOK, v)
}

// DeleteVehicle remove um veículo.
func (h *Handler) DeleteVehicle(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(r)
	if err != nil {
		WriteError(w, http.StatusNotFound, vehicle.ErrNotFound.Error())
		return
	}

	if err := h.vehicles.Delete(r.Context(), id); err != nil {
		writeVehicleError(w, err)
		return
	}
	WriteJSON(w, http.StatusOK, map[string]bool{"deleted": true})
}

// ToggleVehicleStatus alterna veículo entre ativo e inativo.
func (h *Handler) ToggleVehicleStatus(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(r)
	if err != nil {
		WriteError(w, http.StatusNotFound, vehicle.ErrNotFound.Error())
		return
	}

	v, err := h.vehicles.ToggleStatus(r.Context(), id)
	if err != nil {
		writeVehicleError(w, err)
		return
	}
	WriteJSON(w, http.StatusOK, v)
}
