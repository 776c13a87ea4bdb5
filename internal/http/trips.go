package http

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/rotaforte/frota/internal/trip"
)

func writeTripError(w http.ResponseWriter, err error) {
	if errors.Is(err, trip.ErrNotFound) {
		WriteError(w, http.StatusNotFound, err.Error())
		return
	}
	writeServiceError(w, err)
}

// ListTrips devolve todas as viagens com motorista e veículo embutidos.
func (h *Handler) ListTrips(w http.ResponseWriter, r *http.Request) {
	trips, err := h.trips.List(r.Context())
	if err != nil {
		WriteError(w, http.StatusInternalServerError, "Erro interno do servidor")
		return
	}
	WriteJSON(w, http.StatusOK, trips)
}

// GetTrip busca viagem por id.
func (h *Handler) GetTrip(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(r)
	if err != nil {
		WriteError(w, http.StatusNotFound, trip.ErrNotFound.Error())
		return
	}

	t, err := h.trips.Get(r.Context(), id)
	if err != nil {
		writeTripError(w, err)
		return
	}
	WriteJSON(w, http.StatusOK, t)
}

// CreateTrip registra uma viagem de abastecimento. Motorista e veículo
// são verificados no servidor.
func (h *Handler) CreateTrip(w http.ResponseWriter, r *http.Request) {
	var input trip.CreateInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		WriteError(w, http.StatusBadRequest, "JSON inválido")
		return
	}

	t, err := h.trips.Create(r.Context(), input)
	if err != nil {
		writeTripError(w, err)
		return
	}
	WriteJSON(w, http.StatusCreated, t)
}

// UpdateTrip aplica patch parcial em uma viagem.
func (h *Handler) UpdateTrip(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(r)
	if err != nil {
		WriteError(w, http.StatusNotFound, trip.ErrNotFound.Error())
		return
	}

	var input trip.UpdateInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		WriteError(w, http.StatusBadRequest, "JSON inválido")
		return
	}

	t, err := h.trips.Update(r.Context(), id, input)
	if err != nil {
		writeTripError(w, err)
		return
	}
	WriteJSON(w, http.StatusOK, t)
}

// DeleteTrip remove uma viagem.
func (h *Handler) DeleteTrip(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(r)
	if err != nil {
		WriteError(w, http.StatusNotFound, trip.ErrNotFound.Error())
		return
	}

	if err := h.trips.Delete(r.Context(), id); err != nil {
		writeTripError(w, err)
		return
	}
	WriteJSON(w, http.StatusOK, map[string]bool{"deleted": true})
}
