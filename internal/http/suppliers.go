package http

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/rotaforte/frota/internal/supplier"
)

func writeSupplierError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, supplier.ErrNotFound):
		WriteError(w, http.StatusNotFound, err.Error())
	case errors.Is(err, supplier.ErrCNPJDuplicado):
		WriteError(w, http.StatusConflict, err.Error())
	default:
		writeServiceError(w, err)
	}
}

// ListSuppliers devolve todos os fornecedores, mais recentes primeiro.
func (h *Handler) ListSuppliers(w http.ResponseWriter, r *http.Request) {
	suppliers, err := h.suppliers.List(r.Context())
	if err != nil {
		WriteError(w, http.StatusInternalServerError, "Erro interno do servidor")
		return
	}
	WriteJSON(w, http.StatusOK, suppliers)
}

// GetSupplier busca fornecedor por id.
func (h *Handler) GetSupplier(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(r)
	if err != nil {
		WriteError(w, http.StatusNotFound, supplier.ErrNotFound.Error())
		return
	}

	s, err := h.suppliers.Get(r.Context(), id)
	if err != nil {
		writeSupplierError(w, err)
		return
	}
	WriteJSON(w, http.StatusOK, s)
}

// CreateSupplier cadastra um novo fornecedor.
func (h *Handler) CreateSupplier(w http.ResponseWriter, r *http.Request) {
	var input supplier.CreateInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		WriteError(w, http.StatusBadRequest, "JSON inválido")
		return
	}

	s, err := h.suppliers.Create(r.Context(), input)
	if err != nil {
		writeSupplierError(w, err)
		return
	}
	WriteJSON(w, http.StatusCreated, s)
}

// UpdateSupplier aplica patch parcial em um fornecedor.
func (h *Handler) UpdateSupplier(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(r)
	if err != nil {
		WriteError(w, http.StatusNotFound, supplier.ErrNotFound.Error())
		return
	}

	var input supplier.UpdateInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		WriteError(w, http.StatusBadRequest, "JSON inválido")
		return
	}

	s, err := h.suppliers.Update(r.Context(), id, input)
	if err != nil {
		writeSupplierError(w, err)
		return
	}
	WriteJSON(w, http.StatusOK, s)
}

// DeleteSupplier remove um fornecedor.
func (h *Handler) DeleteSupplier(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(r)
	if err != nil {
		WriteError(w, http.StatusNotFound, supplier.ErrNotFound.Error())
		return
	}

	if err := h.suppliers.Delete(r.Context(), id); err != nil {
		writeSupplierError(w, err)
		return
	}
	WriteJSON(w, http.StatusOK, map[string]bool{"deleted": true})
}

// ToggleSupplierStatus alterna fornecedor entre ativo e inativo.
func (h *Handler) ToggleSupplierStatus(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(r)
	if err != nil {
		WriteError(w, http.StatusNotFound, supplier.ErrNotFound.Error())
		return
	}

	s, err := h.suppliers.ToggleStatus(r.Context(), id)
	if err != nil {
		writeSupplierError(w, err)
		return
	}
	WriteJSON(w, http.StatusOK, s)
}
