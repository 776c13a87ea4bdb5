package http

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/rotaforte/frota/internal/product"
)

func writeProductError(w http.ResponseWriter, err error) {
	if errors.Is(err, product.ErrNotFound) {
		WriteError(w, http.StatusNotFound, err.Error())
		return
	}
	writeServiceError(w, err)
}

// ListProducts devolve todas as entradas de produto com fornecedor.
func (h *Handler) ListProducts(w http.ResponseWriter, r *http.Request) {
	entries, err := h.products.List(r.Context())
	if err != nil {
		WriteError(w, http.StatusInternalServerError, "Erro interno do servidor")
		return
	}
	WriteJSON(w, http.StatusOK, entries)
}

// GetProduct busca entrada de produto por id.
func (h *Handler) GetProduct(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(r)
	if err != nil {
		WriteError(w, http.StatusNotFound, product.ErrNotFound.Error())
		return
	}

	entry, err := h.products.Get(r.Context(), id)
	if err != nil {
		writeProductError(w, err)
		return
	}
	WriteJSON(w, http.StatusOK, entry)
}

// CreateProduct registra uma entrada de produto. O fornecedor é
// verificado no servidor.
func (h *Handler) CreateProduct(w http.ResponseWriter, r *http.Request) {
	var input product.CreateInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		WriteError(w, http.StatusBadRequest, "JSON inválido")
		return
	}

	entry, err := h.products.Create(r.Context(), input)
	if err != nil {
		writeProductError(w, err)
		return
	}
	WriteJSON(w, http.StatusCreated, entry)
}

// UpdateProduct aplica patch parcial em uma entrada.
func (h *Handler) UpdateProduct(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(r)
	if err != nil {
		WriteError(w, http.StatusNotFound, product.ErrNotFound.Error())
		return
	}

	var input product.UpdateInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		WriteError(w, http.StatusBadRequest, "JSON inválido")
		return
	}

	entry, err := h.products.Update(r.Context(), id, input)
	if err != nil {
		writeProductError(w, err)
		return
	}
	WriteJSON(w, http.StatusOK, entry)
}

// DeleteProduct remove uma entrada.
func (h *Handler) DeleteProduct(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(r)
	if err != nil {
		WriteError(w, http.StatusNotFound, product.ErrNotFound.Error())
		return
	}

	if err := h.products.Delete(r.Context(), id); err != nil {
		writeProductError(w, err)
		return
	}
	WriteJSON(w, http.StatusOK, map[string]bool{"deleted": true})
}
