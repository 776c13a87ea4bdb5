package http

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/rotaforte/frota/internal/util"
)

// Envelope padroniza todas as respostas da API.
type Envelope struct {
	Success bool   `json:"success"`
	Data    any    `json:"data"`
	Error   string `json:"error,omitempty"`
}

// WriteJSON escreve envelope de sucesso.
func WriteJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(Envelope{Success: true, Data: data})
}

// WriteError escreve envelope de erro e mantém formato consistente.
func WriteError(w http.ResponseWriter, status int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(Envelope{Success: false, Data: nil, Error: message})
}

// writeServiceError responde 400 apenas para erros de validação;
// qualquer outro erro sai como 500 genérico para não vazar detalhes
// do banco ou de rede para o cliente.
func writeServiceError(w http.ResponseWriter, err error) {
	var ve *util.ValidationError
	if errors.As(err, &ve) {
		WriteError(w, http.StatusBadRequest, ve.Message)
		return
	}
	WriteError(w, http.StatusInternalServerError, "Erro interno do servidor")
}
