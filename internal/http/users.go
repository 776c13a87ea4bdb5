package http

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/rotaforte/frota/internal/service"
)

func writeUserError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, service.ErrUserNotFound):
		WriteError(w, http.StatusNotFound, err.Error())
	case errors.Is(err, service.ErrEmailTaken):
		WriteError(w, http.StatusConflict, err.Error())
	case errors.Is(err, service.ErrAdminImmutable):
		WriteError(w, http.StatusForbidden, err.Error())
	default:
		writeServiceError(w, err)
	}
}

// ListUsers devolve todas as contas, mais recentes primeiro.
func (h *Handler) ListUsers(w http.ResponseWriter, r *http.Request) {
	users, err := h.users.List(r.Context())
	if err != nil {
		WriteError(w, http.StatusInternalServerError, "Erro interno do servidor")
		return
	}

	views := make([]userView, 0, len(users))
	for _, u := range users {
		views = append(views, toUserView(u))
	}
	WriteJSON(w, http.StatusOK, views)
}

// GetUser busca conta por id.
func (h *Handler) GetUser(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(r)
	if err != nil {
		WriteError(w, http.StatusNotFound, service.ErrUserNotFound.Error())
		return
	}

	user, err := h.users.Get(r.Context(), id)
	if err != nil {
		writeUserError(w, err)
		return
	}
	WriteJSON(w, http.StatusOK, toUserView(user))
}

// CreateUser cria uma conta já confirmada (fluxo do administrador).
func (h *Handler) CreateUser(w http.ResponseWriter, r *http.Request) {
	var payload struct {
		Name     string `json:"name"`
		Email    string `json:"email"`
		Phone    string `json:"phone"`
		Role     string `json:"role"`
		Password string `json:"password"`
	}
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		WriteError(w, http.StatusBadRequest, "JSON inválido")
		return
	}

	user, err := h.users.Create(r.Context(), service.CreateUserInput{
		Nome:     payload.Name,
		Email:    payload.Email,
		Telefone: payload.Phone,
		Papel:    payload.Role,
		Senha:    payload.Password,
	})
	if err != nil {
		writeUserError(w, err)
		return
	}
	WriteJSON(w, http.StatusCreated, toUserView(user))
}

// UpdateUser aplica patch parcial em uma conta.
func (h *Handler) UpdateUser(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(r)
	if err != nil {
		WriteError(w, http.StatusNotFound, service.ErrUserNotFound.Error())
		return
	}

	var payload struct {
		Name     *string `json:"name"`
		Email    *string `json:"email"`
		Phone    *string `json:"phone"`
		Role     *string `json:"role"`
		Status   *string `json:"status"`
		Password *string `json:"password"`
	}
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		WriteError(w, http.StatusBadRequest, "JSON inválido")
		return
	}

	user, err := h.users.Update(r.Context(), id, service.UpdateUserInput{
		Nome:     payload.Name,
		Email:    payload.Email,
		Telefone: payload.Phone,
		Papel:    payload.Role,
		Status:   payload.Status,
		Senha:    payload.Password,
	})
	if err != nil {
		writeUserError(w, err)
		return
	}
	WriteJSON(w, http.StatusOK, toUserView(user))
}

// DeleteUser remove uma conta; administradores são protegidos.
func (h *Handler) DeleteUser(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(r)
	if err != nil {
		WriteError(w, http.StatusNotFound, service.ErrUserNotFound.Error())
		return
	}

	if err := h.users.Delete(r.Context(), id); err != nil {
		writeUserError(w, err)
		return
	}
	WriteJSON(w, http.StatusOK, map[string]bool{"deleted": true})
}

// ToggleUserStatus alterna uma conta entre ativa e inativa.
func (h *Handler) ToggleUserStatus(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(r)
	if err != nil {
		WriteError(w, http.StatusNotFound, service.ErrUserNotFound.Error())
		return
	}

	user, err := h.users.ToggleStatus(r.Context(), id)
	if err != nil {
		writeUserError(w, err)
		return
	}
	WriteJSON(w, http.StatusOK, toUserView(user))
}
