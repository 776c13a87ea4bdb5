package http

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/rotaforte/frota/internal/config"
	"github.com/rotaforte/frota/internal/http/middleware"
	"github.com/rotaforte/frota/internal/rbac"
	"github.com/rotaforte/frota/internal/repo"
	"github.com/rotaforte/frota/internal/service"
)

type userView struct {
	ID        uuid.UUID  `json:"id"`
	Name      string     `json:"name"`
	Email     string     `json:"email"`
	Role      string     `json:"role"`
	Phone     string     `json:"phone"`
	Status    string     `json:"status"`
	CreatedAt time.Time  `json:"createdAt"`
	LastLogin *time.Time `json:"lastLogin"`
}

func toUserView(u repo.Usuario) userView {
	status := "inactive"
	if u.Ativo {
		status = "active"
	}
	return userView{
		ID:        u.ID,
		Name:      u.Nome,
		Email:     u.Email,
		Role:      u.Papel,
		Phone:     u.Telefone,
		Status:    status,
		CreatedAt: u.CriadoEm,
		LastLogin: u.UltimoLogin,
	}
}

type sessionView struct {
	User         userView  `json:"user"`
	AccessToken  string    `json:"accessToken"`
	RefreshToken string    `json:"refreshToken"`
	ExpiresAt    time.Time `json:"expiresAt"`
}

func toSessionView(result *service.LoginResult) sessionView {
	return sessionView{
		User:         toUserView(result.Usuario),
		AccessToken:  result.AccessToken,
		RefreshToken: result.RefreshToken,
		ExpiresAt:    result.RefreshExpiry,
	}
}

// Login autentica por e-mail e senha.
func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	var payload struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		WriteError(w, http.StatusBadRequest, "JSON inválido")
		return
	}

	result, err := h.authService.Login(r.Context(), payload.Email, payload.Password)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidCredentials):
			WriteError(w, http.StatusUnauthorized, err.Error())
		case errors.Is(err, service.ErrAccountDisabled), errors.Is(err, service.ErrEmailNotConfirmed):
			WriteError(w, http.StatusForbidden, err.Error())
		default:
			WriteError(w, http.StatusInternalServerError, "Erro interno do servidor")
		}
		return
	}

	WriteJSON(w, http.StatusOK, toSessionView(result))
}

// Register cria uma conta pendente de confirmação de e-mail. O fluxo
// completo é limitado por timeout próprio para não prender a conexão
// no envio de e-mail.
func (h *Handler) Register(w http.ResponseWriter, r *http.Request) {
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

	ctx, cancel := context.WithTimeout(r.Context(), config.RegisterTimeout)
	defer cancel()

	user, err := h.authService.Register(ctx, payload.Name, payload.Email, payload.Phone, payload.Role, payload.Password)
	if err != nil {
		if errors.Is(err, service.ErrEmailTaken) {
			WriteError(w, http.StatusConflict, err.Error())
			return
		}
		if errors.Is(err, context.DeadlineExceeded) {
			WriteError(w, http.StatusGatewayTimeout, "Tempo limite excedido, tente novamente")
			return
		}
		writeServiceError(w, err)
		return
	}

	WriteJSON(w, http.StatusCreated, map[string]any{"user": toUserView(user)})
}

// Refresh troca refresh token válido por um novo par de tokens.
func (h *Handler) Refresh(w http.ResponseWriter, r *http.Request) {
	var payload struct {
		RefreshToken string `json:"refreshToken"`
	}
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		WriteError(w, http.StatusBadRequest, "JSON inválido")
		return
	}

	result, err := h.authService.Refresh(r.Context(), payload.RefreshToken)
	if err != nil {
		if errors.Is(err, service.ErrRefreshInvalid) {
			WriteError(w, http.StatusUnauthorized, err.Error())
			return
		}
		WriteError(w, http.StatusInternalServerError, "Erro interno do servidor")
		return
	}

	WriteJSON(w, http.StatusOK, toSessionView(result))
}

// Logout encerra a sessão atual.
func (h *Handler) Logout(w http.ResponseWriter, r *http.Request) {
	var payload struct {
		RefreshToken string `json:"refreshToken"`
	}
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		WriteError(w, http.StatusBadRequest, "JSON inválido")
		return
	}

	if err := h.authService.Logout(r.Context(), payload.RefreshToken); err != nil {
		WriteError(w, http.StatusInternalServerError, "Erro interno do servidor")
		return
	}

	WriteJSON(w, http.StatusOK, map[string]bool{"loggedOut": true})
}

// ConfirmEmail ativa a conta a partir do token enviado por e-mail.
func (h *Handler) ConfirmEmail(w http.ResponseWriter, r *http.Request) {
	var payload struct {
		Token string `json:"token"`
	}
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		WriteError(w, http.StatusBadRequest, "JSON inválido")
		return
	}

	if err := h.authService.ConfirmEmail(r.Context(), payload.Token); err != nil {
		if errors.Is(err, service.ErrTokenInvalid) {
			WriteError(w, http.StatusBadRequest, err.Error())
			return
		}
		WriteError(w, http.StatusInternalServerError, "Erro interno do servidor")
		return
	}

	WriteJSON(w, http.StatusOK, map[string]bool{"confirmed": true})
}

// ResendConfirmation reenvia o e-mail de confirmação.
func (h *Handler) ResendConfirmation(w http.ResponseWriter, r *http.Request) {
	var payload struct {
		Email string `json:"email"`
	}
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		WriteError(w, http.StatusBadRequest, "JSON inválido")
		return
	}

	if err := h.authService.ResendConfirmation(r.Context(), payload.Email); err != nil {
		WriteError(w, http.StatusInternalServerError, "Erro interno do servidor")
		return
	}

	WriteJSON(w, http.StatusOK, map[string]bool{"sent": true})
}

// ResetPassword inicia o fluxo de redefinição de senha.
func (h *Handler) ResetPassword(w http.ResponseWriter, r *http.Request) {
	var payload struct {
		Email string `json:"email"`
	}
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		WriteError(w, http.StatusBadRequest, "JSON inválido")
		return
	}

	if err := h.authService.ResetPassword(r.Context(), payload.Email); err != nil {
		WriteError(w, http.StatusInternalServerError, "Erro interno do servidor")
		return
	}

	WriteJSON(w, http.StatusOK, map[string]bool{"sent": true})
}

// ConfirmPasswordReset troca a senha usando o token do e-mail.
func (h *Handler) ConfirmPasswordReset(w http.ResponseWriter, r *http.Request) {
	var payload struct {
		Token    string `json:"token"`
		Password string `json:"password"`
	}
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		WriteError(w, http.StatusBadRequest, "JSON inválido")
		return
	}

	if err := h.authService.ConfirmPasswordReset(r.Context(), payload.Token, payload.Password); err != nil {
		if errors.Is(err, service.ErrTokenInvalid) {
			WriteError(w, http.StatusBadRequest, err.Error())
			return
		}
		writeServiceError(w, err)
		return
	}

	WriteJSON(w, http.StatusOK, map[string]bool{"updated": true})
}

// Me devolve o usuário da sessão atual.
func (h *Handler) Me(w http.ResponseWriter, r *http.Request) {
	subject, err := uuid.Parse(middleware.GetSubject(r.Context()))
	if err != nil {
		WriteError(w, http.StatusUnauthorized, "Sessão inválida ou expirada")
		return
	}

	user, err := h.authService.GetMe(r.Context(), subject)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			WriteError(w, http.StatusUnauthorized, "Sessão inválida ou expirada")
			return
		}
		WriteError(w, http.StatusInternalServerError, "Erro interno do servidor")
		return
	}

	WriteJSON(w, http.StatusOK, map[string]any{"user": toUserView(user)})
}

// Navigation devolve as seções visíveis para o papel da sessão.
func (h *Handler) Navigation(w http.ResponseWriter, r *http.Request) {
	sections := rbac.VisibleSections(middleware.GetRole(r.Context()))
	WriteJSON(w, http.StatusOK, map[string]any{"sections": sections})
}
