package fleet

import (
	"context"
	"errors"
	"net/http"
	"sync"
	"time"
)

// State indica quem está logado neste processo.
type State int

const (
	StateUnauthenticated State = iota
	StateAuthenticated
)

// AuthErrorKind classifica falhas de autenticação para a camada de
// apresentação distinguir "senha errada" de "sem conexão".
type AuthErrorKind int

const (
	AuthConnection AuthErrorKind = iota
	AuthInvalidCredentials
	AuthEmailNotConfirmed
	AuthDuplicateEmail
	AuthWeakCredential
)

// AuthError é o único erro devolvido pelas operações de sessão.
type AuthError struct {
	Kind    AuthErrorKind
	Message string
}

func (e *AuthError) Error() string {
	return e.Message
}

// User é a projeção do usuário autenticado.
type User struct {
	ID        string     `json:"id"`
	Name      string     `json:"name"`
	Email     string     `json:"email"`
	Role      string     `json:"role"`
	Phone     string     `json:"phone"`
	Status    string     `json:"status"`
	CreatedAt time.Time  `json:"createdAt"`
	LastLogin *time.Time `json:"lastLogin"`
}

// Session é o resultado de uma autenticação bem-sucedida.
type Session struct {
	User         User      `json:"user"`
	AccessToken  string    `json:"accessToken"`
	RefreshToken string    `json:"refreshToken"`
	ExpiresAt    time.Time `json:"expiresAt"`
}

type resettable interface {
	Reset()
}

// signUpTimeout limita o fluxo de cadastro ponta a ponta no cliente.
const signUpTimeout = 10 * time.Second

// SessionManager é a autoridade única de "quem está logado" no
// processo. O estado inicial é Unauthenticated com loading=true até a
// sondagem inicial resolver; loading resolve exatamente uma vez.
type SessionManager struct {
	client *Client

	mu          sync.Mutex
	state       State
	session     *Session
	loading     bool
	listeners   []func(State)
	collections []resettable
}

// NewSessionManager cria o gerenciador. A sessão só fica utilizável
// depois de Start.
func NewSessionManager(client *Client) *SessionManager {
	return &SessionManager{client: client, state: StateUnauthenticated, loading: true}
}

// Start executa a sondagem inicial: com um refresh token persistido a
// sessão é retomada; sem ele o estado resolve para Unauthenticated.
// Em ambos os casos loading vira false, uma única vez.
func (m *SessionManager) Start(ctx context.Context, storedRefreshToken string) {
	defer m.resolveLoading()

	if storedRefreshToken == "" {
		return
	}

	var session Session
	err := m.client.do(ctx, http.MethodPost, "/api/auth/refresh",
		map[string]string{"refreshToken": storedRefreshToken}, &session)
	if err != nil {
		return
	}

	m.adopt(&session)
}

func (m *SessionManager) resolveLoading() {
	m.mu.Lock()
	m.loading = false
	m.mu.Unlock()
}

// Loading informa se a sondagem inicial ainda não resolveu.
func (m *SessionManager) Loading() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.loading
}

// State devolve o estado atual.
func (m *SessionManager) State() State {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.state
}

// Current devolve a sessão ativa, ou nil.
func (m *SessionManager) Current() *Session {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.session
}

// OnChange registra um observador de mudanças de estado.
func (m *SessionManager) OnChange(fn func(State)) {
	m.mu.Lock()
	m.listeners = append(m.listeners, fn)
	m.mu.Unlock()
}

// RegisterCollection inscreve uma coleção para limpeza no SignOut.
// Nada do usuário anterior pode sobreviver a uma troca de identidade.
func (m *SessionManager) RegisterCollection(c resettable) {
	m.mu.Lock()
	m.collections = append(m.collections, c)
	m.mu.Unlock()
}

func (m *SessionManager) adopt(session *Session) {
	m.client.SetAccessToken(session.AccessToken)

	m.mu.Lock()
	m.session = session
	m.state = StateAuthenticated
	listeners := append([]func(State){}, m.listeners...)
	m.mu.Unlock()

	for _, fn := range listeners {
		fn(StateAuthenticated)
	}
}

// SignIn autentica e substitui a sessão atual.
func (m *SessionManager) SignIn(ctx context.Context, email, password string) (*Session, error) {
	var session Session
	err := m.client.do(ctx, http.MethodPost, "/api/auth/login",
		map[string]string{"email": email, "password": password}, &session)
	if err != nil {
		return nil, mapAuthError(err)
	}

	m.adopt(&session)
	return &session, nil
}

// SignUp cria uma conta não confirmada com papel padrão operator. O
// fluxo usa timeout próprio de 10 segundos.
func (m *SessionManager) SignUp(ctx context.Context, name, email, phone, password string) error {
	ctx, cancel := context.WithTimeout(ctx, signUpTimeout)
	defer cancel()

	err := m.client.do(ctx, http.MethodPost, "/api/auth/register", map[string]string{
		"name":     name,
		"email":    email,
		"phone":    phone,
		"password": password,
	}, nil)
	if err != nil {
		return mapAuthError(err)
	}
	return nil
}

// SignOut revoga a sessão no servidor, limpa o estado local e todas as
// coleções registradas.
func (m *SessionManager) SignOut(ctx context.Context) {
	m.mu.Lock()
	refreshToken := ""
	if m.session != nil {
		refreshToken = m.session.RefreshToken
	}
	m.mu.Unlock()

	if refreshToken != "" {
		// Falha de rede aqui não impede o logout local.
		_ = m.client.do(ctx, http.MethodPost, "/api/auth/logout",
			map[string]string{"refreshToken": refreshToken}, nil)
	}

	m.client.SetAccessToken("")

	m.mu.Lock()
	m.session = nil
	m.state = StateUnauthenticated
	listeners := append([]func(State){}, m.listeners...)
	collections := append([]resettable{}, m.collections...)
	m.mu.Unlock()

	for _, c := range collections {
		c.Reset()
	}
	for _, fn := range listeners {
		fn(StateUnauthenticated)
	}
}

// ResetPassword dispara o fluxo de redefinição. Sucesso mesmo para
// e-mails desconhecidos.
func (m *SessionManager) ResetPassword(ctx context.Context, email string) error {
	err := m.client.do(ctx, http.MethodPost, "/api/auth/reset-password",
		map[string]string{"email": email}, nil)
	if err != nil {
		return mapAuthError(err)
	}
	return nil
}

// ResendConfirmation reenvia o e-mail de confirmação; usado após uma
// falha de login por e-mail não confirmado.
func (m *SessionManager) ResendConfirmation(ctx context.Context, email string) error {
	err := m.client.do(ctx, http.MethodPost, "/api/auth/resend-confirmation",
		map[string]string{"email": email}, nil)
	if err != nil {
		return mapAuthError(err)
	}
	return nil
}

func mapAuthError(err error) error {
	var he *httpError
	if !errors.As(err, &he) {
		return &AuthError{Kind: AuthConnection, Message: connectionMessage}
	}

	switch he.Status {
	case 0:
		return &AuthError{Kind: AuthConnection, Message: connectionMessage}
	case http.StatusUnauthorized:
		return &AuthError{Kind: AuthInvalidCredentials, Message: he.Message}
	case http.StatusForbidden:
		if he.Message == MsgEmailNotConfirmed {
			return &AuthError{Kind: AuthEmailNotConfirmed, Message: he.Message}
		}
		return &AuthError{Kind: AuthInvalidCredentials, Message: he.Message}
	case http.StatusConflict:
		return &AuthError{Kind: AuthDuplicateEmail, Message: he.Message}
	case http.StatusBadRequest:
		if he.Message == MsgWeakPassword {
			return &AuthError{Kind: AuthWeakCredential, Message: he.Message}
		}
		return &AuthError{Kind: AuthConnection, Message: he.Message}
	}
	return &AuthError{Kind: AuthConnection, Message: he.Message}
}
