package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"

	"github.com/rotaforte/frota/internal/auth"
	"github.com/rotaforte/frota/internal/mail"
	"github.com/rotaforte/frota/internal/rbac"
	"github.com/rotaforte/frota/internal/repo"
	"github.com/rotaforte/frota/internal/util"
	"github.com/rotaforte/frota/pkg/fleet"
)

var (
	// ErrInvalidCredentials indica falha na autenticação.
	ErrInvalidCredentials = errors.New("Email ou senha incorretos")
	// ErrAccountDisabled indica conta desativada.
	ErrAccountDisabled = errors.New("Conta desativada")
	// ErrEmailNotConfirmed indica senha correta em conta ainda não
	// confirmada. A mensagem vem do contrato compartilhado com o
	// cliente, que a usa para distinguir o 403 de confirmação.
	ErrEmailNotConfirmed = errors.New(fleet.MsgEmailNotConfirmed)
	// ErrEmailTaken indica e-mail já cadastrado.
	ErrEmailTaken = errors.New("Este email já está cadastrado")
	// ErrRefreshInvalid indica refresh token inválido ou expirado.
	ErrRefreshInvalid = errors.New("Sessão expirada, faça login novamente")
	// ErrTokenInvalid indica token de confirmação ou reset inválido.
	ErrTokenInvalid = errors.New("Token inválido ou expirado")
)

type authRepository interface {
	GetUsuarioByEmail(ctx context.Context, email string) (repo.Usuario, error)
	GetUsuarioByID(ctx context.Context, id uuid.UUID) (repo.Usuario, error)
	InsertUsuario(ctx context.Context, arg repo.InsertUsuarioParams) (repo.Usuario, error)
	ConfirmarEmail(ctx context.Context, id uuid.UUID) error
	UpdateSenhaHash(ctx context.Context, id uuid.UUID, senhaHash string) error
	SetUltimoLogin(ctx context.Context, id uuid.UUID, when time.Time) error
	InsertRefreshToken(ctx context.Context, arg repo.InsertRefreshTokenParams) (repo.TokenRefresh, error)
	GetRefreshTokenByHash(ctx context.Context, tokenHash string) (repo.TokenRefresh, error)
	RevokeRefreshToken(ctx context.Context, tokenHash string) error
	InvalidateOtherRefreshTokens(ctx context.Context, subject uuid.UUID, keepHash string) error
}

type redisCommander interface {
	Set(ctx context.Context, key string, value any, expiration time.Duration) *redis.StatusCmd
	Get(ctx context.Context, key string) *redis.StringCmd
	Del(ctx context.Context, keys ...string) *redis.IntCmd
	Scan(ctx context.Context, cursor uint64, match string, count int64) *redis.ScanCmd
}

// AuthService concentra regras de autenticação, sessões e confirmação
// de e-mail. É a única autoridade de sessão do sistema.
type AuthService struct {
	repo       authRepository
	redis      redisCommander
	jwt        *auth.JWTManager
	mailer     mail.Mailer
	refreshTTL time.Duration
	confirmTTL time.Duration
	resetTTL   time.Duration
	baseURL    string
}

// NewAuthService cria novo serviço.
func NewAuthService(r authRepository, redisClient redisCommander, jwtMgr *auth.JWTManager, mailer mail.Mailer, refreshTTL, confirmTTL, resetTTL time.Duration, baseURL string) *AuthService {
	return &AuthService{
		repo:       r,
		redis:      redisClient,
		jwt:        jwtMgr,
		mailer:     mailer,
		refreshTTL: refreshTTL,
		confirmTTL: confirmTTL,
		resetTTL:   resetTTL,
		baseURL:    baseURL,
	}
}

// JWT expõe gerenciador de JWT (útil em middlewares).
func (s *AuthService) JWT() *auth.JWTManager {
	return s.jwt
}

// LoginResult representa retorno padrão de autenticações.
type LoginResult struct {
	AccessToken   string
	RefreshToken  string
	Usuario       repo.Usuario
	RefreshExpiry time.Time
}

// Register cria uma conta não confirmada e dispara o e-mail de
// confirmação. Papel vazio cai no default operator.
func (s *AuthService) Register(ctx context.Context, nome, email, telefone, papel, senha string) (repo.Usuario, error) {
	if err := util.RequireString(nome, "Nome"); err != nil {
		return repo.Usuario{}, err
	}
	if err := util.ValidateEmail(email); err != nil {
		return repo.Usuario{}, err
	}
	if err := util.ValidatePassword(senha); err != nil {
		return repo.Usuario{}, err
	}
	if err := util.RequireString(telefone, "Telefone"); err != nil {
		return repo.Usuario{}, err
	}

	if strings.TrimSpace(papel) == "" {
		papel = string(rbac.DefaultRole)
	} else if !rbac.IsValid(papel) {
		return repo.Usuario{}, util.Invalid("Papel inválido")
	}

	hash, err := auth.Hash(senha)
	if err != nil {
		return repo.Usuario{}, err
	}

	user, err := s.repo.InsertUsuario(ctx, repo.InsertUsuarioParams{
		ID:        uuid.New(),
		Nome:      strings.TrimSpace(nome),
		Email:     email,
		Telefone:  strings.TrimSpace(telefone),
		Papel:     strings.ToLower(strings.TrimSpace(papel)),
		SenhaHash: hash,
	})
	if err != nil {
		if errors.Is(err, repo.ErrDuplicate) {
			return repo.Usuario{}, ErrEmailTaken
		}
		return repo.Usuario{}, err
	}

	if err := s.sendConfirmation(ctx, user); err != nil {
		// Conta criada; a confirmação pode ser reenviada depois.
		log.Warn().Err(err).Str("email", user.Email).Msg("falha ao enviar confirmação de cadastro")
	}

	return user, nil
}

func (s *AuthService) sendConfirmation(ctx context.Context, user repo.Usuario) error {
	raw, hash, err := auth.GenerateToken()
	if err != nil {
		return err
	}
	if err := s.redis.Set(ctx, auth.ConfirmRedisKey(hash), user.ID.String(), s.confirmTTL).Err(); err != nil {
		return err
	}
	return s.mailer.SendConfirmation(user.Email, fmt.Sprintf("%s/confirmar-email?token=%s", s.baseURL, raw))
}

// Login autentica por e-mail e senha e abre a sessão única do usuário.
func (s *AuthService) Login(ctx context.Context, email, senha string) (*LoginResult, error) {
	user, err := s.repo.GetUsuarioByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			log.Warn().Msg("login: usuário não encontrado")
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}

	ok, err := auth.Verify(senha, user.SenhaHash)
	if err != nil {
		log.Warn().Err(err).Msg("login: verify password failed")
		return nil, ErrInvalidCredentials
	}
	if !ok {
		log.Warn().Msg("login: senha inválida")
		return nil, ErrInvalidCredentials
	}

	if !user.Ativo {
		return nil, ErrAccountDisabled
	}
	// Distinto de credenciais erradas: o front oferece reenvio da
	// confirmação apenas neste caso.
	if !user.EmailConfirmado {
		return nil, ErrEmailNotConfirmed
	}

	result, err := s.issueSession(ctx, user)
	if err != nil {
		return nil, err
	}

	if err := s.repo.SetUltimoLogin(ctx, user.ID, time.Now().UTC()); err != nil {
		log.Warn().Err(err).Msg("login: falha ao registrar último login")
	}

	return result, nil
}

func (s *AuthService) issueSession(ctx context.Context, user repo.Usuario) (*LoginResult, error) {
	role := rbac.RoleFromString(user.Papel)
	token, _, err := s.jwt.GenerateAccessToken(user.ID.String(), string(role))
	if err != nil {
		return nil, err
	}

	rawRefresh, refreshHash, err := auth.GenerateToken()
	if err != nil {
		return nil, err
	}

	expires := time.Now().UTC().Add(s.refreshTTL)
	if err := s.persistRefresh(ctx, user.ID, refreshHash, expires); err != nil {
		return nil, err
	}

	return &LoginResult{
		AccessToken:   token,
		RefreshToken:  rawRefresh,
		Usuario:       user,
		RefreshExpiry: expires,
	}, nil
}

func (s *AuthService) persistRefresh(ctx context.Context, subject uuid.UUID, hash string, expires time.Time) error {
	_, err := s.repo.InsertRefreshToken(ctx, repo.InsertRefreshTokenParams{
		ID:        uuid.New(),
		Subject:   subject,
		TokenHash: hash,
		Expiracao: expires,
		CriadoEm:  time.Now().UTC(),
	})
	if err != nil {
		return err
	}

	// Mantém no máximo uma sessão ativa por usuário.
	if err := s.repo.InvalidateOtherRefreshTokens(ctx, subject, hash); err != nil {
		return err
	}

	return s.redis.Set(ctx, auth.RefreshRedisKey(hash), "active", time.Until(expires)).Err()
}

// Refresh troca refresh token por novos tokens (rotação).
func (s *AuthService) Refresh(ctx context.Context, rawToken string) (*LoginResult, error) {
	if rawToken == "" {
		return nil, ErrRefreshInvalid
	}

	hash := auth.HashToken(rawToken)
	record, err := s.repo.GetRefreshTokenByHash(ctx, hash)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return nil, ErrRefreshInvalid
		}
		return nil, err
	}

	if record.Revogado || time.Now().UTC().After(record.Expiracao) {
		return nil, ErrRefreshInvalid
	}

	redisKey := auth.RefreshRedisKey(hash)
	status, err := s.redis.Get(ctx, redisKey).Result()
	if err == redis.Nil {
		return nil, ErrRefreshInvalid
	}
	if err != nil {
		return nil, err
	}
	if status != "active" {
		return nil, ErrRefreshInvalid
	}

	user, err := s.repo.GetUsuarioByID(ctx, record.Subject)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return nil, ErrRefreshInvalid
		}
		return nil, err
	}
	if !user.Ativo || !user.EmailConfirmado {
		return nil, ErrRefreshInvalid
	}

	result, err := s.issueSession(ctx, user)
	if err != nil {
		return nil, err
	}

	// Revoga token anterior (DB + Redis)
	if err := s.repo.RevokeRefreshToken(ctx, hash); err != nil && !errors.Is(err, repo.ErrNotFound) {
		return nil, err
	}
	if err := s.redis.Del(ctx, redisKey).Err(); err != nil && err != redis.Nil {
		return nil, err
	}

	return result, nil
}

// Logout revoga o refresh token atual e limpa os caches de coleções do
// usuário — nada do usuário anterior sobrevive à troca de identidade.
func (s *AuthService) Logout(ctx context.Context, rawToken string) error {
	if rawToken == "" {
		return nil
	}
	hash := auth.HashToken(rawToken)

	record, err := s.repo.GetRefreshTokenByHash(ctx, hash)
	if err != nil && !errors.Is(err, repo.ErrNotFound) {
		return err
	}

	if err := s.repo.RevokeRefreshToken(ctx, hash); err != nil && !errors.Is(err, repo.ErrNotFound) {
		return err
	}
	if err := s.redis.Del(ctx, auth.RefreshRedisKey(hash)).Err(); err != nil && err != redis.Nil {
		return err
	}

	if record.Subject != uuid.Nil {
		if err := s.clearUserCaches(ctx, record.Subject.String()); err != nil {
			log.Warn().Err(err).Msg("logout: falha ao limpar caches do usuário")
		}
	}
	return nil
}

func (s *AuthService) clearUserCaches(ctx context.Context, subject string) error {
	var cursor uint64
	pattern := auth.CacheKeyPrefix(subject) + "*"
	for {
		keys, next, err := s.redis.Scan(ctx, cursor, pattern, 100).Result()
		if err != nil {
			return err
		}
		if len(keys) > 0 {
			if err := s.redis.Del(ctx, keys...).Err(); err != nil {
				return err
			}
		}
		if next == 0 {
			return nil
		}
		cursor = next
	}
}

// ConfirmEmail valida o token recebido por e-mail e ativa a conta.
func (s *AuthService) ConfirmEmail(ctx context.Context, rawToken string) error {
	if rawToken == "" {
		return ErrTokenInvalid
	}

	key := auth.ConfirmRedisKey(auth.HashToken(rawToken))
	subject, err := s.redis.Get(ctx, key).Result()
	if err == redis.Nil {
		return ErrTokenInvalid
	}
	if err != nil {
		return err
	}

	id, err := uuid.Parse(subject)
	if err != nil {
		return ErrTokenInvalid
	}

	if err := s.repo.ConfirmarEmail(ctx, id); err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return ErrTokenInvalid
		}
		return err
	}

	return s.redis.Del(ctx, key).Err()
}

// ResendConfirmation reenvia o e-mail de confirmação. Sempre responde
// sucesso para não revelar quais e-mails existem.
func (s *AuthService) ResendConfirmation(ctx context.Context, email string) error {
	user, err := s.repo.GetUsuarioByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return nil
		}
		return err
	}
	if user.EmailConfirmado {
		return nil
	}
	return s.sendConfirmation(ctx, user)
}

// ResetPassword dispara o e-mail de redefinição. Sempre responde
// sucesso para não revelar quais e-mails existem.
func (s *AuthService) ResetPassword(ctx context.Context, email string) error {
	user, err := s.repo.GetUsuarioByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return nil
		}
		return err
	}

	raw, hash, err := auth.GenerateToken()
	if err != nil {
		return err
	}
	if err := s.redis.Set(ctx, auth.ResetRedisKey(hash), user.ID.String(), s.resetTTL).Err(); err != nil {
		return err
	}
	return s.mailer.SendPasswordReset(user.Email, fmt.Sprintf("%s/reset-password?token=%s", s.baseURL, raw))
}

// ConfirmPasswordReset troca a senha usando o token recebido por e-mail.
func (s *AuthService) ConfirmPasswordReset(ctx context.Context, rawToken, novaSenha string) error {
	if rawToken == "" {
		return ErrTokenInvalid
	}
	if err := util.ValidatePassword(novaSenha); err != nil {
		return err
	}

	key := auth.ResetRedisKey(auth.HashToken(rawToken))
	subject, err := s.redis.Get(ctx, key).Result()
	if err == redis.Nil {
		return ErrTokenInvalid
	}
	if err != nil {
		return err
	}

	id, err := uuid.Parse(subject)
	if err != nil {
		return ErrTokenInvalid
	}

	hash, err := auth.Hash(novaSenha)
	if err != nil {
		return err
	}
	if err := s.repo.UpdateSenhaHash(ctx, id, hash); err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return ErrTokenInvalid
		}
		return err
	}

	return s.redis.Del(ctx, key).Err()
}

// GetMe devolve o usuário autenticado.
func (s *AuthService) GetMe(ctx context.Context, subject uuid.UUID) (repo.Usuario, error) {
	return s.repo.GetUsuarioByID(ctx, subject)
}
