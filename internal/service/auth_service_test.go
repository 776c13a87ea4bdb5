package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"github.com/rotaforte/frota/internal/auth"
	"github.com/rotaforte/frota/internal/mail"
	"github.com/rotaforte/frota/internal/repo"
)

type stubAuthRepo struct {
	user         repo.Usuario
	refresh      map[string]repo.TokenRefresh
	refreshCalls int
	lastLogin    *time.Time
	inserted     *repo.InsertUsuarioParams
	insertErr    error
}

func (s *stubAuthRepo) GetUsuarioByEmail(ctx context.Context, email string) (repo.Usuario, error) {
	if s.user.ID != uuid.Nil && strings.EqualFold(email, s.user.Email) {
		return s.user, nil
	}
	return repo.Usuario{}, repo.ErrNotFound
}

func (s *stubAuthRepo) GetUsuarioByID(ctx context.Context, id uuid.UUID) (repo.Usuario, error) {
	if id == s.user.ID {
		return s.user, nil
	}
	return repo.Usuario{}, repo.ErrNotFound
}

func (s *stubAuthRepo) InsertUsuario(ctx context.Context, arg repo.InsertUsuarioParams) (repo.Usuario, error) {
	if s.insertErr != nil {
		return repo.Usuario{}, s.insertErr
	}
	s.inserted = &arg
	return repo.Usuario{
		ID:        arg.ID,
		Nome:      arg.Nome,
		Email:     strings.ToLower(arg.Email),
		Telefone:  arg.Telefone,
		Papel:     arg.Papel,
		SenhaHash: arg.SenhaHash,
		Ativo:     true,
	}, nil
}

func (s *stubAuthRepo) ConfirmarEmail(ctx context.Context, id uuid.UUID) error {
	if id != s.user.ID {
		return repo.ErrNotFound
	}
	s.user.EmailConfirmado = true
	return nil
}

func (s *stubAuthRepo) UpdateSenhaHash(ctx context.Context, id uuid.UUID, senhaHash string) error {
	if id != s.user.ID {
		return repo.ErrNotFound
	}
	s.user.SenhaHash = senhaHash
	return nil
}

func (s *stubAuthRepo) SetUltimoLogin(ctx context.Context, id uuid.UUID, when time.Time) error {
	s.lastLogin = &when
	return nil
}

func (s *stubAuthRepo) InsertRefreshToken(ctx context.Context, arg repo.InsertRefreshTokenParams) (repo.TokenRefresh, error) {
	s.refreshCalls++
	token := repo.TokenRefresh{
		ID:        arg.ID,
		Subject:   arg.Subject,
		TokenHash: arg.TokenHash,
		Expiracao: arg.Expiracao,
		CriadoEm:  arg.CriadoEm,
	}
	if s.refresh == nil {
		s.refresh = make(map[string]repo.TokenRefresh)
	}
	s.refresh[arg.TokenHash] = token
	return token, nil
}

func (s *stubAuthRepo) GetRefreshTokenByHash(ctx context.Context, tokenHash string) (repo.TokenRefresh, error) {
	token, ok := s.refresh[tokenHash]
	if !ok {
		return repo.TokenRefresh{}, repo.ErrNotFound
	}
	return token, nil
}

func (s *stubAuthRepo) RevokeRefreshToken(ctx context.Context, tokenHash string) error {
	token, ok := s.refresh[tokenHash]
	if !ok {
		return repo.ErrNotFound
	}
	token.Revogado = true
	s.refresh[tokenHash] = token
	return nil
}

func (s *stubAuthRepo) InvalidateOtherRefreshTokens(ctx context.Context, subject uuid.UUID, keepHash string) error {
	for hash, token := range s.refresh {
		if token.Subject == subject && hash != keepHash {
			token.Revogado = true
			s.refresh[hash] = token
		}
	}
	return nil
}

type stubRedis struct {
	store map[string]string
}

func (s *stubRedis) Set(ctx context.Context, key string, value any, expiration time.Duration) *redis.StatusCmd {
	if s.store == nil {
		s.store = make(map[string]string)
	}
	s.store[key] = fmt.Sprint(value)
	cmd := redis.NewStatusCmd(ctx)
	cmd.SetVal("OK")
	return cmd
}

func (s *stubRedis) Get(ctx context.Context, key string) *redis.StringCmd {
	cmd := redis.NewStringCmd(ctx)
	val, ok := s.store[key]
	if !ok {
		cmd.SetErr(redis.Nil)
		return cmd
	}
	cmd.SetVal(val)
	return cmd
}

func (s *stubRedis) Del(ctx context.Context, keys ...string) *redis.IntCmd {
	var removed int64
	for _, key := range keys {
		if _, ok := s.store[key]; ok {
			delete(s.store, key)
			removed++
		}
	}
	cmd := redis.NewIntCmd(ctx)
	cmd.SetVal(removed)
	return cmd
}

func (s *stubRedis) Scan(ctx context.Context, cursor uint64, match string, count int64) *redis.ScanCmd {
	prefix := strings.TrimSuffix(match, "*")
	var keys []string
	for key := range s.store {
		if strings.HasPrefix(key, prefix) {
			keys = append(keys, key)
		}
	}
	cmd := redis.NewScanCmd(ctx, nil)
	cmd.SetVal(keys, 0)
	return cmd
}

type stubMailer struct {
	confirmations []string
	resets        []string
}

func (m *stubMailer) SendConfirmation(to, link string) error {
	m.confirmations = append(m.confirmations, to)
	return nil
}

func (m *stubMailer) SendPasswordReset(to, link string) error {
	m.resets = append(m.resets, to)
	return nil
}

var _ mail.Mailer = (*stubMailer)(nil)

func newTestAuthService(repoStub *stubAuthRepo, redisStub *stubRedis, mailer *stubMailer) *AuthService {
	return &AuthService{
		repo:       repoStub,
		redis:      redisStub,
		jwt:        auth.NewJWTManager(strings.Repeat("a", 32), time.Minute),
		mailer:     mailer,
		refreshTTL: time.Hour,
		confirmTTL: time.Hour,
		resetTTL:   time.Hour,
		baseURL:    "https://frota.example.com",
	}
}

func activeUser(t *testing.T, password string) repo.Usuario {
	t.Helper()
	hash, err := auth.Hash(password)
	if err != nil {
		t.Fatalf("hash password: %v", err)
	}
	return repo.Usuario{
		ID:              uuid.New(),
		Nome:            "Carlos Oliveira",
		Email:           "carlos@frota.com",
		Telefone:        "(11) 99999-0000",
		Papel:           "operator",
		SenhaHash:       hash,
		Ativo:           true,
		EmailConfirmado: true,
	}
}

func TestLoginSuccessIssuesTokens(t *testing.T) {
	password := "senha-segura"
	repoStub := &stubAuthRepo{user: activeUser(t, password)}
	svc := newTestAuthService(repoStub, &stubRedis{}, &stubMailer{})

	result, err := svc.Login(context.Background(), "carlos@frota.com", password)
	if err != nil {
		t.Fatalf("login failed: %v", err)
	}
	if result.AccessToken == "" || result.RefreshToken == "" {
		t.Fatal("expected both tokens to be issued")
	}
	if repoStub.refreshCalls != 1 {
		t.Fatalf("expected one refresh token insert, got %d", repoStub.refreshCalls)
	}
	if repoStub.lastLogin == nil {
		t.Fatal("expected last login to be recorded")
	}

	claims, err := svc.jwt.ParseAndValidate(result.AccessToken)
	if err != nil {
		t.Fatalf("parse access token: %v", err)
	}
	if claims.Role != "operator" {
		t.Fatalf("expected role operator in claims, got %q", claims.Role)
	}
}

func TestLoginWrongPassword(t *testing.T) {
	repoStub := &stubAuthRepo{user: activeUser(t, "senha-segura")}
	svc := newTestAuthService(repoStub, &stubRedis{}, &stubMailer{})

	if _, err := svc.Login(context.Background(), "carlos@frota.com", "outra-senha"); !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
}

func TestLoginUnknownEmail(t *testing.T) {
	svc := newTestAuthService(&stubAuthRepo{}, &stubRedis{}, &stubMailer{})

	if _, err := svc.Login(context.Background(), "ninguem@frota.com", "qualquer"); !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
}

func TestLoginDisabledAccount(t *testing.T) {
	user := activeUser(t, "senha-segura")
	user.Ativo = false
	svc := newTestAuthService(&stubAuthRepo{user: user}, &stubRedis{}, &stubMailer{})

	if _, err := svc.Login(context.Background(), "carlos@frota.com", "senha-segura"); !errors.Is(err, ErrAccountDisabled) {
		t.Fatalf("expected ErrAccountDisabled, got %v", err)
	}
}

func TestLoginUnconfirmedEmail(t *testing.T) {
	user := activeUser(t, "senha-segura")
	user.EmailConfirmado = false
	svc := newTestAuthService(&stubAuthRepo{user: user}, &stubRedis{}, &stubMailer{})

	if _, err := svc.Login(context.Background(), "carlos@frota.com", "senha-segura"); !errors.Is(err, ErrEmailNotConfirmed) {
		t.Fatalf("expected ErrEmailNotConfirmed, got %v", err)
	}

	// Senha errada em conta não confirmada não pode vazar o estado.
	if _, err := svc.Login(context.Background(), "carlos@frota.com", "errada"); !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
}

func TestRegisterDefaultsToOperator(t *testing.T) {
	repoStub := &stubAuthRepo{}
	mailer := &stubMailer{}
	svc := newTestAuthService(repoStub, &stubRedis{}, mailer)

	user, err := svc.Register(context.Background(), "Maria Santos", "maria@frota.com", "(11) 98888-0000", "", "senha-segura")
	if err != nil {
		t.Fatalf("register failed: %v", err)
	}
	if user.Papel != "operator" {
		t.Fatalf("expected default papel operator, got %q", user.Papel)
	}
	if repoStub.inserted == nil || repoStub.inserted.Confirmado {
		t.Fatal("self-registered account must start unconfirmed")
	}
	if len(mailer.confirmations) != 1 {
		t.Fatalf("expected one confirmation email, got %d", len(mailer.confirmations))
	}
}

func TestRegisterDuplicateEmail(t *testing.T) {
	repoStub := &stubAuthRepo{insertErr: repo.ErrDuplicate}
	svc := newTestAuthService(repoStub, &stubRedis{}, &stubMailer{})

	if _, err := svc.Register(context.Background(), "Maria Santos", "maria@frota.com", "(11) 98888-0000", "", "senha-segura"); !errors.Is(err, ErrEmailTaken) {
		t.Fatalf("expected ErrEmailTaken, got %v", err)
	}
}

func TestRegisterShortPassword(t *testing.T) {
	svc := newTestAuthService(&stubAuthRepo{}, &stubRedis{}, &stubMailer{})

	_, err := svc.Register(context.Background(), "Maria Santos", "maria@frota.com", "(11) 98888-0000", "", "12345")
	if err == nil || !strings.Contains(err.Error(), "pelo menos 6 caracteres") {
		t.Fatalf("expected short password error, got %v", err)
	}
}

func TestRefreshRotatesToken(t *testing.T) {
	password := "senha-segura"
	repoStub := &stubAuthRepo{user: activeUser(t, password)}
	redisStub := &stubRedis{}
	svc := newTestAuthService(repoStub, redisStub, &stubMailer{})

	first, err := svc.Login(context.Background(), "carlos@frota.com", password)
	if err != nil {
		t.Fatalf("login failed: %v", err)
	}

	second, err := svc.Refresh(context.Background(), first.RefreshToken)
	if err != nil {
		t.Fatalf("refresh failed: %v", err)
	}
	if second.RefreshToken == first.RefreshToken {
		t.Fatal("refresh must rotate the token")
	}

	// Token antigo não serve mais.
	if _, err := svc.Refresh(context.Background(), first.RefreshToken); !errors.Is(err, ErrRefreshInvalid) {
		t.Fatalf("expected ErrRefreshInvalid after rotation, got %v", err)
	}
}

func TestRefreshRejectsUnknownToken(t *testing.T) {
	svc := newTestAuthService(&stubAuthRepo{}, &stubRedis{}, &stubMailer{})

	if _, err := svc.Refresh(context.Background(), "token-desconhecido"); !errors.Is(err, ErrRefreshInvalid) {
		t.Fatalf("expected ErrRefreshInvalid, got %v", err)
	}
}

func TestLogoutRevokesAndClearsCaches(t *testing.T) {
	password := "senha-segura"
	repoStub := &stubAuthRepo{user: activeUser(t, password)}
	redisStub := &stubRedis{}
	svc := newTestAuthService(repoStub, redisStub, &stubMailer{})

	result, err := svc.Login(context.Background(), "carlos@frota.com", password)
	if err != nil {
		t.Fatalf("login failed: %v", err)
	}

	cacheKey := auth.CacheKeyPrefix(repoStub.user.ID.String()) + "drivers"
	redisStub.Set(context.Background(), cacheKey, "payload", time.Hour)

	if err := svc.Logout(context.Background(), result.RefreshToken); err != nil {
		t.Fatalf("logout failed: %v", err)
	}

	if _, ok := redisStub.store[cacheKey]; ok {
		t.Fatal("expected user cache keys to be cleared on logout")
	}
	if _, err := svc.Refresh(context.Background(), result.RefreshToken); !errors.Is(err, ErrRefreshInvalid) {
		t.Fatalf("expected revoked token to fail refresh, got %v", err)
	}
}

func TestConfirmEmailFlow(t *testing.T) {
	user := activeUser(t, "senha-segura")
	user.EmailConfirmado = false
	repoStub := &stubAuthRepo{user: user}
	redisStub := &stubRedis{}
	svc := newTestAuthService(repoStub, redisStub, &stubMailer{})

	raw, hash, err := auth.GenerateToken()
	if err != nil {
		t.Fatalf("generate token: %v", err)
	}
	redisStub.Set(context.Background(), auth.ConfirmRedisKey(hash), user.ID.String(), time.Hour)

	if err := svc.ConfirmEmail(context.Background(), raw); err != nil {
		t.Fatalf("confirm email failed: %v", err)
	}
	if !repoStub.user.EmailConfirmado {
		t.Fatal("expected account to be confirmed")
	}

	// Token é de uso único.
	if err := svc.ConfirmEmail(context.Background(), raw); !errors.Is(err, ErrTokenInvalid) {
		t.Fatalf("expected ErrTokenInvalid on reuse, got %v", err)
	}
}

func TestResetPasswordUnknownEmailIsSilent(t *testing.T) {
	mailer := &stubMailer{}
	svc := newTestAuthService(&stubAuthRepo{}, &stubRedis{}, mailer)

	if err := svc.ResetPassword(context.Background(), "ninguem@frota.com"); err != nil {
		t.Fatalf("expected silent success, got %v", err)
	}
	if len(mailer.resets) != 0 {
		t.Fatal("no email should be sent for unknown address")
	}
}

func TestConfirmPasswordResetChangesHash(t *testing.T) {
	user := activeUser(t, "senha-antiga")
	repoStub := &stubAuthRepo{user: user}
	redisStub := &stubRedis{}
	svc := newTestAuthService(repoStub, redisStub, &stubMailer{})

	raw, hash, err := auth.GenerateToken()
	if err != nil {
		t.Fatalf("generate token: %v", err)
	}
	redisStub.Set(context.Background(), auth.ResetRedisKey(hash), user.ID.String(), time.Hour)

	if err := svc.ConfirmPasswordReset(context.Background(), raw, "senha-nova"); err != nil {
		t.Fatalf("confirm reset failed: %v", err)
	}

	ok, err := auth.Verify("senha-nova", repoStub.user.SenhaHash)
	if err != nil || !ok {
		t.Fatalf("expected new password to verify, ok=%v err=%v", ok, err)
	}
}
