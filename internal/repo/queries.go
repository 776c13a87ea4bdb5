package repo

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// DBTX abstrai pool ou transação pgx; facilita testes com pgxmock.
type DBTX interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// Queries provê acesso às tabelas de identidade.
type Queries struct {
	db DBTX
}

// New cria o conjunto de queries sobre o executor informado.
func New(db DBTX) *Queries {
	return &Queries{db: db}
}

const usuarioColumns = `id, nome, email, telefone, papel, senha_hash, ativo, email_confirmado, ultimo_login, criado_em, atualizado_em`

func scanUsuario(row pgx.Row) (Usuario, error) {
	var u Usuario
	err := row.Scan(&u.ID, &u.Nome, &u.Email, &u.Telefone, &u.Papel, &u.SenhaHash,
		&u.Ativo, &u.EmailConfirmado, &u.UltimoLogin, &u.CriadoEm, &u.AtualizadoEm)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Usuario{}, ErrNotFound
		}
		return Usuario{}, err
	}
	return u, nil
}

// GetUsuarioByEmail busca usuário pelo e-mail normalizado.
func (q *Queries) GetUsuarioByEmail(ctx context.Context, email string) (Usuario, error) {
	row := q.db.QueryRow(ctx,
		`SELECT `+usuarioColumns+` FROM usuarios WHERE lower(email) = lower($1)`,
		strings.TrimSpace(email))
	return scanUsuario(row)
}

// GetUsuarioByID busca usuário pelo identificador.
func (q *Queries) GetUsuarioByID(ctx context.Context, id uuid.UUID) (Usuario, error) {
	row := q.db.QueryRow(ctx,
		`SELECT `+usuarioColumns+` FROM usuarios WHERE id = $1`, id)
	return scanUsuario(row)
}

// ListUsuarios devolve todos os usuários, mais recentes primeiro.
func (q *Queries) ListUsuarios(ctx context.Context) ([]Usuario, error) {
	rows, err := q.db.Query(ctx,
		`SELECT `+usuarioColumns+` FROM usuarios ORDER BY criado_em DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var usuarios []Usuario
	for rows.Next() {
		u, err := scanUsuario(rows)
		if err != nil {
			return nil, err
		}
		usuarios = append(usuarios, u)
	}
	return usuarios, rows.Err()
}

// InsertUsuario cria usuário; e-mail duplicado vira ErrDuplicate.
func (q *Queries) InsertUsuario(ctx context.Context, arg InsertUsuarioParams) (Usuario, error) {
	row := q.db.QueryRow(ctx, `
        INSERT INTO usuarios (id, nome, email, telefone, papel, senha_hash, email_confirmado)
        VALUES ($1, $2, lower($3), $4, $5, $6, $7)
        RETURNING `+usuarioColumns,
		arg.ID, arg.Nome, strings.TrimSpace(arg.Email), arg.Telefone, arg.Papel, arg.SenhaHash, arg.Confirmado)

	u, err := scanUsuario(row)
	if err != nil {
		if IsUniqueViolation(err) {
			return Usuario{}, ErrDuplicate
		}
		return Usuario{}, err
	}
	return u, nil
}

// UpdateUsuario aplica patch parcial e devolve o registro atualizado.
func (q *Queries) UpdateUsuario(ctx context.Context, id uuid.UUID, arg UpdateUsuarioParams) (Usuario, error) {
	var ativo *bool
	if arg.Status != nil {
		v := *arg.Status == "active"
		ativo = &v
	}

	row := q.db.QueryRow(ctx, `
        UPDATE usuarios
        SET nome = COALESCE($2, nome),
            email = COALESCE(lower($3), email),
            telefone = COALESCE($4, telefone),
            papel = COALESCE($5, papel),
            ativo = COALESCE($6, ativo),
            senha_hash = COALESCE($7, senha_hash),
            atualizado_em = now()
        WHERE id = $1
        RETURNING `+usuarioColumns,
		id, arg.Nome, arg.Email, arg.Telefone, arg.Papel, ativo, arg.SenhaHash)

	u, err := scanUsuario(row)
	if err != nil {
		if IsUniqueViolation(err) {
			return Usuario{}, ErrDuplicate
		}
		return Usuario{}, err
	}
	return u, nil
}

// DeleteUsuario remove o usuário definitivamente.
func (q *Queries) DeleteUsuario(ctx context.Context, id uuid.UUID) error {
	tag, err := q.db.Exec(ctx, `DELETE FROM usuarios WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// ToggleUsuarioStatus alterna ativo/inativo e devolve o registro.
func (q *Queries) ToggleUsuarioStatus(ctx context.Context, id uuid.UUID) (Usuario, error) {
	row := q.db.QueryRow(ctx, `
        UPDATE usuarios
        SET ativo = NOT ativo, atualizado_em = now()
        WHERE id = $1
        RETURNING `+usuarioColumns, id)
	return scanUsuario(row)
}

// ConfirmarEmail marca a conta como confirmada.
func (q *Queries) ConfirmarEmail(ctx context.Context, id uuid.UUID) error {
	tag, err := q.db.Exec(ctx, `
        UPDATE usuarios SET email_confirmado = TRUE, atualizado_em = now() WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// UpdateSenhaHash troca a senha do usuário.
func (q *Queries) UpdateSenhaHash(ctx context.Context, id uuid.UUID, senhaHash string) error {
	tag, err := q.db.Exec(ctx, `
        UPDATE usuarios SET senha_hash = $2, atualizado_em = now() WHERE id = $1`, id, senhaHash)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// SetUltimoLogin registra o instante do login.
func (q *Queries) SetUltimoLogin(ctx context.Context, id uuid.UUID, when time.Time) error {
	_, err := q.db.Exec(ctx, `UPDATE usuarios SET ultimo_login = $2 WHERE id = $1`, id, when)
	return err
}

// InsertRefreshToken persiste o hash do refresh token.
func (q *Queries) InsertRefreshToken(ctx context.Context, arg InsertRefreshTokenParams) (TokenRefresh, error) {
	row := q.db.QueryRow(ctx, `
        INSERT INTO tokens_refresh (id, subject, token_hash, expiracao, criado_em)
        VALUES ($1, $2, $3, $4, $5)
        RETURNING id, subject, token_hash, expiracao, criado_em, revogado`,
		arg.ID, arg.Subject, arg.TokenHash, arg.Expiracao, arg.CriadoEm)

	var t TokenRefresh
	err := row.Scan(&t.ID, &t.Subject, &t.TokenHash, &t.Expiracao, &t.CriadoEm, &t.Revogado)
	if err != nil {
		return TokenRefresh{}, err
	}
	return t, nil
}

// GetRefreshTokenByHash busca refresh token pelo hash.
func (q *Queries) GetRefreshTokenByHash(ctx context.Context, tokenHash string) (TokenRefresh, error) {
	row := q.db.QueryRow(ctx, `
        SELECT id, subject, token_hash, expiracao, criado_em, revogado
        FROM tokens_refresh WHERE token_hash = $1`, tokenHash)

	var t TokenRefresh
	err := row.Scan(&t.ID, &t.Subject, &t.TokenHash, &t.Expiracao, &t.CriadoEm, &t.Revogado)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return TokenRefresh{}, ErrNotFound
		}
		return TokenRefresh{}, err
	}
	return t, nil
}

// RevokeRefreshToken revoga o token informado.
func (q *Queries) RevokeRefreshToken(ctx context.Context, tokenHash string) error {
	tag, err := q.db.Exec(ctx,
		`UPDATE tokens_refresh SET revogado = TRUE WHERE token_hash = $1`, tokenHash)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// InvalidateOtherRefreshTokens garante sessão única por usuário.
func (q *Queries) InvalidateOtherRefreshTokens(ctx context.Context, subject uuid.UUID, keepHash string) error {
	_, err := q.db.Exec(ctx, `
        UPDATE tokens_refresh SET revogado = TRUE
        WHERE subject = $1 AND token_hash <> $2 AND NOT revogado`, subject, keepHash)
	return err
}
