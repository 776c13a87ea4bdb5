package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/rotaforte/frota/internal/auth"
	"github.com/rotaforte/frota/internal/config"
	"github.com/rotaforte/frota/internal/db"
	"github.com/rotaforte/frota/internal/rbac"
	"github.com/rotaforte/frota/internal/repo"
)

// seedadmin cria a conta administradora inicial, já confirmada.
func main() {
	nome := flag.String("nome", "Administrador", "nome do administrador")
	email := flag.String("email", "", "email do administrador (obrigatório)")
	senha := flag.String("senha", "", "senha inicial (obrigatória)")
	telefone := flag.String("telefone", "", "telefone de contato")
	flag.Parse()

	if *email == "" || *senha == "" {
		fmt.Fprintln(os.Stderr, "usage: seedadmin -email <email> -senha <senha> [-nome <nome>] [-telefone <telefone>]")
		os.Exit(1)
	}

	if err := run(*nome, *email, *senha, *telefone); err != nil {
		fmt.Fprintf(os.Stderr, "seedadmin: %v\n", err)
		os.Exit(1)
	}
}

func run(nome, email, senha, telefone string) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("config: %w", err)
	}

	ctx := context.Background()
	pool, err := db.NewPool(ctx, cfg.DBDSN)
	if err != nil {
		return fmt.Errorf("db: %w", err)
	}
	defer pool.Close()

	hash, err := auth.Hash(senha)
	if err != nil {
		return err
	}

	return db.WithTx(ctx, pool, func(ctx context.Context, tx pgx.Tx) error {
		queries := repo.New(tx)

		user, err := queries.InsertUsuario(ctx, repo.InsertUsuarioParams{
			ID:         uuid.New(),
			Nome:       nome,
			Email:      email,
			Telefone:   telefone,
			Papel:      string(rbac.RoleAdmin),
			SenhaHash:  hash,
			Confirmado: true,
		})
		if err != nil {
			if errors.Is(err, repo.ErrDuplicate) {
				return fmt.Errorf("email %s já cadastrado", email)
			}
			return err
		}

		fmt.Printf("administrador criado: %s (%s)\n", user.Email, user.ID)
		return nil
	})
}
