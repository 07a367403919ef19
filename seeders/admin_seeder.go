package seeders

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"

	"filasling/internal/entities"
	"filasling/pkg/config"
	"filasling/pkg/utils"
)

var (
	ErrSeedDisabled     = errors.New("seed do admin desativado (SEED_DEV_ADMIN=false)")
	ErrSeedInProduction = errors.New("seed do admin não é permitido em produção")
	ErrSeedNoPassword   = errors.New("SEED_ADMIN_PASSWORD não definido")
)

// SeedDevAdmin создаёт администратора для разработки обычным путём: bcrypt + login + atendente.
func (s *Seeder) SeedDevAdmin(ctx context.Context, cfg *config.Config) error {
	if !cfg.Seed.DevAdmin {
		return ErrSeedDisabled
	}
	if cfg.IsProduction() {
		return ErrSeedInProduction
	}
	if cfg.Seed.AdminPassword == "" {
		return ErrSeedNoPassword
	}

	usuario := strings.ToLower(strings.TrimSpace(cfg.Seed.AdminUsername))
	hash, err := utils.HashPassword(cfg.Seed.AdminPassword)
	if err != nil {
		return err
	}

	return s.txManager.RunInTransaction(ctx, func(tx pgx.Tx) error {
		exists, err := s.accountRepo.UsuarioExists(ctx, tx, usuario, "")
		if err != nil {
			return err
		}
		if exists {
			s.logger.Info("seed: admin já existe, pulando", zap.String("usuario", usuario))
			return nil
		}

		id := uuid.NewString()
		if err := s.accountRepo.Create(ctx, tx, entities.Account{
			ID:      id,
			Usuario: usuario,
			Senha:   hash,
			Ativo:   true,
			Admin:   true,
		}); err != nil {
			return fmt.Errorf("login do admin: %w", err)
		}
		if err := s.atendenteRepo.Create(ctx, tx, entities.Atendente{
			ID:    id,
			Nome:  "Administrador",
			Email: usuario,
			Ativo: true,
		}); err != nil {
			return fmt.Errorf("perfil do admin: %w", err)
		}

		s.logger.Info("seed: admin criado", zap.String("usuario", usuario))
		return nil
	})
}
