package seeders

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"

	"filasling/internal/entities"
)

// SeedEtapas создаёт недостающие этапы; существующие номера не трогает.
func (s *Seeder) SeedEtapas(ctx context.Context) (int, error) {
	s.logger.Info("seed: etapas padrão")

	created := 0
	err := s.txManager.RunInTransaction(ctx, func(tx pgx.Tx) error {
		for _, e := range etapasData {
			exists, err := s.etapaRepo.NumeroExists(ctx, tx, e.Numero, "")
			if err != nil {
				return err
			}
			if exists {
				s.logger.Debug("seed: etapa já existe, pulando", zap.Int("numero", e.Numero))
				continue
			}
			if _, err := s.etapaRepo.Create(ctx, tx, entities.Etapa{
				ID:            uuid.NewString(),
				Nome:          e.Nome,
				Numero:        e.Numero,
				NumeroSistema: e.NumeroSistema,
				Cor:           e.Cor,
			}); err != nil {
				return fmt.Errorf("etapa %d: %w", e.Numero, err)
			}
			created++
		}
		return nil
	})
	if err != nil {
		return 0, err
	}

	s.logger.Info("seed: etapas concluídas", zap.Int("criadas", created))
	return created, nil
}
