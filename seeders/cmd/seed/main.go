package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"

	"go.uber.org/zap"

	"filasling/pkg/config"
	"filasling/pkg/database/postgresql"
	applogger "filasling/pkg/logger"
	"filasling/seeders"
)

func main() {
	runMigrate := flag.Bool("migrate", false, "Aplicar migrações pendentes")
	runStages := flag.Bool("stages", false, "Criar as etapas padrão (Aguardando, Em atendimento, Finalizado)")
	runAdmin := flag.Bool("admin", false, "Criar o admin de desenvolvimento (SEED_DEV_ADMIN=true, fora de produção)")
	runAll := flag.Bool("all", false, "Equivalente a -migrate -stages -admin")
	flag.Parse()

	if !*runMigrate && !*runStages && !*runAdmin && !*runAll {
		fmt.Fprintln(os.Stderr, "Nenhum seed selecionado. Flags disponíveis:")
		flag.PrintDefaults()
		fmt.Fprintln(os.Stderr, "\nExemplo: go run ./seeders/cmd/seed -migrate -stages")
		os.Exit(2)
	}

	cfg := config.New()
	logger := applogger.NewLogger(cfg.Log.Level, cfg.Log.File)
	defer logger.Sync()

	ctx := context.Background()
	dbPool, err := postgresql.ConnectDB(ctx, cfg.Postgres.DSN(), logger)
	if err != nil {
		logger.Fatal("não foi possível conectar ao PostgreSQL", zap.Error(err))
	}
	defer dbPool.Close()

	if *runAll || *runMigrate {
		if err := postgresql.Migrate(ctx, dbPool, logger); err != nil {
			logger.Fatal("falha ao aplicar migrações", zap.Error(err))
		}
	}

	s := seeders.New(dbPool, logger)

	if *runAll || *runStages {
		if _, err := s.SeedEtapas(ctx); err != nil {
			logger.Fatal("falha no seed de etapas", zap.Error(err))
		}
	}

	if *runAll || *runAdmin {
		err := s.SeedDevAdmin(ctx, cfg)
		switch {
		case err == nil:
		case errors.Is(err, seeders.ErrSeedDisabled) && *runAll:
			logger.Info("seed do admin ignorado", zap.Error(err))
		default:
			logger.Fatal("falha no seed do admin", zap.Error(err))
		}
	}

	logger.Info("seed concluído")
}
