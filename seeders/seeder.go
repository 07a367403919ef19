package seeders

import (
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"

	"filasling/internal/repositories"
)

// Seeder наполняет базу через те же репозитории, что и API.
type Seeder struct {
	txManager     repositories.TxManagerInterface
	accountRepo   repositories.AccountRepositoryInterface
	atendenteRepo repositories.AtendenteRepositoryInterface
	etapaRepo     repositories.EtapaRepositoryInterface
	logger        *zap.Logger
}

func New(db *pgxpool.Pool, logger *zap.Logger) *Seeder {
	return &Seeder{
		txManager:     repositories.NewTxManager(db),
		accountRepo:   repositories.NewAccountRepository(db, logger),
		atendenteRepo: repositories.NewAtendenteRepository(db, logger),
		etapaRepo:     repositories.NewEtapaRepository(db, logger),
		logger:        logger,
	}
}
