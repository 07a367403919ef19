package services

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"

	"filasling/internal/dto"
	"filasling/internal/entities"
	"filasling/internal/repositories"
	apperrors "filasling/pkg/errors"
)

type EtapaServiceInterface interface {
	GetEtapas(ctx context.Context) ([]dto.EtapaDTO, error)
	FindEtapa(ctx context.Context, id string) (*dto.EtapaDTO, error)
	CreateEtapa(ctx context.Context, payload dto.CreateEtapaDTO) (*dto.EtapaDTO, error)
	UpdateEtapa(ctx context.Context, id string, payload dto.UpdateEtapaDTO) (*dto.EtapaDTO, error)
	DeleteEtapa(ctx context.Context, id string) error
}

type EtapaService struct {
	txManager  repositories.TxManagerInterface
	etapaRepo  repositories.EtapaRepositoryInterface
	ticketRepo repositories.TicketRepositoryInterface
	logger     *zap.Logger
}

func NewEtapaService(
	txManager repositories.TxManagerInterface,
	etapaRepo repositories.EtapaRepositoryInterface,
	ticketRepo repositories.TicketRepositoryInterface,
	logger *zap.Logger,
) EtapaServiceInterface {
	return &EtapaService{
		txManager:  txManager,
		etapaRepo:  etapaRepo,
		ticketRepo: ticketRepo,
		logger:     logger,
	}
}

func (s *EtapaService) GetEtapas(ctx context.Context) ([]dto.EtapaDTO, error) {
	list, err := s.etapaRepo.FindAll(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]dto.EtapaDTO, 0, len(list))
	for _, e := range list {
		out = append(out, toEtapaDTO(e))
	}
	return out, nil
}

func (s *EtapaService) FindEtapa(ctx context.Context, id string) (*dto.EtapaDTO, error) {
	e, err := s.etapaRepo.FindByID(ctx, nil, id)
	if err != nil {
		return nil, err
	}
	res := toEtapaDTO(*e)
	return &res, nil
}

func (s *EtapaService) CreateEtapa(ctx context.Context, payload dto.CreateEtapaDTO) (*dto.EtapaDTO, error) {
	nome, err := requiredText("nome", payload.Nome)
	if err != nil {
		return nil, err
	}
	cor, err := requiredText("cor", payload.Cor)
	if err != nil {
		return nil, err
	}

	etapa := entities.Etapa{
		ID:     uuid.NewString(),
		Nome:   nome,
		Numero: payload.Numero,
		Cor:    cor,
	}
	if payload.NumeroSistema.Valid {
		n := payload.NumeroSistema.Int
		etapa.NumeroSistema = &n
	}

	var created *entities.Etapa
	err = s.txManager.RunInTransaction(ctx, func(tx pgx.Tx) error {
		exists, err := s.etapaRepo.NumeroExists(ctx, tx, etapa.Numero, "")
		if err != nil {
			return err
		}
		if exists {
			return fmt.Errorf("já existe uma etapa com o número %d: %w", etapa.Numero, apperrors.ErrConflict)
		}
		created, err = s.etapaRepo.Create(ctx, tx, etapa)
		return err
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("Etapa criada", zap.String("etapaID", created.ID), zap.Int("numero", created.Numero))
	res := toEtapaDTO(*created)
	return &res, nil
}

// UpdateEtapa: data_atualizado обновляется всегда, даже без полей.
func (s *EtapaService) UpdateEtapa(ctx context.Context, id string, payload dto.UpdateEtapaDTO) (*dto.EtapaDTO, error) {
	var patch entities.EtapaPatch
	sent := payload.Fields

	if sent.Has("nome") {
		if payload.Nome == nil {
			return nil, fmt.Errorf("nome não pode ser nulo: %w", apperrors.ErrBadRequest)
		}
		nome, err := requiredText("nome", *payload.Nome)
		if err != nil {
			return nil, err
		}
		patch.Nome = &nome
	}
	if sent.Has("numero") {
		if payload.Numero == nil {
			return nil, fmt.Errorf("numero não pode ser nulo: %w", apperrors.ErrBadRequest)
		}
		patch.Numero = payload.Numero
	}
	if sent.Has("numero_sistema") {
		v := payload.NumeroSistema
		patch.NumeroSistema = &v
	}
	if sent.Has("cor") {
		if payload.Cor == nil {
			return nil, fmt.Errorf("cor não pode ser nula: %w", apperrors.ErrBadRequest)
		}
		cor, err := requiredText("cor", *payload.Cor)
		if err != nil {
			return nil, err
		}
		patch.Cor = &cor
	}

	var updated *entities.Etapa
	err := s.txManager.RunInTransaction(ctx, func(tx pgx.Tx) error {
		current, err := s.etapaRepo.LockByID(ctx, tx, id)
		if err != nil {
			return err
		}

		if patch.Numero != nil && *patch.Numero != current.Numero {
			exists, err := s.etapaRepo.NumeroExists(ctx, tx, *patch.Numero, id)
			if err != nil {
				return err
			}
			if exists {
				return fmt.Errorf("já existe uma etapa com o número %d: %w", *patch.Numero, apperrors.ErrConflict)
			}
			// тикеты ссылаются на numero, перенумерация оставила бы их без стадии
			inUse, err := s.ticketRepo.CountByEtapaNumero(ctx, tx, current.Numero)
			if err != nil {
				return err
			}
			if inUse > 0 {
				return fmt.Errorf("existem %d tickets na etapa %d: %w", inUse, current.Numero, apperrors.ErrInUse)
			}
		}

		updated, err = s.etapaRepo.Update(ctx, tx, id, patch)
		return err
	})
	if err != nil {
		return nil, err
	}

	res := toEtapaDTO(*updated)
	return &res, nil
}

func (s *EtapaService) DeleteEtapa(ctx context.Context, id string) error {
	err := s.txManager.RunInTransaction(ctx, func(tx pgx.Tx) error {
		etapa, err := s.etapaRepo.LockByID(ctx, tx, id)
		if err != nil {
			return err
		}

		inUse, err := s.ticketRepo.CountByEtapaNumero(ctx, tx, etapa.Numero)
		if err != nil {
			return err
		}
		if inUse > 0 {
			return fmt.Errorf("existem %d tickets na etapa %d: %w", inUse, etapa.Numero, apperrors.ErrInUse)
		}

		return s.etapaRepo.Delete(ctx, tx, id)
	})
	if err != nil {
		return err
	}

	s.logger.Info("Etapa excluída", zap.String("etapaID", id))
	return nil
}
