package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/aarondl/null/v8"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"

	"filasling/internal/dto"
	"filasling/internal/entities"
	"filasling/internal/events"
	"filasling/internal/repositories"
	apperrors "filasling/pkg/errors"
	"filasling/pkg/eventbus"
)

// EventPublisher - то, что сервисам нужно от шины событий.
type EventPublisher interface {
	Publish(event eventbus.Event)
}

type TicketServiceInterface interface {
	GetTickets(ctx context.Context, filter dto.TicketListFilterDTO) ([]dto.TicketDTO, error)
	FindTicket(ctx context.Context, id string) (*dto.TicketDTO, error)
	CreateTicket(ctx context.Context, payload dto.CreateTicketDTO) (*dto.TicketDTO, error)
	UpdateTicket(ctx context.Context, id string, payload dto.UpdateTicketDTO) (*dto.TicketDTO, error)
	DeleteTicket(ctx context.Context, id string) error
}

type TicketService struct {
	txManager     repositories.TxManagerInterface
	ticketRepo    repositories.TicketRepositoryInterface
	atendenteRepo repositories.AtendenteRepositoryInterface
	publisher     EventPublisher
	logger        *zap.Logger
}

func NewTicketService(
	txManager repositories.TxManagerInterface,
	ticketRepo repositories.TicketRepositoryInterface,
	atendenteRepo repositories.AtendenteRepositoryInterface,
	publisher EventPublisher,
	logger *zap.Logger,
) TicketServiceInterface {
	return &TicketService{
		txManager:     txManager,
		ticketRepo:    ticketRepo,
		atendenteRepo: atendenteRepo,
		publisher:     publisher,
		logger:        logger,
	}
}

func (s *TicketService) GetTickets(ctx context.Context, filter dto.TicketListFilterDTO) ([]dto.TicketDTO, error) {
	list, err := s.ticketRepo.FindAll(ctx, entities.TicketFilter{
		EtapaNumero: filter.EtapaNumero,
		AtendenteID: filter.AtendenteID,
	})
	if err != nil {
		return nil, err
	}

	out := make([]dto.TicketDTO, 0, len(list))
	for _, t := range list {
		out = append(out, toTicketDTO(t))
	}
	return out, nil
}

func (s *TicketService) FindTicket(ctx context.Context, id string) (*dto.TicketDTO, error) {
	t, err := s.ticketRepo.FindByID(ctx, nil, id)
	if err != nil {
		return nil, err
	}
	res := toTicketDTO(*t)
	return &res, nil
}

func (s *TicketService) CreateTicket(ctx context.Context, payload dto.CreateTicketDTO) (*dto.TicketDTO, error) {
	nome, err := requiredText("nome", payload.Nome)
	if err != nil {
		return nil, err
	}
	motivo, err := requiredText("motivo", payload.Motivo)
	if err != nil {
		return nil, err
	}

	ticket := entities.Ticket{
		ID:          uuid.NewString(),
		Nome:        nome,
		Motivo:      motivo,
		Telefone:    payload.Telefone,
		Setor:       payload.Setor,
		UserNS:      payload.UserNS,
		EtapaNumero: entities.EtapaAguardando,
	}
	if payload.EtapaNumero != nil {
		ticket.EtapaNumero = *payload.EtapaNumero
	}
	if payload.NumeroSistema.Valid {
		n := payload.NumeroSistema.Int
		ticket.NumeroSistema = &n
	}

	var created *entities.Ticket
	err = s.txManager.RunInTransaction(ctx, func(tx pgx.Tx) error {
		if payload.AtendenteID != nil && *payload.AtendenteID != "" {
			a, err := s.resolveAtendente(ctx, tx, *payload.AtendenteID)
			if err != nil {
				return err
			}
			ticket.AtendenteID = &a.ID
			ticket.NomeAtendente = &a.Nome
			ticket.EmailAtendente = &a.Email
			ticket.URLImagemAtendente = a.URLImagem
		}

		if err := s.ticketRepo.Create(ctx, tx, ticket); err != nil {
			return err
		}

		var err error
		created, err = s.ticketRepo.FindByID(ctx, tx, ticket.ID)
		return err
	})
	if err != nil {
		return nil, err
	}

	res := toTicketDTO(*created)
	s.logger.Info("Ticket criado", zap.String("ticketID", res.ID), zap.Int("etapa", res.EtapaNumero))
	s.publish(events.TicketCreated, res.ID, &res)
	return &res, nil
}

// UpdateTicket применяет только присланные поля.
// Без полей обновляется лишь data_atualizado.
func (s *TicketService) UpdateTicket(ctx context.Context, id string, payload dto.UpdateTicketDTO) (*dto.TicketDTO, error) {
	logger := s.logger.With(zap.String("ticketID", id))

	var updated *entities.Ticket
	err := s.txManager.RunInTransaction(ctx, func(tx pgx.Tx) error {
		current, err := s.ticketRepo.LockByID(ctx, tx, id)
		if err != nil {
			return err
		}

		patch, err := s.buildPatch(ctx, tx, current, payload)
		if err != nil {
			return err
		}
		if patch.StampSaidaEtapa1 {
			logger.Info("Ticket saiu da etapa 1", zap.Int("novaEtapa", *patch.EtapaNumero))
		}

		if err := s.ticketRepo.Update(ctx, tx, id, patch); err != nil {
			return err
		}

		updated, err = s.ticketRepo.FindByID(ctx, tx, id)
		return err
	})
	if err != nil {
		return nil, err
	}

	res := toTicketDTO(*updated)
	s.publish(events.TicketUpdated, res.ID, &res)
	return &res, nil
}

func (s *TicketService) buildPatch(ctx context.Context, tx pgx.Tx, current *entities.Ticket, payload dto.UpdateTicketDTO) (entities.TicketPatch, error) {
	var patch entities.TicketPatch
	sent := payload.Fields

	if sent.Has("nome") {
		if payload.Nome == nil {
			return patch, fmt.Errorf("nome não pode ser nulo: %w", apperrors.ErrBadRequest)
		}
		nome, err := requiredText("nome", *payload.Nome)
		if err != nil {
			return patch, err
		}
		patch.Nome = &nome
	}
	if sent.Has("motivo") {
		if payload.Motivo == nil {
			return patch, fmt.Errorf("motivo não pode ser nulo: %w", apperrors.ErrBadRequest)
		}
		motivo, err := requiredText("motivo", *payload.Motivo)
		if err != nil {
			return patch, err
		}
		patch.Motivo = &motivo
	}
	if sent.Has("telefone") {
		v := null.StringFromPtr(payload.Telefone)
		patch.Telefone = &v
	}
	if sent.Has("setor") {
		v := null.StringFromPtr(payload.Setor)
		patch.Setor = &v
	}
	if sent.Has("user_ns") {
		v := null.StringFromPtr(payload.UserNS)
		patch.UserNS = &v
	}
	if sent.Has("numero_sistema") {
		v := payload.NumeroSistema
		patch.NumeroSistema = &v
	}

	if sent.Has("atendente_id") {
		if payload.AtendenteID == nil || *payload.AtendenteID == "" {
			cleared := null.String{}
			patch.AtendenteID = &cleared
			patch.NomeAtendente = &cleared
			patch.EmailAtendente = &cleared
			patch.URLImagemAtendente = &cleared
		} else {
			a, err := s.resolveAtendente(ctx, tx, *payload.AtendenteID)
			if err != nil {
				return patch, err
			}
			id, nome, email, img := null.StringFrom(a.ID), null.StringFrom(a.Nome), null.StringFrom(a.Email), null.StringFromPtr(a.URLImagem)
			patch.AtendenteID = &id
			patch.NomeAtendente = &nome
			patch.EmailAtendente = &email
			patch.URLImagemAtendente = &img
		}
	}

	if sent.Has("etapa_numero") {
		if payload.EtapaNumero == nil {
			return patch, fmt.Errorf("etapa_numero não pode ser nulo: %w", apperrors.ErrBadRequest)
		}
		next := *payload.EtapaNumero
		patch.EtapaNumero = &next
		if current.EtapaNumero == entities.EtapaAguardando && next != entities.EtapaAguardando && current.DataSaidaEtapa1 == nil {
			patch.StampSaidaEtapa1 = true
		}
	}

	return patch, nil
}

func (s *TicketService) resolveAtendente(ctx context.Context, tx pgx.Tx, id string) (*entities.Atendente, error) {
	a, err := s.atendenteRepo.FindByID(ctx, tx, id)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, fmt.Errorf("atendente não encontrado: %w", apperrors.ErrNotFound)
		}
		return nil, err
	}
	return a, nil
}

func (s *TicketService) DeleteTicket(ctx context.Context, id string) error {
	if err := s.ticketRepo.Delete(ctx, nil, id); err != nil {
		return err
	}
	s.logger.Info("Ticket excluído", zap.String("ticketID", id))
	s.publish(events.TicketDeleted, id, nil)
	return nil
}

func (s *TicketService) publish(kind, id string, ticket *dto.TicketDTO) {
	if s.publisher == nil {
		return
	}
	s.publisher.Publish(events.TicketChangedEvent{Kind: kind, TicketID: id, Ticket: ticket})
}
