package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/aarondl/null/v8"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"

	"filasling/internal/dto"
	"filasling/internal/entities"
	"filasling/internal/repositories"
	apperrors "filasling/pkg/errors"
	"filasling/pkg/utils"
)

type AtendenteServiceInterface interface {
	GetAtendentes(ctx context.Context) ([]dto.AtendenteDTO, error)
	FindAtendente(ctx context.Context, id string) (*dto.AtendenteDTO, error)
	CreateAtendente(ctx context.Context, payload dto.CreateAtendenteDTO) (*dto.AtendenteDTO, error)
	UpdateAtendente(ctx context.Context, id string, payload dto.UpdateAtendenteDTO) (*dto.AtendenteDTO, error)
	UpdateSenha(ctx context.Context, id string, payload dto.UpdateSenhaDTO) error
	RegisterAtendente(ctx context.Context, payload dto.RegisterDTO) (*dto.AtendenteDTO, error)
}

type AtendenteService struct {
	txManager     repositories.TxManagerInterface
	atendenteRepo repositories.AtendenteRepositoryInterface
	accountRepo   repositories.AccountRepositoryInterface
	logger        *zap.Logger
}

func NewAtendenteService(
	txManager repositories.TxManagerInterface,
	atendenteRepo repositories.AtendenteRepositoryInterface,
	accountRepo repositories.AccountRepositoryInterface,
	logger *zap.Logger,
) AtendenteServiceInterface {
	return &AtendenteService{
		txManager:     txManager,
		atendenteRepo: atendenteRepo,
		accountRepo:   accountRepo,
		logger:        logger,
	}
}

type actor struct {
	ID    string
	Admin bool
}

// currentActor - вызывающий пользователь по ID из контекста запроса.
func (s *AtendenteService) currentActor(ctx context.Context) (*actor, error) {
	userID, err := utils.GetUserIDFromCtx(ctx)
	if err != nil {
		return nil, apperrors.ErrUnauthorized
	}
	acc, err := s.accountRepo.FindByID(ctx, nil, userID)
	if err != nil {
		s.logger.Warn("Conta do token não encontrada", zap.String("userID", userID), zap.Error(err))
		return nil, apperrors.ErrUnauthorized
	}
	if !acc.Ativo {
		return nil, apperrors.ErrAccountInactive
	}
	return &actor{ID: acc.ID, Admin: acc.Admin}, nil
}

func (s *AtendenteService) GetAtendentes(ctx context.Context) ([]dto.AtendenteDTO, error) {
	list, err := s.atendenteRepo.FindAll(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]dto.AtendenteDTO, 0, len(list))
	for _, a := range list {
		out = append(out, toAtendenteDTO(a))
	}
	return out, nil
}

func (s *AtendenteService) FindAtendente(ctx context.Context, id string) (*dto.AtendenteDTO, error) {
	a, err := s.atendenteRepo.FindByID(ctx, nil, id)
	if err != nil {
		return nil, err
	}
	res := toAtendenteDTO(*a)
	return &res, nil
}

// CreateAtendente - создание админом; учётка сразу активна.
func (s *AtendenteService) CreateAtendente(ctx context.Context, payload dto.CreateAtendenteDTO) (*dto.AtendenteDTO, error) {
	who, err := s.currentActor(ctx)
	if err != nil {
		return nil, err
	}
	if !who.Admin {
		return nil, apperrors.ErrForbidden
	}

	created, err := s.provision(ctx, newAccount{
		Nome:      payload.Nome,
		Email:     payload.Email,
		Senha:     payload.Senha,
		URLImagem: payload.URLImagem,
		Ativo:     true,
		Admin:     payload.Admin,
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("Atendente criado", zap.String("atendenteID", created.ID), zap.String("criadoPor", who.ID))
	res := toAtendenteDTO(*created)
	return &res, nil
}

// RegisterAtendente - самостоятельная регистрация: учётка неактивна до одобрения админом,
// флаг admin клиент выставить не может.
func (s *AtendenteService) RegisterAtendente(ctx context.Context, payload dto.RegisterDTO) (*dto.AtendenteDTO, error) {
	created, err := s.provision(ctx, newAccount{
		Nome:      payload.Nome,
		Email:     payload.Email,
		Senha:     payload.Senha,
		URLImagem: payload.URLImagem,
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("Cadastro aguardando aprovação", zap.String("atendenteID", created.ID))
	res := toAtendenteDTO(*created)
	return &res, nil
}

type newAccount struct {
	Nome      string
	Email     string
	Senha     string
	URLImagem *string
	Ativo     bool
	Admin     bool
}

// provision создаёт login и atendentes одной транзакцией.
func (s *AtendenteService) provision(ctx context.Context, in newAccount) (*entities.Atendente, error) {
	nome, err := requiredText("nome", in.Nome)
	if err != nil {
		return nil, err
	}
	email, err := requiredText("email", in.Email)
	if err != nil {
		return nil, err
	}
	email = strings.ToLower(email)

	hash, err := utils.HashPassword(in.Senha)
	if err != nil {
		return nil, err
	}

	id := uuid.NewString()
	var created *entities.Atendente
	err = s.txManager.RunInTransaction(ctx, func(tx pgx.Tx) error {
		if err := s.ensureEmailFree(ctx, tx, email, ""); err != nil {
			return err
		}

		if err := s.accountRepo.Create(ctx, tx, entities.Account{
			ID:      id,
			Usuario: email,
			Senha:   hash,
			Ativo:   in.Ativo,
			Admin:   in.Admin,
		}); err != nil {
			return err
		}

		if err := s.atendenteRepo.Create(ctx, tx, entities.Atendente{
			ID:        id,
			Nome:      nome,
			Email:     email,
			URLImagem: in.URLImagem,
			Ativo:     in.Ativo,
		}); err != nil {
			return err
		}

		var err error
		created, err = s.atendenteRepo.FindByID(ctx, tx, id)
		return err
	})
	if err != nil {
		return nil, err
	}
	return created, nil
}

func (s *AtendenteService) ensureEmailFree(ctx context.Context, tx pgx.Tx, email, excludeID string) error {
	taken, err := s.atendenteRepo.EmailExists(ctx, tx, email, excludeID)
	if err != nil {
		return err
	}
	if !taken {
		taken, err = s.accountRepo.UsuarioExists(ctx, tx, email, excludeID)
		if err != nil {
			return err
		}
	}
	if taken {
		return fmt.Errorf("este email já está cadastrado: %w", apperrors.ErrConflict)
	}
	return nil
}

// UpdateAtendente: сам атендент или админ; ativo и admin меняет только админ.
func (s *AtendenteService) UpdateAtendente(ctx context.Context, id string, payload dto.UpdateAtendenteDTO) (*dto.AtendenteDTO, error) {
	who, err := s.currentActor(ctx)
	if err != nil {
		return nil, err
	}
	if !who.Admin && who.ID != id {
		return nil, apperrors.ErrForbidden
	}

	var patch entities.AtendentePatch
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
	if sent.Has("email") {
		if payload.Email == nil {
			return nil, fmt.Errorf("email não pode ser nulo: %w", apperrors.ErrBadRequest)
		}
		email, err := requiredText("email", *payload.Email)
		if err != nil {
			return nil, err
		}
		email = strings.ToLower(email)
		patch.Email = &email
	}
	if sent.Has("url_imagem") {
		v := null.StringFromPtr(payload.URLImagem)
		patch.URLImagem = &v
	}
	if sent.Has("ativo") && payload.Ativo != nil {
		patch.Ativo = payload.Ativo
	}
	if sent.Has("admin") && payload.Admin != nil {
		patch.Admin = payload.Admin
	}
	if (patch.Ativo != nil || patch.Admin != nil) && !who.Admin {
		return nil, apperrors.ErrForbidden
	}

	if patch.IsEmpty() {
		return s.FindAtendente(ctx, id)
	}

	var updated *entities.Atendente
	err = s.txManager.RunInTransaction(ctx, func(tx pgx.Tx) error {
		if patch.Email != nil {
			if err := s.ensureEmailFree(ctx, tx, *patch.Email, id); err != nil {
				return err
			}
		}

		if err := s.atendenteRepo.Update(ctx, tx, id, patch); err != nil {
			return err
		}
		if patch.Email != nil || patch.Ativo != nil || patch.Admin != nil {
			if err := s.accountRepo.UpdateFlags(ctx, tx, id, patch.Email, patch.Ativo, patch.Admin); err != nil {
				return err
			}
		}

		var err error
		updated, err = s.atendenteRepo.FindByID(ctx, tx, id)
		return err
	})
	if err != nil {
		return nil, err
	}

	res := toAtendenteDTO(*updated)
	return &res, nil
}

func (s *AtendenteService) UpdateSenha(ctx context.Context, id string, payload dto.UpdateSenhaDTO) error {
	who, err := s.currentActor(ctx)
	if err != nil {
		return err
	}
	if !who.Admin && who.ID != id {
		return apperrors.ErrForbidden
	}

	hash, err := utils.HashPassword(payload.Senha)
	if err != nil {
		return err
	}
	if err := s.accountRepo.UpdateSenha(ctx, nil, id, hash); err != nil {
		return err
	}

	s.logger.Info("Senha alterada", zap.String("atendenteID", id), zap.String("alteradoPor", who.ID))
	return nil
}
