package repositories

import (
	"context"
	"errors"
	"fmt"

	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"

	"filasling/internal/entities"
	apperrors "filasling/pkg/errors"
)

const (
	atendenteTable  = "atendentes"
	atendenteFields = "a.id::text, a.nome, a.email, a.url_imagem, a.ativo, COALESCE(l.admin, FALSE), a.data_criado, a.data_atualizado"
	atendenteFrom   = "atendentes a LEFT JOIN login l ON l.id = a.id"
)

type AtendenteRepositoryInterface interface {
	FindAll(ctx context.Context) ([]entities.Atendente, error)
	FindByID(ctx context.Context, tx pgx.Tx, id string) (*entities.Atendente, error)
	EmailExists(ctx context.Context, tx pgx.Tx, email string, excludeID string) (bool, error)
	Create(ctx context.Context, tx pgx.Tx, a entities.Atendente) error
	Update(ctx context.Context, tx pgx.Tx, id string, patch entities.AtendentePatch) error
}

type atendenteRepository struct {
	storage *pgxpool.Pool
	logger  *zap.Logger
}

func NewAtendenteRepository(storage *pgxpool.Pool, logger *zap.Logger) AtendenteRepositoryInterface {
	return &atendenteRepository{storage: storage, logger: logger}
}

func (r *atendenteRepository) getQuerier(tx pgx.Tx) Querier {
	if tx != nil {
		return tx
	}
	return r.storage
}

func (r *atendenteRepository) scanRow(row pgx.Row) (*entities.Atendente, error) {
	var a entities.Atendente
	err := row.Scan(&a.ID, &a.Nome, &a.Email, &a.URLImagem, &a.Ativo, &a.Admin, &a.CreatedAt, &a.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("erro ao ler atendente: %w", err)
	}
	return &a, nil
}

func (r *atendenteRepository) FindAll(ctx context.Context) ([]entities.Atendente, error) {
	query, args, err := psql.Select(atendenteFields).From(atendenteFrom).OrderBy("a.nome ASC").ToSql()
	if err != nil {
		return nil, fmt.Errorf("erro ao montar SQL FindAll atendentes: %w", err)
	}

	rows, err := r.storage.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("erro ao listar atendentes: %w", err)
	}
	defer rows.Close()

	list := make([]entities.Atendente, 0)
	for rows.Next() {
		a, err := r.scanRow(rows)
		if err != nil {
			r.logger.Error("Erro ao ler atendente", zap.Error(err))
			return nil, err
		}
		list = append(list, *a)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("erro ao iterar atendentes: %w", err)
	}
	return list, nil
}

func (r *atendenteRepository) FindByID(ctx context.Context, tx pgx.Tx, id string) (*entities.Atendente, error) {
	query, args, err := psql.Select(atendenteFields).From(atendenteFrom).Where(sq.Eq{"a.id": id}).ToSql()
	if err != nil {
		return nil, fmt.Errorf("erro ao montar SQL FindByID atendente: %w", err)
	}
	return r.scanRow(r.getQuerier(tx).QueryRow(ctx, query, args...))
}

func (r *atendenteRepository) EmailExists(ctx context.Context, tx pgx.Tx, email string, excludeID string) (bool, error) {
	builder := psql.Select("1").From(atendenteTable).Where("LOWER(email) = LOWER(?)", email)
	if excludeID != "" {
		builder = builder.Where(sq.NotEq{"id": excludeID})
	}
	sub, args, err := builder.ToSql()
	if err != nil {
		return false, fmt.Errorf("erro ao montar SQL EmailExists: %w", err)
	}

	var exists bool
	if err := r.getQuerier(tx).QueryRow(ctx, "SELECT EXISTS ("+sub+")", args...).Scan(&exists); err != nil {
		return false, fmt.Errorf("erro ao verificar email: %w", err)
	}
	return exists, nil
}

func (r *atendenteRepository) Create(ctx context.Context, tx pgx.Tx, a entities.Atendente) error {
	query, args, err := psql.Insert(atendenteTable).
		Columns("id", "nome", "email", "url_imagem", "ativo", "data_criado", "data_atualizado").
		Values(a.ID, a.Nome, a.Email, a.URLImagem, a.Ativo, sq.Expr("NOW()"), sq.Expr("NOW()")).
		ToSql()
	if err != nil {
		return fmt.Errorf("erro ao montar SQL Create atendente: %w", err)
	}

	if _, err := r.getQuerier(tx).Exec(ctx, query, args...); err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("este email já está cadastrado: %w", apperrors.ErrConflict)
		}
		return fmt.Errorf("erro ao criar atendente: %w", err)
	}
	return nil
}

// Update меняет только переданные поля профиля; Admin живёт в login и здесь игнорируется.
func (r *atendenteRepository) Update(ctx context.Context, tx pgx.Tx, id string, patch entities.AtendentePatch) error {
	builder := psql.Update(atendenteTable).Set("data_atualizado", sq.Expr("NOW()")).Where(sq.Eq{"id": id})
	if patch.Nome != nil {
		builder = builder.Set("nome", *patch.Nome)
	}
	if patch.Email != nil {
		builder = builder.Set("email", *patch.Email)
	}
	if patch.URLImagem != nil {
		builder = builder.Set("url_imagem", *patch.URLImagem)
	}
	if patch.Ativo != nil {
		builder = builder.Set("ativo", *patch.Ativo)
	}

	query, args, err := builder.ToSql()
	if err != nil {
		return fmt.Errorf("erro ao montar SQL Update atendente: %w", err)
	}

	result, err := r.getQuerier(tx).Exec(ctx, query, args...)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("este email já está cadastrado: %w", apperrors.ErrConflict)
		}
		return fmt.Errorf("erro ao atualizar atendente: %w", err)
	}
	if result.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}
