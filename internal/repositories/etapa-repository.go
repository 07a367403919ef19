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
	etapaTable  = "etapas"
	etapaFields = "id::text, nome, numero, numero_sistema, cor, data_criado, data_atualizado"
)

type EtapaRepositoryInterface interface {
	FindAll(ctx context.Context) ([]entities.Etapa, error)
	FindByID(ctx context.Context, tx pgx.Tx, id string) (*entities.Etapa, error)
	LockByID(ctx context.Context, tx pgx.Tx, id string) (*entities.Etapa, error)
	NumeroExists(ctx context.Context, tx pgx.Tx, numero int, excludeID string) (bool, error)
	Create(ctx context.Context, tx pgx.Tx, e entities.Etapa) (*entities.Etapa, error)
	Update(ctx context.Context, tx pgx.Tx, id string, patch entities.EtapaPatch) (*entities.Etapa, error)
	Delete(ctx context.Context, tx pgx.Tx, id string) error
}

type etapaRepository struct {
	storage *pgxpool.Pool
	logger  *zap.Logger
}

func NewEtapaRepository(storage *pgxpool.Pool, logger *zap.Logger) EtapaRepositoryInterface {
	return &etapaRepository{storage: storage, logger: logger}
}

func (r *etapaRepository) getQuerier(tx pgx.Tx) Querier {
	if tx != nil {
		return tx
	}
	return r.storage
}

func (r *etapaRepository) scanRow(row pgx.Row) (*entities.Etapa, error) {
	var e entities.Etapa
	err := row.Scan(&e.ID, &e.Nome, &e.Numero, &e.NumeroSistema, &e.Cor, &e.CreatedAt, &e.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("erro ao ler etapa: %w", err)
	}
	return &e, nil
}

func (r *etapaRepository) FindAll(ctx context.Context) ([]entities.Etapa, error) {
	query, args, err := psql.Select(etapaFields).From(etapaTable).OrderBy("numero ASC").ToSql()
	if err != nil {
		return nil, fmt.Errorf("erro ao montar SQL FindAll etapas: %w", err)
	}

	rows, err := r.storage.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("erro ao listar etapas: %w", err)
	}
	defer rows.Close()

	list := make([]entities.Etapa, 0)
	for rows.Next() {
		e, err := r.scanRow(rows)
		if err != nil {
			return nil, err
		}
		list = append(list, *e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("erro ao iterar etapas: %w", err)
	}
	return list, nil
}

func (r *etapaRepository) findOne(ctx context.Context, q Querier, id string, suffix string) (*entities.Etapa, error) {
	builder := psql.Select(etapaFields).From(etapaTable).Where(sq.Eq{"id": id})
	if suffix != "" {
		builder = builder.Suffix(suffix)
	}
	query, args, err := builder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("erro ao montar SQL etapa: %w", err)
	}
	return r.scanRow(q.QueryRow(ctx, query, args...))
}

func (r *etapaRepository) FindByID(ctx context.Context, tx pgx.Tx, id string) (*entities.Etapa, error) {
	return r.findOne(ctx, r.getQuerier(tx), id, "")
}

// LockByID - SELECT ... FOR UPDATE, только внутри транзакции.
func (r *etapaRepository) LockByID(ctx context.Context, tx pgx.Tx, id string) (*entities.Etapa, error) {
	return r.findOne(ctx, tx, id, "FOR UPDATE")
}

func (r *etapaRepository) NumeroExists(ctx context.Context, tx pgx.Tx, numero int, excludeID string) (bool, error) {
	builder := psql.Select("1").From(etapaTable).Where(sq.Eq{"numero": numero})
	if excludeID != "" {
		builder = builder.Where(sq.NotEq{"id": excludeID})
	}
	sub, args, err := builder.ToSql()
	if err != nil {
		return false, fmt.Errorf("erro ao montar SQL NumeroExists: %w", err)
	}

	var exists bool
	if err := r.getQuerier(tx).QueryRow(ctx, "SELECT EXISTS ("+sub+")", args...).Scan(&exists); err != nil {
		return false, fmt.Errorf("erro ao verificar número da etapa: %w", err)
	}
	return exists, nil
}

func (r *etapaRepository) Create(ctx context.Context, tx pgx.Tx, e entities.Etapa) (*entities.Etapa, error) {
	query, args, err := psql.Insert(etapaTable).
		Columns("id", "nome", "numero", "numero_sistema", "cor", "data_criado", "data_atualizado").
		Values(e.ID, e.Nome, e.Numero, e.NumeroSistema, e.Cor, sq.Expr("NOW()"), sq.Expr("NOW()")).
		Suffix("RETURNING " + etapaFields).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("erro ao montar SQL Create etapa: %w", err)
	}

	created, err := r.scanRow(r.getQuerier(tx).QueryRow(ctx, query, args...))
	if err != nil {
		if isUniqueViolation(err) {
			return nil, fmt.Errorf("já existe uma etapa com este número: %w", apperrors.ErrConflict)
		}
		return nil, err
	}
	return created, nil
}

// Update всегда обновляет data_atualizado, даже при пустом patch.
func (r *etapaRepository) Update(ctx context.Context, tx pgx.Tx, id string, patch entities.EtapaPatch) (*entities.Etapa, error) {
	builder := psql.Update(etapaTable).
		Set("data_atualizado", sq.Expr("NOW()")).
		Where(sq.Eq{"id": id}).
		Suffix("RETURNING " + etapaFields)
	if patch.Nome != nil {
		builder = builder.Set("nome", *patch.Nome)
	}
	if patch.Numero != nil {
		builder = builder.Set("numero", *patch.Numero)
	}
	if patch.NumeroSistema != nil {
		builder = builder.Set("numero_sistema", *patch.NumeroSistema)
	}
	if patch.Cor != nil {
		builder = builder.Set("cor", *patch.Cor)
	}

	query, args, err := builder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("erro ao montar SQL Update etapa: %w", err)
	}

	updated, err := r.scanRow(r.getQuerier(tx).QueryRow(ctx, query, args...))
	if err != nil {
		if isUniqueViolation(err) {
			return nil, fmt.Errorf("já existe uma etapa com este número: %w", apperrors.ErrConflict)
		}
		return nil, err
	}
	return updated, nil
}

func (r *etapaRepository) Delete(ctx context.Context, tx pgx.Tx, id string) error {
	query, args, err := psql.Delete(etapaTable).Where(sq.Eq{"id": id}).ToSql()
	if err != nil {
		return fmt.Errorf("erro ao montar SQL Delete etapa: %w", err)
	}

	result, err := r.getQuerier(tx).Exec(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("erro ao excluir etapa: %w", err)
	}
	if result.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}
