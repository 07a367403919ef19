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
	accountTable  = "login"
	accountFields = "id::text, usuario, senha, ativo, admin, data_criado, data_atualizado"
)

type AccountRepositoryInterface interface {
	FindByID(ctx context.Context, tx pgx.Tx, id string) (*entities.Account, error)
	FindByUsuario(ctx context.Context, usuario string) (*entities.Account, error)
	UsuarioExists(ctx context.Context, tx pgx.Tx, usuario string, excludeID string) (bool, error)
	Create(ctx context.Context, tx pgx.Tx, acc entities.Account) error
	UpdateSenha(ctx context.Context, tx pgx.Tx, id string, hash string) error
	UpdateFlags(ctx context.Context, tx pgx.Tx, id string, usuario *string, ativo *bool, admin *bool) error
	Count(ctx context.Context) (int64, error)
}

type accountRepository struct {
	storage *pgxpool.Pool
	logger  *zap.Logger
}

func NewAccountRepository(storage *pgxpool.Pool, logger *zap.Logger) AccountRepositoryInterface {
	return &accountRepository{storage: storage, logger: logger}
}

func (r *accountRepository) getQuerier(tx pgx.Tx) Querier {
	if tx != nil {
		return tx
	}
	return r.storage
}

func (r *accountRepository) scanRow(row pgx.Row) (*entities.Account, error) {
	var a entities.Account
	err := row.Scan(&a.ID, &a.Usuario, &a.Senha, &a.Ativo, &a.Admin, &a.CreatedAt, &a.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("erro ao ler login: %w", err)
	}
	return &a, nil
}

func (r *accountRepository) FindByID(ctx context.Context, tx pgx.Tx, id string) (*entities.Account, error) {
	query, args, err := psql.Select(accountFields).From(accountTable).Where(sq.Eq{"id": id}).ToSql()
	if err != nil {
		return nil, fmt.Errorf("erro ao montar SQL FindByID: %w", err)
	}
	return r.scanRow(r.getQuerier(tx).QueryRow(ctx, query, args...))
}

// FindByUsuario сравнивает логин без учёта регистра.
func (r *accountRepository) FindByUsuario(ctx context.Context, usuario string) (*entities.Account, error) {
	query, args, err := psql.Select(accountFields).
		From(accountTable).
		Where("LOWER(usuario) = LOWER(?)", usuario).
		Limit(1).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("erro ao montar SQL FindByUsuario: %w", err)
	}
	return r.scanRow(r.storage.QueryRow(ctx, query, args...))
}

func (r *accountRepository) UsuarioExists(ctx context.Context, tx pgx.Tx, usuario string, excludeID string) (bool, error) {
	builder := psql.Select("1").From(accountTable).Where("LOWER(usuario) = LOWER(?)", usuario)
	if excludeID != "" {
		builder = builder.Where(sq.NotEq{"id": excludeID})
	}
	sub, args, err := builder.ToSql()
	if err != nil {
		return false, fmt.Errorf("erro ao montar SQL UsuarioExists: %w", err)
	}

	var exists bool
	if err := r.getQuerier(tx).QueryRow(ctx, "SELECT EXISTS ("+sub+")", args...).Scan(&exists); err != nil {
		return false, fmt.Errorf("erro ao verificar usuario: %w", err)
	}
	return exists, nil
}

func (r *accountRepository) Create(ctx context.Context, tx pgx.Tx, acc entities.Account) error {
	query, args, err := psql.Insert(accountTable).
		Columns("id", "usuario", "senha", "ativo", "admin", "data_criado", "data_atualizado").
		Values(acc.ID, acc.Usuario, acc.Senha, acc.Ativo, acc.Admin, sq.Expr("NOW()"), sq.Expr("NOW()")).
		ToSql()
	if err != nil {
		return fmt.Errorf("erro ao montar SQL Create login: %w", err)
	}

	if _, err := r.getQuerier(tx).Exec(ctx, query, args...); err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("este usuário já está cadastrado: %w", apperrors.ErrConflict)
		}
		return fmt.Errorf("erro ao criar login: %w", err)
	}
	return nil
}

func (r *accountRepository) UpdateSenha(ctx context.Context, tx pgx.Tx, id string, hash string) error {
	query, args, err := psql.Update(accountTable).
		Set("senha", hash).
		Set("data_atualizado", sq.Expr("NOW()")).
		Where(sq.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("erro ao montar SQL UpdateSenha: %w", err)
	}

	result, err := r.getQuerier(tx).Exec(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("erro ao atualizar senha: %w", err)
	}
	if result.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

func (r *accountRepository) UpdateFlags(ctx context.Context, tx pgx.Tx, id string, usuario *string, ativo *bool, admin *bool) error {
	if usuario == nil && ativo == nil && admin == nil {
		return nil
	}

	builder := psql.Update(accountTable).Set("data_atualizado", sq.Expr("NOW()")).Where(sq.Eq{"id": id})
	if usuario != nil {
		builder = builder.Set("usuario", *usuario)
	}
	if ativo != nil {
		builder = builder.Set("ativo", *ativo)
	}
	if admin != nil {
		builder = builder.Set("admin", *admin)
	}

	query, args, err := builder.ToSql()
	if err != nil {
		return fmt.Errorf("erro ao montar SQL UpdateFlags: %w", err)
	}

	result, err := r.getQuerier(tx).Exec(ctx, query, args...)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("este usuário já está cadastrado: %w", apperrors.ErrConflict)
		}
		return fmt.Errorf("erro ao atualizar login: %w", err)
	}
	if result.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

func (r *accountRepository) Count(ctx context.Context) (int64, error) {
	query, args, err := psql.Select("COUNT(*)").From(accountTable).ToSql()
	if err != nil {
		return 0, fmt.Errorf("erro ao montar SQL Count: %w", err)
	}
	var total int64
	if err := r.storage.QueryRow(ctx, query, args...).Scan(&total); err != nil {
		return 0, fmt.Errorf("erro ao contar logins: %w", err)
	}
	return total, nil
}
