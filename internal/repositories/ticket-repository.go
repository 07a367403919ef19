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
	ticketTable      = "tickets"
	ticketBaseFields = `t.id::text, t.nome, t.motivo, t.telefone, t.setor, t.user_ns, t.atendente_id::text,
		t.nome_atendente, t.email_atendente, t.url_imagem_atendente, t.etapa_numero, t.numero_sistema,
		t.data_criado, t.data_atualizado, t.data_saida_etapa1`
	ticketLiveFields = "e.nome, e.cor, a.nome, a.email, a.url_imagem"
	ticketJoinedFrom = "tickets t LEFT JOIN etapas e ON e.numero = t.etapa_numero LEFT JOIN atendentes a ON a.id = t.atendente_id"
)

type TicketRepositoryInterface interface {
	FindAll(ctx context.Context, filter entities.TicketFilter) ([]entities.Ticket, error)
	FindByID(ctx context.Context, tx pgx.Tx, id string) (*entities.Ticket, error)
	LockByID(ctx context.Context, tx pgx.Tx, id string) (*entities.Ticket, error)
	Create(ctx context.Context, tx pgx.Tx, t entities.Ticket) error
	Update(ctx context.Context, tx pgx.Tx, id string, patch entities.TicketPatch) error
	Delete(ctx context.Context, tx pgx.Tx, id string) error
	CountByEtapaNumero(ctx context.Context, tx pgx.Tx, numero int) (int64, error)
}

type ticketRepository struct {
	storage *pgxpool.Pool
	logger  *zap.Logger
}

func NewTicketRepository(storage *pgxpool.Pool, logger *zap.Logger) TicketRepositoryInterface {
	return &ticketRepository{storage: storage, logger: logger}
}

func (r *ticketRepository) getQuerier(tx pgx.Tx) Querier {
	if tx != nil {
		return tx
	}
	return r.storage
}

func baseTargets(t *entities.Ticket) []any {
	return []any{
		&t.ID, &t.Nome, &t.Motivo, &t.Telefone, &t.Setor, &t.UserNS, &t.AtendenteID,
		&t.NomeAtendente, &t.EmailAtendente, &t.URLImagemAtendente, &t.EtapaNumero, &t.NumeroSistema,
		&t.CreatedAt, &t.UpdatedAt, &t.DataSaidaEtapa1,
	}
}

func (r *ticketRepository) scanJoined(row pgx.Row) (*entities.Ticket, error) {
	var t entities.Ticket
	targets := append(baseTargets(&t),
		&t.EtapaNome, &t.EtapaCor, &t.AtendenteNomeAtual, &t.AtendenteEmailAtual, &t.AtendenteImagemAtual)
	if err := row.Scan(targets...); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("erro ao ler ticket: %w", err)
	}
	return &t, nil
}

// FindAll - живая очередь: стадия по возрастанию, внутри стадии новые сверху.
func (r *ticketRepository) FindAll(ctx context.Context, filter entities.TicketFilter) ([]entities.Ticket, error) {
	builder := psql.Select(ticketBaseFields, ticketLiveFields).
		From(ticketJoinedFrom).
		OrderBy("t.etapa_numero ASC", "t.data_criado DESC")
	if filter.EtapaNumero != nil {
		builder = builder.Where(sq.Eq{"t.etapa_numero": *filter.EtapaNumero})
	}
	if filter.AtendenteID != nil {
		builder = builder.Where(sq.Eq{"t.atendente_id": *filter.AtendenteID})
	}

	query, args, err := builder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("erro ao montar SQL FindAll tickets: %w", err)
	}

	rows, err := r.storage.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("erro ao listar tickets: %w", err)
	}
	defer rows.Close()

	list := make([]entities.Ticket, 0)
	for rows.Next() {
		t, err := r.scanJoined(rows)
		if err != nil {
			r.logger.Error("Erro ao ler ticket", zap.Error(err))
			return nil, err
		}
		list = append(list, *t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("erro ao iterar tickets: %w", err)
	}
	return list, nil
}

func (r *ticketRepository) FindByID(ctx context.Context, tx pgx.Tx, id string) (*entities.Ticket, error) {
	query, args, err := psql.Select(ticketBaseFields, ticketLiveFields).
		From(ticketJoinedFrom).
		Where(sq.Eq{"t.id": id}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("erro ao montar SQL FindByID ticket: %w", err)
	}
	return r.scanJoined(r.getQuerier(tx).QueryRow(ctx, query, args...))
}

// LockByID блокирует строку тикета до конца транзакции (без JOIN).
func (r *ticketRepository) LockByID(ctx context.Context, tx pgx.Tx, id string) (*entities.Ticket, error) {
	query, args, err := psql.Select(ticketBaseFields).
		From(ticketTable + " t").
		Where(sq.Eq{"t.id": id}).
		Suffix("FOR UPDATE").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("erro ao montar SQL LockByID ticket: %w", err)
	}

	var t entities.Ticket
	if err := tx.QueryRow(ctx, query, args...).Scan(baseTargets(&t)...); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("erro ao bloquear ticket: %w", err)
	}
	return &t, nil
}

func (r *ticketRepository) Create(ctx context.Context, tx pgx.Tx, t entities.Ticket) error {
	query, args, err := psql.Insert(ticketTable).
		Columns("id", "nome", "motivo", "telefone", "setor", "user_ns", "atendente_id",
			"nome_atendente", "email_atendente", "url_imagem_atendente", "etapa_numero", "numero_sistema",
			"data_criado", "data_atualizado").
		Values(t.ID, t.Nome, t.Motivo, t.Telefone, t.Setor, t.UserNS, t.AtendenteID,
			t.NomeAtendente, t.EmailAtendente, t.URLImagemAtendente, t.EtapaNumero, t.NumeroSistema,
			sq.Expr("NOW()"), sq.Expr("NOW()")).
		ToSql()
	if err != nil {
		return fmt.Errorf("erro ao montar SQL Create ticket: %w", err)
	}

	if _, err := r.getQuerier(tx).Exec(ctx, query, args...); err != nil {
		return fmt.Errorf("erro ao criar ticket: %w", err)
	}
	return nil
}

// Update собирает SET только из заданных полей patch.
// data_saida_etapa1 ставится через COALESCE и поэтому никогда не перезаписывается.
func (r *ticketRepository) Update(ctx context.Context, tx pgx.Tx, id string, patch entities.TicketPatch) error {
	builder := psql.Update(ticketTable).Set("data_atualizado", sq.Expr("NOW()")).Where(sq.Eq{"id": id})

	if patch.Nome != nil {
		builder = builder.Set("nome", *patch.Nome)
	}
	if patch.Motivo != nil {
		builder = builder.Set("motivo", *patch.Motivo)
	}
	if patch.Telefone != nil {
		builder = builder.Set("telefone", *patch.Telefone)
	}
	if patch.Setor != nil {
		builder = builder.Set("setor", *patch.Setor)
	}
	if patch.UserNS != nil {
		builder = builder.Set("user_ns", *patch.UserNS)
	}
	if patch.AtendenteID != nil {
		builder = builder.Set("atendente_id", *patch.AtendenteID)
	}
	if patch.NomeAtendente != nil {
		builder = builder.Set("nome_atendente", *patch.NomeAtendente)
	}
	if patch.EmailAtendente != nil {
		builder = builder.Set("email_atendente", *patch.EmailAtendente)
	}
	if patch.URLImagemAtendente != nil {
		builder = builder.Set("url_imagem_atendente", *patch.URLImagemAtendente)
	}
	if patch.EtapaNumero != nil {
		builder = builder.Set("etapa_numero", *patch.EtapaNumero)
	}
	if patch.NumeroSistema != nil {
		builder = builder.Set("numero_sistema", *patch.NumeroSistema)
	}
	if patch.StampSaidaEtapa1 {
		builder = builder.Set("data_saida_etapa1", sq.Expr("COALESCE(data_saida_etapa1, NOW())"))
	}

	query, args, err := builder.ToSql()
	if err != nil {
		return fmt.Errorf("erro ao montar SQL Update ticket: %w", err)
	}

	result, err := r.getQuerier(tx).Exec(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("erro ao atualizar ticket: %w", err)
	}
	if result.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

func (r *ticketRepository) Delete(ctx context.Context, tx pgx.Tx, id string) error {
	query, args, err := psql.Delete(ticketTable).Where(sq.Eq{"id": id}).ToSql()
	if err != nil {
		return fmt.Errorf("erro ao montar SQL Delete ticket: %w", err)
	}

	result, err := r.getQuerier(tx).Exec(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("erro ao excluir ticket: %w", err)
	}
	if result.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

func (r *ticketRepository) CountByEtapaNumero(ctx context.Context, tx pgx.Tx, numero int) (int64, error) {
	query, args, err := psql.Select("COUNT(*)").From(ticketTable).Where(sq.Eq{"etapa_numero": numero}).ToSql()
	if err != nil {
		return 0, fmt.Errorf("erro ao montar SQL CountByEtapaNumero: %w", err)
	}

	var total int64
	if err := r.getQuerier(tx).QueryRow(ctx, query, args...).Scan(&total); err != nil {
		return 0, fmt.Errorf("erro ao contar tickets da etapa: %w", err)
	}
	return total, nil
}
