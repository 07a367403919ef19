package repositories

import (
	"context"
	"fmt"

	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"

	"filasling/internal/entities"
)

const semAtendenteID = "sem-atendente"

type DesempenhoRepositoryInterface interface {
	Ranking(ctx context.Context) ([]entities.AtendenteDesempenho, error)
	Atrasos(ctx context.Context, minutos int) ([]entities.AtendenteAtraso, error)
}

type desempenhoRepository struct {
	storage *pgxpool.Pool
	logger  *zap.Logger
}

func NewDesempenhoRepository(storage *pgxpool.Pool, logger *zap.Logger) DesempenhoRepositoryInterface {
	return &desempenhoRepository{storage: storage, logger: logger}
}

// Ranking: среднее время от создания до выхода из стадии 1, быстрые первыми.
func (r *desempenhoRepository) Ranking(ctx context.Context) ([]entities.AtendenteDesempenho, error) {
	query, args, err := psql.Select(
		"t.atendente_id::text",
		"COALESCE(a.nome, MAX(t.nome_atendente), '')",
		"COALESCE(a.email, MAX(t.email_atendente))",
		"COALESCE(a.url_imagem, MAX(t.url_imagem_atendente))",
		"COUNT(*)",
		"AVG(EXTRACT(EPOCH FROM (t.data_saida_etapa1 - t.data_criado)))::float8 AS tempo_medio",
	).
		From("tickets t").
		LeftJoin("atendentes a ON a.id = t.atendente_id").
		Where(sq.And{
			sq.NotEq{"t.atendente_id": nil},
			sq.NotEq{"t.data_saida_etapa1": nil},
		}).
		GroupBy("t.atendente_id", "a.nome", "a.email", "a.url_imagem").
		OrderBy("tempo_medio ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("erro ao montar SQL Ranking: %w", err)
	}

	rows, err := r.storage.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("erro ao calcular desempenho: %w", err)
	}
	defer rows.Close()

	list := make([]entities.AtendenteDesempenho, 0)
	for rows.Next() {
		var d entities.AtendenteDesempenho
		if err := rows.Scan(&d.AtendenteID, &d.Nome, &d.Email, &d.URLImagem, &d.TicketsAtendidos, &d.TempoMedioSegundos); err != nil {
			return nil, fmt.Errorf("erro ao ler desempenho: %w", err)
		}
		list = append(list, d)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("erro ao iterar desempenho: %w", err)
	}
	return list, nil
}

// Atrasos: тикеты в стадии 1 старше minutos; без атендента - в группе "sem-atendente".
func (r *desempenhoRepository) Atrasos(ctx context.Context, minutos int) ([]entities.AtendenteAtraso, error) {
	query, args, err := psql.Select(
		"COALESCE(t.atendente_id::text, '"+semAtendenteID+"')",
		"COALESCE(a.nome, MAX(t.nome_atendente), 'Sem Atendente')",
		"COALESCE(a.email, MAX(t.email_atendente))",
		"COALESCE(a.url_imagem, MAX(t.url_imagem_atendente))",
		"COUNT(*) AS em_atraso",
	).
		From("tickets t").
		LeftJoin("atendentes a ON a.id = t.atendente_id").
		Where(sq.Eq{"t.etapa_numero": entities.EtapaAguardando}).
		Where("t.data_criado <= NOW() - make_interval(mins => ?)", minutos).
		GroupBy("t.atendente_id", "a.nome", "a.email", "a.url_imagem").
		OrderBy("em_atraso DESC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("erro ao montar SQL Atrasos: %w", err)
	}

	rows, err := r.storage.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("erro ao calcular atrasos: %w", err)
	}
	defer rows.Close()

	list := make([]entities.AtendenteAtraso, 0)
	for rows.Next() {
		var a entities.AtendenteAtraso
		if err := rows.Scan(&a.AtendenteID, &a.Nome, &a.Email, &a.URLImagem, &a.TicketsEmAtraso); err != nil {
			return nil, fmt.Errorf("erro ao ler atrasos: %w", err)
		}
		list = append(list, a)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("erro ao iterar atrasos: %w", err)
	}
	return list, nil
}
