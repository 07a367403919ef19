package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"filasling/internal/entities"
)

type fakeDesempenhoRepo struct {
	ranking      []entities.AtendenteDesempenho
	atrasos      []entities.AtendenteAtraso
	askedMinutos int
}

func (r *fakeDesempenhoRepo) Ranking(context.Context) ([]entities.AtendenteDesempenho, error) {
	return r.ranking, nil
}

func (r *fakeDesempenhoRepo) Atrasos(_ context.Context, minutos int) ([]entities.AtendenteAtraso, error) {
	r.askedMinutos = minutos
	return r.atrasos, nil
}

func TestDesempenhoService_RankingFormatsAverage(t *testing.T) {
	repo := &fakeDesempenhoRepo{ranking: []entities.AtendenteDesempenho{
		{AtendenteID: "a-1", Nome: "Ana", TicketsAtendidos: 4, TempoMedioSegundos: 3723.4},
		{AtendenteID: "a-2", Nome: "Bia", TicketsAtendidos: 1, TempoMedioSegundos: 42},
	}}
	svc := NewDesempenhoService(repo, zap.NewNop())

	list, err := svc.Ranking(context.Background())
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, int64(3723), list[0].TempoMedioSegundos)
	assert.Equal(t, "1h 2m 3s", list[0].TempoMedioFormatado)
	assert.Equal(t, "42s", list[1].TempoMedioFormatado)
}

func TestDesempenhoService_AtrasosDefaultThreshold(t *testing.T) {
	repo := &fakeDesempenhoRepo{atrasos: []entities.AtendenteAtraso{
		{AtendenteID: "sem-atendente", Nome: "Sem Atendente", TicketsEmAtraso: 3},
	}}
	svc := NewDesempenhoService(repo, zap.NewNop())

	list, err := svc.Atrasos(context.Background(), 0)
	require.NoError(t, err)
	assert.Equal(t, DefaultAtrasoMinutos, repo.askedMinutos)
	require.Len(t, list, 1)
	assert.Equal(t, "sem-atendente", list[0].ID)
	assert.Equal(t, 3, list[0].TicketsEmAtraso)

	_, err = svc.Atrasos(context.Background(), 45)
	require.NoError(t, err)
	assert.Equal(t, 45, repo.askedMinutos)
}
