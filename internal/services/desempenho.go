package services

import (
	"context"
	"math"

	"go.uber.org/zap"

	"filasling/internal/dto"
	"filasling/internal/repositories"
	"filasling/pkg/utils"
)

// DefaultAtrasoMinutos - порог ожидания в стадии 1 по умолчанию.
const DefaultAtrasoMinutos = 15

type DesempenhoServiceInterface interface {
	Ranking(ctx context.Context) ([]dto.DesempenhoDTO, error)
	Atrasos(ctx context.Context, minutos int) ([]dto.AtrasoDTO, error)
}

type DesempenhoService struct {
	repo   repositories.DesempenhoRepositoryInterface
	logger *zap.Logger
}

func NewDesempenhoService(repo repositories.DesempenhoRepositoryInterface, logger *zap.Logger) DesempenhoServiceInterface {
	return &DesempenhoService{repo: repo, logger: logger}
}

func (s *DesempenhoService) Ranking(ctx context.Context) ([]dto.DesempenhoDTO, error) {
	list, err := s.repo.Ranking(ctx)
	if err != nil {
		return nil, err
	}

	out := make([]dto.DesempenhoDTO, 0, len(list))
	for _, d := range list {
		out = append(out, dto.DesempenhoDTO{
			ID:                  d.AtendenteID,
			Nome:                d.Nome,
			Email:               d.Email,
			URLImagem:           d.URLImagem,
			TicketsAtendidos:    d.TicketsAtendidos,
			TempoMedioSegundos:  int64(math.Round(d.TempoMedioSegundos)),
			TempoMedioFormatado: utils.FormatSecondsShort(d.TempoMedioSegundos),
		})
	}
	return out, nil
}

func (s *DesempenhoService) Atrasos(ctx context.Context, minutos int) ([]dto.AtrasoDTO, error) {
	if minutos <= 0 {
		minutos = DefaultAtrasoMinutos
	}

	list, err := s.repo.Atrasos(ctx, minutos)
	if err != nil {
		return nil, err
	}

	out := make([]dto.AtrasoDTO, 0, len(list))
	for _, a := range list {
		out = append(out, dto.AtrasoDTO{
			ID:              a.AtendenteID,
			Nome:            a.Nome,
			Email:           a.Email,
			URLImagem:       a.URLImagem,
			TicketsEmAtraso: a.TicketsEmAtraso,
		})
	}
	s.logger.Debug("Atrasos calculados", zap.Int("minutos", minutos), zap.Int("grupos", len(out)))
	return out, nil
}
