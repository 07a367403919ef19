package controllers

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"filasling/internal/services"
	apperrors "filasling/pkg/errors"
	"filasling/pkg/utils"
)

type DesempenhoController struct {
	desempenhoService services.DesempenhoServiceInterface
	logger            *zap.Logger
}

func NewDesempenhoController(desempenhoService services.DesempenhoServiceInterface, logger *zap.Logger) *DesempenhoController {
	return &DesempenhoController{desempenhoService: desempenhoService, logger: logger}
}

func (c *DesempenhoController) GetRanking(ctx echo.Context) error {
	list, err := c.desempenhoService.Ranking(ctx.Request().Context())
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	return utils.SuccessResponse(ctx, list, "Desempenho calculado", http.StatusOK)
}

func (c *DesempenhoController) GetAtrasos(ctx echo.Context) error {
	minutos := services.DefaultAtrasoMinutos
	if raw := ctx.QueryParam("minutos"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 1 {
			return utils.ErrorResponse(ctx, apperrors.NewHttpError(http.StatusBadRequest, "minutos inválido", nil, nil), c.logger)
		}
		minutos = n
	}

	list, err := c.desempenhoService.Atrasos(ctx.Request().Context(), minutos)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	return utils.SuccessResponse(ctx, list, "Atrasos calculados", http.StatusOK)
}
