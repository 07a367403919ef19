package controllers

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"filasling/internal/dto"
	"filasling/internal/services"
	apperrors "filasling/pkg/errors"
	"filasling/pkg/utils"
)

type EtapaController struct {
	etapaService services.EtapaServiceInterface
	logger       *zap.Logger
}

func NewEtapaController(etapaService services.EtapaServiceInterface, logger *zap.Logger) *EtapaController {
	return &EtapaController{etapaService: etapaService, logger: logger}
}

func (c *EtapaController) GetEtapas(ctx echo.Context) error {
	list, err := c.etapaService.GetEtapas(ctx.Request().Context())
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	return utils.SuccessResponse(ctx, list, "Etapas carregadas", http.StatusOK)
}

func (c *EtapaController) FindEtapa(ctx echo.Context) error {
	id, err := parseIDParam(ctx, "etapa")
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	res, err := c.etapaService.FindEtapa(ctx.Request().Context(), id)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	return utils.SuccessResponse(ctx, res, "Etapa encontrada", http.StatusOK)
}

func (c *EtapaController) CreateEtapa(ctx echo.Context) error {
	var payload dto.CreateEtapaDTO
	if err := ctx.Bind(&payload); err != nil {
		return utils.ErrorResponse(ctx, apperrors.NewHttpError(http.StatusBadRequest, "Corpo da requisição inválido", err, nil), c.logger)
	}
	if err := ctx.Validate(&payload); err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	res, err := c.etapaService.CreateEtapa(ctx.Request().Context(), payload)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	return utils.SuccessResponse(ctx, res, "Etapa criada", http.StatusCreated)
}

func (c *EtapaController) UpdateEtapa(ctx echo.Context) error {
	id, err := parseIDParam(ctx, "etapa")
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	var payload dto.UpdateEtapaDTO
	fields, err := readPatch(ctx, &payload)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	payload.Fields = fields
	if err := ctx.Validate(&payload); err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	res, err := c.etapaService.UpdateEtapa(ctx.Request().Context(), id, payload)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	return utils.SuccessResponse(ctx, res, "Etapa atualizada", http.StatusOK)
}

func (c *EtapaController) DeleteEtapa(ctx echo.Context) error {
	id, err := parseIDParam(ctx, "etapa")
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	if err := c.etapaService.DeleteEtapa(ctx.Request().Context(), id); err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	return utils.SuccessResponse(ctx, nil, "Etapa excluída", http.StatusOK)
}
