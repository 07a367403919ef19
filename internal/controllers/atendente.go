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

type AtendenteController struct {
	atendenteService services.AtendenteServiceInterface
	logger           *zap.Logger
}

func NewAtendenteController(atendenteService services.AtendenteServiceInterface, logger *zap.Logger) *AtendenteController {
	return &AtendenteController{atendenteService: atendenteService, logger: logger}
}

func (c *AtendenteController) GetAtendentes(ctx echo.Context) error {
	list, err := c.atendenteService.GetAtendentes(ctx.Request().Context())
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	return utils.SuccessResponse(ctx, list, "Atendentes carregados", http.StatusOK)
}

func (c *AtendenteController) FindAtendente(ctx echo.Context) error {
	id, err := parseIDParam(ctx, "atendente")
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	res, err := c.atendenteService.FindAtendente(ctx.Request().Context(), id)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	return utils.SuccessResponse(ctx, res, "Atendente encontrado", http.StatusOK)
}

func (c *AtendenteController) CreateAtendente(ctx echo.Context) error {
	var payload dto.CreateAtendenteDTO
	if err := ctx.Bind(&payload); err != nil {
		return utils.ErrorResponse(ctx, apperrors.NewHttpError(http.StatusBadRequest, "Corpo da requisição inválido", err, nil), c.logger)
	}
	if err := ctx.Validate(&payload); err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	res, err := c.atendenteService.CreateAtendente(ctx.Request().Context(), payload)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	return utils.SuccessResponse(ctx, res, "Atendente criado", http.StatusCreated)
}

func (c *AtendenteController) UpdateAtendente(ctx echo.Context) error {
	id, err := parseIDParam(ctx, "atendente")
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	var payload dto.UpdateAtendenteDTO
	fields, err := readPatch(ctx, &payload)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	payload.Fields = fields
	if err := ctx.Validate(&payload); err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	res, err := c.atendenteService.UpdateAtendente(ctx.Request().Context(), id, payload)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	return utils.SuccessResponse(ctx, res, "Atendente atualizado", http.StatusOK)
}

func (c *AtendenteController) UpdateSenha(ctx echo.Context) error {
	id, err := parseIDParam(ctx, "atendente")
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	var payload dto.UpdateSenhaDTO
	if err := ctx.Bind(&payload); err != nil {
		return utils.ErrorResponse(ctx, apperrors.NewHttpError(http.StatusBadRequest, "Corpo da requisição inválido", err, nil), c.logger)
	}
	if err := ctx.Validate(&payload); err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	if err := c.atendenteService.UpdateSenha(ctx.Request().Context(), id, payload); err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	return utils.SuccessResponse(ctx, nil, "Senha atualizada com sucesso", http.StatusOK)
}
