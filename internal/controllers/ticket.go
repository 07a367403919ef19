package controllers

import (
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"filasling/internal/dto"
	"filasling/internal/services"
	apperrors "filasling/pkg/errors"
	"filasling/pkg/utils"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

type TicketController struct {
	ticketService services.TicketServiceInterface
	reportService services.ReportServiceInterface
	logger        *zap.Logger
}

func NewTicketController(
	ticketService services.TicketServiceInterface,
	reportService services.ReportServiceInterface,
	logger *zap.Logger,
) *TicketController {
	return &TicketController{
		ticketService: ticketService,
		reportService: reportService,
		logger:        logger,
	}
}

// parseFilter: ?etapa_numero=2&atendente_id=<uuid>
func (c *TicketController) parseFilter(ctx echo.Context) (dto.TicketListFilterDTO, error) {
	var filter dto.TicketListFilterDTO
	if raw := ctx.QueryParam("etapa_numero"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 1 {
			return filter, apperrors.NewHttpError(http.StatusBadRequest, "etapa_numero inválido", nil, nil)
		}
		filter.EtapaNumero = &n
	}
	if raw := ctx.QueryParam("atendente_id"); raw != "" {
		id, err := uuid.Parse(raw)
		if err != nil {
			return filter, apperrors.NewHttpError(http.StatusBadRequest, "atendente_id inválido", nil, nil)
		}
		s := id.String()
		filter.AtendenteID = &s
	}
	return filter, nil
}

func (c *TicketController) GetTickets(ctx echo.Context) error {
	filter, err := c.parseFilter(ctx)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	list, err := c.ticketService.GetTickets(ctx.Request().Context(), filter)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	return utils.SuccessResponse(ctx, list, "Tickets carregados", http.StatusOK)
}

func (c *TicketController) ExportTickets(ctx echo.Context) error {
	filter, err := c.parseFilter(ctx)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	f, err := c.reportService.ExportTickets(ctx.Request().Context(), filter)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	defer f.Close()

	fileName := fmt.Sprintf("fila_%s.xlsx", time.Now().Format("2006-01-02"))
	ctx.Response().Header().Set(echo.HeaderContentType, xlsxContentType)
	ctx.Response().Header().Set(echo.HeaderContentDisposition, "attachment; filename="+fileName)
	ctx.Response().WriteHeader(http.StatusOK)
	return f.Write(ctx.Response().Writer)
}

func (c *TicketController) FindTicket(ctx echo.Context) error {
	id, err := parseIDParam(ctx, "ticket")
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	res, err := c.ticketService.FindTicket(ctx.Request().Context(), id)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	return utils.SuccessResponse(ctx, res, "Ticket encontrado", http.StatusOK)
}

func (c *TicketController) CreateTicket(ctx echo.Context) error {
	var payload dto.CreateTicketDTO
	if err := ctx.Bind(&payload); err != nil {
		return utils.ErrorResponse(ctx, apperrors.NewHttpError(http.StatusBadRequest, "Corpo da requisição inválido", err, nil), c.logger)
	}
	if err := ctx.Validate(&payload); err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	res, err := c.ticketService.CreateTicket(ctx.Request().Context(), payload)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	return utils.SuccessResponse(ctx, res, "Ticket criado", http.StatusCreated)
}

func (c *TicketController) UpdateTicket(ctx echo.Context) error {
	id, err := parseIDParam(ctx, "ticket")
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	var payload dto.UpdateTicketDTO
	fields, err := readPatch(ctx, &payload)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	payload.Fields = fields
	if err := ctx.Validate(&payload); err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	res, err := c.ticketService.UpdateTicket(ctx.Request().Context(), id, payload)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	return utils.SuccessResponse(ctx, res, "Ticket atualizado", http.StatusOK)
}

func (c *TicketController) DeleteTicket(ctx echo.Context) error {
	id, err := parseIDParam(ctx, "ticket")
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	if err := c.ticketService.DeleteTicket(ctx.Request().Context(), id); err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	return utils.SuccessResponse(ctx, nil, "Ticket excluído", http.StatusOK)
}
