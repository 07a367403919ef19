package controllers

import (
	"io"
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	apperrors "filasling/pkg/errors"
	"filasling/pkg/utils"
)

// parseIDParam проверяет, что :id - корректный UUID.
func parseIDParam(ctx echo.Context, what string) (string, error) {
	raw := ctx.Param("id")
	id, err := uuid.Parse(raw)
	if err != nil {
		return "", apperrors.NewHttpError(http.StatusBadRequest, "ID de "+what+" inválido", nil, map[string]interface{}{"id": raw})
	}
	return id.String(), nil
}

// readPatch декодирует тело PUT и возвращает присланные поля.
func readPatch(ctx echo.Context, dst interface{}) (utils.SentFields, error) {
	raw, err := io.ReadAll(ctx.Request().Body)
	if err != nil {
		return nil, apperrors.NewHttpError(http.StatusBadRequest, "Corpo da requisição inválido", err, nil)
	}
	return utils.DecodePatch(raw, dst)
}
