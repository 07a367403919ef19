package controllers

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"filasling/pkg/utils"
)

func Health(c echo.Context) error {
	return utils.SuccessResponse(c, map[string]string{"status": "ok"}, "OK", http.StatusOK)
}
