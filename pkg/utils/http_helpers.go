package utils

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	apperrors "filasling/pkg/errors"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

type HTTPResponse struct {
	Status  bool        `json:"status"`
	Body    interface{} `json:"body,omitempty"`
	Message string      `json:"message"`
}

func SuccessResponse(ctx echo.Context, body interface{}, message string, code int) error {
	return ctx.JSON(code, &HTTPResponse{Status: true, Body: body, Message: message})
}

type sentinelRule struct {
	err        error
	code       int
	keepPrefix bool
}

// Порядок важен: первое совпадение определяет код ответа.
var sentinelRules = []sentinelRule{
	{err: apperrors.ErrNotFound, code: http.StatusNotFound},
	{err: apperrors.ErrConflict, code: http.StatusConflict, keepPrefix: true},
	{err: apperrors.ErrInUse, code: http.StatusConflict, keepPrefix: true},
	{err: apperrors.ErrBadRequest, code: http.StatusBadRequest, keepPrefix: true},
	{err: apperrors.ErrAccountLocked, code: http.StatusTooManyRequests},
	{err: apperrors.ErrForbidden, code: http.StatusForbidden},
	{err: apperrors.ErrInvalidCredentials, code: http.StatusUnauthorized},
	{err: apperrors.ErrAccountPending, code: http.StatusUnauthorized},
	{err: apperrors.ErrAccountInactive, code: http.StatusUnauthorized},
	{err: apperrors.ErrTokenExpired, code: http.StatusUnauthorized},
	{err: apperrors.ErrInvalidToken, code: http.StatusUnauthorized},
	{err: apperrors.ErrInvalidSigningMethod, code: http.StatusUnauthorized},
	{err: apperrors.ErrEmptyAuthHeader, code: http.StatusUnauthorized},
	{err: apperrors.ErrInvalidAuthHeader, code: http.StatusUnauthorized},
	{err: apperrors.ErrUnauthorized, code: http.StatusUnauthorized},
	{err: apperrors.ErrUserIDNotFoundInContext, code: http.StatusUnauthorized},
}

func sentinelStatus(err error) (int, string, bool) {
	for _, rule := range sentinelRules {
		if !errors.Is(err, rule.err) {
			continue
		}
		if rule.keepPrefix {
			return rule.code, rootMessage(err), true
		}
		return rule.code, rule.err.Error(), true
	}
	return 0, "", false
}

// rootMessage отдаёт сообщение обёртки, без технических деталей ниже по цепочке.
func rootMessage(err error) string {
	msg := err.Error()
	if i := strings.Index(msg, ": "); i > 0 {
		return msg[:i]
	}
	return msg
}

func ErrorResponse(c echo.Context, err error, logger *zap.Logger) error {
	var httpErr *apperrors.HttpError
	if errors.As(err, &httpErr) {
		if httpErr.Err != nil {
			logger.Error("HTTP Error",
				zap.Int("code", httpErr.Code),
				zap.String("message", httpErr.Message),
				zap.Error(httpErr.Err),
				zap.Any("context", httpErr.Context),
			)
		}

		response := map[string]interface{}{
			"status":  false,
			"message": httpErr.Message,
		}
		if httpErr.Details != nil {
			response["body"] = httpErr.Details
		}
		return c.JSON(httpErr.Code, response)
	}

	var validationErrors validator.ValidationErrors
	if errors.As(err, &validationErrors) {
		var msgs []string
		for _, e := range validationErrors {
			msgs = append(msgs, fmt.Sprintf("campo '%s' falhou na regra '%s'", e.Field(), e.Tag()))
		}
		return c.JSON(http.StatusBadRequest, map[string]interface{}{
			"status":  false,
			"message": "Erro de validação: " + strings.Join(msgs, "; "),
		})
	}

	if code, msg, ok := sentinelStatus(err); ok {
		logger.Debug("Domain Error", zap.Int("code", code), zap.Error(err))
		return c.JSON(code, map[string]interface{}{"status": false, "message": msg})
	}

	logger.Error("Unexpected Error", zap.Error(err))
	return c.JSON(http.StatusInternalServerError, map[string]interface{}{
		"status":  false,
		"message": "Erro interno do servidor",
	})
}
