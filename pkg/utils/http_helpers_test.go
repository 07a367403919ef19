package utils

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	apperrors "filasling/pkg/errors"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestErrorResponse_Mapping(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		wantCode int
		wantMsg  string
	}{
		{"not found", fmt.Errorf("ticket: %w", apperrors.ErrNotFound), http.StatusNotFound, apperrors.ErrNotFound.Error()},
		{"conflict keeps prefix", fmt.Errorf("já existe uma etapa com este número: %w", apperrors.ErrConflict), http.StatusConflict, "já existe uma etapa com este número"},
		{"inactive", apperrors.ErrAccountInactive, http.StatusUnauthorized, apperrors.ErrAccountInactive.Error()},
		{"pending approval", apperrors.ErrAccountPending, http.StatusUnauthorized, apperrors.ErrAccountPending.Error()},
		{"locked", apperrors.ErrAccountLocked, http.StatusTooManyRequests, apperrors.ErrAccountLocked.Error()},
		{"http error", apperrors.NewHttpError(http.StatusBadRequest, "ID inválido", nil, nil), http.StatusBadRequest, "ID inválido"},
		{"internal hides detail", fmt.Errorf("dial tcp 10.0.0.1:5432: refused"), http.StatusInternalServerError, "Erro interno do servidor"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := echo.New()
			rec := httptest.NewRecorder()
			c := e.NewContext(httptest.NewRequest(http.MethodGet, "/", nil), rec)

			require.NoError(t, ErrorResponse(c, tt.err, zap.NewNop()))
			assert.Equal(t, tt.wantCode, rec.Code)

			var body map[string]interface{}
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
			assert.Equal(t, false, body["status"])
			assert.Equal(t, tt.wantMsg, body["message"])
		})
	}
}
