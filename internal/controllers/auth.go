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

type AuthController struct {
	authService services.AuthServiceInterface
	logger      *zap.Logger
}

func NewAuthController(authService services.AuthServiceInterface, logger *zap.Logger) *AuthController {
	return &AuthController{authService: authService, logger: logger}
}

func (ctrl *AuthController) errorResponse(c echo.Context, err error) error {
	return utils.ErrorResponse(c, err, ctrl.logger)
}

// Register - POST /auth/register: учётка создаётся неактивной.
func (ctrl *AuthController) Register(c echo.Context) error {
	var payload dto.RegisterDTO
	if err := c.Bind(&payload); err != nil {
		return ctrl.errorResponse(c, apperrors.NewHttpError(http.StatusBadRequest, "Formato de dados de cadastro inválido", err, nil))
	}
	if err := c.Validate(&payload); err != nil {
		return ctrl.errorResponse(c, err)
	}

	res, err := ctrl.authService.Register(c.Request().Context(), payload)
	if err != nil {
		return ctrl.errorResponse(c, err)
	}
	return utils.SuccessResponse(c, res, "Cadastro realizado. Aguardando aprovação do administrador.", http.StatusCreated)
}

func (ctrl *AuthController) Login(c echo.Context) error {
	var payload dto.LoginDTO
	if err := c.Bind(&payload); err != nil {
		return ctrl.errorResponse(c, apperrors.NewHttpError(http.StatusBadRequest, "Formato de dados de login inválido", err, nil))
	}
	if err := c.Validate(&payload); err != nil {
		return ctrl.errorResponse(c, err)
	}

	res, err := ctrl.authService.Login(c.Request().Context(), payload)
	if err != nil {
		return ctrl.errorResponse(c, err)
	}
	return utils.SuccessResponse(c, res, "Login realizado com sucesso", http.StatusOK)
}

// Session - GET /auth/login: токен валиден и учётка активна.
func (ctrl *AuthController) Session(c echo.Context) error {
	res, err := ctrl.authService.Session(c.Request().Context())
	if err != nil {
		return ctrl.errorResponse(c, err)
	}
	return utils.SuccessResponse(c, res, "Sessão válida", http.StatusOK)
}

func (ctrl *AuthController) DBTest(c echo.Context) error {
	res, err := ctrl.authService.DBCheck(c.Request().Context())
	if err != nil {
		ctrl.logger.Error("DBTest: banco indisponível", zap.Error(err))
		return ctrl.errorResponse(c, apperrors.NewHttpError(http.StatusServiceUnavailable, "Banco de dados indisponível", nil, nil))
	}
	return utils.SuccessResponse(c, res, "Conexão com o banco OK", http.StatusOK)
}
