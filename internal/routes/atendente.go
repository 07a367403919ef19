package routes

import (
	"github.com/labstack/echo/v4"

	"filasling/internal/controllers"
)

func runAtendenteRouter(secureGroup *echo.Group, ctrl *controllers.AtendenteController) {
	group := secureGroup.Group("/atendentes")
	group.GET("", ctrl.GetAtendentes)
	group.POST("", ctrl.CreateAtendente)
	group.GET("/:id", ctrl.FindAtendente)
	group.PUT("/:id", ctrl.UpdateAtendente)
	group.PUT("/:id/senha", ctrl.UpdateSenha)
}
