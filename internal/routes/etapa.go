package routes

import (
	"github.com/labstack/echo/v4"

	"filasling/internal/controllers"
)

func runEtapaRouter(secureGroup *echo.Group, ctrl *controllers.EtapaController) {
	group := secureGroup.Group("/etapas")
	group.GET("", ctrl.GetEtapas)
	group.POST("", ctrl.CreateEtapa)
	group.GET("/:id", ctrl.FindEtapa)
	group.PUT("/:id", ctrl.UpdateEtapa)
	group.DELETE("/:id", ctrl.DeleteEtapa)
}
