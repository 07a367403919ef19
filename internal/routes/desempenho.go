package routes

import (
	"github.com/labstack/echo/v4"

	"filasling/internal/controllers"
)

func runDesempenhoRouter(secureGroup *echo.Group, ctrl *controllers.DesempenhoController) {
	group := secureGroup.Group("/desempenho")
	group.GET("", ctrl.GetRanking)
	group.GET("/atrasos", ctrl.GetAtrasos)
}
