package routes

import (
	"github.com/labstack/echo/v4"

	"filasling/internal/controllers"
)

func runTicketRouter(secureGroup *echo.Group, ctrl *controllers.TicketController) {
	group := secureGroup.Group("/tickets")
	group.GET("", ctrl.GetTickets)
	group.POST("", ctrl.CreateTicket)
	group.GET("/export", ctrl.ExportTickets)
	group.GET("/:id", ctrl.FindTicket)
	group.PUT("/:id", ctrl.UpdateTicket)
	group.DELETE("/:id", ctrl.DeleteTicket)
}
