package routes

import (
	"github.com/labstack/echo/v4"

	"filasling/internal/controllers"
	"filasling/pkg/middleware"
)

func runAuthRouter(authGroup *echo.Group, authCtrl *controllers.AuthController, authMW *middleware.AuthMiddleware) {
	authGroup.POST("/register", authCtrl.Register)
	authGroup.POST("/login", authCtrl.Login)
	authGroup.GET("/login", authCtrl.Session, authMW.Auth)
	authGroup.GET("/db-test", authCtrl.DBTest)
}
