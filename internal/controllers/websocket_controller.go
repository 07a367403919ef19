package controllers

import (
	"net/http"
	"strings"

	"github.com/gorilla/websocket"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"filasling/pkg/service"
	appwebsocket "filasling/pkg/websocket"
)

type WebSocketController struct {
	hub            *appwebsocket.Hub
	jwtService     service.JWTService
	upgrader       websocket.Upgrader
	allowedOrigins []string
	logger         *zap.Logger
}

func NewWebSocketController(hub *appwebsocket.Hub, jwtService service.JWTService, allowedOrigins []string, logger *zap.Logger) *WebSocketController {
	c := &WebSocketController{
		hub:            hub,
		jwtService:     jwtService,
		allowedOrigins: allowedOrigins,
		logger:         logger,
	}
	c.upgrader = websocket.Upgrader{
		ReadBufferSize:  1024,
		WriteBufferSize: 1024,
		CheckOrigin:     c.checkOrigin,
	}
	return c
}

// checkOrigin: без Origin (не браузер) пускаем; иначе только ALLOWED_ORIGINS.
func (c *WebSocketController) checkOrigin(r *http.Request) bool {
	origin := r.Header.Get("Origin")
	if origin == "" {
		return true
	}
	for _, allowed := range c.allowedOrigins {
		if allowed == "*" || strings.EqualFold(allowed, origin) {
			return true
		}
	}
	return false
}

// ServeWs - GET /ws?token=<jwt>; браузер не умеет слать заголовок Authorization при upgrade.
func (c *WebSocketController) ServeWs(ctx echo.Context) error {
	tokenString := ctx.QueryParam("token")
	if tokenString == "" {
		return ctx.String(http.StatusUnauthorized, "Token ausente")
	}

	claims, err := c.jwtService.ValidateToken(tokenString)
	if err != nil {
		return ctx.String(http.StatusUnauthorized, "Token inválido")
	}

	conn, err := c.upgrader.Upgrade(ctx.Response(), ctx.Request(), nil)
	if err != nil {
		c.logger.Error("WebSocket: falha no upgrade", zap.Error(err))
		return nil
	}

	client := appwebsocket.NewClient(c.hub, conn, claims.UserID)
	c.hub.Register(client)

	go client.WritePump()
	go client.ReadPump()

	c.logger.Info("WebSocket: cliente conectado", zap.String("userID", claims.UserID))
	return nil
}
