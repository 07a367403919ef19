package routes

import (
	"github.com/go-redis/redis/v8"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"filasling/internal/controllers"
	"filasling/internal/repositories"
	"filasling/internal/services"
	"filasling/pkg/config"
	"filasling/pkg/eventbus"
	"filasling/pkg/middleware"
	"filasling/pkg/service"
	"filasling/pkg/websocket"
)

type Controllers struct {
	Auth       *controllers.AuthController
	Atendente  *controllers.AtendenteController
	Etapa      *controllers.EtapaController
	Ticket     *controllers.TicketController
	Desempenho *controllers.DesempenhoController
	WebSocket  *controllers.WebSocketController
}

func InitRouter(
	e *echo.Echo,
	dbConn *pgxpool.Pool,
	redisClient *redis.Client,
	jwtSvc service.JWTService,
	bus *eventbus.Bus,
	hub *websocket.Hub,
	logger *zap.Logger,
	cfg *config.Config,
) {
	logger.Info("InitRouter: criando rotas")

	txManager := repositories.NewTxManager(dbConn)

	// --- 1. Репозитории ---
	accountRepo := repositories.NewAccountRepository(dbConn, logger)
	atendenteRepo := repositories.NewAtendenteRepository(dbConn, logger)
	etapaRepo := repositories.NewEtapaRepository(dbConn, logger)
	ticketRepo := repositories.NewTicketRepository(dbConn, logger)
	desempenhoRepo := repositories.NewDesempenhoRepository(dbConn, logger)
	cacheRepo := repositories.NewRedisCacheRepository(redisClient)

	// --- 2. Сервисы ---
	atendenteService := services.NewAtendenteService(txManager, atendenteRepo, accountRepo, logger)
	authService := services.NewAuthService(accountRepo, cacheRepo, jwtSvc, atendenteService, dbConn, logger, &cfg.Auth)
	etapaService := services.NewEtapaService(txManager, etapaRepo, ticketRepo, logger)
	ticketService := services.NewTicketService(txManager, ticketRepo, atendenteRepo, bus, logger)
	desempenhoService := services.NewDesempenhoService(desempenhoRepo, logger)
	reportService := services.NewReportService(ticketService, logger)

	// --- 3. Контроллеры ---
	ctrls := Controllers{
		Auth:       controllers.NewAuthController(authService, logger),
		Atendente:  controllers.NewAtendenteController(atendenteService, logger),
		Etapa:      controllers.NewEtapaController(etapaService, logger),
		Ticket:     controllers.NewTicketController(ticketService, reportService, logger),
		Desempenho: controllers.NewDesempenhoController(desempenhoService, logger),
		WebSocket:  controllers.NewWebSocketController(hub, jwtSvc, cfg.Server.AllowedOrigins, logger),
	}

	RegisterRoutes(e, ctrls, middleware.NewAuthMiddleware(jwtSvc, logger))
	logger.Info("InitRouter: rotas criadas")
}

// RegisterRoutes: /auth/login (POST), /auth/register, /auth/db-test, /health и /ws открыты, остальное за authMW.
func RegisterRoutes(e *echo.Echo, ctrls Controllers, authMW *middleware.AuthMiddleware) {
	e.GET("/health", controllers.Health)
	e.GET("/ws", ctrls.WebSocket.ServeWs)

	runAuthRouter(e.Group("/auth"), ctrls.Auth, authMW)

	secureGroup := e.Group("", authMW.Auth)
	runAtendenteRouter(secureGroup, ctrls.Atendente)
	runEtapaRouter(secureGroup, ctrls.Etapa)
	runTicketRouter(secureGroup, ctrls.Ticket)
	runDesempenhoRouter(secureGroup, ctrls.Desempenho)
}
