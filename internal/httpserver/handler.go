package httpserver

import (
	"context"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	chatHTTP "meal-planning-assistant/internal/chat/delivery/http"
	"meal-planning-assistant/internal/middleware"
	"meal-planning-assistant/internal/model"
	planHTTP "meal-planning-assistant/internal/plan/delivery/http"
)

func (srv HTTPServer) mapHandlers() error {
	mw := middleware.New(srv.l, srv.ratePerMin)

	srv.registerMiddlewares(mw)
	srv.registerSystemRoutes()
	srv.registerDomainRoutes(mw)

	return nil
}

func (srv HTTPServer) registerMiddlewares(mw middleware.Middleware) {
	srv.gin.Use(gin.Recovery())
	srv.gin.Use(mw.RequestID())

	ctx := context.Background()
	if srv.environment == string(model.EnvironmentProduction) {
		srv.l.Infof(ctx, "Running in production mode")
	} else {
		srv.l.Infof(ctx, "Running in %s mode", srv.environment)
	}
}

func (srv HTTPServer) registerSystemRoutes() {
	srv.gin.GET("/health", srv.healthCheck)
	srv.gin.GET("/ready", srv.readyCheck)
	srv.gin.GET("/live", srv.liveCheck)

	srv.gin.GET("/swagger/*any", ginSwagger.WrapHandler(
		swaggerFiles.Handler,
		ginSwagger.URL("doc.json"),
		ginSwagger.DefaultModelsExpandDepth(-1),
	))
}

func (srv HTTPServer) registerDomainRoutes(mw middleware.Middleware) {
	ctx := context.Background()
	api := srv.gin.Group("/api/v1")

	chatHandler := chatHTTP.New(srv.l, srv.chatUC)
	chatHTTP.RegisterRoutes(api, chatHandler, mw)
	srv.l.Infof(ctx, "Chat domain registered at POST /api/v1/chat/messages")

	planHandler := planHTTP.New(srv.l, srv.planRepo)
	planHTTP.RegisterRoutes(api, planHandler, mw)
	srv.l.Infof(ctx, "Plan domain registered at GET /api/v1/plans/:id")
}
