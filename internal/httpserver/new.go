package httpserver

import (
	"errors"

	"github.com/gin-gonic/gin"

	"meal-planning-assistant/internal/chat"
	"meal-planning-assistant/internal/plan/repository"
	"meal-planning-assistant/pkg/log"
)

// HTTPServer holds all dependencies for the HTTP server.
type HTTPServer struct {
	gin         *gin.Engine
	l           log.Logger
	port        int
	mode        string
	environment string

	chatUC     chat.UseCase
	planRepo   repository.Repository
	ratePerMin int
}

// Config is the dependency bag passed to New().
type Config struct {
	Logger      log.Logger
	Port        int
	Mode        string
	Environment string

	ChatUseCase    chat.UseCase
	PlanRepository repository.Repository
	RatePerMinute  int
}

// New creates a new HTTPServer instance.
func New(logger log.Logger, cfg Config) (*HTTPServer, error) {
	gin.SetMode(cfg.Mode)

	srv := &HTTPServer{
		l:           logger,
		gin:         gin.New(),
		port:        cfg.Port,
		mode:        cfg.Mode,
		environment: cfg.Environment,
		chatUC:      cfg.ChatUseCase,
		planRepo:    cfg.PlanRepository,
		ratePerMin:  cfg.RatePerMinute,
	}

	if err := srv.validate(); err != nil {
		return nil, err
	}

	return srv, nil
}

func (srv HTTPServer) validate() error {
	if srv.l == nil {
		return errors.New("logger is required")
	}
	if srv.mode == "" {
		return errors.New("mode is required")
	}
	if srv.port == 0 {
		return errors.New("port is required")
	}
	if srv.chatUC == nil {
		return errors.New("chat use case is required")
	}
	if srv.planRepo == nil {
		return errors.New("plan repository is required")
	}
	return nil
}
