package main

import (
	"context"
	"fmt"
	"log"
	"log/slog"
	"net/http"
	"time"

	"github.com/redis/go-redis/v9"

	"ismaalAdmin/internal/config"
	"ismaalAdmin/internal/handlers"
	"ismaalAdmin/internal/marketplace"
	"ismaalAdmin/internal/models"
	"ismaalAdmin/internal/services"
	"ismaalAdmin/internal/session"
	"ismaalAdmin/utils"
)

type application struct {
	errorLog *log.Logger
	infoLog  *log.Logger

	auth        *services.AuthService
	submissions *services.SubmissionService

	authHandler         *handlers.AuthHandler
	submissionHandler   *handlers.SubmissionHandler
	productHandler      *handlers.ProductHandler
	professionalHandler *handlers.ProfessionalHandler
	businessHandler     *handlers.BusinessHandler
	planHandler         *handlers.PlanHandler
	userHandler         *handlers.UserHandler

	wsManager      *WebSocketManager
	allowedOrigins []string
}

func initializeApp(ctx context.Context, cfg config.Config, errorLog, infoLog *log.Logger, logger *slog.Logger) (*application, func(), error) {
	client, err := marketplace.NewClient(marketplace.Config{
		BaseURL: cfg.Marketplace.BaseURL,
		Client:  &http.Client{Timeout: cfg.Marketplace.Timeout},
		Logger:  logger,
	})
	if err != nil {
		return nil, nil, err
	}

	store, audit, closeStores, err := openSessionStores(ctx, cfg, logger)
	if err != nil {
		return nil, nil, err
	}
	infoLog.Printf("session driver: %s", cfg.Session.Driver)

	tokens, err := utils.NewManager(cfg.Session.JWTSecret)
	if err != nil {
		closeStores()
		return nil, nil, err
	}

	// Services
	authService := services.NewAuthService(client, session.NewManager(store, logger), tokens, cfg.Session.TTL, logger)
	submissionService := services.NewSubmissionService(client, audit, cfg.Moderation.DefaultPerPage, logger)

	app := &application{
		errorLog:       errorLog,
		infoLog:        infoLog,
		allowedOrigins: cfg.Server.AllowedOrigins,

		auth:        authService,
		submissions: submissionService,

		// Handlers
		authHandler: &handlers.AuthHandler{
			Service:  authService,
			OnLogout: func(adminID models.EntityID) { submissionService.Forget(adminID) },
		},
		submissionHandler:   &handlers.SubmissionHandler{Service: submissionService},
		productHandler:      &handlers.ProductHandler{Service: &services.ProductService{API: client}},
		professionalHandler: &handlers.ProfessionalHandler{Service: &services.ProfessionalService{API: client}},
		businessHandler:     &handlers.BusinessHandler{Service: &services.BusinessService{API: client}},
		planHandler:         &handlers.PlanHandler{Service: &services.PlanService{API: client}},
		userHandler:         &handlers.UserHandler{Service: &services.UserService{API: client}},
	}
	return app, closeStores, nil
}

// openSessionStores returns the session store and audit log for the
// configured driver, plus a func releasing them.
func openSessionStores(ctx context.Context, cfg config.Config, logger *slog.Logger) (session.Store, session.AuditLog, func(), error) {
	if cfg.Session.Driver == "memory" {
		return session.NewMemoryStore(), session.NewMemoryAudit(), func() {}, nil
	}

	rdb := redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := rdb.Ping(pingCtx).Err(); err != nil {
		_ = rdb.Close()
		return nil, nil, nil, fmt.Errorf("redis ping %s: %w", cfg.Redis.Addr, err)
	}

	closeFn := func() {
		if err := rdb.Close(); err != nil {
			logger.Error("redis close", "err", err)
		}
	}
	return session.NewRedisStore(rdb, "", cfg.Session.TTL), session.NewRedisAudit(rdb, logger), closeFn, nil
}
