package server

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"eventsync-backend/core/cache"
	"eventsync-backend/core/config"
	"eventsync-backend/core/database"
	"eventsync-backend/core/logger"
	"eventsync-backend/core/middleware"
	"eventsync-backend/core/queue"
	"eventsync-backend/modules/auth"
	"eventsync-backend/modules/availability"
	"eventsync-backend/modules/event"
	"eventsync-backend/modules/mailer"

	"github.com/hibiken/asynq"
	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
)

// Run boots the API server and the mail worker, blocks until an
// interrupt, then shuts both down gracefully.
func Run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	logger.Init(cfg.Log.Level)

	db, err := database.InitDB(cfg.Database)
	if err != nil {
		return fmt.Errorf("init database: %w", err)
	}

	c, err := cache.InitCache(cfg.Redis)
	if err != nil {
		return fmt.Errorf("init cache: %w", err)
	}
	defer c.Close()

	queueClient := queue.NewClient(cfg.Redis)
	defer queueClient.Close()

	dispatcher := mailer.NewDispatcher(queueClient)
	sender := mailer.NewSenderFromConfig(cfg.Mail)

	mux := asynq.NewServeMux()
	mailer.RegisterHandlers(mux, sender)

	worker := queue.NewServer(cfg.Redis)
	if err := worker.Start(mux); err != nil {
		return fmt.Errorf("start mail worker: %w", err)
	}

	e := echo.New()
	e.HideBanner = true
	e.Use(echomw.Recover())
	e.Use(echomw.RequestLoggerWithConfig(echomw.RequestLoggerConfig{
		LogStatus: true,
		LogURI:    true,
		LogMethod: true,
		LogError:  true,
		LogValuesFunc: func(ctx echo.Context, v echomw.RequestLoggerValues) error {
			if v.Error != nil {
				logger.Error("Server:Request:Error:", "method", v.Method, "uri", v.URI, "status", v.Status, "error", v.Error)
				return nil
			}
			logger.Info("Server:Request", "method", v.Method, "uri", v.URI, "status", v.Status)
			return nil
		},
	}))
	e.Use(echomw.CORSWithConfig(echomw.CORSConfig{
		AllowOrigins: strings.Split(cfg.Server.CORSOrigins, ","),
		AllowMethods: []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodOptions},
		AllowHeaders: []string{echo.HeaderOrigin, echo.HeaderContentType, echo.HeaderAuthorization},
	}))

	e.GET("/health", func(ctx echo.Context) error {
		return ctx.JSON(http.StatusOK, map[string]string{"status": "ok"})
	})

	api := e.Group("/api/v1")
	public := api.Group("/public")
	private := api.Group("/private")

	mw := middleware.New(c)

	userRepo := auth.Init(public, private, db, c, dispatcher, mw)
	eventRepo := event.Init(public, private, db, userRepo, dispatcher, mw)
	availability.Init(public, private, db, eventRepo, mw)

	addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)

	go func() {
		logger.Info("Server:Start", "addr", addr)
		if err := e.Start(addr); err != nil && err != http.ErrServerClosed {
			logger.Error("Server:Start:Error:", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	logger.Info("Server:Shutdown")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := e.Shutdown(ctx); err != nil {
		logger.Error("Server:Shutdown:Error:", err)
	}

	worker.Shutdown()

	return nil
}
