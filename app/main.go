package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
	"go.uber.org/zap"

	"maintenance-portal/internal/controllers"
	"maintenance-portal/internal/integrations/backend"
	"maintenance-portal/internal/repositories"
	"maintenance-portal/internal/routes"
	"maintenance-portal/internal/views"
	"maintenance-portal/pkg/config"
	apperrors "maintenance-portal/pkg/errors"
	"maintenance-portal/pkg/eventbus"
	applogger "maintenance-portal/pkg/logger"
	"maintenance-portal/pkg/middleware"
	"maintenance-portal/pkg/utils"
	"maintenance-portal/pkg/validation"
)

func main() {
	// 1. Конфиг и логгер
	cfg := config.New()
	logger := applogger.NewLogger(cfg.Log.Level, cfg.Log.File)
	defer func() { _ = logger.Sync() }()
	if cfg.UsesDefaultSecret() {
		logger.Warn("SESSION_SECRET_KEY n'est pas défini: les cookies de session sont signés avec la clé par défaut")
	}

	// 2. Echo и middleware
	e := echo.New()
	e.HideBanner = true
	e.HTTPErrorHandler = controllers.NewHTTPErrorHandler(logger)

	e.Use(echomw.RecoverWithConfig(echomw.RecoverConfig{
		DisableStackAll: true,
		StackSize:       1 << 10,
		LogErrorFunc: func(c echo.Context, err error, stack []byte) error {
			logger.Error("PANIC intercepté",
				zap.String("method", c.Request().Method),
				zap.String("uri", c.Request().RequestURI),
				zap.Error(err),
				zap.String("stack", string(stack)),
			)
			if !c.Response().Committed {
				httpErr := apperrors.NewHttpError(http.StatusInternalServerError, "Une erreur interne est survenue.", err, nil)
				_ = utils.ErrorResponse(c, httpErr, logger)
			}
			return err
		},
	}))
	e.Use(echomw.RequestID())
	e.Use(echomw.SecureWithConfig(echomw.SecureConfig{
		XSSProtection:      "1; mode=block",
		ContentTypeNosniff: "nosniff",
		XFrameOptions:      "DENY",
		ReferrerPolicy:     "same-origin",
	}))
	e.Use(middleware.RequestLogger(logger.Named("http")))
	e.Use(middleware.InjectLogger(logger))

	// 3. Валидатор и шаблоны
	e.Validator = validation.New()
	renderer, err := views.New()
	if err != nil {
		logger.Fatal("Impossible de charger les modèles HTML", zap.Error(err))
	}
	e.Renderer = renderer

	// 4. Redis для сессий
	redisClient := redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.Address,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	defer redisClient.Close()
	if _, err := redisClient.Ping(context.Background()).Result(); err != nil {
		logger.Fatal("Impossible de se connecter à Redis", zap.Error(err), zap.String("address", cfg.Redis.Address))
	}

	// 5. Клиент API и шина событий
	api := backend.New(cfg.Backend.BaseURL, logger,
		backend.WithTimeout(cfg.Backend.Timeout),
		backend.WithAuthScheme(cfg.Backend.AuthScheme),
	)
	bus := eventbus.New(logger.Named("eventbus"))

	// 6. Маршруты
	routes.InitRouter(e, routes.Deps{
		API:    api,
		Cache:  repositories.NewRedisCacheRepository(redisClient),
		Bus:    bus,
		Config: cfg,
		Logger: logger,
	})

	// 7. Запуск и плавная остановка
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	go func() {
		logger.Info("Serveur démarré", zap.String("port", cfg.Server.Port), zap.String("api", cfg.Backend.BaseURL))
		if err := e.Start(":" + cfg.Server.Port); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("Erreur du serveur", zap.Error(err))
		}
	}()

	<-ctx.Done()
	logger.Info("Arrêt du serveur")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		logger.Error("Arrêt forcé du serveur", zap.Error(err))
	}
	// Письма, отправленные после ответа пользователю, должны уйти.
	bus.Wait()
}
