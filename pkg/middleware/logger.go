package middleware

import (
	"time"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

const LoggerKey = "logger"

// InjectLogger кладёт в контекст логгер с request id.
func InjectLogger(logger *zap.Logger) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			reqLogger := logger
			if id := c.Response().Header().Get(echo.HeaderXRequestID); id != "" {
				reqLogger = logger.With(zap.String("request_id", id))
			}
			c.Set(LoggerKey, reqLogger)
			return next(c)
		}
	}
}

// RequestLogger пишет одну строку на запрос.
func RequestLogger(logger *zap.Logger) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			start := time.Now()
			err := next(c)
			if err != nil {
				c.Error(err)
			}

			fields := []zap.Field{
				zap.String("method", c.Request().Method),
				zap.String("uri", c.Request().RequestURI),
				zap.Int("status", c.Response().Status),
				zap.Duration("latency", time.Since(start)),
				zap.String("request_id", c.Response().Header().Get(echo.HeaderXRequestID)),
			}
			if c.Response().Status >= 500 {
				logger.Error("Requête", fields...)
			} else {
				logger.Info("Requête", fields...)
			}
			return nil
		}
	}
}

// FromContext возвращает логгер запроса или fallback.
func FromContext(c echo.Context, fallback *zap.Logger) *zap.Logger {
	if l, ok := c.Get(LoggerKey).(*zap.Logger); ok && l != nil {
		return l
	}
	return fallback
}
