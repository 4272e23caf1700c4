// Package server exposes the intake service over HTTP.
package server

import (
	"context"
	"errors"
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"go.uber.org/zap"

	"github.com/blackwell-systems/ghintake/internal/intake"
)

// Submitter accepts a decoded form.
type Submitter interface {
	Submit(ctx context.Context, f intake.Form) (*intake.Result, error)
}

// Options configures New.
type Options struct {
	// BodyLimit caps request bodies, e.g. "10M". Empty disables the cap.
	BodyLimit string
	Logger    *zap.Logger
}

// New returns an echo instance serving POST /submit and GET /healthz.
func New(svc Submitter, opts Options) *echo.Echo {
	log := opts.Logger
	if log == nil {
		log = zap.NewNop()
	}

	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.HTTPErrorHandler = errorHandler(log)

	e.Pre(cors)
	e.Use(middleware.Recover())
	e.Use(middleware.RequestIDWithConfig(middleware.RequestIDConfig{Generator: uuid.NewString}))
	e.Use(requestLogger(log))
	if opts.BodyLimit != "" {
		e.Use(middleware.BodyLimit(opts.BodyLimit))
	}

	h := &handler{svc: svc, log: log}
	e.POST("/submit", h.submit)
	e.GET("/healthz", func(c echo.Context) error {
		return c.String(http.StatusOK, "OK")
	})
	return e
}

// cors allows every origin and answers preflight requests before routing.
func cors(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		h := c.Response().Header()
		h.Set(echo.HeaderAccessControlAllowOrigin, "*")
		h.Set(echo.HeaderAccessControlAllowMethods, "POST, OPTIONS")
		h.Set(echo.HeaderAccessControlAllowHeaders, echo.HeaderContentType)
		if c.Request().Method == http.MethodOptions {
			return c.NoContent(http.StatusOK)
		}
		return next(c)
	}
}

func requestLogger(log *zap.Logger) echo.MiddlewareFunc {
	return middleware.RequestLoggerWithConfig(middleware.RequestLoggerConfig{
		LogMethod:    true,
		LogURI:       true,
		LogStatus:    true,
		LogLatency:   true,
		LogRequestID: true,
		LogValuesFunc: func(c echo.Context, v middleware.RequestLoggerValues) error {
			log.Info("request",
				zap.String("method", v.Method),
				zap.String("uri", v.URI),
				zap.Int("status", v.Status),
				zap.Duration("latency", v.Latency),
				zap.String("request_id", v.RequestID))
			return nil
		},
	})
}

// errorHandler renders framework errors (404, 405, 413) as {"error": ...}.
func errorHandler(log *zap.Logger) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}
		code := http.StatusInternalServerError
		msg := "Internal error"
		var he *echo.HTTPError
		if errors.As(err, &he) {
			code = he.Code
			if s, ok := he.Message.(string); ok && code < http.StatusInternalServerError {
				msg = s
			}
		}
		if code >= http.StatusInternalServerError {
			log.Error("unhandled error", zap.Error(err))
		}
		if err := c.JSON(code, map[string]string{"error": msg}); err != nil {
			log.Error("writing error response", zap.Error(err))
		}
	}
}
