package server

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/UnknownOlympus/hestia/internal/config"
	"github.com/UnknownOlympus/hestia/internal/lib/logger/sl"
	"github.com/UnknownOlympus/hestia/internal/metrics"
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Server owns the public echo router and the monitoring handler, each served on its own listener.
type Server struct {
	echo    *echo.Echo
	monitor http.Handler
	cfg     config.HTTPConfig
	log     *slog.Logger
}

// New wires the public routes:
//
//	GET  /               employee listing
//	GET  /employees/new  empty form
//	POST /employees/new  form submission
//	GET  /healthz        database health
//
// and the monitoring routes, served on cfg.MetricsAddress:
//
//	GET  /metrics        Prometheus metrics
//	GET  /healthz        database health
func New(
	log *slog.Logger,
	cfg config.HTTPConfig,
	svc EmployeeService,
	db DBPinger,
	reg *prometheus.Registry,
	appMetrics *metrics.Metrics,
) (*Server, error) {
	renderer, err := NewTemplateRenderer()
	if err != nil {
		return nil, err
	}

	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Renderer = renderer

	e.Use(middleware.RequestIDWithConfig(middleware.RequestIDConfig{Generator: uuid.NewString}))
	e.Use(middleware.Recover())
	e.Use(requestLogger(log))
	e.Use(requestMetrics(appMetrics))

	handler := NewEmployeeHandler(svc, log)
	e.GET("/", handler.List)
	e.GET("/employees/new", handler.NewForm)
	e.POST("/employees/new", handler.Create)

	health := NewHealthChecker(db, log)
	e.GET("/healthz", echo.WrapHandler(health))

	monitor := http.NewServeMux()
	monitor.Handle("GET /metrics", promhttp.HandlerFor(reg, promhttp.HandlerOpts{Registry: reg}))
	monitor.Handle("GET /healthz", health)

	return &Server{echo: e, monitor: monitor, cfg: cfg, log: log}, nil
}

// Handler exposes the public router, mainly for tests.
func (s *Server) Handler() http.Handler {
	return s.echo
}

// MonitoringHandler exposes the monitoring routes, mainly for tests.
func (s *Server) MonitoringHandler() http.Handler {
	return s.monitor
}

// Run serves the public and monitoring listeners until ctx is cancelled or one of them fails,
// then shuts both down gracefully.
func (s *Server) Run(ctx context.Context) error {
	servers := []*http.Server{{
		Addr:         s.cfg.Address,
		Handler:      s.echo,
		ReadTimeout:  s.cfg.ReadTimeout,
		WriteTimeout: s.cfg.WriteTimeout,
	}}
	if s.cfg.MetricsAddress != "" {
		servers = append(servers, &http.Server{
			Addr:         s.cfg.MetricsAddress,
			Handler:      s.monitor,
			ReadTimeout:  s.cfg.ReadTimeout,
			WriteTimeout: s.cfg.WriteTimeout,
		})
	}

	errCh := make(chan error, len(servers))
	for _, srv := range servers {
		go func() {
			s.log.InfoContext(ctx, "Starting HTTP server", "address", srv.Addr)
			if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				errCh <- fmt.Errorf("failed to serve HTTP on %s: %w", srv.Addr, err)
			}
		}()
	}

	var runErr error
	select {
	case runErr = <-errCh:
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), s.cfg.ShutdownTimeout)
	defer cancel()

	s.log.InfoContext(ctx, "Shutting down HTTP servers")
	for _, srv := range servers {
		if err := srv.Shutdown(shutdownCtx); err != nil && runErr == nil {
			runErr = fmt.Errorf("failed to shut down HTTP server on %s: %w", srv.Addr, err)
		}
	}

	return runErr
}

func requestLogger(log *slog.Logger) echo.MiddlewareFunc {
	return middleware.RequestLoggerWithConfig(middleware.RequestLoggerConfig{
		LogStatus:    true,
		LogURI:       true,
		LogMethod:    true,
		LogLatency:   true,
		LogRequestID: true,
		LogError:     true,
		LogValuesFunc: func(c echo.Context, v middleware.RequestLoggerValues) error {
			attrs := []slog.Attr{
				slog.String("method", v.Method),
				slog.String("uri", v.URI),
				slog.Int("status", v.Status),
				slog.Duration("latency", v.Latency),
				slog.String("request_id", v.RequestID),
			}
			level := slog.LevelInfo
			if v.Error != nil {
				level = slog.LevelError
				attrs = append(attrs, sl.Err(v.Error))
			}
			log.LogAttrs(c.Request().Context(), level, "request", attrs...)
			return nil
		},
	})
}

func requestMetrics(appMetrics *metrics.Metrics) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if appMetrics == nil {
				return next(c)
			}

			startTime := time.Now()
			err := next(c)

			status := c.Response().Status
			if err != nil {
				status = http.StatusInternalServerError
				var httpErr *echo.HTTPError
				if errors.As(err, &httpErr) {
					status = httpErr.Code
				}
			}

			appMetrics.RequestDuration.
				WithLabelValues(c.Request().Method, c.Path(), strconv.Itoa(status)).
				Observe(time.Since(startTime).Seconds())

			return err
		}
	}
}
