package api

import (
	_ "churn-shield/docs"
	"churn-shield/internal/api/handler"
	mw "churn-shield/internal/api/middleware"
	"churn-shield/internal/config"
	"churn-shield/internal/domain/prediction"
	"churn-shield/internal/domain/session"
	"churn-shield/internal/domain/user"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/traceid"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	httpSwagger "github.com/swaggo/http-swagger/v2"
)

// Services are the domain entry points the HTTP layer exposes.
type Services struct {
	Users       user.Service
	Sessions    *session.Manager
	Predictions prediction.Service
	Models      handler.ModelInfoProvider
}

func SetupRouter(rateLimiter *mw.RateLimiterMiddleware, svc Services, cfg *config.Config, logger *slog.Logger) *chi.Mux {
	router := chi.NewRouter()

	setupMiddleware(router, rateLimiter, logger)
	setupMetricsEndpoint(router, cfg, logger)
	router.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status":"ok"}`))
	})
	setupSwaggerEndpoint(router, logger)
	setupSessionRoutes(router, svc, cfg, logger)
	setupPredictionRoutes(router, svc, cfg, logger)

	return router
}

func setupMiddleware(router *chi.Mux, rateLimiter *mw.RateLimiterMiddleware, logger *slog.Logger) {
	router.Use(middleware.RequestID)
	router.Use(middleware.RealIP)
	router.Use(traceid.Middleware)
	router.Use(mw.StructuredLogger(logger))
	router.Use(middleware.Recoverer)
	router.Use(middleware.Compress(5))
	router.Use(middleware.Timeout(60 * time.Second))
	if rateLimiter != nil {
		router.Use(rateLimiter.Middleware)
	}
	router.Use(mw.MetricsMiddleware())
}

func setupMetricsEndpoint(router *chi.Mux, cfg *config.Config, logger *slog.Logger) {
	metricsPath := cfg.Metrics.Path
	if metricsPath == "" {
		metricsPath = "/metrics"
	}
	logger.Info("Setting up Prometheus metrics endpoint", "path", metricsPath)
	router.Handle(metricsPath, promhttp.Handler())
}

func setupSwaggerEndpoint(router *chi.Mux, logger *slog.Logger) {
	logger.Info("Setting up Swagger UI endpoint", "path", "/swagger/")
	router.Get("/swagger/*", httpSwagger.WrapHandler)
	router.Get("/swagger", func(w http.ResponseWriter, r *http.Request) {
		http.Redirect(w, r, "/swagger/index.html", http.StatusMovedPermanently)
	})
}

func setupSessionRoutes(router *chi.Mux, svc Services, cfg *config.Config, logger *slog.Logger) {
	sessionHandler := handler.NewSessionHandler(svc.Sessions, cfg.Server.Auth, logger)
	authHandler := handler.NewAuthHandler(svc.Users, svc.Sessions, cfg.Server.Auth, logger)

	router.Route("/session", func(r chi.Router) {
		r.Get("/", sessionHandler.GetSession)
		r.Post("/registration", sessionHandler.BeginRegistration)
		r.Delete("/registration", sessionHandler.CancelRegistration)
	})

	router.Route("/auth", func(r chi.Router) {
		r.Post("/register", authHandler.Register)
		r.Post("/login", authHandler.Login)
		r.With(mw.AuthMiddleware(cfg.Server.Auth, svc.Sessions, logger)).Post("/logout", authHandler.Logout)
	})
}

func setupPredictionRoutes(router *chi.Mux, svc Services, cfg *config.Config, logger *slog.Logger) {
	predictionHandler := handler.NewPredictionHandler(svc.Predictions, cfg.Upload.MaxBytes, logger)
	modelHandler := handler.NewModelHandler(svc.Models, logger)

	router.Group(func(r chi.Router) {
		r.Use(mw.AuthMiddleware(cfg.Server.Auth, svc.Sessions, logger))

		r.Get("/model", modelHandler.GetModel)
		r.Route("/predictions", func(r chi.Router) {
			r.Post("/online", predictionHandler.PredictOnline)
			r.Post("/batch", predictionHandler.PredictBatch)
			r.Route("/batch/{batchID}", func(r chi.Router) {
				r.Get("/", predictionHandler.GetBatch)
				r.Get("/download", predictionHandler.DownloadBatch)
			})
		})
	})
}
