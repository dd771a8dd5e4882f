package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimid "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"

	"github.com/WojciechM98/Team-Management-System/internal/infrastructure/http/handlers"
	"github.com/WojciechM98/Team-Management-System/internal/infrastructure/http/middleware"
)

type RouterConfig struct {
	AuthHandler     *handlers.AuthHandler
	HealthHandler   *handlers.HealthHandler
	UsersHandler    *handlers.UsersHandler
	TasksHandler    *handlers.TasksHandler
	CommentsHandler *handlers.CommentsHandler
	RequireJWT      func(http.Handler) http.Handler // JWT auth for everything past /auth/login
	Log             zerolog.Logger
	Secure          func(http.Handler) http.Handler
	CORS            func(http.Handler) http.Handler
	IPRateLimit     func(http.Handler) http.Handler
	Metrics         bool // expose /metrics
}

func NewRouter(cfg RouterConfig) http.Handler {
	r := chi.NewRouter()
	r.Use(chimid.RequestID)
	r.Use(chimid.RealIP)
	r.Use(loggerMiddleware(cfg.Log))
	r.Use(chimid.Recoverer)
	if cfg.Metrics {
		r.Use(middleware.PrometheusMiddleware)
	}
	if cfg.Secure != nil {
		r.Use(cfg.Secure)
	}
	if cfg.CORS != nil {
		r.Use(cfg.CORS)
	}
	r.Use(chimid.AllowContentType("application/json"))
	r.Use(chimid.SetHeader("Content-Type", "application/json"))
	if cfg.IPRateLimit != nil {
		r.Use(cfg.IPRateLimit)
	}

	if cfg.HealthHandler != nil {
		r.Get("/health", cfg.HealthHandler.ServeHTTP)
	} else {
		r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusOK)
			_, _ = w.Write([]byte(`{"status":"ok"}`))
		})
	}
	if cfg.Metrics {
		r.Handle("/metrics", promhttp.Handler())
	}

	r.Route("/auth", func(r chi.Router) {
		r.Post("/signup", cfg.AuthHandler.Signup)
		r.Post("/login", cfg.AuthHandler.Login)
		r.Group(func(r chi.Router) {
			r.Use(cfg.RequireJWT)
			r.Post("/change-password", cfg.AuthHandler.ChangePassword)
		})
	})

	r.Route("/users", func(r chi.Router) {
		r.Use(cfg.RequireJWT)
		r.Get("/", cfg.UsersHandler.List)
		r.Get("/me", cfg.UsersHandler.Me)
		r.Get("/{id}", cfg.UsersHandler.Get)
		r.Patch("/{id}", cfg.UsersHandler.Update)
		r.Delete("/{id}", cfg.UsersHandler.Delete)
	})

	r.Route("/tasks", func(r chi.Router) {
		r.Use(cfg.RequireJWT)
		r.Get("/", cfg.TasksHandler.List)
		r.Post("/", cfg.TasksHandler.Create)
		r.Get("/{id}", cfg.TasksHandler.Get)
		r.Patch("/{id}", cfg.TasksHandler.Update)
		r.Delete("/{id}", cfg.TasksHandler.Delete)
		r.Post("/{id}/assignments", cfg.TasksHandler.Assign)
		r.Delete("/{id}/assignments/{user_id}", cfg.TasksHandler.Unassign)
		r.Get("/{id}/comments", cfg.CommentsHandler.ListByTask)
		r.Post("/{id}/comments", cfg.CommentsHandler.Add)
	})

	r.Route("/comments", func(r chi.Router) {
		r.Use(cfg.RequireJWT)
		r.Get("/{id}", cfg.CommentsHandler.Get)
		r.Patch("/{id}", cfg.CommentsHandler.Update)
		r.Delete("/{id}", cfg.CommentsHandler.Delete)
	})

	return r
}

func loggerMiddleware(log zerolog.Logger) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			reqID := chimid.GetReqID(r.Context())
			log.Info().
				Str("request_id", reqID).
				Str("method", r.Method).
				Str("path", r.URL.Path).
				Msg("request")
			next.ServeHTTP(w, r)
		})
	}
}
