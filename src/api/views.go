package api

import (
	"context"
	"errors"
	"net/http"
	"reports/src/api/handlers"
	"reports/src/api/middleware"
	"reports/src/config"
	aws_handler "reports/src/utils/aws"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/jwtauth"
	"github.com/rs/cors"
	"github.com/sirupsen/logrus"
)

type Server struct {
	Router    *chi.Mux
	Handler   *handlers.Handler
	TokenAuth *jwtauth.JWTAuth
	Logger    *logrus.Logger

	// AllowedOrigins of the back-office front-end; empty disables CORS.
	AllowedOrigins []string
}

func NewServer(cfg *config.Config, logger *logrus.Logger) (*Server, error) {
	secret, err := jwtSecret(cfg)
	if err != nil {
		return nil, err
	}
	handler, err := handlers.NewHandler(cfg, logger)
	if err != nil {
		return nil, err
	}
	return NewServerWithHandler(handler, jwtauth.New("HS256", []byte(secret), nil), logger, cfg.Service.AllowedOrigins), nil
}

// NewServerWithHandler builds the router around an existing handler.
func NewServerWithHandler(handler *handlers.Handler, tokenAuth *jwtauth.JWTAuth, logger *logrus.Logger, allowedOrigins []string) *Server {
	server := &Server{
		Router:         chi.NewRouter(),
		Handler:        handler,
		TokenAuth:      tokenAuth,
		Logger:         logger,
		AllowedOrigins: allowedOrigins,
	}
	server.InitRoutes()
	return server
}

// jwtSecret prefers the secret stored in AWS Secrets Manager when an id is set.
func jwtSecret(cfg *config.Config) (string, error) {
	if cfg.Auth.JWTSecretID == "" {
		if cfg.Auth.JWTSecret == "" {
			return "", errors.New("auth.jwtSecret or auth.jwtSecretId must be set")
		}
		return cfg.Auth.JWTSecret, nil
	}

	awsHandler, err := aws_handler.NewAWSHandler(cfg.AWS.Region, "")
	if err != nil {
		return "", err
	}
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return awsHandler.SecretManager.GetSecretValue(ctx, cfg.Auth.JWTSecretID)
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.Router.ServeHTTP(w, r)
}

func (s *Server) InitRoutes() {
	s.Router.Use(chimiddleware.RequestID)
	s.Router.Use(chimiddleware.RealIP)
	s.Router.Use(middleware.Logger(s.Logger))
	s.Router.Use(chimiddleware.Recoverer)
	if len(s.AllowedOrigins) > 0 {
		s.Router.Use(cors.New(cors.Options{
			AllowedOrigins: s.AllowedOrigins,
			AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodOptions},
			AllowedHeaders: []string{"Authorization", "Content-Type"},
			ExposedHeaders: []string{"Content-Disposition", "Content-Length"},
		}).Handler)
	}

	s.Router.Get("/alive", handlers.Healthcheck)

	s.Router.Route("/api", func(r chi.Router) {
		r.Use(jwtauth.Verifier(s.TokenAuth))

		r.Group(func(r chi.Router) {
			r.Use(middleware.RequireRole(middleware.RoleAdmin, middleware.RoleSales))
			r.Get("/reports", s.Handler.ListReportTypes)
			r.Get("/reports/{type}/export", s.Handler.ExportReport)
			r.Post("/reports/{type}/export", s.Handler.ExportReportFromPayload)
		})

		r.Route("/schedules", func(r chi.Router) {
			r.Use(middleware.RequireRole(middleware.RoleAdmin))
			r.Get("/", s.Handler.GetAllReportSchedules)
			r.Post("/", s.Handler.CreateReportSchedule)
			r.Get("/{id}", s.Handler.GetReportScheduleByID)
			r.Put("/{id}", s.Handler.UpdateReportSchedule)
			r.Delete("/{id}", s.Handler.DeleteReportSchedule)
		})
	})
}

func NewHTTPServer(server *Server, port string) *http.Server {
	return &http.Server{
		Addr:         ":" + port,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 90 * time.Second,
		Handler:      server,
	}
}
