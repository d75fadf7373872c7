package worker

import (
	"net/http"
	"reports/src/api/middleware"
	"reports/src/config"
	"reports/src/worker/controllers"
	"reports/src/worker/handlers"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/sirupsen/logrus"
)

type Server struct {
	Router     *chi.Mux
	Handler    *handlers.Handler
	Controller *controllers.Controller
	Logger     *logrus.Logger
}

// NewServer builds the worker and registers every active schedule.
func NewServer(cfg *config.Config, logger *logrus.Logger) (*Server, error) {
	handler, controller, err := handlers.NewHandler(cfg, logger)
	if err != nil {
		return nil, err
	}
	server := NewServerWithHandler(handler, logger)
	server.Controller = controller
	return server, nil
}

func NewServerWithHandler(handler *handlers.Handler, logger *logrus.Logger) *Server {
	server := &Server{
		Router:  chi.NewRouter(),
		Handler: handler,
		Logger:  logger,
	}
	server.InitRoutes()
	return server
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.Router.ServeHTTP(w, r)
}

func (s *Server) InitRoutes() {
	s.Router.Use(chimiddleware.RequestID)
	s.Router.Use(middleware.Logger(s.Logger))
	s.Router.Use(chimiddleware.Recoverer)

	s.Router.Get("/alive", handlers.Healthcheck)
	s.Router.Route("/api/schedules", func(r chi.Router) {
		r.Post("/load", s.Handler.LoadAllReportSchedules)
		r.Post("/{id}/load", s.Handler.LoadReportScheduleByID)
	})
}

func NewHTTPServer(server *Server, port string) *http.Server {
	return &http.Server{
		Addr:         ":" + port,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 30 * time.Second,
		Handler:      server,
	}
}
