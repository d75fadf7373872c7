package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"reports/src/api/controllers"
	"reports/src/clients/backend"
	"reports/src/config"
	"reports/src/database"
	"reports/src/services"
	"reports/src/services/charts"
	"reports/src/utils"
	redis_utils "reports/src/utils/redis"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

type Handler struct {
	Logger                   *logrus.Logger
	ReportController         controllers.ReportControllerI
	ReportScheduleController controllers.ReportScheduleControllerI

	// MaxBodyBytes limits POST export bodies; zero means DefaultMaxBodyBytes.
	MaxBodyBytes int64
}

// NewHandler builds the controllers from cfg. The SQL database and Redis are
// optional: without a database the schedule routes answer 503, without Redis
// charts are cached in memory.
func NewHandler(cfg *config.Config, logger *logrus.Logger) (*Handler, error) {
	var db *gorm.DB
	if database.Configured(cfg.Databases.SQL) {
		var err error
		db, err = database.SetupDB(cfg)
		if err != nil {
			return nil, err
		}
	} else {
		logger.Warn("no SQL database configured, report schedules are disabled")
	}

	var store charts.KeyValueStore = charts.NewMemoryStore()
	if cfg.Databases.Redis.Enabled {
		redisHandler, err := redis_utils.NewRedisHandler(context.Background(), cfg.Databases.Redis)
		if err != nil {
			logger.WithError(err).Warn("redis unavailable, caching charts in memory")
		} else {
			store = redisHandler
		}
	}

	reportService, err := services.NewReportService(cfg, backend.NewClient(cfg.ExternalClients.Backend), store)
	if err != nil {
		return nil, err
	}

	controller := controllers.NewController(db, reportService)
	return &Handler{
		Logger:                   logger,
		ReportController:         controller.ReportController,
		ReportScheduleController: controller.ReportScheduleController,
	}, nil
}

func (h *Handler) respond(w http.ResponseWriter, _ *http.Request, data interface{}, status int) {
	res, err := json.Marshal(data)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("X-Content-Type-Options", "nosniff")
	w.WriteHeader(status)
	_, _ = w.Write(res)
}

// HandleErrors maps err to a JSON error response. Unexpected errors are logged
// and answered with a generic 500.
func (h *Handler) HandleErrors(w http.ResponseWriter, r *http.Request, err error) {
	var httpErr *utils.HTTPError
	switch {
	case errors.Is(err, context.DeadlineExceeded):
		h.respond(w, r, map[string]string{"error": "Request timed out"}, http.StatusGatewayTimeout)
	case errors.As(err, &httpErr):
		h.respond(w, r, map[string]string{"error": httpErr.Message}, httpErr.Code)
	case controllers.IsNotFound(err):
		h.respond(w, r, map[string]string{"error": "Not found"}, http.StatusNotFound)
	default:
		utils.LoggerFromContext(r.Context()).WithError(err).Error("request failed")
		h.respond(w, r, map[string]string{"error": "Internal Server Error"}, http.StatusInternalServerError)
	}
}
