package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"reports/src/clients/backend"
	"reports/src/config"
	"reports/src/database"
	"reports/src/services"
	"reports/src/services/charts"
	"reports/src/utils"
	aws_handler "reports/src/utils/aws"
	"reports/src/worker/controllers"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

type ControllerI interface {
	LoadAllReportSchedule(ctx context.Context) error
	LoadReportScheduleByID(ctx context.Context, ID uint) error
}

type Handler struct {
	Controller ControllerI
}

// NewHandler connects to the database and S3 and returns the handler with
// the controller that owns the cron jobs.
func NewHandler(cfg *config.Config, logger *logrus.Logger) (*Handler, *controllers.Controller, error) {
	db, err := database.SetupDB(cfg)
	if err != nil {
		return nil, nil, err
	}

	var archive controllers.ReportArchiver
	if cfg.AWS.ReportBucket != "" {
		awsHandler, err := aws_handler.NewAWSHandler(cfg.AWS.Region, cfg.AWS.ReportBucket)
		if err != nil {
			return nil, nil, err
		}
		archive = awsHandler.Archive
	}

	reportService, err := services.NewReportService(cfg, backend.NewClient(cfg.ExternalClients.Backend), charts.NewMemoryStore())
	if err != nil {
		return nil, nil, err
	}

	controller := controllers.NewController(db, reportService, archive, cfg.ExternalClients.Backend.ServiceToken, logger)
	return &Handler{Controller: controller}, controller, nil
}

func (h *Handler) respond(w http.ResponseWriter, _ *http.Request, data interface{}, status int) {
	res, err := json.Marshal(data)
	if err != nil {
		h.HandleErrors(w, err)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("X-Content-Type-Options", "nosniff")
	w.WriteHeader(status)
	_, _ = w.Write(res)
}

func (h *Handler) HandleErrors(w http.ResponseWriter, err error) {
	var httpErr *utils.HTTPError
	if errors.Is(err, context.DeadlineExceeded) {
		h.respond(w, nil, map[string]string{"error": "Request timed out"}, http.StatusGatewayTimeout)
	} else if errors.As(err, &httpErr) {
		h.respond(w, nil, map[string]string{"error": httpErr.Message}, httpErr.Code)
	} else if errors.Is(err, gorm.ErrRecordNotFound) {
		h.respond(w, nil, map[string]string{"error": "Not found"}, http.StatusNotFound)
	} else if err != nil {
		h.respond(w, nil, map[string]string{"error": err.Error()}, http.StatusInternalServerError)
	} else {
		h.respond(w, nil, map[string]string{"error": "Unhandled error"}, http.StatusInternalServerError)
	}
}
