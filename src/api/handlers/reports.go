package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"reports/src/schemas"
	"reports/src/services"
	"reports/src/utils"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/jwtauth"
)

const (
	exportTimeout = 60 * time.Second
	// DefaultMaxBodyBytes caps the POST export body when Handler.MaxBodyBytes is unset.
	DefaultMaxBodyBytes int64 = 10 << 20
)

// ExportReport serves GET /api/reports/{type}/export?startDate=&endDate=&format=.
// The report data is fetched from the backend with the caller's token.
func (h *Handler) ExportReport(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	input, err := exportInput(r, query.Get("format"), schemas.DateRange{
		StartDate: query.Get("startDate"),
		EndDate:   query.Get("endDate"),
	})
	if err != nil {
		h.HandleErrors(w, r, err)
		return
	}
	h.export(w, r, input)
}

// ExportReportFromPayload serves POST /api/reports/{type}/export where the
// body carries the report data itself.
func (h *Handler) ExportReportFromPayload(w http.ResponseWriter, r *http.Request) {
	limit := h.MaxBodyBytes
	if limit <= 0 {
		limit = DefaultMaxBodyBytes
	}
	r.Body = http.MaxBytesReader(w, r.Body, limit)

	var req schemas.ReportExportRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			h.HandleErrors(w, r, utils.RequestEntityTooLarge(fmt.Sprintf("request body exceeds %d bytes", limit)))
			return
		}
		h.HandleErrors(w, r, utils.BadRequest("Invalid request body"))
		return
	}
	if len(req.Payload) == 0 || string(req.Payload) == "null" {
		h.HandleErrors(w, r, utils.BadRequest("payload is required"))
		return
	}

	input, err := exportInput(r, r.URL.Query().Get("format"), req.DateRange)
	if err != nil {
		h.HandleErrors(w, r, err)
		return
	}
	input.Payload = req.Payload
	h.export(w, r, input)
}

func exportInput(r *http.Request, formatParam string, dateRange schemas.DateRange) (services.ExportInput, error) {
	exportFormat, ok := schemas.ParseExportFormat(formatParam)
	if !ok {
		return services.ExportInput{}, utils.UnprocessableEntity(fmt.Sprintf("unsupported format %q", formatParam))
	}
	if dateRange.StartDate == "" || dateRange.EndDate == "" {
		return services.ExportInput{}, utils.UnprocessableEntity("startDate and endDate are required")
	}

	reportType, _ := schemas.ParseReportType(chi.URLParam(r, "type"))
	return services.ExportInput{
		ReportType: reportType,
		Format:     exportFormat,
		DateRange:  dateRange,
		Token:      jwtauth.TokenFromHeader(r),
	}, nil
}

func (h *Handler) export(w http.ResponseWriter, r *http.Request, input services.ExportInput) {
	ctx, cancel := context.WithTimeout(r.Context(), exportTimeout)
	defer cancel()

	result, err := h.ReportController.ExportReport(ctx, input)
	if err != nil {
		h.HandleErrors(w, r, err)
		return
	}

	w.Header().Set("Content-Type", result.ContentType)
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", result.Filename))
	w.Header().Set("Content-Length", strconv.Itoa(len(result.Data)))
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(result.Data); err != nil {
		utils.LoggerFromContext(r.Context()).WithError(err).Warn("failed to write report")
	}
}

// ListReportTypes serves GET /api/reports with the supported report types.
func (h *Handler) ListReportTypes(w http.ResponseWriter, r *http.Request) {
	type reportTypeView struct {
		Type  schemas.ReportType `json:"type"`
		Label string             `json:"label"`
		Chart bool               `json:"chart"`
	}
	views := make([]reportTypeView, 0, len(schemas.ReportTypes))
	for _, rt := range schemas.ReportTypes {
		views = append(views, reportTypeView{Type: rt, Label: rt.Title(), Chart: rt.ChartEligible()})
	}
	h.respond(w, r, views, http.StatusOK)
}
