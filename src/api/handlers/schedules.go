package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"reports/src/schemas"
	"reports/src/utils"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
)

func scheduleID(r *http.Request) (uint, error) {
	id, err := strconv.ParseUint(chi.URLParam(r, "id"), 10, 32)
	if err != nil {
		return 0, utils.BadRequest("Invalid ID")
	}
	return uint(id), nil
}

func (h *Handler) GetAllReportSchedules(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	schedules, err := h.ReportScheduleController.GetAllReportSchedules(ctx)
	if err != nil {
		h.HandleErrors(w, r, err)
		return
	}
	h.respond(w, r, schedules, http.StatusOK)
}

func (h *Handler) GetReportScheduleByID(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	id, err := scheduleID(r)
	if err != nil {
		h.HandleErrors(w, r, err)
		return
	}

	schedule, err := h.ReportScheduleController.GetReportScheduleByID(ctx, id)
	if err != nil {
		h.HandleErrors(w, r, err)
		return
	}
	h.respond(w, r, schedule, http.StatusOK)
}

func (h *Handler) CreateReportSchedule(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	var req schemas.CreateReportScheduleRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.HandleErrors(w, r, utils.BadRequest("Invalid request body"))
		return
	}

	schedule, err := h.ReportScheduleController.CreateReportSchedule(ctx, &req)
	if err != nil {
		h.HandleErrors(w, r, err)
		return
	}
	h.respond(w, r, schedule, http.StatusCreated)
}

func (h *Handler) UpdateReportSchedule(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	id, err := scheduleID(r)
	if err != nil {
		h.HandleErrors(w, r, err)
		return
	}

	var req schemas.UpdateReportScheduleRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.HandleErrors(w, r, utils.BadRequest("Invalid request body"))
		return
	}
	req.ID = id

	schedule, err := h.ReportScheduleController.UpdateReportSchedule(ctx, &req)
	if err != nil {
		h.HandleErrors(w, r, err)
		return
	}
	h.respond(w, r, schedule, http.StatusOK)
}

func (h *Handler) DeleteReportSchedule(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	id, err := scheduleID(r)
	if err != nil {
		h.HandleErrors(w, r, err)
		return
	}

	if err := h.ReportScheduleController.DeleteReportSchedule(ctx, id); err != nil {
		h.HandleErrors(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
