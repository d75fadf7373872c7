package handlers

import (
	"context"
	"net/http"
	"reports/src/utils"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
)

func (h *Handler) LoadAllReportSchedules(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	if err := h.Controller.LoadAllReportSchedule(ctx); err != nil {
		h.HandleErrors(w, err)
		return
	}

	h.respond(w, r, map[string]string{"status": "loaded"}, http.StatusOK)
}

func (h *Handler) LoadReportScheduleByID(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	id, err := strconv.ParseUint(chi.URLParam(r, "id"), 10, 32)
	if err != nil {
		h.HandleErrors(w, utils.BadRequest("Invalid ID"))
		return
	}

	if err := h.Controller.LoadReportScheduleByID(ctx, uint(id)); err != nil {
		h.HandleErrors(w, err)
		return
	}

	h.respond(w, r, map[string]string{"status": "loaded"}, http.StatusOK)
}
