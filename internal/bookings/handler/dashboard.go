package handler

import (
	"context"
	"net/http"
	"spacebook/internal/bookings/service"
	"spacebook/pkg/client"
	httputil "spacebook/pkg/http"
	"spacebook/pkg/logger"
	"spacebook/pkg/model"

	"github.com/julienschmidt/httprouter"
)

type DashboardHandler struct {
	service service.DashboardService
	log     *logger.Logger
}

func NewDashboardHandler(service service.DashboardService, log *logger.Logger) *DashboardHandler {
	return &DashboardHandler{
		service: service,
		log:     log,
	}
}

func (h *DashboardHandler) List(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	query, err := parseDashboardQuery(r)
	if err != nil {
		h.writeError(w, "List", err)
		return
	}

	dashboard, err := h.service.List(requestContext(r), httputil.ViewerFromRequest(r), query)
	if err != nil {
		h.writeError(w, "List", err)
		return
	}

	if err := httputil.WriteSuccess(w, dashboard); err != nil {
		h.log.Error("failed to write success response", "handler", "List", "operation", "WriteSuccess", "error", err)
	}
}

func (h *DashboardHandler) UpdateStatus(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	var update model.StatusUpdate
	if err := httputil.DecodeJSONBody(r, &update); err != nil {
		h.writeError(w, "UpdateStatus", err)
		return
	}

	dashboard, err := h.service.UpdateStatus(requestContext(r), httputil.ViewerFromRequest(r), ps.ByName("id"), update)
	if err != nil {
		h.writeError(w, "UpdateStatus", err)
		return
	}

	if err := httputil.WriteSuccess(w, dashboard); err != nil {
		h.log.Error("failed to write success response", "handler", "UpdateStatus", "operation", "WriteSuccess", "error", err)
	}
}

func (h *DashboardHandler) CleanupExpired(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	result, err := h.service.CleanupExpired(requestContext(r), httputil.ViewerFromRequest(r))
	if err != nil {
		h.writeError(w, "CleanupExpired", err)
		return
	}

	if err := httputil.WriteSuccess(w, result); err != nil {
		h.log.Error("failed to write success response", "handler", "CleanupExpired", "operation", "WriteSuccess", "error", err)
	}
}

func (h *DashboardHandler) ResetView(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	if err := h.service.ResetView(r.Context(), httputil.ViewerFromRequest(r)); err != nil {
		h.writeError(w, "ResetView", err)
		return
	}
	httputil.WriteNoContent(w)
}

func (h *DashboardHandler) writeError(w http.ResponseWriter, handler string, err error) {
	if writeErr := httputil.WriteError(w, err); writeErr != nil {
		h.log.Error("failed to write error response", "handler", handler, "operation", "WriteError", "error", writeErr)
	}
}

func (h *DashboardHandler) RegisterRoutes(router *httprouter.Router) {
	router.GET("/api/v1/dashboard/bookings", h.List)
	router.PUT("/api/v1/dashboard/bookings/:id/status", h.UpdateStatus)
	router.POST("/api/v1/dashboard/cleanup-expired", h.CleanupExpired)
	router.DELETE("/api/v1/dashboard/view", h.ResetView)
}

// requestContext forwards the caller's bearer token to the bookings API.
func requestContext(r *http.Request) context.Context {
	token := httputil.BearerToken(r)
	if token == "" {
		return r.Context()
	}
	return client.WithBearerToken(r.Context(), token)
}

func parseDashboardQuery(r *http.Request) (model.DashboardQuery, error) {
	page, err := httputil.OptionalQueryInt(r, "page")
	if err != nil {
		return model.DashboardQuery{}, err
	}
	perPage, err := httputil.OptionalQueryInt(r, "per_page")
	if err != nil {
		return model.DashboardQuery{}, err
	}

	return model.DashboardQuery{
		StatusFilter: httputil.OptionalQuery(r, "status"),
		SearchTerm:   httputil.OptionalQuery(r, "search"),
		SortBy:       httputil.OptionalQuery(r, "sort_by"),
		SortOrder:    httputil.OptionalQuery(r, "sort_order"),
		Page:         page,
		ItemsPerPage: perPage,
	}, nil
}
