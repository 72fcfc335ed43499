package handler

import (
	"net/http"
	"spacebook/internal/preferences/service"
	apperrors "spacebook/pkg/errors"
	httputil "spacebook/pkg/http"
	"spacebook/pkg/logger"
	"spacebook/pkg/model"
	"time"

	"github.com/julienschmidt/httprouter"
)

const defaultChangesWait = 20 * time.Second

type ViewerValidator interface {
	ValidateViewer(viewer *model.Viewer) error
}

type PreferencesHandler struct {
	store     service.Store
	validator ViewerValidator
	maxWait   time.Duration
	log       *logger.Logger
}

// NewPreferencesHandler serves the preferences endpoints. maxWait caps the
// long-poll duration and must stay below the request timeout.
func NewPreferencesHandler(store service.Store, validator ViewerValidator, maxWait time.Duration, log *logger.Logger) *PreferencesHandler {
	if maxWait <= 0 {
		maxWait = defaultChangesWait
	}
	return &PreferencesHandler{
		store:     store,
		validator: validator,
		maxWait:   maxWait,
		log:       log,
	}
}

func (h *PreferencesHandler) Get(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	viewer, err := h.viewer(r)
	if err != nil {
		h.writeError(w, "Get", err)
		return
	}

	prefs, err := h.store.Get(r.Context(), viewer.UserID)
	if err != nil {
		h.writeError(w, "Get", err)
		return
	}

	if err := httputil.WriteSuccess(w, prefs); err != nil {
		h.log.Error("failed to write success response", "handler", "Get", "operation", "WriteSuccess", "error", err)
	}
}

func (h *PreferencesHandler) Update(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	viewer, err := h.viewer(r)
	if err != nil {
		h.writeError(w, "Update", err)
		return
	}

	var patch model.PreferencesPatch
	if err := httputil.DecodeJSONBody(r, &patch); err != nil {
		h.writeError(w, "Update", err)
		return
	}

	prefs, err := h.store.Update(r.Context(), viewer.UserID, patch.Apply)
	if err != nil {
		h.writeError(w, "Update", err)
		return
	}

	if err := httputil.WriteSuccess(w, prefs); err != nil {
		h.log.Error("failed to write success response", "handler", "Update", "operation", "WriteSuccess", "error", err)
	}
}

// Changes blocks until the caller's preferences change or the wait elapses.
// A timeout answers 204 so the client simply polls again.
func (h *PreferencesHandler) Changes(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	viewer, err := h.viewer(r)
	if err != nil {
		h.writeError(w, "Changes", err)
		return
	}

	wait, err := h.waitDuration(r)
	if err != nil {
		h.writeError(w, "Changes", err)
		return
	}

	changes, cancel := h.store.Subscribe(1)
	defer cancel()

	timer := time.NewTimer(wait)
	defer timer.Stop()

	for {
		select {
		case change := <-changes:
			if change.UserID != viewer.UserID {
				continue
			}
			if err := httputil.WriteSuccess(w, change); err != nil {
				h.log.Error("failed to write success response", "handler", "Changes", "operation", "WriteSuccess", "error", err)
			}
			return
		case <-timer.C:
			httputil.WriteNoContent(w)
			return
		case <-r.Context().Done():
			return
		}
	}
}

func (h *PreferencesHandler) viewer(r *http.Request) (model.Viewer, error) {
	viewer := httputil.ViewerFromRequest(r)
	if err := h.validator.ValidateViewer(&viewer); err != nil {
		return model.Viewer{}, apperrors.Unauthorized("missing or invalid viewer identity")
	}
	return viewer, nil
}

func (h *PreferencesHandler) waitDuration(r *http.Request) (time.Duration, error) {
	raw := r.URL.Query().Get("wait")
	if raw == "" {
		return h.maxWait, nil
	}
	wait, err := time.ParseDuration(raw)
	if err != nil || wait <= 0 {
		return 0, apperrors.InvalidInput("invalid wait parameter: " + raw)
	}
	return min(wait, h.maxWait), nil
}

func (h *PreferencesHandler) writeError(w http.ResponseWriter, handler string, err error) {
	if writeErr := httputil.WriteError(w, err); writeErr != nil {
		h.log.Error("failed to write error response", "handler", handler, "operation", "WriteError", "error", writeErr)
	}
}

func (h *PreferencesHandler) RegisterRoutes(router *httprouter.Router) {
	router.GET("/api/v1/preferences", h.Get)
	router.PUT("/api/v1/preferences", h.Update)
	router.GET("/api/v1/preferences/changes", h.Changes)
}
