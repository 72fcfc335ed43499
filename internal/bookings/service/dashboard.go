package service

import (
	"context"
	"errors"
	"net/http"
	bookingserrors "spacebook/internal/bookings/errors"
	"spacebook/internal/bookings/listing"
	"spacebook/internal/bookings/repository"
	"spacebook/pkg/client"
	"spacebook/pkg/config"
	apperrors "spacebook/pkg/errors"
	"spacebook/pkg/kafka"
	"spacebook/pkg/locale"
	"spacebook/pkg/model"
	"spacebook/pkg/sanitizer"
	"time"
)

const bookingsAPIName = "Bookings API"

type BookingSource interface {
	ListBookings(ctx context.Context, userID string) ([]*model.Booking, error)
	UpdateStatus(ctx context.Context, bookingID string, status model.Status) (*model.Booking, error)
	CleanupExpired(ctx context.Context) (*model.CleanupResult, error)
}

type CompetingEnricher interface {
	Competing(ctx context.Context, bookings []*model.Booking) (map[string][]*model.Booking, error)
}

type PreferencesReader interface {
	Get(ctx context.Context, userID string) (model.Preferences, error)
}

type EventPublisher interface {
	Publish(ctx context.Context, topic, key, eventType string, payload any) error
}

type DashboardValidator interface {
	ValidateViewer(viewer *model.Viewer) error
	ValidateQuery(query *model.DashboardQuery) error
	ValidateStatusUpdate(update *model.StatusUpdate) error
}

type Topics struct {
	StatusChanged    string
	CleanupCompleted string
}

type DashboardService interface {
	List(ctx context.Context, viewer model.Viewer, query model.DashboardQuery) (*Dashboard, error)
	UpdateStatus(ctx context.Context, viewer model.Viewer, bookingID string, update model.StatusUpdate) (*Dashboard, error)
	CleanupExpired(ctx context.Context, viewer model.Viewer) (*model.CleanupResult, error)
	ResetView(ctx context.Context, viewer model.Viewer) error
}

type dashboardService struct {
	source      BookingSource
	enricher    CompetingEnricher
	viewStates  repository.ViewStateRepository
	preferences PreferencesReader
	publisher   EventPublisher
	validator   DashboardValidator
	topics      Topics
	cfg         *config.Config
}

func NewDashboardService(
	source BookingSource,
	enricher CompetingEnricher,
	viewStates repository.ViewStateRepository,
	preferences PreferencesReader,
	publisher EventPublisher,
	validator DashboardValidator,
	topics Topics,
	cfg *config.Config,
) DashboardService {
	return &dashboardService{
		source:      source,
		enricher:    enricher,
		viewStates:  viewStates,
		preferences: preferences,
		publisher:   publisher,
		validator:   validator,
		topics:      topics,
		cfg:         cfg,
	}
}

// List derives the viewer's dashboard. The query is merged into the stored
// view state first, so a bare request shows what the viewer saw last time.
func (s *dashboardService) List(ctx context.Context, viewer model.Viewer, query model.DashboardQuery) (*Dashboard, error) {
	if err := s.validateViewer(&viewer); err != nil {
		return nil, err
	}
	if err := s.validator.ValidateQuery(&query); err != nil {
		return nil, validationError("Invalid dashboard query", err)
	}

	stored, persisted := s.loadViewState(ctx, viewer)
	state := listing.Apply(stored, listing.Update{
		StatusFilter: query.StatusFilter,
		SearchTerm:   query.SearchTerm,
		SortBy:       query.SortBy,
		SortOrder:    query.SortOrder,
		Page:         query.Page,
	})

	itemsPerPage := s.cfg.ItemsPerPage
	if query.ItemsPerPage != nil {
		itemsPerPage = s.cfg.NormalizeItemsPerPage(*query.ItemsPerPage)
	}

	dashboard, err := s.build(ctx, viewer, state, itemsPerPage)
	if err != nil {
		return nil, err
	}

	if !persisted || !sameSelections(stored, state) {
		s.saveViewState(ctx, state)
	}
	return dashboard, nil
}

func (s *dashboardService) UpdateStatus(ctx context.Context, viewer model.Viewer, bookingID string, update model.StatusUpdate) (*Dashboard, error) {
	if err := s.validateViewer(&viewer); err != nil {
		return nil, err
	}
	if viewer.Role != model.RoleHost && viewer.Role != model.RoleAgent {
		return nil, apperrors.Forbidden(bookingserrors.ErrStatusChangeForbidden.Error())
	}
	if bookingID == "" {
		return nil, apperrors.InvalidInput("Booking ID cannot be empty")
	}
	if err := s.validator.ValidateStatusUpdate(&update); err != nil {
		return nil, validationError("Invalid status update", err)
	}

	updated, err := s.source.UpdateStatus(ctx, bookingID, update.Status)
	if err != nil {
		s.cfg.Log.Error("Failed to update booking status",
			"booking_id", bookingID,
			"status", update.Status,
			"user_id", viewer.UserID,
			"error", err,
		)
		return nil, upstreamError(err, bookingID)
	}

	event := model.BookingStatusChanged{
		BookingID: bookingID,
		Status:    update.Status,
		ChangedBy: viewer,
		ChangedAt: time.Now().UTC(),
	}
	if updated != nil {
		event.PlaceID = updated.PlaceID()
	}
	s.publish(ctx, s.topics.StatusChanged, bookingID, kafka.EventBookingStatusChanged, event)

	s.cfg.Log.Info("Booking status updated",
		"booking_id", bookingID,
		"status", update.Status,
		"user_id", viewer.UserID,
		"role", viewer.Role,
	)

	return s.List(ctx, viewer, model.DashboardQuery{})
}

func (s *dashboardService) CleanupExpired(ctx context.Context, viewer model.Viewer) (*model.CleanupResult, error) {
	if err := s.validateViewer(&viewer); err != nil {
		return nil, err
	}
	if viewer.Role != model.RoleAgent {
		return nil, apperrors.Forbidden(bookingserrors.ErrCleanupForbidden.Error())
	}

	result, err := s.source.CleanupExpired(ctx)
	if err != nil {
		s.cfg.Log.Error("Failed to clean up expired bookings",
			"user_id", viewer.UserID,
			"error", err,
		)
		return nil, upstreamError(err, "")
	}

	s.publish(ctx, s.topics.CleanupCompleted, viewer.UserID, kafka.EventBookingCleanupFinished, model.BookingCleanupCompleted{
		DeletedCount: result.DeletedCount,
		Message:      result.Message,
		RequestedBy:  viewer,
		CompletedAt:  time.Now().UTC(),
	})

	s.cfg.Log.Info("Expired bookings cleaned up",
		"deleted_count", result.DeletedCount,
		"user_id", viewer.UserID,
	)
	return result, nil
}

func (s *dashboardService) ResetView(ctx context.Context, viewer model.Viewer) error {
	if err := s.validateViewer(&viewer); err != nil {
		return err
	}
	if err := s.viewStates.Delete(ctx, viewer); err != nil {
		return apperrors.Internal("Failed to reset dashboard view", err)
	}
	return nil
}

func (s *dashboardService) build(ctx context.Context, viewer model.Viewer, state model.ViewState, itemsPerPage int) (*Dashboard, error) {
	prefs := s.loadPreferences(ctx, viewer)

	var warning string
	bookings, err := s.fetchBookings(ctx, viewer)
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return nil, contextError(ctxErr)
		}
		s.cfg.Log.Error("Failed to load bookings",
			"user_id", viewer.UserID,
			"role", viewer.Role,
			"error", err,
		)
		bookings = nil
		if viewer.Role == model.RoleHost {
			warning = bookingserrors.ErrBookingsUnavailable.Error()
		}
	}

	var competing map[string][]*model.Booking
	if viewer.Role != model.RoleClient && len(bookings) > 0 {
		competing, err = s.enricher.Competing(ctx, bookings)
		if err != nil {
			return nil, contextError(err)
		}
	}

	result := listing.Run(bookings, viewer.Role, listing.QueryFromState(state, itemsPerPage))

	return &Dashboard{
		Stats:       result.Stats,
		Page:        s.rows(result.Page, viewer.Role, prefs, competing),
		View:        state,
		Preferences: prefs,
		Warning:     warning,
	}, nil
}

func (s *dashboardService) fetchBookings(ctx context.Context, viewer model.Viewer) ([]*model.Booking, error) {
	userID := viewer.UserID
	if viewer.Role == model.RoleAgent {
		userID = ""
	}
	return s.source.ListBookings(ctx, userID)
}

func (s *dashboardService) rows(page listing.Page[*model.Booking], role model.Role, prefs model.Preferences, competing map[string][]*model.Booking) listing.Page[Row] {
	rows := make([]Row, 0, len(page.Items))
	for _, b := range page.Items {
		rows = append(rows, newRow(b, role, prefs, competing[b.ID]))
	}
	return listing.Page[Row]{
		Items:        rows,
		CurrentPage:  page.CurrentPage,
		ItemsPerPage: page.ItemsPerPage,
		TotalItems:   page.TotalItems,
		TotalPages:   page.TotalPages,
		ShowingFrom:  page.ShowingFrom,
		ShowingTo:    page.ShowingTo,
	}
}

func newRow(b *model.Booking, role model.Role, prefs model.Preferences, competing []*model.Booking) Row {
	row := Row{
		Booking:           b,
		CompetingBookings: competing,
	}

	if amount, ok := b.TotalPrice.Float(); ok {
		code := b.Currency()
		if code == "" {
			code = prefs.Currency
		}
		row.DisplayPrice = locale.FormatPrice(amount, code, prefs.Language)
	}

	counterpart := b.User
	if role == model.RoleClient && b.Place != nil {
		counterpart = b.Place.Owner
	}
	if counterpart != nil {
		row.CounterpartName = sanitizer.NormalizeName(counterpart.DisplayName())
		row.CounterpartPhone = sanitizer.NormalizePhone(counterpart.PhoneNumber)
	}
	return row
}

// loadViewState falls back to defaults when nothing is stored or the store
// fails; a broken view-state store must not take the dashboard down.
func (s *dashboardService) loadViewState(ctx context.Context, viewer model.Viewer) (model.ViewState, bool) {
	state, err := s.viewStates.Find(ctx, viewer)
	if err != nil {
		if !errors.Is(err, bookingserrors.ErrViewStateNotFound) {
			s.cfg.Log.Warn("Failed to load view state, using defaults",
				"user_id", viewer.UserID,
				"role", viewer.Role,
				"error", err,
			)
		}
		return model.DefaultViewState(viewer), false
	}
	return *state, true
}

func (s *dashboardService) saveViewState(ctx context.Context, state model.ViewState) {
	state.UpdatedAt = time.Now().UTC()
	if err := s.viewStates.Save(ctx, &state); err != nil {
		s.cfg.Log.Warn("Failed to save view state",
			"user_id", state.UserID,
			"role", state.Role,
			"error", err,
		)
	}
}

func (s *dashboardService) loadPreferences(ctx context.Context, viewer model.Viewer) model.Preferences {
	prefs, err := s.preferences.Get(ctx, viewer.UserID)
	if err != nil {
		s.cfg.Log.Warn("Failed to load preferences, using defaults",
			"user_id", viewer.UserID,
			"error", err,
		)
		return model.Preferences{
			Currency: s.cfg.DefaultCurrency,
			Language: s.cfg.DefaultLanguage,
		}
	}
	return prefs
}

func (s *dashboardService) publish(ctx context.Context, topic, key, eventType string, payload any) {
	if err := s.publisher.Publish(ctx, topic, key, eventType, payload); err != nil {
		s.cfg.Log.Warn("Failed to publish event",
			"topic", topic,
			"event_type", eventType,
			"key", key,
			"error", err,
		)
	}
}

func (s *dashboardService) validateViewer(viewer *model.Viewer) error {
	if err := s.validator.ValidateViewer(viewer); err != nil {
		return apperrors.Unauthorized(bookingserrors.ErrInvalidViewer.Error())
	}
	return nil
}

func sameSelections(a, b model.ViewState) bool {
	return a.StatusFilter == b.StatusFilter &&
		a.SearchTerm == b.SearchTerm &&
		a.SortBy == b.SortBy &&
		a.SortOrder == b.SortOrder &&
		a.CurrentPage == b.CurrentPage
}

func validationError(message string, err error) error {
	var detailed interface{ Details() map[string]any }
	if errors.As(err, &detailed) {
		return apperrors.Validation(message, detailed.Details())
	}
	return apperrors.Validation(message, map[string]any{"error": err.Error()})
}

func upstreamError(err error, bookingID string) error {
	var apiErr *client.APIError
	if errors.As(err, &apiErr) {
		switch apiErr.StatusCode {
		case http.StatusNotFound:
			if bookingID != "" {
				return apperrors.NotFoundWithID("Booking", bookingID)
			}
		case http.StatusBadRequest, http.StatusUnprocessableEntity:
			return apperrors.InvalidInput(apiErr.Message)
		case http.StatusUnauthorized:
			return apperrors.Unauthorized(apiErr.Message)
		case http.StatusForbidden:
			return apperrors.Forbidden(apiErr.Message)
		case http.StatusConflict:
			return apperrors.Conflict(apiErr.Message)
		case http.StatusServiceUnavailable:
			return apperrors.Unavailable(bookingsAPIName)
		}
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return apperrors.Timeout(bookingsAPIName + " did not respond in time")
	}
	return apperrors.Upstream(bookingsAPIName, err)
}

func contextError(err error) error {
	if errors.Is(err, context.DeadlineExceeded) {
		return apperrors.Timeout("Dashboard request timed out")
	}
	return apperrors.Internal("Dashboard request cancelled", err)
}
