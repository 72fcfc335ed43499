package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"spacebook/pkg/model"
	"time"
)

// APIError is a non-2xx answer from the bookings API.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("bookings API returned %d: %s", e.StatusCode, e.Message)
}

// BookingAPIClient talks to the external bookings API. All calls honour ctx
// and forward the bearer token stored with WithBearerToken.
type BookingAPIClient struct {
	httpClient *HttpClient
}

func NewBookingAPIClient(baseURL string, timeout time.Duration) *BookingAPIClient {
	return &BookingAPIClient{
		httpClient: NewHttpClient(baseURL, timeout),
	}
}

// ListBookings returns every booking visible to userID. An empty userID
// lists all bookings, which is what agents see.
func (c *BookingAPIClient) ListBookings(ctx context.Context, userID string) ([]*model.Booking, error) {
	query := url.Values{}
	if userID != "" {
		query.Set("userId", userID)
	}

	resp, err := c.httpClient.GET(ctx, "/bookings", query)
	if err != nil {
		return nil, err
	}
	return decodeBookings(resp)
}

// CompetingBookings returns bookings for the same place whose time slots
// collide with slots.
func (c *BookingAPIClient) CompetingBookings(ctx context.Context, placeID string, slots []model.TimeSlot) ([]*model.Booking, error) {
	if slots == nil {
		slots = []model.TimeSlot{}
	}
	encoded, err := json.Marshal(slots)
	if err != nil {
		return nil, fmt.Errorf("failed to encode time slots: %w", err)
	}

	query := url.Values{}
	query.Set("placeId", placeID)
	query.Set("timeSlots", string(encoded))

	resp, err := c.httpClient.GET(ctx, "/bookings/competing", query)
	if err != nil {
		return nil, err
	}
	return decodeBookings(resp)
}

func (c *BookingAPIClient) UpdateStatus(ctx context.Context, bookingID string, status model.Status) (*model.Booking, error) {
	resp, err := c.httpClient.PUT(ctx, "/bookings/"+url.PathEscape(bookingID), model.StatusUpdate{Status: status})
	if err != nil {
		return nil, err
	}
	if !resp.IsSuccess() {
		return nil, &APIError{StatusCode: resp.StatusCode, Message: GetErrorMessage(resp)}
	}

	var booking model.Booking
	if err := decodeData(resp.Body, &booking); err != nil {
		return nil, fmt.Errorf("could not decode booking: %w", err)
	}
	return &booking, nil
}

func (c *BookingAPIClient) CleanupExpired(ctx context.Context) (*model.CleanupResult, error) {
	resp, err := c.httpClient.POST(ctx, "/bookings/cleanup-expired", struct{}{})
	if err != nil {
		return nil, err
	}
	if !resp.IsSuccess() {
		return nil, &APIError{StatusCode: resp.StatusCode, Message: GetErrorMessage(resp)}
	}

	var result model.CleanupResult
	if err := decodeData(resp.Body, &result); err != nil {
		return nil, fmt.Errorf("could not decode cleanup result: %w", err)
	}
	return &result, nil
}

func decodeBookings(resp *Response) ([]*model.Booking, error) {
	if !resp.IsSuccess() {
		return nil, &APIError{StatusCode: resp.StatusCode, Message: GetErrorMessage(resp)}
	}

	var bookings []*model.Booking
	if err := decodeData(resp.Body, &bookings); err != nil {
		return nil, fmt.Errorf("could not decode bookings: %w", err)
	}
	if bookings == nil {
		bookings = []*model.Booking{}
	}
	return bookings, nil
}

// decodeData accepts either a bare payload or one wrapped as {"data": ...}.
func decodeData(body []byte, target any) error {
	trimmed := bytes.TrimSpace(body)
	if len(trimmed) > 0 && trimmed[0] == '{' {
		var wrapper struct {
			Data json.RawMessage `json:"data"`
		}
		if err := json.Unmarshal(trimmed, &wrapper); err == nil && len(wrapper.Data) > 0 {
			return json.Unmarshal(wrapper.Data, target)
		}
	}
	return json.Unmarshal(trimmed, target)
}
