package client

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"spacebook/pkg/model"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) *BookingAPIClient {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)
	return NewBookingAPIClient(server.URL, 2*time.Second)
}

func TestListBookings(t *testing.T) {
	tests := []struct {
		name       string
		userID     string
		body       string
		wantUserID string
		wantIDs    []string
	}{
		{
			name:       "bare array for a user",
			userID:     "u-1",
			body:       `[{"id":"b1","status":"pending","totalPrice":"150.00"},{"id":"b2","status":"approved","totalPrice":20}]`,
			wantUserID: "u-1",
			wantIDs:    []string{"b1", "b2"},
		},
		{
			name:    "data wrapper without user",
			body:    `{"data":[{"id":"b3","status":"rejected"}]}`,
			wantIDs: []string{"b3"},
		},
		{
			name:    "null body",
			body:    `null`,
			wantIDs: []string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
				if r.Method != http.MethodGet || r.URL.Path != "/bookings" {
					t.Errorf("unexpected request %s %s", r.Method, r.URL.Path)
				}
				if got := r.URL.Query().Get("userId"); got != tt.wantUserID {
					t.Errorf("userId = %q, want %q", got, tt.wantUserID)
				}
				if tt.wantUserID == "" && r.URL.Query().Has("userId") {
					t.Errorf("userId should be omitted")
				}
				_, _ = w.Write([]byte(tt.body))
			})

			got, err := c.ListBookings(context.Background(), tt.userID)
			if err != nil {
				t.Fatalf("ListBookings() error = %v", err)
			}
			if len(got) != len(tt.wantIDs) {
				t.Fatalf("got %d bookings, want %d", len(got), len(tt.wantIDs))
			}
			for i, b := range got {
				if b.ID != tt.wantIDs[i] {
					t.Errorf("booking[%d].ID = %s, want %s", i, b.ID, tt.wantIDs[i])
				}
			}
		})
	}
}

func TestListBookings_DecodesPrices(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`[{"id":"b1","totalPrice":"150.50"},{"id":"b2","totalPrice":20}]`))
	})

	got, err := c.ListBookings(context.Background(), "")
	if err != nil {
		t.Fatalf("ListBookings() error = %v", err)
	}
	if got[0].TotalPrice != "150.50" || got[1].TotalPrice != "20" {
		t.Errorf("prices = %q, %q", got[0].TotalPrice, got[1].TotalPrice)
	}
}

func TestListBookings_APIError(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte(`{"message":"database offline"}`))
	})

	_, err := c.ListBookings(context.Background(), "u-1")
	var apiErr *APIError
	if !errors.As(err, &apiErr) {
		t.Fatalf("expected *APIError, got %v", err)
	}
	if apiErr.StatusCode != http.StatusInternalServerError || apiErr.Message != "database offline" {
		t.Errorf("unexpected APIError %+v", apiErr)
	}
}

func TestCompetingBookings(t *testing.T) {
	slots := []model.TimeSlot{{Date: "2026-03-01", StartTime: "10:00", EndTime: "12:00"}}

	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/bookings/competing" {
			t.Errorf("path = %s", r.URL.Path)
		}
		if got := r.URL.Query().Get("placeId"); got != "p-9" {
			t.Errorf("placeId = %s", got)
		}
		var gotSlots []model.TimeSlot
		if err := json.Unmarshal([]byte(r.URL.Query().Get("timeSlots")), &gotSlots); err != nil {
			t.Errorf("timeSlots not JSON: %v", err)
		}
		if len(gotSlots) != 1 || gotSlots[0] != slots[0] {
			t.Errorf("timeSlots = %+v", gotSlots)
		}
		_, _ = w.Write([]byte(`[{"id":"other","status":"pending"}]`))
	})

	got, err := c.CompetingBookings(context.Background(), "p-9", slots)
	if err != nil {
		t.Fatalf("CompetingBookings() error = %v", err)
	}
	if len(got) != 1 || got[0].ID != "other" {
		t.Errorf("unexpected result %+v", got)
	}
}

func TestUpdateStatus(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPut || r.URL.Path != "/bookings/b-7" {
			t.Errorf("unexpected request %s %s", r.Method, r.URL.Path)
		}
		if got := r.Header.Get("Authorization"); got != "Bearer tok" {
			t.Errorf("Authorization = %q", got)
		}
		var body model.StatusUpdate
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			t.Errorf("bad body: %v", err)
		}
		if body.Status != model.StatusApproved {
			t.Errorf("status = %s", body.Status)
		}
		_, _ = w.Write([]byte(`{"id":"b-7","status":"approved"}`))
	})

	ctx := WithBearerToken(context.Background(), "tok")
	got, err := c.UpdateStatus(ctx, "b-7", model.StatusApproved)
	if err != nil {
		t.Fatalf("UpdateStatus() error = %v", err)
	}
	if got.Status != model.StatusApproved {
		t.Errorf("status = %s", got.Status)
	}
}

func TestUpdateStatus_NotFound(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		_, _ = w.Write([]byte(`{"error":"Booking not found"}`))
	})

	_, err := c.UpdateStatus(context.Background(), "missing", model.StatusRejected)
	var apiErr *APIError
	if !errors.As(err, &apiErr) || apiErr.StatusCode != http.StatusNotFound {
		t.Fatalf("expected 404 APIError, got %v", err)
	}
	if apiErr.Message != "Booking not found" {
		t.Errorf("message = %q", apiErr.Message)
	}
}

func TestCleanupExpired(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost || r.URL.Path != "/bookings/cleanup-expired" {
			t.Errorf("unexpected request %s %s", r.Method, r.URL.Path)
		}
		_, _ = w.Write([]byte(`{"success":true,"deletedCount":4,"message":"Deleted 4 expired bookings"}`))
	})

	got, err := c.CleanupExpired(context.Background())
	if err != nil {
		t.Fatalf("CleanupExpired() error = %v", err)
	}
	if !got.Success || got.DeletedCount != 4 {
		t.Errorf("unexpected result %+v", got)
	}
}

func TestRequestHonoursContext(t *testing.T) {
	release := make(chan struct{})
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-release:
		case <-r.Context().Done():
		}
	})
	defer close(release)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if _, err := c.ListBookings(ctx, ""); !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
}

func TestWithBearerToken_Empty(t *testing.T) {
	ctx := WithBearerToken(context.Background(), "")
	if BearerToken(ctx) != "" {
		t.Error("empty token should not be stored")
	}
}
