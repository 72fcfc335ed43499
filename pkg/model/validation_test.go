package model

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/go-playground/validator/v10"
)

func TestViewer_Validation(t *testing.T) {
	v := validator.New()

	tests := []struct {
		name        string
		viewer      Viewer
		expectValid bool
	}{
		{name: "host", viewer: Viewer{UserID: "42", Role: RoleHost}, expectValid: true},
		{name: "agent", viewer: Viewer{UserID: "7", Role: RoleAgent}, expectValid: true},
		{name: "missing user", viewer: Viewer{Role: RoleClient}},
		{name: "missing role", viewer: Viewer{UserID: "42"}},
		{name: "unknown role", viewer: Viewer{UserID: "42", Role: "admin"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := v.Struct(tt.viewer)
			if (err == nil) != tt.expectValid {
				t.Errorf("expected valid=%v, got error %v", tt.expectValid, err)
			}
		})
	}
}

func TestStatusUpdate_Validation(t *testing.T) {
	v := validator.New()

	for _, status := range []Status{StatusPending, StatusSelected, StatusApproved, StatusRejected} {
		if err := v.Struct(StatusUpdate{Status: status}); err != nil {
			t.Errorf("expected %s to be accepted, got %v", status, err)
		}
	}
	for _, status := range []Status{"", "archived", "APPROVED"} {
		if err := v.Struct(StatusUpdate{Status: status}); err == nil {
			t.Errorf("expected %q to be rejected", status)
		}
	}
}

func TestPreferences_NormalizeThenValidate(t *testing.T) {
	v := validator.New()

	prefs := Preferences{Currency: " usd ", Language: "RU"}.Normalize()
	if prefs.Currency != "USD" || prefs.Language != "ru" {
		t.Fatalf("unexpected normalization %+v", prefs)
	}
	if err := v.Struct(prefs); err != nil {
		t.Errorf("expected normalized preferences to be valid, got %v", err)
	}
	if err := v.Struct(Preferences{Currency: "GBP", Language: "en"}); err == nil {
		t.Error("expected unsupported currency to be rejected")
	}
}

func TestPreferencesPatch_Apply(t *testing.T) {
	current := Preferences{Currency: "UZS", Language: "en"}
	lang := "uz"

	next := PreferencesPatch{Language: &lang}.Apply(current)
	if next.Currency != "UZS" || next.Language != "uz" {
		t.Errorf("unexpected result %+v", next)
	}
	if current.Language != "en" {
		t.Error("apply must not modify the current value")
	}
}

func TestStatus_IsAwaitingDecision(t *testing.T) {
	tests := map[Status]bool{
		StatusPending:  true,
		StatusSelected: true,
		StatusApproved: false,
		StatusRejected: false,
		"cancelled":    false,
	}
	for status, want := range tests {
		if got := status.IsAwaitingDecision(); got != want {
			t.Errorf("%s: expected %v, got %v", status, want, got)
		}
	}
}

func TestDecimal_UnmarshalJSON(t *testing.T) {
	tests := []struct {
		input   string
		want    Decimal
		wantF   float64
		parseOK bool
	}{
		{input: `"1250.50"`, want: "1250.50", wantF: 1250.5, parseOK: true},
		{input: `300`, want: "300", wantF: 300, parseOK: true},
		{input: `null`, want: ""},
		{input: `"n/a"`, want: "n/a"},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			var d Decimal
			if err := json.Unmarshal([]byte(tt.input), &d); err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if d != tt.want {
				t.Errorf("expected %q, got %q", tt.want, d)
			}
			f, ok := d.Float()
			if ok != tt.parseOK || f != tt.wantF {
				t.Errorf("expected (%v, %v), got (%v, %v)", tt.wantF, tt.parseOK, f, ok)
			}
		})
	}
}

func TestParseDate(t *testing.T) {
	tests := []struct {
		input  string
		want   time.Time
		wantOK bool
	}{
		{input: "2025-03-01T10:30:00.000Z", want: time.Date(2025, 3, 1, 10, 30, 0, 0, time.UTC), wantOK: true},
		{input: "2025-03-01 10:30:00", want: time.Date(2025, 3, 1, 10, 30, 0, 0, time.UTC), wantOK: true},
		{input: "2025-03-01", want: time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC), wantOK: true},
		{input: "yesterday"},
		{input: ""},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, ok := ParseDate(tt.input)
			if ok != tt.wantOK {
				t.Fatalf("expected ok=%v, got %v", tt.wantOK, ok)
			}
			if ok && !got.Equal(tt.want) {
				t.Errorf("expected %v, got %v", tt.want, got)
			}
		})
	}
}

func TestBooking_NamesWithoutRelations(t *testing.T) {
	b := &Booking{ID: "b1"}
	if b.ClientName() != "" || b.HostName() != "" || b.PlaceTitle() != "" || b.Currency() != "" {
		t.Error("missing relations must yield empty strings")
	}

	b.User = &UserRef{FirstName: "Ann", LastName: "Lee"}
	b.Place = &Place{Owner: &UserRef{Name: "Owner Co"}}
	if b.ClientName() != "Ann Lee" {
		t.Errorf("expected Ann Lee, got %q", b.ClientName())
	}
	if b.HostName() != "Owner Co" {
		t.Errorf("expected Owner Co, got %q", b.HostName())
	}
}
