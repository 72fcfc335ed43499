package model

import (
	"strings"
	"time"
)

// Preferences is the display configuration of one user. Values are replaced
// as a whole, never mutated in place.
type Preferences struct {
	Currency string `json:"currency" validate:"required,oneof=UZS USD EUR RUB"`
	Language string `json:"language" validate:"required,oneof=en ru uz"`
}

// Normalize returns p with codes in their canonical case.
func (p Preferences) Normalize() Preferences {
	return Preferences{
		Currency: strings.ToUpper(strings.TrimSpace(p.Currency)),
		Language: strings.ToLower(strings.TrimSpace(p.Language)),
	}
}

// PreferencesChange is the event published whenever a user's preferences are
// replaced. Source identifies the publishing instance.
type PreferencesChange struct {
	UserID      string      `json:"user_id"`
	Previous    Preferences `json:"previous"`
	Preferences Preferences `json:"preferences"`
	Source      string      `json:"source"`
	ChangedAt   time.Time   `json:"changed_at"`
}

// PreferencesPatch is a partial update. Nil fields keep the current value.
type PreferencesPatch struct {
	Currency *string `json:"currency,omitempty"`
	Language *string `json:"language,omitempty"`
}

func (p PreferencesPatch) Apply(current Preferences) Preferences {
	next := current
	if p.Currency != nil {
		next.Currency = *p.Currency
	}
	if p.Language != nil {
		next.Language = *p.Language
	}
	return next
}
