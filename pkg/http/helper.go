package http

import (
	"encoding/json"
	"net/http"
	apperrors "spacebook/pkg/errors"
	"strconv"
	"strings"
)

// OptionalQuery returns nil when the parameter is absent, so callers can tell
// "not sent" apart from "sent empty".
func OptionalQuery(r *http.Request, key string) *string {
	query := r.URL.Query()
	if !query.Has(key) {
		return nil
	}
	v := query.Get(key)
	return &v
}

func OptionalQueryInt(r *http.Request, key string) (*int, error) {
	s := OptionalQuery(r, key)
	if s == nil || strings.TrimSpace(*s) == "" {
		return nil, nil
	}
	v, err := strconv.Atoi(strings.TrimSpace(*s))
	if err != nil {
		return nil, apperrors.InvalidInput("invalid " + key + " parameter: " + *s)
	}
	return &v, nil
}

func DecodeJSONBody(r *http.Request, target any) error {
	decoder := json.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(target); err != nil {
		return apperrors.InvalidInput("invalid JSON body: " + err.Error())
	}
	return nil
}
