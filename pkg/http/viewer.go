package http

import (
	"net/http"
	"spacebook/pkg/middleware"
	"spacebook/pkg/model"
	"strings"
)

// ViewerFromRequest reads the caller identity forwarded by the gateway. The
// result is unvalidated.
func ViewerFromRequest(r *http.Request) model.Viewer {
	return model.Viewer{
		UserID: strings.TrimSpace(r.Header.Get(middleware.HeaderUserID)),
		Role:   model.Role(strings.ToLower(strings.TrimSpace(r.Header.Get(middleware.HeaderUserRole)))),
	}
}

// BearerToken returns the token of an "Authorization: Bearer" header, or "".
func BearerToken(r *http.Request) string {
	auth := r.Header.Get("Authorization")
	scheme, token, ok := strings.Cut(auth, " ")
	if !ok || !strings.EqualFold(scheme, "Bearer") {
		return ""
	}
	return strings.TrimSpace(token)
}
