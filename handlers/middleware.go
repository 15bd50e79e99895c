package handlers

import (
	"net/http"
	"strings"

	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"
)

const authUserKey = "authUser"

// AuthUser returns the authenticated panel user stored by RequireAuth,
// or nil on public routes.
func AuthUser(e *core.RequestEvent) *core.Record {
	if user, ok := e.Get(authUserKey).(*core.Record); ok {
		return user
	}
	return nil
}

// RequireAuth resolves the Authorization header into an active panel user
// and stores it on the event. Requests without a valid token of an active
// user get a 401.
func RequireAuth(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		token := strings.TrimSpace(strings.TrimPrefix(e.Request.Header.Get("Authorization"), "Bearer"))
		if token == "" {
			return respondError(e, http.StatusUnauthorized, "Authorization required")
		}

		user, err := app.FindAuthRecordByToken(token, core.TokenTypeAuth)
		if err != nil {
			return respondError(e, http.StatusUnauthorized, "Invalid or expired token")
		}
		if !user.GetBool("is_active") {
			return respondError(e, http.StatusUnauthorized, "Account is disabled")
		}

		e.Set(authUserKey, user)
		return e.Next()
	}
}

// RequireAdminRole rejects non-admin users. Must run after RequireAuth.
func RequireAdminRole() func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		user := AuthUser(e)
		if user == nil || user.GetString("role") != "admin" {
			return respondError(e, http.StatusForbidden, "Admin role required")
		}
		return e.Next()
	}
}
