package http

import (
	"context"
	"net/http"
	"strings"
)

const headerUserID = "X-User-ID"

type ctxKey int

const userIDKey ctxKey = iota

// UserIDMiddleware takes the caller identity from the X-User-ID header.
// Authentication happens in front of this service.
func UserIDMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		userID := strings.TrimSpace(r.Header.Get(headerUserID))
		if userID == "" {
			respondError(w, http.StatusUnauthorized, "unauthorized", "missing "+headerUserID+" header")
			return
		}

		ctx := context.WithValue(r.Context(), userIDKey, userID)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func getUserID(ctx context.Context) string {
	userID, _ := ctx.Value(userIDKey).(string)
	return userID
}
