package middleware

import (
	"context"
	"net/http"

	"github.com/google/uuid"
)

const (
	// OwnerIDHeader carries the authenticated cart owner's ID. The gateway
	// in front of this service authenticates the caller and sets the
	// header; requests arriving without it are unauthenticated.
	OwnerIDHeader = "X-Owner-ID"

	// OwnerIDContextKey is the context key for the owner ID
	OwnerIDContextKey contextKey = "owner_id"
)

// OwnerID extracts the owner identity set by the upstream gateway and puts
// it in the request context. Requests without a well-formed owner ID are
// rejected with 401 before reaching any handler.
func OwnerID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ownerID := r.Header.Get(OwnerIDHeader)
		if ownerID == "" {
			respondUnauthorized(w, r, "Missing owner identity")
			return
		}

		if _, err := uuid.Parse(ownerID); err != nil {
			respondUnauthorized(w, r, "Malformed owner identity")
			return
		}

		ctx := context.WithValue(r.Context(), OwnerIDContextKey, ownerID)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// GetOwnerID retrieves the owner ID from the context. Empty means the
// request never passed through the OwnerID middleware.
func GetOwnerID(ctx context.Context) string {
	if id, ok := ctx.Value(OwnerIDContextKey).(string); ok {
		return id
	}
	return ""
}
