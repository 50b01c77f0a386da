package middleware

import (
	"net/http"

	"event-ticketing/pkg/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// actorHeader is set by the upstream gateway after it authenticates the
// caller. This service never validates credentials itself.
const actorHeader = "X-User-ID"

// Identity extracts the acting user id from the gateway header and stores
// it in the request context. Requests without a parseable id pass through
// with no actor set; handlers that need one respond 401 themselves.
func Identity(logger *zap.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			raw := r.Header.Get(actorHeader)
			if raw == "" {
				next.ServeHTTP(w, r)
				return
			}

			actorID, err := uuid.Parse(raw)
			if err != nil {
				logger.Warn("Malformed actor header",
					zap.String("value", raw),
					zap.String("path", r.URL.Path),
				)
				next.ServeHTTP(w, r)
				return
			}

			ctx := utils.SetActorContext(r.Context(), actorID)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// RequireActor rejects requests that reached an admin route without an
// actor id. Role checks belong to the gateway; this only guarantees the
// admin-actor reference recorded on bookings is present.
func RequireActor(logger *zap.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if _, ok := utils.GetActorIDFromContext(r.Context()); !ok {
				logger.Warn("Admin route hit without actor id",
					zap.String("path", r.URL.Path),
					zap.String("method", r.Method),
				)
				utils.ResponseUnauthorized(w, "Missing acting user identity")
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
