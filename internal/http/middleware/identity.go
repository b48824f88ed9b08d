package middleware

import (
	"net/http"

	"holocron/internal/apperror"
	"holocron/internal/identity"
	"holocron/internal/logging"
)

// Identity resolves the calling user and stores the id in the request context.
// Requests whose identity cannot be resolved are answered with 401.
func Identity(resolver identity.Resolver) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			userID, err := resolver.Resolve(r)
			if err != nil {
				logging.WithContext(r.Context()).Warn().Err(err).Msg("caller identity rejected")
				apperror.Write(w, apperror.NewAuthError("unauthorized", err))
				return
			}
			next.ServeHTTP(w, r.WithContext(identity.WithUserID(r.Context(), userID)))
		})
	}
}
