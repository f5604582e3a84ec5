package middleware

import (
	"net/http"

	"github.com/itsatony/airsense/internal/auth"
	"github.com/itsatony/airsense/internal/errors"
	nuts "github.com/vaudience/go-nuts"
)

type AuthMiddleware struct {
	verifier auth.Verifier
}

func NewAuthMiddleware(verifier auth.Verifier) *AuthMiddleware {
	return &AuthMiddleware{verifier: verifier}
}

// Authenticate validates the token and adds the claims to the context.
// Rejected requests get a bare 401.
func (a *AuthMiddleware) Authenticate(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		claims, err := a.verifier.Verify(r)
		if err != nil {
			nuts.L.Debugf("[AuthMiddleware] Rejected %s %s: %v", r.Method, r.URL.Path, err)
			w.WriteHeader(http.StatusUnauthorized)
			return
		}

		next.ServeHTTP(w, r.WithContext(auth.WithClaims(r.Context(), claims)))
	})
}

// RequireDeviceRight ensures the caller is a device holding right
func (a *AuthMiddleware) RequireDeviceRight(right auth.Right) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			claims, ok := auth.FromContext(r.Context())
			if !ok {
				w.WriteHeader(http.StatusUnauthorized)
				return
			}

			if claims.DeviceID == "" || !auth.IsEntitled(claims.Rights, right) {
				handleError(w, errors.NewAuthorizationError("insufficient permissions", nil).
					WithRequestID(nuts.NID("req", 12)))
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
