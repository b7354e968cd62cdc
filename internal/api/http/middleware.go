package http

import (
	"context"
	"net/http"
	"strings"
	"time"

	"kreol-backend/internal/config"
	"kreol-backend/internal/domain"
	"kreol-backend/internal/logger"
	"kreol-backend/internal/security"

	"github.com/gorilla/mux"
)

type contextKey string

const claimsKey contextKey = "claims"

// ClaimsFromContext returns the authenticated user claims, if any.
func ClaimsFromContext(ctx context.Context) (*security.UserClaims, bool) {
	claims, ok := ctx.Value(claimsKey).(*security.UserClaims)
	return claims, ok
}

// AuthMiddleware enforces the per-route security level declared in the
// endpoint security config. Route names are the lookup key.
func AuthMiddleware(tokens security.TokenManager) mux.MiddlewareFunc {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			route := mux.CurrentRoute(r)
			routeName := ""
			if route != nil {
				routeName = route.GetName()
			}
			level := config.GetSecurityLevel(routeName)

			if level == config.SecurityPublic {
				// A valid token still attaches claims so public endpoints
				// can recognize logged-in callers.
				if claims, err := bearerClaims(r, tokens); err == nil {
					r = r.WithContext(context.WithValue(r.Context(), claimsKey, claims))
				}
				next.ServeHTTP(w, r)
				return
			}

			claims, err := bearerClaims(r, tokens)
			if err != nil {
				writeJSON(w, http.StatusUnauthorized, errorResponse{Error: "authentication required"})
				return
			}

			switch level {
			case config.SecurityRefresh:
				if claims.Type != security.TokenTypeRefresh {
					writeJSON(w, http.StatusUnauthorized, errorResponse{Error: "refresh token required"})
					return
				}
			case config.SecurityAccess:
				if claims.Type != security.TokenTypeAccess {
					writeJSON(w, http.StatusUnauthorized, errorResponse{Error: "access token required"})
					return
				}
			case config.SecurityStaff:
				if claims.Type != security.TokenTypeAccess {
					writeJSON(w, http.StatusUnauthorized, errorResponse{Error: "access token required"})
					return
				}
				role := domain.UserRole(claims.Role)
				if role != domain.RoleAdmin && role != domain.RoleManager {
					writeJSON(w, http.StatusForbidden, errorResponse{Error: "insufficient permissions"})
					return
				}
			}

			next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), claimsKey, claims)))
		})
	}
}

func bearerClaims(r *http.Request, tokens security.TokenManager) (*security.UserClaims, error) {
	header := r.Header.Get("Authorization")
	if !strings.HasPrefix(header, "Bearer ") {
		return nil, security.ErrInvalidToken
	}
	return tokens.ValidateToken(strings.TrimPrefix(header, "Bearer "))
}

// LoggingMiddleware records each request with its duration and status.
func LoggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rec, r)
		logger.Info("Request handled",
			"method", r.Method,
			"path", r.URL.Path,
			"status", rec.status,
			"duration_ms", time.Since(start).Milliseconds())
	})
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(status int) {
	r.status = status
	r.ResponseWriter.WriteHeader(status)
}
