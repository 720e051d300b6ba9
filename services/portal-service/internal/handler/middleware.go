package handler

import (
	"context"
	"net"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog"

	"github.com/vasapolrittideah/careers-portal/services/portal-service/internal/model"
	"github.com/vasapolrittideah/careers-portal/services/portal-service/internal/usecase"
	authtypes "github.com/vasapolrittideah/careers-portal/services/portal-service/pkg/types"
)

type contextKey struct{}

var userClaimsKey = contextKey{}

// Authenticator resolves a bearer token to the claims of a live session.
type Authenticator interface {
	Authenticate(ctx context.Context, accessToken string) (*authtypes.JWTClaims, error)
}

// RateLimiter reports whether key may make another attempt.
type RateLimiter interface {
	Allow(ctx context.Context, key string) bool
}

// RequestLogger logs each HTTP request with structured fields.
func RequestLogger(logger *zerolog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)

			next.ServeHTTP(ww, r)

			logger.Info().
				Str("method", r.Method).
				Str("path", r.URL.Path).
				Int("status", ww.Status()).
				Int("bytes", ww.BytesWritten()).
				Dur("duration", time.Since(start)).
				Str("request_id", middleware.GetReqID(r.Context())).
				Msg("http request")
		})
	}
}

// BearerAuth validates the Authorization header and stores the claims in the
// request context. Failures answer 401 with a redirect to the sign-in page.
func BearerAuth(authenticator Authenticator, logger *zerolog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token, ok := bearerToken(r)
			if !ok {
				writeError(w, logger, usecase.ErrAuthenticationRequired)
				return
			}

			claims, err := authenticator.Authenticate(r.Context(), token)
			if err != nil {
				writeError(w, logger, err)
				return
			}

			ctx := context.WithValue(r.Context(), userClaimsKey, claims)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// RequireAdmin lets through only sessions whose role was resolved as admin.
func RequireAdmin(logger *zerolog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			claims, ok := claimsFromContext(r.Context())
			if !ok {
				writeError(w, logger, usecase.ErrAuthenticationRequired)
				return
			}
			if !model.Role(claims.Role).IsAdmin() {
				writeError(w, logger, usecase.ErrForbidden)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

// RateLimit throttles requests per client IP. A nil limiter lets everything through.
func RateLimit(limiter RateLimiter, logger *zerolog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if limiter != nil && !limiter.Allow(r.Context(), clientIP(r)) {
				writeError(w, logger, errTooManyTries)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

func claimsFromContext(ctx context.Context) (*authtypes.JWTClaims, bool) {
	claims, ok := ctx.Value(userClaimsKey).(*authtypes.JWTClaims)
	return claims, ok && claims != nil
}

func bearerToken(r *http.Request) (string, bool) {
	header := r.Header.Get("Authorization")
	if header == "" {
		return "", false
	}

	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") || parts[1] == "" {
		return "", false
	}

	return parts[1], true
}

// clientIP is the peer address, rewritten by middleware.RealIP only when the
// router trusts its proxy.
func clientIP(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}

func clientInfo(r *http.Request) usecase.ClientInfo {
	return usecase.ClientInfo{
		IPAddress: clientIP(r),
		UserAgent: r.UserAgent(),
	}
}
