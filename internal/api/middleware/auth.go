// Package middleware holds the two credential checks in front of voicedesk routes.
package middleware

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strings"

	"github.com/matiasleandrokruk/voicedesk/internal/api/ctxkeys"
	pkgauth "github.com/matiasleandrokruk/voicedesk/pkg/auth"
)

// WebhookSecretHeader carries the shared secret configured on the voice platform.
const WebhookSecretHeader = "X-Vapi-Secret"

// AdminAuth validates the Bearer JWT and injects ctxkeys.Subject.
//
// Flow:
//  1. Read "Authorization: Bearer <token>" header
//  2. Reject if missing or not Bearer scheme → 401
//  3. Parse + validate JWT against secret → 401 on invalid/expired
//  4. Inject ctxkeys.Subject into context
func AdminAuth(secret []byte) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			tokenString := extractBearerToken(r)
			if tokenString == "" {
				writeUnauthorized(w, "missing or invalid Authorization header")
				return
			}

			claims, err := pkgauth.ParseJWT(secret, tokenString)
			if err != nil {
				writeUnauthorized(w, "invalid or expired token")
				return
			}

			ctx := ctxkeys.WithValue(r.Context(), ctxkeys.Subject, claims.Subject)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// WebhookSecret requires X-Vapi-Secret to match the bcrypt hash.
// An empty hash leaves the routes open.
func WebhookSecret(hash string, logger *slog.Logger) func(http.Handler) http.Handler {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return func(next http.Handler) http.Handler {
		if hash == "" {
			return next
		}
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			secret := r.Header.Get(WebhookSecretHeader)
			if secret == "" || !pkgauth.VerifySecret(hash, secret) {
				logger.Warn("webhook secret rejected", "path", r.URL.Path, "remote", r.RemoteAddr)
				writeUnauthorized(w, "missing or invalid "+WebhookSecretHeader+" header")
				return
			}
			ctx := ctxkeys.WithValue(r.Context(), ctxkeys.WebhookAuthenticated, "true")
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// extractBearerToken extracts the token from "Authorization: Bearer <token>".
// Returns empty string if header is missing, wrong scheme, or token is empty.
func extractBearerToken(r *http.Request) string {
	header := r.Header.Get("Authorization")
	if header == "" {
		return ""
	}

	// Must start with "Bearer " (case-sensitive per RFC 7235)
	const prefix = "Bearer "
	if !strings.HasPrefix(header, prefix) {
		return ""
	}

	return strings.TrimSpace(strings.TrimPrefix(header, prefix))
}

// writeUnauthorized writes a 401 in the same shape as handler errors.
func writeUnauthorized(w http.ResponseWriter, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusUnauthorized)
	json.NewEncoder(w).Encode(map[string]string{"error": message, "code": "unauthorized"}) //nolint:errcheck
}
