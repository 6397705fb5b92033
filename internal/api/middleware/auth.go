package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/alialif/JoinUp-Event-Management/internal/api/problem"
	"github.com/alialif/JoinUp-Event-Management/internal/auth"
	"github.com/alialif/JoinUp-Event-Management/internal/authz"
)

type contextKeyAuth string

const claimsKey contextKeyAuth = "claims"

// bearerToken extracts the token from an Authorization header. Only the
// Bearer scheme is accepted, case-insensitively.
func bearerToken(header string) (string, bool) {
	parts := strings.Fields(header)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
		return "", false
	}
	return parts[1], true
}

// JWTAuth validates Bearer tokens from the Authorization header and
// stores the claims on the request context.
func JWTAuth(tokens *auth.TokenManager, env string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if tokens == nil {
				problem.Write(w, r, http.StatusUnauthorized, problem.TypeUnauthorized, "Unauthorized", problem.ErrUnauthorized, env)
				return
			}

			raw, ok := bearerToken(r.Header.Get("Authorization"))
			if !ok {
				problem.Write(w, r, http.StatusUnauthorized, problem.TypeUnauthorized, "Missing bearer token", problem.ErrUnauthorized, env)
				return
			}

			claims, err := tokens.Parse(raw)
			if err != nil {
				problem.Write(w, r, http.StatusUnauthorized, problem.TypeUnauthorized, "Invalid token", problem.ErrUnauthorized, env)
				return
			}

			ctx := contextWithClaims(r.Context(), claims)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// RequireOperation gates a handler behind the access policy table for
// the named operation. It must run after JWTAuth.
func RequireOperation(operation, env string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			claims := Claims(r)
			if claims == nil {
				problem.Write(w, r, http.StatusUnauthorized, problem.TypeUnauthorized, "Unauthorized", problem.ErrUnauthorized, env)
				return
			}
			if !authz.Allowed(claims.Role, operation) {
				problem.Write(w, r, http.StatusForbidden, problem.TypeForbidden, "Forbidden", problem.ErrForbidden, env)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

func contextWithClaims(ctx context.Context, claims *auth.MemberClaims) context.Context {
	return context.WithValue(ctx, claimsKey, claims)
}

// Claims returns the authenticated claims from the request context, or
// nil for unauthenticated requests.
func Claims(r *http.Request) *auth.MemberClaims {
	if r == nil {
		return nil
	}
	if claims, ok := r.Context().Value(claimsKey).(*auth.MemberClaims); ok {
		return claims
	}
	return nil
}

// ActorID returns the authenticated member id, or empty.
func ActorID(r *http.Request) string {
	if claims := Claims(r); claims != nil {
		return claims.MemberID()
	}
	return ""
}
