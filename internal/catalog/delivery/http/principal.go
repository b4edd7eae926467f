package http

import (
	"context"
	"net/http"
	"strings"

	"github.com/golang-jwt/jwt/v5"

	"github.com/tair/cocktail-catalog/pkg/logger"
)

type contextKey string

const (
	UserIDKey contextKey = "user_id"
	RolesKey  contextKey = "roles"
)

// Roles understood by the catalog
const (
	RoleUser  = "USER"
	RoleAdmin = "ADMIN"
)

// Principal is the caller identity established upstream
type Principal struct {
	UserID string
	Roles  []string
}

// HasRole reports whether the principal holds any of the roles
func (p Principal) HasRole(roles ...string) bool {
	for _, held := range p.Roles {
		for _, want := range roles {
			if held == want {
				return true
			}
		}
	}
	return false
}

func normalizeRole(role string) string {
	role = strings.ToUpper(strings.TrimSpace(role))
	return strings.TrimPrefix(role, "ROLE_")
}

// principalFromToken reads sub and realm_access.roles from a bearer token.
// The signature was verified by the identity provider in front of us.
func principalFromToken(raw string) (Principal, error) {
	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(raw, claims); err != nil {
		return Principal{}, err
	}

	subject, err := claims.GetSubject()
	if err != nil {
		return Principal{}, err
	}

	principal := Principal{UserID: subject}
	if access, ok := claims["realm_access"].(map[string]interface{}); ok {
		if roles, ok := access["roles"].([]interface{}); ok {
			for _, role := range roles {
				if s, ok := role.(string); ok && s != "" {
					principal.Roles = append(principal.Roles, normalizeRole(s))
				}
			}
		}
	}
	return principal, nil
}

// principalFromHeaders reads the identity forwarded by a trusted gateway
func principalFromHeaders(r *http.Request) Principal {
	principal := Principal{UserID: strings.TrimSpace(r.Header.Get("X-User-ID"))}
	for _, role := range strings.Split(r.Header.Get("X-User-Roles"), ",") {
		if role = normalizeRole(role); role != "" {
			principal.Roles = append(principal.Roles, role)
		}
	}
	return principal
}

// PrincipalMiddleware stores the caller identity in the request context
// when one is present. It never rejects a request. The X-User-* headers are
// only read when trustGatewayHeaders is set, i.e. when every request passes
// through a gateway that overwrites them.
func PrincipalMiddleware(trustGatewayHeaders bool) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			var principal Principal

			authHeader := r.Header.Get("Authorization")
			if token, ok := strings.CutPrefix(authHeader, "Bearer "); ok && token != "" {
				p, err := principalFromToken(token)
				if err != nil {
					logger.Warn(r.Context()).Err(err).Msg("Unreadable bearer token")
				} else {
					principal = p
				}
			}
			if principal.UserID == "" && trustGatewayHeaders {
				principal = principalFromHeaders(r)
			}

			if principal.UserID != "" {
				ctx := context.WithValue(r.Context(), UserIDKey, principal.UserID)
				ctx = context.WithValue(ctx, RolesKey, principal.Roles)
				r = r.WithContext(ctx)
			}
			next.ServeHTTP(w, r)
		})
	}
}

// PrincipalFromContext returns the caller identity, if any
func PrincipalFromContext(ctx context.Context) (Principal, bool) {
	userID, ok := ctx.Value(UserIDKey).(string)
	if !ok || userID == "" {
		return Principal{}, false
	}
	roles, _ := ctx.Value(RolesKey).([]string)
	return Principal{UserID: userID, Roles: roles}, true
}

// RequireAuth rejects requests without a caller identity
func RequireAuth(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if _, ok := PrincipalFromContext(r.Context()); !ok {
			logger.Warn(r.Context()).Msg("Missing caller identity")
			respondError(w, http.StatusUnauthorized, "Authentication required")
			return
		}
		next.ServeHTTP(w, r)
	}
}

// RequireRole rejects callers holding none of the roles
func RequireRole(roles ...string) func(http.HandlerFunc) http.HandlerFunc {
	return func(next http.HandlerFunc) http.HandlerFunc {
		return RequireAuth(func(w http.ResponseWriter, r *http.Request) {
			principal, _ := PrincipalFromContext(r.Context())
			if !principal.HasRole(roles...) {
				logger.Warn(r.Context()).
					Str("user_id", principal.UserID).
					Strs("roles", principal.Roles).
					Msg("Access denied")
				respondError(w, http.StatusForbidden, "Insufficient role")
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// userID returns the caller id; routes using it are behind RequireAuth
func userID(r *http.Request) string {
	principal, _ := PrincipalFromContext(r.Context())
	return principal.UserID
}
