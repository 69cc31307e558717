package httpapi

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/mlenz/tapspace/internal/domain/identity"
)

type contextKey string

const identityContextKey contextKey = "identity"

// Claims are the JWT claims carried by a session token.
type Claims struct {
	Username string        `json:"username"`
	Role     identity.Role `json:"role"`
	jwt.RegisteredClaims
}

// TokenService issues and validates HS256 session tokens.
type TokenService struct {
	secret   []byte
	lifetime time.Duration
}

// NewTokenService creates a token service.
func NewTokenService(secret string, lifetime time.Duration) *TokenService {
	return &TokenService{secret: []byte(secret), lifetime: lifetime}
}

// Issue signs a token for the identity.
func (t *TokenService) Issue(ident identity.Identity) (string, error) {
	now := time.Now()
	claims := &Claims{
		Username: ident.Username,
		Role:     ident.Role,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(t.lifetime)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(t.secret)
	if err != nil {
		return "", fmt.Errorf("signing token: %w", err)
	}
	return signed, nil
}

// Validate parses and verifies a token, returning the embedded identity.
func (t *TokenService) Validate(tokenString string) (*identity.Identity, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (any, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return t.secret, nil
	})
	if err != nil {
		return nil, fmt.Errorf("parsing token: %w", err)
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid || !claims.Role.Valid() {
		return nil, fmt.Errorf("invalid token claims")
	}

	return &identity.Identity{Username: claims.Username, Role: claims.Role}, nil
}

// RequireAuth rejects requests without a valid bearer token and stores the
// identity in the request context.
func (a *API) RequireAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		header := r.Header.Get("Authorization")
		if header == "" {
			writeError(w, http.StatusUnauthorized, "missing authorization header")
			return
		}
		tokenString := strings.TrimPrefix(header, "Bearer ")
		if tokenString == header {
			writeError(w, http.StatusUnauthorized, "invalid authorization header format")
			return
		}

		ident, err := a.tokens.Validate(tokenString)
		if err != nil {
			writeError(w, http.StatusUnauthorized, "invalid token")
			return
		}

		ctx := context.WithValue(r.Context(), identityContextKey, *ident)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// RequireModerator rejects requests whose identity is not a moderator.
// Must run inside RequireAuth.
func (a *API) RequireModerator(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ident, ok := identityFrom(r.Context())
		if !ok || ident.Role != identity.RoleModerator {
			writeError(w, http.StatusForbidden, "moderator role required")
			return
		}
		next.ServeHTTP(w, r)
	})
}

func identityFrom(ctx context.Context) (identity.Identity, bool) {
	ident, ok := ctx.Value(identityContextKey).(identity.Identity)
	return ident, ok
}
