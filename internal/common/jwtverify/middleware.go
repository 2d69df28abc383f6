package jwtverify

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/golang-jwt/jwt/v5"

	commonerrors "github.com/seo-pirate/backend/internal/common/errors"
	commonhttp "github.com/seo-pirate/backend/internal/common/http"
	"github.com/seo-pirate/backend/internal/common/logger"
	"github.com/seo-pirate/backend/internal/observability/metrics"
)

// Claims is the identity payload carried by an access token.
type Claims struct {
	UserID   string
	Email    string
	Username string
}

type contextKey string

const claimsKey contextKey = "jwt_claims"

// Middleware guards protected routes: it extracts the bearer token,
// verifies it, and puts the decoded claims into the request context.
// On any failure the wrapped handler never runs.
func Middleware(secret string, log *logger.Logger) func(next http.Handler) http.Handler {
	secretBytes := []byte(secret)

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			raw := r.Header.Get("Authorization")
			if raw == "" || !strings.HasPrefix(raw, "Bearer ") {
				log.Warnf("jwt auth failed path=%s: missing or invalid authorization header", r.URL.Path)
				commonhttp.WriteError(w, http.StatusUnauthorized, "missing or invalid authorization")
				return
			}

			tokenString := strings.TrimPrefix(raw, "Bearer ")
			claims, err := ParseToken(tokenString, secretBytes)
			if err != nil {
				log.Warnf("jwt auth failed path=%s: %v", r.URL.Path, err)
				if domainErr, ok := commonerrors.AsDomainError(err); ok {
					commonhttp.WriteError(w, domainErr.HTTPStatus(), domainErr.Message())
					return
				}
				commonhttp.WriteError(w, http.StatusUnauthorized, "invalid token")
				return
			}

			ctx := context.WithValue(r.Context(), claimsKey, claims)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func FromContext(ctx context.Context) (Claims, bool) {
	val := ctx.Value(claimsKey)
	claims, ok := val.(Claims)
	return claims, ok
}

// ParseToken verifies signature and expiry. Expiry and malformed tokens
// surface as distinct domain errors.
func ParseToken(tokenString string, secret []byte) (Claims, error) {
	metrics.JWTValidationsTotal.Inc()

	parsed, err := jwt.Parse(tokenString, func(token *jwt.Token) (any, error) {
		if token.Method != jwt.SigningMethodHS256 {
			return nil, commonerrors.ErrInvalidTokenSigningMethod
		}
		return secret, nil
	})
	if err != nil {
		metrics.JWTValidationsFailed.Inc()
		if errors.Is(err, jwt.ErrTokenExpired) {
			return Claims{}, commonerrors.ErrTokenExpired.WithCause(err)
		}
		if errors.Is(err, jwt.ErrTokenMalformed) {
			return Claims{}, commonerrors.ErrTokenMalformed.WithCause(err)
		}
		return Claims{}, commonerrors.ErrInvalidToken.WithCause(err)
	}
	if !parsed.Valid {
		metrics.JWTValidationsFailed.Inc()
		return Claims{}, commonerrors.ErrInvalidToken
	}

	mapClaims, ok := parsed.Claims.(jwt.MapClaims)
	if !ok {
		metrics.JWTValidationsFailed.Inc()
		return Claims{}, commonerrors.ErrMissingTokenClaims
	}

	sub, _ := mapClaims["sub"].(string)
	email, _ := mapClaims["eml"].(string)
	username, _ := mapClaims["usr"].(string)
	if sub == "" || username == "" {
		metrics.JWTValidationsFailed.Inc()
		return Claims{}, commonerrors.ErrMissingTokenClaims
	}

	return Claims{
		UserID:   sub,
		Email:    email,
		Username: username,
	}, nil
}
