package service

import (
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/seo-pirate/backend/internal/common/clock"
	"github.com/seo-pirate/backend/internal/common/jwtverify"
	"github.com/seo-pirate/backend/internal/observability/metrics"
	userdomain "github.com/seo-pirate/backend/internal/user/domain"
)

// TokenIssuer signs self-contained access tokens over {id, email, username}.
// The server keeps no session state for them.
type TokenIssuer struct {
	jwtSecret      []byte
	clock          clock.Clock
	accessTokenTTL time.Duration
}

func NewTokenIssuer(jwtSecret string, accessTokenTTL time.Duration, clock clock.Clock) *TokenIssuer {
	return &TokenIssuer{
		jwtSecret:      []byte(jwtSecret),
		clock:          clock,
		accessTokenTTL: accessTokenTTL,
	}
}

func (ti *TokenIssuer) IssueAccessToken(user userdomain.User) (string, error) {
	now := ti.clock.Now()
	claims := jwt.MapClaims{
		"sub": string(user.ID),
		"eml": user.Email,
		"usr": user.Username,
		"exp": now.Add(ti.accessTokenTTL).Unix(),
		"iat": now.Unix(),
	}

	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenString, err := t.SignedString(ti.jwtSecret)
	if err != nil {
		return "", err
	}

	metrics.AccessTokensIssued.Inc()
	return tokenString, nil
}

func (ti *TokenIssuer) ParseToken(tokenString string) (jwtverify.Claims, error) {
	return jwtverify.ParseToken(tokenString, ti.jwtSecret)
}
