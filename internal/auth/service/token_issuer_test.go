package service

import (
	"errors"
	"testing"
	"time"

	"github.com/seo-pirate/backend/internal/common/clock"
	commonerrors "github.com/seo-pirate/backend/internal/common/errors"
	"github.com/seo-pirate/backend/internal/common/jwtverify"
	userdomain "github.com/seo-pirate/backend/internal/user/domain"
)

func TestTokenIssuer_RoundTrip(t *testing.T) {
	mockClock := clock.NewMockClock(time.Now())
	issuer := NewTokenIssuer(testJWTSecret, 6*time.Hour, mockClock)

	token, err := issuer.IssueAccessToken(userdomain.User{
		ID:       "user-123",
		Email:    "pirate@example.com",
		Username: "pirate",
	})
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	claims, err := issuer.ParseToken(token)
	if err != nil {
		t.Fatalf("expected token to verify, got %v", err)
	}
	if claims.UserID != "user-123" || claims.Email != "pirate@example.com" || claims.Username != "pirate" {
		t.Errorf("unexpected claims: %+v", claims)
	}
}

func TestTokenIssuer_Expired(t *testing.T) {
	issued := time.Now().Add(-7 * time.Hour)
	mockClock := clock.NewMockClock(issued)
	issuer := NewTokenIssuer(testJWTSecret, 6*time.Hour, mockClock)

	token, err := issuer.IssueAccessToken(userdomain.User{ID: "user-123", Username: "pirate"})
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	_, err = issuer.ParseToken(token)
	if !errors.Is(err, commonerrors.ErrTokenExpired) {
		t.Fatalf("expected ErrTokenExpired, got %v", err)
	}
}

func TestTokenIssuer_WrongSecret(t *testing.T) {
	mockClock := clock.NewMockClock(time.Now())
	issuer := NewTokenIssuer(testJWTSecret, 6*time.Hour, mockClock)

	token, err := issuer.IssueAccessToken(userdomain.User{ID: "user-123", Username: "pirate"})
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	_, err = jwtverify.ParseToken(token, []byte("another-secret-key-also-long-enough"))
	if err == nil {
		t.Fatal("expected verification to fail with a different secret")
	}
}

func TestTokenIssuer_Malformed(t *testing.T) {
	_, err := jwtverify.ParseToken("not.a.token", []byte(testJWTSecret))
	if !errors.Is(err, commonerrors.ErrTokenMalformed) {
		t.Fatalf("expected ErrTokenMalformed, got %v", err)
	}
}
