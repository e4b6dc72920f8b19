package api

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

func signOps(t *testing.T, secret string, exp time.Time) string {
	t.Helper()
	tok := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		ExpiresAt: jwt.NewNumericDate(exp),
	})
	s, err := tok.SignedString([]byte(secret))
	if err != nil {
		t.Fatalf("sign token: %v", err)
	}
	return s
}

func TestVerifyOpsToken(t *testing.T) {
	now := time.Now()
	token := signOps(t, "s3cret", now.Add(time.Hour))

	if err := VerifyOpsToken(token, "s3cret", now); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestVerifyOpsToken_WrongSecret(t *testing.T) {
	now := time.Now()
	token := signOps(t, "s3cret", now.Add(time.Hour))

	if err := VerifyOpsToken(token, "other", now); err == nil {
		t.Fatalf("expected error")
	}
}

func TestVerifyOpsToken_Expired(t *testing.T) {
	now := time.Now()
	token := signOps(t, "s3cret", now.Add(-time.Minute))

	if err := VerifyOpsToken(token, "s3cret", now); err == nil {
		t.Fatalf("expected error")
	}
}

func TestVerifyOpsToken_MissingInputs(t *testing.T) {
	if err := VerifyOpsToken("", "s3cret", time.Now()); err == nil {
		t.Fatalf("expected error for missing token")
	}
	if err := VerifyOpsToken("x.y.z", "", time.Now()); err == nil {
		t.Fatalf("expected error for missing secret")
	}
}
