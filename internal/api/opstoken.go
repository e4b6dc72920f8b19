package api

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// VerifyOpsToken validates an ops bearer token (JWT, HS256) against the
// shared secret. Only the standard claims are checked; an expiry is required
// so leaked tokens age out.
func VerifyOpsToken(tokenString string, secret string, now time.Time) error {
	if tokenString == "" {
		return fmt.Errorf("missing token")
	}
	if secret == "" {
		return fmt.Errorf("missing ops secret")
	}

	parser := jwt.NewParser(
		jwt.WithValidMethods([]string{"HS256"}),
		jwt.WithTimeFunc(func() time.Time { return now }),
		jwt.WithExpirationRequired(),
	)
	claims := &jwt.RegisteredClaims{}
	tok, err := parser.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (any, error) {
		return []byte(secret), nil
	})
	if err != nil {
		return err
	}
	if !tok.Valid {
		return fmt.Errorf("invalid token")
	}
	return nil
}
