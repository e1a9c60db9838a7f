package session

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

var testNow = time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

func fixedClock() time.Time { return testNow }

// signToken builds an HS256 token for the given claims.
func signToken(t *testing.T, claims jwt.MapClaims) string {
	t.Helper()
	tok, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("test-secret"))
	if err != nil {
		t.Fatalf("signing token: %v", err)
	}
	return tok
}

func adminToken(t *testing.T) string {
	return signToken(t, jwt.MapClaims{
		"sub":    "admin",
		"roles":  []string{RoleAdmin},
		"userId": 1,
		"exp":    testNow.Add(time.Hour).Unix(),
	})
}
