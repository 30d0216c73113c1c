package auth

import (
	"errors"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

func TestGenerateAndValidate(t *testing.T) {
	m := NewJWTManager("secret", "fintrack")

	token, err := m.GenerateToken("u1", "a@example.com", time.Hour)
	if err != nil {
		t.Fatalf("GenerateToken() error = %v", err)
	}

	claims, err := m.ValidateToken(token)
	if err != nil {
		t.Fatalf("ValidateToken() error = %v", err)
	}
	if claims.UserID != "u1" || claims.Email != "a@example.com" {
		t.Errorf("claims = %+v", claims)
	}
}

func TestValidateTokenRejects(t *testing.T) {
	m := NewJWTManager("secret", "fintrack")

	expired, _ := m.GenerateToken("u1", "a@example.com", -time.Minute)
	otherKey, _ := NewJWTManager("other", "fintrack").GenerateToken("u1", "a@example.com", time.Hour)
	otherIssuer, _ := NewJWTManager("secret", "elsewhere").GenerateToken("u1", "a@example.com", time.Hour)

	tests := map[string]string{
		"expired":      expired,
		"wrong key":    otherKey,
		"wrong issuer": otherIssuer,
		"garbage":      "not-a-token",
	}
	for name, token := range tests {
		t.Run(name, func(t *testing.T) {
			_, err := m.ValidateToken(token)
			if !errors.Is(err, ErrInvalidToken) {
				t.Errorf("ValidateToken() error = %v, want ErrInvalidToken", err)
			}
		})
	}
}

func TestValidateTokenFallsBackToSubject(t *testing.T) {
	m := NewJWTManager("secret", "")
	raw := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub":   "provider-uid",
		"email": "b@example.com",
		"exp":   time.Now().Add(time.Hour).Unix(),
	})
	token, err := raw.SignedString([]byte("secret"))
	if err != nil {
		t.Fatal(err)
	}

	claims, err := m.ValidateToken(token)
	if err != nil {
		t.Fatalf("ValidateToken() error = %v", err)
	}
	if claims.UserID != "provider-uid" {
		t.Errorf("UserID = %q, want provider-uid", claims.UserID)
	}
}
