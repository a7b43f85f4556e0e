package service

import (
	"errors"
	"testing"

	"campuspulse/internal/config"
)

func newTestAuthService() *AuthService {
	return NewAuthService(&config.Config{
		AdminUsername: "admin",
		AdminPassword: "secret",
		JWTSecret:     "test-secret",
	})
}

func TestLoginAndValidate(t *testing.T) {
	svc := newTestAuthService()

	resp, err := svc.Login("admin", "secret")
	if err != nil {
		t.Fatalf("Login: %v", err)
	}
	if resp.Token == "" || resp.Username != "admin" || resp.Role != "admin" {
		t.Fatalf("login response = %+v", resp)
	}

	claims, err := svc.ValidateToken(resp.Token)
	if err != nil {
		t.Fatalf("ValidateToken: %v", err)
	}
	if claims.Username != "admin" || claims.Role != "admin" {
		t.Errorf("claims = %+v", claims)
	}
}

func TestLoginRejectsBadCredentials(t *testing.T) {
	svc := newTestAuthService()

	if _, err := svc.Login("admin", "wrong"); !errors.Is(err, ErrInvalidCredentials) {
		t.Errorf("error = %v, want ErrInvalidCredentials", err)
	}
	if _, err := svc.Login("root", "secret"); !errors.Is(err, ErrInvalidCredentials) {
		t.Errorf("error = %v, want ErrInvalidCredentials", err)
	}
}

func TestValidateTokenRejectsGarbage(t *testing.T) {
	svc := newTestAuthService()

	if _, err := svc.ValidateToken("not-a-token"); !errors.Is(err, ErrInvalidToken) {
		t.Errorf("error = %v, want ErrInvalidToken", err)
	}

	// Token signed with a different secret.
	other := NewAuthService(&config.Config{AdminUsername: "admin", AdminPassword: "secret", JWTSecret: "other"})
	resp, err := other.Login("admin", "secret")
	if err != nil {
		t.Fatalf("Login: %v", err)
	}
	if _, err := svc.ValidateToken(resp.Token); !errors.Is(err, ErrInvalidToken) {
		t.Errorf("error = %v, want ErrInvalidToken", err)
	}
}
