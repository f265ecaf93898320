package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/YuvrajS01/Anon-Feedback-System/config"
	"github.com/YuvrajS01/Anon-Feedback-System/internal/dto"
	"github.com/YuvrajS01/Anon-Feedback-System/pkg/jwt"
)

func setupTestAuthService(t *testing.T, password string) AuthService {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("hashing test password failed: %v", err)
	}
	cfg := &config.Config{
		Auth: config.AuthConfig{
			AdminPasswordHash: string(hash),
			JWTSecret:         "test-secret-key-for-unit-testing",
			AccessTokenTTL:    15 * time.Minute,
		},
	}
	jwtMgr := jwt.NewManager(&cfg.Auth)
	return NewAuthService(cfg, jwtMgr, nil, zap.NewNop())
}

func TestLogin_Success(t *testing.T) {
	svc := setupTestAuthService(t, "correct horse battery")

	result, err := svc.Login(context.Background(), &dto.LoginRequest{Password: "correct horse battery"})
	if err != nil {
		t.Fatalf("Login should succeed: %v", err)
	}
	if result.AccessToken == "" {
		t.Error("AccessToken should not be empty")
	}
	if result.ExpiresIn != 900 {
		t.Errorf("expected ExpiresIn=900, got %d", result.ExpiresIn)
	}
}

func TestLogin_IssuesAdminRole(t *testing.T) {
	svc := setupTestAuthService(t, "correct horse battery")

	result, err := svc.Login(context.Background(), &dto.LoginRequest{Password: "correct horse battery"})
	if err != nil {
		t.Fatalf("Login should succeed: %v", err)
	}

	cfg := &config.AuthConfig{JWTSecret: "test-secret-key-for-unit-testing", AccessTokenTTL: 15 * time.Minute}
	claims, err := jwt.NewManager(cfg).ParseToken(result.AccessToken)
	if err != nil {
		t.Fatalf("issued token should parse: %v", err)
	}
	if claims.Role != "admin" {
		t.Errorf("expected role admin, got %q", claims.Role)
	}
}

func TestLogin_WrongPassword(t *testing.T) {
	svc := setupTestAuthService(t, "correct horse battery")

	_, err := svc.Login(context.Background(), &dto.LoginRequest{Password: "wrong"})
	if !errors.Is(err, ErrInvalidCredentials) {
		t.Errorf("expected ErrInvalidCredentials, got: %v", err)
	}
}

func TestLogout_WithoutRedis(t *testing.T) {
	svc := setupTestAuthService(t, "correct horse battery")

	// without redis the token simply runs out its TTL
	if err := svc.Logout(context.Background(), "some-jti", time.Now().Add(time.Hour)); err != nil {
		t.Errorf("Logout without redis should be a no-op, got: %v", err)
	}
}
