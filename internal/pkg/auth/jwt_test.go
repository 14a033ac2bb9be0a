package auth

import (
	"errors"
	"testing"
	"time"

	"github.com/emre/learnhub/internal/app/models"
)

func newTestService(accessExp time.Duration) *JWTService {
	return NewJWTService(JWTConfig{
		SecretKey:       "unit-test-secret",
		AccessTokenExp:  accessExp,
		RefreshTokenExp: 24 * time.Hour,
		TokenIssuer:     "learnhub-test",
	})
}

func TestGenerateAndValidateTokenPair(t *testing.T) {
	s := newTestService(time.Hour)
	user := &models.User{ID: 42, Email: "student@learnhub.app", RoleType: models.RoleStudent}

	accessToken, refreshToken, expiresIn, refreshExpiresIn, err := s.GenerateTokenPair(user)
	if err != nil {
		t.Fatalf("GenerateTokenPair error: %v", err)
	}
	if accessToken == "" || refreshToken == "" {
		t.Fatalf("empty tokens returned")
	}
	if expiresIn != 3600 {
		t.Fatalf("expiresIn = %d, want 3600", expiresIn)
	}
	if refreshExpiresIn != 86400 {
		t.Fatalf("refreshExpiresIn = %d, want 86400", refreshExpiresIn)
	}

	claims, err := s.ValidateAndExtractClaims(accessToken)
	if err != nil {
		t.Fatalf("ValidateAndExtractClaims error: %v", err)
	}
	if claims.UserID != 42 {
		t.Fatalf("UserID = %d, want 42", claims.UserID)
	}
	if claims.Email != "student@learnhub.app" {
		t.Fatalf("Email = %q", claims.Email)
	}
	if claims.RoleType != string(models.RoleStudent) {
		t.Fatalf("RoleType = %q, want STUDENT", claims.RoleType)
	}
	if claims.Issuer != "learnhub-test" {
		t.Fatalf("Issuer = %q", claims.Issuer)
	}
}

func TestValidateToken_Expired(t *testing.T) {
	s := newTestService(-time.Minute)
	user := &models.User{ID: 1, Email: "x@learnhub.app", RoleType: models.RoleStudent}

	accessToken, _, _, _, err := s.GenerateTokenPair(user)
	if err != nil {
		t.Fatalf("GenerateTokenPair error: %v", err)
	}

	_, err = s.ValidateAndExtractClaims(accessToken)
	if !errors.Is(err, ErrExpiredToken) {
		t.Fatalf("error = %v, want ErrExpiredToken", err)
	}
}

func TestValidateToken_WrongSecret(t *testing.T) {
	issuer := newTestService(time.Hour)
	user := &models.User{ID: 1, Email: "x@learnhub.app", RoleType: models.RoleStudent}

	accessToken, _, _, _, err := issuer.GenerateTokenPair(user)
	if err != nil {
		t.Fatalf("GenerateTokenPair error: %v", err)
	}

	other := NewJWTService(JWTConfig{
		SecretKey:       "different-secret",
		AccessTokenExp:  time.Hour,
		RefreshTokenExp: time.Hour,
		TokenIssuer:     "learnhub-test",
	})

	if _, err := other.ValidateAndExtractClaims(accessToken); err == nil {
		t.Fatalf("token signed with another secret validated")
	}
}

func TestValidateAndExtractClaims_Empty(t *testing.T) {
	s := newTestService(time.Hour)
	if _, err := s.ValidateAndExtractClaims(""); !errors.Is(err, ErrInvalidToken) {
		t.Fatalf("error = %v, want ErrInvalidToken", err)
	}
}

func TestExtractBearerToken(t *testing.T) {
	token, err := ExtractBearerToken("Bearer abc.def.ghi")
	if err != nil {
		t.Fatalf("ExtractBearerToken error: %v", err)
	}
	if token != "abc.def.ghi" {
		t.Fatalf("token = %q", token)
	}

	if _, err := ExtractBearerToken(""); err == nil {
		t.Fatalf("empty header accepted")
	}

	// Tokens without the Bearer prefix pass through as-is
	token, err = ExtractBearerToken("raw-token")
	if err != nil {
		t.Fatalf("ExtractBearerToken error: %v", err)
	}
	if token != "raw-token" {
		t.Fatalf("token = %q", token)
	}
}
