package service_test

import (
	"errors"
	"testing"
	"time"

	"github.com/msomdec/account-store/internal/domain"
	"github.com/msomdec/account-store/internal/service"
)

const testTokenSecret = "test-secret-key-for-unit-tests"

func testAccount() *domain.Account {
	return &domain.Account{
		ID:       42,
		Email:    "jwt@example.com",
		Username: "jwt-user",
	}
}

func TestTokenService_GenerateAndValidate(t *testing.T) {
	tokens := service.NewTokenService(testTokenSecret, time.Hour)

	token, err := tokens.Generate(testAccount())
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	if token == "" {
		t.Fatal("expected non-empty token")
	}

	id, err := tokens.Validate(token)
	if err != nil {
		t.Fatalf("Validate: %v", err)
	}
	if id != 42 {
		t.Fatalf("expected account id 42, got %d", id)
	}
}

func TestTokenService_InvalidToken(t *testing.T) {
	tokens := service.NewTokenService(testTokenSecret, time.Hour)

	_, err := tokens.Validate("not-a-valid-jwt")
	if !errors.Is(err, domain.ErrUnauthorized) {
		t.Fatalf("expected ErrUnauthorized, got %v", err)
	}
}

func TestTokenService_TamperedToken(t *testing.T) {
	tokens := service.NewTokenService(testTokenSecret, time.Hour)

	token, err := tokens.Generate(testAccount())
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}

	// Flip several characters in the signature.
	tampered := token[:len(token)-5] + "XXXXX"
	_, err = tokens.Validate(tampered)
	if !errors.Is(err, domain.ErrUnauthorized) {
		t.Fatalf("expected ErrUnauthorized for tampered token, got %v", err)
	}
}

func TestTokenService_WrongSecret(t *testing.T) {
	tokens := service.NewTokenService(testTokenSecret, time.Hour)

	token, err := tokens.Generate(testAccount())
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}

	other := service.NewTokenService("different-secret", time.Hour)
	_, err = other.Validate(token)
	if !errors.Is(err, domain.ErrUnauthorized) {
		t.Fatalf("expected ErrUnauthorized for wrong secret, got %v", err)
	}
}

func TestTokenService_ExpiredToken(t *testing.T) {
	tokens := service.NewTokenService(testTokenSecret, -time.Minute)

	token, err := tokens.Generate(testAccount())
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}

	_, err = tokens.Validate(token)
	if !errors.Is(err, domain.ErrUnauthorized) {
		t.Fatalf("expected ErrUnauthorized for expired token, got %v", err)
	}
}
